package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bnema/sparky/internal/domain"
	"github.com/bnema/sparky/internal/ports"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var tracer = otel.Tracer("sparky.session")

// SessionDeps are the collaborators of a session. Classifier, Generator and
// Catalog are required; everything else has a default.
type SessionDeps struct {
	ID         string
	Classifier ports.EmotionClassifier
	Generator  ports.TextGenerator
	Catalog    *domain.Catalog
	Scorer     ComplexityScorer
	Sink       ports.TrajectorySink
	Observer   ports.TurnObserver
	Clock      ports.Clock
	Logger     *zap.Logger
}

type TurnResult struct {
	Step      domain.TrajectoryStep
	Ended     bool
	EndReason domain.EndReason
}

func (r TurnResult) Reply() string {
	return r.Step.Reply
}

// Session runs one learner's turn loop. Turns are strictly sequential; the
// only concurrency is inside a turn, where classification and complexity
// scoring run side by side.
type Session struct {
	id     string
	cfg    Config
	clock  ports.Clock
	logger *zap.Logger

	emotion   *EmotionAdapter
	estimator *LevelEstimator
	policy    *PolicyGenerator
	prompts   *PromptBuilder
	generator ports.TextGenerator
	catalog   *domain.Catalog
	recorder  *Recorder
	observer  ports.TurnObserver

	mu        sync.Mutex
	idle      *sync.Cond
	state     domain.SessionState
	turn      int
	level     domain.LanguageLevel
	words     *WordStore
	emotions  []domain.EmotionReading
	last      domain.Decision
	startedAt time.Time
	endedAt   time.Time
	reason    domain.EndReason
	stop      func() bool
	closeOnce sync.Once
	closeErr  error
}

func NewSession(deps SessionDeps, cfg Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if deps.Classifier == nil {
		return nil, errors.New("new session: emotion classifier is required")
	}
	if deps.Generator == nil {
		return nil, errors.New("new session: text generator is required")
	}
	if deps.Catalog == nil {
		return nil, errors.New("new session: vocabulary catalog is required")
	}

	if deps.ID == "" {
		deps.ID = uuid.NewString()
	}
	if deps.Clock == nil {
		deps.Clock = ports.SystemClock{}
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Observer == nil {
		deps.Observer = ports.NopObserver{}
	}
	if deps.Scorer == nil {
		deps.Scorer = NewDefaultScorer(deps.Catalog)
	}

	s := &Session{
		id:        deps.ID,
		cfg:       cfg,
		clock:     deps.Clock,
		logger:    deps.Logger.With(zap.String("session_id", deps.ID)),
		emotion:   NewEmotionAdapter(deps.Classifier, cfg.Session.ClassifyTimeout),
		estimator: NewLevelEstimator(cfg.Level, cfg.Policy.DistressConfidence, deps.Scorer),
		policy:    NewPolicyGenerator(cfg.Words, cfg.Policy, deps.Catalog),
		prompts:   NewPromptBuilder(deps.Catalog, cfg.Session.ExcerptTurns),
		generator: deps.Generator,
		catalog:   deps.Catalog,
		recorder:  NewRecorder(deps.Sink),
		observer:  deps.Observer,
		state:     domain.StateIdle,
		level:     domain.NewLanguageLevel(cfg.InitialStage()),
		words:     NewWordStore(cfg.Words.MasteryThreshold),
	}
	s.idle = sync.NewCond(&s.mu)

	return s, nil
}

func (s *Session) ID() string {
	return s.id
}

// Start moves the session to AwaitingInput. Cancelling ctx ends the session
// with reason cancelled once any in-flight turn has finished.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	switch s.state {
	case domain.StateIdle:
	case domain.StateEnded:
		s.mu.Unlock()
		return domain.ErrSessionEnded
	default:
		s.mu.Unlock()
		return fmt.Errorf("%w: start from %s", domain.ErrInvalidTransition, s.state)
	}

	s.state = domain.StateAwaitingInput
	s.startedAt = s.clock.Now()
	s.stop = context.AfterFunc(ctx, func() {
		if _, err := s.End(context.WithoutCancel(ctx), domain.EndCancelled); err != nil && !errors.Is(err, domain.ErrSessionEnded) {
			s.logger.Warn("end cancelled session", zap.Error(err))
		}
	})
	s.mu.Unlock()

	s.logger.Info("session started",
		zap.String("stage", s.level.Stage.String()),
		zap.Int("catalog_words", s.catalog.Len()),
	)
	return nil
}

// SubmitTurn processes one learner utterance and blocks until the reply is
// rendered and recorded. Degraded collaborators never fail the turn.
func (s *Session) SubmitTurn(ctx context.Context, text string) (TurnResult, error) {
	s.mu.Lock()
	switch s.state {
	case domain.StateAwaitingInput:
	case domain.StateEnded:
		s.mu.Unlock()
		return TurnResult{}, domain.ErrSessionEnded
	default:
		state := s.state
		s.mu.Unlock()
		return TurnResult{}, fmt.Errorf("%w: input while %s", domain.ErrInvalidTransition, state)
	}

	if s.timeBudgetSpentLocked() {
		s.endLocked(domain.EndTimeBudget)
		s.mu.Unlock()
		_ = s.closeOut(context.WithoutCancel(ctx))
		return TurnResult{}, fmt.Errorf("%w: time budget of %s spent", domain.ErrSessionEnded, s.cfg.Session.TimeBudget)
	}

	s.state = domain.StateProcessing
	turn := s.turn
	prevLevel := s.level
	recent := append([]domain.EmotionReading(nil), s.emotions...)
	lastDecision := s.last
	s.mu.Unlock()

	// Cancellation is only observed between turns; an accepted turn runs to
	// completion under the collaborator timeouts and is recorded.
	step := s.runTurn(context.WithoutCancel(ctx), turn, strings.TrimSpace(text), prevLevel, recent, lastDecision)

	s.mu.Lock()
	s.level = step.Level
	s.emotions = append(s.emotions, step.Emotion)
	s.last = step.Decision
	s.turn++
	s.state = domain.StateAwaitingInput

	result := TurnResult{Step: step}
	switch {
	case s.cfg.Session.MaxTurns > 0 && s.turn >= s.cfg.Session.MaxTurns:
		s.endLocked(domain.EndTurnBudget)
	case s.timeBudgetSpentLocked():
		s.endLocked(domain.EndTimeBudget)
	}
	if s.state == domain.StateEnded {
		result.Ended = true
		result.EndReason = s.reason
	}
	s.idle.Broadcast()
	s.mu.Unlock()

	if result.Ended {
		_ = s.closeOut(context.WithoutCancel(ctx))
	}
	return result, nil
}

func (s *Session) runTurn(ctx context.Context, turn int, text string, prev domain.LanguageLevel, recent []domain.EmotionReading, lastDecision domain.Decision) domain.TrajectoryStep {
	started := s.clock.Now()
	ctx, span := tracer.Start(ctx, "session.turn",
		trace.WithAttributes(
			attribute.String("session.id", s.id),
			attribute.Int("session.turn", turn),
		),
	)
	defer span.End()

	logger := s.logger.With(zap.Int("turn", turn))
	var degraded []domain.Signal

	var (
		reading domain.EmotionReading
		sample  float64
		g       errgroup.Group
	)
	g.Go(func() error {
		var err error
		reading, err = s.emotion.Classify(ctx, text)
		if err != nil {
			logger.Warn("emotion signal degraded", zap.Error(err))
			span.RecordError(err)
			reading = domain.NeutralReading()
			degraded = append(degraded, domain.SignalEmotion)
		}
		return nil
	})
	g.Go(func() error {
		sample = s.estimator.Score(text)
		return nil
	})
	_ = g.Wait()

	level := s.estimator.Apply(prev, sample, LevelSignals{Emotion: reading})

	mentions := s.catalog.Mentions(text)
	if lastDecision.Action.TargetsWord() && s.distressed(reading) && !mentioned(mentions, lastDecision.TargetWord) {
		s.words.RecordMiss(lastDecision.TargetWord)
	}
	for _, word := range mentions {
		s.words.RecordExposure(word.Word, turn)
	}

	decision := s.policy.Decide(PolicyInput{
		Emotion:   reading,
		Level:     level,
		Knowledge: s.words.Snapshot(),
		Turn:      turn,
		Recent:    recent,
	})
	if decision.Action == domain.ActionEscalate {
		level = s.estimator.Nominate(level)
	}

	s.setState(domain.StateRendering)

	prompt := s.prompts.Build(PromptContext{
		Learner:  text,
		Decision: decision,
		Emotion:  reading,
		Trend:    domain.TrendOf(append(recent, reading)),
		Level:    level,
		History:  s.recorder.Steps(),
	})
	reply, err := s.render(ctx, prompt)
	if err != nil {
		logger.Warn("generation degraded", zap.Error(err), zap.String("action", string(decision.Action)))
		span.RecordError(err)
		reply = s.prompts.FallbackReply(decision)
		degraded = append(degraded, domain.SignalGeneration)
	}

	if decision.Action.TargetsWord() {
		s.words.RecordExposure(decision.TargetWord, turn)
	}

	step := domain.TrajectoryStep{
		Turn:        turn,
		At:          s.clock.Now(),
		LearnerText: text,
		Emotion:     reading,
		Level:       level,
		Decision:    decision,
		Reply:       reply,
		Knowledge:   s.words.Snapshot().Entries(),
		Degraded:    degraded,
	}
	if err := s.recorder.Append(ctx, step); err != nil {
		logger.Error("record trajectory step", zap.Error(err))
	}

	span.SetAttributes(
		attribute.String("turn.emotion", string(reading.Label)),
		attribute.String("turn.stage", level.Stage.String()),
		attribute.String("turn.action", string(decision.Action)),
		attribute.Int("turn.degraded", len(degraded)),
	)
	if len(degraded) > 0 {
		span.SetStatus(codes.Error, "degraded")
	} else {
		span.SetStatus(codes.Ok, "")
	}

	elapsed := s.clock.Now().Sub(started)
	logger.Debug("turn complete",
		zap.String("emotion", string(reading.Label)),
		zap.Float64("confidence", reading.Confidence),
		zap.String("stage", level.Stage.String()),
		zap.Float64("score", level.Score),
		zap.String("action", string(decision.Action)),
		zap.String("target", decision.TargetWord),
		zap.Duration("elapsed", elapsed),
	)
	s.observer.ObserveTurn(step, elapsed)

	return step
}

func (s *Session) render(ctx context.Context, prompt domain.Prompt) (string, error) {
	reply, err := callBounded(ctx, s.cfg.Session.GenerateTimeout, func(callCtx context.Context) (string, error) {
		return s.generator.Generate(callCtx, prompt)
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrGenerationUnavailable, err)
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		return "", fmt.Errorf("%w: empty reply", domain.ErrGenerationUnavailable)
	}
	return reply, nil
}

func (s *Session) distressed(reading domain.EmotionReading) bool {
	return reading.Label.IsDistressed() && reading.Confidence >= s.cfg.Policy.DistressConfidence
}

func mentioned(words []domain.CatalogWord, target string) bool {
	for _, word := range words {
		if word.Word == target {
			return true
		}
	}
	return false
}

// End stops the session and flushes the trajectory. It waits for an in-flight
// turn to finish first. Ending twice returns ErrSessionEnded along with the
// summary.
func (s *Session) End(ctx context.Context, reason domain.EndReason) (domain.Summary, error) {
	s.mu.Lock()
	for s.state == domain.StateProcessing || s.state == domain.StateRendering {
		s.idle.Wait()
	}
	if s.state == domain.StateEnded {
		s.mu.Unlock()
		if err := s.closeOut(ctx); err != nil {
			return s.Summary(), errors.Join(domain.ErrSessionEnded, err)
		}
		return s.Summary(), domain.ErrSessionEnded
	}
	s.endLocked(reason)
	s.mu.Unlock()

	err := s.closeOut(ctx)
	return s.Summary(), err
}

func (s *Session) endLocked(reason domain.EndReason) {
	s.state = domain.StateEnded
	s.reason = reason
	s.endedAt = s.clock.Now()
	if s.startedAt.IsZero() {
		s.startedAt = s.endedAt
	}
	s.idle.Broadcast()
}

// closeOut flushes the trajectory once, after the session has ended. Later
// callers block until the first flush is done and share its error.
func (s *Session) closeOut(ctx context.Context) error {
	s.closeOnce.Do(func() {
		s.closeErr = s.flush(ctx)
	})
	return s.closeErr
}

func (s *Session) flush(ctx context.Context) error {
	s.mu.Lock()
	stop := s.stop
	s.mu.Unlock()

	if stop != nil {
		stop()
	}

	err := s.recorder.Close(ctx)
	if err != nil {
		s.logger.Error("flush trajectory", zap.Error(err))
	}

	s.mu.Lock()
	summary := s.summaryLocked()
	s.mu.Unlock()

	s.logger.Info("session ended",
		zap.String("reason", string(summary.EndReason)),
		zap.Int("turns", summary.Turns),
		zap.Duration("duration", summary.Duration),
	)
	s.observer.ObserveEnd(summary)
	return err
}

func (s *Session) timeBudgetSpentLocked() bool {
	budget := s.cfg.Session.TimeBudget
	return budget > 0 && s.clock.Now().Sub(s.startedAt) >= budget
}

func (s *Session) setState(state domain.SessionState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

func (s *Session) State() domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Trajectory() []domain.TrajectoryStep {
	return s.recorder.Steps()
}

// Knowledge returns a detached copy of the learner's word knowledge.
func (s *Session) Knowledge() domain.KnowledgeSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == domain.StateProcessing || s.state == domain.StateRendering {
		if steps := s.recorder.Steps(); len(steps) > 0 {
			return domain.SnapshotFromEntries(steps[len(steps)-1].Knowledge)
		}
		return domain.KnowledgeSnapshot{}
	}
	return s.words.Snapshot()
}

func (s *Session) Summary() domain.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summaryLocked()
}

func (s *Session) summaryLocked() domain.Summary {
	steps := s.recorder.Steps()
	summary := domain.Summary{
		SessionID:      s.id,
		State:          s.state,
		EndReason:      s.reason,
		StartedAt:      s.startedAt,
		Turns:          s.turn,
		Level:          s.level,
		CurrentEmotion: domain.NeutralReading(),
		Trend:          domain.TrendOf(s.emotions),
		Stats:          domain.StatsOf(steps),
	}
	if n := len(s.emotions); n > 0 {
		summary.CurrentEmotion = s.emotions[n-1]
	}

	switch {
	case s.state == domain.StateEnded:
		summary.Duration = s.endedAt.Sub(s.startedAt)
		summary.Farewell = domain.Farewell(summary.CurrentEmotion.Label)
	case !s.startedAt.IsZero():
		summary.Duration = s.clock.Now().Sub(s.startedAt)
	}

	return summary
}
