// Package metrics exports tutoring session counters in the Prometheus format.
package metrics

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bnema/sparky/internal/domain"
	"github.com/bnema/sparky/internal/ports"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "sparky"

var ErrRegistrationFailed = errors.New("metric registration failed")

// Observer records turns and session endings. It is safe for concurrent use
// by several sessions.
type Observer struct {
	registry *prometheus.Registry

	turns        *prometheus.CounterVec
	turnDuration prometheus.Histogram
	emotions     *prometheus.CounterVec
	degraded     *prometheus.CounterVec
	stage        prometheus.Gauge
	wordsKnown   prometheus.Gauge
	wordsMaster  prometheus.Gauge
	sessions     *prometheus.CounterVec
}

var _ ports.TurnObserver = (*Observer)(nil)

func NewObserver() (*Observer, error) {
	o := &Observer{
		registry: prometheus.NewRegistry(),
		turns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "turns_total",
			Help:      "Turns processed, by pedagogical action.",
		}, []string{"action"}),
		turnDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "turn_duration_seconds",
			Help:      "Time from learner input to recorded reply.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		emotions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "emotions_total",
			Help:      "Emotion readings, by label.",
		}, []string{"label"}),
		degraded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "degraded_turns_total",
			Help:      "Turns that fell back to a default, by signal.",
		}, []string{"signal"}),
		stage: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "language_stage",
			Help:      "Language stage after the latest turn (1-5).",
		}),
		wordsKnown: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "words_known",
			Help:      "Words the learner has been exposed to.",
		}),
		wordsMaster: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "words_mastered",
			Help:      "Words the learner has mastered.",
		}),
		sessions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_ended_total",
			Help:      "Ended sessions, by reason.",
		}, []string{"reason"}),
	}

	for _, c := range []prometheus.Collector{
		o.turns, o.turnDuration, o.emotions, o.degraded,
		o.stage, o.wordsKnown, o.wordsMaster, o.sessions,
	} {
		if err := o.registry.Register(c); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRegistrationFailed, err)
		}
	}

	return o, nil
}

func (o *Observer) ObserveTurn(step domain.TrajectoryStep, elapsed time.Duration) {
	o.turns.WithLabelValues(string(step.Decision.Action)).Inc()
	o.turnDuration.Observe(elapsed.Seconds())
	o.emotions.WithLabelValues(string(step.Emotion.Label)).Inc()
	for _, signal := range step.Degraded {
		o.degraded.WithLabelValues(string(signal)).Inc()
	}
	o.stage.Set(float64(step.Level.Stage))

	knowledge := domain.SnapshotFromEntries(step.Knowledge)
	o.wordsKnown.Set(float64(len(knowledge)))
	o.wordsMaster.Set(float64(knowledge.MasteredCount()))
}

func (o *Observer) ObserveEnd(summary domain.Summary) {
	reason := string(summary.EndReason)
	if reason == "" {
		reason = "unknown"
	}
	o.sessions.WithLabelValues(reason).Inc()
}

func (o *Observer) Registry() *prometheus.Registry {
	return o.registry
}

// WriteTextfile dumps the current values for the node_exporter textfile
// collector.
func (o *Observer) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, o.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
