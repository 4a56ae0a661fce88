package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/bnema/sparky/internal/adapters/metrics"
	"github.com/bnema/sparky/internal/adapters/telemetry"
	"github.com/bnema/sparky/internal/adapters/trajectory/jsonl"
	"github.com/bnema/sparky/internal/application"
	"github.com/bnema/sparky/internal/domain"
	"github.com/bnema/sparky/internal/ports"
	"github.com/bnema/sparky/internal/version"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	greeting = "Hi there! I'm Sparky, a little dragon from Shining Valley! 🐉✨ What's your name, friend?"
	chatHelp = `Talk to Sparky in English, Chinese, or pinyin.
  /summary  show how the session is going
  /help     show this help
  /quit     say goodbye (also /exit or Ctrl-D)`
)

type chatOptions struct {
	sessionID     string
	maxTurns      int
	timeBudget    time.Duration
	transcriptDir string
}

func newChatCmd(app *app) *cobra.Command {
	var opts chatOptions

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start a tutoring session with Sparky",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := app.settings.Config
			if cmd.Flags().Changed("max-turns") {
				cfg.Session.MaxTurns = opts.maxTurns
			}
			if cmd.Flags().Changed("time-budget") {
				cfg.Session.TimeBudget = opts.timeBudget
			}
			if opts.transcriptDir == "" {
				opts.transcriptDir = app.settings.Transcripts.Dir
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runChat(ctx, cmd, app, cfg, opts)
		},
	}

	cmd.Flags().StringVar(&opts.sessionID, "session-id", "", "Session ID (default: random UUID)")
	cmd.Flags().IntVar(&opts.maxTurns, "max-turns", 0, "End after this many turns (0: no limit)")
	cmd.Flags().DurationVar(&opts.timeBudget, "time-budget", 0, "End once the session has run this long (0: no limit)")
	cmd.Flags().StringVar(&opts.transcriptDir, "transcript-dir", "", "Directory for session transcripts")

	return cmd
}

func runChat(ctx context.Context, cmd *cobra.Command, app *app, cfg application.Config, opts chatOptions) error {
	out := cmd.OutOrStdout()
	logger := app.logger
	defer func() { _ = logger.Sync() }()

	catalog, err := app.loadCatalog(ctx)
	if err != nil {
		return err
	}
	classifier, err := app.newClassifier(ctx)
	if err != nil {
		return fmt.Errorf("wire emotion classifier: %w", err)
	}
	generator, err := app.newGenerator(ctx)
	if err != nil {
		return fmt.Errorf("wire text generator: %w", err)
	}

	shutdownTracing, err := telemetry.Init(telemetry.Config{
		Exporter:       app.settings.Tracing.Exporter,
		Path:           app.settings.Tracing.Path,
		ServiceVersion: version.Version,
	})
	if err != nil {
		return fmt.Errorf("wire tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.WithoutCancel(ctx)); err != nil {
			logger.Warn("shutdown tracing", zap.Error(err))
		}
	}()

	var observer ports.TurnObserver = ports.NopObserver{}
	var metricsObserver *metrics.Observer
	if app.settings.Metrics.Textfile != "" {
		metricsObserver, err = metrics.NewObserver()
		if err != nil {
			return fmt.Errorf("wire metrics: %w", err)
		}
		observer = metricsObserver
	}

	id := opts.sessionID
	if id == "" {
		id = uuid.NewString()
	}
	sink, err := jsonl.NewSink(opts.transcriptDir, id)
	if err != nil {
		return err
	}

	session, err := application.NewSession(application.SessionDeps{
		ID:         id,
		Classifier: classifier,
		Generator:  generator,
		Catalog:    catalog,
		Sink:       sink,
		Observer:   observer,
		Clock:      app.clock,
		Logger:     logger,
	}, cfg)
	if err != nil {
		_ = sink.Close()
		return err
	}
	if err := session.Start(ctx); err != nil {
		return err
	}

	reader, err := newChatReader(cmd, app, filepath.Join(filepath.Dir(app.settings.Transcripts.Dir), "history"))
	if err != nil {
		_, _ = session.End(ctx, domain.EndLearnerExit)
		return err
	}
	defer reader.Close()

	fmt.Fprintln(out, "sparky> "+greeting)

	loopErr := chatLoop(ctx, cmd, app, session, reader)

	summary, endErr := session.End(context.WithoutCancel(ctx), endReasonFor(ctx, loopErr))
	endErr = withoutSessionEnded(endErr)

	rendered, err := app.summaryRender(summary)
	if err != nil {
		return fmt.Errorf("render summary: %w", err)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, rendered)
	fmt.Fprintf(out, "transcript: %s\n", sink.Path())

	if metricsObserver != nil {
		if err := metricsObserver.WriteTextfile(app.settings.Metrics.Textfile); err != nil {
			logger.Warn("write metrics", zap.Error(err))
		}
	}

	if loopErr != nil && !isLoopExit(loopErr) {
		return loopErr
	}
	return endErr
}

func newChatReader(cmd *cobra.Command, app *app, historyFile string) (lineReader, error) {
	if cmd.InOrStdin() == os.Stdin && app.interactiveTTY() {
		reader, err := newPromptReader("you> ", historyFile)
		if err != nil {
			return nil, fmt.Errorf("open prompt: %w", err)
		}
		return reader, nil
	}
	return newScanReader(cmd.InOrStdin()), nil
}

var errLearnerExit = errors.New("learner left")

func chatLoop(ctx context.Context, cmd *cobra.Command, app *app, session *application.Session, reader lineReader) error {
	out := cmd.OutOrStdout()

	for {
		line, err := reader.ReadLine(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return errLearnerExit
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch strings.ToLower(line) {
		case "/quit", "/exit":
			return errLearnerExit
		case "/help":
			fmt.Fprintln(out, chatHelp)
			continue
		case "/summary":
			rendered, err := app.summaryRender(session.Summary())
			if err != nil {
				return fmt.Errorf("render summary: %w", err)
			}
			fmt.Fprintln(out, rendered)
			continue
		}
		if strings.HasPrefix(line, "/") {
			fmt.Fprintf(out, "unknown command %s (try /help)\n", line)
			continue
		}

		// ctx only ends the session between turns.
		result, err := submitTurn(context.WithoutCancel(ctx), cmd, app, session, line)
		if errors.Is(err, domain.ErrSessionEnded) {
			return nil
		}
		if err != nil {
			return err
		}

		fmt.Fprintln(out, "sparky> "+result.Reply())
		if result.Ended {
			return nil
		}
	}
}

func submitTurn(ctx context.Context, cmd *cobra.Command, app *app, session *application.Session, line string) (application.TurnResult, error) {
	var result application.TurnResult
	run := func(ctx context.Context) error {
		var err error
		result, err = session.SubmitTurn(ctx, line)
		return err
	}

	if !outputIsTerminal(cmd.OutOrStdout()) {
		return result, run(ctx)
	}
	err := runTurnSpinner(ctx, cmd.OutOrStdout(), "Sparky is thinking...", run)
	return result, err
}

func outputIsTerminal(out io.Writer) bool {
	file, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}

func endReasonFor(ctx context.Context, loopErr error) domain.EndReason {
	if ctx.Err() != nil || errors.Is(loopErr, errInterrupted) || errors.Is(loopErr, context.Canceled) {
		return domain.EndCancelled
	}
	return domain.EndLearnerExit
}

func isLoopExit(err error) bool {
	return errors.Is(err, errLearnerExit) || errors.Is(err, errInterrupted) || errors.Is(err, context.Canceled)
}

// withoutSessionEnded drops ErrSessionEnded from err but keeps the flush
// errors joined to it.
func withoutSessionEnded(err error) error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var rest []error
		for _, e := range joined.Unwrap() {
			if !errors.Is(e, domain.ErrSessionEnded) {
				rest = append(rest, e)
			}
		}
		return errors.Join(rest...)
	}
	if errors.Is(err, domain.ErrSessionEnded) {
		return nil
	}
	return err
}
