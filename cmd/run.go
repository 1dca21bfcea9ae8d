package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/codearena/internal/app"
	"github.com/abhisek/codearena/internal/builtin"
	"github.com/abhisek/codearena/internal/challenge"
	"github.com/abhisek/codearena/internal/coach"
	"github.com/abhisek/codearena/internal/config"
	"github.com/abhisek/codearena/internal/engine"
	"github.com/abhisek/codearena/internal/evaluator"
	"github.com/abhisek/codearena/internal/judge"
	"github.com/abhisek/codearena/internal/llm"
	"github.com/abhisek/codearena/internal/logging"
	"github.com/abhisek/codearena/internal/pipeline"
	"github.com/abhisek/codearena/internal/screens/home"
	"github.com/abhisek/codearena/internal/store"
)

// appEnv is everything a command needs once configuration is resolved.
type appEnv struct {
	cfg      *config.Config
	logger   *slog.Logger
	eval     evaluator.Evaluator
	registry *judge.Registry
	engine   *engine.Engine
	progress store.ProgressStore
	events   store.EventRepo // nil with the file backend
	closers  []io.Closer
}

func (e *appEnv) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		e.closers[i].Close()
	}
}

// openEnv resolves configuration, opens the log and progress store, loads
// every challenge and the saved progress.
func openEnv(cmd *cobra.Command) (*appEnv, error) {
	ctx := cmd.Context()

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}

	env := &appEnv{cfg: cfg}
	logger, logFile, err := logging.Open(cfg.LogFile(), cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	env.logger = logger
	env.closers = append(env.closers, logFile)

	var ps store.ProgressStore
	switch cfg.Store {
	case config.StoreSQLite:
		st, err := store.Open(cfg.DatabasePath())
		if err != nil {
			env.Close()
			return nil, fmt.Errorf("open store: %w", err)
		}
		env.closers = append(env.closers, st)
		ps = st.ProgressRepo()
		env.events = st.EventRepo()
	default:
		ps = store.NewFileStore(cfg.ProgressFile())
	}

	env.eval = evaluator.NewStarlark(cfg.ExecTimeout, cfg.MaxSteps)
	env.registry, err = loadRegistry(cfg)
	if err != nil {
		env.Close()
		return nil, err
	}

	opts := []engine.Option{engine.WithLogger(logger)}
	if env.events != nil {
		opts = append(opts, engine.WithEvents(env.events))
	}
	env.progress = ps
	env.engine = engine.New(ps, opts...)

	chs, err := env.challenges(ctx)
	if err != nil {
		env.Close()
		return nil, err
	}
	for _, ch := range chs {
		if err := env.engine.Add(ch); err != nil {
			if errors.Is(err, engine.ErrDuplicateChallenge) {
				logger.Warn("skipping challenge", "id", ch.ID, "error", err)
				continue
			}
			env.Close()
			return nil, err
		}
	}
	if err := env.engine.Load(ctx); err != nil {
		env.Close()
		return nil, err
	}

	logger.Info("code arena ready",
		"store", cfg.Store, "problems", cfg.ProblemsDir, "challenges", len(env.engine.All()))
	return env, nil
}

// loadRegistry returns the built-in exercises with the configured file
// merged over them.
func loadRegistry(cfg *config.Config) (*judge.Registry, error) {
	reg, err := judge.DefaultRegistry()
	if err != nil {
		return nil, err
	}
	if cfg.ExercisesFile != "" {
		extra, err := judge.LoadRegistryFile(cfg.ExercisesFile)
		if err != nil {
			return nil, err
		}
		reg.Merge(extra)
	}
	return reg, nil
}

func strategyFor(cfg *config.Config) judge.Strategy {
	if cfg.NameOnly {
		return judge.StrategyName //nolint:staticcheck
	}
	return judge.StrategyNameThenArity
}

func (e *appEnv) parser() *pipeline.Parser {
	return &pipeline.Parser{
		Dir:       e.cfg.ProblemsDir,
		Evaluator: e.eval,
		Registry:  e.registry,
		Strategy:  strategyFor(e.cfg),
		Logger:    e.logger,
	}
}

// challenges derives challenges from the problems directory and appends
// the built-in ones.
func (e *appEnv) challenges(ctx context.Context) ([]*challenge.Challenge, error) {
	derived, err := e.parser().ParseDir(ctx)
	if err != nil {
		return nil, err
	}
	return append(derived, builtin.Challenges(e.eval)...), nil
}

// newCoach builds the coach, with an LLM when one is configured.
func (e *appEnv) newCoach(ctx context.Context) *coach.Service {
	var provider llm.Provider
	if llmCfg, ok := llm.ConfigFromEnv(); ok {
		p, err := llm.NewProvider(ctx, llmCfg, e.events, e.logger)
		if err != nil {
			fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
			fmt.Fprintln(os.Stderr, "AI coach reviews will be unavailable.")
		} else {
			provider = p
		}
	}
	return coach.NewService(provider, coach.DefaultConfig())
}

// runApp opens the environment and launches the TUI.
func runApp(cmd *cobra.Command) error {
	env, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	return app.Run(home.Deps{
		Engine: env.engine,
		Coach:  env.newCoach(cmd.Context()),
		Events: env.events,
	})
}
