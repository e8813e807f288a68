package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/closer/internal/config"
	"github.com/abhisek/closer/internal/content"
	"github.com/abhisek/closer/internal/llm"
	"github.com/abhisek/closer/internal/logging"
	"github.com/abhisek/closer/internal/quota"
	"github.com/abhisek/closer/internal/screens/home"
	"github.com/abhisek/closer/internal/screens/play"
	"github.com/abhisek/closer/internal/session"
	"github.com/abhisek/closer/internal/spacedrep"
	"github.com/abhisek/closer/internal/store"
)

// env is the wired application shared by every command.
type env struct {
	cfg     *config.Config
	logger  *slog.Logger
	store   *store.Store
	sched   *spacedrep.Scheduler
	planner *session.Planner
	quota   *quota.Gate
}

// openEnv loads configuration, installs the logger and opens the store.
func openEnv(cmd *cobra.Command) (*env, error) {
	dbPath, _ := cmd.Flags().GetString("db")
	cfgFile, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(config.Options{ConfigFile: cfgFile, DBPath: dbPath})
	if err != nil {
		return nil, err
	}
	logger, err := logging.Setup(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, fmt.Errorf("setup logging: %w", err)
	}

	st, err := store.Open(store.Driver(cfg.Database.Driver), cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	logger.Debug("store opened", "driver", cfg.Database.Driver)

	sched := spacedrep.NewScheduler(spacedrep.NewModel(cfg.Balance.Retention), st.ReviewRepo())
	planner := session.NewPlanner(st.CardRepo(), st.AnswerRepo(), sched, cfg.Balance, nil)
	planner.Words = st.VocabularyRepo()
	return &env{
		cfg:     cfg,
		logger:  logger,
		store:   st,
		sched:   sched,
		planner: planner,
		quota:   quota.NewGate(st.PlayRepo(), cfg.Balance.Quota, time.Local),
	}, nil
}

func (e *env) Close() error {
	return e.store.Close()
}

func (e *env) learnerID() string {
	return e.cfg.Learner.ID
}

// seed fills an empty deck with the starter cards so a fresh install is
// playable.
func (e *env) seed(ctx context.Context) error {
	n, err := content.SeedIfEmpty(ctx, e.store.CardRepo(), time.Now())
	if err != nil {
		return fmt.Errorf("seed cards: %w", err)
	}
	if n > 0 {
		e.logger.Info("seeded starter deck", "cards", n)
	}
	return nil
}

// homeDeps wires the TUI. noQuota disables the free-play gate.
func (e *env) homeDeps(limit int, noQuota bool) home.Deps {
	gate := e.quota
	if noQuota {
		gate = nil
	}
	return home.Deps{
		Cards: e.store.CardRepo(),
		Runs:  e.store.RunRepo(),
		Play: play.Deps{
			LearnerID: e.learnerID(),
			Planner:   e.planner,
			Session: session.Deps{
				Balance:   e.cfg.Balance,
				Scheduler: e.sched,
				Answers:   e.store.AnswerRepo(),
				Runs:      e.store.RunRepo(),
				Logger:    e.logger,
			},
			Quota: gate,
			Limit: limit,
			Words: e.store.VocabularyRepo(),
		},
		RankingLimit: e.cfg.Balance.Ranking.DefaultLimit,
		Logger:       e.logger,
	}
}

// provider builds the configured LLM provider. When the configured vendor
// has no key, the vendors' own API key variables are tried.
func (e *env) provider(ctx context.Context) (llm.Provider, error) {
	cfg := e.cfg.LLM
	if err := cfg.Validate(); err != nil {
		discovered, ok := llm.DiscoverConfig(cfg)
		if !ok {
			return nil, err
		}
		cfg = discovered.WithModelOverride()
		e.logger.Info("using LLM provider from environment", "provider", cfg.Provider)
	}
	return llm.NewProvider(ctx, cfg, e.store.EventRepo(), e.logger)
}
