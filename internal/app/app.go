package app

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/Reaishma/Automated-grading-app/internal/classroom"
	"github.com/Reaishma/Automated-grading-app/internal/config"
	"github.com/Reaishma/Automated-grading-app/internal/db"
	"github.com/Reaishma/Automated-grading-app/internal/grading"
	syncx "github.com/Reaishma/Automated-grading-app/internal/sync"
)

// App is the wired grading core shared by the binaries.
type App struct {
	Engine  *grading.Engine
	Service *classroom.Service
	Events  syncx.Log
	DB      *sql.DB // nil for the memory store
}

// Build selects the store, builds the engine from cfg.Grading and seeds
// sample data or the fixtures file when configured.
func Build(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	a := &App{Engine: NewEngine(cfg.Grading)}

	var store classroom.Store
	switch cfg.StoreDriver {
	case config.StoreMemory, "":
		store = classroom.NewInMemoryStore()
		a.Events = syncx.NewMemoryLog()
	case config.StoreSQLite, config.StorePostgres:
		dbh, err := db.Open(ctx, db.Driver(cfg.StoreDriver), cfg.DBDSN)
		if err != nil {
			return nil, fmt.Errorf("db open: %w", err)
		}
		a.DB = dbh
		store = classroom.NewSQLStore(dbh, string(cfg.StoreDriver))
		a.Events = syncx.NewEventRepo(dbh)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}

	a.Service = classroom.NewService(store, a.Engine,
		classroom.WithEvents(a.Events),
		classroom.WithLogger(log.Named("grading")))

	if err := a.seed(ctx, cfg, log); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) seed(ctx context.Context, cfg config.Config, log *zap.Logger) error {
	if cfg.FixturesFile == "" && !cfg.SeedSample {
		return nil
	}
	empty, err := a.empty(ctx)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	if !empty {
		log.Info("store already has data; seeding skipped")
		return nil
	}
	switch {
	case cfg.FixturesFile != "":
		f, err := classroom.LoadFixture(cfg.FixturesFile)
		if err != nil {
			return err
		}
		if err := a.Service.Seed(ctx, f); err != nil {
			return err
		}
		log.Info("fixtures loaded", zap.String("file", cfg.FixturesFile),
			zap.Int("submissions", len(f.Submissions)))
	case cfg.SeedSample:
		if err := a.Service.Seed(ctx, classroom.SampleFixture()); err != nil {
			return err
		}
		log.Info("sample data loaded")
	}
	return nil
}

// empty reports whether the store holds no records at all.
func (a *App) empty(ctx context.Context) (bool, error) {
	store := a.Service.Store()
	students, err := store.ListStudents(ctx)
	if err != nil {
		return false, err
	}
	assignments, err := store.ListAssignments(ctx)
	if err != nil {
		return false, err
	}
	subs, err := store.ListSubmissions(ctx)
	if err != nil {
		return false, err
	}
	return len(students) == 0 && len(assignments) == 0 && len(subs) == 0, nil
}

// Ready pings the database when there is one.
func (a *App) Ready(ctx context.Context) error {
	if a.DB == nil {
		return nil
	}
	return a.DB.PingContext(ctx)
}

func (a *App) Close() error {
	if a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

// NewEngine maps grading configuration onto engine options. Zero values keep
// the engine defaults.
func NewEngine(gc config.GradingConfig) *grading.Engine {
	var opts []grading.Option
	if len(gc.Keywords) > 0 {
		opts = append(opts, grading.WithKeywords(gc.Keywords))
	}
	if gc.LengthSaturation > 0 {
		opts = append(opts, grading.WithLengthSaturation(gc.LengthSaturation))
	}
	if gc.IdealSentenceLength > 0 {
		opts = append(opts, grading.WithIdealSentenceLength(gc.IdealSentenceLength))
	}
	return grading.NewEngine(opts...)
}
