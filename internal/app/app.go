// Package app wires repositories, services and handlers for the API, the
// reminder worker and the admin CLI.
package app

import (
	"context"
	"fmt"

	"medsaver/internal/auth"
	"medsaver/internal/config"
	"medsaver/internal/dashboard"
	"medsaver/internal/db"
	"medsaver/internal/history"
	"medsaver/internal/medicine"
	"medsaver/internal/ocr"
	"medsaver/internal/profile"
	"medsaver/internal/reminder"
	"medsaver/internal/router"
	"medsaver/internal/scan"
	"medsaver/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Repos is the persistence layer behind every service.
type Repos struct {
	Users     auth.UserRepository
	Profiles  profile.Repository
	Scans     scan.Repository
	Catalogue medicine.CatalogueRepository
	Searches  medicine.SearchRepository
	Favorites medicine.FavoriteRepository
	Reminders reminder.Repository
}

func PostgresRepos(pool *pgxpool.Pool) Repos {
	return Repos{
		Users:     auth.NewPostgresUserRepository(pool),
		Profiles:  profile.NewPostgresRepository(pool),
		Scans:     scan.NewPostgresRepository(pool),
		Catalogue: medicine.NewPostgresCatalogue(pool),
		Searches:  medicine.NewPostgresSearchRepository(pool),
		Favorites: medicine.NewPostgresFavoriteRepository(pool),
		Reminders: reminder.NewPostgresRepository(pool),
	}
}

func MemoryRepos() Repos {
	return Repos{
		Users:     auth.NewInMemoryUserRepository(),
		Profiles:  profile.NewInMemoryRepository(),
		Scans:     scan.NewInMemoryRepository(),
		Catalogue: medicine.NewInMemoryCatalogue(),
		Searches:  medicine.NewInMemorySearchRepository(),
		Favorites: medicine.NewInMemoryFavoriteRepository(),
		Reminders: reminder.NewInMemoryRepository(),
	}
}

// App holds the wired services.
type App struct {
	Config *config.Config
	Log    *zap.Logger

	Tokens     *auth.Tokens
	Auth       *auth.Service
	Profiles   *profile.Service
	Scans      *scan.Service
	Medicines  *medicine.Service
	Reminders  *reminder.Service
	History    *history.Service
	Dashboard  *dashboard.Service
	Dispatcher *reminder.Dispatcher

	pool *pgxpool.Pool
}

// Open connects to Postgres and object storage and wires everything.
func Open(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	pool, err := db.ConnectPostgres(ctx, cfg.DatabaseURL, log)
	if err != nil {
		return nil, err
	}

	store, err := NewStorage(ctx, cfg)
	if err != nil {
		pool.Close()
		return nil, err
	}

	a, err := New(cfg, log, PostgresRepos(pool), store)
	if err != nil {
		pool.Close()
		return nil, err
	}
	a.pool = pool
	return a, nil
}

// NewStorage returns the configured object store.
func NewStorage(ctx context.Context, cfg *config.Config) (storage.Storage, error) {
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		return storage.NewMemoryStore(cfg.Storage.Bucket), nil
	case config.StorageR2:
		client, err := storage.NewR2Client(ctx, storage.R2Options{
			Endpoint:      cfg.Storage.Endpoint,
			AccessKey:     cfg.Storage.AccessKey,
			SecretKey:     cfg.Storage.SecretKey,
			Bucket:        cfg.Storage.Bucket,
			PublicBaseURL: cfg.Storage.PublicBaseURL,
		})
		if err != nil {
			return nil, fmt.Errorf("r2 init failed: %w", err)
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// New wires services over repos and store. Order matters: auth needs
// profiles, history needs scans, medicines and reminders.
func New(cfg *config.Config, log *zap.Logger, repos Repos, store storage.Storage) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	recognizer, err := ocr.New(cfg.OCR.Engine, cfg.OCR.TesseractPath, cfg.Storage.PublicBaseURL, log.Named("ocr"))
	if err != nil {
		return nil, err
	}

	profiles := profile.NewService(repos.Profiles, store, log.Named("profile"))
	scans := scan.NewService(repos.Scans, store, recognizer, log.Named("scan"))
	medicines := medicine.NewService(repos.Catalogue, repos.Searches, repos.Favorites, log.Named("medicine"))
	reminders := reminder.NewService(repos.Reminders, loc, log.Named("reminder"))
	hist := history.NewService(scans, medicines, reminders)

	dispatcher := reminder.NewDispatcher(
		repos.Reminders,
		repos.Profiles,
		reminder.NewLogNotifier(log.Named("notifier")),
		loc,
		log.Named("dispatch"),
	)

	return &App{
		Config:     cfg,
		Log:        log,
		Tokens:     auth.NewTokens(cfg.JWTSecret),
		Auth:       auth.NewService(repos.Users, profiles, log.Named("auth")),
		Profiles:   profiles,
		Scans:      scans,
		Medicines:  medicines,
		Reminders:  reminders,
		History:    hist,
		Dashboard:  dashboard.NewService(profiles, hist, reminders),
		Dispatcher: dispatcher,
	}, nil
}

// Router builds the HTTP engine over the wired services.
func (a *App) Router() *gin.Engine {
	return router.New(router.Deps{
		Log:         a.Log.Named("http"),
		CORSOrigins: a.Config.CORSOrigins,
		Tokens:      a.Tokens,

		Auth:          auth.NewHandler(a.Auth, a.Tokens),
		Profile:       profile.NewHandler(a.Profiles),
		Scan:          scan.NewHandler(a.Scans),
		Medicine:      medicine.NewHandler(a.Medicines),
		MedicineAdmin: medicine.NewAdminHandler(a.Medicines),
		Reminder:      reminder.NewHandler(a.Reminders),
		ReminderAdmin: reminder.NewAdminHandler(a.Dispatcher),
		History:       history.NewHandler(a.History),
		Dashboard:     dashboard.NewHandler(a.Dashboard),
	})
}

// Worker returns the reminder ticker loop.
func (a *App) Worker() (*reminder.Worker, error) {
	interval, err := a.Config.ReminderInterval()
	if err != nil {
		return nil, err
	}
	return reminder.NewWorker(a.Dispatcher, interval, a.Log.Named("worker")), nil
}

func (a *App) Close() {
	if a.pool != nil {
		a.pool.Close()
	}
}
