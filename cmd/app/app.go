package app

import (
	"log"

	"bloggr/internal/config"
	"bloggr/internal/database"
	"bloggr/internal/events"
	"bloggr/internal/ratelimit"
	"bloggr/internal/repository"
	"bloggr/internal/service"
	"bloggr/internal/storage"
)

type App struct {
	DB           *database.DB
	Repo         *repository.Repository
	Services     *service.Service
	EventManager *events.Manager
	Limiter      *ratelimit.Limiter
}

func New(cfg *config.Config) *App {
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	minioClient, err := storage.NewMinIOClient(cfg)
	if err != nil {
		log.Fatalf("failed to initialize MinIO: %v", err)
	}

	repo := repository.NewRepository(db.DB, cfg.BcryptCost)

	// single event manager for the whole process; observers are attached
	// once here, not per request
	eventManager := events.NewManager()
	eventManager.Attach(events.NewLogObserver())
	eventManager.Attach(events.NewNotificationObserver(repo.Notification))

	limiter := ratelimit.NewLimiter(ratelimit.NewMemoryStore(), cfg.RateLimit.Window, cfg.RateLimit.MaxAttempts)

	services := service.NewService(repo, cfg, minioClient, eventManager)

	return &App{
		DB:           db,
		Repo:         repo,
		Services:     services,
		EventManager: eventManager,
		Limiter:      limiter,
	}
}
