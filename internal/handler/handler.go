package handlers

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	"bloggr/internal/config"
	"bloggr/internal/database"
	"bloggr/internal/events"
	"bloggr/internal/ratelimit"
	"bloggr/internal/repository"
	"bloggr/internal/service"
)

type Handlers struct {
	AuthService      service.AuthService
	UserService      service.UserService
	PostService      service.PostService
	CommentService   service.CommentService
	UserRepo         repository.UserRepository
	PostRepo         repository.PostRepository
	RelatedRepo      repository.RelatedPostRepository
	TagRepo          repository.TagRepository
	NotificationRepo repository.NotificationRepository
	EventManager     *events.Manager
	Limiter          *ratelimit.Limiter
	DB               *database.DB
	Cfg              *config.Config
	Validate         *validator.Validate
}

var slugPattern = regexp.MustCompile(`^[a-zA-Z0-9-_]+$`)

func NewValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterValidation("slugformat", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})
	return validate
}

func NewHandlers(repo *repository.Repository, services *service.Service, db *database.DB, eventManager *events.Manager, limiter *ratelimit.Limiter, cfg *config.Config) *Handlers {
	return &Handlers{
		AuthService:      services.Auth,
		UserService:      services.User,
		PostService:      services.Post,
		CommentService:   services.Comment,
		UserRepo:         repo.User,
		PostRepo:         repo.Post,
		RelatedRepo:      repo.Related,
		TagRepo:          repo.Tag,
		NotificationRepo: repo.Notification,
		EventManager:     eventManager,
		Limiter:          limiter,
		DB:               db,
		Cfg:              cfg,
		Validate:         NewValidator(),
	}
}
