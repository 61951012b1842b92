package service

import (
	"bloggr/internal/config"
	"bloggr/internal/events"
	"bloggr/internal/repository"
	"bloggr/internal/sanitizer"
	"bloggr/internal/storage"
)

type Service struct {
	Auth    AuthService
	User    UserService
	Post    PostService
	Comment CommentService
}

func NewService(rep *repository.Repository, cfg *config.Config, store storage.Storage, eventManager *events.Manager) *Service {
	clean := sanitizer.NewSanitizer()

	return &Service{
		Auth:    NewAuthService(rep.User, cfg),
		User:    NewUserService(rep.User, store, cfg),
		Post:    NewPostService(rep.Post, rep.Tag, clean, eventManager),
		Comment: NewCommentService(rep.Comment, rep.Post, clean, eventManager),
	}
}
