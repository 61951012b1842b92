package service

import (
	"context"
	"log"

	"bloggr/internal/events"
	"bloggr/internal/models"
	"bloggr/internal/repository"
	"bloggr/internal/sanitizer"
)

type CommentService interface {
	AddComment(ctx context.Context, postID, authorID, content string) (*models.Comment, error)
	ListComments(ctx context.Context, postID string, limit, offset int) ([]models.Comment, error)
}

type commentService struct {
	commentRepo  repository.CommentRepository
	postRepo     repository.PostRepository
	sanitizer    *sanitizer.Sanitizer
	eventManager *events.Manager
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository, clean *sanitizer.Sanitizer, eventManager *events.Manager) CommentService {
	return &commentService{
		commentRepo:  commentRepo,
		postRepo:     postRepo,
		sanitizer:    clean,
		eventManager: eventManager,
	}
}

func (s *commentService) AddComment(ctx context.Context, postID, authorID, content string) (*models.Comment, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:   post.ID,
		AuthorID: authorID,
		Content:  s.sanitizer.Sanitize(content),
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	if err := s.eventManager.Notify(events.NewEvent(events.EventNewComment, map[string]any{
		"postId":    post.ID,
		"commentId": comment.ID,
		"content":   comment.Content,
		"authorId":  authorID,
	}, authorID)); err != nil {
		log.Printf("event delivery failed: %v", err)
	}

	return comment, nil
}

func (s *commentService) ListComments(ctx context.Context, postID string, limit, offset int) ([]models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	return s.commentRepo.ListByPostID(ctx, postID, limit, offset)
}
