package service

import (
	"context"
	"errors"
	"log"

	"bloggr/internal/events"
	"bloggr/internal/models"
	"bloggr/internal/repository"
	"bloggr/internal/sanitizer"
)

// ErrUnknownTag signals that a tag id in the request does not exist.
var ErrUnknownTag = errors.New("one or more tags do not exist")

type CreatePostRequest struct {
	AuthorID  string
	Title     string
	Content   string
	Published bool
	TagIDs    []string
}

type UpdatePostRequest struct {
	Title     *string
	Content   *string
	Published *bool
	TagIDs    []string
}

type PostService interface {
	CreatePost(ctx context.Context, req CreatePostRequest) (*models.Post, error)
	UpdatePost(ctx context.Context, post *models.Post, req UpdatePostRequest) (*models.Post, error)
	DeletePost(ctx context.Context, post *models.Post, actorID string) error
}

type postService struct {
	postRepo     repository.PostRepository
	tagRepo      repository.TagRepository
	sanitizer    *sanitizer.Sanitizer
	eventManager *events.Manager
}

func NewPostService(postRepo repository.PostRepository, tagRepo repository.TagRepository, clean *sanitizer.Sanitizer, eventManager *events.Manager) PostService {
	return &postService{
		postRepo:     postRepo,
		tagRepo:      tagRepo,
		sanitizer:    clean,
		eventManager: eventManager,
	}
}

// publish is best-effort: the repository write already committed, so a
// failing observer only gets logged, never rolls anything back.
func (p *postService) publish(event events.Event) {
	if err := p.eventManager.Notify(event); err != nil {
		log.Printf("event delivery failed: %v", err)
	}
}

func (p *postService) checkTags(ctx context.Context, tagIDs []string) ([]string, error) {
	unique := dedupe(tagIDs)
	if len(unique) == 0 {
		return nil, nil
	}

	count, err := p.tagRepo.CountByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}
	if count != len(unique) {
		return nil, ErrUnknownTag
	}

	return unique, nil
}

func (p *postService) CreatePost(ctx context.Context, req CreatePostRequest) (*models.Post, error) {
	tagIDs, err := p.checkTags(ctx, req.TagIDs)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		AuthorID:  req.AuthorID,
		Title:     req.Title,
		Content:   p.sanitizer.Sanitize(req.Content),
		Published: req.Published,
	}

	if err := p.postRepo.Create(ctx, post, tagIDs); err != nil {
		return nil, err
	}

	p.publish(events.NewEvent(events.EventPostCreated, map[string]any{
		"postId":   post.ID,
		"title":    post.Title,
		"authorId": post.AuthorID,
		"status":   "created",
	}, post.AuthorID))

	return post, nil
}

func (p *postService) UpdatePost(ctx context.Context, post *models.Post, req UpdatePostRequest) (*models.Post, error) {
	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Content != nil {
		post.Content = p.sanitizer.Sanitize(*req.Content)
	}
	if req.Published != nil {
		post.Published = *req.Published
	}

	if req.TagIDs != nil {
		tagIDs, err := p.checkTags(ctx, req.TagIDs)
		if err != nil {
			return nil, err
		}
		if err := p.postRepo.ReplaceTags(ctx, post.ID, tagIDs); err != nil {
			return nil, err
		}
	}

	if err := p.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	p.publish(events.NewEvent(events.EventPostUpdated, map[string]any{
		"postId":   post.ID,
		"title":    post.Title,
		"authorId": post.AuthorID,
		"status":   "updated",
	}, post.AuthorID))

	return post, nil
}

func (p *postService) DeletePost(ctx context.Context, post *models.Post, actorID string) error {
	if err := p.postRepo.Delete(ctx, post.ID); err != nil {
		return err
	}

	p.publish(events.NewEvent(events.EventPostDeleted, map[string]any{
		"postId":   post.ID,
		"title":    post.Title,
		"authorId": post.AuthorID,
		"status":   "deleted",
	}, actorID))

	return nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
