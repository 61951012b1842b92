package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"bloggr/internal/models"
)

// Sentinel errors handlers map onto HTTP statuses (404 and 409).
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate unique field")
)

// isUniqueViolation reports whether err is a Postgres unique constraint error.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, user *models.User) error
	UpdateAvatar(ctx context.Context, userID, avatarURL string) error
	UpdatePassword(ctx context.Context, userID, newPassword string) error
	VerifyPassword(ctx context.Context, email, password string) (*models.User, error)
	CheckPassword(ctx context.Context, userID, password string) error
	UpdateRefreshToken(ctx context.Context, userID, refreshToken string, expiryTime time.Time) error
	GetUserByRefreshToken(ctx context.Context, refreshToken string) (*models.User, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post, tagIDs []string) error
	GetByID(ctx context.Context, postID string) (*models.Post, error)
	List(ctx context.Context, filter PostFilter) ([]models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, postID string) error
	ListTags(ctx context.Context, postID string) ([]models.Tag, error)
	AddTag(ctx context.Context, postID, tagID string) error
	RemoveTag(ctx context.Context, postID, tagID string) error
	ReplaceTags(ctx context.Context, postID string, tagIDs []string) error
}

type RelatedPostRepository interface {
	ListRelated(ctx context.Context, postID string) ([]models.Post, error)
	AddRelated(ctx context.Context, postID, relatedPostID string) error
	RemoveRelated(ctx context.Context, postID, relatedPostID string) error
}

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	ListByPostID(ctx context.Context, postID string, limit, offset int) ([]models.Comment, error)
}

type TagRepository interface {
	Create(ctx context.Context, tag *models.Tag) error
	GetByID(ctx context.Context, tagID string) (*models.Tag, error)
	List(ctx context.Context) ([]models.Tag, error)
	CountByIDs(ctx context.Context, tagIDs []string) (int, error)
	Delete(ctx context.Context, tagID string) error
}

type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	ListByUserID(ctx context.Context, userID string) ([]models.Notification, error)
}

type Repository struct {
	User         UserRepository
	Post         PostRepository
	Related      RelatedPostRepository
	Comment      CommentRepository
	Tag          TagRepository
	Notification NotificationRepository
}

func NewRepository(db *sqlx.DB, bcryptCost int) *Repository {
	return &Repository{
		User:         NewUserRepository(db, bcryptCost),
		Post:         NewPostRepository(db),
		Related:      NewRelatedPostRepository(db),
		Comment:      NewCommentRepository(db),
		Tag:          NewTagRepository(db),
		Notification: NewNotificationRepository(db),
	}
}
