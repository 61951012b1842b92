package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"bloggr/internal/models"
)

type relatedPostRepository struct {
	db *sqlx.DB
}

func NewRelatedPostRepository(db *sqlx.DB) RelatedPostRepository {
	return &relatedPostRepository{db: db}
}

func (r *relatedPostRepository) ListRelated(ctx context.Context, postID string) ([]models.Post, error) {
	query := `
		SELECT p.* FROM blog_posts p
		JOIN related_posts rp ON rp.related_post_id = p.id
		WHERE rp.post_id = $1
		ORDER BY p.created_at DESC
	`

	posts := []models.Post{}
	if err := r.db.SelectContext(ctx, &posts, query, postID); err != nil {
		return nil, fmt.Errorf("failed to list related posts: %w", err)
	}

	return posts, nil
}

func (r *relatedPostRepository) AddRelated(ctx context.Context, postID, relatedPostID string) error {
	query := `INSERT INTO related_posts (post_id, related_post_id) VALUES ($1, $2)`

	if _, err := r.db.ExecContext(ctx, query, postID, relatedPostID); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("relation %s -> %s: %w", postID, relatedPostID, ErrDuplicate)
		}
		return fmt.Errorf("failed to add related post: %w", err)
	}

	return nil
}

func (r *relatedPostRepository) RemoveRelated(ctx context.Context, postID, relatedPostID string) error {
	query := `DELETE FROM related_posts WHERE post_id = $1 AND related_post_id = $2`

	result, err := r.db.ExecContext(ctx, query, postID, relatedPostID)
	if err != nil {
		return fmt.Errorf("failed to remove related post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("relation %s -> %s: %w", postID, relatedPostID, ErrNotFound)
	}

	return nil
}
