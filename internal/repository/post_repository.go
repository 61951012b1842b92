package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"bloggr/internal/models"
)

type postRepository struct {
	db *sqlx.DB
}

// PostFilter narrows the post listing. Published defaults to true when no
// filter is set, matching the public listing behavior.
type PostFilter struct {
	AuthorID  string
	Published *bool
	Limit     int
	Offset    int
	SortBy    string
	Order     string
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

// Create inserts the post and its tag links in one transaction, so a post
// never ends up persisted without the tags it was created with.
func (r *postRepository) Create(ctx context.Context, post *models.Post, tagIDs []string) error {
	if post.ID == "" {
		post.ID = uuid.New().String()
	}

	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO blog_posts (id, title, content, author_id, published, created_at, updated_at)
		VALUES (:id, :title, :content, :author_id, :published, :created_at, :updated_at)
	`

	if _, err := tx.NamedExecContext(ctx, query, post); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("post title %q: %w", post.Title, ErrDuplicate)
		}
		return fmt.Errorf("failed to create post: %w", err)
	}

	for _, tagID := range tagIDs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO post_tags (post_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			post.ID, tagID)
		if err != nil {
			return fmt.Errorf("failed to attach tag %s: %w", tagID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit post creation: %w", err)
	}

	return nil
}

func (r *postRepository) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	var post models.Post

	query := `SELECT * FROM blog_posts WHERE id = $1`

	err := r.db.GetContext(ctx, &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("post %s: %w", postID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return &post, nil
}

func (r *postRepository) List(ctx context.Context, filter PostFilter) ([]models.Post, error) {
	query := `SELECT * FROM blog_posts WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if filter.AuthorID != "" {
		query += fmt.Sprintf(" AND author_id = $%d", argPos)
		args = append(args, filter.AuthorID)
		argPos++
	}
	if filter.Published != nil {
		query += fmt.Sprintf(" AND published = $%d", argPos)
		args = append(args, *filter.Published)
		argPos++
	}

	sortBy := "created_at"
	if filter.SortBy == "updated_at" || filter.SortBy == "title" {
		sortBy = filter.SortBy
	}
	order := "DESC"
	if filter.Order == "asc" || filter.Order == "ASC" {
		order = "ASC"
	}
	query += fmt.Sprintf(" ORDER BY %s %s", sortBy, order)

	limit := filter.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, limit, offset)

	posts := []models.Post{}
	if err := r.db.SelectContext(ctx, &posts, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	return posts, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE blog_posts SET
			title = :title,
			content = :content,
			published = :published,
			updated_at = :updated_at
		WHERE id = :id AND author_id = :author_id
	`

	post.UpdatedAt = time.Now()

	result, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("post title %q: %w", post.Title, ErrDuplicate)
		}
		return fmt.Errorf("failed to update post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("post %s: %w", post.ID, ErrNotFound)
	}

	return nil
}

func (r *postRepository) Delete(ctx context.Context, postID string) error {
	// comments, tag links and related edges cascade at the storage layer
	query := `DELETE FROM blog_posts WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, postID)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("post %s: %w", postID, ErrNotFound)
	}

	return nil
}

func (r *postRepository) ListTags(ctx context.Context, postID string) ([]models.Tag, error) {
	query := `
		SELECT t.* FROM tags t
		JOIN post_tags pt ON pt.tag_id = t.id
		WHERE pt.post_id = $1
		ORDER BY t.name
	`

	tags := []models.Tag{}
	if err := r.db.SelectContext(ctx, &tags, query, postID); err != nil {
		return nil, fmt.Errorf("failed to list post tags: %w", err)
	}

	return tags, nil
}

func (r *postRepository) AddTag(ctx context.Context, postID, tagID string) error {
	query := `INSERT INTO post_tags (post_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`

	if _, err := r.db.ExecContext(ctx, query, postID, tagID); err != nil {
		return fmt.Errorf("failed to add tag to post: %w", err)
	}

	return nil
}

func (r *postRepository) RemoveTag(ctx context.Context, postID, tagID string) error {
	query := `DELETE FROM post_tags WHERE post_id = $1 AND tag_id = $2`

	if _, err := r.db.ExecContext(ctx, query, postID, tagID); err != nil {
		return fmt.Errorf("failed to remove tag from post: %w", err)
	}

	return nil
}

func (r *postRepository) ReplaceTags(ctx context.Context, postID string, tagIDs []string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM post_tags WHERE post_id = $1`, postID); err != nil {
		return fmt.Errorf("failed to clear post tags: %w", err)
	}

	for _, tagID := range tagIDs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO post_tags (post_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			postID, tagID)
		if err != nil {
			return fmt.Errorf("failed to attach tag %s: %w", tagID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit tag replacement: %w", err)
	}

	return nil
}
