package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"bloggr/internal/models"
)

type tagRepository struct {
	db *sqlx.DB
}

func NewTagRepository(db *sqlx.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) Create(ctx context.Context, tag *models.Tag) error {
	if tag.ID == "" {
		tag.ID = uuid.New().String()
	}
	tag.CreatedAt = time.Now()

	query := `
		INSERT INTO tags (id, name, slug, created_at)
		VALUES (:id, :name, :slug, :created_at)
	`

	if _, err := r.db.NamedExecContext(ctx, query, tag); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("tag name or slug: %w", ErrDuplicate)
		}
		return fmt.Errorf("failed to create tag: %w", err)
	}

	return nil
}

func (r *tagRepository) GetByID(ctx context.Context, tagID string) (*models.Tag, error) {
	var tag models.Tag

	query := `SELECT * FROM tags WHERE id = $1`

	err := r.db.GetContext(ctx, &tag, query, tagID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("tag %s: %w", tagID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}

	return &tag, nil
}

func (r *tagRepository) List(ctx context.Context) ([]models.Tag, error) {
	query := `SELECT * FROM tags ORDER BY name`

	tags := []models.Tag{}
	if err := r.db.SelectContext(ctx, &tags, query); err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}

	return tags, nil
}

func (r *tagRepository) CountByIDs(ctx context.Context, tagIDs []string) (int, error) {
	if len(tagIDs) == 0 {
		return 0, nil
	}

	query := `SELECT COUNT(*) FROM tags WHERE id = ANY($1)`

	var count int
	if err := r.db.GetContext(ctx, &count, query, pq.Array(tagIDs)); err != nil {
		return 0, fmt.Errorf("failed to count tags: %w", err)
	}

	return count, nil
}

func (r *tagRepository) Delete(ctx context.Context, tagID string) error {
	query := `DELETE FROM tags WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, tagID)
	if err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("tag %s: %w", tagID, ErrNotFound)
	}

	return nil
}
