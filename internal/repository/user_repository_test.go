package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"bloggr/internal/models"
)

func newUserRepoMock(t *testing.T) (UserRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewUserRepository(sqlxDB, bcrypt.MinCost)

	return repo, mock, func() { db.Close() }
}

func userColumns() []string {
	return []string{
		"id", "name", "email", "password_hash", "avatar_url", "bio", "status",
		"refresh_token", "refresh_token_expiry_time", "created_at", "updated_at",
	}
}

func TestUserRepository_CreateUser(t *testing.T) {
	repo, mock, closeDB := newUserRepoMock(t)
	defer closeDB()

	ctx := context.Background()

	t.Run("generates id and hashes the password", func(t *testing.T) {
		user := &models.User{
			Name:  "Alice",
			Email: "alice@example.com",
		}

		mock.ExpectExec(`
			INSERT INTO users (id, name, email, password_hash, avatar_url, bio, status, refresh_token, refresh_token_expiry_time, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`).
			WithArgs(
				sqlmock.AnyArg(), // generated id
				"Alice",
				"alice@example.com",
				sqlmock.AnyArg(), // password hash
				nil,
				nil,
				models.UserStatusActive,
				"",
				nil,
				sqlmock.AnyArg(),
				sqlmock.AnyArg(),
			).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := repo.CreateUser(ctx, user, "password123")

		assert.NoError(t, err)
		assert.NotEmpty(t, user.ID)
		assert.NotEqual(t, "password123", user.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate email maps to ErrDuplicate", func(t *testing.T) {
		user := &models.User{
			Name:  "Alice",
			Email: "alice@example.com",
		}

		mock.ExpectExec(`
			INSERT INTO users (id, name, email, password_hash, avatar_url, bio, status, refresh_token, refresh_token_expiry_time, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`).
			WillReturnError(&pq.Error{Code: "23505"})

		err := repo.CreateUser(ctx, user, "password123")

		assert.ErrorIs(t, err, ErrDuplicate)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_GetUserByID(t *testing.T) {
	repo, mock, closeDB := newUserRepoMock(t)
	defer closeDB()

	ctx := context.Background()

	t.Run("returns the user", func(t *testing.T) {
		now := time.Now()

		mock.ExpectQuery(`SELECT * FROM users WHERE id = $1`).
			WithArgs("user-1").
			WillReturnRows(sqlmock.NewRows(userColumns()).
				AddRow("user-1", "Alice", "alice@example.com", "hash", nil, nil,
					models.UserStatusActive, "", nil, now, now))

		user, err := repo.GetUserByID(ctx, "user-1")

		require.NoError(t, err)
		assert.Equal(t, "user-1", user.ID)
		assert.Equal(t, "alice@example.com", user.Email)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing user maps to ErrNotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT * FROM users WHERE id = $1`).
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows(userColumns()))

		user, err := repo.GetUserByID(ctx, "missing")

		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_VerifyPassword(t *testing.T) {
	repo, mock, closeDB := newUserRepoMock(t)
	defer closeDB()

	ctx := context.Background()
	now := time.Now()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	require.NoError(t, err)

	t.Run("correct password", func(t *testing.T) {
		mock.ExpectQuery(`SELECT * FROM users WHERE email = $1`).
			WithArgs("alice@example.com").
			WillReturnRows(sqlmock.NewRows(userColumns()).
				AddRow("user-1", "Alice", "alice@example.com", string(hash), nil, nil,
					models.UserStatusActive, "", nil, now, now))

		user, err := repo.VerifyPassword(ctx, "alice@example.com", "correct-password")

		require.NoError(t, err)
		assert.Equal(t, "user-1", user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		mock.ExpectQuery(`SELECT * FROM users WHERE email = $1`).
			WithArgs("alice@example.com").
			WillReturnRows(sqlmock.NewRows(userColumns()).
				AddRow("user-1", "Alice", "alice@example.com", string(hash), nil, nil,
					models.UserStatusActive, "", nil, now, now))

		user, err := repo.VerifyPassword(ctx, "alice@example.com", "wrong")

		assert.Nil(t, user)
		assert.True(t, errors.Is(err, ErrWrongPassword))
	})
}

func TestUserRepository_UpdateProfile(t *testing.T) {
	repo, mock, closeDB := newUserRepoMock(t)
	defer closeDB()

	ctx := context.Background()

	t.Run("no rows updated maps to ErrNotFound", func(t *testing.T) {
		user := &models.User{ID: "missing", Name: "Alice", Email: "alice@example.com"}

		mock.ExpectExec(`
			UPDATE users
			SET name = ?, email = ?, avatar_url = ?, bio = ?, updated_at = CURRENT_TIMESTAMP
			WHERE id = ?
		`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateProfile(ctx, user)

		assert.ErrorIs(t, err, ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
