package service

import (
	"context"
	"fmt"
	"io"

	"bloggr/internal/config"
	"bloggr/internal/models"
	"bloggr/internal/repository"
	"bloggr/internal/storage"
)

type RegisterRequest struct {
	Name     string
	Email    string
	Password string
}

type UpdateProfileRequest struct {
	Name      *string
	Email     *string
	AvatarURL *string
	Bio       *string
}

type UserService interface {
	Register(ctx context.Context, req RegisterRequest) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (*models.User, error)
	UploadAvatar(ctx context.Context, userID, fileName string, file io.Reader, size int64) (string, error)
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
}

type userService struct {
	userRepo repository.UserRepository
	storage  storage.Storage
	cfg      *config.Config
}

func NewUserService(userRepo repository.UserRepository, store storage.Storage, cfg *config.Config) UserService {
	return &userService{
		userRepo: userRepo,
		storage:  store,
		cfg:      cfg,
	}
}

func (s *userService) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	user := &models.User{
		Name:   req.Name,
		Email:  req.Email,
		Status: models.UserStatusActive,
	}

	// the unique index on email settles racing registrations
	if err := s.userRepo.CreateUser(ctx, user, req.Password); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.AvatarURL != nil {
		user.AvatarURL = req.AvatarURL
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *userService) UploadAvatar(ctx context.Context, userID, fileName string, file io.Reader, size int64) (string, error) {
	_, avatarURL, err := s.storage.UploadAvatar(ctx, userID, fileName, file, size)
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}

	if err := s.userRepo.UpdateAvatar(ctx, userID, avatarURL); err != nil {
		return "", err
	}

	return avatarURL, nil
}

func (s *userService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if err := s.userRepo.CheckPassword(ctx, userID, currentPassword); err != nil {
		return err
	}

	return s.userRepo.UpdatePassword(ctx, userID, newPassword)
}
