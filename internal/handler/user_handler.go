package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"bloggr/internal/middleware"
	"bloggr/internal/repository"
	"bloggr/internal/service"
)

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=100"`
}

type UpdateProfileRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=1,max=100"`
	Email     *string `json:"email" validate:"omitempty,email,max=255"`
	AvatarURL *string `json:"avatar_url" validate:"omitempty,url,max=255"`
	Bio       *string `json:"bio"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,max=100"`
}

// Register creates a new account. Guarded by the registration rate limiter;
// the response never carries the credential.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	if !h.Limiter.Allow(middleware.ClientAddress(r)) {
		WriteError(w, "Too many registration attempts. Please try again later.", http.StatusTooManyRequests)
		return
	}

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		writeValidationErrors(w, err)
		return
	}

	user, err := h.UserService.Register(r.Context(), service.RegisterRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, user, http.StatusCreated)
}

func (h *Handlers) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.UserFromContext(r.Context())
	if !ok {
		WriteError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	WriteJSON(w, principal, http.StatusOK)
}

func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]

	user, err := h.UserRepo.GetUserByID(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, user, http.StatusOK)
}

func (h *Handlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]

	principal, ok := middleware.UserFromContext(r.Context())
	if !ok {
		WriteError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	if principal.ID != userID {
		WriteError(w, "Forbidden: You can only update your own profile", http.StatusForbidden)
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		writeValidationErrors(w, err)
		return
	}

	user, err := h.UserService.UpdateProfile(r.Context(), userID, service.UpdateProfileRequest{
		Name:      req.Name,
		Email:     req.Email,
		AvatarURL: req.AvatarURL,
		Bio:       req.Bio,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, user, http.StatusOK)
}

// UpdateAvatar accepts a multipart image upload, stores it in object storage
// and saves the resulting URL on the profile.
func (h *Handlers) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]

	principal, ok := middleware.UserFromContext(r.Context())
	if !ok {
		WriteError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	if principal.ID != userID {
		WriteError(w, "Forbidden: You can only update your own avatar", http.StatusForbidden)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize)
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		WriteError(w, "Invalid multipart form or file too large", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		WriteError(w, "Avatar file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	avatarURL, err := h.UserService.UploadAvatar(r.Context(), userID, header.Filename, file, header.Size)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, map[string]string{"avatarUrl": avatarURL}, http.StatusOK)
}

func (h *Handlers) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]

	principal, ok := middleware.UserFromContext(r.Context())
	if !ok {
		WriteError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	if principal.ID != userID {
		WriteError(w, "Forbidden: You can only change your own password", http.StatusForbidden)
		return
	}

	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		writeValidationErrors(w, err)
		return
	}

	if err := h.UserService.ChangePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		if errors.Is(err, repository.ErrWrongPassword) {
			WriteError(w, "Current password is incorrect", http.StatusUnauthorized)
			return
		}
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, map[string]string{"message": "Password updated"}, http.StatusOK)
}
