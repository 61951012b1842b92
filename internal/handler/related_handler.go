package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"bloggr/internal/models"
	"bloggr/internal/repository"
)

type AddRelatedRequest struct {
	RelatedPostID string `json:"related_post_id" validate:"required,uuid4"`
}

func (h *Handlers) ListRelatedPosts(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["post_id"]

	if _, err := h.PostRepo.GetByID(r.Context(), postID); err != nil {
		handleServiceError(w, err)
		return
	}

	related, err := h.RelatedRepo.ListRelated(r.Context(), postID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, related, http.StatusOK)
}

func (h *Handlers) AddRelatedPost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["post_id"]

	var req AddRelatedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		writeValidationErrors(w, err)
		return
	}

	// self-relation is rejected before anything touches the store
	if req.RelatedPostID == postID {
		WriteError(w, "A post cannot be related to itself", http.StatusBadRequest)
		return
	}

	post := h.loadOwnPost(w, r, postID)
	if post == nil {
		return
	}

	if _, err := h.PostRepo.GetByID(r.Context(), req.RelatedPostID); err != nil {
		handleServiceError(w, err)
		return
	}

	if err := h.RelatedRepo.AddRelated(r.Context(), postID, req.RelatedPostID); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			WriteError(w, "This relation already exists", http.StatusBadRequest)
			return
		}
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, models.RelatedPost{
		PostID:        postID,
		RelatedPostID: req.RelatedPostID,
	}, http.StatusCreated)
}

func (h *Handlers) RemoveRelatedPost(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	postID := vars["post_id"]
	relatedPostID := vars["related_post_id"]

	post := h.loadOwnPost(w, r, postID)
	if post == nil {
		return
	}

	if err := h.RelatedRepo.RemoveRelated(r.Context(), postID, relatedPostID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
