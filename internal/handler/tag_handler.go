package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"bloggr/internal/models"
)

type TagRequest struct {
	Name string `json:"name" validate:"required,min=1,max=50"`
	Slug string `json:"slug" validate:"required,min=1,max=50,slugformat"`
}

type PostTagRequest struct {
	TagID string `json:"tagId" validate:"required,uuid4"`
}

func (h *Handlers) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.TagRepo.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, tags, http.StatusOK)
}

func (h *Handlers) CreateTag(w http.ResponseWriter, r *http.Request) {
	var req TagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		writeValidationErrors(w, err)
		return
	}

	tag := &models.Tag{
		Name: req.Name,
		Slug: req.Slug,
	}

	if err := h.TagRepo.Create(r.Context(), tag); err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, tag, http.StatusCreated)
}

func (h *Handlers) GetTag(w http.ResponseWriter, r *http.Request) {
	tag, err := h.TagRepo.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, tag, http.StatusOK)
}

func (h *Handlers) DeleteTag(w http.ResponseWriter, r *http.Request) {
	if err := h.TagRepo.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) ListPostTags(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]

	if _, err := h.PostRepo.GetByID(r.Context(), postID); err != nil {
		handleServiceError(w, err)
		return
	}

	tags, err := h.PostRepo.ListTags(r.Context(), postID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, tags, http.StatusOK)
}

func (h *Handlers) AddTagToPost(w http.ResponseWriter, r *http.Request) {
	post := h.loadOwnPost(w, r, mux.Vars(r)["id"])
	if post == nil {
		return
	}

	var req PostTagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		writeValidationErrors(w, err)
		return
	}

	if _, err := h.TagRepo.GetByID(r.Context(), req.TagID); err != nil {
		handleServiceError(w, err)
		return
	}

	if err := h.PostRepo.AddTag(r.Context(), post.ID, req.TagID); err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, map[string]string{"message": "Tag added to post"}, http.StatusOK)
}

func (h *Handlers) RemoveTagFromPost(w http.ResponseWriter, r *http.Request) {
	post := h.loadOwnPost(w, r, mux.Vars(r)["id"])
	if post == nil {
		return
	}

	var req PostTagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		writeValidationErrors(w, err)
		return
	}

	if _, err := h.TagRepo.GetByID(r.Context(), req.TagID); err != nil {
		handleServiceError(w, err)
		return
	}

	if err := h.PostRepo.RemoveTag(r.Context(), post.ID, req.TagID); err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, map[string]string{"message": "Tag removed from post"}, http.StatusOK)
}
