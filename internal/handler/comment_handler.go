package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"bloggr/internal/middleware"
)

type AddCommentRequest struct {
	Content string `json:"content" validate:"required"`
}

func (h *Handlers) AddComment(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["post_id"]

	principal, ok := middleware.UserFromContext(r.Context())
	if !ok {
		WriteError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var req AddCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		writeValidationErrors(w, err)
		return
	}

	comment, err := h.CommentService.AddComment(r.Context(), postID, principal.ID, req.Content)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, comment, http.StatusCreated)
}

func (h *Handlers) ListComments(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["post_id"]

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	comments, err := h.CommentService.ListComments(r.Context(), postID, limit, offset)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, comments, http.StatusOK)
}
