package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"bloggr/internal/middleware"
	"bloggr/internal/models"
	"bloggr/internal/repository"
	"bloggr/internal/service"
)

type CreatePostRequest struct {
	Title     string   `json:"title" validate:"required,max=200"`
	Content   string   `json:"content" validate:"required"`
	Published bool     `json:"published"`
	TagIDs    []string `json:"tagIds" validate:"omitempty,dive,uuid4"`
}

type UpdatePostRequest struct {
	Title     *string  `json:"title" validate:"omitempty,min=1,max=200"`
	Content   *string  `json:"content" validate:"omitempty,min=1"`
	Published *bool    `json:"published"`
	TagIDs    []string `json:"tagIds" validate:"omitempty,dive,uuid4"`
}

func (h *Handlers) ListPosts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	limit, _ := strconv.Atoi(query.Get("limit"))
	offset, _ := strconv.Atoi(query.Get("offset"))

	filter := repository.PostFilter{
		AuthorID: query.Get("author_id"),
		Limit:    limit,
		Offset:   offset,
		SortBy:   query.Get("sortBy"),
		Order:    query.Get("order"),
	}

	// default: only published posts are listed
	published := true
	if raw := query.Get("published"); raw != "" {
		published = raw == "true"
	}
	filter.Published = &published

	posts, err := h.PostRepo.List(r.Context(), filter)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, posts, http.StatusOK)
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.UserFromContext(r.Context())
	if !ok {
		WriteError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		writeValidationErrors(w, err)
		return
	}

	post, err := h.PostService.CreatePost(r.Context(), service.CreatePostRequest{
		AuthorID:  principal.ID,
		Title:     req.Title,
		Content:   req.Content,
		Published: req.Published,
		TagIDs:    req.TagIDs,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, post, http.StatusCreated)
}

func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]

	post, err := h.PostRepo.GetByID(r.Context(), postID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	// a draft is visible only to its author
	if !post.Published {
		principal, ok := middleware.UserFromContext(r.Context())
		if !ok || principal.ID != post.AuthorID {
			WriteError(w, "Forbidden: Not allowed to view this draft", http.StatusForbidden)
			return
		}
	}

	tags, err := h.PostRepo.ListTags(r.Context(), postID)
	if err == nil {
		post.Tags = tags
	}

	WriteJSON(w, post, http.StatusOK)
}

// loadOwnPost fetches the post and enforces that the principal is its author.
// On failure it writes the response and returns nil.
func (h *Handlers) loadOwnPost(w http.ResponseWriter, r *http.Request, postID string) *models.Post {
	principal, ok := middleware.UserFromContext(r.Context())
	if !ok {
		WriteError(w, "Authentication required", http.StatusUnauthorized)
		return nil
	}

	post, err := h.PostRepo.GetByID(r.Context(), postID)
	if err != nil {
		handleServiceError(w, err)
		return nil
	}

	if post.AuthorID != principal.ID {
		WriteError(w, "Forbidden: Only the author may modify this post", http.StatusForbidden)
		return nil
	}

	return post
}

func (h *Handlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
	post := h.loadOwnPost(w, r, mux.Vars(r)["id"])
	if post == nil {
		return
	}

	var req UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		writeValidationErrors(w, err)
		return
	}

	updated, err := h.PostService.UpdatePost(r.Context(), post, service.UpdatePostRequest{
		Title:     req.Title,
		Content:   req.Content,
		Published: req.Published,
		TagIDs:    req.TagIDs,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, updated, http.StatusOK)
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	post := h.loadOwnPost(w, r, mux.Vars(r)["id"])
	if post == nil {
		return
	}

	principal, _ := middleware.UserFromContext(r.Context())

	if err := h.PostService.DeletePost(r.Context(), post, principal.ID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
