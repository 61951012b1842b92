package test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"bloggr/internal/models"
	"bloggr/internal/repository"
)

func TestCreateTagHandler(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    map[string]interface{}
		mockSetup      func(*MockTagRepository)
		expectedStatus int
	}{
		{
			name: "creates a tag",
			requestBody: map[string]interface{}{
				"name": "Go",
				"slug": "go",
			},
			mockSetup: func(tags *MockTagRepository) {
				tags.On("Create", mock.Anything, mock.Anything).Return(nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "slug with spaces fails validation",
			requestBody: map[string]interface{}{
				"name": "Go",
				"slug": "not a slug",
			},
			mockSetup:      func(tags *MockTagRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "duplicate slug returns 409",
			requestBody: map[string]interface{}{
				"name": "Go",
				"slug": "go",
			},
			mockSetup: func(tags *MockTagRepository) {
				tags.On("Create", mock.Anything, mock.Anything).
					Return(fmt.Errorf("tag: %w", repository.ErrDuplicate))
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			tt.mockSetup(f.tagRepo)

			body, _ := json.Marshal(tt.requestBody)
			req := httptest.NewRequest(http.MethodPost, "/api/tags", bytes.NewBuffer(body))
			req = authenticate(req, activeUser("user-1"))

			rr := httptest.NewRecorder()
			f.handlers.CreateTag(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			f.tagRepo.AssertExpectations(t)
		})
	}
}

func TestDeleteTagHandler(t *testing.T) {
	t.Run("deletes the tag", func(t *testing.T) {
		f := newFixture()
		f.tagRepo.On("Delete", mock.Anything, "tag-1").Return(nil)

		req := httptest.NewRequest(http.MethodDelete, "/api/tags/tag-1", nil)
		req = mux.SetURLVars(req, map[string]string{"id": "tag-1"})

		rr := httptest.NewRecorder()
		f.handlers.DeleteTag(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
	})

	t.Run("unknown tag returns 404", func(t *testing.T) {
		f := newFixture()
		f.tagRepo.On("Delete", mock.Anything, "missing").
			Return(fmt.Errorf("tag: %w", repository.ErrNotFound))

		req := httptest.NewRequest(http.MethodDelete, "/api/tags/missing", nil)
		req = mux.SetURLVars(req, map[string]string{"id": "missing"})

		rr := httptest.NewRecorder()
		f.handlers.DeleteTag(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestAddTagToPostHandler(t *testing.T) {
	t.Run("attaches the tag", func(t *testing.T) {
		f := newFixture()
		f.postRepo.On("GetByID", mock.Anything, "post-1").
			Return(publishedPost("post-1", "user-1"), nil)
		f.tagRepo.On("GetByID", mock.Anything, relatedUUID).
			Return(&models.Tag{ID: relatedUUID, Name: "Go", Slug: "go"}, nil)
		f.postRepo.On("AddTag", mock.Anything, "post-1", relatedUUID).Return(nil)

		body, _ := json.Marshal(map[string]string{"tagId": relatedUUID})
		req := httptest.NewRequest(http.MethodPost, "/api/posts/post-1/tags", bytes.NewBuffer(body))
		req = mux.SetURLVars(req, map[string]string{"id": "post-1"})
		req = authenticate(req, activeUser("user-1"))

		rr := httptest.NewRecorder()
		f.handlers.AddTagToPost(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Tag added to post")
		f.postRepo.AssertExpectations(t)
	})

	t.Run("unknown tag returns 404", func(t *testing.T) {
		f := newFixture()
		f.postRepo.On("GetByID", mock.Anything, "post-1").
			Return(publishedPost("post-1", "user-1"), nil)
		f.tagRepo.On("GetByID", mock.Anything, relatedUUID).
			Return(nil, fmt.Errorf("tag: %w", repository.ErrNotFound))

		body, _ := json.Marshal(map[string]string{"tagId": relatedUUID})
		req := httptest.NewRequest(http.MethodPost, "/api/posts/post-1/tags", bytes.NewBuffer(body))
		req = mux.SetURLVars(req, map[string]string{"id": "post-1"})
		req = authenticate(req, activeUser("user-1"))

		rr := httptest.NewRecorder()
		f.handlers.AddTagToPost(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		f.postRepo.AssertNotCalled(t, "AddTag", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("only the author may tag the post", func(t *testing.T) {
		f := newFixture()
		f.postRepo.On("GetByID", mock.Anything, "post-1").
			Return(publishedPost("post-1", "user-1"), nil)

		body, _ := json.Marshal(map[string]string{"tagId": relatedUUID})
		req := httptest.NewRequest(http.MethodPost, "/api/posts/post-1/tags", bytes.NewBuffer(body))
		req = mux.SetURLVars(req, map[string]string{"id": "post-1"})
		req = authenticate(req, activeUser("user-2"))

		rr := httptest.NewRecorder()
		f.handlers.AddTagToPost(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})
}

func TestRemoveTagFromPostHandler(t *testing.T) {
	f := newFixture()
	f.postRepo.On("GetByID", mock.Anything, "post-1").
		Return(publishedPost("post-1", "user-1"), nil)
	f.tagRepo.On("GetByID", mock.Anything, relatedUUID).
		Return(&models.Tag{ID: relatedUUID, Name: "Go", Slug: "go"}, nil)
	f.postRepo.On("RemoveTag", mock.Anything, "post-1", relatedUUID).Return(nil)

	body, _ := json.Marshal(map[string]string{"tagId": relatedUUID})
	req := httptest.NewRequest(http.MethodDelete, "/api/posts/post-1/tags", bytes.NewBuffer(body))
	req = mux.SetURLVars(req, map[string]string{"id": "post-1"})
	req = authenticate(req, activeUser("user-1"))

	rr := httptest.NewRecorder()
	f.handlers.RemoveTagFromPost(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Tag removed from post")
	f.postRepo.AssertExpectations(t)
}
