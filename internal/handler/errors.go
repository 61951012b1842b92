package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"

	"bloggr/internal/repository"
	"bloggr/internal/service"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type ValidationErrorResponse struct {
	Errors []string `json:"errors"`
}

func WriteError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

func WriteJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// writeValidationErrors itemizes every violated field into a 400 response.
func writeValidationErrors(w http.ResponseWriter, err error) {
	var violations validator.ValidationErrors
	if !errors.As(err, &violations) {
		WriteError(w, "invalid request data", http.StatusBadRequest)
		return
	}

	messages := make([]string, 0, len(violations))
	for _, violation := range violations {
		messages = append(messages, fieldMessage(violation))
	}

	WriteJSON(w, ValidationErrorResponse{Errors: messages}, http.StatusBadRequest)
}

func fieldMessage(violation validator.FieldError) string {
	field := violation.Field()

	switch violation.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return "Invalid email format"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, violation.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, violation.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "slugformat":
		return "Slug must contain only letters, numbers, dashes, and underscores"
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// handleServiceError translates known failure shapes into the REST taxonomy;
// everything uncategorized becomes a logged 500 with a generic message.
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		WriteError(w, "Not found", http.StatusNotFound)
	case errors.Is(err, repository.ErrDuplicate):
		WriteError(w, "Duplicate unique field", http.StatusConflict)
	case errors.Is(err, service.ErrUnknownTag):
		WriteError(w, "One or more tags do not exist", http.StatusBadRequest)
	case errors.Is(err, repository.ErrWrongPassword):
		WriteError(w, "Invalid email or password", http.StatusUnauthorized)
	case errors.Is(err, service.ErrInvalidCredentials):
		WriteError(w, "Invalid email or password", http.StatusUnauthorized)
	case errors.Is(err, service.ErrAccountLocked):
		WriteError(w, "Account is locked or disabled", http.StatusForbidden)
	default:
		log.Printf("internal error: %v", err)
		WriteError(w, "Server error", http.StatusInternalServerError)
	}
}
