package handlers

import (
	"net/http"

	"bloggr/internal/middleware"
)

// ListNotifications returns the principal's persisted in-app notifications.
func (h *Handlers) ListNotifications(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.UserFromContext(r.Context())
	if !ok {
		WriteError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	notifications, err := h.NotificationRepo.ListByUserID(r.Context(), principal.ID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, notifications, http.StatusOK)
}
