package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"bloggr/internal/models"
	"bloggr/internal/repository"
)

// LogObserver writes one line per event to the process log.
type LogObserver struct{}

func NewLogObserver() *LogObserver {
	return &LogObserver{}
}

func (o *LogObserver) Update(event Event) error {
	log.Printf("[notification] event=%s user=%s payload=%v", event.Type, event.UserID, event.Payload)
	return nil
}

// NotificationObserver persists events as in-app notifications for the acting
// user. Delivery runs outside any request, so it carries its own timeout.
type NotificationObserver struct {
	repo    repository.NotificationRepository
	timeout time.Duration
}

func NewNotificationObserver(repo repository.NotificationRepository) *NotificationObserver {
	return &NotificationObserver{
		repo:    repo,
		timeout: 5 * time.Second,
	}
}

func (o *NotificationObserver) Update(event Event) error {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return fmt.Errorf("failed to encode event payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), o.timeout)
	defer cancel()

	notification := &models.Notification{
		UserID:    event.UserID,
		EventType: event.Type,
		Payload:   payload,
	}

	if err := o.repo.Create(ctx, notification); err != nil {
		return fmt.Errorf("failed to persist notification: %w", err)
	}

	return nil
}
