// Package events implements the observer-pattern notification bus the write
// paths publish to: a Subject fans domain events out to attached observers
// synchronously, in attachment order.
package events

import (
	"sync"
	"time"
)

// Event types published by the post and comment write paths.
const (
	EventPostCreated = "POST_CREATED"
	EventPostUpdated = "POST_UPDATED"
	EventPostDeleted = "POST_DELETED"
	EventNewComment  = "NEW_COMMENT"
)

// Event is a plain record describing something that happened: what kind of
// change, the entity data involved, when, and the acting user.
type Event struct {
	Type      string         `json:"type"`
	Payload   map[string]any `json:"payload"`
	Timestamp time.Time      `json:"timestamp"`
	UserID    string         `json:"userId"`
}

// NewEvent builds an Event stamped with the current time.
func NewEvent(eventType string, payload map[string]any, userID string) Event {
	return Event{
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now(),
		UserID:    userID,
	}
}

// Observer receives events from a Subject. A non-nil error aborts delivery
// to observers attached after this one.
type Observer interface {
	Update(event Event) error
}

// Subject holds an ordered list of observers and fans events out to them.
// The mutex is ours, not the caller's: handlers run concurrently.
type Subject struct {
	mu        sync.Mutex
	observers []Observer
}

// Attach appends the observer to the delivery list.
func (s *Subject) Attach(observer Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, observer)
}

// Detach removes the observer from the delivery list. Detaching an observer
// that was never attached is a no-op.
func (s *Subject) Detach(observer Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := s.observers[:0]
	for _, obs := range s.observers {
		if obs != observer {
			filtered = append(filtered, obs)
		}
	}
	s.observers = filtered
}

// Notify delivers the event to every currently attached observer, in
// attachment order. The first observer error stops delivery and is returned.
func (s *Subject) Notify(event Event) error {
	s.mu.Lock()
	observers := make([]Observer, len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	for _, observer := range observers {
		if err := observer.Update(event); err != nil {
			return err
		}
	}

	return nil
}
