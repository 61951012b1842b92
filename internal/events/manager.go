package events

import "sync"

// Manager is the concrete subject the application wires once and injects into
// the services that publish events. On top of fan-out it keeps an append-only
// in-memory event log for audit retrieval. The log is not persisted and is
// unbounded.
type Manager struct {
	Subject

	logMu    sync.Mutex
	eventLog []Event
}

func NewManager() *Manager {
	return &Manager{}
}

// Notify logs the event and then fans it out. The event is logged even when
// an observer fails, since the underlying write already happened.
func (m *Manager) Notify(event Event) error {
	m.logMu.Lock()
	m.eventLog = append(m.eventLog, event)
	m.logMu.Unlock()

	return m.Subject.Notify(event)
}

// EventLog returns a copy of all events seen so far, in notification order.
func (m *Manager) EventLog() []Event {
	m.logMu.Lock()
	defer m.logMu.Unlock()

	out := make([]Event, len(m.eventLog))
	copy(out, m.eventLog)
	return out
}
