package services

import "sync"

// MockNotificationSink records notification events for testing assertions
type MockNotificationSink struct {
	mu     sync.RWMutex
	events []NotificationEvent
}

// NewMockNotificationSink creates an empty mock sink
func NewMockNotificationSink() *MockNotificationSink {
	return &MockNotificationSink{}
}

// Notify records the event
func (m *MockNotificationSink) Notify(event NotificationEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

// Events returns a copy of all recorded events
func (m *MockNotificationSink) Events() []NotificationEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()

	events := make([]NotificationEvent, len(m.events))
	copy(events, m.events)
	return events
}

// Clear removes all recorded events
func (m *MockNotificationSink) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = nil
}
