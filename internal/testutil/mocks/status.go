package mocks

import "sync"

// StatusReporter records health status updates.
type StatusReporter struct {
	mu     sync.Mutex
	status map[string]bool
	Calls  int
}

// NewStatusReporter creates a new mock StatusReporter.
func NewStatusReporter() *StatusReporter {
	return &StatusReporter{status: make(map[string]bool)}
}

func (m *StatusReporter) SetServingStatus(service string, serving bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	m.status[service] = serving
}

// Serving returns the last reported status for service and whether one was reported.
func (m *StatusReporter) Serving(service string) (bool, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	serving, ok := m.status[service]
	return serving, ok
}
