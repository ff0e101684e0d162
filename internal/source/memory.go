package source

import (
	"strings"
	"sync"
)

// Memory is an in-process Provider. Every mutation fires the change signal,
// whichever path the watcher asked for.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
	signal Signal
}

// NewMemory returns a provider pre-populated with values.
func NewMemory(values map[string]string) *Memory {
	m := &Memory{values: make(map[string]string, len(values))}
	for k, v := range values {
		m.values[normalizeKey(k)] = v
	}
	return m
}

// Get implements Provider.
func (m *Memory) Get(key string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.values[normalizeKey(key)]
}

// Section implements Provider.
func (m *Memory) Section(path string) Section {
	return newSection(path, m.Get)
}

// Watch implements Provider.
func (m *Memory) Watch(string) ChangeToken {
	return m.signal.Token()
}

// Set stores a single value and notifies watchers.
func (m *Memory) Set(key, value string) {
	m.mu.Lock()
	m.values[normalizeKey(key)] = value
	m.mu.Unlock()

	m.signal.Fire()
}

// Load replaces the whole store with values and notifies watchers once.
func (m *Memory) Load(values map[string]string) {
	next := make(map[string]string, len(values))
	for k, v := range values {
		next[normalizeKey(k)] = v
	}

	m.mu.Lock()
	m.values = next
	m.mu.Unlock()

	m.signal.Fire()
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.Trim(key, KeyDelimiter))
}
