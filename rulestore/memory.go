package rulestore

import (
	"slices"
	"sync"

	redirects "github.com/lightningspirit/wp-redirects"
)

var _ Store = (*Memory)(nil)

// Memory is an in-memory [Store], primarily useful for tests and for hosts
// managing persistence themselves.
type Memory struct {
	mu    sync.RWMutex
	rules []redirects.Rule
}

// NewMemory returns a Memory store seeded with rules.
func NewMemory(rules ...redirects.Rule) *Memory {
	return &Memory{rules: sanitize(rules)}
}

// Rules returns a copy of the current collection.
func (m *Memory) Rules() ([]redirects.Rule, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.rules), nil
}

// Replace swaps the entire collection.
func (m *Memory) Replace(rules []redirects.Rule) error {
	rules = sanitize(rules)
	m.mu.Lock()
	m.rules = rules
	m.mu.Unlock()
	return nil
}

// Update applies fn to a copy of the collection and installs the result. The
// collection is unchanged if fn returns an error.
func (m *Memory) Update(fn func(rules []redirects.Rule) ([]redirects.Rule, error)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	out, err := fn(slices.Clone(m.rules))
	if err != nil {
		return err
	}
	m.rules = sanitize(out)
	return nil
}
