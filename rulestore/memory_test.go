package rulestore

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redirects "github.com/lightningspirit/wp-redirects"
)

func TestMemoryRoundTrip(t *testing.T) {
	m := NewMemory(redirects.MustNewRule("/old", "/new", 301))

	rules, err := m.Rules()
	require.NoError(t, err)
	require.Len(t, rules, 1)

	in := []redirects.Rule{
		redirects.MustNewRule("/a", "/b", 302),
		redirects.MustNewRule("/c/*", "/d/$1", 301),
	}
	require.NoError(t, m.Replace(in))

	rules, err = m.Rules()
	require.NoError(t, err)
	assert.Equal(t, in, rules)
}

func TestMemoryRulesReturnsCopy(t *testing.T) {
	m := NewMemory(
		redirects.MustNewRule("/a", "/b", 301),
		redirects.MustNewRule("/c", "/d", 301),
	)

	rules, err := m.Rules()
	require.NoError(t, err)
	rules[0] = redirects.MustNewRule("/mutated", "/x", 301)

	again, err := m.Rules()
	require.NoError(t, err)
	assert.Equal(t, "/a", again[0].From())
}

func TestMemorySanitizesZeroRules(t *testing.T) {
	var zero redirects.Rule
	m := NewMemory(zero, redirects.MustNewRule("/a", "/b", 301))

	rules, err := m.Rules()
	require.NoError(t, err)
	assert.Equal(t, []redirects.Rule{redirects.MustNewRule("/a", "/b", 301)}, rules)
}

func TestMemoryUpdateError(t *testing.T) {
	m := NewMemory(redirects.MustNewRule("/a", "/b", 301))

	wantErr := errors.New("rejected")
	err := m.Update(func(rules []redirects.Rule) ([]redirects.Rule, error) {
		return nil, wantErr
	})
	require.ErrorIs(t, err, wantErr)

	rules, err := m.Rules()
	require.NoError(t, err)
	assert.Len(t, rules, 1)
}

func TestMemoryUpdateConcurrent(t *testing.T) {
	m := NewMemory()

	const writers = 64
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := m.Update(func(rules []redirects.Rule) ([]redirects.Rule, error) {
				rule := redirects.MustNewRule(fmt.Sprintf("/old-%d", i), fmt.Sprintf("/new-%d", i), 301)
				return append(rules, rule), nil
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	rules, err := m.Rules()
	require.NoError(t, err)
	assert.Len(t, rules, writers)
}
