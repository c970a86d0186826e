// Copyright 2025 Vitor Carvalho. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/lightningspirit/wp-redirects/blob/master/LICENSE.txt.

// Package rulestore provides repositories for redirect rule collections: a
// JSON file backed store and an in-memory store. Both guard the read-modify-write
// cycle behind a transactional update primitive so concurrent writers cannot
// silently lose each other's changes.
package rulestore

import (
	redirects "github.com/lightningspirit/wp-redirects"
)

// Store is a repository holding an ordered redirect rule collection.
// Implementations must be safe for concurrent use.
type Store interface {
	// Rules returns the current collection in insertion order. The returned
	// slice is a private copy the caller may retain or mutate freely.
	Rules() ([]redirects.Rule, error)

	// Replace swaps the entire stored collection atomically.
	Replace(rules []redirects.Rule) error

	// Update applies fn to a copy of the current collection and persists the
	// result. The whole read-modify-write cycle runs under the store's write
	// exclusion, so concurrent updates serialize instead of racing. If fn
	// returns an error, nothing is persisted and the error is returned as is.
	Update(fn func(rules []redirects.Rule) ([]redirects.Rule, error)) error
}

// sanitize drops zero rules that bypassed construction, such as careless
// Rule{} literals. Rules produced by [redirects.NewRule] always pass.
func sanitize(rules []redirects.Rule) []redirects.Rule {
	out := make([]redirects.Rule, 0, len(rules))
	for _, rule := range rules {
		if rule.IsZero() {
			continue
		}
		out = append(out, rule)
	}
	return out
}
