// Copyright 2025 Vitor Carvalho. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/lightningspirit/wp-redirects/blob/master/LICENSE.txt.

// Package redirects resolves incoming request paths against an ordered list of
// redirect rules. Resolution selects at most one rule (exact match before
// wildcard match), substitutes captured wildcard segments into the target
// template and merges the original query string into the result.
package redirects

import (
	"net/http"
)

// MiddlewareFunc is a function type for implementing [http.Handler] middleware.
// The returned [http.Handler] usually wraps the input [http.Handler], allowing
// operations before and/or after the wrapped handler executes. MiddlewareFunc
// functions should be thread-safe, as they will be called concurrently.
type MiddlewareFunc func(next http.Handler) http.Handler

// Source provides the rule collection consulted on each resolution. The
// collection is materialized wholesale per call: the resolver performs no
// caching across calls, so any caching is the source's responsibility.
// Implementations must be safe for concurrent use.
type Source interface {
	// Rules returns the current rule collection in insertion order.
	Rules() ([]Rule, error)
}

// Store is a [Source] whose rule collection can be replaced wholesale.
type Store interface {
	Source
	// Replace swaps the entire stored collection atomically.
	Replace(rules []Rule) error
}

// Redirect is the outcome of a successful resolution.
type Redirect struct {
	// Target is the computed redirect target, captures substituted and the
	// original query string merged in.
	Target string
	// From is the source pattern of the matched rule.
	From string
	// Status is the redirect status code of the matched rule.
	Status int
}

// Resolve resolves a raw request string against a rule collection. It returns
// the computed redirect and true on a match, or the zero [Redirect] and false
// when no rule matches. A no-match outcome is normal passthrough, never an
// error: malformed request strings degrade to the root path and simply fail to
// match.
//
// Resolution is a pure function of its inputs. Each call builds its own
// transient lookup structures from the supplied collection and never mutates
// it, so concurrent resolutions are safe.
func Resolve(raw string, rules []Rule) (Redirect, bool) {
	path, query := SplitRequest(raw)

	rule, captures, ok := indexRules(rules).lookup(path)
	if !ok {
		return Redirect{}, false
	}

	target := rule.to
	if len(captures) > 0 {
		target = applyCaptures(rule.to, captures)
	}

	return Redirect{
		Target: mergeQuery(target, query),
		From:   rule.from,
		Status: rule.status,
	}, true
}
