// Copyright 2025 Vitor Carvalho. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/lightningspirit/wp-redirects/blob/master/LICENSE.txt.

package redirects

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// StatusMovedPermanently is the default redirect status code. Rules carrying a
// status code outside the allowed set are silently coerced to it.
const StatusMovedPermanently = 301

// allowedStatus is the set of redirect status codes a rule may carry. Any other
// value, including zero, is coerced to [StatusMovedPermanently] at construction.
var allowedStatus = map[int]struct{}{
	301: {},
	302: {},
	303: {},
	307: {},
	308: {},
}

// Rule maps a source path pattern to a redirect target. The source may contain
// one or more "*" wildcard tokens, each matching zero or more characters; the
// target may reference the matched segments positionally as $1, $2, and so on.
//
// A Rule is immutable once constructed. The zero Rule is invalid and is skipped
// by the resolution pipeline.
type Rule struct {
	from   string
	to     string
	status int
}

// NewRule returns a validated Rule. The source pattern is normalized to carry
// exactly one leading slash and no surrounding whitespace. It returns an error
// wrapping [ErrInvalidRule] if the source or target is empty after normalization,
// or if the target is not a well formed URL or path. A status code outside the
// allowed set (301, 302, 303, 307 and 308) is coerced to [StatusMovedPermanently].
func NewRule(from, to string, status int) (Rule, error) {
	from = NormalizeSource(from)
	if from == "" {
		return Rule{}, fmt.Errorf("%w: empty source pattern", ErrInvalidRule)
	}

	to = strings.TrimSpace(to)
	if to == "" {
		return Rule{}, fmt.Errorf("%w: empty target for source %q", ErrInvalidRule, from)
	}
	if _, err := url.Parse(to); err != nil {
		return Rule{}, fmt.Errorf("%w: malformed target %q: %w", ErrInvalidRule, to, err)
	}

	return Rule{from: from, to: to, status: coerceStatus(status)}, nil
}

// MustNewRule is a convenience wrapper for [NewRule] that panics on error.
func MustNewRule(from, to string, status int) Rule {
	rule, err := NewRule(from, to, status)
	if err != nil {
		panic(err)
	}
	return rule
}

// From returns the normalized source pattern.
func (r Rule) From() string {
	return r.from
}

// To returns the target template.
func (r Rule) To() string {
	return r.to
}

// Status returns the redirect status code.
func (r Rule) Status() int {
	return r.status
}

// IsWildcard returns true if the source pattern contains at least one "*" token.
func (r Rule) IsWildcard() bool {
	return strings.IndexByte(r.from, starDelim) >= 0
}

// IsZero returns true if the rule was not produced by [NewRule].
func (r Rule) IsZero() bool {
	return r.from == "" || r.to == ""
}

func (r Rule) String() string {
	return fmt.Sprintf("%s %s %d", r.from, r.to, r.status)
}

// ruleWire is the interchange shape of a rule. The status code travels under the
// "type" key for compatibility with collections exported by the WordPress plugin.
type ruleWire struct {
	From string `json:"from"`
	To   string `json:"to"`
	Type int    `json:"type"`
}

// MarshalJSON encodes the rule as a {from, to, type} object.
func (r Rule) MarshalJSON() ([]byte, error) {
	return json.Marshal(ruleWire{From: r.from, To: r.to, Type: r.status})
}

// UnmarshalJSON decodes a {from, to, type} object and validates it with [NewRule].
// Decoding an invalid rule fails with an error wrapping [ErrInvalidRule].
func (r *Rule) UnmarshalJSON(data []byte) error {
	var w ruleWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	rule, err := NewRule(w.From, w.To, w.Type)
	if err != nil {
		return err
	}
	*r = rule
	return nil
}

// NormalizeSource trims surrounding whitespace and guarantees exactly one
// leading slash, the form source patterns are stored and matched in. Patterns
// made only of slashes collapse to the root pattern "/". It returns the empty
// string for patterns with no content at all.
func NormalizeSource(from string) string {
	from = strings.TrimSpace(from)
	if from == "" {
		return ""
	}
	trimmed := strings.TrimLeft(from, "/")
	if trimmed == "" {
		return "/"
	}
	return "/" + trimmed
}

func coerceStatus(status int) int {
	if _, ok := allowedStatus[status]; !ok {
		return StatusMovedPermanently
	}
	return status
}
