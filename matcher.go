// Copyright 2025 Vitor Carvalho. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/lightningspirit/wp-redirects/blob/master/LICENSE.txt.

package redirects

import (
	"regexp"
	"strconv"
	"strings"
)

const starDelim byte = '*'

// matcher is the compiled form of a wildcard source pattern. It performs a
// full string, anchored match and records one capture per "*" token.
type matcher struct {
	re       *regexp.Regexp
	captures int
}

// compilePattern compiles a normalized source pattern into a matcher. Literal
// runs are quoted so regexp metacharacters in the pattern match themselves, and
// every "*" token becomes a greedy capture group matching zero or more
// characters. The expression is anchored at both ends, requiring a full match
// of the candidate path.
func compilePattern(from string) (*matcher, error) {
	var sb strings.Builder
	sb.Grow(len(from) + 8)
	sb.WriteByte('^')

	n := 0
	start := 0
	for i := 0; i < len(from); i++ {
		if from[i] != starDelim {
			continue
		}
		sb.WriteString(regexp.QuoteMeta(from[start:i]))
		sb.WriteString("(.*)")
		n++
		start = i + 1
	}
	sb.WriteString(regexp.QuoteMeta(from[start:]))
	sb.WriteByte('$')

	re, err := regexp.Compile(sb.String())
	if err != nil {
		return nil, err
	}
	return &matcher{re: re, captures: n}, nil
}

// match tests path against the compiled pattern. On success it returns the
// substrings consumed by each "*" token in left to right order. The returned
// slice has exactly as many entries as the pattern has "*" tokens.
func (m *matcher) match(path string) ([]string, bool) {
	sub := m.re.FindStringSubmatch(path)
	if sub == nil {
		return nil, false
	}
	return sub[1:], true
}

// substituteSegment is a piece of a target template under substitution. Text
// spliced in from a capture is frozen: it is never rescanned for tokens, so a
// capture value containing "$2" cannot trigger a second substitution round.
type substituteSegment struct {
	text   string
	frozen bool
}

// applyCaptures replaces each literal occurrence of $1..$k in the target
// template with the corresponding capture, k being the number of captures.
// Tokens are processed in increasing index order and replacement is plain
// substring substitution: with two captures, "$12" reads as $1 followed by a
// literal "2". Tokens with an index beyond k are left untouched.
func applyCaptures(target string, captures []string) string {
	if len(captures) == 0 || strings.IndexByte(target, '$') < 0 {
		return target
	}

	segs := []substituteSegment{{text: target}}
	for i := 1; i <= len(captures); i++ {
		token := "$" + strconv.Itoa(i)
		next := segs[:0:0]
		for _, seg := range segs {
			if seg.frozen || !strings.Contains(seg.text, token) {
				next = append(next, seg)
				continue
			}
			parts := strings.Split(seg.text, token)
			for j, part := range parts {
				if j > 0 {
					next = append(next, substituteSegment{text: captures[i-1], frozen: true})
				}
				if part != "" {
					next = append(next, substituteSegment{text: part})
				}
			}
		}
		segs = next
	}

	var sb strings.Builder
	sb.Grow(len(target))
	for _, seg := range segs {
		sb.WriteString(seg.text)
	}
	return sb.String()
}
