// Copyright 2025 Vitor Carvalho. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/lightningspirit/wp-redirects/blob/master/LICENSE.txt.

package redirects

// ruleIndex partitions a rule collection for a single resolution. Exact rules
// live in a lookup table keyed by source pattern; wildcard rules keep their
// original collection order. The index is transient, rebuilt from the supplied
// collection on every resolution, and never mutated afterward.
type ruleIndex struct {
	exact    map[string]Rule
	wildcard []Rule
}

// indexRules classifies each rule as exact or wildcard. Zero or malformed rules
// that bypassed [NewRule] are skipped. When several exact rules share the same
// source pattern, the one appearing last in the collection wins.
func indexRules(rules []Rule) ruleIndex {
	idx := ruleIndex{}
	for _, rule := range rules {
		if rule.IsZero() {
			continue
		}
		if rule.IsWildcard() {
			idx.wildcard = append(idx.wildcard, rule)
			continue
		}
		if idx.exact == nil {
			idx.exact = make(map[string]Rule)
		}
		idx.exact[rule.from] = rule
	}
	return idx
}

// lookup returns the rule matching path and, for wildcard matches, the ordered
// captures consumed by its "*" tokens. An exact match always takes priority
// over any wildcard match, regardless of collection order. Wildcard rules are
// tried in collection order and the first match wins: later rules that would
// also match are never considered. The boolean reports whether a rule matched.
func (idx ruleIndex) lookup(path string) (Rule, []string, bool) {
	if rule, ok := idx.exact[path]; ok {
		return rule, nil, true
	}

	for _, rule := range idx.wildcard {
		m, err := compilePattern(rule.from)
		if err != nil {
			continue
		}
		if captures, ok := m.match(path); ok {
			return rule, captures, true
		}
	}

	return Rule{}, nil, false
}
