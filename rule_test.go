// Copyright 2025 Vitor Carvalho. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/lightningspirit/wp-redirects/blob/master/LICENSE.txt.

package redirects

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRule(t *testing.T) {
	cases := []struct {
		name       string
		from       string
		to         string
		status     int
		wantErr    error
		wantFrom   string
		wantStatus int
	}{
		{
			name:       "already normalized",
			from:       "/old",
			to:         "/new",
			status:     301,
			wantFrom:   "/old",
			wantStatus: 301,
		},
		{
			name:       "missing leading slash",
			from:       "old/abc",
			to:         "/new",
			status:     302,
			wantFrom:   "/old/abc",
			wantStatus: 302,
		},
		{
			name:       "extra leading slashes collapse",
			from:       "///old",
			to:         "/new",
			status:     301,
			wantFrom:   "/old",
			wantStatus: 301,
		},
		{
			name:       "surrounding whitespace trimmed",
			from:       "  /old  ",
			to:         "/new",
			status:     301,
			wantFrom:   "/old",
			wantStatus: 301,
		},
		{
			name:       "slash only collapses to root",
			from:       "///",
			to:         "/new",
			status:     301,
			wantFrom:   "/",
			wantStatus: 301,
		},
		{
			name:       "status outside the allowed set coerces to 301",
			from:       "/old",
			to:         "/new",
			status:     404,
			wantFrom:   "/old",
			wantStatus: 301,
		},
		{
			name:       "zero status coerces to 301",
			from:       "/old",
			to:         "/new",
			status:     0,
			wantFrom:   "/old",
			wantStatus: 301,
		},
		{
			name:       "temporary redirect status preserved",
			from:       "/old",
			to:         "/new",
			status:     307,
			wantFrom:   "/old",
			wantStatus: 307,
		},
		{
			name:    "empty source",
			from:    "",
			to:      "/new",
			status:  301,
			wantErr: ErrInvalidRule,
		},
		{
			name:    "whitespace only source",
			from:    "   ",
			to:      "/new",
			status:  301,
			wantErr: ErrInvalidRule,
		},
		{
			name:    "empty target",
			from:    "/old",
			to:      "",
			status:  301,
			wantErr: ErrInvalidRule,
		},
		{
			name:    "whitespace only target",
			from:    "/old",
			to:      "   ",
			status:  301,
			wantErr: ErrInvalidRule,
		},
		{
			name:    "malformed target url",
			from:    "/old",
			to:      "http://[::1",
			status:  301,
			wantErr: ErrInvalidRule,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rule, err := NewRule(tc.from, tc.to, tc.status)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				assert.True(t, rule.IsZero())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantFrom, rule.From())
			assert.Equal(t, tc.wantStatus, rule.Status())
			assert.False(t, rule.IsZero())
		})
	}
}

func TestMustNewRulePanics(t *testing.T) {
	assert.Panics(t, func() {
		MustNewRule("", "/new", 301)
	})
}

func TestRuleIsWildcard(t *testing.T) {
	assert.False(t, MustNewRule("/old", "/new", 301).IsWildcard())
	assert.True(t, MustNewRule("/old/*", "/new/$1", 301).IsWildcard())
	assert.True(t, MustNewRule("/x/*/y/*", "/z/$1/$2", 301).IsWildcard())
}

func TestRuleString(t *testing.T) {
	assert.Equal(t, "/old /new 301", MustNewRule("/old", "/new", 301).String())
}

func TestRuleMarshalJSON(t *testing.T) {
	data, err := json.Marshal(MustNewRule("/old/*", "/new/$1", 302))
	require.NoError(t, err)
	assert.JSONEq(t, `{"from":"/old/*","to":"/new/$1","type":302}`, string(data))
}

func TestRuleUnmarshalJSON(t *testing.T) {
	cases := []struct {
		name    string
		data    string
		wantErr error
		want    Rule
	}{
		{
			name: "valid rule",
			data: `{"from":"/old","to":"/new","type":302}`,
			want: MustNewRule("/old", "/new", 302),
		},
		{
			name: "source normalized while decoding",
			data: `{"from":"old","to":"/new","type":301}`,
			want: MustNewRule("/old", "/new", 301),
		},
		{
			name: "unknown status coerced",
			data: `{"from":"/old","to":"/new","type":999}`,
			want: MustNewRule("/old", "/new", 301),
		},
		{
			name:    "missing source",
			data:    `{"to":"/new","type":301}`,
			wantErr: ErrInvalidRule,
		},
		{
			name:    "empty target",
			data:    `{"from":"/old","to":"","type":301}`,
			wantErr: ErrInvalidRule,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var rule Rule
			err := json.Unmarshal([]byte(tc.data), &rule)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, rule)
		})
	}
}

func TestRuleCollectionRoundTrip(t *testing.T) {
	in := []Rule{
		MustNewRule("/old", "/new", 301),
		MustNewRule("/blog/*", "/news/$1?ref=legacy", 302),
		MustNewRule("/x/*/y/*", "https://example.com/$1/$2", 308),
	}

	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out []Rule
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestNormalizeSource(t *testing.T) {
	cases := []struct {
		from string
		want string
	}{
		{"/old", "/old"},
		{"old", "/old"},
		{"//old", "/old"},
		{" /old ", "/old"},
		{"/", "/"},
		{"///", "/"},
		{"", ""},
		{"   ", ""},
	}

	for _, tc := range cases {
		assert.Equalf(t, tc.want, NormalizeSource(tc.from), "from: %q", tc.from)
	}
}
