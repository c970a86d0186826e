// Copyright 2025 Vitor Carvalho. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/lightningspirit/wp-redirects/blob/master/LICENSE.txt.

package rulestore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	redirects "github.com/lightningspirit/wp-redirects"
)

var _ Store = (*File)(nil)

// Option configures a [File] store.
type Option interface {
	apply(*File) error
}

type optionFunc func(*File) error

func (o optionFunc) apply(f *File) error {
	return o(f)
}

// WithLogHandler sets the [slog.Handler] used to report dropped rule entries
// and other non-fatal conditions. By default, logs are discarded.
func WithLogHandler(handler slog.Handler) Option {
	return optionFunc(func(f *File) error {
		if handler == nil {
			return fmt.Errorf("%w: log handler cannot be nil", redirects.ErrInvalidConfig)
		}
		f.log = slog.New(handler)
		return nil
	})
}

// File is a [Store] persisting the rule collection as a human readable JSON
// array of {from, to, type} objects. A missing file reads as an empty
// collection. Writes go through a temporary file in the same directory
// followed by a rename, so readers never observe a partially written
// collection. All operations serialize on an internal mutex.
type File struct {
	log  *slog.Logger
	path string
	mu   sync.Mutex
}

// NewFile returns a File store backed by the JSON file at path. The file and
// its directory are created on first write, not here.
func NewFile(path string, opts ...Option) (*File, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: store path cannot be empty", redirects.ErrInvalidConfig)
	}

	f := &File{
		path: path,
		log:  slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})),
	}
	for _, opt := range opts {
		if err := opt.apply(f); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// Path returns the location of the backing file.
func (f *File) Path() string {
	return f.path
}

// Rules loads the collection from disk. Entries that fail validation are
// dropped with a warning rather than failing the whole load, so one malformed
// entry cannot take every redirect down with it.
func (f *File) Rules() ([]redirects.Rule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.load()
}

// Replace persists the collection, swapping the backing file atomically.
func (f *File) Replace(rules []redirects.Rule) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.store(sanitize(rules))
}

// Update applies fn to a copy of the stored collection and persists the
// result. Load, fn and store run under the same critical section.
func (f *File) Update(fn func(rules []redirects.Rule) ([]redirects.Rule, error)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	rules, err := f.load()
	if err != nil {
		return err
	}
	out, err := fn(rules)
	if err != nil {
		return err
	}
	return f.store(sanitize(out))
}

func (f *File) load() ([]redirects.Rule, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading rule collection: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decoding rule collection %s: %w", f.path, err)
	}

	rules := make([]redirects.Rule, 0, len(entries))
	for i, entry := range entries {
		var rule redirects.Rule
		if err := json.Unmarshal(entry, &rule); err != nil {
			f.log.LogAttrs(context.Background(), slog.LevelWarn, "dropping invalid rule entry",
				slog.String("path", f.path),
				slog.Int("index", i),
				slog.Any("error", err),
			)
			continue
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func (f *File) store(rules []redirects.Rule) error {
	if rules == nil {
		rules = []redirects.Rule{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(rules); err != nil {
		return fmt.Errorf("encoding rule collection: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating rule store directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temporary rule file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("writing rule collection: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("setting rule file permissions: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing rule collection: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temporary rule file: %w", err)
	}

	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replacing rule collection: %w", err)
	}
	return nil
}
