// Copyright 2025 Vitor Carvalho. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/lightningspirit/wp-redirects/blob/master/LICENSE.txt.

package redirects

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
)

var _ http.Handler = (*Handler)(nil)

// Handler is an [http.Handler] middleware that resolves each eligible request
// against the rule collection of a [Source]. On a match it issues the redirect
// and terminates request processing; otherwise the request passes through to
// the next handler untouched.
//
// The source is consulted on every request, so rule mutations take effect
// without restarting the handler.
type Handler struct {
	src     Source
	next    http.Handler
	log     *slog.Logger
	methods map[string]struct{}
}

// NewHandler returns a Handler resolving requests against src before handing
// them to next. A nil next defaults to [http.NotFoundHandler].
func NewHandler(src Source, next http.Handler, opts ...HandlerOption) (*Handler, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: source cannot be nil", ErrInvalidConfig)
	}
	if next == nil {
		next = http.NotFoundHandler()
	}

	h := &Handler{
		src:     src,
		next:    next,
		log:     slog.New(discardHandler{}),
		methods: defaultMethods(),
	}
	for _, opt := range opts {
		if err := opt.applyHandler(sealedOption{handler: h}); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// ServeHTTP resolves the request and either issues the matched redirect or
// delegates to the next handler. A source read failure is logged and treated
// as no match: passing the request through is always safer than failing it.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.methods[r.Method]; !ok {
		h.next.ServeHTTP(w, r)
		return
	}

	rules, err := h.src.Rules()
	if err != nil {
		h.log.LogAttrs(r.Context(), slog.LevelError, "rule source read failed", slog.Any("error", err))
		h.next.ServeHTTP(w, r)
		return
	}

	red, ok := Resolve(r.URL.RequestURI(), rules)
	if !ok {
		h.next.ServeHTTP(w, r)
		return
	}

	http.Redirect(w, r, red.Target, red.Status)
}

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }
