// Copyright 2025 Vitor Carvalho. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/lightningspirit/wp-redirects/blob/master/LICENSE.txt.

package redirects

import (
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
)

var _ http.Handler = (*AdminHandler)(nil)

// AdminHandler exposes the rule collection of a [Store] over HTTP. GET returns
// the current collection as a JSON array of {from, to, type} objects. PUT and
// POST replace the entire collection atomically with the submitted array and
// echo back the stored collection in its normalized form.
//
// A collection containing any invalid rule is rejected wholesale with a 400
// status: a replace never partially mutates the stored state.
type AdminHandler struct {
	store Store
	log   *slog.Logger
	token string
}

// NewAdminHandler returns an AdminHandler managing the collection of store.
func NewAdminHandler(store Store, opts ...AdminOption) (*AdminHandler, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: store cannot be nil", ErrInvalidConfig)
	}

	h := &AdminHandler{
		store: store,
		log:   slog.New(discardHandler{}),
	}
	for _, opt := range opts {
		if err := opt.applyAdmin(sealedOption{admin: h}); err != nil {
			return nil, err
		}
	}
	return h, nil
}

func (h *AdminHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		w.Header().Set(HeaderWWWAuthenticate, "Bearer")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	switch r.Method {
	case http.MethodGet, http.MethodHead:
		h.list(w, r)
	case http.MethodPut, http.MethodPost:
		h.replace(w, r)
	default:
		w.Header().Set(HeaderAllow, "GET, HEAD, PUT, POST")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
}

func (h *AdminHandler) list(w http.ResponseWriter, r *http.Request) {
	rules, err := h.store.Rules()
	if err != nil {
		h.log.LogAttrs(r.Context(), slog.LevelError, "rule store read failed", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	writeRules(w, http.StatusOK, rules)
}

func (h *AdminHandler) replace(w http.ResponseWriter, r *http.Request) {
	var rules []Rule
	if err := json.NewDecoder(r.Body).Decode(&rules); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.store.Replace(rules); err != nil {
		h.log.LogAttrs(r.Context(), slog.LevelError, "rule store replace failed", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.log.LogAttrs(r.Context(), slog.LevelInfo, "rule collection replaced", slog.Int("rules", len(rules)))
	writeRules(w, http.StatusOK, rules)
}

func (h *AdminHandler) authorized(r *http.Request) bool {
	if h.token == "" {
		return true
	}
	auth := r.Header.Get(HeaderAuthorization)
	bearer, ok := strings.CutPrefix(auth, "Bearer ")
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(bearer), []byte(h.token)) == 1
}

// writeRules encodes rules as a human readable JSON array. HTML escaping is
// disabled so target URLs carrying "&" survive round-trips unmangled.
func writeRules(w http.ResponseWriter, status int, rules []Rule) {
	if rules == nil {
		rules = []Rule{}
	}
	w.Header().Set(HeaderContentType, MIMEApplicationJSONCharsetUTF8)
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	_ = enc.Encode(rules)
}
