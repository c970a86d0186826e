// Copyright 2025 Vitor Carvalho. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/lightningspirit/wp-redirects/blob/master/LICENSE.txt.

package redirects

import (
	"fmt"
	"log/slog"
	"net/http"
)

// HandlerOption configures a [Handler].
type HandlerOption interface {
	applyHandler(sealedOption) error
}

// AdminOption configures an [AdminHandler].
type AdminOption interface {
	applyAdmin(sealedOption) error
}

type sealedOption struct {
	handler *Handler
	admin   *AdminHandler
}

type optionFunc func(sealedOption) error

func (o optionFunc) applyHandler(s sealedOption) error {
	return o(s)
}

func (o optionFunc) applyAdmin(s sealedOption) error {
	return o(s)
}

// WithLogHandler sets the [slog.Handler] used to report store read failures and
// administrative mutations. By default, logs are discarded.
func WithLogHandler(handler slog.Handler) interface {
	HandlerOption
	AdminOption
} {
	return optionFunc(func(s sealedOption) error {
		if handler == nil {
			return fmt.Errorf("%w: log handler cannot be nil", ErrInvalidConfig)
		}
		if s.handler != nil {
			s.handler.log = slog.New(handler)
		}
		if s.admin != nil {
			s.admin.log = slog.New(handler)
		}
		return nil
	})
}

// WithMethods restricts the HTTP methods eligible for redirection. Requests
// using any other method always pass through to the next handler. The default
// is GET and HEAD.
func WithMethods(methods ...string) HandlerOption {
	return optionFunc(func(s sealedOption) error {
		if len(methods) == 0 {
			return fmt.Errorf("%w: at least one method is required", ErrInvalidConfig)
		}
		eligible := make(map[string]struct{}, len(methods))
		for _, method := range methods {
			if method == "" {
				return fmt.Errorf("%w: method cannot be empty", ErrInvalidConfig)
			}
			eligible[method] = struct{}{}
		}
		s.handler.methods = eligible
		return nil
	})
}

// WithToken protects the administrative endpoint with a bearer token. Requests
// must carry an "Authorization: Bearer <token>" header. Without this option the
// endpoint is open, which is only suitable behind an authenticating proxy.
func WithToken(token string) AdminOption {
	return optionFunc(func(s sealedOption) error {
		if token == "" {
			return fmt.Errorf("%w: token cannot be empty", ErrInvalidConfig)
		}
		s.admin.token = token
		return nil
	})
}

func defaultMethods() map[string]struct{} {
	return map[string]struct{}{
		http.MethodGet:  {},
		http.MethodHead: {},
	}
}
