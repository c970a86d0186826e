// Copyright 2025 Vitor Carvalho. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/lightningspirit/wp-redirects/blob/master/LICENSE.txt.

package redirects

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/lightningspirit/wp-redirects/internal/slogpretty"
)

// LoggerWithHandler returns middleware that logs request information using the provided slog.Handler.
// It logs details such as the remote IP, HTTP method, request path, status code and latency. For
// redirect responses, the Location header is logged as well. The remote IP is derived with the
// [RemoteAddr] resolver; servers running behind a reverse proxy should use [LoggerWithResolver].
func LoggerWithHandler(handler slog.Handler) MiddlewareFunc {
	return LoggerWithResolver(handler, NewRemoteAddr())
}

// LoggerWithResolver returns middleware that logs request information using the provided
// slog.Handler, deriving the client IP with the given resolver. It panics if resolver is nil.
func LoggerWithResolver(handler slog.Handler, resolver ClientIPResolver) MiddlewareFunc {
	if resolver == nil {
		panic(errors.New("resolver must not be nil"))
	}
	log := slog.New(handler)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := wrapRecorder(w)
			start := time.Now()
			next.ServeHTTP(rec, r)
			latency := time.Since(start)

			lvl := level(rec.Status())
			var location string
			if lvl.Level() == slog.LevelDebug {
				location = rec.Header().Get(HeaderLocation)
			}

			ipStr := "unknown"
			if ipAddr, err := resolver.ClientIP(r); err == nil {
				ipStr = ipAddr.String()
			}

			if location == "" {
				log.LogAttrs(
					r.Context(),
					lvl,
					ipStr,
					slog.Int("status", rec.Status()),
					slog.String("method", r.Method),
					slog.String("path", r.URL.String()),
					slog.Duration("latency", roundLatency(latency)),
				)
			} else {
				log.LogAttrs(
					r.Context(),
					lvl,
					ipStr,
					slog.Int("status", rec.Status()),
					slog.String("method", r.Method),
					slog.String("path", r.URL.String()),
					slog.Duration("latency", roundLatency(latency)),
					slog.String("location", location),
				)
			}
		})
	}
}

// Logger returns middleware that logs request information to os.Stdout and os.Stderr.
// It logs details such as the remote IP, HTTP method, request path, status code and latency.
func Logger() MiddlewareFunc {
	return LoggerWithHandler(slogpretty.DefaultHandler)
}

func level(status int) slog.Level {
	switch {
	case status >= 200 && status < 300:
		return slog.LevelInfo
	case status >= 300 && status < 400:
		return slog.LevelDebug
	case status >= 400 && status < 500:
		return slog.LevelWarn
	case status >= 500:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func roundLatency(d time.Duration) time.Duration {
	switch {
	case d < 1*time.Microsecond:
		return d.Round(100 * time.Nanosecond)
	case d < 1*time.Millisecond:
		return d.Round(10 * time.Microsecond)
	case d < 10*time.Millisecond:
		return d.Round(100 * time.Microsecond)
	case d < 100*time.Millisecond:
		return d.Round(1 * time.Millisecond)
	case d < 1*time.Second:
		return d.Round(10 * time.Millisecond)
	case d < 10*time.Second:
		return d.Round(100 * time.Millisecond)
	default:
		return d.Round(1 * time.Second)
	}
}
