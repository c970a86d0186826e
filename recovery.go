// Copyright 2025 Vitor Carvalho. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/lightningspirit/wp-redirects/blob/master/LICENSE.txt.

package redirects

import (
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/debug"
	"strings"
)

var stdErr = log.New(os.Stderr, "", log.LstdFlags)

// RecoveryFunc is a function type that defines how to handle panics that occur during the
// handling of an HTTP request.
type RecoveryFunc func(w ResponseWriter, r *http.Request, err any)

// Recovery is a middleware that captures panics and recovers from them. It takes a custom handle function
// that will be called with the recording [ResponseWriter], the request and the value recovered from the panic.
// Note that the middleware check if the panic is caused by http.ErrAbortHandler and re-panic if true
// allowing the http server to handle it as an abort.
func Recovery(handle RecoveryFunc) MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := wrapRecorder(w)
			defer recovery(rec, r, handle)
			next.ServeHTTP(rec, r)
		})
	}
}

// DefaultHandleRecovery is a default implementation of the RecoveryFunc.
// It logs the recovered panic error to stderr, including the stack trace.
// If the response has not been written yet and the error is not caused by a broken connection,
// it sets the status code to http.StatusInternalServerError and writes a generic error message.
func DefaultHandleRecovery(w ResponseWriter, _ *http.Request, err any) {
	stdErr.Printf("[PANIC] %q panic recovered\n%s", err, debug.Stack())
	if !w.Written() && !connIsBroken(err) {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func recovery(w ResponseWriter, r *http.Request, handle RecoveryFunc) {
	if err := recover(); err != nil {
		if abortErr, ok := err.(error); ok && errors.Is(abortErr, http.ErrAbortHandler) {
			panic(abortErr)
		}
		handle(w, r, err)
	}
}

func connIsBroken(err any) bool {
	if ne, ok := err.(*net.OpError); ok {
		var se *os.SyscallError
		if errors.As(ne, &se) {
			seStr := strings.ToLower(se.Error())
			return strings.Contains(seStr, "broken pipe") || strings.Contains(seStr, "connection reset by peer")
		}
	}
	return false
}
