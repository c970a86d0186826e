// Copyright 2025 Vitor Carvalho. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/lightningspirit/wp-redirects/blob/master/LICENSE.txt.

package redirects

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noFlushWriter struct {
	http.ResponseWriter
}

func TestRecorderStatusAndSize(t *testing.T) {
	w := httptest.NewRecorder()
	rec := wrapRecorder(w)

	assert.False(t, rec.Written())
	assert.Equal(t, http.StatusOK, rec.Status())
	assert.Equal(t, notWritten, rec.Size())

	rec.WriteHeader(http.StatusMovedPermanently)
	assert.True(t, rec.Written())
	assert.Equal(t, http.StatusMovedPermanently, rec.Status())
	assert.Equal(t, 0, rec.Size())

	n, err := rec.Write([]byte("moved"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, 5, rec.Size())
	assert.Equal(t, http.StatusMovedPermanently, w.Code)
}

func TestRecorderSuperfluousWriteHeader(t *testing.T) {
	rec := new(recorder)
	w := httptest.NewRecorder()
	rec.reset(w)
	rec.WriteHeader(http.StatusCreated)
	assert.Equal(t, http.StatusCreated, w.Code)
	rec.WriteHeader(http.StatusAccepted)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, http.StatusCreated, rec.Status())

	rec = new(recorder)
	w = httptest.NewRecorder()
	rec.reset(w)
	_, err := rec.Write([]byte("foo"))
	require.NoError(t, err)
	rec.WriteHeader(http.StatusCreated)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, http.StatusOK, rec.Status())
}

func TestRecorderImplicitWriteHeader(t *testing.T) {
	rec := new(recorder)
	w := httptest.NewRecorder()
	rec.reset(w)

	_, err := rec.Write([]byte("foo"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "foo", w.Body.String())
	assert.Equal(t, 3, rec.Size())
}

func TestRecorderUnwrap(t *testing.T) {
	w := httptest.NewRecorder()
	rec := wrapRecorder(w)
	assert.Equal(t, http.ResponseWriter(w), rec.Unwrap())
}

func TestWrapRecorderFlusher(t *testing.T) {
	// httptest recorder implements http.Flusher, the wrapper must keep exposing it
	rec := wrapRecorder(httptest.NewRecorder())
	_, ok := rec.(http.Flusher)
	assert.True(t, ok)

	rec = wrapRecorder(noFlushWriter{httptest.NewRecorder()})
	_, ok = rec.(http.Flusher)
	assert.False(t, ok)
}

func TestFlushWriterStatus(t *testing.T) {
	w := httptest.NewRecorder()
	rec := wrapRecorder(w)

	rec.(http.Flusher).Flush()
	assert.True(t, rec.Written())
	assert.Equal(t, 0, rec.Size())
	assert.True(t, w.Flushed)
}
