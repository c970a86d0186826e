package redirects

import (
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAbortHandler(t *testing.T) {
	m := Recovery(func(w ResponseWriter, r *http.Request, err any) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(err.(error).Error()))
	})

	h := m(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		func() { panic(http.ErrAbortHandler) }()
		_, _ = w.Write([]byte("foo"))
	}))

	req := httptest.NewRequest(http.MethodPost, "/foo", nil)
	w := httptest.NewRecorder()

	defer func() {
		val := recover()
		require.NotNil(t, val)
		err := val.(error)
		require.NotNil(t, err)
		assert.ErrorIs(t, err, http.ErrAbortHandler)
	}()
	h.ServeHTTP(w, req)
}

func TestRecoveryMiddleware(t *testing.T) {
	const errMsg = "unexpected error"

	m := Recovery(func(w ResponseWriter, r *http.Request, err any) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(err.(string)))
	})

	h := m(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		func() { panic(errMsg) }()
		_, _ = w.Write([]byte("foo"))
	}))

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, errMsg, w.Body.String())
}

func TestRecoveryMiddlewareWithBrokenPipe(t *testing.T) {
	expectMsgs := map[syscall.Errno]string{
		syscall.EPIPE:      "broken pipe",
		syscall.ECONNRESET: "connection reset by peer",
	}

	for errno, expectMsg := range expectMsgs {
		t.Run(expectMsg, func(t *testing.T) {
			m := Recovery(func(w ResponseWriter, r *http.Request, err any) {
				if !connIsBroken(err) {
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				}
			})

			h := m(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				e := &net.OpError{Err: &os.SyscallError{Err: errno}}
				panic(e)
			}))

			req := httptest.NewRequest(http.MethodGet, "/foo", nil)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code)
		})
	}
}

func TestDefaultHandleRecovery(t *testing.T) {
	m := Recovery(DefaultHandleRecovery)

	h := m(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("yolo")
	}))

	req := httptest.NewRequest(http.MethodGet, "/foo", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, http.StatusText(http.StatusInternalServerError)+"\n", w.Body.String())
}

func TestDefaultHandleRecoveryAfterWrite(t *testing.T) {
	m := Recovery(DefaultHandleRecovery)

	h := m(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		panic("too late")
	}))

	req := httptest.NewRequest(http.MethodGet, "/foo", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	// the response was already committed, the recovery must not rewrite it
	assert.Equal(t, http.StatusAccepted, w.Code)
}
