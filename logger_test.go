package redirects

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerWithHandler(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	logged := LoggerWithHandler(slog.NewTextHandler(buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == "time" {
				return slog.String("time", "time")
			}
			if a.Key == "latency" {
				return slog.String("latency", "latency")
			}
			return a
		},
	}))

	mux := http.NewServeMux()
	mux.HandleFunc("/success", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/failure", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("/moved", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/success", http.StatusMovedPermanently)
	})
	h := logged(mux)

	cases := []struct {
		name string
		req  *http.Request
		want string
	}{
		{
			name: "should log info level",
			req:  httptest.NewRequest(http.MethodGet, "/success", nil),
			want: "time=time level=INFO msg=192.0.2.1 status=200 method=GET path=/success latency=latency\n",
		},
		{
			name: "should log error level",
			req:  httptest.NewRequest(http.MethodGet, "/failure", nil),
			want: "time=time level=ERROR msg=192.0.2.1 status=500 method=GET path=/failure latency=latency\n",
		},
		{
			name: "should log warn level",
			req:  httptest.NewRequest(http.MethodGet, "/foobar", nil),
			want: "time=time level=WARN msg=192.0.2.1 status=404 method=GET path=/foobar latency=latency\n",
		},
		{
			name: "should log debug level with location",
			req:  httptest.NewRequest(http.MethodGet, "/moved", nil),
			want: "time=time level=DEBUG msg=192.0.2.1 status=301 method=GET path=/moved latency=latency location=/success\n",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			buf.Reset()
			w := httptest.NewRecorder()
			h.ServeHTTP(w, tc.req)
			assert.Equal(t, tc.want, buf.String())
		})
	}
}

func TestLoggerWithResolver(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	logged := LoggerWithResolver(slog.NewTextHandler(buf, nil), NewChain(NewSingleIPHeader(HeaderXRealIP), NewRemoteAddr()))

	h := logged(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/success", nil)
	req.Header.Set(HeaderXRealIP, "203.0.113.7")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Contains(t, buf.String(), "msg=203.0.113.7")
}

func TestLoggerWithNilResolver(t *testing.T) {
	assert.Panics(t, func() { LoggerWithResolver(slog.NewTextHandler(bytes.NewBuffer(nil), nil), nil) })
}

func TestLoggerUnknownRemoteAddr(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	logged := LoggerWithHandler(slog.NewTextHandler(buf, nil))

	h := logged(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/success", nil)
	req.RemoteAddr = "bogus"
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Contains(t, buf.String(), "msg=unknown")
}

func TestLevel(t *testing.T) {
	require.Equal(t, slog.LevelInfo, level(200))
	require.Equal(t, slog.LevelDebug, level(301))
	require.Equal(t, slog.LevelWarn, level(404))
	require.Equal(t, slog.LevelError, level(500))
	require.Equal(t, slog.LevelInfo, level(100))
}
