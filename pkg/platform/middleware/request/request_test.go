package request

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"claimguard/pkg/requestcontext"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chromeUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
}

func TestRequestID(t *testing.T) {
	t.Run("mints a UUID when the header is absent", func(t *testing.T) {
		var seen string
		h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = requestcontext.RequestID(r.Context())
		}))

		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/claims", nil))

		assert.Len(t, seen, 36)
		assert.Equal(t, seen, w.Header().Get(HeaderRequestID))
	})

	cases := []struct {
		name   string
		header string
		keep   bool
	}{
		{"plain", "console-42", true},
		{"dots and underscores", "trace.span_7", true},
		{"max length", strings.Repeat("a", MaxRequestIDLength), true},
		{"too long", strings.Repeat("a", MaxRequestIDLength+1), false},
		{"newline", "ok\nforged-line", false},
		{"space", "two words", false},
		{"quote", `a"b`, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/claims", nil)
			req.Header.Set(HeaderRequestID, tc.header)
			w := httptest.NewRecorder()
			RequestID(okHandler()).ServeHTTP(w, req)

			got := w.Header().Get(HeaderRequestID)
			if tc.keep {
				assert.Equal(t, tc.header, got)
			} else {
				assert.NotEqual(t, tc.header, got)
				assert.Len(t, got, 36)
			}
		})
	}
}

func TestParseClient(t *testing.T) {
	c := ParseClient(chromeUA)
	assert.Equal(t, "Chrome", c.Browser)
	assert.Contains(t, c.OS, "Windows")
	assert.False(t, c.Mobile)

	assert.Equal(t, requestcontext.Client{}, ParseClient(""))
}

func TestLogger(t *testing.T) {
	newLogger := func() (*slog.Logger, *bytes.Buffer) {
		var buf bytes.Buffer
		return slog.New(slog.NewJSONHandler(&buf, nil)), &buf
	}

	t.Run("records status and client browser", func(t *testing.T) {
		logger, buf := newLogger()
		h := RequestID(ClientInfo(Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusConflict)
		}))))

		req := httptest.NewRequest(http.MethodPost, "/claims/c-1/verify", nil)
		req.Header.Set("User-Agent", chromeUA)
		h.ServeHTTP(httptest.NewRecorder(), req)

		var line map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		assert.Equal(t, "http request", line["msg"])
		assert.EqualValues(t, http.StatusConflict, line["status"])
		assert.Equal(t, "Chrome", line["client"])
		assert.NotEmpty(t, line["request_id"])
	})

	t.Run("skips healthy probes", func(t *testing.T) {
		logger, buf := newLogger()
		Logger(logger)(okHandler()).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Zero(t, buf.Len())
	})

	t.Run("logs failing probes at warn", func(t *testing.T) {
		logger, buf := newLogger()
		h := Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Contains(t, buf.String(), `"level":"WARN"`)
	})
}

func TestRecovery(t *testing.T) {
	h := Recovery(slog.New(slog.DiscardHandler))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("nil map")
	}))

	w := httptest.NewRecorder()
	require.NotPanics(t, func() { h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/claims", nil)) })
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal_error")
}

func TestContentTypeJSON(t *testing.T) {
	cases := []struct {
		method, ct string
		want       int
	}{
		{http.MethodPost, "application/json", http.StatusOK},
		{http.MethodPatch, "application/json; charset=utf-8", http.StatusOK},
		{http.MethodPost, "", http.StatusOK},
		{http.MethodPost, "text/plain", http.StatusUnsupportedMediaType},
		{http.MethodPut, "application/x-www-form-urlencoded", http.StatusUnsupportedMediaType},
		{http.MethodGet, "text/plain", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.ct, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, "/claims", nil)
			if tc.ct != "" {
				req.Header.Set("Content-Type", tc.ct)
			}
			w := httptest.NewRecorder()
			ContentTypeJSON(okHandler()).ServeHTTP(w, req)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestBodyLimit(t *testing.T) {
	read := func(limit int64, body string) error {
		var readErr error
		h := BodyLimit(limit)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			_, readErr = io.ReadAll(r.Body)
		}))
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/claims", strings.NewReader(body)))
		return readErr
	}

	assert.NoError(t, read(16, strings.Repeat("x", 16)))

	err := read(16, strings.Repeat("x", 17))
	var maxErr *http.MaxBytesError
	require.True(t, errors.As(err, &maxErr))
	assert.EqualValues(t, 16, maxErr.Limit)
}

func TestLatencyUsesRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	r := chi.NewRouter()
	r.Use(Latency(m))
	r.Post("/claims/{claimID}/verify", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	for _, id := range []string{"c-1", "c-2", "c-3"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/claims/"+id+"/verify", nil))
	}

	assert.Equal(t, 1, testutil.CollectAndCount(m.EndpointLatency))
	var nilMetrics *Metrics
	assert.NotPanics(t, func() { nilMetrics.ObserveEndpointLatency("GET", "/", 200, 0) })
}
