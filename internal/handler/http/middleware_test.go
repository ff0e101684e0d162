package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-apm-agent-config/internal/logger"
)

func newTestHandler(log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{config: staticConfig{}, logger: log}
}

// ---- responseWriter ----

func TestResponseWriter_FirstWriteHeaderWins(t *testing.T) {
	rr := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rr}

	w.WriteHeader(http.StatusAccepted)
	w.WriteHeader(http.StatusInternalServerError)

	assert.Equal(t, http.StatusAccepted, w.Status())
	assert.Equal(t, http.StatusAccepted, rr.Code)
}

func TestResponseWriter_Write(t *testing.T) {
	tests := []struct {
		name         string
		explicitCode int
		writes       []string
		wantStatus   int
		wantSize     int
	}{
		{name: "implicit 200", writes: []string{"ok"}, wantStatus: http.StatusOK, wantSize: 2},
		{name: "sizes accumulate", writes: []string{"foo", "bar", "baz"}, wantStatus: http.StatusOK, wantSize: 9},
		{name: "explicit 404 kept", explicitCode: http.StatusNotFound, writes: []string{"missing"}, wantStatus: http.StatusNotFound, wantSize: 7},
		{name: "nothing written", wantStatus: http.StatusOK, wantSize: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			w := &responseWriter{ResponseWriter: rr}

			if tt.explicitCode != 0 {
				w.WriteHeader(tt.explicitCode)
			}
			for _, s := range tt.writes {
				_, err := w.Write([]byte(s))
				require.NoError(t, err)
			}

			assert.Equal(t, tt.wantStatus, w.Status())
			assert.Equal(t, tt.wantSize, w.size)
			assert.Equal(t, tt.wantSize, rr.Body.Len())
		})
	}
}

// ---- withTraceID ----

func TestWithTraceID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
	}{
		{name: "reuses incoming id", incoming: "my-custom-trace-id"},
		{name: "generates uuid", incoming: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := newTestHandler(logger.NewWriterLogger("test", &buf))

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				logger.FromRequest(r).Info().Msg("inside")
				w.WriteHeader(http.StatusTeapot)
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.incoming != "" {
				req.Header.Set(traceIDHeader, tt.incoming)
			}
			rr := httptest.NewRecorder()
			h.withTraceID(next).ServeHTTP(rr, req)

			assert.Equal(t, http.StatusTeapot, rr.Code)

			id := rr.Header().Get(traceIDHeader)
			require.NotEmpty(t, id)
			if tt.incoming != "" {
				assert.Equal(t, tt.incoming, id)
			} else {
				_, err := uuid.Parse(id)
				assert.NoError(t, err)
			}

			var line map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
			assert.Equal(t, id, line["trace_id"])
		})
	}
}

func TestWithTraceID_UniqueIDs(t *testing.T) {
	h := newTestHandler(nil)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		rr := httptest.NewRecorder()
		h.withTraceID(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
		seen[rr.Header().Get(traceIDHeader)] = struct{}{}
	}

	assert.Len(t, seen, 50)
}

// ---- withLogging ----

func TestWithLogging(t *testing.T) {
	tests := []struct {
		name         string
		method       string
		path         string
		status       int
		body         string
		wantContains []string
	}{
		{
			name:         "GET 200",
			method:       http.MethodGet,
			path:         "/debug/config",
			status:       http.StatusOK,
			body:         "{}",
			wantContains: []string{`"method":"GET"`, `"uri":"/debug/config"`, `"status":200`, `"size":2`},
		},
		{
			name:         "404 with query",
			method:       http.MethodGet,
			path:         "/debug/settings/Nope?x=1",
			status:       http.StatusNotFound,
			wantContains: []string{`"uri":"/debug/settings/Nope?x=1"`, `"status":404`, `"size":0`},
		},
		{
			name:         "implicit 200",
			method:       http.MethodHead,
			path:         "/healthz",
			wantContains: []string{`"method":"HEAD"`, `"status":200`, `"duration":`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := logger.NewWriterLogger("test", &buf)

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.status != 0 {
					w.WriteHeader(tt.status)
				}
				if tt.body != "" {
					_, _ = w.Write([]byte(tt.body))
				}
			})

			req := httptest.NewRequest(tt.method, tt.path, nil)
			req = req.WithContext(l.WithContext(req.Context()))
			withLogging(next).ServeHTTP(httptest.NewRecorder(), req)

			for _, want := range tt.wantContains {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestWithLogging_DoesNotRecoverPanics(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	assert.Panics(t, func() {
		withLogging(next).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}

// ---- CheckHTTPMethod ----

func TestCheckHTTPMethod(t *testing.T) {
	router := newTestHandler(nil).Init()

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantAllow  string
	}{
		{name: "registered route", method: http.MethodGet, path: "/healthz", wantStatus: http.StatusOK},
		{name: "wrong method top level", method: http.MethodPost, path: "/healthz", wantStatus: http.StatusMethodNotAllowed, wantAllow: "GET"},
		{name: "wrong method sub router", method: http.MethodDelete, path: "/debug/config", wantStatus: http.StatusMethodNotAllowed, wantAllow: "GET"},
		{name: "wrong method with param", method: http.MethodPut, path: "/debug/settings/LogLevel", wantStatus: http.StatusMethodNotAllowed, wantAllow: "GET"},
		{name: "unknown path", method: http.MethodGet, path: "/nowhere", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantAllow, strings.TrimSpace(rr.Header().Get("Allow")))
		})
	}
}
