package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-apm-agent-config/internal/agentconfig"
	"github.com/MKhiriev/go-apm-agent-config/internal/logger"
	"github.com/MKhiriev/go-apm-agent-config/internal/source"
)

type staticConfig struct {
	snapshot agentconfig.Snapshot
}

func (s staticConfig) Snapshot() agentconfig.Snapshot {
	return s.snapshot
}

func serve(t *testing.T, h http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(method, path, nil))
	return rr
}

func TestHealth(t *testing.T) {
	router := NewHandler(staticConfig{}, time.Second, logger.Nop()).Init()

	rr := serve(t, router, http.MethodGet, "/healthz")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())
	assert.NotEmpty(t, rr.Header().Get(traceIDHeader))
}

func TestGetConfig_RendersSnapshot(t *testing.T) {
	snapshot := agentconfig.Snapshot{
		LogLevel:    agentconfig.LogLevelDebug,
		ServerURLs:  []string{"http://myServerFromTheConfigFile:8080"},
		ServiceName: "My_Test_Application",
		SecretToken: "[REDACTED]",
	}
	router := NewHandler(staticConfig{snapshot: snapshot}, 0, logger.Nop()).Init()

	rr := serve(t, router, http.MethodGet, "/debug/config")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "Debug", body["log_level"])
	assert.Equal(t, []any{"http://myServerFromTheConfigFile:8080"}, body["server_urls"])
	assert.Equal(t, "My_Test_Application", body["service_name"])
	assert.Equal(t, "[REDACTED]", body["secret_token"])
}

func TestGetConfig_FollowsReader(t *testing.T) {
	provider := source.NewMemory(map[string]string{
		agentconfig.KeyLogLevel:    "Warning",
		agentconfig.KeySecretToken: "do-not-leak",
	})
	reader := agentconfig.NewReader(provider, source.MapEnvironment{}, nil)
	t.Cleanup(reader.Close)

	router := NewHandler(reader, time.Second, logger.Nop()).Init()

	rr := serve(t, router, http.MethodGet, "/debug/config")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"log_level":"Warning"`)
	assert.NotContains(t, rr.Body.String(), "do-not-leak")

	provider.Set(agentconfig.KeyServiceName, "renamed")

	rr = serve(t, router, http.MethodGet, "/debug/config")
	assert.Contains(t, rr.Body.String(), `"service_name":"renamed"`)
}

func TestGetConfig_OverflowingIntervalFallsBack(t *testing.T) {
	provider := source.NewMemory(map[string]string{
		agentconfig.KeyMetricsInterval: "1e305m",
		agentconfig.KeyFlushInterval:   "1e308s",
	})
	reader := agentconfig.NewReader(provider, source.MapEnvironment{}, nil)
	t.Cleanup(reader.Close)

	router := NewHandler(reader, time.Second, logger.Nop()).Init()

	rr := serve(t, router, http.MethodGet, "/debug/config")
	require.Equal(t, http.StatusOK, rr.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.InDelta(t, 30000, body["metrics_interval_ms"], 1e-9)
	assert.InDelta(t, 10000, body["flush_interval_ms"], 1e-9)
}

func TestListSettings(t *testing.T) {
	router := NewHandler(staticConfig{}, 0, logger.Nop()).Init()

	rr := serve(t, router, http.MethodGet, "/debug/settings")

	require.Equal(t, http.StatusOK, rr.Code)

	var defs []agentconfig.Definition
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &defs))
	assert.Equal(t, agentconfig.Definitions(), defs)
}

func TestGetSetting(t *testing.T) {
	router := NewHandler(staticConfig{}, 0, logger.Nop()).Init()

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantEnv    string
	}{
		{name: "exact name", path: "/debug/settings/LogLevel", wantStatus: http.StatusOK, wantEnv: agentconfig.EnvLogLevel},
		{name: "any casing", path: "/debug/settings/transactionsamplerate", wantStatus: http.StatusOK, wantEnv: agentconfig.EnvTransactionSampleRate},
		{name: "unknown", path: "/debug/settings/Nope", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serve(t, router, http.MethodGet, tt.path)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantEnv == "" {
				return
			}

			var def agentconfig.Definition
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &def))
			assert.Equal(t, tt.wantEnv, def.EnvVar)
		})
	}
}

type panickingConfig struct{}

func (panickingConfig) Snapshot() agentconfig.Snapshot {
	panic("snapshot failed")
}

func TestInit_RecoversFromPanics(t *testing.T) {
	router := NewHandler(panickingConfig{}, 0, logger.Nop()).Init()

	rr := serve(t, router, http.MethodGet, "/debug/config")

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
