package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNetAddress_String tests the String method of NetAddress
func TestNetAddress_String(t *testing.T) {
	tests := []struct {
		name     string
		addr     NetAddress
		expected string
	}{
		{
			name:     "empty address",
			addr:     NetAddress{},
			expected: "",
		},
		{
			name:     "localhost with port",
			addr:     NetAddress{Host: "localhost", Port: 8201},
			expected: "localhost:8201",
		},
		{
			name:     "IP address with port",
			addr:     NetAddress{Host: "127.0.0.1", Port: 9090},
			expected: "127.0.0.1:9090",
		},
		{
			name:     "IPv6 address with port",
			addr:     NetAddress{Host: "::1", Port: 9090},
			expected: "[::1]:9090",
		},
		{
			name:     "only port no host",
			addr:     NetAddress{Host: "", Port: 8201},
			expected: ":8201",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.addr.String()
			assert.Equal(t, tt.expected, result)
		})
	}
}

// TestNetAddress_Set tests the Set method of NetAddress
func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		expectError  bool
		expectedHost string
		expectedPort int
	}{
		{name: "localhost", input: "localhost:8201", expectedHost: "localhost", expectedPort: 8201},
		{name: "ipv4", input: "0.0.0.0:80", expectedHost: "0.0.0.0", expectedPort: 80},
		{name: "ipv6", input: "[::1]:8201", expectedHost: "::1", expectedPort: 8201},
		{name: "port only", input: ":8201", expectedHost: "", expectedPort: 8201},
		{name: "missing port", input: "localhost", expectError: true},
		{name: "non numeric port", input: "localhost:http", expectError: true},
		{name: "zero port", input: "localhost:0", expectError: true},
		{name: "port too large", input: "localhost:70000", expectError: true},
		{name: "hostname", input: "example.com:8201", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var addr NetAddress
			err := addr.Set(tt.input)

			if tt.expectError {
				assert.Error(t, err)
				assert.Equal(t, NetAddress{}, addr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectedHost, addr.Host)
			assert.Equal(t, tt.expectedPort, addr.Port)
		})
	}
}

func TestNetAddress_Type(t *testing.T) {
	assert.Equal(t, "host:port", new(NetAddress).Type())
}

func TestParseFlags_AllFlags(t *testing.T) {
	cfg, err := ParseFlags([]string{
		"--settings", "/etc/agent/appsettings.yaml",
		"--watch",
		"--debug-address", "127.0.0.1:8201",
		"--debug-request-timeout", "2s",
		"--debug-shutdown-timeout", "30s",
		"--log-role", "flag-role",
	})

	require.NoError(t, err)
	assert.Equal(t, "/etc/agent/appsettings.yaml", cfg.Settings.File)
	assert.True(t, cfg.Settings.Watch)
	assert.Equal(t, "127.0.0.1:8201", cfg.Debug.Address)
	assert.Equal(t, 2*time.Second, cfg.Debug.RequestTimeout)
	assert.Equal(t, 30*time.Second, cfg.Debug.ShutdownTimeout)
	assert.Equal(t, "flag-role", cfg.Log.Role)
}

func TestParseFlags_Shorthands(t *testing.T) {
	cfg, err := ParseFlags([]string{"-c", "settings.json", "-w", "-a", "localhost:8201"})

	require.NoError(t, err)
	assert.Equal(t, "settings.json", cfg.Settings.File)
	assert.True(t, cfg.Settings.Watch)
	assert.Equal(t, "localhost:8201", cfg.Debug.Address)
}

func TestParseFlags_NoArgs_ZeroConfig(t *testing.T) {
	cfg, err := ParseFlags(nil)

	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"--unknown"}},
		{"bad address", []string{"-a", "nowhere"}},
		{"bad duration", []string{"--debug-request-timeout", "later"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseFlags(tt.args)

			assert.Nil(t, cfg)
			assert.Error(t, err)
		})
	}
}
