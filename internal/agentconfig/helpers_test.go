package agentconfig

import (
	"bytes"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-apm-agent-config/internal/logger"
)

// syncBuffer lets the reload goroutine and the test share one log sink.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newCaptureLogger() (*logger.Logger, *syncBuffer) {
	buf := &syncBuffer{}
	return logger.NewWriterLogger("test", buf), buf
}

// logLines decodes every JSON line written to buf.
func logLines(t *testing.T, buf *syncBuffer) []map[string]any {
	t.Helper()

	var lines []map[string]any
	for _, raw := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if raw == "" {
			continue
		}
		var line map[string]any
		require.NoError(t, json.Unmarshal([]byte(raw), &line), raw)
		lines = append(lines, line)
	}
	return lines
}

// linesAt keeps only the lines logged at level.
func linesAt(t *testing.T, buf *syncBuffer, level string) []map[string]any {
	t.Helper()

	var out []map[string]any
	for _, line := range logLines(t, buf) {
		if line["level"] == level {
			out = append(out, line)
		}
	}
	return out
}
