package agentconfig

// redacted replaces secret values in a Snapshot.
const redacted = "[REDACTED]"

// Snapshot is the typed value of every setting at one point in time.
type Snapshot struct {
	LogLevel                LogLevel    `json:"log_level"`
	ServerURLs              []string    `json:"server_urls"`
	ServiceName             string      `json:"service_name"`
	ServiceVersion          string      `json:"service_version,omitempty"`
	Environment             string      `json:"environment,omitempty"`
	SecretToken             string      `json:"secret_token,omitempty"`
	CaptureHeaders          bool        `json:"capture_headers"`
	TransactionSampleRate   float64     `json:"transaction_sample_rate"`
	MetricsIntervalMillis   float64     `json:"metrics_interval_ms"`
	FlushIntervalMillis     float64     `json:"flush_interval_ms"`
	CaptureBody             CaptureBody `json:"capture_body"`
	CaptureBodyContentTypes []string    `json:"capture_body_content_types"`
	TransactionMaxSpans     int         `json:"transaction_max_spans"`
	StackTraceLimit         int         `json:"stack_trace_limit"`
}

// Snapshot resolves every setting. The secret token is redacted.
func (r *Reader) Snapshot() Snapshot {
	urls := r.ServerURLs()
	serverURLs := make([]string, 0, len(urls))
	for _, u := range urls {
		serverURLs = append(serverURLs, u.String())
	}

	secret := r.SecretToken()
	if secret != "" {
		secret = redacted
	}

	return Snapshot{
		LogLevel:                r.LogLevel(),
		ServerURLs:              serverURLs,
		ServiceName:             r.ServiceName(),
		ServiceVersion:          r.ServiceVersion(),
		Environment:             r.Environment(),
		SecretToken:             secret,
		CaptureHeaders:          r.CaptureHeaders(),
		TransactionSampleRate:   r.TransactionSampleRate(),
		MetricsIntervalMillis:   r.MetricsInterval(),
		FlushIntervalMillis:     r.FlushInterval(),
		CaptureBody:             r.CaptureBody(),
		CaptureBodyContentTypes: r.CaptureBodyContentTypes(),
		TransactionMaxSpans:     r.TransactionMaxSpans(),
		StackTraceLimit:         r.StackTraceLimit(),
	}
}
