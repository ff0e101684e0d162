package agentconfig

import (
	"context"
	"net/url"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-apm-agent-config/internal/logger"
	"github.com/MKhiriev/go-apm-agent-config/internal/source"
)

// Reader exposes the agent settings as typed accessors.
//
// Every accessor except LogLevel re-resolves from the live sources on each
// call. The log level is cached and refreshed from the provider's
// "ElasticApm" section whenever the provider reports a change. A Reader is
// safe for concurrent use; Close releases the change subscription.
type Reader struct {
	provider source.Provider
	env      source.Environment
	logger   *logger.Logger

	logLevel atomic.Pointer[LogLevel]

	cancel    context.CancelFunc
	done      <-chan struct{}
	closeOnce sync.Once
}

// NewReader builds a Reader and subscribes it to changes of the provider's
// "ElasticApm" section.
func NewReader(provider source.Provider, env source.Environment, log *logger.Logger) *Reader {
	if log == nil {
		log = logger.Nop()
	}
	if env == nil {
		env = source.MapEnvironment(nil)
	}

	r := &Reader{
		provider: provider,
		env:      env,
		logger:   log.WithComponent("agentconfig"),
	}

	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.done = source.Watch(ctx,
		func() source.ChangeToken { return provider.Watch(SectionName) },
		func() { r.onChange(provider.Section(SectionName)) },
	)

	return r
}

// Close stops listening for provider changes and waits for an in-flight
// notification to finish. The accessors keep working afterwards.
func (r *Reader) Close() {
	r.closeOnce.Do(func() {
		r.cancel()
		<-r.done
	})
}

// read returns the provider value for key, or the environment value for
// envVar when the provider has nothing but whitespace.
func (r *Reader) read(key, envVar string) Entry {
	if v := r.provider.Get(key); !isBlank(v) {
		return Entry{Key: key, Value: v, Origin: OriginProvider}
	}
	return Entry{Key: envVar, Value: r.env.Get(envVar), Origin: OriginEnvironment}
}

func resolve[T any](r *Reader, s Setting[T]) T {
	return s.Parse(r.logger, r.read(s.Key, s.EnvVar))
}

// LogLevel returns the cached agent log level, resolving it on first use.
func (r *Reader) LogLevel() LogLevel {
	if cached := r.logLevel.Load(); cached != nil {
		return *cached
	}

	level := resolve(r, LogLevelSetting)
	if r.logLevel.CompareAndSwap(nil, &level) {
		return level
	}

	// A reload or another first read got there first.
	return *r.logLevel.Load()
}

// ZerologLevel is LogLevel on zerolog's scale, suitable for
// logger.WithLevelFunc.
func (r *Reader) ZerologLevel() zerolog.Level {
	return r.LogLevel().Zerolog()
}

func (r *Reader) ServerURLs() []*url.URL {
	return resolve(r, ServerURLsSetting)
}

func (r *Reader) ServiceName() string {
	return resolve(r, ServiceNameSetting)
}

func (r *Reader) ServiceVersion() string {
	return resolve(r, ServiceVersionSetting)
}

func (r *Reader) Environment() string {
	return resolve(r, EnvironmentSetting)
}

func (r *Reader) SecretToken() string {
	return resolve(r, SecretTokenSetting)
}

func (r *Reader) CaptureHeaders() bool {
	return resolve(r, CaptureHeadersSetting)
}

func (r *Reader) TransactionSampleRate() float64 {
	return resolve(r, TransactionSampleRateSetting)
}

// MetricsInterval is in milliseconds; 0 means metrics are disabled.
func (r *Reader) MetricsInterval() float64 {
	return resolve(r, MetricsIntervalSetting)
}

// FlushInterval is in milliseconds.
func (r *Reader) FlushInterval() float64 {
	return resolve(r, FlushIntervalSetting)
}

func (r *Reader) CaptureBody() CaptureBody {
	return resolve(r, CaptureBodySetting)
}

func (r *Reader) CaptureBodyContentTypes() []string {
	return resolve(r, CaptureBodyContentTypesSetting)
}

func (r *Reader) TransactionMaxSpans() int {
	return resolve(r, TransactionMaxSpansSetting)
}

func (r *Reader) StackTraceLimit() int {
	return resolve(r, StackTraceLimitSetting)
}
