package agentconfig

// Origins name the source a raw value came from. They appear verbatim in
// every parse failure log line.
const (
	OriginProvider    = "Configuration Provider"
	OriginEnvironment = "Environment Variable"
)

// SectionName is the provider subtree watched for hot reload.
const SectionName = "ElasticApm"

// LogLevelSubKey is the key of the log level inside SectionName.
const LogLevelSubKey = "LogLevel"

// Provider keys.
const (
	KeyLogLevel                = SectionName + ":" + LogLevelSubKey
	KeyServerURLs              = SectionName + ":ServerUrls"
	KeyServiceName             = SectionName + ":ServiceName"
	KeyServiceVersion          = SectionName + ":ServiceVersion"
	KeyEnvironment             = SectionName + ":Environment"
	KeySecretToken             = SectionName + ":SecretToken"
	KeyCaptureHeaders          = SectionName + ":CaptureHeaders"
	KeyTransactionSampleRate   = SectionName + ":TransactionSampleRate"
	KeyMetricsInterval         = SectionName + ":MetricsInterval"
	KeyFlushInterval           = SectionName + ":FlushInterval"
	KeyCaptureBody             = SectionName + ":CaptureBody"
	KeyCaptureBodyContentTypes = SectionName + ":CaptureBodyContentTypes"
	KeyTransactionMaxSpans     = SectionName + ":TransactionMaxSpans"
	KeyStackTraceLimit         = SectionName + ":StackTraceLimit"
)

// Environment variable names used as fallback.
const (
	EnvLogLevel                = "ELASTIC_APM_LOG_LEVEL"
	EnvServerURLs              = "ELASTIC_APM_SERVER_URLS"
	EnvServiceName             = "ELASTIC_APM_SERVICE_NAME"
	EnvServiceVersion          = "ELASTIC_APM_SERVICE_VERSION"
	EnvEnvironment             = "ELASTIC_APM_ENVIRONMENT"
	EnvSecretToken             = "ELASTIC_APM_SECRET_TOKEN"
	EnvCaptureHeaders          = "ELASTIC_APM_CAPTURE_HEADERS"
	EnvTransactionSampleRate   = "ELASTIC_APM_TRANSACTION_SAMPLE_RATE"
	EnvMetricsInterval         = "ELASTIC_APM_METRICS_INTERVAL"
	EnvFlushInterval           = "ELASTIC_APM_FLUSH_INTERVAL"
	EnvCaptureBody             = "ELASTIC_APM_CAPTURE_BODY"
	EnvCaptureBodyContentTypes = "ELASTIC_APM_CAPTURE_BODY_CONTENT_TYPES"
	EnvTransactionMaxSpans     = "ELASTIC_APM_TRANSACTION_MAX_SPANS"
	EnvStackTraceLimit         = "ELASTIC_APM_STACK_TRACE_LIMIT"
)

// Entry is a raw value tagged with the key it was read under and its origin.
// For values from the environment Key is the variable name.
type Entry struct {
	Key    string
	Value  string
	Origin string
}
