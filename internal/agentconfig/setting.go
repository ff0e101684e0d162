package agentconfig

import (
	"net/url"

	"github.com/MKhiriev/go-apm-agent-config/internal/logger"
)

// Definition describes where a setting is read from and what it falls back
// to. Default is the human-readable form used for diagnostics.
type Definition struct {
	Name    string `json:"name"`
	Key     string `json:"key"`
	EnvVar  string `json:"env_var"`
	Default string `json:"default"`
}

// Setting binds a Definition to the parser producing its typed value.
type Setting[T any] struct {
	Definition
	Parse func(*logger.Logger, Entry) T
}

var (
	LogLevelSetting = Setting[LogLevel]{
		Definition: Definition{Name: "LogLevel", Key: KeyLogLevel, EnvVar: EnvLogLevel, Default: DefaultLogLevel.String()},
		Parse:      ParseLogLevel,
	}
	ServerURLsSetting = Setting[[]*url.URL]{
		Definition: Definition{Name: "ServerUrls", Key: KeyServerURLs, EnvVar: EnvServerURLs, Default: DefaultServerURL},
		Parse:      ParseServerURLs,
	}
	ServiceNameSetting = Setting[string]{
		Definition: Definition{Name: "ServiceName", Key: KeyServiceName, EnvVar: EnvServiceName, Default: "executable name"},
		Parse:      ParseServiceName,
	}
	ServiceVersionSetting = Setting[string]{
		Definition: Definition{Name: "ServiceVersion", Key: KeyServiceVersion, EnvVar: EnvServiceVersion},
		Parse:      ParseTrimmed,
	}
	EnvironmentSetting = Setting[string]{
		Definition: Definition{Name: "Environment", Key: KeyEnvironment, EnvVar: EnvEnvironment},
		Parse:      ParseTrimmed,
	}
	SecretTokenSetting = Setting[string]{
		Definition: Definition{Name: "SecretToken", Key: KeySecretToken, EnvVar: EnvSecretToken},
		Parse:      ParseSecretToken,
	}
	CaptureHeadersSetting = Setting[bool]{
		Definition: Definition{Name: "CaptureHeaders", Key: KeyCaptureHeaders, EnvVar: EnvCaptureHeaders, Default: "true"},
		Parse:      ParseCaptureHeaders,
	}
	TransactionSampleRateSetting = Setting[float64]{
		Definition: Definition{Name: "TransactionSampleRate", Key: KeyTransactionSampleRate, EnvVar: EnvTransactionSampleRate, Default: "1.0"},
		Parse:      ParseTransactionSampleRate,
	}
	MetricsIntervalSetting = Setting[float64]{
		Definition: Definition{Name: "MetricsInterval", Key: KeyMetricsInterval, EnvVar: EnvMetricsInterval, Default: DefaultMetricsInterval.String()},
		Parse:      ParseMetricsInterval,
	}
	FlushIntervalSetting = Setting[float64]{
		Definition: Definition{Name: "FlushInterval", Key: KeyFlushInterval, EnvVar: EnvFlushInterval, Default: DefaultFlushInterval.String()},
		Parse:      ParseFlushInterval,
	}
	CaptureBodySetting = Setting[CaptureBody]{
		Definition: Definition{Name: "CaptureBody", Key: KeyCaptureBody, EnvVar: EnvCaptureBody, Default: string(DefaultCaptureBody)},
		Parse:      ParseCaptureBody,
	}
	CaptureBodyContentTypesSetting = Setting[[]string]{
		Definition: Definition{Name: "CaptureBodyContentTypes", Key: KeyCaptureBodyContentTypes, EnvVar: EnvCaptureBodyContentTypes, Default: "application/x-www-form-urlencoded*, text/*, application/json*, application/xml*"},
		Parse:      ParseCaptureBodyContentTypes,
	}
	TransactionMaxSpansSetting = Setting[int]{
		Definition: Definition{Name: "TransactionMaxSpans", Key: KeyTransactionMaxSpans, EnvVar: EnvTransactionMaxSpans, Default: "500"},
		Parse:      ParseTransactionMaxSpans,
	}
	StackTraceLimitSetting = Setting[int]{
		Definition: Definition{Name: "StackTraceLimit", Key: KeyStackTraceLimit, EnvVar: EnvStackTraceLimit, Default: "50"},
		Parse:      ParseStackTraceLimit,
	}
)

// Definitions lists every recognized setting in a stable order.
func Definitions() []Definition {
	return []Definition{
		LogLevelSetting.Definition,
		ServerURLsSetting.Definition,
		ServiceNameSetting.Definition,
		ServiceVersionSetting.Definition,
		EnvironmentSetting.Definition,
		SecretTokenSetting.Definition,
		CaptureHeadersSetting.Definition,
		TransactionSampleRateSetting.Definition,
		MetricsIntervalSetting.Definition,
		FlushIntervalSetting.Definition,
		CaptureBodySetting.Definition,
		CaptureBodyContentTypesSetting.Definition,
		TransactionMaxSpansSetting.Definition,
		StackTraceLimitSetting.Definition,
	}
}
