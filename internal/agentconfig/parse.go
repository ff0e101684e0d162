package agentconfig

import (
	"errors"
	"math"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-apm-agent-config/internal/logger"
)

// CaptureBody selects which request bodies the agent records.
type CaptureBody string

const (
	CaptureBodyOff          CaptureBody = "off"
	CaptureBodyAll          CaptureBody = "all"
	CaptureBodyErrors       CaptureBody = "errors"
	CaptureBodyTransactions CaptureBody = "transactions"
)

// Defaults applied when a setting is not configured or cannot be parsed.
const (
	DefaultLogLevel              = LogLevelError
	DefaultServerURL             = "http://localhost:8200"
	DefaultCaptureHeaders        = true
	DefaultTransactionSampleRate = 1.0
	DefaultMetricsInterval       = 30 * time.Second
	DefaultFlushInterval         = 10 * time.Second
	DefaultCaptureBody           = CaptureBodyOff
	DefaultTransactionMaxSpans   = 500
	DefaultStackTraceLimit       = 50

	unknownServiceName = "unknown"
)

var defaultCaptureBodyContentTypes = []string{
	"application/x-www-form-urlencoded*",
	"text/*",
	"application/json*",
	"application/xml*",
}

var (
	errNotFinite  = errors.New("value is not a finite number")
	errNotDecimal = errors.New("value is not a decimal number")
	errOutOfRange = errors.New("value is outside [0, 1]")
	errNegative   = errors.New("value is negative")
	errUnknown    = errors.New("value is not one of the supported values")
)

var invalidServiceNameChars = regexp.MustCompile(`[^a-zA-Z0-9 _-]`)

// fallbackServiceName names the service after the running executable.
var fallbackServiceName = func() string {
	exe, err := os.Executable()
	if err != nil {
		return unknownServiceName
	}

	name := sanitizeServiceName(strings.TrimSuffix(filepath.Base(exe), filepath.Ext(exe)))
	if strings.TrimSpace(name) == "" {
		return unknownServiceName
	}
	return name
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func logParseFailure(l *logger.Logger, what string, e Entry, fallback any, err error) {
	if l == nil {
		return
	}

	ev := l.Error().
		Str("origin", e.Origin).
		Str("key", e.Key).
		Str("value", e.Value)
	if err != nil {
		ev = ev.AnErr("reason", err)
	}
	ev.Msgf("Failed parsing %s from %s %s, value '%s'. Defaulting to %v.", what, e.Origin, e.Key, e.Value, fallback)
}

// ParseLogLevel matches the value against the level names ignoring case.
func ParseLogLevel(l *logger.Logger, e Entry) LogLevel {
	if isBlank(e.Value) {
		return DefaultLogLevel
	}

	if level, ok := lookupLogLevel(e.Value); ok {
		return level
	}

	logParseFailure(l, "log level", e, DefaultLogLevel, nil)
	return DefaultLogLevel
}

// ParseServerURLs splits the value on commas and semicolons and keeps every
// segment that is an absolute URL, in order. Bad segments are logged and
// dropped; when nothing usable remains the default URL is returned.
func ParseServerURLs(l *logger.Logger, e Entry) []*url.URL {
	segments := strings.FieldsFunc(e.Value, func(r rune) bool {
		return r == ',' || r == ';'
	})

	urls := make([]*url.URL, 0, len(segments))
	for _, segment := range segments {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}

		u, err := url.Parse(segment)
		if err != nil || !u.IsAbs() || u.Host == "" {
			if l != nil {
				l.Error().
					Str("origin", e.Origin).
					Str("key", e.Key).
					Str("value", segment).
					Msgf("Failed parsing server URL from %s %s, value '%s'", e.Origin, e.Key, segment)
			}
			continue
		}

		urls = append(urls, u)
	}

	if len(urls) == 0 {
		return defaultServerURLs()
	}
	return urls
}

func defaultServerURLs() []*url.URL {
	u, _ := url.Parse(DefaultServerURL)
	return []*url.URL{u}
}

// ParseServiceName replaces characters outside [a-zA-Z0-9 _-] with an
// underscore. An empty value yields a name derived from the executable.
func ParseServiceName(_ *logger.Logger, e Entry) string {
	name := strings.TrimSpace(e.Value)
	if name == "" {
		return fallbackServiceName()
	}
	return sanitizeServiceName(name)
}

func sanitizeServiceName(name string) string {
	return invalidServiceNameChars.ReplaceAllString(name, "_")
}

// ParseTrimmed returns the value without surrounding whitespace.
func ParseTrimmed(_ *logger.Logger, e Entry) string {
	return strings.TrimSpace(e.Value)
}

// ParseSecretToken returns the value verbatim.
func ParseSecretToken(_ *logger.Logger, e Entry) string {
	return e.Value
}

// ParseCaptureHeaders accepts "true" or "false" in any casing.
func ParseCaptureHeaders(l *logger.Logger, e Entry) bool {
	v := strings.TrimSpace(e.Value)
	switch {
	case v == "":
		return DefaultCaptureHeaders
	case strings.EqualFold(v, "true"):
		return true
	case strings.EqualFold(v, "false"):
		return false
	}

	logParseFailure(l, "capture headers", e, DefaultCaptureHeaders, nil)
	return DefaultCaptureHeaders
}

// ParseTransactionSampleRate accepts a decimal number in [0, 1].
func ParseTransactionSampleRate(l *logger.Logger, e Entry) float64 {
	if isBlank(e.Value) {
		return DefaultTransactionSampleRate
	}

	rate, err := parseDecimal(strings.TrimSpace(e.Value))
	if err == nil && !(rate >= 0 && rate <= 1) {
		err = errOutOfRange
	}
	if err != nil {
		logParseFailure(l, "transaction sample rate", e, DefaultTransactionSampleRate, err)
		return DefaultTransactionSampleRate
	}

	return rate
}

// ParseMetricsInterval returns the interval in milliseconds. Zero disables
// metrics collection.
func ParseMetricsInterval(l *logger.Logger, e Entry) float64 {
	return parseInterval(l, "metrics interval", e, DefaultMetricsInterval)
}

// ParseFlushInterval returns the interval in milliseconds. Zero sends
// events as soon as they are queued.
func ParseFlushInterval(l *logger.Logger, e Entry) float64 {
	return parseInterval(l, "flush interval", e, DefaultFlushInterval)
}

func parseInterval(l *logger.Logger, what string, e Entry, fallback time.Duration) float64 {
	fallbackMillis := float64(fallback / time.Millisecond)
	if isBlank(e.Value) {
		return fallbackMillis
	}

	millis, err := parseDurationMillis(e.Value, time.Second)
	if err == nil && millis < 0 {
		err = errNegative
	}
	if err != nil {
		logParseFailure(l, what, e, fallback, err)
		return fallbackMillis
	}

	return millis
}

// parseDurationMillis reads "<number>[ms|s|m]". A bare number is taken in
// defaultUnit.
func parseDurationMillis(raw string, defaultUnit time.Duration) (float64, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	unit := defaultUnit

	switch {
	case strings.HasSuffix(s, "ms"):
		unit, s = time.Millisecond, strings.TrimSuffix(s, "ms")
	case strings.HasSuffix(s, "s"):
		unit, s = time.Second, strings.TrimSuffix(s, "s")
	case strings.HasSuffix(s, "m"):
		unit, s = time.Minute, strings.TrimSuffix(s, "m")
	}

	n, err := parseDecimal(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, errNotFinite
	}

	millis := n * float64(unit/time.Millisecond)
	if math.IsInf(millis, 0) {
		return 0, errNotFinite
	}

	return millis, nil
}

// parseDecimal is strconv.ParseFloat without the hexadecimal form.
func parseDecimal(s string) (float64, error) {
	if strings.ContainsAny(s, "xX") {
		return 0, errNotDecimal
	}
	return strconv.ParseFloat(s, 64)
}

// ParseCaptureBody accepts off, all, errors or transactions in any casing.
func ParseCaptureBody(l *logger.Logger, e Entry) CaptureBody {
	v := strings.TrimSpace(e.Value)
	if v == "" {
		return DefaultCaptureBody
	}

	for _, mode := range []CaptureBody{CaptureBodyOff, CaptureBodyAll, CaptureBodyErrors, CaptureBodyTransactions} {
		if strings.EqualFold(v, string(mode)) {
			return mode
		}
	}

	logParseFailure(l, "capture body", e, DefaultCaptureBody, errUnknown)
	return DefaultCaptureBody
}

// ParseCaptureBodyContentTypes splits a comma-separated list of wildcard
// patterns. An empty list yields the common textual content types.
func ParseCaptureBodyContentTypes(_ *logger.Logger, e Entry) []string {
	var types []string
	for _, t := range strings.Split(e.Value, ",") {
		if t = strings.TrimSpace(t); t != "" {
			types = append(types, t)
		}
	}

	if len(types) == 0 {
		return append([]string(nil), defaultCaptureBodyContentTypes...)
	}
	return types
}

// ParseTransactionMaxSpans reads the per-transaction span limit. Any
// negative number means unlimited and is normalized to -1; zero disables
// span collection.
func ParseTransactionMaxSpans(l *logger.Logger, e Entry) int {
	return parseLimit(l, "transaction max spans", e, DefaultTransactionMaxSpans)
}

// ParseStackTraceLimit reads the number of frames captured per stack trace.
// Any negative number means all frames; zero disables stack traces.
func ParseStackTraceLimit(l *logger.Logger, e Entry) int {
	return parseLimit(l, "stack trace limit", e, DefaultStackTraceLimit)
}

func parseLimit(l *logger.Logger, what string, e Entry, fallback int) int {
	if isBlank(e.Value) {
		return fallback
	}

	n, err := strconv.Atoi(strings.TrimSpace(e.Value))
	if err != nil {
		logParseFailure(l, what, e, fallback, err)
		return fallback
	}

	if n < 0 {
		return -1
	}
	return n
}
