package agentconfig

import (
	"strings"

	"github.com/rs/zerolog"
)

// LogLevel is the agent's own logging verbosity.
type LogLevel int

const (
	LogLevelTrace LogLevel = iota
	LogLevelDebug
	LogLevelInformation
	LogLevelWarning
	LogLevelError
	LogLevelCritical
	LogLevelNone
)

var logLevelNames = [...]string{
	LogLevelTrace:       "Trace",
	LogLevelDebug:       "Debug",
	LogLevelInformation: "Information",
	LogLevelWarning:     "Warning",
	LogLevelError:       "Error",
	LogLevelCritical:    "Critical",
	LogLevelNone:        "None",
}

func (l LogLevel) String() string {
	if l < 0 || int(l) >= len(logLevelNames) {
		return "Unknown"
	}
	return logLevelNames[l]
}

// MarshalText renders the level by name.
func (l LogLevel) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// Zerolog maps the level onto zerolog's scale. Critical maps to Fatal and
// None disables output.
func (l LogLevel) Zerolog() zerolog.Level {
	switch l {
	case LogLevelTrace:
		return zerolog.TraceLevel
	case LogLevelDebug:
		return zerolog.DebugLevel
	case LogLevelInformation:
		return zerolog.InfoLevel
	case LogLevelWarning:
		return zerolog.WarnLevel
	case LogLevelCritical:
		return zerolog.FatalLevel
	case LogLevelNone:
		return zerolog.Disabled
	default:
		return zerolog.ErrorLevel
	}
}

// lookupLogLevel matches name against the level names ignoring case.
func lookupLogLevel(name string) (LogLevel, bool) {
	name = strings.TrimSpace(name)
	for i, n := range logLevelNames {
		if strings.EqualFold(n, name) {
			return LogLevel(i), true
		}
	}
	return 0, false
}
