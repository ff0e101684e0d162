package agentconfig

import (
	"github.com/MKhiriev/go-apm-agent-config/internal/source"
)

// onChange runs on the provider's notification goroutine. Only the section
// value is considered: environment variables are not re-read on reload.
func (r *Reader) onChange(section source.Section) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error().Interface("panic", rec).Msg("recovered from panic while reloading configuration")
		}
	}()

	next := ParseLogLevel(r.logger, Entry{
		Key:    section.Path() + source.KeyDelimiter + LogLevelSubKey,
		Value:  section.Get(LogLevelSubKey),
		Origin: OriginProvider,
	})

	for {
		current := r.logLevel.Load()
		if current != nil && *current == next {
			return
		}
		if r.logLevel.CompareAndSwap(current, &next) {
			break
		}
	}

	r.logger.Info().Stringer("log_level", next).Msgf("Updated log level to %s", next)
}
