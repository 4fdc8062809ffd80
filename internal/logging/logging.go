package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"geosearch/internal/eventbus"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Init builds the application logger. The terminal belongs to the UI, so
// logs only ever go to path; an empty path discards them. Unknown levels
// fall back to info.
func Init(level, path string) (zerolog.Logger, io.Closer, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	if path == "" {
		return zerolog.Nop(), nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("open log file: %w", err)
	}

	logger := New(f, lvl)
	return logger, f, nil
}

// New returns a logger writing JSON lines to w
func New(w io.Writer, lvl zerolog.Level) zerolog.Logger {
	return zerolog.New(w).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}

// Subscribe logs search lifecycle events from the bus. It returns a function
// that removes every subscription it made.
func Subscribe(bus eventbus.EventBus, logger zerolog.Logger) func() {
	l := logger.With().Str("component", "events").Logger()

	unsubs := []func(){
		bus.Subscribe(eventbus.EventSearchRequested, func(e eventbus.DomainEvent) {
			if ev, ok := e.(eventbus.SearchRequestedEvent); ok {
				l.Info().Uint64("seq", ev.Seq).Str("query", ev.Query).
					Int("limit", ev.Limit).Int("offset", ev.Offset).Msg("search requested")
			}
		}),
		bus.Subscribe(eventbus.EventSearchCompleted, func(e eventbus.DomainEvent) {
			if ev, ok := e.(eventbus.SearchCompletedEvent); ok {
				l.Info().Uint64("seq", ev.Seq).Str("query", ev.Query).
					Int("count", ev.Count).Int("total", ev.TotalCount).Msg("search completed")
			}
		}),
		bus.Subscribe(eventbus.EventSearchFailed, func(e eventbus.DomainEvent) {
			if ev, ok := e.(eventbus.SearchFailedEvent); ok {
				l.Warn().Uint64("seq", ev.Seq).Str("query", ev.Query).
					Str("message", ev.Message).Err(ev.Err).Msg("search failed")
			}
		}),
		bus.Subscribe(eventbus.EventSearchDiscarded, func(e eventbus.DomainEvent) {
			if ev, ok := e.(eventbus.SearchDiscardedEvent); ok {
				l.Debug().Uint64("seq", ev.Seq).Uint64("latest", ev.Latest).Msg("stale response discarded")
			}
		}),
		bus.Subscribe(eventbus.EventLimitRejected, func(e eventbus.DomainEvent) {
			if ev, ok := e.(eventbus.LimitRejectedEvent); ok {
				l.Info().Int("value", ev.Value).Str("message", ev.Message).Msg("limit rejected")
			}
		}),
		bus.Subscribe(eventbus.EventConfigLoaded, func(e eventbus.DomainEvent) {
			if ev, ok := e.(eventbus.ConfigLoadedEvent); ok {
				l.Info().Str("path", ev.Path).Msg("config loaded")
			}
		}),
		bus.Subscribe(eventbus.EventConfigSaved, func(e eventbus.DomainEvent) {
			if ev, ok := e.(eventbus.ConfigSavedEvent); ok {
				l.Info().Str("path", ev.Path).Msg("config saved")
			}
		}),
	}

	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}
