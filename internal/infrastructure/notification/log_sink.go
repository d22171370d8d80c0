package notification

import (
	"context"

	"github.com/rs/zerolog"
)

// LogSink escribe las notificaciones en el log. Se usa cuando no hay brokers configurados.
type LogSink struct {
	log zerolog.Logger
}

// NewLogSink crea el sink de log.
func NewLogSink(log zerolog.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Send(_ context.Context, topic, key string, payload []byte) error {
	s.log.Info().Str("topic", topic).Str("key", key).RawJSON("payload", payload).Msg("notificación")
	return nil
}

func (s *LogSink) Close() error { return nil }
