package obs

import (
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

var (
	loggerOnce sync.Once
	logger     zerolog.Logger
)

// Logger returns the shared structured logger used across the service.
// Output is JSON on stdout; COACHBASE_LOG_LEVEL adjusts verbosity.
func Logger() *zerolog.Logger {
	loggerOnce.Do(func() {
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		level := zerolog.InfoLevel
		if raw := strings.TrimSpace(os.Getenv("COACHBASE_LOG_LEVEL")); raw != "" {
			if parsed, err := zerolog.ParseLevel(strings.ToLower(raw)); err == nil {
				level = parsed
			}
		}
		logger = zerolog.New(os.Stdout).Level(level).With().Timestamp().Str("service", "coachbase-api").Logger()
	})
	return &logger
}
