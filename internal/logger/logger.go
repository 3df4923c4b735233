package logger

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// New constructs a zerolog logger with the given level and format.
// format が "console" のときは人間向けの出力、それ以外は JSON を書き出す。
func New(level, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if strings.EqualFold(format, "console") {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout})
	} else {
		logger = zerolog.New(os.Stdout)
	}

	return logger.Level(lvl).With().Timestamp().Str("service", "telecom-hire-api").Logger()
}
