package utils

import (
	"errors"
	"io"
	"log/slog"

	slogmulti "github.com/samber/slog-multi"
)

var ErrInvalidLogLevel = errors.New("invalid log level")

func ParseLogLevel(level string) (slog.Level, error) {
	var result slog.Level

	if err := result.UnmarshalText([]byte(level)); err != nil {
		return result, MakeError(ErrInvalidLogLevel, "'%v'", level)
	}

	return result, nil
}

// Returns a logger writing text records to console at the given level and,
// if file is not nil, every record as JSON to file
func NewLogger(console io.Writer, level string, file io.Writer) (*slog.Logger, error) {
	consoleLevel, err := ParseLogLevel(level)
	if err != nil {
		return nil, err
	}

	handlers := []slog.Handler{
		slog.NewTextHandler(console, &slog.HandlerOptions{Level: consoleLevel}),
	}

	if file != nil {
		handlers = append(handlers, slog.NewJSONHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	return slog.New(slogmulti.Fanout(handlers...)), nil
}
