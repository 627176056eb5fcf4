package logger

import (
	"fmt"
	"os"
	"regexp"

	"github.com/rs/zerolog"
)

type DefaultLogger struct {
	Logger
}

var Default = &DefaultLogger{}

var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()

// cleanString strips stream URLs from log output when SAFE_LOGS is enabled,
// since playlist sources often embed account tokens in the URL.
func cleanString(text string) string {
	urlRegex := `[a-zA-Z][a-zA-Z0-9+.-]*:\/\/[a-zA-Z0-9+%/.\-:_?&=#@+]+`
	re := regexp.MustCompile(urlRegex)

	return re.ReplaceAllString(text, "[redacted url]")
}

func safeLogf(format string, v ...any) string {
	safeLogs := os.Getenv("SAFE_LOGS") == "true"
	safeString := fmt.Sprintf(format, v...)
	if safeLogs {
		return cleanString(safeString)
	}
	return safeString
}

func (*DefaultLogger) Log(format string) {
	logger.Info().Msg(safeLogf("%s", format))
}

func (*DefaultLogger) Logf(format string, v ...any) {
	logger.Info().Msg(safeLogf(format, v...))
}

func (*DefaultLogger) Debug(format string) {
	if os.Getenv("DEBUG") == "true" {
		logger.Debug().Msg(safeLogf("%s", format))
	}
}

func (*DefaultLogger) Debugf(format string, v ...any) {
	if os.Getenv("DEBUG") == "true" {
		logger.Debug().Msg(safeLogf(format, v...))
	}
}

func (*DefaultLogger) Error(format string) {
	logger.Error().Msg(safeLogf("%s", format))
}

func (*DefaultLogger) Errorf(format string, v ...any) {
	logger.Error().Msg(safeLogf(format, v...))
}

func (*DefaultLogger) Warn(format string) {
	logger.Warn().Msg(safeLogf("%s", format))
}

func (*DefaultLogger) Warnf(format string, v ...any) {
	logger.Warn().Msg(safeLogf(format, v...))
}

func (*DefaultLogger) Fatal(format string) {
	logger.Fatal().Msg(safeLogf("%s", format))
}

func (*DefaultLogger) Fatalf(format string, v ...any) {
	logger.Fatal().Msg(safeLogf(format, v...))
}
