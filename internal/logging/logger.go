package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	clog "github.com/charmbracelet/log"
)

// L is the package-level logger. Commands configure it once at startup and
// components derive prefixed loggers from it with For.
var L = clog.NewWithOptions(os.Stderr, clog.Options{ReportTimestamp: true})

// Configure points L at w and applies the named level. An empty level keeps
// "info".
func Configure(w io.Writer, level string) error {
	if w == nil {
		w = os.Stderr
	}
	lvl := clog.InfoLevel
	if trimmed := strings.TrimSpace(level); trimmed != "" {
		parsed, err := clog.ParseLevel(strings.ToLower(trimmed))
		if err != nil {
			return fmt.Errorf("logging: %w", err)
		}
		lvl = parsed
	}
	L = clog.NewWithOptions(w, clog.Options{ReportTimestamp: true, Level: lvl})
	return nil
}

// For returns a logger that tags every line with component.
func For(component string) *clog.Logger {
	return L.WithPrefix(component)
}

// Debugf logs a debug-level formatted message.
func Debugf(format string, v ...interface{}) {
	L.Debug(fmt.Sprintf(format, v...))
}

// Infof logs an info-level formatted message.
func Infof(format string, v ...interface{}) {
	L.Info(fmt.Sprintf(format, v...))
}

// Warnf logs a warning-level formatted message.
func Warnf(format string, v ...interface{}) {
	L.Warn(fmt.Sprintf(format, v...))
}

// Errorf logs an error-level formatted message.
func Errorf(format string, v ...interface{}) {
	L.Error(fmt.Sprintf(format, v...))
}
