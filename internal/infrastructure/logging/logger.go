package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const timeFormat = "2006-01-02 15:04:05"

// New returns a slog.Logger backed by charmbracelet/log. format is "text" or
// "json"; unknown levels fall back to info.
func New(w io.Writer, level, format string) *slog.Logger {
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		lvl = log.InfoLevel
	}

	formatter := log.TextFormatter
	if strings.EqualFold(format, "json") {
		formatter = log.JSONFormatter
	}

	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      timeFormat,
		Level:           lvl,
		Prefix:          "kindnesscup",
		Formatter:       formatter,
	})
	l.SetStyles(styles())

	return slog.New(l)
}

func styles() *log.Styles {
	s := log.DefaultStyles()
	infoColor := lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#04B575"}
	warnColor := lipgloss.AdaptiveColor{Light: "#EE6FF8", Dark: "#EE6FF8"}
	errColor := lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF6B6B"}

	s.Levels[log.InfoLevel] = lipgloss.NewStyle().SetString("INFO").Bold(true).Foreground(infoColor)
	s.Levels[log.WarnLevel] = lipgloss.NewStyle().SetString("WARN").Bold(true).Foreground(warnColor)
	s.Levels[log.ErrorLevel] = lipgloss.NewStyle().SetString("ERROR").Bold(true).Foreground(errColor)
	s.Keys["error"] = lipgloss.NewStyle().Foreground(errColor)
	s.Values["error"] = lipgloss.NewStyle().Bold(true)
	return s
}

// IsDebug reports whether level enables debug output.
func IsDebug(level string) bool {
	return strings.EqualFold(strings.TrimSpace(level), "debug")
}
