package logtail

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap/zapcore"
)

const timeLayout = "2006-01-02 15:04:05"

var (
	timeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
	loggerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#87AFFF"))
	fieldStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6272A4"))

	levelStyles = map[zapcore.Level]lipgloss.Style{
		zapcore.DebugLevel: lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB")).Bold(true),
		zapcore.InfoLevel:  lipgloss.NewStyle().Foreground(lipgloss.Color("#5FD75F")).Bold(true),
		zapcore.WarnLevel:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true),
		zapcore.ErrorLevel: lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
	}
)

// Format renders e on one line:
//
//	2026-03-14 09:26:53 WARN  persist  persist write failed key=cart
//
// Unstructured entries are returned unchanged.
func Format(e Entry) string {
	if !e.Structured {
		return e.Raw
	}

	var b strings.Builder
	if !e.Time.IsZero() {
		b.WriteString(timeStyle.Render(e.Time.Local().Format(timeLayout)))
		b.WriteString(" ")
	}

	level := strings.ToUpper(e.Level.String())
	style, ok := levelStyles[e.Level]
	if !ok {
		style = levelStyles[zapcore.ErrorLevel]
	}
	b.WriteString(style.Render(padLevel(level)))

	if e.Logger != "" {
		b.WriteString(" ")
		b.WriteString(loggerStyle.Render(e.Logger))
	}
	b.WriteString(" ")
	b.WriteString(e.Message)

	if fields := e.FieldString(); fields != "" {
		b.WriteString(" ")
		b.WriteString(fieldStyle.Render(fields))
	}
	return b.String()
}

// FormatAll formats every entry.
func FormatAll(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = Format(e)
	}
	return out
}

func padLevel(level string) string {
	if len(level) >= 5 {
		return level
	}
	return level + strings.Repeat(" ", 5-len(level))
}
