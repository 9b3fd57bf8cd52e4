package logtail

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
)

// Entry is one decoded line of the storefront's JSON log.
type Entry struct {
	Time    time.Time
	Level   zapcore.Level
	Logger  string
	Message string
	Fields  map[string]any
	// Raw is the undecoded line; set for every entry.
	Raw string
	// Structured is false for lines that are not zap JSON, such as
	// development console output.
	Structured bool
}

// Keys the production encoder writes for every entry.
var reservedKeys = map[string]bool{
	"level":      true,
	"ts":         true,
	"logger":     true,
	"msg":        true,
	"caller":     true,
	"stacktrace": true,
}

// Parse decodes a zap JSON line. Lines that do not decode come back
// unstructured at info level so callers can still show them.
func Parse(line string) Entry {
	e := Entry{Raw: line, Level: zapcore.InfoLevel, Message: line}

	var doc map[string]any
	if err := json.Unmarshal([]byte(line), &doc); err != nil {
		return e
	}
	msg, ok := doc["msg"].(string)
	if !ok {
		return e
	}

	e.Structured = true
	e.Message = msg
	if lvl, ok := doc["level"].(string); ok {
		if parsed, err := zapcore.ParseLevel(lvl); err == nil {
			e.Level = parsed
		}
	}
	e.Logger, _ = doc["logger"].(string)
	e.Time = parseTime(doc["ts"])

	for k, v := range doc {
		if reservedKeys[k] {
			continue
		}
		if e.Fields == nil {
			e.Fields = make(map[string]any)
		}
		e.Fields[k] = v
	}
	return e
}

// parseTime accepts epoch seconds and ISO8601 strings.
func parseTime(v any) time.Time {
	switch ts := v.(type) {
	case float64:
		sec, frac := math.Modf(ts)
		return time.Unix(int64(sec), int64(frac*1e9)).UTC()
	case string:
		if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

// ReadEntries returns the entries at or above minLevel among the last maxLines
// lines of path.
func ReadEntries(path string, maxLines int, minLevel zapcore.Level) ([]Entry, error) {
	lines, err := Read(path, maxLines)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		e := Parse(line)
		if e.Level < minLevel {
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// FieldString renders fields as sorted key=value pairs.
func (e Entry) FieldString() string {
	if len(e.Fields) == 0 {
		return ""
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + formatValue(e.Fields[k])
	}
	return strings.Join(parts, " ")
}

func formatValue(v any) string {
	switch x := v.(type) {
	case string:
		if strings.ContainsAny(x, " \t") {
			return fmt.Sprintf("%q", x)
		}
		return x
	case float64:
		if x == math.Trunc(x) && math.Abs(x) < 1e15 {
			return fmt.Sprintf("%d", int64(x))
		}
		return fmt.Sprintf("%g", x)
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(b)
	}
}
