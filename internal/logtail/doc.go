// Package logtail reads the tail of the storefront log and renders zap JSON
// entries for the terminal.
//
// # Reading
//
// Read returns the last N lines of a file in one pass using a ring of N
// slots, so memory stays O(N) however large the log grows. A missing file is
// not an error: a fresh install has no log yet.
//
// # Decoding
//
// Parse decodes one production-encoder line:
//
//	{"level":"warn","ts":1773480413.5,"logger":"persist","msg":"persist write failed","key":"cart"}
//
// into an Entry. The level, ts, logger, msg, caller and stacktrace keys map
// to Entry fields; everything else lands in Fields. Lines written by the
// development (console) encoder do not decode and are kept verbatim.
//
// # Rendering
//
// Format renders an entry as
//
//	2026-03-14 09:26:53 WARN  persist persist write failed key=cart
//
// with lipgloss colours per level. Colours drop out automatically when the
// output is not a terminal.
package logtail
