package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/storefront/internal/notify"
)

// maxToasts bounds how many notices are on screen at once.
const maxToasts = 3

const defaultToastDuration = 3 * time.Second

type toast struct {
	id     int
	notice notify.Notice
}

// pushToast shows n and schedules its removal.
func (m *Model) pushToast(n notify.Notice) tea.Cmd {
	m.nextToastID++
	id := m.nextToastID
	m.toasts = append(m.toasts, toast{id: id, notice: n})
	if len(m.toasts) > maxToasts {
		m.toasts = m.toasts[len(m.toasts)-maxToasts:]
	}
	d := n.Duration
	if d <= 0 {
		d = defaultToastDuration
	}
	return expireToastCmd(id, d)
}

func (m *Model) dropToast(id int) {
	for i, t := range m.toasts {
		if t.id == id {
			m.toasts = append(m.toasts[:i:i], m.toasts[i+1:]...)
			return
		}
	}
}

func (m Model) renderToasts() string {
	if len(m.toasts) == 0 {
		return ""
	}
	styles := m.theme.Styles()
	lines := make([]string, 0, len(m.toasts))
	for _, t := range m.toasts {
		if t.notice.Kind == notify.Error {
			lines = append(lines, styles.ErrorToast.Render("✗ "+t.notice.Message))
			continue
		}
		lines = append(lines, styles.SuccessToast.Render("✓ "+t.notice.Message))
	}
	return strings.Join(lines, "\n")
}
