package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hay-kot/omiquji/internal/core/styles"
	"github.com/hay-kot/omiquji/internal/tui/notify"
)

const (
	defaultToastTTL   = 4 * time.Second
	defaultMaxToasts  = 3
	toastTickInterval = 250 * time.Millisecond
)

type toast struct {
	notification notify.Notification
	remaining    time.Duration
}

type toastTickMsg time.Time

func scheduleToastTick() tea.Cmd {
	return tea.Tick(toastTickInterval, func(t time.Time) tea.Msg {
		return toastTickMsg(t)
	})
}

// ToastController keeps the short-lived notifications shown above the
// status line.
type ToastController struct {
	toasts []toast
}

func NewToastController() *ToastController {
	return &ToastController{}
}

// Push adds a notification, evicting the oldest beyond defaultMaxToasts.
func (c *ToastController) Push(n notify.Notification) {
	c.toasts = append(c.toasts, toast{notification: n, remaining: defaultToastTTL})
	if len(c.toasts) > defaultMaxToasts {
		c.toasts = c.toasts[len(c.toasts)-defaultMaxToasts:]
	}
}

// Tick decrements the remaining TTL on all toasts by d and removes
// any that have expired.
func (c *ToastController) Tick(d time.Duration) {
	alive := c.toasts[:0]
	for _, t := range c.toasts {
		t.remaining -= d
		if t.remaining > 0 {
			alive = append(alive, t)
		}
	}
	c.toasts = alive
}

// DismissAll removes all active toasts.
func (c *ToastController) DismissAll() {
	c.toasts = c.toasts[:0]
}

func (c *ToastController) HasToasts() bool {
	return len(c.toasts) > 0
}

func (c *ToastController) Toasts() []toast {
	return c.toasts
}

// View renders the toasts one per line, newest last.
func (c *ToastController) View(width int) string {
	lines := make([]string, 0, len(c.toasts))
	for _, t := range c.toasts {
		lines = append(lines, renderToast(t, width))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderToast(t toast, width int) string {
	var icon string
	var style lipgloss.Style

	switch t.notification.Level {
	case notify.LevelError:
		icon, style = styles.IconCross, styles.ErrorStyle
	case notify.LevelWarning:
		icon, style = styles.IconWarning, styles.WarningStyle
	default:
		icon, style = styles.IconInfo, styles.InfoStyle
	}

	return style.MaxWidth(width).Render(" " + icon + " " + t.notification.Message)
}
