package tui

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/pencil/internal/core/notify"
	"github.com/colonyops/pencil/internal/core/styles"
)

const (
	defaultToastTTL   = 3 * time.Second
	defaultMaxToasts  = 3
	toastTickInterval = 100 * time.Millisecond
	toastWidth        = 40
)

type toastTickMsg time.Time

func scheduleToastTick() tea.Cmd {
	return tea.Tick(toastTickInterval, func(t time.Time) tea.Msg {
		return toastTickMsg(t)
	})
}

type toast struct {
	notification notify.Notification
	remaining    time.Duration
	repeats      int // identical pushes folded into this toast
}

// toastTTL is how long a toast of the given level stays up. Errors linger so
// they can be read.
func toastTTL(level notify.Level) time.Duration {
	if level == notify.LevelError {
		return 2 * defaultToastTTL
	}
	return defaultToastTTL
}

// ToastController manages the lifecycle of active toast notifications.
type ToastController struct {
	toasts  []toast
	ticking bool
}

func NewToastController() *ToastController {
	return &ToastController{}
}

// Push adds a notification to the toast stack. A push identical to the
// newest toast folds into it and restarts its TTL. If the stack exceeds
// defaultMaxToasts, the oldest toast is evicted.
func (c *ToastController) Push(n notify.Notification) {
	if last := len(c.toasts) - 1; last >= 0 {
		top := &c.toasts[last]
		if top.notification.Level == n.Level && top.notification.Message == n.Message {
			top.repeats++
			top.remaining = toastTTL(n.Level)
			return
		}
	}

	c.toasts = append(c.toasts, toast{
		notification: n,
		remaining:    toastTTL(n.Level),
	})
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

// Dismiss removes the newest toast.
func (c *ToastController) Dismiss() {
	if len(c.toasts) > 0 {
		c.toasts = c.toasts[:len(c.toasts)-1]
	}
}

func (c *ToastController) HasToasts() bool { return len(c.toasts) > 0 }

func (c *ToastController) Toasts() []toast { return c.toasts }

// StartTicking returns the tick command when toasts are pending and no tick
// chain is running.
func (c *ToastController) StartTicking() tea.Cmd {
	if c.ticking || !c.HasToasts() {
		return nil
	}
	c.ticking = true
	return scheduleToastTick()
}

// HandleTick advances the TTLs by one interval and continues the chain while
// toasts remain.
func (c *ToastController) HandleTick() tea.Cmd {
	c.Tick(toastTickInterval)
	if !c.HasToasts() {
		c.ticking = false
		return nil
	}
	return scheduleToastTick()
}

// View renders the toast stack with the oldest toast at the top.
func (c *ToastController) View() string {
	if len(c.toasts) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(c.toasts))
	for _, t := range c.toasts {
		rendered = append(rendered, renderToast(t))
	}
	return strings.Join(rendered, "\n")
}

func renderToast(t toast) string {
	var icon string
	var style lipgloss.Style

	switch t.notification.Level {
	case notify.LevelError:
		icon = styles.IconNotifyError
		style = styles.ToastErrorStyle
	case notify.LevelWarning:
		icon = styles.IconNotifyWarning
		style = styles.ToastWarningStyle
	default:
		icon = styles.IconNotifyInfo
		style = styles.ToastInfoStyle
	}

	msg := icon + " " + t.notification.Message
	if t.repeats > 0 {
		msg += styles.TextMutedStyle.Render(fmt.Sprintf(" ×%d", t.repeats+1))
	}
	return style.Width(toastWidth).Render(msg)
}

// Overlay composites the toast stack over background in the lower-right corner.
func (c *ToastController) Overlay(background string, width, height int) string {
	content := c.View()
	if content == "" {
		return background
	}

	bgLayer := lipgloss.NewLayer(background)
	toastLayer := lipgloss.NewLayer(content)

	rightX := max(width-lipgloss.Width(content)-1, 0)
	bottomY := max(height-lipgloss.Height(content), 0)
	toastLayer.X(rightX).Y(bottomY).Z(2)

	return lipgloss.NewCompositor(bgLayer, toastLayer).Render()
}
