package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/pencil/internal/core/notify"
	"github.com/colonyops/pencil/internal/core/styles"
)

func TestToastController_Push(t *testing.T) {
	c := NewToastController()

	c.Push(notify.Info("hello"))

	assert.True(t, c.HasToasts())
	require.Len(t, c.Toasts(), 1)
	assert.Equal(t, "hello", c.Toasts()[0].notification.Message)
	assert.Equal(t, defaultToastTTL, c.Toasts()[0].remaining)
}

func TestToastController_Push_evicts_oldest_at_max(t *testing.T) {
	c := NewToastController()

	for i := range defaultMaxToasts + 2 { // distinct messages, no folding
		c.Push(notify.Info("toast %d", i))
	}

	assert.Len(t, c.Toasts(), defaultMaxToasts)
	assert.Equal(t, "toast 2", c.Toasts()[0].notification.Message)
}

func TestToastController_Push_folds_repeats(t *testing.T) {
	c := NewToastController()

	c.Push(notify.Info("Saved name"))
	c.toasts[0].remaining = time.Second
	c.Push(notify.Info("Saved name"))

	require.Len(t, c.Toasts(), 1)
	assert.Equal(t, defaultToastTTL, c.Toasts()[0].remaining, "ttl restarts")
	assert.Contains(t, c.View(), "×2")

	c.Push(notify.Warn("Saved name"))
	assert.Len(t, c.Toasts(), 2, "different level is a new toast")
}

func TestToastController_ErrorsLinger(t *testing.T) {
	c := NewToastController()
	c.Push(notify.Error("boom"))

	assert.Equal(t, 2*defaultToastTTL, c.Toasts()[0].remaining)
}

func TestToastController_Tick_removes_expired(t *testing.T) {
	c := NewToastController()
	c.Push(notify.Info("expires"))
	c.Push(notify.Info("survives"))

	c.toasts[0].remaining = 50 * time.Millisecond
	c.Tick(100 * time.Millisecond)

	require.Len(t, c.Toasts(), 1)
	assert.Equal(t, "survives", c.Toasts()[0].notification.Message)
}

func TestToastController_Dismiss(t *testing.T) {
	c := NewToastController()
	c.Dismiss() // empty stack is fine

	c.Push(notify.Info("first"))
	c.Push(notify.Info("second"))
	c.Dismiss()

	require.Len(t, c.Toasts(), 1)
	assert.Equal(t, "first", c.Toasts()[0].notification.Message)
}

func TestToastController_TickChain(t *testing.T) {
	c := NewToastController()
	assert.Nil(t, c.StartTicking(), "nothing to tick")

	c.Push(notify.Info("test"))
	require.NotNil(t, c.StartTicking())
	assert.Nil(t, c.StartTicking(), "chain already running")

	ticks := 0
	for c.HandleTick() != nil {
		ticks++
		require.Less(t, ticks, 100)
	}

	assert.Equal(t, int(defaultToastTTL/toastTickInterval)-1, ticks)
	assert.False(t, c.HasToasts())

	c.Push(notify.Info("again"))
	assert.NotNil(t, c.StartTicking(), "chain restarts after expiry")
}

func TestToastController_View(t *testing.T) {
	tests := []struct {
		n    notify.Notification
		icon string
	}{
		{notify.Error("boom"), styles.IconNotifyError},
		{notify.Warn("careful"), styles.IconNotifyWarning},
		{notify.Info("saved"), styles.IconNotifyInfo},
	}

	for _, tt := range tests {
		t.Run(string(tt.n.Level), func(t *testing.T) {
			c := NewToastController()
			c.Push(tt.n)

			out := c.View()
			assert.Contains(t, out, tt.icon)
			assert.Contains(t, out, tt.n.Message)
		})
	}
}

func TestToastController_Overlay(t *testing.T) {
	c := NewToastController()
	bg := "background content"
	assert.Equal(t, bg, c.Overlay(bg, 80, 24))

	c.Push(notify.Info("positioned"))

	row := strings.Repeat(" ", 80)
	rows := make([]string, 24)
	for i := range rows {
		rows[i] = row
	}

	out := c.Overlay(strings.Join(rows, "\n"), 80, 24)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 24)
	assert.NotContains(t, lines[0], "positioned")
	assert.Contains(t, strings.Join(lines[len(lines)-3:], "\n"), "positioned")
}
