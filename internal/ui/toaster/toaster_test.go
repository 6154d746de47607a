package toaster

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	m := New()
	require.False(t, m.Visible())
	require.Empty(t, m.View())
}

func TestShow(t *testing.T) {
	m, cmd := New().Show("Copied", StyleSuccess)
	require.True(t, m.Visible())
	require.Equal(t, "Copied", m.Message())
	require.Contains(t, m.View(), "Copied")
	require.NotNil(t, cmd)
}

func TestShowFor_ZeroDurationHasNoTimer(t *testing.T) {
	m, cmd := New().ShowFor("Sticky", StyleWarn, 0)
	require.True(t, m.Visible())
	require.Nil(t, cmd)
}

func TestDismiss_HidesCurrentToast(t *testing.T) {
	m, cmd := New().ShowFor("Hello", StyleInfo, time.Millisecond)
	msg := cmd()
	require.IsType(t, DismissMsg{}, msg)

	m = m.Update(msg)
	require.False(t, m.Visible())
	require.Empty(t, m.View())
}

func TestDismiss_StaleTimerKeepsNewerToast(t *testing.T) {
	m, first := New().ShowFor("First", StyleSuccess, time.Millisecond)
	m, _ = m.Show("Second", StyleError)

	m = m.Update(first())
	require.True(t, m.Visible())
	require.Equal(t, "Second", m.Message())
}

func TestHide(t *testing.T) {
	m, _ := New().Show("Hello", StyleSuccess)
	m = m.Hide()
	require.False(t, m.Visible())
	require.Empty(t, m.View())
}

func TestView_Icons(t *testing.T) {
	tests := []struct {
		style Style
		icon  string
	}{
		{StyleSuccess, "✓"},
		{StyleError, "✗"},
		{StyleInfo, "i"},
		{StyleWarn, "!"},
	}
	for _, tt := range tests {
		m, _ := New().Show("msg", tt.style)
		require.Contains(t, m.View(), tt.icon+" msg")
	}
}

func TestOverlay(t *testing.T) {
	bg := strings.TrimSuffix(strings.Repeat(strings.Repeat(".", 40)+"\n", 10), "\n")

	require.Equal(t, bg, New().Overlay(bg, 40, 10))

	m, _ := New().Show("Saved", StyleSuccess)
	out := m.Overlay(bg, 40, 10)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 10)
	require.Contains(t, lines[7], "Saved", "toast sits above the bottom padding row")
	require.Equal(t, strings.Repeat(".", 40), lines[9])
}
