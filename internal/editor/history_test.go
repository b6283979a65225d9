package editor

import (
	"strconv"
	"testing"
	"time"

	"venuelayout/internal/layouts"
	"venuelayout/internal/shared/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func named(name string) *layouts.VenueLayout {
	return layouts.NewVenueLayout(name, layouts.DefaultCanvas())
}

func TestHistory_UndoRedo(t *testing.T) {
	h := NewHistory(0)
	assert.False(t, h.CanUndo())

	before := named("before")
	h.Push(before)
	before.Name = "changed after push"

	prev, ok := h.Undo(named("current"))
	require.True(t, ok)
	assert.Equal(t, "before", prev.Name)
	assert.True(t, h.CanRedo())

	next, ok := h.Redo(prev)
	require.True(t, ok)
	assert.Equal(t, "current", next.Name)
	assert.True(t, h.CanUndo())
	assert.False(t, h.CanRedo())

	_, ok = h.Redo(next)
	assert.False(t, ok)
}

func TestHistory_PushClearsRedo(t *testing.T) {
	h := NewHistory(10)
	h.Push(named("a"))
	_, ok := h.Undo(named("b"))
	require.True(t, ok)
	require.True(t, h.CanRedo())

	h.Push(named("c"))
	assert.False(t, h.CanRedo())
}

func TestHistory_EvictsOldestPastLimit(t *testing.T) {
	h := NewHistory(DefaultHistoryLimit)
	for i := 0; i <= DefaultHistoryLimit; i++ {
		h.Push(named(strconv.Itoa(i)))
	}

	undo, redo := h.Len()
	assert.Equal(t, DefaultHistoryLimit, undo)
	assert.Equal(t, 0, redo)

	current := named("current")
	var last *layouts.VenueLayout
	for h.CanUndo() {
		prev, ok := h.Undo(current)
		require.True(t, ok)
		current, last = prev, prev
	}
	// snapshot "0" was the 51st from the top and is gone
	assert.Equal(t, "1", last.Name)

	_, redo = h.Len()
	assert.Equal(t, DefaultHistoryLimit, redo)
}

func TestHistory_Clear(t *testing.T) {
	h := NewHistory(5)
	h.Push(named("a"))
	h.Push(named("b"))
	_, _ = h.Undo(named("c"))

	h.Clear()
	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())
}

func TestSettingsFromConfig(t *testing.T) {
	s := SettingsFromConfig(config.EditorConfig{})
	assert.Equal(t, DefaultHistoryLimit, s.HistoryLimit)
	assert.Equal(t, DefaultAutosaveInterval, s.AutosaveInterval)
	assert.Equal(t, int64(30000), s.AutosaveMillis)
	assert.Equal(t, MaxZoom, s.MaxZoom)

	s = SettingsFromConfig(config.EditorConfig{HistoryLimit: 5, AutosaveInterval: 2 * time.Second, DefaultGridSize: 10})
	assert.Equal(t, 5, s.Options().HistoryLimit)
	assert.Equal(t, int64(2000), s.AutosaveMillis)
	assert.Equal(t, 10.0, s.GridSize)
	assert.Equal(t, 10.0, s.Canvas().GridSize)
	assert.Equal(t, 20.0, SettingsFromConfig(config.EditorConfig{}).Canvas().GridSize)
}
