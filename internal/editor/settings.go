package editor

import (
	"time"

	"venuelayout/internal/layouts"
	"venuelayout/internal/shared/config"
)

// Settings are the editor defaults shared by every client of a deployment.
type Settings struct {
	HistoryLimit     int           `json:"history_limit"`
	AutosaveInterval time.Duration `json:"-"`
	AutosaveMillis   int64         `json:"autosave_interval_ms"`
	GridSize         float64       `json:"grid_size"`
	MinZoom          float64       `json:"min_zoom"`
	MaxZoom          float64       `json:"max_zoom"`
	ZoomStep         float64       `json:"zoom_step"`
}

// SettingsFromConfig applies the package defaults to unset config values.
func SettingsFromConfig(cfg config.EditorConfig) Settings {
	s := Settings{
		HistoryLimit:     cfg.HistoryLimit,
		AutosaveInterval: cfg.AutosaveInterval,
		GridSize:         cfg.DefaultGridSize,
		MinZoom:          MinZoom,
		MaxZoom:          MaxZoom,
		ZoomStep:         ZoomStep,
	}
	if s.HistoryLimit <= 0 {
		s.HistoryLimit = DefaultHistoryLimit
	}
	if s.AutosaveInterval <= 0 {
		s.AutosaveInterval = DefaultAutosaveInterval
	}
	if s.GridSize < 0 {
		s.GridSize = 0
	}
	s.AutosaveMillis = s.AutosaveInterval.Milliseconds()
	return s
}

// Options returns editor options carrying the history limit.
func (s Settings) Options() Options {
	return Options{HistoryLimit: s.HistoryLimit}
}

// Canvas returns the default canvas with the configured grid size.
func (s Settings) Canvas() layouts.CanvasSettings {
	canvas := layouts.DefaultCanvas()
	if s.GridSize > 0 {
		canvas.GridSize = s.GridSize
	}
	return canvas
}
