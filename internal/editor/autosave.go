package editor

import (
	"context"
	"time"

	"venuelayout/pkg/logger"
)

// DefaultAutosaveInterval is used when no interval is configured.
const DefaultAutosaveInterval = 30 * time.Second

// Autosaver saves an editor periodically while it has unsaved edits.
type Autosaver struct {
	editor   *Editor
	interval time.Duration
	log      *logger.Logger
}

func NewAutosaver(editor *Editor, interval time.Duration) *Autosaver {
	if interval <= 0 {
		interval = DefaultAutosaveInterval
	}
	return &Autosaver{
		editor:   editor,
		interval: interval,
		log:      logger.GetDefault(),
	}
}

// Run ticks until ctx is cancelled.
func (a *Autosaver) Run(ctx context.Context) {
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = a.Tick(ctx)
		}
	}
}

// Tick saves once if the editor is dirty. Failures are logged and returned;
// the next tick retries.
func (a *Autosaver) Tick(ctx context.Context) error {
	if !a.editor.Dirty() {
		return nil
	}
	if err := a.editor.Save(ctx); err != nil {
		a.log.LogAutosaveFailed(ctx, a.editor.Layout().ID.String(), err)
		return err
	}
	return nil
}
