package main

import (
	"context"
	"fmt"
	"os"

	"venuelayout/internal/editor"
	"venuelayout/internal/layouts"
	"venuelayout/internal/templates"
	"venuelayout/pkg/geometry"

	"gopkg.in/yaml.v3"
)

// Script is a recorded editing session replayed against a fresh editor.
// Gesture coordinates are canvas coordinates.
type Script struct {
	Name     string `yaml:"name"`
	Template string `yaml:"template"`
	Snap     *bool  `yaml:"snap_to_grid"`
	Steps    []Step `yaml:"steps"`
}

// Step is one editor action. Exactly one action field should be set.
type Step struct {
	Grid      *layouts.GridSpec `yaml:"grid"`
	Zone      *Zone             `yaml:"zone"`
	SelectRow string            `yaml:"select_row"`
	Assign    *string           `yaml:"assign_zone"`
	Key       string            `yaml:"key"`
	Drag      *Gesture          `yaml:"drag"`
	Marquee   *Gesture          `yaml:"marquee"`
	Zoom      float64           `yaml:"zoom"`
	Tool      editor.Tool       `yaml:"tool"`
	Click     *geometry.Point   `yaml:"click"`
	Autosave  bool              `yaml:"autosave"`

	Ctrl  bool `yaml:"ctrl"`
	Meta  bool `yaml:"meta"`
	Shift bool `yaml:"shift"`
}

type Zone struct {
	ID        string  `yaml:"id"`
	Name      string  `yaml:"name"`
	BasePrice float64 `yaml:"base_price"`
	Color     string  `yaml:"color"`
}

type Gesture struct {
	From geometry.Point `yaml:"from"`
	To   geometry.Point `yaml:"to"`
}

func (s Step) mods() editor.Modifiers {
	return editor.Modifiers{Ctrl: s.Ctrl, Meta: s.Meta, Shift: s.Shift}
}

func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var script Script
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("invalid script %s: %w", path, err)
	}
	return &script, nil
}

// Replay runs the script and returns the editor in its final state. The
// editor saves into store.
func Replay(ctx context.Context, script *Script, settings editor.Settings, provider templates.Provider, store layouts.Store) (*editor.Editor, error) {
	var layout *layouts.VenueLayout
	switch {
	case script.Template != "":
		tpl, err := provider.Get(script.Template)
		if err != nil {
			return nil, err
		}
		layout = tpl.NewLayout(script.Name)
	default:
		layout = layouts.NewVenueLayout(script.Name, settings.Canvas())
	}
	if script.Snap != nil {
		layout.Canvas.SnapToGrid = *script.Snap
	}

	ed := editor.New(layout, store, settings.Options())
	autosaver := editor.NewAutosaver(ed, settings.AutosaveInterval)
	for i, step := range script.Steps {
		if step.Autosave {
			if err := autosaver.Tick(ctx); err != nil {
				return ed, fmt.Errorf("step %d: %w", i+1, err)
			}
			continue
		}
		if err := apply(ctx, ed, step); err != nil {
			return ed, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return ed, nil
}

func apply(ctx context.Context, ed *editor.Editor, step Step) error {
	switch {
	case step.Grid != nil:
		_, err := ed.AddSeatGrid(*step.Grid)
		return err
	case step.Zone != nil:
		_, err := ed.AddPriceZone(layouts.PriceZone{
			ID:        step.Zone.ID,
			Name:      step.Zone.Name,
			BasePrice: step.Zone.BasePrice,
			Color:     step.Zone.Color,
		})
		return err
	case step.SelectRow != "":
		ed.Select(ed.Layout().SeatIDsInRow(step.SelectRow)...)
	case step.Assign != nil:
		_, err := ed.ApplyPatch(layouts.ZonePatch{PriceZoneID: *step.Assign})
		return err
	case step.Key != "":
		shortcut := editor.ParseShortcut(step.Key, step.mods())
		if shortcut == editor.ShortcutNone {
			return fmt.Errorf("unknown shortcut %q", step.Key)
		}
		_, err := ed.HandleShortcut(ctx, shortcut)
		return err
	case step.Drag != nil:
		gesture(ed, *step.Drag, step.mods())
	case step.Marquee != nil:
		gesture(ed, *step.Marquee, step.mods())
	case step.Click != nil:
		gesture(ed, Gesture{From: *step.Click, To: *step.Click}, step.mods())
	case step.Zoom != 0:
		ed.SetZoom(step.Zoom)
	case step.Tool != "":
		if !step.Tool.IsValid() {
			return fmt.Errorf("unknown tool %q", step.Tool)
		}
		ed.SetTool(step.Tool)
	default:
		return fmt.Errorf("empty step")
	}
	return nil
}

// gesture presses at from, moves to to and releases.
func gesture(ed *editor.Editor, g Gesture, mods editor.Modifiers) {
	vp := ed.Viewport()
	from, to := vp.ToScreen(g.From), vp.ToScreen(g.To)
	ed.PointerDown(editor.PointerEvent{Screen: from, Button: editor.ButtonPrimary, Mods: mods})
	if from != to {
		ed.PointerMove(editor.PointerEvent{Screen: to, Button: editor.ButtonPrimary, Mods: mods})
	}
	ed.PointerUp(editor.PointerEvent{Screen: to, Button: editor.ButtonPrimary, Mods: mods})
}
