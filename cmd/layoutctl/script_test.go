package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"venuelayout/internal/editor"
	"venuelayout/internal/layouts"
	"venuelayout/internal/shared/config"
	"venuelayout/internal/templates"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const editScript = `
name: Hall
steps:
  - zone: {id: std, name: Standard, base_price: 40, color: "#22C55E"}
  - grid: {origin: {x: 100, y: 100}, rows: 3, seats_per_row: 10, price_zone_id: std}
  - marquee: {from: {x: 90, y: 90}, to: {x: 400, y: 135}}
  - key: Delete
  - key: z
    ctrl: true
  - key: y
    ctrl: true
  - select_row: B
  - assign_zone: ""
  - key: s
    ctrl: true
`

var testSettings = editor.SettingsFromConfig(config.EditorConfig{})

func parseScript(t *testing.T, doc string) *Script {
	t.Helper()
	var script Script
	require.NoError(t, yaml.Unmarshal([]byte(doc), &script))
	return &script
}

func newCatalog(t *testing.T) *templates.Catalog {
	t.Helper()
	catalog, err := templates.NewDefaultCatalog()
	require.NoError(t, err)
	return catalog
}

func TestReplay_EditAndSave(t *testing.T) {
	ctx := context.Background()
	store := layouts.NewMemoryStore()

	ed, err := Replay(ctx, parseScript(t, editScript), testSettings, newCatalog(t), store)
	require.NoError(t, err)
	assert.False(t, ed.Dirty())

	saved, err := store.Get(ctx, ed.Layout().ID)
	require.NoError(t, err)
	assert.Equal(t, "Hall", saved.Name)
	assert.Equal(t, 20, saved.TotalSeated)
	assert.Empty(t, saved.SeatIDsInRow("A"))

	zone, ok := saved.PriceZones.Find("std")
	require.True(t, ok)
	assert.Equal(t, 10, zone.SeatCount)

	for _, id := range saved.SeatIDsInRow("B") {
		el, _ := saved.Element(id)
		seat, _ := el.Seat()
		assert.Empty(t, seat.PriceZoneID)
	}
}

func TestReplay_DragSnapsToGrid(t *testing.T) {
	ctx := context.Background()
	script := parseScript(t, `
steps:
  - grid: {origin: {x: 100, y: 100}, rows: 1, seats_per_row: 2}
  - key: Escape
  - drag: {from: {x: 114, y: 114}, to: {x: 147, y: 171}}
`)

	ed, err := Replay(ctx, script, testSettings, newCatalog(t), layouts.NewMemoryStore())
	require.NoError(t, err)

	elements := ed.Elements()
	require.Len(t, elements, 2)
	assert.Equal(t, 140.0, elements[0].X)
	assert.Equal(t, 160.0, elements[0].Y)
	assert.Equal(t, 128.0, elements[1].X)
	assert.Equal(t, []string{elements[0].ID}, ed.Selection())
	assert.True(t, ed.Dirty())
}

func TestReplay_FromTemplate(t *testing.T) {
	ctx := context.Background()
	script := parseScript(t, `
name: Gala
template: theater
steps:
  - select_row: A
  - key: Delete
`)

	ed, err := Replay(ctx, script, testSettings, newCatalog(t), layouts.NewMemoryStore())
	require.NoError(t, err)
	assert.Equal(t, "Gala", ed.Layout().Name)
	assert.Equal(t, 260, ed.Capacity().TotalSeated)
}

func TestReplay_AutosaveTick(t *testing.T) {
	ctx := context.Background()
	store := layouts.NewMemoryStore()
	script := parseScript(t, `
name: Autosaved
steps:
  - grid: {origin: {x: 100, y: 100}, rows: 2, seats_per_row: 4}
  - autosave: true
  - key: Escape
`)

	ed, err := Replay(ctx, script, testSettings, newCatalog(t), store)
	require.NoError(t, err)
	assert.False(t, ed.Dirty())

	saved, err := store.Get(ctx, ed.Layout().ID)
	require.NoError(t, err)
	assert.Equal(t, 8, saved.TotalSeated)
}

func TestReplay_Errors(t *testing.T) {
	ctx := context.Background()
	catalog := newCatalog(t)

	_, err := Replay(ctx, parseScript(t, "template: ballroom\n"), testSettings, catalog, nil)
	assert.ErrorIs(t, err, templates.ErrTemplateNotFound)

	_, err = Replay(ctx, parseScript(t, "steps:\n  - key: q\n"), testSettings, catalog, nil)
	assert.ErrorContains(t, err, "step 1")

	_, err = Replay(ctx, parseScript(t, "steps:\n  - {}\n"), testSettings, catalog, nil)
	assert.ErrorContains(t, err, "empty step")

	_, err = Replay(ctx, parseScript(t, "steps:\n  - grid: {rows: 0, seats_per_row: 2}\n"), testSettings, catalog, nil)
	assert.ErrorIs(t, err, layouts.ErrInvalidGrid)
}

func TestCommands(t *testing.T) {
	dir := t.TempDir()
	scriptPath := filepath.Join(dir, "hall.yaml")
	layoutPath := filepath.Join(dir, "hall.json")
	require.NoError(t, os.WriteFile(scriptPath, []byte(editScript), 0644))

	run := func(args ...string) string {
		cmd := rootCmd()
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs(append(args, "--templates-dir", filepath.Join(dir, "templates")))
		require.NoError(t, cmd.Execute(), args)
		return out.String()
	}

	assert.Contains(t, run("templates"), "theater")
	run("replay", scriptPath, "-o", layoutPath)

	counts := run("classify", layoutPath, "--premium", "110", "--gold", "130", "--silver", "150", "--bronze", "180")
	assert.Regexp(t, `silver\s+10`, counts)
	assert.Regexp(t, `bronze\s+10`, counts)

	assert.Contains(t, run("grid", "--rows", "2", "--seats", "3"), `"total_seated": 6`)
}
