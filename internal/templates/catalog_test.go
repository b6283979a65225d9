package templates

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"venuelayout/internal/layouts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltins(t *testing.T) {
	builtins, err := Builtins()
	require.NoError(t, err)
	require.Len(t, builtins, 3)

	capacity := map[string]layouts.Capacity{}
	for _, tpl := range builtins {
		require.NoError(t, tpl.Validate(), tpl.Name)
		assert.Equal(t, SourceBuiltin, tpl.Source)
		capacity[tpl.Name] = tpl.Capacity()
	}

	assert.Equal(t, 280, capacity["theater"].TotalSeated)
	assert.Equal(t, 200, capacity["arena"].TotalSeated)
	assert.Equal(t, 800, capacity["arena"].TotalStanding)
	assert.Equal(t, 1000, capacity["arena"].TotalCapacity)
	assert.Equal(t, 0, capacity["club"].TotalSeated)
	assert.Equal(t, 300, capacity["club"].TotalCapacity)
}

func TestTemplate_InstanceUsesFreshIDs(t *testing.T) {
	catalog, err := NewDefaultCatalog()
	require.NoError(t, err)
	tpl, err := catalog.Get("theater")
	require.NoError(t, err)

	elements, zones := tpl.Instance()
	require.Len(t, elements, len(tpl.Elements))
	assert.NotEqual(t, tpl.Elements[0].ID, elements[0].ID)
	assert.Equal(t, tpl.Elements[0].Properties, elements[0].Properties)
	assert.Equal(t, tpl.PriceZones, zones)

	layout := tpl.NewLayout("")
	assert.Equal(t, "theater", layout.Name)
	assert.Equal(t, layouts.StatusDraft, layout.Status)
	assert.Equal(t, 280, layout.TotalCapacity)
	assert.Equal(t, 120, layout.PriceZones[0].SeatCount)
	assert.False(t, layout.IsTemplate)

	stored := tpl.AsLayout()
	assert.True(t, stored.IsTemplate)
	assert.Equal(t, "theater", stored.TemplateCategory)
	assert.Equal(t, tpl.Name, FromLayout(stored).Name)
	assert.Equal(t, SourceStored, FromLayout(stored).Source)
}

func TestCatalog_FileTemplatesOverrideBuiltins(t *testing.T) {
	catalog, err := NewDefaultCatalog()
	require.NoError(t, err)
	assert.Equal(t, 3, catalog.Len())

	override := Template{Name: "club", Category: "club", Canvas: layouts.DefaultCanvas(), Source: "club.yaml"}
	extra := Template{Name: "studio", Category: "black-box", Canvas: layouts.DefaultCanvas()}
	catalog.SetFileTemplates([]Template{override, extra})

	got, err := catalog.Get("club")
	require.NoError(t, err)
	assert.Equal(t, "club.yaml", got.Source)

	names := []string{}
	for _, tpl := range catalog.List() {
		names = append(names, tpl.Name)
	}
	assert.Equal(t, []string{"arena", "studio", "club", "theater"}, names)

	catalog.SetFileTemplates(nil)
	got, err = catalog.Get("club")
	require.NoError(t, err)
	assert.Equal(t, SourceBuiltin, got.Source)

	_, err = catalog.Get("ballroom")
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestCatalog_GetReturnsCopies(t *testing.T) {
	catalog, err := NewDefaultCatalog()
	require.NoError(t, err)

	first, err := catalog.Get("arena")
	require.NoError(t, err)
	first.Elements[0].X = -999
	first.PriceZones[0].Color = "#000000"

	second, err := catalog.Get("arena")
	require.NoError(t, err)
	assert.NotEqual(t, -999.0, second.Elements[0].X)
	assert.Equal(t, "#F59E0B", second.PriceZones[0].Color)
}

func TestWatcher_ReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	catalog, err := NewDefaultCatalog()
	require.NoError(t, err)

	w, err := NewWatcher(dir, catalog, 10*time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	<-w.Reloaded()

	_, err = catalog.Get("studio")
	require.ErrorIs(t, err, ErrTemplateNotFound)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "studio.yaml"), []byte(studioYAML), 0644))
	assert.Eventually(t, func() bool {
		_, err := catalog.Get("studio")
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)

	// a broken file keeps the last good set
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("name: ["), 0644))
	time.Sleep(100 * time.Millisecond)
	_, err = catalog.Get("studio")
	assert.NoError(t, err)
}
