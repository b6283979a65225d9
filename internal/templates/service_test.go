package templates

import (
	"context"
	"testing"

	"venuelayout/internal/layouts"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryRepository is a layouts.Repository over a MemoryStore.
type memoryRepository struct {
	*layouts.MemoryStore
}

func (r memoryRepository) List(ctx context.Context, filters layouts.LayoutFilters) (*layouts.PaginatedLayouts, error) {
	out := &layouts.PaginatedLayouts{Page: filters.Page, Limit: filters.Limit, TotalPages: 1}
	for _, l := range r.MemoryStore.List(ctx) {
		if filters.IsTemplate != nil && l.IsTemplate != *filters.IsTemplate {
			continue
		}
		if filters.TemplateCategory != "" && l.TemplateCategory != filters.TemplateCategory {
			continue
		}
		out.Layouts = append(out.Layouts, *l)
	}
	out.TotalCount = int64(len(out.Layouts))
	return out, nil
}

func (r memoryRepository) GetTemplateByName(ctx context.Context, name string) (*layouts.VenueLayout, error) {
	for _, l := range r.MemoryStore.List(ctx) {
		if l.IsTemplate && l.Name == name {
			return l, nil
		}
	}
	return nil, layouts.ErrLayoutNotFound
}

func (r memoryRepository) IncrementUsage(ctx context.Context, id uuid.UUID) error {
	l, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	l.UsageCount++
	return r.Save(ctx, l)
}

func newTestService(t *testing.T) (Service, memoryRepository) {
	t.Helper()
	catalog, err := NewDefaultCatalog()
	require.NoError(t, err)
	repo := memoryRepository{layouts.NewMemoryStore()}
	return NewService(catalog, repo, layouts.NewService(repo, nil)), repo
}

func TestService_InstantiateBuiltin(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t)

	layout, err := svc.Instantiate(ctx, "arena", InstantiateRequest{Name: "Summer Tour", VenueName: "O2"}, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, "Summer Tour", layout.Name)
	assert.Equal(t, "admin-1", layout.CreatedBy)

	stored, err := repo.Get(ctx, layout.ID)
	require.NoError(t, err)
	assert.Equal(t, 1000, stored.TotalCapacity)
	assert.Equal(t, "O2", stored.VenueName)
	assert.Equal(t, layouts.StatusDraft, stored.Status)

	_, err = svc.Instantiate(ctx, "ballroom", InstantiateRequest{}, "admin-1")
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestService_SeedThenInstantiateCountsUsage(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t)

	seeded, err := svc.SeedBuiltins(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, seeded)

	seeded, err = svc.SeedBuiltins(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, seeded)

	_, err = svc.Instantiate(ctx, "club", InstantiateRequest{}, "")
	require.NoError(t, err)

	tpl, err := repo.GetTemplateByName(ctx, "club")
	require.NoError(t, err)
	assert.Equal(t, 1, tpl.UsageCount)

	got, err := svc.GetTemplate(ctx, "club")
	require.NoError(t, err)
	assert.Equal(t, SourceStored, got.Source)
}

func TestService_ListTemplates(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t)

	custom := layouts.NewVenueLayout("rooftop", layouts.DefaultCanvas())
	custom.IsTemplate = true
	custom.TemplateCategory = "club"
	require.NoError(t, repo.Save(ctx, custom))

	all, err := svc.ListTemplates(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 4)

	clubs, err := svc.ListTemplates(ctx, "club")
	require.NoError(t, err)
	require.Len(t, clubs, 2)
	assert.Equal(t, "club", clubs[0].Name)
	assert.Equal(t, "rooftop", clubs[1].Name)
	assert.Equal(t, SourceStored, clubs[1].Source)
}

func TestService_ListTemplates_StoredShadowsCatalog(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t)

	seats, err := layouts.NewSeatGrid(layouts.GridSpec{Rows: 2, SeatsPerRow: 5})
	require.NoError(t, err)
	club := layouts.NewVenueLayout("club", layouts.DefaultCanvas())
	club.IsTemplate = true
	club.TemplateCategory = "club"
	require.NoError(t, club.AddElements(seats...))
	require.NoError(t, repo.Save(ctx, club))

	summaries, err := svc.ListTemplates(ctx, "club")
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, SourceStored, summaries[0].Source)
	assert.Equal(t, 10, summaries[0].ElementCount)
	assert.Equal(t, 10, summaries[0].Capacity.TotalSeated)

	got, err := svc.GetTemplate(ctx, "club")
	require.NoError(t, err)
	assert.Equal(t, summaries[0].Capacity, got.Capacity())

	all, err := svc.ListTemplates(ctx, "")
	require.NoError(t, err)
	names := make([]string, 0, len(all))
	for _, summary := range all {
		names = append(names, summary.Name)
	}
	assert.Equal(t, []string{"arena", "club", "theater"}, names)
}

func TestService_CatalogOnly(t *testing.T) {
	ctx := context.Background()
	catalog, err := NewDefaultCatalog()
	require.NoError(t, err)
	svc := NewService(catalog, nil, nil)

	summaries, err := svc.ListTemplates(ctx, "theater")
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, 280, summaries[0].Capacity.TotalSeated)

	_, err = svc.Instantiate(ctx, "theater", InstantiateRequest{}, "")
	assert.Error(t, err)
	_, err = svc.SeedBuiltins(ctx)
	assert.Error(t, err)
}
