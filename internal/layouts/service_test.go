package layouts

import (
	"context"
	"errors"
	"sync"
	"testing"

	"venuelayout/pkg/geometry"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRepository is a mock implementation of Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Get(ctx context.Context, id uuid.UUID) (*VenueLayout, error) {
	args := m.Called(ctx, id)
	if l, ok := args.Get(0).(*VenueLayout); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) Save(ctx context.Context, layout *VenueLayout) error {
	return m.Called(ctx, layout).Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRepository) Subscribe(ctx context.Context, id uuid.UUID, onChange func(*VenueLayout)) (func(), error) {
	args := m.Called(ctx, id, onChange)
	if fn, ok := args.Get(0).(func()); ok {
		return fn, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, filters LayoutFilters) (*PaginatedLayouts, error) {
	args := m.Called(ctx, filters)
	if p, ok := args.Get(0).(*PaginatedLayouts); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) GetTemplateByName(ctx context.Context, name string) (*VenueLayout, error) {
	args := m.Called(ctx, name)
	if l, ok := args.Get(0).(*VenueLayout); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) IncrementUsage(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// memoryRepository backs the service with a MemoryStore for scenario tests.
type memoryRepository struct {
	*MemoryStore
}

func (r memoryRepository) List(ctx context.Context, filters LayoutFilters) (*PaginatedLayouts, error) {
	all := r.MemoryStore.List(ctx)
	out := &PaginatedLayouts{TotalCount: int64(len(all)), Page: filters.Page, Limit: filters.Limit, TotalPages: 1}
	for _, l := range all {
		out.Layouts = append(out.Layouts, *l)
	}
	return out, nil
}

func (r memoryRepository) GetTemplateByName(ctx context.Context, name string) (*VenueLayout, error) {
	for _, l := range r.MemoryStore.List(ctx) {
		if l.IsTemplate && l.Name == name {
			return l, nil
		}
	}
	return nil, ErrLayoutNotFound
}

func (r memoryRepository) IncrementUsage(ctx context.Context, id uuid.UUID) error {
	l, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	l.UsageCount++
	return r.Save(ctx, l)
}

// recordingPublisher keeps every published event.
type recordingPublisher struct {
	mu     sync.Mutex
	events []LayoutEvent
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, event LayoutEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]EventType, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

func newTestService() (Service, *recordingPublisher) {
	events := &recordingPublisher{}
	return NewService(memoryRepository{NewMemoryStore()}, events), events
}

func TestService_GridScenario(t *testing.T) {
	ctx := context.Background()
	svc, events := newTestService()

	layout, err := svc.CreateLayout(ctx, CreateLayoutRequest{Name: "Main Hall"}, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, DefaultCanvas(), layout.Canvas)
	assert.Equal(t, "admin-1", layout.CreatedBy)
	id := layout.ID.String()

	layout, err = svc.AddPriceZone(ctx, id, PriceZoneRequest{Name: "VIP", BasePrice: 150, Color: "#FF0000"})
	require.NoError(t, err)
	require.Len(t, layout.PriceZones, 1)
	zoneID := layout.PriceZones[0].ID

	layout, err = svc.AddSeatGrid(ctx, id, AddSeatGridRequest{
		Origin:      geometry.NewPoint(200, 100),
		Rows:        3,
		SeatsPerRow: 10,
		SeatSpacing: 6,
		RowSpacing:  8,
		PriceZoneID: zoneID,
	})
	require.NoError(t, err)
	assert.Equal(t, 30, layout.TotalSeated)
	assert.Equal(t, 30, layout.PriceZones[0].SeatCount)

	layout, err = svc.RemoveElements(ctx, id, RemoveElementsRequest{ElementIDs: layout.SeatIDsInRow("B")})
	require.NoError(t, err)
	assert.Equal(t, 20, layout.TotalSeated)

	report, err := svc.GetCapacity(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 20, report.Zones[0].Seats)

	colors, err := svc.GetDisplayColors(ctx, id)
	require.NoError(t, err)
	assert.Len(t, colors.Colors, 20)

	published, err := svc.PublishLayout(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, StatusActive, published.Status)

	assert.Equal(t, []EventType{
		EventLayoutCreated, EventLayoutSaved, EventLayoutSaved, EventLayoutSaved, EventLayoutPublished,
	}, events.types())
}

func TestService_PatchElements(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	layout, err := svc.CreateLayout(ctx, CreateLayoutRequest{Name: "Club"}, "")
	require.NoError(t, err)
	id := layout.ID.String()

	layout, err = svc.AddSeatGrid(ctx, id, AddSeatGridRequest{Rows: 1, SeatsPerRow: 4})
	require.NoError(t, err)
	ids := layout.InteractiveIDs()

	status := SeatWheelchair
	accessible := true
	result, err := svc.PatchElements(ctx, id, PatchElementsRequest{ElementIDs: ids[:2], Status: &status, Accessible: &accessible})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Changed)
	assert.Equal(t, 2, result.Layout.AccessibilityCount)

	_, err = svc.PatchElements(ctx, id, PatchElementsRequest{ElementIDs: ids})
	assert.ErrorIs(t, err, ErrInvalidElement)
}

func TestService_FailedMutationLeavesStoredLayout(t *testing.T) {
	ctx := context.Background()
	svc, events := newTestService()

	layout, err := svc.CreateLayout(ctx, CreateLayoutRequest{Name: "Arena"}, "")
	require.NoError(t, err)
	id := layout.ID.String()

	_, err = svc.AddSeatGrid(ctx, id, AddSeatGridRequest{Rows: 27, SeatsPerRow: 2})
	assert.ErrorIs(t, err, ErrRowLabelOverflow)

	stored, err := svc.GetLayout(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, stored.Elements)
	assert.Len(t, events.types(), 1)
}

func TestService_ArchivedLayoutCannotBePublished(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	layout, err := svc.CreateLayout(ctx, CreateLayoutRequest{Name: "Old Hall"}, "")
	require.NoError(t, err)
	id := layout.ID.String()

	_, err = svc.ArchiveLayout(ctx, id)
	require.NoError(t, err)
	_, err = svc.PublishLayout(ctx, id)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestService_UpdateLayoutReplacesCollections(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	layout, err := svc.CreateLayout(ctx, CreateLayoutRequest{Name: "Studio"}, "")
	require.NoError(t, err)

	name := "Studio One"
	elements := []LayoutElement{
		{ID: "pit", Width: 100, Height: 100, Visible: true, Properties: StandingAreaProps{Name: "Pit", Capacity: 75}},
	}
	zones := []PriceZone{{Name: "GA", Color: "#00FF00"}}

	updated, err := svc.UpdateLayout(ctx, layout.ID.String(), UpdateLayoutRequest{Name: &name, Elements: &elements, PriceZones: &zones})
	require.NoError(t, err)
	assert.Equal(t, "Studio One", updated.Name)
	assert.Equal(t, 75, updated.TotalCapacity)
	require.Len(t, updated.PriceZones, 1)
	assert.NotEmpty(t, updated.PriceZones[0].ID)

	dupZones := []PriceZone{{ID: "z", Name: "A", Color: "#000000"}, {ID: "z", Name: "B", Color: "#000000"}}
	_, err = svc.UpdateLayout(ctx, layout.ID.String(), UpdateLayoutRequest{PriceZones: &dupZones})
	assert.ErrorIs(t, err, ErrDuplicateZoneID)
}

func TestService_DeleteLayout(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	events := &recordingPublisher{}
	svc := NewService(repo, events)

	id := uuid.New()
	repo.On("Delete", ctx, id).Return(nil).Once()
	repo.On("Delete", ctx, mock.AnythingOfType("uuid.UUID")).Return(ErrLayoutNotFound)

	require.NoError(t, svc.DeleteLayout(ctx, id.String()))
	assert.Equal(t, []EventType{EventLayoutDeleted}, events.types())

	assert.ErrorIs(t, svc.DeleteLayout(ctx, uuid.NewString()), ErrLayoutNotFound)
	assert.ErrorIs(t, svc.DeleteLayout(ctx, "not-a-uuid"), ErrInvalidLayoutID)
	repo.AssertExpectations(t)
}

func TestService_SaveErrorIsReturned(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewService(repo, nil)

	saveErr := errors.New("connection refused")
	repo.On("Save", ctx, mock.AnythingOfType("*layouts.VenueLayout")).Return(saveErr)

	_, err := svc.CreateLayout(ctx, CreateLayoutRequest{Name: "Hall"}, "")
	assert.ErrorIs(t, err, saveErr)
	repo.AssertExpectations(t)
}

func TestService_PublishFailureDoesNotFailSave(t *testing.T) {
	ctx := context.Background()
	events := &recordingPublisher{err: errors.New("broker down")}
	svc := NewService(memoryRepository{NewMemoryStore()}, events)

	_, err := svc.CreateLayout(ctx, CreateLayoutRequest{Name: "Hall"}, "")
	assert.NoError(t, err)
}

func TestService_ListLayoutsDefaults(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewService(repo, nil)

	repo.On("List", ctx, LayoutFilters{Page: 1, Limit: 100}).Return(&PaginatedLayouts{Page: 1, Limit: 100}, nil)

	result, err := svc.ListLayouts(ctx, LayoutFilters{Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, 100, result.Limit)
	repo.AssertExpectations(t)
}
