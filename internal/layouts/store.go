package layouts

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Store is the persistence collaborator of the builder.
//
// Subscribe calls onChange with the saved layout after every Save of id, and
// with nil after it is deleted. The returned function stops the feed.
type Store interface {
	Get(ctx context.Context, id uuid.UUID) (*VenueLayout, error)
	Save(ctx context.Context, layout *VenueLayout) error
	Delete(ctx context.Context, id uuid.UUID) error
	Subscribe(ctx context.Context, id uuid.UUID, onChange func(*VenueLayout)) (func(), error)
}

// MemoryStore is an in-process Store used by tests and the CLI.
type MemoryStore struct {
	mu      sync.Mutex
	layouts map[uuid.UUID]*VenueLayout
	subs    map[uuid.UUID]map[int]func(*VenueLayout)
	nextSub int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		layouts: make(map[uuid.UUID]*VenueLayout),
		subs:    make(map[uuid.UUID]map[int]func(*VenueLayout)),
	}
}

func (m *MemoryStore) Get(ctx context.Context, id uuid.UUID) (*VenueLayout, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	layout, ok := m.layouts[id]
	if !ok {
		return nil, ErrLayoutNotFound
	}
	return layout.Clone(), nil
}

func (m *MemoryStore) Save(ctx context.Context, layout *VenueLayout) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	stored := layout.Clone()
	stored.Recalculate()
	m.mu.Lock()
	m.layouts[layout.ID] = stored
	listeners := m.listeners(layout.ID)
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(stored.Clone())
	}
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	if _, ok := m.layouts[id]; !ok {
		m.mu.Unlock()
		return ErrLayoutNotFound
	}
	delete(m.layouts, id)
	listeners := m.listeners(id)
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(nil)
	}
	return nil
}

func (m *MemoryStore) Subscribe(ctx context.Context, id uuid.UUID, onChange func(*VenueLayout)) (func(), error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.subs[id] == nil {
		m.subs[id] = make(map[int]func(*VenueLayout))
	}
	key := m.nextSub
	m.nextSub++
	m.subs[id][key] = onChange

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			delete(m.subs[id], key)
		})
	}, nil
}

// List returns copies of every stored layout.
func (m *MemoryStore) List(ctx context.Context) []*VenueLayout {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*VenueLayout, 0, len(m.layouts))
	for _, l := range m.layouts {
		out = append(out, l.Clone())
	}
	return out
}

func (m *MemoryStore) listeners(id uuid.UUID) []func(*VenueLayout) {
	out := make([]func(*VenueLayout), 0, len(m.subs[id]))
	for _, fn := range m.subs[id] {
		out = append(out, fn)
	}
	return out
}
