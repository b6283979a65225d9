package editor

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"venuelayout/internal/layouts"
	"venuelayout/pkg/geometry"
	"venuelayout/pkg/logger"
)

// Options configure a new Editor. Zero values fall back to defaults.
type Options struct {
	HistoryLimit int
	Margin       float64
	DrawKind     layouts.ElementKind
}

// Editor owns one layout being edited together with its selection, viewport,
// active gesture and undo history. All methods are safe for concurrent use;
// observers are notified after the internal lock is released.
type Editor struct {
	mu sync.Mutex

	layout    *layouts.VenueLayout
	selection map[string]struct{}
	tool      Tool
	drawKind  layouts.ElementKind
	viewport  geometry.Viewport
	session   session
	history   *History

	revision      uint64
	savedRevision uint64

	store     layouts.Store
	observers map[int]func(Change)
	nextObs   int
}

// New starts editing layout. The editor keeps its own copy.
func New(layout *layouts.VenueLayout, store layouts.Store, opts Options) *Editor {
	drawKind := opts.DrawKind
	if !drawKind.IsValid() {
		drawKind = layouts.KindSeat
	}
	working := layout.Clone()
	working.Recalculate()
	return &Editor{
		layout:    working,
		selection: make(map[string]struct{}),
		tool:      ToolSelect,
		drawKind:  drawKind,
		viewport:  geometry.Viewport{Zoom: 1, Margin: opts.Margin},
		session:   session{state: StateIdle},
		history:   NewHistory(opts.HistoryLimit),
		store:     store,
		observers: make(map[int]func(Change)),
	}
}

// update runs fn under the lock and then notifies observers of the changes
// it reported.
func (e *Editor) update(fn func() []ChangeKind) {
	e.mu.Lock()
	kinds := fn()
	revision := e.revision
	observers := make([]func(Change), 0, len(e.observers))
	for _, o := range e.observers {
		observers = append(observers, o)
	}
	e.mu.Unlock()

	for _, kind := range kinds {
		for _, o := range observers {
			o(Change{Kind: kind, Revision: revision})
		}
	}
}

// Subscribe registers fn for change notifications and returns a function that
// removes it.
func (e *Editor) Subscribe(fn func(Change)) func() {
	e.mu.Lock()
	id := e.nextObs
	e.nextObs++
	e.observers[id] = fn
	e.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Lock()
			delete(e.observers, id)
			e.mu.Unlock()
		})
	}
}

// mutate applies fn to a copy of the layout. On success the prior state goes
// on the undo stack and the copy becomes current; on error nothing changes.
// fn reports whether it changed anything.
func (e *Editor) mutate(fn func(next *layouts.VenueLayout) (bool, error)) error {
	next := e.layout.Clone()
	changed, err := fn(next)
	if err != nil || !changed {
		return err
	}
	e.history.push(e.layout)
	e.layout = next
	e.touch()
	e.pruneSelection()
	return nil
}

func (e *Editor) touch() {
	e.revision++
}

// pruneSelection drops ids that are no longer interactive elements.
func (e *Editor) pruneSelection() {
	for id := range e.selection {
		el, ok := e.layout.Element(id)
		if !ok || !el.Interactive() {
			delete(e.selection, id)
		}
	}
	if e.session.state == StateDragging {
		if _, ok := e.layout.Element(e.session.elementID); !ok {
			e.session = session{state: StateIdle}
		}
	}
}

// selectionIDs returns the selected ids in layout order.
func (e *Editor) selectionIDs() []string {
	ids := make([]string, 0, len(e.selection))
	for _, el := range e.layout.Elements {
		if _, ok := e.selection[el.ID]; ok {
			ids = append(ids, el.ID)
		}
	}
	return ids
}

func (e *Editor) setSelection(ids ...string) {
	e.selection = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		e.selection[id] = struct{}{}
	}
}

func (e *Editor) snap(p geometry.Point) geometry.Point {
	if !e.layout.Canvas.SnapToGrid {
		return p
	}
	return geometry.SnapPoint(p, e.layout.Canvas.GridSize)
}

// Layout returns a copy of the current layout.
func (e *Editor) Layout() *layouts.VenueLayout {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.layout.Clone()
}

// Elements returns the elements in paint order.
func (e *Editor) Elements() []layouts.LayoutElement {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.layout.ElementsByZ()
}

func (e *Editor) Selection() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selectionIDs()
}

func (e *Editor) IsSelected(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.selection[id]
	return ok
}

func (e *Editor) Tool() Tool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tool
}

func (e *Editor) Viewport() geometry.Viewport {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.viewport
}

func (e *Editor) Session() Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.view()
}

// Marquee returns the live selection box while a marquee gesture is active.
func (e *Editor) Marquee() (geometry.Rect, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session.state != StateMarquee {
		return geometry.Rect{}, false
	}
	return e.session.view().Marquee, true
}

func (e *Editor) DisplayColors() map[string]string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.layout.DisplayColors()
}

func (e *Editor) Capacity() layouts.Capacity {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.layout.Capacity()
}

// Dirty reports whether there are edits that have not been saved.
func (e *Editor) Dirty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.revision != e.savedRevision
}

func (e *Editor) CanUndo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.CanUndo()
}

func (e *Editor) CanRedo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.CanRedo()
}

// SetTool switches the active tool. It is ignored mid-gesture.
func (e *Editor) SetTool(t Tool) bool {
	ok := false
	e.update(func() []ChangeKind {
		if !t.IsValid() || e.session.state != StateIdle || e.tool == t {
			return nil
		}
		e.tool = t
		ok = true
		return []ChangeKind{ChangeTool}
	})
	return ok
}

// SetDrawKind selects what the draw tool places.
func (e *Editor) SetDrawKind(kind layouts.ElementKind) error {
	if !kind.IsValid() {
		return fmt.Errorf("%w: %s", layouts.ErrUnknownKind, kind)
	}
	e.mu.Lock()
	e.drawKind = kind
	e.mu.Unlock()
	return nil
}

// SetZoom sets the zoom level, clamped to [MinZoom, MaxZoom].
func (e *Editor) SetZoom(zoom float64) float64 {
	var got float64
	e.update(func() []ChangeKind {
		got = clampZoom(zoom)
		if got == e.viewport.Zoom {
			return nil
		}
		e.viewport.Zoom = got
		return []ChangeKind{ChangeViewport}
	})
	return got
}

func (e *Editor) SetPan(pan geometry.Point) {
	e.update(func() []ChangeKind {
		e.viewport.Pan = pan
		return []ChangeKind{ChangeViewport}
	})
}

func clampZoom(z float64) float64 {
	return math.Round(geometry.Clamp(z, MinZoom, MaxZoom)*100) / 100
}

// Select replaces the selection with the interactive elements among ids.
func (e *Editor) Select(ids ...string) {
	e.update(func() []ChangeKind {
		e.setSelection(ids...)
		e.pruneSelection()
		return []ChangeKind{ChangeSelection}
	})
}

func (e *Editor) SelectAll() {
	e.update(func() []ChangeKind {
		e.setSelection(e.layout.InteractiveIDs()...)
		return []ChangeKind{ChangeSelection}
	})
}

func (e *Editor) ClearSelection() {
	e.update(func() []ChangeKind {
		if len(e.selection) == 0 {
			return nil
		}
		e.setSelection()
		return []ChangeKind{ChangeSelection}
	})
}

// AddElements adds a batch of elements as one undoable step and selects them.
func (e *Editor) AddElements(elements ...layouts.LayoutElement) error {
	var err error
	e.update(func() []ChangeKind {
		err = e.mutate(func(next *layouts.VenueLayout) (bool, error) {
			if err := next.AddElements(elements...); err != nil {
				return false, err
			}
			return len(elements) > 0, nil
		})
		if err != nil || len(elements) == 0 {
			return nil
		}
		ids := make([]string, len(elements))
		for i, el := range elements {
			ids[i] = el.ID
		}
		e.setSelection(ids...)
		e.pruneSelection()
		return []ChangeKind{ChangeLayout, ChangeSelection}
	})
	return err
}

// AddSeatGrid places a generated seat grid and selects it.
func (e *Editor) AddSeatGrid(spec layouts.GridSpec) ([]layouts.LayoutElement, error) {
	seats, err := layouts.NewSeatGrid(spec)
	if err != nil {
		return nil, err
	}
	if err := e.AddElements(seats...); err != nil {
		return nil, err
	}
	return seats, nil
}

// UpdateElement replaces an element as one undoable step.
func (e *Editor) UpdateElement(el layouts.LayoutElement) error {
	var err error
	e.update(func() []ChangeKind {
		err = e.mutate(func(next *layouts.VenueLayout) (bool, error) {
			return true, next.UpdateElement(el)
		})
		if err != nil {
			return nil
		}
		return []ChangeKind{ChangeLayout}
	})
	return err
}

// DeleteSelected removes the selected elements and cancels a drag whose
// element was removed.
func (e *Editor) DeleteSelected() int {
	removed := 0
	e.update(func() []ChangeKind {
		ids := e.selectionIDs()
		if len(ids) == 0 {
			return nil
		}
		_ = e.mutate(func(next *layouts.VenueLayout) (bool, error) {
			removed = next.RemoveElements(ids...)
			return removed > 0, nil
		})
		e.setSelection()
		if e.session.state == StateDragging {
			e.session = session{state: StateIdle}
		}
		return []ChangeKind{ChangeLayout, ChangeSelection, ChangeSession}
	})
	return removed
}

// DuplicateSelected copies the selection and selects the copies.
func (e *Editor) DuplicateSelected() ([]layouts.LayoutElement, error) {
	var (
		copies []layouts.LayoutElement
		err    error
	)
	e.update(func() []ChangeKind {
		ids := e.selectionIDs()
		err = e.mutate(func(next *layouts.VenueLayout) (bool, error) {
			var dupErr error
			copies, dupErr = next.Duplicate(ids)
			return len(copies) > 0, dupErr
		})
		if err != nil || len(copies) == 0 {
			return nil
		}
		newIDs := make([]string, len(copies))
		for i, c := range copies {
			newIDs[i] = c.ID
		}
		e.setSelection(newIDs...)
		return []ChangeKind{ChangeLayout, ChangeSelection}
	})
	return copies, err
}

// ApplyPatch applies a bulk property update to the selection.
func (e *Editor) ApplyPatch(patch layouts.PropertyPatch) (int, error) {
	var (
		changed int
		err     error
	)
	e.update(func() []ChangeKind {
		ids := e.selectionIDs()
		err = e.mutate(func(next *layouts.VenueLayout) (bool, error) {
			var patchErr error
			changed, patchErr = next.ApplyPatch(ids, patch)
			return changed > 0, patchErr
		})
		if err != nil || changed == 0 {
			return nil
		}
		return []ChangeKind{ChangeLayout}
	})
	return changed, err
}

// AddPriceZone registers a zone as one undoable step.
func (e *Editor) AddPriceZone(z layouts.PriceZone) (layouts.PriceZone, error) {
	var (
		added layouts.PriceZone
		err   error
	)
	e.update(func() []ChangeKind {
		err = e.mutate(func(next *layouts.VenueLayout) (bool, error) {
			var zoneErr error
			added, zoneErr = next.AddPriceZone(z)
			return true, zoneErr
		})
		if err != nil {
			return nil
		}
		return []ChangeKind{ChangeLayout}
	})
	return added, err
}

func (e *Editor) UpdatePriceZone(z layouts.PriceZone) error {
	var err error
	e.update(func() []ChangeKind {
		err = e.mutate(func(next *layouts.VenueLayout) (bool, error) {
			return true, next.UpdatePriceZone(z)
		})
		if err != nil {
			return nil
		}
		return []ChangeKind{ChangeLayout}
	})
	return err
}

// RemovePriceZone deletes a zone. Seats that referenced it become unassigned.
func (e *Editor) RemovePriceZone(id string) error {
	var err error
	e.update(func() []ChangeKind {
		err = e.mutate(func(next *layouts.VenueLayout) (bool, error) {
			return true, next.RemovePriceZone(id)
		})
		if err != nil {
			return nil
		}
		return []ChangeKind{ChangeLayout}
	})
	return err
}

// SetCanvas changes the canvas settings. Elements keep their positions even
// when they end up outside the new bounds.
func (e *Editor) SetCanvas(canvas layouts.CanvasSettings) error {
	if err := layouts.ValidateCanvas(canvas); err != nil {
		return err
	}
	e.update(func() []ChangeKind {
		_ = e.mutate(func(next *layouts.VenueLayout) (bool, error) {
			next.Canvas = canvas
			return true, nil
		})
		return []ChangeKind{ChangeLayout}
	})
	return nil
}

func (e *Editor) Undo() bool {
	return e.step(e.history.Undo)
}

func (e *Editor) Redo() bool {
	return e.step(e.history.Redo)
}

func (e *Editor) step(pop func(*layouts.VenueLayout) (*layouts.VenueLayout, bool)) bool {
	ok := false
	e.update(func() []ChangeKind {
		var restored *layouts.VenueLayout
		restored, ok = pop(e.layout)
		if !ok {
			return nil
		}
		e.layout = restored
		e.session = session{state: StateIdle}
		e.touch()
		e.pruneSelection()
		return []ChangeKind{ChangeLayout, ChangeSelection}
	})
	return ok
}

// LoadTemplate replaces the elements and price zones with a template's set.
// The layout keeps its identity and canvas; history is cleared.
func (e *Editor) LoadTemplate(elements []layouts.LayoutElement, zones layouts.PriceZones) error {
	var err error
	e.update(func() []ChangeKind {
		next := e.layout.Clone()
		next.Elements = layouts.Elements{}
		next.PriceZones = zones.Clone()
		if next.PriceZones == nil {
			next.PriceZones = layouts.PriceZones{}
		}
		if err = next.AddElements(elements...); err != nil {
			return nil
		}
		e.layout = next
		e.history.Clear()
		e.setSelection()
		e.session = session{state: StateIdle}
		e.touch()
		return []ChangeKind{ChangeLayout, ChangeSelection, ChangeSession}
	})
	return err
}

// Save persists a snapshot of the layout. Edits made while the store call is
// in flight are kept and leave the editor dirty. History is not touched.
func (e *Editor) Save(ctx context.Context) error {
	e.mu.Lock()
	snapshot := e.layout.Clone()
	revision := e.revision
	store := e.store
	e.mu.Unlock()

	if store == nil {
		return ErrNoStore
	}

	snapshot.Recalculate()
	snapshot.UpdatedAt = time.Now().UTC()
	if err := store.Save(ctx, snapshot); err != nil {
		logger.GetDefault().ErrorWithContext(ctx, "Failed to save layout", err, map[string]interface{}{
			"layout_id": snapshot.ID.String(),
		})
		return fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}
	logger.GetDefault().LogLayoutSaved(ctx, snapshot.ID.String(), len(snapshot.Elements), snapshot.TotalCapacity)

	e.update(func() []ChangeKind {
		e.layout.UpdatedAt = snapshot.UpdatedAt
		if revision > e.savedRevision {
			e.savedRevision = revision
		}
		return []ChangeKind{ChangeSaved}
	})
	return nil
}
