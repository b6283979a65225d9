package layouts

import (
	"fmt"
	"sort"

	"venuelayout/pkg/geometry"

	"github.com/google/uuid"
)

// Element returns a copy of the element with the given id.
func (l *VenueLayout) Element(id string) (LayoutElement, bool) {
	if i := l.indexOf(id); i >= 0 {
		return l.Elements[i], true
	}
	return LayoutElement{}, false
}

func (l *VenueLayout) indexOf(id string) int {
	for i := range l.Elements {
		if l.Elements[i].ID == id {
			return i
		}
	}
	return -1
}

// AddElements validates the whole batch first; on any error nothing is added.
func (l *VenueLayout) AddElements(elements ...LayoutElement) error {
	seen := make(map[string]struct{}, len(l.Elements)+len(elements))
	for _, el := range l.Elements {
		seen[el.ID] = struct{}{}
	}
	added := make([]LayoutElement, len(elements))
	for i, el := range elements {
		el.Rotation = normalizeRotation(el.Rotation)
		if err := ValidateElement(el); err != nil {
			return err
		}
		if _, dup := seen[el.ID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateElementID, el.ID)
		}
		seen[el.ID] = struct{}{}
		added[i] = el
	}

	next := make(Elements, 0, len(l.Elements)+len(elements))
	next = append(next, l.Elements...)
	next = append(next, added...)
	l.Elements = next
	l.Recalculate()
	return nil
}

// RemoveElements deletes the elements with the given ids and returns how many
// were removed. Unknown ids are ignored.
func (l *VenueLayout) RemoveElements(ids ...string) int {
	drop := idSet(ids)
	kept := make(Elements, 0, len(l.Elements))
	for _, el := range l.Elements {
		if _, ok := drop[el.ID]; !ok {
			kept = append(kept, el)
		}
	}
	removed := len(l.Elements) - len(kept)
	l.Elements = kept
	if removed > 0 {
		l.Recalculate()
	}
	return removed
}

// UpdateElement replaces the element with the same id. The payload kind must
// not change.
func (l *VenueLayout) UpdateElement(el LayoutElement) error {
	i := l.indexOf(el.ID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrElementNotFound, el.ID)
	}
	if l.Elements[i].Kind() != el.Kind() {
		return fmt.Errorf("%w: %s is %s", ErrKindImmutable, el.ID, l.Elements[i].Kind())
	}
	el.Rotation = normalizeRotation(el.Rotation)
	if err := ValidateElement(el); err != nil {
		return err
	}
	l.Elements = l.copyElements()
	l.Elements[i] = el
	l.Recalculate()
	return nil
}

// MoveElement sets an element's top-left corner.
func (l *VenueLayout) MoveElement(id string, x, y float64) error {
	i := l.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrElementNotFound, id)
	}
	if l.Elements[i].Locked {
		return fmt.Errorf("%w: %s", ErrElementLocked, id)
	}
	l.Elements = l.copyElements()
	l.Elements[i].X, l.Elements[i].Y = x, y
	return nil
}

// TranslateElements moves every unlocked element in ids by (dx, dy) and
// returns how many moved.
func (l *VenueLayout) TranslateElements(ids []string, dx, dy float64) int {
	if dx == 0 && dy == 0 {
		return 0
	}
	move := idSet(ids)
	moved := 0
	l.Elements = l.copyElements()
	for i := range l.Elements {
		if _, ok := move[l.Elements[i].ID]; !ok || l.Elements[i].Locked {
			continue
		}
		l.Elements[i].X += dx
		l.Elements[i].Y += dy
		moved++
	}
	return moved
}

// ApplyPatch applies a bulk update to the elements in ids. Elements whose kind
// the patch does not apply to are skipped silently. It returns how many
// elements changed.
func (l *VenueLayout) ApplyPatch(ids []string, patch PropertyPatch) (int, error) {
	if err := patch.Validate(); err != nil {
		return 0, err
	}
	targets := idSet(ids)
	next := l.copyElements()
	changed := 0
	for i := range next {
		if _, ok := targets[next[i].ID]; !ok || !patch.AppliesTo(next[i].Kind()) {
			continue
		}
		patch.Apply(&next[i])
		if err := ValidateElement(next[i]); err != nil {
			return 0, err
		}
		changed++
	}
	if changed > 0 {
		l.Elements = next
		l.Recalculate()
	}
	return changed, nil
}

// Duplicate copies the elements in ids with fresh ids, offset by
// DuplicateOffset on both axes, and returns the copies in layout order.
func (l *VenueLayout) Duplicate(ids []string) ([]LayoutElement, error) {
	source := idSet(ids)
	var copies []LayoutElement
	for _, el := range l.Elements {
		if _, ok := source[el.ID]; !ok {
			continue
		}
		dup := el
		dup.ID = uuid.NewString()
		dup.X += DuplicateOffset
		dup.Y += DuplicateOffset
		copies = append(copies, dup)
	}
	if len(copies) == 0 {
		return nil, nil
	}
	if err := l.AddElements(copies...); err != nil {
		return nil, err
	}
	return copies, nil
}

// Clone returns a deep copy of the layout.
func (l *VenueLayout) Clone() *VenueLayout {
	cp := *l
	cp.Elements = l.copyElements()
	cp.PriceZones = l.PriceZones.Clone()
	return &cp
}

// ElementsByZ returns the elements in paint order: ascending zIndex, ties
// kept in insertion order.
func (l *VenueLayout) ElementsByZ() []LayoutElement {
	out := l.copyElements()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ZIndex < out[j].ZIndex
	})
	return out
}

// HitTest returns the topmost visible, unlocked element containing p.
func (l *VenueLayout) HitTest(p geometry.Point) (LayoutElement, bool) {
	ordered := l.ElementsByZ()
	for i := len(ordered) - 1; i >= 0; i-- {
		el := ordered[i]
		if el.Interactive() && el.Bounds().Contains(p) {
			return el, true
		}
	}
	return LayoutElement{}, false
}

// ElementsInBox returns the visible, unlocked elements lying entirely within box.
func (l *VenueLayout) ElementsInBox(box geometry.Rect) []LayoutElement {
	var out []LayoutElement
	for _, el := range l.Elements {
		if el.Interactive() && el.Bounds().FullyInside(box) {
			out = append(out, el)
		}
	}
	return out
}

// InteractiveIDs returns the ids of every visible, unlocked element.
func (l *VenueLayout) InteractiveIDs() []string {
	var ids []string
	for _, el := range l.Elements {
		if el.Interactive() {
			ids = append(ids, el.ID)
		}
	}
	return ids
}

// SeatIDsInRow returns the ids of seats labelled with row.
func (l *VenueLayout) SeatIDsInRow(row string) []string {
	var ids []string
	for _, el := range l.Elements {
		if seat, ok := el.Seat(); ok && seat.Row == row {
			ids = append(ids, el.ID)
		}
	}
	return ids
}

func (l *VenueLayout) copyElements() Elements {
	if l.Elements == nil {
		return nil
	}
	out := make(Elements, len(l.Elements))
	copy(out, l.Elements)
	return out
}

func idSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
