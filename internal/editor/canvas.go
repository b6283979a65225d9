package editor

import (
	"venuelayout/internal/layouts"
	"venuelayout/pkg/geometry"
)

// PointerDown starts a gesture. It is ignored while another gesture is active.
func (e *Editor) PointerDown(ev PointerEvent) {
	e.update(func() []ChangeKind {
		if e.session.state != StateIdle {
			return nil
		}

		if e.tool == ToolPan || ev.Button == ButtonMiddle || ev.Mods.Space {
			e.session = session{
				state:     StatePanning,
				panOrigin: ev.Screen.Sub(e.viewport.Pan),
			}
			return []ChangeKind{ChangeSession}
		}
		if ev.Button != ButtonPrimary {
			return nil
		}

		p := e.viewport.ToCanvas(ev.Screen)
		switch e.tool {
		case ToolDraw:
			return e.place(p)
		case ToolSelect:
			return e.pick(p, ev.Mods.Shift)
		}
		return nil
	})
}

// pick handles a select-tool press at canvas point p.
func (e *Editor) pick(p geometry.Point, shift bool) []ChangeKind {
	el, hit := e.layout.HitTest(p)
	if !hit {
		if !shift {
			e.setSelection()
		}
		e.session = session{state: StateMarquee, start: p, end: p}
		return []ChangeKind{ChangeSelection, ChangeSession}
	}

	if shift {
		if _, ok := e.selection[el.ID]; ok {
			delete(e.selection, el.ID)
		} else {
			e.selection[el.ID] = struct{}{}
		}
		return []ChangeKind{ChangeSelection}
	}

	if _, ok := e.selection[el.ID]; !ok {
		e.setSelection(el.ID)
	}
	e.session = session{
		state:     StateDragging,
		elementID: el.ID,
		offset:    p.Sub(geometry.NewPoint(el.X, el.Y)),
	}
	return []ChangeKind{ChangeSelection, ChangeSession}
}

// place drops a new element of the draw kind at p.
func (e *Editor) place(p geometry.Point) []ChangeKind {
	at := e.snap(p)
	el, err := layouts.NewElement(e.drawKind, layouts.WithPosition(at.X, at.Y))
	if err != nil {
		return nil
	}
	err = e.mutate(func(next *layouts.VenueLayout) (bool, error) {
		return true, next.AddElements(el)
	})
	if err != nil {
		return nil
	}
	e.setSelection(el.ID)
	return []ChangeKind{ChangeLayout, ChangeSelection}
}

// PointerMove advances the active gesture. Without one it does nothing.
func (e *Editor) PointerMove(ev PointerEvent) {
	e.update(func() []ChangeKind {
		switch e.session.state {
		case StateDragging:
			return e.drag(e.viewport.ToCanvas(ev.Screen))
		case StateMarquee:
			e.session.end = e.viewport.ToCanvas(ev.Screen)
			return []ChangeKind{ChangeSession}
		case StatePanning:
			e.viewport.Pan = ev.Screen.Sub(e.session.panOrigin)
			return []ChangeKind{ChangeViewport}
		}
		return nil
	})
}

// drag moves the grabbed element to p minus the grab offset and translates
// the rest of the selection by the same delta. The delta is taken against the
// grabbed element's current position, so every move event applies it once.
func (e *Editor) drag(p geometry.Point) []ChangeKind {
	grabbed, ok := e.layout.Element(e.session.elementID)
	if !ok {
		e.session = session{state: StateIdle}
		return []ChangeKind{ChangeSession}
	}

	target := e.snap(p.Sub(e.session.offset))
	dx, dy := target.X-grabbed.X, target.Y-grabbed.Y
	if dx == 0 && dy == 0 {
		return nil
	}

	// one undo step per gesture, recorded before the first effective move
	if !e.session.pushed {
		e.history.Push(e.layout)
		e.session.pushed = true
	}
	ids := e.selectionIDs()
	if _, ok := e.selection[grabbed.ID]; !ok {
		ids = append(ids, grabbed.ID)
	}
	e.layout.TranslateElements(ids, dx, dy)
	e.touch()
	return []ChangeKind{ChangeLayout}
}

// PointerUp ends the active gesture. A marquee selects every interactive
// element lying entirely inside the box, added to the current selection.
func (e *Editor) PointerUp(ev PointerEvent) {
	e.update(func() []ChangeKind {
		switch e.session.state {
		case StateDragging, StatePanning:
			e.session = session{state: StateIdle}
			return []ChangeKind{ChangeSession}
		case StateMarquee:
			e.session.end = e.viewport.ToCanvas(ev.Screen)
			box := geometry.NormalizePoints(e.session.start, e.session.end)
			for _, el := range e.layout.ElementsInBox(box) {
				e.selection[el.ID] = struct{}{}
			}
			e.session = session{state: StateIdle}
			return []ChangeKind{ChangeSelection, ChangeSession}
		}
		return nil
	})
}

// Wheel zooms by ZoomStep per tick while ctrl or cmd is held. Scrolling up
// zooms in. It reports whether the zoom changed.
func (e *Editor) Wheel(ev WheelEvent) bool {
	changed := false
	e.update(func() []ChangeKind {
		if !ev.Mods.command() || ev.DeltaY == 0 {
			return nil
		}
		step := ZoomStep
		if ev.DeltaY > 0 {
			step = -step
		}
		zoom := clampZoom(e.viewport.Zoom + step)
		if zoom == e.viewport.Zoom {
			return nil
		}
		e.viewport.Zoom = zoom
		changed = true
		return []ChangeKind{ChangeViewport}
	})
	return changed
}
