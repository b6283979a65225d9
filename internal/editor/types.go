package editor

import (
	"errors"

	"venuelayout/pkg/geometry"
)

var (
	ErrSaveFailed = errors.New("failed to save layout")
	ErrNoStore    = errors.New("editor has no store")
)

const (
	MinZoom  = 0.25
	MaxZoom  = 2.0
	ZoomStep = 0.1
)

type Tool string

const (
	ToolSelect Tool = "select"
	ToolPan    Tool = "pan"
	ToolDraw   Tool = "draw"
)

func (t Tool) IsValid() bool {
	switch t {
	case ToolSelect, ToolPan, ToolDraw:
		return true
	}
	return false
}

type Button int

const (
	ButtonPrimary Button = iota
	ButtonMiddle
	ButtonSecondary
)

// Modifiers is the keyboard state at the time of an input event. Space is
// held-space, which turns any pointer-down into a pan.
type Modifiers struct {
	Shift bool
	Ctrl  bool
	Meta  bool
	Alt   bool
	Space bool
}

// command reports whether ctrl or cmd is held.
func (m Modifiers) command() bool {
	return m.Ctrl || m.Meta
}

// PointerEvent carries screen coordinates.
type PointerEvent struct {
	Screen geometry.Point
	Button Button
	Mods   Modifiers
}

// WheelEvent is one scroll tick. Negative DeltaY scrolls up.
type WheelEvent struct {
	DeltaY float64
	Mods   Modifiers
}

type SessionState string

const (
	StateIdle     SessionState = "idle"
	StateDragging SessionState = "dragging"
	StateMarquee  SessionState = "marquee"
	StatePanning  SessionState = "panning"
)

// Session is a read-only view of the active gesture.
type Session struct {
	State     SessionState
	ElementID string
	Marquee   geometry.Rect
}

// session is the live gesture. Only the fields of the current state are set.
type session struct {
	state SessionState

	// dragging
	elementID string
	offset    geometry.Point
	pushed    bool

	// marquee
	start geometry.Point
	end   geometry.Point

	// panning
	panOrigin geometry.Point
}

func (s session) view() Session {
	v := Session{State: s.state, ElementID: s.elementID}
	if s.state == StateMarquee {
		v.Marquee = geometry.NormalizePoints(s.start, s.end)
	}
	return v
}

type ChangeKind string

const (
	ChangeLayout    ChangeKind = "layout"
	ChangeSelection ChangeKind = "selection"
	ChangeViewport  ChangeKind = "viewport"
	ChangeSession   ChangeKind = "session"
	ChangeTool      ChangeKind = "tool"
	ChangeSaved     ChangeKind = "saved"
)

// Change is delivered to subscribers after the editor lock is released.
type Change struct {
	Kind     ChangeKind
	Revision uint64
}
