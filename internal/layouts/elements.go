package layouts

import (
	"fmt"
	"strings"

	"venuelayout/pkg/geometry"

	"github.com/google/uuid"
)

// SeatSize is the edge length of a seat created by the factories.
const SeatSize = 28.0

// DuplicateOffset is how far a duplicate is placed from its source on both axes.
const DuplicateOffset = 30.0

type kindDefaults struct {
	zIndex        int
	width, height float64
}

// Higher zIndex paints on top and wins hit-tests.
var defaultsByKind = map[ElementKind]kindDefaults{
	KindSeat:         {zIndex: 10, width: SeatSize, height: SeatSize},
	KindRow:          {zIndex: 10, width: 10 * SeatSize, height: SeatSize},
	KindSection:      {zIndex: 4, width: 400, height: 300},
	KindStage:        {zIndex: 5, width: 400, height: 80},
	KindStandingArea: {zIndex: 3, width: 300, height: 200},
	KindShape:        {zIndex: 2, width: 100, height: 100},
	KindLabel:        {zIndex: 20, width: 120, height: 30},
	KindWall:         {zIndex: 1, width: 200, height: 10},
	KindEntrance:     {zIndex: 15, width: 60, height: 20},
}

// DefaultZIndex returns the paint order assigned to new elements of a kind.
func DefaultZIndex(kind ElementKind) int {
	return defaultsByKind[kind].zIndex
}

// ElementOption customises an element built by NewElement.
type ElementOption func(*LayoutElement)

func WithPosition(x, y float64) ElementOption {
	return func(e *LayoutElement) {
		e.X, e.Y = x, y
	}
}

func WithSize(width, height float64) ElementOption {
	return func(e *LayoutElement) {
		e.Width, e.Height = width, height
	}
}

func WithRotation(deg float64) ElementOption {
	return func(e *LayoutElement) {
		e.Rotation = normalizeRotation(deg)
	}
}

func WithZIndex(z int) ElementOption {
	return func(e *LayoutElement) {
		e.ZIndex = z
	}
}

func WithLocked(locked bool) ElementOption {
	return func(e *LayoutElement) {
		e.Locked = locked
	}
}

func WithVisible(visible bool) ElementOption {
	return func(e *LayoutElement) {
		e.Visible = visible
	}
}

// WithProperties replaces the default payload. NewElement rejects a payload
// whose kind differs from the requested one.
func WithProperties(p Properties) ElementOption {
	return func(e *LayoutElement) {
		e.Properties = p
	}
}

// NewElement builds a validated element of the given kind with a fresh id,
// the kind's default size, zIndex and payload.
func NewElement(kind ElementKind, opts ...ElementOption) (LayoutElement, error) {
	props, err := DefaultProperties(kind)
	if err != nil {
		return LayoutElement{}, err
	}
	d := defaultsByKind[kind]
	el := LayoutElement{
		ID:         uuid.NewString(),
		Width:      d.width,
		Height:     d.height,
		ZIndex:     d.zIndex,
		Visible:    true,
		Properties: props,
	}
	for _, opt := range opts {
		opt(&el)
	}
	if el.Kind() != kind {
		return LayoutElement{}, fmt.Errorf("%w: want %s, got %s", ErrKindMismatch, kind, el.Kind())
	}
	if err := ValidateElement(el); err != nil {
		return LayoutElement{}, err
	}
	return el, nil
}

// GridSpec describes a rectangular block of seats. Spacing is the gap
// between neighbouring seats, not the distance between their origins.
type GridSpec struct {
	Origin      geometry.Point `json:"origin" yaml:"origin"`
	Rows        int            `json:"rows" yaml:"rows"`
	SeatsPerRow int            `json:"seats_per_row" yaml:"seats_per_row"`
	RowSpacing  float64        `json:"row_spacing" yaml:"row_spacing"`
	SeatSpacing float64        `json:"seat_spacing" yaml:"seat_spacing"`
	PriceZoneID string         `json:"price_zone_id" yaml:"price_zone_id"`
	Section     string         `json:"section" yaml:"section"`
	StartRow    string         `json:"start_row" yaml:"start_row"`
}

// RowLabel returns the label of the i-th row counted from start. Labels are
// single letters, so a grid cannot run past 'Z'.
func RowLabel(start string, i int) (string, error) {
	if start == "" {
		start = "A"
	}
	start = strings.ToUpper(start)
	if len(start) != 1 || start[0] < 'A' || start[0] > 'Z' {
		return "", fmt.Errorf("%w: start row must be a single letter, got %q", ErrInvalidGrid, start)
	}
	label := int(start[0]) + i
	if i < 0 || label > 'Z' {
		return "", fmt.Errorf("%w: row %d from %s", ErrRowLabelOverflow, i+1, start)
	}
	return string(rune(label)), nil
}

// NewSeatGrid lays out spec.Rows rows of spec.SeatsPerRow seats. Seats are
// numbered from 1 within each row.
func NewSeatGrid(spec GridSpec) ([]LayoutElement, error) {
	if spec.Rows <= 0 || spec.SeatsPerRow <= 0 {
		return nil, fmt.Errorf("%w: rows and seats per row must be positive", ErrInvalidGrid)
	}
	if spec.RowSpacing < 0 || spec.SeatSpacing < 0 {
		return nil, fmt.Errorf("%w: spacing must not be negative", ErrInvalidGrid)
	}
	if _, err := RowLabel(spec.StartRow, spec.Rows-1); err != nil {
		return nil, err
	}

	seats := make([]LayoutElement, 0, spec.Rows*spec.SeatsPerRow)
	for r := 0; r < spec.Rows; r++ {
		row, _ := RowLabel(spec.StartRow, r)
		y := spec.Origin.Y + float64(r)*(SeatSize+spec.RowSpacing)
		for s := 0; s < spec.SeatsPerRow; s++ {
			x := spec.Origin.X + float64(s)*(SeatSize+spec.SeatSpacing)
			seat, err := NewElement(KindSeat,
				WithPosition(x, y),
				WithProperties(SeatProps{
					Section:     spec.Section,
					Row:         row,
					Number:      s + 1,
					PriceZoneID: spec.PriceZoneID,
					Status:      SeatAvailable,
				}),
			)
			if err != nil {
				return nil, err
			}
			seats = append(seats, seat)
		}
	}
	return seats, nil
}

// NewSeatRow is a one-row grid.
func NewSeatRow(origin geometry.Point, seats int, spacing float64, priceZoneID, section, row string) ([]LayoutElement, error) {
	return NewSeatGrid(GridSpec{
		Origin:      origin,
		Rows:        1,
		SeatsPerRow: seats,
		SeatSpacing: spacing,
		PriceZoneID: priceZoneID,
		Section:     section,
		StartRow:    row,
	})
}
