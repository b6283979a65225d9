package layouts

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"math"
	"time"

	"venuelayout/pkg/geometry"

	"github.com/google/uuid"
)

// LayoutElement is one placeable object on the canvas.
type LayoutElement struct {
	ID         string     `json:"id" validate:"required"`
	X          float64    `json:"x"`
	Y          float64    `json:"y"`
	Width      float64    `json:"width" validate:"gt=0"`
	Height     float64    `json:"height" validate:"gt=0"`
	Rotation   float64    `json:"rotation" validate:"gte=0,lt=360"`
	ZIndex     int        `json:"z_index"`
	Locked     bool       `json:"locked"`
	Visible    bool       `json:"visible"`
	Properties Properties `json:"properties" validate:"required"`
}

// Kind returns the payload kind, or "" when the element has no payload.
func (e LayoutElement) Kind() ElementKind {
	if e.Properties == nil {
		return ""
	}
	return e.Properties.Kind()
}

// Bounds returns the axis-aligned bounding box. Rotation is not applied.
func (e LayoutElement) Bounds() geometry.Rect {
	return geometry.NewRect(e.X, e.Y, e.Width, e.Height)
}

// Seat returns the seat payload when the element is a seat.
func (e LayoutElement) Seat() (SeatProps, bool) {
	p, ok := e.Properties.(SeatProps)
	return p, ok
}

// Interactive reports whether the element takes part in hit-testing and selection.
func (e LayoutElement) Interactive() bool {
	return e.Visible && !e.Locked
}

type elementJSON struct {
	ID         string          `json:"id"`
	X          float64         `json:"x"`
	Y          float64         `json:"y"`
	Width      float64         `json:"width"`
	Height     float64         `json:"height"`
	Rotation   float64         `json:"rotation"`
	ZIndex     int             `json:"z_index"`
	Locked     bool            `json:"locked"`
	Visible    bool            `json:"visible"`
	Properties json.RawMessage `json:"properties"`
}

func (e LayoutElement) MarshalJSON() ([]byte, error) {
	props, err := marshalProperties(e.Properties)
	if err != nil {
		return nil, err
	}
	return json.Marshal(elementJSON{
		ID:         e.ID,
		X:          e.X,
		Y:          e.Y,
		Width:      e.Width,
		Height:     e.Height,
		Rotation:   e.Rotation,
		ZIndex:     e.ZIndex,
		Locked:     e.Locked,
		Visible:    e.Visible,
		Properties: props,
	})
}

func (e *LayoutElement) UnmarshalJSON(data []byte) error {
	var raw elementJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	props, err := unmarshalProperties(raw.Properties)
	if err != nil {
		return err
	}
	*e = LayoutElement{
		ID:         raw.ID,
		X:          raw.X,
		Y:          raw.Y,
		Width:      raw.Width,
		Height:     raw.Height,
		Rotation:   normalizeRotation(raw.Rotation),
		ZIndex:     raw.ZIndex,
		Locked:     raw.Locked,
		Visible:    raw.Visible,
		Properties: props,
	}
	return nil
}

// normalizeRotation wraps degrees into [0, 360).
func normalizeRotation(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// Elements is the jsonb column holding a layout's elements.
type Elements []LayoutElement

func (e Elements) Value() (driver.Value, error) {
	if e == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(e)
}

func (e *Elements) Scan(value interface{}) error {
	if value == nil {
		*e = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		s, isString := value.(string)
		if !isString {
			return errors.New("type assertion to []byte failed")
		}
		bytes = []byte(s)
	}
	return json.Unmarshal(bytes, e)
}

func (Elements) GormDataType() string {
	return "jsonb"
}

type LayoutStatus string

const (
	StatusDraft    LayoutStatus = "draft"
	StatusActive   LayoutStatus = "active"
	StatusArchived LayoutStatus = "archived"
)

func (s LayoutStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusActive, StatusArchived:
		return true
	}
	return false
}

// CanvasSettings are the editor surface settings saved with a layout.
type CanvasSettings struct {
	Width           float64 `json:"width" validate:"gt=0"`
	Height          float64 `json:"height" validate:"gt=0"`
	BackgroundColor string  `json:"background_color" validate:"omitempty,hexcolor"`
	GridSize        float64 `json:"grid_size" validate:"gte=0"`
	SnapToGrid      bool    `json:"snap_to_grid"`
}

// DefaultCanvas is used for layouts created without explicit canvas settings.
func DefaultCanvas() CanvasSettings {
	return CanvasSettings{
		Width:           1200,
		Height:          800,
		BackgroundColor: "#FFFFFF",
		GridSize:        20,
		SnapToGrid:      true,
	}
}

// VenueLayout is the aggregate root of the builder. The Total* fields and
// AccessibilityCount are derived and refreshed by Recalculate.
type VenueLayout struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name               string         `gorm:"not null" json:"name"`
	Description        string         `json:"description"`
	VenueName          string         `gorm:"index" json:"venue_name"`
	Canvas             CanvasSettings `gorm:"embedded;embeddedPrefix:canvas_" json:"canvas"`
	Elements           Elements       `gorm:"type:jsonb" json:"elements"`
	PriceZones         PriceZones     `gorm:"type:jsonb" json:"price_zones"`
	TotalSeated        int            `json:"total_seated"`
	TotalStanding      int            `json:"total_standing"`
	TotalCapacity      int            `json:"total_capacity"`
	AccessibilityCount int            `json:"accessibility_count"`
	Status             LayoutStatus   `gorm:"not null;default:draft;index" json:"status"`
	CreatedBy          string         `json:"created_by"`
	UsageCount         int            `gorm:"default:0" json:"usage_count"`
	IsTemplate         bool           `gorm:"index" json:"is_template"`
	TemplateCategory   string         `json:"template_category,omitempty"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

func (VenueLayout) TableName() string {
	return "venue_layouts"
}

// NewVenueLayout returns an empty draft layout with a fresh id.
func NewVenueLayout(name string, canvas CanvasSettings) *VenueLayout {
	now := time.Now().UTC()
	return &VenueLayout{
		ID:         uuid.New(),
		Name:       name,
		Canvas:     canvas,
		Elements:   Elements{},
		PriceZones: PriceZones{},
		Status:     StatusDraft,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Capacity returns the derived capacity fields.
func (l *VenueLayout) Capacity() Capacity {
	return Capacity{
		TotalSeated:        l.TotalSeated,
		TotalStanding:      l.TotalStanding,
		TotalCapacity:      l.TotalCapacity,
		AccessibilityCount: l.AccessibilityCount,
	}
}

// Publish flips a draft layout to active.
func (l *VenueLayout) Publish() error {
	if l.Status == StatusArchived {
		return ErrInvalidStatus
	}
	l.Status = StatusActive
	return nil
}

// Archive retires the layout.
func (l *VenueLayout) Archive() {
	l.Status = StatusArchived
}
