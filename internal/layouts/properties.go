package layouts

import (
	"encoding/json"
	"fmt"
)

// ElementKind tags the payload carried by a LayoutElement.
type ElementKind string

const (
	KindSeat         ElementKind = "seat"
	KindRow          ElementKind = "row"
	KindSection      ElementKind = "section"
	KindStage        ElementKind = "stage"
	KindStandingArea ElementKind = "standing-area"
	KindShape        ElementKind = "shape"
	KindLabel        ElementKind = "label"
	KindWall         ElementKind = "wall"
	KindEntrance     ElementKind = "entrance"
)

// AllKinds lists every element kind in a stable order.
var AllKinds = []ElementKind{
	KindSeat, KindRow, KindSection, KindStage, KindStandingArea, KindShape, KindLabel, KindWall, KindEntrance,
}

// IsValid reports whether k is a known kind.
func (k ElementKind) IsValid() bool {
	for _, known := range AllKinds {
		if k == known {
			return true
		}
	}
	return false
}

type SeatStatus string

const (
	SeatAvailable     SeatStatus = "available"
	SeatReservedAdmin SeatStatus = "reserved_admin"
	SeatBroken        SeatStatus = "broken"
	SeatWheelchair    SeatStatus = "wheelchair"
)

func (s SeatStatus) IsValid() bool {
	switch s {
	case SeatAvailable, SeatReservedAdmin, SeatBroken, SeatWheelchair:
		return true
	}
	return false
}

// Properties is the kind-specific payload of an element. Each payload is a
// plain value type so copying an element copies its payload.
type Properties interface {
	Kind() ElementKind
}

type SeatProps struct {
	Section     string     `json:"section"`
	Row         string     `json:"row"`
	Number      int        `json:"number"`
	PriceZoneID string     `json:"price_zone_id,omitempty"`
	Status      SeatStatus `json:"status"`
	Accessible  bool       `json:"accessible"`
}

type RowProps struct {
	Label       string `json:"label"`
	Section     string `json:"section"`
	SeatCount   int    `json:"seat_count"`
	PriceZoneID string `json:"price_zone_id,omitempty"`
}

type SectionProps struct {
	Name        string `json:"name"`
	PriceZoneID string `json:"price_zone_id,omitempty"`
	Color       string `json:"color,omitempty"`
}

type StageProps struct {
	Label string `json:"label"`
	Shape string `json:"shape,omitempty"`
}

type StandingAreaProps struct {
	Name        string `json:"name"`
	Capacity    int    `json:"capacity"`
	PriceZoneID string `json:"price_zone_id,omitempty"`
}

type ShapeProps struct {
	Shape       string `json:"shape"`
	FillColor   string `json:"fill_color,omitempty"`
	StrokeColor string `json:"stroke_color,omitempty"`
}

type LabelProps struct {
	Text     string  `json:"text"`
	FontSize float64 `json:"font_size"`
	Color    string  `json:"color,omitempty"`
}

type WallProps struct {
	Thickness float64 `json:"thickness"`
	Color     string  `json:"color,omitempty"`
}

type EntranceProps struct {
	Label      string `json:"label"`
	Accessible bool   `json:"accessible"`
	Exit       bool   `json:"exit"`
}

func (SeatProps) Kind() ElementKind         { return KindSeat }
func (RowProps) Kind() ElementKind          { return KindRow }
func (SectionProps) Kind() ElementKind      { return KindSection }
func (StageProps) Kind() ElementKind        { return KindStage }
func (StandingAreaProps) Kind() ElementKind { return KindStandingArea }
func (ShapeProps) Kind() ElementKind        { return KindShape }
func (LabelProps) Kind() ElementKind        { return KindLabel }
func (WallProps) Kind() ElementKind         { return KindWall }
func (EntranceProps) Kind() ElementKind     { return KindEntrance }

// DefaultProperties returns the zero-configuration payload for a kind.
func DefaultProperties(kind ElementKind) (Properties, error) {
	switch kind {
	case KindSeat:
		return SeatProps{Status: SeatAvailable}, nil
	case KindRow:
		return RowProps{}, nil
	case KindSection:
		return SectionProps{Name: "Section"}, nil
	case KindStage:
		return StageProps{Label: "Stage", Shape: "rectangle"}, nil
	case KindStandingArea:
		return StandingAreaProps{Name: "Standing", Capacity: 100}, nil
	case KindShape:
		return ShapeProps{Shape: "rectangle"}, nil
	case KindLabel:
		return LabelProps{Text: "Label", FontSize: 14}, nil
	case KindWall:
		return WallProps{Thickness: 10}, nil
	case KindEntrance:
		return EntranceProps{Label: "Entrance"}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// marshalProperties writes the payload as a JSON object with a "kind" member.
func marshalProperties(p Properties) (json.RawMessage, error) {
	if p == nil {
		return json.RawMessage("null"), nil
	}
	body, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, err
	}
	kind, err := json.Marshal(p.Kind())
	if err != nil {
		return nil, err
	}
	fields["kind"] = kind
	return json.Marshal(fields)
}

func unmarshalProperties(data json.RawMessage) (Properties, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}
	var envelope struct {
		Kind ElementKind `json:"kind"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("failed to read properties kind: %w", err)
	}

	switch envelope.Kind {
	case KindSeat:
		return decodeAs[SeatProps](data)
	case KindRow:
		return decodeAs[RowProps](data)
	case KindSection:
		return decodeAs[SectionProps](data)
	case KindStage:
		return decodeAs[StageProps](data)
	case KindStandingArea:
		return decodeAs[StandingAreaProps](data)
	case KindShape:
		return decodeAs[ShapeProps](data)
	case KindLabel:
		return decodeAs[LabelProps](data)
	case KindWall:
		return decodeAs[WallProps](data)
	case KindEntrance:
		return decodeAs[EntranceProps](data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, envelope.Kind)
	}
}

func decodeAs[T Properties](data json.RawMessage) (Properties, error) {
	var p T
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to decode %s properties: %w", p.Kind(), err)
	}
	return p, nil
}
