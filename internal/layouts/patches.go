package layouts

import "fmt"

// PropertyPatch is a partial update applied to many elements at once.
type PropertyPatch interface {
	// AppliesTo reports whether elements of kind are touched by the patch.
	AppliesTo(kind ElementKind) bool
	Apply(el *LayoutElement)
	Validate() error
}

// ZonePatch reassigns seats to a price zone. An empty id unassigns them.
type ZonePatch struct {
	PriceZoneID string `json:"price_zone_id"`
}

func (ZonePatch) AppliesTo(kind ElementKind) bool { return kind == KindSeat }
func (ZonePatch) Validate() error                 { return nil }

func (p ZonePatch) Apply(el *LayoutElement) {
	if seat, ok := el.Properties.(SeatProps); ok {
		seat.PriceZoneID = p.PriceZoneID
		el.Properties = seat
	}
}

// SeatStatusPatch sets the status of seats.
type SeatStatusPatch struct {
	Status SeatStatus `json:"status"`
}

func (SeatStatusPatch) AppliesTo(kind ElementKind) bool { return kind == KindSeat }

func (p SeatStatusPatch) Validate() error {
	if !p.Status.IsValid() {
		return fmt.Errorf("%w: unknown seat status %q", ErrInvalidElement, p.Status)
	}
	return nil
}

func (p SeatStatusPatch) Apply(el *LayoutElement) {
	if seat, ok := el.Properties.(SeatProps); ok {
		seat.Status = p.Status
		el.Properties = seat
	}
}

// AccessibilityPatch marks seats and entrances as accessible or not.
type AccessibilityPatch struct {
	Accessible bool `json:"accessible"`
}

func (AccessibilityPatch) AppliesTo(kind ElementKind) bool {
	return kind == KindSeat || kind == KindEntrance
}

func (AccessibilityPatch) Validate() error { return nil }

func (p AccessibilityPatch) Apply(el *LayoutElement) {
	switch props := el.Properties.(type) {
	case SeatProps:
		props.Accessible = p.Accessible
		el.Properties = props
	case EntranceProps:
		props.Accessible = p.Accessible
		el.Properties = props
	}
}

// SectionPatch renames the section of seats and rows.
type SectionPatch struct {
	Section string `json:"section"`
}

func (SectionPatch) AppliesTo(kind ElementKind) bool {
	return kind == KindSeat || kind == KindRow
}

func (SectionPatch) Validate() error { return nil }

func (p SectionPatch) Apply(el *LayoutElement) {
	switch props := el.Properties.(type) {
	case SeatProps:
		props.Section = p.Section
		el.Properties = props
	case RowProps:
		props.Section = p.Section
		el.Properties = props
	}
}

// FlagPatch changes the locked and visible flags of any element kind.
type FlagPatch struct {
	Locked  *bool `json:"locked,omitempty"`
	Visible *bool `json:"visible,omitempty"`
}

func (FlagPatch) AppliesTo(ElementKind) bool { return true }
func (FlagPatch) Validate() error            { return nil }

func (p FlagPatch) Apply(el *LayoutElement) {
	if p.Locked != nil {
		el.Locked = *p.Locked
	}
	if p.Visible != nil {
		el.Visible = *p.Visible
	}
}
