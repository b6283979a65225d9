package layouts

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// PriceZone is a named pricing bucket that seats reference by id.
type PriceZone struct {
	ID              string   `json:"id" validate:"required"`
	Name            string   `json:"name" validate:"required,max=100"`
	BasePrice       float64  `json:"base_price" validate:"gte=0"`
	Color           string   `json:"color" validate:"required,hexcolor"`
	Description     string   `json:"description,omitempty" validate:"max=500"`
	DisplayOrder    int      `json:"display_order"`
	DynamicPricing  bool     `json:"dynamic_pricing"`
	PeakMultiplier  *float64 `json:"peak_multiplier,omitempty" validate:"omitempty,gt=0"`
	OffPeakDiscount *float64 `json:"off_peak_discount,omitempty" validate:"omitempty,gte=0,lte=100"`
	SeatCount       int      `json:"seat_count"`
}

// NewPriceZone returns a zone with a fresh id.
func NewPriceZone(name string, basePrice float64, color string) PriceZone {
	return PriceZone{
		ID:        uuid.NewString(),
		Name:      name,
		BasePrice: basePrice,
		Color:     color,
	}
}

func (z PriceZone) clone() PriceZone {
	if z.PeakMultiplier != nil {
		v := *z.PeakMultiplier
		z.PeakMultiplier = &v
	}
	if z.OffPeakDiscount != nil {
		v := *z.OffPeakDiscount
		z.OffPeakDiscount = &v
	}
	return z
}

// PriceZones is the zone registry of a layout, stored as a jsonb column.
type PriceZones []PriceZone

// Find looks a zone up by id. A missing zone is not an error: seats that
// reference it are treated as unassigned.
func (zs PriceZones) Find(id string) (PriceZone, bool) {
	if id == "" {
		return PriceZone{}, false
	}
	for _, z := range zs {
		if z.ID == id {
			return z, true
		}
	}
	return PriceZone{}, false
}

// Ordered returns a copy sorted by display order, then name.
func (zs PriceZones) Ordered() PriceZones {
	out := zs.Clone()
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].DisplayOrder != out[j].DisplayOrder {
			return out[i].DisplayOrder < out[j].DisplayOrder
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// WithSeatCounts returns a copy whose SeatCount fields reflect elements.
func (zs PriceZones) WithSeatCounts(elements []LayoutElement) PriceZones {
	if zs == nil {
		return nil
	}
	counts := make(map[string]int, len(zs))
	for _, el := range elements {
		if seat, ok := el.Seat(); ok && seat.PriceZoneID != "" {
			counts[seat.PriceZoneID]++
		}
	}
	out := zs.Clone()
	for i := range out {
		out[i].SeatCount = counts[out[i].ID]
	}
	return out
}

func (zs PriceZones) Clone() PriceZones {
	if zs == nil {
		return nil
	}
	out := make(PriceZones, len(zs))
	for i, z := range zs {
		out[i] = z.clone()
	}
	return out
}

func (zs PriceZones) indexOf(id string) int {
	for i, z := range zs {
		if z.ID == id {
			return i
		}
	}
	return -1
}

func (zs PriceZones) Value() (driver.Value, error) {
	if zs == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(zs)
}

func (zs *PriceZones) Scan(value interface{}) error {
	if value == nil {
		*zs = nil
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
	return json.Unmarshal(bytes, zs)
}

func (PriceZones) GormDataType() string {
	return "jsonb"
}

// AddPriceZone registers a zone. An empty id is replaced by a fresh one.
func (l *VenueLayout) AddPriceZone(z PriceZone) (PriceZone, error) {
	if z.ID == "" {
		z.ID = uuid.NewString()
	}
	if err := ValidatePriceZone(z); err != nil {
		return PriceZone{}, err
	}
	if l.PriceZones.indexOf(z.ID) >= 0 {
		return PriceZone{}, fmt.Errorf("%w: %s", ErrDuplicateZoneID, z.ID)
	}
	l.PriceZones = append(l.PriceZones.Clone(), z.clone())
	l.Recalculate()
	zone, _ := l.PriceZones.Find(z.ID)
	return zone, nil
}

// UpdatePriceZone replaces the zone with the same id.
func (l *VenueLayout) UpdatePriceZone(z PriceZone) error {
	i := l.PriceZones.indexOf(z.ID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrZoneNotFound, z.ID)
	}
	if err := ValidatePriceZone(z); err != nil {
		return err
	}
	zones := l.PriceZones.Clone()
	zones[i] = z.clone()
	l.PriceZones = zones
	l.Recalculate()
	return nil
}

// RemovePriceZone deletes a zone. Seats that still reference it keep the
// dangling id and are reported as unassigned.
func (l *VenueLayout) RemovePriceZone(id string) error {
	i := l.PriceZones.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrZoneNotFound, id)
	}
	zones := l.PriceZones.Clone()
	l.PriceZones = append(zones[:i], zones[i+1:]...)
	l.Recalculate()
	return nil
}
