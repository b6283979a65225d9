package templates

import (
	"errors"
	"fmt"
	"strings"

	"venuelayout/internal/layouts"

	"github.com/google/uuid"
)

var (
	ErrTemplateNotFound = errors.New("template not found")
	ErrInvalidTemplate  = errors.New("invalid template")
)

// Template is a named, pre-built set of elements and price zones.
type Template struct {
	Name        string                 `json:"name"`
	Category    string                 `json:"category"`
	Description string                 `json:"description"`
	Canvas      layouts.CanvasSettings `json:"canvas"`
	Elements    layouts.Elements       `json:"elements"`
	PriceZones  layouts.PriceZones     `json:"price_zones"`
	Source      string                 `json:"source"`
}

// Template sources.
const (
	SourceBuiltin = "builtin"
	SourceStored  = "stored"
)

// Validate checks that the template would form a valid layout.
func (t Template) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidTemplate)
	}
	if err := layouts.ValidateCanvas(t.Canvas); err != nil {
		return fmt.Errorf("%w %s: %w", ErrInvalidTemplate, t.Name, err)
	}
	probe := layouts.NewVenueLayout(t.Name, t.Canvas)
	for _, z := range t.PriceZones {
		if _, err := probe.AddPriceZone(z); err != nil {
			return fmt.Errorf("%w %s: %w", ErrInvalidTemplate, t.Name, err)
		}
	}
	if err := probe.AddElements(t.Elements...); err != nil {
		return fmt.Errorf("%w %s: %w", ErrInvalidTemplate, t.Name, err)
	}
	return nil
}

// Capacity is computed from the template's elements.
func (t Template) Capacity() layouts.Capacity {
	return layouts.RecalculateCapacity(t.Elements)
}

// Clone returns a deep copy.
func (t Template) Clone() Template {
	cp := t
	cp.Elements = append(layouts.Elements(nil), t.Elements...)
	cp.PriceZones = t.PriceZones.Clone()
	return cp
}

// Instance returns the template's contents with fresh element ids, ready to
// be adopted by a layout. Zone ids are kept so seats stay assigned.
func (t Template) Instance() (layouts.Elements, layouts.PriceZones) {
	elements := make(layouts.Elements, len(t.Elements))
	for i, el := range t.Elements {
		el.ID = uuid.NewString()
		elements[i] = el
	}
	zones := t.PriceZones.Clone()
	if zones == nil {
		zones = layouts.PriceZones{}
	}
	return elements, zones
}

// NewLayout builds a draft layout from the template.
func (t Template) NewLayout(name string) *layouts.VenueLayout {
	if name == "" {
		name = t.Name
	}
	layout := layouts.NewVenueLayout(name, t.Canvas)
	layout.Description = t.Description
	layout.Elements, layout.PriceZones = t.Instance()
	layout.Recalculate()
	return layout
}

// FromLayout turns a stored template layout into a Template.
func FromLayout(l *layouts.VenueLayout) Template {
	return Template{
		Name:        l.Name,
		Category:    l.TemplateCategory,
		Description: l.Description,
		Canvas:      l.Canvas,
		Elements:    append(layouts.Elements(nil), l.Elements...),
		PriceZones:  l.PriceZones.Clone(),
		Source:      SourceStored,
	}
}

// AsLayout returns the template as a stored template layout.
func (t Template) AsLayout() *layouts.VenueLayout {
	layout := layouts.NewVenueLayout(t.Name, t.Canvas)
	layout.Description = t.Description
	layout.IsTemplate = true
	layout.TemplateCategory = t.Category
	layout.Elements = append(layouts.Elements{}, t.Elements...)
	layout.PriceZones = t.PriceZones.Clone()
	if layout.PriceZones == nil {
		layout.PriceZones = layouts.PriceZones{}
	}
	layout.Recalculate()
	return layout
}

type TemplateSummary struct {
	Name         string           `json:"name"`
	Category     string           `json:"category"`
	Description  string           `json:"description"`
	Source       string           `json:"source"`
	ElementCount int              `json:"element_count"`
	Capacity     layouts.Capacity `json:"capacity"`
}

func (t Template) Summary() TemplateSummary {
	return TemplateSummary{
		Name:         t.Name,
		Category:     t.Category,
		Description:  t.Description,
		Source:       t.Source,
		ElementCount: len(t.Elements),
		Capacity:     t.Capacity(),
	}
}
