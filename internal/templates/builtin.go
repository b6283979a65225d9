package templates

import (
	"venuelayout/internal/layouts"
	"venuelayout/pkg/geometry"
)

// builder accumulates elements and keeps the first error.
type builder struct {
	tpl Template
	err error
}

func newBuilder(name, category, description string) *builder {
	return &builder{tpl: Template{
		Name:        name,
		Category:    category,
		Description: description,
		Canvas:      layouts.DefaultCanvas(),
		Elements:    layouts.Elements{},
		PriceZones:  layouts.PriceZones{},
		Source:      SourceBuiltin,
	}}
}

func (b *builder) zone(id, name string, price float64, color string, order int) *builder {
	b.tpl.PriceZones = append(b.tpl.PriceZones, layouts.PriceZone{
		ID:           id,
		Name:         name,
		BasePrice:    price,
		Color:        color,
		DisplayOrder: order,
	})
	return b
}

func (b *builder) add(kind layouts.ElementKind, x, y, w, h float64, props layouts.Properties) *builder {
	if b.err != nil {
		return b
	}
	el, err := layouts.NewElement(kind, layouts.WithPosition(x, y), layouts.WithSize(w, h), layouts.WithProperties(props))
	if err != nil {
		b.err = err
		return b
	}
	b.tpl.Elements = append(b.tpl.Elements, el)
	return b
}

func (b *builder) grid(spec layouts.GridSpec) *builder {
	if b.err != nil {
		return b
	}
	seats, err := layouts.NewSeatGrid(spec)
	if err != nil {
		b.err = err
		return b
	}
	b.tpl.Elements = append(b.tpl.Elements, seats...)
	return b
}

func (b *builder) build() (Template, error) {
	return b.tpl, b.err
}

// Builtins returns the templates shipped with the service.
func Builtins() ([]Template, error) {
	builders := []*builder{theater(), arena(), club()}
	out := make([]Template, 0, len(builders))
	for _, b := range builders {
		tpl, err := b.build()
		if err != nil {
			return nil, err
		}
		out = append(out, tpl)
	}
	return out, nil
}

func theater() *builder {
	b := newBuilder("theater", "theater", "Proscenium theatre with orchestra, mezzanine and balcony")
	b.zone("orchestra", "Orchestra", 120, "#EF4444", 1).
		zone("mezzanine", "Mezzanine", 80, "#3B82F6", 2).
		zone("balcony", "Balcony", 50, "#10B981", 3)

	b.add(layouts.KindStage, 400, 40, 400, 80, layouts.StageProps{Label: "Stage", Shape: "rectangle"})
	for _, block := range []struct {
		zone, section, start string
		y                    float64
		rows                 int
	}{
		{"orchestra", "Orchestra", "A", 180, 6},
		{"mezzanine", "Mezzanine", "G", 430, 4},
		{"balcony", "Balcony", "K", 590, 4},
	} {
		b.grid(layouts.GridSpec{
			Origin:      geometry.NewPoint(250, block.y),
			Rows:        block.rows,
			SeatsPerRow: 20,
			SeatSpacing: 4,
			RowSpacing:  8,
			PriceZoneID: block.zone,
			Section:     block.section,
			StartRow:    block.start,
		})
	}
	b.add(layouts.KindEntrance, 100, 760, 60, 20, layouts.EntranceProps{Label: "Main entrance", Accessible: true})
	b.add(layouts.KindEntrance, 1040, 760, 60, 20, layouts.EntranceProps{Label: "Exit", Exit: true})
	return b
}

func arena() *builder {
	b := newBuilder("arena", "arena", "Concert arena with a standing pit and three seated blocks")
	b.zone("floor", "Floor", 60, "#F59E0B", 1).
		zone("lower", "Lower Tier", 90, "#3B82F6", 2)

	b.add(layouts.KindStage, 450, 60, 300, 80, layouts.StageProps{Label: "Main Stage", Shape: "rectangle"})
	b.add(layouts.KindStandingArea, 400, 170, 400, 200, layouts.StandingAreaProps{Name: "Pit", Capacity: 800, PriceZoneID: "floor"})
	for _, block := range []struct {
		section string
		x, y    float64
		rows    int
		seats   int
	}{
		{"Left", 60, 170, 5, 8},
		{"Right", 880, 170, 5, 8},
		{"Rear", 300, 420, 6, 20},
	} {
		b.grid(layouts.GridSpec{
			Origin:      geometry.NewPoint(block.x, block.y),
			Rows:        block.rows,
			SeatsPerRow: block.seats,
			SeatSpacing: 4,
			RowSpacing:  8,
			PriceZoneID: "lower",
			Section:     block.section,
		})
	}
	b.add(layouts.KindEntrance, 570, 760, 60, 20, layouts.EntranceProps{Label: "Gate A", Accessible: true})
	return b
}

func club() *builder {
	b := newBuilder("club", "club", "Club floor with a small stage and bar")
	b.zone("ga", "General Admission", 35, "#8B5CF6", 1)

	b.add(layouts.KindStage, 500, 40, 200, 60, layouts.StageProps{Label: "DJ Booth", Shape: "rectangle"})
	b.add(layouts.KindStandingArea, 350, 140, 500, 350, layouts.StandingAreaProps{Name: "Dance Floor", Capacity: 300, PriceZoneID: "ga"})
	b.add(layouts.KindShape, 50, 600, 300, 80, layouts.ShapeProps{Shape: "rectangle", FillColor: "#78350F"})
	b.add(layouts.KindLabel, 130, 625, 140, 30, layouts.LabelProps{Text: "Bar", FontSize: 18})
	b.add(layouts.KindWall, 0, 0, 1200, 10, layouts.WallProps{Thickness: 10})
	b.add(layouts.KindEntrance, 1100, 760, 60, 20, layouts.EntranceProps{Label: "Door", Accessible: true})
	return b
}
