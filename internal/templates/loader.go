package templates

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"venuelayout/internal/layouts"

	"gopkg.in/yaml.v3"
)

// fileTemplate is the on-disk YAML shape of a template. Seats are usually
// described by grids; any other element is listed under elements.
type fileTemplate struct {
	Name        string             `yaml:"name"`
	Category    string             `yaml:"category"`
	Description string             `yaml:"description"`
	Canvas      *fileCanvas        `yaml:"canvas"`
	PriceZones  []fileZone         `yaml:"price_zones"`
	Grids       []layouts.GridSpec `yaml:"grids"`
	Elements    []fileElement      `yaml:"elements"`
}

type fileCanvas struct {
	Width           float64 `yaml:"width"`
	Height          float64 `yaml:"height"`
	BackgroundColor string  `yaml:"background_color"`
	GridSize        float64 `yaml:"grid_size"`
	SnapToGrid      *bool   `yaml:"snap_to_grid"`
}

type fileZone struct {
	ID           string  `yaml:"id"`
	Name         string  `yaml:"name"`
	BasePrice    float64 `yaml:"base_price"`
	Color        string  `yaml:"color"`
	Description  string  `yaml:"description"`
	DisplayOrder int     `yaml:"display_order"`
}

type fileElement struct {
	Kind       layouts.ElementKind    `yaml:"kind"`
	X          float64                `yaml:"x"`
	Y          float64                `yaml:"y"`
	Width      float64                `yaml:"width"`
	Height     float64                `yaml:"height"`
	Rotation   float64                `yaml:"rotation"`
	ZIndex     *int                   `yaml:"z_index"`
	Locked     bool                   `yaml:"locked"`
	Hidden     bool                   `yaml:"hidden"`
	Properties map[string]interface{} `yaml:"properties"`
}

// Parse decodes and validates one YAML template.
func Parse(data []byte) (Template, error) {
	var f fileTemplate
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Template{}, fmt.Errorf("%w: %w", ErrInvalidTemplate, err)
	}

	tpl := Template{
		Name:        f.Name,
		Category:    f.Category,
		Description: f.Description,
		Canvas:      f.Canvas.settings(),
		Elements:    layouts.Elements{},
		PriceZones:  make(layouts.PriceZones, 0, len(f.PriceZones)),
	}
	for _, z := range f.PriceZones {
		tpl.PriceZones = append(tpl.PriceZones, layouts.PriceZone{
			ID:           z.ID,
			Name:         z.Name,
			BasePrice:    z.BasePrice,
			Color:        z.Color,
			Description:  z.Description,
			DisplayOrder: z.DisplayOrder,
		})
	}
	for _, spec := range f.Grids {
		seats, err := layouts.NewSeatGrid(spec)
		if err != nil {
			return Template{}, fmt.Errorf("%w %s: %w", ErrInvalidTemplate, f.Name, err)
		}
		tpl.Elements = append(tpl.Elements, seats...)
	}
	for i, fe := range f.Elements {
		el, err := fe.element()
		if err != nil {
			return Template{}, fmt.Errorf("%w %s: element %d: %w", ErrInvalidTemplate, f.Name, i, err)
		}
		tpl.Elements = append(tpl.Elements, el)
	}

	if err := tpl.Validate(); err != nil {
		return Template{}, err
	}
	return tpl, nil
}

func (c *fileCanvas) settings() layouts.CanvasSettings {
	canvas := layouts.DefaultCanvas()
	if c == nil {
		return canvas
	}
	if c.Width > 0 {
		canvas.Width = c.Width
	}
	if c.Height > 0 {
		canvas.Height = c.Height
	}
	if c.BackgroundColor != "" {
		canvas.BackgroundColor = c.BackgroundColor
	}
	if c.GridSize > 0 {
		canvas.GridSize = c.GridSize
	}
	if c.SnapToGrid != nil {
		canvas.SnapToGrid = *c.SnapToGrid
	}
	return canvas
}

func (fe fileElement) element() (layouts.LayoutElement, error) {
	opts := []layouts.ElementOption{
		layouts.WithPosition(fe.X, fe.Y),
		layouts.WithRotation(fe.Rotation),
		layouts.WithLocked(fe.Locked),
		layouts.WithVisible(!fe.Hidden),
	}
	if fe.Width > 0 || fe.Height > 0 {
		opts = append(opts, layouts.WithSize(fe.Width, fe.Height))
	}
	if fe.ZIndex != nil {
		opts = append(opts, layouts.WithZIndex(*fe.ZIndex))
	}
	if len(fe.Properties) > 0 {
		props, err := overlayProperties(fe.Kind, fe.Properties)
		if err != nil {
			return layouts.LayoutElement{}, err
		}
		opts = append(opts, layouts.WithProperties(props))
	}
	return layouts.NewElement(fe.Kind, opts...)
}

// overlayProperties applies YAML overrides on top of the kind's default
// payload, going through the element JSON codec.
func overlayProperties(kind layouts.ElementKind, overrides map[string]interface{}) (layouts.Properties, error) {
	defaults, err := layouts.DefaultProperties(kind)
	if err != nil {
		return nil, err
	}
	body, err := json.Marshal(defaults)
	if err != nil {
		return nil, err
	}
	merged := map[string]interface{}{}
	if err := json.Unmarshal(body, &merged); err != nil {
		return nil, err
	}
	for k, v := range overrides {
		merged[k] = v
	}
	merged["kind"] = kind

	doc, err := json.Marshal(map[string]interface{}{"properties": merged})
	if err != nil {
		return nil, err
	}
	var probe layouts.LayoutElement
	if err := json.Unmarshal(doc, &probe); err != nil {
		return nil, err
	}
	return probe.Properties, nil
}

// LoadFile reads one YAML template.
func LoadFile(path string) (Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Template{}, fmt.Errorf("failed to read template %s: %w", path, err)
	}
	tpl, err := Parse(data)
	if err != nil {
		return Template{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	tpl.Source = path
	return tpl, nil
}

// LoadDir reads every .yaml and .yml file in dir, in name order. A missing
// directory yields no templates.
func LoadDir(dir string) ([]Template, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read template directory: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var out []Template
	for _, entry := range entries {
		if entry.IsDir() || !isTemplateFile(entry.Name()) {
			continue
		}
		tpl, err := LoadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		out = append(out, tpl)
	}
	return out, nil
}

func isTemplateFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}
