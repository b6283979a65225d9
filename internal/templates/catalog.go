package templates

import (
	"fmt"
	"sort"
	"sync"
)

// Provider supplies named templates.
type Provider interface {
	List() []Template
	Get(name string) (Template, error)
}

// Catalog holds the built-in templates plus those loaded from files. A file
// template replaces a built-in one with the same name.
type Catalog struct {
	mu       sync.RWMutex
	builtins map[string]Template
	files    map[string]Template
}

func NewCatalog(builtins []Template) *Catalog {
	c := &Catalog{
		builtins: make(map[string]Template, len(builtins)),
		files:    make(map[string]Template),
	}
	for _, t := range builtins {
		c.builtins[t.Name] = t.Clone()
	}
	return c
}

// NewDefaultCatalog returns a catalog seeded with Builtins.
func NewDefaultCatalog() (*Catalog, error) {
	builtins, err := Builtins()
	if err != nil {
		return nil, err
	}
	return NewCatalog(builtins), nil
}

// SetFileTemplates replaces every file-loaded template.
func (c *Catalog) SetFileTemplates(templates []Template) {
	files := make(map[string]Template, len(templates))
	for _, t := range templates {
		files[t.Name] = t.Clone()
	}
	c.mu.Lock()
	c.files = files
	c.mu.Unlock()
}

// List returns copies of every template ordered by category, then name.
func (c *Catalog) List() []Template {
	c.mu.RLock()
	merged := make(map[string]Template, len(c.builtins)+len(c.files))
	for name, t := range c.builtins {
		merged[name] = t
	}
	for name, t := range c.files {
		merged[name] = t
	}
	c.mu.RUnlock()

	out := make([]Template, 0, len(merged))
	for _, t := range merged {
		out = append(out, t.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func (c *Catalog) Get(name string) (Template, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if t, ok := c.files[name]; ok {
		return t.Clone(), nil
	}
	if t, ok := c.builtins[name]; ok {
		return t.Clone(), nil
	}
	return Template{}, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
}

func (c *Catalog) Len() int {
	return len(c.List())
}
