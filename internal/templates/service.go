package templates

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"venuelayout/internal/layouts"
	"venuelayout/pkg/logger"
)

type Service interface {
	ListTemplates(ctx context.Context, category string) ([]TemplateSummary, error)
	GetTemplate(ctx context.Context, name string) (*Template, error)
	Instantiate(ctx context.Context, name string, req InstantiateRequest, createdBy string) (*layouts.VenueLayout, error)
	// SeedBuiltins stores every catalog template as a template layout,
	// skipping names that already exist.
	SeedBuiltins(ctx context.Context) (int, error)
}

type service struct {
	provider Provider
	repo     layouts.Repository
	layouts  layouts.Service
	log      *logger.Logger
}

// NewService wires the catalog to layout storage. repo and layoutService may
// be nil, in which case only catalog templates are served and Instantiate is
// unavailable.
func NewService(provider Provider, repo layouts.Repository, layoutService layouts.Service) Service {
	return &service{
		provider: provider,
		repo:     repo,
		layouts:  layoutService,
		log:      logger.GetDefault(),
	}
}

// ListTemplates lists stored templates and the catalog templates they do not
// shadow, ordered by name.
func (s *service) ListTemplates(ctx context.Context, category string) ([]TemplateSummary, error) {
	seen := make(map[string]struct{})
	summaries := make([]TemplateSummary, 0)

	if s.repo != nil {
		isTemplate := true
		stored, err := s.repo.List(ctx, layouts.LayoutFilters{
			Page:             1,
			Limit:            100,
			IsTemplate:       &isTemplate,
			TemplateCategory: category,
			SortBy:           "name",
			SortOrder:        "asc",
		})
		if err != nil {
			return nil, err
		}
		for i := range stored.Layouts {
			l := &stored.Layouts[i]
			seen[l.Name] = struct{}{}
			summaries = append(summaries, FromLayout(l).Summary())
		}
	}

	for _, t := range s.provider.List() {
		if category != "" && t.Category != category {
			continue
		}
		if _, shadowed := seen[t.Name]; shadowed {
			continue
		}
		summaries = append(summaries, t.Summary())
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Name < summaries[j].Name
	})
	return summaries, nil
}

func (s *service) GetTemplate(ctx context.Context, name string) (*Template, error) {
	tpl, _, err := s.lookup(ctx, name)
	if err != nil {
		return nil, err
	}
	return &tpl, nil
}

// lookup prefers a stored template layout and falls back to the catalog.
// stored is nil for catalog templates.
func (s *service) lookup(ctx context.Context, name string) (tpl Template, stored *layouts.VenueLayout, err error) {
	if s.repo != nil {
		stored, err = s.repo.GetTemplateByName(ctx, name)
		switch {
		case err == nil:
			return FromLayout(stored), stored, nil
		case !errors.Is(err, layouts.ErrLayoutNotFound):
			return Template{}, nil, err
		}
	}
	tpl, err = s.provider.Get(name)
	return tpl, nil, err
}

func (s *service) Instantiate(ctx context.Context, name string, req InstantiateRequest, createdBy string) (*layouts.VenueLayout, error) {
	if s.layouts == nil {
		return nil, errors.New("template instantiation requires layout storage")
	}
	tpl, stored, err := s.lookup(ctx, name)
	if err != nil {
		return nil, err
	}

	layout := tpl.NewLayout(req.Name)
	layout.VenueName = req.VenueName
	layout.CreatedBy = createdBy
	if err := s.layouts.SaveLayout(ctx, layout, layouts.EventLayoutCreated); err != nil {
		return nil, fmt.Errorf("failed to save layout from template: %w", err)
	}

	if stored != nil {
		if err := s.repo.IncrementUsage(ctx, stored.ID); err != nil {
			s.log.ErrorWithContext(ctx, "Failed to increment template usage", err, map[string]interface{}{
				"template": name,
			})
		}
	}

	s.log.InfoWithContext(ctx, "Layout created from template", map[string]interface{}{
		"template":  name,
		"layout_id": layout.ID.String(),
		"capacity":  layout.TotalCapacity,
	})
	return layout, nil
}

func (s *service) SeedBuiltins(ctx context.Context) (int, error) {
	if s.repo == nil || s.layouts == nil {
		return 0, errors.New("seeding templates requires layout storage")
	}
	seeded := 0
	for _, tpl := range s.provider.List() {
		_, err := s.repo.GetTemplateByName(ctx, tpl.Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, layouts.ErrLayoutNotFound) {
			return seeded, err
		}
		if err := s.layouts.SaveLayout(ctx, tpl.AsLayout(), layouts.EventLayoutCreated); err != nil {
			return seeded, fmt.Errorf("failed to seed template %s: %w", tpl.Name, err)
		}
		seeded++
	}
	return seeded, nil
}
