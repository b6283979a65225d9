package layouts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"venuelayout/pkg/logger"

	"github.com/google/uuid"
)

var ErrInvalidLayoutID = errors.New("invalid layout id")

type Service interface {
	CreateLayout(ctx context.Context, req CreateLayoutRequest, createdBy string) (*VenueLayout, error)
	GetLayout(ctx context.Context, id string) (*VenueLayout, error)
	ListLayouts(ctx context.Context, filters LayoutFilters) (*PaginatedLayouts, error)
	UpdateLayout(ctx context.Context, id string, req UpdateLayoutRequest) (*VenueLayout, error)
	DeleteLayout(ctx context.Context, id string) error
	PublishLayout(ctx context.Context, id string) (*VenueLayout, error)
	ArchiveLayout(ctx context.Context, id string) (*VenueLayout, error)

	// Element editing
	AddSeatGrid(ctx context.Context, id string, req AddSeatGridRequest) (*VenueLayout, error)
	RemoveElements(ctx context.Context, id string, req RemoveElementsRequest) (*VenueLayout, error)
	PatchElements(ctx context.Context, id string, req PatchElementsRequest) (*PatchElementsResponse, error)

	// Price zones
	AddPriceZone(ctx context.Context, id string, req PriceZoneRequest) (*VenueLayout, error)
	UpdatePriceZone(ctx context.Context, id, zoneID string, req PriceZoneRequest) (*VenueLayout, error)
	RemovePriceZone(ctx context.Context, id, zoneID string) (*VenueLayout, error)

	// Read-only views for renderers
	GetCapacity(ctx context.Context, id string) (*CapacityReport, error)
	GetDisplayColors(ctx context.Context, id string) (*DisplayColorsResponse, error)

	// SaveLayout persists a layout built elsewhere, such as a template instance.
	SaveLayout(ctx context.Context, layout *VenueLayout, eventType EventType) error
}

type service struct {
	repo   Repository
	events EventPublisher
	log    *logger.Logger
}

func NewService(repo Repository, events EventPublisher) Service {
	if events == nil {
		events = NoopPublisher{}
	}
	return &service{
		repo:   repo,
		events: events,
		log:    logger.GetDefault(),
	}
}

func parseLayoutID(id string) (uuid.UUID, error) {
	layoutID, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s", ErrInvalidLayoutID, id)
	}
	return layoutID, nil
}

func (s *service) CreateLayout(ctx context.Context, req CreateLayoutRequest, createdBy string) (*VenueLayout, error) {
	canvas := req.Canvas.settings()
	if err := ValidateCanvas(canvas); err != nil {
		return nil, err
	}

	layout := NewVenueLayout(req.Name, canvas)
	layout.Description = req.Description
	layout.VenueName = req.VenueName
	layout.CreatedBy = createdBy

	if err := s.SaveLayout(ctx, layout, EventLayoutCreated); err != nil {
		return nil, err
	}
	return layout, nil
}

func (s *service) GetLayout(ctx context.Context, id string) (*VenueLayout, error) {
	layoutID, err := parseLayoutID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, layoutID)
}

func (s *service) ListLayouts(ctx context.Context, filters LayoutFilters) (*PaginatedLayouts, error) {
	// Set default pagination
	if filters.Page <= 0 {
		filters.Page = 1
	}
	if filters.Limit <= 0 {
		filters.Limit = 20
	}
	if filters.Limit > 100 {
		filters.Limit = 100
	}
	return s.repo.List(ctx, filters)
}

func (s *service) UpdateLayout(ctx context.Context, id string, req UpdateLayoutRequest) (*VenueLayout, error) {
	return s.mutate(ctx, id, EventLayoutSaved, func(l *VenueLayout) error {
		if req.Name != nil {
			l.Name = *req.Name
		}
		if req.Description != nil {
			l.Description = *req.Description
		}
		if req.VenueName != nil {
			l.VenueName = *req.VenueName
		}
		if req.Canvas != nil {
			canvas := req.Canvas.settings()
			if err := ValidateCanvas(canvas); err != nil {
				return err
			}
			l.Canvas = canvas
		}
		if req.PriceZones != nil {
			zones := PriceZones{}
			seen := make(map[string]struct{}, len(*req.PriceZones))
			for _, z := range *req.PriceZones {
				if z.ID == "" {
					z.ID = uuid.NewString()
				}
				if _, dup := seen[z.ID]; dup {
					return fmt.Errorf("%w: %s", ErrDuplicateZoneID, z.ID)
				}
				seen[z.ID] = struct{}{}
				if err := ValidatePriceZone(z); err != nil {
					return err
				}
				zones = append(zones, z)
			}
			l.PriceZones = zones
		}
		if req.Elements != nil {
			replacement := &VenueLayout{PriceZones: l.PriceZones}
			if err := replacement.AddElements(*req.Elements...); err != nil {
				return err
			}
			l.Elements = replacement.Elements
		}
		return nil
	})
}

func (s *service) DeleteLayout(ctx context.Context, id string) error {
	layoutID, err := parseLayoutID(id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, layoutID); err != nil {
		return err
	}
	s.log.LogLayoutDeleted(ctx, layoutID.String())
	s.publish(ctx, LayoutEvent{
		ID:         uuid.New(),
		Type:       EventLayoutDeleted,
		LayoutID:   layoutID,
		OccurredAt: time.Now().UTC(),
	})
	return nil
}

func (s *service) PublishLayout(ctx context.Context, id string) (*VenueLayout, error) {
	layout, err := s.mutate(ctx, id, EventLayoutPublished, func(l *VenueLayout) error {
		return l.Publish()
	})
	if err != nil {
		return nil, err
	}
	s.log.LogLayoutPublished(ctx, layout.ID.String(), layout.TotalCapacity)
	return layout, nil
}

func (s *service) ArchiveLayout(ctx context.Context, id string) (*VenueLayout, error) {
	return s.mutate(ctx, id, EventLayoutArchived, func(l *VenueLayout) error {
		l.Archive()
		return nil
	})
}

func (s *service) AddSeatGrid(ctx context.Context, id string, req AddSeatGridRequest) (*VenueLayout, error) {
	return s.mutate(ctx, id, EventLayoutSaved, func(l *VenueLayout) error {
		seats, err := NewSeatGrid(req.spec())
		if err != nil {
			return err
		}
		return l.AddElements(seats...)
	})
}

func (s *service) RemoveElements(ctx context.Context, id string, req RemoveElementsRequest) (*VenueLayout, error) {
	return s.mutate(ctx, id, EventLayoutSaved, func(l *VenueLayout) error {
		l.RemoveElements(req.ElementIDs...)
		return nil
	})
}

func (s *service) PatchElements(ctx context.Context, id string, req PatchElementsRequest) (*PatchElementsResponse, error) {
	patches := req.patches()
	if len(patches) == 0 {
		return nil, fmt.Errorf("%w: no properties to update", ErrInvalidElement)
	}

	changed := 0
	layout, err := s.mutate(ctx, id, EventLayoutSaved, func(l *VenueLayout) error {
		for _, patch := range patches {
			n, err := l.ApplyPatch(req.ElementIDs, patch)
			if err != nil {
				return err
			}
			if n > changed {
				changed = n
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &PatchElementsResponse{Layout: layout, Changed: changed}, nil
}

func (s *service) AddPriceZone(ctx context.Context, id string, req PriceZoneRequest) (*VenueLayout, error) {
	return s.mutate(ctx, id, EventLayoutSaved, func(l *VenueLayout) error {
		_, err := l.AddPriceZone(req.zone(""))
		return err
	})
}

func (s *service) UpdatePriceZone(ctx context.Context, id, zoneID string, req PriceZoneRequest) (*VenueLayout, error) {
	return s.mutate(ctx, id, EventLayoutSaved, func(l *VenueLayout) error {
		return l.UpdatePriceZone(req.zone(zoneID))
	})
}

func (s *service) RemovePriceZone(ctx context.Context, id, zoneID string) (*VenueLayout, error) {
	return s.mutate(ctx, id, EventLayoutSaved, func(l *VenueLayout) error {
		return l.RemovePriceZone(zoneID)
	})
}

func (s *service) GetCapacity(ctx context.Context, id string) (*CapacityReport, error) {
	layout, err := s.GetLayout(ctx, id)
	if err != nil {
		return nil, err
	}
	report := BuildCapacityReport(layout.Elements, layout.PriceZones)
	return &report, nil
}

func (s *service) GetDisplayColors(ctx context.Context, id string) (*DisplayColorsResponse, error) {
	layout, err := s.GetLayout(ctx, id)
	if err != nil {
		return nil, err
	}
	return &DisplayColorsResponse{LayoutID: layout.ID, Colors: layout.DisplayColors()}, nil
}

func (s *service) SaveLayout(ctx context.Context, layout *VenueLayout, eventType EventType) error {
	layout.Recalculate()
	layout.UpdatedAt = time.Now().UTC()
	if err := s.repo.Save(ctx, layout); err != nil {
		return err
	}
	s.log.LogLayoutSaved(ctx, layout.ID.String(), len(layout.Elements), layout.TotalCapacity)
	s.publish(ctx, NewLayoutEvent(eventType, layout))
	return nil
}

// mutate loads a layout, applies fn to a copy and saves it. The stored layout
// is left untouched when fn fails.
func (s *service) mutate(ctx context.Context, id string, eventType EventType, fn func(*VenueLayout) error) (*VenueLayout, error) {
	current, err := s.GetLayout(ctx, id)
	if err != nil {
		return nil, err
	}
	next := current.Clone()
	if err := fn(next); err != nil {
		return nil, err
	}
	if err := s.SaveLayout(ctx, next, eventType); err != nil {
		return nil, err
	}
	return next, nil
}

func (s *service) publish(ctx context.Context, event LayoutEvent) {
	if err := s.events.Publish(ctx, event); err != nil {
		s.log.ErrorWithContext(ctx, "failed to publish layout event", err, map[string]interface{}{
			"type":      string(event.Type),
			"layout_id": event.LayoutID.String(),
		})
	}
}
