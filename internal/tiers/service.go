package tiers

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"venuelayout/internal/layouts"
	"venuelayout/internal/shared/constants"
	"venuelayout/pkg/cache"
	"venuelayout/pkg/logger"

	"github.com/google/uuid"
)

var ErrInvalidEventID = errors.New("invalid event id")

type Service interface {
	// GetBoundaries falls back to DefaultThresholds for events never configured.
	GetBoundaries(ctx context.Context, eventID string) (*BoundariesResponse, error)
	PutBoundaries(ctx context.Context, eventID string, req PutBoundariesRequest, updatedBy string) (*BoundariesResponse, error)
	ClassifyLayout(ctx context.Context, eventID, layoutID string) (*ClassificationResponse, error)
	ClassifyPoints(ctx context.Context, eventID string, req ClassifyPointsRequest) (*ClassifyPointsResponse, error)
}

type service struct {
	repo    Repository
	layouts layouts.Store
	cache   cache.Service
	minGap  float64
	log     *logger.Logger
}

func NewService(repo Repository, layoutStore layouts.Store, cacheService cache.Service, minGap float64) Service {
	if cacheService == nil {
		cacheService = cache.NewService(nil)
	}
	return &service{
		repo:    repo,
		layouts: layoutStore,
		cache:   cacheService,
		minGap:  minGap,
		log:     logger.GetDefault(),
	}
}

func parseEventID(id string) (uuid.UUID, error) {
	eventID, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s", ErrInvalidEventID, id)
	}
	return eventID, nil
}

func (s *service) boundaries(ctx context.Context, eventID uuid.UUID) (*EventTierBoundaries, bool, error) {
	b, err := s.repo.GetByEventID(ctx, eventID)
	if errors.Is(err, ErrBoundariesNotFound) {
		return NewEventTierBoundaries(eventID, DefaultThresholds()), true, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, false, nil
}

func (s *service) GetBoundaries(ctx context.Context, eventID string) (*BoundariesResponse, error) {
	id, err := parseEventID(eventID)
	if err != nil {
		return nil, err
	}
	b, isDefault, err := s.boundaries(ctx, id)
	if err != nil {
		return nil, err
	}
	return newBoundariesResponse(b, isDefault), nil
}

func (s *service) PutBoundaries(ctx context.Context, eventID string, req PutBoundariesRequest, updatedBy string) (*BoundariesResponse, error) {
	id, err := parseEventID(eventID)
	if err != nil {
		return nil, err
	}

	b := NewEventTierBoundaries(id, req.thresholds())
	b.Curves = req.Curves
	b.UpdatedBy = updatedBy
	if err := b.Validate(s.minGap); err != nil {
		return nil, err
	}

	if err := s.repo.Upsert(ctx, b); err != nil {
		return nil, err
	}

	s.log.LogBoundariesUpdated(ctx, id.String(), b.PremiumY, b.GoldY, b.SilverY, b.BronzeY, b.Curves != nil)
	return newBoundariesResponse(b, false), nil
}

func (s *service) ClassifyLayout(ctx context.Context, eventID, layoutID string) (*ClassificationResponse, error) {
	id, err := parseEventID(eventID)
	if err != nil {
		return nil, err
	}
	lid, err := uuid.Parse(layoutID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", layouts.ErrInvalidLayoutID, layoutID)
	}

	layout, err := s.layouts.Get(ctx, lid)
	if err != nil {
		return nil, err
	}

	// keyed by layout revision
	key := constants.BuildClassifyKey(id.String(), lid.String()+":"+strconv.FormatInt(layout.UpdatedAt.UnixNano(), 10))

	var result ClassificationResponse
	err = s.cache.GetOrSet(ctx, key, constants.TTL_TIER_CLASSIFY, &result, func() (interface{}, error) {
		b, _, err := s.boundaries(ctx, id)
		if err != nil {
			return nil, err
		}
		seats := ClassifySeats(layout.Elements, b.BoundarySet())
		return &ClassificationResponse{
			EventID:  id,
			LayoutID: lid,
			Seats:    seats,
			Counts:   CountByTier(seats),
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *service) ClassifyPoints(ctx context.Context, eventID string, req ClassifyPointsRequest) (*ClassifyPointsResponse, error) {
	id, err := parseEventID(eventID)
	if err != nil {
		return nil, err
	}
	b, _, err := s.boundaries(ctx, id)
	if err != nil {
		return nil, err
	}

	set := b.BoundarySet()
	out := &ClassifyPointsResponse{EventID: id, Points: make([]PointTier, 0, len(req.Points))}
	for _, p := range req.Points {
		out.Points = append(out.Points, PointTier{X: p.X, Y: p.Y, Tier: Classify(p.X, p.Y, set)})
	}
	return out, nil
}
