package layouts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"venuelayout/internal/shared/constants"
	"venuelayout/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

var ErrChangeFeedUnavailable = errors.New("layout change feed requires redis")

// Repository is the Postgres-backed Store with a redis cache in front and a
// redis pub/sub change feed.
type Repository interface {
	Store
	List(ctx context.Context, filters LayoutFilters) (*PaginatedLayouts, error)
	GetTemplateByName(ctx context.Context, name string) (*VenueLayout, error)
	IncrementUsage(ctx context.Context, id uuid.UUID) error
}

// repository implements Repository interface
type repository struct {
	db    *gorm.DB
	redis *redis.Client
}

// NewRepository creates a new layout repository. redisClient may be nil, in
// which case caching is skipped and Subscribe is unavailable.
func NewRepository(db *gorm.DB, redisClient *redis.Client) Repository {
	return &repository{db: db, redis: redisClient}
}

// layoutChange is the pub/sub message published after a save or delete.
type layoutChange struct {
	LayoutID uuid.UUID    `json:"layout_id"`
	Deleted  bool         `json:"deleted"`
	Layout   *VenueLayout `json:"layout,omitempty"`
}

// BeforeSave keeps the derived capacity fields in step with the elements.
func (l *VenueLayout) BeforeSave(tx *gorm.DB) error {
	l.Recalculate()
	return nil
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (*VenueLayout, error) {
	cacheKey := constants.BuildLayoutDetailKey(id.String())

	var cached VenueLayout
	if err := GetCache(ctx, r.redis, cacheKey, &cached); err == nil {
		logger.GetDefault().DebugWithContext(ctx, "layout cache hit", map[string]interface{}{"key": cacheKey})
		return &cached, nil
	}

	var layout VenueLayout
	if err := r.db.WithContext(ctx).First(&layout, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLayoutNotFound
		}
		return nil, fmt.Errorf("failed to get layout: %w", err)
	}

	if err := SetCache(ctx, r.redis, cacheKey, &layout, constants.TTL_LAYOUT_DETAIL); err != nil {
		logger.GetDefault().WithLayout(id.String()).WithError(err).Warn("failed to cache layout")
	}
	return &layout, nil
}

func (r *repository) Save(ctx context.Context, layout *VenueLayout) error {
	if err := r.db.WithContext(ctx).Save(layout).Error; err != nil {
		return fmt.Errorf("failed to save layout: %w", err)
	}

	if err := InvalidateLayoutCache(ctx, r.redis, &layout.ID); err != nil {
		logger.GetDefault().WithLayout(layout.ID.String()).WithError(err).Warn("failed to invalidate layout cache")
	}
	r.publish(ctx, layoutChange{LayoutID: layout.ID, Layout: layout})
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&VenueLayout{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete layout: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrLayoutNotFound
	}

	if err := InvalidateLayoutCache(ctx, r.redis, &id); err != nil {
		logger.GetDefault().WithLayout(id.String()).WithError(err).Warn("failed to invalidate layout cache")
	}
	r.publish(ctx, layoutChange{LayoutID: id, Deleted: true})
	return nil
}

func (r *repository) publish(ctx context.Context, change layoutChange) {
	if r.redis == nil {
		return
	}
	payload, err := json.Marshal(change)
	if err != nil {
		logger.GetDefault().WithError(err).Warn("failed to encode layout change")
		return
	}
	if err := r.redis.Publish(ctx, constants.BuildLayoutChannel(change.LayoutID.String()), payload).Err(); err != nil {
		logger.GetDefault().WithLayout(change.LayoutID.String()).WithError(err).Warn("failed to publish layout change")
	}
}

func (r *repository) Subscribe(ctx context.Context, id uuid.UUID, onChange func(*VenueLayout)) (func(), error) {
	if r.redis == nil {
		return nil, ErrChangeFeedUnavailable
	}

	pubsub := r.redis.Subscribe(ctx, constants.BuildLayoutChannel(id.String()))
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to layout %s: %w", id, err)
	}

	done := make(chan struct{})
	messages := pubsub.Channel()
	go func() {
		for {
			select {
			case <-done:
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}
				var change layoutChange
				if err := json.Unmarshal([]byte(msg.Payload), &change); err != nil {
					logger.GetDefault().WithError(err).Warn("dropping malformed layout change", "channel", msg.Channel)
					continue
				}
				if change.Deleted {
					onChange(nil)
				} else {
					onChange(change.Layout)
				}
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			pubsub.Close()
		})
	}, nil
}

var sortableColumns = map[string]bool{
	"created_at":     true,
	"updated_at":     true,
	"name":           true,
	"total_capacity": true,
	"usage_count":    true,
}

func (r *repository) List(ctx context.Context, filters LayoutFilters) (*PaginatedLayouts, error) {
	var layouts []VenueLayout
	var total int64

	query := r.db.WithContext(ctx).Model(&VenueLayout{})

	// Apply filters
	if filters.Search != "" {
		searchPattern := fmt.Sprintf("%%%s%%", filters.Search)
		query = query.Where("name ILIKE ? OR venue_name ILIKE ?", searchPattern, searchPattern)
	}
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.VenueName != "" {
		query = query.Where("venue_name = ?", filters.VenueName)
	}
	if filters.IsTemplate != nil {
		query = query.Where("is_template = ?", *filters.IsTemplate)
	}
	if filters.TemplateCategory != "" {
		query = query.Where("template_category = ?", filters.TemplateCategory)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count layouts: %w", err)
	}

	sortBy := filters.SortBy
	if !sortableColumns[sortBy] {
		sortBy = "created_at"
	}
	sortOrder := strings.ToLower(filters.SortOrder)
	if sortOrder != "asc" {
		sortOrder = "desc"
	}
	query = query.Order(fmt.Sprintf("%s %s", sortBy, sortOrder))

	offset := (filters.Page - 1) * filters.Limit
	if err := query.Offset(offset).Limit(filters.Limit).Find(&layouts).Error; err != nil {
		return nil, fmt.Errorf("failed to list layouts: %w", err)
	}

	totalPages := int((total + int64(filters.Limit) - 1) / int64(filters.Limit))

	return &PaginatedLayouts{
		Layouts:    layouts,
		TotalCount: total,
		Page:       filters.Page,
		Limit:      filters.Limit,
		TotalPages: totalPages,
	}, nil
}

func (r *repository) GetTemplateByName(ctx context.Context, name string) (*VenueLayout, error) {
	var layout VenueLayout
	err := r.db.WithContext(ctx).First(&layout, "is_template = ? AND name = ?", true, name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLayoutNotFound
		}
		return nil, fmt.Errorf("failed to get template layout: %w", err)
	}
	return &layout, nil
}

func (r *repository) IncrementUsage(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Model(&VenueLayout{}).
		Where("id = ?", id).
		UpdateColumn("usage_count", gorm.Expr("usage_count + 1")).Error
	if err != nil {
		return fmt.Errorf("failed to increment layout usage: %w", err)
	}
	return DeleteCache(ctx, r.redis, constants.BuildLayoutDetailKey(id.String()))
}
