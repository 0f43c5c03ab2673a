package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/sahilchouksey/event-registration-api/model"
	"github.com/sahilchouksey/event-registration-api/utils/cache"
	"gorm.io/gorm"
)

const catalogVersionKey = "availability:catalog_version"

// OptionCache is the part of the Redis cache the availability queries need
type OptionCache interface {
	Get(ctx context.Context, key string) (string, error)
	GetJSON(ctx context.Context, key string, dest interface{}) error
	SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Increment(ctx context.Context, key string) (int64, error)
}

// Option is one entry of an ordered key/label list used to fill a select widget
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// AvailabilityService derives the category -> date -> event cascade from
// events whose registration window contains today. Each level returns an
// empty list when nothing matches.
type AvailabilityService struct {
	db    *gorm.DB
	clock Clock
	cache OptionCache
	ttl   time.Duration
}

// NewAvailabilityService creates a new availability service
func NewAvailabilityService(db *gorm.DB, clock Clock) *AvailabilityService {
	return &AvailabilityService{
		db:    db,
		clock: clock,
	}
}

// WithCache enables read-through caching of option lists
func (s *AvailabilityService) WithCache(cache OptionCache, ttl time.Duration) *AvailabilityService {
	s.cache = cache
	s.ttl = ttl
	return s
}

// ActiveCategories lists categories with at least one active event, in category table order
func (s *AvailabilityService) ActiveCategories(ctx context.Context) ([]Option, error) {
	today := s.clock.Today()
	return s.cached(ctx, today, "categories", func() ([]Option, error) {
		var found []model.Category
		err := s.db.WithContext(ctx).
			Model(&model.Event{}).
			Scopes(activeOn(today)).
			Distinct().
			Pluck("category", &found).Error
		if err != nil {
			return nil, fmt.Errorf("failed to load active categories: %w", err)
		}

		present := make(map[model.Category]bool, len(found))
		for _, category := range found {
			present[category] = true
		}

		options := make([]Option, 0, len(present))
		for _, category := range model.Categories {
			if present[category] {
				options = append(options, Option{Value: string(category), Label: category.Label()})
			}
		}
		return options, nil
	})
}

// ActiveDatesForCategory lists distinct event dates of active events in the category, ascending
func (s *AvailabilityService) ActiveDatesForCategory(ctx context.Context, category model.Category) ([]Option, error) {
	if !category.IsValid() {
		return []Option{}, nil
	}

	today := s.clock.Today()
	return s.cached(ctx, today, "dates:"+string(category), func() ([]Option, error) {
		var dates []string
		err := s.db.WithContext(ctx).
			Model(&model.Event{}).
			Scopes(activeOn(today)).
			Where("category = ?", category).
			Distinct().
			Order("event_date ASC").
			Pluck("event_date", &dates).Error
		if err != nil {
			return nil, fmt.Errorf("failed to load event dates for %s: %w", category, err)
		}

		options := make([]Option, 0, len(dates))
		for _, date := range dates {
			options = append(options, Option{Value: date, Label: model.DateLabel(date)})
		}
		return options, nil
	})
}

// ActiveEventsForCategoryAndDate lists id/name pairs of active events matching both, by name
func (s *AvailabilityService) ActiveEventsForCategoryAndDate(ctx context.Context, category model.Category, date string) ([]Option, error) {
	if !category.IsValid() {
		return []Option{}, nil
	}

	today := s.clock.Today()
	return s.cached(ctx, today, "events:"+string(category)+":"+date, func() ([]Option, error) {
		var events []model.Event
		err := s.db.WithContext(ctx).
			Select("id", "event_name").
			Scopes(activeOn(today)).
			Where("category = ? AND event_date = ?", category, date).
			Order("event_name ASC").
			Order("id ASC").
			Find(&events).Error
		if err != nil {
			return nil, fmt.Errorf("failed to load events for %s on %s: %w", category, date, err)
		}

		options := make([]Option, 0, len(events))
		for _, event := range events {
			options = append(options, Option{
				Value: strconv.FormatUint(uint64(event.ID), 10),
				Label: event.Name,
			})
		}
		return options, nil
	})
}

// cached serves key from the cache when possible. Keys embed the catalog
// version and today's date, so event writes and midnight both roll them over.
func (s *AvailabilityService) cached(ctx context.Context, today, key string, load func() ([]Option, error)) ([]Option, error) {
	if s.cache == nil {
		return load()
	}

	version, err := s.cache.Get(ctx, catalogVersionKey)
	if errors.Is(err, cache.ErrNotFound) {
		version = "0"
	} else if err != nil {
		log.Warnf("Availability cache unavailable, querying database: %v", err)
		return load()
	}

	fullKey := fmt.Sprintf("availability:v%s:%s:%s", version, today, key)

	var options []Option
	if err := s.cache.GetJSON(ctx, fullKey, &options); err == nil && options != nil {
		return options, nil
	}

	options, err = load()
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetJSON(ctx, fullKey, options, s.ttl); err != nil {
		log.Warnf("Failed to cache %s: %v", fullKey, err)
	}
	return options, nil
}
