package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2/log"
	"github.com/sahilchouksey/event-registration-api/model"
	"gorm.io/gorm"
)

// EventService owns the event catalog
type EventService struct {
	db    *gorm.DB
	clock Clock
	cache OptionCache
}

// NewEventService creates a new event catalog service
func NewEventService(db *gorm.DB, clock Clock) *EventService {
	return &EventService{
		db:    db,
		clock: clock,
	}
}

// WithCache makes catalog writes invalidate cached availability options
func (s *EventService) WithCache(cache OptionCache) *EventService {
	s.cache = cache
	return s
}

// EventInput carries the writable event fields. Callers validate the name
// format and the date ordering before calling the catalog.
type EventInput struct {
	Name                  string
	Category              model.Category
	EventDate             string
	RegistrationStartDate string
	RegistrationEndDate   string
}

// CreateEvent stores a new event and returns its ID
func (s *EventService) CreateEvent(ctx context.Context, in EventInput) (uint, error) {
	now := s.clock.Now().UTC()
	event := model.Event{
		Name:                  in.Name,
		Category:              in.Category,
		EventDate:             in.EventDate,
		RegistrationStartDate: in.RegistrationStartDate,
		RegistrationEndDate:   in.RegistrationEndDate,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	if err := s.db.WithContext(ctx).Create(&event).Error; err != nil {
		return 0, fmt.Errorf("failed to create event: %w", err)
	}

	s.invalidate(ctx)
	return event.ID, nil
}

// UpdateEvent overwrites the event fields. It returns false when the ID is unknown.
func (s *EventService) UpdateEvent(ctx context.Context, id uint, in EventInput) (bool, error) {
	result := s.db.WithContext(ctx).
		Model(&model.Event{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"event_name":              in.Name,
			"category":                in.Category,
			"event_date":              in.EventDate,
			"registration_start_date": in.RegistrationStartDate,
			"registration_end_date":   in.RegistrationEndDate,
			"updated_at":              s.clock.Now().UTC(),
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to update event %d: %w", id, result.Error)
	}

	if result.RowsAffected == 0 {
		return false, nil
	}

	s.invalidate(ctx)
	return true, nil
}

// DeleteEvent removes an event nothing references. It returns false when the
// ID is unknown and ErrEventHasRegistrations when registrations point at it.
func (s *EventService) DeleteEvent(ctx context.Context, id uint) (bool, error) {
	var deleted bool

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var references int64
		if err := tx.Model(&model.Registration{}).Where("event_id = ?", id).Count(&references).Error; err != nil {
			return err
		}
		if references > 0 {
			return ErrEventHasRegistrations
		}

		result := tx.Delete(&model.Event{}, id)
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected > 0
		return nil
	})

	switch {
	case err == nil:
	case errors.Is(err, ErrEventHasRegistrations), errors.Is(err, gorm.ErrForeignKeyViolated):
		return false, ErrEventHasRegistrations
	default:
		return false, fmt.Errorf("failed to delete event %d: %w", id, err)
	}

	if deleted {
		s.invalidate(ctx)
	}
	return deleted, nil
}

// GetEvent returns the event, or nil when it does not exist
func (s *EventService) GetEvent(ctx context.Context, id uint) (*model.Event, error) {
	var event model.Event
	if err := s.db.WithContext(ctx).First(&event, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch event %d: %w", id, err)
	}
	return &event, nil
}

// ListAllEvents returns every event by event date
func (s *EventService) ListAllEvents(ctx context.Context) ([]model.Event, error) {
	events := []model.Event{}
	if err := s.db.WithContext(ctx).Order("event_date ASC").Order("id ASC").Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

// ListActiveEvents returns events open for registration today, by event date
func (s *EventService) ListActiveEvents(ctx context.Context) ([]model.Event, error) {
	events := []model.Event{}
	err := s.db.WithContext(ctx).
		Scopes(activeOn(s.clock.Today())).
		Order("event_date ASC").
		Order("id ASC").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list active events: %w", err)
	}
	return events, nil
}

func (s *EventService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if _, err := s.cache.Increment(ctx, catalogVersionKey); err != nil {
		log.Warnf("Failed to bump availability cache version: %v", err)
	}
}
