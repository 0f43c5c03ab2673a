package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sahilchouksey/event-registration-api/model"
	"gorm.io/gorm"
)

// EventLookup resolves events for the registration snapshot
type EventLookup interface {
	GetEvent(ctx context.Context, id uint) (*model.Event, error)
}

// RegistrationService owns registration records
type RegistrationService struct {
	db     *gorm.DB
	clock  Clock
	events EventLookup
}

// NewRegistrationService creates a new registration service
func NewRegistrationService(db *gorm.DB, clock Clock, events EventLookup) *RegistrationService {
	return &RegistrationService{
		db:     db,
		clock:  clock,
		events: events,
	}
}

// RegistrationInput carries the registrant's fields and the chosen event
type RegistrationInput struct {
	FullName    string
	Email       string
	CollegeName string
	Department  string
	EventID     uint
}

// Selection is the category and date the registrant picked before the event.
// Empty fields are not checked.
type Selection struct {
	Category  model.Category
	EventDate string
}

// RegistrationFilter narrows listings. Empty fields do not constrain.
type RegistrationFilter struct {
	EventDate string `query:"event_date"`
	EventName string `query:"event_name"`
}

func (f RegistrationFilter) apply(db *gorm.DB) *gorm.DB {
	if f.EventDate != "" {
		db = db.Where("event_date = ?", f.EventDate)
	}
	if f.EventName != "" {
		db = db.Where("event_name = ?", f.EventName)
	}
	return db
}

// newestFirst orders registrations by creation time, most recent first
func newestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC").Order("id DESC")
}

// CheckDuplicate reports whether email already holds a registration for eventDate
func (s *RegistrationService) CheckDuplicate(ctx context.Context, email, eventDate string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.Registration{}).
		Where("email = ? AND event_date = ?", email, eventDate).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check duplicate registration: %w", err)
	}
	return count > 0, nil
}

// CreateRegistration resolves the event, copies its name, category and date
// into the record and inserts it. The duplicate check runs right before the
// insert; the unique (email, event_date) index catches the race between them.
func (s *RegistrationService) CreateRegistration(ctx context.Context, in RegistrationInput) (uint, error) {
	event, err := s.events.GetEvent(ctx, in.EventID)
	if err != nil {
		return 0, err
	}
	if event == nil {
		return 0, ErrEventNotFound
	}

	duplicate, err := s.CheckDuplicate(ctx, in.Email, event.EventDate)
	if err != nil {
		return 0, err
	}
	if duplicate {
		return 0, ErrDuplicateRegistration
	}

	registration := model.Registration{
		FullName:    in.FullName,
		Email:       in.Email,
		CollegeName: in.CollegeName,
		Department:  in.Department,
		EventID:     event.ID,
		Category:    event.Category,
		EventDate:   event.EventDate,
		EventName:   event.Name,
		CreatedAt:   s.clock.Now().UTC(),
	}

	if err := s.db.WithContext(ctx).Create(&registration).Error; err != nil {
		switch {
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return 0, ErrDuplicateRegistration
		case errors.Is(err, gorm.ErrForeignKeyViolated):
			return 0, ErrEventNotFound
		}
		return 0, fmt.Errorf("failed to create registration: %w", err)
	}

	return registration.ID, nil
}

// SubmitRegistration is the public registration path. The event must be open
// for registration today and agree with the registrant's selection; the
// record is then created as by CreateRegistration.
func (s *RegistrationService) SubmitRegistration(ctx context.Context, in RegistrationInput, selection Selection) (uint, error) {
	event, err := s.events.GetEvent(ctx, in.EventID)
	if err != nil {
		return 0, err
	}
	if event == nil {
		return 0, ErrEventNotFound
	}

	if !event.IsActiveOn(s.clock.Today()) {
		return 0, ErrInvalidRegistration
	}
	if selection.Category != "" && selection.Category != event.Category {
		return 0, ErrInvalidRegistration
	}
	if selection.EventDate != "" && selection.EventDate != event.EventDate {
		return 0, ErrInvalidRegistration
	}

	return s.CreateRegistration(ctx, in)
}

// ListRegistrations returns matching registrations, newest first
func (s *RegistrationService) ListRegistrations(ctx context.Context, filter RegistrationFilter) ([]model.Registration, error) {
	registrations := []model.Registration{}
	err := s.db.WithContext(ctx).
		Scopes(filter.apply, newestFirst).
		Find(&registrations).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	return registrations, nil
}

// CountRegistrations counts matching registrations without loading them
func (s *RegistrationService) CountRegistrations(ctx context.Context, filter RegistrationFilter) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.Registration{}).
		Scopes(filter.apply).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count registrations: %w", err)
	}
	return count, nil
}

// DistinctRegistrationDates lists every event date that has registrations, newest first
func (s *RegistrationService) DistinctRegistrationDates(ctx context.Context) ([]Option, error) {
	var dates []string
	err := s.db.WithContext(ctx).
		Model(&model.Registration{}).
		Distinct().
		Order("event_date DESC").
		Pluck("event_date", &dates).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load registration dates: %w", err)
	}

	options := make([]Option, 0, len(dates))
	for _, date := range dates {
		options = append(options, Option{Value: date, Label: model.DateLabel(date)})
	}
	return options, nil
}

// DistinctEventNamesForDate lists event names registered on date, ascending
func (s *RegistrationService) DistinctEventNamesForDate(ctx context.Context, date string) ([]string, error) {
	names := []string{}
	err := s.db.WithContext(ctx).
		Model(&model.Registration{}).
		Where("event_date = ?", date).
		Distinct().
		Order("event_name ASC").
		Pluck("event_name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load event names for %s: %w", date, err)
	}
	return names, nil
}
