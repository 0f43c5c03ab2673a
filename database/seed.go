package database

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/sahilchouksey/event-registration-api/model"
	"gorm.io/gorm"
)

// Seeder handles database seeding operations
type Seeder struct {
	db  *gorm.DB
	now time.Time
}

// NewSeeder creates a new seeder whose event windows are relative to now
func NewSeeder(db *gorm.DB, now time.Time) *Seeder {
	return &Seeder{db: db, now: now}
}

// SeedAll runs all seed functions
func (s *Seeder) SeedAll() error {
	log.Info("Starting database seeding...")

	if err := s.SeedEvents(); err != nil {
		return fmt.Errorf("failed to seed events: %w", err)
	}

	log.Info("Database seeding completed successfully!")
	return nil
}

// SeedEvents creates sample events in every category, mostly open with one
// upcoming hackathon and one closed workshop
func (s *Seeder) SeedEvents() error {
	// Check if events already exist
	var count int64
	if err := s.db.Model(&model.Event{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Info("Events already exist, skipping...")
		return nil
	}

	day := func(offset int) string {
		return s.now.AddDate(0, 0, offset).Format(model.DateLayout)
	}

	events := []model.Event{
		{Name: "Intro to Go", Category: model.CategoryOnlineWorkshop, EventDate: day(40), RegistrationStartDate: day(-10), RegistrationEndDate: day(25)},
		{Name: "Concurrency Patterns", Category: model.CategoryOnlineWorkshop, EventDate: day(40), RegistrationStartDate: day(-5), RegistrationEndDate: day(30)},
		{Name: "Campus Hack 24h", Category: model.CategoryHackathon, EventDate: day(21), RegistrationStartDate: day(-3), RegistrationEndDate: day(14)},
		{Name: "Green Tech Hackathon", Category: model.CategoryHackathon, EventDate: day(90), RegistrationStartDate: day(30), RegistrationEndDate: day(60)},
		{Name: "Cloud & Infra Summit", Category: model.CategoryConference, EventDate: day(60), RegistrationStartDate: day(-20), RegistrationEndDate: day(45)},
		{Name: "Data Engineering Day", Category: model.CategoryOneDayWorkshop, EventDate: day(10), RegistrationStartDate: day(-15), RegistrationEndDate: day(7)},
		{Name: "Testing in Practice", Category: model.CategoryOneDayWorkshop, EventDate: day(-5), RegistrationStartDate: day(-40), RegistrationEndDate: day(-10)},
	}

	stamp := s.now.UTC()
	for i := range events {
		events[i].CreatedAt = stamp
		events[i].UpdatedAt = stamp
	}

	if err := s.db.Create(&events).Error; err != nil {
		return err
	}

	log.Infof("Created %d events", len(events))
	return nil
}

// RunSeeds is a convenience function to run all seeds
func RunSeeds(db *gorm.DB) error {
	seeder := NewSeeder(db, time.Now())
	return seeder.SeedAll()
}
