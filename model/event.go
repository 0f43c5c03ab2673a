package model

import "time"

// Event is a scheduled event open for registration during a closed date window.
// Dates are stored as ISO calendar strings so range predicates compare the
// same way on every storage engine.
type Event struct {
	ID                    uint      `gorm:"primaryKey" json:"id"`
	Name                  string    `gorm:"column:event_name;type:varchar(255);not null" json:"event_name"`
	Category              Category  `gorm:"type:varchar(64);not null;index" json:"category"`
	EventDate             string    `gorm:"type:varchar(10);not null;index" json:"event_date"`
	RegistrationStartDate string    `gorm:"type:varchar(10);not null;index:idx_event_config_window,priority:1" json:"registration_start_date"`
	RegistrationEndDate   string    `gorm:"type:varchar(10);not null;index:idx_event_config_window,priority:2" json:"registration_end_date"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// TableName specifies the table name for Event
func (Event) TableName() string {
	return "event_config"
}

// IsActiveOn reports whether today (YYYY-MM-DD) falls inside the registration window
func (e Event) IsActiveOn(today string) bool {
	return e.RegistrationStartDate <= today && today <= e.RegistrationEndDate
}

// EventStatus is where today falls relative to an event's registration window
type EventStatus string

const (
	EventStatusOpen     EventStatus = "open"
	EventStatusUpcoming EventStatus = "upcoming"
	EventStatusClosed   EventStatus = "closed"
)

// Status classifies the registration window against today (YYYY-MM-DD)
func (e Event) Status(today string) EventStatus {
	switch {
	case e.IsActiveOn(today):
		return EventStatusOpen
	case e.RegistrationStartDate > today:
		return EventStatusUpcoming
	default:
		return EventStatusClosed
	}
}
