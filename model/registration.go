package model

import "time"

// Registration is a public sign-up for an event. Category, EventDate and
// EventName are copied from the event when the row is written and are never
// refreshed, so historical records survive later edits to the event.
type Registration struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	FullName    string    `gorm:"type:varchar(255);not null" json:"full_name"`
	Email       string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_registration_email_date,priority:1" json:"email"`
	CollegeName string    `gorm:"type:varchar(255);not null" json:"college_name"`
	Department  string    `gorm:"type:varchar(255);not null" json:"department"`
	EventID     uint      `gorm:"not null;index" json:"event_id"`
	Category    Category  `gorm:"type:varchar(64);not null" json:"category"`
	EventDate   string    `gorm:"type:varchar(10);not null;index;uniqueIndex:idx_registration_email_date,priority:2" json:"event_date"`
	EventName   string    `gorm:"type:varchar(255);not null;index" json:"event_name"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`

	// Relationships
	Event *Event `gorm:"foreignKey:EventID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

// TableName specifies the table name for Registration
func (Registration) TableName() string {
	return "event_registration"
}
