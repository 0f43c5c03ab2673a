package services

import "gorm.io/gorm"

// activeOn restricts events to those whose registration window contains today
func activeOn(today string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("registration_start_date <= ? AND registration_end_date >= ?", today, today)
	}
}
