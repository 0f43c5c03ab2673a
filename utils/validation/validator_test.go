package validation

import (
	"errors"
	"testing"
)

type eventForm struct {
	Name     string `json:"event_name" validate:"required,max=255,eventname"`
	Category string `json:"category" validate:"required,category"`
	Date     string `json:"event_date" validate:"required,datetime=2006-01-02"`
}

type registrationForm struct {
	FullName    string `json:"full_name" validate:"required,personname"`
	Email       string `json:"email" validate:"required,email"`
	CollegeName string `json:"college_name" validate:"required,institution"`
}

func TestCustomTags(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name    string
		form    interface{}
		wantErr string
	}{
		{"valid event", eventForm{Name: "Intro to Go, Part 1 & 2", Category: "hackathon", Date: "2026-02-01"}, ""},
		{"event name with slash", eventForm{Name: "Go/Rust", Category: "hackathon", Date: "2026-02-01"}, "event_name"},
		{"unknown category", eventForm{Name: "Go", Category: "meetup", Date: "2026-02-01"}, "category"},
		{"bad date", eventForm{Name: "Go", Category: "conference", Date: "01/02/2026"}, "event_date"},
		{"valid registration", registrationForm{FullName: "Dr. Ada Lovelace-King", Email: "a@x.io", CollegeName: "St. Mary's College, Arts & Science"}, ""},
		{"person name with apostrophe", registrationForm{FullName: "O'Brien", Email: "a@x.io", CollegeName: "MIT"}, "full_name"},
		{"bad email", registrationForm{FullName: "Ada", Email: "not-an-email", CollegeName: "MIT"}, "email"},
		{"college with angle brackets", registrationForm{FullName: "Ada", Email: "a@x.io", CollegeName: "<MIT>"}, "college_name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateStruct(tt.form)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Expected no error, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Expected error on %s, got nil", tt.wantErr)
			}
			messages := FormatValidationErrors(err)
			if _, ok := messages[tt.wantErr]; !ok {
				t.Errorf("Expected message for %s, got %v", tt.wantErr, messages)
			}
		})
	}
}

func TestValidateEventWindow(t *testing.T) {
	tests := []struct {
		name                  string
		start, end, eventDate string
		want                  error
	}{
		{"ordered", "2026-01-10", "2026-01-25", "2026-02-01", nil},
		{"all equal", "2026-02-01", "2026-02-01", "2026-02-01", nil},
		{"start after end", "2026-01-26", "2026-01-25", "2026-02-01", ErrWindowStartAfterEnd},
		{"end after event", "2026-01-10", "2026-02-02", "2026-02-01", ErrWindowEndAfterEvent},
		{"unparseable", "2026-1-10", "2026-01-25", "2026-02-01", ErrInvalidCalendarDates},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateEventWindow(tt.start, tt.end, tt.eventDate); !errors.Is(err, tt.want) {
				t.Errorf("ValidateEventWindow(%s, %s, %s) = %v, want %v", tt.start, tt.end, tt.eventDate, err, tt.want)
			}
		})
	}
}

func TestSanitizeString(t *testing.T) {
	if got := SanitizeString("  a@x.io\x00 "); got != "a@x.io" {
		t.Errorf("SanitizeString = %q", got)
	}
}
