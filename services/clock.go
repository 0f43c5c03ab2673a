package services

import (
	"time"

	"github.com/sahilchouksey/event-registration-api/model"
)

// Clock supplies the current calendar date and timestamp.
type Clock interface {
	Now() time.Time
	// Today returns the server's local calendar date as YYYY-MM-DD
	Today() string
}

// SystemClock reads the wall clock
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

func (SystemClock) Today() string { return time.Now().Format(model.DateLayout) }

// FixedClock always reports the same instant
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time { return c.At }

func (c FixedClock) Today() string { return c.At.Format(model.DateLayout) }
