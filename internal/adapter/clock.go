package adapter

import "time"

// Clock defines an interface for time operations to enable mocking
//
//go:generate mockgen -source=clock.go -destination=../mocks/clock.go -package=mocks -mock_names=Clock=MockClock
type Clock interface {
	Now() time.Time
	Since(t time.Time) time.Duration
	// Location returns the zone snapshot identifiers are written in
	Location() *time.Location
}

// RealClock implements Clock using the standard time package
type RealClock struct {
	loc *time.Location
}

// NewClockIn creates a new real clock in the given time zone
func NewClockIn(loc *time.Location) Clock {
	return &RealClock{loc: loc}
}

func (c *RealClock) Now() time.Time {
	return time.Now().In(c.loc)
}

func (c *RealClock) Since(t time.Time) time.Duration {
	return time.Since(t)
}

func (c *RealClock) Location() *time.Location {
	return c.loc
}
