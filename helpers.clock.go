package main

import (
	"fmt"
	"time"
)

var _ Clocker = (*Clock)(nil)

// Clocker is an interface for getting current real time.
type Clocker interface {
	Now() time.Time
}

// Clock reports the current time in a fixed location.
type Clock struct {
	tz *time.Location
}

// NewClock returns a Clock for the named IANA timezone. An empty name
// means UTC in production and the host local time otherwise.
func NewClock(timezone string, isProd bool) (*Clock, error) {
	switch {
	case timezone != "":
		loc, err := time.LoadLocation(timezone)
		if err != nil {
			return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
		}
		return &Clock{loc}, nil
	case isProd:
		return &Clock{time.UTC}, nil
	default:
		return &Clock{time.Local}, nil
	}
}

// Now provides current clock time.
func (ck *Clock) Now() time.Time {
	return time.Now().In(ck.tz)
}
