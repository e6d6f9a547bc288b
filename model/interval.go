package model

import (
	"errors"
	"fmt"
	"time"
)

// IntervalPeriod defines the temporal aspects of intervals.
//
// A duration of PT0S indicates instantaneous or infinity, depending on
// the payload type.
type IntervalPeriod struct {
	// Start is the start time of the interval. The wire format requires
	// a timezone-qualified RFC 3339 timestamp.
	Start time.Time `json:"start"`

	// Duration is the length of the interval.
	Duration Duration `json:"duration"`

	// RandomizeStart is an optional randomization window for the start
	// time. Nil indicates no randomization.
	RandomizeStart *Duration `json:"randomizeStart,omitempty"`
}

// Validate checks the interval period.
func (p IntervalPeriod) Validate() error {
	if p.Start.IsZero() {
		return errors.New("interval period requires a start time")
	}
	return nil
}

// Interval is a segment of an event or report: an optional interval
// period plus one or more payloads.
type Interval struct {
	ID             int             `json:"id"`
	IntervalPeriod *IntervalPeriod `json:"intervalPeriod,omitempty"`
	Payloads       []Payload       `json:"payloads"`
}

// Validate checks the interval and its payloads.
func (i Interval) Validate() error {
	if len(i.Payloads) == 0 {
		return fmt.Errorf("interval %d must contain at least one payload", i.ID)
	}
	if i.IntervalPeriod != nil {
		if err := i.IntervalPeriod.Validate(); err != nil {
			return fmt.Errorf("interval %d: %w", i.ID, err)
		}
	}
	for _, p := range i.Payloads {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("interval %d: %w", i.ID, err)
		}
	}
	return nil
}
