package model

import (
	"errors"
	"fmt"
	"time"
)

// Event holds the fields shared by new and existing events.
type Event struct {
	// ProgramID identifies the program this event belongs to.
	ProgramID string `json:"programID"`

	// EventName is the optional name of the event.
	EventName string `json:"eventName,omitempty"`

	// Priority of the event; less is higher priority.
	Priority *int `json:"priority,omitempty"`

	Targets            []Target                 `json:"targets,omitempty"`
	PayloadDescriptors []EventPayloadDescriptor `json:"payloadDescriptors,omitempty"`
	IntervalPeriod     *IntervalPeriod          `json:"intervalPeriod,omitempty"`
	Intervals          []Interval               `json:"intervals"`
}

// Validate checks the constraints shared by all event variants.
func (e Event) Validate() error {
	if err := nameLen("programID", e.ProgramID); err != nil {
		return err
	}
	if e.Priority != nil && *e.Priority < 0 {
		return errors.New("event priority must not be negative")
	}
	if e.IntervalPeriod != nil {
		if err := e.IntervalPeriod.Validate(); err != nil {
			return err
		}
	}
	for _, t := range e.Targets {
		if err := t.Validate(); err != nil {
			return err
		}
	}
	for _, d := range e.PayloadDescriptors {
		if err := d.Validate(); err != nil {
			return err
		}
	}
	for _, iv := range e.Intervals {
		if err := iv.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// NewEvent is an event not yet pushed to the VTN. A NewEvent can be used
// to create an event exactly once.
type NewEvent struct {
	CreationGuard `json:"-"`
	Event
}

// Validate checks the new event.
func (e *NewEvent) Validate() error {
	if len(e.Intervals) == 0 {
		return errors.New("new event must contain at least one interval")
	}
	return e.Event.Validate()
}

// ExistingEvent is an event retrieved from the VTN.
type ExistingEvent struct {
	Event
	ID                   string    `json:"id"`
	CreatedDateTime      time.Time `json:"createdDateTime"`
	ModificationDateTime time.Time `json:"modificationDateTime"`
}

// Validate checks the existing event.
func (e ExistingEvent) Validate() error {
	if e.ID == "" {
		return errors.New("existing event requires an id")
	}
	return e.Event.Validate()
}

// EventUpdate describes a partial update to an existing event. Nil
// fields are left unchanged.
type EventUpdate struct {
	ProgramID          *string
	EventName          *string
	Priority           *int
	Targets            []Target
	PayloadDescriptors []EventPayloadDescriptor
	IntervalPeriod     *IntervalPeriod
	Intervals          []Interval
}

// Update returns a copy of the event with the set fields of the update
// applied. The result is validated before it is returned.
func (e ExistingEvent) Update(u EventUpdate) (ExistingEvent, error) {
	out := e
	if u.ProgramID != nil {
		out.ProgramID = *u.ProgramID
	}
	if u.EventName != nil {
		out.EventName = *u.EventName
	}
	if u.Priority != nil {
		out.Priority = u.Priority
	}
	if u.Targets != nil {
		out.Targets = u.Targets
	}
	if u.PayloadDescriptors != nil {
		out.PayloadDescriptors = u.PayloadDescriptors
	}
	if u.IntervalPeriod != nil {
		out.IntervalPeriod = u.IntervalPeriod
	}
	if u.Intervals != nil {
		out.Intervals = u.Intervals
	}
	if err := out.Validate(); err != nil {
		return ExistingEvent{}, fmt.Errorf("apply event update: %w", err)
	}
	return out, nil
}
