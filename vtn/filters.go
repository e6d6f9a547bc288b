package vtn

import (
	"errors"
	"net/url"

	"github.com/google/go-querystring/query"
)

// TargetFilter narrows a listing to objects carrying all the given
// target values for the target type. The VTN treats the values as a
// logical AND.
type TargetFilter struct {
	Type   string   `url:"targetType,omitempty"`
	Values []string `url:"targetValues,omitempty"`
}

// Pagination bounds a listing. Skip and limit must not be negative; a
// zero value leaves paging to the VTN defaults.
type Pagination struct {
	Skip  int `url:"skip,omitempty"`
	Limit int `url:"limit,omitempty"`
}

func (p Pagination) validate() error {
	if p.Skip < 0 {
		return errors.New("skip must not be negative")
	}
	if p.Limit < 0 {
		return errors.New("limit must not be negative")
	}
	return nil
}

// EventFilter selects events to list.
type EventFilter struct {
	ProgramID string `url:"programID,omitempty"`
	TargetFilter
	Pagination
}

// ProgramFilter selects programs to list.
type ProgramFilter struct {
	TargetFilter
	Pagination
}

// ReportFilter selects reports to list.
type ReportFilter struct {
	ProgramID  string `url:"programID,omitempty"`
	EventID    string `url:"eventID,omitempty"`
	ClientName string `url:"clientName,omitempty"`
	Pagination
}

// VenFilter selects VENs to list.
type VenFilter struct {
	VenName string `url:"venName,omitempty"`
	TargetFilter
	Pagination
}

// ResourceFilter selects resources of a VEN to list.
type ResourceFilter struct {
	ResourceName string `url:"resourceName,omitempty"`
	Pagination
}

// SubscriptionFilter selects subscriptions to list.
type SubscriptionFilter struct {
	ProgramID string `url:"programID,omitempty"`
	TargetFilter
	Pagination
}

func filterQuery(f any) (url.Values, error) {
	if f == nil {
		return nil, nil
	}
	// Every filter embeds Pagination, whose validate promotes here.
	if v, ok := f.(interface{ validate() error }); ok {
		if err := v.validate(); err != nil {
			return nil, err
		}
	}
	return query.Values(f)
}
