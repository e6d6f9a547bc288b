package model

import (
	"errors"
	"fmt"
	"time"
)

// ReportResource holds the intervals reported for a single resource.
type ReportResource struct {
	// ResourceName names the resource these intervals relate to.
	ResourceName string `json:"resourceName"`

	IntervalPeriod *IntervalPeriod `json:"intervalPeriod,omitempty"`
	Intervals      []Interval      `json:"intervals"`
}

// Validate checks the report resource.
func (r ReportResource) Validate() error {
	if err := nameLen("resourceName", r.ResourceName); err != nil {
		return err
	}
	if len(r.Intervals) == 0 {
		return errors.New("report resource must contain at least one interval")
	}
	if r.IntervalPeriod != nil {
		if err := r.IntervalPeriod.Validate(); err != nil {
			return err
		}
	}
	for _, iv := range r.Intervals {
		if err := iv.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Report holds the fields shared by new and existing reports.
type Report struct {
	// ProgramID identifies the program this report relates to.
	ProgramID string `json:"programID"`

	// EventID identifies the event this report relates to.
	EventID string `json:"eventID"`

	// ClientName names the client this report relates to.
	ClientName string `json:"clientName"`

	// ReportName is an optional name for debugging or UI display.
	ReportName string `json:"reportName,omitempty"`

	PayloadDescriptors []EventPayloadDescriptor `json:"payloadDescriptors,omitempty"`
	Resources          []ReportResource         `json:"resources"`
}

// Validate checks the constraints shared by all report variants.
func (r Report) Validate() error {
	if err := nameLen("programID", r.ProgramID); err != nil {
		return err
	}
	if err := nameLen("eventID", r.EventID); err != nil {
		return err
	}
	if err := nameLen("clientName", r.ClientName); err != nil {
		return err
	}
	for _, d := range r.PayloadDescriptors {
		if err := d.Validate(); err != nil {
			return err
		}
	}
	for _, res := range r.Resources {
		if err := res.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// NewReport is a report not yet pushed to the VTN.
type NewReport struct {
	CreationGuard `json:"-"`
	Report
}

// Validate checks the new report.
func (r *NewReport) Validate() error {
	if len(r.Resources) == 0 {
		return errors.New("new report must contain at least one resource")
	}
	return r.Report.Validate()
}

// ExistingReport is a report retrieved from the VTN.
type ExistingReport struct {
	Report
	ID                   string    `json:"id"`
	CreatedDateTime      time.Time `json:"createdDateTime"`
	ModificationDateTime time.Time `json:"modificationDateTime"`
}

// Validate checks the existing report.
func (r ExistingReport) Validate() error {
	if r.ID == "" {
		return errors.New("existing report requires an id")
	}
	return r.Report.Validate()
}

// ReportUpdate describes a partial update to an existing report. Nil
// fields are left unchanged.
type ReportUpdate struct {
	ProgramID          *string
	EventID            *string
	ClientName         *string
	ReportName         *string
	PayloadDescriptors []EventPayloadDescriptor
	Resources          []ReportResource
}

// Update returns a copy of the report with the set fields of the update
// applied.
func (r ExistingReport) Update(u ReportUpdate) (ExistingReport, error) {
	out := r
	if u.ProgramID != nil {
		out.ProgramID = *u.ProgramID
	}
	if u.EventID != nil {
		out.EventID = *u.EventID
	}
	if u.ClientName != nil {
		out.ClientName = *u.ClientName
	}
	if u.ReportName != nil {
		out.ReportName = *u.ReportName
	}
	if u.PayloadDescriptors != nil {
		out.PayloadDescriptors = u.PayloadDescriptors
	}
	if u.Resources != nil {
		out.Resources = u.Resources
	}
	if err := out.Validate(); err != nil {
		return ExistingReport{}, fmt.Errorf("apply report update: %w", err)
	}
	return out, nil
}
