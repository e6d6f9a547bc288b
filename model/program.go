package model

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"time"
)

var (
	countryPattern     = regexp.MustCompile(`^[A-Z]{2}$`)
	subdivisionPattern = regexp.MustCompile(`^[A-Z]{2}-[A-Z0-9]{1,3}$`)
)

// Program holds the fields shared by new and existing programs.
type Program struct {
	// ProgramName is the short name of the program.
	ProgramName string `json:"programName"`

	ProgramLongName  string `json:"programLongName,omitempty"`
	RetailerName     string `json:"retailerName,omitempty"`
	RetailerLongName string `json:"retailerLongName,omitempty"`
	ProgramType      string `json:"programType,omitempty"`

	// Country is an ISO 3166-1 alpha-2 country code.
	Country string `json:"country,omitempty"`

	// PrincipalSubdivision is an ISO 3166-2 coding, for example state in
	// the US.
	PrincipalSubdivision string `json:"principalSubdivision,omitempty"`

	IntervalPeriod *IntervalPeriod `json:"intervalPeriod,omitempty"`

	// ProgramDescriptions is a list of URLs to human or machine readable
	// content.
	ProgramDescriptions []string `json:"programDescriptions,omitempty"`

	// BindingEvents reports whether events inside the program are
	// considered immutable.
	BindingEvents *bool `json:"bindingEvents,omitempty"`

	// LocalPrice reports whether event prices are local, typically true
	// for events adapted from a grid event.
	LocalPrice *bool `json:"localPrice,omitempty"`

	PayloadDescriptors []EventPayloadDescriptor `json:"payloadDescriptors,omitempty"`
	Targets            []Target                 `json:"targets,omitempty"`
}

// Validate checks the constraints shared by all program variants.
func (p Program) Validate() error {
	if err := nameLen("programName", p.ProgramName); err != nil {
		return err
	}
	if p.Country != "" && !countryPattern.MatchString(p.Country) {
		return fmt.Errorf("%q is not an ISO 3166-1 alpha-2 country code", p.Country)
	}
	if p.PrincipalSubdivision != "" && !subdivisionPattern.MatchString(p.PrincipalSubdivision) {
		return fmt.Errorf("%q is not an ISO 3166-2 subdivision code", p.PrincipalSubdivision)
	}
	for _, desc := range p.ProgramDescriptions {
		u, err := url.Parse(desc)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("program description %q is not a valid URL", desc)
		}
	}
	if p.IntervalPeriod != nil {
		if err := p.IntervalPeriod.Validate(); err != nil {
			return err
		}
	}
	for _, t := range p.Targets {
		if err := t.Validate(); err != nil {
			return err
		}
	}
	for _, d := range p.PayloadDescriptors {
		if err := d.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// NewProgram is a program not yet pushed to the VTN.
type NewProgram struct {
	CreationGuard `json:"-"`
	Program
}

// Validate checks the new program.
func (p *NewProgram) Validate() error {
	return p.Program.Validate()
}

// ExistingProgram is a program retrieved from the VTN.
type ExistingProgram struct {
	Program
	ID                   string    `json:"id"`
	CreatedDateTime      time.Time `json:"createdDateTime"`
	ModificationDateTime time.Time `json:"modificationDateTime"`
}

// Validate checks the existing program.
func (p ExistingProgram) Validate() error {
	if p.ID == "" {
		return errors.New("existing program requires an id")
	}
	return p.Program.Validate()
}

// ProgramUpdate describes a partial update to an existing program. Nil
// fields are left unchanged.
type ProgramUpdate struct {
	ProgramName          *string
	ProgramLongName      *string
	RetailerName         *string
	RetailerLongName     *string
	ProgramType          *string
	Country              *string
	PrincipalSubdivision *string
	IntervalPeriod       *IntervalPeriod
	ProgramDescriptions  []string
	BindingEvents        *bool
	LocalPrice           *bool
	PayloadDescriptors   []EventPayloadDescriptor
	Targets              []Target
}

// Update returns a copy of the program with the set fields of the update
// applied.
func (p ExistingProgram) Update(u ProgramUpdate) (ExistingProgram, error) {
	out := p
	if u.ProgramName != nil {
		out.ProgramName = *u.ProgramName
	}
	if u.ProgramLongName != nil {
		out.ProgramLongName = *u.ProgramLongName
	}
	if u.RetailerName != nil {
		out.RetailerName = *u.RetailerName
	}
	if u.RetailerLongName != nil {
		out.RetailerLongName = *u.RetailerLongName
	}
	if u.ProgramType != nil {
		out.ProgramType = *u.ProgramType
	}
	if u.Country != nil {
		out.Country = *u.Country
	}
	if u.PrincipalSubdivision != nil {
		out.PrincipalSubdivision = *u.PrincipalSubdivision
	}
	if u.IntervalPeriod != nil {
		out.IntervalPeriod = u.IntervalPeriod
	}
	if u.ProgramDescriptions != nil {
		out.ProgramDescriptions = u.ProgramDescriptions
	}
	if u.BindingEvents != nil {
		out.BindingEvents = u.BindingEvents
	}
	if u.LocalPrice != nil {
		out.LocalPrice = u.LocalPrice
	}
	if u.PayloadDescriptors != nil {
		out.PayloadDescriptors = u.PayloadDescriptors
	}
	if u.Targets != nil {
		out.Targets = u.Targets
	}
	if err := out.Validate(); err != nil {
		return ExistingProgram{}, fmt.Errorf("apply program update: %w", err)
	}
	return out, nil
}
