package model

import (
	"errors"
	"fmt"
	"time"
)

// Ven holds the fields shared by new and existing VENs.
type Ven struct {
	// VenName names the virtual end node.
	VenName string `json:"venName"`

	Attributes []Attribute        `json:"attributes,omitempty"`
	Targets    []Target           `json:"targets,omitempty"`
	Resources  []ExistingResource `json:"resources,omitempty"`
}

// Validate checks the constraints shared by all VEN variants.
func (v Ven) Validate() error {
	if err := nameLen("venName", v.VenName); err != nil {
		return err
	}
	for _, a := range v.Attributes {
		if err := a.Validate(); err != nil {
			return err
		}
	}
	for _, t := range v.Targets {
		if err := t.Validate(); err != nil {
			return err
		}
	}
	for _, r := range v.Resources {
		if err := r.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// NewVen is a VEN not yet pushed to the VTN.
type NewVen struct {
	CreationGuard `json:"-"`
	Ven
}

// Validate checks the new VEN.
func (v *NewVen) Validate() error {
	return v.Ven.Validate()
}

// ExistingVen is a VEN retrieved from the VTN.
type ExistingVen struct {
	Ven
	ID                   string    `json:"id"`
	CreatedDateTime      time.Time `json:"createdDateTime"`
	ModificationDateTime time.Time `json:"modificationDateTime"`
}

// Validate checks the existing VEN.
func (v ExistingVen) Validate() error {
	if v.ID == "" {
		return errors.New("existing ven requires an id")
	}
	return v.Ven.Validate()
}

// VenUpdate describes a partial update to an existing VEN. Nil fields
// are left unchanged.
type VenUpdate struct {
	VenName    *string
	Attributes []Attribute
	Targets    []Target
	Resources  []ExistingResource
}

// Update returns a copy of the VEN with the set fields of the update
// applied.
func (v ExistingVen) Update(u VenUpdate) (ExistingVen, error) {
	out := v
	if u.VenName != nil {
		out.VenName = *u.VenName
	}
	if u.Attributes != nil {
		out.Attributes = u.Attributes
	}
	if u.Targets != nil {
		out.Targets = u.Targets
	}
	if u.Resources != nil {
		out.Resources = u.Resources
	}
	if err := out.Validate(); err != nil {
		return ExistingVen{}, fmt.Errorf("apply ven update: %w", err)
	}
	return out, nil
}

// Resource holds the fields shared by new and existing resources of a VEN.
type Resource struct {
	// ResourceName names the resource, for example a device or meter.
	ResourceName string `json:"resourceName"`

	Attributes []Attribute `json:"attributes,omitempty"`
	Targets    []Target    `json:"targets,omitempty"`
}

// Validate checks the constraints shared by all resource variants.
func (r Resource) Validate() error {
	if err := nameLen("resourceName", r.ResourceName); err != nil {
		return err
	}
	for _, a := range r.Attributes {
		if err := a.Validate(); err != nil {
			return err
		}
	}
	for _, t := range r.Targets {
		if err := t.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// NewResource is a resource not yet pushed to the VTN.
type NewResource struct {
	CreationGuard `json:"-"`
	Resource
}

// Validate checks the new resource.
func (r *NewResource) Validate() error {
	return r.Resource.Validate()
}

// ExistingResource is a resource retrieved from the VTN.
type ExistingResource struct {
	Resource
	ID                   string    `json:"id"`
	VenID                string    `json:"venID,omitempty"`
	CreatedDateTime      time.Time `json:"createdDateTime"`
	ModificationDateTime time.Time `json:"modificationDateTime"`
}

// Validate checks the existing resource.
func (r ExistingResource) Validate() error {
	if r.ID == "" {
		return errors.New("existing resource requires an id")
	}
	return r.Resource.Validate()
}

// ResourceUpdate describes a partial update to an existing resource.
type ResourceUpdate struct {
	ResourceName *string
	Attributes   []Attribute
	Targets      []Target
}

// Update returns a copy of the resource with the set fields of the
// update applied.
func (r ExistingResource) Update(u ResourceUpdate) (ExistingResource, error) {
	out := r
	if u.ResourceName != nil {
		out.ResourceName = *u.ResourceName
	}
	if u.Attributes != nil {
		out.Attributes = u.Attributes
	}
	if u.Targets != nil {
		out.Targets = u.Targets
	}
	if err := out.Validate(); err != nil {
		return ExistingResource{}, fmt.Errorf("apply resource update: %w", err)
	}
	return out, nil
}
