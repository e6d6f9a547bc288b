package model

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

// ObjectType enumerates the object types of OpenADR 3.
type ObjectType string

const (
	ObjectProgram      ObjectType = "PROGRAM"
	ObjectEvent        ObjectType = "EVENT"
	ObjectReport       ObjectType = "REPORT"
	ObjectSubscription ObjectType = "SUBSCRIPTION"
	ObjectVen          ObjectType = "VEN"
	ObjectResource     ObjectType = "RESOURCE"
)

// Operation enumerates the operations of OpenADR 3.
type Operation string

const (
	OperationGet    Operation = "GET"
	OperationPost   Operation = "POST"
	OperationPut    Operation = "PUT"
	OperationDelete Operation = "DELETE"
)

// ObjectOperation couples the objects and operations that trigger a
// subscription callback with its delivery endpoint.
type ObjectOperation struct {
	Objects    []ObjectType `json:"objects"`
	Operations []Operation  `json:"operations"`

	// CallbackURL receives the notification.
	CallbackURL string `json:"callbackUrl"`

	// BearerToken is a user provided token the VTN presents on callback
	// requests, so callback endpoints can authenticate the VTN without a
	// custom integration.
	BearerToken string `json:"bearerToken,omitempty"`
}

// Validate checks the object operation.
func (o ObjectOperation) Validate() error {
	if len(o.Objects) == 0 {
		return errors.New("object operation must contain at least one object")
	}
	if len(o.Operations) == 0 {
		return errors.New("object operation must contain at least one operation")
	}
	u, err := url.Parse(o.CallbackURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("callback URL %q is not a valid URL", o.CallbackURL)
	}
	return nil
}

// Subscription holds the fields shared by new and existing subscriptions.
type Subscription struct {
	// ClientName names the subscribing client.
	ClientName string `json:"clientName"`

	// ProgramID identifies the program the subscription applies to.
	ProgramID string `json:"programID"`

	ObjectOperations []ObjectOperation `json:"objectOperations"`
	Targets          []Target          `json:"targets,omitempty"`
}

// Validate checks the constraints shared by all subscription variants.
func (s Subscription) Validate() error {
	if err := nameLen("clientName", s.ClientName); err != nil {
		return err
	}
	if err := nameLen("programID", s.ProgramID); err != nil {
		return err
	}
	if len(s.ObjectOperations) == 0 {
		return errors.New("subscription must contain at least one object operation")
	}
	for _, op := range s.ObjectOperations {
		if err := op.Validate(); err != nil {
			return err
		}
	}
	for _, t := range s.Targets {
		if err := t.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// NewSubscription is a subscription not yet pushed to the VTN.
type NewSubscription struct {
	CreationGuard `json:"-"`
	Subscription
}

// Validate checks the new subscription.
func (s *NewSubscription) Validate() error {
	return s.Subscription.Validate()
}

// ExistingSubscription is a subscription retrieved from the VTN.
type ExistingSubscription struct {
	Subscription
	ID                   string    `json:"id"`
	CreatedDateTime      time.Time `json:"createdDateTime"`
	ModificationDateTime time.Time `json:"modificationDateTime"`
}

// Validate checks the existing subscription.
func (s ExistingSubscription) Validate() error {
	if s.ID == "" {
		return errors.New("existing subscription requires an id")
	}
	return s.Subscription.Validate()
}

// SubscriptionUpdate describes a partial update to an existing
// subscription. Nil fields are left unchanged.
type SubscriptionUpdate struct {
	ClientName       *string
	ProgramID        *string
	ObjectOperations []ObjectOperation
	Targets          []Target
}

// Update returns a copy of the subscription with the set fields of the
// update applied.
func (s ExistingSubscription) Update(u SubscriptionUpdate) (ExistingSubscription, error) {
	out := s
	if u.ClientName != nil {
		out.ClientName = *u.ClientName
	}
	if u.ProgramID != nil {
		out.ProgramID = *u.ProgramID
	}
	if u.ObjectOperations != nil {
		out.ObjectOperations = u.ObjectOperations
	}
	if u.Targets != nil {
		out.Targets = u.Targets
	}
	if err := out.Validate(); err != nil {
		return ExistingSubscription{}, fmt.Errorf("apply subscription update: %w", err)
	}
	return out, nil
}
