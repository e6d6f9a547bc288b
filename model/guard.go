package model

import (
	"errors"
	"sync"
	"unicode/utf8"
)

// ErrAlreadyCreated is returned when a New* object is used to create a
// VTN resource more than once.
var ErrAlreadyCreated = errors.New("object has already been created in the VTN")

// CreationGuard enforces that a New* object creates a VTN resource at
// most once. The write clients mark the guard before issuing the create
// request and release it again when the request fails, so the object can
// be retried. Types embedding the guard must be passed by pointer.
type CreationGuard struct {
	mu      sync.Mutex
	created bool
}

// MarkCreated claims the one-shot create. It fails if the object was
// already used to create a resource.
func (g *CreationGuard) MarkCreated() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.created {
		return ErrAlreadyCreated
	}
	g.created = true
	return nil
}

// ReleaseCreated returns the guard to its unused state after a failed
// create request.
func (g *CreationGuard) ReleaseCreated() {
	g.mu.Lock()
	g.created = false
	g.mu.Unlock()
}

// nameLen validates the 1..128 character constraint OpenADR3 places on
// names and identifiers. The limit counts characters, not bytes.
func nameLen(field, value string) error {
	if n := utf8.RuneCountInString(value); n < 1 || n > 128 {
		return errors.New(field + " must be between 1 and 128 characters")
	}
	return nil
}

// optionalNameLen validates the constraint only when the value is set.
func optionalNameLen(field string, value *string) error {
	if value == nil {
		return nil
	}
	return nameLen(field, *value)
}
