package model

import "errors"

// ValueMap is one or more values associated with a specific type string.
type ValueMap struct {
	Type   string  `json:"type"`
	Values []Value `json:"values"`
}

// Validate checks the value map.
func (m ValueMap) Validate() error {
	if m.Type == "" {
		return errors.New("value map requires a type")
	}
	return nil
}

// Target narrows the objects an event, program, ven, or subscription
// applies to.
type Target = ValueMap

// Attribute describes a capability of a ven or resource.
type Attribute = ValueMap
