package vtn

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Problem is the RFC 7807 style error body OpenADR3 VTNs return on
// failed requests.
type Problem struct {
	Type   string `json:"type,omitempty"`
	Title  string `json:"title,omitempty"`
	Status int    `json:"status,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// StatusError is returned when the VTN answers with a non-success
// status. It carries the decoded problem body when one was present.
type StatusError struct {
	Op         string
	StatusCode int
	Problem    *Problem
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: vtn returned status %d", e.Op, e.StatusCode)
	if e.Problem != nil {
		if e.Problem.Title != "" {
			b.WriteString(": " + e.Problem.Title)
		}
		if e.Problem.Detail != "" {
			b.WriteString(": " + e.Problem.Detail)
		}
	}
	return b.String()
}

// IsNotFound reports whether the error is a VTN 404 response.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}
