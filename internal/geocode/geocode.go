// Package geocode resolves free-text addresses to locations and back.
package geocode

import (
	"context"

	"github.com/rotisserie/eris"

	"librarybox.klederson.com/internal/geo"
)

// ErrTransient marks failures worth retrying: transport errors, throttling
// and server-side errors.
var ErrTransient = eris.New("geocode: transient failure")

// Status is the typed outcome of a lookup.
type Status int

const (
	StatusNotFound Status = iota
	StatusFound
)

func (s Status) String() string {
	if s == StatusFound {
		return "found"
	}
	return "not-found"
}

// Candidate is one resolved address.
type Candidate struct {
	Address  string
	Location geo.Location
}

// Result holds zero or more candidates, best first.
type Result struct {
	Status     Status
	Candidates []Candidate
}

// First returns the best candidate, if any.
func (r Result) First() (Candidate, bool) {
	if r.Status != StatusFound || len(r.Candidates) == 0 {
		return Candidate{}, false
	}
	return r.Candidates[0], true
}

// Geocoder resolves addresses. An unmatched address is a StatusNotFound
// result, not an error.
type Geocoder interface {
	Forward(ctx context.Context, address string) (Result, error)
	Reverse(ctx context.Context, loc geo.Location) (Result, error)
}
