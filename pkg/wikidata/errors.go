package wikidata

import (
	"errors"
	"fmt"
)

var (
	// ErrEntityNotFound is returned when the data source has no record for
	// the requested id.
	ErrEntityNotFound = errors.New("entity not found")

	// ErrMalformedClaim is returned when a statement does not reference an
	// entity.
	ErrMalformedClaim = errors.New("malformed claim")
)

// FetchError reports a non-success response from the data source.
type FetchError struct {
	ID         string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		if e.Err != nil {
			return fmt.Sprintf("fetch %s: status %d: %v", e.ID, e.StatusCode, e.Err)
		}
		return fmt.Sprintf("fetch %s: status %d", e.ID, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.ID, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Temporary reports whether retrying the request may succeed.
func (e *FetchError) Temporary() bool {
	if errors.Is(e.Err, ErrEntityNotFound) {
		return false
	}
	return e.StatusCode == 0 || e.StatusCode == 429 || e.StatusCode >= 500
}
