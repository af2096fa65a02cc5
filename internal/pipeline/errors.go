// Package pipeline drives the lead extraction run: discover candidates,
// fetch pages, extract and classify contacts, score, deduplicate, and
// serialize the export artifact.
package pipeline

import "fmt"

// InputError reports a missing or malformed keyword/URL. Surfaced
// immediately; no pipeline work is performed.
type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("input error: %s", e.Message)
}

// UnavailableError reports that an upstream resource (search engine, browser
// session) could not be acquired at all. Fatal for the run; the internal
// detail is logged, not exposed to callers.
type UnavailableError struct {
	Message string
	Cause   error
}

func (e *UnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("upstream unavailable: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("upstream unavailable: %s", e.Message)
}

func (e *UnavailableError) Unwrap() error {
	return e.Cause
}

// TimeoutError reports that the run exceeded its wall-clock budget before
// producing any results. Runs that gathered partial results return them with
// a truncation flag instead.
type TimeoutError struct {
	Message string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("run timeout: %s", e.Message)
}
