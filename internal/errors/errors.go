package errors

import (
	"errors"
	"fmt"
)

// Error is a failed request for a remote page.
//
// Status is the HTTP status the server answered with, or zero when the request
// never completed (DNS, connection refused, timeout, too many redirects).
type Error struct {
	URL    string
	Status int
	Err    error // The error this wraps
}

// URL tags a string passed to [E] as the location that was requested.
type URL string

func (e *Error) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("fetching %s: %s", e.URL, e.Err)
	}

	return fmt.Sprintf("fetching %s: status %d: %s", e.URL, e.Status, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// E builds an [Error] out of whatever it's handed:
// a string or error becomes the cause, an int the status, a [URL] the location.
func E(args ...any) *Error {
	ret := &Error{}

	for _, arg := range args {
		switch arg := arg.(type) {
		case string:
			ret.Err = errors.New(arg)
		case error:
			ret.Err = arg
		case int:
			ret.Status = arg
		case URL:
			ret.URL = string(arg)
		}
	}

	if ret.Err == nil {
		ret.Err = errors.New("request failed")
	}

	return ret
}

// StatusOf digs out the HTTP status of a wrapped [Error], or zero if there isn't one.
func StatusOf(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return 0
	}

	return e.Status
}
