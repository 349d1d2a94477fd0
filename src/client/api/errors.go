package api

import (
	"fmt"
	"net/http"
)

// TransportError is returned when a request could not be completed or the
// server answered with a non-2xx status.
type TransportError struct {
	// StatusCode is 0 when no response was received
	StatusCode int
	URL        string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("response status code does not indicate success: %d (%s)",
		e.StatusCode, http.StatusText(e.StatusCode))
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError is returned when a response body does not contain a usable
// character or result set.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	msg := "an error occurred while deserializing the result received from the Star Wars API"
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
