package pokeapi

import (
	"errors"
	"fmt"
	"net"
)

var (
	errEmptySegment = errors.New("no trailing path segment")
	errNotPositive  = errors.New("identifier must be positive")
)

// NetworkError reports a transport-level failure: timeout, DNS, refused or
// reset connections, or a body that could not be read.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Timeout reports whether the underlying failure was a timeout.
func (e *NetworkError) Timeout() bool {
	var ne net.Error
	return errors.As(e.Err, &ne) && ne.Timeout()
}

// NotFoundError reports a 404 from the catalog.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// StatusError reports any other non-success HTTP status.
type StatusError struct {
	Resource string
	Status   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api %s returned status %d", e.Resource, e.Status)
}

// DecodeError reports a response body that does not match the expected shape.
type DecodeError struct {
	Resource string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s response: %v", e.Resource, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ParseError reports an identifier that could not be extracted from a URL.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse id from %q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
