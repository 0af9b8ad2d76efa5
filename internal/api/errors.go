package api

import "fmt"

// TransportError means no HTTP response was obtained at all: DNS failure,
// connection refused, timeout. Callers can offer a different message for
// these than for service rejections.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ServiceError is a non-2xx response from the content service, carrying the
// service-provided message when one was present in the body.
type ServiceError struct {
	Status  int
	Message string
}

func (e *ServiceError) Error() string { return e.Message }

// NotFoundError reports that a requested story does not exist.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("story %s not found", e.ID)
}
