package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("Given Param is not valid")
	// ErrInvalidSignature will throw if a signature does not match its signer
	ErrInvalidSignature = errors.New("Invalid signature")

	// ErrInvalidServerResponse is returned when a signable response lacks a
	// field the signed submission needs. Nothing has been signed at that point.
	ErrInvalidServerResponse = errors.New("invalid response from signable transfer details")
	// ErrSigningFailure matches every SigningError
	ErrSigningFailure = errors.New("signing failure")
	// ErrTransportFailure matches every TransportError
	ErrTransportFailure = errors.New("transport failure")
)

// SigningError reports a primary or derived credential that could not sign.
type SigningError struct {
	Op  string
	Err error
}

func (e *SigningError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrSigningFailure, e.Op, e.Err)
}

func (e *SigningError) Unwrap() error {
	return e.Err
}

func (e *SigningError) Is(target error) bool {
	return target == ErrSigningFailure
}

// TransportError reports a remote call that failed on the network or with a
// non-success status. StatusCode is zero when no response was received.
type TransportError struct {
	Op         string
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *TransportError) Error() string {
	switch {
	case e.Err == nil:
		return fmt.Sprintf("%s: %s: status %d: %s %s", ErrTransportFailure, e.Op, e.StatusCode, e.Code, e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: %s: status %d: %v", ErrTransportFailure, e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", ErrTransportFailure, e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransportFailure
}
