package models

import "errors"

// ErrorKind classifies why a read produced no value.
type ErrorKind string

const (
	KindNone                 ErrorKind = ""
	KindCommunicationFailure ErrorKind = "COMMUNICATION_FAILURE"
	KindUnauthorized         ErrorKind = "UNAUTHORIZED"
	KindResourceUnavailable  ErrorKind = "RESOURCE_UNAVAILABLE"
)

// HAP status codes the host reports for each kind.
const (
	hapCommunicationFailure      = -70402
	hapResourceBusy              = -70403
	hapInsufficientAuthorization = -70411
)

var (
	ErrCommunicationFailure = errors.New("service communication failure")
	ErrUnauthorized         = errors.New("insufficient authorization")
	ErrResourceUnavailable  = errors.New("resource unavailable")
)

// HAPStatus returns the accessory protocol status code for k, or 0 for KindNone.
func (k ErrorKind) HAPStatus() int {
	switch k {
	case KindCommunicationFailure:
		return hapCommunicationFailure
	case KindUnauthorized:
		return hapInsufficientAuthorization
	case KindResourceUnavailable:
		return hapResourceBusy
	default:
		return 0
	}
}

// Err returns the sentinel error for k, or nil for KindNone.
func (k ErrorKind) Err() error {
	switch k {
	case KindCommunicationFailure:
		return ErrCommunicationFailure
	case KindUnauthorized:
		return ErrUnauthorized
	case KindResourceUnavailable:
		return ErrResourceUnavailable
	default:
		return nil
	}
}

// KindOf classifies err. Errors outside the taxonomy count as communication failures.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	case errors.Is(err, ErrResourceUnavailable):
		return KindResourceUnavailable
	default:
		return KindCommunicationFailure
	}
}
