package auth

import "errors"

// Kind identifies one failure class in the closed domain error set. New
// kinds are a design decision, not an ad hoc string comparison at a call
// site.
type Kind string

const (
	KindAuthenticationFailure Kind = "authentication_failure"
	KindAuthorizationFailure  Kind = "authorization_failure"
	KindAlreadyExists         Kind = "already_exists"
	KindEmailNotConfirmed     Kind = "email_not_confirmed"
	KindInvalidToken          Kind = "invalid_token"
	KindNotFound              Kind = "not_found"
	KindValidationFailure     Kind = "validation_failure"
	KindUnauthorized          Kind = "unauthorized"
)

// Error is the transport-agnostic failure representation used everywhere
// downstream of the provider error translation. Message is forwarded
// verbatim to HTTP clients, so it must never contain provider internals.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// NewError builds a domain error of the given kind.
func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// KindOf extracts the domain kind from err. ok is false when err is not a
// domain error (an unexpected failure that must surface as a 500).
func KindOf(err error) (Kind, bool) {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Kind, true
	}
	return "", false
}
