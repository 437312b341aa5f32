package auth

import (
	"errors"
	"strings"

	"github.com/myjarvis/auth-api/provider"
)

// Operation identifies which facade call a provider error came from. The
// same provider error class maps to different domain kinds depending on the
// operation being attempted.
type Operation string

const (
	OpRegister      Operation = "register"
	OpLogin         Operation = "login"
	OpLogout        Operation = "logout"
	OpRefresh       Operation = "refresh"
	OpResetPassword Operation = "reset_password"
	OpVerify        Operation = "verify"
)

// translation is one row of the keyword table. Rows are checked in order
// before the per-operation fallbacks, because patterns overlap: "email not
// confirmed" has to win over the generic login failure.
type translation struct {
	op      Operation
	keyword string
	kind    Kind
	message string
}

var translations = []translation{
	{op: OpRegister, keyword: "already registered", kind: KindAlreadyExists, message: "User with this email already exists"},
	{op: OpRegister, keyword: "already exists", kind: KindAlreadyExists, message: "User with this email already exists"},
	{op: OpLogin, keyword: "email not confirmed", kind: KindEmailNotConfirmed, message: "Email not confirmed. Please check your inbox."},
}

// Translate converts a raw provider error into exactly one domain error.
// This is the only place provider errors are inspected; everything
// downstream operates purely on *Error. A nil result means the operation
// swallows provider failures by contract (logout).
func Translate(op Operation, err error) error {
	if err == nil {
		return nil
	}

	message := strings.ToLower(providerMessage(err))
	for _, rule := range translations {
		if rule.op != op {
			continue
		}
		if strings.Contains(message, rule.keyword) {
			return NewError(rule.kind, rule.message)
		}
	}

	switch op {
	case OpRegister:
		// The provider's sign-up messages are user-facing ("Password should
		// be at least 6 characters") and safe to forward. Transport failures
		// are not; those get the bare message.
		var apiErr *provider.APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			return NewError(KindAuthenticationFailure, "Failed to register user: "+apiErr.Message)
		}
		return NewError(KindAuthenticationFailure, "Failed to register user.")
	case OpLogin:
		// Never echo the provider's own text: a distinguishable message
		// would reveal whether the email is registered.
		return NewError(KindAuthenticationFailure, "email or password is incorrect. Please try again.")
	case OpRefresh:
		return NewError(KindInvalidToken, "Refresh token is invalid or expired. Please login again.")
	case OpVerify:
		return NewError(KindInvalidToken, "Token is invalid or expired.")
	case OpLogout, OpResetPassword:
		// The caller always observes success for these operations.
		return nil
	}

	// An unrecognized operation still resolves to a kind rather than letting
	// a raw provider error through.
	if tokenOperation(op) {
		return NewError(KindInvalidToken, "Token is invalid or expired.")
	}
	return NewError(KindAuthenticationFailure, "Authentication failed.")
}

func tokenOperation(op Operation) bool {
	switch op {
	case OpLogout, OpRefresh, OpVerify:
		return true
	}
	return false
}

// providerMessage pulls the provider's own message text out of err. For
// transport-level failures there is no provider message, so the generic
// error text feeds the keyword table and falls through to the fallback kind.
func providerMessage(err error) string {
	var apiErr *provider.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
