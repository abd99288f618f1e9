package shared

import (
	"github.com/samber/oops"
)

// Error codes for the persistence adapter. Run-time failures originate at the
// document database boundary and are passed through carrying one of these
// categories; the only locally-produced errors are argument validation.
const (
	CodeInvalidArgument = "INVALID_ARGUMENT"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "ALREADY_EXISTS"
	CodeUnavailable     = "UNAVAILABLE"
)

// ErrInvalidArgument reports a null or blank required input.
func ErrInvalidArgument(msg string) error {
	return oops.
		Code(CodeInvalidArgument).
		In("identity").
		Errorf("%s", msg)
}

// ErrInvalidArgumentf is ErrInvalidArgument with a formatted message.
func ErrInvalidArgumentf(format string, args ...interface{}) error {
	return oops.
		Code(CodeInvalidArgument).
		In("identity").
		Errorf(format, args...)
}

// ErrNotFound reports an absent record on a point operation.
func ErrNotFound(resource string) error {
	return oops.
		Code(CodeNotFound).
		In("identity").
		Errorf("%s not found", resource)
}

// ErrConflict reports a duplicate-id creation.
func ErrConflict(resource string) error {
	return oops.
		Code(CodeConflict).
		In("identity").
		Errorf("%s already exists", resource)
}

// WrapConflict tags a document-client duplicate-key failure.
func WrapConflict(err error, resource string) error {
	return oops.
		Code(CodeConflict).
		In("identity").
		Wrapf(err, "%s already exists", resource)
}

// WrapUnavailable tags a document-client transport or service failure.
func WrapUnavailable(err error, op string) error {
	return oops.
		Code(CodeUnavailable).
		In("identity").
		Wrapf(err, "%s failed", op)
}

// WrapNotFound tags a document-client miss on a point operation.
func WrapNotFound(err error, resource string) error {
	return oops.
		Code(CodeNotFound).
		In("identity").
		Wrapf(err, "%s not found", resource)
}

func hasCode(err error, code string) bool {
	oerr, ok := oops.AsOops(err)
	return ok && oerr.Code() == code
}

// IsInvalidArgument reports whether err is an argument validation failure.
func IsInvalidArgument(err error) bool {
	return hasCode(err, CodeInvalidArgument)
}

// IsNotFound reports whether err is an absent-record failure.
func IsNotFound(err error) bool {
	return hasCode(err, CodeNotFound)
}

// IsConflict reports whether err is a duplicate-record failure.
func IsConflict(err error) bool {
	return hasCode(err, CodeConflict)
}

// IsUnavailable reports whether err is a transport or service failure.
func IsUnavailable(err error) bool {
	return hasCode(err, CodeUnavailable)
}
