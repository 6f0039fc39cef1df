package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the error kinds used across the application.
// Handlers classify failures with errors.Is against these values.
var (
	// ErrValueIsRequired indicates a required value is missing.
	ErrValueIsRequired = errors.New("value is required")

	// ErrValueIsInvalid indicates a value is malformed or violates a business rule.
	ErrValueIsInvalid = errors.New("value is invalid")

	// ErrValueIsOutOfRange indicates a value falls outside its allowed bounds.
	ErrValueIsOutOfRange = errors.New("value is out of range")

	// ErrObjectNotFound indicates a referenced entity does not exist.
	ErrObjectNotFound = errors.New("object not found")

	// ErrNotAuthorized indicates the acting subject is not allowed to perform
	// the operation on the target entity.
	ErrNotAuthorized = errors.New("not authorized")

	// ErrConflict indicates a state precondition did not hold at the moment
	// the change was applied: wrong current status, an assignment already
	// claimed, a duplicate signature. Conflicts are never retried by the
	// core; the caller decides.
	ErrConflict = errors.New("state conflict")

	// ErrInsufficientStock is a conflict raised when a reservation asks for
	// more than the listing still has available. It unwraps to ErrConflict.
	ErrInsufficientStock = fmt.Errorf("insufficient stock: %w", ErrConflict)
)

// sanitize flattens an error message to a single line for log safety.
func sanitize(s string) string {
	return strings.ReplaceAll(s, "\n", " ")
}

// ValueIsRequiredError reports a missing required value.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates an error for a missing value.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates an error for a missing value with an underlying cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName))
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ValueIsInvalidError reports a malformed or rule-breaking value.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates an error for an invalid value.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates an error for an invalid value with an underlying cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName))
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError reports a value outside its allowed bounds.
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

// NewValueIsOutOfRangeError creates an error for an out-of-range value.
func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

// NewValueIsOutOfRangeErrorWithCause creates an out-of-range error with an underlying cause.
func NewValueIsOutOfRangeErrorWithCause(
	paramName string, value, minValue, maxValue any, cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %v is %s, min value is %v, max value is %v (cause: %s)",
			ErrValueIsInvalid, e.Value, e.ParamName, e.Min, e.Max, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %v is %s, min value is %v, max value is %v",
		ErrValueIsInvalid, e.Value, e.ParamName, e.Min, e.Max))
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ObjectNotFoundError reports a referenced entity that does not exist.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an error for a missing entity.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates a missing-entity error with an underlying cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrObjectNotFound, e.ParamName, e.ID, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// NotAuthorizedError reports an actor attempting an operation it does not own.
type NotAuthorizedError struct {
	SubjectID string
	Action    string
	Cause     error
}

// NewNotAuthorizedError creates an error for an actor/ownership mismatch.
func NewNotAuthorizedError(subjectID, action string) *NotAuthorizedError {
	return &NotAuthorizedError{SubjectID: subjectID, Action: action}
}

// NewNotAuthorizedErrorWithCause creates an authorization error with an underlying cause.
func NewNotAuthorizedErrorWithCause(subjectID, action string, cause error) *NotAuthorizedError {
	return &NotAuthorizedError{SubjectID: subjectID, Action: action, Cause: cause}
}

func (e *NotAuthorizedError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: subject %s may not %s (cause: %s)",
			ErrNotAuthorized, e.SubjectID, e.Action, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: subject %s may not %s", ErrNotAuthorized, e.SubjectID, e.Action))
}

func (e *NotAuthorizedError) Unwrap() error {
	return ErrNotAuthorized
}

// ConflictError reports a state precondition that did not hold when the
// change was applied. The conditional-update discipline guarantees the
// failed operation had no side effects.
type ConflictError struct {
	ParamName string
	Detail    string
	Cause     error
}

// NewConflictError creates an error for a failed state precondition.
func NewConflictError(paramName, detail string) *ConflictError {
	return &ConflictError{ParamName: paramName, Detail: detail}
}

// NewConflictErrorWithCause creates a conflict error with an underlying cause.
func NewConflictErrorWithCause(paramName, detail string, cause error) *ConflictError {
	return &ConflictError{ParamName: paramName, Detail: detail, Cause: cause}
}

func (e *ConflictError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s: %s (cause: %s)", ErrConflict, e.ParamName, e.Detail, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s: %s", ErrConflict, e.ParamName, e.Detail))
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// InsufficientStockError reports a reservation attempt that asked for more
// than a listing still has available. Available carries the resolvable
// remaining amount in kilograms so the caller can act on it.
type InsufficientStockError struct {
	ListingID   string
	RequestedKg int64
	AvailableKg int64
}

// NewInsufficientStockError creates an error naming the remaining available quantity.
func NewInsufficientStockError(listingID string, requestedKg, availableKg int64) *InsufficientStockError {
	return &InsufficientStockError{ListingID: listingID, RequestedKg: requestedKg, AvailableKg: availableKg}
}

func (e *InsufficientStockError) Error() string {
	return sanitize(fmt.Sprintf(
		"insufficient quantity available: listing %s has %d kg available, %d kg requested",
		e.ListingID, e.AvailableKg, e.RequestedKg))
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}
