// Package errs provides standardized error types for the agromarket application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package covers the error taxonomy the core reports to callers:
//   - ValueIsRequiredError / ValueIsInvalidError: validation failures, detected
//     before any mutation is attempted
//   - ObjectNotFoundError: a referenced entity is absent
//   - NotAuthorizedError: actor/role/ownership mismatch
//   - ConflictError / InsufficientStockError: a state precondition failed at
//     the moment of the conditional update
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrConflict)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is classifies against the sentinel
//
// InsufficientStockError additionally unwraps to ErrConflict through
// ErrInsufficientStock, so callers that only distinguish conflicts keep
// working while callers that need the remaining amount can assert the
// concrete type.
package errs
