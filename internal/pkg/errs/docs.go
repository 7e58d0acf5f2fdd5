// Package errs provides standardized error types for the storefront service.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// The package includes error types for the common failure scenarios:
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value is present but malformed
//   - ValueIsOutOfRangeError: a numeric value is outside its bounds
//   - ObjectNotFoundError: a lookup by identifier found nothing
//   - InvalidTransitionError: a lifecycle state change violates the
//     transition rules for the caller's role
//
// Each error type follows the same pattern: a sentinel error variable for
// classification with errors.Is, a struct carrying the details, constructor
// functions with and without cause, an Error() formatter, and Unwrap()
// support. Callers classify errors by sentinel rather than by string
// matching.
package errs
