package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrConflict indicates the resource is not in a state that permits the
// requested operation (e.g. a status precondition did not hold).
var ErrConflict = errors.New("resource state conflict")

// ErrForbidden indicates the caller is not permitted to perform the action.
var ErrForbidden = errors.New("forbidden")
