package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnsupportedTable indicates a sync request named a table outside the supported set.
var ErrUnsupportedTable = errors.New("unsupported table")

// ErrForbidden indicates an attempt to touch a resource owned by another user.
var ErrForbidden = errors.New("resource does not belong to user")
