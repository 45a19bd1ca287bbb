package order

import "errors"

var (
	ErrColumnMismatch      = errors.New("row width does not match sheet header")
	ErrDuplicateSubmission = errors.New("order is already being processed")
)
