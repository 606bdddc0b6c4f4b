package services

import "errors"

// Operation errors. Services guarantee that no partial state change is left
// behind when one of these is returned: every mutating operation runs inside
// a transaction.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrIllegalState    = errors.New("illegal state")
	ErrNotFound        = errors.New("not found")
)
