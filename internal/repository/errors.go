package repository

import "errors"

var (
	// ErrNotFound indicates the requested row does not exist.
	ErrNotFound = errors.New("repository: record not found")
	// ErrDuplicate indicates an insert violated a unique constraint.
	ErrDuplicate = errors.New("repository: duplicate entry")
)
