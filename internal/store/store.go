// Package store is the persistence layer: users, products and orders on top
// of gorm. Sentinel errors are mapped to HTTP codes at the handler boundary.
package store

import "errors"

var (
	ErrDuplicateEmail = errors.New("email already registered")
	ErrNotFound       = errors.New("not found")
)
