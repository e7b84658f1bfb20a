// Package model holds the immutable entity types shared across the catalog,
// registry, resolver and filesystem layers: Photo and Album.
package model

import "errors"

var (
	// ErrInvalidArgument is returned when a constructor is given an empty
	// name or file name.
	ErrInvalidArgument = errors.New("model: invalid argument")
	// ErrNotFound is returned when a lookup by name fails.
	ErrNotFound = errors.New("model: not found")
)
