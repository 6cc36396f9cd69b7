package repository

import "errors"

// ErrNotFound is wrapped with the entity kind when a lookup matches no row.
var ErrNotFound = errors.New("not found")
