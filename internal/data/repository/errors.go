// Package repository translates filme lookups and mutations into SQL.
//
// Conditions the store detects itself are reported through the sentinel
// errors below so callers can tell them apart with errors.Is.
package repository

import "errors"

// ErrNotFound is returned when the target row does not exist.
var ErrNotFound = errors.New("filme not found")

// ErrDuplicateTitle is returned when the unique constraint on titulo rejects
// an insert or update.
var ErrDuplicateTitle = errors.New("filme title already exists")

// ErrImmutable is returned when an update targets a row whose
// disponibilidade is false.
var ErrImmutable = errors.New("filme is not available for updates")

// ErrProtected is returned when a delete targets a row whose nota is at or
// above the protection threshold.
var ErrProtected = errors.New("filme is protected from deletion")
