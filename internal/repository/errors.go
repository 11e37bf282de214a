package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrSelfFollow is returned when a user tries to follow themselves.
	ErrSelfFollow = errors.New("cannot follow yourself")

	// ErrNotOwner is returned when a mutation targets a row the caller
	// does not own.
	ErrNotOwner = errors.New("not the owner of this record")

	// ErrBadTarget is returned when a like targets neither a video nor a
	// comment, or both.
	ErrBadTarget = errors.New("exactly one of video or comment must be targeted")
)

// isNotFound checks if the error is GORM's record-not-found.
func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// isUniqueViolation reports whether err is a unique-constraint violation.
// Requires gorm's TranslateError, which pkg/database enables.
func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
