package service

import (
	"errors"
	"fmt"
	"time"
)

// Error kinds returned by the service layer. Handlers translate these to
// HTTP statuses; nothing below is fatal to the process.
var (
	// ErrNotFound means the referenced entity is absent or soft-deleted.
	ErrNotFound = errors.New("not found")

	// ErrForbidden means the caller lacks the role or ownership to see or
	// mutate the row. Returned instead of ErrNotFound for rows outside the
	// caller's visible set, so existence is only confirmed to callers that
	// could see the row anyway.
	ErrForbidden = errors.New("forbidden")

	// ErrSchedulingConflict means the requested slot is held by a
	// Pending/Confirmed appointment of the same veterinarian.
	ErrSchedulingConflict = errors.New("scheduling conflict")

	// ErrInvalidTransition means the requested status change is not allowed
	// from the appointment's current state.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrValidation means a malformed or missing field, or a past-dated booking.
	ErrValidation = errors.New("validation failed")

	// ErrEmailTaken means the registration email is already in use.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials means the login email/password pair did not match.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrPetInUse means the pet still has appointments, medical records or
	// expenses referencing it and cannot be deleted.
	ErrPetInUse = errors.New("pet has linked records")

	// ErrStorage wraps persistence-layer failures. Any transaction in
	// flight has been rolled back by the time this is returned.
	ErrStorage = errors.New("storage error")
)

// ConflictError carries the colliding slot so callers can report which
// time is taken. It matches ErrSchedulingConflict under errors.Is.
type ConflictError struct {
	VetID uint
	At    time.Time
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("veterinarian %d already has an appointment at %s", e.VetID, e.At.Format(time.RFC3339))
}

func (e *ConflictError) Unwrap() error {
	return ErrSchedulingConflict
}