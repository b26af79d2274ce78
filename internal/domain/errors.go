package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency.

var (
	// Profile errors
	ErrProfileNotFound = errors.New("profile not found")

	// Event errors
	ErrInvalidEventType = errors.New("event type must be craving or slip")
	ErrInvalidIntensity = errors.New("event intensity must be between 1 and 5")

	// Store errors.
	// ErrDataUnavailable marks a degraded read: the record store could not
	// be reached and the caller substituted a safe zero value. Callers
	// distinguish "genuinely zero" from "fetch failed" with errors.Is.
	ErrDataUnavailable = errors.New("record store unavailable")

	// Achievement errors
	ErrAchievementNotFound = errors.New("achievement not found")
	ErrPartialUnlock       = errors.New("some achievement unlocks failed")
)
