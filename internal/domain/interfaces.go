package domain

import "time"

// ─── Record Store Contract ──────────────────────────────────────────────────
// RecordStore is the only boundary the core depends on. Infrastructure
// implements it; the app layer receives it explicitly — never as ambient
// global state — so the pure core stays testable in isolation.

// RecordStore abstracts persistent entity storage for profiles, events,
// progress snapshots, and achievements.
//
// Lookup methods return (nil, nil) when the entity is absent; "no rows"
// is a value, not an error. CountEvents returns 0 for a user with no
// events.
type RecordStore interface {
	// GetProfile returns the user's profile, or nil if none exists.
	GetProfile(userID string) (*UserProfile, error)

	// PutProfile creates or overwrites the user's profile.
	PutProfile(p UserProfile) error

	// InsertEvent appends a craving/slip event. Events are immutable.
	InsertEvent(e CravingEvent) error

	// CountEvents returns the number of events of the given type.
	CountEvents(userID string, typ EventType) (int, error)

	// ListRecentEvents returns the newest events first, at most limit.
	ListRecentEvents(userID string, limit int) ([]CravingEvent, error)

	// GetStats returns the persisted snapshot, or nil if never calculated.
	GetStats(userID string) (*ProgressStats, error)

	// UpsertStats overwrites the single per-user stats row (last write wins).
	UpsertStats(userID string, calc ProgressCalculation, at time.Time) (*ProgressStats, error)

	// ListAchievementCatalog returns all definitions, ascending by
	// requirement value then key. The order is the evaluation order.
	ListAchievementCatalog() ([]AchievementDef, error)

	// ListUnlockedKeys returns the set of achievement keys the user holds.
	ListUnlockedKeys(userID string) (map[string]bool, error)

	// UnlockAchievement records an unlock. Returns false if the key was
	// already unlocked (idempotent — duplicates are silently absorbed).
	UnlockAchievement(userID, key string, at time.Time) (bool, error)

	// ListUserAchievements returns the user's unlocks, newest first.
	ListUserAchievements(userID string) ([]UserAchievement, error)
}
