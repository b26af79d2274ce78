package domain

import "time"

// ─── Achievement Types ──────────────────────────────────────────────────────

// Tier groups achievements by prestige. Informational only — it never
// affects qualification.
type Tier string

const (
	TierBronze   Tier = "bronze"
	TierSilver   Tier = "silver"
	TierGold     Tier = "gold"
	TierPlatinum Tier = "platinum"
)

// RequirementType selects which statistic an achievement is checked against.
type RequirementType string

const (
	// ReqDaysStreak qualifies when days smoke-free reaches the threshold.
	ReqDaysStreak RequirementType = "days_streak"
	// ReqCravingsResisted qualifies when the resisted-craving count
	// reaches the threshold.
	ReqCravingsResisted RequirementType = "cravings_resisted"
	// ReqSessionsCompleted also checks days smoke-free. Inherited
	// approximation: the catalog predates a real completed-session count,
	// and changing it would alter which users have historically unlocked
	// what. TODO: plumb an actual session count once session tracking lands.
	ReqSessionsCompleted RequirementType = "sessions_completed"
)

// AchievementDef is a static catalog entry.
type AchievementDef struct {
	Key              string          `json:"key"`
	Title            string          `json:"title"`
	Description      string          `json:"description"`
	Tier             Tier            `json:"tier"`
	RequirementType  RequirementType `json:"requirement_type"`
	RequirementValue int             `json:"requirement_value"`
}

// UserAchievement records a single unlock. At most one exists per
// (user, achievement key) pair.
type UserAchievement struct {
	UserID     string    `json:"user_id"`
	Key        string    `json:"key"`
	UnlockedAt time.Time `json:"unlocked_at"`
	Notified   bool      `json:"notified"`
}

// ─── Notification Types ─────────────────────────────────────────────────────

// NotificationType categorizes notifications.
type NotificationType string

const (
	NotifyAchievement NotificationType = "achievement"
	NotifyMilestone   NotificationType = "milestone"
)

// Notification is a user-facing message recorded for the embedding shell
// to deliver. Exhale never pushes anything itself.
type Notification struct {
	ID        int64            `json:"id"`
	UserID    string           `json:"user_id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Body      string           `json:"body"`
	CreatedAt time.Time        `json:"created_at"`
	Shown     bool             `json:"shown"`
}

// NotificationPolicy governs how often notifications are recorded.
type NotificationPolicy struct {
	MaxPerDay  int    `json:"max_per_day"`
	QuietStart string `json:"quiet_start"` // "22:00"
	QuietEnd   string `json:"quiet_end"`   // "08:00"
}

// DefaultNotificationPolicy returns the shipping policy: at most one
// notification per day, none overnight.
func DefaultNotificationPolicy() NotificationPolicy {
	return NotificationPolicy{
		MaxPerDay:  1,
		QuietStart: "22:00",
		QuietEnd:   "08:00",
	}
}
