// Package domain holds the pure types of the Exhale core.
// No infrastructure imports — the app layer depends on these types and
// the infra layer maps them to storage.
package domain

import "time"

// ─── Trigger / Emotional State Enums ────────────────────────────────────────

// Trigger is a situational smoking trigger selected during onboarding
// or attached to a logged event.
type Trigger string

const (
	TriggerStress  Trigger = "stress"
	TriggerBoredom Trigger = "boredom"
	TriggerSocial  Trigger = "social"
	TriggerHabit   Trigger = "habit"
	TriggerOther   Trigger = "other"
)

// EmotionalState is a self-reported emotional state from onboarding.
type EmotionalState string

const (
	StateStressed EmotionalState = "stressed"
	StateAnxious  EmotionalState = "anxious"
	StateAngry    EmotionalState = "angry"
	StateSad      EmotionalState = "sad"
	StateBored    EmotionalState = "bored"
	StateLonely   EmotionalState = "lonely"
	StateHappy    EmotionalState = "happy"
	StateExcited  EmotionalState = "excited"
)

// Archetype is one of four behavioral-pattern labels describing the
// user's dominant smoking trigger profile.
type Archetype string

const (
	ArchetypeEscapist      Archetype = "escapist"
	ArchetypeStressReactor Archetype = "stress_reactor"
	ArchetypeSocialMirror  Archetype = "social_mirror"
	ArchetypeAutoPilot     Archetype = "autopilot"
)

// ─── User Profile ───────────────────────────────────────────────────────────

// UserProfile is the one-per-user quit profile.
// QuitDate is zero while onboarding is in progress — callers must treat
// that as "no progress yet", never as an error.
type UserProfile struct {
	UserID           string           `json:"user_id"`
	Name             string           `json:"name"`
	QuitDate         time.Time        `json:"quit_date,omitzero"`
	DailyConsumption float64          `json:"daily_consumption"` // cigarettes/day before quitting
	Triggers         []Trigger        `json:"triggers"`
	EmotionalStates  []EmotionalState `json:"emotional_states"`
	Archetype        Archetype        `json:"archetype,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// HasQuitDate reports whether onboarding has produced a real quit date.
func (p UserProfile) HasQuitDate() bool {
	return !p.QuitDate.IsZero()
}
