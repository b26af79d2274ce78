package sqlite

import (
	"database/sql"
	"strings"
	"time"

	"github.com/exhale-health/exhale/internal/domain"
)

// ─── Profile Repository ─────────────────────────────────────────────────────

// PutProfile inserts or updates a user's quit profile.
// Negative daily consumption is clamped to zero rather than rejected —
// user-visible stats must never go negative.
func (d *DB) PutProfile(p domain.UserProfile) error {
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	if p.DailyConsumption < 0 {
		p.DailyConsumption = 0
	}

	_, err := d.db.Exec(
		`INSERT INTO profiles (user_id, name, quit_date, daily_consumption, triggers, emotional_states, archetype, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
			name=excluded.name,
			quit_date=excluded.quit_date,
			daily_consumption=excluded.daily_consumption,
			triggers=excluded.triggers,
			emotional_states=excluded.emotional_states,
			archetype=excluded.archetype,
			updated_at=excluded.updated_at`,
		p.UserID, p.Name, nullableUnix(p.QuitDate), p.DailyConsumption,
		joinTriggers(p.Triggers), joinStates(p.EmotionalStates),
		string(p.Archetype), p.CreatedAt.Unix(), p.UpdatedAt.Unix(),
	)
	return err
}

// GetProfile retrieves a user's profile. Returns nil if none exists.
func (d *DB) GetProfile(userID string) (*domain.UserProfile, error) {
	row := d.db.QueryRow(
		`SELECT user_id, name, quit_date, daily_consumption, triggers, emotional_states, archetype, created_at, updated_at
		 FROM profiles WHERE user_id = ?`, userID,
	)
	return scanProfile(row)
}

// ListUserIDs returns all users with a profile, used by the auto-refresh
// loop to recalculate everyone.
func (d *DB) ListUserIDs() ([]string, error) {
	rows, err := d.db.Query(`SELECT user_id FROM profiles ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func scanProfile(s scanner) (*domain.UserProfile, error) {
	var p domain.UserProfile
	var quitDate sql.NullInt64
	var triggers, states, archetype string
	var createdAt, updatedAt int64

	err := s.Scan(&p.UserID, &p.Name, &quitDate, &p.DailyConsumption,
		&triggers, &states, &archetype, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil // Not found, no error
	}
	if err != nil {
		return nil, err
	}

	if quitDate.Valid {
		p.QuitDate = time.Unix(quitDate.Int64, 0).UTC()
	}
	p.Triggers = splitTriggers(triggers)
	p.EmotionalStates = splitStates(states)
	p.Archetype = domain.Archetype(archetype)
	p.CreatedAt = time.Unix(createdAt, 0).UTC()
	p.UpdatedAt = time.Unix(updatedAt, 0).UTC()
	return &p, nil
}

// ─── Set Columns ────────────────────────────────────────────────────────────
// Trigger/state sets are stored as comma-joined enum values. The split
// side is the normalizing boundary: unknown values are dropped rather
// than leaked into the domain types.

func joinTriggers(ts []domain.Trigger) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = string(t)
	}
	return strings.Join(parts, ",")
}

func splitTriggers(s string) []domain.Trigger {
	if s == "" {
		return nil
	}
	var ts []domain.Trigger
	for _, part := range strings.Split(s, ",") {
		switch t := domain.Trigger(part); t {
		case domain.TriggerStress, domain.TriggerBoredom, domain.TriggerSocial,
			domain.TriggerHabit, domain.TriggerOther:
			ts = append(ts, t)
		}
	}
	return ts
}

func joinStates(ss []domain.EmotionalState) string {
	parts := make([]string, len(ss))
	for i, s := range ss {
		parts[i] = string(s)
	}
	return strings.Join(parts, ",")
}

func splitStates(s string) []domain.EmotionalState {
	if s == "" {
		return nil
	}
	var ss []domain.EmotionalState
	for _, part := range strings.Split(s, ",") {
		switch st := domain.EmotionalState(part); st {
		case domain.StateStressed, domain.StateAnxious, domain.StateAngry,
			domain.StateSad, domain.StateBored, domain.StateLonely,
			domain.StateHappy, domain.StateExcited:
			ss = append(ss, st)
		}
	}
	return ss
}

func nullableUnix(t time.Time) sql.NullInt64 {
	if t.IsZero() {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.Unix(), Valid: true}
}
