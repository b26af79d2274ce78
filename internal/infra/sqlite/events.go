package sqlite

import (
	"time"

	"github.com/exhale-health/exhale/internal/domain"
)

// ─── Event Log ──────────────────────────────────────────────────────────────

// InsertEvent appends a craving/slip event. Events are immutable once
// written.
func (d *DB) InsertEvent(e domain.CravingEvent) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	_, err := d.db.Exec(
		`INSERT INTO events (id, user_id, type, trigger, intensity, note, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.UserID, string(e.Type), string(e.Trigger), e.Intensity,
		e.Note, e.CreatedAt.Unix(),
	)
	return err
}

// CountEvents returns the number of logged events of the given type.
// A user with no rows counts as 0, never an error.
func (d *DB) CountEvents(userID string, typ domain.EventType) (int, error) {
	var count int
	err := d.db.QueryRow(
		`SELECT COUNT(*) FROM events WHERE user_id = ? AND type = ?`,
		userID, string(typ),
	).Scan(&count)
	return count, err
}

// ListRecentEvents returns the newest events first, at most limit.
func (d *DB) ListRecentEvents(userID string, limit int) ([]domain.CravingEvent, error) {
	rows, err := d.db.Query(
		`SELECT id, user_id, type, trigger, intensity, note, created_at
		 FROM events WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.CravingEvent
	for rows.Next() {
		var e domain.CravingEvent
		var typ, trigger string
		var createdAt int64
		if err := rows.Scan(&e.ID, &e.UserID, &typ, &trigger, &e.Intensity, &e.Note, &createdAt); err != nil {
			return nil, err
		}
		e.Type = domain.EventType(typ)
		e.Trigger = domain.Trigger(trigger)
		e.CreatedAt = time.Unix(createdAt, 0).UTC()
		events = append(events, e)
	}
	return events, rows.Err()
}
