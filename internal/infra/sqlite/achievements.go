package sqlite

import (
	"time"

	"github.com/exhale-health/exhale/internal/domain"
)

// ─── Achievement Catalog ────────────────────────────────────────────────────

// seedCatalog inserts the built-in achievement definitions. Existing rows
// are left untouched so a redeploy never rewrites unlock thresholds under
// a live catalog.
func (d *DB) seedCatalog() error {
	for _, def := range domain.DefaultCatalog() {
		_, err := d.db.Exec(
			`INSERT OR IGNORE INTO achievement_defs (key, title, description, tier, requirement_type, requirement_value)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			def.Key, def.Title, def.Description, string(def.Tier),
			string(def.RequirementType), def.RequirementValue,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// ListAchievementCatalog returns all definitions ascending by requirement
// value, then key. This order is the evaluation order, so "first newly
// unlocked" is deterministic.
func (d *DB) ListAchievementCatalog() ([]domain.AchievementDef, error) {
	rows, err := d.db.Query(
		`SELECT key, title, description, tier, requirement_type, requirement_value
		 FROM achievement_defs ORDER BY requirement_value ASC, key ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var defs []domain.AchievementDef
	for rows.Next() {
		var def domain.AchievementDef
		var tier, reqType string
		if err := rows.Scan(&def.Key, &def.Title, &def.Description, &tier, &reqType, &def.RequirementValue); err != nil {
			return nil, err
		}
		def.Tier = domain.Tier(tier)
		def.RequirementType = domain.RequirementType(reqType)
		defs = append(defs, def)
	}
	return defs, rows.Err()
}

// ─── User Achievements ──────────────────────────────────────────────────────

// UnlockAchievement records an achievement as unlocked.
// Returns false if already unlocked — the primary key absorbs duplicate
// unlock attempts without corrupting state.
func (d *DB) UnlockAchievement(userID, key string, at time.Time) (bool, error) {
	result, err := d.db.Exec(
		`INSERT OR IGNORE INTO user_achievements (user_id, achievement_key, unlocked_at, notified)
		 VALUES (?, ?, ?, 0)`,
		userID, key, at.Unix(),
	)
	if err != nil {
		return false, err
	}
	n, _ := result.RowsAffected()
	return n > 0, nil // true = newly unlocked
}

// ListUnlockedKeys returns the set of achievement keys the user holds.
func (d *DB) ListUnlockedKeys(userID string) (map[string]bool, error) {
	rows, err := d.db.Query(
		`SELECT achievement_key FROM user_achievements WHERE user_id = ?`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	keys := make(map[string]bool)
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys[key] = true
	}
	return keys, rows.Err()
}

// ListUserAchievements returns the user's unlocks, newest first.
func (d *DB) ListUserAchievements(userID string) ([]domain.UserAchievement, error) {
	rows, err := d.db.Query(
		`SELECT user_id, achievement_key, unlocked_at, notified
		 FROM user_achievements WHERE user_id = ? ORDER BY unlocked_at DESC, achievement_key ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var unlocks []domain.UserAchievement
	for rows.Next() {
		var ua domain.UserAchievement
		var unlockedAt int64
		if err := rows.Scan(&ua.UserID, &ua.Key, &unlockedAt, &ua.Notified); err != nil {
			return nil, err
		}
		ua.UnlockedAt = time.Unix(unlockedAt, 0).UTC()
		unlocks = append(unlocks, ua)
	}
	return unlocks, rows.Err()
}

// MarkAchievementNotified marks an unlock's notification as shown.
func (d *DB) MarkAchievementNotified(userID, key string) error {
	_, err := d.db.Exec(
		`UPDATE user_achievements SET notified = 1 WHERE user_id = ? AND achievement_key = ?`,
		userID, key,
	)
	return err
}
