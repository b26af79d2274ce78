package sqlite

import (
	"database/sql"
	"time"

	"github.com/exhale-health/exhale/internal/domain"
)

// ─── Progress Snapshot ──────────────────────────────────────────────────────

// UpsertStats overwrites the single per-user stats row. The upsert is one
// atomic statement, so concurrent refreshes for the same user resolve to
// last-write-wins without ever producing a second row.
func (d *DB) UpsertStats(userID string, calc domain.ProgressCalculation, at time.Time) (*domain.ProgressStats, error) {
	_, err := d.db.Exec(
		`INSERT INTO progress_stats (user_id, days_smoke_free, cigarettes_smoked, cigarettes_not_smoked, money_saved, life_regained_hours, nicotine_not_consumed_mg, last_calculated)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
			days_smoke_free=excluded.days_smoke_free,
			cigarettes_smoked=excluded.cigarettes_smoked,
			cigarettes_not_smoked=excluded.cigarettes_not_smoked,
			money_saved=excluded.money_saved,
			life_regained_hours=excluded.life_regained_hours,
			nicotine_not_consumed_mg=excluded.nicotine_not_consumed_mg,
			last_calculated=excluded.last_calculated`,
		userID, calc.DaysSmokeFree, calc.CigarettesSmoked, calc.CigarettesNotSmoked,
		calc.MoneySaved, calc.LifeRegainedHours, calc.NicotineNotConsumedMg,
		at.Unix(),
	)
	if err != nil {
		return nil, err
	}
	return &domain.ProgressStats{
		UserID:         userID,
		Calculation:    calc,
		LastCalculated: at,
	}, nil
}

// GetStats returns the persisted snapshot, or nil if never calculated.
func (d *DB) GetStats(userID string) (*domain.ProgressStats, error) {
	row := d.db.QueryRow(
		`SELECT user_id, days_smoke_free, cigarettes_smoked, cigarettes_not_smoked, money_saved, life_regained_hours, nicotine_not_consumed_mg, last_calculated
		 FROM progress_stats WHERE user_id = ?`, userID,
	)

	var s domain.ProgressStats
	var lastCalc int64
	err := row.Scan(&s.UserID, &s.Calculation.DaysSmokeFree,
		&s.Calculation.CigarettesSmoked, &s.Calculation.CigarettesNotSmoked,
		&s.Calculation.MoneySaved, &s.Calculation.LifeRegainedHours,
		&s.Calculation.NicotineNotConsumedMg, &lastCalc)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	s.LastCalculated = time.Unix(lastCalc, 0).UTC()
	return &s, nil
}
