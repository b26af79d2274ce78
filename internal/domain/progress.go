package domain

import "time"

// ProgressCalculation is the derived per-user progress snapshot.
// It is recomputed on demand, never treated as a source of truth.
// Every field is non-negative for all valid inputs.
type ProgressCalculation struct {
	DaysSmokeFree         int     `json:"days_smoke_free"`
	CigarettesSmoked      int     `json:"cigarettes_smoked"` // = slip count
	CigarettesNotSmoked   int     `json:"cigarettes_not_smoked"`
	MoneySaved            float64 `json:"money_saved"`
	LifeRegainedHours     float64 `json:"life_regained_hours"`
	NicotineNotConsumedMg float64 `json:"nicotine_not_consumed_mg"`
}

// IsZero reports whether the calculation carries no progress at all.
func (c ProgressCalculation) IsZero() bool {
	return c == ProgressCalculation{}
}

// ProgressStats is the persisted snapshot of the latest calculation.
// One row per user, overwritten on every recalculation.
type ProgressStats struct {
	UserID         string              `json:"user_id"`
	Calculation    ProgressCalculation `json:"calculation"`
	LastCalculated time.Time           `json:"last_calculated"`
}
