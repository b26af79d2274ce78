// Package progress implements the progress calculation engine: the pure
// conversion of a quit profile and slip history into derived statistics,
// and the service that keeps the persisted snapshot in sync.
package progress

import (
	"time"

	"github.com/exhale-health/exhale/internal/domain"
)

// CostProfile holds the per-cigarette constants the derived statistics
// are priced against. Injectable so tests and regional configs can
// replace the defaults.
type CostProfile struct {
	PricePerCigarette           float64 // currency units
	MinutesRegainedPerCigarette float64
	MgNicotinePerCigarette      float64
}

// DefaultCostProfile returns the shipping constants: 8 currency units,
// 11 minutes of life, and 0.8mg nicotine per cigarette.
func DefaultCostProfile() CostProfile {
	return CostProfile{
		PricePerCigarette:           8,
		MinutesRegainedPerCigarette: 11,
		MgNicotinePerCigarette:      0.8,
	}
}

// Calculate derives progress statistics from a profile and slip count as
// of the given instant. Pure and total: identical inputs produce
// identical outputs, no input panics or errors.
//
// Both the quit date and asOf are truncated to day boundaries before
// subtraction, so the time of day never influences the day count. An
// absent quit date means onboarding is unfinished and yields the all-zero
// calculation; a future quit date yields zero days, never negative.
func Calculate(profile domain.UserProfile, slipCount int, asOf time.Time, costs CostProfile) domain.ProgressCalculation {
	if slipCount < 0 {
		slipCount = 0
	}

	// No quit date means onboarding is unfinished: no progress exists yet,
	// and logged slips carry no cost against a quit that has not started.
	if !profile.HasQuitDate() {
		return domain.ProgressCalculation{}
	}

	days := int(truncateDay(asOf).Sub(truncateDay(profile.QuitDate)).Hours() / 24)
	if days < 0 {
		days = 0
	}

	daily := profile.DailyConsumption
	if daily < 0 {
		daily = 0
	}

	// Slips reduce the avoided total but can never push it negative.
	notSmoked := int(float64(days)*daily) - slipCount
	if notSmoked < 0 {
		notSmoked = 0
	}

	return domain.ProgressCalculation{
		DaysSmokeFree:         days,
		CigarettesSmoked:      slipCount,
		CigarettesNotSmoked:   notSmoked,
		MoneySaved:            float64(notSmoked) * costs.PricePerCigarette,
		LifeRegainedHours:     float64(notSmoked) * costs.MinutesRegainedPerCigarette / 60,
		NicotineNotConsumedMg: float64(notSmoked) * costs.MgNicotinePerCigarette,
	}
}

// truncateDay drops the time-of-day component.
func truncateDay(t time.Time) time.Time {
	return t.UTC().Truncate(24 * time.Hour)
}
