package progress

import (
	"testing"
	"time"

	"github.com/exhale-health/exhale/internal/domain"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestCalculateTenDaysClean(t *testing.T) {
	profile := domain.UserProfile{
		UserID:           "u1",
		QuitDate:         day("2026-08-01"),
		DailyConsumption: 10,
	}

	calc := Calculate(profile, 0, day("2026-08-11"), DefaultCostProfile())

	if calc.DaysSmokeFree != 10 {
		t.Errorf("DaysSmokeFree = %d, want 10", calc.DaysSmokeFree)
	}
	if calc.CigarettesNotSmoked != 100 {
		t.Errorf("CigarettesNotSmoked = %d, want 100", calc.CigarettesNotSmoked)
	}
	if calc.MoneySaved != 800 {
		t.Errorf("MoneySaved = %v, want 800", calc.MoneySaved)
	}
	wantHours := 100 * 11.0 / 60
	if diff := calc.LifeRegainedHours - wantHours; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("LifeRegainedHours = %v, want %v", calc.LifeRegainedHours, wantHours)
	}
	if calc.NicotineNotConsumedMg != 80 {
		t.Errorf("NicotineNotConsumedMg = %v, want 80", calc.NicotineNotConsumedMg)
	}
}

func TestCalculateWithSlips(t *testing.T) {
	profile := domain.UserProfile{
		UserID:           "u1",
		QuitDate:         day("2026-08-01"),
		DailyConsumption: 10,
	}

	calc := Calculate(profile, 15, day("2026-08-11"), DefaultCostProfile())

	if calc.DaysSmokeFree != 10 {
		t.Errorf("DaysSmokeFree = %d, want 10 (slips never reset the streak)", calc.DaysSmokeFree)
	}
	if calc.CigarettesSmoked != 15 {
		t.Errorf("CigarettesSmoked = %d, want 15", calc.CigarettesSmoked)
	}
	if calc.CigarettesNotSmoked != 85 {
		t.Errorf("CigarettesNotSmoked = %d, want 85", calc.CigarettesNotSmoked)
	}
	if calc.MoneySaved != 680 {
		t.Errorf("MoneySaved = %v, want 680", calc.MoneySaved)
	}
}

func TestCalculateNoQuitDate(t *testing.T) {
	profile := domain.UserProfile{UserID: "u1", DailyConsumption: 20}

	calc := Calculate(profile, 0, day("2026-08-11"), DefaultCostProfile())

	if !calc.IsZero() {
		t.Errorf("no quit date should yield the zero calculation, got %+v", calc)
	}

	// Slips logged before a quit date exists must not leak into the result.
	calc = Calculate(profile, 15, day("2026-08-11"), DefaultCostProfile())
	if !calc.IsZero() {
		t.Errorf("no quit date with slips should still be all zero, got %+v", calc)
	}
}

func TestCalculateFutureQuitDate(t *testing.T) {
	profile := domain.UserProfile{
		UserID:           "u1",
		QuitDate:         day("2026-09-01"),
		DailyConsumption: 10,
	}

	calc := Calculate(profile, 0, day("2026-08-11"), DefaultCostProfile())

	if calc.DaysSmokeFree != 0 {
		t.Errorf("DaysSmokeFree = %d, want 0 for a future quit date", calc.DaysSmokeFree)
	}
	if calc.MoneySaved != 0 {
		t.Errorf("MoneySaved = %v, want 0", calc.MoneySaved)
	}
}

func TestCalculateSlipsNeverGoNegative(t *testing.T) {
	profile := domain.UserProfile{
		UserID:           "u1",
		QuitDate:         day("2026-08-10"),
		DailyConsumption: 2,
	}

	// 1 day × 2/day = 2 avoided, 50 slips recorded.
	calc := Calculate(profile, 50, day("2026-08-11"), DefaultCostProfile())

	if calc.CigarettesNotSmoked != 0 {
		t.Errorf("CigarettesNotSmoked = %d, want 0 (clamped)", calc.CigarettesNotSmoked)
	}
	if calc.MoneySaved != 0 || calc.LifeRegainedHours != 0 || calc.NicotineNotConsumedMg != 0 {
		t.Errorf("derived stats must clamp with the avoided count: %+v", calc)
	}
}

func TestCalculateTimeOfDayIrrelevant(t *testing.T) {
	profile := domain.UserProfile{
		UserID:           "u1",
		QuitDate:         time.Date(2026, 8, 1, 23, 59, 0, 0, time.UTC),
		DailyConsumption: 10,
	}

	morning := Calculate(profile, 0, time.Date(2026, 8, 11, 0, 1, 0, 0, time.UTC), DefaultCostProfile())
	evening := Calculate(profile, 0, time.Date(2026, 8, 11, 23, 58, 0, 0, time.UTC), DefaultCostProfile())

	if morning != evening {
		t.Errorf("same calendar day should yield identical stats: %+v vs %+v", morning, evening)
	}
	if morning.DaysSmokeFree != 10 {
		t.Errorf("DaysSmokeFree = %d, want 10 (day boundaries, not 24h windows)", morning.DaysSmokeFree)
	}
}

func TestCalculateDeterministic(t *testing.T) {
	profile := domain.UserProfile{
		UserID:           "u1",
		QuitDate:         day("2026-07-15"),
		DailyConsumption: 12.5,
	}
	asOf := day("2026-08-20")

	first := Calculate(profile, 3, asOf, DefaultCostProfile())
	for i := 0; i < 10; i++ {
		if got := Calculate(profile, 3, asOf, DefaultCostProfile()); got != first {
			t.Fatalf("run %d: got %+v, want %+v", i, got, first)
		}
	}
}

func TestCalculateMonotoneDays(t *testing.T) {
	profile := domain.UserProfile{
		UserID:           "u1",
		QuitDate:         day("2026-08-01"),
		DailyConsumption: 10,
	}

	prev := Calculate(profile, 5, day("2026-08-02"), DefaultCostProfile())
	for d := 3; d <= 30; d++ {
		asOf := day("2026-08-01").AddDate(0, 0, d-1)
		cur := Calculate(profile, 5, asOf, DefaultCostProfile())
		if cur.DaysSmokeFree < prev.DaysSmokeFree {
			t.Fatalf("DaysSmokeFree decreased: %d then %d", prev.DaysSmokeFree, cur.DaysSmokeFree)
		}
		if cur.MoneySaved < prev.MoneySaved {
			t.Fatalf("MoneySaved decreased: %v then %v", prev.MoneySaved, cur.MoneySaved)
		}
		prev = cur
	}
}

func TestCalculateNegativeInputsClamped(t *testing.T) {
	profile := domain.UserProfile{
		UserID:           "u1",
		QuitDate:         day("2026-08-01"),
		DailyConsumption: -5,
	}

	calc := Calculate(profile, -3, day("2026-08-11"), DefaultCostProfile())

	if calc.CigarettesSmoked != 0 {
		t.Errorf("CigarettesSmoked = %d, want 0", calc.CigarettesSmoked)
	}
	if calc.CigarettesNotSmoked != 0 {
		t.Errorf("CigarettesNotSmoked = %d, want 0", calc.CigarettesNotSmoked)
	}
}
