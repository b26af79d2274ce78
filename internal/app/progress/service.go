package progress

import (
	"fmt"
	"time"

	"github.com/exhale-health/exhale/internal/domain"
	"github.com/exhale-health/exhale/internal/infra/metrics"
)

// Service recomputes progress and syncs the per-user snapshot.
// Safe to call concurrently: the calculation is pure and the snapshot
// upsert is a single atomic last-write-wins statement, so a manual
// refresh racing the auto-refresh timer cannot corrupt state.
type Service struct {
	store domain.RecordStore
	costs CostProfile
}

// NewService creates a progress service over the given record store.
func NewService(store domain.RecordStore, costs CostProfile) *Service {
	return &Service{store: store, costs: costs}
}

// Costs returns the cost constants in effect.
func (s *Service) Costs() CostProfile { return s.costs }

// Refresh recomputes the user's progress as of now and persists it.
//
// Degradation policy: a store failure never propagates as a crash. If the
// profile cannot be fetched, Refresh returns zeroed stats and an error
// wrapping domain.ErrDataUnavailable; if the slip count cannot be fetched,
// the calculation falls back to zero slips, the snapshot write is skipped
// (so a degraded zero never overwrites a good snapshot), and the same
// sentinel is returned alongside the computed value. Callers log a
// warning and carry on.
func (s *Service) Refresh(userID string, now time.Time) (domain.ProgressStats, error) {
	timer := time.Now()
	defer func() {
		metrics.RefreshLatency.Observe(time.Since(timer).Seconds())
	}()
	metrics.RefreshTotal.Inc()

	zero := domain.ProgressStats{UserID: userID, LastCalculated: now}

	profile, err := s.store.GetProfile(userID)
	if err != nil {
		metrics.RefreshFailures.Inc()
		return zero, fmt.Errorf("get profile: %w: %w", domain.ErrDataUnavailable, err)
	}
	if profile == nil {
		// No profile yet — zero progress, nothing to persist.
		return zero, nil
	}

	slips, countErr := s.store.CountEvents(userID, domain.EventSlip)
	if countErr != nil {
		// Keep going with zero slips, but report the degraded read.
		slips = 0
	}

	calc := Calculate(*profile, slips, now, s.costs)

	if countErr != nil {
		metrics.RefreshFailures.Inc()
		return domain.ProgressStats{UserID: userID, Calculation: calc, LastCalculated: now},
			fmt.Errorf("count slips: %w: %w", domain.ErrDataUnavailable, countErr)
	}

	stats, err := s.store.UpsertStats(userID, calc, now)
	if err != nil {
		metrics.RefreshFailures.Inc()
		return domain.ProgressStats{UserID: userID, Calculation: calc, LastCalculated: now},
			fmt.Errorf("upsert stats: %w", err)
	}
	return *stats, nil
}

// Latest returns the persisted snapshot without recomputing.
// Returns nil if the user has never been calculated.
func (s *Service) Latest(userID string) (*domain.ProgressStats, error) {
	return s.store.GetStats(userID)
}
