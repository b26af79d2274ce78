package achievement

import (
	"errors"
	"fmt"
	"time"

	"github.com/exhale-health/exhale/internal/domain"
	"github.com/exhale-health/exhale/internal/infra/metrics"
)

// Service evaluates the catalog against current stats and persists
// unlocks through the record store.
type Service struct {
	store domain.RecordStore
}

// NewService creates an achievement service over the given record store.
func NewService(store domain.RecordStore) *Service {
	return &Service{store: store}
}

// CheckAndUnlock evaluates all achievements and records new unlocks.
//
// Returns the definitions that were unlocked in this call, in catalog
// order. Partial success is real success: a failed write for one
// achievement never blocks the others — failures are joined into the
// returned error (wrapping domain.ErrPartialUnlock) while the successful
// unlocks are still returned. If the catalog or unlocked set cannot be
// read at all, the result degrades to an empty list plus an error
// wrapping domain.ErrDataUnavailable.
func (s *Service) CheckAndUnlock(userID string, calc domain.ProgressCalculation, cravingsResisted int, now time.Time) ([]domain.AchievementDef, error) {
	catalog, err := s.store.ListAchievementCatalog()
	if err != nil {
		return nil, fmt.Errorf("list catalog: %w: %w", domain.ErrDataUnavailable, err)
	}
	unlockedKeys, err := s.store.ListUnlockedKeys(userID)
	if err != nil {
		return nil, fmt.Errorf("list unlocked: %w: %w", domain.ErrDataUnavailable, err)
	}

	qualified := Evaluate(catalog, unlockedKeys, calc, cravingsResisted)

	var unlocked []domain.AchievementDef
	var failures []error
	for _, def := range qualified {
		isNew, err := s.store.UnlockAchievement(userID, def.Key, now)
		if err != nil {
			failures = append(failures, fmt.Errorf("unlock %s: %w", def.Key, err))
			continue
		}
		if isNew {
			metrics.AchievementsUnlocked.Inc()
			unlocked = append(unlocked, def)
		}
		// isNew == false: a concurrent evaluation got there first.
		// The unlock exists either way, so there is nothing to report.
	}

	if len(failures) > 0 {
		return unlocked, fmt.Errorf("%w: %w", domain.ErrPartialUnlock, errors.Join(failures...))
	}
	return unlocked, nil
}

// Catalog returns all achievement definitions in evaluation order.
func (s *Service) Catalog() ([]domain.AchievementDef, error) {
	return s.store.ListAchievementCatalog()
}

// ListUnlocked returns the user's unlocks, newest first.
func (s *Service) ListUnlocked(userID string) ([]domain.UserAchievement, error) {
	return s.store.ListUserAchievements(userID)
}
