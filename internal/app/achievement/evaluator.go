// Package achievement implements the rule-based achievement engine:
// a pure evaluator over the catalog plus the persistence step that
// records each unlock exactly once.
package achievement

import "github.com/exhale-health/exhale/internal/domain"

// Evaluate returns the catalog entries the user newly qualifies for.
//
// Definitions already present in unlockedKeys are skipped, so evaluating
// twice against unchanged stats yields nothing the second time. Output
// order follows catalog order (ascending requirement value), which keeps
// "first newly unlocked" deterministic for display.
func Evaluate(catalog []domain.AchievementDef, unlockedKeys map[string]bool, calc domain.ProgressCalculation, cravingsResisted int) []domain.AchievementDef {
	var newly []domain.AchievementDef
	for _, def := range catalog {
		if unlockedKeys[def.Key] {
			continue
		}
		if qualifies(def, calc, cravingsResisted) {
			newly = append(newly, def)
		}
	}
	return newly
}

// qualifies checks a single definition against the current stats.
func qualifies(def domain.AchievementDef, calc domain.ProgressCalculation, cravingsResisted int) bool {
	switch def.RequirementType {
	case domain.ReqDaysStreak:
		return calc.DaysSmokeFree >= def.RequirementValue
	case domain.ReqCravingsResisted:
		return cravingsResisted >= def.RequirementValue
	case domain.ReqSessionsCompleted:
		// Stand-in for a real completed-session count. See the note on
		// domain.ReqSessionsCompleted before changing this.
		return calc.DaysSmokeFree >= def.RequirementValue
	default:
		return false
	}
}
