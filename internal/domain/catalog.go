package domain

// DefaultCatalog returns the built-in achievement definitions.
// The catalog is seeded into the record store on open; listing reads it
// back ascending by requirement value, which is the evaluation order.
func DefaultCatalog() []AchievementDef {
	return []AchievementDef{
		// ── Smoke-free streaks ─────────────────────────────────────────
		{
			Key: "first_day", Title: "First Day", Tier: TierBronze,
			Description:      "One full day smoke-free.",
			RequirementType:  ReqDaysStreak,
			RequirementValue: 1,
		},
		{
			Key: "three_days", Title: "Over the Hump", Tier: TierBronze,
			Description:      "Three days — the worst of the nicotine is gone.",
			RequirementType:  ReqDaysStreak,
			RequirementValue: 3,
		},
		{
			Key: "week_warrior", Title: "Week Warrior", Tier: TierSilver,
			Description:      "Seven days smoke-free.",
			RequirementType:  ReqDaysStreak,
			RequirementValue: 7,
		},
		{
			Key: "fortnight", Title: "Fortnight Force", Tier: TierSilver,
			Description:      "Two weeks smoke-free.",
			RequirementType:  ReqDaysStreak,
			RequirementValue: 14,
		},
		{
			Key: "month_one", Title: "One Month Strong", Tier: TierGold,
			Description:      "Thirty days smoke-free.",
			RequirementType:  ReqDaysStreak,
			RequirementValue: 30,
		},
		{
			Key: "quarter_free", Title: "Quarter Master", Tier: TierGold,
			Description:      "Ninety days smoke-free.",
			RequirementType:  ReqDaysStreak,
			RequirementValue: 90,
		},
		{
			Key: "half_year", Title: "Half-Year Hero", Tier: TierPlatinum,
			Description:      "Six months smoke-free.",
			RequirementType:  ReqDaysStreak,
			RequirementValue: 180,
		},
		{
			Key: "year_free", Title: "Year of Air", Tier: TierPlatinum,
			Description:      "A full year smoke-free.",
			RequirementType:  ReqDaysStreak,
			RequirementValue: 365,
		},

		// ── Resisted cravings ──────────────────────────────────────────
		{
			Key: "first_resist", Title: "Urge Surfer", Tier: TierBronze,
			Description:      "Rode out the first craving without lighting up.",
			RequirementType:  ReqCravingsResisted,
			RequirementValue: 1,
		},
		{
			Key: "ten_resisted", Title: "Craving Crusher", Tier: TierSilver,
			Description:      "Ten cravings resisted.",
			RequirementType:  ReqCravingsResisted,
			RequirementValue: 10,
		},
		{
			Key: "fifty_resisted", Title: "Iron Will", Tier: TierGold,
			Description:      "Fifty cravings resisted.",
			RequirementType:  ReqCravingsResisted,
			RequirementValue: 50,
		},
		{
			Key: "hundred_resisted", Title: "Unshakeable", Tier: TierPlatinum,
			Description:      "One hundred cravings resisted.",
			RequirementType:  ReqCravingsResisted,
			RequirementValue: 100,
		},

		// ── Sessions ───────────────────────────────────────────────────
		{
			Key: "five_sessions", Title: "Steady Starter", Tier: TierBronze,
			Description:      "Five support sessions completed.",
			RequirementType:  ReqSessionsCompleted,
			RequirementValue: 5,
		},
		{
			Key: "twenty_sessions", Title: "Routine Builder", Tier: TierSilver,
			Description:      "Twenty support sessions completed.",
			RequirementType:  ReqSessionsCompleted,
			RequirementValue: 20,
		},
	}
}
