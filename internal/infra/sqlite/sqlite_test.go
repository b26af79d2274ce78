package sqlite

import (
	"testing"
	"time"

	"github.com/exhale-health/exhale/internal/domain"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// ─── Profiles ───────────────────────────────────────────────────────────────

func TestProfileRoundtrip(t *testing.T) {
	db := openTestDB(t)

	quit := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	p := domain.UserProfile{
		UserID:           "u1",
		Name:             "Sam",
		QuitDate:         quit,
		DailyConsumption: 12,
		Triggers:         []domain.Trigger{domain.TriggerStress, domain.TriggerSocial},
		EmotionalStates:  []domain.EmotionalState{domain.StateAnxious},
		Archetype:        domain.ArchetypeStressReactor,
	}
	if err := db.PutProfile(p); err != nil {
		t.Fatalf("PutProfile: %v", err)
	}

	got, err := db.GetProfile("u1")
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if got == nil {
		t.Fatal("GetProfile returned nil for an existing profile")
	}
	if got.Name != "Sam" || !got.QuitDate.Equal(quit) || got.DailyConsumption != 12 {
		t.Errorf("got %+v", got)
	}
	if len(got.Triggers) != 2 || got.Triggers[0] != domain.TriggerStress {
		t.Errorf("Triggers = %v", got.Triggers)
	}
	if got.Archetype != domain.ArchetypeStressReactor {
		t.Errorf("Archetype = %s", got.Archetype)
	}
}

func TestGetProfileAbsent(t *testing.T) {
	db := openTestDB(t)

	got, err := db.GetProfile("nobody")
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if got != nil {
		t.Errorf("GetProfile = %+v, want nil for an absent user", got)
	}
}

func TestPutProfileUpsert(t *testing.T) {
	db := openTestDB(t)

	if err := db.PutProfile(domain.UserProfile{UserID: "u1", Name: "before"}); err != nil {
		t.Fatalf("PutProfile: %v", err)
	}
	first, _ := db.GetProfile("u1")

	if err := db.PutProfile(domain.UserProfile{
		UserID: "u1", Name: "after", CreatedAt: first.CreatedAt,
	}); err != nil {
		t.Fatalf("PutProfile update: %v", err)
	}

	got, _ := db.GetProfile("u1")
	if got.Name != "after" {
		t.Errorf("Name = %q, want %q", got.Name, "after")
	}
	if !got.CreatedAt.Equal(first.CreatedAt) {
		t.Errorf("CreatedAt changed on update")
	}

	ids, err := db.ListUserIDs()
	if err != nil {
		t.Fatalf("ListUserIDs: %v", err)
	}
	if len(ids) != 1 {
		t.Errorf("ListUserIDs = %v, want a single user", ids)
	}
}

func TestPutProfileClampsNegativeConsumption(t *testing.T) {
	db := openTestDB(t)

	if err := db.PutProfile(domain.UserProfile{UserID: "u1", DailyConsumption: -10}); err != nil {
		t.Fatalf("PutProfile: %v", err)
	}
	got, _ := db.GetProfile("u1")
	if got.DailyConsumption != 0 {
		t.Errorf("DailyConsumption = %v, want 0", got.DailyConsumption)
	}
}

func TestProfileNoQuitDate(t *testing.T) {
	db := openTestDB(t)

	if err := db.PutProfile(domain.UserProfile{UserID: "u1"}); err != nil {
		t.Fatalf("PutProfile: %v", err)
	}
	got, _ := db.GetProfile("u1")
	if got.HasQuitDate() {
		t.Errorf("QuitDate = %v, want zero", got.QuitDate)
	}
}

// ─── Events ─────────────────────────────────────────────────────────────────

func TestEventCounts(t *testing.T) {
	db := openTestDB(t)

	count, err := db.CountEvents("u1", domain.EventCraving)
	if err != nil {
		t.Fatalf("CountEvents: %v", err)
	}
	if count != 0 {
		t.Errorf("count = %d, want 0 for a user with no events", count)
	}

	events := []domain.CravingEvent{
		{ID: "e1", UserID: "u1", Type: domain.EventCraving, Intensity: 3, CreatedAt: time.Now()},
		{ID: "e2", UserID: "u1", Type: domain.EventCraving, Intensity: 5, CreatedAt: time.Now()},
		{ID: "e3", UserID: "u1", Type: domain.EventSlip, Intensity: 4, CreatedAt: time.Now()},
		{ID: "e4", UserID: "u2", Type: domain.EventCraving, Intensity: 1, CreatedAt: time.Now()},
	}
	for _, e := range events {
		if err := db.InsertEvent(e); err != nil {
			t.Fatalf("InsertEvent %s: %v", e.ID, err)
		}
	}

	cravings, _ := db.CountEvents("u1", domain.EventCraving)
	slips, _ := db.CountEvents("u1", domain.EventSlip)
	if cravings != 2 || slips != 1 {
		t.Errorf("u1 counts = %d cravings, %d slips; want 2, 1", cravings, slips)
	}
}

func TestInsertEventValidates(t *testing.T) {
	db := openTestDB(t)

	err := db.InsertEvent(domain.CravingEvent{
		ID: "bad", UserID: "u1", Type: "party", Intensity: 3, CreatedAt: time.Now(),
	})
	if err != domain.ErrInvalidEventType {
		t.Errorf("err = %v, want ErrInvalidEventType", err)
	}

	err = db.InsertEvent(domain.CravingEvent{
		ID: "bad2", UserID: "u1", Type: domain.EventCraving, Intensity: 9, CreatedAt: time.Now(),
	})
	if err != domain.ErrInvalidIntensity {
		t.Errorf("err = %v, want ErrInvalidIntensity", err)
	}
}

func TestListRecentEvents(t *testing.T) {
	db := openTestDB(t)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		e := domain.CravingEvent{
			ID: string(rune('a' + i)), UserID: "u1", Type: domain.EventCraving,
			Intensity: 3, CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
		if err := db.InsertEvent(e); err != nil {
			t.Fatalf("InsertEvent: %v", err)
		}
	}

	recent, err := db.ListRecentEvents("u1", 3)
	if err != nil {
		t.Fatalf("ListRecentEvents: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("len = %d, want 3", len(recent))
	}
	if recent[0].ID != "e" || recent[2].ID != "c" {
		t.Errorf("order = %s..%s, want newest first", recent[0].ID, recent[2].ID)
	}
}

// ─── Progress Snapshot ──────────────────────────────────────────────────────

func TestUpsertStatsSingleRow(t *testing.T) {
	db := openTestDB(t)
	now := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)

	first := domain.ProgressCalculation{DaysSmokeFree: 5, MoneySaved: 400}
	if _, err := db.UpsertStats("u1", first, now); err != nil {
		t.Fatalf("UpsertStats: %v", err)
	}

	second := domain.ProgressCalculation{DaysSmokeFree: 6, MoneySaved: 480}
	if _, err := db.UpsertStats("u1", second, now.Add(time.Hour)); err != nil {
		t.Fatalf("UpsertStats again: %v", err)
	}

	got, err := db.GetStats("u1")
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if got.Calculation != second {
		t.Errorf("Calculation = %+v, want the last write %+v", got.Calculation, second)
	}
	if !got.LastCalculated.Equal(now.Add(time.Hour)) {
		t.Errorf("LastCalculated = %v", got.LastCalculated)
	}
}

func TestGetStatsAbsent(t *testing.T) {
	db := openTestDB(t)

	got, err := db.GetStats("nobody")
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if got != nil {
		t.Errorf("GetStats = %+v, want nil before first calculation", got)
	}
}

// ─── Achievements ───────────────────────────────────────────────────────────

func TestCatalogSeededAndSorted(t *testing.T) {
	db := openTestDB(t)

	defs, err := db.ListAchievementCatalog()
	if err != nil {
		t.Fatalf("ListAchievementCatalog: %v", err)
	}
	if len(defs) != len(domain.DefaultCatalog()) {
		t.Fatalf("catalog has %d entries, want %d", len(defs), len(domain.DefaultCatalog()))
	}
	for i := 1; i < len(defs); i++ {
		if defs[i].RequirementValue < defs[i-1].RequirementValue {
			t.Errorf("catalog not ascending at %d: %s(%d) after %s(%d)",
				i, defs[i].Key, defs[i].RequirementValue, defs[i-1].Key, defs[i-1].RequirementValue)
		}
	}
}

func TestCatalogSeedIdempotent(t *testing.T) {
	dir := t.TempDir()

	db, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	db.Close()

	// Reopening must not duplicate catalog rows.
	db, err = Open(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()

	defs, _ := db.ListAchievementCatalog()
	if len(defs) != len(domain.DefaultCatalog()) {
		t.Errorf("catalog has %d entries after reopen, want %d", len(defs), len(domain.DefaultCatalog()))
	}
}

func TestUnlockAchievementIdempotent(t *testing.T) {
	db := openTestDB(t)
	now := time.Now()

	isNew, err := db.UnlockAchievement("u1", "first_day", now)
	if err != nil {
		t.Fatalf("UnlockAchievement: %v", err)
	}
	if !isNew {
		t.Errorf("first unlock should report new")
	}

	isNew, err = db.UnlockAchievement("u1", "first_day", now.Add(time.Hour))
	if err != nil {
		t.Fatalf("duplicate unlock: %v", err)
	}
	if isNew {
		t.Errorf("duplicate unlock should be absorbed, not reported as new")
	}

	unlocks, _ := db.ListUserAchievements("u1")
	if len(unlocks) != 1 {
		t.Fatalf("unlocks = %d, want exactly 1", len(unlocks))
	}
	// The original unlock timestamp survives the duplicate.
	if !unlocks[0].UnlockedAt.Equal(time.Unix(now.Unix(), 0)) {
		t.Errorf("UnlockedAt = %v, want the first timestamp", unlocks[0].UnlockedAt)
	}
}

func TestListUnlockedKeys(t *testing.T) {
	db := openTestDB(t)
	now := time.Now()

	for _, key := range []string{"first_day", "three_days"} {
		if _, err := db.UnlockAchievement("u1", key, now); err != nil {
			t.Fatalf("UnlockAchievement %s: %v", key, err)
		}
	}

	keys, err := db.ListUnlockedKeys("u1")
	if err != nil {
		t.Fatalf("ListUnlockedKeys: %v", err)
	}
	if len(keys) != 2 || !keys["first_day"] || !keys["three_days"] {
		t.Errorf("keys = %v", keys)
	}

	other, _ := db.ListUnlockedKeys("u2")
	if len(other) != 0 {
		t.Errorf("u2 keys = %v, want none", other)
	}
}

// ─── Notifications ──────────────────────────────────────────────────────────

func TestNotificationLifecycle(t *testing.T) {
	db := openTestDB(t)
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

	id, err := db.InsertNotification(domain.Notification{
		UserID: "u1", Type: domain.NotifyAchievement,
		Title: "First Day", Body: "One full day smoke-free.", CreatedAt: now,
	})
	if err != nil {
		t.Fatalf("InsertNotification: %v", err)
	}
	if id == 0 {
		t.Fatal("id = 0, want a row id")
	}

	count, err := db.NotificationCountSince("u1", now.Add(-time.Hour))
	if err != nil {
		t.Fatalf("NotificationCountSince: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}

	pending, err := db.ListPendingNotifications("u1", 10)
	if err != nil {
		t.Fatalf("ListPendingNotifications: %v", err)
	}
	if len(pending) != 1 || pending[0].Title != "First Day" {
		t.Errorf("pending = %+v", pending)
	}

	if err := db.MarkNotificationShown(id); err != nil {
		t.Fatalf("MarkNotificationShown: %v", err)
	}
	pending, _ = db.ListPendingNotifications("u1", 10)
	if len(pending) != 0 {
		t.Errorf("pending = %d after shown, want 0", len(pending))
	}
}

// ─── Meta ───────────────────────────────────────────────────────────────────

func TestMetaRoundtrip(t *testing.T) {
	db := openTestDB(t)

	got, err := db.GetMeta("missing")
	if err != nil || got != "" {
		t.Errorf("GetMeta(missing) = (%q, %v), want empty", got, err)
	}

	if err := db.SetMeta("local_user_id", "abc"); err != nil {
		t.Fatalf("SetMeta: %v", err)
	}
	if err := db.SetMeta("local_user_id", "xyz"); err != nil {
		t.Fatalf("SetMeta overwrite: %v", err)
	}

	got, err = db.GetMeta("local_user_id")
	if err != nil {
		t.Fatalf("GetMeta: %v", err)
	}
	if got != "xyz" {
		t.Errorf("GetMeta = %q, want %q", got, "xyz")
	}
}
