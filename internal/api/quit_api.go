package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/exhale-health/exhale/internal/app/archetype"
	"github.com/exhale-health/exhale/internal/domain"
	"github.com/exhale-health/exhale/internal/infra/metrics"
)

// ─── Profile ────────────────────────────────────────────────────────────────

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	profile, err := s.store.GetProfile(userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if profile == nil {
		writeError(w, http.StatusNotFound, domain.ErrProfileNotFound.Error())
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

type putProfileRequest struct {
	Name             string                  `json:"name"`
	QuitDate         string                  `json:"quit_date"` // "2006-01-02", empty while onboarding
	DailyConsumption float64                 `json:"daily_consumption"`
	Triggers         []domain.Trigger        `json:"triggers"`
	EmotionalStates  []domain.EmotionalState `json:"emotional_states"`
}

func (s *Server) handlePutProfile(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var req putProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var quitDate time.Time
	if req.QuitDate != "" {
		parsed, err := parseDate(req.QuitDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "quit_date: "+err.Error())
			return
		}
		quitDate = parsed
	}

	// Preserve creation time on updates.
	existing, err := s.store.GetProfile(userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	profile := domain.UserProfile{
		UserID:           userID,
		Name:             req.Name,
		QuitDate:         quitDate,
		DailyConsumption: req.DailyConsumption,
		Triggers:         req.Triggers,
		EmotionalStates:  req.EmotionalStates,
		// The archetype is derived state: recomputed on every write,
		// overwritable, never edited directly.
		Archetype: archetype.Classify(req.Triggers, req.EmotionalStates),
	}
	if existing != nil {
		profile.CreatedAt = existing.CreatedAt
	}

	if err := s.store.PutProfile(profile); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	stored, err := s.store.GetProfile(userID)
	if err != nil || stored == nil {
		writeError(w, http.StatusInternalServerError, "profile write not visible")
		return
	}
	writeJSON(w, http.StatusOK, stored)
}

// ─── Events ─────────────────────────────────────────────────────────────────

type logEventRequest struct {
	Type      domain.EventType `json:"type"`
	Trigger   domain.Trigger   `json:"trigger"`
	Intensity int              `json:"intensity"`
	Note      string           `json:"note"`
}

// handleLogEvent appends a craving/slip event and refreshes progress in
// the same request, so the UI sees updated stats and any new unlocks
// immediately.
func (s *Server) handleLogEvent(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var req logEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	event := domain.CravingEvent{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      req.Type,
		Trigger:   req.Trigger,
		Intensity: req.Intensity,
		Note:      req.Note,
		CreatedAt: time.Now(),
	}
	if err := s.store.InsertEvent(event); err != nil {
		if errors.Is(err, domain.ErrInvalidEventType) || errors.Is(err, domain.ErrInvalidIntensity) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	metrics.EventsLogged.WithLabelValues(string(event.Type)).Inc()

	stats, unlocked := s.refresh(userID)
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"event":          event,
		"stats":          stats,
		"newly_unlocked": unlocked,
	})
}

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	limit := 50
	if q := r.URL.Query().Get("limit"); q != "" {
		if n, err := strconv.Atoi(q); err == nil && n > 0 {
			limit = n
		}
	}

	events, err := s.store.ListRecentEvents(userID, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if events == nil {
		events = []domain.CravingEvent{}
	}

	// Totals span the full log, not just the returned page.
	cravings, err := s.store.CountEvents(userID, domain.EventCraving)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	slips, err := s.store.CountEvents(userID, domain.EventSlip)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"events":            events,
		"cravings_resisted": cravings,
		"slips":             slips,
	})
}

// ─── Progress ───────────────────────────────────────────────────────────────

func (s *Server) handleGetProgress(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	stats, err := s.progress.Latest(userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if stats == nil {
		// Never calculated — compute on demand.
		fresh, _ := s.refresh(userID)
		stats = &fresh
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	stats, unlocked := s.refresh(userID)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"stats":          stats,
		"newly_unlocked": unlocked,
	})
}

// refresh runs the recalculate-and-evaluate pass. Store failures degrade
// to zeroed stats with a warning log — never a 5xx. The UI must stay
// usable on stale or zero data.
func (s *Server) refresh(userID string) (domain.ProgressStats, []domain.AchievementDef) {
	stats, unlocked, err := s.refresher.RefreshUser(userID, time.Now())
	if err != nil {
		log.Printf("[api] progress refresh degraded for %s: %v", userID, err)
	}
	if unlocked == nil {
		unlocked = []domain.AchievementDef{}
	}
	return stats, unlocked
}

// ─── Achievements ───────────────────────────────────────────────────────────

type achievementView struct {
	domain.AchievementDef
	Unlocked   bool       `json:"unlocked"`
	UnlockedAt *time.Time `json:"unlocked_at,omitempty"`
}

func (s *Server) handleAchievements(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	catalog, err := s.achievements.Catalog()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	unlocks, err := s.achievements.ListUnlocked(userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	unlockedAt := make(map[string]time.Time, len(unlocks))
	for _, ua := range unlocks {
		unlockedAt[ua.Key] = ua.UnlockedAt
	}

	views := make([]achievementView, len(catalog))
	for i, def := range catalog {
		views[i] = achievementView{AchievementDef: def}
		if at, ok := unlockedAt[def.Key]; ok {
			views[i].Unlocked = true
			t := at
			views[i].UnlockedAt = &t
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"achievements": views,
		"unlocked":     len(unlocks),
		"total":        len(catalog),
	})
}

// ─── Notifications ──────────────────────────────────────────────────────────

func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	pending, err := s.notify.Pending(userID, 20)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if pending == nil {
		pending = []domain.Notification{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"notifications": pending})
}

func (s *Server) handleNotificationShown(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid notification id")
		return
	}
	if err := s.notify.MarkShown(id); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// parseDate accepts a calendar date or an RFC3339 timestamp.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
