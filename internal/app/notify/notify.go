// Package notify records user-facing notifications behind a rate policy.
// Exhale only logs them — delivery is the embedding shell's job.
// Policy: at most MaxPerDay notifications, none during quiet hours.
package notify

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/exhale-health/exhale/internal/domain"
)

// Store is the subset of the sqlite layer the notifier needs.
type Store interface {
	InsertNotification(n domain.Notification) (int64, error)
	NotificationCountSince(userID string, since time.Time) (int, error)
	ListPendingNotifications(userID string, limit int) ([]domain.Notification, error)
	MarkNotificationShown(id int64) error
}

// Service manages policy-gated notifications.
type Service struct {
	store  Store
	policy domain.NotificationPolicy
}

// NewService creates a notification service with the default policy.
func NewService(store Store) *Service {
	return &Service{store: store, policy: domain.DefaultNotificationPolicy()}
}

// NewServiceWithPolicy creates a notification service with a custom policy.
func NewServiceWithPolicy(store Store, policy domain.NotificationPolicy) *Service {
	return &Service{store: store, policy: policy}
}

// Create records a notification if policy allows it.
// Returns the notification ID (0 if suppressed by policy) and any error.
func (s *Service) Create(notif domain.Notification) (int64, error) {
	if notif.CreatedAt.IsZero() {
		notif.CreatedAt = time.Now()
	}
	notif.Shown = false

	// Daily cap. Midnight in the event's own location, so the cap and the
	// quiet-hours check agree on what "today" means.
	y, m, d := notif.CreatedAt.Date()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, notif.CreatedAt.Location())
	todayCount, err := s.store.NotificationCountSince(notif.UserID, dayStart)
	if err != nil {
		return 0, fmt.Errorf("count today: %w", err)
	}
	if todayCount >= s.policy.MaxPerDay {
		return 0, nil // Suppressed — daily limit reached
	}

	if s.isQuietHour(notif.CreatedAt) {
		return 0, nil // Suppressed — quiet hours
	}

	id, err := s.store.InsertNotification(notif)
	if err != nil {
		return 0, fmt.Errorf("insert notification: %w", err)
	}
	return id, nil
}

// AnnounceUnlocks records one achievement notification for a batch of
// fresh unlocks. Only the first unlock is announced — the policy caps at
// one per day anyway, and the achievements screen shows the rest.
func (s *Service) AnnounceUnlocks(userID string, unlocked []domain.AchievementDef, at time.Time) (int64, error) {
	if len(unlocked) == 0 {
		return 0, nil
	}
	first := unlocked[0]
	body := first.Description
	if extra := len(unlocked) - 1; extra > 0 {
		body = fmt.Sprintf("%s (+%d more)", body, extra)
	}
	return s.Create(domain.Notification{
		UserID:    userID,
		Type:      domain.NotifyAchievement,
		Title:     "Achievement unlocked: " + first.Title,
		Body:      body,
		CreatedAt: at,
	})
}

// Pending returns unshown notifications.
func (s *Service) Pending(userID string, limit int) ([]domain.Notification, error) {
	return s.store.ListPendingNotifications(userID, limit)
}

// MarkShown marks a notification as shown.
func (s *Service) MarkShown(id int64) error {
	return s.store.MarkNotificationShown(id)
}

// Policy returns the notification policy in effect.
func (s *Service) Policy() domain.NotificationPolicy {
	return s.policy
}

// isQuietHour returns true if the given time falls within quiet hours.
func (s *Service) isQuietHour(t time.Time) bool {
	startHour, startMin := parseHHMM(s.policy.QuietStart)
	endHour, endMin := parseHHMM(s.policy.QuietEnd)

	timeMinutes := t.Hour()*60 + t.Minute()
	startMinutes := startHour*60 + startMin
	endMinutes := endHour*60 + endMin

	if startMinutes > endMinutes {
		// Wraps midnight: e.g., 22:00 – 08:00
		return timeMinutes >= startMinutes || timeMinutes < endMinutes
	}
	return timeMinutes >= startMinutes && timeMinutes < endMinutes
}

// parseHHMM parses "HH:MM" into hour and minute.
func parseHHMM(s string) (int, int) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0
	}
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	return h, m
}
