package daemon

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/exhale-health/exhale/internal/api"
	"github.com/exhale-health/exhale/internal/app/achievement"
	"github.com/exhale-health/exhale/internal/app/notify"
	"github.com/exhale-health/exhale/internal/app/progress"
	"github.com/exhale-health/exhale/internal/domain"
	"github.com/exhale-health/exhale/internal/health"
	_ "github.com/exhale-health/exhale/internal/infra/metrics" // Register Prometheus metrics
	"github.com/exhale-health/exhale/internal/infra/sqlite"
)

// Daemon is the core Exhale runtime. It wires together all services.
type Daemon struct {
	Config       Config
	DB           *sqlite.DB
	Progress     *progress.Service
	Achievement  *achievement.Service
	Notification *notify.Service
	Server       *api.Server
	Health       *health.Checker
	LocalUserID  string
	cancel       context.CancelFunc
}

// New creates and initializes a Daemon with all services wired.
func New() (*Daemon, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return NewWithConfig(cfg)
}

// NewWithConfig creates a Daemon with the given configuration.
func NewWithConfig(cfg Config) (*Daemon, error) {
	dataDir := cfg.Store.Dir
	if dataDir == "" {
		dataDir = DefaultConfig().Store.Dir
	}

	db, err := sqlite.Open(dataDir)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Each cost constant falls back on its own, so setting one in config
	// never discards the others.
	costs := progress.DefaultCostProfile()
	if cfg.Progress.PricePerCigarette > 0 {
		costs.PricePerCigarette = cfg.Progress.PricePerCigarette
	}
	if cfg.Progress.MinutesRegainedPerCigarette > 0 {
		costs.MinutesRegainedPerCigarette = cfg.Progress.MinutesRegainedPerCigarette
	}
	if cfg.Progress.MgNicotinePerCigarette > 0 {
		costs.MgNicotinePerCigarette = cfg.Progress.MgNicotinePerCigarette
	}

	policy := domain.NotificationPolicy{
		MaxPerDay:  cfg.Notifications.MaxPerDay,
		QuietStart: cfg.Notifications.QuietStart,
		QuietEnd:   cfg.Notifications.QuietEnd,
	}
	if policy.MaxPerDay == 0 {
		policy = domain.DefaultNotificationPolicy()
	}

	d := &Daemon{
		Config:       cfg,
		DB:           db,
		Progress:     progress.NewService(db, costs),
		Achievement:  achievement.NewService(db),
		Notification: notify.NewServiceWithPolicy(db, policy),
	}

	userID, err := localUserID(db)
	if err != nil {
		return nil, fmt.Errorf("local user id: %w", err)
	}
	d.LocalUserID = userID

	srv := api.NewServer(db, d.Progress, d.Achievement, d.Notification)
	srv.SetRefresher(d)
	if cfg.Telemetry.Prometheus {
		srv.EnableMetrics()
	}
	d.Server = srv

	d.Health = health.NewChecker(db, dataDir)
	srv.SetHealthChecker(d.Health)

	return d, nil
}

// localUserID returns the stable user id for this install, minting one
// on first run. Exhale is single-user per data dir, but the store and
// API keep user id explicit so a synced multi-device setup stays
// possible.
func localUserID(db *sqlite.DB) (string, error) {
	if id, err := db.GetMeta("local_user_id"); err == nil && id != "" {
		return id, nil
	}
	id := uuid.NewString()
	if err := db.SetMeta("local_user_id", id); err != nil {
		return "", err
	}
	return id, nil
}

// RefreshUser recomputes a user's progress, evaluates achievements
// against the fresh numbers, and announces any new unlocks. This is the
// single refresh pass shared by API handlers, the auto-refresh loop,
// and the CLI.
//
// Degraded reads never abort the pass: each stage runs on whatever the
// previous stage produced, and the first error is returned alongside
// the partial result for the caller to log.
func (d *Daemon) RefreshUser(userID string, now time.Time) (domain.ProgressStats, []domain.AchievementDef, error) {
	stats, refreshErr := d.Progress.Refresh(userID, now)

	resisted, err := d.DB.CountEvents(userID, domain.EventCraving)
	if err != nil {
		// Evaluate with zero resisted cravings rather than skip; streak
		// achievements still qualify off the computed stats.
		resisted = 0
		if refreshErr == nil {
			refreshErr = fmt.Errorf("count cravings: %w: %w", domain.ErrDataUnavailable, err)
		}
	}

	unlocked, unlockErr := d.Achievement.CheckAndUnlock(userID, stats.Calculation, resisted, now)
	if unlockErr != nil && refreshErr == nil {
		refreshErr = unlockErr
	}

	if len(unlocked) > 0 {
		if _, err := d.Notification.AnnounceUnlocks(userID, unlocked, now); err != nil {
			log.Printf("[daemon] announce unlocks for %s: %v", userID, err)
		}
	}

	return stats, unlocked, refreshErr
}

// Serve starts the HTTP server and blocks until shutdown.
func (d *Daemon) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	// Health checker (always runs)
	go d.Health.Run(ctx)

	// Periodic refresh keeps day-boundary stats and streak unlocks
	// current even when no events are being logged.
	go d.autoRefresh(ctx)

	addr := fmt.Sprintf("%s:%d", d.Config.Server.Host, d.Config.Server.Port)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      d.Server.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	// Graceful shutdown on signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
		case <-ctx.Done():
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		_ = httpServer.Shutdown(shutdownCtx)
		_ = d.DB.Close()
	}()

	fmt.Printf("Exhale serving on http://%s\n", addr)
	if d.Config.Telemetry.Prometheus {
		fmt.Printf("  Metrics: http://%s/metrics\n", addr)
	}

	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// autoRefresh recalculates every known user at the configured cadence.
func (d *Daemon) autoRefresh(ctx context.Context) {
	interval := d.Config.Progress.Interval()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			users, err := d.DB.ListUserIDs()
			if err != nil {
				log.Printf("[daemon] auto-refresh: list users: %v", err)
				continue
			}
			for _, userID := range users {
				if _, _, err := d.RefreshUser(userID, time.Now()); err != nil {
					log.Printf("[daemon] auto-refresh %s: %v", userID, err)
				}
			}
		}
	}
}

// Close shuts down all daemon resources.
func (d *Daemon) Close() {
	if d.cancel != nil {
		d.cancel()
	}
	if d.DB != nil {
		_ = d.DB.Close()
	}
}
