package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/exhale-health/exhale/internal/daemon"
	"github.com/exhale-health/exhale/internal/domain"
)

func init() {
	logCmd.Flags().StringVar(&logTrigger, "trigger", "", "What set it off: stress, boredom, social, habit, other")
	logCmd.Flags().IntVar(&logIntensity, "intensity", 3, "How strong, 1 (mild) to 5 (overwhelming)")
	logCmd.Flags().StringVar(&logNote, "note", "", "Optional note")
	rootCmd.AddCommand(logCmd)
}

var (
	logTrigger   string
	logIntensity int
	logNote      string
)

var logCmd = &cobra.Command{
	Use:   "log <craving|slip>",
	Short: "Log a craving you resisted or a slip",
	Long: `Log a craving or slip event.

A craving is an urge you resisted — it counts toward resistance milestones.
A slip is a cigarette smoked — it adjusts your savings honestly, it never
resets your quit date.`,
	Args: cobra.ExactArgs(1),
	RunE: runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	event := domain.CravingEvent{
		ID:        uuid.NewString(),
		UserID:    d.LocalUserID,
		Type:      domain.EventType(args[0]),
		Trigger:   domain.Trigger(logTrigger),
		Intensity: logIntensity,
		Note:      logNote,
		CreatedAt: time.Now(),
	}
	if err := d.DB.InsertEvent(event); err != nil {
		return err
	}

	switch event.Type {
	case domain.EventCraving:
		fmt.Println("Craving logged. You resisted — that counts.")
	case domain.EventSlip:
		fmt.Println("Slip logged. A slip is a data point, not a reset.")
	}

	stats, unlocked, err := d.RefreshUser(d.LocalUserID, time.Now())
	if err != nil {
		// Event was saved; numbers catch up on the next refresh.
		return nil
	}
	fmt.Printf("Days smoke-free: %d\n", stats.Calculation.DaysSmokeFree)
	for _, def := range unlocked {
		fmt.Printf("🏆 Achievement unlocked: %s — %s\n", def.Title, def.Description)
	}
	return nil
}
