package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/exhale-health/exhale/internal/app/archetype"
	"github.com/exhale-health/exhale/internal/daemon"
	"github.com/exhale-health/exhale/internal/domain"
)

func init() {
	profileSetCmd.Flags().StringVar(&profileName, "name", "", "Display name")
	profileSetCmd.Flags().StringVar(&profileQuitDate, "quit-date", "", "Quit date (YYYY-MM-DD)")
	profileSetCmd.Flags().Float64Var(&profilePerDay, "per-day", 0, "Cigarettes per day before quitting")
	profileSetCmd.Flags().StringVar(&profileTriggers, "triggers", "", "Comma-separated triggers: stress,boredom,social,habit,other")
	profileSetCmd.Flags().StringVar(&profileStates, "emotions", "", "Comma-separated emotional states: stressed,anxious,angry,sad,bored,lonely,happy,excited")
	profileCmd.AddCommand(profileSetCmd)
	rootCmd.AddCommand(profileCmd)
}

var (
	profileName     string
	profileQuitDate string
	profilePerDay   float64
	profileTriggers string
	profileStates   string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show your profile",
	RunE:  runProfileShow,
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update your profile",
	Long: `Update your profile. Only the flags you pass change; everything else
is preserved. Your smoking archetype is recomputed from triggers and
emotional states on every update.`,
	RunE: runProfileSet,
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	profile, err := d.DB.GetProfile(d.LocalUserID)
	if err != nil {
		return err
	}
	if profile == nil {
		fmt.Println("No profile yet. Run 'exhale profile set' to create one.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Name\t%s\n", profile.Name)
	if profile.HasQuitDate() {
		fmt.Fprintf(w, "Quit date\t%s\n", profile.QuitDate.Format("2006-01-02"))
	} else {
		fmt.Fprintf(w, "Quit date\t(not set)\n")
	}
	fmt.Fprintf(w, "Cigarettes per day\t%.0f\n", profile.DailyConsumption)
	fmt.Fprintf(w, "Triggers\t%s\n", joinTriggers(profile.Triggers))
	fmt.Fprintf(w, "Emotional states\t%s\n", joinStates(profile.EmotionalStates))
	fmt.Fprintf(w, "Archetype\t%s\n", profile.Archetype)
	return w.Flush()
}

func runProfileSet(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	existing, err := d.DB.GetProfile(d.LocalUserID)
	if err != nil {
		return err
	}

	profile := domain.UserProfile{UserID: d.LocalUserID}
	if existing != nil {
		profile = *existing
	}

	if cmd.Flags().Changed("name") {
		profile.Name = profileName
	}
	if cmd.Flags().Changed("quit-date") {
		quit, err := time.Parse("2006-01-02", profileQuitDate)
		if err != nil {
			return fmt.Errorf("quit-date: %w", err)
		}
		profile.QuitDate = quit
	}
	if cmd.Flags().Changed("per-day") {
		profile.DailyConsumption = profilePerDay
	}
	if cmd.Flags().Changed("triggers") {
		profile.Triggers = splitTriggers(profileTriggers)
	}
	if cmd.Flags().Changed("emotions") {
		profile.EmotionalStates = splitStates(profileStates)
	}
	profile.Archetype = archetype.Classify(profile.Triggers, profile.EmotionalStates)

	if err := d.DB.PutProfile(profile); err != nil {
		return err
	}

	fmt.Println("Profile updated.")
	fmt.Printf("Archetype: %s\n", profile.Archetype)
	return nil
}

func splitTriggers(s string) []domain.Trigger {
	var out []domain.Trigger
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, domain.Trigger(part))
		}
	}
	return out
}

func splitStates(s string) []domain.EmotionalState {
	var out []domain.EmotionalState
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, domain.EmotionalState(part))
		}
	}
	return out
}

func joinTriggers(ts []domain.Trigger) string {
	if len(ts) == 0 {
		return "(none)"
	}
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}

func joinStates(es []domain.EmotionalState) string {
	if len(es) == 0 {
		return "(none)"
	}
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = string(e)
	}
	return strings.Join(parts, ", ")
}
