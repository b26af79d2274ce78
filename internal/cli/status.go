package cli

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/exhale-health/exhale/internal/daemon"
	"github.com/exhale-health/exhale/internal/domain"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show your smoke-free progress",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
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
		fmt.Println("No profile yet. Run 'exhale profile set --quit-date YYYY-MM-DD --per-day N' to get started.")
		return nil
	}

	stats, unlocked, err := d.RefreshUser(d.LocalUserID, time.Now())
	if err != nil && !errors.Is(err, domain.ErrDataUnavailable) {
		return err
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "warning: some data unavailable, numbers may be stale")
	}

	calc := stats.Calculation

	if !profile.HasQuitDate() {
		fmt.Println("Quit date not set yet — no progress to show.")
		fmt.Println("Run 'exhale profile set --quit-date YYYY-MM-DD' when you're ready.")
		return nil
	}

	fmt.Printf("Smoke-free since %s\n\n", profile.QuitDate.Format("2006-01-02"))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Days smoke-free\t%d\n", calc.DaysSmokeFree)
	fmt.Fprintf(w, "Cigarettes not smoked\t%d\n", calc.CigarettesNotSmoked)
	fmt.Fprintf(w, "Money saved\t%.2f\n", calc.MoneySaved)
	fmt.Fprintf(w, "Life regained\t%.1f hours\n", calc.LifeRegainedHours)
	fmt.Fprintf(w, "Nicotine avoided\t%.0f mg\n", calc.NicotineNotConsumedMg)
	if calc.CigarettesSmoked > 0 {
		fmt.Fprintf(w, "Slips\t%d\n", calc.CigarettesSmoked)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	for _, def := range unlocked {
		fmt.Printf("\n🏆 Achievement unlocked: %s — %s\n", def.Title, def.Description)
	}
	return nil
}
