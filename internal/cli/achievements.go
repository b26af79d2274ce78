package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/exhale-health/exhale/internal/daemon"
)

func init() {
	rootCmd.AddCommand(achievementsCmd)
}

var achievementsCmd = &cobra.Command{
	Use:     "achievements",
	Aliases: []string{"ach"},
	Short:   "List achievements and unlocks",
	RunE:    runAchievements,
}

func runAchievements(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	catalog, err := d.Achievement.Catalog()
	if err != nil {
		return err
	}
	unlocks, err := d.Achievement.ListUnlocked(d.LocalUserID)
	if err != nil {
		return err
	}

	unlockedAt := make(map[string]string, len(unlocks))
	for _, ua := range unlocks {
		unlockedAt[ua.Key] = ua.UnlockedAt.Format("2006-01-02")
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ACHIEVEMENT\tTIER\tSTATUS")
	for _, def := range catalog {
		status := "locked"
		if at, ok := unlockedAt[def.Key]; ok {
			status = "unlocked " + at
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", def.Title, def.Tier, status)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\n%d of %d unlocked\n", len(unlocks), len(catalog))
	return nil
}
