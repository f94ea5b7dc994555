package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mindora-app/mindora/internal/progress"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show your wellness statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		weeks, _ := cmd.Flags().GetInt("weeks")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		in, err := progress.Load(cmd.Context(), st.EventRepo(), st.JournalRepo())
		if err != nil {
			return err
		}
		now := time.Now()
		sum := progress.Summarize(in, now)

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Streak:               %d days\n", sum.Streak)
		if sum.CurrentStress >= 0 {
			fmt.Fprintf(w, "Stress this week:     %.0f%%", sum.CurrentStress)
			if sum.HasTrend {
				fmt.Fprintf(w, " (%+.0f pts vs last week)", -sum.Improvement)
			}
			fmt.Fprintln(w)
		} else {
			fmt.Fprintln(w, "Stress this week:     no mood checks")
		}
		fmt.Fprintf(w, "Mood checks:          %d\n", sum.MoodChecks)
		fmt.Fprintf(w, "Sessions completed:   %d (%d this month, %d min)\n",
			sum.SessionsCompleted, sum.SessionsThisMonth, sum.MinutesPracticed)
		fmt.Fprintf(w, "Journal entries:      %d\n", sum.JournalEntries)
		if b := sum.LatestBurnout; b != nil {
			fmt.Fprintf(w, "Latest burnout check: %.2f %s (%s)\n", b.Score, b.Band, b.Timestamp.Local().Format("2006-01-02"))
		}

		fmt.Fprintln(w)
		fmt.Fprintf(w, "%-8s  %-24s  %s\n", "Week", "Stress", "Sessions")
		fmt.Fprintln(w, strings.Repeat("─", 48))
		stress := progress.WeeklyStress(in.Moods, now, weeks)
		sessions := progress.WeeklySessions(in.Sessions, now, weeks)
		for i := range stress {
			level := "-"
			if stress[i].Count > 0 {
				level = fmt.Sprintf("%-20s %3.0f%%", strings.Repeat("█", int(stress[i].Value/5)), stress[i].Value)
			}
			fmt.Fprintf(w, "%-8s  %-24s  %.0f\n", stress[i].Label, level, sessions[i].Value)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().Int("weeks", 6, "Number of weeks in the trend table")
}
