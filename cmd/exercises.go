package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mindora-app/mindora/internal/exercises"
)

var exercisesCmd = &cobra.Command{
	Use:     "exercises",
	Aliases: []string{"ex"},
	Short:   "Browse the exercise catalog",
}

var exercisesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List exercises (optionally filtered by category or search text)",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		search, _ := cmd.Flags().GetString("search")

		catalog, err := loadCatalog()
		if err != nil {
			return err
		}
		list := catalog.Filter(category, search)
		w := cmd.OutOrStdout()
		if len(list) == 0 {
			fmt.Fprintln(w, "No exercises match.")
			return nil
		}
		fmt.Fprintf(w, "%-22s  %-28s  %-12s  %s\n", "ID", "Title", "Category", "Duration")
		fmt.Fprintln(w, strings.Repeat("─", 76))
		for _, e := range list {
			fmt.Fprintf(w, "%-22s  %-28s  %-12s  %s\n",
				e.ID, truncate(e.Title, 28), catalog.CategoryName(e.Category), exercises.FormatDuration(e.Duration))
		}
		return nil
	},
}

var exercisesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show an exercise and its step timings",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := loadCatalog()
		if err != nil {
			return err
		}
		e, err := catalog.Get(args[0])
		if err != nil {
			return err
		}
		seq, err := e.NewSequencer()
		if err != nil {
			return fmt.Errorf("exercise %s: %w", e.ID, err)
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%s\n%s\n\n", e.Title, e.Description)
		fmt.Fprintf(w, "Category:  %s\n", catalog.CategoryName(e.Category))
		fmt.Fprintf(w, "Duration:  %s\n\n", exercises.FormatDuration(e.Duration))
		durations := seq.Durations()
		for i, step := range seq.Steps() {
			fmt.Fprintf(w, "%2d. [%s] %s\n", i+1, exercises.FormatClock(durations[i]), step)
		}
		return nil
	},
}

func init() {
	exercisesListCmd.Flags().StringP("category", "c", exercises.AllCategories, "Category id")
	exercisesListCmd.Flags().StringP("search", "s", "", "Case-insensitive text in title or description")

	exercisesCmd.AddCommand(exercisesListCmd, exercisesShowCmd)
}
