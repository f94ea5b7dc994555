package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mindora-app/mindora/internal/assessment"
	"github.com/mindora-app/mindora/internal/store"
)

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Burnout self-assessment",
}

var assessQuestionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "List question ids, for writing an answers file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cats, err := selectCategories(cmd)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		for _, c := range cats {
			fmt.Fprintf(w, "%s (%s)\n", c.Title, c.ID)
			for _, q := range c.Questions {
				fmt.Fprintf(w, "  %-4s %s\n", q.ID, q.Text)
			}
		}
		fmt.Fprintln(w)
		fmt.Fprint(w, "Answer scale:")
		for _, o := range assessment.LikertOptions {
			fmt.Fprintf(w, "  %d=%s", o.Score, o.Label)
		}
		fmt.Fprintln(w)
		return nil
	},
}

var assessScoreCmd = &cobra.Command{
	Use:   "score <answers.yaml>",
	Short: "Score an answers file (question id: 0-4), use - for stdin",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cats, err := selectCategories(cmd)
		if err != nil {
			return err
		}
		answers, err := readAnswers(cmd.InOrStdin(), args[0])
		if err != nil {
			return err
		}

		data := scoreAssessment(cats, answers)
		printAssessment(cmd.OutOrStdout(), cats, data)

		if save, _ := cmd.Flags().GetBool("save"); save {
			st, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()
			if err := st.EventRepo().AppendAssessmentEvent(cmd.Context(), data); err != nil {
				return fmt.Errorf("save assessment: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Saved.")
		}
		return nil
	},
}

var assessHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List past assessment results",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		events, err := st.EventRepo().QueryAssessmentEvents(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query assessments: %w", err)
		}
		w := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(w, "No assessments yet.")
			return nil
		}
		fmt.Fprintf(w, "%-16s  %-18s  %5s  %s\n", "Date", "Scope", "Score", "Band")
		fmt.Fprintln(w, strings.Repeat("─", 72))
		for _, e := range events {
			fmt.Fprintf(w, "%-16s  %-18s  %5.2f  %s\n",
				e.Timestamp.Local().Format("2006-01-02 15:04"), e.Scope, e.Score, e.Band)
		}
		return nil
	},
}

// selectCategories returns the category named by --category, or all of
// them.
func selectCategories(cmd *cobra.Command) ([]assessment.Category, error) {
	id, _ := cmd.Flags().GetString("category")
	if id == "" || id == store.ScopeFull {
		return assessment.BurnoutCategories(), nil
	}
	c, err := assessment.GetCategory(id)
	if err != nil {
		return nil, err
	}
	return []assessment.Category{c}, nil
}

// readAnswers decodes a YAML (or JSON) mapping of question id to score.
func readAnswers(stdin io.Reader, path string) (*assessment.AnswerSet, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read answers: %w", err)
	}
	var m map[string]int
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse answers: %w", err)
	}
	for id, v := range m {
		if v < assessment.MinScore || v > assessment.MaxScore {
			return nil, fmt.Errorf("answer %s = %d is outside %d-%d", id, v, assessment.MinScore, assessment.MaxScore)
		}
	}
	return assessment.AnswerSetFrom(m), nil
}

// scoreAssessment builds the event recorded for answers over cats: the
// category's own result for one category, the pooled overall result
// with per-category scores otherwise.
func scoreAssessment(cats []assessment.Category, answers *assessment.AnswerSet) store.AssessmentEventData {
	if len(cats) == 1 {
		r := assessment.ScoreCategory(cats[0], answers)
		return store.AssessmentEventData{
			Scope:    cats[0].ID,
			Score:    r.Score,
			Band:     r.Band,
			Answered: r.Answered,
			Total:    r.Total,
			Answers:  answers.Map(),
		}
	}
	overall := assessment.ScoreOverall(cats, answers, assessment.OverallBands)
	data := store.AssessmentEventData{
		Scope:      store.ScopeFull,
		Score:      overall.Score,
		Band:       overall.Band,
		Answered:   overall.Answered,
		Total:      overall.Total,
		Categories: make(map[string]float64, len(cats)),
		Answers:    answers.Map(),
	}
	for id, r := range assessment.ScoreAll(cats, answers) {
		data.Categories[id] = r.Score
	}
	return data
}

func printAssessment(w io.Writer, cats []assessment.Category, data store.AssessmentEventData) {
	answers := assessment.AnswerSetFrom(data.Answers)
	label := "Overall"
	if len(cats) == 1 {
		label = cats[0].Title
	} else {
		for _, c := range cats {
			r := assessment.ScoreCategory(c, answers)
			fmt.Fprintf(w, "%-22s %4.2f  %-28s (%d/%d answered)\n", c.Title, r.Score, r.Band, r.Answered, r.Total)
		}
		fmt.Fprintln(w, strings.Repeat("─", 72))
	}
	fmt.Fprintf(w, "%-22s %4.2f  %s (%d/%d answered)\n", label, data.Score, data.Band, data.Answered, data.Total)
}

func init() {
	assessCmd.PersistentFlags().StringP("category", "c", "", "Limit to one category id (default: all)")
	assessScoreCmd.Flags().Bool("save", false, "Record the result in your history")
	assessHistoryCmd.Flags().IntP("limit", "n", 20, "Number of results to show")

	assessCmd.AddCommand(assessQuestionsCmd, assessScoreCmd, assessHistoryCmd)
}
