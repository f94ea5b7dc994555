package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mindora-app/mindora/internal/store"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Write and read journal entries",
}

var journalAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add an entry; the body comes from --body or stdin",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title := strings.TrimSpace(args[0])
		if title == "" {
			return fmt.Errorf("title is required")
		}
		body, _ := cmd.Flags().GetString("body")
		if !cmd.Flags().Changed("body") {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read body: %w", err)
			}
			body = string(data)
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		entry := &store.JournalEntry{Title: title, Body: strings.TrimSpace(body)}
		if latest, err := st.EventRepo().LatestMood(ctx); err == nil && latest != nil {
			entry.Mood = latest.Zone
		}
		if err := st.JournalRepo().Create(ctx, entry); err != nil {
			return fmt.Errorf("save entry: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved entry %d.\n", entry.ID)
		return nil
	},
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		full, _ := cmd.Flags().GetBool("full")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		entries, err := st.JournalRepo().List(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("list entries: %w", err)
		}
		w := cmd.OutOrStdout()
		if len(entries) == 0 {
			fmt.Fprintln(w, "No journal entries yet.")
			return nil
		}
		for _, e := range entries {
			fmt.Fprintf(w, "#%d  %s  %s\n", e.ID, e.CreatedAt.Local().Format("2006-01-02 15:04"), e.Title)
			if full {
				fmt.Fprintln(w, e.Body)
				fmt.Fprintln(w)
			} else if e.Body != "" {
				fmt.Fprintf(w, "    %s\n", e.Excerpt(70))
			}
		}
		return nil
	},
}

func init() {
	journalAddCmd.Flags().StringP("body", "b", "", "Entry text")
	journalListCmd.Flags().IntP("limit", "n", 10, "Number of entries to show")
	journalListCmd.Flags().Bool("full", false, "Print whole entries")

	journalCmd.AddCommand(journalAddCmd, journalListCmd)
}
