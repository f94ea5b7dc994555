package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mindora-app/mindora/internal/auth"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to your Mindora account",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		vals, err := ask([]string{email, password}, []promptField{
			{Label: "Email"},
			{Label: "Password", Secret: true},
		})
		if errors.Is(err, errCancelled) {
			return nil
		}
		if err != nil {
			return err
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		client := auth.NewClient(auth.ConfigFromEnv())
		session, err := client.SignIn(ctx, vals[0], vals[1])
		if err != nil {
			return userError(err)
		}
		if err := session.Save(ctx, st.KVRepo()); err != nil {
			return fmt.Errorf("save session: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Welcome back, %s.\n", session.User.DisplayName())
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a Mindora account",
	RunE: func(cmd *cobra.Command, args []string) error {
		first, _ := cmd.Flags().GetString("first-name")
		last, _ := cmd.Flags().GetString("last-name")
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		vals, err := ask([]string{first, last, email, password}, []promptField{
			{Label: "First name"},
			{Label: "Last name"},
			{Label: "Email"},
			{Label: "Password", Secret: true},
		})
		if errors.Is(err, errCancelled) {
			return nil
		}
		if err != nil {
			return err
		}

		client := auth.NewClient(auth.ConfigFromEnv())
		msg, err := client.Register(cmd.Context(), auth.RegisterInput{
			FirstName: vals[0],
			LastName:  vals[1],
			Email:     vals[2],
			Password:  vals[3],
		})
		if err != nil {
			return userError(err)
		}
		if msg == "" {
			msg = "Account created."
		}
		w := cmd.OutOrStdout()
		fmt.Fprintln(w, msg)
		fmt.Fprintln(w, "Sign in with: mindora login")
		return nil
	},
}

var forgotPasswordCmd = &cobra.Command{
	Use:   "forgot-password",
	Short: "Send a password reset link to your email",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		vals, err := ask([]string{email}, []promptField{{Label: "Email"}})
		if errors.Is(err, errCancelled) {
			return nil
		}
		if err != nil {
			return err
		}
		client := auth.NewClient(auth.ConfigFromEnv())
		msg, err := client.ForgotPassword(cmd.Context(), vals[0])
		if err != nil {
			return userError(err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := auth.ClearSession(cmd.Context(), st.KVRepo()); err != nil {
			return fmt.Errorf("clear session: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()
		session, err := auth.LoadSession(cmd.Context(), st.KVRepo())
		if err != nil {
			return fmt.Errorf("load session: %w", err)
		}
		w := cmd.OutOrStdout()
		if !session.SignedIn() {
			fmt.Fprintln(w, "Not signed in. Run: mindora login")
			return nil
		}
		u := session.User
		fmt.Fprintf(w, "Name:     %s\n", u.DisplayName())
		if u.FirstName != "" || u.LastName != "" {
			fmt.Fprintf(w, "Full:     %s %s\n", u.FirstName, u.LastName)
		}
		fmt.Fprintf(w, "Email:    %s\n", u.Email)
		if u.Username != "" {
			fmt.Fprintf(w, "Username: %s\n", u.Username)
		}
		return nil
	},
}

// userError turns a backend failure into the message the backend gave,
// keeping the original error for logs.
func userError(err error) error {
	slog.Warn("backend request failed", "error", err)
	var apiErr *auth.APIError
	if errors.As(err, &apiErr) {
		return errors.New(apiErr.Message)
	}
	return fmt.Errorf("%s (%w)", auth.MsgGeneric, err)
}

func init() {
	loginCmd.Flags().String("email", "", "Account email")
	loginCmd.Flags().String("password", "", "Account password (prompted when omitted)")

	registerCmd.Flags().String("first-name", "", "First name")
	registerCmd.Flags().String("last-name", "", "Last name")
	registerCmd.Flags().String("email", "", "Account email")
	registerCmd.Flags().String("password", "", "Account password (prompted when omitted)")

	forgotPasswordCmd.Flags().String("email", "", "Account email")
}
