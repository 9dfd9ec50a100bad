package main

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List, revoke and purge browser sessions",
	Long: `Manage signed-in browser sessions stored in Redis.

Upstream tokens are never printed.`,
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List live sessions, soonest expiry first",
	Args:  cobra.NoArgs,
	RunE:  runSessionsList,
}

var sessionsRevokeCmd = &cobra.Command{
	Use:   "revoke [session-id]",
	Short: "Sign out one session",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsRevoke,
}

var sessionsPurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Sign out every session",
	Long: `Delete every stored session. All users must sign in again.

Without --yes only the number of live sessions is reported.`,
	Args: cobra.NoArgs,
	RunE: runSessionsPurge,
}

var purgeConfirmed bool

func init() {
	sessionsPurgeCmd.Flags().BoolVar(&purgeConfirmed, "yes", false, "actually delete the sessions")
	sessionsCmd.AddCommand(sessionsListCmd, sessionsRevokeCmd, sessionsPurgeCmd)
	rootCmd.AddCommand(sessionsCmd)
}

func runSessionsList(cmd *cobra.Command, _ []string) error {
	return withEnv(cmd, envNeeds{Redis: true}, func(ctx context.Context, env *adminEnv) error {
		sessions, err := env.Sessions.List(ctx)
		if err != nil {
			return fmt.Errorf("list sessions: %w", err)
		}
		if len(sessions) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No active sessions.")
			return nil
		}

		now := time.Now()
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		if _, err := fmt.Fprintln(tw, "ID\tEMAIL\tEXPIRES\tREMAINING"); err != nil {
			return err
		}
		for _, s := range sessions {
			if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
				s.ID, displayEmail(s.Email), s.ExpiresAt.UTC().Format(time.RFC3339),
				s.ExpiresAt.Sub(now).Truncate(time.Second)); err != nil {
				return err
			}
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d session(s)\n", len(sessions))
		return nil
	})
}

func runSessionsRevoke(cmd *cobra.Command, args []string) error {
	id := args[0]
	if id == "" {
		return errors.New("session id is required")
	}
	return withEnv(cmd, envNeeds{Redis: true}, func(ctx context.Context, env *adminEnv) error {
		if err := env.Sessions.Delete(ctx, id); err != nil {
			return fmt.Errorf("revoke session: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Revoked session %s\n", id)
		return nil
	})
}

func runSessionsPurge(cmd *cobra.Command, _ []string) error {
	return withEnv(cmd, envNeeds{Redis: true}, func(ctx context.Context, env *adminEnv) error {
		if !purgeConfirmed {
			sessions, err := env.Sessions.List(ctx)
			if err != nil {
				return fmt.Errorf("list sessions: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d live session(s) would be deleted. Re-run with --yes to purge.\n", len(sessions))
			return nil
		}
		n, err := env.Sessions.Purge(ctx)
		if err != nil {
			return fmt.Errorf("purge sessions: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Purged %d session(s)\n", n)
		return nil
	})
}

func displayEmail(email string) string {
	if email == "" {
		return "-"
	}
	return email
}
