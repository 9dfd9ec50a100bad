package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the search result cache",
}

var cacheFlushCmd = &cobra.Command{
	Use:   "flush",
	Short: "Drop every cached search result",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withEnv(cmd, envNeeds{Redis: true}, func(ctx context.Context, env *adminEnv) error {
			n, err := env.Cache.Flush(ctx)
			if err != nil {
				return fmt.Errorf("flush cache: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Flushed %d cached search(es)\n", n)
			return nil
		})
	},
}

var upstreamCmd = &cobra.Command{
	Use:   "upstream",
	Short: "Check the travel API",
}

var upstreamPingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the travel API answers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withEnv(cmd, envNeeds{API: true}, func(ctx context.Context, env *adminEnv) error {
			start := time.Now()
			if err := env.API.Ping(ctx); err != nil {
				return fmt.Errorf("travel api unreachable: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Travel API reachable (%s)\n", time.Since(start).Truncate(time.Millisecond))
			return nil
		})
	},
}

func init() {
	cacheCmd.AddCommand(cacheFlushCmd)
	upstreamCmd.AddCommand(upstreamPingCmd)
	rootCmd.AddCommand(cacheCmd, upstreamCmd)
}
