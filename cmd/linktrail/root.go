// Package main provides the entry point for the linktrail CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for linktrail.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "linktrail",
		Short: "Polite same-site web crawler",
		Long: `linktrail crawls a website breadth-first, staying on the seed's host,
and appends every visited URL to a text file.

By default pages are rendered in a headless browser so links inserted
by scripts are discovered too. Use --static for plain HTTP fetching.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewCrawlCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
