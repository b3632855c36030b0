// Package main provides the entry point for the credscan CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for credscan.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credscan",
		Short: "Credential-dump analyzer for identity-derived passwords",
		Long: `Credscan analyzes leaked credential dumps and quantifies how strongly
each account's password correlates with its own username or email.

It detects exact matches, substring containment, token reuse, leet-speak
obfuscation, and reversed usernames, and supplements the correlation
analysis with password entropy and keyboard-pattern statistics.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewAnalyzeCmd())
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
