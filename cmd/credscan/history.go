package main

import (
	"encoding/json"
	"fmt"

	"github.com/nao1215/credscan/internal/config"
	"github.com/nao1215/credscan/internal/database"
	"github.com/spf13/cobra"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [source]",
		Short: "Show stored analysis runs",
		Long: `History lists analysis runs stored in the result database.

Without arguments it lists the analyzed dump sources. With a source
argument it lists that source's runs, newest first, with their
correlation tallies.

Examples:
  # List all analyzed sources
  credscan history --list-sources

  # Show runs for one dump
  credscan history dump.txt

  # Show the last 5 runs as JSON
  credscan history --limit 5 --json dump.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().BoolP("list-sources", "l", false,
		"List analyzed dump sources instead of runs")
	cmd.Flags().IntP("limit", "n", 0,
		"Maximum number of runs to show (0 = all)")
	cmd.Flags().BoolP("json", "j", false,
		"Output as JSON")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	listSources, err := cmd.Flags().GetBool("list-sources")
	if err != nil {
		return err
	}

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}

	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	// Open the database read-only: history never creates it.
	db, err := database.Open(config.XDGDataDir(), database.Options{
		CreateIfNotExists: false,
		EnableWAL:         false,
	})
	if err != nil {
		return fmt.Errorf("no stored results: %w", err)
	}
	defer db.Close() //nolint:errcheck // Best effort cleanup

	ctx := cmd.Context()

	if listSources || len(args) == 0 {
		sources, err := db.ListSources(ctx)
		if err != nil {
			return err
		}
		if asJSON {
			return json.NewEncoder(cmd.OutOrStdout()).Encode(sources)
		}
		if len(sources) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No analyzed sources.")
			return nil
		}
		for _, s := range sources {
			fmt.Fprintln(cmd.OutOrStdout(), s)
		}
		return nil
	}

	history, err := db.GetRunHistory(ctx, args[0], limit)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(history)
	}

	if len(history) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No runs stored for %s.\n", args[0])
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%-36s  %-19s  %8s  %8s  %8s\n",
		"RUN ID", "TIMESTAMP", "RECORDS", "RELATED", "NONE")
	for _, meta := range history {
		fmt.Fprintf(cmd.OutOrStdout(), "%-36s  %-19s  %8d  %8d  %8d\n",
			meta.RunID,
			meta.Timestamp.Format("2006-01-02 15:04:05"),
			meta.TotalRecords,
			meta.Related,
			meta.NoRelation,
		)
	}

	return nil
}
