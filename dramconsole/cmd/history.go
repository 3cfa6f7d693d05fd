package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tr-rocks/litex/datarecording"
	"github.com/tr-rocks/litex/tracing"
)

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history <recording>",
		Short: "List the campaigns of a recorded session.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printHistory(cmd, args[0], limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "show at most this many campaigns")

	return cmd
}

func printHistory(cmd *cobra.Command, path string, limit int) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}

	reader, err := datarecording.NewReader(path)
	if err != nil {
		return err
	}
	defer reader.Close()

	reader.MapTable(tracing.CampaignEventTable, tracing.CampaignEventEntry{})

	results, total, err := reader.Query(cmd.Context(),
		tracing.CampaignEventTable, datarecording.QueryParams{
			Where:   "Kind = ?",
			Args:    []any{"result"},
			OrderBy: "Seq",
			Limit:   limit,
		})
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d campaigns recorded\n", total)

	for _, r := range results {
		e := r.(*tracing.CampaignEventEntry)

		outcome := e.To
		if e.Err != "" {
			outcome += " (" + e.Err + ")"
		}

		fmt.Fprintf(out, "%s  %s  %d entries  %s\n",
			e.Time, e.RunID, e.Entries, outcome)
	}

	return nil
}
