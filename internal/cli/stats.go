package cli

import (
	"fmt"

	"atcdel/internal/database"

	"github.com/spf13/cobra"
)

func newStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats [term]",
		Short: "Show departure cache statistics",
		Long: `Count the cached departures whose origin, destination or route contains
term. Without a term every cached departure is counted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFrom(cmd)
			term := ""
			if len(args) > 0 {
				term = args[0]
			}

			db, err := database.New(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			defer db.Close()

			count, err := db.Departures().Count(term)
			if err != nil {
				return err
			}

			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "Table\t# Records")
			fmt.Fprintf(tw, "departures\t%d\n", count)
			return tw.Flush()
		},
	}
}
