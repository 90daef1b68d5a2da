package cli

import (
	"fmt"

	"atcdel/internal/rules"

	"github.com/spf13/cobra"
)

func newRulesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rules [path]",
		Short: "Validate a departure rule set",
		Long: `Load a departure rule set, report whether it is valid and list its runway
configurations. Without a path the configured rules file is checked.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configFrom(cmd).RulesPath
			if len(args) > 0 {
				path = args[0]
			}

			rs, err := rules.Load(path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: ok\n", path)
			renderRuleSet(out, rs)
			return nil
		},
	}
}
