package cli

import (
	"fmt"
	"strings"

	"atcdel/internal/models"
	"atcdel/internal/synth"

	"github.com/spf13/cobra"
)

func newClearanceCommand() *cobra.Command {
	var (
		ident       string
		route       string
		origin      string
		destination string
		squawk      int
	)

	cmd := &cobra.Command{
		Use:   "clearance",
		Short: "Resolve the clearance for a hand-entered flight plan",
		Example: `  atcdel clearance --ident DAL12 --route "ABC XYZ J75 KJFK" --destination KJFK
  atcdel clearance --ident N123AB --route "VFR NE" --runway-config 18`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFrom(cmd)

			engine, runwayConfig, err := loadEngine(cfg, true)
			if err != nil {
				return err
			}

			fp := &models.FlightPlan{
				Ident:           strings.TrimSpace(ident),
				OriginICAO:      strings.ToUpper(strings.TrimSpace(origin)),
				DestinationICAO: strings.ToUpper(strings.TrimSpace(destination)),
				Route:           strings.TrimSpace(route),
			}
			if fp.Ident == "" || fp.Route == "" {
				return fmt.Errorf("ident and route are required")
			}

			if cmd.Flags().Changed("squawk") {
				fp.Squawk = models.Squawk(squawk)
				if !fp.Squawk.Valid() {
					return fmt.Errorf("invalid squawk %s", fp.Squawk)
				}
			} else {
				fp.Squawk = synth.New(nil).Squawk()
			}

			out := cmd.OutOrStdout()
			renderFlightPlan(out, fp)
			issueClearance(out, engine, fp, runwayConfig, nil)
			return nil
		},
	}

	cmd.Flags().StringVar(&ident, "ident", "", "callsign")
	cmd.Flags().StringVar(&route, "route", "", `filed route, or "VFR <sector>"`)
	cmd.Flags().StringVar(&origin, "origin", "", "origin ICAO")
	cmd.Flags().StringVar(&destination, "destination", "", "destination ICAO")
	cmd.Flags().IntVar(&squawk, "squawk", 0, "squawk code (random when unset)")
	cmd.Flags().String("runway-config", "", "runway configuration")
	cmd.MarkFlagRequired("ident")
	cmd.MarkFlagRequired("route")

	return cmd
}
