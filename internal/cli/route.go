package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"atcdel/internal/aeroapi"
	"atcdel/internal/avwx"
	"atcdel/internal/clearance"
	"atcdel/internal/config"
	"atcdel/internal/database"
	"atcdel/internal/metrics"
	"atcdel/internal/models"
	"atcdel/internal/resolver"
	"atcdel/internal/rules"
	"atcdel/internal/source"
	"atcdel/internal/synth"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

const (
	detailsCacheSize = 256
	detailsCacheTTL  = 12 * time.Hour
	retryBackoff     = time.Second
)

var trafficTypes = []string{"ALL", "AIRLINE", "GA"}

func newRouteCommand() *cobra.Command {
	var (
		useCache    bool
		details     bool
		number      int
		vfr         int
		trafficType string
		waypoint    string
	)

	cmd := &cobra.Command{
		Use:   "route ORIGIN",
		Short: "Walk through flight plans departing an airport",
		Long: `Build a batch of flight plans departing ORIGIN from recent real departures
and generated VFR traffic, then step through them one at a time. For each plan
you can show operator, aircraft and weather details or the expected clearance.`,
		Example: `  # Ten recent departures from Atlanta
  atcdel route KATL

  # Mixed batch from the local cache, three of them VFR
  atcdel route KATL --cache --number 8 --vfr 3 --runway-config WEST`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFrom(cmd)
			ctx := cmd.Context()
			origin := strings.ToUpper(strings.TrimSpace(args[0]))

			trafficType = strings.ToUpper(trafficType)
			if !slices.Contains(trafficTypes, trafficType) {
				return fmt.Errorf("invalid traffic type %q (must be one of %s)", trafficType, strings.Join(trafficTypes, ", "))
			}
			if number < 0 {
				return fmt.Errorf("number must not be negative")
			}

			engine, runwayConfig, err := loadEngine(cfg, false)
			if err != nil {
				return err
			}

			var m *metrics.Collector
			if cfg.MetricsAddr != "" {
				m, err = metrics.New(prometheus.NewRegistry())
				if err != nil {
					return err
				}
				serveCtx, cancel := context.WithCancel(ctx)
				defer cancel()
				go func() {
					if err := m.Serve(serveCtx, cfg.MetricsAddr); err != nil {
						slog.Error("Metrics server stopped", "error", err)
					}
				}()
			}

			db, err := database.New(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			defer db.Close()

			src := newSource(cfg, db, useCache, m)
			synthesizer := synth.New(src, synth.WithCache(src), synth.WithMetrics(m))

			slog.Info("Loading flight plans",
				"origin", origin,
				"number", number,
				"vfr", vfr,
				"type", trafficType,
				"waypoint", waypoint,
				"cache", useCache,
				"runway_config", runwayConfig,
			)
			plans := synthesizer.FlightPlans(ctx, synth.Request{
				Origin:  origin,
				Number:  number,
				VFR:     vfr,
				Details: details,
				Filter:  models.DepartureFilter{TrafficType: trafficType, Waypoint: waypoint},
			})
			if len(plans) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No flight plans found")
				return nil
			}

			w := &walker{
				in:           bufio.NewReader(cmd.InOrStdin()),
				out:          cmd.OutOrStdout(),
				details:      details,
				enricher:     source.NewEnricher(src, detailsCacheSize, detailsCacheTTL),
				engine:       engine,
				runwayConfig: runwayConfig,
				metrics:      m,
			}
			return w.walk(ctx, plans)
		},
	}

	cmd.Flags().BoolVar(&useCache, "cache", false, "read departures from the local cache instead of AeroAPI")
	cmd.Flags().BoolVarP(&details, "details", "d", false, "allow loading operator, aircraft and weather details")
	cmd.Flags().IntVarP(&number, "number", "n", 10, "number of flight plans")
	cmd.Flags().IntVar(&vfr, "vfr", 0, "how many of the flight plans are generated VFR traffic")
	cmd.Flags().StringVarP(&trafficType, "type", "t", "ALL", "traffic type (ALL, AIRLINE, GA)")
	cmd.Flags().StringVarP(&waypoint, "waypoint", "w", "", "only departures whose route contains this waypoint")
	cmd.Flags().String("runway-config", "", "runway configuration used for clearances")
	cmd.Flags().String("metrics-addr", "", "serve Prometheus metrics on this address")

	return cmd
}

// walker steps through a batch of plans interactively
type walker struct {
	in           *bufio.Reader
	out          io.Writer
	details      bool
	enricher     *source.Enricher
	engine       *resolver.Engine
	runwayConfig string
	metrics      *metrics.Collector
}

func (w *walker) walk(ctx context.Context, plans []*models.FlightPlan) error {
	for i, fp := range plans {
		fmt.Fprintf(w.out, "\n[%d/%d] ", i+1, len(plans))
		renderFlightPlan(w.out, fp)

		for next := false; !next; {
			if ctx.Err() != nil {
				return nil
			}
			action, err := w.prompt()
			if err != nil {
				if errors.Is(err, io.EOF) {
					return nil
				}
				return err
			}

			switch action {
			case "d":
				if !w.details {
					fmt.Fprintln(w.out, "Details are disabled, rerun with --details")
					continue
				}
				w.enricher.Enrich(ctx, fp)
				renderDetails(w.out, fp)
			case "c":
				if w.engine == nil {
					fmt.Fprintln(w.out, "No rule set loaded")
					continue
				}
				issueClearance(w.out, w.engine, fp, w.runwayConfig, w.metrics)
			case "q":
				return nil
			default:
				next = true
			}
		}
	}
	return nil
}

func (w *walker) prompt() (string, error) {
	choices := "(c)learance, (N)ext or (q)uit"
	if w.details {
		choices = "(d)etails, " + choices
	}
	fmt.Fprintf(w.out, "Select an action %s: ", choices)

	line, err := w.in.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		return "", err
	}
	return strings.ToLower(strings.TrimSpace(line)), nil
}

// issueClearance resolves fp and prints the procedure and clearance
func issueClearance(out io.Writer, engine *resolver.Engine, fp *models.FlightPlan, runwayConfig string, m *metrics.Collector) {
	rd := engine.Resolve(fp, runwayConfig)
	m.ObserveResolution(fp.FlightRules(), rd.HasDeparture())

	renderRulesDetails(out, rd)
	fmt.Fprintf(out, "Clearance: %s\n", clearance.Build(fp, rd, runwayConfig))
}

// loadEngine loads the configured rule set. A missing file is fatal only
// when required is set. The runway configuration defaults to the first one
// the rule set defines.
func loadEngine(cfg *config.Config, required bool) (*resolver.Engine, string, error) {
	rs, err := rules.Load(cfg.RulesPath)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			slog.Warn("No rule set found, clearances disabled", "rules_path", cfg.RulesPath)
			return nil, cfg.RunwayConfig, nil
		}
		return nil, "", err
	}

	runwayConfig := cfg.RunwayConfig
	if runwayConfig == "" && len(rs.RunwayConfigurations) > 0 {
		runwayConfig = rs.RunwayConfigurations[0]
	}
	if !rs.HasRunwayConfiguration(runwayConfig) {
		slog.Warn("Unknown runway configuration, no procedures will match",
			"runway_config", runwayConfig,
			"known", rs.RunwayConfigurations,
		)
	}
	return resolver.New(rs), runwayConfig, nil
}

func newSource(cfg *config.Config, db *database.DB, useCache bool, m *metrics.Collector) *source.Source {
	flights := aeroapi.NewClient(cfg.AeroAPIToken,
		aeroapi.WithHTTPClient(&http.Client{Timeout: cfg.HTTP.Timeout}),
		aeroapi.WithRetries(cfg.HTTP.MaxRetries, retryBackoff),
	)
	if !useCache && !flights.HasToken() {
		slog.Warn("No AeroAPI token configured, only VFR traffic is available")
	}
	weather := avwx.NewClient(cfg.AVWXToken, avwx.DefaultBaseURL, cfg.HTTP.Timeout)

	return source.New(source.Config{
		Flights:  flights,
		Weather:  weather,
		Cache:    db.Departures(),
		UseCache: useCache,
		Metrics:  m,
	})
}
