package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"atcdel/internal/models"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// renderFlightPlan prints the flight strip of fp
func renderFlightPlan(w io.Writer, fp *models.FlightPlan) {
	fmt.Fprintf(w, "Flight Plan - %s\n", fp.Ident)
	tw := newTable(w)
	fmt.Fprintf(tw, "Callsign\t%s\tA/C Type\t%s\tFlight Rules\t%s\n", fp.Ident, fp.AircraftType, fp.FlightRules())
	fmt.Fprintf(tw, "Depart\t%s\tArrive\t%s\tAlternate\t\n", fp.OriginICAO, fp.DestinationICAO)
	fmt.Fprintf(tw, "Cruise Alt\tN/A\tScratchpad\t\tSquawk\t%s\n", fp.Squawk)
	fmt.Fprintf(tw, "Route\t%s\n", fp.Route)
	tw.Flush()
}

// renderDetails prints the enrichment of fp
func renderDetails(w io.Writer, fp *models.FlightPlan) {
	dest := fp.DestinationDetails.Name
	if fp.DestinationDetails.City != "" {
		dest += " - " + fp.DestinationDetails.City
	}

	tw := newTable(w)
	fmt.Fprintf(tw, "Dest. ICAO\t%s\tDest. Name\t%s\n", fp.DestinationICAO, dest)
	fmt.Fprintf(tw, "Operator ICAO\t%s\tOperator Callsign\t%s\n", fp.OperatorICAO, fp.OperatorDetails.Callsign)
	fmt.Fprintf(tw, "Aircraft Type\t%s\tAircraft Details\t%s\n", fp.AircraftType, fp.AircraftDetails.Summary())
	fmt.Fprintf(tw, "Origin METAR\t%s\n", fp.OriginMETAR)
	tw.Flush()
}

// renderRulesDetails prints the resolved procedure next to the clearance
func renderRulesDetails(w io.Writer, rd models.RulesDetails) {
	tw := newTable(w)
	switch {
	case rd.VFRDeparture != nil:
		fmt.Fprintf(tw, "Direction\t%s\n", strings.Join(rd.VFRDeparture.Direction, " "))
		fmt.Fprintf(tw, "Altitude\t%s\n", rd.VFRAltitude)
	case rd.IFRDeparture != nil:
		fmt.Fprintf(tw, "SID\t%s\n", rd.IFRDeparture.SID)
		if rd.Transition != "" {
			fmt.Fprintf(tw, "Transition\t%s\n", rd.Transition)
		}
		if rd.Waypoint != "" {
			fmt.Fprintf(tw, "Waypoint\t%s\n", rd.Waypoint)
		}
		if rd.IFRDeparture.TopAltitude != "" {
			fmt.Fprintf(tw, "Top Altitude\t%s\n", rd.IFRDeparture.TopAltitude)
		}
		if len(rd.IFRDeparture.AircraftTypes) > 0 {
			fmt.Fprintf(tw, "Aircraft Types\t%s\n", strings.Join(rd.IFRDeparture.AircraftTypes, " "))
		}
	default:
		fmt.Fprintln(tw, "No matching departure procedure")
	}
	if rd.Frequency != "" {
		fmt.Fprintf(tw, "Frequency\t%s\n", rd.Frequency)
	}
	tw.Flush()
}

// renderRuleSet lists the runway configurations of rs with procedure counts
func renderRuleSet(w io.Writer, rs *models.RuleSet) {
	tw := newTable(w)
	fmt.Fprintln(tw, "Runway Config\tIFR Procedures\tVFR Procedures")
	for _, cfg := range rs.RunwayConfigurations {
		ifr, _ := rs.IFRProcedures(cfg)
		vfr, _ := rs.VFRProcedures(cfg)
		fmt.Fprintf(tw, "%s\t%d\t%d\n", cfg, len(ifr), len(vfr))
	}
	tw.Flush()

	sids := make([]string, 0, len(rs.SIDs))
	for name := range rs.SIDs {
		sids = append(sids, name)
	}
	sort.Strings(sids)
	fmt.Fprintf(w, "SIDs: %s\n", strings.Join(sids, " "))
}
