// Package clearance renders resolved departure rules as a clearance
// delivery phrase.
package clearance

import (
	"log/slog"
	"strings"

	"atcdel/internal/models"
)

const separator = ", "

// Build renders the clearance for fp. Clauses whose data is missing are
// omitted; Build never fails.
func Build(fp *models.FlightPlan, rd models.RulesDetails, runwayConfig string) string {
	if fp == nil {
		return ""
	}

	var clauses []string
	if fp.IsVFR() {
		clauses = vfrClauses(fp, rd)
	} else {
		clauses = ifrClauses(fp, rd)
	}
	if rd.Frequency != "" {
		clauses = append(clauses, "Departure frequency "+rd.Frequency)
	}
	clauses = append(clauses, "Squawk "+fp.Squawk.String())

	slog.Debug("Built clearance",
		"ident", fp.Ident,
		"runway_config", runwayConfig,
		"clauses", len(clauses),
	)
	return strings.Join(clauses, separator)
}

func ifrClauses(fp *models.FlightPlan, rd models.RulesDetails) []string {
	clauses := []string{
		fp.Ident + " GND",
		strings.TrimSpace("Cleared to " + fp.DestinationICAO),
	}

	if rd.SID != nil && rd.SID.Name != "" {
		clauses = append(clauses, rd.SID.Name+" departure")
	} else {
		clauses = append(clauses, "direct")
	}

	switch {
	case rd.Transition != "":
		clauses = append(clauses, rd.Transition+" transition")
	case rd.Waypoint != "":
		if rd.SID != nil && rd.SID.IsRadar() {
			clauses = append(clauses, "Radar vectors "+rd.Waypoint)
		} else {
			clauses = append(clauses, "then "+rd.Waypoint)
		}
	}

	if dep := rd.IFRDeparture; dep != nil {
		top := dep.TopAltitude
		switch {
		case dep.CVS:
			clauses = append(clauses, "Climb via SID")
			if top != "" && top != models.TopAltitudeAsPublished {
				clauses = append(clauses, "Except maintain "+top)
			}
		case top != "" && top != models.TopAltitudeAsPublished:
			clauses = append(clauses, "Maintain "+top)
		}
	}
	return clauses
}

func vfrClauses(fp *models.FlightPlan, rd models.RulesDetails) []string {
	clauses := []string{fp.Ident + " GND"}
	if rd.VFRInstructions != "" {
		clauses = append(clauses, "On departure "+rd.VFRInstructions)
	}
	if rd.VFRAltitude != "" {
		clauses = append(clauses, "Maintain VFR "+rd.VFRAltitude)
	}
	return clauses
}
