package models

import (
	"fmt"
	"strings"
)

// VFRMarker is the first route token of a VFR flight plan
const VFRMarker = "VFR"

// Squawk code bounds for synthesized flight plans
const (
	MinSquawk Squawk = 100
	MaxSquawk Squawk = 6999
)

// Squawk is a transponder code stored as its four decimal digits (e.g., 0123)
type Squawk int

// String returns the code as 4 zero-padded digits
func (s Squawk) String() string {
	return fmt.Sprintf("%04d", int(s))
}

// Valid reports whether the code lies in [MinSquawk, MaxSquawk] and uses
// only the transponder digits 0-7
func (s Squawk) Valid() bool {
	if s < MinSquawk || s > MaxSquawk {
		return false
	}
	for v := int(s); v > 0; v /= 10 {
		if v%10 > 7 {
			return false
		}
	}
	return true
}

// FlightPlan is one synthesized training scenario
type FlightPlan struct {
	Ident           string
	AircraftType    string
	OriginICAO      string
	DestinationICAO string
	OperatorICAO    string
	Route           string
	Squawk          Squawk

	// Enrichment, filled lazily on user request
	AircraftDetails    AircraftType
	OperatorDetails    Operator
	OriginDetails      Airport
	DestinationDetails Airport
	OriginMETAR        string

	// RulesDetails is nil until the plan has been resolved
	RulesDetails *RulesDetails
}

// RouteTokens splits the route on whitespace
func (fp *FlightPlan) RouteTokens() []string {
	return strings.Fields(fp.Route)
}

// IsVFR reports whether the route starts with the VFR marker
func (fp *FlightPlan) IsVFR() bool {
	tokens := fp.RouteTokens()
	return len(tokens) > 0 && tokens[0] == VFRMarker
}

// FlightRules returns "VFR" or "IFR"
func (fp *FlightPlan) FlightRules() string {
	if fp.IsVFR() {
		return "VFR"
	}
	return "IFR"
}

// Sector returns the VFR departure sector, or "" for IFR plans
func (fp *FlightPlan) Sector() string {
	tokens := fp.RouteTokens()
	if len(tokens) < 2 || tokens[0] != VFRMarker {
		return ""
	}
	return tokens[1]
}

// Departure converts the plan back to a raw departure record, used when
// offering it to the record cache
func (fp *FlightPlan) Departure() Departure {
	d := Departure{
		Ident:        fp.Ident,
		AircraftType: fp.AircraftType,
		OperatorICAO: fp.OperatorICAO,
		Route:        fp.Route,
	}
	origin := fp.OriginDetails
	origin.CodeICAO = fp.OriginICAO
	d.Origin = &origin
	dest := fp.DestinationDetails
	dest.CodeICAO = fp.DestinationICAO
	d.Destination = &dest
	return d
}
