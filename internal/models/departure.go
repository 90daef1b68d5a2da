package models

import "strings"

// Airport is the airport block embedded in an AeroAPI departure record
type Airport struct {
	Code     string `json:"code"`
	CodeICAO string `json:"code_icao"`
	CodeIATA string `json:"code_iata"`
	Name     string `json:"name"`
	City     string `json:"city"`
}

// Departure is a raw departure record from the flight record source.
// Any field may be missing, in which case it is left empty.
type Departure struct {
	Ident        string   `json:"ident"`
	AircraftType string   `json:"aircraft_type"`
	OperatorICAO string   `json:"operator_icao"`
	Route        string   `json:"route"`
	Origin       *Airport `json:"origin"`
	Destination  *Airport `json:"destination"`
}

// OriginICAO returns the trimmed origin ICAO code, or "" when absent
func (d Departure) OriginICAO() string {
	if d.Origin == nil {
		return ""
	}
	return strings.TrimSpace(d.Origin.CodeICAO)
}

// DestinationICAO returns the trimmed destination ICAO code, or "" when absent
func (d Departure) DestinationICAO() string {
	if d.Destination == nil {
		return ""
	}
	return strings.TrimSpace(d.Destination.CodeICAO)
}

// DepartureKey is the natural key used to deduplicate cached departures
type DepartureKey struct {
	Ident           string
	AircraftType    string
	OriginICAO      string
	DestinationICAO string
	OperatorICAO    string
	Route           string
}

// Key returns the natural key of the record with all fields trimmed
func (d Departure) Key() DepartureKey {
	return DepartureKey{
		Ident:           strings.TrimSpace(d.Ident),
		AircraftType:    strings.TrimSpace(d.AircraftType),
		OriginICAO:      d.OriginICAO(),
		DestinationICAO: d.DestinationICAO(),
		OperatorICAO:    strings.TrimSpace(d.OperatorICAO),
		Route:           strings.TrimSpace(d.Route),
	}
}

// Normalized returns a copy of the record with every textual field trimmed
func (d Departure) Normalized() Departure {
	k := d.Key()
	n := Departure{
		Ident:        k.Ident,
		AircraftType: k.AircraftType,
		OperatorICAO: k.OperatorICAO,
		Route:        k.Route,
	}
	if d.Origin != nil {
		o := *d.Origin
		o.CodeICAO = k.OriginICAO
		n.Origin = &o
	}
	if d.Destination != nil {
		dst := *d.Destination
		dst.CodeICAO = k.DestinationICAO
		n.Destination = &dst
	}
	return n
}

// DepartureFilter narrows a departure search
type DepartureFilter struct {
	TrafficType string // ALL, AIRLINE or GA
	Waypoint    string // substring the route must contain
}
