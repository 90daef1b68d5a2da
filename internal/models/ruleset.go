package models

import "slices"

// SIDTypeRadar marks a SID flown on radar vectors after departure
const SIDTypeRadar = "RADAR"

// TopAltitudeAsPublished is the top altitude sentinel meaning the SID's
// published altitudes apply
const TopAltitudeAsPublished = "SID"

// RuleSet describes an airport's departure rules. Any section may be
// absent (nil), in which case the branch that needs it does not apply.
type RuleSet struct {
	RunwayConfigurations []string                  `yaml:"runway_configurations" validate:"dive,required"`
	SIDs                 map[string]SID            `yaml:"sids" validate:"omitempty,dive"`
	IFRDepartures        map[string][]IFRDeparture `yaml:"ifr_departures" validate:"omitempty,dive,dive"`
	VFRDepartures        map[string][]VFRDeparture `yaml:"vfr_departures" validate:"omitempty,dive,dive"`
	DepartureFrequencies map[string]string         `yaml:"departure_frequencies"`
}

// SID is a standard instrument departure definition
type SID struct {
	Name        string   `yaml:"name" validate:"required"`
	Type        string   `yaml:"type"`
	Transitions []string `yaml:"transitions"`
	Waypoints   []string `yaml:"waypoints"`
}

// IFRDeparture is an IFR departure procedure for a runway configuration
type IFRDeparture struct {
	SID                string   `yaml:"sid" validate:"required"`
	Waypoints          []string `yaml:"waypoints"`
	CVS                bool     `yaml:"cvs"`
	TopAltitude        string   `yaml:"top_altitude"`
	DepartureFrequency string   `yaml:"departure_frequency"`
	AircraftTypes      []string `yaml:"aircraft_types"`
}

// VFRDeparture is a VFR departure procedure for a set of sectors
type VFRDeparture struct {
	Direction          []string `yaml:"direction" validate:"min=1,dive,required"`
	Altitude           string   `yaml:"altitude"`
	Instructions       string   `yaml:"instructions"`
	DepartureFrequency string   `yaml:"departure_frequency"`
}

// IsRadar reports whether the SID is radar vectored
func (s SID) IsRadar() bool {
	return s.Type == SIDTypeRadar
}

// HasTransition reports whether token is one of the SID's transitions
func (s SID) HasTransition(token string) bool {
	return slices.Contains(s.Transitions, token)
}

// HasWaypoint reports whether token is one of the SID's waypoints
func (s SID) HasWaypoint(token string) bool {
	return slices.Contains(s.Waypoints, token)
}

// HasWaypoint reports whether token is one of the procedure's waypoints
func (d IFRDeparture) HasWaypoint(token string) bool {
	return slices.Contains(d.Waypoints, token)
}

// Covers reports whether the procedure applies to the given sector
func (d VFRDeparture) Covers(sector string) bool {
	return slices.Contains(d.Direction, sector)
}

// HasRunwayConfiguration reports whether config is a known runway configuration
func (rs *RuleSet) HasRunwayConfiguration(config string) bool {
	return rs != nil && slices.Contains(rs.RunwayConfigurations, config)
}

// HasIFR reports whether both the SID and IFR departure sections are present
func (rs *RuleSet) HasIFR() bool {
	return rs != nil && rs.SIDs != nil && rs.IFRDepartures != nil
}

// HasVFR reports whether the VFR departure section is present
func (rs *RuleSet) HasVFR() bool {
	return rs != nil && rs.VFRDepartures != nil
}

// LookupSID returns the SID registered under id
func (rs *RuleSet) LookupSID(id string) (SID, bool) {
	if rs == nil || rs.SIDs == nil {
		return SID{}, false
	}
	sid, ok := rs.SIDs[id]
	return sid, ok
}

// IFRProcedures returns the IFR departure procedures of a runway configuration
func (rs *RuleSet) IFRProcedures(config string) ([]IFRDeparture, bool) {
	if rs == nil || rs.IFRDepartures == nil {
		return nil, false
	}
	procs, ok := rs.IFRDepartures[config]
	return procs, ok
}

// VFRProcedures returns the VFR departure procedures of a runway configuration
func (rs *RuleSet) VFRProcedures(config string) ([]VFRDeparture, bool) {
	if rs == nil || rs.VFRDepartures == nil {
		return nil, false
	}
	procs, ok := rs.VFRDepartures[config]
	return procs, ok
}

// LookupFrequency returns the displayable frequency for key
func (rs *RuleSet) LookupFrequency(key string) (string, bool) {
	if rs == nil || rs.DepartureFrequencies == nil || key == "" {
		return "", false
	}
	freq, ok := rs.DepartureFrequencies[key]
	return freq, ok
}
