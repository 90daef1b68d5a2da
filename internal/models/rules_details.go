package models

// RulesDetails is the result of resolving a flight plan against a rule set
// for one runway configuration
type RulesDetails struct {
	SID             *SID
	IFRDeparture    *IFRDeparture
	VFRDeparture    *VFRDeparture
	Transition      string
	Waypoint        string
	Frequency       string
	VFRAltitude     string
	VFRInstructions string
}

// HasDeparture reports whether a departure procedure was matched
func (rd RulesDetails) HasDeparture() bool {
	return rd.IFRDeparture != nil || rd.VFRDeparture != nil
}

// IsEmpty reports whether nothing was resolved
func (rd RulesDetails) IsEmpty() bool {
	return rd == RulesDetails{}
}

// FrequencyKey returns the departure frequency key of the matched procedure
func (rd RulesDetails) FrequencyKey() (string, bool) {
	switch {
	case rd.IFRDeparture != nil && rd.IFRDeparture.DepartureFrequency != "":
		return rd.IFRDeparture.DepartureFrequency, true
	case rd.VFRDeparture != nil && rd.VFRDeparture.DepartureFrequency != "":
		return rd.VFRDeparture.DepartureFrequency, true
	}
	return "", false
}
