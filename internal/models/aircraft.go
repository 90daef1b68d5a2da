package models

// AircraftType represents an aircraft type record as returned by AeroAPI
// All fields correspond to keys of the /aircraft/types/{type} response
type AircraftType struct {
	Manufacturer string `json:"manufacturer"` // Manufacturer name (e.g., Boeing)
	Type         string `json:"type"`         // Model name (e.g., 737-800)
	Description  string `json:"description"`  // Short description (e.g., twin-jet)
	EngineType   string `json:"engine_type"`  // Engine kind (Jet, Piston, Turboprop)
	EngineCount  int    `json:"engine_count"` // Number of engines
}

// IsZero reports whether no details were found for the type
func (a AircraftType) IsZero() bool {
	return a.Type == "" && a.Manufacturer == ""
}

// Summary renders the type as "<manufacturer> <type> - <description>", or
// an empty string when the record is empty
func (a AircraftType) Summary() string {
	if a.Type == "" {
		return ""
	}
	return a.Manufacturer + " " + a.Type + " - " + a.Description
}

// Operator represents an airline or operator record as returned by AeroAPI
type Operator struct {
	ICAO      string `json:"icao"`      // ICAO operator code (e.g., DAL)
	IATA      string `json:"iata"`      // IATA operator code (e.g., DL)
	Callsign  string `json:"callsign"`  // Radio telephony callsign (e.g., DELTA)
	Name      string `json:"name"`      // Operator name
	Country   string `json:"country"`   // Country of registration
	Shortname string `json:"shortname"` // Short display name
}

// IsZero reports whether no details were found for the operator
func (o Operator) IsZero() bool {
	return o.ICAO == "" && o.Callsign == "" && o.Name == ""
}
