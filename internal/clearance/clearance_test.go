package clearance

import (
	"testing"

	"atcdel/internal/models"
	"atcdel/internal/resolver"

	"github.com/stretchr/testify/assert"
)

func scenarioRules() *models.RuleSet {
	return &models.RuleSet{
		RunwayConfigurations: []string{"18"},
		SIDs: map[string]models.SID{
			"ABC": {Name: "ABC1", Type: "CONV", Transitions: []string{"XYZ"}, Waypoints: []string{"PT1"}},
		},
		IFRDepartures: map[string][]models.IFRDeparture{
			"18": {{SID: "ABC", Waypoints: []string{}, CVS: true, TopAltitude: "SID", DepartureFrequency: "F1"}},
		},
		DepartureFrequencies: map[string]string{"F1": "121.9"},
	}
}

func TestBuild_Scenario(t *testing.T) {
	fp := &models.FlightPlan{Ident: "DAL12", DestinationICAO: "KJFK", Route: "ABC XYZ PT1", Squawk: 1234}
	rd := resolver.New(scenarioRules()).Resolve(fp, "18")

	got := Build(fp, rd, "18")

	assert.Contains(t, got, "ABC1 departure")
	assert.Contains(t, got, "Climb via SID")
	assert.NotContains(t, got, "Except maintain")
	assert.Regexp(t, `Squawk \d{4}$`, got)
	assert.Equal(t, "DAL12 GND, Cleared to KJFK, ABC1 departure, XYZ transition, Climb via SID, Departure frequency 121.9, Squawk 1234", got)
}

func TestBuild_NoMatch(t *testing.T) {
	fp := &models.FlightPlan{Ident: "DAL12", DestinationICAO: "KJFK", Route: "ZZZ", Squawk: 417}
	rd := resolver.New(scenarioRules()).Resolve(fp, "18")

	assert.Equal(t, "DAL12 GND, Cleared to KJFK, direct, Squawk 0417", Build(fp, rd, "18"))
}

func TestBuild_IFRClauses(t *testing.T) {
	radar := &models.SID{Name: "VECTOR1", Type: models.SIDTypeRadar}
	conv := &models.SID{Name: "NORTH3"}

	tests := []struct {
		name     string
		rd       models.RulesDetails
		expected string
	}{
		{
			name:     "radar vectors to waypoint",
			rd:       models.RulesDetails{SID: radar, Waypoint: "CCC", IFRDeparture: &models.IFRDeparture{TopAltitude: "4000"}},
			expected: "AAL1 GND, Cleared to KBOS, VECTOR1 departure, Radar vectors CCC, Maintain 4000, Squawk 2345",
		},
		{
			name:     "conventional waypoint",
			rd:       models.RulesDetails{SID: conv, Waypoint: "AAA", IFRDeparture: &models.IFRDeparture{TopAltitude: "5000"}},
			expected: "AAL1 GND, Cleared to KBOS, NORTH3 departure, then AAA, Maintain 5000, Squawk 2345",
		},
		{
			name:     "climb via SID except maintain",
			rd:       models.RulesDetails{SID: conv, Transition: "TRN", Waypoint: "TRN", IFRDeparture: &models.IFRDeparture{CVS: true, TopAltitude: "7000"}, Frequency: "125.0"},
			expected: "AAL1 GND, Cleared to KBOS, NORTH3 departure, TRN transition, Climb via SID, Except maintain 7000, Departure frequency 125.0, Squawk 2345",
		},
		{
			name:     "SID without departure",
			rd:       models.RulesDetails{SID: conv},
			expected: "AAL1 GND, Cleared to KBOS, NORTH3 departure, Squawk 2345",
		},
		{
			name:     "as published without CVS",
			rd:       models.RulesDetails{SID: conv, IFRDeparture: &models.IFRDeparture{TopAltitude: models.TopAltitudeAsPublished}},
			expected: "AAL1 GND, Cleared to KBOS, NORTH3 departure, Squawk 2345",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fp := &models.FlightPlan{Ident: "AAL1", DestinationICAO: "KBOS", Route: "X Y", Squawk: 2345}
			assert.Equal(t, tt.expected, Build(fp, tt.rd, "27"))
		})
	}
}

func TestBuild_VFR(t *testing.T) {
	fp := &models.FlightPlan{Ident: "N123AB", Route: "VFR NE", Squawk: 1200}

	full := models.RulesDetails{
		VFRDeparture:    &models.VFRDeparture{},
		VFRInstructions: "turn right heading 030",
		VFRAltitude:     "at or below 2500",
		Frequency:       "121.9",
	}
	assert.Equal(t,
		"N123AB GND, On departure turn right heading 030, Maintain VFR at or below 2500, Departure frequency 121.9, Squawk 1200",
		Build(fp, full, "18"))

	assert.Equal(t, "N123AB GND, Squawk 1200", Build(fp, models.RulesDetails{}, "18"))
}

func TestBuild_NilPlan(t *testing.T) {
	assert.Equal(t, "", Build(nil, models.RulesDetails{}, "18"))
}
