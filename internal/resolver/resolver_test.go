package resolver

import (
	"testing"

	"atcdel/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioRules() *models.RuleSet {
	return &models.RuleSet{
		RunwayConfigurations: []string{"18"},
		SIDs: map[string]models.SID{
			"ABC": {Name: "ABC1", Type: "CONV", Transitions: []string{"XYZ"}, Waypoints: []string{"PT1"}},
		},
		IFRDepartures: map[string][]models.IFRDeparture{
			"18": {{SID: "ABC", Waypoints: []string{}, CVS: true, TopAltitude: "SID", DepartureFrequency: "F1", AircraftTypes: []string{}}},
		},
		DepartureFrequencies: map[string]string{"F1": "121.9"},
	}
}

func TestResolve_Scenario(t *testing.T) {
	engine := New(scenarioRules())
	fp := &models.FlightPlan{Ident: "DAL12", Route: "ABC XYZ PT1", Squawk: 1234}

	rd := engine.Resolve(fp, "18")

	require.NotNil(t, rd.SID)
	assert.Equal(t, "ABC1", rd.SID.Name)
	require.NotNil(t, rd.IFRDeparture)
	assert.True(t, rd.IFRDeparture.CVS)
	assert.Equal(t, "XYZ", rd.Transition)
	assert.Equal(t, "PT1", rd.Waypoint)
	assert.Equal(t, "121.9", rd.Frequency)

	require.NotNil(t, fp.RulesDetails, "details are written back onto the plan")
	assert.Equal(t, rd, *fp.RulesDetails)
}

func TestResolve_UnknownFirstToken(t *testing.T) {
	engine := New(scenarioRules())
	fp := &models.FlightPlan{Ident: "DAL12", Route: "ZZZ"}

	rd := engine.Resolve(fp, "18")
	assert.True(t, rd.IsEmpty())
	assert.Nil(t, rd.IFRDeparture)
}

func TestResolve_UnknownRunwayConfiguration(t *testing.T) {
	rs := scenarioRules()
	rs.VFRDepartures = map[string][]models.VFRDeparture{
		"36": {{Direction: []string{"N"}, Altitude: "2500", DepartureFrequency: "F1"}},
	}
	rs.IFRDepartures["36"] = rs.IFRDepartures["18"]
	engine := New(rs)

	for _, route := range []string{"ABC XYZ PT1", "VFR N", "ZZZ", "VFR", "ABC"} {
		for _, config := range []string{"36", "", "18L"} {
			rd := engine.Details(&models.FlightPlan{Ident: "X", Route: route}, config)
			assert.True(t, rd.IsEmpty(), "route %q config %q", route, config)
		}
	}
}

func TestResolve_Idempotent(t *testing.T) {
	rs := scenarioRules()
	engine := New(rs)
	fp := &models.FlightPlan{Ident: "DAL12", Route: "ABC XYZ PT1"}

	first := engine.Resolve(fp, "18")
	second := engine.Resolve(fp, "18")
	assert.Equal(t, first, second)
	assert.Equal(t, scenarioRules(), rs, "rule set must not be modified")
}

func TestResolve_MissingSections(t *testing.T) {
	tests := []struct {
		name  string
		rules *models.RuleSet
		route string
	}{
		{name: "nil rule set", rules: nil, route: "ABC XYZ"},
		{name: "no SIDs", rules: &models.RuleSet{
			RunwayConfigurations: []string{"18"},
			IFRDepartures:        scenarioRules().IFRDepartures,
		}, route: "ABC XYZ"},
		{name: "no IFR departures", rules: &models.RuleSet{
			RunwayConfigurations: []string{"18"},
			SIDs:                 scenarioRules().SIDs,
		}, route: "ABC XYZ"},
		{name: "no VFR departures", rules: scenarioRules(), route: "VFR N"},
		{name: "configuration without procedures", rules: &models.RuleSet{
			RunwayConfigurations: []string{"18"},
			SIDs:                 scenarioRules().SIDs,
			IFRDepartures:        map[string][]models.IFRDeparture{},
		}, route: "ABC XYZ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rd := New(tt.rules).Details(&models.FlightPlan{Ident: "X", Route: tt.route}, "18")
			assert.True(t, rd.IsEmpty())
		})
	}
}

func TestResolve_TieBreakRules(t *testing.T) {
	rules := &models.RuleSet{
		RunwayConfigurations: []string{"27"},
		SIDs: map[string]models.SID{
			"NORTH": {Name: "NORTH3", Transitions: []string{"TRN"}, Waypoints: []string{"WPA"}},
			"VECT":  {Name: "VECTOR1", Type: models.SIDTypeRadar, Waypoints: []string{"RDR"}},
		},
		IFRDepartures: map[string][]models.IFRDeparture{
			"27": {
				{SID: "NORTH", Waypoints: []string{"AAA"}, TopAltitude: "5000", DepartureFrequency: "DEP1"},
				{SID: "NORTH", Waypoints: []string{"BBB"}, TopAltitude: "7000", DepartureFrequency: "DEP2"},
				{SID: "VECT", Waypoints: []string{"CCC"}, TopAltitude: "4000"},
			},
		},
		DepartureFrequencies: map[string]string{"DEP1": "125.0", "DEP2": "126.0"},
	}
	engine := New(rules)

	tests := []struct {
		name       string
		route      string
		hasDep     bool
		top        string
		transition string
		waypoint   string
		frequency  string
	}{
		{name: "transition match on first candidate", route: "NORTH TRN J1", hasDep: true, top: "5000", transition: "TRN", waypoint: "TRN", frequency: "125.0"},
		{name: "waypoint match on first candidate", route: "NORTH AAA J1", hasDep: true, top: "5000", waypoint: "AAA", frequency: "125.0"},
		{name: "waypoint match on later candidate", route: "NORTH BBB J1", hasDep: true, top: "7000", waypoint: "BBB", frequency: "126.0"},
		{name: "transition beats waypoint", route: "NORTH BBB TRN", hasDep: true, top: "5000", transition: "TRN", waypoint: "TRN", frequency: "125.0"},
		{name: "SID waypoint alone does not match", route: "NORTH WPA", hasDep: false},
		{name: "unmatched radar SID", route: "VECT RDR", hasDep: false},
		{name: "radar SID procedure waypoint", route: "VECT CCC", hasDep: true, top: "4000", waypoint: "CCC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rd := engine.Details(&models.FlightPlan{Ident: "X", Route: tt.route}, "27")
			require.NotNil(t, rd.SID, "SID is set once a candidate has been scanned")
			if !tt.hasDep {
				assert.Nil(t, rd.IFRDeparture)
				assert.Empty(t, rd.Frequency)
				return
			}
			require.NotNil(t, rd.IFRDeparture)
			assert.Equal(t, tt.top, rd.IFRDeparture.TopAltitude)
			assert.Equal(t, tt.transition, rd.Transition)
			assert.Equal(t, tt.waypoint, rd.Waypoint)
			assert.Equal(t, tt.frequency, rd.Frequency)
		})
	}
}

func TestResolve_AutoApplyShortCircuits(t *testing.T) {
	rules := &models.RuleSet{
		RunwayConfigurations: []string{"09"},
		SIDs: map[string]models.SID{
			"EAST": {Name: "EAST2", Transitions: []string{"T1"}, Waypoints: []string{"W1"}},
		},
		IFRDepartures: map[string][]models.IFRDeparture{
			"09": {
				{SID: "EAST", TopAltitude: "3000"},
				{SID: "EAST", Waypoints: []string{"W2"}, TopAltitude: "9000"},
			},
		},
	}

	rd := New(rules).Details(&models.FlightPlan{Ident: "X", Route: "EAST W2"}, "09")
	require.NotNil(t, rd.IFRDeparture)
	assert.Equal(t, "3000", rd.IFRDeparture.TopAltitude, "zero-waypoint candidate wins before later waypoint match")
	assert.Empty(t, rd.Transition)
	assert.Empty(t, rd.Waypoint)

	rd = New(rules).Details(&models.FlightPlan{Ident: "X", Route: "EAST W1 T1"}, "09")
	assert.Equal(t, "T1", rd.Transition)
	assert.Equal(t, "W1", rd.Waypoint)
}

func TestResolve_VFR(t *testing.T) {
	rules := &models.RuleSet{
		RunwayConfigurations: []string{"18"},
		VFRDepartures: map[string][]models.VFRDeparture{
			"18": {
				{Direction: []string{"N", "NE"}, Altitude: "at or below 2500", Instructions: "turn right heading 030", DepartureFrequency: "F1"},
				{Direction: []string{"NE", "E"}, Altitude: "3500", Instructions: "fly runway heading", DepartureFrequency: "UNKNOWN"},
			},
		},
		DepartureFrequencies: map[string]string{"F1": "121.9"},
	}
	engine := New(rules)

	rd := engine.Details(&models.FlightPlan{Ident: "N123AB", Route: "VFR NE"}, "18")
	require.NotNil(t, rd.VFRDeparture)
	assert.Equal(t, "at or below 2500", rd.VFRAltitude)
	assert.Equal(t, "turn right heading 030", rd.VFRInstructions)
	assert.Equal(t, "121.9", rd.Frequency)
	assert.Nil(t, rd.SID)

	rd = engine.Details(&models.FlightPlan{Ident: "N123AB", Route: "VFR E"}, "18")
	require.NotNil(t, rd.VFRDeparture)
	assert.Equal(t, "3500", rd.VFRAltitude)
	assert.Empty(t, rd.Frequency, "unresolved frequency keys are not an error")

	rd = engine.Details(&models.FlightPlan{Ident: "N123AB", Route: "VFR SW"}, "18")
	assert.True(t, rd.IsEmpty())

	rd = engine.Details(&models.FlightPlan{Ident: "N123AB", Route: "VFR"}, "18")
	assert.True(t, rd.IsEmpty())
}

func TestEvaluate_Precedence(t *testing.T) {
	sid := models.SID{Transitions: []string{"T"}, Waypoints: []string{"S"}}

	rule, b, ok := evaluate(candidate{sid: sid, proc: models.IFRDeparture{}, tokens: []string{"X", "S", "T"}})
	require.True(t, ok)
	assert.Equal(t, "auto-apply", rule)
	assert.Equal(t, binding{transition: "T", waypoint: "S"}, b)

	rule, b, ok = evaluate(candidate{sid: sid, proc: models.IFRDeparture{Waypoints: []string{"P"}}, tokens: []string{"X", "P", "T"}})
	require.True(t, ok)
	assert.Equal(t, "transition", rule)
	assert.Equal(t, binding{transition: "T", waypoint: "T"}, b)

	rule, b, ok = evaluate(candidate{sid: sid, proc: models.IFRDeparture{Waypoints: []string{"P"}}, tokens: []string{"X", "P"}})
	require.True(t, ok)
	assert.Equal(t, "waypoint", rule)
	assert.Equal(t, binding{waypoint: "P"}, b)

	_, _, ok = evaluate(candidate{sid: sid, proc: models.IFRDeparture{Waypoints: []string{"P"}}, tokens: []string{"X", "S"}})
	assert.False(t, ok)
}
