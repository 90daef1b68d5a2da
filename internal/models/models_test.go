package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSquawk_String(t *testing.T) {
	tests := []struct {
		name     string
		squawk   Squawk
		expected string
	}{
		{name: "lower bound", squawk: 100, expected: "0100"},
		{name: "four digits", squawk: 4721, expected: "4721"},
		{name: "upper bound", squawk: 6999, expected: "6999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.squawk.String())
		})
	}
}

func TestSquawk_Valid(t *testing.T) {
	assert.True(t, Squawk(100).Valid())
	assert.True(t, Squawk(6777).Valid())
	assert.False(t, Squawk(99).Valid())
	assert.False(t, Squawk(7000).Valid())
	assert.False(t, Squawk(1238).Valid(), "8 is not a transponder digit")
	assert.False(t, Squawk(-1).Valid())
}

func TestFlightPlan_Rules(t *testing.T) {
	vfr := &FlightPlan{Ident: "N123AB", Route: "VFR NE"}
	assert.True(t, vfr.IsVFR())
	assert.Equal(t, "VFR", vfr.FlightRules())
	assert.Equal(t, "NE", vfr.Sector())

	ifr := &FlightPlan{Ident: "DAL12", Route: "  ABC  XYZ PT1 "}
	assert.False(t, ifr.IsVFR())
	assert.Equal(t, "IFR", ifr.FlightRules())
	assert.Equal(t, "", ifr.Sector())
	assert.Equal(t, []string{"ABC", "XYZ", "PT1"}, ifr.RouteTokens())
}

func TestDeparture_KeyTrimsFields(t *testing.T) {
	d := Departure{
		Ident:        " DAL12 ",
		AircraftType: "B738 ",
		OperatorICAO: " DAL",
		Route:        " ABC XYZ ",
		Origin:       &Airport{CodeICAO: " KATL "},
	}

	key := d.Key()
	assert.Equal(t, DepartureKey{
		Ident:        "DAL12",
		AircraftType: "B738",
		OriginICAO:   "KATL",
		OperatorICAO: "DAL",
		Route:        "ABC XYZ",
	}, key)

	n := d.Normalized()
	assert.Equal(t, "KATL", n.Origin.CodeICAO)
	assert.Nil(t, n.Destination)
	assert.Equal(t, " KATL ", d.Origin.CodeICAO, "original record must not change")
}

func TestRuleSet_MissingSections(t *testing.T) {
	var rs *RuleSet
	assert.False(t, rs.HasIFR())
	assert.False(t, rs.HasRunwayConfiguration("18"))

	rs = &RuleSet{RunwayConfigurations: []string{"18"}}
	_, ok := rs.LookupSID("ABC")
	assert.False(t, ok)
	_, ok = rs.IFRProcedures("18")
	assert.False(t, ok)
	_, ok = rs.VFRProcedures("18")
	assert.False(t, ok)
	_, ok = rs.LookupFrequency("F1")
	assert.False(t, ok)
	assert.False(t, rs.HasVFR())
}

func TestRulesDetails_FrequencyKey(t *testing.T) {
	assert.True(t, RulesDetails{}.IsEmpty())

	rd := RulesDetails{VFRDeparture: &VFRDeparture{DepartureFrequency: "F2"}}
	key, ok := rd.FrequencyKey()
	assert.True(t, ok)
	assert.Equal(t, "F2", key)
	assert.True(t, rd.HasDeparture())
	assert.False(t, rd.IsEmpty())

	_, ok = RulesDetails{IFRDeparture: &IFRDeparture{}}.FrequencyKey()
	assert.False(t, ok)
}

func TestAircraftType_Summary(t *testing.T) {
	assert.Equal(t, "", AircraftType{}.Summary())
	assert.Equal(t, "Cessna 172 - single piston",
		AircraftType{Manufacturer: "Cessna", Type: "172", Description: "single piston"}.Summary())
}
