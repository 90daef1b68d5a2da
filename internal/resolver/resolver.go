// Package resolver determines the departure procedure a controller would
// assign to a flight plan for a given runway configuration.
package resolver

import (
	"log/slog"

	"atcdel/internal/models"
)

// Engine resolves flight plans against a rule set. It keeps no state
// between calls and never modifies the rule set.
type Engine struct {
	rules *models.RuleSet
}

// New creates an engine for the given rule set. A nil rule set is allowed
// and resolves every plan to empty details.
func New(rs *models.RuleSet) *Engine {
	return &Engine{rules: rs}
}

// Resolve computes the rules details of fp for runwayConfig, stores them on
// fp.RulesDetails and returns them
func (e *Engine) Resolve(fp *models.FlightPlan, runwayConfig string) models.RulesDetails {
	rd := e.Details(fp, runwayConfig)
	if fp != nil {
		stored := rd
		fp.RulesDetails = &stored
	}
	return rd
}

// Details computes the rules details of fp for runwayConfig without
// touching the plan
func (e *Engine) Details(fp *models.FlightPlan, runwayConfig string) models.RulesDetails {
	var rd models.RulesDetails
	if fp == nil || !e.rules.HasRunwayConfiguration(runwayConfig) {
		return rd
	}

	tokens := fp.RouteTokens()
	if len(tokens) == 0 {
		return rd
	}

	switch {
	case fp.IsVFR():
		if e.rules.HasVFR() {
			rd = e.resolveVFR(tokens, runwayConfig)
		}
	case e.rules.HasIFR():
		rd = e.resolveIFR(tokens, runwayConfig)
	}

	e.resolveFrequency(&rd)

	slog.Debug("Resolved departure rules",
		"ident", fp.Ident,
		"runway_config", runwayConfig,
		"has_departure", rd.HasDeparture(),
		"transition", rd.Transition,
		"waypoint", rd.Waypoint,
		"frequency", rd.Frequency,
	)
	return rd
}

// resolveIFR scans the procedures of the runway configuration in order and
// stops at the first candidate satisfying one of the match rules
func (e *Engine) resolveIFR(tokens []string, runwayConfig string) models.RulesDetails {
	var rd models.RulesDetails

	sid, ok := e.rules.LookupSID(tokens[0])
	if !ok {
		return rd
	}
	procs, ok := e.rules.IFRProcedures(runwayConfig)
	if !ok {
		return rd
	}

	for _, proc := range procs {
		if proc.SID != tokens[0] {
			continue
		}
		matchedSID := sid
		rd.SID = &matchedSID

		rule, b, ok := evaluate(candidate{sid: sid, proc: proc, tokens: tokens})
		if !ok {
			continue
		}

		matched := proc
		rd.IFRDeparture = &matched
		rd.Transition = b.transition
		rd.Waypoint = b.waypoint
		slog.Debug("Matched IFR departure", "sid", proc.SID, "rule", rule)
		return rd
	}
	return rd
}

// resolveVFR picks the first VFR procedure covering the route's sector
func (e *Engine) resolveVFR(tokens []string, runwayConfig string) models.RulesDetails {
	var rd models.RulesDetails
	if len(tokens) < 2 {
		return rd
	}
	procs, ok := e.rules.VFRProcedures(runwayConfig)
	if !ok {
		return rd
	}

	sector := tokens[1]
	for _, proc := range procs {
		if !proc.Covers(sector) {
			continue
		}
		matched := proc
		rd.VFRDeparture = &matched
		rd.VFRAltitude = proc.Altitude
		rd.VFRInstructions = proc.Instructions
		return rd
	}
	return rd
}

func (e *Engine) resolveFrequency(rd *models.RulesDetails) {
	key, ok := rd.FrequencyKey()
	if !ok {
		return
	}
	if freq, ok := e.rules.LookupFrequency(key); ok {
		rd.Frequency = freq
	}
}
