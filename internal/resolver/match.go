package resolver

import "atcdel/internal/models"

// candidate is one IFR procedure whose SID equals the route's first token
type candidate struct {
	sid    models.SID
	proc   models.IFRDeparture
	tokens []string
}

// binding holds the route tokens a rule bound on success
type binding struct {
	transition string
	waypoint   string
}

type matchRule struct {
	name  string
	match func(c candidate) (binding, bool)
}

// Match rules in precedence order. The first rule that succeeds for a
// candidate confirms it.
var ifrMatchRules = []matchRule{
	{name: "auto-apply", match: matchAutoApply},
	{name: "transition", match: matchTransition},
	{name: "waypoint", match: matchWaypoint},
}

// evaluate runs the match rules against c and returns the name and
// bindings of the first one that succeeds
func evaluate(c candidate) (string, binding, bool) {
	for _, rule := range ifrMatchRules {
		if b, ok := rule.match(c); ok {
			return rule.name, b, true
		}
	}
	return "", binding{}, false
}

// matchAutoApply confirms procedures without explicit waypoints. The
// transition and waypoint bindings are best effort.
func matchAutoApply(c candidate) (binding, bool) {
	if len(c.proc.Waypoints) != 0 {
		return binding{}, false
	}
	return binding{
		transition: firstToken(c.tokens, c.sid.HasTransition),
		waypoint:   firstToken(c.tokens, c.sid.HasWaypoint),
	}, true
}

// matchTransition binds the first route token that is a SID transition as
// both transition and waypoint
func matchTransition(c candidate) (binding, bool) {
	t := firstToken(c.tokens, c.sid.HasTransition)
	if t == "" {
		return binding{}, false
	}
	return binding{transition: t, waypoint: t}, true
}

// matchWaypoint binds the first route token that is one of the
// procedure's own waypoints
func matchWaypoint(c candidate) (binding, bool) {
	w := firstToken(c.tokens, c.proc.HasWaypoint)
	if w == "" {
		return binding{}, false
	}
	return binding{waypoint: w}, true
}

func firstToken(tokens []string, pred func(string) bool) string {
	for _, t := range tokens {
		if pred(t) {
			return t
		}
	}
	return ""
}
