// Package rules loads airport departure rule sets from YAML or JSON documents.
package rules

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"atcdel/internal/models"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrInvalidRuleSet is returned when a document cannot serve as a rule set
var ErrInvalidRuleSet = errors.New("invalid rule set")

var validate = validator.New()

// Load reads and parses the rule set document at path
func Load(path string) (*models.RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule set %s: %w", path, err)
	}

	rs, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	slog.Debug("Loaded rule set",
		"path", path,
		"runway_configurations", rs.RunwayConfigurations,
		"sids", len(rs.SIDs),
		"ifr", rs.HasIFR(),
		"vfr", rs.HasVFR(),
	)
	return rs, nil
}

// Parse decodes a rule set document. JSON documents are accepted since
// they are valid YAML. Missing sections are left nil.
func Parse(data []byte) (*models.RuleSet, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidRuleSet)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRuleSet, err)
	}
	if len(root.Content) == 0 || root.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: document is not a mapping", ErrInvalidRuleSet)
	}

	rs := &models.RuleSet{}
	if err := root.Content[0].Decode(rs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRuleSet, err)
	}

	if err := validate.Struct(rs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRuleSet, err)
	}

	warnDanglingReferences(rs)

	return rs, nil
}

// warnDanglingReferences logs procedures referring to SIDs or frequencies
// that are not defined. They are tolerated at resolution time.
func warnDanglingReferences(rs *models.RuleSet) {
	for config, procs := range rs.IFRDepartures {
		for _, p := range procs {
			if _, ok := rs.LookupSID(p.SID); !ok {
				slog.Warn("IFR departure refers to unknown SID", "runway_config", config, "sid", p.SID)
			}
			if p.DepartureFrequency != "" {
				if _, ok := rs.LookupFrequency(p.DepartureFrequency); !ok {
					slog.Warn("IFR departure refers to unknown frequency", "runway_config", config, "frequency", p.DepartureFrequency)
				}
			}
		}
	}
	for config, procs := range rs.VFRDepartures {
		for _, p := range procs {
			if p.DepartureFrequency != "" {
				if _, ok := rs.LookupFrequency(p.DepartureFrequency); !ok {
					slog.Warn("VFR departure refers to unknown frequency", "runway_config", config, "frequency", p.DepartureFrequency)
				}
			}
		}
	}
}
