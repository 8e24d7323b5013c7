package contract

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// FormationFileRaw is the layout of a standalone formation file.
//
//	stats: [xg_p90, xa_p90, prog_carries_p90, prog_passes_p90]
//	formation:
//	  - slot: AM
//	    label: Attacking Mid
//	    weights: {xa_p90: 0.6, prog_passes_p90: 0.4}
//	roles:
//	  - slot: creator
//	    weights: {xa_p90: 0.6, prog_passes_p90: 0.4}
type FormationFileRaw struct {
	Stats     []string      `yaml:"stats"`
	Formation []PositionRaw `yaml:"formation"`
	Roles     []PositionRaw `yaml:"roles"`
}

// ParseFormationYAML decodes a formation document. Unknown keys are rejected.
func ParseFormationYAML(data []byte) (FormationFileRaw, error) {
	var raw FormationFileRaw
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return FormationFileRaw{}, fmt.Errorf("invalid formation yaml: %w", err)
	}
	return raw, nil
}

// LoadFormationFile reads and decodes a formation file from disk.
func LoadFormationFile(path string) (FormationFileRaw, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FormationFileRaw{}, fmt.Errorf("failed to read formation file: %w", err)
	}
	raw, err := ParseFormationYAML(data)
	if err != nil {
		return FormationFileRaw{}, fmt.Errorf("%s: %w", path, err)
	}
	return raw, nil
}

// mergeFormationFile lets non-empty file sections take precedence over config sections.
func mergeFormationFile(input *ConfigRawInput, file FormationFileRaw) {
	if len(file.Stats) > 0 {
		input.Stats = file.Stats
	}
	if len(file.Formation) > 0 {
		input.Formation = file.Formation
	}
	if len(file.Roles) > 0 {
		input.Roles = file.Roles
	}
}

// ApplyFormationYAML returns a copy of cfg whose scoring model is overridden by an
// inline formation document. Sections missing from the document keep cfg's values.
func ApplyFormationYAML(cfg *Config, data []byte) (*Config, error) {
	raw, err := ParseFormationYAML(data)
	if err != nil {
		return nil, err
	}
	clone := cfg.Clone()
	if len(raw.Stats) == 0 && len(raw.Formation) == 0 && len(raw.Roles) == 0 {
		return clone, nil
	}

	if len(raw.Stats) > 0 {
		if clone.Stats, err = ProcessStats(raw.Stats); err != nil {
			return nil, err
		}
	}
	if len(raw.Formation) > 0 {
		if clone.Formation, err = ProcessPositionDefinitions(raw.Formation, clone.Stats); err != nil {
			return nil, fmt.Errorf("formation: %w", err)
		}
	} else if clone.Formation, err = defaultDefinitions("formation", clone.Formation, clone.Stats); err != nil {
		return nil, err
	}
	if len(raw.Roles) > 0 {
		if clone.Roles, err = ProcessPositionDefinitions(raw.Roles, clone.Stats); err != nil {
			return nil, fmt.Errorf("roles: %w", err)
		}
	} else if clone.Roles, err = defaultDefinitions("roles", clone.Roles, clone.Stats); err != nil {
		return nil, err
	}
	return clone, nil
}
