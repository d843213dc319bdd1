package config

import (
	"fmt"
	"os"
)

// LoadConfig loads, defaults and validates a scenario file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file %s: %w", path, err)
	}
	cfg, err := ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse scenario file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the whole scenario. Every problem it reports is a
// ParameterError; a scenario that passes never fails on configuration
// grounds mid-run.
func Validate(cfg *Config) error {
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[cfg.LogLevel] {
		return paramErr("log_level", "invalid level %q (must be debug, info, warn, or error)", cfg.LogLevel)
	}

	if err := validateModel(&cfg.Model); err != nil {
		return err
	}
	if err := validateParams(cfg); err != nil {
		return err
	}
	if err := validateInit(cfg); err != nil {
		return err
	}
	if err := validateNetwork(&cfg.Network); err != nil {
		return err
	}
	if err := validateControl(&cfg.Control); err != nil {
		return err
	}
	return nil
}

func validateModel(m *ModelSpec) error {
	switch m.Type {
	case "SI", "SIR", "SIS":
	default:
		return paramErr("model.type", "unknown model type %q (must be SI, SIR, or SIS)", m.Type)
	}
	if m.Groups != 1 && m.Groups != 2 {
		return paramErr("model.groups", "must be 1 or 2, got %d", m.Groups)
	}
	return nil
}

func validateParams(cfg *Config) error {
	groups := cfg.Model.Groups
	p := &cfg.Params

	if groups == 1 && p.Group2 != nil {
		return paramErr("params.group2", "set for a single-group model")
	}
	if groups == 2 && p.Group2 == nil {
		return paramErr("params.group2", "required for a two-group model")
	}

	authoritative := 1
	if groups == 2 {
		switch p.Balance {
		case "group1":
			authoritative = 1
		case "group2":
			authoritative = 2
		default:
			return paramErr("params.balance", "must be group1 or group2, got %q", p.Balance)
		}
	}

	switch p.Allocation {
	case "proportional", "mirror":
	default:
		return paramErr("params.allocation", "must be proportional or mirror, got %q", p.Allocation)
	}

	if err := validateGroupRates("params.group1", &p.Group1, cfg.Model.Type, groups, authoritative == 1); err != nil {
		return err
	}
	if groups == 2 {
		if err := validateGroupRates("params.group2", p.Group2, cfg.Model.Type, groups, authoritative == 2); err != nil {
			return err
		}
	}
	return nil
}

func validateGroupRates(field string, g *GroupRatesSpec, modelType string, groups int, authoritative bool) error {
	if g.InfProb == nil {
		return paramErr(field+".inf_prob", "required")
	}
	if *g.InfProb < 0 || *g.InfProb > 1 {
		return paramErr(field+".inf_prob", "must be in [0, 1], got %g", *g.InfProb)
	}

	// act-rate balancing: only the authoritative group carries a rate in
	// two-group models, the other group's is derived every step
	if authoritative || groups == 1 {
		if g.ActRate == nil {
			return paramErr(field+".act_rate", "required")
		}
		if *g.ActRate < 0 {
			return paramErr(field+".act_rate", "cannot be negative, got %g", *g.ActRate)
		}
	} else if g.ActRate != nil {
		return paramErr(field+".act_rate", "set on the non-authoritative group; it is derived by balancing")
	}

	hasRecovery := modelType == "SIR" || modelType == "SIS"
	if hasRecovery {
		if g.RecRate == nil {
			return paramErr(field+".rec_rate", "required for %s models", modelType)
		}
		if *g.RecRate < 0 {
			return paramErr(field+".rec_rate", "cannot be negative, got %g", *g.RecRate)
		}
	} else if g.RecRate != nil {
		return paramErr(field+".rec_rate", "unknown for SI models")
	}

	if g.ArrivalRate != nil && *g.ArrivalRate < 0 {
		return paramErr(field+".arrival_rate", "cannot be negative, got %g", *g.ArrivalRate)
	}
	for name, rate := range map[string]*float64{
		"exit_rate_s": g.ExitRateS,
		"exit_rate_i": g.ExitRateI,
		"exit_rate_r": g.ExitRateR,
	} {
		if rate != nil && *rate < 0 {
			return paramErr(field+"."+name, "cannot be negative, got %g", *rate)
		}
	}
	if modelType != "SIR" && g.ExitRateR != nil {
		return paramErr(field+".exit_rate_r", "unknown for %s models (no recovered state)", modelType)
	}
	return nil
}

func validateInit(cfg *Config) error {
	groups := cfg.Model.Groups
	init := &cfg.Init

	if groups == 1 && init.Group2 != nil {
		return paramErr("init.group2", "set for a single-group model")
	}
	if groups == 2 && init.Group2 == nil {
		return paramErr("init.group2", "required for a two-group model")
	}

	if err := validateInitCounts("init.group1", init.Group1, cfg.Model.Type); err != nil {
		return err
	}
	if groups == 2 {
		if err := validateInitCounts("init.group2", *init.Group2, cfg.Model.Type); err != nil {
			return err
		}
	}
	return nil
}

func validateInitCounts(field string, c InitCountsSpec, modelType string) error {
	if c.Susceptible < 0 || c.Infected < 0 || c.Recovered < 0 {
		return paramErr(field, "compartment counts cannot be negative")
	}
	if c.Recovered > 0 && modelType != "SIR" {
		return paramErr(field+".recovered", "unknown for %s models (no recovered state)", modelType)
	}
	if c.Total() == 0 {
		return paramErr(field, "initial group population is empty")
	}
	return nil
}

func validateNetwork(n *NetworkSpec) error {
	if n.MeanDegree < 0 {
		return paramErr("network.mean_degree", "cannot be negative, got %g", n.MeanDegree)
	}
	if n.FormationProb < 0 || n.FormationProb > 1 {
		return paramErr("network.formation_prob", "must be in [0, 1], got %g", n.FormationProb)
	}
	if n.DissolutionProb < 0 || n.DissolutionProb > 1 {
		return paramErr("network.dissolution_prob", "must be in [0, 1], got %g", n.DissolutionProb)
	}
	return nil
}

func validateControl(c *ControlSpec) error {
	if c.Steps <= 0 {
		return paramErr("control.steps", "must be positive, got %d", c.Steps)
	}
	if c.StepsPerUnit <= 0 {
		return paramErr("control.steps_per_unit", "must be positive, got %g", c.StepsPerUnit)
	}
	if c.Runs <= 0 {
		return paramErr("control.runs", "must be positive, got %d", c.Runs)
	}
	if c.MaxParallel <= 0 {
		return paramErr("control.max_parallel", "must be positive, got %d", c.MaxParallel)
	}
	return nil
}

// Demography reports whether any arrival or exit rate is configured
func (c *Config) Demography() bool {
	groups := []*GroupRatesSpec{&c.Params.Group1}
	if c.Params.Group2 != nil {
		groups = append(groups, c.Params.Group2)
	}
	for _, g := range groups {
		for _, rate := range []*float64{g.ArrivalRate, g.ExitRateS, g.ExitRateI, g.ExitRateR} {
			if rate != nil && *rate > 0 {
				return true
			}
		}
	}
	return false
}
