package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validScenario = `
log_level: debug
model:
  type: SIR
  groups: 1
params:
  group1:
    inf_prob: 0.3
    act_rate: 2.0
    rec_rate: 0.05
init:
  group1:
    susceptible: 990
    infected: 10
network:
  mean_degree: 1.2
  formation_prob: 0.01
  dissolution_prob: 0.01
control:
  steps: 100
  runs: 4
  seed: 42
  max_parallel: 2
`

func TestParseYAMLValidScenario(t *testing.T) {
	cfg, err := ParseYAMLString(validScenario)
	if err != nil {
		t.Fatalf("valid scenario rejected: %v", err)
	}

	if cfg.Model.Type != "SIR" || cfg.Model.Groups != 1 {
		t.Errorf("model = %+v", cfg.Model)
	}
	if cfg.Params.Group1.InfProb == nil || *cfg.Params.Group1.InfProb != 0.3 {
		t.Error("inf_prob not parsed")
	}
	if cfg.Init.Group1.Total() != 1000 {
		t.Errorf("initial group total = %d, expected 1000", cfg.Init.Group1.Total())
	}
	if cfg.Control.Seed != 42 || cfg.Control.Runs != 4 {
		t.Errorf("control = %+v", cfg.Control)
	}
}

func TestParseYAMLAppliesDefaults(t *testing.T) {
	minimal := `
model:
  type: SI
params:
  group1:
    inf_prob: 0.1
    act_rate: 1.0
init:
  group1:
    susceptible: 10
    infected: 1
network:
  mean_degree: 1.0
  formation_prob: 0.1
  dissolution_prob: 0.1
control:
  steps: 10
`
	cfg, err := ParseYAMLString(minimal)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("default log level = %q", cfg.LogLevel)
	}
	if cfg.Model.Groups != 1 {
		t.Errorf("default groups = %d", cfg.Model.Groups)
	}
	if cfg.Control.StepsPerUnit != 1 || cfg.Control.Runs != 1 || cfg.Control.MaxParallel != 1 {
		t.Errorf("control defaults not applied: %+v", cfg.Control)
	}
	if cfg.Params.Allocation != "proportional" {
		t.Errorf("default allocation = %q", cfg.Params.Allocation)
	}
}

func TestParseYAMLMalformed(t *testing.T) {
	if _, err := ParseYAMLString("model: [not: a, mapping"); err == nil {
		t.Error("malformed YAML should fail to parse")
	}
}

// rewrite applies line-level substitutions to the valid scenario so each
// case breaks exactly one field
func rewrite(replacements map[string]string) string {
	out := validScenario
	for old, new := range replacements {
		out = strings.Replace(out, old, new, 1)
	}
	return out
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name     string
		scenario string
		field    string
	}{
		{
			name:     "unknown model type",
			scenario: rewrite(map[string]string{"type: SIR": "type: SEIR"}),
			field:    "model.type",
		},
		{
			name:     "bad group count",
			scenario: rewrite(map[string]string{"groups: 1": "groups: 3"}),
			field:    "model.groups",
		},
		{
			name:     "missing inf_prob",
			scenario: rewrite(map[string]string{"inf_prob: 0.3": "arrival_rate: 0.0"}),
			field:    "inf_prob",
		},
		{
			name:     "inf_prob out of range",
			scenario: rewrite(map[string]string{"inf_prob: 0.3": "inf_prob: 1.5"}),
			field:    "inf_prob",
		},
		{
			name:     "missing act_rate",
			scenario: rewrite(map[string]string{"\n    act_rate: 2.0": ""}),
			field:    "act_rate",
		},
		{
			name:     "missing rec_rate on recovery model",
			scenario: rewrite(map[string]string{"\n    rec_rate: 0.05": ""}),
			field:    "rec_rate",
		},
		{
			name: "rec_rate on SI",
			scenario: rewrite(map[string]string{
				"type: SIR": "type: SI",
			}),
			field: "rec_rate",
		},
		{
			name:     "exit_rate_r without recovered state",
			scenario: rewrite(map[string]string{"type: SIR": "type: SIS", "rec_rate: 0.05": "rec_rate: 0.05\n    exit_rate_r: 0.01"}),
			field:    "exit_rate_r",
		},
		{
			name:     "empty initial population",
			scenario: rewrite(map[string]string{"susceptible: 990": "susceptible: 0", "infected: 10": "infected: 0"}),
			field:    "init.group1",
		},
		{
			name:     "negative initial count",
			scenario: rewrite(map[string]string{"infected: 10": "infected: -1"}),
			field:    "init.group1",
		},
		{
			name:     "recovered seeded outside SIR",
			scenario: rewrite(map[string]string{"type: SIR": "type: SIS", "infected: 10": "infected: 10\n    recovered: 5"}),
			field:    "recovered",
		},
		{
			name:     "formation probability out of range",
			scenario: rewrite(map[string]string{"formation_prob: 0.01": "formation_prob: 1.2"}),
			field:    "formation_prob",
		},
		{
			name:     "negative mean degree",
			scenario: rewrite(map[string]string{"mean_degree: 1.2": "mean_degree: -1"}),
			field:    "mean_degree",
		},
		{
			name:     "non-positive steps",
			scenario: rewrite(map[string]string{"steps: 100": "steps: 0"}),
			field:    "control.steps",
		},
		{
			name:     "bad log level",
			scenario: rewrite(map[string]string{"log_level: debug": "log_level: verbose"}),
			field:    "log_level",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseYAMLString(tc.scenario)
			if err == nil {
				t.Fatal("scenario should be rejected")
			}
			if !errors.Is(err, ErrParameter) {
				t.Fatalf("expected a parameter error, got %v", err)
			}
			var perr *ParameterError
			if !errors.As(err, &perr) {
				t.Fatalf("expected *ParameterError, got %T", err)
			}
			if !strings.Contains(perr.Field, tc.field) {
				t.Errorf("error field %q should mention %q", perr.Field, tc.field)
			}
		})
	}
}

const twoGroupScenario = `
model:
  type: SI
  groups: 2
params:
  balance: group2
  group1:
    inf_prob: 0.2
  group2:
    inf_prob: 0.05
    act_rate: 1.0
init:
  group1:
    susceptible: 50
    infected: 1
  group2:
    susceptible: 100
network:
  mean_degree: 1.0
  formation_prob: 0.05
  dissolution_prob: 0.05
control:
  steps: 10
`

func TestValidateTwoGroupBalancing(t *testing.T) {
	cfg, err := ParseYAMLString(twoGroupScenario)
	if err != nil {
		t.Fatalf("two-group scenario rejected: %v", err)
	}
	if cfg.Params.Balance != "group2" {
		t.Errorf("balance = %q", cfg.Params.Balance)
	}

	// the non-authoritative group must not set its own act rate
	bad := strings.Replace(twoGroupScenario, "inf_prob: 0.2", "inf_prob: 0.2\n    act_rate: 3.0", 1)
	_, err = ParseYAMLString(bad)
	if err == nil {
		t.Fatal("act_rate on the derived group should be rejected")
	}
	var perr *ParameterError
	if !errors.As(err, &perr) || !strings.Contains(perr.Field, "group1.act_rate") {
		t.Errorf("expected group1.act_rate parameter error, got %v", err)
	}

	// two-group models need both groups specified throughout
	missing := strings.Replace(twoGroupScenario, "  group2:\n    inf_prob: 0.05\n    act_rate: 1.0\n", "", 1)
	if _, err := ParseYAMLString(missing); !errors.Is(err, ErrParameter) {
		t.Errorf("missing params.group2 should be a parameter error, got %v", err)
	}
}

func TestDemographyDetection(t *testing.T) {
	cfg, err := ParseYAMLString(validScenario)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Demography() {
		t.Error("closed scenario reported demography")
	}

	open := rewrite(map[string]string{"rec_rate: 0.05": "rec_rate: 0.05\n    arrival_rate: 0.01\n    exit_rate_s: 0.01"})
	cfg, err = ParseYAMLString(open)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Demography() {
		t.Error("scenario with arrival and exit rates reported no demography")
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")
	if err := os.WriteFile(path, []byte(validScenario), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Model.Type != "SIR" {
		t.Errorf("model type = %q", cfg.Model.Type)
	}

	if _, err := LoadConfig(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing file should fail to load")
	}
}
