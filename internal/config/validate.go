// CUE schema validation code
package config

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueyaml "cuelang.org/go/encoding/yaml"
)

//go:embed run.cue
var defaultSchema []byte

// ConfigError reports an invalid configuration value.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config %s: %s", e.Field, e.Reason)
}

// ValidateWithCue validates a YAML configuration file using a CUE schema file.
// An empty cueFile selects the embedded schema.
func ValidateWithCue(configFile, cueFile string) error {
	ctx := cuecontext.New()

	yamlBytes, err := os.ReadFile(configFile)
	if err != nil {
		return fmt.Errorf("cannot read YAML config: %w", err)
	}
	f, err := cueyaml.Extract(configFile, yamlBytes)
	if err != nil {
		return fmt.Errorf("cannot parse YAML config: %w", err)
	}
	configVal := ctx.BuildFile(f)
	if configVal.Err() != nil {
		return fmt.Errorf("cannot build YAML config: %w", configVal.Err())
	}

	schemaBytes := defaultSchema
	if cueFile != "" {
		schemaBytes, err = os.ReadFile(cueFile)
		if err != nil {
			return fmt.Errorf("cannot read CUE schema: %w", err)
		}
	}
	schemaVal := ctx.CompileBytes(schemaBytes)
	if schemaVal.Err() != nil {
		return fmt.Errorf("cannot compile CUE schema: %w", schemaVal.Err())
	}
	def := schemaVal.LookupPath(cue.ParsePath("#Run"))
	if !def.Exists() {
		return fmt.Errorf("CUE schema has no #Run definition")
	}

	final := def.Unify(configVal)
	if err := final.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// Validate checks the numeric ranges the pipeline relies on.
func (c *RunConfig) Validate() error {
	if err := c.Params(c.TransmitPowerMW).Validate(); err != nil {
		return err
	}
	if c.Nodes < 2 {
		return &ConfigError{Field: "nodes", Reason: fmt.Sprintf("need a sink and at least one client, got %d", c.Nodes)}
	}
	if c.ClientStartS < 0 {
		return &ConfigError{Field: "client_start_s", Reason: "must not be negative"}
	}
	if c.BaseDistanceM < 0 || c.DistanceStepM < 0 {
		return &ConfigError{Field: "distance", Reason: "base and step must not be negative"}
	}
	for _, p := range c.Powers {
		if p <= 0 {
			return &ConfigError{Field: "powers", Reason: fmt.Sprintf("power %g must be positive", p)}
		}
	}
	if err := c.RateModel.Validate(); err != nil {
		return err
	}
	if c.Acceptance.MaxAvgDifference <= 0 || c.Acceptance.MaxIndividualDifference <= 0 {
		return &ConfigError{Field: "acceptance", Reason: "limits must be positive"}
	}
	return nil
}

// Validate checks that tiers are non-empty, strictly ascending and hold rates in [0,100].
func (m RateModel) Validate() error {
	if len(m.Tiers) == 0 {
		return &ConfigError{Field: "rate_model.tiers", Reason: "at least one tier required"}
	}
	prev := 0.0
	for i, t := range m.Tiers {
		if t.BaseRate < 0 || t.BaseRate > 100 {
			return &ConfigError{Field: "rate_model.tiers", Reason: fmt.Sprintf("tier %d base rate %g outside [0,100]", i, t.BaseRate)}
		}
		if i > 0 && t.Upper() <= prev {
			return &ConfigError{Field: "rate_model.tiers", Reason: fmt.Sprintf("tier %d bound %g not above %g", i, t.Upper(), prev)}
		}
		prev = t.Upper()
	}
	if m.AttenuationPerNode < 0 {
		return &ConfigError{Field: "rate_model.attenuation_per_node", Reason: "must not be negative"}
	}
	return nil
}
