package config

import (
	"github.com/arthur-debert/sfo/pkg/errors"
	"github.com/arthur-debert/sfo/pkg/rules"
	"github.com/arthur-debert/sfo/pkg/scanner"
	"github.com/arthur-debert/sfo/pkg/types"
)

// SupportedVersion is the only config schema version understood.
const SupportedVersion = 1

// Config is the loaded sfo configuration.
type Config struct {
	Version int `koanf:"version"`
	// Rules stays raw; rules.Compile validates it
	Rules              []map[string]interface{} `koanf:"rules"`
	Ignore             []string                 `koanf:"ignore"`
	Collision          string                   `koanf:"collision"`
	MaxWorkersHashing  int                      `koanf:"max_workers_hashing"`
	DeterministicDedup bool                     `koanf:"deterministic_dedup"`

	// Path is the file the config was read from, empty for defaults only
	Path string `koanf:"-"`
}

// Validate checks the non-rule settings.
func (c *Config) Validate() error {
	if c.Version != 0 && c.Version != SupportedVersion {
		return errors.Newf(errors.ErrConfigInvalid, "Unsupported config version: %d", c.Version).
			WithDetail("field", "version")
	}
	if !c.CollisionPolicy().Valid() {
		return errors.Newf(errors.ErrConfigInvalid, "Invalid 'collision': %q (expected skip, overwrite or rename)", c.Collision).
			WithDetail("field", "collision")
	}
	if c.MaxWorkersHashing < 1 {
		return errors.Newf(errors.ErrConfigInvalid, "Invalid 'max_workers_hashing': %d (must be at least 1)", c.MaxWorkersHashing).
			WithDetail("field", "max_workers_hashing")
	}
	return scanner.ValidatePatterns(c.Ignore)
}

// CollisionPolicy returns the configured collision policy.
func (c *Config) CollisionPolicy() types.CollisionPolicy {
	return types.CollisionPolicy(c.Collision)
}

// CompileRules validates the settings and compiles the rule list.
func (c *Config) CompileRules() (rules.RuleSet, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return rules.Compile(c.Rules)
}
