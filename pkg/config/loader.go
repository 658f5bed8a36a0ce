package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/sfo/pkg/errors"
	"github.com/arthur-debert/sfo/pkg/logging"
)

const (
	// EnvPrefix prefixes every environment override
	EnvPrefix = "SFO_"
	// EnvConfigPath overrides the default config location
	EnvConfigPath = "SFO_CONFIG"

	appName           = "sfo"
	defaultConfigName = "config.yml"
)

// keys that may be set from the environment
var envKeys = map[string]bool{
	"collision":           true,
	"ignore":              true,
	"max_workers_hashing": true,
	"deterministic_dedup": true,
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"version":             SupportedVersion,
		"collision":           "rename",
		"max_workers_hashing": 4,
		"deterministic_dedup": false,
	}
}

// DefaultPath returns $SFO_CONFIG or the per-user config file.
func DefaultPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	return filepath.Join(xdg.ConfigHome, appName, defaultConfigName)
}

// Load reads the config at path (DefaultPath when empty) layered over the
// defaults and under SFO_* environment overrides. The result is validated
// but its rules are not compiled.
func Load(path string) (*Config, error) {
	logger := logging.GetLogger("config")
	if path == "" {
		path = DefaultPath()
	}

	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "Config not found: %s", path).
			WithDetail("path", path)
	}

	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to load defaults")
	}
	if err := k.Load(file.Provider(path), parserFor(format)); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse config %s", path).
			WithDetail("path", path)
	}
	if err := loadEnv(k); err != nil {
		return nil, err
	}

	cfg, err := unmarshal(k)
	if err != nil {
		return nil, err
	}
	cfg.Path = path

	logger.Debug().
		Str("path", path).
		Int("rules", len(cfg.Rules)).
		Str("collision", cfg.Collision).
		Msg("Config loaded")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes config content without touching the disk or the environment.
func Parse(data []byte, format Format) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to load defaults")
	}
	if err := k.Load(&rawBytesProvider{bytes: data}, parserFor(format)); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to parse config")
	}
	cfg, err := unmarshal(k)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadEnv(k *koanf.Koanf) error {
	envK := koanf.New(".")
	err := envK.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		if !envKeys[key] {
			return ""
		}
		return key
	}), nil)
	if err != nil {
		return errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}
	if err := k.Merge(envK); err != nil {
		return errors.Wrap(err, errors.ErrConfigLoad, "failed to merge environment overrides")
	}
	return nil
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	var md mapstructure.Metadata
	conf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			Metadata:         &md,
			TagName:          "koanf",
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, conf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to decode config")
	}

	if len(md.Unused) > 0 {
		logger := logging.GetLogger("config")
		logger.Warn().Strs("keys", md.Unused).Msg("Ignoring unknown config keys")
	}
	return &cfg, nil
}

func parserFor(format Format) koanf.Parser {
	if format == FormatTOML {
		return toml.Parser()
	}
	return yaml.Parser()
}
