// Package config loads sfo configuration.
//
// Values are layered with koanf: built-in defaults, then the config file
// (YAML or TOML, picked by extension), then SFO_* environment variables.
// The file's rules list is kept raw and handed to the rules compiler, which
// owns rule validation.
package config
