package config

import (
	_ "embed"
	"errors"
)

//go:embed embedded/config.example.yml
var exampleConfig []byte

// DefaultConfigYAML returns the annotated example config written by init.
func DefaultConfigYAML() []byte {
	out := make([]byte, len(exampleConfig))
	copy(out, exampleConfig)
	return out
}

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}
