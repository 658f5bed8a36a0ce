package config

import (
	"bytes"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/sfo/pkg/errors"
	"github.com/arthur-debert/sfo/pkg/types"
)

// Format is a config file syntax.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the syntax from the file extension. Paths without an
// extension are read as YAML.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml", "":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", errors.Newf(errors.ErrConfigLoad, "Unsupported config file type: %s", path).
		WithDetail("path", path)
}

// Generate returns the example config in the requested syntax.
func Generate(format Format) ([]byte, error) {
	switch format {
	case FormatYAML, "":
		return DefaultConfigYAML(), nil
	case FormatTOML:
		return yamlToTOML(DefaultConfigYAML())
	}
	return nil, errors.Newf(errors.ErrInvalidInput, "unknown config format %q", format)
}

func yamlToTOML(src []byte) ([]byte, error) {
	var doc map[string]interface{}
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to read example config")
	}

	var buf bytes.Buffer
	buf.WriteString(leadingComments(src))
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(doc); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode config as TOML")
	}
	return buf.Bytes(), nil
}

// leadingComments keeps the header comment block, which is valid in both
// syntaxes.
func leadingComments(src []byte) string {
	var b strings.Builder
	for _, line := range strings.Split(string(src), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && !strings.HasPrefix(trimmed, "#") {
			break
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// WriteDefault writes the example config to path, in the syntax its
// extension asks for. An existing file is only replaced when force is set.
func WriteDefault(fsys types.FS, path string, force bool) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	if _, err := fsys.Stat(path); err == nil && !force {
		return errors.Newf(errors.ErrFileExists, "Config already exists: %s (use --force to overwrite)", path).
			WithDetail("path", path)
	}

	content, err := Generate(format)
	if err != nil {
		return err
	}

	if err := fsys.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", filepath.Dir(path))
	}
	if err := fsys.WriteFile(path, content, fs.FileMode(0644)); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path).WithDetail("path", path)
	}
	return nil
}
