package executor

import (
	"bytes"
	"encoding/json"
	"path/filepath"

	"github.com/arthur-debert/sfo/pkg/errors"
	"github.com/arthur-debert/sfo/pkg/types"
)

// DefaultManifestName is where organize writes its manifest by default.
const DefaultManifestName = "sfo-manifest.json"

// WriteManifest stores m as an indented JSON array. An empty manifest is
// written as [] so undo always has something to read.
func WriteManifest(fs types.FS, path string, m types.Manifest) error {
	if m == nil {
		m = types.Manifest{}
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrManifestWrite, "failed to encode manifest")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", dir)
		}
	}
	if err := fs.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrManifestWrite, "failed to write manifest %s", path).
			WithDetail("path", path)
	}
	return nil
}

// ReadManifest loads a manifest written by WriteManifest.
func ReadManifest(fs types.FS, path string) (types.Manifest, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestRead, "failed to read manifest %s", path).
			WithDetail("path", path)
	}

	var m types.Manifest
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&m); err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestRead, "invalid manifest %s", path).
			WithDetail("path", path)
	}
	return m, nil
}
