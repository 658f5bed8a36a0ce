// Package scanner lists the files an organize run considers.
package scanner

import (
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/sfo/pkg/errors"
	"github.com/arthur-debert/sfo/pkg/logging"
	"github.com/arthur-debert/sfo/pkg/types"
)

// Scanner walks a source tree and returns regular files not matched by
// any ignore glob.
type Scanner struct {
	fs      types.FS
	ignores []string
	skip    []string
	logger  zerolog.Logger
}

// Options configures a Scanner
type Options struct {
	FS types.FS
	// Ignore holds doublestar globs. Each is tried against the absolute path,
	// the path relative to the source root and the file name.
	Ignore []string
	// SkipDirs are absolute directories never descended into, such as a
	// destination nested inside the source.
	SkipDirs []string
}

// New validates the ignore globs and returns a Scanner.
func New(opts Options) (*Scanner, error) {
	if opts.FS == nil {
		return nil, errors.New(errors.ErrInvalidInput, "scanner requires a filesystem")
	}
	if err := ValidatePatterns(opts.Ignore); err != nil {
		return nil, err
	}
	skip := make([]string, 0, len(opts.SkipDirs))
	for _, d := range opts.SkipDirs {
		skip = append(skip, filepath.Clean(d))
	}
	return &Scanner{
		fs:      opts.FS,
		ignores: opts.Ignore,
		skip:    skip,
		logger:  logging.GetLogger("scanner"),
	}, nil
}

// ValidatePatterns checks that every pattern is a valid doublestar glob.
func ValidatePatterns(patterns []string) error {
	for _, pat := range patterns {
		if !doublestar.ValidatePattern(pat) {
			return errors.Newf(errors.ErrConfigInvalid, "invalid ignore pattern %q", pat).
				WithDetail("field", "ignore").
				WithDetail("pattern", pat)
		}
	}
	return nil
}

// Scan returns the files under root in lexical order.
func (s *Scanner) Scan(root string) ([]string, error) {
	root = filepath.Clean(root)
	info, err := s.fs.Stat(root)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileNotFound, "source folder %s not found", root).
			WithDetail("path", root)
	}
	if !info.IsDir() {
		return nil, errors.Newf(errors.ErrInvalidInput, "source %s is not a directory", root).
			WithDetail("path", root)
	}

	var files []string
	if err := s.walk(root, root, &files); err != nil {
		return nil, err
	}
	sort.Strings(files)

	s.logger.Debug().
		Str("root", root).
		Int("files", len(files)).
		Msg("Scan complete")
	return files, nil
}

func (s *Scanner) walk(root, dir string, files *[]string) error {
	entries, err := s.fs.ReadDir(dir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot read directory %s", dir).
			WithDetail("path", dir)
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			if s.skipped(path) {
				s.logger.Debug().Str("dir", path).Msg("Skipping directory")
				continue
			}
			if err := s.walk(root, path, files); err != nil {
				return err
			}
			continue
		}
		if !entry.Type().IsRegular() {
			continue
		}
		if s.Ignored(root, path) {
			s.logger.Trace().Str("path", path).Msg("Ignored")
			continue
		}
		*files = append(*files, path)
	}
	return nil
}

func (s *Scanner) skipped(dir string) bool {
	for _, d := range s.skip {
		if d == dir {
			return true
		}
	}
	return false
}

// Ignored reports whether path matches an ignore glob.
func (s *Scanner) Ignored(root, path string) bool {
	candidates := []string{filepath.ToSlash(path), filepath.Base(path)}
	if rel, err := filepath.Rel(root, path); err == nil {
		candidates = append(candidates, filepath.ToSlash(rel))
	}
	for _, pat := range s.ignores {
		for _, c := range candidates {
			if matched, matchErr := doublestar.Match(pat, c); matchErr == nil && matched {
				return true
			}
		}
	}
	return false
}
