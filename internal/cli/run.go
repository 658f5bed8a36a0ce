package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/sfo/pkg/config"
	"github.com/arthur-debert/sfo/pkg/errors"
	"github.com/arthur-debert/sfo/pkg/planner"
	"github.com/arthur-debert/sfo/pkg/rules"
	"github.com/arthur-debert/sfo/pkg/scanner"
	"github.com/arthur-debert/sfo/pkg/types"
)

// loadConfig reads the config at path. Without an explicit path a missing
// default config falls back to the embedded example.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}

	path = config.DefaultPath()
	if _, err := os.Stat(path); err != nil && os.IsNotExist(err) {
		log.Info().Str("path", path).Msgf(MsgUsingDefaultRules, path)
		return config.Parse(config.DefaultConfigYAML(), config.FormatYAML)
	}
	return config.Load(path)
}

// loadRules loads and compiles the config at path.
func loadRules(path string) (*config.Config, rules.RuleSet, error) {
	cfg, err := loadConfig(path)
	if err != nil {
		return nil, nil, err
	}
	set, err := cfg.CompileRules()
	if err != nil {
		return nil, nil, err
	}
	return cfg, set, nil
}

// requireFlags fails when any of the named string flags is empty.
func requireFlags(cmd *cobra.Command, names ...string) error {
	for _, name := range names {
		f := cmd.Flags().Lookup(name)
		if f == nil || f.Value.String() == "" {
			return errors.Newf(errors.ErrInvalidInput, MsgErrMissingFlag, name).WithDetail("flag", name)
		}
	}
	return nil
}

// planRequest is everything dry-run and organize share.
type planRequest struct {
	cfg     *config.Config
	set     rules.RuleSet
	src     string
	dest    string
	workers int
	// skip are extra directories kept out of the scan
	skip []string
}

// plan scans src and resolves every file against the rules.
func plan(ctx context.Context, fs types.FS, req planRequest) (planner.Result, error) {
	src, err := filepath.Abs(req.src)
	if err != nil {
		return planner.Result{}, errors.Wrapf(err, errors.ErrInvalidInput, "cannot resolve source %s", req.src)
	}
	dest, err := filepath.Abs(req.dest)
	if err != nil {
		return planner.Result{}, errors.Wrapf(err, errors.ErrInvalidInput, "cannot resolve destination %s", req.dest)
	}

	var skip []string
	for _, d := range append([]string{dest}, req.skip...) {
		if d == "" {
			continue
		}
		abs, err := filepath.Abs(d)
		if err == nil && within(src, abs) {
			skip = append(skip, abs)
		}
	}

	sc, err := scanner.New(scanner.Options{FS: fs, Ignore: req.cfg.Ignore, SkipDirs: skip})
	if err != nil {
		return planner.Result{}, err
	}
	files, err := sc.Scan(src)
	if err != nil {
		return planner.Result{}, err
	}

	workers := req.cfg.MaxWorkersHashing
	if req.workers > 0 {
		workers = req.workers
	}
	p, err := planner.New(planner.Options{
		FS:                 fs,
		Workers:            workers,
		DeterministicDedup: req.cfg.DeterministicDedup,
	})
	if err != nil {
		return planner.Result{}, err
	}

	res, err := p.Plan(ctx, files, req.set, dest)
	if err != nil {
		return res, err
	}
	for _, v := range res.Vanished {
		log.Warn().Str("path", v).Msgf(MsgVanished, v)
	}
	return res, nil
}

// within reports whether path is root or below it.
func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
