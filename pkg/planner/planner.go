package planner

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/arthur-debert/sfo/pkg/descriptor"
	"github.com/arthur-debert/sfo/pkg/errors"
	"github.com/arthur-debert/sfo/pkg/logging"
	"github.com/arthur-debert/sfo/pkg/rules"
	"github.com/arthur-debert/sfo/pkg/types"
)

// DefaultWorkers is the hashing pool size when none is configured.
const DefaultWorkers = 4

// Options configures a Planner
type Options struct {
	FS types.FS
	// Builder is created from FS when nil
	Builder *descriptor.Builder
	// Workers bounds parallel hashing; values below 1 mean DefaultWorkers
	Workers int
	// DeterministicDedup resolves files in input order instead of the order
	// their hashes completed
	DeterministicDedup bool
	Logger             *zerolog.Logger
}

// Planner computes move plans
type Planner struct {
	builder       *descriptor.Builder
	workers       int
	deterministic bool
	logger        zerolog.Logger
}

// Item pairs a planned file's descriptor with how it was resolved.
type Item struct {
	Descriptor types.FileDescriptor
	Resolution rules.Resolution
}

// Result is a computed plan plus the detail behind it.
type Result struct {
	Plan  types.Plan
	Items []Item
	// Vanished lists inputs that disappeared before they could be read
	Vanished []string
}

// New creates a Planner
func New(opts Options) (*Planner, error) {
	logger := logging.GetLogger("planner")
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	builder := opts.Builder
	if builder == nil {
		b, err := descriptor.New(descriptor.Options{FS: opts.FS, Logger: opts.Logger})
		if err != nil {
			return nil, err
		}
		builder = b
	}

	workers := opts.Workers
	if workers < 1 {
		workers = DefaultWorkers
	}

	return &Planner{
		builder:       builder,
		workers:       workers,
		deterministic: opts.DeterministicDedup,
		logger:        logger,
	}, nil
}

// Workers returns the effective hashing pool size.
func (p *Planner) Workers() int {
	return p.workers
}

// Plan builds descriptors for paths and resolves each against set.
func (p *Planner) Plan(ctx context.Context, paths []string, set rules.RuleSet, destRoot string) (Result, error) {
	done := logging.LogOperationStart(p.logger, "plan")
	defer done()

	absDest, err := filepath.Abs(destRoot)
	if err != nil {
		return Result{}, errors.Wrapf(err, errors.ErrInvalidInput, "cannot resolve destination %s", destRoot)
	}

	needsHash := set.NeedsHash()
	p.logger.Debug().
		Int("files", len(paths)).
		Int("rules", len(set)).
		Bool("hashing", needsHash).
		Int("workers", p.workers).
		Msg("Planning")

	var built []*types.FileDescriptor
	var order []int
	if needsHash {
		built, order, err = p.buildParallel(ctx, paths)
	} else {
		built, order, err = p.buildSequential(ctx, paths)
	}
	if err != nil {
		return Result{}, err
	}

	if p.deterministic {
		order = inputOrder(built)
	}

	tracker := rules.NewDedupTracker()
	resolutions := make([]*rules.Resolution, len(paths))
	for _, i := range order {
		res, err := rules.Resolve(*built[i], set, tracker, absDest)
		if err != nil {
			return Result{}, err
		}
		resolutions[i] = &res
	}

	var result Result
	for i, path := range paths {
		if built[i] == nil {
			result.Vanished = append(result.Vanished, path)
			continue
		}
		res := resolutions[i]
		result.Plan = append(result.Plan, res.Entry(built[i].Path))
		result.Items = append(result.Items, Item{Descriptor: *built[i], Resolution: *res})
	}

	p.logger.Info().
		Int("planned", len(result.Plan)).
		Int("vanished", len(result.Vanished)).
		Int("unique_hashes", tracker.Len()).
		Msg("Plan ready")
	return result, nil
}

func (p *Planner) buildSequential(ctx context.Context, paths []string) ([]*types.FileDescriptor, []int, error) {
	built := make([]*types.FileDescriptor, len(paths))
	order := make([]int, 0, len(paths))
	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, nil, errors.Wrap(err, errors.ErrCanceled, "planning canceled")
		}
		d, ok, err := p.build(path, false)
		if err != nil {
			return nil, nil, err
		}
		if ok {
			built[i] = &d
			order = append(order, i)
		}
	}
	return built, order, nil
}

// buildParallel hashes in a bounded pool. The first hard failure cancels
// the remaining work.
func (p *Planner) buildParallel(ctx context.Context, paths []string) ([]*types.FileDescriptor, []int, error) {
	start := time.Now()
	built := make([]*types.FileDescriptor, len(paths))
	order := make([]int, 0, len(paths))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for i, path := range paths {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			d, ok, err := p.build(path, true)
			if err != nil {
				return err
			}
			if ok {
				mu.Lock()
				built[i] = &d
				order = append(order, i)
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, errors.Wrap(err, errors.ErrCanceled, "planning canceled")
	}

	p.logger.Debug().
		Int("files", len(order)).
		Dur("duration", time.Since(start)).
		Msg("Hashing complete")
	return built, order, nil
}

// build returns ok=false for files that vanished since the scan.
func (p *Planner) build(path string, needsHash bool) (types.FileDescriptor, bool, error) {
	d, err := p.builder.Build(path, needsHash)
	if err != nil {
		if errors.IsErrorCode(err, errors.ErrFileNotFound) {
			p.logger.Warn().Str("path", path).Msg("File vanished before planning, skipping")
			return types.FileDescriptor{}, false, nil
		}
		return types.FileDescriptor{}, false, err
	}
	return d, true, nil
}

func inputOrder(built []*types.FileDescriptor) []int {
	order := make([]int, 0, len(built))
	for i, d := range built {
		if d != nil {
			order = append(order, i)
		}
	}
	return order
}

// Explain builds the descriptor of one file and reports which rule claims it.
func (p *Planner) Explain(path string, set rules.RuleSet) (rules.Explanation, types.FileDescriptor, error) {
	d, err := p.builder.Build(path, set.NeedsHash())
	if err != nil {
		return rules.Explanation{}, types.FileDescriptor{}, err
	}
	ex, err := rules.Explain(d, set)
	return ex, d, err
}
