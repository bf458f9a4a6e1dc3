package domain

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"fortio.org/safecast"
	"golang.org/x/sync/errgroup"

	m "fhirfuzz.dev/pkg/fhirfuzz/internal/model"
	"fhirfuzz.dev/pkg/fhirfuzz/pkg"
)

// CaseRunner runs one session of kind on c. An empty input asks for a
// generated node; otherwise input is decoded and fuzzed. It returns the
// normalized input and the resulting node, both encoded.
type CaseRunner interface {
	RunCase(c *Context, kind m.Kind, input []byte) ([]byte, []byte, error)
}

// CampaignArgs contains the arguments for running a fuzz campaign.
type CampaignArgs struct {
	Kind       m.Kind
	Input      []byte
	Count      uint
	Parallel   uint
	Seed       int64
	ShardIndex uint
	ShardCount uint
	Options    []Option
	SpillDir   string
}

// Campaign runs independent sessions of the same kind.
type Campaign interface {
	Run(ctx context.Context, args CampaignArgs) (pkg.Spill[m.Case], error)
}

type campaign struct {
	runner CaseRunner
}

// NewCampaign creates a Campaign backed by runner.
func NewCampaign(runner CaseRunner) Campaign {
	return &campaign{runner: runner}
}

type indexedCase struct {
	position int
	result   m.Case
}

// Run executes the campaign. Case i runs on its own Context seeded with
// args.Seed+i, so a case can be reproduced alone. Cases are spilled in index
// order regardless of completion order.
func (cp *campaign) Run(ctx context.Context, args CampaignArgs) (pkg.Spill[m.Case], error) {
	indices, err := ShardIndices(args.Count, args.ShardIndex, args.ShardCount)
	if err != nil {
		return nil, err
	}

	parallel, err := safecast.Conv[int](args.Parallel)
	if err != nil {
		return nil, fmt.Errorf("parallel: %w", err)
	}

	if parallel <= 0 {
		parallel = 1
	}

	spill, err := pkg.NewSpill[m.Case](args.SpillDir)
	if err != nil {
		return nil, fmt.Errorf("create spill: %w", err)
	}

	slog.Debug("Starting campaign", "kind", args.Kind, "cases", len(indices), "parallel", parallel, "seed", args.Seed)

	results := make(chan indexedCase, parallel)
	collected := make(chan error, 1)

	go func() {
		collected <- collectCases(results, spill)
	}()

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(parallel)

	for position, index := range indices {
		if groupCtx.Err() != nil {
			break
		}

		group.Go(func() error {
			result, err := cp.runCase(args, index)
			if err != nil {
				return err
			}

			select {
			case <-groupCtx.Done():
				return groupCtx.Err()
			case results <- indexedCase{position: position, result: result}:
			}

			return nil
		})
	}

	runErr := group.Wait()
	close(results)

	collectErr := <-collected

	if runErr == nil {
		runErr = ctx.Err()
	}

	if runErr == nil {
		runErr = collectErr
	}

	if runErr != nil {
		slog.Error("Campaign failed", "kind", args.Kind, "error", runErr)

		if err := spill.Remove(); err != nil {
			slog.Error("Failed to remove spill", "path", spill.Path(), "error", err)
		}

		return nil, runErr
	}

	if err := spill.Close(); err != nil {
		return nil, fmt.Errorf("close spill: %w", err)
	}

	slog.Debug("Campaign completed", "kind", args.Kind, "cases", spill.Len())

	return spill, nil
}

func (cp *campaign) runCase(args CampaignArgs, index int) (m.Case, error) {
	seed := args.Seed + int64(index)
	opts := append(slices.Clone(args.Options), WithSeed(seed))

	c := NewContext(opts...)

	original, resource, err := cp.runner.RunCase(c, args.Kind, args.Input)
	if err != nil {
		return m.Case{}, fmt.Errorf("case %d (seed %d): %w", index, seed, err)
	}

	return m.Case{
		Index:    index,
		Seed:     seed,
		Kind:     args.Kind,
		Original: original,
		Resource: resource,
		Log:      c.Log().Records(),
	}, nil
}

// collectCases appends results to spill ordered by position, holding back
// cases that finish early.
func collectCases(results <-chan indexedCase, spill pkg.Spill[m.Case]) error {
	pending := make(map[int]m.Case)
	next := 0

	var err error

	for item := range results {
		if err != nil {
			continue
		}

		pending[item.position] = item.result

		for {
			result, ok := pending[next]
			if !ok {
				break
			}

			delete(pending, next)
			next++

			if err = spill.Append(result); err != nil {
				break
			}
		}
	}

	return err
}

// ShardIndices returns the case indices in [0, count) that belong to shard
// index of total. A total of zero disables sharding.
func ShardIndices(count, index, total uint) ([]int, error) {
	n, err := safecast.Conv[int](count)
	if err != nil {
		return nil, fmt.Errorf("count: %w", err)
	}

	if total > 0 && index >= total {
		return nil, fmt.Errorf("shard index %d out of range for %d shards", index, total)
	}

	indices := make([]int, 0, n)

	for i := range n {
		if total == 0 || uint(i)%total == index {
			indices = append(indices, i)
		}
	}

	return indices, nil
}

// Summarize aggregates the cases of a finished campaign.
func Summarize(cases pkg.Spill[m.Case]) (m.Summary, error) {
	summary := m.Summary{Fields: map[string]int{}}

	err := cases.Range(func(_ uint64, result m.Case) error {
		summary.Kind = result.Kind
		summary.Cases++
		summary.Mutations += len(result.Log)

		for _, record := range result.Log {
			summary.Fields[record.Field]++
		}

		return nil
	})
	if err != nil {
		return m.Summary{}, err
	}

	return summary, nil
}
