package main

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"example.com/sortrace/internal/generator"
	"example.com/sortrace/internal/race"
	"example.com/sortrace/internal/sorter"
)

// fairnessComparisonResult mirrors the original calculator's
// per-algorithm CalculationResult, one row per fairness policy instead
// of one row per Fibonacci algorithm.
type fairnessComparisonResult struct {
	Label    string
	Ticks    uint64
	Duration time.Duration
	Err      error
}

// runFairnessComparison races the same roster over the same pristine
// array under several fairness policies at once, fanning out one
// goroutine per policy and fanning back in to compare how many ticks
// each needed to reach Complete. This is the same fan-out/fan-in shape
// the original calculator used to race algorithms against each other in
// its "all" mode, applied here to independent Controller instances
// instead of independent calculators — the core explicitly allows this,
// since each Controller is a self-contained state machine with no shared
// mutable state.
func runFairnessComparison(ctx context.Context, f *cliFlags, specs []string, out, errOut io.Writer) (int, error) {
	roster, err := rosterKinds(f.algorithms)
	if err != nil {
		return ExitErrorConfig, err
	}

	modes := make([]race.FairnessMode, len(specs))
	policies := make([]string, len(specs))
	for i, spec := range specs {
		mode, err := parseFairnessSpec(spec, f)
		if err != nil {
			return ExitErrorConfig, err
		}
		if _, err := mode.Build(); err != nil {
			return ExitErrorConfig, fmt.Errorf("%s: %w", spec, err)
		}
		modes[i] = mode
		policies[i] = spec
	}

	size := f.size
	if size < 10 || size > 1000 {
		return ExitErrorConfig, fmt.Errorf("race: array_size %d out of interactive range [10, 1000]", size)
	}
	array := generator.Build(size, race.DistributionKind(strings.ToLower(f.distribution)), f.seed)

	ctx, cancel := withSignalAndTimeout(ctx, f.timeout)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	results := make([]fairnessComparisonResult, len(modes))

	for i, mode := range modes {
		idx, m, label := i, mode, policies[i]
		g.Go(func() error {
			policy, err := m.Build()
			if err != nil {
				results[idx] = fairnessComparisonResult{Label: label, Err: err}
				return nil
			}
			participants := make([]race.Participant, len(roster))
			for j, kind := range roster {
				s, _ := sorter.New(kind)
				participants[j] = race.Participant{Name: string(kind), Kind: kind, Sort: s}
			}
			controller := race.NewController(participants)
			controller.Start(policy, array)

			start := time.Now()
			for controller.Mode() == race.Running {
				select {
				case <-gctx.Done():
					results[idx] = fairnessComparisonResult{Label: label, Err: gctx.Err()}
					return nil
				default:
					controller.Tick()
				}
			}
			results[idx] = fairnessComparisonResult{
				Label:    label,
				Ticks:    controller.TickCount(),
				Duration: time.Since(start),
			}
			return nil
		})
	}
	_ = g.Wait()

	return renderComparisonTable(results, out)
}

// parseFairnessSpec accepts either a bare policy name (using the other
// fairness-* flags as its parameters) or name:param=value pairs, e.g.
// "comparison_budget:k=5".
func parseFairnessSpec(spec string, base *cliFlags) (race.FairnessMode, error) {
	parts := strings.SplitN(spec, ":", 2)
	clone := *base
	clone.fairness = parts[0]
	if len(parts) == 2 {
		for _, kv := range strings.Split(parts[1], ",") {
			kv = strings.TrimSpace(kv)
			if kv == "" {
				continue
			}
			pair := strings.SplitN(kv, "=", 2)
			if len(pair) != 2 {
				return race.FairnessMode{}, fmt.Errorf("malformed fairness parameter %q in spec %q", kv, spec)
			}
			if err := applyFairnessParam(&clone, pair[0], pair[1]); err != nil {
				return race.FairnessMode{}, fmt.Errorf("spec %q: %w", spec, err)
			}
		}
	}
	return buildFairnessMode(&clone), nil
}

func applyFairnessParam(f *cliFlags, key, value string) error {
	var err error
	switch key {
	case "k":
		_, err = fmt.Sscanf(value, "%d", &f.k)
	case "alpha":
		_, err = fmt.Sscanf(value, "%g", &f.alpha)
	case "beta":
		_, err = fmt.Sscanf(value, "%g", &f.beta)
	case "base":
		_, err = fmt.Sscanf(value, "%d", &f.base)
	case "slice_ms":
		_, err = fmt.Sscanf(value, "%d", &f.sliceMS)
	case "learning_rate":
		_, err = fmt.Sscanf(value, "%g", &f.learningRate)
	default:
		return fmt.Errorf("unknown fairness parameter %q", key)
	}
	return err
}

// renderComparisonTable prints one row per fairness policy, fastest
// (fewest ticks) first — the same sort-then-tabulate shape the original
// calculator used for its benchmark mode.
func renderComparisonTable(results []fairnessComparisonResult, out io.Writer) (int, error) {
	sort.SliceStable(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Ticks < results[j].Ticks
	})

	labelWidth := len("Policy")
	for _, r := range results {
		if len(r.Label) > labelWidth {
			labelWidth = len(r.Label)
		}
	}

	fmt.Fprintln(out, "\nfairness comparison (same input, same roster):")
	rowFormat := fmt.Sprintf("  %%-%ds  %%10s  %%12s  %%s\n", labelWidth)
	fmt.Fprintf(out, rowFormat, "Policy", "Ticks", "Duration", "Status")

	anyErr := false
	for _, r := range results {
		status := "ok"
		if r.Err != nil {
			status = r.Err.Error()
			anyErr = true
		}
		fmt.Fprintf(out, rowFormat, r.Label, fmt.Sprintf("%d", r.Ticks), r.Duration.Round(time.Millisecond).String(), status)
	}

	if anyErr && allFailed(results) {
		return ExitErrorGeneric, fmt.Errorf("all fairness comparisons failed")
	}
	return ExitSuccess, nil
}

func allFailed(results []fairnessComparisonResult) bool {
	for _, r := range results {
		if r.Err == nil {
			return false
		}
	}
	return true
}
