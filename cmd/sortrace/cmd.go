package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"example.com/sortrace/internal/race"
	"example.com/sortrace/internal/sorter"
)

// Exit codes. Mismatch is reserved for the one failure a correct core
// should never produce: two sorters racing the same pristine input
// disagreeing about the sorted order. Seeing it in practice means an
// algorithm or the controller has a bug, not that the input was bad.
const (
	ExitSuccess       = 0
	ExitErrorGeneric  = 1
	ExitErrorTimeout  = 2
	ExitErrorMismatch = 3
	ExitErrorConfig   = 4
	ExitErrorCanceled = 130
)

// cliFlags mirrors AppConfig from a single-purpose calculator CLI,
// generalized to the handful of knobs a race needs: a roster of
// algorithms, a fairness mode and its parameters, and the input shape.
type cliFlags struct {
	size         int
	distribution string
	seed         uint64
	algorithms   []string
	fairness     string
	k            int
	alpha, beta  float64
	base         int
	sliceMS      uint64
	learningRate float64
	historyWin   int
	learn        bool
	tickRateHz   int
	maxTicks     int
	timeout      time.Duration
	quiet        bool
	logLevel     string

	compareFairness []string
}

// Execute builds and runs the cobra command tree against args, writing
// output to out and usage/error text to errOut, and returns the process
// exit code. Tests call this directly instead of exec'ing the binary.
func Execute(args []string, out, errOut io.Writer) int {
	flags := &cliFlags{}
	exitCode := ExitSuccess

	root := &cobra.Command{
		Use:           "sortrace",
		Short:         "Race resumable sorting algorithms against each other under a fairness policy.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var code int
			var err error
			if len(flags.compareFairness) >= 2 {
				code, err = runFairnessComparison(cmd.Context(), flags, flags.compareFairness, out, errOut)
			} else {
				code, err = runRace(cmd.Context(), flags, out, errOut)
			}
			exitCode = code
			return err
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)
	root.SetArgs(args)

	bindFlags(root, flags)

	if err := root.ExecuteContext(context.Background()); err != nil {
		if exitCode == ExitSuccess {
			exitCode = ExitErrorConfig
		}
		fmt.Fprintln(errOut, "error:", err)
	}
	return exitCode
}

func bindFlags(root *cobra.Command, f *cliFlags) {
	fl := root.Flags()
	fl.IntVar(&f.size, "size", 200, "number of elements to sort (interactive range [10, 1000])")
	fl.StringVar(&f.distribution, "distribution", string(race.DistributionShuffled),
		fmt.Sprintf("input shape: one of %s", joinDistributions()))
	fl.Uint64Var(&f.seed, "seed", uint64(time.Now().UnixNano()), "PRNG seed for the input generator")
	fl.StringSliceVar(&f.algorithms, "algorithms", []string{"all"},
		fmt.Sprintf("comma-separated roster: 'all' or any of %s", joinKinds()))
	fl.StringVar(&f.fairness, "fairness", string(race.FairnessComparisonBudget),
		"fairness policy: comparison_budget | weighted | walltime | adaptive | equal_steps")
	fl.IntVar(&f.k, "fairness-k", 20, "ComparisonBudget: comparisons per active participant per tick")
	fl.Float64Var(&f.alpha, "fairness-alpha", 1.0, "Weighted: weight on cumulative comparisons")
	fl.Float64Var(&f.beta, "fairness-beta", 1.0, "Weighted: weight on cumulative moves")
	fl.IntVar(&f.base, "fairness-base", 20, "Weighted/Adaptive: base budget per active participant")
	fl.IntVar(&f.historyWin, "fairness-history", 0, "Weighted: smoothing window in ticks (0 disables)")
	fl.Uint64Var(&f.sliceMS, "fairness-slice-ms", 10, "Walltime: time slice per participant in milliseconds")
	fl.BoolVar(&f.learn, "fairness-learn", false, "Walltime: enable adaptive throughput smoothing")
	fl.Float64Var(&f.learningRate, "fairness-learning-rate", 0.3, "Adaptive/Walltime-learn: EMA learning rate in [0.1, 1.0]")
	fl.IntVar(&f.tickRateHz, "tick-rate", 60, "target ticks per second, [1, 240]")
	fl.IntVar(&f.maxTicks, "max-ticks", 0, "safety cap on ticks before forced exit (0 = unbounded)")
	fl.DurationVar(&f.timeout, "timeout", 5*time.Minute, "maximum wall-clock time for the race")
	fl.BoolVar(&f.quiet, "quiet", false, "suppress live rendering; print only the final summary")
	fl.StringVar(&f.logLevel, "log-level", "info", "zap log level: debug | info | warn | error")
	fl.StringSliceVar(&f.compareFairness, "compare-fairness", nil,
		"run the same race under each of these fairness specs concurrently and compare tick counts, "+
			"e.g. --compare-fairness=comparison_budget:k=5,adaptive:learning_rate=0.3")
}

func joinKinds() string {
	names := make([]string, len(sorter.AllKinds))
	for i, k := range sorter.AllKinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

func joinDistributions() string {
	names := make([]string, len(race.AllDistributionKinds))
	for i, k := range race.AllDistributionKinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

// rosterKinds resolves the --algorithms flag into a concrete, stably
// ordered list of sorter.Kind, honoring "all" as shorthand for the full
// registry in its canonical order.
func rosterKinds(requested []string) ([]sorter.Kind, error) {
	if len(requested) == 1 && strings.EqualFold(requested[0], "all") {
		return sorter.AllKinds, nil
	}
	out := make([]sorter.Kind, 0, len(requested))
	for _, name := range requested {
		k := sorter.Kind(strings.ToLower(strings.TrimSpace(name)))
		if !sorter.IsValidKind(k) {
			return nil, fmt.Errorf("unknown algorithm %q (valid: %s)", name, joinKinds())
		}
		out = append(out, k)
	}
	return out, nil
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log-level %q: %w", level, err)
	}
	cfg.Encoding = "console"
	cfg.EncoderConfig.TimeKey = ""
	return cfg.Build()
}

// buildConfiguration translates parsed flags into the core's
// RunConfiguration plus the resolved roster, applying the same
// fail-fast validation style the original calculator's AppConfig.Validate
// used: surface every problem before any work starts.
func buildConfiguration(f *cliFlags) (race.RunConfiguration, []sorter.Kind, error) {
	roster, err := rosterKinds(f.algorithms)
	if err != nil {
		return race.RunConfiguration{}, nil, err
	}

	cfg := race.RunConfiguration{
		ArraySize:        f.size,
		DistributionKind: race.DistributionKind(strings.ToLower(f.distribution)),
		Seed:             f.seed,
		TargetTickRateHz: f.tickRateHz,
		Fairness:         buildFairnessMode(f),
	}
	if err := cfg.Validate(); err != nil {
		return race.RunConfiguration{}, nil, err
	}
	if _, err := cfg.Fairness.Build(); err != nil {
		return race.RunConfiguration{}, nil, err
	}
	return cfg, roster, nil
}

func buildFairnessMode(f *cliFlags) race.FairnessMode {
	return race.FairnessMode{
		Kind:          race.FairnessKind(strings.ToLower(f.fairness)),
		K:             f.k,
		Alpha:         f.alpha,
		Beta:          f.beta,
		Base:          f.base,
		HistoryWindow: f.historyWin,
		SliceMS:       f.sliceMS,
		Learn:         f.learn,
		Rate:          f.learningRate,
		LearningRate:  f.learningRate,
	}
}

// withSignalAndTimeout composes the two cancellation sources a
// long-running race needs to respect: an overall deadline and the
// operator hitting Ctrl+C.
func withSignalAndTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, cancelTimeout := context.WithTimeout(ctx, timeout)
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	return ctx, func() {
		stopSignals()
		cancelTimeout()
	}
}

var errRaceMismatch = errors.New("sortrace: participants disagree on the final sorted order")
