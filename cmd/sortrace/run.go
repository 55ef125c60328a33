package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"example.com/sortrace/internal/cli"
	"example.com/sortrace/internal/fairness"
	"example.com/sortrace/internal/generator"
	"example.com/sortrace/internal/race"
	"example.com/sortrace/internal/sorter"
)

// runRace is the testable heart of the command: it owns no OS state
// beyond what is handed to it, the same separation the original
// calculator's run(ctx, config, out) drew between main's impurities and
// the application's actual logic.
func runRace(ctx context.Context, f *cliFlags, out, errOut io.Writer) (int, error) {
	logger, err := newLogger(f.logLevel)
	if err != nil {
		return ExitErrorConfig, err
	}
	defer logger.Sync() //nolint:errcheck

	cfg, roster, err := buildConfiguration(f)
	if err != nil {
		return ExitErrorConfig, err
	}

	ctx, cancel := withSignalAndTimeout(ctx, f.timeout)
	defer cancel()

	policy, err := cfg.Fairness.Build()
	if err != nil {
		return ExitErrorConfig, err
	}

	array := generator.Build(cfg.ArraySize, cfg.DistributionKind, cfg.Seed)
	logger.Info("race configured",
		zap.Int("size", cfg.ArraySize),
		zap.String("distribution", string(cfg.DistributionKind)),
		zap.Uint64("seed", cfg.Seed),
		zap.String("fairness", policy.Name()),
		zap.Int("participants", len(roster)))

	participants := make([]race.Participant, len(roster))
	for i, kind := range roster {
		s, _ := sorter.New(kind)
		participants[i] = race.Participant{Name: string(kind), Kind: kind, Sort: s}
	}

	controller := race.NewController(participants)
	controller.Start(policy, array)

	var display *cli.RaceDisplay
	if !f.quiet {
		display = cli.NewRaceDisplay(len(participants), out)
	}

	tickInterval := time.Second / time.Duration(f.tickRateHz)
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	recorder, _ := policy.(fairness.TimingRecorder)

loop:
	for controller.Mode() == race.Running {
		if f.maxTicks > 0 && controller.TickCount() >= uint64(f.maxTicks) {
			logger.Warn("max-ticks reached before completion", zap.Uint64("ticks", controller.TickCount()))
			break loop
		}
		select {
		case <-ctx.Done():
			break loop
		case <-ticker.C:
			start := time.Now()
			before := statusesByName(controller)
			controller.Tick()
			if recorder != nil {
				elapsed := time.Since(start)
				for _, st := range controller.Statuses() {
					ops := int(st.Telemetry.TotalComparisons - before[st.Name])
					if ops > 0 {
						recorder.RecordTiming(st.Name, elapsed, ops)
					}
				}
			}
			if display != nil {
				display.Render(controller.Statuses(), controller.TickCount(), false)
			}
		}
	}

	if err := ctx.Err(); err != nil {
		if display != nil {
			display.Render(controller.Statuses(), controller.TickCount(), true)
		}
		return handleRunError(err, f.timeout, errOut)
	}

	if display != nil {
		display.Render(controller.Statuses(), controller.TickCount(), true)
	}

	if controller.Mode() != race.Complete {
		fmt.Fprintf(out, "\nstopped after %d ticks without completing (max-ticks reached)\n", controller.TickCount())
		return ExitSuccess, nil
	}

	if err := crossValidate(controller.Statuses()); err != nil {
		logger.Error("participants disagree on final order", zap.Error(err))
		return ExitErrorMismatch, err
	}

	fmt.Fprintf(out, "\nrace complete in %d ticks\n", controller.TickCount())
	return ExitSuccess, nil
}

func statusesByName(c *race.Controller) map[string]uint64 {
	out := make(map[string]uint64, len(c.Statuses()))
	for _, st := range c.Statuses() {
		out[st.Name] = st.Telemetry.TotalComparisons
	}
	return out
}

// crossValidate checks that every participant converged on the same
// sorted array, the race-domain equivalent of the original calculator's
// cross-algorithm result comparison in benchmark mode.
func crossValidate(statuses []race.ParticipantStatus) error {
	if len(statuses) < 2 {
		return nil
	}
	first := statuses[0].Array
	for _, st := range statuses[1:] {
		if len(st.Array) != len(first) {
			return fmt.Errorf("%s: %w (length %d vs %d)", st.Name, errRaceMismatch, len(st.Array), len(first))
		}
		for i := range first {
			if st.Array[i] != first[i] {
				return fmt.Errorf("%s: %w (differs at index %d)", st.Name, errRaceMismatch, i)
			}
		}
	}
	return nil
}

func handleRunError(err error, timeout time.Duration, errOut io.Writer) (int, error) {
	if errors.Is(err, context.DeadlineExceeded) {
		fmt.Fprintf(errOut, "race did not finish within the %s timeout\n", timeout)
		return ExitErrorTimeout, err
	}
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(errOut, "race canceled")
		return ExitErrorCanceled, err
	}
	return ExitErrorGeneric, err
}
