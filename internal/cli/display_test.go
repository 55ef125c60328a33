package cli

import (
	"bytes"
	"strings"
	"testing"

	"example.com/sortrace/internal/race"
	"example.com/sortrace/internal/sorter"
)

func TestRenderWritesOneLinePerParticipantPlusSummary(t *testing.T) {
	var buf bytes.Buffer
	d := NewRaceDisplay(2, &buf)
	statuses := []race.ParticipantStatus{
		{Name: "bubble", Kind: sorter.KindBubble, Telemetry: sorter.Telemetry{ProgressHint: 0.5, StatusText: "bubbling"}},
		{Name: "quick", Kind: sorter.KindQuick, Telemetry: sorter.Telemetry{ProgressHint: 1, StatusText: "partitioning"}},
	}
	d.Render(statuses, 3, false)

	out := buf.String()
	if !strings.Contains(out, "bubble") || !strings.Contains(out, "quick") {
		t.Fatalf("expected both participant names in output, got: %q", out)
	}
	if !strings.Contains(out, "tick 3") {
		t.Fatalf("expected tick counter in output, got: %q", out)
	}
	if got := strings.Count(out, "\n"); got != len(statuses)+1 {
		t.Fatalf("expected %d lines (one per participant plus summary), got %d: %q", len(statuses)+1, got, out)
	}
}

func TestProgressBarClampsOutOfRangeInput(t *testing.T) {
	full := progressBar(5.0, 10)
	if strings.Count(full, "█") != 10 {
		t.Fatalf("expected fully filled bar, got %q", full)
	}
	empty := progressBar(-1.0, 10)
	if strings.Count(empty, "░") != 10 {
		t.Fatalf("expected fully empty bar, got %q", empty)
	}
}

func TestFormatBytesScalesUnits(t *testing.T) {
	cases := map[int64]string{
		500:           "500B",
		2048:          "2.0KiB",
		5 * 1024 * 1024: "5.0MiB",
	}
	for n, want := range cases {
		if got := formatBytes(n); got != want {
			t.Fatalf("formatBytes(%d) = %q, want %q", n, got, want)
		}
	}
}
