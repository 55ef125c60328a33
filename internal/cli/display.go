// Package cli renders a race's live state to a terminal. It is a pure
// consumer of the core: it reads ParticipantStatus snapshots and writes
// text, and never touches a Sorter or a Controller directly.
package cli

import (
	"fmt"
	"io"
	"strings"

	"example.com/sortrace/internal/race"
)

// Layout constants for the multi-bar race display. Mirrors the single
// progress bar's sizing from the original calculator comparison tool,
// just applied per participant instead of to one aggregate.
const (
	ProgressBarWidth = 40
	NameColumnWidth  = 14
)

// RaceDisplay renders one progress line per participant plus a status
// annotation (phase text, comparison/move counters, auxiliary memory);
// highlighted indices and markers are not shown. It holds no
// reference to the race itself; Render is handed a fresh snapshot every
// call and redraws from scratch, the same "full repaint" approach the
// single-bar display used for one calculator, just repeated per row.
type RaceDisplay struct {
	out      io.Writer
	numRows  int
	lastLine int // how many lines the previous Render wrote, for cursor-up repositioning
}

// NewRaceDisplay prepares a display for a race with the given number of
// participants.
func NewRaceDisplay(numParticipants int, out io.Writer) *RaceDisplay {
	return &RaceDisplay{out: out, numRows: numParticipants}
}

// Render repaints one line per participant status, then an aggregate
// summary line. On every call after the first it first moves the cursor
// back up over its previous output so the redraw replaces it in place,
// the multi-line generalization of the single bar's "\r\033[K" trick.
func (d *RaceDisplay) Render(statuses []race.ParticipantStatus, tick uint64, final bool) {
	if d.lastLine > 0 {
		fmt.Fprintf(d.out, "\033[%dA", d.lastLine)
	}

	lines := 0
	var totalProgress float64
	for _, st := range statuses {
		fmt.Fprintf(d.out, "\r\033[K%-*s %6.2f%% [%s] %s\n",
			NameColumnWidth, st.Name,
			st.Telemetry.ProgressHint*100,
			progressBar(st.Telemetry.ProgressHint, ProgressBarWidth),
			statusSuffix(st),
		)
		totalProgress += st.Telemetry.ProgressHint
		lines++
	}

	avg := 0.0
	if len(statuses) > 0 {
		avg = totalProgress / float64(len(statuses))
	}
	fmt.Fprintf(d.out, "\r\033[Ktick %-8d average %6.2f%%\n", tick, avg*100)
	lines++

	d.lastLine = lines
	if final {
		d.lastLine = 0
	}
}

// statusSuffix builds the trailing annotation for one participant's row:
// its algorithm phase, comparison/move counters, and memory footprint
// when the algorithm is using auxiliary storage.
func statusSuffix(st race.ParticipantStatus) string {
	var b strings.Builder
	b.WriteString(st.Telemetry.StatusText)
	fmt.Fprintf(&b, " C=%d M=%d", st.Telemetry.TotalComparisons, st.Telemetry.TotalMoves)
	if st.Telemetry.MemoryCurrent > 0 {
		fmt.Fprintf(&b, " mem=%s", formatBytes(st.Telemetry.MemoryCurrent))
	}
	return b.String()
}

// progressBar is unchanged in spirit from the single-calculator version:
// a fixed-width run of filled/empty block runes, clamped to [0, 1].
func progressBar(progress float64, length int) string {
	if progress > 1.0 {
		progress = 1.0
	} else if progress < 0.0 {
		progress = 0.0
	}

	const (
		filledChar = '█'
		emptyChar  = '░'
	)

	count := int(progress * float64(length))

	var builder strings.Builder
	builder.Grow(length * 3)
	for i := 0; i < length; i++ {
		if i < count {
			builder.WriteRune(filledChar)
		} else {
			builder.WriteRune(emptyChar)
		}
	}
	return builder.String()
}

// formatBytes renders an auxiliary-memory byte count: below 1024 as whole
// bytes, otherwise with one decimal in the largest binary unit (KiB, MiB,
// ...) that keeps the value at least 1.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%dB", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
