// Package report prints the end-of-stream summary and exports the event timeline.
package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/nvr-ai/go-linecounter/controller"
)

// FormatSeconds formats a duration in seconds as H:MM:SS, with a six digit fraction only
// when the duration has a non-zero microsecond part. Durations of a day or more are
// prefixed with "N day(s), ". Negative values are formatted as zero.
func FormatSeconds(seconds float64) string {
	if seconds <= 0 || math.IsNaN(seconds) {
		return "0:00:00"
	}
	micros := int64(math.Round(seconds * 1e6))

	us := micros % 1_000_000
	total := micros / 1_000_000
	days := total / 86400
	total %= 86400
	h, m, s := total/3600, total/60%60, total%60

	var b strings.Builder
	switch {
	case days == 1:
		b.WriteString("1 day, ")
	case days > 1:
		fmt.Fprintf(&b, "%d days, ", days)
	}
	fmt.Fprintf(&b, "%d:%02d:%02d", h, m, s)
	if us != 0 {
		fmt.Fprintf(&b, ".%06d", us)
	}
	return b.String()
}

func formatTimes(times []float64) string {
	parts := make([]string, len(times))
	for i, t := range times {
		parts[i] = FormatSeconds(t)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Write prints one line per metric of s.
//
// Layouts with a burger region report empty and filled baskets separately together with
// the burger-region count and interval. The two-region layout reports a single basket
// total and the per-burger share of the fill time.
func Write(w io.Writer, s controller.Summary) error {
	lines := []string{fmt.Sprintf("Total burgers: %d", s.Burgers)}

	if s.HasBurgerRegion {
		lines = append(lines,
			fmt.Sprintf("Total empty baskets: %d", s.EmptyBaskets),
			fmt.Sprintf("Total filled baskets: %d", s.FilledBaskets),
			fmt.Sprintf("Burgers seen in burger region: %d", s.DirectBurgers),
		)
	} else {
		lines = append(lines, fmt.Sprintf("Total baskets: %d", s.FilledBaskets))
	}

	lines = append(lines,
		"Empty basket entry times: "+formatTimes(s.EntryTimes),
		"Filled basket exit times: "+formatTimes(s.ExitTimes),
		"Average basket fill time: "+FormatSeconds(s.AvgFillTime),
		"Average burger time: "+FormatSeconds(s.AvgBurgerTime),
	)

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
