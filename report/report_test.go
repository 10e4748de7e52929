package report

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvr-ai/go-linecounter/controller"
)

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0:00:00"},
		{-4, "0:00:00"},
		{3, "0:00:03"},
		{2.5, "0:00:02.500000"},
		{1.0 / 3.0, "0:00:00.333333"},
		{65.25, "0:01:05.250000"},
		{3723, "1:02:03"},
		{86400 + 1, "1 day, 0:00:01"},
		{2*86400 + 0.000001, "2 days, 0:00:00.000001"},
		{0.9999996, "0:00:01"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatSeconds(tt.in), "FormatSeconds(%v)", tt.in)
	}
}

func TestWriteBasketLayout(t *testing.T) {
	s := controller.Summary{
		Burgers:          8,
		EmptyBaskets:     2,
		FilledBaskets:    2,
		EntryTimes:       []float64{1, 9},
		ExitTimes:        []float64{5, 13.5},
		BurgersPerBasket: 4,
		AvgFillTime:      4.25,
		AvgBurgerTime:    1.0625,
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, s))

	want := strings.Join([]string{
		"Total burgers: 8",
		"Total baskets: 2",
		"Empty basket entry times: [0:00:01, 0:00:09]",
		"Filled basket exit times: [0:00:05, 0:00:13.500000]",
		"Average basket fill time: 0:00:04.250000",
		"Average burger time: 0:00:01.062500",
	}, "\n") + "\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteBurgerLayout(t *testing.T) {
	s := controller.Summary{
		HasBurgerRegion: true,
		EmptyBaskets:    1,
		DirectBurgers:   0,
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, s))

	out := buf.String()
	assert.Contains(t, out, "Total burgers: 0\n")
	assert.Contains(t, out, "Total empty baskets: 1\n")
	assert.Contains(t, out, "Total filled baskets: 0\n")
	assert.Contains(t, out, "Burgers seen in burger region: 0\n")
	assert.Contains(t, out, "Filled basket exit times: []\n")
	assert.Contains(t, out, "Average burger time: 0:00:00\n")
	assert.NotContains(t, out, "Total baskets:")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestWritePropagatesErrors(t *testing.T) {
	assert.Error(t, Write(failingWriter{}, controller.Summary{}))
}

func TestWriteTimeline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timeline.png")
	s := controller.Summary{
		HasBurgerRegion: true,
		EntryTimes:      []float64{1, 4},
		ExitTimes:       []float64{3},
		BurgerTimes:     []float64{1.5, 2, 2.5},
	}
	require.NoError(t, WriteTimeline(path, s))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestTimelineWithoutEvents(t *testing.T) {
	p, err := Timeline(controller.Summary{})
	require.NoError(t, err)
	assert.Equal(t, 3.0, p.Y.Max)
}
