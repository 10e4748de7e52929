package profiler

import (
	"bytes"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord(t *testing.T) {
	p := New()
	p.Record("process", 10*time.Millisecond)
	p.Record("process", 30*time.Millisecond)
	p.Record("read", 2*time.Millisecond)

	stages := p.Stages()
	require.Len(t, stages, 2)
	assert.Equal(t, "process", stages[0].Name)
	assert.Equal(t, int64(2), stages[0].Count)
	assert.Equal(t, 10*time.Millisecond, stages[0].Min)
	assert.Equal(t, 30*time.Millisecond, stages[0].Max)
	assert.Equal(t, 20*time.Millisecond, stages[0].Mean())
	assert.Equal(t, "read", stages[1].Name)
}

func TestStartOperation(t *testing.T) {
	p := New()
	done := p.StartOperation("render")
	done()

	stages := p.Stages()
	require.Len(t, stages, 1)
	assert.Equal(t, int64(1), stages[0].Count)
	assert.Equal(t, time.Duration(0), TimeTracker{}.Mean())
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	p := New()
	p.Record("process", time.Millisecond)
	p.Report(logger, 42)

	out := buf.String()
	assert.Contains(t, out, `"stage":"process"`)
	assert.Contains(t, out, `"frames":42`)
	assert.Contains(t, out, "run finished")
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 B", formatBytes(512))
	assert.Equal(t, "1.5 KB", formatBytes(1536))
	assert.Equal(t, "2.0 MB", formatBytes(2*1024*1024))
}
