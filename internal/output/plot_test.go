package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScatterPlotWritesJPEG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "latency_benchmark_test.jpeg")

	err := ScatterPlot(sampleRecords(), path, "Compiled vs Reference Latency", false)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestScatterPlotLogScale(t *testing.T) {
	path := filepath.Join(t.TempDir(), "latency_benchmark_log.jpeg")

	err := ScatterPlot(sampleRecords(), path, "log-log", true)
	require.NoError(t, err)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestScatterPlotRejectsEmptyInput(t *testing.T) {
	err := ScatterPlot(nil, filepath.Join(t.TempDir(), "empty.jpeg"), "", false)
	assert.Error(t, err)
}
