package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dataset.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFiltersShortConversations(t *testing.T) {
	path := writeDataset(t, `[
		{"conversations": [{"value": "a1"}, {"value": "b1"}, {"value": "c1"}]},
		{"conversations": [{"value": "only one turn"}]},
		{"conversations": []},
		{"conversations": [{"value": "a2"}, {"value": "b2"}]}
	]`)

	pairs, err := Load(path)
	require.NoError(t, err)
	require.Len(t, pairs, 2)

	// Only the first two turns survive, in order.
	assert.Equal(t, Pair{Prompt: "a1", Completion: "b1"}, pairs[0])
	assert.Equal(t, Pair{Prompt: "a2", Completion: "b2"}, pairs[1])
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := writeDataset(t, `{"not": "an array"}`)
	_, err = Load(path)
	assert.Error(t, err)
}

func TestSampleIsSeedStable(t *testing.T) {
	pairs := Synthetic(50)

	a, err := Sample(pairs, 20, 42)
	require.NoError(t, err)
	b, err := Sample(pairs, 20, 42)
	require.NoError(t, err)
	assert.Equal(t, a, b, "same seed must reproduce the same order")

	c, err := Sample(pairs, 20, 43)
	require.NoError(t, err)
	assert.NotEqual(t, a, c, "different seeds should permute differently")
}

func TestSampleRejectsBadSizes(t *testing.T) {
	pairs := Synthetic(3)

	_, err := Sample(pairs, 0, 1)
	assert.Error(t, err)

	_, err = Sample(pairs, 4, 1)
	assert.Error(t, err)
}

func TestFlattenInterleavesPairsWithContiguousIndices(t *testing.T) {
	pairs := []Pair{
		{Prompt: "a1", Completion: "b1"},
		{Prompt: "a2", Completion: "b2"},
	}

	reqs := Flatten(pairs)
	require.Len(t, reqs, 4)

	texts := make([]string, len(reqs))
	for i, r := range reqs {
		assert.Equal(t, i, r.Index)
		texts[i] = r.Text
	}
	assert.Equal(t, []string{"a1", "b1", "a2", "b2"}, texts)
}

func TestSyntheticHasVaryingLengths(t *testing.T) {
	pairs := Synthetic(10)
	require.Len(t, pairs, 10)
	assert.NotEqual(t, len(pairs[0].Prompt), len(pairs[5].Prompt))
}
