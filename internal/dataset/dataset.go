/*
PURPOSE:
  Loads and samples the prompt corpus for benchmarking.
  Understands ShareGPT-style conversation dumps.

REQUIREMENTS:
  User-specified:
  - Sample N prompt/completion pairs from a JSON dataset.
  - Shuffle once at sampling time; order is stable for the whole run.

  Implementation-discovered:
  - Conversations with fewer than 2 turns carry no pair; filter them out
    silently before sampling (they are not an error).
  - Only the first two turns of each conversation are kept.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine
  - Produces: internal/model.Request sequences

ERROR HANDLING:
  - Returns explicit error on unreadable/invalid JSON or when the dataset
    has fewer usable conversations than requested.

IMPLEMENTATION RULES:
  - Use encoding/json.
  - Sampling = shuffle then take k (equivalent to sample-without-replacement
    followed by shuffle).
  - Flatten interleaves pair members in original pair order: [a1,b1,a2,b2,...].

USAGE:
  pairs, err := dataset.Load("sharegpt.json")
  sampled, err := dataset.Sample(pairs, 1000, seed)
  reqs := dataset.Flatten(sampled)

SELF-HEALING INSTRUCTIONS:
  - If a new dataset format is needed, add a Load variant; keep Flatten as is.

RELATED FILES:
  - internal/model/types.go
  - internal/engine/runner.go

MAINTENANCE:
  - Update when supporting additional corpus formats.
*/

package dataset

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"github.com/daryltucker/tokbench/internal/model"
)

// Pair is one sampled (prompt, completion) text pair.
type Pair struct {
	Prompt     string
	Completion string
}

// Load reads a ShareGPT-style JSON dump and returns the usable pairs.
// Entries with fewer than two conversation turns are dropped.
func Load(path string) ([]Pair, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %s: %w", path, err)
	}

	var entries []struct {
		Conversations []struct {
			Value string `json:"value"`
		} `json:"conversations"`
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse dataset %s: %w", path, err)
	}

	var pairs []Pair
	for _, e := range entries {
		// Filter out the conversations with less than 2 turns.
		if len(e.Conversations) < 2 {
			continue
		}
		// Only keep the first two turns.
		pairs = append(pairs, Pair{
			Prompt:     e.Conversations[0].Value,
			Completion: e.Conversations[1].Value,
		})
	}
	return pairs, nil
}

// Sample picks k pairs without replacement and shuffles them.
// The returned order is fixed for the rest of the run.
func Sample(pairs []Pair, k int, seed int64) ([]Pair, error) {
	if k <= 0 {
		return nil, fmt.Errorf("sample size must be positive, got %d", k)
	}
	if len(pairs) < k {
		return nil, fmt.Errorf("dataset has %d usable conversations, need %d", len(pairs), k)
	}

	rng := rand.New(rand.NewSource(seed))
	shuffled := make([]Pair, len(pairs))
	copy(shuffled, pairs)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:k], nil
}

// Flatten turns sampled pairs into the ordered request sequence the
// benchmarks consume: [a1, b1, a2, b2, ...] with contiguous indices
// starting at 0. The index is the sole correlation key between async
// submission and completion, so this assignment must be deterministic.
func Flatten(pairs []Pair) []model.Request {
	reqs := make([]model.Request, 0, len(pairs)*2)
	for _, p := range pairs {
		reqs = append(reqs, model.Request{Index: len(reqs), Text: p.Prompt})
		reqs = append(reqs, model.Request{Index: len(reqs), Text: p.Completion})
	}
	return reqs
}

// Synthetic builds a fallback corpus of n pairs with varying prompt
// lengths, used when no dataset path is given.
func Synthetic(n int) []Pair {
	pairs := make([]Pair, n)
	for i := range pairs {
		pairs[i] = Pair{
			Prompt:     strings.Repeat("The quick brown fox jumps over the lazy dog. ", i%32+1),
			Completion: strings.Repeat("A fast auburn vulpine leapt above an idle canine. ", i%48+1),
		}
	}
	return pairs
}
