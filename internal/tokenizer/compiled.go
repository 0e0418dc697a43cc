/*
PURPOSE:
  Compiled tokenizer backend: a pre-split + piece-cache pipeline built
  around an inner Codec. This is the optimized backend the benchmark
  measures against the plain reference.

REQUIREMENTS:
  User-specified:
  - Same Encode contract and token output as the inner codec.
  - Optional per-stage profiling for the --print-stage-stats flag.

  Implementation-discovered:
  - The infer queue drives Encode from several workers at once; the piece
    cache and the profiling counters must both be concurrency-safe.
  - Go's regexp has no lookahead, so the pre-split pattern is a simplified
    GPT-2 style pattern without the trailing-space lookahead.

ARCHITECTURE INTEGRATION:
  - Wraps: internal/tokenizer.Reference (or any Codec)
  - Called by: internal/engine (sync timer and infer queue)

ERROR HANDLING:
  - Propagates inner Encode errors unchanged; a failed piece aborts the
    whole Encode call.

IMPLEMENTATION RULES:
  - Use github.com/patrickmn/go-cache for the piece cache (thread-safe,
    no expiry needed for a single run).
  - Profiling counters use atomics; never take a lock on the hot path.

USAGE:
  c := tokenizer.Compile(ref, tokenizer.WithProfiling(true))
  ids, err := c.Encode("hello world")
  for _, s := range c.StageStats() { ... }

SELF-HEALING INSTRUCTIONS:
  - If token output diverges from the inner codec, inspect the split
    pattern first; pieces must land on the same boundaries the inner
    codec splits on.

RELATED FILES:
  - internal/tokenizer/codec.go
  - internal/engine/queue.go

MAINTENANCE:
  - Update the split pattern if the inner encoding family changes.
*/

package tokenizer

import (
	"regexp"
	"sort"
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// splitPattern approximates the GPT-2 pre-tokenization split: contractions,
// letter runs, digit runs, punctuation runs, whitespace runs. Each run may
// absorb one leading space, matching how BPE vocabularies store pieces.
var splitPattern = regexp.MustCompile(`'s|'t|'re|'ve|'m|'ll|'d| ?[\p{L}]+| ?[\p{N}]+| ?[^\s\p{L}\p{N}]+|\s+`)

// StageStat is one profiling row for the compiled pipeline.
type StageStat struct {
	Stage string
	Total time.Duration
	Count int64
}

// Compiled is the pre-split + cache Codec.
type Compiled struct {
	inner Codec
	cache *gocache.Cache

	profiling bool
	splitNS   atomic.Int64
	lookupNS  atomic.Int64
	encodeNS  atomic.Int64
	splits    atomic.Int64
	hits      atomic.Int64
	misses    atomic.Int64
}

// Option configures a Compiled codec.
type Option func(*Compiled)

// WithProfiling enables per-stage timing collection.
func WithProfiling(on bool) Option {
	return func(c *Compiled) { c.profiling = on }
}

// Compile builds the optimized pipeline around inner.
func Compile(inner Codec, opts ...Option) *Compiled {
	c := &Compiled{
		inner: inner,
		cache: gocache.New(gocache.NoExpiration, 0),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Encode splits text into pieces and encodes each piece through the
// inner codec, serving repeated pieces from the cache.
func (c *Compiled) Encode(text string) ([]int, error) {
	var t0 time.Time
	if c.profiling {
		t0 = time.Now()
	}
	pieces := splitPattern.FindAllString(text, -1)
	if c.profiling {
		c.splitNS.Add(int64(time.Since(t0)))
		c.splits.Add(1)
	}

	ids := make([]int, 0, len(pieces))
	for _, piece := range pieces {
		if c.profiling {
			t0 = time.Now()
		}
		cached, ok := c.cache.Get(piece)
		if c.profiling {
			c.lookupNS.Add(int64(time.Since(t0)))
		}
		if ok {
			if c.profiling {
				c.hits.Add(1)
			}
			ids = append(ids, cached.([]int)...)
			continue
		}

		if c.profiling {
			t0 = time.Now()
		}
		enc, err := c.inner.Encode(piece)
		if c.profiling {
			c.encodeNS.Add(int64(time.Since(t0)))
			c.misses.Add(1)
		}
		if err != nil {
			return nil, err
		}
		c.cache.Set(piece, enc, gocache.NoExpiration)
		ids = append(ids, enc...)
	}
	return ids, nil
}

// Name implements Codec.
func (c *Compiled) Name() string {
	return "compiled"
}

// CacheStats returns piece cache hit and miss counts.
func (c *Compiled) CacheStats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// StageStats returns accumulated per-stage timings, most expensive first.
// Empty unless profiling was enabled at Compile time.
func (c *Compiled) StageStats() []StageStat {
	if !c.profiling {
		return nil
	}
	stats := []StageStat{
		{Stage: "pre_split", Total: time.Duration(c.splitNS.Load()), Count: c.splits.Load()},
		{Stage: "cache_lookup", Total: time.Duration(c.lookupNS.Load()), Count: c.hits.Load() + c.misses.Load()},
		{Stage: "piece_encode", Total: time.Duration(c.encodeNS.Load()), Count: c.misses.Load()},
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Total > stats[j].Total })
	return stats
}
