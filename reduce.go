package xsum

import "sync"

// Mergeable is implemented by both [SmallAccumulator] and
// [LargeAccumulator]. It is the minimal interface [Reduce] needs to combine
// shards computed concurrently by separate workers.
type Mergeable[T any] interface {
	Merge(other *T)
}

// Reduce combines shards into a single accumulator representing their
// total, by merging pairwise up a tree rather than folding left to right.
// Because Merge is associative and commutative on the represented value,
// the result is identical regardless of shard count or merge order; the
// tree shape only affects how much merge work runs concurrently.
//
// Reduce mutates shards in place (each level merges into one of its own
// shards) and returns a pointer into shards; it does not copy. shards must
// be non-empty.
//
// Reduce stops at the process boundary: it merges already-constructed
// in-process accumulators. It does not serialize or ship bytes over a
// network; callers that need distributed reduction wrap MarshalBinary /
// UnmarshalBinary in their own transport and merge the decoded results.
func Reduce[T any, PT interface {
	*T
	Mergeable[T]
}](shards []PT) PT {
	if len(shards) == 0 {
		panic("xsum: Reduce called with no shards")
	}

	for len(shards) > 1 {
		half := (len(shards) + 1) / 2
		var wg sync.WaitGroup

		for i := 0; i < len(shards)/2; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				shards[i].Merge(shards[half+i])
			}(i)
		}
		wg.Wait()

		// When len(shards) is odd, shards[half-1] was never a merge
		// source or destination above: it already holds the correct
		// leftover value and carries through to the next level untouched.
		shards = shards[:half]
	}

	return shards[0]
}
