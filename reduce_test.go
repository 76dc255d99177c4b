package xsum

import (
	"math/rand"
	"testing"
)

func TestReduceSmallAccumulators(t *testing.T) {
	r := rand.New(rand.NewSource(6))
	x := make([]float64, 10000)
	for i := range x {
		x[i] = r.NormFloat64() * 1e3
	}

	whole := NewSmallAccumulator()
	whole.AddSlice(x)
	want := whole.Round()

	const shardCount = 7
	shards := make([]*SmallAccumulator, shardCount)
	shardSize := (len(x) + shardCount - 1) / shardCount
	for i := range shards {
		start := i * shardSize
		end := min(start+shardSize, len(x))
		sa := NewSmallAccumulator()
		if start < end {
			sa.AddSlice(x[start:end])
		}
		shards[i] = sa
	}

	got := Reduce[SmallAccumulator](shards).Round()
	if got != want {
		t.Fatalf("Reduce(...).Round() = %v, want %v", got, want)
	}
}

func TestReduceSingleShard(t *testing.T) {
	sa := NewSmallAccumulator()
	sa.AddSlice([]float64{1, 2, 3})
	got := Reduce[SmallAccumulator]([]*SmallAccumulator{sa}).Round()
	if got != 6 {
		t.Fatalf("Reduce(single shard).Round() = %v, want 6", got)
	}
}

func TestReduceNoShardsPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Reduce did not panic on an empty shard list")
		}
	}()
	Reduce[SmallAccumulator](nil)
}
