// Package xsum computes exact sums of IEEE-754 binary64 values.
//
// Given any finite sequence of doubles, [SmallAccumulator] and
// [LargeAccumulator] compute the sum a real-arithmetic accumulator would
// produce, then round once — to nearest, ties-to-even — to a double. The
// result does not depend on the order values were added in, is reproducible
// across machines, and is immune to catastrophic cancellation.
//
// # Which accumulator to use
//
// [SmallAccumulator] is ~540 bytes, lives inline, and is cheap to construct;
// it is the right default. [LargeAccumulator] is ~42KB and indexes directly
// by the sign+exponent bits of each input, trading memory for fewer carry
// propagations on workloads that add very large numbers of values between
// roundings; box it explicitly if it needs to move.
//
// # Concurrency
//
// Neither accumulator is safe for concurrent mutation. The supported pattern
// is accumulator-per-worker plus merge: each worker accumulates its shard,
// then [SmallAccumulator.Merge] or [LargeAccumulator.Merge] combines them
// pairwise (or in any tree — merge is associative and commutative), and the
// final Round is bit-identical regardless of worker count or merge order.
package xsum
