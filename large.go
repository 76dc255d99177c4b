package xsum

import (
	"math"

	"github.com/cwbudde/xsum/internal/cpu"
	"github.com/cwbudde/xsum/internal/kernel"
	"github.com/cwbudde/xsum/internal/trace"
)

// LargeAccumulator indexes directly by the 12-bit sign+exponent prefix of
// each input's bit pattern, summing raw bit patterns within a bucket until
// it is full, then spilling the bucket into an embedded SmallAccumulator.
// It is about 42KB; unlike SmallAccumulator it is meant to be boxed, not
// passed by value. The zero value is not ready to use — call
// [NewLargeAccumulator] or [LargeAccumulator.Init].
type LargeAccumulator struct {
	chunk [lchunks]uint64
	count [lchunks]int16
	used  chunkset
	sacc  SmallAccumulator
}

// NewLargeAccumulator returns an empty accumulator ready to accept adds.
func NewLargeAccumulator() *LargeAccumulator {
	la := &LargeAccumulator{}
	la.Init()
	return la
}

// NewLargeAccumulatorFromSmall returns a new large accumulator whose buckets
// are all empty, seeded with sa's state in its embedded small accumulator.
// The result represents the same value as sa.
func NewLargeAccumulatorFromSmall(sa *SmallAccumulator) *LargeAccumulator {
	la := NewLargeAccumulator()
	la.sacc.chunk = sa.chunk
	la.sacc.inf = sa.inf
	la.sacc.nan = sa.nan
	la.sacc.addsUntilPropagate = sa.addsUntilPropagate
	return la
}

// Init resets the accumulator to its initial (empty) state.
func (la *LargeAccumulator) Init() {
	for i := range la.count {
		la.count[i] = bucketUnused
	}
	la.chunk = [lchunks]uint64{}
	la.used = chunkset{}
	la.sacc.Reset()
}

// Add adds a single double to the accumulator.
func (la *LargeAccumulator) Add(v float64) {
	bitsv := math.Float64bits(v)
	ix := uint16(bitsv >> mantissaBits)

	count := la.count[ix] - 1
	if count < 0 {
		la.addValueInfNaN(ix, bitsv)
		return
	}
	la.count[ix] = count
	la.chunk[ix] += bitsv
}

// AddSlice adds every value in x to the accumulator, using the two-at-a-time
// unrolled loop shape when internal/kernel selects it for this CPU.
func (la *LargeAccumulator) AddSlice(x []float64) {
	if len(x) == 0 {
		return
	}
	trace.Event("large.add_slice")

	if kernel.Global.Select(cpu.DetectFeatures()).Unroll >= 2 {
		la.addSliceUnrolled(x)
		return
	}
	for _, v := range x {
		la.Add(v)
	}
}

// AddSqnorm adds the squared norm (sum of x[i]*x[i]) of x to the accumulator.
func (la *LargeAccumulator) AddSqnorm(x []float64) {
	for _, v := range x {
		la.Add(v * v)
	}
}

// AddDot adds the dot product (sum of a[i]*b[i]) of a and b to the
// accumulator. Panics if a and b have different lengths.
func (la *LargeAccumulator) AddDot(a, b []float64) {
	if len(a) != len(b) {
		panic("xsum: AddDot slice length mismatch")
	}
	for i, v := range a {
		la.Add(v * b[i])
	}
}

// IsEmpty reports whether no bucket has ever received a finite value and
// the embedded small accumulator is empty (see [SmallAccumulator.IsEmpty]).
// Once a bucket has been used, la is not empty even if its values cancel.
func (la *LargeAccumulator) IsEmpty() bool {
	return la.used.isEmpty() && la.sacc.IsEmpty()
}

// AddSA adds the exact value represented by sa into la, via la's embedded
// small accumulator. Like Merge, this never touches la's buckets; unlike
// Merge, it leaves its argument unmodified.
func (la *LargeAccumulator) AddSA(sa *SmallAccumulator) {
	if la.sacc.addsUntilPropagate == 0 {
		la.sacc.CarryPropagate()
	}
	la.sacc.Merge(sa)
}

// addSliceUnrolled processes two values per iteration, combining the
// negativity tests on both decremented counts and the remaining count m into
// a single bitwise-OR comparison, and backs out + redispatches through the
// slow path whenever either bucket actually needed a spill.
func (la *LargeAccumulator) addSliceUnrolled(x []float64) {
	n := len(x)
	i := 0

	m := n - 3
	for m >= 0 {
		var ix1, ix2 uint16
		var count1, count2 int32

		for {
			b1 := math.Float64bits(x[i])
			b2 := math.Float64bits(x[i+1])
			i += 2

			ix1 = uint16(b1 >> mantissaBits)
			count1 = int32(la.count[ix1]) - 1
			la.count[ix1] = int16(count1)
			la.chunk[ix1] += b1

			ix2 = uint16(b2 >> mantissaBits)
			count2 = int32(la.count[ix2]) - 1
			la.count[ix2] = int16(count2)
			la.chunk[ix2] += b2

			m -= 2

			if count1|count2|int32(m) < 0 {
				break
			}
		}

		if count1 < 0 || count2 < 0 {
			la.count[ix2] = int16(count2 + 1)
			la.chunk[ix2] -= math.Float64bits(x[i-1])

			if count1 < 0 {
				la.count[ix1] = int16(count1 + 1)
				la.chunk[ix1] -= math.Float64bits(x[i-2])

				la.addValueInfNaN(ix1, math.Float64bits(x[i-2]))

				count2 = int32(la.count[ix2]) - 1
			}

			if count2 < 0 {
				la.addValueInfNaN(ix2, math.Float64bits(x[i-1]))
			} else {
				la.count[ix2] = int16(count2)
				la.chunk[ix2] += math.Float64bits(x[i-1])
			}
		}
	}

	for m += 3; m > 0; m-- {
		la.Add(x[i])
		i++
	}
}

// addValueInfNaN handles a value whose bucket count went negative: either a
// true Inf/NaN special bucket, or a finite bucket that must spill before it
// can accept this value.
func (la *LargeAccumulator) addValueInfNaN(ix uint16, bitsv uint64) {
	if int(ix&uint16(expMask)) == expMask {
		la.sacc.addInfNaN(int64(bitsv))
		return
	}

	la.spill(ix)
	la.count[ix]--
	la.chunk[ix] += bitsv
}

// spill transfers the accumulated raw bit-pattern sum in bucket ix into the
// embedded small accumulator, then resets the bucket to empty-and-full.
func (la *LargeAccumulator) spill(ix uint16) {
	count := la.count[ix]

	if count >= 0 {
		if la.sacc.addsUntilPropagate == 0 {
			la.sacc.CarryPropagate()
		}

		chunk := la.chunk[ix]

		// A full bucket's sign+exponent bits sum to a multiple of 2^64 and
		// vanish on their own; count>0 means the bucket wasn't full, so the
		// would-have-overflowed bits must be added back explicitly.
		if count > 0 {
			chunk += uint64(int64(count)*int64(ix)) << mantissaBits
		}

		exp := int(ix) & expMask
		var highExp, loExp int
		if exp == 0 {
			loExp = 1
			highExp = 0
		} else {
			loExp = exp & lowExpMask
			highExp = exp >> lowExpBits
		}

		lowChunk := (chunk << uint(loExp)) & uint64(lowMantissaMask)
		midChunk := chunk >> uint(lowMantissaBits-loExp)

		if exp != 0 {
			midChunk += uint64(bucketFull-count) << uint(highMantissaBits+loExp)
		}

		highChunk := midChunk >> lowMantissaBits
		midChunk &= uint64(lowMantissaMask)

		if ix&(1<<expBits) != 0 {
			la.sacc.chunk[highExp] -= int64(lowChunk)
			la.sacc.chunk[highExp+1] -= int64(midChunk)
			la.sacc.chunk[highExp+2] -= int64(highChunk)
		} else {
			la.sacc.chunk[highExp] += int64(lowChunk)
			la.sacc.chunk[highExp+1] += int64(midChunk)
			la.sacc.chunk[highExp+2] += int64(highChunk)
		}

		la.sacc.addsUntilPropagate--
	}

	la.chunk[ix] = 0
	la.count[ix] = bucketFull
	la.used.set(ix)
}

// RoundToSmall spills every bucket that has ever been used into the
// embedded small accumulator and returns it. The returned pointer aliases
// la's internal state; callers that need an independent snapshot should
// copy the dereferenced value.
func (la *LargeAccumulator) RoundToSmall() *SmallAccumulator {
	la.used.forEachSet(func(ix uint16) {
		if la.count[ix] >= 0 {
			la.spill(ix)
		}
	})
	return &la.sacc
}

// Round returns the correctly-rounded double for the value represented by
// la, per the same round-to-nearest, ties-to-even rule as
// [SmallAccumulator.Round].
func (la *LargeAccumulator) Round() float64 {
	trace.Event("large.round")
	return la.RoundToSmall().Round()
}

// Merge adds the exact value represented by other into la. As with
// [SmallAccumulator.Merge], this is associative and commutative on the
// represented value. other is left with every bucket spilled into its own
// embedded accumulator (round_to_small), but is otherwise unmodified.
func (la *LargeAccumulator) Merge(other *LargeAccumulator) {
	other.RoundToSmall()
	la.sacc.Merge(&other.sacc)
}
