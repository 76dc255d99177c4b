package kernel

import "github.com/cwbudde/xsum/internal/cpu"

// The two-at-a-time unrolled strategy amortizes the large accumulator's
// combined negativity test (see large.go) over two inputs per iteration.
// It needs no actual vector instructions, but it is only worth the extra
// bookkeeping on a CPU baseline modern enough that the branch predictor and
// reorder buffer can overlap the two independent chunk updates, so it is
// gated on the same feature bits a real SIMD variant would require.
func init() {
	Global.Register(Strategy{
		Name:      "unrolled2-sse2",
		SIMDLevel: cpu.SIMDSSE2,
		Priority:  10,
		Unroll:    2,
	})
	Global.Register(Strategy{
		Name:      "unrolled2-neon",
		SIMDLevel: cpu.SIMDNEON,
		Priority:  10,
		Unroll:    2,
	})
}
