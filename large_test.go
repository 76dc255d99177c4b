package xsum

import (
	"math"
	"math/rand"
	"testing"
)

func TestLargeAccumulatorBasic(t *testing.T) {
	cases := []struct {
		name string
		x    []float64
		want float64
	}{
		{name: "empty", x: nil, want: 0},
		{name: "single value", x: []float64{3.5}, want: 3.5},
		{name: "simple sum", x: []float64{1, 2, 3, 4, 5}, want: 15},
		{name: "cancellation", x: []float64{1e16, 1.0, -1e16, -1.0}, want: 0},
		{name: "multi-bucket", x: []float64{1e0, 1e1, 1e2, 1e3, 1e4, 1e5, 1e6, 1e7, 1e8, 1e9}, want: 1_111_111_111.0},
		{name: "catastrophic subtraction", x: []float64{3423.34e12, -93.431, -3432.1e11}, want: 3_080_129_999_999_906.5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			la := NewLargeAccumulator()
			la.AddSlice(tc.x)
			if got := la.Round(); got != tc.want {
				t.Fatalf("Round() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestLargeAccumulatorAgreesWithSmall(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	x := make([]float64, 5000)
	for i := range x {
		x[i] = r.NormFloat64() * math.Pow(10, float64(r.Intn(20)-10))
	}

	sa := NewSmallAccumulator()
	sa.AddSlice(x)

	la := NewLargeAccumulator()
	la.AddSlice(x)

	want := sa.Round()
	got := la.Round()
	if got != want {
		t.Fatalf("LargeAccumulator.Round() = %v, SmallAccumulator.Round() = %v, want equal", got, want)
	}
}

func TestLargeAccumulatorOrderIndependence(t *testing.T) {
	x := make([]float64, 2000)
	r := rand.New(rand.NewSource(3))
	for i := range x {
		x[i] = r.NormFloat64() * math.Pow(10, float64(r.Intn(30)-15))
	}

	la := NewLargeAccumulator()
	la.AddSlice(x)
	base := la.Round()

	for trial := 0; trial < 5; trial++ {
		perm := append([]float64(nil), x...)
		r.Shuffle(len(perm), func(i, j int) { perm[i], perm[j] = perm[j], perm[i] })

		shuffled := NewLargeAccumulator()
		shuffled.AddSlice(perm)
		if got := shuffled.Round(); got != base {
			t.Fatalf("trial %d: Round() = %v, want %v", trial, got, base)
		}
	}
}

func TestLargeAccumulatorMergeAssociativity(t *testing.T) {
	x := make([]float64, 3000)
	r := rand.New(rand.NewSource(4))
	for i := range x {
		x[i] = r.NormFloat64() * math.Pow(10, float64(r.Intn(20)-10))
	}

	whole := NewLargeAccumulator()
	whole.AddSlice(x)
	want := whole.Round()

	half := len(x) / 2
	a := NewLargeAccumulator()
	a.AddSlice(x[:half])
	b := NewLargeAccumulator()
	b.AddSlice(x[half:])
	a.Merge(b)

	if got := a.Round(); got != want {
		t.Fatalf("merged Round() = %v, want %v", got, want)
	}
}

func TestLargeAccumulatorInfNaN(t *testing.T) {
	t.Run("inf plus finite", func(t *testing.T) {
		la := NewLargeAccumulator()
		la.AddSlice([]float64{math.Inf(1), 123})
		if got := la.Round(); !math.IsInf(got, 1) {
			t.Fatalf("Round() = %v, want +Inf", got)
		}
	})

	t.Run("opposing infinities", func(t *testing.T) {
		la := NewLargeAccumulator()
		la.AddSlice([]float64{math.Inf(1), math.Inf(-1)})
		if got := la.Round(); !math.IsNaN(got) {
			t.Fatalf("Round() = %v, want NaN", got)
		}
	})

	t.Run("nan dominates", func(t *testing.T) {
		la := NewLargeAccumulator()
		la.AddSlice([]float64{math.NaN(), 123})
		if got := la.Round(); !math.IsNaN(got) {
			t.Fatalf("Round() = %v, want NaN", got)
		}
	})

	t.Run("inf inside the unrolled pair loop", func(t *testing.T) {
		// x[2] lands in the second pair the two-at-a-time loop processes; its
		// bucket count goes negative mid-loop, forcing addSliceUnrolled to
		// back out both halves of that pair and redispatch x[2] through
		// addValueInfNaN before resuming.
		la := NewLargeAccumulator()
		la.addSliceUnrolled([]float64{1.0, 2.0, math.Inf(1), 3.0, 4.0, 5.0})
		if got := la.Round(); !math.IsInf(got, 1) {
			t.Fatalf("Round() = %v, want +Inf", got)
		}
	})

	t.Run("nan inside the unrolled pair loop", func(t *testing.T) {
		la := NewLargeAccumulator()
		la.addSliceUnrolled([]float64{1.0, 2.0, math.NaN(), 3.0, 4.0, 5.0})
		if got := la.Round(); !math.IsNaN(got) {
			t.Fatalf("Round() = %v, want NaN", got)
		}
	})
}

func TestLargeAccumulatorManySpillsPerBucket(t *testing.T) {
	// Force many spills of the same bucket: 3*bucketFull+7 copies of the
	// exact same value all land in the same sign+exponent bucket, which
	// fills and spills three times over before Round.
	n := int(bucketFull)*3 + 7
	x := make([]float64, n)
	for i := range x {
		x[i] = 1.0
	}

	la := NewLargeAccumulator()
	la.AddSlice(x)
	want := float64(n)
	if got := la.Round(); got != want {
		t.Fatalf("Round() = %v, want %v", got, want)
	}
}

func TestLargeAccumulatorAddSA(t *testing.T) {
	x := []float64{1e16, 1.0, -1e16, 2.5}
	half := len(x) / 2

	sa := NewSmallAccumulator()
	sa.AddSlice(x[half:])

	la := NewLargeAccumulator()
	la.AddSlice(x[:half])
	la.AddSA(sa)

	whole := NewLargeAccumulator()
	whole.AddSlice(x)

	if got, want := la.Round(), whole.Round(); got != want {
		t.Fatalf("AddSA: Round() = %v, want %v", got, want)
	}

	// sa itself must be unmodified by AddSA.
	if got, want := sa.Round(), -1e16+2.5; got != want {
		t.Fatalf("AddSA mutated its argument: sa.Round() = %v, want %v", got, want)
	}
}

func TestNewLargeAccumulatorFromSmall(t *testing.T) {
	x := []float64{1.5, -2.25, 1e300, -1e300, 3.14159}

	sa := NewSmallAccumulator()
	sa.AddSlice(x)
	want := sa.Round()

	la := NewLargeAccumulatorFromSmall(sa)
	if got := la.Round(); got != want {
		t.Fatalf("NewLargeAccumulatorFromSmall(...).Round() = %v, want %v", got, want)
	}
	if la.IsEmpty() {
		t.Fatal("IsEmpty() = true for a large accumulator seeded with a non-zero small accumulator")
	}
}

func TestLargeAccumulatorIsEmpty(t *testing.T) {
	la := NewLargeAccumulator()
	if !la.IsEmpty() {
		t.Fatal("IsEmpty() = false for a freshly constructed accumulator")
	}
	la.Add(10.0)
	if la.IsEmpty() {
		t.Fatal("IsEmpty() = true after Add")
	}
}

func TestLargeAccumulatorAddDotLengthMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("AddDot did not panic on mismatched lengths")
		}
	}()
	la := NewLargeAccumulator()
	la.AddDot([]float64{1, 2}, []float64{1})
}
