package xsum

import (
	"math/rand"
	"testing"
)

func TestSmallAccumulatorWireRoundTrip(t *testing.T) {
	sa := NewSmallAccumulator()
	sa.AddSlice([]float64{1.5, -2.25, 1e300, -1e300, 3.14159})

	data, err := sa.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary() error: %v", err)
	}
	if len(data) != smallWireSize {
		t.Fatalf("MarshalBinary() produced %d bytes, want %d", len(data), smallWireSize)
	}

	got := NewSmallAccumulator()
	if err := got.UnmarshalBinary(data); err != nil {
		t.Fatalf("UnmarshalBinary() error: %v", err)
	}

	want := sa.Round()
	if r := got.Round(); r != want {
		t.Fatalf("round-tripped Round() = %v, want %v", r, want)
	}
}

func TestSmallAccumulatorUnmarshalRejectsWrongSize(t *testing.T) {
	sa := NewSmallAccumulator()
	if err := sa.UnmarshalBinary([]byte{1, 2, 3}); err == nil {
		t.Fatal("UnmarshalBinary() on truncated data did not return an error")
	}
}

func TestLargeAccumulatorWireRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	x := make([]float64, 500)
	for i := range x {
		x[i] = r.NormFloat64()
	}

	la := NewLargeAccumulator()
	la.AddSlice(x)
	want := la.Round()

	data, err := la.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary() error: %v", err)
	}

	got := NewLargeAccumulator()
	if err := got.UnmarshalBinary(data); err != nil {
		t.Fatalf("UnmarshalBinary() error: %v", err)
	}
	if r := got.Round(); r != want {
		t.Fatalf("round-tripped Round() = %v, want %v", r, want)
	}
}

func TestLargeAccumulatorUnmarshalRejectsWrongSize(t *testing.T) {
	la := NewLargeAccumulator()
	if err := la.UnmarshalBinary([]byte{1, 2, 3}); err == nil {
		t.Fatal("UnmarshalBinary() on truncated data did not return an error")
	}
}
