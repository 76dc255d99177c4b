// Command xsumdemo prints the exact summation engine's answer next to
// naive and Kahan reference sums for the worked scenarios from the
// package's testable-properties documentation.
//
// Usage:
//
//	xsumdemo [-scenario name]
//
// Without arguments it runs every scenario.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/cwbudde/xsum"
	"github.com/cwbudde/xsum/internal/refsum"
)

type scenario struct {
	name    string
	inputs  []float64
	want    float64
	explain string
}

var scenarios = []scenario{
	{
		name:    "cancellation",
		inputs:  []float64{1e16, 1.0, -1e16, -1.0},
		want:    0.0,
		explain: "hugely dissimilar magnitudes that cancel exactly",
	},
	{
		name:    "absorption",
		inputs:  absorptionInputs(),
		want:    1.000000001,
		explain: "1.0 plus ten million copies of 1e-16",
	},
	{
		name:    "multi-bucket",
		inputs:  []float64{1e0, 1e1, 1e2, 1e3, 1e4, 1e5, 1e6, 1e7, 1e8, 1e9},
		want:    1_111_111_111.0,
		explain: "powers of ten spanning many large-accumulator buckets",
	},
	{
		name:    "catastrophic-subtraction",
		inputs:  []float64{3423.34e12, -93.431, -3432.1e11},
		want:    3_080_129_999_999_906.5,
		explain: "large terms whose naive subtraction loses precision",
	},
	{
		name: "inf-plus-finite",
		inputs: []float64{
			math.Inf(1), 123,
		},
		want:    math.Inf(1),
		explain: "+Inf combined with a finite value stays +Inf",
	},
	{
		name:    "inf-minus-inf",
		inputs:  []float64{math.Inf(1), math.Inf(-1)},
		want:    math.NaN(),
		explain: "opposing infinities reduce to NaN",
	},
	{
		name: "nan-dominates",
		inputs: []float64{
			math.NaN(), 123,
		},
		want:    math.NaN(),
		explain: "any NaN input produces a NaN result",
	},
}

func absorptionInputs() []float64 {
	x := make([]float64, 1+10_000_000)
	x[0] = 1.0
	for i := 1; i < len(x); i++ {
		x[i] = 1e-16
	}
	return x
}

func main() {
	name := flag.String("scenario", "", "run only the named scenario (default: all)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: xsumdemo [-scenario name]\n\n")
		fmt.Fprintf(os.Stderr, "Runs the worked exact-summation scenarios and prints xsum's answer\n")
		fmt.Fprintf(os.Stderr, "next to naive and Kahan reference sums.\n\n")
		fmt.Fprintf(os.Stderr, "Available scenarios:\n")
		names := scenarioNames()
		sort.Strings(names)
		for _, n := range names {
			fmt.Fprintf(os.Stderr, "  %s\n", n)
		}
	}
	flag.Parse()

	selected := scenarios
	if *name != "" {
		selected = nil
		for _, s := range scenarios {
			if s.name == *name {
				selected = append(selected, s)
			}
		}
		if len(selected) == 0 {
			fmt.Fprintf(os.Stderr, "error: unknown scenario %q\n", *name)
			os.Exit(1)
		}
	}

	printResults(selected)
}

func scenarioNames() []string {
	names := make([]string, len(scenarios))
	for i, s := range scenarios {
		names[i] = s.name
	}
	return names
}

func printResults(selected []scenario) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Scenario\txsum\tnaive\tkahan\tmatches\n")
	fmt.Fprintf(tw, "--------\t----\t-----\t-----\t-------\n")

	for _, s := range selected {
		sa := xsum.NewSmallAccumulator()
		sa.AddSlice(s.inputs)
		got := sa.Round()

		naive := refsum.Naive(s.inputs)
		kahan := refsum.Kahan(s.inputs)

		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%v\n",
			s.name, formatFloat(got), formatFloat(naive), formatFloat(kahan), matches(got, s.want))
	}

	if err := tw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}

func formatFloat(f float64) string {
	if math.IsNaN(f) {
		return "NaN"
	}
	return fmt.Sprintf("%.10g", f)
}

func matches(got, want float64) bool {
	if math.IsNaN(want) {
		return math.IsNaN(got)
	}
	return got == want
}
