package xsum

import (
	"github.com/cwbudde/xsum/internal/cpu"
	"github.com/cwbudde/xsum/internal/kernel"
)

// ActiveKernel returns the name of the vector-add loop strategy the large
// accumulator will use on this CPU (e.g. "generic" or "unrolled2-sse2"), as a
// diagnostic surface for confirming which dispatch decision was made.
func ActiveKernel() string {
	return kernel.Global.Select(cpu.DetectFeatures()).Name
}
