package kernel

import "github.com/cwbudde/xsum/internal/cpu"

func init() {
	Global.Register(Strategy{
		Name:      "generic",
		SIMDLevel: cpu.SIMDNone,
		Priority:  0,
		Unroll:    1,
	})
}
