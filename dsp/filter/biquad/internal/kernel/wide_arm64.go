//go:build arm64 && !purego

package kernel

import "github.com/cwbudde/algo-vecmath/cpu"

func init() {
	Global.Register(Entry{
		Name:         "unroll4",
		SIMDLevel:    cpu.SIMDNEON,
		Priority:     20,
		ProcessBlock: processBlock4,
	})
}
