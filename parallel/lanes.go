package parallel

import "runtime"

import "github.com/klauspost/cpuid/v2"

// Lanes reports how many lanes the machine can run side by side: the logical
// core count from cpuid, or runtime.NumCPU when cpuid cannot tell.
func Lanes() int {
	if n := cpuid.CPU.LogicalCores; n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// Describe returns a one line description of the CPU for logs.
func Describe() string {
	brand := cpuid.CPU.BrandName
	if brand == "" {
		brand = runtime.GOARCH
	}
	return brand
}
