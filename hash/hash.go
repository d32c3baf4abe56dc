// Package Hash implements the seed mixer used to derive independent random streams
package hash

// Mix combines a base seed with a stream number (for example a lane index) into
// a new seed. Distinct stream numbers give well separated seeds even when the
// base seed is small, so streams seeded from Mix(seed, 0..L-1) do not overlap.
func Mix(seed uint64, stream uint64) uint64 {
	// mixing stage, mix input with salt using subtraction
	var m = stream - seed

	// hashing stage, use xor shift with prime coefficients
	m ^= m << 2
	m ^= m << 3
	m ^= m >> 5
	m ^= m >> 7
	m ^= m << 11
	m ^= m << 13
	m ^= m >> 17
	m ^= m << 19

	// mixing stage 2, mix input with salt using addition
	m += seed

	// finalizer from splitmix64, spreads low entropy inputs over all bits
	m ^= m >> 30
	m *= 0xbf58476d1ce4e5b9
	m ^= m >> 27
	m *= 0x94d049bb133111eb
	m ^= m >> 31
	return m
}

// Mod reduces a mixed value to the range 0 to max-1 using the multiply shift trick
// https://lemire.me/blog/2016/06/27/a-fast-alternative-to-the-modulo-reduction/
func Mod(m uint64, max uint32) uint32 {
	return uint32(((m >> 32) * uint64(max)) >> 32)
}
