package xsum

// Bit-layout constants for IEEE-754 binary64, and the derived chunk geometry
// of the small and large superaccumulators. Mirrors the constant block in
// Radford Neal's xsum reference implementation, renamed to Go-idiomatic
// lowerCamelCase rather than the original's XSUM_ prefix convention.
const (
	// mantissaBits excludes the implicit leading one.
	mantissaBits = 52
	expBits      = 11
	signBitPos   = mantissaBits + expBits // 63

	mantissaMask int64  = (int64(1) << mantissaBits) - 1
	expMask      int    = (1 << expBits) - 1
	expBias      int    = (1 << (expBits - 1)) - 1
	signMask     uint64 = uint64(1) << signBitPos

	// lowExpBits is the number of low-order exponent bits kept within one
	// small-accumulator chunk; highExpBits indexes the chunk itself.
	lowExpBits  = 5
	lowExpMask  = (1 << lowExpBits) - 1
	highExpBits = expBits - lowExpBits // 6
	highExpMask = (1 << highExpBits) - 1

	// schunks is 2^highExpBits + 3: the +3 gives head-room so that the
	// highest exponent's high half, plus one carry chunk, never indexes out
	// of range.
	schunks = (1 << highExpBits) + 3 // 67

	lowMantissaBits  = 1 << lowExpBits // 32
	highMantissaBits = mantissaBits - lowMantissaBits
	lowMantissaMask  int64 = (int64(1) << lowMantissaBits) - 1

	// carryBits/carryTerms bound how many logical adds a small accumulator
	// can absorb before a chunk could overflow its signed 64-bit width.
	carryBits  = 63 - mantissaBits // 11
	carryTerms = (1 << carryBits) - 1 // 2047

	// lchunks is indexed by the full 12-bit sign+exponent prefix.
	lchunks    = 1 << (expBits + 1) // 4096
	lcountBits = 64 - mantissaBits  // 12

	// bucketUnused marks an LA bucket that has never received a value, or is
	// a special (Inf/NaN) bucket that never spills.
	bucketUnused int16 = -1
	// bucketFull is the count a bucket resets to immediately after a spill:
	// 2^lcountBits more adds are allowed before the next spill.
	bucketFull int16 = 1 << lcountBits
)
