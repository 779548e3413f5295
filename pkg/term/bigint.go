package term

import "math/big"

// bigFromLittleEndian builds an unsigned big.Int from little-endian bytes,
// per the External Term Format's SMALL_BIG/LARGE_BIG magnitude encoding.
func bigFromLittleEndian(mag []byte) *big.Int {
	be := make([]byte, len(mag))
	for i, b := range mag {
		be[len(mag)-1-i] = b
	}
	return new(big.Int).SetBytes(be)
}

// littleEndianMagnitude returns v's absolute value as little-endian bytes,
// the inverse of bigFromLittleEndian.
func littleEndianMagnitude(v *big.Int) []byte {
	abs := new(big.Int).Abs(v)
	be := abs.Bytes()
	le := make([]byte, len(be))
	for i, b := range be {
		le[len(be)-1-i] = b
	}
	return le
}
