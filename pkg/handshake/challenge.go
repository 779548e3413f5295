package handshake

import (
	"crypto/rand"
	"encoding/binary"
)

// randomChallenge draws a uniformly random 32-bit challenge. Zero is
// resampled: a zero challenge would collide with nameMessage's
// "no challenge present" sentinel.
func randomChallenge() (uint32, error) {
	for {
		var buf [4]byte
		if _, err := rand.Read(buf[:]); err != nil {
			return 0, err
		}
		c := binary.BigEndian.Uint32(buf[:])
		if c != 0 {
			return c, nil
		}
	}
}
