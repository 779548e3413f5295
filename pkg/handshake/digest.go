package handshake

import (
	"crypto/md5"
	"strconv"
)

// Digest computes the cookie-authentication digest for a challenge: the
// 16-byte MD5 of the cookie followed by the challenge's ASCII decimal
// rendering. Both handshake sides compute it identically; whoever issued
// the challenge compares it against what the peer sends back.
func Digest(cookie string, challenge uint32) [16]byte {
	return md5.Sum([]byte(cookie + strconv.FormatUint(uint64(challenge), 10)))
}
