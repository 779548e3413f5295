package node

import (
	"crypto/rand"
	"encoding/binary"
)

// Creation distinguishes successive incarnations of the same node name;
// it stamps every Pid, Port and Reference this process originates so
// peers can tell a stale identifier from a prior incarnation apart from
// a current one.
type Creation uint32

// NewCreation returns a random non-zero Creation, suitable for a freshly
// started node. It retries the vanishingly unlikely case of drawing zero.
func NewCreation() (Creation, error) {
	for {
		var buf [4]byte
		if _, err := rand.Read(buf[:]); err != nil {
			return 0, err
		}
		c := Creation(binary.BigEndian.Uint32(buf[:]))
		if c != 0 {
			return c, nil
		}
	}
}
