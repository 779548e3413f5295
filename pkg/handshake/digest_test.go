package handshake

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDigestKnownVector(t *testing.T) {
	got := Digest("WIBBLE", 1234567890)
	assert.Equal(t, "491d9a542782189b5e4e84c454accce9", hex.EncodeToString(got[:]))
}
