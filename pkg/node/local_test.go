package node

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLocalNodeDefaults(t *testing.T) {
	n, _ := ParseName("foo@localhost")
	local := NewLocalNode(n, Creation(7))
	assert.Equal(t, n, local.Name)
	assert.Equal(t, Creation(7), local.Creation)
	assert.Equal(t, DefaultFlags, local.Flags)
	assert.True(t, local.Flags.Has(FlagExtendedReferences))
}
