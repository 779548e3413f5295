package node

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNameOK(t *testing.T) {
	n, err := ParseName("foo@localhost")
	require.NoError(t, err)
	assert.Equal(t, Name{Name: "foo", Host: "localhost"}, n)
	assert.Equal(t, "foo@localhost", n.String())
}

func TestParseNameRejectsMalformed(t *testing.T) {
	for _, s := range []string{"foo", "@host", "name@", "a@b@c", ""} {
		_, err := ParseName(s)
		require.Error(t, err, "input %q", s)
		var malformed *ErrMalformedName
		assert.ErrorAs(t, err, &malformed, "input %q", s)
	}
}

func TestNewCreationIsNonZero(t *testing.T) {
	for i := 0; i < 10; i++ {
		c, err := NewCreation()
		require.NoError(t, err)
		assert.NotZero(t, c)
	}
}

func TestDistributionFlagsIntersectAndMissing(t *testing.T) {
	local := FlagExtendedReferences | FlagExtendedPidsPorts | FlagHandshake23
	peer := FlagExtendedReferences | FlagExtendedPidsPorts

	used := local.Intersect(peer)
	assert.True(t, used.Has(FlagExtendedReferences))
	assert.False(t, used.Has(FlagHandshake23))

	missing := used.Missing(MandatoryFor(5))
	assert.Zero(t, missing)

	missingV6 := used.Missing(MandatoryFor(6))
	assert.True(t, missingV6.Has(FlagHandshake23))
}

func TestDistributionFlagsString(t *testing.T) {
	assert.Equal(t, "(none)", DistributionFlags(0).String())
	s := (FlagPublished | FlagAtomCache).String()
	assert.Equal(t, "PUBLISHED|ATOM_CACHE", s)
}

func TestEndpointTCP4FromIP(t *testing.T) {
	ep, err := NewEndpointTCP4("127.0.0.1", 4369)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", ep.Host())
	assert.Equal(t, 4369, ep.Port())
	assert.Equal(t, "127.0.0.1:4369", ep.HostPort())
}

func TestEndpointTCP4FromDNS(t *testing.T) {
	ep, err := NewEndpointTCP4("localhost", 4369)
	require.NoError(t, err)
	assert.Equal(t, "localhost", ep.Host())
	assert.Equal(t, 4369, ep.Port())
}

func TestParseEndpointRejectsNonTCP(t *testing.T) {
	_, err := ParseEndpoint("/ip4/127.0.0.1/udp/4369")
	require.Error(t, err)
}
