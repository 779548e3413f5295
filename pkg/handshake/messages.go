package handshake

import (
	"encoding/binary"

	"github.com/ZentaChain/erldist/pkg/node"
)

const (
	tagOldSendName = 'n'
	tagNewSendName = 'N'
	tagStatus      = 's'
	tagChallenge   = 'r'
	tagComplement  = 'c'
	tagAck         = 'a'
)

// nameMessage is the body shape shared by the initial send_name message
// and the server's subsequent send_challenge message: both are framed
// under tag 'n' or 'N', the challenge message simply adding a non-zero
// Challenge.
type nameMessage struct {
	Version   uint16 // legacy ('n') only
	Flags     node.DistributionFlags
	Creation  node.Creation // new ('N') only
	Name      string
	Challenge uint32 // zero on the initial send_name
}

func encodeOldName(m nameMessage) []byte {
	body := make([]byte, 0, 6+len(m.Name))
	var v [2]byte
	binary.BigEndian.PutUint16(v[:], m.Version)
	body = append(body, v[:]...)
	var f [4]byte
	binary.BigEndian.PutUint32(f[:], uint32(m.Flags))
	body = append(body, f[:]...)
	if m.Challenge != 0 {
		var c [4]byte
		binary.BigEndian.PutUint32(c[:], m.Challenge)
		body = append(body, c[:]...)
	}
	body = append(body, m.Name...)
	return body
}

func decodeOldName(body []byte, hasChallenge bool) (nameMessage, error) {
	min := 6
	if hasChallenge {
		min += 4
	}
	if len(body) < min {
		return nameMessage{}, newError(KindIO, "truncated old send_name body")
	}
	m := nameMessage{
		Version: binary.BigEndian.Uint16(body[0:2]),
		Flags:   node.DistributionFlags(binary.BigEndian.Uint32(body[2:6])),
	}
	rest := body[6:]
	if hasChallenge {
		m.Challenge = binary.BigEndian.Uint32(rest[0:4])
		rest = rest[4:]
	}
	m.Name = string(rest)
	return m, nil
}

func encodeNewName(m nameMessage) []byte {
	body := make([]byte, 0, 16+len(m.Name))
	var f [8]byte
	binary.BigEndian.PutUint64(f[:], uint64(m.Flags))
	body = append(body, f[:]...)
	if m.Challenge != 0 {
		var c [4]byte
		binary.BigEndian.PutUint32(c[:], m.Challenge)
		body = append(body, c[:]...)
	}
	var cr [4]byte
	binary.BigEndian.PutUint32(cr[:], uint32(m.Creation))
	body = append(body, cr[:]...)
	var nlen [2]byte
	binary.BigEndian.PutUint16(nlen[:], uint16(len(m.Name)))
	body = append(body, nlen[:]...)
	body = append(body, m.Name...)
	return body
}

func decodeNewName(body []byte, hasChallenge bool) (nameMessage, error) {
	min := 8 + 4 + 2
	if hasChallenge {
		min += 4
	}
	if len(body) < min {
		return nameMessage{}, newError(KindIO, "truncated new send_name body")
	}
	m := nameMessage{Flags: node.DistributionFlags(binary.BigEndian.Uint64(body[0:8]))}
	rest := body[8:]
	if hasChallenge {
		m.Challenge = binary.BigEndian.Uint32(rest[0:4])
		rest = rest[4:]
	}
	m.Creation = node.Creation(binary.BigEndian.Uint32(rest[0:4]))
	nlen := binary.BigEndian.Uint16(rest[4:6])
	rest = rest[6:]
	if len(rest) < int(nlen) {
		return nameMessage{}, newError(KindIO, "truncated send_name node name")
	}
	m.Name = string(rest[:nlen])
	return m, nil
}

func encodeStatus(status string) []byte {
	return []byte(status)
}

func decodeStatus(body []byte) string {
	return string(body)
}

func encodeChallengeReply(challenge uint32, digest [16]byte) []byte {
	body := make([]byte, 0, 20)
	var c [4]byte
	binary.BigEndian.PutUint32(c[:], challenge)
	body = append(body, c[:]...)
	body = append(body, digest[:]...)
	return body
}

func decodeChallengeReply(body []byte) (challenge uint32, digest [16]byte, err error) {
	if len(body) < 20 {
		return 0, digest, newError(KindIO, "truncated challenge reply")
	}
	challenge = binary.BigEndian.Uint32(body[0:4])
	copy(digest[:], body[4:20])
	return challenge, digest, nil
}

func encodeAck(digest [16]byte) []byte {
	return digest[:]
}

func decodeAck(body []byte) (digest [16]byte, err error) {
	if len(body) < 16 {
		return digest, newError(KindIO, "truncated challenge ack")
	}
	copy(digest[:], body[:16])
	return digest, nil
}

func encodeComplement(flagsHigh uint32, creation node.Creation) []byte {
	body := make([]byte, 8)
	binary.BigEndian.PutUint32(body[0:4], flagsHigh)
	binary.BigEndian.PutUint32(body[4:8], uint32(creation))
	return body
}

func decodeComplement(body []byte) (flagsHigh uint32, creation node.Creation, err error) {
	if len(body) < 8 {
		return 0, 0, newError(KindIO, "truncated complement body")
	}
	return binary.BigEndian.Uint32(body[0:4]), node.Creation(binary.BigEndian.Uint32(body[4:8])), nil
}
