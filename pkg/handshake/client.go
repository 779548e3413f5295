package handshake

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ZentaChain/erldist/pkg/node"
)

// ClientSideHandshake drives the Init → SendName → RecvStatus →
// (RecvChallenge → SendChallengeReply → RecvChallengeAck) → Connected
// FSM from the connecting side.
type ClientSideHandshake struct {
	rw     io.ReadWriter
	Local  node.LocalNode
	Cookie string
	Audit  AuditRecorder

	// ForceVersion5 makes SendName send the legacy 'n' form even when
	// Local.Flags includes HANDSHAKE_23. Compatibility knob for talking
	// to a peer believed to be pre-23; leave false for ordinary
	// connections.
	ForceVersion5 bool

	// PeerSupportsHandshake23, when true, tells Finish the peer is
	// known to support version 6 despite SendName having used the
	// legacy 'n' form (whose 32-bit flags field cannot itself carry a
	// bit above 31, so the peer's challenge frame can't signal this on
	// its own). Populate it from an out-of-band source such as the
	// peer's HighestVersion reported by epmd.NodeEntry. When true and
	// ForceVersion5 was used, Finish sends the 'c' complement to
	// deliver the upper flag bits and Creation that 'n' omitted.
	PeerSupportsHandshake23 bool

	localChallenge uint32
	peerName       string
	peerFlags      node.DistributionFlags
	peerChallenge  uint32
	sentOld        bool
	serverSentNew  bool
}

// NewClientSideHandshake returns a handshake driver for rw.
func NewClientSideHandshake(rw io.ReadWriter, local node.LocalNode, cookie string) *ClientSideHandshake {
	return &ClientSideHandshake{rw: rw, Local: local, Cookie: cookie}
}

// SendName sends the initial send_name frame and returns the peer's
// status reply. It sends the version-6 'N' form when the local flags
// include HANDSHAKE_23, otherwise the version-5 'n' form (which Finish
// can later upgrade via a 'c' complement once it learns the peer also
// speaks version 6). Status strings other than "ok", "ok_simultaneous",
// and a "named:" prefix indicate the peer refused the connection; the
// caller decides whether that is fatal and passes its verdict to
// Finish.
func (h *ClientSideHandshake) SendName() (string, error) {
	var err error
	if h.Local.Flags.Has(node.FlagHandshake23) && !h.ForceVersion5 {
		err = writeFrame(h.rw, tagNewSendName, encodeNewName(nameMessage{
			Flags:    h.Local.Flags,
			Creation: h.Local.Creation,
			Name:     h.Local.Name.String(),
		}))
	} else {
		h.sentOld = true
		err = writeFrame(h.rw, tagOldSendName, encodeOldName(nameMessage{
			Version: 5,
			Flags:   h.Local.Flags & 0xffffffff,
			Name:    h.Local.Name.String(),
		}))
	}
	if err != nil {
		return "", err
	}

	tag, respBody, err := readFrame(h.rw)
	if err != nil {
		return "", err
	}
	if tag != tagStatus {
		return "", newError(KindUnexpectedTag, fmt.Sprintf("expected status, got %q", rune(tag)))
	}
	return decodeStatus(respBody), nil
}

// Finish completes the handshake. ok is the caller's verdict on the
// status SendName returned (typically status == "ok" ||
// status == "ok_simultaneous" || strings.HasPrefix(status, "named:")).
// On success it returns the peer's name and the negotiated (intersected)
// flag set.
func (h *ClientSideHandshake) Finish(ok bool) (node.Name, node.DistributionFlags, error) {
	if !ok {
		return node.Name{}, 0, newError(KindStatusNotAllowed, "handshake aborted after status")
	}

	tag, body, err := readFrame(h.rw)
	if err != nil {
		return node.Name{}, 0, err
	}

	var challengeMsg nameMessage
	switch tag {
	case tagNewSendName:
		h.serverSentNew = true
		challengeMsg, err = decodeNewName(body, true)
	case tagOldSendName:
		challengeMsg, err = decodeOldName(body, true)
	default:
		return node.Name{}, 0, newError(KindUnexpectedTag, fmt.Sprintf("expected challenge, got %q", rune(tag)))
	}
	if err != nil {
		return node.Name{}, 0, err
	}

	h.peerName = challengeMsg.Name
	h.peerFlags = challengeMsg.Flags
	h.peerChallenge = challengeMsg.Challenge

	if h.sentOld && !h.serverSentNew && h.PeerSupportsHandshake23 {
		h.peerFlags |= node.FlagHandshake23
		if err := writeFrame(h.rw, tagComplement, encodeComplement(uint32(h.Local.Flags>>32), h.Local.Creation)); err != nil {
			return node.Name{}, 0, err
		}
	}

	localChallenge, err := randomChallenge()
	if err != nil {
		return node.Name{}, 0, wrapIOError("generate challenge", err)
	}
	h.localChallenge = localChallenge

	replyDigest := Digest(h.Cookie, h.peerChallenge)
	if err := writeFrame(h.rw, tagChallenge, encodeChallengeReply(localChallenge, replyDigest)); err != nil {
		return node.Name{}, 0, err
	}

	tag, body, err = readFrame(h.rw)
	if err != nil {
		return node.Name{}, 0, err
	}
	if tag != tagAck {
		return node.Name{}, 0, newError(KindUnexpectedTag, fmt.Sprintf("expected ack, got %q", rune(tag)))
	}
	ackDigest, err := decodeAck(body)
	if err != nil {
		return node.Name{}, 0, err
	}
	if ackDigest != Digest(h.Cookie, localChallenge) {
		return node.Name{}, 0, newError(KindDigestMismatch, "challenge ack digest mismatch")
	}

	version := 5
	if h.Local.Flags.Has(node.FlagHandshake23) && h.peerFlags.Has(node.FlagHandshake23) {
		version = 6
	}
	negotiated := h.Local.Flags.Intersect(h.peerFlags)
	if missing := negotiated.Missing(node.MandatoryFor(version)); missing != 0 {
		return node.Name{}, 0, newError(KindMandatoryFlagMissing, missing.String())
	}

	peerName, err := node.ParseName(h.peerName)
	if err != nil {
		peerName = node.Name{Name: h.peerName}
	}

	if h.Audit != nil {
		h.Audit.RecordHandshake(AuditEntry{
			PeerName:  h.peerName,
			Flags:     negotiated,
			Creation:  h.Local.Creation,
			Timestamp: time.Now(),
		})
	}

	return peerName, negotiated, nil
}

// IsAcceptedStatus reports whether status represents an affirmative
// server reply under the protocol's own rules, for callers that want
// the default policy rather than inspecting the string themselves.
func IsAcceptedStatus(status string) bool {
	return status == "ok" || status == "ok_simultaneous" || strings.HasPrefix(status, "named:")
}
