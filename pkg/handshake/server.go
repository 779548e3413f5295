package handshake

import (
	"fmt"
	"io"
	"time"

	"github.com/ZentaChain/erldist/pkg/node"
)

// ServerSideHandshake drives the Init → RecvName → SendStatus →
// (SendChallenge → RecvChallengeReply → SendChallengeAck) → Connected
// FSM from the accepting side.
type ServerSideHandshake struct {
	rw     io.ReadWriter
	Local  node.LocalNode
	Cookie string
	Audit  AuditRecorder

	// ForceVersion5 makes Finish send its challenge in the legacy 'n'
	// form even when Local.Flags includes HANDSHAKE_23.
	ForceVersion5 bool

	peerName      string
	peerFlags     node.DistributionFlags
	peerSentNew   bool
	localChallenge uint32
}

// NewServerSideHandshake returns a handshake driver for rw.
func NewServerSideHandshake(rw io.ReadWriter, local node.LocalNode, cookie string) *ServerSideHandshake {
	return &ServerSideHandshake{rw: rw, Local: local, Cookie: cookie}
}

// RecvName reads the peer's initial send_name frame ('n' or 'N') and
// returns the name it offered, for the caller to apply its own
// acceptance and simultaneous-connect policy before calling SendStatus.
func (h *ServerSideHandshake) RecvName() (string, error) {
	tag, body, err := readFrame(h.rw)
	if err != nil {
		return "", err
	}
	var msg nameMessage
	switch tag {
	case tagNewSendName:
		h.peerSentNew = true
		msg, err = decodeNewName(body, false)
	case tagOldSendName:
		msg, err = decodeOldName(body, false)
	default:
		return "", newError(KindUnexpectedTag, fmt.Sprintf("expected send_name, got %q", rune(tag)))
	}
	if err != nil {
		return "", err
	}
	h.peerName = msg.Name
	h.peerFlags = msg.Flags
	return h.peerName, nil
}

// ResolveSimultaneousStatus returns "ok_simultaneous" when localWins is
// true and "alive" otherwise, per the protocol's tie-breaking rule for a
// peer this node is already half-connected to under the same name.
func ResolveSimultaneousStatus(localWins bool) string {
	if localWins {
		return "ok_simultaneous"
	}
	return "alive"
}

// SendStatus writes the status frame. A non-affirmative status (per
// IsAcceptedStatus) is written and then reported back as an error: the
// frame is still on the wire, but the caller should close the
// connection rather than calling Finish.
func (h *ServerSideHandshake) SendStatus(status string) error {
	if err := writeFrame(h.rw, tagStatus, encodeStatus(status)); err != nil {
		return err
	}
	if !IsAcceptedStatus(status) {
		switch status {
		case "not_allowed":
			return newError(KindStatusNotAllowed, status)
		case "alive":
			return newError(KindStatusAlive, status)
		default:
			return newError(KindStatusNok, status)
		}
	}
	return nil
}

// Finish sends the challenge, verifies the peer's reply, sends the
// challenge ack, and returns the peer's name and the negotiated flags.
func (h *ServerSideHandshake) Finish() (node.Name, node.DistributionFlags, error) {
	localChallenge, err := randomChallenge()
	if err != nil {
		return node.Name{}, 0, wrapIOError("generate challenge", err)
	}
	h.localChallenge = localChallenge

	challengeMsg := nameMessage{
		Flags:     h.Local.Flags,
		Creation:  h.Local.Creation,
		Name:      h.Local.Name.String(),
		Challenge: localChallenge,
	}
	useNew := h.Local.Flags.Has(node.FlagHandshake23) && !h.ForceVersion5
	var err2 error
	if useNew {
		err2 = writeFrame(h.rw, tagNewSendName, encodeNewName(challengeMsg))
	} else {
		err2 = writeFrame(h.rw, tagOldSendName, encodeOldName(challengeMsg))
	}
	if err2 != nil {
		return node.Name{}, 0, err2
	}

	tag, body, err := readFrame(h.rw)
	if err != nil {
		return node.Name{}, 0, err
	}
	if tag == tagComplement {
		flagsHigh, _, err := decodeComplement(body)
		if err != nil {
			return node.Name{}, 0, err
		}
		h.peerFlags |= node.DistributionFlags(flagsHigh) << 32
		tag, body, err = readFrame(h.rw)
		if err != nil {
			return node.Name{}, 0, err
		}
	}
	if tag != tagChallenge {
		return node.Name{}, 0, newError(KindUnexpectedTag, fmt.Sprintf("expected challenge reply, got %q", rune(tag)))
	}
	peerChallenge, digest, err := decodeChallengeReply(body)
	if err != nil {
		return node.Name{}, 0, err
	}
	if digest != Digest(h.Cookie, localChallenge) {
		return node.Name{}, 0, newError(KindDigestMismatch, "challenge reply digest mismatch")
	}

	if err := writeFrame(h.rw, tagAck, encodeAck(Digest(h.Cookie, peerChallenge))); err != nil {
		return node.Name{}, 0, err
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
