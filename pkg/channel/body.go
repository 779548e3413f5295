package channel

import (
	"bytes"
	"fmt"

	"github.com/ZentaChain/erldist/pkg/atomcache"
	"github.com/ZentaChain/erldist/pkg/term"
)

// encodeBody renders one distribution message as a frame body (§4.5):
// either the legacy pass-through form or, when useAtomCache is true, a
// distribution header carrying a cache-update section ahead of the
// control tuple and optional payload.
func encodeBody(sender *atomcache.Sender, useAtomCache bool, msg Message) ([]byte, error) {
	control, err := EncodeControl(msg)
	if err != nil {
		return nil, err
	}
	payload, hasPayload := extractPayload(msg)

	var buf bytes.Buffer
	enc := term.NewEncoder()

	if !useAtomCache {
		buf.WriteByte(passThroughMarker)
		if err := enc.Encode(&buf, control); err != nil {
			return nil, wrapError(ErrIO, "encode control tuple", err)
		}
		if hasPayload {
			if err := enc.Encode(&buf, payload); err != nil {
				return nil, wrapError(ErrIO, "encode payload", err)
			}
		}
		return buf.Bytes(), nil
	}

	buf.WriteByte(term.VersionMagic)
	buf.WriteByte(distHeaderFlag)

	var wrap term.Term = control
	if hasPayload {
		wrap = term.Tuple{control, payload}
	}
	rewritten, refs := sender.Prepare(wrap)
	if err := atomcache.EncodeUpdate(&buf, refs); err != nil {
		return nil, wrapError(ErrAtomCache, "encode cache-update section", err)
	}

	if hasPayload {
		pair := rewritten.(term.Tuple)
		if err := enc.EncodeBody(&buf, pair[0]); err != nil {
			return nil, wrapError(ErrIO, "encode control tuple", err)
		}
		if err := enc.EncodeBody(&buf, pair[1]); err != nil {
			return nil, wrapError(ErrIO, "encode payload", err)
		}
	} else {
		if err := enc.EncodeBody(&buf, rewritten); err != nil {
			return nil, wrapError(ErrIO, "encode control tuple", err)
		}
	}
	return buf.Bytes(), nil
}

// decodeBody is the inverse of encodeBody: it dispatches on the leading
// marker/magic byte and, for the atom-cache form, applies the
// cache-update section to table before resolving references in the
// control tuple and payload.
func decodeBody(table *atomcache.Table, body []byte) (Message, error) {
	r := bytes.NewReader(body)
	marker, err := r.ReadByte()
	if err != nil {
		return nil, wrapError(ErrTruncatedFrame, "read body marker", err)
	}

	dec := term.NewDecoder()

	switch marker {
	case passThroughMarker:
		ctrlTerm, err := dec.Decode(r)
		if err != nil {
			return nil, wrapError(ErrDecode, "decode control tuple", err)
		}
		ctrl, ok := ctrlTerm.(term.Tuple)
		if !ok {
			return nil, newError(ErrDecode, fmt.Sprintf("control term is %T, not a tuple", ctrlTerm))
		}
		msg, hasPayload, err := DecodeControl(ctrl)
		if err != nil {
			return nil, err
		}
		if hasPayload {
			p, err := dec.Decode(r)
			if err != nil {
				return nil, wrapError(ErrDecode, "decode payload", err)
			}
			msg = attachPayload(msg, p)
		}
		return msg, nil

	case term.VersionMagic:
		flag, err := r.ReadByte()
		if err != nil {
			return nil, wrapError(ErrTruncatedFrame, "read distribution header flag", err)
		}
		if flag != distHeaderFlag {
			return nil, newError(ErrDecode, fmt.Sprintf("unexpected distribution header flag 0x%02x", flag))
		}
		if _, err := atomcache.DecodeUpdate(r, table); err != nil {
			return nil, wrapError(ErrAtomCache, "decode cache-update section", err)
		}

		ctrlRaw, err := dec.DecodeBody(r)
		if err != nil {
			return nil, wrapError(ErrDecode, "decode control tuple", err)
		}
		ctrlResolved, err := atomcache.Resolve(ctrlRaw, table)
		if err != nil {
			return nil, wrapError(ErrAtomCache, "resolve control tuple", err)
		}
		ctrl, ok := ctrlResolved.(term.Tuple)
		if !ok {
			return nil, newError(ErrDecode, fmt.Sprintf("control term is %T, not a tuple", ctrlResolved))
		}
		msg, hasPayload, err := DecodeControl(ctrl)
		if err != nil {
			return nil, err
		}
		if hasPayload {
			payloadRaw, err := dec.DecodeBody(r)
			if err != nil {
				return nil, wrapError(ErrDecode, "decode payload", err)
			}
			payloadResolved, err := atomcache.Resolve(payloadRaw, table)
			if err != nil {
				return nil, wrapError(ErrAtomCache, "resolve payload", err)
			}
			msg = attachPayload(msg, payloadResolved)
		}
		return msg, nil

	default:
		return nil, newError(ErrDecode, fmt.Sprintf("unexpected body marker 0x%02x", marker))
	}
}

func extractPayload(msg Message) (term.Term, bool) {
	p, ok := msg.(Payload)
	if !ok {
		return nil, false
	}
	return p.GetPayload(), true
}
