package handshake

import (
	"encoding/binary"
	"io"
)

// writeFrame writes a 2-byte big-endian length (covering tag + body)
// followed by tag and body.
func writeFrame(w io.Writer, tag byte, body []byte) error {
	var lenBuf [2]byte
	binary.BigEndian.PutUint16(lenBuf[:], uint16(len(body)+1))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return wrapIOError("write frame length", err)
	}
	if _, err := w.Write([]byte{tag}); err != nil {
		return wrapIOError("write frame tag", err)
	}
	if len(body) > 0 {
		if _, err := w.Write(body); err != nil {
			return wrapIOError("write frame body", err)
		}
	}
	return nil
}

// readFrame reads one length-prefixed handshake frame and splits off its
// tag byte.
func readFrame(r io.Reader) (tag byte, body []byte, err error) {
	var lenBuf [2]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return 0, nil, wrapIOError("read frame length", err)
	}
	n := binary.BigEndian.Uint16(lenBuf[:])
	if n == 0 {
		return 0, nil, newError(KindIO, "empty handshake frame")
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return 0, nil, wrapIOError("read frame body", err)
	}
	return buf[0], buf[1:], nil
}
