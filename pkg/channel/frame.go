package channel

import (
	"encoding/binary"
	"io"
)

// MaxFrameLength bounds an incoming frame body, guarding against a
// corrupt or hostile length prefix forcing an unbounded allocation.
const MaxFrameLength = 64 * 1024 * 1024

// passThroughMarker is the legacy framing byte (ETF tag 112, NEW_FUN)
// reused by the distribution protocol to mean "no distribution header
// follows, decode the control tuple with an ordinary version magic".
const passThroughMarker = 112

// distHeaderFlag is the single byte ('D') introducing a distribution
// header when DIST_HDR_ATOM_CACHE was negotiated.
const distHeaderFlag = 68

// readFrame reads one length-prefixed frame. A zero-length frame (tick)
// is reported by returning a nil body with isTick=true.
func readFrame(r io.Reader) (body []byte, isTick bool, err error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, false, wrapError(ErrIO, "read frame length", err)
	}
	n := binary.BigEndian.Uint32(lenBuf[:])
	if n == 0 {
		return nil, true, nil
	}
	if n > MaxFrameLength {
		return nil, false, newError(ErrFrameTooLarge, "frame length exceeds maximum")
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, false, wrapError(ErrTruncatedFrame, "read frame body", err)
	}
	return buf, false, nil
}

// writeFrame writes body as one length-prefixed frame. An empty body
// writes a tick.
func writeFrame(w io.Writer, body []byte) error {
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(body)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return wrapError(ErrIO, "write frame length", err)
	}
	if len(body) == 0 {
		return nil
	}
	if _, err := w.Write(body); err != nil {
		return wrapError(ErrIO, "write frame body", err)
	}
	return nil
}

func writeTick(w io.Writer) error {
	return writeFrame(w, nil)
}
