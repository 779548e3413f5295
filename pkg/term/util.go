package term

import "bytes"

// newByteReader adapts a []byte to io.Reader without importing bytes at
// call sites throughout the package.
func newByteReader(b []byte) *bytes.Reader {
	return bytes.NewReader(b)
}

// canonicalKey produces a comparable representation of a map key for
// duplicate-key detection: distinct terms of the canonical forms this
// codec produces always encode to distinct byte strings.
func canonicalKey(k Term) (string, error) {
	var buf bytes.Buffer
	if err := NewEncoder().EncodeBody(&buf, k); err != nil {
		return "", err
	}
	return buf.String(), nil
}
