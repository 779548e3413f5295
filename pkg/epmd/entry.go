package epmd

// NodeEntry is an EPMD registration record, returned by GetNode and
// supplied to Register.
type NodeEntry struct {
	Name           string
	Port           int
	NodeType       NodeType
	Protocol       Protocol
	HighestVersion uint16
	LowestVersion  uint16
	// ExtraBytes carries arbitrary registration metadata, commonly empty.
	// It is preserved opaquely across register and lookup.
	ExtraBytes []byte
}
