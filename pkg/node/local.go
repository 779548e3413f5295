package node

// LocalNode is this process's own distribution identity: its name,
// incarnation token, and the capability flags it offers during a
// handshake.
type LocalNode struct {
	Name     Name
	Creation Creation
	Flags    DistributionFlags
}

// NewLocalNode builds a LocalNode with DefaultFlags.
func NewLocalNode(name Name, creation Creation) LocalNode {
	return LocalNode{Name: name, Creation: creation, Flags: DefaultFlags}
}
