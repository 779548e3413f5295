package epmd

import (
	"strconv"
	"strings"
)

// parseNamesText parses lines of the form `name foo at port 41001\n` into
// NamedNode values, skipping anything it cannot parse (EPMD's names
// listing is advisory text, not a strict wire format).
func parseNamesText(text string) []NamedNode {
	var out []NamedNode
	for _, line := range strings.Split(text, "\n") {
		fields := strings.Fields(line)
		if len(fields) != 5 || fields[0] != "name" || fields[2] != "at" || fields[3] != "port" {
			continue
		}
		port, err := strconv.Atoi(fields[4])
		if err != nil {
			continue
		}
		out = append(out, NamedNode{Name: fields[1], Port: port})
	}
	return out
}
