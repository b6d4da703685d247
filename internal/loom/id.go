package loom

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateID returns a prefixed random identifier, unique for all practical
// purposes within a graph.
func GenerateID(prefix string) string {
	b := make([]byte, 8)
	rand.Read(b)
	return prefix + "-" + hex.EncodeToString(b)
}
