package graph

import "github.com/minseolab/loom/internal/loom"

// CanConnect is the pre-flight check the canvas runs before proposing an
// edge. It only rules out connections that can never become legal; AddEdge
// and the validator do the full checking.
func CanConnect(source, target *loom.Node) bool {
	if source == nil || target == nil {
		return false
	}
	// Triggers are sources only.
	if target.Type == loom.NodeKindInput {
		return false
	}
	return true
}
