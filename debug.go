package nodeflow

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
)

// debugStats holds per-frame timing and command metrics.
// Only populated when GraphView.debug is true.
type debugStats struct {
	emitTime     time.Duration
	submitTime   time.Duration
	rebuilt      bool
	commandCount int
	edgeCount    int
	nodeCount    int
}

// SetDebugMode enables gesture transition and frame timing output.
func (v *GraphView) SetDebugMode(enabled bool) {
	v.debug = enabled
}

// SetLogOutput redirects debug output. A nil w restores os.Stderr.
func (v *GraphView) SetLogOutput(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	v.logOut = w
}

// debugf writes one "[nodeflow]" line when debug mode is on.
func (v *GraphView) debugf(format string, args ...any) {
	if !v.debug {
		return
	}
	_, _ = fmt.Fprintf(v.logOut, "[nodeflow] "+format+"\n", args...)
}

// debugLog prints frame timing and command stats.
func (v *GraphView) debugLog(stats debugStats) {
	if !v.debug {
		return
	}
	v.debugf("emit: %v (rebuilt=%v) | submit: %v | total: %v",
		stats.emitTime, stats.rebuilt, stats.submitTime, stats.emitTime+stats.submitTime)
	v.debugf("commands: %d | edges: %d | nodes: %d",
		stats.commandCount, stats.edgeCount, stats.nodeCount)
}

// countCommands counts edge and node commands in a frame.
func countCommands(cmds []RenderCommand) (edges, nodes int) {
	for i := range cmds {
		switch cmds[i].Type {
		case CommandEdge:
			edges++
		case CommandNode:
			nodes++
		}
	}
	return edges, nodes
}

// shortID returns the first eight hex digits of id, or "-" for uuid.Nil.
func shortID(id uuid.UUID) string {
	if id == uuid.Nil {
		return "-"
	}
	return id.String()[:8]
}
