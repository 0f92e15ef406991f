package mrkit

import (
	"fmt"
	"os"
	"time"
)

// debugStats holds per-frame timing metrics.
// Only populated when World.debug is true.
type debugStats struct {
	overlapTime  time.Duration
	solveTime    time.Duration
	pointerCount int
	followCount  int
}

// debugFrameInterval throttles the per-frame stats line.
const debugFrameInterval = 60

// debugLog prints timing stats to stderr every debugFrameInterval frames.
func (w *World) debugLog(stats debugStats) {
	if !w.debug || w.frame%debugFrameInterval != 0 {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[mrkit] frame %d | overlap: %v | solve: %v | pointers: %d | follows: %d\n",
		w.frame, stats.overlapTime, stats.solveTime, stats.pointerCount, stats.followCount)
}

// debugEvent prints one interaction transition to stderr.
func (w *World) debugEvent(ev EventType, p *Pointer, target string) {
	pointer := "-"
	if p != nil {
		pointer = p.Name()
	}
	_, _ = fmt.Fprintf(os.Stderr, "[mrkit] %s: pointer %q -> %q\n", ev, pointer, target)
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("mrkit debug: %s on disposed node %q (ID %d)", op, n.Name, n.ID))
	}
}

// debugCheckTreeDepth warns on stderr if tree depth exceeds the threshold.
// Pointer walks are linear in depth.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[mrkit] warning: tree depth %d exceeds %d (node %q)\n",
			depth, debugMaxTreeDepth, n.Name)
	}
}
