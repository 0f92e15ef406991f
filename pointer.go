package mrkit

import "github.com/go-gl/mathgl/mgl64"

// defaultTouchRadius is the detection sphere radius of a new pointer.
const defaultTouchRadius = 0.75

// Pointer is a touch source (fingertip, controller tip, gaze cursor) with a
// spherical detection volume centered on its node. Pointers become live when
// added to a World and are force-released when removed from it.
type Pointer struct {
	node    *Node
	radius  float64
	pinched bool

	// touched holds target nodes in the order they were first touched.
	touched []*Node
	// overlaps holds the collision nodes overlapped during the last update.
	// overlapTargets[i] is the target overlaps[i] resolved to when the
	// overlap began; nil if none.
	overlaps       []*Node
	overlapTargets []*Node

	world *World
}

// NewPointer creates a pointer with its own node. Attach the node under a
// hand or controller node to move the pointer around.
func NewPointer(name string) *Pointer {
	n := NewNode(name)
	n.Collidable = false
	return &Pointer{node: n, radius: defaultTouchRadius}
}

// Node returns the node the detection sphere is centered on.
func (p *Pointer) Node() *Node {
	return p.node
}

// ID returns the pointer's identity (its node ID).
func (p *Pointer) ID() uint32 {
	return p.node.ID
}

// Name returns the pointer node's name.
func (p *Pointer) Name() string {
	return p.node.Name
}

// Position returns the center of the detection sphere in world space.
func (p *Pointer) Position() mgl64.Vec3 {
	return p.node.WorldPosition()
}

// Active reports whether the pointer is registered with a world.
func (p *Pointer) Active() bool {
	return p.world != nil
}

// AllPointers returns a snapshot of every pointer registered in the same
// world as p. Nil if p is not active.
func (p *Pointer) AllPointers() []*Pointer {
	if p.world == nil {
		return nil
	}
	return p.world.Pointers()
}

// TouchRadius returns the detection sphere radius.
func (p *Pointer) TouchRadius() float64 {
	return p.radius
}

// SetTouchRadius changes the detection sphere radius. Existing touches are
// not ended; the next overlap update sees the new radius.
func (p *Pointer) SetTouchRadius(r float64) {
	p.radius = r
}

// Pinched reports whether the pointer is pinching.
func (p *Pointer) Pinched() bool {
	return p.pinched
}

// SetPinched changes the pinch state. On a change, every live touched target
// receives PinchStarted (enabled) or PinchEnded (disabled).
func (p *Pointer) SetPinched(enabled bool) {
	if p.pinched == enabled {
		return
	}
	p.pinched = enabled
	ev := EventPinchEnded
	if enabled {
		ev = EventPinchStarted
	}
	for _, n := range p.liveTouched() {
		p.notify(ev, n)
	}
}

// TouchedTargets returns the live target nodes this pointer is touching.
func (p *Pointer) TouchedTargets() []*Node {
	return p.liveTouched()
}

// IsTouching reports whether n is in the touched set.
func (p *Pointer) IsTouching(n *Node) bool {
	return indexOfNode(p.touched, n) >= 0
}

// StartTouching walks from n up through its parents to the first node with a
// Target. If that node is not already touched it receives TouchStarted (and
// PinchStarted while pinched) and is recorded. Returns true if a target was
// notified.
func (p *Pointer) StartTouching(n *Node) bool {
	t := findTarget(n)
	if t == nil || p.IsTouching(t) {
		return false
	}
	p.touched = append(p.touched, t)
	p.notify(EventTouchStarted, t)
	if p.pinched {
		p.notify(EventPinchStarted, t)
	}
	return true
}

// StopTouching walks from n up through its parents to the first node that is
// in the touched set and releases it: PinchEnded while pinched, then
// TouchEnded. The overlap that ended may report a node below the one that
// started the touch, hence matching by set membership. Returns false if no
// node in the chain is touched.
func (p *Pointer) StopTouching(n *Node) bool {
	for c := n; c != nil; c = c.Parent {
		if p.release(c) {
			return true
		}
	}
	return false
}

// release removes t from the touched set, sending PinchEnded (while pinched)
// and TouchEnded if t is still live. Returns false if t was not touched.
func (p *Pointer) release(t *Node) bool {
	i := indexOfNode(p.touched, t)
	if i < 0 {
		return false
	}
	p.touched = removeNodeAt(p.touched, i)
	if t.disposed || t.Target == nil {
		return true
	}
	if p.pinched {
		p.notify(EventPinchEnded, t)
	}
	p.notify(EventTouchEnded, t)
	return true
}

// endOverlap releases the target an overlap resolved to when it began. The
// overlapped node may since have been detached or disposed, so its parent
// chain cannot be trusted.
func (p *Pointer) endOverlap(n, target *Node) {
	if target == nil {
		p.StopTouching(n)
		return
	}
	p.release(target)
}

// StopAllTouching releases every touched target, synthesizing PinchEnded
// (while pinched) and TouchEnded for each live one, and empties the set.
func (p *Pointer) StopAllTouching() {
	touched := p.touched
	p.touched = nil
	p.overlaps = p.overlaps[:0]
	p.overlapTargets = p.overlapTargets[:0]
	for _, n := range touched {
		if n.disposed || n.Target == nil {
			continue
		}
		if p.pinched {
			p.notify(EventPinchEnded, n)
		}
		p.notify(EventTouchEnded, n)
	}
}

// liveTouched returns a copy of the touched set without expired entries.
// Callbacks may mutate p.touched while the caller iterates the copy.
func (p *Pointer) liveTouched() []*Node {
	out := make([]*Node, 0, len(p.touched))
	for _, n := range p.touched {
		if !n.disposed && n.Target != nil {
			out = append(out, n)
		}
	}
	return out
}

// pruneExpired drops disposed targets from the touched set. Disposed overlap
// nodes stay until the overlap pass ends them.
func (p *Pointer) pruneExpired() {
	p.touched = compactLive(p.touched)
}

// notify delivers ev to the target on n, then to world observers.
func (p *Pointer) notify(ev EventType, n *Node) {
	t := n.Target
	switch ev {
	case EventTouchStarted:
		t.TouchStarted(p)
	case EventTouchEnded:
		t.TouchEnded(p)
	case EventPinchStarted:
		t.PinchStarted(p)
	case EventPinchEnded:
		t.PinchEnded(p)
	}
	if p.world != nil {
		p.world.fireTouch(ev, p, n)
	}
}

// --- Helpers ---

func indexOfNode(s []*Node, n *Node) int {
	for i, c := range s {
		if c == n {
			return i
		}
	}
	return -1
}

// removeNodeAt removes index i preserving order.
func removeNodeAt(s []*Node, i int) []*Node {
	copy(s[i:], s[i+1:])
	s[len(s)-1] = nil
	return s[:len(s)-1]
}

func compactLive(s []*Node) []*Node {
	out := s[:0]
	for _, n := range s {
		if !n.disposed {
			out = append(out, n)
		}
	}
	for i := len(out); i < len(s); i++ {
		s[i] = nil
	}
	return out
}
