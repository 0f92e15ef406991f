package mrkit

import "github.com/go-gl/mathgl/mgl64"

// Target is implemented by anything that reacts to pointers. Attach a Target
// to a Node via Node.Target; pointers find it by walking up from whatever
// collision node they overlap.
//
// All methods are called synchronously from the pointer's update.
type Target interface {
	TouchStarted(p *Pointer)
	TouchEnded(p *Pointer)
	PinchStarted(p *Pointer)
	PinchEnded(p *Pointer)

	// ClosestPointOnSurface returns the point on the target's surface nearest
	// to point, in world space. ok is false if no surface is available.
	ClosestPointOnSurface(point mgl64.Vec3) (surface mgl64.Vec3, ok bool)
}

// TargetFuncs adapts plain functions to the Target interface. Nil fields are
// skipped; a nil Surface reports no surface.
type TargetFuncs struct {
	OnTouchStarted func(*Pointer)
	OnTouchEnded   func(*Pointer)
	OnPinchStarted func(*Pointer)
	OnPinchEnded   func(*Pointer)
	Surface        func(mgl64.Vec3) (mgl64.Vec3, bool)
}

func (t *TargetFuncs) TouchStarted(p *Pointer) {
	if t.OnTouchStarted != nil {
		t.OnTouchStarted(p)
	}
}

func (t *TargetFuncs) TouchEnded(p *Pointer) {
	if t.OnTouchEnded != nil {
		t.OnTouchEnded(p)
	}
}

func (t *TargetFuncs) PinchStarted(p *Pointer) {
	if t.OnPinchStarted != nil {
		t.OnPinchStarted(p)
	}
}

func (t *TargetFuncs) PinchEnded(p *Pointer) {
	if t.OnPinchEnded != nil {
		t.OnPinchEnded(p)
	}
}

func (t *TargetFuncs) ClosestPointOnSurface(point mgl64.Vec3) (mgl64.Vec3, bool) {
	if t.Surface == nil {
		return mgl64.Vec3{}, false
	}
	return t.Surface(point)
}

// findTarget walks from n up through its parents and returns the first node
// carrying a Target, or nil.
func findTarget(n *Node) *Node {
	for c := n; c != nil; c = c.Parent {
		if c.disposed {
			return nil
		}
		if c.Target != nil {
			return c
		}
	}
	return nil
}
