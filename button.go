package mrkit

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Pressable button defaults.
const (
	defaultButtonExtent    = 10.0
	defaultPressedFraction = 0.5
	defaultReleaseFraction = 0.2
	defaultRecoverySpeed   = 50.0
)

// PressableButton is an Interactable pushed by touching pointers. Its front
// face rests at the node origin and is pushed along the node's local +X axis
// up to 2*Extents.X. Crossing PressedFraction of that travel fires Pressed;
// recovering below ReleasedFraction fires Released.
type PressableButton struct {
	*Interactable

	// Extents are the half sizes of the button volume in local units.
	Extents          mgl64.Vec3
	PressedFraction  float64
	ReleasedFraction float64
	// RecoverySpeed is how fast the face returns, in local units per second.
	RecoverySpeed float64

	visuals       *Node
	visualsOffset mgl64.Vec3

	depth   float64
	pressed bool

	world *World
}

// NewPressableButton creates a button on node and installs it as node's Target.
func NewPressableButton(node *Node) *PressableButton {
	b := &PressableButton{
		Interactable:     &Interactable{node: node},
		Extents:          mgl64.Vec3{defaultButtonExtent, defaultButtonExtent, defaultButtonExtent},
		PressedFraction:  defaultPressedFraction,
		ReleasedFraction: defaultReleaseFraction,
		RecoverySpeed:    defaultRecoverySpeed,
	}
	node.Target = b
	if node.Shape == nil {
		node.Shape = ShapeBox{
			Center:  mgl64.Vec3{b.Extents[0], 0, 0},
			Extents: b.Extents,
		}
	}
	return b
}

// SetVisuals sets the node moved with the pushed face. Its current offset
// from the button, in button space, is kept.
func (b *PressableButton) SetVisuals(visuals *Node) {
	b.visuals = visuals
	if visuals != nil {
		b.visualsOffset = b.node.WorldToLocal(visuals.WorldPosition())
	}
}

// Visuals returns the node moved with the pushed face, or nil.
func (b *PressableButton) Visuals() *Node {
	return b.visuals
}

// Travel returns the maximum push distance.
func (b *PressableButton) Travel() float64 {
	return 2 * b.Extents[0]
}

// Depth returns how far the face is currently pushed in.
func (b *PressableButton) Depth() float64 {
	return b.depth
}

// IsPressed reports whether the button is held down.
func (b *PressableButton) IsPressed() bool {
	return b.pressed
}

// OnPressed registers a callback fired when the button becomes pressed.
func (b *PressableButton) OnPressed(fn func(ButtonContext)) CallbackHandle {
	return b.handlers.addButton(EventButtonPressed, fn)
}

// OnReleased registers a callback fired when the button is released.
func (b *PressableButton) OnReleased(fn func(ButtonContext)) CallbackHandle {
	return b.handlers.addButton(EventButtonReleased, fn)
}

// Update advances the push depth from the active pointers. Called from
// World.UpdateDelta for buttons added to a world.
func (b *PressableButton) Update(dt float64) {
	if b.node.IsDisposed() {
		return
	}
	travel := b.Travel()
	target := 0.0
	var deepest *Pointer
	for _, p := range b.ActivePointers() {
		local := b.node.WorldToLocal(p.Position())
		if math.Abs(local[1]) > b.Extents[1] || math.Abs(local[2]) > b.Extents[2] {
			continue
		}
		d := mgl64.Clamp(local[0], 0, travel)
		if deepest == nil || d > target {
			target, deepest = d, p
		}
	}

	if target >= b.depth {
		b.depth = target
	} else {
		b.depth = math.Max(target, b.depth-b.RecoverySpeed*dt)
	}

	switch {
	case !b.pressed && b.depth >= b.PressedFraction*travel && travel > 0:
		b.pressed = true
		b.fire(EventButtonPressed, deepest)
	case b.pressed && b.depth <= b.ReleasedFraction*travel:
		b.pressed = false
		b.fire(EventButtonReleased, deepest)
	}

	if b.visuals != nil && !b.visuals.IsDisposed() {
		offset := b.visualsOffset.Add(mgl64.Vec3{b.depth, 0, 0})
		pose := b.visuals.WorldPose()
		pose.Position = b.node.LocalToWorld(offset)
		b.visuals.SetWorldPose(pose)
	}
}

func (b *PressableButton) fire(ev EventType, p *Pointer) {
	ctx := ButtonContext{Type: ev, Button: b, Pointer: p, Depth: b.depth}
	if ev == EventButtonPressed {
		dispatch(b.handlers.buttonPressed, ctx)
	} else {
		dispatch(b.handlers.buttonReleased, ctx)
	}
	if b.world != nil {
		b.world.fireButton(ctx)
	}
}
