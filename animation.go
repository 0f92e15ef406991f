package mrkit

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields on a Node simultaneously.
// Create one via the convenience constructors (TweenPosition, TweenScale,
// TweenRotation) and call Update(dt) each frame. The group auto-applies
// values and marks the node dirty. If the target node is disposed, the group
// stops immediately.
//
// There is no global animation manager; users call Update themselves.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	target *Node
	// rotation tweens animate an angle that is turned into a quaternion
	// about axis on every update.
	angle float64
	from  mgl64.Quat
	axis  mgl64.Vec3
	Done  bool
}

// Update advances all tweens by dt seconds, writes values to the target
// fields, and marks the node dirty. If the target node has been disposed,
// Done is set to true and no writes occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone

	if g.target != nil {
		if g.fields[0] == &g.angle {
			g.target.Rotation = g.from.Mul(mgl64.QuatRotate(g.angle, g.axis)).Normalize()
		}
		g.target.MarkDirty()
	}
}

// TweenPosition creates a TweenGroup that animates node.Position to the
// given local position over the specified duration using the easing function.
func TweenPosition(node *Node, to mgl64.Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 3, target: node}
	for i := 0; i < 3; i++ {
		g.tweens[i] = gween.New(float32(node.Position[i]), float32(to[i]), duration, fn)
		g.fields[i] = &node.Position[i]
	}
	return g
}

// TweenScale creates a TweenGroup that animates node.Scale to the given
// values over the specified duration using the easing function.
func TweenScale(node *Node, to mgl64.Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 3, target: node}
	for i := 0; i < 3; i++ {
		g.tweens[i] = gween.New(float32(node.Scale[i]), float32(to[i]), duration, fn)
		g.fields[i] = &node.Scale[i]
	}
	return g
}

// TweenRotation creates a TweenGroup that turns node by angle radians about
// the local axis over the specified duration using the easing function.
func TweenRotation(node *Node, axis mgl64.Vec3, angle float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: node, from: node.Rotation, axis: axis.Normalize()}
	g.tweens[0] = gween.New(0, float32(angle), duration, fn)
	g.fields[0] = &g.angle
	return g
}
