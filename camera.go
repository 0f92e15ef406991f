package mrkit

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// CameraSource provides the viewer pose used by Follow. ok is false while no
// valid camera is available.
type CameraSource interface {
	CameraPose() (pose Pose, ok bool)
}

// moveAnim holds active move-to tweens for the camera position.
type moveAnim struct {
	tweens [3]*gween.Tween
	done   [3]bool
}

// Camera is the viewer: a head-mounted display, a spectator view, or a test
// fixture. It is either free (Position/Rotation set directly) or attached to
// a node whose world pose it copies every update.
type Camera struct {
	// Position and Rotation are the world-space pose of a free camera.
	Position mgl64.Vec3
	Rotation mgl64.Quat
	// Enabled gates CameraPose; a disabled camera reports no pose.
	Enabled bool

	attached *Node
	move     *moveAnim
}

// NewCamera creates an enabled free camera at the origin looking along Forward.
func NewCamera() *Camera {
	return &Camera{Rotation: mgl64.QuatIdent(), Enabled: true}
}

// Attach makes the camera copy node's world pose on every update. The camera
// becomes unavailable once the node is disposed.
func (c *Camera) Attach(node *Node) {
	c.attached = node
	c.move = nil
	c.syncAttached()
}

// Detach stops tracking the attached node, keeping the last pose.
func (c *Camera) Detach() {
	c.attached = nil
}

// Attached returns the node the camera tracks, or nil.
func (c *Camera) Attached() *Node {
	return c.attached
}

// MoveTo animates a free camera to pos over duration seconds.
func (c *Camera) MoveTo(pos mgl64.Vec3, duration float32, easeFn ease.TweenFunc) {
	m := &moveAnim{}
	for i := 0; i < 3; i++ {
		m.tweens[i] = gween.New(float32(c.Position[i]), float32(pos[i]), duration, easeFn)
	}
	c.move = m
}

// Moving reports whether a MoveTo animation is in progress.
func (c *Camera) Moving() bool {
	return c.move != nil
}

// LookAt rotates a free camera so that its Forward axis points at p,
// keeping it upright.
func (c *Camera) LookAt(p mgl64.Vec3) {
	c.Rotation = lookRotation(p.Sub(c.Position), Up)
}

// CameraPose implements CameraSource.
func (c *Camera) CameraPose() (Pose, bool) {
	if !c.Enabled {
		return Pose{}, false
	}
	if c.attached != nil && c.attached.IsDisposed() {
		return Pose{}, false
	}
	return Pose{Position: c.Position, Rotation: c.Rotation}, true
}

// update advances attachment and move animation. Called from World.UpdateDelta.
func (c *Camera) update(dt float32) {
	if c.attached != nil {
		c.syncAttached()
		return
	}
	if c.move == nil {
		return
	}
	allDone := true
	for i := 0; i < 3; i++ {
		if c.move.done[i] {
			continue
		}
		val, done := c.move.tweens[i].Update(dt)
		c.Position[i] = float64(val)
		c.move.done[i] = done
		if !done {
			allDone = false
		}
	}
	if allDone {
		c.move = nil
	}
}

func (c *Camera) syncAttached() {
	if c.attached == nil || c.attached.IsDisposed() {
		return
	}
	c.Position = c.attached.WorldPosition()
	c.Rotation = c.attached.WorldRotation()
}
