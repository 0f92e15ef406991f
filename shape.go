package mrkit

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Shape is a collision volume in a node's local coordinates.
type Shape interface {
	// ClosestPoint returns the point on or inside the shape nearest to p.
	// Points inside the shape are returned unchanged.
	ClosestPoint(p mgl64.Vec3) mgl64.Vec3
	// SurfacePoint returns the point on the shape's surface nearest to p.
	SurfacePoint(p mgl64.Vec3) mgl64.Vec3
}

// ShapeSphere is a sphere centered at Center.
type ShapeSphere struct {
	Center mgl64.Vec3
	Radius float64
}

// ClosestPoint clamps p into the sphere.
func (s ShapeSphere) ClosestPoint(p mgl64.Vec3) mgl64.Vec3 {
	d := p.Sub(s.Center)
	if d.Len() <= s.Radius {
		return p
	}
	return s.Center.Add(d.Normalize().Mul(s.Radius))
}

// SurfacePoint projects p onto the sphere. A point at the center projects
// along Forward.
func (s ShapeSphere) SurfacePoint(p mgl64.Vec3) mgl64.Vec3 {
	d := p.Sub(s.Center)
	if d.Len() < 1e-9 {
		d = Forward
	}
	return s.Center.Add(d.Normalize().Mul(s.Radius))
}

// ShapeBox is an axis-aligned box centered at Center with half extents Extents.
type ShapeBox struct {
	Center  mgl64.Vec3
	Extents mgl64.Vec3
}

// ClosestPoint clamps p into the box.
func (b ShapeBox) ClosestPoint(p mgl64.Vec3) mgl64.Vec3 {
	var out mgl64.Vec3
	for i := 0; i < 3; i++ {
		out[i] = mgl64.Clamp(p[i], b.Center[i]-b.Extents[i], b.Center[i]+b.Extents[i])
	}
	return out
}

// SurfacePoint returns the nearest point on the box faces. Inside points are
// pushed out through the nearest face.
func (b ShapeBox) SurfacePoint(p mgl64.Vec3) mgl64.Vec3 {
	c := b.ClosestPoint(p)
	if c != p {
		return c
	}
	// Inside: find the face with the smallest penetration.
	axis, best, sign := 0, math.Inf(1), 1.0
	for i := 0; i < 3; i++ {
		local := p[i] - b.Center[i]
		if d := b.Extents[i] - local; d < best {
			axis, best, sign = i, d, 1
		}
		if d := b.Extents[i] + local; d < best {
			axis, best, sign = i, d, -1
		}
	}
	c[axis] = b.Center[axis] + sign*b.Extents[axis]
	return c
}

// shapeDistance returns the world-space distance from p to n's shape.
// Zero when p is inside. Returns +Inf for nodes without a shape.
func shapeDistance(n *Node, p mgl64.Vec3) float64 {
	if n.Shape == nil {
		return math.Inf(1)
	}
	local := n.WorldToLocal(p)
	closest := n.LocalToWorld(n.Shape.ClosestPoint(local))
	return closest.Sub(p).Len()
}
