package mrkit

import "github.com/go-gl/mathgl/mgl64"

// computeLocalTransform computes the local matrix from the node's transform
// properties.
//
// Composition order:
//
//	Scale -> Rotate -> Translate(Position)
func computeLocalTransform(n *Node) mgl64.Mat4 {
	t := mgl64.Translate3D(n.Position[0], n.Position[1], n.Position[2])
	s := mgl64.Scale3D(n.Scale[0], n.Scale[1], n.Scale[2])
	return t.Mul4(n.Rotation.Mat4()).Mul4(s)
}

// updateWorldTransform recomputes world transforms for a subtree.
// parentRecomputed forces recomputation of this node even if it's not dirty.
func updateWorldTransform(n *Node, parentMatrix mgl64.Mat4, parentRotation mgl64.Quat, parentRecomputed bool) {
	recompute := n.transformDirty || parentRecomputed
	if recompute {
		n.worldMatrix = parentMatrix.Mul4(computeLocalTransform(n))
		n.worldRotation = parentRotation.Mul(n.Rotation).Normalize()
		n.transformDirty = false
	}

	for _, child := range n.children {
		updateWorldTransform(child, n.worldMatrix, n.worldRotation, recompute)
	}
}

// ensureWorld brings this node's cached world transform up to date.
// Setters mark whole subtrees dirty, so a clean node always has clean ancestors.
func (n *Node) ensureWorld() {
	if !n.transformDirty {
		return
	}
	local := computeLocalTransform(n)
	if n.Parent == nil {
		n.worldMatrix = local
		n.worldRotation = n.Rotation.Normalize()
	} else {
		n.Parent.ensureWorld()
		n.worldMatrix = n.Parent.worldMatrix.Mul4(local)
		n.worldRotation = n.Parent.worldRotation.Mul(n.Rotation).Normalize()
	}
	n.transformDirty = false
}

// --- Transform property setters ---

// SetPosition sets the node's local position and marks it dirty.
func (n *Node) SetPosition(p mgl64.Vec3) {
	n.Position = p
	markSubtreeDirty(n)
}

// SetRotation sets the node's local rotation and marks it dirty.
func (n *Node) SetRotation(q mgl64.Quat) {
	n.Rotation = q
	markSubtreeDirty(n)
}

// SetScale sets the node's local scale and marks it dirty.
func (n *Node) SetScale(s mgl64.Vec3) {
	n.Scale = s
	markSubtreeDirty(n)
}

// MarkDirty marks the node's transform as dirty, forcing recomputation
// on the next query. Useful after bulk-setting fields directly.
func (n *Node) MarkDirty() {
	markSubtreeDirty(n)
}

// --- World-space queries ---

// WorldMatrix returns the node's local-to-world matrix.
func (n *Node) WorldMatrix() mgl64.Mat4 {
	n.ensureWorld()
	return n.worldMatrix
}

// WorldPosition returns the node's origin in world space.
func (n *Node) WorldPosition() mgl64.Vec3 {
	n.ensureWorld()
	return n.worldMatrix.Col(3).Vec3()
}

// WorldRotation returns the node's orientation in world space.
func (n *Node) WorldRotation() mgl64.Quat {
	n.ensureWorld()
	return n.worldRotation
}

// WorldPose returns the node's world position and rotation.
func (n *Node) WorldPose() Pose {
	return Pose{Position: n.WorldPosition(), Rotation: n.WorldRotation()}
}

// SetWorldPose moves the node so that its world position and rotation match
// the given pose, expressed through its parent's current world transform.
func (n *Node) SetWorldPose(pose Pose) {
	if n.Parent == nil {
		n.Position = pose.Position
		n.Rotation = pose.Rotation
	} else {
		n.Position = n.Parent.WorldToLocal(pose.Position)
		n.Rotation = n.Parent.WorldRotation().Inverse().Mul(pose.Rotation).Normalize()
	}
	markSubtreeDirty(n)
}

// WorldToLocal converts a world-space point to this node's local coordinate space.
func (n *Node) WorldToLocal(p mgl64.Vec3) mgl64.Vec3 {
	inv := n.WorldMatrix().Inv()
	return inv.Mul4x1(p.Vec4(1)).Vec3()
}

// LocalToWorld converts a local-space point to world space.
func (n *Node) LocalToWorld(p mgl64.Vec3) mgl64.Vec3 {
	return n.WorldMatrix().Mul4x1(p.Vec4(1)).Vec3()
}
