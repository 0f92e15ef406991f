package mrkit

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Follow keeps its owner node in front of a camera using three constraints.
//
// Angular clamp keeps the camera-to-owner direction within
// MaxViewHorizontalDegrees / MaxViewVerticalDegrees of the camera's forward
// axis, measured in the camera's local frame and clamped per axis.
//
// Distance clamp keeps the owner between MinimumDistance and MaximumDistance.
// Inside those bounds, and when the angular clamp did not fire, the distance
// relaxes toward DefaultDistance with time constant
// MoveToDefaultDistanceLerpTime. Together the two clamps form a frustum in
// front of the camera.
//
// Orientation either always faces the camera (OrientFaceCamera) or stays
// world-locked (OrientWorldLock) until one of the clamps fires or the owner's
// forward axis drifts more than OrientToCameraDeadzoneDegrees away from the
// camera.
//
// "Facing the camera" means the owner's Forward axis points at the camera.
type Follow struct {
	FollowConfig

	owner  *Node
	camera CameraSource

	goalPosition    mgl64.Vec3
	goalRotation    mgl64.Quat
	workingPosition mgl64.Vec3
	workingRotation mgl64.Quat
	prevReference   Pose

	recenterNext      bool
	skipInterpolation bool
	haveValidCamera   bool

	angularClamped  bool
	distanceClamped bool
}

// NewFollow creates a follow for owner driven by camera, using
// DefaultFollowConfig. The first update recenters the owner.
func NewFollow(owner *Node, camera CameraSource) *Follow {
	pose := owner.WorldPose()
	return &Follow{
		FollowConfig:    DefaultFollowConfig(),
		owner:           owner,
		camera:          camera,
		goalPosition:    pose.Position,
		goalRotation:    pose.Rotation,
		workingPosition: pose.Position,
		workingRotation: pose.Rotation,
		recenterNext:    true,
	}
}

// Owner returns the followed node.
func (f *Follow) Owner() *Node {
	return f.owner
}

// SetCamera replaces the camera source.
func (f *Follow) SetCamera(camera CameraSource) {
	f.camera = camera
}

// Recenter makes the next update place the owner straight ahead of the
// camera at DefaultDistance, without interpolation.
func (f *Follow) Recenter() {
	f.recenterNext = true
}

// GoalPosition returns the position the constraints asked for last update.
func (f *Follow) GoalPosition() mgl64.Vec3 { return f.goalPosition }

// GoalRotation returns the rotation the constraints asked for last update.
func (f *Follow) GoalRotation() mgl64.Quat { return f.goalRotation }

// WorkingPosition returns the position written to the owner last update.
func (f *Follow) WorkingPosition() mgl64.Vec3 { return f.workingPosition }

// WorkingRotation returns the rotation written to the owner last update.
func (f *Follow) WorkingRotation() mgl64.Quat { return f.workingRotation }

// PreviousReference returns the camera pose used by the last update.
func (f *Follow) PreviousReference() Pose { return f.prevReference }

// HaveValidCamera reports whether the last update found a camera pose.
func (f *Follow) HaveValidCamera() bool { return f.haveValidCamera }

// Clamped reports which clamps fired during the last update.
func (f *Follow) Clamped() (angular, distance bool) {
	return f.angularClamped, f.distanceClamped
}

// Update runs the constraints and moves the owner. dt is in seconds.
// Without a camera pose the owner keeps its previous pose.
func (f *Follow) Update(dt float64) {
	if f.owner.IsDisposed() {
		return
	}
	var ref Pose
	f.haveValidCamera = false
	if f.camera != nil {
		ref, f.haveValidCamera = f.camera.CameraPose()
	}
	if !f.haveValidCamera {
		return
	}
	if f.IgnoreCameraPitchAndRoll {
		ref.Rotation = yawOnly(ref.Rotation)
	}

	current := f.owner.WorldPose()
	f.workingPosition = current.Position
	f.workingRotation = current.Rotation
	f.angularClamped = false
	f.distanceClamped = false

	if f.recenterNext {
		f.recenterNext = false
		f.skipInterpolation = true
		dir := f.applyPitch(ref.Forward(), 1)
		f.goalPosition = f.capVertical(ref.Position, ref.Position.Add(dir.Mul(f.DefaultDistance)))
		f.goalRotation = f.faceRotation(ref.Position, f.goalPosition)
	} else {
		toOwner := current.Position.Sub(ref.Position)
		dist := toOwner.Len()
		dir := ref.Forward()
		if dist > 1e-9 {
			dir = f.applyPitch(toOwner.Mul(1/dist), -1)
		}
		if !f.IgnoreAngleClamp {
			dir, f.angularClamped = f.angularClamp(ref.Rotation, dir)
		}
		if !f.IgnoreDistanceClamp {
			dist, f.distanceClamped = f.distanceClamp(dist, dt)
		}
		dir = f.applyPitch(dir, 1)
		f.goalPosition = f.capVertical(ref.Position, ref.Position.Add(dir.Mul(dist)))
		f.goalRotation = f.orient(ref.Position, current)
	}

	f.prevReference = ref
	f.updateTransformToGoal(dt)
}

// angularClamp limits the yaw and pitch of dir in the camera frame.
func (f *Follow) angularClamp(ref mgl64.Quat, dir mgl64.Vec3) (mgl64.Vec3, bool) {
	local := ref.Inverse().Rotate(dir)
	yaw := math.Atan2(local[1], local[0])
	pitch := math.Atan2(local[2], math.Hypot(local[0], local[1]))

	maxYaw := mgl64.DegToRad(f.MaxViewHorizontalDegrees)
	maxPitch := mgl64.DegToRad(f.MaxViewVerticalDegrees)
	clampedYaw := mgl64.Clamp(yaw, -maxYaw, maxYaw)
	clampedPitch := mgl64.Clamp(pitch, -maxPitch, maxPitch)
	if clampedYaw == yaw && clampedPitch == pitch {
		return dir, false
	}

	sy, cy := math.Sincos(clampedYaw)
	sp, cp := math.Sincos(clampedPitch)
	local = mgl64.Vec3{cp * cy, cp * sy, sp}
	return ref.Rotate(local), true
}

// distanceClamp bounds dist, or relaxes it toward DefaultDistance when it is
// already in bounds and the angular clamp left the direction alone.
func (f *Follow) distanceClamp(dist, dt float64) (float64, bool) {
	switch {
	case dist < f.MinimumDistance:
		return f.MinimumDistance, true
	case dist > f.MaximumDistance:
		return f.MaximumDistance, true
	}
	if !f.angularClamped && f.MoveToDefaultDistanceLerpTime > 0 && dt > 0 {
		dist += (f.DefaultDistance - dist) * (1 - math.Exp(-dt/f.MoveToDefaultDistanceLerpTime))
	}
	return dist, false
}

// orient picks the goal rotation for the configured behavior.
func (f *Follow) orient(refPos mgl64.Vec3, current Pose) mgl64.Quat {
	face := f.faceRotation(refPos, f.goalPosition)
	if f.OrientationType == OrientFaceCamera || f.angularClamped || f.distanceClamped {
		return face
	}
	toCamera := refPos.Sub(current.Position)
	if angleBetween(current.Forward(), toCamera) > mgl64.DegToRad(f.OrientToCameraDeadzoneDegrees) {
		return face
	}
	return f.goalRotation
}

// faceRotation returns the rotation pointing Forward from pos at the camera.
func (f *Follow) faceRotation(refPos, pos mgl64.Vec3) mgl64.Quat {
	dir := refPos.Sub(pos)
	if f.IgnoreCameraPitchAndRoll {
		dir[2] = 0
	}
	if dir.Len() < 1e-9 {
		return f.goalRotation
	}
	return lookRotation(dir, Up)
}

// applyPitch tilts dir by sign*PitchOffset degrees toward Up.
func (f *Follow) applyPitch(dir mgl64.Vec3, sign float64) mgl64.Vec3 {
	if f.PitchOffset == 0 {
		return dir
	}
	axis := dir.Cross(Up)
	if axis.Len() < 1e-9 {
		return dir
	}
	q := mgl64.QuatRotate(sign*mgl64.DegToRad(f.PitchOffset), axis.Normalize())
	return q.Rotate(dir)
}

// capVertical limits the height difference between pos and the camera.
func (f *Follow) capVertical(refPos, pos mgl64.Vec3) mgl64.Vec3 {
	if f.VerticalMaxDistance <= 0 {
		return pos
	}
	pos[2] = mgl64.Clamp(pos[2], refPos[2]-f.VerticalMaxDistance, refPos[2]+f.VerticalMaxDistance)
	return pos
}

// updateTransformToGoal blends the working pose toward the goal and writes it
// to the owner.
func (f *Follow) updateTransformToGoal(dt float64) {
	if f.skipInterpolation {
		f.skipInterpolation = false
		f.workingPosition = f.goalPosition
		f.workingRotation = f.goalRotation
	} else {
		a := lerpAlpha(dt, f.MoveLerpTime)
		f.workingPosition = f.workingPosition.Add(f.goalPosition.Sub(f.workingPosition).Mul(a))
		f.workingRotation = slerpShortest(f.workingRotation, f.goalRotation, lerpAlpha(dt, f.RotateLerpTime))
	}
	f.owner.SetWorldPose(Pose{Position: f.workingPosition, Rotation: f.workingRotation})
}

// slerpShortest interpolates along the shorter arc. t >= 1 returns to exactly.
func slerpShortest(from, to mgl64.Quat, t float64) mgl64.Quat {
	if t >= 1 {
		return to
	}
	if t <= 0 {
		return from
	}
	if from.Dot(to) < 0 {
		to = to.Scale(-1)
	}
	return mgl64.QuatSlerp(from, to, t).Normalize()
}
