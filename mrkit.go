package mrkit

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Axis conventions used throughout the package. Forward is +X and Up is +Z.
// Positive yaw turns Forward toward +Y.
var (
	Forward = mgl64.Vec3{1, 0, 0}
	Side    = mgl64.Vec3{0, 1, 0}
	Up      = mgl64.Vec3{0, 0, 1}
)

// Color represents an RGBA color with components in [0, 1]. Only used by the
// debug viewer.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default node color.
var ColorWhite = Color{1, 1, 1, 1}

// Pose is a world-space position and orientation.
type Pose struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// IdentityPose returns a pose at the origin with no rotation.
func IdentityPose() Pose {
	return Pose{Rotation: mgl64.QuatIdent()}
}

// Forward returns the pose's forward axis in world space.
func (p Pose) Forward() mgl64.Vec3 {
	return p.Rotation.Rotate(Forward)
}

// EventType identifies a kind of interaction event.
type EventType uint8

const (
	EventTouchStarted EventType = iota // a pointer started touching a target
	EventTouchEnded                    // a pointer stopped touching a target
	EventPinchStarted                  // a touching pointer started pinching
	EventPinchEnded                    // a touching pointer stopped pinching
	EventHoverStarted                  // a pointer started hovering an interactable
	EventHoverEnded                    // a pointer stopped hovering an interactable
	EventButtonPressed                 // a pressable button crossed its pressed depth
	EventButtonReleased                // a pressable button recovered past its released depth
)

var eventTypeNames = [...]string{
	EventTouchStarted:   "touch started",
	EventTouchEnded:     "touch ended",
	EventPinchStarted:   "pinch started",
	EventPinchEnded:     "pinch ended",
	EventHoverStarted:   "hover started",
	EventHoverEnded:     "hover ended",
	EventButtonPressed:  "button pressed",
	EventButtonReleased: "button released",
}

func (e EventType) String() string {
	if int(e) < len(eventTypeNames) {
		return eventTypeNames[e]
	}
	return "unknown"
}

// --- Math helpers ---

// lookRotation returns the rotation whose Forward axis points along dir and
// whose Up axis is as close to up as possible. Falls back to an alternate up
// axis when dir is parallel to up.
func lookRotation(dir, up mgl64.Vec3) mgl64.Quat {
	if dir.Len() < 1e-9 {
		return mgl64.QuatIdent()
	}
	f := dir.Normalize()
	side := up.Cross(f)
	if side.Len() < 1e-9 {
		side = Forward.Cross(f)
		if side.Len() < 1e-9 {
			side = Side.Cross(f)
		}
	}
	side = side.Normalize()
	u := f.Cross(side)
	m := mgl64.Mat3FromCols(f, side, u)
	return mgl64.Mat4ToQuat(m.Mat4()).Normalize()
}

// angleBetween returns the angle in radians between a and b.
// Returns 0 when either vector is degenerate.
func angleBetween(a, b mgl64.Vec3) float64 {
	la, lb := a.Len(), b.Len()
	if la < 1e-9 || lb < 1e-9 {
		return 0
	}
	c := a.Dot(b) / (la * lb)
	return math.Acos(mgl64.Clamp(c, -1, 1))
}

// yawOnly strips pitch and roll from q, keeping the heading of its Forward axis.
func yawOnly(q mgl64.Quat) mgl64.Quat {
	f := q.Rotate(Forward)
	if math.Abs(f[0]) < 1e-9 && math.Abs(f[1]) < 1e-9 {
		return mgl64.QuatIdent()
	}
	return mgl64.QuatRotate(math.Atan2(f[1], f[0]), Up)
}

// lerpAlpha converts a smoothing time constant into a blend factor for a
// frame of length dt. A non-positive lerpTime snaps.
func lerpAlpha(dt, lerpTime float64) float64 {
	if lerpTime <= 0 {
		return 1
	}
	if dt <= 0 {
		return 0
	}
	return 1 - math.Exp(-dt/lerpTime)
}
