package mrkit

import (
	"encoding/json"
	"fmt"
)

// OrientBehavior selects how a Follow orients its owner.
type OrientBehavior uint8

const (
	// OrientWorldLock keeps the owner's rotation fixed until an angular
	// clamp, a distance clamp, or the dead zone forces it to face the camera.
	OrientWorldLock OrientBehavior = iota
	// OrientFaceCamera billboards toward the camera every update.
	OrientFaceCamera
)

func (o OrientBehavior) String() string {
	switch o {
	case OrientWorldLock:
		return "WorldLock"
	case OrientFaceCamera:
		return "FaceCamera"
	}
	return fmt.Sprintf("OrientBehavior(%d)", uint8(o))
}

// MarshalText implements encoding.TextMarshaler.
func (o OrientBehavior) MarshalText() ([]byte, error) {
	switch o {
	case OrientWorldLock, OrientFaceCamera:
		return []byte(o.String()), nil
	}
	return nil, fmt.Errorf("mrkit: unknown orientation %d", uint8(o))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *OrientBehavior) UnmarshalText(b []byte) error {
	switch string(b) {
	case "WorldLock":
		*o = OrientWorldLock
	case "FaceCamera":
		*o = OrientFaceCamera
	default:
		return fmt.Errorf("mrkit: unknown orientation %q", b)
	}
	return nil
}

// FollowConfig holds the tuning parameters of a Follow. Distances are in
// world units, angles in degrees, times in seconds.
type FollowConfig struct {
	OrientationType OrientBehavior `json:"orientationType"`

	// MoveToDefaultDistanceLerpTime is the time constant with which the
	// owner drifts toward DefaultDistance while inside the distance bounds.
	MoveToDefaultDistanceLerpTime float64 `json:"moveToDefaultDistanceLerpTime"`

	MinimumDistance float64 `json:"minimumDistance"`
	MaximumDistance float64 `json:"maximumDistance"`
	DefaultDistance float64 `json:"defaultDistance"`

	MaxViewHorizontalDegrees float64 `json:"maxViewHorizontalDegrees"`
	MaxViewVerticalDegrees   float64 `json:"maxViewVerticalDegrees"`

	// OrientToCameraDeadzoneDegrees is how far the owner's forward may drift
	// from the owner-to-camera direction before a world-locked owner turns.
	OrientToCameraDeadzoneDegrees float64 `json:"orientToCameraDeadzoneDegrees"`

	IgnoreAngleClamp         bool `json:"ignoreAngleClamp"`
	IgnoreDistanceClamp      bool `json:"ignoreDistanceClamp"`
	IgnoreCameraPitchAndRoll bool `json:"ignoreCameraPitchAndRoll"`

	// PitchOffset tilts the goal about the camera, positive upward.
	PitchOffset float64 `json:"pitchOffset"`
	// VerticalMaxDistance caps the height difference between owner and
	// camera. Zero disables the cap.
	VerticalMaxDistance float64 `json:"verticalMaxDistance"`

	// MoveLerpTime and RotateLerpTime smooth the working pose toward the
	// goal. Zero snaps.
	MoveLerpTime   float64 `json:"moveLerpTime"`
	RotateLerpTime float64 `json:"rotateLerpTime"`
}

// DefaultFollowConfig returns the stock follow parameters.
func DefaultFollowConfig() FollowConfig {
	return FollowConfig{
		OrientationType:               OrientWorldLock,
		MoveToDefaultDistanceLerpTime: 10,
		MinimumDistance:               50,
		MaximumDistance:               100,
		DefaultDistance:               75,
		MaxViewHorizontalDegrees:      30,
		MaxViewVerticalDegrees:        30,
		OrientToCameraDeadzoneDegrees: 60,
		MoveLerpTime:                  0.1,
		RotateLerpTime:                0.1,
	}
}

// Validate reports the first inconsistent parameter.
func (c FollowConfig) Validate() error {
	switch {
	case c.MinimumDistance < 0:
		return fmt.Errorf("minimumDistance %v is negative", c.MinimumDistance)
	case c.MaximumDistance < c.MinimumDistance:
		return fmt.Errorf("maximumDistance %v is below minimumDistance %v", c.MaximumDistance, c.MinimumDistance)
	case c.DefaultDistance < c.MinimumDistance || c.DefaultDistance > c.MaximumDistance:
		return fmt.Errorf("defaultDistance %v is outside [%v, %v]", c.DefaultDistance, c.MinimumDistance, c.MaximumDistance)
	case c.MaxViewHorizontalDegrees < 0 || c.MaxViewHorizontalDegrees > 180:
		return fmt.Errorf("maxViewHorizontalDegrees %v is outside [0, 180]", c.MaxViewHorizontalDegrees)
	case c.MaxViewVerticalDegrees < 0 || c.MaxViewVerticalDegrees > 90:
		return fmt.Errorf("maxViewVerticalDegrees %v is outside [0, 90]", c.MaxViewVerticalDegrees)
	case c.VerticalMaxDistance < 0:
		return fmt.Errorf("verticalMaxDistance %v is negative", c.VerticalMaxDistance)
	}
	return nil
}

// LoadFollowConfig parses JSON follow parameters. Fields missing from the
// document keep their DefaultFollowConfig values.
func LoadFollowConfig(jsonData []byte) (FollowConfig, error) {
	cfg := DefaultFollowConfig()
	if err := json.Unmarshal(jsonData, &cfg); err != nil {
		return FollowConfig{}, fmt.Errorf("parse follow config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return FollowConfig{}, fmt.Errorf("parse follow config: %w", err)
	}
	return cfg, nil
}
