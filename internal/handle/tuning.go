package handle

import (
	"fmt"
	"math"
)

const (
	DefaultFriction        = 0.01
	DefaultVelocityReducer = 1.5
	DefaultMaxHeldSpeed    = 3.0
	DefaultMaxFreeSpeed    = 5.0
	DefaultRestEpsilon     = 0.001
)

// Tuning holds the motion constants shared by both handles. Speeds are in
// arena units per millisecond.
type Tuning struct {
	Friction        float64
	VelocityReducer float64
	MaxHeldSpeed    float64
	MaxFreeSpeed    float64
	RestEpsilon     float64
}

func DefaultTuning() Tuning {
	return Tuning{
		Friction:        DefaultFriction,
		VelocityReducer: DefaultVelocityReducer,
		MaxHeldSpeed:    DefaultMaxHeldSpeed,
		MaxFreeSpeed:    DefaultMaxFreeSpeed,
		RestEpsilon:     DefaultRestEpsilon,
	}
}

// Validate rejects out of range values. NaN and infinities fail every check.
func (t Tuning) Validate() error {
	if !(t.Friction >= 0 && t.Friction < 1) {
		return fmt.Errorf("friction must be in [0, 1), got %f", t.Friction)
	}
	if !positive(t.VelocityReducer) {
		return fmt.Errorf("velocity reducer must be positive, got %f", t.VelocityReducer)
	}
	if !positive(t.MaxHeldSpeed) || !positive(t.MaxFreeSpeed) {
		return fmt.Errorf("speed limits must be positive, got held=%f free=%f", t.MaxHeldSpeed, t.MaxFreeSpeed)
	}
	if !(t.RestEpsilon >= 0) || math.IsInf(t.RestEpsilon, 1) {
		return fmt.Errorf("rest epsilon must not be negative, got %f", t.RestEpsilon)
	}
	return nil
}

func positive(v float64) bool { return v > 0 && !math.IsInf(v, 1) }
