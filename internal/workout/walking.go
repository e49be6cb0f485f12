package workout

import "math"

const (
	cmInM     = 100
	kmhInMsec = 0.278

	walkingCaloriesWeightMultiplier = 0.035
	walkingSpeedHeightMultiplier    = 0.029
)

// SportsWalking is a race-walking session measured in steps.
type SportsWalking struct {
	training
	height float64
}

// NewSportsWalking constructs a SportsWalking workout. height is in cm.
func NewSportsWalking(action int, duration, weight, height float64) SportsWalking {
	return SportsWalking{
		training: training{action: action, duration: duration, weight: weight},
		height:   height,
	}
}

// Name implements Workout.
func (SportsWalking) Name() string { return "SportsWalking" }

// SpentCalories implements Workout.
func (w SportsWalking) SpentCalories() float64 {
	squared := math.Pow(w.MeanSpeed()*kmhInMsec, 2)
	return (walkingCaloriesWeightMultiplier*w.weight +
		(squared/(w.height/cmInM))*walkingSpeedHeightMultiplier*w.weight) *
		(w.duration * minInH)
}
