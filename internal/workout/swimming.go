package workout

const (
	swimmingLenStep                  = 1.38
	swimmingCaloriesMeanSpeedShift   = 1.1
	swimmingCaloriesWeightMultiplier = 2
)

// Swimming is a pool session measured in strokes.
type Swimming struct {
	training
	lengthPool float64
	countPool  int
}

// NewSwimming constructs a Swimming workout. lengthPool is in metres,
// countPool is the number of completed laps.
func NewSwimming(action int, duration, weight, lengthPool float64, countPool int) Swimming {
	return Swimming{
		training:   training{action: action, duration: duration, weight: weight},
		lengthPool: lengthPool,
		countPool:  countPool,
	}
}

// Name implements Workout.
func (Swimming) Name() string { return "Swimming" }

// Distance uses the stroke length instead of the step length.
func (s Swimming) Distance() float64 {
	return float64(s.action) * swimmingLenStep / mInKm
}

// MeanSpeed is derived from the laps swum, not from the stroke count.
func (s Swimming) MeanSpeed() float64 {
	return s.lengthPool * float64(s.countPool) / mInKm / s.duration
}

// SpentCalories implements Workout.
func (s Swimming) SpentCalories() float64 {
	return (s.MeanSpeed() + swimmingCaloriesMeanSpeedShift) *
		swimmingCaloriesWeightMultiplier * s.weight * s.duration
}
