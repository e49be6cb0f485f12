package workout

const (
	runningCaloriesMeanSpeedMultiplier = 18
	runningCaloriesMeanSpeedShift      = 1.79
)

// Running is a run measured in steps.
type Running struct {
	training
}

// NewRunning constructs a Running workout.
func NewRunning(action int, duration, weight float64) Running {
	return Running{training: training{action: action, duration: duration, weight: weight}}
}

// Name implements Workout.
func (Running) Name() string { return "Running" }

// SpentCalories implements Workout.
func (r Running) SpentCalories() float64 {
	return (runningCaloriesMeanSpeedMultiplier*r.MeanSpeed() + runningCaloriesMeanSpeedShift) *
		r.weight / mInKm * (r.duration * minInH)
}
