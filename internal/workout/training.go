// Package workout converts raw tracker readings into distance, speed and calorie figures.
package workout

const (
	lenStep = 0.65
	mInKm   = 1000
	minInH  = 60
)

// Workout is implemented by every supported training variant.
type Workout interface {
	// Name is the display name rendered in the report.
	Name() string
	// Duration returns the session length in hours.
	Duration() float64
	// Distance returns the covered distance in km.
	Distance() float64
	// MeanSpeed returns the average speed over the whole session in km/h.
	MeanSpeed() float64
	// SpentCalories returns the energy spent in kcal.
	SpentCalories() float64
}

// training holds the readings shared by all variants. It has no calorie
// formula and therefore does not satisfy Workout on its own.
type training struct {
	action   int
	duration float64
	weight   float64
}

func (t training) Duration() float64 {
	return t.duration
}

func (t training) Distance() float64 {
	return float64(t.action) * lenStep / mInKm
}

func (t training) MeanSpeed() float64 {
	return t.Distance() / t.duration
}

// ShowTrainingInfo computes the report for w. Nothing is cached; every call
// reflects the workout's current readings.
func ShowTrainingInfo(w Workout) InfoMessage {
	return InfoMessage{
		TrainingType: w.Name(),
		Duration:     w.Duration(),
		Distance:     w.Distance(),
		Speed:        w.MeanSpeed(),
		Calories:     w.SpentCalories(),
	}
}
