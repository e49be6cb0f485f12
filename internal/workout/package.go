package workout

import (
	"errors"
	"fmt"
	"math"
)

// Workout type codes as reported by the tracker.
const (
	CodeSwimming = "SWM"
	CodeRunning  = "RUN"
	CodeWalking  = "WLK"
)

var (
	// ErrUnknownWorkoutType is returned for a code with no registered variant.
	ErrUnknownWorkoutType = errors.New("unsupported workout type")
	// ErrParamCount is returned when a package does not carry exactly the
	// readings the variant expects.
	ErrParamCount = errors.New("wrong number of readings")
	// ErrInvalidParam is returned when a count reading is not a whole number.
	ErrInvalidParam = errors.New("invalid reading")
)

// TypeInfo describes a supported workout code and the order of its readings.
type TypeInfo struct {
	Code   string
	Name   string
	Params []string
}

type variant struct {
	info  TypeInfo
	build func(data []float64) (Workout, error)
}

var variants = []variant{
	{
		info: TypeInfo{
			Code:   CodeSwimming,
			Name:   "Swimming",
			Params: []string{"action", "duration", "weight", "length_pool", "count_pool"},
		},
		build: func(data []float64) (Workout, error) {
			action, err := wholeNumber("action", data[0])
			if err != nil {
				return nil, err
			}
			laps, err := wholeNumber("count_pool", data[4])
			if err != nil {
				return nil, err
			}
			return NewSwimming(action, data[1], data[2], data[3], laps), nil
		},
	},
	{
		info: TypeInfo{
			Code:   CodeRunning,
			Name:   "Running",
			Params: []string{"action", "duration", "weight"},
		},
		build: func(data []float64) (Workout, error) {
			action, err := wholeNumber("action", data[0])
			if err != nil {
				return nil, err
			}
			return NewRunning(action, data[1], data[2]), nil
		},
	},
	{
		info: TypeInfo{
			Code:   CodeWalking,
			Name:   "SportsWalking",
			Params: []string{"action", "duration", "weight", "height"},
		},
		build: func(data []float64) (Workout, error) {
			action, err := wholeNumber("action", data[0])
			if err != nil {
				return nil, err
			}
			return NewSportsWalking(action, data[1], data[2], data[3]), nil
		},
	},
}

// ReadPackage builds the workout for a raw sensor package. data must hold the
// readings in the order listed by Types for the given code.
func ReadPackage(workoutType string, data []float64) (Workout, error) {
	for _, v := range variants {
		if v.info.Code != workoutType {
			continue
		}
		if len(data) != len(v.info.Params) {
			return nil, fmt.Errorf("%w: %s expects %d, got %d", ErrParamCount, workoutType, len(v.info.Params), len(data))
		}
		return v.build(data)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownWorkoutType, workoutType)
}

// Types lists the supported workout codes in dispatch order.
func Types() []TypeInfo {
	out := make([]TypeInfo, 0, len(variants))
	for _, v := range variants {
		info := v.info
		info.Params = append([]string(nil), v.info.Params...)
		out = append(out, info)
	}
	return out
}

// IsInputError reports whether err was caused by a malformed package rather
// than by the caller's environment.
func IsInputError(err error) bool {
	return errors.Is(err, ErrUnknownWorkoutType) ||
		errors.Is(err, ErrParamCount) ||
		errors.Is(err, ErrInvalidParam)
}

// Whole readings must fit a 64-bit int.
const (
	minCount = -(1 << 63)
	maxCount = 1 << 63
)

func wholeNumber(name string, value float64) (int, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) || value != math.Trunc(value) {
		return 0, fmt.Errorf("%w: %s must be a whole number, got %v", ErrInvalidParam, name, value)
	}
	if value < minCount || value >= maxCount {
		return 0, fmt.Errorf("%w: %s is out of range, got %v", ErrInvalidParam, name, value)
	}
	return int(value), nil
}
