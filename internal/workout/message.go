package workout

import (
	"fmt"
	"math"
)

const messageTemplate = "Тип тренировки: %s; " +
	"Длительность: %.3f ч.; " +
	"Дистанция: %.3f км; " +
	"Ср. скорость: %.3f км/ч; " +
	"Потрачено ккал: %.3f."

// InfoMessage is the computed, display-ready summary of one workout session.
type InfoMessage struct {
	TrainingType string
	Duration     float64
	Distance     float64
	Speed        float64
	Calories     float64
}

// Message renders the summary line with every figure fixed to three decimals.
func (m InfoMessage) Message() string {
	return fmt.Sprintf(messageTemplate, m.TrainingType, m.Duration, m.Distance, m.Speed, m.Calories)
}

// Finite reports whether every figure is a finite number. A zero duration
// yields an infinite speed, which has no JSON representation.
func (m InfoMessage) Finite() bool {
	for _, v := range []float64{m.Duration, m.Distance, m.Speed, m.Calories} {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return false
		}
	}
	return true
}
