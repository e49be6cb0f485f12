package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"example.com/fittracker/internal/workout"
)

type trackerPackage struct {
	workoutType string
	data        []float64
}

var packages = []trackerPackage{
	{workout.CodeSwimming, []float64{720, 1, 80, 25, 40}},
	{workout.CodeRunning, []float64{15000, 1, 75}},
	{workout.CodeWalking, []float64{9000, 1, 75, 180}},
}

func main() {
	if err := run(os.Stdout, packages); err != nil {
		log.Fatalf("ftracker: %v", err)
	}
}

func run(w io.Writer, pkgs []trackerPackage) error {
	for _, pkg := range pkgs {
		training, err := workout.ReadPackage(pkg.workoutType, pkg.data)
		if err != nil {
			return err
		}
		info := workout.ShowTrainingInfo(training)
		if _, err := fmt.Fprintln(w, info.Message()); err != nil {
			return err
		}
	}
	return nil
}
