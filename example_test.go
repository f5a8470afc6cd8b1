package sqi_test

import (
	"fmt"
	"log"
	"math"

	sqi "github.com/Artinis-Medical-Systems-B-V/SignalQualityIndex"
)

// pulseWindow returns 10 s at 50 Hz of a clean 72 bpm pulsation.
func pulseWindow() sqi.Channels {
	const (
		fs = 50.0
		n  = 500
	)
	ch := sqi.Channels{
		OD1: make([]float64, n),
		OD2: make([]float64, n),
		Oxy: make([]float64, n),
		Dxy: make([]float64, n),
	}
	for i := range n {
		pulse := math.Sin(2 * math.Pi * 1.2 * float64(i) / fs)
		ch.OD1[i] = 1.0 + 0.01*pulse
		ch.OD2[i] = 0.8 + 0.01*pulse
		ch.Oxy[i] = pulse
		ch.Dxy[i] = -0.2 * pulse
	}
	return ch
}

func ExampleComputeQualityScore() {
	ch := pulseWindow()

	score, err := sqi.ComputeQualityScore(ch.OD1, ch.OD2, ch.Oxy, ch.Dxy, 50)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(score)
	// Output: 5
}

func ExampleEvaluate() {
	ch := pulseWindow()
	ch.OD1[100] = 3.1 // detector saturated

	res, err := sqi.Evaluate(ch, 50)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(res.Score, res.Gate)
	// Output: 1 linear-range
}

func ExampleChannels_Validate() {
	ch := pulseWindow()

	err := ch.Validate(5)
	fmt.Println(err != nil)
	// Output: true
}
