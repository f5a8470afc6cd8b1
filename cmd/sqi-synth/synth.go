package main

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sync"

	sqi "github.com/Artinis-Medical-Systems-B-V/SignalQualityIndex"
)

const (
	secondsPerMinute = 60.0
	saturationLevel  = 3.2 // OD reached when the detector saturates
	spikeLevel       = 2.8
	goldenGamma      = 0x9e3779b97f4a7c15 // second PCG seed word
)

// windowResult is the rating of one synthetic window.
type windowResult struct {
	index  int
	result sqi.Result
	err    error
}

// scenarioSummary aggregates the ratings of one scenario.
type scenarioSummary struct {
	name      string
	windows   int
	failed    int
	meanScore float64
	minScore  float64
	maxScore  float64
	gates     map[sqi.Gate]int
}

// generateWindow builds window idx of a scenario. The same scenario and
// index always give the same samples.
func generateWindow(s *Scenario, idx int) sqi.Channels {
	n := s.Samples()
	rng := rand.New(rand.NewPCG(s.Seed+uint64(idx), goldenGamma))
	noise := func(amp float64) float64 {
		return amp * (2*rng.Float64() - 1)
	}

	heartHz := s.HeartRateBPM / secondsPerMinute
	dxyHz := s.DxyFrequencyHz
	if dxyHz == 0 {
		dxyHz = heartHz
	}
	// A random start phase per window keeps windows of a scenario distinct.
	phase := 2 * math.Pi * rng.Float64()

	ch := sqi.Channels{
		OD1: make([]float64, n),
		OD2: make([]float64, n),
		Oxy: make([]float64, n),
		Dxy: make([]float64, n),
	}
	for i := range n {
		t := float64(i) / s.SampleRate
		pulse := math.Sin(2*math.Pi*heartHz*t + phase)

		ch.OD1[i] = s.OD1Baseline + s.PulseAmplitude*pulse + noise(s.ODNoise)
		ch.OD2[i] = s.OD2Baseline + s.PulseAmplitude*pulse + noise(s.ODNoise)
		ch.Oxy[i] = s.OxyAmplitude*pulse + noise(s.HbNoise)
		// HHb moves against O2Hb during a heartbeat.
		ch.Dxy[i] = -s.DxyAmplitude*math.Sin(2*math.Pi*dxyHz*t+phase) + noise(s.HbNoise)
	}

	applyArtifact(s.Artifact, ch.OD1)
	return ch
}

func applyArtifact(artifact string, od []float64) {
	switch artifact {
	case artifactSpike:
		od[len(od)/2] = spikeLevel
	case artifactSaturation:
		for i := len(od) / 3; i < 2*len(od)/3; i++ {
			od[i] = saturationLevel
		}
	case artifactDetached:
		for i := range od {
			od[i] = od[0]
		}
	case artifactNone, "":
	}
}

// scoreScenario rates every window of a scenario, concurrently when
// parallel is set. Results are ordered by window index.
func scoreScenario(s *Scenario, parallel bool) []windowResult {
	results := make([]windowResult, s.Windows)
	rate := func(idx int) {
		res, err := sqi.Evaluate(generateWindow(s, idx), s.SampleRate)
		if err != nil {
			err = fmt.Errorf("window %d: %w", idx, err)
		}
		results[idx] = windowResult{index: idx, result: res, err: err}
	}

	if !parallel || s.Windows <= 1 {
		for idx := range s.Windows {
			rate(idx)
		}
		return results
	}

	var wg sync.WaitGroup
	for idx := range s.Windows {
		wg.Add(1)
		go func(window int) {
			defer wg.Done()
			rate(window)
		}(idx)
	}
	wg.Wait()

	return results
}

func summarize(name string, results []windowResult) scenarioSummary {
	sum := scenarioSummary{
		name:     name,
		windows:  len(results),
		minScore: math.NaN(),
		maxScore: math.NaN(),
		gates:    make(map[sqi.Gate]int),
	}

	var total float64
	scored := 0
	for _, r := range results {
		if r.err != nil {
			sum.failed++
			continue
		}
		score := r.result.Score
		total += score
		if scored == 0 || score < sum.minScore {
			sum.minScore = score
		}
		if scored == 0 || score > sum.maxScore {
			sum.maxScore = score
		}
		sum.gates[r.result.Gate]++
		scored++
	}

	sum.meanScore = math.NaN()
	if scored > 0 {
		sum.meanScore = total / float64(scored)
	}
	return sum
}
