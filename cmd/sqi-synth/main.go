// Command sqi-synth rates synthetic NIRS windows with the signal quality
// index, to show how each rating stage responds to signal properties.
//
// Usage:
//
//	sqi-synth                              # built-in scenarios
//	sqi-synth -config scenarios.yaml       # scenarios from a YAML file
//	sqi-synth -log-level debug             # log every window
//	sqi-synth -parallel=false -windows 100 # override window count, rate sequentially
//
// A scenario file lists scenarios; omitted fields take defaults:
//
//	scenarios:
//	  - name: clean
//	    od_noise: 0.00001
//	    hb_noise: 0.01
//	  - name: motion
//	    pulse_amplitude: 0.002
//	    od_noise: 0.02
//	    oxy_amplitude: 3
//	    dxy_amplitude: 1
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime/pprof"
	"time"

	"github.com/rs/zerolog"

	sqi "github.com/Artinis-Medical-Systems-B-V/SignalQualityIndex"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("sqi-synth", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "YAML scenario file (default: built-in scenarios)")
	windows := fs.Int("windows", 0, "Override the window count of every scenario")
	parallel := fs.Bool("parallel", true, "Rate the windows of a scenario concurrently")
	logLevel := fs.String("log-level", "info", "Log level: debug, info, warn, error")
	noColor := fs.Bool("no-color", false, "Disable colored log output")
	cpuprofile := fs.String("cpuprofile", "", "Write CPU profile to file")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	log, err := newLogger(stderr, *logLevel, *noColor)
	if err != nil {
		return err
	}

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	cfg := builtinScenarios()
	if *configPath != "" {
		if cfg, err = loadConfig(*configPath); err != nil {
			return err
		}
		log.Info().Str("path", *configPath).Int("scenarios", len(cfg.Scenarios)).Msg("loaded scenarios")
	}
	if *windows > 0 {
		for i := range cfg.Scenarios {
			cfg.Scenarios[i].Windows = *windows
		}
	}

	summaries := make([]scenarioSummary, 0, len(cfg.Scenarios))
	for i := range cfg.Scenarios {
		s := &cfg.Scenarios[i]
		start := time.Now()

		results := scoreScenario(s, *parallel)
		for _, r := range results {
			logWindow(log, s.Name, r)
		}

		sum := summarize(s.Name, results)
		summaries = append(summaries, sum)
		logSummary(log, s, sum, time.Since(start))
	}

	printSummaries(stdout, summaries)
	return nil
}

func logSummary(log zerolog.Logger, s *Scenario, sum scenarioSummary, elapsed time.Duration) {
	ev := log.Info()
	if sum.failed > 0 {
		ev = log.Warn().Int("failed", sum.failed)
	}
	ev.Str("scenario", s.Name).
		Int("windows", sum.windows).
		Float64("sample_rate", s.SampleRate).
		Int("samples", s.Samples()).
		Float64("mean_score", sum.meanScore).
		Dur("elapsed", elapsed).
		Msg("scenario rated")
}

var gateOrder = []sqi.Gate{
	sqi.GateLinearRange,
	sqi.GateFlatLine,
	sqi.GateHbRatio,
	sqi.GateAutocorrelation,
	sqi.GateRegression,
}

func printSummaries(w io.Writer, summaries []scenarioSummary) {
	fmt.Fprintf(w, "%-12s %7s %6s %6s %6s  %s\n", "SCENARIO", "WINDOWS", "MEAN", "MIN", "MAX", "GATES")
	for _, sum := range summaries {
		fmt.Fprintf(w, "%-12s %7d %6.2f %6.2f %6.2f  %s\n",
			sum.name, sum.windows, sum.meanScore, sum.minScore, sum.maxScore, formatGates(sum.gates))
	}
}

func formatGates(gates map[sqi.Gate]int) string {
	out := ""
	for _, g := range gateOrder {
		if n := gates[g]; n > 0 {
			if out != "" {
				out += " "
			}
			out += fmt.Sprintf("%s=%d", g, n)
		}
	}
	if out == "" {
		return "-"
	}
	return out
}
