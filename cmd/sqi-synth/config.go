package main

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	sqi "github.com/Artinis-Medical-Systems-B-V/SignalQualityIndex"
)

// Artifacts that can be injected into the OD1 channel of a scenario.
const (
	artifactNone       = "none"
	artifactSpike      = "spike"      // one sample above the linear range
	artifactSaturation = "saturation" // middle third clipped at a high level
	artifactDetached   = "detached"   // constant signal
)

// Config is the YAML scenario file.
type Config struct {
	Scenarios []Scenario `yaml:"scenarios" validate:"required,min=1,dive"`
}

// Scenario describes a family of synthetic NIRS windows. Zero-valued fields
// with a default tag take the default.
type Scenario struct {
	Name    string `yaml:"name" validate:"required"`
	Windows int    `yaml:"windows" default:"8" validate:"gte=1,lte=10000"`
	Seed    uint64 `yaml:"seed" default:"1"`

	SampleRate float64 `yaml:"sample_rate" default:"50" validate:"gt=6"`
	Seconds    float64 `yaml:"seconds" default:"10" validate:"gt=0"`

	HeartRateBPM   float64 `yaml:"heart_rate_bpm" default:"72" validate:"gte=30,lte=180"`
	OD1Baseline    float64 `yaml:"od1_baseline" default:"1.0" validate:"gt=0"`
	OD2Baseline    float64 `yaml:"od2_baseline" default:"0.8" validate:"gt=0"`
	PulseAmplitude float64 `yaml:"pulse_amplitude" default:"0.01" validate:"gte=0"`
	ODNoise        float64 `yaml:"od_noise" validate:"gte=0"`

	OxyAmplitude float64 `yaml:"oxy_amplitude" default:"1.0" validate:"gte=0"`
	DxyAmplitude float64 `yaml:"dxy_amplitude" default:"0.2" validate:"gte=0"`
	// DxyFrequencyHz decouples HHb from the heartbeat; 0 follows the heart rate.
	DxyFrequencyHz float64 `yaml:"dxy_frequency_hz" validate:"gte=0"`
	HbNoise        float64 `yaml:"hb_noise" validate:"gte=0"`

	Artifact string `yaml:"artifact" default:"none" validate:"oneof=none spike saturation detached"`
}

// Samples returns the window length in samples.
func (s *Scenario) Samples() int {
	return int(s.SampleRate * s.Seconds)
}

var validate = validator.New()

// loadConfig reads, defaults, and validates a YAML scenario file.
func loadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return parseConfig(b)
}

func parseConfig(b []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := c.setDefaults(); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &c, nil
}

func (c *Config) setDefaults() error {
	for i := range c.Scenarios {
		if err := defaults.Set(&c.Scenarios[i]); err != nil {
			return fmt.Errorf("scenario %d defaults: %w", i, err)
		}
	}
	return nil
}

// Validate checks struct tags, unique names, and the minimum window length.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return validationError(err)
	}

	seen := make(map[string]bool, len(c.Scenarios))
	for _, s := range c.Scenarios {
		if seen[s.Name] {
			return fmt.Errorf("duplicate scenario name %q", s.Name)
		}
		seen[s.Name] = true

		if n := s.Samples(); n < sqi.MinSamples {
			return fmt.Errorf("scenario %q: %d samples per window, need at least %d",
				s.Name, n, sqi.MinSamples)
		}
	}
	return nil
}

// validationError flattens validator errors into one readable error.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Namespace()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min", "gte":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must have at least %s entries", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%s failed validation: %s", field, fe.Tag())
	}
}

// builtinScenarios covers every rating stage.
func builtinScenarios() *Config {
	c := &Config{Scenarios: []Scenario{
		{Name: "clean", ODNoise: 1e-5, HbNoise: 0.01},
		{Name: "noisy", PulseAmplitude: 0.002, ODNoise: 0.02, OxyAmplitude: 3, DxyAmplitude: 1, DxyFrequencyHz: 1.0},
		{Name: "weak-oxy", PulseAmplitude: 0.002, ODNoise: 0.02, OxyAmplitude: 1.5, DxyAmplitude: 1},
		{Name: "spike", ODNoise: 1e-5, Artifact: artifactSpike},
		{Name: "saturated", ODNoise: 1e-5, Artifact: artifactSaturation},
		{Name: "detached", Artifact: artifactDetached},
	}}
	// Built-in values are static and always valid.
	if err := c.setDefaults(); err != nil {
		panic(err)
	}
	return c
}
