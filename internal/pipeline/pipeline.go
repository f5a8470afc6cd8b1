// Package pipeline runs an ordered, forward-only chain of classification
// stages over one shared per-call state value.
//
// A Pipeline holds no per-call state, so one instance may be run from many
// goroutines as long as each call passes its own state.
package pipeline

import (
	"errors"
	"fmt"
)

var (
	// ErrNoExit indicates that every stage ran without any of them ending the chain.
	ErrNoExit = errors.New("pipeline finished without a terminal stage")

	// ErrInvalidPipeline indicates an empty chain or duplicate stage names.
	ErrInvalidPipeline = errors.New("invalid pipeline")
)

// Stage represents a single step in the chain.
type Stage[S any] interface {
	// Name identifies the stage in errors and exit reports.
	Name() string

	// Run inspects or updates the state and reports whether the chain
	// ends at this stage.
	Run(state *S) (done bool, err error)
}

// StageFunc adapts a plain function to the Stage interface.
type StageFunc[S any] struct {
	name string
	fn   func(state *S) (bool, error)
}

// NewStage wraps fn as a named stage.
func NewStage[S any](name string, fn func(state *S) (bool, error)) StageFunc[S] {
	return StageFunc[S]{name: name, fn: fn}
}

// Name returns the stage name.
func (s StageFunc[S]) Name() string { return s.name }

// Run calls the wrapped function.
func (s StageFunc[S]) Run(state *S) (bool, error) { return s.fn(state) }

// Pipeline is an immutable, ordered list of stages.
type Pipeline[S any] struct {
	stages []Stage[S]
}

// New builds a pipeline from stages in execution order.
func New[S any](stages ...Stage[S]) (*Pipeline[S], error) {
	if len(stages) == 0 {
		return nil, fmt.Errorf("%w: no stages", ErrInvalidPipeline)
	}

	seen := make(map[string]struct{}, len(stages))
	for _, s := range stages {
		if _, dup := seen[s.Name()]; dup {
			return nil, fmt.Errorf("%w: duplicate stage %q", ErrInvalidPipeline, s.Name())
		}
		seen[s.Name()] = struct{}{}
	}

	return &Pipeline[S]{stages: append([]Stage[S](nil), stages...)}, nil
}

// MustNew is like New but panics on an invalid stage list.
// It is meant for package-level pipelines built from constant stage lists.
func MustNew[S any](stages ...Stage[S]) *Pipeline[S] {
	p, err := New(stages...)
	if err != nil {
		panic(err)
	}
	return p
}

// Run executes the stages in order until one reports done or fails.
// It returns the name of the stage the chain stopped at.
func (p *Pipeline[S]) Run(state *S) (exit string, err error) {
	for _, s := range p.stages {
		done, err := s.Run(state)
		if err != nil {
			return s.Name(), fmt.Errorf("stage %q: %w", s.Name(), err)
		}
		if done {
			return s.Name(), nil
		}
	}

	return "", ErrNoExit
}

// Stages returns the stage names in execution order.
func (p *Pipeline[S]) Stages() []string {
	names := make([]string, len(p.stages))
	for i, s := range p.stages {
		names[i] = s.Name()
	}
	return names
}
