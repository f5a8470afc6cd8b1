package pipeline

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type trace struct {
	visited []string
	stopAt  string
}

func step(name string) Stage[trace] {
	return NewStage(name, func(s *trace) (bool, error) {
		s.visited = append(s.visited, name)
		return s.stopAt == name, nil
	})
}

func TestPipeline_StopsAtFirstDoneStage(t *testing.T) {
	p, err := New(step("a"), step("b"), step("c"))
	require.NoError(t, err)

	state := trace{stopAt: "b"}
	exit, err := p.Run(&state)

	require.NoError(t, err)
	assert.Equal(t, "b", exit)
	assert.Equal(t, []string{"a", "b"}, state.visited)
}

func TestPipeline_NoExit(t *testing.T) {
	p := MustNew(step("a"), step("b"))

	state := trace{}
	exit, err := p.Run(&state)

	require.ErrorIs(t, err, ErrNoExit)
	assert.Empty(t, exit)
	assert.Equal(t, []string{"a", "b"}, state.visited)
}

func TestPipeline_ErrorStopsChain(t *testing.T) {
	boom := errors.New("boom")
	failing := NewStage("failing", func(*trace) (bool, error) { return false, boom })

	p := MustNew(step("a"), Stage[trace](failing), step("c"))

	state := trace{}
	exit, err := p.Run(&state)

	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), `stage "failing"`)
	assert.Equal(t, "failing", exit)
	assert.Equal(t, []string{"a"}, state.visited)
}

func TestNew_Invalid(t *testing.T) {
	_, err := New[trace]()
	require.ErrorIs(t, err, ErrInvalidPipeline)

	_, err = New(step("a"), step("a"))
	require.ErrorIs(t, err, ErrInvalidPipeline)

	assert.Panics(t, func() { MustNew[trace]() })
}

func TestPipeline_Stages(t *testing.T) {
	p := MustNew(step("first"), step("second"))
	assert.Equal(t, []string{"first", "second"}, p.Stages())
}
