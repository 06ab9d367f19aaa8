package app

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/divescroll/internal/engine/input"
)

type recordingMode struct {
	name     string
	log      *[]string
	enterErr error
}

func (m *recordingMode) Name() string { return m.name }

func (m *recordingMode) Enter() error {
	*m.log = append(*m.log, "enter "+m.name)
	return m.enterErr
}

func (m *recordingMode) Exit() error {
	*m.log = append(*m.log, "exit "+m.name)
	return nil
}

func (m *recordingMode) Update(float32) error {
	*m.log = append(*m.log, "update "+m.name)
	return nil
}

func (m *recordingMode) HandleInput(input.Event) error {
	*m.log = append(*m.log, "input "+m.name)
	return nil
}

func TestModeManagerTransitions(t *testing.T) {
	var log []string
	a := &recordingMode{name: "a", log: &log}
	b := &recordingMode{name: "b", log: &log}
	m := NewModeManager()

	assert.NoError(t, m.HandleInput(input.Event{}))
	assert.Nil(t, m.Current())

	m.Change(a)
	assert.Nil(t, m.Current(), "change applies on the next update")
	require.NoError(t, m.Update(0))
	require.NoError(t, m.HandleInput(input.Event{}))

	m.Change(b)
	require.NoError(t, m.Update(0))
	require.NoError(t, m.Close())

	assert.Equal(t, []string{
		"enter a", "update a", "input a",
		"exit a", "enter b", "update b",
		"exit b",
	}, log)
	assert.Nil(t, m.Current())
	assert.NoError(t, m.Close())
}

func TestModeManagerEnterError(t *testing.T) {
	var log []string
	boom := errors.New("boom")
	m := NewModeManager()
	m.Change(&recordingMode{name: "a", log: &log, enterErr: boom})

	assert.ErrorIs(t, m.Update(0), boom)
	assert.Equal(t, []string{"enter a"}, log)
}
