package command

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteCommitReturnsResult(t *testing.T) {
	bus := New()
	choice := Choice{Key: "api", Path: []string{"api"}, Action: "open"}
	cmd := bus.Execute(Request{ID: "api", Label: "API", Handler: Commit, Choice: choice})
	require.NotNil(t, cmd)

	msg := cmd()
	result, ok := msg.(ActionResult)
	require.True(t, ok, "got %T", msg)
	assert.NoError(t, result.Err)
	assert.Equal(t, choice, result.Choice)
	assert.Equal(t, "api\topen", result.Info)
}

func TestExecuteWithoutHandlerSkips(t *testing.T) {
	cmd := New().Execute(Request{ID: "x"})
	assert.Nil(t, cmd())
}

func TestExecuteHandlerReturningNil(t *testing.T) {
	cmd := New().Execute(Request{ID: "x", Handler: func(Choice) tea.Cmd { return nil }})
	assert.Nil(t, cmd())
}

func TestCommitRequiresKey(t *testing.T) {
	result, ok := Commit(Choice{})().(ActionResult)
	require.True(t, ok)
	assert.Error(t, result.Err)
}
