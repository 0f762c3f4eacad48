package runner_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.trai.ch/sift/internal/adapters/runner"
	"go.trai.ch/sift/internal/core/domain"
)

func TestExecute_ScopedRunPassesFilter(t *testing.T) {
	// $0 and $1 are the arguments appended after the -c script.
	script := `[ "$0" = "--filter" ] && [ -n "$1" ]`
	e := runner.NewExecutor([]string{"/bin/sh", "-c", script}, t.TempDir(), quietLogger())

	err := e.Execute(context.Background(), &domain.RunScope{
		FilterPattern: `^(?:calc_spec\.go:calculator/adds)$`,
	})
	assert.NoError(t, err)
}

func TestExecute_FullRunPassesAll(t *testing.T) {
	script := `[ "$0" = "--all" ]`
	e := runner.NewExecutor([]string{"/bin/sh", "-c", script}, t.TempDir(), quietLogger())

	err := e.Execute(context.Background(), &domain.RunScope{FullRun: true})
	assert.NoError(t, err)
}

func TestExecute_FailedRun(t *testing.T) {
	e := runner.NewExecutor([]string{"/bin/sh", "-c", "echo '2 cases failed' >&2; exit 1"}, t.TempDir(), quietLogger())

	err := e.Execute(context.Background(), &domain.RunScope{FullRun: true})
	require.Error(t, err)
	assert.NotErrorIs(t, err, context.Canceled)
}

func TestExecute_Cancelled(t *testing.T) {
	e := runner.NewExecutor([]string{"/bin/sh", "-c", "sleep 10"}, t.TempDir(), quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := e.Execute(ctx, &domain.RunScope{FullRun: true})
	assert.ErrorIs(t, err, context.Canceled)
}
