package runner

import (
	"bytes"
	"context"
	"errors"
	"os/exec"

	"go.trai.ch/sift/internal/core/domain"
	"go.trai.ch/sift/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.RunExecutor = (*Executor)(nil)

// Executor triggers reruns through the external runner command. A scoped
// run passes the identity filter via --filter; a full run passes --all.
type Executor struct {
	command []string
	root    string
	logger  ports.Logger
}

// NewExecutor creates an Executor invoking the given command.
func NewExecutor(command []string, root string, logger ports.Logger) *Executor {
	return &Executor{command: command, root: root, logger: logger}
}

// Execute runs the requested scope and blocks until the run completes or
// the context is cancelled.
func (e *Executor) Execute(ctx context.Context, scope *domain.RunScope) error {
	if len(e.command) == 0 {
		return zerr.New("no runner command configured")
	}

	args := make([]string, 0, len(e.command)+1)
	args = append(args, e.command[1:]...)
	if scope.FullRun {
		args = append(args, "--all")
	} else {
		args = append(args, "--filter", scope.FilterPattern)
	}

	cmd := exec.CommandContext(ctx, e.command[0], args...) //nolint:gosec // command comes from project config
	cmd.Dir = e.root

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return zerr.With(zerr.New("spec run failed"), "stderr", diagnosticFrom(&stderr, err))
		}
		return zerr.With(zerr.Wrap(err, "failed to launch spec runner"), "command", e.command[0])
	}

	return nil
}
