// Package runner adapts the external spec compiler/executor. It launches
// the configured runner command per module and decodes the realized tree
// from its output.
package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os/exec"
	"path/filepath"
	"strings"

	"go.trai.ch/sift/internal/core/domain"
	"go.trai.ch/sift/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.SpecRunner = (*Runner)(nil)

// Runner implements ports.SpecRunner using os/exec.
type Runner struct {
	command []string
	root    string
	logger  ports.Logger
}

// NewRunner creates a Runner invoking the given command. The module path is
// appended as the final argument.
func NewRunner(command []string, root string, logger ports.Logger) *Runner {
	return &Runner{command: command, root: root, logger: logger}
}

// Run compiles and executes the module. A non-zero exit is reported as a
// *domain.CompileError carrying the runner's stderr; failing to launch the
// runner at all is an infrastructure error.
func (r *Runner) Run(ctx context.Context, module *domain.SpecModule) (*ports.RunOutput, error) {
	if len(r.command) == 0 {
		return nil, zerr.New("no runner command configured")
	}

	args := make([]string, 0, len(r.command))
	args = append(args, r.command[1:]...)
	args = append(args, module.Path)

	cmd := exec.CommandContext(ctx, r.command[0], args...) //nolint:gosec // command comes from project config
	cmd.Dir = r.root

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, &domain.CompileError{
				Path:       module.Path,
				Diagnostic: diagnosticFrom(&stderr, err),
			}
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to launch spec runner"), "command", r.command[0])
	}

	tree, err := decodeTree(module.Path, r.root, stdout.Bytes())
	if err != nil {
		// Unreadable runner output means the module cannot be trusted to
		// have run; treat it like a compile failure so discovery falls back.
		r.logger.Warn("spec runner produced undecodable output")
		return nil, &domain.CompileError{
			Path:       module.Path,
			Diagnostic: err.Error(),
		}
	}

	return &ports.RunOutput{Tree: tree, Raw: stdout.Bytes()}, nil
}

func diagnosticFrom(stderr *bytes.Buffer, err error) string {
	diagnostic := strings.TrimSpace(stderr.String())
	if diagnostic == "" {
		diagnostic = err.Error()
	}
	return diagnostic
}

// wireNode is the runner's JSON representation of one declaration.
type wireNode struct {
	Kind        string     `json:"kind"`
	Description string     `json:"description"`
	Focused     bool       `json:"focused,omitempty"`
	Skipped     bool       `json:"skipped,omitempty"`
	Pending     bool       `json:"pending,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	Line        int        `json:"line,omitempty"`
	EndLine     int        `json:"endLine,omitempty"`
	Children    []wireNode `json:"children,omitempty"`
}

type wireTree struct {
	Specs []wireNode `json:"specs"`
}

func decodeTree(modulePath, root string, data []byte) (*domain.SpecTree, error) {
	var wire wireTree
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, zerr.Wrap(err, "failed to decode runner output")
	}

	rel := modulePath
	if r, err := filepath.Rel(root, modulePath); err == nil {
		rel = r
	}

	tree := &domain.SpecTree{
		ModulePath: modulePath,
		RelPath:    domain.NormalizePath(rel),
		Roots:      convertNodes(wire.Specs),
	}
	return tree, nil
}

func convertNodes(wire []wireNode) []*domain.SpecNode {
	nodes := make([]*domain.SpecNode, 0, len(wire))
	for _, w := range wire {
		kind := domain.KindCase
		if w.Kind == "container" {
			kind = domain.KindContainer
		}
		nodes = append(nodes, &domain.SpecNode{
			Kind:        kind,
			Description: w.Description,
			Focused:     w.Focused,
			Skipped:     w.Skipped,
			Pending:     w.Pending,
			Tags:        w.Tags,
			Line:        w.Line,
			EndLine:     w.EndLine,
			Children:    convertNodes(w.Children),
		})
	}
	return nodes
}
