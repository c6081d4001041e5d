package scenario

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/jo-hoe/imgsuite/internal/invocation"
	"github.com/jo-hoe/imgsuite/internal/probe"
)

// Tool type names accepted by NewExecutor.
const (
	ToolTypeExternal = "external"
	ToolTypeBuiltin  = "builtin"
)

// ExecResult captures the outcome of a single tool invocation.
type ExecResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Executor runs a single invocation and reports the tool's outcome. Failure
// detection is the tool's job; an executor only returns an error when the
// invocation could not be started at all.
type Executor interface {
	Execute(ctx context.Context, inv invocation.Invocation) (*ExecResult, error)
}

// NewExecutor selects an executor implementation by configured tool type.
func NewExecutor(toolType, toolPath string) (Executor, error) {
	switch toolType {
	case ToolTypeExternal:
		if toolPath == "" {
			return nil, fmt.Errorf("tool path must be set for the external tool")
		}
		return &externalExecutor{tool: toolPath}, nil
	case ToolTypeBuiltin:
		return &builtinExecutor{}, nil
	default:
		return nil, fmt.Errorf("unsupported tool type: %s", toolType)
	}
}

// externalExecutor spawns the configured tool binary per invocation.
type externalExecutor struct {
	tool string
}

func (e *externalExecutor) Execute(ctx context.Context, inv invocation.Invocation) (*ExecResult, error) {
	argv := inv.Argv(e.tool)

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := &ExecResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		// The tool never ran (not found, permission, cancelled context)
		return nil, fmt.Errorf("failed to run %s: %w", argv[0], err)
	}

	return result, nil
}

// builtinExecutor serves invocations in-process via the probe package, so the
// suite can run where the external tool is not installed.
type builtinExecutor struct{}

func (e *builtinExecutor) Execute(ctx context.Context, inv invocation.Invocation) (*ExecResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch inv.Kind {
	case invocation.KindInfo:
		line, err := probe.Info(inv.InputPath())
		if err != nil {
			return &ExecResult{ExitCode: 1, Stderr: err.Error()}, nil
		}
		return &ExecResult{Stdout: line + "\n"}, nil
	case invocation.KindConvert:
		if err := probe.Convert(inv.InputPath(), inv.OutputPath()); err != nil {
			return &ExecResult{ExitCode: 1, Stderr: err.Error()}, nil
		}
		return &ExecResult{}, nil
	default:
		return &ExecResult{ExitCode: 2, Stderr: fmt.Sprintf("unknown operation: %s", inv.Kind)}, nil
	}
}
