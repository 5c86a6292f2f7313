package zfs

import (
	"context"
	"fmt"

	execute "github.com/alexellis/go-execute/v2"
)

// Result is what a finished tool invocation left behind.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Runner spawns an external command and waits for it to exit.
type Runner interface {
	Run(ctx context.Context, bin string, args ...string) (Result, error)
}

// RunnerFunc adapts a plain function to Runner.
type RunnerFunc func(ctx context.Context, bin string, args ...string) (Result, error)

func (f RunnerFunc) Run(ctx context.Context, bin string, args ...string) (Result, error) {
	return f(ctx, bin, args...)
}

// ExecRunner runs commands on the local host. The binary is resolved through
// PATH unless an absolute path is given. There is no timeout; cancel ctx to
// kill the child.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, bin string, args ...string) (Result, error) {
	task := execute.ExecTask{
		Command:     bin,
		Args:        args,
		StreamStdio: false,
	}

	res, err := task.Execute(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Result{ExitCode: res.ExitCode, Stdout: res.Stdout, Stderr: res.Stderr}, ctxErr
		}
		return Result{ExitCode: res.ExitCode, Stdout: res.Stdout, Stderr: res.Stderr},
			fmt.Errorf("%w: %s: %v", ErrToolUnavailable, bin, err)
	}
	return Result{ExitCode: res.ExitCode, Stdout: res.Stdout, Stderr: res.Stderr}, nil
}
