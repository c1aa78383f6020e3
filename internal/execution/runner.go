package execution

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/belaosa/ef-migration-tools/internal/domain"
)

// Result is the outcome of one external command invocation.
// A nonzero exit code is a normal, inspectable result, not an error.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success reports whether the command exited zero.
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// Runner executes external commands in a working directory.
type Runner interface {
	// Run executes the command and captures stdout/stderr separately.
	Run(dir, name string, args ...string) (Result, error)
	// RunStreaming executes the command, echoing combined output line
	// by line to the console while also capturing it.
	RunStreaming(dir, name string, args ...string) (Result, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// NewExecRunner creates a new ExecRunner.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes the command synchronously, capturing stdout and stderr.
// Launch failure (missing executable) is reported as ErrToolNotFound;
// a nonzero exit is returned in the Result with a nil error.
func (e *ExecRunner) Run(dir, name string, args ...string) (Result, error) {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Env = os.Environ()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		return res, fmt.Errorf("%w: %s: %v", domain.ErrToolNotFound, name, err)
	}
	return res, nil
}

// RunStreaming executes the command, echoing each output line as it
// arrives and capturing the combined output for the caller.
func (e *ExecRunner) RunStreaming(dir, name string, args ...string) (Result, error) {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Env = os.Environ()

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return Result{}, fmt.Errorf("failed to create stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return Result{}, fmt.Errorf("failed to create stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return Result{}, fmt.Errorf("%w: %s: %v", domain.ErrToolNotFound, name, err)
	}

	var mu sync.Mutex
	var outputBuilder strings.Builder
	var scanWg sync.WaitGroup

	echo := func(line string) {
		mu.Lock()
		outputBuilder.WriteString(line)
		outputBuilder.WriteString("\n")
		mu.Unlock()
		fmt.Fprintln(os.Stderr, "   "+line)
	}

	scanWg.Add(1)
	go func() {
		defer scanWg.Done()
		scanner := bufio.NewScanner(stdout)
		for scanner.Scan() {
			echo(scanner.Text())
		}
	}()

	scanWg.Add(1)
	go func() {
		defer scanWg.Done()
		scanner := bufio.NewScanner(stderr)
		for scanner.Scan() {
			echo(scanner.Text())
		}
	}()

	// Drain both pipes before Wait: Wait closes them once the command
	// exits, and closing while the scanners are mid-read drops
	// whatever tail output is still buffered.
	scanWg.Wait()
	err = cmd.Wait()

	res := Result{Stdout: outputBuilder.String()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		return res, fmt.Errorf("running %s: %w", name, err)
	}
	return res, nil
}
