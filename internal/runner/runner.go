// Package runner executes external minifier processes, such as the Java based
// Closure Compiler and YUI Compressor. Content is written to the process stdin
// and the minified result is read back from stdout.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultMaxBuffer is the stdout limit used when none is configured.
const DefaultMaxBuffer = 1000 * 1024

type config struct {
	maxBuffer int
	timeout   time.Duration
	env       []string
}

// Option configures a single Run.
type Option func(*config)

// WithMaxBuffer limits how many bytes the process may write to stdout.
func WithMaxBuffer(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxBuffer = n
		}
	}
}

// WithTimeout kills the process when it runs longer than d.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		c.timeout = d
	}
}

// WithEnv adds KEY=value entries to the process environment.
func WithEnv(env ...string) Option {
	return func(c *config) {
		c.env = append(c.env, env...)
	}
}

// Run starts command with args, writes data to its stdin and returns what it
// wrote to stdout.
func Run(ctx context.Context, command string, args []string, data []byte, opts ...Option) (string, error) {
	cfg := &config{maxBuffer: DefaultMaxBuffer}
	for _, opt := range opts {
		opt(cfg)
	}

	if err := validateCommand(command); err != nil {
		return "", err
	}
	if err := validateArgs(args); err != nil {
		return "", err
	}

	if cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.timeout)
		defer cancel()
	}

	startTime := time.Now()

	stdout := &limitedBuffer{limit: cfg.maxBuffer}
	var stderr bytes.Buffer

	// #nosec G204 - command and arguments validated above, no shell involved
	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Stdin = bytes.NewReader(data)
	cmd.Stdout = stdout
	cmd.Stderr = &stderr
	if len(cfg.env) > 0 {
		cmd.Env = append(cmd.Environ(), cfg.env...)
	}

	err := cmd.Run()

	zerolog.Ctx(ctx).Debug().
		Str("command", command).
		Int("stdin_bytes", len(data)).
		Int("stdout_bytes", stdout.Len()).
		Dur("duration", time.Since(startTime)).
		Msg("Process finished")

	switch {
	case stdout.exceeded:
		return "", fmt.Errorf("%w: %s wrote more than %d bytes", ErrMaxBuffer, command, cfg.maxBuffer)
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return "", fmt.Errorf("%w: %s after %s", ErrTimeout, command, cfg.timeout)
	case err != nil:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", &ExitError{
				Command: command,
				Code:    exitErr.ExitCode(),
				Stderr:  strings.TrimSpace(stderr.String()),
			}
		}
		return "", fmt.Errorf("failed to run %s: %w", command, err)
	}

	return stdout.String(), nil
}

// limitedBuffer fails writes once more than limit bytes were received, which
// makes exec stop copying and the process see a broken pipe. The buffer is a
// named field so io.Copy cannot bypass Write through bytes.Buffer.ReadFrom.
type limitedBuffer struct {
	buf      bytes.Buffer
	limit    int
	exceeded bool
}

func (b *limitedBuffer) Write(p []byte) (int, error) {
	if b.buf.Len()+len(p) > b.limit {
		b.exceeded = true
		return 0, ErrMaxBuffer
	}
	return b.buf.Write(p)
}

func (b *limitedBuffer) Len() int {
	return b.buf.Len()
}

func (b *limitedBuffer) String() string {
	return b.buf.String()
}
