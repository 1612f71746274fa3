package compiler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"github.com/starford/cascade/internal/apperr"
)

var (
	lineRe   = regexp.MustCompile(`(?i)\bline\s+(\d+)`)
	columnRe = regexp.MustCompile(`(?i)\bcolumn\s+(\d+)`)
)

// Command invokes an external compiler binary: source on stdin, CSS on
// stdout. A non-zero exit is treated as a source rejection and the stderr
// text becomes the CompileError diagnostic.
type Command struct {
	argv []string
}

// NewCommand builds a Command compiler from an argv. The binary must be
// resolvable on PATH.
func NewCommand(argv []string) (*Command, error) {
	if len(argv) == 0 {
		return nil, fmt.Errorf("compiler: empty command")
	}
	if _, err := exec.LookPath(argv[0]); err != nil {
		return nil, fmt.Errorf("compiler: %w", err)
	}
	return &Command{argv: argv}, nil
}

// Compile implements Compiler.
func (c *Command) Compile(ctx context.Context, src []byte) ([]byte, error) {
	cmd := exec.CommandContext(ctx, c.argv[0], c.argv[1:]...)
	cmd.Stdin = bytes.NewReader(src)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			// The process never ran.
			return nil, fmt.Errorf("compiler: run %s: %w", c.argv[0], err)
		}
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = err.Error()
		}
		cerr := &apperr.CompileError{Detail: detail}
		cerr.Line, cerr.Column = parsePosition(detail)
		return nil, cerr
	}
	return stdout.Bytes(), nil
}

// parsePosition scans a diagnostic for "line N" / "column M" markers, the
// common shape across lessc-style compilers. Zero means unavailable.
func parsePosition(detail string) (line, column int) {
	if m := lineRe.FindStringSubmatch(detail); m != nil {
		line, _ = strconv.Atoi(m[1])
	}
	if m := columnRe.FindStringSubmatch(detail); m != nil {
		column, _ = strconv.Atoi(m[1])
	}
	return line, column
}
