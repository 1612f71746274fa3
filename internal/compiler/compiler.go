// Package compiler wraps the opaque stylesheet compiler behind a small
// interface. The pipeline never interprets the source language itself; it
// hands raw bytes to a Compiler and gets CSS or a CompileError back.
package compiler

import (
	"context"
)

// Compiler turns stylesheet source bytes into CSS bytes. Implementations
// return *apperr.CompileError when the source is rejected; any other error
// means the compiler itself could not run.
type Compiler interface {
	Compile(ctx context.Context, src []byte) ([]byte, error)
}

// Func adapts an in-process compile function to the Compiler interface.
type Func func(src []byte) ([]byte, error)

// Compile implements Compiler.
func (f Func) Compile(_ context.Context, src []byte) ([]byte, error) {
	return f(src)
}
