package tasks

import (
	"fmt"
	"runtime"
)

// panicStackSize bounds the stack capture on panic recovery.
// runtime.Stack truncates gracefully if the buffer is too small.
const panicStackSize = 8 << 10

// PanicError wraps a value recovered from a panicking operation together
// with the goroutine stack captured at the point of the panic. A recovered
// panic settles as an error and routes to OnError; it never unwinds into
// the scheduler.
type PanicError struct {
	Value any    // original value passed to panic
	Stack string // goroutine stack trace at the point of panic
}

// Error returns the panic value and the captured stack.
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v\n\n%s", e.Value, e.Stack)
}

// Unwrap returns nil; a panic value is not an error chain.
func (e *PanicError) Unwrap() error { return nil }

func newPanicError(v any) *PanicError {
	buf := make([]byte, panicStackSize)
	n := runtime.Stack(buf, false)
	return &PanicError{Value: v, Stack: string(buf[:n])}
}
