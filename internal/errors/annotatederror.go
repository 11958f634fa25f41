// Package errors is a drop-in replacement for the standard library errors package that annotates errors with
// structured log attributes and the source location where they were wrapped.
package errors

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"runtime"
	"strconv"
	"strings"
)

// annotatedError carries a message, the wrapped cause, slog attributes, and the program counter of the wrap site.
type annotatedError struct {
	msg   string
	cause error
	attrs []slog.Attr
	pc    uintptr
}

func (e *annotatedError) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return e.msg + ": " + e.cause.Error()
}

func (e *annotatedError) Unwrap() error {
	return e.cause
}

// sentinelError is a comparable error value without a stack.
type sentinelError struct {
	msg string
}

func (e *sentinelError) Error() string {
	return e.msg
}

// NewSentinel creates a package-level sentinel error meant to be compared with [Is].
func NewSentinel(msg string) error {
	return &sentinelError{msg: msg}
}

// New creates an error that remembers where it was created.
func New(msg string, attrs ...slog.Attr) error {
	return &annotatedError{msg: msg, cause: nil, attrs: attrs, pc: callerPC(3)} //nolint:mnd // skip New and Callers.
}

// Wrap annotates err with msg and attrs. Wrap returns nil when err is nil.
func Wrap(err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	return &annotatedError{msg: msg, cause: err, attrs: attrs, pc: callerPC(3)} //nolint:mnd // skip Wrap and Callers.
}

// DecoratePanic converts a value returned by recover into an error pointing at the panic site.
func DecoratePanic(recovered any) error {
	if recovered == nil {
		return nil
	}
	var cause error
	if err, ok := recovered.(error); ok {
		cause = err
	} else {
		cause = NewSentinel(fmt.Sprint(recovered))
	}
	return &annotatedError{msg: "panic", cause: cause, attrs: nil, pc: panicPC()}
}

func callerPC(skip int) uintptr {
	var pcs [1]uintptr
	if runtime.Callers(skip, pcs[:]) == 0 {
		return 0
	}
	return pcs[0]
}

// panicPC finds the frame that called panic by looking for the first frame after runtime.gopanic.
func panicPC() uintptr {
	const depth = 32
	pcs := make([]uintptr, depth)
	n := runtime.Callers(2, pcs) //nolint:mnd // skip Callers and panicPC.
	frames := runtime.CallersFrames(pcs[:n])
	afterPanic := false
	for {
		frame, more := frames.Next()
		if afterPanic && !strings.HasPrefix(frame.Function, "runtime.") {
			// Frame.PC points inside the call instruction while CallersFrames expects a return address.
			return frame.PC + 1
		}
		if frame.Function == "runtime.gopanic" {
			afterPanic = true
		}
		if !more {
			break
		}
	}
	return callerPC(4) //nolint:mnd // the caller of DecoratePanic.
}

// SlogError converts err into a structured slog attribute containing the message, the annotations collected from
// the whole chain, and the source location of the innermost annotated error.
func SlogError(err error) slog.Attr {
	if err == nil {
		return slog.Any("error", nil)
	}

	var (
		annotations []any
		pc          uintptr
	)
	for _, ae := range collect(err) {
		for _, a := range ae.attrs {
			annotations = append(annotations, a)
		}
		if ae.pc != 0 {
			pc = ae.pc
		}
	}

	attrs := []any{slog.String("message", err.Error())}
	if len(annotations) > 0 {
		attrs = append(attrs, slog.Group("annotations", annotations...))
	}
	if pc != 0 {
		frames := runtime.CallersFrames([]uintptr{pc})
		frame, _ := frames.Next()
		attrs = append(attrs, slog.String("source", frame.File+":"+strconv.Itoa(frame.Line)))
	}
	return slog.Group("error", attrs...)
}

// collect walks the error tree depth first and returns the annotated errors from outermost to innermost.
func collect(err error) []*annotatedError {
	var out []*annotatedError
	var walk func(error)
	walk = func(e error) {
		if e == nil {
			return
		}
		if ae, ok := e.(*annotatedError); ok { //nolint:errorlint // we walk the tree manually.
			out = append(out, ae)
		}
		switch u := e.(type) { //nolint:errorlint // we walk the tree manually.
		case interface{ Unwrap() []error }:
			for _, child := range u.Unwrap() {
				walk(child)
			}
		case interface{ Unwrap() error }:
			walk(u.Unwrap())
		}
	}
	walk(err)
	return out
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// Unwrap returns the result of calling the Unwrap method on err.
func Unwrap(err error) error {
	return stderrors.Unwrap(err)
}

// Join returns an error that wraps the given errors.
func Join(errs ...error) error {
	return stderrors.Join(errs...)
}
