package errors_test

import (
	"bytes"
	"fmt"
	"log/slog"
	"runtime"
	"strconv"
	"strings"
	"testing"

	"github.com/myrjola/fitcoach/internal/errors"
	"github.com/myrjola/fitcoach/internal/testhelpers"
)

var errUnknownGoal = errors.NewSentinel("unknown goal")

type validationError struct {
	field string
}

func (e *validationError) Error() string {
	return e.field + " is out of range"
}

// line returns the caller's line number.
func line() int {
	_, _, n, _ := runtime.Caller(1)
	return n
}

func logLine(err error) string {
	var buf bytes.Buffer
	testhelpers.NewLogger(&buf).Info("test", errors.SlogError(err))
	return buf.String()
}

func TestError_messages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "sentinel", err: errUnknownGoal, want: "unknown goal"},
		{name: "new", err: errors.New("empty plan", slog.Int("days", 0)), want: "empty plan"},
		{
			name: "wrapped",
			err:  errors.Wrap(errUnknownGoal, "generate plan", slog.String("goal", "Yoga")),
			want: "generate plan: unknown goal",
		},
		{
			name: "wrapped twice",
			err:  errors.Wrap(errors.Wrap(errUnknownGoal, "generate plan"), "save profile"),
			want: "save profile: generate plan: unknown goal",
		},
		{name: "wrap nil", err: errors.Wrap(nil, "nothing happened"), want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.want == "" {
				if tt.err != nil {
					t.Errorf("got %v, want nil", tt.err)
				}
				return
			}
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsAs(t *testing.T) {
	err := errors.Wrap(fmt.Errorf("parse form: %w", errUnknownGoal), "save profile")
	if !errors.Is(err, errUnknownGoal) {
		t.Error("Is() = false through fmt.Errorf and Wrap")
	}
	if errors.Is(err, errors.NewSentinel("unknown goal")) {
		t.Error("sentinels with the same message must not match")
	}
	if got := errors.Unwrap(errors.Unwrap(err)); got != errUnknownGoal { //nolint:errorlint // identity check.
		t.Errorf("Unwrap() = %v, want the sentinel", got)
	}

	cause := &validationError{field: "height"}
	joined := errors.Join(errUnknownGoal, errors.Wrap(cause, "validate"))
	var target *validationError
	if !errors.As(joined, &target) || target != cause {
		t.Errorf("As() found %v, want %v", target, cause)
	}
}

func TestSlogError(t *testing.T) {
	inner := errors.Wrap(errUnknownGoal, "generate plan", slog.String("goal", "Yoga"))
	wrapLine := line() - 1
	err := errors.Wrap(inner, "save profile", slog.String("visitor", "v1"))

	got := logLine(err)
	for _, want := range []string{
		`error.message="save profile: generate plan: unknown goal"`,
		"error.annotations.visitor=v1",
		"error.annotations.goal=Yoga",
		"annotatederror_test.go:" + strconv.Itoa(wrapLine),
	} {
		if !strings.Contains(got, want) {
			t.Errorf("log line %q does not contain %q", got, want)
		}
	}
	if strings.Contains(got, "annotatederror.go") {
		t.Errorf("source points into the errors package: %s", got)
	}

	// None of these may panic.
	for _, err := range []error{
		nil,
		errUnknownGoal,
		errors.Join(nil, nil),
		errors.Join(errUnknownGoal, errors.New("second")),
		fmt.Errorf("plain: %w", errUnknownGoal),
		errors.Wrap(errors.Join(nil, errUnknownGoal), "wrap join"),
	} {
		_ = logLine(err)
	}
}

func TestDecoratePanic(t *testing.T) {
	if errors.DecoratePanic(nil) != nil {
		t.Error("DecoratePanic(nil) should be nil")
	}

	var panicLine int
	defer func() {
		err := errors.DecoratePanic(recover())
		if err == nil {
			t.Fatal("expected an error")
		}
		if got, want := err.Error(), "panic: catalog is empty"; got != want {
			t.Errorf("Error() = %q, want %q", got, want)
		}
		if got, want := logLine(err), "annotatederror_test.go:"+strconv.Itoa(panicLine); !strings.Contains(got, want) {
			t.Errorf("log line %q does not contain %q", got, want)
		}
	}()
	panicLine = line() + 1
	panic("catalog is empty")
}
