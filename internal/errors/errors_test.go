package apperrors

import (
	"context"
	"errors"
	"os"
	"testing"
)

func TestErrorMessages(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"config", ConfigError{Message: "threads must be at least 1"}, "threads must be at least 1"},
		{"config formatted", NewConfigError("invalid value %d for flag %s", 0, "--iterations"), "invalid value 0 for flag --iterations"},
		{"validation", ValidationError{Field: "precision", Message: "must be positive"}, `validation error for "precision": must be positive`},
		{"calculation", CalculationError{Cause: errors.New("reduction aborted")}, "reduction aborted"},
		{"calculation canceled", CalculationError{Cause: context.Canceled}, "context canceled"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorTypesAs(t *testing.T) {
	t.Parallel()

	var ce ConfigError
	if err := NewConfigError("unknown engine %q", "fft"); !errors.As(err, &ce) || ce.Message != `unknown engine "fft"` {
		t.Errorf("errors.As ConfigError: %+v", ce)
	}

	var ve ValidationError
	if err := error(ValidationError{Field: "engine", Message: "unknown engine"}); !errors.As(err, &ve) || ve.Field != "engine" {
		t.Errorf("errors.As ValidationError: %+v", ve)
	}

	cause := errors.New("worker panicked")
	calc := CalculationError{Cause: cause}
	if calc.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}
	if !errors.Is(CalculationError{Cause: context.Canceled}, context.Canceled) {
		t.Error("errors.Is should find context.Canceled through CalculationError")
	}
}

func TestResourceError(t *testing.T) {
	t.Parallel()
	cause := os.ErrNotExist
	tests := []struct {
		name     string
		err      ResourceError
		expected string
	}{
		{
			name:     "with cause",
			err:      ResourceError{Kind: ResourceReference, Path: "data/pi_one_mil.txt", Cause: cause},
			expected: `reference file "data/pi_one_mil.txt" unavailable: file does not exist`,
		},
		{
			name:     "without cause",
			err:      ResourceError{Kind: ResourceOutputFile, Path: "/ro/pi.txt"},
			expected: `output file "/ro/pi.txt" unavailable`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}

	wrapped := WrapError(ResourceError{Kind: ResourceReference, Path: "x", Cause: cause}, "verify")
	if !errors.Is(wrapped, os.ErrNotExist) {
		t.Error("errors.Is should find the I/O cause through ResourceError")
	}
	var re ResourceError
	if !errors.As(wrapped, &re) || re.Kind != ResourceReference {
		t.Error("errors.As should find ResourceError through WrapError")
	}
}

func TestErrorTypes_ErrorsAsWithWrapping(t *testing.T) {
	t.Parallel()

	t.Run("ValidationError wrapped with WrapError", func(t *testing.T) {
		t.Parallel()
		inner := ValidationError{Field: "iterations", Message: "must be at least 1"}
		err := WrapError(inner, "config check failed")

		var validationErr ValidationError
		if !errors.As(err, &validationErr) {
			t.Error("errors.As should find ValidationError through WrapError")
		}
		if !IsConfigError(err) {
			t.Error("IsConfigError should accept a wrapped ValidationError")
		}
	})

	t.Run("context error wrapped in CalculationError", func(t *testing.T) {
		t.Parallel()
		err := CalculationError{Cause: WrapError(context.Canceled, "worker 3")}
		if !IsContextError(err) {
			t.Error("IsContextError should see through CalculationError")
		}
		if IsConfigError(err) {
			t.Error("a calculation error is not a config error")
		}
	})
}

func TestWrapError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		original    error
		format      string
		args        []any
		expectedMsg string
		expectNil   bool
		checkIs     error
	}{
		{
			name:        "wraps error with context",
			original:    errors.New("permission denied"),
			format:      "failed to open reference",
			expectedMsg: "failed to open reference: permission denied",
		},
		{
			name:        "preserves error chain",
			original:    context.DeadlineExceeded,
			format:      "operation timed out",
			expectedMsg: "operation timed out: context deadline exceeded",
			checkIs:     context.DeadlineExceeded,
		},
		{
			name:      "returns nil for nil error",
			original:  nil,
			format:    "some context",
			expectNil: true,
		},
		{
			name:        "supports format arguments",
			original:    errors.New("connection reset"),
			format:      "failed to bind metrics %s:%d",
			args:        []any{"localhost", 9090},
			expectedMsg: "failed to bind metrics localhost:9090: connection reset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			wrapped := WrapError(tt.original, tt.format, tt.args...)

			if tt.expectNil {
				if wrapped != nil {
					t.Error("WrapError(nil, ...) should return nil")
				}
				return
			}

			if wrapped == nil {
				t.Fatal("wrapped error should not be nil")
			}

			if wrapped.Error() != tt.expectedMsg {
				t.Errorf("expected %q, got %q", tt.expectedMsg, wrapped.Error())
			}

			if tt.checkIs != nil && !errors.Is(wrapped, tt.checkIs) {
				t.Errorf("wrapped error should preserve %v in the chain", tt.checkIs)
			}
		})
	}
}

func TestIsContextError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"context.Canceled", context.Canceled, true},
		{"context.DeadlineExceeded", context.DeadlineExceeded, true},
		{"wrapped context.Canceled", WrapError(context.Canceled, "operation canceled"), true},
		{"regular error", errors.New("some error"), false},
		{"nil error", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result := IsContextError(tt.err)
			if result != tt.expected {
				t.Errorf("IsContextError(%v) = %v, expected %v", tt.err, result, tt.expected)
			}
		})
	}
}

func TestExitCodes(t *testing.T) {
	t.Parallel()
	// Verify exit codes are distinct and match expected values
	codes := map[string]int{
		"ExitSuccess":       ExitSuccess,
		"ExitErrorGeneric":  ExitErrorGeneric,
		"ExitErrorTimeout":  ExitErrorTimeout,
		"ExitErrorMismatch": ExitErrorMismatch,
		"ExitErrorConfig":   ExitErrorConfig,
		"ExitErrorCanceled": ExitErrorCanceled,
	}

	// Check expected values
	if ExitSuccess != 0 {
		t.Errorf("ExitSuccess should be 0, got %d", ExitSuccess)
	}
	if ExitErrorCanceled != 130 {
		t.Errorf("ExitErrorCanceled should be 130 (SIGINT convention), got %d", ExitErrorCanceled)
	}

	// Check all codes are unique
	seen := make(map[int]string)
	for name, code := range codes {
		if existing, ok := seen[code]; ok {
			t.Errorf("duplicate exit code %d: %s and %s", code, existing, name)
		}
		seen[code] = name
	}
}
