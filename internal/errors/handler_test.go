package apperrors

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

type mockColorProvider struct{}

func (mockColorProvider) Yellow() string { return "[YELLOW]" }
func (mockColorProvider) Red() string    { return "[RED]" }
func (mockColorProvider) Reset() string  { return "[RESET]" }

func TestHandleCalculationError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name         string
		err          error
		duration     time.Duration
		colors       ColorProvider
		expectedCode int
		expectedMsg  string
	}{
		{
			name:         "no error",
			expectedCode: ExitSuccess,
		},
		{
			name:         "timeout",
			err:          context.DeadlineExceeded,
			duration:     time.Second,
			colors:       mockColorProvider{},
			expectedCode: ExitErrorTimeout,
			expectedMsg:  "Status: Failure (Timeout). The execution limit was reached after [YELLOW]1s[RESET].",
		},
		{
			name:         "canceled",
			err:          fmt.Errorf("forward transform: %w", context.Canceled),
			duration:     500 * time.Millisecond,
			colors:       mockColorProvider{},
			expectedCode: ExitErrorCanceled,
			expectedMsg:  "[YELLOW]Status: Canceled after [YELLOW]500ms[RESET].[RESET]",
		},
		{
			name:         "capacity",
			err:          CapacityError{Kind: CapacityOperand, Requested: 12, Limit: 10},
			colors:       mockColorProvider{},
			expectedCode: ExitErrorCapacity,
			expectedMsg:  "[RED]Status: Rejected. Operands too large: operand capacity exceeded: requested 12, limit 10[RESET]",
		},
		{
			name:         "validation",
			err:          ValidationError{Field: "a", Message: "must contain only decimal digits"},
			expectedCode: ExitErrorConfig,
			expectedMsg:  `Status: Invalid input. validation error for "a": must contain only decimal digits`,
		},
		{
			name:         "generic",
			err:          errors.New("random error"),
			expectedCode: ExitErrorGeneric,
			expectedMsg:  "Status: Failure. An unexpected error occurred: random error",
		},
		{
			name:         "default colors",
			err:          context.DeadlineExceeded,
			duration:     time.Second,
			expectedCode: ExitErrorTimeout,
			expectedMsg:  "Status: Failure (Timeout). The execution limit was reached after 1s.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			code := HandleCalculationError(tt.err, tt.duration, &buf, tt.colors)
			if code != tt.expectedCode {
				t.Errorf("exit code = %d, want %d", code, tt.expectedCode)
			}
			if got := strings.TrimSpace(buf.String()); got != tt.expectedMsg {
				t.Errorf("message = %q, want %q", got, tt.expectedMsg)
			}
		})
	}
}

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		err  error
		want int
	}{
		{nil, ExitSuccess},
		{NewConfigError("bad flag"), ExitErrorConfig},
		{WrapError(CapacityError{Kind: CapacityTransform}, "plan"), ExitErrorCapacity},
		{CalculationError{Cause: context.DeadlineExceeded}, ExitErrorTimeout},
		{errors.New("boom"), ExitErrorGeneric},
	}
	for _, tt := range tests {
		if got := ExitCodeFor(tt.err); got != tt.want {
			t.Errorf("ExitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
