package kafka

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{name: "nil", err: nil, want: ErrorTypeUnknown},
		{name: "explicit transient", err: NewTransientError("publish", errors.New("boom")), want: ErrorTypeTransient},
		{name: "explicit permanent", err: NewPermanentError("decode", errors.New("boom")), want: ErrorTypePermanent},
		{name: "wrapped transient", err: fmt.Errorf("outer: %w", NewTransientError("publish", nil)), want: ErrorTypeTransient},
		{name: "deadline", err: fmt.Errorf("write: %w", context.DeadlineExceeded), want: ErrorTypeTransient},
		{name: "connection refused text", err: errors.New("dial tcp: Connection Refused"), want: ErrorTypeTransient},
		{name: "unknown text", err: errors.New("something odd"), want: ErrorTypePermanent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyError(tt.err); got != tt.want {
				t.Errorf("ClassifyError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShouldRetry(t *testing.T) {
	transient := NewTransientError("publish", errors.New("timeout"))
	permanent := NewPermanentError("decode", errors.New("bad json"))

	if !ShouldRetry(transient, 0, 3) {
		t.Error("expected transient error to be retried")
	}
	if ShouldRetry(transient, 3, 3) {
		t.Error("expected retries to stop at the limit")
	}
	if ShouldRetry(permanent, 0, 3) {
		t.Error("expected permanent error not to be retried")
	}
	if ShouldRetry(nil, 0, 3) {
		t.Error("expected nil error not to be retried")
	}
}
