package commonerrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestDomainError_WithCause(t *testing.T) {
	base := NewDomainError("TEST_FAILED", CategoryInternal, 500, "something broke")
	cause := errors.New("connection reset")

	withCause := base.WithCause(cause)

	if withCause == base {
		t.Error("expected WithCause to return a copy")
	}
	if !errors.Is(withCause, cause) {
		t.Error("expected the cause to be reachable through Unwrap")
	}
	if withCause.Message() != "something broke" {
		t.Errorf("unexpected message: %q", withCause.Message())
	}
	if withCause.Error() != "something broke: connection reset" {
		t.Errorf("unexpected error string: %q", withCause.Error())
	}
	if base.Unwrap() != nil {
		t.Error("expected the base error to stay untouched")
	}
}

func TestDomainError_WithTraceID(t *testing.T) {
	base := NewDomainError("TEST_FAILED", CategoryInternal, 500, "something broke")

	withTrace := base.WithTraceID("trace-123")

	if withTrace.TraceID() != "trace-123" {
		t.Errorf("unexpected trace id: %q", withTrace.TraceID())
	}
	if base.TraceID() != "" {
		t.Error("expected the base error to stay untouched")
	}
}

func TestAsDomainError_Wrapped(t *testing.T) {
	base := NewDomainError("TEST_FAILED", CategoryNotFound, 404, "missing")
	wrapped := fmt.Errorf("handler: %w", base)

	domainErr, ok := AsDomainError(wrapped)
	if !ok {
		t.Fatal("expected to find the domain error through the wrap chain")
	}
	if domainErr.Code() != "TEST_FAILED" || domainErr.HTTPStatus() != 404 {
		t.Errorf("unexpected domain error: code=%s status=%d", domainErr.Code(), domainErr.HTTPStatus())
	}

	if IsDomainError(errors.New("plain")) {
		t.Error("expected a plain error not to qualify")
	}
}
