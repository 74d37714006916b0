package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestError_Format(t *testing.T) {
	err := New(ErrCodeProjectNotFound, "project not found")
	if got := err.Error(); got != "[PRJ_001] project not found" {
		t.Errorf("Error() = %q", got)
	}

	withDetail := err.WithDetail("id=1551")
	if got := withDetail.Error(); got != "[PRJ_001] project not found: id=1551" {
		t.Errorf("Error() with detail = %q", got)
	}
	// WithDetail must not mutate the original.
	if err.Detail != "" {
		t.Errorf("WithDetail mutated receiver: %q", err.Detail)
	}
}

func TestWrap_PreservesChain(t *testing.T) {
	root := stderrors.New("connection refused")
	wrapped := Wrap(root, ErrCodeCacheError, "failed to load snapshot")

	if !stderrors.Is(wrapped, root) {
		t.Error("errors.Is should find the root cause through Wrap")
	}
	if got := GetCode(wrapped); got != ErrCodeCacheError {
		t.Errorf("GetCode = %s, want %s", got, ErrCodeCacheError)
	}
}

func TestWrap_NilReturnsNil(t *testing.T) {
	if Wrap(nil, ErrCodeInternal, "ignored") != nil {
		t.Error("Wrap(nil, ...) should return nil")
	}
}

func TestWrap_InternalPreservesDomainCode(t *testing.T) {
	inner := New(ErrCodeBudgetNotFound, "no budget")
	outer := Wrap(inner, ErrCodeInternal, "while building report")
	if got := outer.Code; got != ErrCodeBudgetNotFound {
		t.Errorf("Wrap with ErrCodeInternal should keep inner code, got %s", got)
	}
}

func TestClassifiers(t *testing.T) {
	tests := []struct {
		err  error
		pred func(error) bool
		want bool
	}{
		{New(ErrCodeProjectNotFound, "x"), IsNotFound, true},
		{New(ErrCodeBudgetNotFound, "x"), IsNotFound, true},
		{New(ErrCodeValidation, "x"), IsNotFound, false},
		{New(ErrCodeForecastInvalidMethod, "x"), IsValidation, true},
		{New(ErrCodeUnknownRole, "x"), IsValidation, true},
		{New(ErrCodeConflict, "x"), IsConflict, true},
		{New(ErrCodeMailDeliveryFailed, "x"), IsUnavailable, true},
		{fmt.Errorf("plain"), IsNotFound, false},
	}
	for i, tt := range tests {
		if got := tt.pred(tt.err); got != tt.want {
			t.Errorf("case %d: predicate(%v) = %v, want %v", i, tt.err, got, tt.want)
		}
	}
}

func TestHTTPStatusForCode(t *testing.T) {
	if got := HTTPStatusForCode(ErrCodeProjectNotFound); got != http.StatusNotFound {
		t.Errorf("ErrCodeProjectNotFound → %d, want 404", got)
	}
	if got := HTTPStatusForCode(ErrCodeForecastInvalidMethod); got != http.StatusBadRequest {
		t.Errorf("ErrCodeForecastInvalidMethod → %d, want 400", got)
	}
	if got := HTTPStatusForCode(ErrorCode("BOGUS_999")); got != http.StatusInternalServerError {
		t.Errorf("unknown code → %d, want 500", got)
	}
	if !IsClientError(ErrCodeValidation) || IsServerError(ErrCodeValidation) {
		t.Error("ErrCodeValidation should classify as client error")
	}
	if !IsServerError(ErrCodeReportBuildFailed) {
		t.Error("ErrCodeReportBuildFailed should classify as server error")
	}
}

func TestStackCapture(t *testing.T) {
	err := New(ErrCodeInternal, "boom")
	if !strings.Contains(err.Stack, "errors_test.go") {
		t.Errorf("stack should contain the creation site, got %q", err.Stack)
	}
}
