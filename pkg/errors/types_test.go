package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeNoProvider, "no roving group in context")

	if err.Code != ErrCodeNoProvider {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeNoProvider)
	}
	if err.Message != "no roving group in context" {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Underlying != nil {
		t.Error("Underlying should be nil for New error")
	}
	if len(err.Stack) == 0 {
		t.Error("Stack should be captured")
	}
}

func TestWrap(t *testing.T) {
	underlying := errors.New("permission denied")
	err := Wrap(underlying, ErrCodeConfigLoad, "reading config")

	if err.Underlying != underlying {
		t.Error("Underlying should be preserved")
	}
	if !errors.Is(err, underlying) {
		t.Error("errors.Is should see the underlying error")
	}
	if !strings.Contains(err.Error(), "permission denied") {
		t.Errorf("Error() = %q, want underlying message", err.Error())
	}
}

func TestWrap_Nil(t *testing.T) {
	if err := Wrap(nil, ErrCodeInternal, "test"); err != nil {
		t.Errorf("Wrap(nil) = %v, want nil", err)
	}
}

func TestError_ContextIsSorted(t *testing.T) {
	err := New(ErrCodeConfigInvalid, "bad keymap").
		WithContext("orientation", "diagonal").
		WithContext("file", "config.yaml")

	want := "[CONFIG_INVALID] bad keymap {file: config.yaml, orientation: diagonal}"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestIsCode_ThroughWrapping(t *testing.T) {
	inner := New(ErrCodeConfigParse, "yaml")
	outer := fmt.Errorf("loading project config: %w", inner)

	if !IsCode(outer, ErrCodeConfigParse) {
		t.Error("IsCode should find a wrapped coded error")
	}
	if IsCode(outer, ErrCodeConfigLoad) {
		t.Error("IsCode matched the wrong code")
	}
	if IsCode(nil, ErrCodeConfigParse) {
		t.Error("IsCode(nil) should be false")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(nil); got != "" {
		t.Errorf("GetCode(nil) = %q", got)
	}
	if got := GetCode(errors.New("plain")); got != ErrCodeInternal {
		t.Errorf("GetCode(plain) = %q, want INTERNAL", got)
	}
	if got := GetCode(New(ErrCodeBackendInit, "tty")); got != ErrCodeBackendInit {
		t.Errorf("GetCode = %q, want BACKEND_INIT", got)
	}
}

func TestDisplay(t *testing.T) {
	err := New(ErrCodeBackendInit, "open tty").
		WithUserMessage("roving needs an interactive terminal").
		WithRemediation("run it directly, not through a pipe")

	got := err.Display()
	if !strings.HasPrefix(got, "roving needs an interactive terminal") {
		t.Errorf("Display() = %q", got)
	}
	if !strings.Contains(got, "- run it directly") {
		t.Errorf("Display() missing remediation: %q", got)
	}

	plain := New(ErrCodeInternal, "boom")
	if plain.Display() != plain.Error() {
		t.Errorf("Display() without user message should equal Error()")
	}
}

func TestStackTrace(t *testing.T) {
	err := New(ErrCodeInternal, "boom")
	if !strings.HasPrefix(err.StackTrace(), "Stack trace:\n") {
		t.Errorf("StackTrace() = %q", err.StackTrace())
	}
}
