package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := New(ErrCodeInvalidScene, "zone %q missing size", "engine")
	want := `INVALID_SCENE: zone "engine" missing size`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("boom")
	err := Wrap(ErrCodeInternal, cause, "route edge %s", "w1")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match cause via errors.Is")
	}
	if !Is(err, ErrCodeInternal) {
		t.Error("Is should match the error code")
	}
	if Is(err, ErrCodeInvalidInput) {
		t.Error("Is should not match a different code")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeNodeNotFound, "missing")); got != ErrCodeNodeNotFound {
		t.Errorf("GetCode = %q", got)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode on plain error = %q, want empty", got)
	}
}

func TestGetCodeThroughWrapping(t *testing.T) {
	inner := New(ErrCodeInvalidZone, "bad zone")
	outer := fmt.Errorf("position: %w", inner)
	if got := GetCode(outer); got != ErrCodeInvalidZone {
		t.Errorf("GetCode through fmt wrap = %q", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidInput, "nodes are required")
	if got := UserMessage(err); got != "nodes are required" {
		t.Errorf("UserMessage = %q", got)
	}
	plain := stderrors.New("plain failure")
	if got := UserMessage(plain); got != "plain failure" {
		t.Errorf("UserMessage plain = %q", got)
	}
}
