package services_test

import (
	"errors"
	"io/fs"
	"strings"
	"testing"

	"vqasset/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrConfiguration, "asset test_ref", "ref_width_height", "missing keys", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"asset test_ref", "ref_width_height", "missing keys"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsDetail(t *testing.T) {
	err := services.Wrap(nil, " ", "", "", nil)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation marker for nil marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "unspecified failure") {
		t.Fatalf("expected default detail, got %q", err.Error())
	}
}

func TestExitCodeMapping(t *testing.T) {
	configErr := services.Wrap(services.ErrConfiguration, "dataset", "load", "invalid", nil)
	if code := services.ExitCode(configErr); code != services.ExitConfiguration {
		t.Fatalf("expected configuration exit code, got %d", code)
	}

	ioErr := services.Wrap(services.ErrIO, "asset", "bitrate", "stat failed", fs.ErrNotExist)
	if code := services.ExitCode(ioErr); code != services.ExitIO {
		t.Fatalf("expected io exit code, got %d", code)
	}

	if code := services.ExitCode(errors.New("plain")); code != services.ExitFailure {
		t.Fatalf("expected generic failure code, got %d", code)
	}
	if code := services.ExitCode(nil); code != 0 {
		t.Fatalf("expected zero for nil error, got %d", code)
	}
}
