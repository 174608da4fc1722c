package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNotFoundCarriesEntity(t *testing.T) {
	err := NotFound("photo", "p1")
	if !IsNotFound(err) {
		t.Error("NotFound not classified as not-found")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Error("NotFound does not unwrap to the sentinel")
	}
	if got := err.Error(); got == "" || got == ErrNotFound.Error() {
		t.Errorf("message lost entity detail: %q", got)
	}
}

func TestTransientWrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Transient(cause)
	if !IsTransient(err) {
		t.Error("Transient not classified as transient")
	}
	if !errors.Is(err, cause) {
		t.Error("cause not reachable through the wrap")
	}
}

func TestClassifiersAreDisjoint(t *testing.T) {
	cases := []struct {
		err        error
		notFound   bool
		invalidArg bool
		transient  bool
	}{
		{NotFound("photo", "x"), true, false, false},
		{InvalidArgument("bad kind"), false, true, false},
		{Transient(errors.New("down")), false, false, true},
		{fmt.Errorf("wrapped: %w", ErrNotFound), true, false, false},
		{errors.New("plain"), false, false, false},
		{nil, false, false, false},
	}
	for _, tc := range cases {
		if IsNotFound(tc.err) != tc.notFound {
			t.Errorf("IsNotFound(%v) = %v", tc.err, !tc.notFound)
		}
		if IsInvalidArgument(tc.err) != tc.invalidArg {
			t.Errorf("IsInvalidArgument(%v) = %v", tc.err, !tc.invalidArg)
		}
		if IsTransient(tc.err) != tc.transient {
			t.Errorf("IsTransient(%v) = %v", tc.err, !tc.transient)
		}
	}
}
