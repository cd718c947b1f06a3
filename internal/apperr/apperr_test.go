package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/SajeelSafdar99/mockupgenerator-be/internal/apperr"
)

func TestHTTPStatus(t *testing.T) {
	cases := map[apperr.Kind]int{
		apperr.Validation:   http.StatusBadRequest,
		apperr.Unauthorized: http.StatusUnauthorized,
		apperr.Forbidden:    http.StatusForbidden,
		apperr.NotFound:     http.StatusNotFound,
		apperr.Conflict:     http.StatusConflict,
		apperr.Internal:     http.StatusInternalServerError,
	}
	for kind, want := range cases {
		if got := apperr.New(kind, "x").HTTPStatus(); got != want {
			t.Errorf("kind %d: status = %d, want %d", kind, got, want)
		}
	}
}

func TestFrom(t *testing.T) {
	orig := apperr.New(apperr.NotFound, "missing")
	wrapped := fmt.Errorf("outer: %w", orig)
	if got := apperr.From(wrapped); got != orig {
		t.Errorf("From did not unwrap to the original *Error")
	}

	plain := errors.New("boom")
	e := apperr.From(plain)
	if e.Kind != apperr.Internal {
		t.Errorf("unknown error kind = %d, want Internal", e.Kind)
	}
	if !errors.Is(e, plain) {
		t.Error("cause not preserved")
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	e := apperr.Wrap(apperr.Internal, "Internal server error", cause)
	if !errors.Is(e, cause) {
		t.Error("Wrap lost the cause chain")
	}
	if e.Error() != "Internal server error: disk full" {
		t.Errorf("Error() = %q", e.Error())
	}
}
