package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	err := New(CodeRoundNotFound, "round missing")
	target := New(CodeRoundNotFound, "different message")

	if !stderrors.Is(err, target) {
		t.Fatal("expected errors with the same code to match")
	}

	other := New(CodeRoundIDEmpty, "round missing")
	if stderrors.Is(err, other) {
		t.Fatal("expected errors with different codes not to match")
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("boom")
	err := Wrap(CodeUnknown, "wrapped", cause)

	if !stderrors.Is(err, cause) {
		t.Fatal("expected wrapped cause to be found in chain")
	}
	if err.Error() != "wrapped" {
		t.Fatalf("expected message %q, got %q", "wrapped", err.Error())
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{
			name: "domain error",
			err:  New(CodeClientSeedEmpty, "client seed is required"),
			want: CodeClientSeedEmpty,
		},
		{
			name: "wrapped domain error",
			err:  fmt.Errorf("outer: %w", New(CodeRoundNotFound, "missing")),
			want: CodeRoundNotFound,
		},
		{
			name: "plain error",
			err:  stderrors.New("plain"),
			want: CodeUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Fatalf("expected code %q, got %q", tt.want, got)
			}
		})
	}
}

func TestHTTPStatusMapping(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeRoundIDEmpty, http.StatusBadRequest},
		{CodeClientSeedEmpty, http.StatusBadRequest},
		{CodeSequenceNegative, http.StatusBadRequest},
		{CodeEntryValueInvalid, http.StatusBadRequest},
		{CodeRequestBodyInvalid, http.StatusBadRequest},
		{CodeRoundNotFound, http.StatusNotFound},
		{CodeUnknown, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := tt.code.HTTPStatus(); got != tt.want {
			t.Fatalf("code %s: expected status %d, got %d", tt.code, tt.want, got)
		}
	}
}
