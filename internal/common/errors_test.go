package common

import (
	"errors"
	"testing"
)

func TestErrorKinds(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
	}{
		{"validation", Invalid("toss.team_id", "team %d is not in this match", 9), ErrValidation},
		{"not found", NotFound("match", 4), ErrNotFound},
		{"storage", Storage("fetch match", errors.New("connection refused")), ErrStorage},
		{"conflict", Conflict("innings %d is complete", 2), ErrStateConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.kind) {
				t.Errorf("errors.Is(%v, %v) = false", tt.err, tt.kind)
			}
			for _, other := range []error{ErrValidation, ErrNotFound, ErrStorage, ErrStateConflict} {
				if other != tt.kind && errors.Is(tt.err, other) {
					t.Errorf("%v also matches %v", tt.err, other)
				}
			}
		})
	}
}

func TestValidationErrorField(t *testing.T) {
	var ve *ValidationError
	if !errors.As(Invalid("team1_xi", "too many players"), &ve) {
		t.Fatal("errors.As failed")
	}
	if ve.Field != "team1_xi" {
		t.Errorf("Field = %q", ve.Field)
	}
	if got := ve.Error(); got != "team1_xi: too many players" {
		t.Errorf("Error() = %q", got)
	}
}
