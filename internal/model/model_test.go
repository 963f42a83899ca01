package model_test

import (
	"testing"

	"hospital-appointment-api/internal/model"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{model.StatusPending, model.StatusConfirmed, true},
		{model.StatusPending, model.StatusCancelled, true},
		{model.StatusPending, model.StatusCompleted, false},
		{model.StatusConfirmed, model.StatusCompleted, true},
		{model.StatusConfirmed, model.StatusCancelled, true},
		{model.StatusConfirmed, model.StatusPending, false},
		{model.StatusCompleted, model.StatusCancelled, false},
		{model.StatusCancelled, model.StatusPending, false},
		{model.StatusCancelled, model.StatusConfirmed, false},
	}

	for _, tt := range tests {
		if got := model.CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	if !model.IsTerminal(model.StatusCompleted) || !model.IsTerminal(model.StatusCancelled) {
		t.Error("COMPLETED and CANCELLED should be terminal")
	}
	if model.IsTerminal(model.StatusPending) || model.IsTerminal(model.StatusConfirmed) {
		t.Error("PENDING and CONFIRMED should not be terminal")
	}
}
