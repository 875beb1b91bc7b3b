package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestDropError_Message(t *testing.T) {
	t.Parallel()

	err := NewDropError(ErrIdentifierCollision, "Fire hydrant", "kFireHydrant already declared")

	want := `identifier collision: "Fire hydrant": kFireHydrant already declared`
	if got := err.Error(); got != want {
		t.Fatalf("unexpected Error(): %q", got)
	}
}

func TestDropError_NoDetail(t *testing.T) {
	t.Parallel()

	err := NewDropError(ErrEmptyRule, "bench", "")

	if got := err.Error(); got != `empty rule: "bench"` {
		t.Fatalf("unexpected Error(): %q", got)
	}
}

func TestDropError_Unwrap(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("compile: %w", NewDropError(ErrEmptyCombination, "toilets", ""))
	if !errors.Is(err, ErrEmptyCombination) {
		t.Fatal("errors.Is(err, ErrEmptyCombination) = false")
	}

	var drop *DropError
	if !errors.As(err, &drop) {
		t.Fatal("errors.As(err, *DropError) = false")
	}
	if drop.NameSource != "toilets" {
		t.Fatalf("NameSource = %q, want %q", drop.NameSource, "toilets")
	}
}

func TestSentinelErrors_AreDistinct(t *testing.T) {
	t.Parallel()

	sentinels := []error{
		ErrStructural, ErrMalformedTagToken, ErrEmptyCombination,
		ErrEmptyRule, ErrIdentifierCollision,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel errors %d and %d should not match", i, j)
			}
		}
	}
}
