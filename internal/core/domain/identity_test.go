package domain_test

import (
	"errors"
	"testing"

	"go.trai.ch/sift/internal/core/domain"
)

func TestCaseIdentity_String(t *testing.T) {
	id := domain.CaseIdentity{
		RelPath:     "specs/calc_spec.go",
		Contexts:    []string{"calculator", "addition"},
		Description: "adds two numbers",
	}

	want := "specs/calc_spec.go:calculator/addition/adds two numbers"
	if got := id.String(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestCaseIdentity_String_NoContexts(t *testing.T) {
	id := domain.CaseIdentity{
		RelPath:     "calc_spec.go",
		Description: "standalone",
	}

	if got := id.String(); got != "calc_spec.go:standalone" {
		t.Errorf("unexpected identity: %q", got)
	}
}

func TestParseCaseIdentity_RoundTrip(t *testing.T) {
	original := domain.CaseIdentity{
		RelPath:     "specs/calc_spec.go",
		Contexts:    []string{"calculator", "addition"},
		Description: "adds two numbers",
	}

	parsed, err := domain.ParseCaseIdentity(original.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !parsed.Equal(original) {
		t.Errorf("round trip changed identity: %+v != %+v", parsed, original)
	}
}

func TestParseCaseIdentity_Invalid(t *testing.T) {
	for _, input := range []string{"", "no-separator", ":missing-path", "path.go:"} {
		if _, err := domain.ParseCaseIdentity(input); !errors.Is(err, domain.ErrInvalidIdentity) {
			t.Errorf("input %q: expected ErrInvalidIdentity, got %v", input, err)
		}
	}
}

func TestCaseIdentity_Equal(t *testing.T) {
	a := domain.CaseIdentity{RelPath: "a.go", Contexts: []string{"x"}, Description: "d"}
	b := domain.CaseIdentity{RelPath: "a.go", Contexts: []string{"x"}, Description: "d"}
	c := domain.CaseIdentity{RelPath: "a.go", Contexts: []string{"y"}, Description: "d"}

	if !a.Equal(b) {
		t.Error("expected identical identities to be equal")
	}
	if a.Equal(c) {
		t.Error("expected identities with different contexts to differ")
	}
}

func TestNormalizePath(t *testing.T) {
	if got := domain.NormalizePath("specs/calc_spec.go"); got != "specs/calc_spec.go" {
		t.Errorf("forward-slash path changed: %q", got)
	}
}
