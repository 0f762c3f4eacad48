package domain_test

import (
	"slices"
	"testing"

	"go.trai.ch/sift/internal/core/domain"
)

func specTree(roots ...*domain.SpecNode) *domain.SpecTree {
	return &domain.SpecTree{
		ModulePath: "/project/calc_spec.go",
		RelPath:    "calc_spec.go",
		Roots:      roots,
	}
}

func TestNewSnapshot_CapturesFingerprints(t *testing.T) {
	tree := specTree(&domain.SpecNode{
		Kind:        domain.KindContainer,
		Description: "calculator",
		Children: []*domain.SpecNode{
			{Kind: domain.KindCase, Description: "adds", Tags: []string{"unit", "fast"}, Focused: true},
			{Kind: domain.KindCase, Description: "subtracts", Pending: true},
		},
	})

	snap := domain.NewSnapshot(tree)

	if snap.Dynamic {
		t.Error("static tree must not produce a dynamic snapshot")
	}

	ids := snap.Identities()
	want := []string{"calc_spec.go:calculator/adds", "calc_spec.go:calculator/subtracts"}
	if !slices.Equal(ids, want) {
		t.Fatalf("expected identities %v, got %v", want, ids)
	}

	fp := snap.Entries["calc_spec.go:calculator/adds"]
	if fp.Description != "adds" || !fp.Focused {
		t.Errorf("unexpected fingerprint: %+v", fp)
	}
	// Tags are sorted so ordering differences do not read as modifications.
	if !slices.Equal(fp.Tags, []string{"fast", "unit"}) {
		t.Errorf("expected sorted tags, got %v", fp.Tags)
	}
}

func TestNewSnapshot_DynamicCase(t *testing.T) {
	tree := specTree(&domain.SpecNode{
		Kind:        domain.KindCase,
		Description: "[dynamic spec at line 3]",
		Dynamic:     true,
	})

	snap := domain.NewSnapshot(tree)
	if !snap.Dynamic {
		t.Fatal("expected snapshot with a dynamic case to be marked dynamic")
	}

	fp := snap.Entries["calc_spec.go:[dynamic spec at line 3]"]
	if fp.Description != "" {
		t.Errorf("dynamic placeholder description must not enter the fingerprint, got %q", fp.Description)
	}
}

func TestFingerprint_Equal(t *testing.T) {
	base := domain.Fingerprint{Description: "adds", Tags: []string{"fast"}}

	if !base.Equal(domain.Fingerprint{Description: "adds", Tags: []string{"fast"}}) {
		t.Error("expected identical fingerprints to be equal")
	}
	if base.Equal(domain.Fingerprint{Description: "adds", Tags: []string{"fast"}, Focused: true}) {
		t.Error("expected focus flip to change the fingerprint")
	}
	if base.Equal(domain.Fingerprint{Description: "adds", Tags: []string{"slow"}}) {
		t.Error("expected tag change to change the fingerprint")
	}
}
