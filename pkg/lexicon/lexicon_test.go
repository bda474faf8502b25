package lexicon

import (
	"slices"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase unchanged", "water", "water"},
		{"uppercase folded", "Water", "water"},
		{"mixed case", "WaTeR", "water"},
		{"leading space", "  water", "water"},
		{"trailing space", "water  ", "water"},
		{"both", "  Water  ", "water"},
		{"empty", "", ""},
		{"only spaces", "   ", ""},
		{"internal space kept", "status quo", "status quo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestBuildNormalizesKeys(t *testing.T) {
	ix := Build(map[string]Entry{
		"  Water ": {Definition: "a clear liquid", RelatedWords: []string{"aqua"}},
		"AQUA":     {Definition: "water (Latin)", RelatedWords: []string{"water"}},
	})

	if ix.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", ix.Len())
	}

	e, ok := ix.Lookup("water")
	if !ok {
		t.Fatal("Lookup(water) not found")
	}
	if e.Definition != "a clear liquid" {
		t.Errorf("Definition = %q, want %q", e.Definition, "a clear liquid")
	}

	// Lookup normalizes its input too
	if _, ok := ix.Lookup("  WATER "); !ok {
		t.Error("Lookup should normalize the query")
	}
}

func TestBuildDuplicateKeysDeterministic(t *testing.T) {
	// "Water" and "water" collapse to the same canonical key. Raw keys are
	// taken in sorted order, so "Water" (uppercase sorts first) wins.
	ix := Build(map[string]Entry{
		"Water": {Definition: "first"},
		"water": {Definition: "second"},
	})

	if ix.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", ix.Len())
	}
	e, _ := ix.Lookup("water")
	if e.Definition != "first" {
		t.Errorf("Definition = %q, want %q", e.Definition, "first")
	}
}

func TestBuildDropsEmptyKeys(t *testing.T) {
	ix := Build(map[string]Entry{
		"   ":   {Definition: "blank"},
		"water": {Definition: "kept"},
	})
	if ix.Len() != 1 {
		t.Errorf("Len() = %d, want 1", ix.Len())
	}
}

func TestBuildCanonicalizesNilRelations(t *testing.T) {
	ix := Build(map[string]Entry{
		"water": {Definition: "no relations listed"},
	})

	e, ok := ix.Lookup("water")
	if !ok {
		t.Fatal("Lookup(water) should succeed")
	}
	if e.RelatedWords == nil {
		t.Error("RelatedWords should be an empty slice, not nil")
	}
	if len(e.RelatedWords) != 0 {
		t.Errorf("RelatedWords = %v, want empty", e.RelatedWords)
	}
}

func TestWordsSorted(t *testing.T) {
	ix := Build(map[string]Entry{
		"zebra": {},
		"apple": {},
		"mango": {},
	})

	words := ix.Words()
	want := []string{"apple", "mango", "zebra"}
	if !slices.Equal(words, want) {
		t.Errorf("Words() = %v, want %v", words, want)
	}

	// Mutating the returned slice must not affect the index
	words[0] = "mutated"
	if ix.Words()[0] != "apple" {
		t.Error("Words() should return a copy")
	}
}

func TestLookupMissing(t *testing.T) {
	ix := Build(map[string]Entry{"water": {}})
	if _, ok := ix.Lookup("ghost"); ok {
		t.Error("Lookup of missing word should return false")
	}
}

func TestFingerprint(t *testing.T) {
	a := Build(map[string]Entry{
		"water": {Definition: "a clear liquid", RelatedWords: []string{"aqua"}},
	})
	b := Build(map[string]Entry{
		"water": {Definition: "a clear liquid", RelatedWords: []string{"aqua"}},
	})
	c := Build(map[string]Entry{
		"water": {Definition: "a clear liquid", RelatedWords: []string{"hydro"}},
	})

	if a.Fingerprint() != b.Fingerprint() {
		t.Error("identical data should share a fingerprint")
	}
	if a.Fingerprint() == c.Fingerprint() {
		t.Error("different data should produce different fingerprints")
	}
	if len(a.Fingerprint()) != 64 {
		t.Errorf("fingerprint length = %d, want 64", len(a.Fingerprint()))
	}
}
