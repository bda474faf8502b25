// Package lexicon provides the immutable word dictionary backing all queries.
//
// A word table maps canonical words to their definitions and related words.
// The table is loaded once from a [Source] (local file, HTTP, or MongoDB),
// normalized into an [Index], and never mutated afterward. That immutability
// is what makes the index safe for unbounded concurrent readers without any
// locking on the query path.
//
// Related-word lists may reference words absent from the index (dangling
// references). These are kept for display but never treated as errors and
// never traversed.
package lexicon

import (
	"crypto/sha256"
	"encoding/hex"
	"slices"
	"strings"
)

// Entry is one dictionary record: a definition plus the ordered list of
// etymologically related words.
type Entry struct {
	Definition   string   `json:"definition"`
	RelatedWords []string `json:"relatedWords"`
}

// Index is the immutable canonical-word → entry dictionary.
// Build it once with [Build]; all methods are safe for concurrent use.
type Index struct {
	entries     map[string]Entry
	words       []string
	fingerprint string
}

// Normalize converts a raw word to its canonical form: lower-cased and
// trimmed of surrounding whitespace. All lookups and traversals operate on
// canonical forms.
func Normalize(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// Build constructs an Index from raw word → entry pairs.
//
// Keys are normalized on the way in. When two raw keys collapse to the same
// canonical form, raw keys are considered in sorted order and the first one
// wins, so the result does not depend on map iteration order. Keys that
// normalize to the empty string are dropped. Nil related lists are stored
// as empty ones, keeping serialized output free of nulls.
func Build(raw map[string]Entry) *Index {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	entries := make(map[string]Entry, len(raw))
	for _, k := range keys {
		word := Normalize(k)
		if word == "" {
			continue
		}
		if _, exists := entries[word]; exists {
			continue
		}
		e := raw[k]
		if e.RelatedWords == nil {
			e.RelatedWords = []string{}
		}
		entries[word] = e
	}

	words := make([]string, 0, len(entries))
	for w := range entries {
		words = append(words, w)
	}
	slices.Sort(words)

	return &Index{
		entries:     entries,
		words:       words,
		fingerprint: fingerprint(words, entries),
	}
}

// Lookup returns the entry for a word, normalizing the input first.
// The second return is false if the word is not in the index.
func (ix *Index) Lookup(word string) (Entry, bool) {
	e, ok := ix.entries[Normalize(word)]
	return e, ok
}

// Words returns all canonical words in sorted order.
// This ordering defines the index iteration order used by fallbacks, so it
// must stay deterministic. The returned slice is a copy.
func (ix *Index) Words() []string {
	return slices.Clone(ix.words)
}

// Len returns the number of words in the index.
func (ix *Index) Len() int {
	return len(ix.words)
}

// Fingerprint returns a stable content hash of the index. Two indexes built
// from the same word data share a fingerprint. Used to key derived artifacts
// (sampling tables) to the dataset they were computed from.
func (ix *Index) Fingerprint() string {
	return ix.fingerprint
}

func fingerprint(words []string, entries map[string]Entry) string {
	h := sha256.New()
	for _, w := range words {
		e := entries[w]
		h.Write([]byte(w))
		h.Write([]byte{0})
		h.Write([]byte(e.Definition))
		h.Write([]byte{0})
		for _, r := range e.RelatedWords {
			h.Write([]byte(r))
			h.Write([]byte{1})
		}
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
