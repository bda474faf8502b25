// Package sampling provides weighted random word selection.
//
// A [Table] holds every eligible word with a running cumulative weight, so
// a draw is one multiplication and one binary search. Tables are built
// offline by [Compute] from a word index, stored as JSON, and never mutated
// afterward, which makes them safe for unbounded concurrent readers.
//
// A word's weight is its number of related words: well-connected words are
// proportionally more likely to be drawn, subject to an upper bound on the
// size of the graph they would produce.
package sampling

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"github.com/tetraptych/etymoscope-kiro/pkg/errors"
)

// Entry is one eligible word with its precomputed weights.
type Entry struct {
	Word             string  `json:"word"`
	NumConnections   int     `json:"numConnections"`
	GraphSize        int     `json:"graphSize"`
	CumulativeWeight float64 `json:"cumulativeWeight"`
}

// Table is a cumulative-weight sampling table over eligible words.
// TotalWeight always equals the final entry's cumulative weight.
type Table struct {
	TotalWeight float64 `json:"totalWeight"`
	Words       []Entry `json:"words"`
}

// Len returns the number of entries.
func (t Table) Len() int { return len(t.Words) }

// IsEmpty reports whether the table has no entries.
func (t Table) IsEmpty() bool { return len(t.Words) == 0 }

// Sample picks a word by cumulative weight. randomUnit is expected in
// [0, 1); larger values clamp to the last entry. The probability of drawing
// word w is NumConnections(w) / TotalWeight. The second return is false
// when the table is empty.
func (t Table) Sample(randomUnit float64) (string, bool) {
	if len(t.Words) == 0 || t.TotalWeight <= 0 {
		return "", false
	}

	target := randomUnit * t.TotalWeight
	i := sort.Search(len(t.Words), func(i int) bool {
		return t.Words[i].CumulativeWeight >= target
	})
	if i >= len(t.Words) {
		i = len(t.Words) - 1
	}
	return t.Words[i].Word, true
}

// Validate checks structural soundness: non-empty words, positive
// connection counts, non-decreasing cumulative weights, and a total equal
// to the final cumulative weight.
func (t Table) Validate() error {
	prev := 0.0
	for i, e := range t.Words {
		if e.Word == "" {
			return errors.New(errors.ErrCodeDataFormat, "entry %d: empty word", i)
		}
		if e.NumConnections <= 0 {
			return errors.New(errors.ErrCodeDataFormat,
				"entry %d (%s): numConnections = %d, must be positive", i, e.Word, e.NumConnections)
		}
		if e.CumulativeWeight < prev {
			return errors.New(errors.ErrCodeDataFormat,
				"entry %d (%s): cumulative weight %v decreases below %v", i, e.Word, e.CumulativeWeight, prev)
		}
		prev = e.CumulativeWeight
	}

	if len(t.Words) == 0 {
		if t.TotalWeight != 0 {
			return errors.New(errors.ErrCodeDataFormat, "empty table with totalWeight %v", t.TotalWeight)
		}
		return nil
	}
	if math.Abs(t.TotalWeight-prev) > 1e-9 {
		return errors.New(errors.ErrCodeDataFormat,
			"totalWeight %v does not match final cumulative weight %v", t.TotalWeight, prev)
	}
	return nil
}

// =============================================================================
// Table Serialization API
// =============================================================================

// MarshalTable converts a Table to compact JSON bytes.
// Output is deterministic: equal tables marshal to equal bytes.
func MarshalTable(t Table) ([]byte, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return data, nil
}

// UnmarshalTable deserializes JSON bytes to a Table and validates it.
func UnmarshalTable(data []byte) (Table, error) {
	var t Table
	if err := json.Unmarshal(data, &t); err != nil {
		return Table{}, errors.Wrap(errors.ErrCodeDataFormat, err, "decode sampling table")
	}
	if err := t.Validate(); err != nil {
		return Table{}, err
	}
	return t, nil
}

// WriteTableFile writes a Table to an indented JSON file.
// The file is created with 0644 permissions.
func WriteTableFile(t Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeTableTo(t, f)
}

// WriteTable writes a Table as indented JSON to an io.Writer.
func WriteTable(t Table, w io.Writer) error {
	return writeTableTo(t, w)
}

// ReadTableFile reads a JSON file and returns the validated Table.
func ReadTableFile(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return Table{}, errors.Wrap(errors.ErrCodeDataUnavailable, err, "open %s", path)
	}
	defer f.Close()
	return readTableFrom(f)
}

// ReadTable decodes and validates a JSON table from an io.Reader.
func ReadTable(r io.Reader) (Table, error) {
	return readTableFrom(r)
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeTableTo(t Table, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(t); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readTableFrom(r io.Reader) (Table, error) {
	var t Table
	if err := json.NewDecoder(r).Decode(&t); err != nil {
		return Table{}, errors.Wrap(errors.ErrCodeDataFormat, err, "decode sampling table")
	}
	if err := t.Validate(); err != nil {
		return Table{}, err
	}
	return t, nil
}
