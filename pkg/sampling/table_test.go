package sampling

import (
	"bytes"
	"math/rand/v2"
	"path/filepath"
	"testing"

	"github.com/tetraptych/etymoscope-kiro/pkg/errors"
)

func twoWordTable() Table {
	return Table{
		TotalWeight: 4,
		Words: []Entry{
			{Word: "a", NumConnections: 1, GraphSize: 2, CumulativeWeight: 1},
			{Word: "b", NumConnections: 3, GraphSize: 4, CumulativeWeight: 4},
		},
	}
}

func TestTableSample(t *testing.T) {
	table := twoWordTable()

	tests := []struct {
		name string
		unit float64
		want string
	}{
		{"Zero", 0, "a"},
		{"LowRange", 0.1, "a"},
		{"TargetOnBoundary", 0.25, "a"},
		{"JustPastBoundary", 0.26, "b"},
		{"MidRange", 0.5, "b"},
		{"HighRange", 0.95, "b"},
		{"NearOne", 0.999, "b"},
		{"ClampsAboveOne", 1.5, "b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := table.Sample(tt.unit)
			if !ok {
				t.Fatalf("Sample(%v) not ok", tt.unit)
			}
			if got != tt.want {
				t.Errorf("Sample(%v) = %q, want %q", tt.unit, got, tt.want)
			}
		})
	}
}

func TestTableSampleEmpty(t *testing.T) {
	var table Table
	if w, ok := table.Sample(0.5); ok {
		t.Errorf("Sample on empty table = %q, want not ok", w)
	}
}

func TestTableSampleSingle(t *testing.T) {
	table := Table{
		TotalWeight: 5,
		Words:       []Entry{{Word: "only", NumConnections: 5, GraphSize: 3, CumulativeWeight: 5}},
	}

	for _, unit := range []float64{0, 0.3, 0.999} {
		got, ok := table.Sample(unit)
		if !ok || got != "only" {
			t.Errorf("Sample(%v) = %q, %v, want only, true", unit, got, ok)
		}
	}
}

func TestTableSampleDistribution(t *testing.T) {
	table := twoWordTable()
	rng := rand.New(rand.NewPCG(1, 2))

	const trials = 20000
	counts := make(map[string]int)
	for range trials {
		w, ok := table.Sample(rng.Float64())
		if !ok {
			t.Fatal("Sample not ok")
		}
		counts[w]++
	}

	// P(a) = 1/4, P(b) = 3/4.
	gotA := float64(counts["a"]) / trials
	if gotA < 0.23 || gotA > 0.27 {
		t.Errorf("frequency(a) = %.3f, want ~0.25", gotA)
	}
	gotB := float64(counts["b"]) / trials
	if gotB < 0.73 || gotB > 0.77 {
		t.Errorf("frequency(b) = %.3f, want ~0.75", gotB)
	}
}

func TestTableValidate(t *testing.T) {
	tests := []struct {
		name    string
		table   Table
		wantErr bool
	}{
		{
			name:  "Valid",
			table: twoWordTable(),
		},
		{
			name:  "EmptyValid",
			table: Table{TotalWeight: 0, Words: []Entry{}},
		},
		{
			name: "TotalMismatch",
			table: Table{
				TotalWeight: 7,
				Words:       []Entry{{Word: "a", NumConnections: 1, CumulativeWeight: 1}},
			},
			wantErr: true,
		},
		{
			name: "DecreasingCumulative",
			table: Table{
				TotalWeight: 1,
				Words: []Entry{
					{Word: "a", NumConnections: 2, CumulativeWeight: 2},
					{Word: "b", NumConnections: 1, CumulativeWeight: 1},
				},
			},
			wantErr: true,
		},
		{
			name: "ZeroConnections",
			table: Table{
				TotalWeight: 0,
				Words:       []Entry{{Word: "a", NumConnections: 0, CumulativeWeight: 0}},
			},
			wantErr: true,
		},
		{
			name: "EmptyWord",
			table: Table{
				TotalWeight: 1,
				Words:       []Entry{{Word: "", NumConnections: 1, CumulativeWeight: 1}},
			},
			wantErr: true,
		},
		{
			name:    "EmptyWithWeight",
			table:   Table{TotalWeight: 3, Words: []Entry{}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.table.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !errors.Is(err, errors.ErrCodeDataFormat) {
					t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeDataFormat)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate: %v", err)
			}
		})
	}
}

func TestMarshalTableDeterministic(t *testing.T) {
	table := twoWordTable()

	first, err := MarshalTable(table)
	if err != nil {
		t.Fatalf("MarshalTable: %v", err)
	}
	second, err := MarshalTable(table)
	if err != nil {
		t.Fatalf("MarshalTable: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Error("same table produced different bytes")
	}

	back, err := UnmarshalTable(first)
	if err != nil {
		t.Fatalf("UnmarshalTable: %v", err)
	}
	if back.TotalWeight != table.TotalWeight || back.Len() != table.Len() {
		t.Errorf("round trip = %+v, want %+v", back, table)
	}
}

func TestReadWriteTableFile(t *testing.T) {
	table := twoWordTable()
	path := filepath.Join(t.TempDir(), "table.json")

	if err := WriteTableFile(table, path); err != nil {
		t.Fatalf("WriteTableFile: %v", err)
	}

	back, err := ReadTableFile(path)
	if err != nil {
		t.Fatalf("ReadTableFile: %v", err)
	}
	if back.TotalWeight != 4 || back.Len() != 2 {
		t.Errorf("round trip = %+v, want total 4 with 2 entries", back)
	}
}

func TestReadTableFileNotFound(t *testing.T) {
	_, err := ReadTableFile("nonexistent.json")
	if err == nil {
		t.Fatal("expected error for nonexistent file")
	}
	if !errors.Is(err, errors.ErrCodeDataUnavailable) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeDataUnavailable)
	}
}

func TestReadTableMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"BadJSON", `{not json`},
		{"InconsistentWeights", `{"totalWeight": 9, "words": [{"word": "a", "numConnections": 1, "graphSize": 2, "cumulativeWeight": 1}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadTable(bytes.NewReader([]byte(tt.input)))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, errors.ErrCodeDataFormat) {
				t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeDataFormat)
			}
		})
	}
}
