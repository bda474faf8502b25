package sampling

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/tetraptych/etymoscope-kiro/pkg/graph"
	"github.com/tetraptych/etymoscope-kiro/pkg/lexicon"
)

// Defaults for table precomputation.
const (
	// DefaultSizingDepth is the traversal depth used to measure a word's
	// graph size.
	DefaultSizingDepth = 3

	// DefaultNodeCap excludes words whose graphs would exceed this many
	// nodes. Larger graphs are unpleasant to display and dominate compute.
	DefaultNodeCap = 850
)

const workers = 20

// Options configures table precomputation.
type Options struct {
	// SizingDepth is the traversal depth for graph sizing.
	// Defaults to DefaultSizingDepth.
	SizingDepth int

	// NodeCap is the maximum graph size an eligible word may have.
	// Defaults to DefaultNodeCap.
	NodeCap int

	// Workers is the number of concurrent sizing workers.
	Workers int
}

// WithDefaults returns a copy with unset fields filled in.
func (o Options) WithDefaults() Options {
	if o.SizingDepth <= 0 {
		o.SizingDepth = DefaultSizingDepth
	}
	if o.NodeCap <= 0 {
		o.NodeCap = DefaultNodeCap
	}
	if o.Workers <= 0 {
		o.Workers = workers
	}
	return o
}

type wordStat struct {
	word string
	num  int
	size int
}

// Compute builds a sampling table from the index.
//
// Every word is sized by a counting-only traversal at Options.SizingDepth.
// A word is eligible when its graph has more than one node, it has at least
// one related word, and its graph size does not exceed Options.NodeCap.
// Eligible words are ordered by ascending graph size, ties broken by word,
// and assigned running cumulative weights equal to their connection counts.
//
// Sizing runs on a worker pool; output is deterministic regardless of
// worker scheduling. Compute returns the context's error if it is cancelled
// before all words are sized.
func Compute(ctx context.Context, index *lexicon.Index, opts Options) (Table, error) {
	opts = opts.WithDefaults()

	b := graph.NewBuilder(index)
	words := index.Words()
	jobs := make(chan string)
	results := make(chan wordStat, opts.Workers)

	var wg sync.WaitGroup
	for range opts.Workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for w := range jobs {
				if ctx.Err() != nil {
					continue
				}
				entry, _ := index.Lookup(w)
				results <- wordStat{
					word: w,
					num:  len(entry.RelatedWords),
					size: b.ReachableWithin(w, opts.SizingDepth),
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, w := range words {
			select {
			case jobs <- w:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	stats := make([]wordStat, 0, len(words))
	for s := range results {
		stats = append(stats, s)
	}
	if err := ctx.Err(); err != nil {
		return Table{}, err
	}

	entries := make([]Entry, 0, len(stats))
	for _, s := range stats {
		if s.size > 1 && s.num > 0 && s.size <= opts.NodeCap {
			entries = append(entries, Entry{
				Word:           s.word,
				NumConnections: s.num,
				GraphSize:      s.size,
			})
		}
	}

	slices.SortFunc(entries, func(a, b Entry) int {
		if a.GraphSize != b.GraphSize {
			return a.GraphSize - b.GraphSize
		}
		return strings.Compare(a.Word, b.Word)
	})

	var total float64
	for i := range entries {
		total += float64(entries[i].NumConnections)
		entries[i].CumulativeWeight = total
	}

	return Table{TotalWeight: total, Words: entries}, nil
}

// FirstConnected returns the first word in index order with at least one
// related word. It is the deterministic degraded-mode fallback when no
// sampling table is available; the choice is fixed, not random.
func FirstConnected(index *lexicon.Index) (string, bool) {
	for _, w := range index.Words() {
		if e, ok := index.Lookup(w); ok && len(e.RelatedWords) > 0 {
			return w, true
		}
	}
	return "", false
}
