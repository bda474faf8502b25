package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/tetraptych/etymoscope-kiro/pkg/errors"
	"github.com/tetraptych/etymoscope-kiro/pkg/lexicon"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// Command Definition
// =============================================================================

func (c *CLI) exploreCommand() *cobra.Command {
	var wordsPath string

	cmd := &cobra.Command{
		Use:   "explore [word]",
		Short: "Walk the etymology graph interactively",
		Long: `Explore opens a terminal browser for the word graph: pick a related word
to re-root on it, jump to random words, and backtrack along your path.

Without a starting word a random one is drawn.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start := ""
			if len(args) == 1 {
				start = args[0]
			}
			return c.runExplore(cmd.Context(), start, wordsPath)
		},
	}

	cmd.Flags().StringVar(&wordsPath, "words", "", "word dataset file (required)")
	_ = cmd.MarkFlagRequired("words")

	return cmd
}

// =============================================================================
// Command Implementation
// =============================================================================

func (c *CLI) runExplore(ctx context.Context, start, wordsPath string) error {
	index, err := c.loadIndex(ctx, wordsPath)
	if err != nil {
		return err
	}
	// Navigation only reads the index, so the result cache stays out of it.
	eng, err := c.newEngine(index, true)
	if err != nil {
		return err
	}
	defer eng.Close()

	if start == "" {
		w, ok := eng.RandomWord(ctx)
		if !ok {
			printWarning("Word dataset is empty")
			return nil
		}
		start = w
	}

	word := lexicon.Normalize(start)
	entry, found := index.Lookup(word)
	if !found {
		printWarning("No entry for %q", word)
		return nil
	}

	m := NewExploreModel(word, entry,
		func(w string) (lexicon.Entry, bool) { return eng.GetEntry(ctx, w) },
		func() (string, bool) { return eng.RandomWord(ctx) },
	)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "explore UI failed")
	}
	return nil
}

// =============================================================================
// ExploreModel - Interactive word graph walking
// =============================================================================

// ExploreModel is the bubbletea model for walking word relations. The current
// word's related words form a scrollable list; following one re-roots the
// view on it.
type ExploreModel struct {
	Lookup  func(word string) (lexicon.Entry, bool)
	Random  func() (string, bool)
	Word    string
	Entry   lexicon.Entry
	History []string
	Cursor  int
	Offset  int
	Height  int
	Width   int
}

// NewExploreModel creates an explore model rooted on word.
func NewExploreModel(word string, entry lexicon.Entry, lookup func(string) (lexicon.Entry, bool), random func() (string, bool)) ExploreModel {
	return ExploreModel{
		Lookup: lookup,
		Random: random,
		Word:   word,
		Entry:  entry,
		Height: 15,
		Width:  80,
	}
}

func (m ExploreModel) Init() tea.Cmd {
	return nil
}

func (m ExploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Entry.RelatedWords)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter", "right", "l":
			if m.Cursor >= len(m.Entry.RelatedWords) {
				return m, nil
			}
			next := m.Entry.RelatedWords[m.Cursor]
			entry, found := m.Lookup(next)
			if !found {
				// Dangling relation, nowhere to go.
				return m, nil
			}
			m.History = append(m.History, m.Word)
			m = m.reroot(next, entry)
		case "b", "left", "h":
			if len(m.History) == 0 {
				return m, nil
			}
			prev := m.History[len(m.History)-1]
			m.History = m.History[:len(m.History)-1]
			if entry, found := m.Lookup(prev); found {
				m = m.reroot(prev, entry)
			}
		case "r":
			word, ok := m.Random()
			if !ok {
				return m, nil
			}
			entry, found := m.Lookup(word)
			if !found {
				return m, nil
			}
			m.History = append(m.History, m.Word)
			m = m.reroot(word, entry)
		}
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

// reroot moves the view to word, resetting list position.
func (m ExploreModel) reroot(word string, entry lexicon.Entry) ExploreModel {
	m.Word = word
	m.Entry = entry
	m.Cursor = 0
	m.Offset = 0
	return m
}

func (m ExploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Word))
	b.WriteString("\n")
	if m.Entry.Definition != "" {
		b.WriteString(listDimStyle.Width(m.Width - 2).Render(m.Entry.Definition))
		b.WriteString("\n")
	}
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ follow  b back  r random  q quit"))
	b.WriteString("\n\n")

	if len(m.Entry.RelatedWords) == 0 {
		b.WriteString(listDimStyle.Render("  (no connections)"))
		b.WriteString("\n")
		return b.String()
	}

	end := m.Offset + m.Height
	if end > len(m.Entry.RelatedWords) {
		end = len(m.Entry.RelatedWords)
	}

	for i := m.Offset; i < end; i++ {
		rel := m.Entry.RelatedWords[i]
		_, followable := m.Lookup(rel)

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		line := cursor + rel
		if !followable {
			line += " " + listDimStyle.Render("(not in dataset)")
		}

		switch {
		case i == m.Cursor && followable:
			b.WriteString(listSelectedStyle.Render(line))
		case !followable:
			b.WriteString(listDimStyle.Render(line))
		default:
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Entry.RelatedWords))))
	if len(m.History) > 0 {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  %d back", len(m.History))))
	}

	return b.String()
}
