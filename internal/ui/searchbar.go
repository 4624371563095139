package ui

import (
	"github.com/gdamore/tcell/v2"

	"campusmap/internal/render"
)

const searchPrompt = "Search: "

// SearchAction is what a key press in the search bar asks the app to do
type SearchAction int

const (
	SearchNone SearchAction = iota
	SearchSubmit
	SearchCancel
)

// Suggester returns autocomplete candidates for a prefix
type Suggester func(prefix string, limit int) []string

// SearchBar is the one-line query editor with prefix suggestions
type SearchBar struct {
	active      bool
	query       []rune
	suggestions []string
	suggest     Suggester
	limit       int
}

// NewSearchBar creates a search bar drawing suggestions from suggest
func NewSearchBar(suggest Suggester, limit int) *SearchBar {
	return &SearchBar{suggest: suggest, limit: limit}
}

// Open starts a new query
func (s *SearchBar) Open() {
	s.active = true
	s.query = s.query[:0]
	s.suggestions = nil
}

// Close leaves the search bar
func (s *SearchBar) Close() {
	s.active = false
	s.suggestions = nil
}

// Active reports whether the search bar has focus
func (s *SearchBar) Active() bool { return s.active }

// Query returns the text typed so far
func (s *SearchBar) Query() string { return string(s.query) }

// Suggestions returns the current autocomplete candidates
func (s *SearchBar) Suggestions() []string { return s.suggestions }

// HandleKey edits the query. Enter submits it, Esc cancels and Tab
// completes to the first suggestion.
func (s *SearchBar) HandleKey(ev *tcell.EventKey) (SearchAction, string) {
	switch ev.Key() {
	case tcell.KeyEnter:
		q := s.Query()
		s.Close()
		if q == "" {
			return SearchCancel, ""
		}
		return SearchSubmit, q

	case tcell.KeyEscape:
		s.Close()
		return SearchCancel, ""

	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(s.query) > 0 {
			s.query = s.query[:len(s.query)-1]
		}

	case tcell.KeyCtrlU:
		s.query = s.query[:0]

	case tcell.KeyTab:
		if len(s.suggestions) > 0 {
			s.query = []rune(s.suggestions[0])
		}

	case tcell.KeyRune:
		s.query = append(s.query, ev.Rune())

	default:
		return SearchNone, ""
	}

	s.refresh()
	return SearchNone, ""
}

func (s *SearchBar) refresh() {
	if s.suggest == nil {
		return
	}
	s.suggestions = s.suggest(s.Query(), s.limit)
}

// Draw renders the bar on row y and the suggestions above it
func (s *SearchBar) Draw(screen tcell.Screen, y, width int) {
	if !s.active {
		return
	}

	for i, name := range s.suggestions {
		row := y - len(s.suggestions) + i
		if row < 0 {
			continue
		}
		style := render.StyleListItem
		if i == 0 {
			style = render.StyleListSelected
		}
		line := newRow(width, tcell.StyleDefault)
		line.DrawTextClipped(len(searchPrompt), 0, width-len(searchPrompt), name, style)
		line.Blit(screen, 0, row)
	}

	bar := newRow(width, tcell.StyleDefault)
	x := bar.DrawTextClipped(0, 0, width, searchPrompt, render.StyleTitle)
	x += bar.DrawTextClipped(x, 0, width-x-1, s.Query(), render.StyleLabel)
	bar.Blit(screen, 0, y)
	screen.ShowCursor(x, y)
}
