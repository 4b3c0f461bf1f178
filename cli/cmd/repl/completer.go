package repl

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/dragon/game"
	"github.com/ardnew/dragon/lang"
)

// ctrlCommands are the available control-mode commands.
//
//nolint:gochecknoglobals
var ctrlCommands = []string{
	"run", "show", "undo", "wipe", "edit", "fmt",
	"reset", "board", "level", "help", "clear", "quit",
}

// isWordBoundary returns true if the rune is a word delimiter for completion
// purposes: whitespace, the member-access dot, and punctuation.
func isWordBoundary(r rune) bool {
	switch r {
	case '.', ' ', '\t',
		'(', ')', '{', '}',
		',', ';':
		return true
	}

	return false
}

// wordBounds returns the current word at the cursor position and its byte
// boundaries within input.
// Returns an empty word when the cursor sits on a boundary (after a space,
// after a dot, start of line, etc.).
func wordBounds(input string, cursor int) (word string, start, end int) {
	if cursor > len(input) {
		cursor = len(input)
	}

	// Walk backward from cursor to find word start.
	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	// Walk forward from cursor to find word end.
	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// receiver returns the identifier left of the dot immediately preceding
// wordStart, such as "knight" in "if knight.isN". Returns "" when the word
// is not a member access.
func receiver(input string, wordStart int) string {
	prefix := input[:wordStart]

	trimmed, ok := strings.CutSuffix(prefix, ".")
	if !ok {
		return ""
	}

	word, _, _ := wordBounds(trimmed, len(trimmed))

	return word
}

// candidates returns the completions valid after recv. An empty recv yields
// keywords, standard names, characters, and top-level functions.
func (s *Session) candidates(recv string) []string {
	decl := declarationsOf(s.program())

	if recv != "" {
		return s.members(recv, decl)
	}

	names := lang.Keywords()
	names = slices.AppendSeq(names, game.StandardEnv().Names())
	names = append(names, game.KnightName)

	if s.Level().HasMage() {
		names = append(names, game.MageName)
	}

	for name := range decl.functions {
		names = append(names, name)
	}

	slices.Sort(names)

	return slices.Compact(names)
}

// members returns the methods callable on the character named recv.
func (s *Session) members(recv string, decl declarations) []string {
	var c lang.Character

	switch recv {
	case game.KnightName:
		c = game.Knight{}
	case game.MageName:
		if !s.Level().HasMage() {
			return nil
		}

		c = game.Mage{}
	default:
		return nil
	}

	names := slices.Collect(lang.NewInstance(c, nil).Methods())

	for name := range decl.methods[recv] {
		names = append(names, name)
	}

	slices.Sort(names)

	return slices.Compact(names)
}

// computeMatches computes fuzzy matches for the word under the cursor.
// It returns the matches (ranked best-first), the candidate list, and the word
// boundaries. An empty word only shows completions after a dot.
func (m model) computeMatches() (
	matches fuzzy.Matches,
	candidates []string,
	wordStart, wordEnd int,
) {
	input := m.input.Value()
	cursor := m.input.Position()

	word, ws, we := wordBounds(input, cursor)
	wordStart, wordEnd = ws, we

	if m.mode == modeCtrl {
		if word == "" {
			return nil, nil, wordStart, wordEnd
		}

		candidates = ctrlCommands
	} else {
		recv := receiver(input, wordStart)
		candidates = m.session.candidates(recv)

		if word == "" {
			if recv == "" || len(candidates) == 0 {
				return nil, nil, wordStart, wordEnd
			}

			// Return all candidates as unfiltered matches.
			matches = make(fuzzy.Matches, len(candidates))
			for i, c := range candidates {
				matches[i] = fuzzy.Match{Str: c, Index: i}
			}

			return matches, candidates, wordStart, wordEnd
		}
	}

	if len(candidates) == 0 {
		return nil, nil, wordStart, wordEnd
	}

	matches = fuzzy.Find(word, candidates)

	return matches, candidates, wordStart, wordEnd
}

// renderCandidateBar builds the single-line completion bar, ellipsized to fit
// within the given terminal width. The selected candidate (when tabbing) uses
// the selected style.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		rendered := renderCandidate(match, tabActive && i == suggIdx)
		entryWidth := lipgloss.Width(rendered)

		if i > 0 {
			entryWidth += sepWidth
		}

		if used+entryWidth+ellipsisWidth > width && i > 0 {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth
	}

	return b.String()
}

// renderCandidate renders a single candidate with matched characters
// highlighted.
func renderCandidate(match fuzzy.Match, selected bool) string {
	baseStyle := suggestionStyle
	highlightStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("4")).
		Bold(true)

	if selected {
		baseStyle = selectedStyle
		highlightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4")).
			Bold(true)
	}

	matchSet := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matchSet[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		if matchSet[i] {
			b.WriteString(highlightStyle.Render(string(r)))
		} else {
			b.WriteString(baseStyle.Render(string(r)))
		}
	}

	return b.String()
}
