package repl

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/dragon/lang"
)

// nativeParams are the parameters of the built-in character methods.
//
//nolint:gochecknoglobals
var nativeParams = map[string][]string{
	lang.MethodMove:     {"direction"},
	lang.MethodAttack:   {"direction"},
	lang.MethodSupport:  {"direction"},
	lang.MethodIsNextTo: {"direction", "what"},
}

// Styles for signature hints.
//
//nolint:gochecknoglobals
var (
	signatureStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	signatureNameStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("6")).
				Bold(true)
	currentParamStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("11")).
				Bold(true)
	signatureSeparatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// declarations are the functions a battle plan defines: top-level functions
// and the methods each extend block adds, by parameter list.
type declarations struct {
	functions map[string][]string
	methods   map[string]map[string][]string
}

func declarationsOf(program *lang.Program) declarations {
	d := declarations{
		functions: make(map[string][]string),
		methods:   make(map[string]map[string][]string),
	}

	if program == nil {
		return d
	}

	for _, stmt := range program.Statements {
		switch s := stmt.(type) {
		case *lang.FunctionStatement:
			d.functions[s.Name.Value] = parameters(s)

		case *lang.ExtendStatement:
			target := s.Target.Value
			if d.methods[target] == nil {
				d.methods[target] = make(map[string][]string)
			}

			for _, fn := range s.Functions {
				d.methods[target][fn.Name.Value] = parameters(fn)
			}
		}
	}

	return d
}

func parameters(fn *lang.FunctionStatement) []string {
	params := make([]string, len(fn.Parameters))
	for i, p := range fn.Parameters {
		params[i] = p.Value
	}

	return params
}

// functionCall represents information about a function call at the cursor.
type functionCall struct {
	name     string // callee as written (e.g., "knight.move")
	argIndex int    // current argument index (0-based)
	inCall   bool   // true if cursor is inside parameter list
}

// detectFunctionCall analyzes the input at the cursor position to determine if
// the cursor is inside a function call's parameter list.
func detectFunctionCall(input string, cursor int) functionCall {
	if cursor > len(input) {
		cursor = len(input)
	}

	// Walk backward from cursor to find the unmatched opening parenthesis.
	depth := 0
	open := -1

	for i := cursor; i > 0 && open < 0; {
		r, size := utf8.DecodeLastRuneInString(input[:i])
		i -= size

		switch r {
		case ')':
			depth++
		case '(':
			if depth == 0 {
				open = i
			}

			depth--
		}
	}

	if open < 0 {
		return functionCall{}
	}

	// Extract the callee name before the parenthesis.
	start := open

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if r != '.' && r != '_' && !isIdentRune(r) {
			break
		}

		start -= size
	}

	name := strings.TrimSpace(input[start:open])
	if name == "" {
		return functionCall{}
	}

	// Count commas at the call's own nesting level.
	argIndex := 0
	depth = 0

	for _, r := range input[open+1 : cursor] {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				argIndex++
			}
		}
	}

	return functionCall{name: name, argIndex: argIndex, inCall: true}
}

func isIdentRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// signature returns the display signature and parameter names of the
// function called name, which is either a top-level function or a
// receiver-qualified method such as "knight.move".
func (s *Session) signature(name string) (string, []string) {
	decl := declarationsOf(s.program())

	recv, method, qualified := strings.Cut(name, ".")
	if !qualified {
		if params, ok := decl.functions[name]; ok {
			return formatSignature(name, params), params
		}

		return "", nil
	}

	if recv == "this" {
		// inside an extend block any target may be meant
		for _, methods := range decl.methods {
			if params, ok := methods[method]; ok {
				return formatSignature(name, params), params
			}
		}
	}

	if params, ok := decl.methods[recv][method]; ok {
		return formatSignature(name, params), params
	}

	if params, ok := nativeParams[method]; ok &&
		(recv == "this" || slices.Contains(s.members(recv, decl), method)) {
		return formatSignature(name, params), params
	}

	return "", nil
}

func formatSignature(name string, params []string) string {
	return name + "(" + strings.Join(params, ", ") + ")"
}

// renderSignatureHint renders a function signature with the current parameter
// highlighted.
func renderSignatureHint(
	signature string,
	params []string,
	currentArgIdx int,
) string {
	if signature == "" {
		return ""
	}

	openParen := strings.Index(signature, "(")
	if openParen == -1 {
		return signatureStyle.Render(signature)
	}

	funcName := signature[:openParen]

	if len(params) == 0 {
		return signatureNameStyle.Render(funcName) +
			signatureStyle.Render("()")
	}

	var b strings.Builder

	b.WriteString(signatureNameStyle.Render(funcName))
	b.WriteString(signatureStyle.Render("("))

	for i, param := range params {
		if i > 0 {
			b.WriteString(signatureSeparatorStyle.Render(", "))
		}

		if currentArgIdx == i {
			b.WriteString(currentParamStyle.Render(param))
		} else {
			b.WriteString(signatureStyle.Render(param))
		}
	}

	b.WriteString(signatureStyle.Render(")"))

	return b.String()
}
