package lang

import (
	"bufio"
	"io"
	"strings"
)

// DefaultIndent is the indentation used by [Format] for nested blocks.
const DefaultIndent = "    "

// Format writes program in canonical source form: one statement per line,
// blocks indented with [DefaultIndent], and a semicolon after every
// expression statement.
func Format(w io.Writer, program *Program) error {
	bw := bufio.NewWriter(w)
	f := formatter{w: bw, indent: DefaultIndent}

	for i, stmt := range program.Statements {
		// blank line around top-level definitions
		if i > 0 && (isDefinition(stmt) || isDefinition(program.Statements[i-1])) {
			f.newline()
		}

		f.statement(stmt, 0)
	}

	return bw.Flush()
}

// FormatString formats program and returns the result.
func FormatString(program *Program) string {
	var sb strings.Builder

	_ = Format(&sb, program)

	return sb.String()
}

type formatter struct {
	w      *bufio.Writer
	indent string
}

func (f formatter) line(depth int, s string) {
	for range depth {
		_, _ = f.w.WriteString(f.indent)
	}

	_, _ = f.w.WriteString(s)
	f.newline()
}

func (f formatter) newline() { _ = f.w.WriteByte('\n') }

func (f formatter) statement(stmt Statement, depth int) {
	switch s := stmt.(type) {
	case *ExpressionStatement:
		f.line(depth, s.String())

	case *IfStatement:
		f.line(depth, "if ("+s.Condition.String()+") {")
		f.block(s.Consequence, depth+1)

		if s.Alternative != nil {
			f.line(depth, "} else {")
			f.block(s.Alternative, depth+1)
		}

		f.line(depth, "}")

	case *WhileStatement:
		f.line(depth, "while ("+s.Condition.String()+") {")
		f.block(s.Body, depth+1)
		f.line(depth, "}")

	case *FunctionStatement:
		f.line(depth, "function "+s.Name.Value+"("+s.ParameterNames()+") {")
		f.block(s.Body, depth+1)
		f.line(depth, "}")

	case *ExtendStatement:
		f.line(depth, "extend "+s.Target.Value+" {")

		for i, fn := range s.Functions {
			if i > 0 {
				f.newline()
			}

			f.statement(fn, depth+1)
		}

		f.line(depth, "}")

	case *BlockStatement:
		f.line(depth, "{")
		f.block(s, depth+1)
		f.line(depth, "}")
	}
}

func (f formatter) block(b *BlockStatement, depth int) {
	if b == nil {
		return
	}

	for _, stmt := range b.Statements {
		f.statement(stmt, depth)
	}
}

func isDefinition(stmt Statement) bool {
	switch stmt.(type) {
	case *FunctionStatement, *ExtendStatement:
		return true
	default:
		return false
	}
}
