package lang

import (
	"errors"
	"strings"
	"testing"
)

func parse(t *testing.T, src string) *Program {
	t.Helper()

	p := NewParser(NewLexer(src))
	program := p.ParseProgram()

	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("parse %q: %s", src, strings.Join(errs, "; "))
	}

	return program
}

func parseErrors(src string) []string {
	p := NewParser(NewLexer(src))
	p.ParseProgram()

	return p.Errors()
}

func TestMemberCallPrecedence(t *testing.T) {
	program := parse(t, "a.b.c();")

	if len(program.Statements) != 1 {
		t.Fatalf("statements = %d", len(program.Statements))
	}

	stmt := program.Statements[0].(*ExpressionStatement)

	call, ok := stmt.Expression.(*CallExpression)
	if !ok {
		t.Fatalf("expression is %T, want *CallExpression", stmt.Expression)
	}

	if len(call.Arguments) != 0 {
		t.Errorf("arguments = %d, want 0", len(call.Arguments))
	}

	outer, ok := call.Function.(*DotExpression)
	if !ok {
		t.Fatalf("callee is %T, want *DotExpression", call.Function)
	}

	if right, ok := outer.Right.(*Identifier); !ok || right.Value != "c" {
		t.Errorf("outer right = %v, want c", outer.Right)
	}

	inner, ok := outer.Left.(*DotExpression)
	if !ok {
		t.Fatalf("outer left is %T, want *DotExpression", outer.Left)
	}

	if inner.String() != "a.b" {
		t.Errorf("inner = %q, want a.b", inner.String())
	}
}

func TestExpressionString(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"knight.move(NORTH)", "knight.move(NORTH);"},
		{"not knight.isNextTo(EAST, WALL);", "not knight.isNextTo(EAST, WALL);"},
		{"not not a", "not not a;"},
		{"f()()", "f()();"},
		{"a.b(c.d(e), f)", "a.b(c.d(e), f);"},
		{"a b", "a; b;"},
		{"a;\n\nb;", "a; b;"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parse(t, tt.input).String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNotBindsLoosest(t *testing.T) {
	program := parse(t, "not knight.isNextTo(EAST, dragon)")

	not, ok := program.Statements[0].(*ExpressionStatement).Expression.(*NotExpression)
	if !ok {
		t.Fatal("top expression is not a NotExpression")
	}

	if _, ok := not.Operand.(*CallExpression); !ok {
		t.Errorf("operand is %T, want *CallExpression", not.Operand)
	}
}

func TestIfElse(t *testing.T) {
	program := parse(t, `if (knight.isNextTo(NORTH, dragon)) {
		knight.attack(NORTH);
	} else {
		knight.move(EAST); knight.move(EAST);
	}`)

	stmt, ok := program.Statements[0].(*IfStatement)
	if !ok {
		t.Fatalf("statement is %T", program.Statements[0])
	}

	if len(stmt.Consequence.Statements) != 1 {
		t.Errorf("consequence has %d statements", len(stmt.Consequence.Statements))
	}

	if stmt.Alternative == nil || len(stmt.Alternative.Statements) != 2 {
		t.Errorf("alternative = %v", stmt.Alternative)
	}
}

func TestWhile(t *testing.T) {
	program := parse(t, "while(not knight.isNextTo(EAST, WALL)) { knight.move(EAST); }")

	stmt, ok := program.Statements[0].(*WhileStatement)
	if !ok {
		t.Fatalf("statement is %T", program.Statements[0])
	}

	if stmt.Condition.String() != "not knight.isNextTo(EAST, WALL)" {
		t.Errorf("condition = %q", stmt.Condition.String())
	}

	if len(stmt.Body.Statements) != 1 {
		t.Errorf("body has %d statements", len(stmt.Body.Statements))
	}
}

func TestFunctionAndExtend(t *testing.T) {
	program := parse(t, `
function twice(dir) { knight.move(dir); knight.move(dir); }
extend knight {
	function left() { this.move(WEST); }
	function step(a, b) { this.move(a); this.move(b); }
}`)

	if len(program.Statements) != 2 {
		t.Fatalf("statements = %d", len(program.Statements))
	}

	fn := program.Statements[0].(*FunctionStatement)
	if fn.Name.Value != "twice" || fn.ParameterNames() != "dir" {
		t.Errorf("function = %s(%s)", fn.Name.Value, fn.ParameterNames())
	}

	ext := program.Statements[1].(*ExtendStatement)
	if ext.Target.Value != "knight" || len(ext.Functions) != 2 {
		t.Fatalf("extend %s with %d functions", ext.Target.Value, len(ext.Functions))
	}

	if got := ext.Functions[1].ParameterNames(); got != "a, b" {
		t.Errorf("parameters = %q", got)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			"unclosed block",
			"if(knight.isNextTo(NORTH, dragon)) { knight.attack(NORTH);",
			"Line[1]: Expected next token to be RIGHT_BRACE, got EOF instead.",
		},
		{
			"missing paren",
			"while knight.move(EAST) {}",
			"Line[1]: Expected next token to be LEFT_PAREN, got IDENTIFIER instead.",
		},
		{
			"illegal",
			"knight.move(1);",
			"Line[1]: No prefix parser for ILLEGAL found.",
		},
		{
			"stray brace",
			"\n\n}",
			"Line[3]: No prefix parser for RIGHT_BRACE found.",
		},
		{
			"extend body",
			"extend knight { knight.move(EAST); }",
			"Line[1]: Expected next token to be FUNCTION, got IDENTIFIER instead.",
		},
		{
			"function parameter",
			"function f(a, not) {}",
			"Line[1]: Expected next token to be IDENTIFIER, got NOT instead.",
		},
		{
			"unclosed call",
			"knight.move(EAST;",
			"Line[1]: Expected next token to be RIGHT_PAREN, got SEMICOLON instead.",
		},
		{
			"else without brace",
			"if (a) {} else b",
			"Line[1]: Expected next token to be LEFT_BRACE, got IDENTIFIER instead.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := parseErrors(tt.input)
			if len(errs) == 0 {
				t.Fatal("no errors reported")
			}

			if errs[0] != tt.want {
				t.Errorf("first error = %q, want %q", errs[0], tt.want)
			}
		})
	}
}

func TestParseString(t *testing.T) {
	program, err := ParseString(t.Context(), "knight.move(NORTH);")
	if err != nil {
		t.Fatal(err)
	}

	if len(program.Statements) != 1 {
		t.Errorf("statements = %d", len(program.Statements))
	}

	program, err = ParseString(t.Context(), "knight.move(NORTH\n}")
	if program != nil {
		t.Error("program returned alongside errors")
	}

	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error %T is not *ParseError", err)
	}

	if !errors.Is(err, ErrParse) {
		t.Error("ParseError does not match ErrParse")
	}

	if got := pe.Messages()[0]; !strings.HasPrefix(got, "Line[2]: ") {
		t.Errorf("first message = %q", got)
	}

	want := "  2 | }\n      ^\n"
	if got := pe.Snippet(); got != want {
		t.Errorf("Snippet() = %q, want %q", got, want)
	}
}

func TestParseReader(t *testing.T) {
	program, err := ParseReader(t.Context(), strings.NewReader("a; b;"))
	if err != nil {
		t.Fatal(err)
	}

	if len(program.Statements) != 2 {
		t.Errorf("statements = %d", len(program.Statements))
	}
}
