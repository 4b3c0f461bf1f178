package lang

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func run(t *testing.T, f fixture, src string, opts ...Option) Object {
	t.Helper()

	return Eval(t.Context(), parse(t, src), f.env, opts...)
}

func TestMoveRecordsCall(t *testing.T) {
	f := newFixture(3)

	result := run(t, f, "knight.move(NORTH);")
	if result != NULL {
		t.Errorf("result = %s, want NULL", result.Inspect())
	}

	if len(f.knight.calls) != 1 {
		t.Fatalf("calls = %d, want 1", len(f.knight.calls))
	}

	c := f.knight.calls[0]
	north, _ := f.env.Get("NORTH")

	if c.method != MethodMove || len(c.args) != 1 || c.args[0] != north {
		t.Errorf("call = %s%v, want move(NORTH)", c.method, c.args)
	}
}

func TestWhileUntilWall(t *testing.T) {
	f := newFixture(3)

	result := run(t, f, "while(not knight.isNextTo(EAST, WALL)) { knight.move(EAST); }")
	if IsError(result) {
		t.Fatal(result.Inspect())
	}

	if got := f.knight.count(MethodMove); got != 2 {
		t.Errorf("moves = %d, want 2", got)
	}

	if got := f.knight.count(MethodIsNextTo); got != 3 {
		t.Errorf("probes = %d, want 3", got)
	}
}

func TestUnbalancedBracesNotEvaluated(t *testing.T) {
	f := newFixture(3)

	program, err := ParseString(t.Context(), "if(knight.isNextTo(NORTH, dragon)) { knight.attack(NORTH);")
	if err == nil {
		Eval(t.Context(), program, f.env)
		t.Fatal("no parse error")
	}

	if len(f.knight.calls) != 0 {
		t.Errorf("calls = %d, want 0", len(f.knight.calls))
	}
}

func TestExtendScope(t *testing.T) {
	src := "extend knight { function helper() { knight.move(NORTH); } } "

	t.Run("bare call", func(t *testing.T) {
		f := newFixture(3)

		result := run(t, f, src+"helper();")
		if result.Inspect() != "Identifier not found: helper" {
			t.Errorf("result = %q", result.Inspect())
		}
	})

	t.Run("method call", func(t *testing.T) {
		f := newFixture(3)

		result := run(t, f,
			"extend knight { function helper() { this.move(NORTH); } } knight.helper();")
		if IsError(result) {
			t.Fatal(result.Inspect())
		}

		if got := f.knight.count(MethodMove); got != 1 {
			t.Errorf("moves = %d, want 1", got)
		}
	})

	t.Run("script bindings invisible", func(t *testing.T) {
		f := newFixture(3)

		// knight is bound in the script environment, not the instance's
		result := run(t, f, src+"knight.helper();")
		if result.Inspect() != "Identifier not found: knight" {
			t.Errorf("result = %q", result.Inspect())
		}
	})

	t.Run("this", func(t *testing.T) {
		f := newFixture(3)

		result := run(t, f,
			"extend knight { function east() { this.move(EAST); } } knight.east(); knight.east();")
		if IsError(result) {
			t.Fatal(result.Inspect())
		}

		if got := f.knight.count(MethodMove); got != 2 {
			t.Errorf("moves = %d, want 2", got)
		}
	})

	t.Run("caller functions invisible", func(t *testing.T) {
		f := newFixture(3)

		result := run(t, f,
			"function helper() {} extend knight { function f() { helper(); } } knight.f();")
		if result.Inspect() != "Identifier not found: helper" {
			t.Errorf("result = %q", result.Inspect())
		}
	})

	t.Run("builtin wins", func(t *testing.T) {
		f := newFixture(3)

		result := run(t, f,
			"extend knight { function move(d) { this.attack(d); } } knight.move(EAST);")
		if IsError(result) {
			t.Fatal(result.Inspect())
		}

		if f.knight.count(MethodAttack) != 0 || f.knight.count(MethodMove) != 1 {
			t.Errorf("calls = %v", f.knight.calls)
		}
	})
}

func TestEvalNilProgram(t *testing.T) {
	for name, node := range map[string]Node{
		"untyped": nil,
		"typed":   (*Program)(nil),
	} {
		t.Run(name, func(t *testing.T) {
			result := Eval(t.Context(), node, nil)
			if result.Inspect() != "Program is empty." {
				t.Errorf("result = %q", result.Inspect())
			}
		})
	}
}

func TestErrorHaltsProgram(t *testing.T) {
	f := newFixture(3)

	result := run(t, f, "foo(); knight.move(NORTH);")
	if result.Inspect() != "Identifier not found: foo" {
		t.Errorf("result = %q", result.Inspect())
	}

	if len(f.knight.calls) != 0 {
		t.Errorf("calls after error = %d", len(f.knight.calls))
	}
}

func TestArgumentShortCircuit(t *testing.T) {
	f := newFixture(3)

	result := run(t, f, "knight.isNextTo(knight.move(NORTH), nope);")
	if result.Inspect() != "Identifier not found: nope" {
		t.Errorf("result = %q", result.Inspect())
	}

	if len(f.knight.calls) != 1 || f.knight.calls[0].method != MethodMove {
		t.Errorf("calls = %v, want only move", f.knight.calls)
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty program", "", "Program is empty."},
		{"left not instance", "NORTH.move(EAST);", "'left' in dot expression must be an <Instance>."},
		{"right not identifier", "knight.not x;", "'right' in dot expression must be an <Identifier>."},
		{"not a function", "NORTH();", "GAME_OBJECT is not a function"},
		{"instance not a function", "knight();", "INSTANCE is not a function"},
		{"unknown method", "knight.fly();", "fly is not implemented yet"},
		{"knight cannot support", "knight.support(EAST);", "support is not implemented yet"},
		{"mage cannot attack", "mage.attack(EAST);", "attack is not implemented yet"},
		{
			"extend non-instance",
			"extend NORTH { function f() {} }",
			"Extends only works on instances! GAME_OBJECT is not an instance.",
		},
		{"extend unknown", "extend nobody { }", "Identifier not found: nobody"},
		{"missing argument", "function f(a, b) { b; } f(NORTH);", "Identifier not found: b"},
		{"while condition", "while (nope) { }", "Identifier not found: nope"},
		{"if condition", "if (nope) { }", "Identifier not found: nope"},
		{"not operand", "not nope;", "Identifier not found: nope"},
		{"native arity", "knight.move();", "Expected 1 arg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(3)

			result := Eval(t.Context(), NewParser(NewLexer(tt.input)).ParseProgram(), f.env)
			if !IsError(result) {
				t.Fatalf("result = %s, want error", result.Inspect())
			}

			if result.Inspect() != tt.want {
				t.Errorf("error = %q, want %q", result.Inspect(), tt.want)
			}
		})
	}
}

func TestNot(t *testing.T) {
	f := newFixture(3)
	f.env.Set("yes", TRUE)
	f.env.Set("no", FALSE)
	f.env.Set("nothing", NULL)
	f.env.Set("boxed", &Boolean{Value: true})

	tests := []struct {
		input string
		want  *Boolean
	}{
		{"not yes", FALSE},
		{"not no", TRUE},
		{"not not yes", TRUE},
		{"not nothing", FALSE},
		{"not NORTH", FALSE},
		{"not knight", FALSE},
		{"not boxed", FALSE},
	}

	for _, tt := range tests {
		if got := run(t, f, tt.input); got != tt.want {
			t.Errorf("%s = %s, want %s", tt.input, got.Inspect(), tt.want.Inspect())
		}
	}
}

func TestConditionIdentity(t *testing.T) {
	f := newFixture(3)
	f.env.Set("yes", TRUE)
	f.env.Set("boxed", &Boolean{Value: true})

	if run(t, f, "if (boxed) { knight.move(EAST); }"); len(f.knight.calls) != 0 {
		t.Error("non-canonical true entered consequence")
	}

	run(t, f, "if (boxed) { knight.move(EAST); } else { knight.move(WEST); }")
	run(t, f, "if (yes) { knight.move(EAST); } else { knight.move(WEST); }")

	if len(f.knight.calls) != 2 || f.knight.column != 0 {
		t.Errorf("calls = %v, column = %d", f.knight.calls, f.knight.column)
	}

	if got := run(t, f, "if (nothing) { }"); !IsError(got) {
		t.Errorf("unbound condition = %s", got.Inspect())
	}

	if got := run(t, f, "if (boxed) { knight.move(EAST); }"); got != NULL {
		t.Errorf("if without else = %s, want NULL", got.Inspect())
	}
}

func TestWhileErrorAborts(t *testing.T) {
	f := newFixture(10)

	result := run(t, f, "while (not knight.isNextTo(EAST, WALL)) { knight.move(EAST); knight.jump(); }")
	if result.Inspect() != "jump is not implemented yet" {
		t.Errorf("result = %q", result.Inspect())
	}

	if got := f.knight.count(MethodMove); got != 1 {
		t.Errorf("moves = %d, want 1", got)
	}
}

func TestRecursion(t *testing.T) {
	f := newFixture(4)

	result := run(t, f, `
function walk() {
	if (not knight.isNextTo(EAST, WALL)) {
		knight.move(EAST);
		walk();
	}
}
walk();`)
	if IsError(result) {
		t.Fatal(result.Inspect())
	}

	if f.knight.column != 3 {
		t.Errorf("column = %d, want 3", f.knight.column)
	}
}

func TestParameterBinding(t *testing.T) {
	f := newFixture(5)

	result := run(t, f, "function step(d) { knight.move(d); } step(EAST, WEST, NORTH);")
	if IsError(result) {
		t.Fatal(result.Inspect())
	}

	if f.knight.column != 1 {
		t.Errorf("column = %d, want 1", f.knight.column)
	}

	// parameters shadow outer names only inside the call
	result = run(t, f, "function shadow(EAST) { knight.move(EAST); } shadow(WEST); knight.move(EAST);")
	if IsError(result) {
		t.Fatal(result.Inspect())
	}

	if f.knight.column != 1 {
		t.Errorf("column = %d, want 1", f.knight.column)
	}
}

func TestMaxDepth(t *testing.T) {
	f := newFixture(3)

	result := run(t, f, "function f() { f(); } f();", WithMaxDepth(32))
	if result.Inspect() != "maximum call depth exceeded" {
		t.Errorf("result = %q", result.Inspect())
	}

	// depth is released after the error
	ev := NewEvaluator(WithMaxDepth(4))
	ev.Eval(t.Context(), parse(t, "function f() { f(); } f();"), f.env)

	if ev.depth != 0 {
		t.Errorf("depth after error = %d", ev.depth)
	}
}

func TestCancellation(t *testing.T) {
	loop := "while (not knight.isNextTo(NORTH, WALL)) { knight.move(NORTH); }"

	t.Run("cancelled", func(t *testing.T) {
		f := newFixture(3)

		ctx, cancel := context.WithCancelCause(t.Context())
		cancel(errors.New("stop"))

		result := Eval(ctx, parse(t, loop), f.env)
		if result.Inspect() != "evaluation cancelled: stop" {
			t.Errorf("result = %q", result.Inspect())
		}
	})

	t.Run("deadline", func(t *testing.T) {
		f := newFixture(3)

		ctx, cancel := context.WithTimeout(t.Context(), 20*time.Millisecond)
		defer cancel()

		result := Eval(ctx, parse(t, loop), f.env)
		if !strings.HasPrefix(result.Inspect(), "evaluation cancelled: ") {
			t.Errorf("result = %q", result.Inspect())
		}

		if f.knight.count(MethodMove) == 0 {
			t.Error("loop never ran")
		}
	})
}

func TestDeterminism(t *testing.T) {
	program := parse(t, `
extend knight { function east() { this.move(EAST); } }
while (not knight.isNextTo(EAST, WALL)) { knight.east(); }
knight.isNextTo(EAST, WALL);`)

	a, b := newFixture(5), newFixture(5)

	ra := Eval(t.Context(), program, a.env)
	rb := Eval(t.Context(), program, b.env)

	if ra != rb || ra != TRUE {
		t.Errorf("results = %s, %s", ra.Inspect(), rb.Inspect())
	}

	if len(a.knight.calls) != len(b.knight.calls) || a.knight.column != b.knight.column {
		t.Errorf("runs diverged: %d/%d calls", len(a.knight.calls), len(b.knight.calls))
	}
}

func TestFunctionRegistersInCurrentScope(t *testing.T) {
	f := newFixture(3)

	result := run(t, f, `
function outer() {
	function inner() { knight.move(EAST); }
	inner();
}
outer();
inner();`)
	if result.Inspect() != "Identifier not found: inner" {
		t.Errorf("result = %q", result.Inspect())
	}

	if f.knight.column != 1 {
		t.Errorf("column = %d, want 1", f.knight.column)
	}
}
