package cmd

import (
	"errors"
	"os"
	"strings"
	"testing"
)

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	good := writeTestFile(t, dir, "good.txt", firstPlan)
	bad := writeTestFile(t, dir, "bad.txt", "knight.move(EAST;\n")

	ctx, out := testContext(t, "")

	if err := (&Check{Sources: []string{good}}).Run(ctx); err != nil {
		t.Fatalf("Run(good) error = %v", err)
	}

	if !strings.Contains(out.String(), "ok "+good) {
		t.Errorf("output = %q", out)
	}

	out.Reset()

	err := (&Check{Sources: []string{good, bad}}).Run(ctx)
	if !errors.Is(err, ErrCheck) {
		t.Fatalf("Run(bad) error = %v, want %v", err, ErrCheck)
	}

	for _, want := range []string{"FAIL " + bad, "Line[1]", "^"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFmt(t *testing.T) {
	const (
		messy = "knight.move(EAST)\nif (knight.isNextTo(EAST, dragon)) { knight.attack(EAST); }"
		tidy  = "knight.move(EAST);\nif (knight.isNextTo(EAST, dragon)) {\n    knight.attack(EAST);\n}\n"
	)

	ctx, out := testContext(t, messy)

	if err := (&Fmt{Sources: []string{"-"}}).Run(ctx); err != nil {
		t.Fatal(err)
	}

	if out.String() != tidy {
		t.Errorf("stdout = %q, want %q", out, tidy)
	}

	path := writeTestFile(t, t.TempDir(), "plan.txt", messy)
	out.Reset()

	if err := (&Fmt{Write: true, Sources: []string{path}}).Run(ctx); err != nil {
		t.Fatal(err)
	}

	if out.Len() != 0 {
		t.Errorf("fmt -w wrote to stdout: %q", out)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if string(data) != tidy {
		t.Errorf("file = %q, want %q", data, tidy)
	}

	bad := writeTestFile(t, t.TempDir(), "bad.txt", "knight.move(;")
	if err := (&Fmt{Sources: []string{bad}}).Run(ctx); !errors.Is(err, ErrCheck) {
		t.Errorf("Run(bad) error = %v, want %v", err, ErrCheck)
	}
}

func TestLevels(t *testing.T) {
	ctx, out := testContext(t, "")

	if err := (&Levels{}).Run(ctx); err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{"World #1", "World #3", "1-1", "3-4", "mage"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("list missing %q:\n%s", want, out)
		}
	}

	out.Reset()

	if err := (&Levels{ID: "3-4"}).Run(ctx); err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{"K", "M", "D", "level:", "World #3", "goal:", "dragon.hp == 0", "support"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("show missing %q:\n%s", want, out)
		}
	}

	if err := (&Levels{ID: "0-0"}).Run(ctx); err == nil {
		t.Error("Run(0-0) succeeded")
	}
}

func TestSolve(t *testing.T) {
	ctx, out := testContext(t, "")

	if err := (&Solve{}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v\n%s", err, out)
	}

	if got := strings.Count(out.String(), "WON "); got != 10 {
		t.Errorf("solved %d levels, want 10:\n%s", got, out)
	}

	out.Reset()

	if err := (&Solve{Levels: []string{"2-1"}}).Run(ctx); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(out.String(), "WON 2-1") {
		t.Errorf("output = %q", out)
	}
}
