package game

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/ardnew/dragon/lang"
	"github.com/ardnew/dragon/level"
)

func TestRenderQueue(t *testing.T) {
	q := NewRenderQueue()

	if _, ok := q.Pop(); ok {
		t.Fatal("Pop on empty queue")
	}

	q.Push(Frame{Kind: LEVEL})
	q.Push(Frame{Kind: DIALOG, Dialog: "a"})
	q.Push(Frame{Kind: DIALOG, Dialog: "b"})

	if q.Len() != 3 {
		t.Fatalf("Len = %d", q.Len())
	}

	if f, ok := q.Pop(); !ok || f.Kind != LEVEL {
		t.Errorf("Pop = %+v, %v", f, ok)
	}

	frames := q.Drain()
	if len(frames) != 2 || frames[0].Dialog != "a" || frames[1].Dialog != "b" {
		t.Errorf("Drain = %+v", frames)
	}

	if q.Len() != 0 {
		t.Errorf("Len after Drain = %d", q.Len())
	}
}

func TestFrameJSON(t *testing.T) {
	g := newGame(t, lookup(t, "3-4"))

	b, err := json.Marshal(g.Frames()[0])
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		`"kind":"LEVEL"`,
		`"tiles":[["HOLE","ROAD","HOLE"]`,
		`"mage":{"position":{"row":0,"column":1},"attack":1}`,
		`"dragon":{"positions":[{"row":2,"column":2}],"hp":2}`,
	} {
		if !strings.Contains(string(b), want) {
			t.Errorf("%s\nmissing %s", b, want)
		}
	}

	var f Frame
	if err := json.Unmarshal(b, &f); err != nil {
		t.Fatal(err)
	}

	if f.Kind != LEVEL || f.Tiles[2][0] != level.ROAD {
		t.Errorf("decoded = %+v", f)
	}
}

func TestFrameKindText(t *testing.T) {
	var k FrameKind

	if err := k.UnmarshalText([]byte("dialog")); err != nil || k != DIALOG {
		t.Errorf("UnmarshalText(dialog) = %v, %v", k, err)
	}

	err := k.UnmarshalText([]byte("CUTSCENE"))
	if !errors.Is(err, ErrUnknownFrameKind) {
		t.Errorf("UnmarshalText(CUTSCENE) error = %v, want %v", err, ErrUnknownFrameKind)
	}

	var f Frame
	if err := json.Unmarshal([]byte(`{"kind":"CUTSCENE"}`), &f); !errors.Is(err, ErrUnknownFrameKind) {
		t.Errorf("decode frame error = %v, want %v", err, ErrUnknownFrameKind)
	}
}

func TestStandardEnv(t *testing.T) {
	env := StandardEnv()

	want := map[string]any{
		"NORTH":  NORTH,
		"EAST":   EAST,
		"SOUTH":  SOUTH,
		"WEST":   WEST,
		"dragon": DRAGON,
		"ROAD":   ROAD,
		"WALL":   WALL,
		"HOLE":   HOLE,
	}

	n := 0
	for name := range env.Names() {
		n++

		obj, _ := env.Get(name)

		g, ok := obj.(*lang.GameObject)
		if !ok || g.Content != want[name] {
			t.Errorf("%s = %v", name, obj)
		}
	}

	if n != len(want) {
		t.Errorf("names = %d, want %d", n, len(want))
	}
}

func TestDirectionNext(t *testing.T) {
	p := level.Position{Row: 1, Column: 1}

	tests := map[Direction]level.Position{
		NORTH: {Row: 0, Column: 1},
		SOUTH: {Row: 2, Column: 1},
		EAST:  {Row: 1, Column: 2},
		WEST:  {Row: 1, Column: 0},
	}

	for d, want := range tests {
		if got := d.Next(p); got != want {
			t.Errorf("%v.Next(%v) = %v, want %v", d, p, got, want)
		}
	}
}
