package lang

import (
	"slices"
	"testing"
)

func TestEnvironmentChain(t *testing.T) {
	outer := NewEnvironment()
	outer.Set("a", TRUE)
	outer.Set("b", TRUE)

	inner := NewEnclosedEnvironment(outer)
	inner.Set("b", FALSE)
	inner.Set("c", NULL)

	tests := []struct {
		env  *Environment
		name string
		want Object
		ok   bool
	}{
		{inner, "a", TRUE, true},
		{inner, "b", FALSE, true},
		{inner, "c", NULL, true},
		{outer, "b", TRUE, true},
		{outer, "c", nil, false},
		{inner, "d", nil, false},
	}

	for _, tt := range tests {
		got, ok := tt.env.Get(tt.name)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Get(%q) = (%v, %v), want (%v, %v)", tt.name, got, ok, tt.want, tt.ok)
		}
	}

	if inner.Outer() != outer || outer.Outer() != nil {
		t.Error("Outer() does not reflect the chain")
	}

	if got := slices.Collect(inner.Names()); !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("Names() = %v", got)
	}
}

func TestInstanceSlots(t *testing.T) {
	std := standardEnv()

	knight := NewInstance(&fakeKnight{}, std)
	mage := NewInstance(&fakeMage{}, std)
	plain := NewInstance(&fakeCharacter{}, nil)

	tests := []struct {
		inst *Instance
		want []string
	}{
		{knight, []string{"attack", "isNextTo", "move"}},
		{mage, []string{"isNextTo", "move", "support"}},
		{plain, []string{"isNextTo", "move"}},
	}

	for _, tt := range tests {
		if got := slices.Collect(tt.inst.Methods()); !slices.Equal(got, tt.want) {
			t.Errorf("Methods() = %v, want %v", got, tt.want)
		}
	}

	if this, _ := knight.Env().Get("this"); this != knight {
		t.Error("this is not bound to the instance")
	}

	if _, ok := knight.Env().Get("NORTH"); !ok {
		t.Error("instance environment does not see standard constants")
	}

	knight.AddFunction("dash", &Function{Name: "dash"})

	if got := slices.Collect(knight.Methods()); !slices.Contains(got, "dash") {
		t.Errorf("Methods() = %v, missing dash", got)
	}
}
