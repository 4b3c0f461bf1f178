package lang

type direction string

func (d direction) String() string { return string(d) }

type target string

func (t target) String() string { return string(t) }

type call struct {
	method string
	args   []Object
}

// fakeCharacter walks along a single row of width cells.
type fakeCharacter struct {
	calls  []call
	column int
	width  int
}

func (c *fakeCharacter) record(method string, args []Object) {
	c.calls = append(c.calls, call{method: method, args: args})
}

func (c *fakeCharacter) Move(args []Object) Object {
	c.record(MethodMove, args)

	if len(args) != 1 {
		return NewErrorObject("Expected 1 arg")
	}

	if g, ok := args[0].(*GameObject); ok {
		switch g.Content {
		case direction("EAST"):
			c.column++
		case direction("WEST"):
			c.column--
		}
	}

	return nil
}

func (c *fakeCharacter) IsNextTo(args []Object) Object {
	c.record(MethodIsNextTo, args)

	if len(args) != 2 {
		return NewErrorObject("Expected 2 arg")
	}

	dir, _ := args[0].(*GameObject)
	what, _ := args[1].(*GameObject)

	if dir == nil || what == nil {
		return NULL
	}

	if dir.Content == direction("EAST") && what.Content == target("WALL") {
		return NativeBoolean(c.column+1 >= c.width)
	}

	return FALSE
}

func (c *fakeCharacter) count(method string) int {
	n := 0

	for _, cl := range c.calls {
		if cl.method == method {
			n++
		}
	}

	return n
}

type fakeKnight struct{ fakeCharacter }

func (k *fakeKnight) Attack(args []Object) Object {
	k.record(MethodAttack, args)

	return NULL
}

type fakeMage struct{ fakeCharacter }

func (m *fakeMage) Support(args []Object) Object {
	m.record(MethodSupport, args)

	return NULL
}

func standardEnv() *Environment {
	env := NewEnvironment()

	for _, d := range []direction{"NORTH", "EAST", "SOUTH", "WEST"} {
		env.Set(string(d), &GameObject{Content: d})
	}

	for _, name := range []string{"ROAD", "WALL", "HOLE"} {
		env.Set(name, &GameObject{Content: target(name)})
	}

	env.Set("dragon", &GameObject{Content: target("DRAGON")})

	return env
}

type fixture struct {
	env    *Environment
	knight *fakeKnight
	mage   *fakeMage
}

func newFixture(width int) fixture {
	std := standardEnv()
	f := fixture{
		env:    NewEnclosedEnvironment(std),
		knight: &fakeKnight{fakeCharacter{width: width}},
		mage:   &fakeMage{fakeCharacter{width: width}},
	}

	f.env.Set("knight", NewInstance(f.knight, std))
	f.env.Set("mage", NewInstance(f.mage, std))

	return f
}
