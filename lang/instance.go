package lang

import (
	"iter"
	"maps"
	"slices"
)

// Character is a host object that can be scripted. Every character can move
// and probe its surroundings.
type Character interface {
	Move(args []Object) Object
	IsNextTo(args []Object) Object
}

// Attacker is a Character that can attack.
type Attacker interface {
	Character
	Attack(args []Object) Object
}

// Supporter is a Character that can lend its strength to another.
type Supporter interface {
	Character
	Support(args []Object) Object
}

// Native method names.
const (
	MethodMove     = "move"
	MethodAttack   = "attack"
	MethodIsNextTo = "isNextTo"
	MethodSupport  = "support"
)

// Instance binds a Character to script-callable methods.
//
// Built-in slots take precedence over user-defined methods of the same name.
type Instance struct {
	Character Character

	move     *NativeFunction
	attack   *NativeFunction
	isNextTo *NativeFunction
	support  *NativeFunction

	methods map[string]*Function
	env     *Environment
}

// NewInstance wraps c. The instance's private environment encloses base and
// binds "this" to the instance; functions attached with extend close over it.
func NewInstance(c Character, base *Environment) *Instance {
	inst := &Instance{
		Character: c,
		move:      &NativeFunction{Name: MethodMove, Fn: c.Move},
		isNextTo:  &NativeFunction{Name: MethodIsNextTo, Fn: c.IsNextTo},
		methods:   make(map[string]*Function),
	}

	if a, ok := c.(Attacker); ok {
		inst.attack = &NativeFunction{Name: MethodAttack, Fn: a.Attack}
	}

	if s, ok := c.(Supporter); ok {
		inst.support = &NativeFunction{Name: MethodSupport, Fn: s.Support}
	}

	if base == nil {
		inst.env = NewEnvironment()
	} else {
		inst.env = NewEnclosedEnvironment(base)
	}

	inst.env.Set("this", inst)

	return inst
}

func (*Instance) Type() ObjectType { return InstanceObj }
func (*Instance) Inspect() string  { return "<Instance>" }

// Env returns the instance's private environment.
func (i *Instance) Env() *Environment { return i.env }

// Get resolves a property: move, attack, isNextTo, support, then
// user-defined methods.
func (i *Instance) Get(name string) Object {
	switch {
	case name == MethodMove:
		return i.move
	case name == MethodAttack && i.attack != nil:
		return i.attack
	case name == MethodIsNextTo:
		return i.isNextTo
	case name == MethodSupport && i.support != nil:
		return i.support
	}

	if fn, ok := i.methods[name]; ok {
		return fn
	}

	return NewErrorObject(name + " is not implemented yet")
}

// AddFunction registers a user-defined method.
func (i *Instance) AddFunction(name string, fn *Function) {
	i.methods[name] = fn
}

// Methods returns the names of every resolvable property in sorted order.
func (i *Instance) Methods() iter.Seq[string] {
	names := []string{MethodMove, MethodIsNextTo}

	if i.attack != nil {
		names = append(names, MethodAttack)
	}

	if i.support != nil {
		names = append(names, MethodSupport)
	}

	for name := range maps.Keys(i.methods) {
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}

	slices.Sort(names)

	return slices.Values(names)
}
