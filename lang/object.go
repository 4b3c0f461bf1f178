package lang

import "strings"

// ObjectType identifies the runtime type of an [Object].
type ObjectType int

// Object types.
const (
	NullObj ObjectType = iota
	ErrorObj
	InstanceObj
	FunctionObj
	GameObjectObj
	BooleanObj
)

func (t ObjectType) String() string {
	switch t {
	case NullObj:
		return "NULL"
	case ErrorObj:
		return "ERROR"
	case InstanceObj:
		return "INSTANCE"
	case FunctionObj:
		return "FUNCTION"
	case GameObjectObj:
		return "GAME_OBJECT"
	case BooleanObj:
		return "BOOLEAN"
	default:
		return "UNKNOWN"
	}
}

// Object is a runtime value.
type Object interface {
	Type() ObjectType
	Inspect() string
}

// Canonical singletons. Conditions compare against TRUE and FALSE by
// identity.
//
//nolint:gochecknoglobals
var (
	TRUE  = &Boolean{Value: true}
	FALSE = &Boolean{Value: false}
	NULL  = &Null{}
)

// NativeBoolean returns the canonical singleton for b.
func NativeBoolean(b bool) *Boolean {
	if b {
		return TRUE
	}

	return FALSE
}

// ErrorObject is a script-level error. It is returned, never raised.
type ErrorObject struct {
	Message string
}

// NewErrorObject returns an ErrorObject with the given message.
func NewErrorObject(msg string) *ErrorObject { return &ErrorObject{Message: msg} }

func (*ErrorObject) Type() ObjectType  { return ErrorObj }
func (e *ErrorObject) Inspect() string { return e.Message }

// Boolean is a truth value. Only [TRUE] and [FALSE] exist.
type Boolean struct {
	Value bool
}

func (*Boolean) Type() ObjectType { return BooleanObj }

func (b *Boolean) Inspect() string {
	if b.Value {
		return "true"
	}

	return "false"
}

// Null is the absence of a value. Only [NULL] exists.
type Null struct{}

func (*Null) Type() ObjectType { return NullObj }
func (*Null) Inspect() string  { return "null" }

// Function is a user-defined function with its defining environment.
type Function struct {
	Name       string
	Parameters []string
	Body       *BlockStatement
	Env        *Environment
}

func (*Function) Type() ObjectType { return FunctionObj }

func (f *Function) Inspect() string {
	return "function " + f.Name + " (" + strings.Join(f.Parameters, ", ") + ") {}"
}

// NativeFunc is a host callback invoked with evaluated arguments.
type NativeFunc func(args []Object) Object

// NativeFunction exposes a host callback to scripts.
type NativeFunction struct {
	Name string
	Fn   NativeFunc
}

func (*NativeFunction) Type() ObjectType { return FunctionObj }
func (*NativeFunction) Inspect() string  { return "<native function>" }

// GameObject wraps an opaque host constant passed to native functions.
type GameObject struct {
	Content any
}

func (*GameObject) Type() ObjectType { return GameObjectObj }

func (g *GameObject) Inspect() string {
	if s, ok := g.Content.(interface{ String() string }); ok {
		return s.String()
	}

	return "<game object>"
}

// IsError reports whether obj is an [*ErrorObject].
func IsError(obj Object) bool {
	return obj != nil && obj.Type() == ErrorObj
}
