package lang

import (
	"context"
	"fmt"
	"log/slog"
)

// Evaluator walks a syntax tree against an [Environment].
//
// An Evaluator tracks call depth and must not be used by more than one
// goroutine at a time.
type Evaluator struct {
	opts  options
	depth int
}

// NewEvaluator returns an Evaluator configured by opts.
func NewEvaluator(opts ...Option) *Evaluator {
	return &Evaluator{opts: makeOptions(opts...)}
}

// Eval evaluates node in env with a new [Evaluator].
func Eval(ctx context.Context, node Node, env *Environment, opts ...Option) Object {
	return NewEvaluator(opts...).Eval(ctx, node, env)
}

// Eval evaluates node in env and returns the resulting object.
//
// Script errors are returned as [*ErrorObject] values. Cancelling ctx stops
// evaluation at the next loop iteration or function call.
func (e *Evaluator) Eval(ctx context.Context, node Node, env *Environment) Object {
	if env == nil {
		env = NewEnvironment()
	}

	e.opts.logger.TraceContext(ctx, "eval start", slog.String("node", fmt.Sprintf("%T", node)))

	result := e.eval(ctx, node, env)

	if IsError(result) {
		e.opts.logger.TraceContext(ctx, "eval error", slog.String("error", result.Inspect()))
	} else {
		e.opts.logger.TraceContext(ctx, "eval complete",
			slog.String("type", result.Type().String()),
			slog.String("result", result.Inspect()))
	}

	return result
}

func (e *Evaluator) eval(ctx context.Context, node Node, env *Environment) Object {
	switch node := node.(type) {
	case *Program:
		return e.evalProgram(ctx, node, env)

	case *ExpressionStatement:
		return e.eval(ctx, node.Expression, env)

	case *Identifier:
		return evalIdentifier(node, env)

	case *DotExpression:
		return e.evalDotExpression(ctx, node, env)

	case *CallExpression:
		return e.evalCallExpression(ctx, node, env)

	case *NotExpression:
		return e.evalNotExpression(ctx, node, env)

	case *BlockStatement:
		return e.evalBlockStatement(ctx, node, env)

	case *IfStatement:
		return e.evalIfStatement(ctx, node, env)

	case *WhileStatement:
		return e.evalWhileStatement(ctx, node, env)

	case *FunctionStatement:
		env.Set(node.Name.Value, newFunction(node, env))

		return NULL

	case *ExtendStatement:
		return e.evalExtendStatement(ctx, node, env)

	case nil:
		return NewErrorObject("Program is empty.")

	default:
		return NewErrorObject(fmt.Sprintf("cannot evaluate %T", node))
	}
}

func (e *Evaluator) evalProgram(ctx context.Context, p *Program, env *Environment) Object {
	var result Object = NewErrorObject("Program is empty.")

	if p == nil {
		return result
	}

	for _, stmt := range p.Statements {
		if result = e.eval(ctx, stmt, env); IsError(result) {
			return result
		}
	}

	return result
}

func (e *Evaluator) evalBlockStatement(
	ctx context.Context,
	b *BlockStatement,
	env *Environment,
) Object {
	var result Object = NULL

	for _, stmt := range b.Statements {
		if result = e.eval(ctx, stmt, env); IsError(result) {
			return result
		}
	}

	return result
}

func evalIdentifier(id *Identifier, env *Environment) Object {
	if obj, ok := env.Get(id.Value); ok {
		return obj
	}

	return NewErrorObject("Identifier not found: " + id.Value)
}

func (e *Evaluator) evalDotExpression(
	ctx context.Context,
	d *DotExpression,
	env *Environment,
) Object {
	left := e.eval(ctx, d.Left, env)
	if IsError(left) {
		return left
	}

	inst, ok := left.(*Instance)
	if !ok {
		return NewErrorObject("'left' in dot expression must be an <Instance>.")
	}

	prop, ok := d.Right.(*Identifier)
	if !ok {
		return NewErrorObject("'right' in dot expression must be an <Identifier>.")
	}

	return inst.Get(prop.Value)
}

func (e *Evaluator) evalCallExpression(
	ctx context.Context,
	c *CallExpression,
	env *Environment,
) Object {
	callee := e.eval(ctx, c.Function, env)
	if IsError(callee) {
		return callee
	}

	if callee.Type() != FunctionObj {
		return NewErrorObject(callee.Type().String() + " is not a function")
	}

	args := make([]Object, 0, len(c.Arguments))

	for _, arg := range c.Arguments {
		val := e.eval(ctx, arg, env)
		if IsError(val) {
			return val
		}

		args = append(args, val)
	}

	switch fn := callee.(type) {
	case *NativeFunction:
		e.opts.logger.TraceContext(ctx, "native call",
			slog.String("name", fn.Name),
			slog.Int("args", len(args)))

		if result := fn.Fn(args); result != nil {
			return result
		}

		return NULL

	case *Function:
		return e.applyFunction(ctx, fn, args)

	default:
		return NewErrorObject(callee.Type().String() + " is not a function")
	}
}

func (e *Evaluator) applyFunction(ctx context.Context, fn *Function, args []Object) Object {
	if err := ctx.Err(); err != nil {
		return cancelled(ctx)
	}

	if e.depth >= e.opts.maxDepth {
		return NewErrorObject("maximum call depth exceeded")
	}

	e.depth++
	defer func() { e.depth-- }()

	// Missing arguments stay unbound; extra arguments are ignored.
	frame := NewEnclosedEnvironment(fn.Env)
	for i, name := range fn.Parameters {
		if i < len(args) {
			frame.Set(name, args[i])
		}
	}

	return e.eval(ctx, fn.Body, frame)
}

func (e *Evaluator) evalNotExpression(
	ctx context.Context,
	n *NotExpression,
	env *Environment,
) Object {
	operand := e.eval(ctx, n.Operand, env)
	if IsError(operand) {
		return operand
	}

	if operand == TRUE {
		return FALSE
	}

	if operand == FALSE {
		return TRUE
	}

	return FALSE
}

func (e *Evaluator) evalIfStatement(ctx context.Context, s *IfStatement, env *Environment) Object {
	cond := e.eval(ctx, s.Condition, env)
	if IsError(cond) {
		return cond
	}

	if cond == TRUE {
		return e.eval(ctx, s.Consequence, env)
	}

	if s.Alternative != nil {
		return e.eval(ctx, s.Alternative, env)
	}

	return NULL
}

func (e *Evaluator) evalWhileStatement(
	ctx context.Context,
	s *WhileStatement,
	env *Environment,
) Object {
	for {
		if err := ctx.Err(); err != nil {
			return cancelled(ctx)
		}

		cond := e.eval(ctx, s.Condition, env)
		if IsError(cond) {
			return cond
		}

		if cond != TRUE {
			return NULL
		}

		if result := e.eval(ctx, s.Body, env); IsError(result) {
			return result
		}
	}
}

func (e *Evaluator) evalExtendStatement(
	ctx context.Context,
	s *ExtendStatement,
	env *Environment,
) Object {
	target := e.eval(ctx, s.Target, env)
	if IsError(target) {
		return target
	}

	inst, ok := target.(*Instance)
	if !ok {
		return NewErrorObject(fmt.Sprintf(
			"Extends only works on instances! %s is not an instance.", target.Type()))
	}

	for _, fn := range s.Functions {
		inst.AddFunction(fn.Name.Value, newFunction(fn, inst.Env()))
	}

	return NULL
}

func newFunction(s *FunctionStatement, env *Environment) *Function {
	params := make([]string, len(s.Parameters))
	for i, p := range s.Parameters {
		params[i] = p.Value
	}

	return &Function{Name: s.Name.Value, Parameters: params, Body: s.Body, Env: env}
}

func cancelled(ctx context.Context) *ErrorObject {
	return NewErrorObject("evaluation cancelled: " + context.Cause(ctx).Error())
}
