package lang

import "strings"

// Node is an element of the syntax tree.
//
// The set of nodes is closed: every implementation is declared in this file.
type Node interface {
	// Line returns the 1-based source line where the node begins.
	Line() int
	// String renders the node on a single line in source syntax.
	String() string

	node()
}

// Statement is a Node that appears in a statement list.
type Statement interface {
	Node
	statement()
}

// Expression is a Node that produces a value.
type Expression interface {
	Node
	expression()
}

// Program is the root of a parsed script.
type Program struct {
	Statements []Statement
}

// ExpressionStatement is an expression evaluated for its effect.
type ExpressionStatement struct {
	Token      Token
	Expression Expression
}

// Identifier is a name reference.
type Identifier struct {
	Token Token
	Value string
}

// CallExpression applies Function to Arguments.
type CallExpression struct {
	Token     Token // (
	Function  Expression
	Arguments []Expression
}

// DotExpression is a member access Left.Right.
type DotExpression struct {
	Token Token // .
	Left  Expression
	Right Expression
}

// NotExpression negates its Operand.
type NotExpression struct {
	Token   Token
	Operand Expression
}

// BlockStatement is a brace-delimited statement list.
type BlockStatement struct {
	Token      Token // {
	Statements []Statement
}

// IfStatement is a conditional with an optional else block.
type IfStatement struct {
	Token       Token
	Condition   Expression
	Consequence *BlockStatement
	Alternative *BlockStatement
}

// WhileStatement repeats Body while Condition is true.
type WhileStatement struct {
	Token     Token
	Condition Expression
	Body      *BlockStatement
}

// ExtendStatement attaches Functions to the instance named by Target.
type ExtendStatement struct {
	Token     Token
	Target    *Identifier
	Functions []*FunctionStatement
}

// FunctionStatement defines a named function.
type FunctionStatement struct {
	Token      Token
	Name       *Identifier
	Parameters []*Identifier
	Body       *BlockStatement
}

func (*Program) node()             {}
func (*ExpressionStatement) node() {}
func (*Identifier) node()          {}
func (*CallExpression) node()      {}
func (*DotExpression) node()       {}
func (*NotExpression) node()       {}
func (*BlockStatement) node()      {}
func (*IfStatement) node()         {}
func (*WhileStatement) node()      {}
func (*ExtendStatement) node()     {}
func (*FunctionStatement) node()   {}

func (*ExpressionStatement) statement() {}
func (*BlockStatement) statement()      {}
func (*IfStatement) statement()         {}
func (*WhileStatement) statement()      {}
func (*ExtendStatement) statement()     {}
func (*FunctionStatement) statement()   {}

func (*Identifier) expression()     {}
func (*CallExpression) expression() {}
func (*DotExpression) expression()  {}
func (*NotExpression) expression()  {}

func (p *Program) Line() int {
	if len(p.Statements) == 0 {
		return 1
	}

	return p.Statements[0].Line()
}

func (s *ExpressionStatement) Line() int { return s.Token.Line }
func (i *Identifier) Line() int          { return i.Token.Line }
func (c *CallExpression) Line() int      { return c.Function.Line() }
func (d *DotExpression) Line() int       { return d.Left.Line() }
func (n *NotExpression) Line() int       { return n.Token.Line }
func (b *BlockStatement) Line() int      { return b.Token.Line }
func (s *IfStatement) Line() int         { return s.Token.Line }
func (s *WhileStatement) Line() int      { return s.Token.Line }
func (s *ExtendStatement) Line() int     { return s.Token.Line }
func (s *FunctionStatement) Line() int   { return s.Token.Line }

func (p *Program) String() string {
	return joinStatements(p.Statements)
}

func (s *ExpressionStatement) String() string {
	return s.Expression.String() + ";"
}

func (i *Identifier) String() string { return i.Value }

func (c *CallExpression) String() string {
	args := make([]string, len(c.Arguments))
	for i, a := range c.Arguments {
		args[i] = a.String()
	}

	return c.Function.String() + "(" + strings.Join(args, ", ") + ")"
}

func (d *DotExpression) String() string {
	return d.Left.String() + "." + d.Right.String()
}

func (n *NotExpression) String() string {
	return "not " + n.Operand.String()
}

func (b *BlockStatement) String() string {
	if len(b.Statements) == 0 {
		return "{}"
	}

	return "{ " + joinStatements(b.Statements) + " }"
}

func (s *IfStatement) String() string {
	out := "if (" + s.Condition.String() + ") " + s.Consequence.String()
	if s.Alternative != nil {
		out += " else " + s.Alternative.String()
	}

	return out
}

func (s *WhileStatement) String() string {
	return "while (" + s.Condition.String() + ") " + s.Body.String()
}

func (s *ExtendStatement) String() string {
	fns := make([]string, len(s.Functions))
	for i, f := range s.Functions {
		fns[i] = f.String()
	}

	if len(fns) == 0 {
		return "extend " + s.Target.String() + " {}"
	}

	return "extend " + s.Target.String() + " { " + strings.Join(fns, " ") + " }"
}

func (s *FunctionStatement) String() string {
	return "function " + s.Name.String() + "(" + s.ParameterNames() + ") " +
		s.Body.String()
}

// ParameterNames returns the comma-separated parameter list.
func (s *FunctionStatement) ParameterNames() string {
	names := make([]string, len(s.Parameters))
	for i, p := range s.Parameters {
		names[i] = p.Value
	}

	return strings.Join(names, ", ")
}

func joinStatements(stmts []Statement) string {
	parts := make([]string, len(stmts))
	for i, s := range stmts {
		parts[i] = s.String()
	}

	return strings.Join(parts, " ")
}
