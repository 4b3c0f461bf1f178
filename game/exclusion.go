package game

import (
	"fmt"

	"github.com/ardnew/dragon/lang"
	"github.com/ardnew/dragon/level"
)

// Statements returns the level statements program uses, in order of first
// appearance.
func Statements(program *lang.Program) []level.Statement {
	var (
		seen = make(map[level.Statement]bool)
		used []level.Statement
	)

	add := func(s level.Statement) {
		if !seen[s] {
			seen[s] = true
			used = append(used, s)
		}
	}

	for n := range lang.Nodes(program) {
		switch n := n.(type) {
		case *lang.IfStatement:
			add(level.IF)
		case *lang.WhileStatement:
			add(level.WHILE)
		case *lang.NotExpression:
			add(level.NOT)
		case *lang.DotExpression:
			if id, ok := n.Right.(*lang.Identifier); ok {
				if s, ok := methodStatement(id.Value); ok {
					add(s)
				}
			}
		}
	}

	return used
}

func methodStatement(method string) (level.Statement, bool) {
	switch method {
	case lang.MethodMove:
		return level.MOVE, true
	case lang.MethodAttack:
		return level.ATTACK, true
	case lang.MethodSupport:
		return level.SUPPORT, true
	case lang.MethodIsNextTo:
		return level.IS_NEXT_TO, true
	default:
		return 0, false
	}
}

// violation returns a message describing the first use of something the
// level forbids, or the empty string.
func (g *Game) violation(program *lang.Program) string {
	for _, s := range Statements(program) {
		if g.def.Excludes(s) {
			return fmt.Sprintf("%s is not allowed in this level.", s)
		}
	}

	for n := range lang.Nodes(program) {
		ext, ok := n.(*lang.ExtendStatement)
		if ok && !g.def.CanExtend(ext.Target.Value) {
			return fmt.Sprintf("Line[%d]: %s cannot be extended in this level.",
				ext.Line(), ext.Target.Value)
		}
	}

	return ""
}
