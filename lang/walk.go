package lang

import "iter"

// Inspect traverses the tree rooted at node in depth-first order, calling f
// for each node. If f returns false the children of that node are skipped.
func Inspect(node Node, f func(Node) bool) {
	if node == nil || !f(node) {
		return
	}

	for _, child := range children(node) {
		Inspect(child, f)
	}
}

// Nodes returns an iterator over every node in the tree rooted at node in
// depth-first order.
func Nodes(node Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		stop := false

		Inspect(node, func(n Node) bool {
			if stop {
				return false
			}

			if !yield(n) {
				stop = true

				return false
			}

			return true
		})
	}
}

func children(node Node) []Node {
	switch n := node.(type) {
	case *Program:
		return statementNodes(n.Statements)

	case *ExpressionStatement:
		return []Node{n.Expression}

	case *CallExpression:
		out := []Node{n.Function}
		for _, a := range n.Arguments {
			out = append(out, a)
		}

		return out

	case *DotExpression:
		return []Node{n.Left, n.Right}

	case *NotExpression:
		return []Node{n.Operand}

	case *BlockStatement:
		return statementNodes(n.Statements)

	case *IfStatement:
		out := []Node{n.Condition, n.Consequence}
		if n.Alternative != nil {
			out = append(out, n.Alternative)
		}

		return out

	case *WhileStatement:
		return []Node{n.Condition, n.Body}

	case *ExtendStatement:
		out := []Node{n.Target}
		for _, f := range n.Functions {
			out = append(out, f)
		}

		return out

	case *FunctionStatement:
		out := []Node{n.Name}
		for _, p := range n.Parameters {
			out = append(out, p)
		}

		return append(out, n.Body)

	default:
		return nil
	}
}

func statementNodes(stmts []Statement) []Node {
	out := make([]Node, len(stmts))
	for i, s := range stmts {
		out[i] = s
	}

	return out
}
