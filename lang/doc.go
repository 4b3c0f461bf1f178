// Package lang implements the scripting language used to command the knight
// and the mage.
//
// # Grammar
//
// Informal EBNF:
//
//	program      → statement*
//	statement    → whileStmt | ifStmt | extendStmt | functionStmt | exprStmt
//	whileStmt    → "while" "(" expr ")" "{" statement* "}"
//	ifStmt       → "if" "(" expr ")" "{" statement* "}" ("else" "{" statement* "}")?
//	extendStmt   → "extend" IDENT "{" functionStmt* "}"
//	functionStmt → "function" IDENT "(" (IDENT ("," IDENT)*)? ")" "{" statement* "}"
//	exprStmt     → expr ";"?
//	expr         → "not" expr | IDENT ( "." expr | "(" (expr ("," expr)*)? ")" )*
//
// Identifiers are runs of ASCII letters. There are no literals, operators,
// or comments.
//
// # Pipeline
//
// A [Lexer] produces tokens on demand. A [Parser] builds a [Program] using
// prefix and infix parse functions keyed by token kind; member access binds
// tighter than calls, which bind tighter than "not". An [Evaluator] walks the
// tree against an [Environment] chain.
//
// # Runtime values
//
// Evaluation always yields an [Object]. Script errors are [*ErrorObject]
// values that stop the enclosing program, block, loop, condition, or
// argument list. Conditions are true only when they evaluate to the
// canonical [TRUE] singleton.
//
// Host characters are exposed as [*Instance] values. An instance always has
// move and isNextTo, has attack if its character implements [Attacker], and
// has support if it implements [Supporter]. The extend statement adds
// methods to an instance; they close over the instance's private
// environment, not the caller's.
//
// # Example
//
//	prog, err := lang.ParseString(ctx, "knight.move(EAST);")
//	if err != nil {
//		return err
//	}
//
//	env := lang.NewEnclosedEnvironment(standard)
//	env.Set("knight", lang.NewInstance(knight, standard))
//
//	if res := lang.Eval(ctx, prog, env); lang.IsError(res) {
//		fmt.Println(res.Inspect())
//	}
package lang
