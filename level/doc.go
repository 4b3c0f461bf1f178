// Package level defines the puzzle boards scripts are played against.
//
// A [Catalog] groups [Definition] values into worlds. Catalogs are written in
// YAML; the catalog shipped with the program is embedded and returned by
// [Default]. Levels are addressed by "<world>-<level>" identifiers, both
// 1-based.
//
// Each definition carries a goal: a boolean expr-lang expression evaluated
// against a [GoalEnv] after a script finishes. The default goal is
// "dragon.hp == 0".
package level
