// Package game implements the rules scripts are played by.
//
// A [Game] owns the mutable state of one level: the knight, the optional
// mage, and the dragon. [Game.Play] checks a script against the level's
// action budget, parses it, binds the characters into a fresh child of
// [StandardEnv] as script instances, evaluates it, and reports a [Result].
//
// Every native action pushes a [Frame] onto the game's [RenderQueue] so a
// front end can replay the run step by step.
package game
