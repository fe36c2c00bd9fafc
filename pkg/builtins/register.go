// Package builtins registers the standard operators against an
// *eval.Evaluator: one register* function per concern, each called from a
// single construction-time entry point.
package builtins

import "github.com/lemonberrylabs/losp/pkg/eval"

// Register wires every standard operator into e. Hosts call this once,
// before their first eval: built-ins go in first, then any host operators,
// so host registrations can shadow a built-in if they need to.
func Register(e *eval.Evaluator) {
	registerArithmetic(e)
	registerComparison(e)
	registerTruthiness(e)
	registerCollections(e)
	registerProperty(e)
	registerStrings(e)
	registerContainers(e)
	registerMisc(e)
}
