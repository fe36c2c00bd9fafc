// Package scope implements Losp's lexically nested variable context: a
// chain of maps (name -> value) where lookup walks to the root and
// assignment writes into the innermost scope that already holds the name.
package scope

import "github.com/lemonberrylabs/losp/pkg/values"

// Scope is one frame of the lexical chain. The evaluator creates a new
// child Scope per lambda call; ordinary frames within a single node's
// evaluation share their enclosing Scope.
type Scope struct {
	parent *Scope
	vars   map[string]values.Value
}

// NewRoot creates the evaluator's single root scope, which also acts as
// the process-wide global bindings table (`set_global`/`try_get_global`).
func NewRoot() *Scope {
	return &Scope{vars: make(map[string]values.Value)}
}

// NewChild creates a scope nested under s. Child scopes hold a non-owning
// reference to their parent and outlive nothing beyond their frame — this
// is enforced by convention (the evaluator discards its reference when the
// frame completes), not by the type itself.
func (s *Scope) NewChild() *Scope {
	return &Scope{parent: s, vars: make(map[string]values.Value)}
}

// Get walks the chain from s to the root. ok is false if no scope in the
// chain binds name.
func (s *Scope) Get(name string) (values.Value, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.vars[name]; ok {
			return v, true
		}
	}
	return values.Null, false
}

// Set writes into the innermost scope in the chain that already binds
// name; if none does, it writes into s itself.
func (s *Scope) Set(name string, v values.Value) {
	for cur := s; cur != nil; cur = cur.parent {
		if _, ok := cur.vars[name]; ok {
			cur.vars[name] = v
			return
		}
	}
	s.vars[name] = v
}

// SetLocal writes into s only, ignoring any shadowed binding further up
// the chain. Used by lambda-call frames to bind parameters, and by the
// evaluator's `set_global` when s is the root scope.
func (s *Scope) SetLocal(name string, v values.Value) {
	s.vars[name] = v
}

// Exists reports whether name is bound anywhere in the chain.
func (s *Scope) Exists(name string) bool {
	_, ok := s.Get(name)
	return ok
}
