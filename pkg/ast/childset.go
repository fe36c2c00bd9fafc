package ast

import "fmt"

// Policy constrains which node kinds a ChildSet accepts.
type Policy int

const (
	// PolicyAll accepts any node kind, including KeyValue.
	PolicyAll Policy = iota
	// PolicyNonKV rejects KeyValue children (List).
	PolicyNonKV
	// PolicyKVOnly accepts only KeyValue children (ObjectLiteral).
	PolicyKVOnly
)

// ChildSet is the ordered+keyed child collection every non-terminal node
// kind carries. Insertion order is preserved for plain enumeration; a
// second index resolves KeyValue children by key, with the invariant that
// a duplicate key's node is still appended to the ordered list but only the
// most recently inserted index resolves by name.
type ChildSet struct {
	policy   Policy
	nodes    []Node
	keyIndex map[string]int
}

// NewChildSet creates an empty collection under the given policy.
func NewChildSet(policy Policy) *ChildSet {
	return &ChildSet{policy: policy, keyIndex: make(map[string]int)}
}

// Policy reports the admissibility policy this set enforces.
func (c *ChildSet) Policy() Policy { return c.policy }

// Append inserts n at the end of the ordered sequence, enforcing the
// policy. KeyValue nodes additionally update the key index.
func (c *ChildSet) Append(n Node) error {
	if err := c.checkAdmissible(n); err != nil {
		return err
	}
	idx := len(c.nodes)
	c.nodes = append(c.nodes, n)
	if kv, ok := n.(*KeyValue); ok {
		c.keyIndex[kv.ID] = idx
	}
	return nil
}

func (c *ChildSet) checkAdmissible(n Node) error {
	_, isKV := n.(*KeyValue)
	switch c.policy {
	case PolicyNonKV:
		if isKV {
			return fmt.Errorf("losp: KeyValue child not permitted here")
		}
	case PolicyKVOnly:
		if !isKV {
			return fmt.Errorf("losp: only KeyValue children permitted here, got %s", n.ASTKind())
		}
	}
	return nil
}

// Len reports the number of children, counting every inserted node
// (including shadowed duplicate keys).
func (c *ChildSet) Len() int { return len(c.nodes) }

// At returns the i-th child in insertion order.
func (c *ChildSet) At(i int) Node { return c.nodes[i] }

// All returns the full ordered slice. Callers must not mutate it.
func (c *ChildSet) All() []Node { return c.nodes }

// ByKey resolves a KeyValue child by key, returning the most recently
// inserted node under that key.
func (c *ChildSet) ByKey(key string) (Node, bool) {
	idx, ok := c.keyIndex[key]
	if !ok {
		return nil, false
	}
	return c.nodes[idx], true
}

// Keys returns the set of distinct KeyValue keys present, in no
// particular order.
func (c *ChildSet) Keys() []string {
	keys := make([]string, 0, len(c.keyIndex))
	for k := range c.keyIndex {
		keys = append(keys, k)
	}
	return keys
}
