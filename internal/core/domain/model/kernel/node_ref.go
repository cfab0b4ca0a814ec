package kernel

import "fmt"

// NodeRef is an opaque handle to an entity living outside the core: a
// producer building, a consumer, a carrier. The core never holds live
// references to such entities; it stores handles and lets a resolver map
// them back when needed. This keeps save/restore explicit: handles persist,
// live objects do not.
//
// NilNode is the absent handle.
type NodeRef int64

// NilNode marks "no entity".
const NilNode NodeRef = 0

// IsNil reports whether the handle refers to no entity.
func (n NodeRef) IsNil() bool {
	return n == NilNode
}

// String implements fmt.Stringer as "Node(id)".
func (n NodeRef) String() string {
	return fmt.Sprintf("Node(%d)", int64(n))
}
