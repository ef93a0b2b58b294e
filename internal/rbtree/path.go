package rbtree

import (
	"fmt"

	"github.com/tferdous17/tango/utils"
)

/*
Preferred-path support. A reference tree over [1, n] is cut into auxiliary
trees, one per preferred path. The root of every auxiliary tree except the top
one is EXTERNAL, which makes it look like an empty leaf to the tree it hangs
from: rotations, splits and joins carry it around without ever looking inside.
Each node keeps the depth it had in the reference tree forever; minDepth and
maxDepth aggregate it over the node's own auxiliary tree.
*/

type Side int

const (
	LEFT Side = iota
	RIGHT
)

func (s Side) String() string {
	if s == LEFT {
		return "left"
	}
	return "right"
}

// BuildReference builds the balanced reference tree over [1, n]. The root is
// the only node on the initial preferred path; every other node is a one-node
// auxiliary tree of its own.
func BuildReference[V any](a *Arena[int, V], n int) (NodeID, error) {
	if err := utils.ValidateSize(n); err != nil {
		return Nil, err
	}
	root := buildReference(a, 1, n, 0)
	a.at(root).role = REGULAR
	a.check(root)
	return root, nil
}

func buildReference[V any](a *Arena[int, V], l, r, d int) NodeID {
	if l > r {
		return Nil
	}
	m := (l + r + 1) / 2
	var zero V
	id := a.NewNode(m, zero)
	left := buildReference(a, l, m-1, d+1)
	right := buildReference(a, m+1, r, d+1)

	x := a.at(id)
	x.color = BLACK
	x.depth = d
	x.left = left
	x.right = right
	a.update(id)
	x.role = EXTERNAL
	return id
}

func (a *Arena[K, V]) Depth(id NodeID) int {
	if id == Nil {
		return noMaxDepth
	}
	return a.at(id).depth
}

// MinDepth and MaxDepth aggregate depths over the auxiliary tree at root; an
// external root counts as empty.
func (a *Arena[K, V]) MinDepth(root NodeID) int {
	return a.minDepth(root)
}

func (a *Arena[K, V]) MaxDepth(root NodeID) int {
	return a.maxDepth(root)
}

// PathMinDepth reads the aggregate of a node's own auxiliary tree even when
// the node is external.
func (a *Arena[K, V]) PathMinDepth(id NodeID) int {
	if id == Nil {
		return noMinDepth
	}
	return a.at(id).minDepth
}

func (a *Arena[K, V]) SetRole(id NodeID, role Role) {
	if role == SENTINEL {
		panic(fmt.Errorf("%w: only the sentinel plays SENTINEL", utils.ErrInvariant))
	}
	a.at(id).role = role
}

// DepthPredecessor finds the smallest key in root whose depth is at least d
// (the edge) and returns the greatest key ordered before it. ok is false when
// the edge is the minimum. root must hold a node of depth at least d.
func (a *Arena[K, V]) DepthPredecessor(root NodeID, d int) (pred K, edge K, ok bool) {
	if a.maxDepth(root) < d {
		panic(fmt.Errorf("%w: no node at depth %d", utils.ErrInvariant, d))
	}
	return a.depthPredecessor(root, d)
}

func (a *Arena[K, V]) depthPredecessor(h NodeID, d int) (K, K, bool) {
	x := a.at(h)
	if !a.isEmpty(x.left) && a.maxDepth(x.left) >= d {
		return a.depthPredecessor(x.left, d)
	}
	if x.depth >= d {
		if a.isEmpty(x.left) {
			var zero K
			return zero, x.key, false
		}
		return a.at(a.maxNode(x.left)).key, x.key, true
	}
	pred, edge, ok := a.depthPredecessor(x.right, d)
	if ok {
		return pred, edge, true
	}
	return x.key, edge, true
}

// DepthSuccessor mirrors DepthPredecessor: it finds the greatest key of depth
// at least d and returns the least key ordered after it.
func (a *Arena[K, V]) DepthSuccessor(root NodeID, d int) (succ K, edge K, ok bool) {
	if a.maxDepth(root) < d {
		panic(fmt.Errorf("%w: no node at depth %d", utils.ErrInvariant, d))
	}
	return a.depthSuccessor(root, d)
}

func (a *Arena[K, V]) depthSuccessor(h NodeID, d int) (K, K, bool) {
	x := a.at(h)
	if !a.isEmpty(x.right) && a.maxDepth(x.right) >= d {
		return a.depthSuccessor(x.right, d)
	}
	if x.depth >= d {
		if a.isEmpty(x.right) {
			var zero K
			return zero, x.key, false
		}
		return a.at(a.minNode(x.right)).key, x.key, true
	}
	succ, edge, ok := a.depthSuccessor(x.left, d)
	if ok {
		return succ, edge, true
	}
	return x.key, edge, true
}

// Unhook cuts the external subtree q out of its slot under parent p. The
// outermost leaf of q's auxiliary tree on the side facing p (the left leaf of
// its minimum when q hangs left, the right leaf of its maximum otherwise)
// takes q's place, so every other subtree keeps its in-order slot. q comes
// back as a REGULAR standalone tree whose extreme on that side has a free
// leaf slot, ready for ExtractMin or ExtractMax.
func (a *Arena[K, V]) Unhook(p, q NodeID) (Side, error) {
	pn := a.at(p)
	qn := a.at(q)
	if qn.role != EXTERNAL {
		return LEFT, fmt.Errorf("%w: node %d is not an external subtree", utils.ErrInvariant, q)
	}

	qn.role = REGULAR
	switch q {
	case pn.left:
		m := a.at(a.minNode(q))
		pn.left = m.left
		m.left = Nil
		return LEFT, nil
	case pn.right:
		m := a.at(a.maxNode(q))
		pn.right = m.right
		m.right = Nil
		return RIGHT, nil
	}

	qn.role = EXTERNAL
	return LEFT, fmt.Errorf("%w: node %d is not a child of %d", utils.ErrInvariant, q, p)
}
