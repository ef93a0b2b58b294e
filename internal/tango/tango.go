package tango

import (
	"fmt"

	"github.com/tferdous17/tango/internal/rbtree"
	"github.com/tferdous17/tango/utils"
)

// Arena holds the nodes of tango trees. Keys are the integers of the
// reference universe; nothing else is stored per key.
type Arena = rbtree.Arena[int, struct{}]

// Search walks from root towards key. Every time the walk leaves the top
// preferred path at an external subtree, that subtree's path is spliced in
// and the walk starts over. It returns the new root and how many tango steps
// were taken.
func Search(a *Arena, root rbtree.NodeID, key int) (rbtree.NodeID, int) {
	steps := 0
	q, p := a.Search(root, key)
	for a.Role(q) == rbtree.EXTERNAL {
		root = Restructure(a, root, q, p)
		steps++
		if steps > a.Len() {
			panic(fmt.Errorf("%w: search for %d does not converge", utils.ErrInvariant, key))
		}
		q, p = a.Search(root, key)
	}
	return root, steps
}

// Restructure is one tango step. q is the external subtree the walk reached
// and p its parent on the top path. The part of the top path at or below
// q's depth is cut off into a new auxiliary tree, then q's path is joined
// into the top path in its place.
func Restructure(a *Arena, root, q, p rbtree.NodeID) rbtree.NodeID {
	d := a.PathMinDepth(q)
	if a.MaxDepth(root) >= d {
		root = cutBelow(a, root, d)
		found, parent := a.Search(root, a.Key(q))
		if found != q {
			panic(fmt.Errorf("%w: lost subtree %d while cutting at depth %d", utils.ErrInvariant, a.Key(q), d))
		}
		p = parent
	}
	return merge(a, root, q, p)
}

// cutBelow turns the run of top-path nodes with depth >= d into an external
// subtree hanging between their predecessor and successor.
func cutBelow(a *Arena, root rbtree.NodeID, d int) rbtree.NodeID {
	lo, _, hasLo := a.DepthPredecessor(root, d)
	hi, _, hasHi := a.DepthSuccessor(root, d)

	left, xl, mid := rbtree.Nil, rbtree.Nil, root
	if hasLo {
		left, xl, mid = mustSplit(a, mid, lo)
	}
	xr, right := rbtree.Nil, rbtree.Nil
	if hasHi {
		mid, xr, right = mustSplit(a, mid, hi)
	}

	a.SetRole(mid, rbtree.EXTERNAL)
	switch {
	case hasLo && hasHi:
		return mustJoin(a, mustJoin(a, left, xl, mid), xr, right)
	case hasLo:
		return mustJoin(a, left, xl, mid)
	case hasHi:
		return mustJoin(a, mid, xr, right)
	}
	panic(fmt.Errorf("%w: depth %d cut has no bounding key", utils.ErrInvariant, d))
}

// merge joins q's path into the top path. The extreme of q facing p is
// extracted and used as the pivot that glues q next to its neighbors.
func merge(a *Arena, root, q, p rbtree.NodeID) rbtree.NodeID {
	side, err := a.Unhook(p, q)
	if err != nil {
		panic(err)
	}
	l, pivot, r := mustSplit(a, root, a.Key(p))

	if side == rbtree.LEFT {
		m, rest := mustExtract(a.ExtractMin(q))
		return mustJoin(a, mustJoin(a, l, m, rest), pivot, r)
	}
	m, rest := mustExtract(a.ExtractMax(q))
	return mustJoin(a, l, pivot, mustJoin(a, rest, m, r))
}

func mustSplit(a *Arena, root rbtree.NodeID, key int) (rbtree.NodeID, rbtree.NodeID, rbtree.NodeID) {
	l, x, r, err := a.Split(root, key)
	if err != nil {
		panic(fmt.Errorf("%w: split at %d: %v", utils.ErrInvariant, key, err))
	}
	return l, x, r
}

func mustJoin(a *Arena, t1, x, t2 rbtree.NodeID) rbtree.NodeID {
	root, err := a.Join(t1, x, t2)
	if err != nil {
		panic(fmt.Errorf("%w: join around %d: %v", utils.ErrInvariant, a.Key(x), err))
	}
	return root
}

func mustExtract(node, rest rbtree.NodeID, err error) (rbtree.NodeID, rbtree.NodeID) {
	if err != nil {
		panic(fmt.Errorf("%w: extract: %v", utils.ErrInvariant, err))
	}
	return node, rest
}
