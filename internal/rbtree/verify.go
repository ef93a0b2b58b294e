package rbtree

import (
	"cmp"
	"fmt"

	"github.com/tferdous17/tango/utils"
)

// Verify walks the whole structure under root, external subtrees included,
// and reports the first broken invariant: global BST order, black root, no red
// right link, no two reds in a row, equal black height on every path, cached
// size/height/depth aggregates, and no node reachable twice.
func (a *Arena[K, V]) Verify(root NodeID) error {
	v := &verifier[K, V]{a: a, seen: make(map[NodeID]struct{})}
	return v.auxTree(root, nil, nil)
}

type verifier[K cmp.Ordered, V any] struct {
	a    *Arena[K, V]
	seen map[NodeID]struct{}
}

func violation(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", utils.ErrInvariant, fmt.Sprintf(format, args...))
}

func (v *verifier[K, V]) auxTree(root NodeID, lo, hi *K) error {
	if root == Nil {
		return nil
	}
	if v.a.at(root).color != BLACK {
		return violation("root %v of an auxiliary tree is red", v.a.Key(root))
	}
	_, err := v.walk(root, lo, hi, true)
	return err
}

// walk returns the black height of h inside its auxiliary tree.
func (v *verifier[K, V]) walk(h NodeID, lo, hi *K, top bool) (int, error) {
	if h == Nil {
		return -1, nil
	}
	if _, dup := v.seen[h]; dup {
		return 0, violation("node %d reachable twice", h)
	}

	a := v.a
	x := a.at(h)
	if x.role == EXTERNAL && !top {
		// a leaf here, a tree of its own
		return -1, v.auxTree(h, lo, hi)
	}
	v.seen[h] = struct{}{}

	if lo != nil && !(*lo < x.key) {
		return 0, violation("key %v not above %v", x.key, *lo)
	}
	if hi != nil && !(x.key < *hi) {
		return 0, violation("key %v not below %v", x.key, *hi)
	}
	if a.isRed(x.right) {
		return 0, violation("red right link under %v", x.key)
	}
	if !top && x.color == RED && a.isRed(x.left) {
		return 0, violation("two red links in a row at %v", x.key)
	}

	key := x.key
	lh, err := v.walk(x.left, lo, &key, false)
	if err != nil {
		return 0, err
	}
	rh, err := v.walk(x.right, &key, hi, false)
	if err != nil {
		return 0, err
	}

	viaLeft, viaRight := lh+1, rh+1
	if a.isRed(x.left) {
		viaLeft = lh
	}
	if viaLeft != viaRight {
		return 0, violation("black height differs under %v: %d vs %d", key, viaLeft, viaRight)
	}

	if x.height != viaLeft {
		return 0, violation("cached height of %v is %d, want %d", key, x.height, viaLeft)
	}
	if want := a.size(x.left) + a.size(x.right) + 1; x.size != want {
		return 0, violation("cached size of %v is %d, want %d", key, x.size, want)
	}
	if want := min(x.depth, a.minDepth(x.left), a.minDepth(x.right)); x.minDepth != want {
		return 0, violation("cached min depth of %v is %d, want %d", key, x.minDepth, want)
	}
	if want := max(x.depth, a.maxDepth(x.left), a.maxDepth(x.right)); x.maxDepth != want {
		return 0, violation("cached max depth of %v is %d, want %d", key, x.maxDepth, want)
	}
	return viaLeft, nil
}
