package rbtree

import (
	"fmt"

	"github.com/tferdous17/tango/utils"
)

// Insert adds key to the tree rooted at root, or overwrites its value when the
// key is already there. It returns the new root.
func (a *Arena[K, V]) Insert(root NodeID, key K, value V) NodeID {
	root = a.insert(root, key, value)
	a.blacken(root)
	a.check(root)
	return root
}

func (a *Arena[K, V]) insert(h NodeID, key K, value V) NodeID {
	if a.isEmpty(h) {
		if h != Nil {
			panic(fmt.Errorf("%w: insert would replace an external subtree", utils.ErrInvariant))
		}
		return a.NewNode(key, value)
	}

	x := a.at(h)
	switch {
	case key < x.key:
		x.left = a.insert(x.left, key, value)
	case key > x.key:
		x.right = a.insert(x.right, key, value)
	default:
		x.value = value
	}
	return a.balance(h)
}

/******************** Queries ********************/

// Search returns the node holding key together with its parent. When the key
// is absent the first node is the leaf where the walk stopped: the sentinel,
// or the root of an external subtree.
func (a *Arena[K, V]) Search(root NodeID, key K) (NodeID, NodeID) {
	parent := Nil
	h := root
	for !a.isEmpty(h) {
		x := a.nodes[h-1]
		switch {
		case key < x.key:
			parent, h = h, x.left
		case key > x.key:
			parent, h = h, x.right
		default:
			return h, parent
		}
	}
	return h, parent
}

func (a *Arena[K, V]) Contains(root NodeID, key K) bool {
	found, _ := a.Search(root, key)
	return !a.isEmpty(found)
}

func (a *Arena[K, V]) Get(root NodeID, key K) (V, bool) {
	found, _ := a.Search(root, key)
	if a.isEmpty(found) {
		var zero V
		return zero, false
	}
	return a.Value(found), true
}

func (a *Arena[K, V]) Min(root NodeID) (NodeID, error) {
	if a.isEmpty(root) {
		return Nil, utils.ErrEmptyTree
	}
	return a.minNode(root), nil
}

func (a *Arena[K, V]) Max(root NodeID) (NodeID, error) {
	if a.isEmpty(root) {
		return Nil, utils.ErrEmptyTree
	}
	return a.maxNode(root), nil
}

func (a *Arena[K, V]) minNode(h NodeID) NodeID {
	for l := a.at(h).left; !a.isEmpty(l); l = a.at(h).left {
		h = l
	}
	return h
}

func (a *Arena[K, V]) maxNode(h NodeID) NodeID {
	for r := a.at(h).right; !a.isEmpty(r); r = a.at(h).right {
		h = r
	}
	return h
}

// ForEach applies fn in ascending key order. If fn returns false, iteration
// stops early. External subtrees are skipped.
func (a *Arena[K, V]) ForEach(root NodeID, fn func(K, V) bool) {
	a.forEach(root, fn)
}

func (a *Arena[K, V]) forEach(h NodeID, fn func(K, V) bool) bool {
	if a.isEmpty(h) {
		return true
	}
	x := a.nodes[h-1]
	return a.forEach(x.left, fn) && fn(x.key, x.value) && a.forEach(x.right, fn)
}

func (a *Arena[K, V]) Keys(root NodeID) []K {
	keys := make([]K, 0, a.size(root))
	a.ForEach(root, func(k K, _ V) bool {
		keys = append(keys, k)
		return true
	})
	return keys
}

/******************** Removal ********************/

// Remove deletes key from the tree and frees its node. Removing an absent key
// is a no-op.
func (a *Arena[K, V]) Remove(root NodeID, key K) NodeID {
	if !a.Contains(root, key) {
		return root
	}

	x := a.at(root)
	if !a.isRed(x.left) && !a.isRed(x.right) {
		x.color = RED
	}
	root = a.remove(root, key)
	a.blacken(root)
	a.check(root)
	return root
}

func (a *Arena[K, V]) remove(h NodeID, key K) NodeID {
	if key < a.at(h).key {
		x := a.at(h)
		if !a.isRed(x.left) && !a.isRed(a.at(x.left).left) {
			h = a.moveRedLeft(h)
		}
		x = a.at(h)
		x.left = a.remove(x.left, key)
		return a.balance(h)
	}

	if a.isRed(a.at(h).left) {
		h = a.rotateRight(h)
	}
	x := a.at(h)
	if key == x.key && a.isEmpty(x.right) {
		leaf := a.spliceOut(h)
		a.release(h)
		return leaf
	}
	if !a.isRed(x.right) && !a.isRed(a.at(x.right).left) {
		h = a.moveRedRight(h)
	}
	x = a.at(h)
	if key == x.key {
		// take over the in-order successor and drop its node instead
		succ := a.minNode(x.right)
		s := a.at(succ)
		x.key, x.value, x.depth = s.key, s.value, s.depth
		x.right = a.removeMin(x.right)
		a.release(succ)
	} else {
		x.right = a.remove(x.right, key)
	}
	return a.balance(h)
}

func (a *Arena[K, V]) RemoveMin(root NodeID) (NodeID, error) {
	if a.isEmpty(root) {
		return root, utils.ErrEmptyTree
	}
	m := a.minNode(root)
	root = a.deleteMin(root)
	a.release(m)
	a.check(root)
	return root, nil
}

func (a *Arena[K, V]) RemoveMax(root NodeID) (NodeID, error) {
	if a.isEmpty(root) {
		return root, utils.ErrEmptyTree
	}
	m := a.maxNode(root)
	root = a.deleteMax(root)
	a.release(m)
	a.check(root)
	return root, nil
}

// ExtractMin unlinks the minimum node without freeing it. The node comes back
// detached, ready to be used as a join pivot.
func (a *Arena[K, V]) ExtractMin(root NodeID) (NodeID, NodeID, error) {
	if a.isEmpty(root) {
		return Nil, root, utils.ErrEmptyTree
	}
	m := a.minNode(root)
	rest := a.deleteMin(root)
	a.detach(m)
	a.check(rest)
	return m, rest, nil
}

// ExtractMax is the mirror of ExtractMin.
func (a *Arena[K, V]) ExtractMax(root NodeID) (NodeID, NodeID, error) {
	if a.isEmpty(root) {
		return Nil, root, utils.ErrEmptyTree
	}
	m := a.maxNode(root)
	rest := a.deleteMax(root)
	a.detach(m)
	a.check(rest)
	return m, rest, nil
}

func (a *Arena[K, V]) deleteMin(root NodeID) NodeID {
	x := a.at(root)
	if !a.isRed(x.left) && !a.isRed(x.right) {
		x.color = RED
	}
	root = a.removeMin(root)
	a.blacken(root)
	return root
}

func (a *Arena[K, V]) removeMin(h NodeID) NodeID {
	x := a.at(h)
	if a.isEmpty(x.left) {
		return a.spliceOut(h)
	}
	if !a.isRed(x.left) && !a.isRed(a.at(x.left).left) {
		h = a.moveRedLeft(h)
	}
	x = a.at(h)
	x.left = a.removeMin(x.left)
	return a.balance(h)
}

func (a *Arena[K, V]) deleteMax(root NodeID) NodeID {
	x := a.at(root)
	if !a.isRed(x.left) && !a.isRed(x.right) {
		x.color = RED
	}
	root = a.removeMax(root)
	a.blacken(root)
	return root
}

func (a *Arena[K, V]) removeMax(h NodeID) NodeID {
	if a.isRed(a.at(h).left) {
		h = a.rotateRight(h)
	}
	x := a.at(h)
	if a.isEmpty(x.right) {
		return a.spliceOut(h)
	}
	if !a.isRed(x.right) && !a.isRed(a.at(x.right).left) {
		h = a.moveRedRight(h)
	}
	x = a.at(h)
	x.right = a.removeMax(x.right)
	return a.balance(h)
}

// spliceOut unlinks a node with no regular children and returns the leaf that
// takes its slot. Only one of its two leaf slots may carry an external subtree.
func (a *Arena[K, V]) spliceOut(h NodeID) NodeID {
	x := a.at(h)
	switch {
	case x.left == Nil:
		return x.right
	case x.right == Nil:
		return x.left
	}
	panic(fmt.Errorf("%w: unlinking node %d would drop an external subtree", utils.ErrInvariant, h))
}
