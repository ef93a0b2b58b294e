package rbtree

import (
	"github.com/tferdous17/tango/utils"
)

/*
Join and Split follow the join-based tree algorithms: Join glues two trees
around a pivot in O(|height(t1) - height(t2)|), and Split peels a tree apart at
a key by re-joining every node passed on the way down.
*/

// Join merges t1, the detached pivot x and t2 into one tree. Every key of t1
// must be smaller than x and every key of t2 greater.
func (a *Arena[K, V]) Join(t1, x, t2 NodeID) (NodeID, error) {
	if err := a.checkPivot(x); err != nil {
		return Nil, err
	}
	pivot := a.at(x).key
	if !a.isEmpty(t1) && !(a.at(a.maxNode(t1)).key < pivot) {
		return Nil, utils.ErrOrderViolated
	}
	if !a.isEmpty(t2) && !(pivot < a.at(a.minNode(t2)).key) {
		return Nil, utils.ErrOrderViolated
	}

	root := a.join(t1, x, t2)
	a.check(root)
	return root, nil
}

func (a *Arena[K, V]) checkPivot(x NodeID) error {
	if x == Nil || int(x) > len(a.nodes) || a.nodes[x-1] == nil {
		return utils.ErrPivotAttached
	}
	n := a.nodes[x-1]
	if n.role != REGULAR || n.left != Nil || n.right != Nil {
		return utils.ErrPivotAttached
	}
	return nil
}

func (a *Arena[K, V]) join(t1, x, t2 NodeID) NodeID {
	a.blacken(t1)
	a.blacken(t2)
	root := a.joinRec(t1, x, t2)
	a.blacken(root)
	return root
}

func (a *Arena[K, V]) joinRec(t1, x, t2 NodeID) NodeID {
	h1, h2 := a.height(t1), a.height(t2)
	switch {
	case h1 < h2:
		n := a.at(t2)
		n.left = a.joinRec(t1, x, n.left)
		return a.balance(t2)
	case h1 > h2:
		n := a.at(t1)
		n.right = a.joinRec(n.right, x, t2)
		return a.balance(t1)
	}

	// equal black heights: x hangs both trees with a red link so the count
	// of black links above them does not change
	n := a.at(x)
	n.color = RED
	n.left = t1
	n.right = t2
	return a.balance(x)
}

// Split cuts the tree at key into the keys below it, the node holding it and
// the keys above it. The returned node is detached.
func (a *Arena[K, V]) Split(root NodeID, key K) (NodeID, NodeID, NodeID, error) {
	if a.isEmpty(root) {
		return Nil, Nil, Nil, utils.ErrEmptyTree
	}
	if !a.Contains(root, key) {
		return Nil, Nil, Nil, utils.ErrKeyNotFound
	}

	l, x, r := a.split(root, key)
	a.check(l, r)
	return l, x, r, nil
}

func (a *Arena[K, V]) split(h NodeID, key K) (NodeID, NodeID, NodeID) {
	n := a.at(h)
	switch {
	case n.key < key:
		l, x, r := a.split(n.right, key)
		left, _ := a.detach(h)
		a.blacken(left)
		return a.join(left, h, l), x, r
	case n.key > key:
		l, x, r := a.split(n.left, key)
		_, right := a.detach(h)
		a.blacken(right)
		return l, x, a.join(r, h, right)
	}

	left, right := a.detach(h)
	a.blacken(left)
	a.blacken(right)
	return left, h, right
}
