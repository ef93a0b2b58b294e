package rbtree

import (
	"fmt"

	"github.com/tferdous17/tango/utils"
)

/******************** Rotations & color flips ********************/

func (a *Arena[K, V]) rotateLeft(h NodeID) NodeID {
	if !a.isRed(a.at(h).right) {
		panic(fmt.Errorf("%w: rotate left on a black link", utils.ErrInvariant))
	}
	x := a.at(h)
	y := x.right
	yn := a.at(y)
	x.right = yn.left
	yn.left = h
	yn.color = x.color
	x.color = RED

	a.update(h)
	a.update(y)
	return y
}

func (a *Arena[K, V]) rotateRight(h NodeID) NodeID {
	if !a.isRed(a.at(h).left) {
		panic(fmt.Errorf("%w: rotate right on a black link", utils.ErrInvariant))
	}
	x := a.at(h)
	y := x.left
	yn := a.at(y)
	x.left = yn.right
	yn.right = h
	yn.color = x.color
	x.color = RED

	a.update(h)
	a.update(y)
	return y
}

func (a *Arena[K, V]) flipColors(h NodeID) {
	x := a.at(h)
	if a.isEmpty(x.left) || a.isEmpty(x.right) {
		panic(fmt.Errorf("%w: color flip needs two children", utils.ErrInvariant))
	}
	l, r := a.at(x.left), a.at(x.right)
	x.color = 1 - x.color
	l.color = 1 - l.color
	r.color = 1 - r.color
}

// moveRedLeft makes h.left or one of its children red, assuming h is red and
// both h.left and h.left.left are black.
func (a *Arena[K, V]) moveRedLeft(h NodeID) NodeID {
	a.flipColors(h)
	if a.isRed(a.at(a.at(h).right).left) {
		// borrowed from a 3-node sibling
		x := a.at(h)
		x.right = a.rotateRight(x.right)
		h = a.rotateLeft(h)
		a.flipColors(h)
	}
	return h
}

// moveRedRight makes h.right or one of its children red, assuming h is red
// and both h.right and h.right.left are black.
func (a *Arena[K, V]) moveRedRight(h NodeID) NodeID {
	a.flipColors(h)
	if a.isRed(a.at(a.at(h).left).left) {
		h = a.rotateRight(h)
		a.flipColors(h)
	}
	return h
}

// balance restores the left-leaning shape at h on the way back up and
// refreshes its aggregates.
func (a *Arena[K, V]) balance(h NodeID) NodeID {
	if a.isEmpty(h) {
		return h
	}
	if a.isRed(a.at(h).right) && !a.isRed(a.at(h).left) {
		h = a.rotateLeft(h)
	}
	if l := a.at(h).left; a.isRed(l) && a.isRed(a.at(l).left) {
		h = a.rotateRight(h)
	}
	if a.isRed(a.at(h).left) && a.isRed(a.at(h).right) {
		a.flipColors(h)
	}
	a.update(h)
	return h
}
