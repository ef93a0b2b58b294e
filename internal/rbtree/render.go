package rbtree

import (
	"cmp"
	"fmt"

	"github.com/fatih/color"
	"github.com/xlab/treeprint"
)

// Labeler formats one node for Render.
type Labeler[K cmp.Ordered, V any] func(a *Arena[K, V], id NodeID) string

// ColorLabel prints "(key, COLOR)" with red links highlighted.
func ColorLabel[K cmp.Ordered, V any](a *Arena[K, V], id NodeID) string {
	label := fmt.Sprintf("(%v, %s)", a.Key(id), a.Color(id))
	if a.Color(id) == RED {
		return color.RedString(label)
	}
	return label
}

// Render draws the structure under root, external subtrees included, left
// branch above right branch. An empty tree renders as "(empty)".
func (a *Arena[K, V]) Render(root NodeID, label Labeler[K, V]) string {
	if label == nil {
		label = ColorLabel[K, V]
	}
	if root == Nil {
		return "(empty)\n"
	}
	tree := treeprint.NewWithRoot(label(a, root))
	a.renderChildren(tree, root, label)
	return tree.String()
}

func (a *Arena[K, V]) renderChildren(tree treeprint.Tree, id NodeID, label Labeler[K, V]) {
	for _, child := range []NodeID{a.Left(id), a.Right(id)} {
		if child == Nil {
			continue
		}
		if a.Left(child) == Nil && a.Right(child) == Nil {
			tree.AddNode(label(a, child))
			continue
		}
		branch := tree.AddBranch(label(a, child))
		a.renderChildren(branch, child, label)
	}
}
