package rbtree

import (
	"cmp"
	"fmt"
	"math"

	"github.com/tferdous17/tango/utils"
)

type Color int

// Red = 0, Black = 1
const (
	RED Color = iota
	BLACK
)

func (c Color) String() string {
	if c == RED {
		return "RED"
	}
	return "BLACK"
}

// Role says which part of a preferred-path decomposition a node plays.
type Role int

const (
	REGULAR  Role = iota // inside the auxiliary tree being walked
	EXTERNAL             // root of another auxiliary tree, opaque to the walk
	SENTINEL             // absent child
)

func (r Role) String() string {
	switch r {
	case REGULAR:
		return "REGULAR"
	case EXTERNAL:
		return "EXTERNAL"
	default:
		return "SENTINEL"
	}
}

// NodeID addresses a node inside an Arena. The zero value is the sentinel.
type NodeID int32

const Nil NodeID = 0

const (
	noMinDepth = math.MaxInt
	noMaxDepth = math.MinInt
)

type node[K cmp.Ordered, V any] struct {
	key      K
	value    V
	left     NodeID
	right    NodeID
	size     int
	height   int // black links down to a leaf
	depth    int // fixed position in the reference tree
	minDepth int
	maxDepth int
	color    Color
	role     Role
}

// Arena owns the nodes of any number of trees. Trees that are split or joined
// with each other must come from the same arena. An Arena is not safe for
// concurrent use.
type Arena[K cmp.Ordered, V any] struct {
	nodes  []*node[K, V]
	free   []NodeID
	checks bool
}

type Option func(*options)

type options struct {
	checks   bool
	capacity int
}

// WithInvariantChecks verifies every tree returned by a mutating public
// operation and panics on the first violation.
func WithInvariantChecks() Option {
	return func(o *options) { o.checks = true }
}

func WithCapacity(n int) Option {
	return func(o *options) { o.capacity = n }
}

func New[K cmp.Ordered, V any](opts ...Option) *Arena[K, V] {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	return &Arena[K, V]{
		nodes:  make([]*node[K, V], 0, o.capacity),
		checks: o.checks,
	}
}

// Len reports how many nodes are currently allocated.
func (a *Arena[K, V]) Len() int {
	return len(a.nodes) - len(a.free)
}

// NewNode allocates a detached red node.
func (a *Arena[K, V]) NewNode(key K, value V) NodeID {
	n := &node[K, V]{
		key:      key,
		value:    value,
		size:     1,
		height:   0,
		minDepth: 0,
		maxDepth: 0,
		color:    RED,
		role:     REGULAR,
	}
	if len(a.free) > 0 {
		id := a.free[len(a.free)-1]
		a.free = a.free[:len(a.free)-1]
		a.nodes[id-1] = n
		return id
	}
	a.nodes = append(a.nodes, n)
	return NodeID(len(a.nodes))
}

// Free hands a detached node, such as an unused join pivot, back to the arena.
func (a *Arena[K, V]) Free(id NodeID) {
	if err := a.checkPivot(id); err != nil {
		panic(fmt.Errorf("%w: free node %d: %v", utils.ErrInvariant, id, err))
	}
	a.release(id)
}

func (a *Arena[K, V]) release(id NodeID) {
	a.at(id)
	a.nodes[id-1] = nil
	a.free = append(a.free, id)
}

// at is the only way to get a writable node. Handing it the sentinel or a
// released slot is a programming error.
func (a *Arena[K, V]) at(id NodeID) *node[K, V] {
	if id == Nil {
		panic(fmt.Errorf("%w: write through sentinel", utils.ErrInvariant))
	}
	if int(id) > len(a.nodes) || a.nodes[id-1] == nil {
		panic(fmt.Errorf("%w: node %d is not allocated", utils.ErrInvariant, id))
	}
	return a.nodes[id-1]
}

// isEmpty treats external nodes like the sentinel: from inside an auxiliary
// tree both are leaves.
func (a *Arena[K, V]) isEmpty(id NodeID) bool {
	return id == Nil || a.nodes[id-1].role == EXTERNAL
}

func (a *Arena[K, V]) size(id NodeID) int {
	if a.isEmpty(id) {
		return 0
	}
	return a.nodes[id-1].size
}

func (a *Arena[K, V]) height(id NodeID) int {
	if a.isEmpty(id) {
		return -1
	}
	return a.nodes[id-1].height
}

func (a *Arena[K, V]) minDepth(id NodeID) int {
	if a.isEmpty(id) {
		return noMinDepth
	}
	return a.nodes[id-1].minDepth
}

func (a *Arena[K, V]) maxDepth(id NodeID) int {
	if a.isEmpty(id) {
		return noMaxDepth
	}
	return a.nodes[id-1].maxDepth
}

func (a *Arena[K, V]) isRed(id NodeID) bool {
	if a.isEmpty(id) {
		return false
	}
	return a.nodes[id-1].color == RED
}

// blacken colors a subtree root black. Leaves are left alone.
func (a *Arena[K, V]) blacken(id NodeID) {
	if id != Nil {
		a.at(id).color = BLACK
	}
}

// blackHeightVia is the black height of a node as seen through child c.
func (a *Arena[K, V]) blackHeightVia(c NodeID) int {
	if a.isRed(c) {
		return a.height(c)
	}
	return a.height(c) + 1
}

func (a *Arena[K, V]) update(id NodeID) {
	if a.isEmpty(id) {
		return
	}
	x := a.nodes[id-1]
	x.size = a.size(x.left) + a.size(x.right) + 1
	x.height = max(a.blackHeightVia(x.left), a.blackHeightVia(x.right))
	x.minDepth = min(x.depth, a.minDepth(x.left), a.minDepth(x.right))
	x.maxDepth = max(x.depth, a.maxDepth(x.left), a.maxDepth(x.right))
}

// detach severs both children of x and returns them.
func (a *Arena[K, V]) detach(id NodeID) (NodeID, NodeID) {
	x := a.at(id)
	l, r := x.left, x.right
	x.left, x.right = Nil, Nil
	x.color = BLACK
	a.update(id)
	return l, r
}

func (a *Arena[K, V]) check(roots ...NodeID) {
	if !a.checks {
		return
	}
	for _, root := range roots {
		if err := a.Verify(root); err != nil {
			panic(err)
		}
	}
}

/*************** Read accessors (sentinel safe) ***************/

func (a *Arena[K, V]) Key(id NodeID) K {
	if id == Nil {
		var zero K
		return zero
	}
	return a.at(id).key
}

func (a *Arena[K, V]) Value(id NodeID) V {
	if id == Nil {
		var zero V
		return zero
	}
	return a.at(id).value
}

// Left and Right follow raw links, including into external subtrees.
func (a *Arena[K, V]) Left(id NodeID) NodeID {
	if id == Nil {
		return Nil
	}
	return a.at(id).left
}

func (a *Arena[K, V]) Right(id NodeID) NodeID {
	if id == Nil {
		return Nil
	}
	return a.at(id).right
}

func (a *Arena[K, V]) Color(id NodeID) Color {
	if id == Nil {
		return BLACK
	}
	return a.at(id).color
}

func (a *Arena[K, V]) Role(id NodeID) Role {
	if id == Nil {
		return SENTINEL
	}
	return a.at(id).role
}

// Size counts the nodes of the auxiliary tree rooted at root.
func (a *Arena[K, V]) Size(root NodeID) int {
	return a.size(root)
}

// Height is the black height of root, -1 for an empty tree.
func (a *Arena[K, V]) Height(root NodeID) int {
	return a.height(root)
}
