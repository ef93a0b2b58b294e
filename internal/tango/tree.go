package tango

import (
	"fmt"
	"slices"

	"github.com/fatih/color"

	"github.com/tferdous17/tango/internal/rbtree"
	"github.com/tferdous17/tango/utils"
)

// Tree is a tango tree over the fixed key universe [1, n]. It is not safe for
// concurrent use.
type Tree struct {
	arena *Arena
	root  rbtree.NodeID
	size  int
	trace bool
}

type config struct {
	checks bool
	trace  bool
}

type Option func(*config)

// WithInvariantChecks verifies the structure after every split and join.
func WithInvariantChecks() Option {
	return func(c *config) { c.checks = true }
}

// WithTrace logs the top path after every search that had to restructure.
func WithTrace() Option {
	return func(c *config) { c.trace = true }
}

func Build(n int, opts ...Option) (*Tree, error) {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}

	arenaOpts := []rbtree.Option{rbtree.WithCapacity(n)}
	if cfg.checks {
		arenaOpts = append(arenaOpts, rbtree.WithInvariantChecks())
	}
	arena := rbtree.New[int, struct{}](arenaOpts...)

	root, err := rbtree.BuildReference(arena, n)
	if err != nil {
		return nil, err
	}
	return &Tree{arena: arena, root: root, size: n, trace: cfg.trace}, nil
}

// Search reports whether key is in the universe and how many tango steps the
// lookup needed. Afterwards key sits on the top preferred path.
func (t *Tree) Search(key int) (bool, int) {
	root, steps := Search(t.arena, t.root, key)
	t.root = root
	if t.trace && steps > 0 {
		utils.Logf(color.CyanString("search %d: %d tango steps, top path %v"), key, steps, t.PathKeys())
	}
	found, _ := t.arena.Search(t.root, key)
	return t.arena.Role(found) == rbtree.REGULAR, steps
}

func (t *Tree) Size() int { return t.size }

func (t *Tree) Root() rbtree.NodeID { return t.root }

func (t *Tree) Arena() *Arena { return t.arena }

// PathKeys lists the keys on the top preferred path in key order.
func (t *Tree) PathKeys() []int {
	return t.arena.Keys(t.root)
}

// Verify checks the red-black invariants of every auxiliary tree and that
// the auxiliary trees still decompose the reference tree into paths.
func (t *Tree) Verify() error {
	a := t.arena
	if err := a.Verify(t.root); err != nil {
		return err
	}
	if a.Role(t.root) != rbtree.REGULAR {
		return fmt.Errorf("%w: top of the tree is not on a preferred path", utils.ErrInvariant)
	}
	if a.MinDepth(t.root) != 0 {
		return fmt.Errorf("%w: top path does not start at the reference root", utils.ErrInvariant)
	}

	ref := referenceShape(t.size)
	seen := 0
	var err error
	t.forEachPath(t.root, func(path []rbtree.NodeID) bool {
		seen += len(path)
		err = checkPath(a, ref, path)
		return err == nil
	})
	if err != nil {
		return err
	}
	if seen != t.size {
		return fmt.Errorf("%w: %d of %d keys reachable", utils.ErrInvariant, seen, t.size)
	}
	return nil
}

// forEachPath hands fn the nodes of every auxiliary tree under root, the
// auxiliary tree of root first.
func (t *Tree) forEachPath(root rbtree.NodeID, fn func([]rbtree.NodeID) bool) bool {
	var path, externals []rbtree.NodeID
	var collect func(id rbtree.NodeID, top bool)
	collect = func(id rbtree.NodeID, top bool) {
		if id == rbtree.Nil {
			return
		}
		if !top && t.arena.Role(id) == rbtree.EXTERNAL {
			externals = append(externals, id)
			return
		}
		collect(t.arena.Left(id), false)
		path = append(path, id)
		collect(t.arena.Right(id), false)
	}
	collect(root, true)

	if !fn(path) {
		return false
	}
	for _, ext := range externals {
		if !t.forEachPath(ext, fn) {
			return false
		}
	}
	return true
}

type span struct {
	lo, hi, depth int
}

// referenceShape maps every key of [1, n] to the key range its subtree covers
// in the reference tree, and its depth there.
func referenceShape(n int) map[int]span {
	shape := make(map[int]span, n)
	var build func(l, r, d int)
	build = func(l, r, d int) {
		if l > r {
			return
		}
		m := (l + r + 1) / 2
		shape[m] = span{lo: l, hi: r, depth: d}
		build(l, m-1, d+1)
		build(m+1, r, d+1)
	}
	build(1, n, 0)
	return shape
}

// checkPath makes sure the nodes of one auxiliary tree form a downward chain
// of the reference tree.
func checkPath(a *Arena, ref map[int]span, path []rbtree.NodeID) error {
	byDepth := slices.Clone(path)
	slices.SortFunc(byDepth, func(x, y rbtree.NodeID) int { return a.Depth(x) - a.Depth(y) })

	for i, id := range byDepth {
		key := a.Key(id)
		s, ok := ref[key]
		if !ok {
			return fmt.Errorf("%w: key %d is outside the universe", utils.ErrInvariant, key)
		}
		if s.depth != a.Depth(id) {
			return fmt.Errorf("%w: key %d has depth %d, reference says %d", utils.ErrInvariant, key, a.Depth(id), s.depth)
		}
		if i == 0 {
			continue
		}
		prev := ref[a.Key(byDepth[i-1])]
		if s.depth != prev.depth+1 || key < prev.lo || key > prev.hi {
			return fmt.Errorf("%w: key %d does not continue the path of %d", utils.ErrInvariant, key, a.Key(byDepth[i-1]))
		}
	}
	return nil
}

// String draws the whole tree. Keys on the top preferred path are red and
// roots of the other auxiliary trees are bracketed.
func (t *Tree) String() string {
	onPath := make(map[rbtree.NodeID]bool)
	t.forEachPath(t.root, func(path []rbtree.NodeID) bool {
		for _, id := range path {
			onPath[id] = true
		}
		return false
	})

	return t.arena.Render(t.root, func(a *Arena, id rbtree.NodeID) string {
		switch {
		case onPath[id]:
			return color.RedString("(%d)", a.Key(id))
		case a.Role(id) == rbtree.EXTERNAL:
			return fmt.Sprintf("[%d]", a.Key(id))
		default:
			return fmt.Sprintf("(%d)", a.Key(id))
		}
	})
}
