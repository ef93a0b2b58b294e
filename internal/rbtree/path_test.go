package rbtree

import (
	"math/bits"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tferdous17/tango/utils"
)

func refArena() *Arena[int, struct{}] {
	return New[int, struct{}](WithInvariantChecks())
}

// walkAll visits every node of the reference structure, external subtrees
// included.
func walkAll(a *Arena[int, struct{}], id NodeID, fn func(NodeID)) {
	if id == Nil {
		return
	}
	walkAll(a, a.Left(id), fn)
	fn(id)
	walkAll(a, a.Right(id), fn)
}

func TestBuildReference_Fifteen(t *testing.T) {
	a := refArena()
	root, err := BuildReference(a, 15)
	require.NoError(t, err)

	assert.Equal(t, 8, a.Key(root))
	assert.Equal(t, REGULAR, a.Role(root))
	assert.Equal(t, 4, a.Key(a.Left(root)))
	assert.Equal(t, 12, a.Key(a.Right(root)))
	assert.Equal(t, EXTERNAL, a.Role(a.Left(root)))

	assert.Equal(t, []int{8}, a.Keys(root))
	assert.Equal(t, 0, a.MinDepth(root))
	assert.Equal(t, 0, a.MaxDepth(root))
	require.NoError(t, a.Verify(root))
}

func TestBuildReference_DepthLaw(t *testing.T) {
	for _, n := range []int{1, 2, 3, 7, 10, 15, 16, 100, 1000} {
		a := refArena()
		root, err := BuildReference(a, n)
		require.NoError(t, err)

		var keys []int
		deepest := 0
		walkAll(a, root, func(id NodeID) {
			keys = append(keys, a.Key(id))
			deepest = max(deepest, a.Depth(id))
			if l := a.Left(id); l != Nil {
				assert.Equal(t, a.Depth(id)+1, a.Depth(l))
			}
			if r := a.Right(id); r != Nil {
				assert.Equal(t, a.Depth(id)+1, a.Depth(r))
			}
		})

		assert.Len(t, keys, n)
		for i, k := range keys {
			assert.Equal(t, i+1, k)
		}
		// ceil(log2(n+1)) - 1
		assert.Equal(t, bits.Len(uint(n))-1, deepest, "n=%d", n)
		require.NoError(t, a.Verify(root))
	}
}

func TestBuildReference_InvalidSize(t *testing.T) {
	a := refArena()
	_, err := BuildReference(a, 0)
	assert.ErrorIs(t, err, utils.ErrInvalidSize)
	assert.Equal(t, 0, a.Len())
}

func TestExternal_LooksEmpty(t *testing.T) {
	a := refArena()
	root, err := BuildReference(a, 7)
	require.NoError(t, err)

	assert.Equal(t, 1, a.Size(root))
	assert.Equal(t, 0, a.Height(root))
	assert.False(t, a.Contains(root, 2))

	q, p := a.Search(root, 2)
	assert.Equal(t, root, p)
	assert.Equal(t, EXTERNAL, a.Role(q))
	assert.Equal(t, 2, a.Key(q))
	assert.Equal(t, 1, a.PathMinDepth(q))
	assert.Equal(t, noMinDepth, a.MinDepth(q))
}

func TestDepthNeighbours(t *testing.T) {
	a := New[int, struct{}]()
	root := rangeDepthTree(a, []int{1, 0, 2, 3, 2, 1})

	pred, edge, ok := a.DepthPredecessor(root, 2)
	assert.True(t, ok)
	assert.Equal(t, 2, pred)
	assert.Equal(t, 3, edge)

	succ, edge, ok := a.DepthSuccessor(root, 2)
	assert.True(t, ok)
	assert.Equal(t, 6, succ)
	assert.Equal(t, 5, edge)

	_, edge, ok = a.DepthPredecessor(root, 1)
	assert.False(t, ok)
	assert.Equal(t, 1, edge)

	_, edge, ok = a.DepthSuccessor(root, 1)
	assert.False(t, ok)
	assert.Equal(t, 6, edge)

	assert.Panics(t, func() { a.DepthSuccessor(root, 4) })
}

// rangeDepthTree builds keys 1..len(depths) carrying the given depths.
func rangeDepthTree(a *Arena[int, struct{}], depths []int) NodeID {
	root := Nil
	for i, d := range depths {
		root = a.Insert(root, i+1, struct{}{})
		found, _ := a.Search(root, i+1)
		a.at(found).depth = d
	}
	refresh(a, root)
	return root
}

func refresh(a *Arena[int, struct{}], id NodeID) {
	if a.isEmpty(id) {
		return
	}
	refresh(a, a.Left(id))
	refresh(a, a.Right(id))
	a.update(id)
}

func TestUnhook(t *testing.T) {
	a := refArena()
	root, err := BuildReference(a, 15)
	require.NoError(t, err)

	q := a.Left(root)
	side, err := a.Unhook(root, q)
	require.NoError(t, err)
	assert.Equal(t, LEFT, side)
	assert.Equal(t, REGULAR, a.Role(q))

	// 4's minimum is 4 itself, so its left external (2) moves up under 8
	assert.Equal(t, 2, a.Key(a.Left(root)))
	assert.Equal(t, Nil, a.Left(q))

	_, err = a.Unhook(root, q)
	assert.ErrorIs(t, err, utils.ErrInvariant)

	r := a.Right(root)
	_, err = a.Unhook(a.Left(root), r)
	assert.ErrorIs(t, err, utils.ErrInvariant)
	assert.Equal(t, EXTERNAL, a.Role(r))
}

func TestRemove_KeepsDepths(t *testing.T) {
	depths := []int{7, 3, 9, 0, 5, 2, 8, 1, 6, 4}
	for _, order := range [][]int{
		{4, 2, 8, 1, 10, 6, 3, 9, 5, 7},
		{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
		{10, 9, 8, 7, 6, 5, 4, 3, 2, 1},
	} {
		a := New[int, struct{}]()
		root := rangeDepthTree(a, depths)
		require.NoError(t, a.Verify(root))

		left := map[int]bool{}
		for k := 1; k <= len(depths); k++ {
			left[k] = true
		}
		for _, k := range order {
			root = a.Remove(root, k)
			delete(left, k)
			require.NoError(t, a.Verify(root), "after removing %d", k)

			lo, hi := len(depths), -1
			for key := range left {
				found, _ := a.Search(root, key)
				require.NotEqual(t, Nil, found)
				assert.Equal(t, depths[key-1], a.Depth(found), "depth of %d after removing %d", key, k)
				lo, hi = min(lo, depths[key-1]), max(hi, depths[key-1])
			}
			if len(left) > 0 {
				assert.Equal(t, lo, a.MinDepth(root))
				assert.Equal(t, hi, a.MaxDepth(root))
			}
		}
		assert.Equal(t, Nil, root)
	}
}
