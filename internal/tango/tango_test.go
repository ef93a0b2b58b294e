package tango

import (
	"math/bits"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tferdous17/tango/internal/rbtree"
	"github.com/tferdous17/tango/utils"
)

// ancestors lists the reference-tree path from the root down to key.
func ancestors(n, key int) []int {
	var path []int
	l, r := 1, n
	for l <= r {
		m := (l + r + 1) / 2
		path = append(path, m)
		switch {
		case key < m:
			r = m - 1
		case key > m:
			l = m + 1
		default:
			return path
		}
	}
	return path
}

func assertOnTopPath(t *testing.T, tree *Tree, key int) {
	t.Helper()
	top := make(map[int]bool)
	for _, k := range tree.PathKeys() {
		top[k] = true
	}
	for _, k := range ancestors(tree.Size(), key) {
		assert.True(t, top[k], "ancestor %d of %d is off the top path %v", k, key, tree.PathKeys())
	}
}

func TestBuild(t *testing.T) {
	tree, err := Build(15, WithInvariantChecks())
	require.NoError(t, err)
	assert.Equal(t, []int{8}, tree.PathKeys())
	require.NoError(t, tree.Verify())

	_, err = Build(0)
	assert.ErrorIs(t, err, utils.ErrInvalidSize)
}

func TestSearch_Scenario(t *testing.T) {
	tree, err := Build(15, WithInvariantChecks())
	require.NoError(t, err)

	found, steps := tree.Search(4)
	assert.True(t, found)
	assert.Equal(t, 1, steps)
	assert.Equal(t, []int{4, 8}, tree.PathKeys())
	require.NoError(t, tree.Verify())

	found, steps = tree.Search(12)
	assert.True(t, found)
	assert.Equal(t, 1, steps)
	assert.Equal(t, []int{8, 12}, tree.PathKeys())
	require.NoError(t, tree.Verify())

	found, steps = tree.Search(1)
	assert.True(t, found)
	assert.Equal(t, 3, steps)
	assert.Equal(t, []int{1, 2, 4, 8}, tree.PathKeys())
	require.NoError(t, tree.Verify())

	// already on the top path
	_, steps = tree.Search(2)
	assert.Equal(t, 0, steps)
}

func TestSearch_OutsideUniverse(t *testing.T) {
	tree, err := Build(15, WithInvariantChecks())
	require.NoError(t, err)

	found, steps := tree.Search(0)
	assert.False(t, found)
	assert.LessOrEqual(t, steps, 4)
	require.NoError(t, tree.Verify())

	found, _ = tree.Search(16)
	assert.False(t, found)
	require.NoError(t, tree.Verify())
	assertOnTopPath(t, tree, 15)
}

func TestSearch_SingleKey(t *testing.T) {
	tree, err := Build(1)
	require.NoError(t, err)

	found, steps := tree.Search(1)
	assert.True(t, found)
	assert.Equal(t, 0, steps)
	require.NoError(t, tree.Verify())
}

func TestSearch_EveryKey(t *testing.T) {
	for _, n := range []int{2, 3, 7, 15, 31, 100} {
		tree, err := Build(n, WithInvariantChecks())
		require.NoError(t, err)

		for k := 1; k <= n; k++ {
			found, steps := tree.Search(k)
			require.True(t, found, "n=%d key=%d", n, k)
			require.LessOrEqual(t, steps, bits.Len(uint(n)))
			require.NoError(t, tree.Verify(), "n=%d key=%d", n, k)
			assertOnTopPath(t, tree, k)
		}
	}
}

func TestSearch_RandomSequences(t *testing.T) {
	for seed := int64(1); seed <= 4; seed++ {
		faker := gofakeit.New(seed)
		n := faker.Number(1, 600)
		tree, err := Build(n)
		require.NoError(t, err)

		for _, k := range utils.RandomKeys(400, n, seed) {
			found, steps := tree.Search(k)
			require.True(t, found)
			require.LessOrEqual(t, steps, bits.Len(uint(n)))
			assertOnTopPath(t, tree, k)
		}
		require.NoError(t, tree.Verify())
		assert.Equal(t, n, tree.Arena().Len())
	}
}

func TestSearch_RepeatedKeyIsFree(t *testing.T) {
	tree, err := Build(255)
	require.NoError(t, err)

	_, first := tree.Search(77)
	assert.Positive(t, first)
	for i := 0; i < 5; i++ {
		_, steps := tree.Search(77)
		assert.Equal(t, 0, steps)
	}
}

func TestVerify_DetectsBrokenPath(t *testing.T) {
	tree, err := Build(15)
	require.NoError(t, err)
	tree.Search(1)

	// hand 12's subtree to the top path without merging it
	a := tree.Arena()
	q, _ := a.Search(tree.Root(), 12)
	require.Equal(t, rbtree.EXTERNAL, a.Role(q))
	a.SetRole(q, rbtree.REGULAR)
	assert.ErrorIs(t, tree.Verify(), utils.ErrInvariant)
}

func TestString(t *testing.T) {
	color.NoColor = true
	tree, err := Build(7)
	require.NoError(t, err)

	out := tree.String()
	assert.Contains(t, out, "(4)")
	assert.Contains(t, out, "[2]")
	assert.Contains(t, out, "[6]")

	tree.Search(3)
	out = tree.String()
	assert.Contains(t, out, "(2)")
	assert.Contains(t, out, "(3)")
	assert.Contains(t, out, "[1]")
}

func BenchmarkSearch(b *testing.B) {
	tree, _ := Build(1 << 20)
	keys := utils.RandomKeys(b.N, 1<<20, 3)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		tree.Search(keys[i])
	}

	opsPerSec := float64(b.N) / b.Elapsed().Seconds()
	b.ReportMetric(opsPerSec, "ops/s")
}
