package store

import (
	"sync"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tferdous17/tango/utils"
)

func init() {
	color.NoColor = true
}

func TestRegistry_InsertContains(t *testing.T) {
	r := NewRegistry(WithRegistryChecks())
	for _, k := range []int{1, 3, 7} {
		r.Insert(0, k)
	}

	assert.True(t, r.Contains(0, 3))
	assert.False(t, r.Contains(0, 5))
	assert.False(t, r.Contains(9, 3), "unknown id reads as empty")
	assert.Equal(t, []int{0}, r.IDs())

	keys, err := r.Keys(0)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 7}, keys)
}

func TestRegistry_Remove(t *testing.T) {
	r := NewRegistry(WithRegistryChecks())
	r.Insert(1, 10)
	r.Insert(1, 20)

	require.NoError(t, r.Remove(1, 10))
	assert.False(t, r.Contains(1, 10))
	assert.True(t, r.Contains(1, 20))

	require.NoError(t, r.Remove(1, 99))
	assert.ErrorIs(t, r.Remove(2, 10), utils.ErrInvalidID)
}

func TestRegistry_Join(t *testing.T) {
	r := NewRegistry(WithRegistryChecks())
	r.Insert(1, 1)
	r.Insert(1, 2)
	r.Insert(2, 8)
	r.Insert(2, 9)

	require.NoError(t, r.Join(1, 5, 2))
	keys, err := r.Keys(1)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 5, 8, 9}, keys)
	assert.Equal(t, []int{1}, r.IDs(), "right tree is consumed")

	// the merged filter still knows about keys that came from tree 2
	assert.True(t, r.Contains(1, 9))
	assert.True(t, r.Contains(1, 5))
}

func TestRegistry_JoinErrors(t *testing.T) {
	r := NewRegistry(WithRegistryChecks())
	r.Insert(1, 1)
	r.Insert(1, 6)
	r.Insert(2, 8)

	assert.ErrorIs(t, r.Join(1, 5, 2), utils.ErrOrderViolated)
	assert.ErrorIs(t, r.Join(1, 5, 1), utils.ErrOrderViolated)
	assert.Equal(t, []int{1, 2}, r.IDs())

	keys, _ := r.Keys(1)
	assert.Equal(t, []int{1, 6}, keys)
}

func TestRegistry_JoinUnknownIDs(t *testing.T) {
	r := NewRegistry(WithRegistryChecks())
	require.NoError(t, r.Join(4, 42, 5))

	keys, err := r.Keys(4)
	require.NoError(t, err)
	assert.Equal(t, []int{42}, keys)
	assert.True(t, r.Contains(4, 42))
}

func TestRegistry_SplitRestores(t *testing.T) {
	r := NewRegistry(WithRegistryChecks())
	for _, k := range []int{1, 2, 5, 8, 9} {
		r.Insert(0, k)
	}

	view, err := r.Split(0, 5)
	require.NoError(t, err)
	assert.Contains(t, view.Left, "(1, ")
	assert.Contains(t, view.Left, "(2, ")
	assert.Equal(t, "(5, BLACK)\n", view.Pivot)
	assert.Contains(t, view.Right, "(9, ")
	assert.NotContains(t, view.Right, "(2, ")

	keys, err := r.Keys(0)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 5, 8, 9}, keys)

	_, err = r.Split(0, 4)
	assert.ErrorIs(t, err, utils.ErrKeyNotFound)
	_, err = r.Split(3, 4)
	assert.ErrorIs(t, err, utils.ErrInvalidID)
}

func TestRegistry_SplitEmptyTree(t *testing.T) {
	r := NewRegistry()
	r.Insert(0, 1)
	require.NoError(t, r.Remove(0, 1))

	_, err := r.Split(0, 1)
	assert.ErrorIs(t, err, utils.ErrEmptyTree)
}

func TestRegistry_Show(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, "(empty)\n", r.Show(7))

	r.Insert(7, 3)
	assert.Equal(t, "(3, BLACK)\n", r.Show(7))
}

func TestRegistry_Concurrent(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for id := 0; id < 8; id++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for _, k := range utils.RandomKeys(200, 1000, int64(id)) {
				r.Insert(id, k)
				r.Contains(id, k+1)
			}
		}(id)
	}
	wg.Wait()

	assert.Len(t, r.IDs(), 8)
	for id := 0; id < 8; id++ {
		for _, k := range utils.RandomKeys(200, 1000, int64(id)) {
			require.True(t, r.Contains(id, k))
		}
	}
}

func BenchmarkRegistry_Contains(b *testing.B) {
	r := NewRegistry()
	for _, k := range utils.RandomKeys(100_000, 1_000_000, 1) {
		r.Insert(0, k)
	}
	keys := utils.RandomKeys(b.N, 1_000_000, 2)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		r.Contains(0, keys[i])
	}

	opsPerSec := float64(b.N) / b.Elapsed().Seconds()
	b.ReportMetric(opsPerSec, "ops/s")
}
