package avltree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// verifyInvariants recomputes height and balance factors from scratch
// and fails the test if they disagree with the tree's own bookkeeping,
// or if the recorded size is wrong.
func verifyInvariants[K, V any](t *testing.T, tr *Tree[K, V]) {
	t.Helper()
	size, _ := verifySubtree(t, tr.root)
	require.Equal(t, tr.size, size, "tracked size disagrees with actual node count")
}

func verifySubtree[K, V any](t *testing.T, n *node[K, V]) (size, height int) {
	t.Helper()
	if n == nil {
		return 0, 0
	}
	leftSize, leftHeight := verifySubtree(t, n.left)
	rightSize, rightHeight := verifySubtree(t, n.right)

	bf := int8(rightHeight - leftHeight)
	require.GreaterOrEqual(t, int(bf), -1, "node unbalanced")
	require.LessOrEqual(t, int(bf), 1, "node unbalanced")
	require.Equal(t, bf, n.balanceFactor, "stale balance factor")

	height = leftHeight + 1
	if rightHeight > leftHeight {
		height = rightHeight + 1
	}
	return leftSize + rightSize + 1, height
}

func TestTreeEmpty(t *testing.T) {
	tr := New[int, string](compareInts)
	require.Equal(t, 0, tr.Len())

	_, ok := tr.Get(42)
	assert.False(t, ok)

	_, ok = tr.Remove(42)
	assert.False(t, ok)
}

func TestTreeSingleNode(t *testing.T) {
	tr := New[int, string](compareInts)
	tr.Insert(1, "one")
	require.Equal(t, 1, tr.Len())

	v, ok := tr.Get(1)
	require.True(t, ok)
	assert.Equal(t, "one", v)

	removed, ok := tr.Remove(1)
	require.True(t, ok)
	assert.Equal(t, "one", removed)
	assert.Equal(t, 0, tr.Len())
	verifyInvariants(t, tr)
}

func TestTreeSortedInsertAndReadback(t *testing.T) {
	const n = 2000
	tr := New[int, int](compareInts)
	for i := 0; i < n; i++ {
		_, had := tr.Insert(i, i*2)
		require.False(t, had)
		verifyInvariants(t, tr)
	}

	require.Equal(t, n, tr.Len())
	for i := 0; i < n; i++ {
		v, ok := tr.Get(i)
		require.True(t, ok)
		assert.Equal(t, i*2, v)
	}
}

func TestTreeDuplicateKeyInsertReturnsPrevious(t *testing.T) {
	tr := New[int, string](compareInts)
	_, had := tr.Insert(5, "first")
	require.False(t, had)

	prev, had := tr.Insert(5, "second")
	require.True(t, had)
	assert.Equal(t, "first", prev)

	v, ok := tr.Get(5)
	require.True(t, ok)
	assert.Equal(t, "second", v)
	assert.Equal(t, 1, tr.Len())
}

func TestTreeRemoveTwoChildRoot(t *testing.T) {
	tr := New[int, int](compareInts)
	for _, k := range []int{5, 2, 8, 1, 3, 7, 9} {
		tr.Insert(k, k)
	}
	verifyInvariants(t, tr)

	removed, ok := tr.Remove(5)
	require.True(t, ok)
	assert.Equal(t, 5, removed)
	verifyInvariants(t, tr)

	_, ok = tr.Get(5)
	assert.False(t, ok)
	for _, k := range []int{2, 8, 1, 3, 7, 9} {
		_, ok := tr.Get(k)
		assert.True(t, ok)
	}
}

// TestTreeRemoveSuccessorIsImmediateRightChild covers the degenerate
// two-child-deletion case where the target's inorder successor is its
// own right child (no left-spine descent needed).
func TestTreeRemoveSuccessorIsImmediateRightChild(t *testing.T) {
	tr := New[int, int](compareInts)
	for _, k := range []int{10, 5, 15, 12, 20} {
		tr.Insert(k, k)
	}
	verifyInvariants(t, tr)

	removed, ok := tr.Remove(15)
	require.True(t, ok)
	assert.Equal(t, 15, removed)
	verifyInvariants(t, tr)

	for _, k := range []int{10, 5, 12, 20} {
		_, ok := tr.Get(k)
		assert.True(t, ok)
	}
	_, ok = tr.Get(15)
	assert.False(t, ok)
}

func TestGetByHeterogeneousComparator(t *testing.T) {
	tr := New[string, int](func(a, b string) int {
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		default:
			return 0
		}
	})
	tr.Insert("hello", 1)
	tr.Insert("world", 2)

	v, ok := GetBy[string, int, []byte](tr, []byte("world"), func(p []byte, k string) int {
		s := string(p)
		switch {
		case s < k:
			return -1
		case s > k:
			return 1
		default:
			return 0
		}
	})
	require.True(t, ok)
	assert.Equal(t, 2, v)
}
