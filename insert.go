package avltree

// Insert inserts key/value into the tree. If an entry with an equal key
// already existed, its value is replaced and the previous value is
// returned with hadPrevious set to true; the tree's topology and
// balance factors are left unchanged in that case. Otherwise the new
// entry is linked in, balance is restored, and hadPrevious is false.
//
// O(log n).
func (t *Tree[K, V]) Insert(key K, value V) (previous V, hadPrevious bool) {
	if t.root == nil {
		t.root = newNode[K, V](key, value)
		t.size++
		var zero V
		return zero, false
	}

	var tr trail[K, V]
	rotateRootDepth := 0
	cur := t.root

	for {
		c := t.compare(key, cur.key)
		if c == 0 {
			previous = cur.value
			cur.value = value
			return previous, true
		}

		if cur.balanceFactor != 0 {
			rotateRootDepth = tr.len()
		}

		left := c < 0
		tr.push(cur, left)

		next := cur.child(left)
		if next == nil {
			newN := newNode[K, V](key, value)
			cur.setChild(left, newN)
			t.size++
			break
		}
		cur = next
	}

	t.retraceAfterInsert(&tr, rotateRootDepth)

	var zero V
	return zero, false
}

// GetOrInsert returns the value already stored under key, if present
// (inserted is false in that case and factory is never called).
// Otherwise factory is invoked exactly once to produce a value, which
// is inserted under key and returned with inserted set to true.
//
// O(log n).
func (t *Tree[K, V]) GetOrInsert(key K, factory func() V) (value V, inserted bool) {
	if t.root == nil {
		v := factory()
		t.root = newNode[K, V](key, v)
		t.size++
		return v, true
	}

	var tr trail[K, V]
	rotateRootDepth := 0
	cur := t.root

	for {
		c := t.compare(key, cur.key)
		if c == 0 {
			return cur.value, false
		}

		if cur.balanceFactor != 0 {
			rotateRootDepth = tr.len()
		}

		left := c < 0
		tr.push(cur, left)

		next := cur.child(left)
		if next == nil {
			v := factory()
			newN := newNode[K, V](key, v)
			cur.setChild(left, newN)
			t.size++
			t.retraceAfterInsert(&tr, rotateRootDepth)
			return v, true
		}
		cur = next
	}
}

// retraceAfterInsert walks the suffix of tr starting at rotateRootDepth
// (the deepest ancestor seen during descent whose balance factor was
// already nonzero — everything above it is guaranteed to still be in
// {-1,0,1} after absorbing one unit of height growth, so retracing
// further up is unnecessary) up to the newly inserted leaf, adjusting
// balance factors by the descent direction and performing at most one
// rotation if the root of that suffix ends up at +-2.
func (t *Tree[K, V]) retraceAfterInsert(tr *trail[K, V], rotateRootDepth int) {
	n := tr.len()

	for i := rotateRootDepth; i < n; i++ {
		cur := tr.nodeAt(i)
		if tr.wentLeftAt(i) {
			cur.balanceFactor--
		} else {
			cur.balanceFactor++
		}
	}

	root := tr.nodeAt(rotateRootDepth)
	if root.balanceFactor != 2 && root.balanceFactor != -2 {
		return
	}

	rotated := rotateSubtree(root)
	t.replaceChild(tr, rotateRootDepth, rotated)
}

// rotateSubtree applies the single-or-double rotation needed to repair
// root, whose balance factor is already known to be +-2, and returns
// the new root of that subtree.
func rotateSubtree[K, V any](root *node[K, V]) *node[K, V] {
	if root.balanceFactor == -2 {
		child := root.left
		if child.balanceFactor <= 0 {
			rotated := rotateRight(root, child)
			root.balanceFactor = 0
			child.balanceFactor = 0
			return rotated
		}
		return rotateLeftRight(root, child, child.right)
	}

	child := root.right
	if child.balanceFactor >= 0 {
		rotated := rotateLeft(root, child)
		root.balanceFactor = 0
		child.balanceFactor = 0
		return rotated
	}
	return rotateRightLeft(root, child, child.left)
}

// replaceChild patches the edge that used to point at the old subtree
// root at trail depth depth (or t.root, if depth is 0) so that it now
// points at newRoot.
func (t *Tree[K, V]) replaceChild(tr *trail[K, V], depth int, newRoot *node[K, V]) {
	if depth == 0 {
		t.root = newRoot
		return
	}
	parent := tr.nodeAt(depth - 1)
	parent.setChild(tr.wentLeftAt(depth-1), newRoot)
}
