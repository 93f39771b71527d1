package avltree

// Remove deletes the entry for key, if one exists, returning its value
// and true. If key is absent, Remove is a no-op and returns the zero
// value and false.
//
// O(log n).
func (t *Tree[K, V]) Remove(key K) (removed V, ok bool) {
	var tr trail[K, V]
	target := t.descend(&tr, key)
	if target == nil {
		var zero V
		return zero, false
	}

	removed = target.value
	t.detachAndRebalance(&tr, target)
	t.size--
	return removed, true
}

// RemoveBy is Remove's heterogeneous-comparator counterpart: compare
// orders a probe value of type P against an in-tree key of type K, and
// must induce the same total order over K as t's own comparator.
func RemoveBy[K, V, P any](t *Tree[K, V], probe P, compare func(p P, k K) int) (removed V, ok bool) {
	var tr trail[K, V]
	compareAny := func(p any, k K) int { return compare(p.(P), k) }
	target := t.descendBy(&tr, probe, compareAny)
	if target == nil {
		var zero V
		return zero, false
	}

	removed = target.value
	t.detachAndRebalance(&tr, target)
	t.size--
	return removed, true
}

// descend records the path from root to target's parent on tr and
// returns the node comparing equal to key, or nil if none exists.
func (t *Tree[K, V]) descend(tr *trail[K, V], key K) *node[K, V] {
	cur := t.root
	for cur != nil {
		c := t.compare(key, cur.key)
		if c == 0 {
			return cur
		}
		left := c < 0
		tr.push(cur, left)
		cur = cur.child(left)
	}
	return nil
}

// descendBy uses a heterogeneous comparator in place of descend's
// comparator. A method cannot declare its own type parameter P in Go,
// so descendBy takes the probe as any and a comparator over any;
// RemoveBy wraps its typed comparator to fit.
func (t *Tree[K, V]) descendBy(tr *trail[K, V], probe any, compareAny func(any, K) int) *node[K, V] {
	cur := t.root
	for cur != nil {
		c := compareAny(probe, cur.key)
		if c == 0 {
			return cur
		}
		left := c < 0
		tr.push(cur, left)
		cur = cur.child(left)
	}
	return nil
}

// detachAndRebalance invokes the tree's onEvict hook on target, unlinks
// it from the tree (handling the zero/one/two-child cases of §4.5), and
// then retraces tr to repair balance factors and rotate as necessary.
func (t *Tree[K, V]) detachAndRebalance(tr *trail[K, V], target *node[K, V]) {
	t.evict(target)

	if target.left != nil && target.right != nil {
		t.swapWithSuccessor(tr, target)
	} else {
		var child *node[K, V]
		if target.left != nil {
			child = target.left
		} else {
			child = target.right
		}
		t.replaceChild(tr, tr.len(), child)
	}

	t.retraceAfterDelete(tr)
}

// swapWithSuccessor replaces target (which has two children) with its
// inorder successor (the leftmost node of its right subtree), pushing
// onto tr the continuation of the descent path down to the point that
// actually shrinks, so the retrace loop knows which side shrank at
// every level. target is left fully detached; the successor inherits
// target's left, right, and balance factor.
func (t *Tree[K, V]) swapWithSuccessor(tr *trail[K, V], target *node[K, V]) {
	targetDepth := tr.len()
	successor := target.right

	if successor.left == nil {
		// successor is target.right itself: its own right child (if
		// any) takes its place, so the shrink is recorded at
		// successor's own right edge.
		successor.left = target.left
		successor.balanceFactor = target.balanceFactor
		tr.push(successor, false)
		t.replaceChild(tr, targetDepth, successor)
		return
	}

	// Find the true successor first: it takes target's place, so its
	// frame (right side shrank) goes at targetDepth. Then descend
	// target.right's left spine, pushing a (node, wentLeft) frame at
	// each step. The last frame pushed is (Q, true), where Q is the
	// immediate parent of the true successor - the shrink happens on
	// Q's left edge.
	for successor.left != nil {
		successor = successor.left
	}
	tr.push(successor, false)
	for cur := target.right; cur != successor; cur = cur.left {
		tr.push(cur, true)
	}

	parent, _, _ := tr.at(0)
	parent.left = successor.right

	successor.left = target.left
	successor.right = target.right
	successor.balanceFactor = target.balanceFactor
	t.replaceChild(tr, targetDepth, successor)
}

// retraceAfterDelete walks tr from the bottom up. At each frame, the
// bit recorded there says which side of that ancestor shrank; the
// node's balance factor is adjusted accordingly, and rotations are
// applied per the deletion table in §4.5 until a rotation reports
// "height unchanged", at which point retracing stops.
func (t *Tree[K, V]) retraceAfterDelete(tr *trail[K, V]) {
	for {
		parentNode, wentLeft, ok := tr.pop()
		if !ok {
			return
		}

		if wentLeft {
			parentNode.balanceFactor++
		} else {
			parentNode.balanceFactor--
		}

		switch parentNode.balanceFactor {
		case 1, -1:
			// Height unchanged: this subtree absorbed the shrink
			// without becoming unbalanced. Nothing propagates further.
			return
		case 0:
			// Perfectly balanced now, but height decreased by one;
			// keep retracing.
			continue
		}

		rotated, heightDecreased := rebalanceAfterDelete(parentNode)
		t.replaceChild(tr, tr.len(), rotated)
		if !heightDecreased {
			return
		}
	}
}

// rebalanceAfterDelete repairs a subtree rooted at n whose balance
// factor is +-2 after a deletion, returning the new subtree root and
// whether the subtree's height decreased (in which case the caller
// should keep retracing upward).
func rebalanceAfterDelete[K, V any](n *node[K, V]) (root *node[K, V], heightDecreased bool) {
	if n.balanceFactor == 2 {
		sibling := n.right
		if sibling.balanceFactor >= 0 {
			wasZero := sibling.balanceFactor == 0
			root = rotateLeft(n, sibling)
			if wasZero {
				n.balanceFactor = 1
				sibling.balanceFactor = -1
				return root, false
			}
			n.balanceFactor = 0
			sibling.balanceFactor = 0
			return root, true
		}
		return rotateRightLeft(n, sibling, sibling.left), true
	}

	sibling := n.left
	if sibling.balanceFactor <= 0 {
		wasZero := sibling.balanceFactor == 0
		root = rotateRight(n, sibling)
		if wasZero {
			n.balanceFactor = -1
			sibling.balanceFactor = 1
			return root, false
		}
		n.balanceFactor = 0
		sibling.balanceFactor = 0
		return root, true
	}
	return rotateLeftRight(n, sibling, sibling.right), true
}
