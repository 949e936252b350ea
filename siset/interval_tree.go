// Copyright 2026 The Spantime Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package siset

import "github.com/spantime/spantime/span"

// intervalTree is an augmented interval tree for efficient overlap
// queries over a set of SpanIntervals, keyed by each member's bounding
// ordinary interval. It is a balanced BST (AVL tree) where each node
// additionally stores the maximum bounding-finish in its subtree,
// giving O(log n + k) overlap queries. Adapted from an AVL-balanced
// fact-interval tree used to index temporal facts by validity interval,
// generalized here to index SISet members by their bounding interval
// instead of a wall-clock timestamp range.
type intervalTree struct {
	root *treeNode
	size int
}

type treeNode struct {
	member span.SpanInterval
	maxEnd int64
	height int
	left   *treeNode
	right  *treeNode
}

func newIntervalTree() *intervalTree {
	return &intervalTree{}
}

func (t *intervalTree) Insert(si span.SpanInterval) {
	t.root = t.insert(t.root, si)
	t.size++
}

func (t *intervalTree) insert(node *treeNode, si span.SpanInterval) *treeNode {
	if node == nil {
		return &treeNode{member: si, maxEnd: si.Bounding().Finish, height: 1}
	}
	if si.Less(node.member) {
		node.left = t.insert(node.left, si)
	} else {
		node.right = t.insert(node.right, si)
	}
	return t.rebalance(node)
}

// QueryOverlap calls fn for every member whose bounding interval
// overlaps [start,finish].
func (t *intervalTree) QueryOverlap(start, finish int64, fn func(span.SpanInterval)) {
	t.queryOverlap(t.root, start, finish, fn)
}

func (t *intervalTree) queryOverlap(node *treeNode, start, finish int64, fn func(span.SpanInterval)) {
	if node == nil || node.maxEnd < start {
		return
	}
	t.queryOverlap(node.left, start, finish, fn)
	b := node.member.Bounding()
	if b.Start <= finish && start <= b.Finish {
		fn(node.member)
	}
	if b.Start <= finish {
		t.queryOverlap(node.right, start, finish, fn)
	}
}

// All calls fn for every member, in ascending canonical order.
func (t *intervalTree) All(fn func(span.SpanInterval)) {
	t.inOrder(t.root, fn)
}

func (t *intervalTree) inOrder(node *treeNode, fn func(span.SpanInterval)) {
	if node == nil {
		return
	}
	t.inOrder(node.left, fn)
	fn(node.member)
	t.inOrder(node.right, fn)
}

func (t *intervalTree) Size() int { return t.size }

func height(n *treeNode) int {
	if n == nil {
		return 0
	}
	return n.height
}

func updateHeight(n *treeNode) {
	l, r := height(n.left), height(n.right)
	if l > r {
		n.height = 1 + l
	} else {
		n.height = 1 + r
	}
}

func updateMaxEnd(n *treeNode) {
	n.maxEnd = n.member.Bounding().Finish
	if n.left != nil && n.left.maxEnd > n.maxEnd {
		n.maxEnd = n.left.maxEnd
	}
	if n.right != nil && n.right.maxEnd > n.maxEnd {
		n.maxEnd = n.right.maxEnd
	}
}

func balanceFactor(n *treeNode) int {
	if n == nil {
		return 0
	}
	return height(n.left) - height(n.right)
}

func (t *intervalTree) rotateRight(y *treeNode) *treeNode {
	x := y.left
	z := x.right
	x.right = y
	y.left = z
	updateHeight(y)
	updateMaxEnd(y)
	updateHeight(x)
	updateMaxEnd(x)
	return x
}

func (t *intervalTree) rotateLeft(x *treeNode) *treeNode {
	y := x.right
	z := y.left
	y.left = x
	x.right = z
	updateHeight(x)
	updateMaxEnd(x)
	updateHeight(y)
	updateMaxEnd(y)
	return y
}

func (t *intervalTree) rebalance(node *treeNode) *treeNode {
	updateHeight(node)
	updateMaxEnd(node)
	balance := balanceFactor(node)
	if balance > 1 {
		if balanceFactor(node.left) < 0 {
			node.left = t.rotateLeft(node.left)
		}
		return t.rotateRight(node)
	}
	if balance < -1 {
		if balanceFactor(node.right) > 0 {
			node.right = t.rotateRight(node.right)
		}
		return t.rotateLeft(node)
	}
	return node
}
