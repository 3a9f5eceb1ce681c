package ast

import "iter"

// Walk traverses the tree rooted at n in pre-order. If fn returns false
// the children of that node are skipped.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children() {
		Walk(c, fn)
	}
}

// SetParents links every node below root to its enclosing node. root keeps
// whatever parent it already had.
func SetParents(root Node) {
	Walk(root, func(n Node) bool {
		for _, c := range n.Children() {
			if ps, ok := c.(parentSetter); ok {
				ps.setParent(n)
			}
		}
		return true
	})
}

// Ancestors yields the parent of n, then its parent, up to the root.
func Ancestors(n Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		if n == nil {
			return
		}
		for p := n.Parent(); p != nil; p = p.Parent() {
			if !yield(p) {
				return
			}
		}
	}
}
