package element

// FindParent returns the parent of target by depth-first search from root.
//
// It checks a node's immediate children before descending, so the shallowest
// owner wins if the tree is (incorrectly) shared. The second result is false
// when target is not under root; for target == root it returns (nil, true).
//
// FindParent is O(tree size). [Tree] answers the same question from an index
// and is what the applier uses; FindParent is the reference lookup for
// callers holding a bare root.
func FindParent(root, target *Node) (*Node, bool) {
	if root == nil || target == nil {
		return nil, false
	}
	if root == target {
		return nil, true
	}
	return findParent(root, target)
}

func findParent(n, target *Node) (*Node, bool) {
	if n.IndexOf(target) >= 0 {
		return n, true
	}
	for _, c := range n.children {
		if p, ok := findParent(c, target); ok {
			return p, true
		}
	}
	return nil, false
}

// Find returns the first node with the given ID in depth-first pre-order.
func Find(root *Node, id string) *Node {
	var found *Node
	Walk(root, func(n, _ *Node, _ int) bool {
		if n.ID == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// Walk visits root and its descendants in depth-first pre-order, passing
// each node with its parent (nil for root) and depth. Returning false from
// fn stops the walk.
func Walk(root *Node, fn func(n, parent *Node, depth int) bool) {
	if root == nil {
		return
	}
	walk(root, nil, 0, fn)
}

func walk(n, parent *Node, depth int, fn func(n, parent *Node, depth int) bool) bool {
	if !fn(n, parent, depth) {
		return false
	}
	for _, c := range n.children {
		if !walk(c, n, depth+1, fn) {
			return false
		}
	}
	return true
}

// Count returns the number of nodes under root, root included.
func Count(root *Node) int {
	count := 0
	Walk(root, func(*Node, *Node, int) bool {
		count++
		return true
	})
	return count
}
