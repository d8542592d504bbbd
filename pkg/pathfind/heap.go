package pathfind

// node is a search node in the A* open set.
type node[C any] struct {
	coord  C
	g      int // cost from start
	h      int // heuristic to goal
	seq    int // insertion order, for stable ties
	parent *node[C]
	index  int // index in heap, -1 once popped
}

func (n *node[C]) f() int { return n.g + n.h }

// openSet implements heap.Interface ordered by f, then h, then insertion.
type openSet[C any] []*node[C]

func (h openSet[C]) Len() int { return len(h) }

func (h openSet[C]) Less(i, j int) bool {
	a, b := h[i], h[j]
	if a.f() != b.f() {
		return a.f() < b.f()
	}
	if a.h != b.h {
		return a.h < b.h
	}
	return a.seq < b.seq
}

func (h openSet[C]) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *openSet[C]) Push(x any) {
	n := x.(*node[C])
	n.index = len(*h)
	*h = append(*h, n)
}

func (h *openSet[C]) Pop() any {
	old := *h
	last := len(old) - 1
	n := old[last]
	old[last] = nil
	n.index = -1
	*h = old[:last]
	return n
}
