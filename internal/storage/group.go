package storage

// grouping turns a flat sequence of joined rows into parents with child
// lists, in a single pass. Parents are kept in first-seen order (the store
// gives no ordering promise; callers that need one must sort). A parent
// visited only through left-join null rows keeps an empty child list
// rather than being dropped.
type grouping[K comparable, P, C any] struct {
	index    map[K]int
	parents  []P
	children [][]C
}

func newGrouping[K comparable, P, C any]() *grouping[K, P, C] {
	return &grouping[K, P, C]{index: make(map[K]int)}
}

// visit returns the slot for key, materializing the parent on first
// sight. newParent is only called for keys not seen before.
func (g *grouping[K, P, C]) visit(key K, newParent func() P) int {
	if slot, ok := g.index[key]; ok {
		return slot
	}
	slot := len(g.parents)
	g.index[key] = slot
	g.parents = append(g.parents, newParent())
	g.children = append(g.children, []C{})
	return slot
}

// add appends a child to the parent at slot.
func (g *grouping[K, P, C]) add(slot int, child C) {
	g.children[slot] = append(g.children[slot], child)
}

// size reports how many distinct parents were seen.
func (g *grouping[K, P, C]) size() int {
	return len(g.parents)
}

// each yields every parent with its accumulated children, in first-seen
// order. The children slice is never nil.
func (g *grouping[K, P, C]) each(fn func(parent P, children []C)) {
	for i, p := range g.parents {
		fn(p, g.children[i])
	}
}
