package graph

import (
	"github.com/boljen/go-bitmap"
)

// walker is breadth first search state. The visited set outlives a single
// walk so Components() can sweep every node without revisiting.
type walker struct {
	g       *Graph
	queue   []int
	visited bitmap.Bitmap
}

func newWalker(g *Graph) *walker {
	return &walker{
		g:       g,
		queue:   make([]int, 0, len(g.adj)),
		visited: bitmap.New(len(g.adj)),
	}
}

// walk visits everything reachable from start (that hasn't been visited by a previous
// walk) calling fn for each node in BFS order. Returning false from fn stops the walk.
func (w *walker) walk(start int, fn func(h int) bool) {
	w.queue = w.queue[:0]
	w.enqueue(start)

	for len(w.queue) > 0 {
		h := w.dequeue()
		if !fn(h) {
			return
		}
		for _, n := range w.g.adj[h] {
			if !w.visited.Get(n) {
				w.enqueue(n)
			}
		}
	}
}

func (w *walker) enqueue(h int) {
	w.visited.Set(h, true)
	w.queue = append(w.queue, h)
}

func (w *walker) dequeue() int {
	h := w.queue[0]
	w.queue = w.queue[1:]
	return h
}
