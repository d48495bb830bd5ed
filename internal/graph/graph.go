// Package graph holds piece-to-piece adjacency by integer handle & answers
// reachability questions about it.
package graph

import (
	"fmt"

	"github.com/boljen/go-bitmap"
)

// Graph is an undirected adjacency list over handles 0..Len()-1.
// Neighbours are kept in link order so walks are deterministic.
type Graph struct {
	adj   [][]int
	edges int
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{adj: [][]int{}}
}

// Add a node, returning its handle.
func (g *Graph) Add() int {
	g.adj = append(g.adj, []int{})
	return len(g.adj) - 1
}

// Len is the number of nodes.
func (g *Graph) Len() int {
	return len(g.adj)
}

// EdgeCount is the number of links.
func (g *Graph) EdgeCount() int {
	return g.edges
}

// Link a & b. Both handles must exist.
func (g *Graph) Link(a, b int) error {
	if !g.has(a) || !g.has(b) {
		return fmt.Errorf("link %d-%d: unknown handle", a, b)
	}
	g.adj[a] = append(g.adj[a], b)
	if a != b {
		g.adj[b] = append(g.adj[b], a)
	}
	g.edges++
	return nil
}

// Neighbours of h in link order. Callers must not modify the result.
func (g *Graph) Neighbours(h int) []int {
	if !g.has(h) {
		return nil
	}
	return g.adj[h]
}

// Reachable returns if there is any path from -> to.
func (g *Graph) Reachable(from, to int) bool {
	if !g.has(from) || !g.has(to) {
		return false
	}
	if from == to {
		return true
	}

	found := false
	w := newWalker(g)
	w.walk(from, func(h int) bool {
		if h == to {
			found = true
			return false
		}
		return true
	})
	return found
}

// Components returns every connected component, each listed in BFS order,
// components ordered by their lowest handle.
func (g *Graph) Components() [][]int {
	out := [][]int{}

	w := newWalker(g)
	for h := range g.adj {
		if w.visited.Get(h) {
			continue
		}
		comp := []int{}
		w.walk(h, func(n int) bool {
			comp = append(comp, n)
			return true
		})
		out = append(out, comp)
	}

	return out
}

// ComponentEdges counts links with both ends inside comp.
func (g *Graph) ComponentEdges(comp []int) int {
	in := bitmap.New(len(g.adj))
	for _, h := range comp {
		in.Set(h, true)
	}

	count := 0
	for _, h := range comp {
		for _, n := range g.adj[h] {
			if in.Get(n) {
				count++
			}
		}
	}
	return count / 2
}

func (g *Graph) has(h int) bool {
	return h >= 0 && h < len(g.adj)
}
