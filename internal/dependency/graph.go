/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package dependency provides the node dependency graph used to order and validate executions.
//
// Nodes are interned into an integer arena. An edge U -> O means node O consumes a field of
// node U's response, so U must run first.
package dependency

import (
	"errors"
	"sort"
)

// ErrCycleDetected is returned when the graph cannot be layered.
var ErrCycleDetected = errors.New("dependency cycle detected")

// Graph is a directed graph over node identifiers.
type Graph struct {
	index map[string]int
	ids   []string
	rank  []int
	out   [][]int
	in    [][]int
	edges map[[2]int]struct{}
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		index: map[string]int{},
		edges: map[[2]int]struct{}{},
	}
}

// AddNode adds a node with the rank used to order nodes inside a layer. Adding an existing node
// updates its rank.
func (g *Graph) AddNode(id string, rank int) {
	if i, ok := g.index[id]; ok {
		g.rank[i] = rank
		return
	}
	g.intern(id, rank)
}

// AddEdge adds the edge from -> to, adding missing nodes with rank zero. Duplicate edges are ignored.
func (g *Graph) AddEdge(from, to string) {
	f := g.lookupOrIntern(from)
	t := g.lookupOrIntern(to)
	key := [2]int{f, t}
	if _, ok := g.edges[key]; ok {
		return
	}
	g.edges[key] = struct{}{}
	g.out[f] = append(g.out[f], t)
	g.in[t] = append(g.in[t], f)
}

// HasNode reports whether the node is part of the graph.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.index[id]
	return ok
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.ids)
}

// Reaches reports whether a path from -> ... -> to exists. A node reaches itself.
func (g *Graph) Reaches(from, to string) bool {
	f, ok := g.index[from]
	if !ok {
		return false
	}
	t, ok := g.index[to]
	if !ok {
		return false
	}

	visited := make([]bool, len(g.ids))
	stack := []int{f}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n == t {
			return true
		}
		if visited[n] {
			continue
		}
		visited[n] = true
		stack = append(stack, g.out[n]...)
	}
	return false
}

// WouldCycle reports whether adding from -> to would close a cycle, self edges included.
func (g *Graph) WouldCycle(from, to string) bool {
	return from == to || g.Reaches(to, from)
}

// Upstream returns the direct predecessors of the node ordered by rank.
func (g *Graph) Upstream(id string) []string {
	i, ok := g.index[id]
	if !ok {
		return nil
	}
	return g.names(append([]int(nil), g.in[i]...))
}

// Layers groups the nodes so that every edge points from an earlier layer to a later one.
// Nodes inside a layer are ordered by rank, then identifier.
func (g *Graph) Layers() ([][]string, error) {
	inDegree := make([]int, len(g.ids))
	for i := range g.in {
		inDegree[i] = len(g.in[i])
	}

	var current []int
	for i, d := range inDegree {
		if d == 0 {
			current = append(current, i)
		}
	}

	var layers [][]string
	placed := 0
	for len(current) > 0 {
		layers = append(layers, g.names(current))
		placed += len(current)

		var next []int
		for _, n := range current {
			for _, m := range g.out[n] {
				inDegree[m]--
				if inDegree[m] == 0 {
					next = append(next, m)
				}
			}
		}
		current = next
	}

	if placed != len(g.ids) {
		return nil, ErrCycleDetected
	}
	return layers, nil
}

func (g *Graph) intern(id string, rank int) int {
	i := len(g.ids)
	g.index[id] = i
	g.ids = append(g.ids, id)
	g.rank = append(g.rank, rank)
	g.out = append(g.out, nil)
	g.in = append(g.in, nil)
	return i
}

func (g *Graph) lookupOrIntern(id string) int {
	if i, ok := g.index[id]; ok {
		return i
	}
	return g.intern(id, 0)
}

// names sorts the slots by rank and returns their identifiers.
func (g *Graph) names(slots []int) []string {
	sort.Slice(slots, func(a, b int) bool {
		if g.rank[slots[a]] != g.rank[slots[b]] {
			return g.rank[slots[a]] < g.rank[slots[b]]
		}
		return g.ids[slots[a]] < g.ids[slots[b]]
	})
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = g.ids[s]
	}
	return out
}
