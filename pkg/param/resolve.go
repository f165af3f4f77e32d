package param

import (
	"container/heap"
	"errors"
	"math"
	"reflectometry/pkg/serrors"
	"strings"
)

// CycleError names the parameters forming a constraint cycle, starting and
// ending with the same parameter.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return "constraint cycle: " + strings.Join(e.Path, " -> ")
}

// ErrCycle matches any *CycleError with errors.Is.
var ErrCycle = errors.New("constraint cycle")

// Is makes errors.Is(err, ErrCycle) succeed for cycle errors.
func (e *CycleError) Is(target error) bool { return target == ErrCycle }

// graph is the constraint graph over a parameter set. Nodes are indexed in
// discovery order; edges run from a source to the parameter it constrains.
type graph struct {
	nodes    []*Parameter
	index    map[*Parameter]int
	outgoing [][]int
	indeg    []int
}

func buildGraph(params []*Parameter) *graph {
	g := &graph{index: make(map[*Parameter]int, len(params))}

	var add func(p *Parameter) int
	add = func(p *Parameter) int {
		if i, ok := g.index[p]; ok {
			return i
		}
		i := len(g.nodes)
		g.index[p] = i
		g.nodes = append(g.nodes, p)
		g.outgoing = append(g.outgoing, nil)
		g.indeg = append(g.indeg, 0)
		if p.constraint != nil {
			for _, s := range p.constraint.sources {
				si := add(s)
				g.outgoing[si] = append(g.outgoing[si], i)
				g.indeg[i]++
			}
		}

		return i
	}
	for _, p := range params {
		if p != nil {
			add(p)
		}
	}

	return g
}

// readyHeap orders ready nodes by parameter name, then discovery index, so the
// evaluation order does not depend on how the caller listed the parameters.
type readyHeap struct {
	g     *graph
	items []int
}

func (h *readyHeap) Len() int { return len(h.items) }
func (h *readyHeap) Less(i, j int) bool {
	a, b := h.g.nodes[h.items[i]], h.g.nodes[h.items[j]]
	if a.name != b.name {
		return a.name < b.name
	}

	return h.items[i] < h.items[j]
}
func (h *readyHeap) Swap(i, j int) { h.items[i], h.items[j] = h.items[j], h.items[i] }
func (h *readyHeap) Push(x any)    { h.items = append(h.items, x.(int)) }
func (h *readyHeap) Pop() any {
	n := len(h.items)
	x := h.items[n-1]
	h.items = h.items[:n-1]

	return x
}

// topoOrder returns node indices in dependency order using Kahn's algorithm.
// The result is shorter than the node count when a cycle exists.
func (g *graph) topoOrder() []int {
	indeg := make([]int, len(g.indeg))
	copy(indeg, g.indeg)

	ready := &readyHeap{g: g}
	for i := range indeg {
		if indeg[i] == 0 {
			ready.items = append(ready.items, i)
		}
	}
	heap.Init(ready)

	out := make([]int, 0, len(indeg))
	for ready.Len() > 0 {
		n := heap.Pop(ready).(int)
		out = append(out, n)
		for _, m := range g.outgoing[n] {
			indeg[m]--
			if indeg[m] == 0 {
				heap.Push(ready, m)
			}
		}
	}

	return out
}

// findCycle extracts one cycle witness with a depth first search.
func (g *graph) findCycle() []string {
	const (
		white = iota
		gray
		black
	)

	color := make([]int, len(g.nodes))
	parent := make([]int, len(g.nodes))
	for i := range parent {
		parent[i] = -1
	}

	var cycle []int
	var dfs func(u int) bool
	dfs = func(u int) bool {
		color[u] = gray
		for _, v := range g.outgoing[u] {
			switch color[v] {
			case white:
				parent[v] = u
				if dfs(v) {
					return true
				}
			case gray:
				// back edge u -> v closes the cycle v -> ... -> u -> v
				cycle = append(cycle, v)
				for cur := u; cur != -1 && cur != v; cur = parent[cur] {
					cycle = append(cycle, cur)
				}
				cycle = append(cycle, v)

				return true
			}
		}
		color[u] = black

		return false
	}

	for i := range g.nodes {
		if color[i] == white && dfs(i) {
			break
		}
	}

	out := make([]string, 0, len(cycle))
	for i := len(cycle) - 1; i >= 0; i-- {
		out = append(out, g.nodes[cycle[i]].name)
	}

	return out
}

// Order returns the constrained parameters reachable from params in the order
// they must be recomputed. It fails with a constraint cycle error when the
// constraint graph is not acyclic.
func Order(params []*Parameter) ([]*Parameter, error) {
	g := buildGraph(params)
	order := g.topoOrder()
	if len(order) != len(g.nodes) {
		cycle := &CycleError{Path: g.findCycle()}

		return nil, serrors.Wrap(serrors.ErrConstraintCycle, cycle, "could not order constraints")
	}

	out := make([]*Parameter, 0, len(order))
	for _, i := range order {
		if g.nodes[i].constraint != nil {
			out = append(out, g.nodes[i])
		}
	}

	return out, nil
}

// Resolve recomputes every constrained parameter reachable from params from
// the current values of its sources. Independent values must be set before
// calling it.
func Resolve(params []*Parameter) error {
	order, err := Order(params)
	if err != nil {
		return err
	}

	for _, p := range order {
		v, err := p.constraint.evaluate(p)
		if err != nil {
			return err
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return serrors.With(serrors.ErrValidation, "constraint on %q produced non-finite value %g", p.name, v)
		}
		p.assign(v)
	}

	return nil
}

// Unique returns params without duplicates or nils, keeping first occurrence order.
func Unique(params []*Parameter) []*Parameter {
	seen := make(map[*Parameter]struct{}, len(params))
	out := make([]*Parameter, 0, len(params))
	for _, p := range params {
		if p == nil {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}

	return out
}
