// Package refgraph models schema reference dependencies as a directed graph
// over interned node indices. One graph instance serves reachability closure,
// cycle detection, and topological ordering, so the three views can never
// disagree about the edge set.
package refgraph

import "sort"

// Graph is a directed graph of named nodes. Names are interned to integer
// indices; adjacency is stored per index. The zero value is not usable,
// construct with New.
type Graph struct {
	index map[string]int
	names []string
	adj   [][]int
	edges map[[2]int]struct{}
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		index: make(map[string]int),
		edges: make(map[[2]int]struct{}),
	}
}

// Add interns name as a node and returns its index. Adding an existing
// name is a no-op returning its index.
func (g *Graph) Add(name string) int {
	if i, ok := g.index[name]; ok {
		return i
	}
	i := len(g.names)
	g.index[name] = i
	g.names = append(g.names, name)
	g.adj = append(g.adj, nil)
	return i
}

// AddEdge records that from references to, interning both. Duplicate edges
// collapse to one.
func (g *Graph) AddEdge(from, to string) {
	fi, ti := g.Add(from), g.Add(to)
	key := [2]int{fi, ti}
	if _, dup := g.edges[key]; dup {
		return
	}
	g.edges[key] = struct{}{}
	g.adj[fi] = append(g.adj[fi], ti)
}

// Contains reports whether name is a node of the graph.
func (g *Graph) Contains(name string) bool {
	_, ok := g.index[name]
	return ok
}

// Len returns the node count.
func (g *Graph) Len() int { return len(g.names) }

// Nodes returns all node names in sorted order.
func (g *Graph) Nodes() []string {
	out := make([]string, len(g.names))
	copy(out, g.names)
	sort.Strings(out)
	return out
}

// Edges returns the referenced names of node name, sorted. Nil when the
// node is absent or has no outgoing edges.
func (g *Graph) Edges(name string) []string {
	i, ok := g.index[name]
	if !ok || len(g.adj[i]) == 0 {
		return nil
	}
	out := make([]string, len(g.adj[i]))
	for k, ti := range g.adj[i] {
		out[k] = g.names[ti]
	}
	sort.Strings(out)
	return out
}

// Closure returns every node reachable from the given roots, roots included,
// in sorted order. Roots not present in the graph are ignored.
func (g *Graph) Closure(roots []string) []string {
	seen := make(map[int]struct{})
	var stack []int
	for _, r := range roots {
		if i, ok := g.index[r]; ok {
			if _, dup := seen[i]; !dup {
				seen[i] = struct{}{}
				stack = append(stack, i)
			}
		}
	}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, ti := range g.adj[i] {
			if _, dup := seen[ti]; !dup {
				seen[ti] = struct{}{}
				stack = append(stack, ti)
			}
		}
	}
	out := make([]string, 0, len(seen))
	for i := range seen {
		out = append(out, g.names[i])
	}
	sort.Strings(out)
	return out
}

// Cycles returns the cyclic node groups of the graph: every strongly
// connected component of two or more nodes, plus self-referencing single
// nodes. Each group is sorted internally; groups are ordered by their first
// member. Returns nil for an acyclic graph.
func (g *Graph) Cycles() [][]string {
	components := g.stronglyConnected()
	var out [][]string
	for _, comp := range components {
		if len(comp) == 1 {
			i := comp[0]
			if _, self := g.edges[[2]int{i, i}]; !self {
				continue
			}
		}
		group := make([]string, len(comp))
		for k, i := range comp {
			group[k] = g.names[i]
		}
		sort.Strings(group)
		out = append(out, group)
	}
	sort.Slice(out, func(a, b int) bool { return out[a][0] < out[b][0] })
	return out
}

// stronglyConnected runs Tarjan's algorithm with an explicit stack; schema
// chains can nest deeper than Go's default goroutine stack would allow
// recursively.
func (g *Graph) stronglyConnected() [][]int {
	n := len(g.names)
	const unvisited = -1
	indexOf := make([]int, n)
	lowlink := make([]int, n)
	onStack := make([]bool, n)
	for i := range indexOf {
		indexOf[i] = unvisited
	}

	var (
		counter    int
		sccStack   []int
		components [][]int
	)

	type frame struct {
		node int
		next int
	}

	for start := range n {
		if indexOf[start] != unvisited {
			continue
		}
		callStack := []frame{{node: start}}
		indexOf[start] = counter
		lowlink[start] = counter
		counter++
		sccStack = append(sccStack, start)
		onStack[start] = true

		for len(callStack) > 0 {
			f := &callStack[len(callStack)-1]
			v := f.node
			if f.next < len(g.adj[v]) {
				w := g.adj[v][f.next]
				f.next++
				if indexOf[w] == unvisited {
					indexOf[w] = counter
					lowlink[w] = counter
					counter++
					sccStack = append(sccStack, w)
					onStack[w] = true
					callStack = append(callStack, frame{node: w})
				} else if onStack[w] {
					lowlink[v] = min(lowlink[v], indexOf[w])
				}
				continue
			}

			callStack = callStack[:len(callStack)-1]
			if len(callStack) > 0 {
				parent := callStack[len(callStack)-1].node
				lowlink[parent] = min(lowlink[parent], lowlink[v])
			}
			if lowlink[v] == indexOf[v] {
				var comp []int
				for {
					w := sccStack[len(sccStack)-1]
					sccStack = sccStack[:len(sccStack)-1]
					onStack[w] = false
					comp = append(comp, w)
					if w == v {
						break
					}
				}
				components = append(components, comp)
			}
		}
	}
	return components
}

// TopoOrder orders the subset so that every node appears after the nodes it
// references within the subset. Ties break lexically, so the order is
// deterministic. The second return is false when the subset contains a cycle;
// the partial order emitted before the cycle is still returned.
func (g *Graph) TopoOrder(subset []string) ([]string, bool) {
	in := make(map[int]struct{}, len(subset))
	for _, name := range subset {
		if i, ok := g.index[name]; ok {
			in[i] = struct{}{}
		}
	}

	// pending counts each node's unemitted dependencies within the subset.
	pending := make(map[int]int, len(in))
	dependents := make(map[int][]int, len(in))
	for i := range in {
		count := 0
		for _, ti := range g.adj[i] {
			if ti == i {
				continue
			}
			if _, ok := in[ti]; ok {
				count++
				dependents[ti] = append(dependents[ti], i)
			}
		}
		pending[i] = count
	}

	var ready []int
	for i, c := range pending {
		if c == 0 {
			ready = append(ready, i)
		}
	}

	out := make([]string, 0, len(in))
	for len(ready) > 0 {
		sort.Slice(ready, func(a, b int) bool { return g.names[ready[a]] < g.names[ready[b]] })
		i := ready[0]
		ready = ready[1:]
		out = append(out, g.names[i])
		for _, d := range dependents[i] {
			pending[d]--
			if pending[d] == 0 {
				ready = append(ready, d)
			}
		}
	}
	return out, len(out) == len(in)
}
