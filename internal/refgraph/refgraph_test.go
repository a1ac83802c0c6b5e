package refgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildGraph(edges [][2]string) *Graph {
	g := New()
	for _, e := range edges {
		g.AddEdge(e[0], e[1])
	}
	return g
}

func TestAddAndEdges(t *testing.T) {
	g := New()
	assert.Equal(t, 0, g.Len())

	g.Add("A")
	g.Add("A") // idempotent
	g.AddEdge("A", "B")
	g.AddEdge("A", "B") // duplicate collapses
	g.AddEdge("A", "C")

	assert.Equal(t, 3, g.Len())
	assert.True(t, g.Contains("A"))
	assert.False(t, g.Contains("Z"))
	assert.Equal(t, []string{"A", "B", "C"}, g.Nodes())
	assert.Equal(t, []string{"B", "C"}, g.Edges("A"))
	assert.Nil(t, g.Edges("B"))
	assert.Nil(t, g.Edges("Z"))
}

func TestClosure(t *testing.T) {
	g := buildGraph([][2]string{
		{"Order", "Customer"},
		{"Order", "LineItem"},
		{"LineItem", "Product"},
		{"Customer", "Address"},
		{"Unrelated", "Orphan"},
	})

	tests := []struct {
		name  string
		roots []string
		want  []string
	}{
		{"full chain", []string{"Order"}, []string{"Address", "Customer", "LineItem", "Order", "Product"}},
		{"mid chain", []string{"LineItem"}, []string{"LineItem", "Product"}},
		{"leaf only", []string{"Product"}, []string{"Product"}},
		{"multiple roots", []string{"Customer", "Unrelated"}, []string{"Address", "Customer", "Orphan", "Unrelated"}},
		{"unknown root ignored", []string{"Nope"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.Closure(tt.roots))
		})
	}
}

func TestClosureTerminatesOnCycle(t *testing.T) {
	g := buildGraph([][2]string{
		{"A", "B"},
		{"B", "A"},
		{"B", "C"},
	})
	assert.Equal(t, []string{"A", "B", "C"}, g.Closure([]string{"A"}))
}

func TestCycles(t *testing.T) {
	t.Run("acyclic", func(t *testing.T) {
		g := buildGraph([][2]string{{"A", "B"}, {"B", "C"}})
		assert.Nil(t, g.Cycles())
	})

	t.Run("two-node cycle", func(t *testing.T) {
		g := buildGraph([][2]string{
			{"A", "B"},
			{"B", "A"},
			{"B", "C"},
		})
		require.Len(t, g.Cycles(), 1)
		assert.Equal(t, []string{"A", "B"}, g.Cycles()[0])
	})

	t.Run("self reference", func(t *testing.T) {
		g := buildGraph([][2]string{{"Node", "Node"}, {"Node", "Other"}})
		assert.Equal(t, [][]string{{"Node"}}, g.Cycles())
	})

	t.Run("distinct cycles ordered by first member", func(t *testing.T) {
		g := buildGraph([][2]string{
			{"X", "Y"}, {"Y", "X"},
			{"A", "B"}, {"B", "A"},
		})
		assert.Equal(t, [][]string{{"A", "B"}, {"X", "Y"}}, g.Cycles())
	})
}

func TestTopoOrder(t *testing.T) {
	g := buildGraph([][2]string{
		{"Order", "Customer"},
		{"Order", "LineItem"},
		{"LineItem", "Product"},
	})

	order, ok := g.TopoOrder([]string{"Order", "Customer", "LineItem", "Product"})
	require.True(t, ok)
	require.Len(t, order, 4)

	pos := make(map[string]int, len(order))
	for i, name := range order {
		pos[name] = i
	}
	// Dependencies come before dependents.
	assert.Less(t, pos["Customer"], pos["Order"])
	assert.Less(t, pos["LineItem"], pos["Order"])
	assert.Less(t, pos["Product"], pos["LineItem"])
	// Ties break lexically.
	assert.Equal(t, []string{"Customer", "Product", "LineItem", "Order"}, order)
}

func TestTopoOrderSubsetRestriction(t *testing.T) {
	g := buildGraph([][2]string{
		{"A", "B"},
		{"B", "C"},
	})
	// C is outside the subset, so B has no pending dependencies.
	order, ok := g.TopoOrder([]string{"A", "B"})
	require.True(t, ok)
	assert.Equal(t, []string{"B", "A"}, order)
}

func TestTopoOrderCycleReported(t *testing.T) {
	g := buildGraph([][2]string{
		{"A", "B"},
		{"B", "A"},
		{"C", "A"},
	})
	order, ok := g.TopoOrder([]string{"A", "B", "C"})
	assert.False(t, ok)
	assert.Empty(t, order)
}

func TestTopoOrderSelfLoopDoesNotDeadlock(t *testing.T) {
	g := buildGraph([][2]string{{"Node", "Node"}})
	order, ok := g.TopoOrder([]string{"Node"})
	assert.True(t, ok)
	assert.Equal(t, []string{"Node"}, order)
}
