package domain

import (
	"cmp"
	"iter"
	"slices"

	"go.trai.ch/zerr"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Edge is a directed "From depends on To" relation between two arena ids.
type Edge struct {
	From int
	To   int
}

// Graph is an arena of modules indexed by integer id plus the depends-on edges
// between them. It is mutable until Seal is called; a sealed graph is read-only
// and safe to share.
type Graph struct {
	modules []Module
	index   map[string]int
	edges   *simple.DirectedGraph
	reverse [][]int
	tests   []int
	sealed  bool
}

// NewGraph creates a new empty Graph.
func NewGraph() *Graph {
	return &Graph{
		index: make(map[string]int),
		edges: simple.NewDirectedGraph(),
	}
}

// AddModule appends m to the arena and returns its id.
// It returns an error if a module with the same path already exists.
func (g *Graph) AddModule(m Module) (int, error) {
	if g.sealed {
		return 0, ErrGraphSealed
	}
	if _, exists := g.index[m.Path]; exists {
		return 0, zerr.With(ErrModuleExists, "path", m.Path)
	}
	m.ID = len(g.modules)
	g.modules = append(g.modules, m)
	g.index[m.Path] = m.ID
	g.edges.AddNode(node(m.ID))
	return m.ID, nil
}

// AddEdge records that from depends on to. Duplicate edges collapse and
// self edges are ignored.
func (g *Graph) AddEdge(from, to int) error {
	if g.sealed {
		return ErrGraphSealed
	}
	if !g.valid(from) || !g.valid(to) {
		return zerr.With(zerr.With(ErrDanglingEdge, "from", from), "to", to)
	}
	if from == to {
		return nil
	}
	g.edges.SetEdge(g.edges.NewEdge(node(from), node(to)))
	return nil
}

// SetCategory labels the module with the given id.
func (g *Graph) SetCategory(id int, c Category) error {
	if g.sealed {
		return ErrGraphSealed
	}
	if !g.valid(id) {
		return zerr.With(ErrDanglingEdge, "id", id)
	}
	g.modules[id].Category = c
	return nil
}

// Seal freezes the graph and builds the reverse adjacency index and the
// sorted list of test nodes. Sealing twice is a no-op.
func (g *Graph) Seal() {
	if g.sealed {
		return
	}
	g.reverse = make([][]int, len(g.modules))
	for id := range g.modules {
		g.reverse[id] = g.collect(g.edges.To(int64(id)))
	}
	g.tests = g.tests[:0]
	for _, m := range g.modules {
		if m.IsTest() {
			g.tests = append(g.tests, m.ID)
		}
	}
	slices.SortFunc(g.tests, func(a, b int) int {
		return cmp.Compare(g.modules[a].Path, g.modules[b].Path)
	})
	g.sealed = true
}

// Sealed reports whether Seal has been called.
func (g *Graph) Sealed() bool {
	return g.sealed
}

// Len returns the number of modules.
func (g *Graph) Len() int {
	return len(g.modules)
}

// EdgeCount returns the number of distinct edges.
func (g *Graph) EdgeCount() int {
	return g.edges.Edges().Len()
}

// Module returns the module with the given id.
func (g *Graph) Module(id int) Module {
	return g.modules[id]
}

// Lookup returns the id of the module at path.
func (g *Graph) Lookup(path string) (int, bool) {
	id, ok := g.index[path]
	return id, ok
}

// Modules yields all modules in id order.
func (g *Graph) Modules() iter.Seq[Module] {
	return func(yield func(Module) bool) {
		for _, m := range g.modules {
			if !yield(m) {
				return
			}
		}
	}
}

// Dependencies returns the ids the module depends on, ascending.
func (g *Graph) Dependencies(id int) []int {
	return g.collect(g.edges.From(int64(id)))
}

// Dependents returns the ids of modules that depend on id, ascending.
// On a sealed graph this reads the prebuilt reverse index.
func (g *Graph) Dependents(id int) []int {
	if g.sealed {
		return g.reverse[id]
	}
	return g.collect(g.edges.To(int64(id)))
}

// Tests returns the ids of all test modules ordered by path.
// It is only populated once the graph is sealed.
func (g *Graph) Tests() []int {
	return g.tests
}

// Edges returns every edge ordered by (From, To).
func (g *Graph) Edges() []Edge {
	it := g.edges.Edges()
	out := make([]Edge, 0, it.Len())
	for it.Next() {
		e := it.Edge()
		out = append(out, Edge{From: int(e.From().ID()), To: int(e.To().ID())})
	}
	slices.SortFunc(out, func(a, b Edge) int {
		if c := cmp.Compare(a.From, b.From); c != 0 {
			return c
		}
		return cmp.Compare(a.To, b.To)
	})
	return out
}

// Cycles returns the strongly connected components with more than one
// module, each as sorted paths.
func (g *Graph) Cycles() [][]string {
	var cycles [][]string
	for _, scc := range topo.TarjanSCC(g.edges) {
		if len(scc) < 2 {
			continue
		}
		paths := make([]string, 0, len(scc))
		for _, n := range scc {
			paths = append(paths, g.modules[n.ID()].Path)
		}
		slices.Sort(paths)
		cycles = append(cycles, paths)
	}
	slices.SortFunc(cycles, func(a, b []string) int {
		return cmp.Compare(a[0], b[0])
	})
	return cycles
}

// DOT renders the graph in Graphviz format. When keep is non-nil only the
// modules it accepts (and the edges between them) are rendered.
func (g *Graph) DOT(name string, keep func(id int) bool) ([]byte, error) {
	labels := make(map[string]int, len(g.modules))
	for _, m := range g.modules {
		labels[m.Rel()]++
	}

	out := simple.NewDirectedGraph()
	for _, m := range g.modules {
		if keep != nil && !keep(m.ID) {
			continue
		}
		label := m.Rel()
		if labels[label] > 1 {
			label = m.Path
		}
		out.AddNode(dotNode{id: int64(m.ID), label: label, test: m.IsTest()})
	}
	for _, e := range g.Edges() {
		from, to := out.Node(int64(e.From)), out.Node(int64(e.To))
		if from == nil || to == nil {
			continue
		}
		out.SetEdge(out.NewEdge(from, to))
	}

	b, err := dot.Marshal(out, name, "", "  ")
	if err != nil {
		return nil, zerr.Wrap(err, "failed to render graph")
	}
	return b, nil
}

func (g *Graph) valid(id int) bool {
	return id >= 0 && id < len(g.modules)
}

func (g *Graph) collect(it graph.Nodes) []int {
	ids := make([]int, 0, it.Len())
	for it.Next() {
		ids = append(ids, int(it.Node().ID()))
	}
	slices.Sort(ids)
	return ids
}

type node int64

func (n node) ID() int64 { return int64(n) }

type dotNode struct {
	id    int64
	label string
	test  bool
}

func (n dotNode) ID() int64 { return n.id }

func (n dotNode) DOTID() string { return n.label }

func (n dotNode) Attributes() []encoding.Attribute {
	if n.test {
		return []encoding.Attribute{{Key: "shape", Value: "box"}}
	}
	return nil
}
