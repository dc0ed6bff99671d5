// Package graph implements the scalar computational graph: an arena of
// nodes (Input, Constant, Sum, Sigmoid) wired by weighted edges, plus the
// pull-based forward evaluator.
//
// Design:
//   - Arena ownership: the Graph owns an append-only table of nodes and
//     hands out integer NodeIDs. All cross-references (inputs, consumer
//     back-links) are indices into that table, so shared fan-out never
//     creates aliased ownership and a wiring mistake cannot dangle.
//   - Closed node kinds: traversal and differentiation dispatch on Kind
//     with exhaustive switches.
//   - Single-threaded: a Graph is not safe for concurrent use. The arena
//     replaces the per-node locking a shared-pointer design would need.
//
// Usage:
//
//	g := graph.New(graph.Config{})
//	a, _ := g.AddInput("a", 0.6)
//	b, _ := g.AddInput("b", 1.0)
//	s, _ := g.AddSum("s")
//	g.ConnectWeighted(a, s, 1.0)
//	g.ConnectWeighted(b, s, 0.2)
//	out, _ := g.Activation(s)
package graph

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"
)

// Config configures a new Graph. The zero value is usable: weights are
// drawn from a time-seeded generator and logging goes to slog.Default().
type Config struct {
	// Rand supplies weights for Connect calls without an explicit weight,
	// drawn uniformly from [-1, 1). Inject a fixed-seed source for
	// reproducible runs.
	Rand *rand.Rand

	// Logger receives diagnostics such as unseeded-terminal warnings
	// during the backward pass.
	Logger *slog.Logger
}

// Graph owns the node arena and the name index.
//
// Every API that needs node lookup takes the Graph explicitly; there is
// no process-wide registry.
type Graph struct {
	nodes  []*Node
	names  map[string]NodeID
	rng    *rand.Rand
	logger *slog.Logger
}

// New creates an empty graph.
func New(cfg Config) *Graph {
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Graph{
		names:  make(map[string]NodeID),
		rng:    cfg.Rand,
		logger: cfg.Logger,
	}
}

// Logger returns the graph's diagnostic logger.
func (g *Graph) Logger() *slog.Logger { return g.logger }

// Len returns the number of nodes in the arena.
func (g *Graph) Len() int { return len(g.nodes) }

// NodeIDs returns the ids of every node in the arena, in creation order.
func (g *Graph) NodeIDs() []NodeID {
	ids := make([]NodeID, len(g.nodes))
	for i := range g.nodes {
		ids[i] = NodeID(i)
	}
	return ids
}

// InputIDs returns the ids of every Input node, in creation order.
func (g *Graph) InputIDs() []NodeID {
	var ids []NodeID
	for i, n := range g.nodes {
		if n.kind == KindInput {
			ids = append(ids, NodeID(i))
		}
	}
	return ids
}

// Node returns the node with the given id, or nil if the id is not in
// this graph's arena.
func (g *Graph) Node(id NodeID) *Node {
	if id < 0 || int(id) >= len(g.nodes) {
		return nil
	}
	return g.nodes[id]
}

// Lookup resolves a node name to its id.
func (g *Graph) Lookup(name string) (NodeID, error) {
	id, ok := g.names[name]
	if !ok {
		return 0, fmt.Errorf("lookup %q: %w", name, ErrNodeNotFound)
	}
	return id, nil
}

// AddInput creates an Input node holding an initial value. The value is
// reassigned per training row via SetValue.
func (g *Graph) AddInput(name string, value float64) (NodeID, error) {
	return g.add(name, KindInput, value)
}

// AddConstant creates a Constant node. Wire a constant of 1.0 into any
// node that needs a bias term.
func (g *Graph) AddConstant(name string, value float64) (NodeID, error) {
	return g.add(name, KindConstant, value)
}

// AddSum creates a Sum node: identity transfer over the weighted sum of
// its inputs.
func (g *Graph) AddSum(name string) (NodeID, error) {
	return g.add(name, KindSum, 0)
}

// AddSigmoid creates a Sigmoid node: logistic transfer over the weighted
// sum of its inputs.
func (g *Graph) AddSigmoid(name string) (NodeID, error) {
	return g.add(name, KindSigmoid, 0)
}

func (g *Graph) add(name string, kind Kind, value float64) (NodeID, error) {
	if _, ok := g.names[name]; ok {
		return 0, fmt.Errorf("add %s node %q: %w", kind, name, ErrDuplicateName)
	}
	id := NodeID(len(g.nodes))
	g.nodes = append(g.nodes, &Node{
		id:         id,
		name:       name,
		kind:       kind,
		value:      value,
		inputIndex: make(map[NodeID]int),
		// MaxUint64 can never collide with a real backward-pass token,
		// so a fresh node never reports a stale memo hit.
		gradIter: math.MaxUint64,
	})
	g.names[name] = id
	return id, nil
}

// SetValue assigns the source value of an Input node. Constant nodes are
// immutable after creation; Sum and Sigmoid nodes have no source value.
func (g *Graph) SetValue(id NodeID, value float64) error {
	n := g.Node(id)
	if n == nil {
		return fmt.Errorf("set value of node %d: %w", id, ErrNodeNotFound)
	}
	if n.kind != KindInput {
		return fmt.Errorf("set value of %s node %q: %w", n.kind, n.name, ErrUnsupportedOperation)
	}
	n.value = value
	return nil
}

// Connect wires producer into consumer with a weight drawn uniformly
// from [-1, 1) and returns the weight.
//
// Wiring registers the edge in both directions: the consumer records the
// weighted input, the producer records a back-link used to seed backward
// traversal. Neither node can do this exchange from its own methods, so
// the graph mediates it.
func (g *Graph) Connect(producer, consumer NodeID) (float64, error) {
	w := g.rng.Float64()*2 - 1
	if err := g.ConnectWeighted(producer, consumer, w); err != nil {
		return 0, err
	}
	return w, nil
}

// ConnectWeighted wires producer into consumer with an explicit weight.
// Re-wiring an existing edge overwrites the weight instead of appending
// a duplicate. On failure the graph is left unmodified.
func (g *Graph) ConnectWeighted(producer, consumer NodeID, weight float64) error {
	p := g.Node(producer)
	if p == nil {
		return fmt.Errorf("connect producer %d: %w", producer, ErrNodeNotFound)
	}
	c := g.Node(consumer)
	if c == nil {
		return fmt.Errorf("connect consumer %d: %w", consumer, ErrNodeNotFound)
	}
	_, rewire := c.inputIndex[producer]
	if err := c.addInput(producer, weight); err != nil {
		return err
	}
	// A re-wire only updates the weight; the back-link already exists.
	if !rewire {
		p.addOutput(consumer)
	}
	return nil
}

// SetWeight updates the weight of the existing edge producer -> consumer.
func (g *Graph) SetWeight(consumer, producer NodeID, weight float64) error {
	c := g.Node(consumer)
	if c == nil {
		return fmt.Errorf("set weight on node %d: %w", consumer, ErrNodeNotFound)
	}
	return c.setWeight(producer, weight)
}

// Weight returns the weight of the existing edge producer -> consumer.
func (g *Graph) Weight(consumer, producer NodeID) (float64, error) {
	c := g.Node(consumer)
	if c == nil {
		return 0, fmt.Errorf("weight on node %d: %w", consumer, ErrNodeNotFound)
	}
	idx, ok := c.inputIndex[producer]
	if !ok {
		return 0, fmt.Errorf("weight of node %q against node %d: %w", c.name, producer, ErrNotAnInput)
	}
	return c.inputs[idx].Weight, nil
}
