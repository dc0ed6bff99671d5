package graph

import "fmt"

// Kind identifies one of the closed set of node variants.
//
// The set is closed on purpose: the traversal and differentiation code
// dispatches on Kind with exhaustive switches, so user-defined kinds are
// not supported.
type Kind uint8

const (
	// KindInput is a source node whose value is assigned per training row.
	KindInput Kind = iota

	// KindConstant is a source node with a fixed value, typically 1.0
	// wired as a bias term.
	KindConstant

	// KindSum computes the weighted sum of its inputs (identity transfer).
	KindSum

	// KindSigmoid computes the logistic function of the weighted sum of
	// its inputs.
	KindSigmoid
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindConstant:
		return "constant"
	case KindSum:
		return "sum"
	case KindSigmoid:
		return "sigmoid"
	default:
		return "unknown"
	}
}

// NodeID is an index into a graph's node arena. IDs are only meaningful
// for the graph that issued them.
type NodeID int

// Edge is one weighted input connection: the producer's activation feeds
// the consumer's weighted sum scaled by Weight.
type Edge struct {
	From   NodeID
	Weight float64
}

// Node is a scalar computational unit owned by a Graph.
//
// A node stores its weighted input edges, back-links to its consumers,
// the activation cached by the last forward pass, and the loss gradient
// cached by the last backward pass. All cross-references are NodeIDs
// into the owning graph's arena, so nodes never dangle and cycles in
// the wiring cannot corrupt ownership.
type Node struct {
	id   NodeID
	name string
	kind Kind

	// value is the source value for Input and Constant nodes.
	value float64

	inputs     []Edge
	inputIndex map[NodeID]int // producer id -> index into inputs
	outputs    []NodeID       // consumer back-links, duplicates allowed

	activation float64 // last forward value, valid after Activation

	gradIter uint64  // backward-pass token that produced grad
	grad     float64 // d(loss)/d(activation) for gradIter
}

// ID returns the node's arena index.
func (n *Node) ID() NodeID { return n.id }

// Name returns the node's unique name.
func (n *Node) Name() string { return n.name }

// Kind returns the node variant.
func (n *Node) Kind() Kind { return n.kind }

// Value returns the stored source value of an Input or Constant node.
// For Sum and Sigmoid nodes it is always zero.
func (n *Node) Value() float64 { return n.value }

// Inputs returns the node's wired input edges. The returned slice is the
// node's own storage and must not be mutated by callers.
func (n *Node) Inputs() []Edge { return n.inputs }

// Consumers returns the back-links to nodes consuming this node's
// activation. Re-wiring the same edge appends a duplicate back-link;
// the backward pass deduplicates during accumulation.
func (n *Node) Consumers() []NodeID { return n.outputs }

// LastActivation returns the activation cached by the most recent forward
// evaluation. It is stale (zero) before the first Activation call.
func (n *Node) LastActivation() float64 { return n.activation }

// Grad returns d(loss)/d(activation) cached by the most recent backward
// pass. Pair it with GradIteration to detect staleness.
func (n *Node) Grad() float64 { return n.grad }

// GradIteration returns the backward-pass token that produced Grad.
func (n *Node) GradIteration() uint64 { return n.gradIter }

// SetGrad stores the loss gradient for the given backward-pass token.
// It is called by the derivative engine; most users never need it.
func (n *Node) SetGrad(iteration uint64, grad float64) {
	n.gradIter = iteration
	n.grad = grad
}

// DerivativeAgainst returns the local partial derivative of this node's
// activation with respect to the activation of one immediate input.
//
// For a Sum node the term is linear, so the derivative is the edge
// weight. For a Sigmoid node it is a*(1-a)*weight where a is the cached
// activation, so it is only meaningful after a forward pass.
//
// Returns ErrNoInputs for Input and Constant nodes, and ErrNotAnInput if
// producer is not currently wired as an input of this node.
func (n *Node) DerivativeAgainst(producer NodeID) (float64, error) {
	switch n.kind {
	case KindInput, KindConstant:
		return 0, fmt.Errorf("derivative of %s node %q: %w", n.kind, n.name, ErrNoInputs)
	}

	idx, ok := n.inputIndex[producer]
	if !ok {
		return 0, fmt.Errorf("derivative of node %q against node %d: %w", n.name, producer, ErrNotAnInput)
	}
	w := n.inputs[idx].Weight

	switch n.kind {
	case KindSum:
		return w, nil
	case KindSigmoid:
		a := n.activation
		return a * (1 - a) * w, nil
	default:
		return 0, fmt.Errorf("derivative of %s node %q: %w", n.kind, n.name, ErrNoInputs)
	}
}

// addInput registers or overwrites an input edge from producer.
// Re-wiring an existing producer updates its weight in place rather than
// creating a duplicate edge.
func (n *Node) addInput(producer NodeID, weight float64) error {
	switch n.kind {
	case KindInput, KindConstant:
		return fmt.Errorf("wiring into %s node %q: %w", n.kind, n.name, ErrUnsupportedOperation)
	}
	if idx, ok := n.inputIndex[producer]; ok {
		n.inputs[idx].Weight = weight
		return nil
	}
	n.inputIndex[producer] = len(n.inputs)
	n.inputs = append(n.inputs, Edge{From: producer, Weight: weight})
	return nil
}

// addOutput appends a consumer back-link. Never fails and never
// deduplicates.
func (n *Node) addOutput(consumer NodeID) {
	n.outputs = append(n.outputs, consumer)
}

// setWeight updates the weight of an existing input edge.
func (n *Node) setWeight(producer NodeID, weight float64) error {
	idx, ok := n.inputIndex[producer]
	if !ok {
		return fmt.Errorf("weight of node %q against node %d: %w", n.name, producer, ErrNotAnInput)
	}
	n.inputs[idx].Weight = weight
	return nil
}
