package nodeflow

import "github.com/google/uuid"

// DefaultNodeType is the type tag given to nodes that do not set one. The
// renderer registry always holds an entry for it.
const DefaultNodeType = "default"

// DefaultNodeSize is the layout extent used by nodes whose Size is zero.
var DefaultNodeSize = Size{Width: 150, Height: 80}

// Handle is a named connection anchor on one side of a node. IDs are unique
// within the owning node only.
type Handle struct {
	ID   string
	Type HandleType
	Side Side
	// Offset along the side as a fraction in [0, 1]. Reserved; anchor
	// resolution always uses the side center.
	Offset *float64
}

// NewHandle creates a handle with no offset.
func NewHandle(id string, typ HandleType, side Side) Handle {
	return Handle{ID: id, Type: typ, Side: side}
}

// Node is a graph vertex. Position is the top-left corner in graph space.
type Node struct {
	// ID is assigned by NewNode and must not change while the node is in a graph.
	ID       uuid.UUID
	Position Vec2
	// Data is an opaque user payload passed through to node renderers.
	Data    any
	Handles []Handle
	// Type selects the registered NodeRenderer. Empty means DefaultNodeType.
	Type string
	// Size is the node's extent used for hit testing, fit-view and handle
	// anchors. Zero means DefaultNodeSize.
	Size Size
}

// NewNode creates a node of the default type at the given graph position.
func NewNode(data any, position Vec2) *Node {
	return &Node{
		ID:       uuid.New(),
		Position: position,
		Data:     data,
		Type:     DefaultNodeType,
	}
}

// WithHandles replaces the node's handles and returns the node.
func (n *Node) WithHandles(handles ...Handle) *Node {
	n.Handles = handles
	return n
}

// WithType sets the node's type tag and returns the node.
func (n *Node) WithType(typ string) *Node {
	n.Type = typ
	return n
}

// WithSize sets the node's extent and returns the node.
func (n *Node) WithSize(width, height float64) *Node {
	n.Size = Size{Width: width, Height: height}
	return n
}

// Extent returns the node's size, falling back to DefaultNodeSize.
func (n *Node) Extent() Size {
	if n.Size.IsZero() {
		return DefaultNodeSize
	}
	return n.Size
}

// Bounds returns the node's rectangle in graph space.
func (n *Node) Bounds() Rect {
	sz := n.Extent()
	return Rect{X: n.Position.X, Y: n.Position.Y, Width: sz.Width, Height: sz.Height}
}

// Handle returns the handle with the given id.
func (n *Node) Handle(id string) (Handle, bool) {
	for _, h := range n.Handles {
		if h.ID == id {
			return h, true
		}
	}
	return Handle{}, false
}

// typeTag returns the node's type, treating empty as DefaultNodeType.
func (n *Node) typeTag() string {
	if n.Type == "" {
		return DefaultNodeType
	}
	return n.Type
}

// Edge is a directed connection between two nodes. Endpoints are not checked
// when the edge is added; edges whose nodes are missing are skipped at draw
// time. An empty handle id means "use the side default anchor".
type Edge struct {
	ID           uuid.UUID
	SourceID     uuid.UUID
	SourceHandle string
	TargetID     uuid.UUID
	TargetHandle string
}

// NewEdge creates an edge between two node ids with no handles.
func NewEdge(sourceID, targetID uuid.UUID) *Edge {
	return &Edge{
		ID:       uuid.New(),
		SourceID: sourceID,
		TargetID: targetID,
	}
}

// WithHandles sets both endpoint handle ids and returns the edge.
func (e *Edge) WithHandles(sourceHandle, targetHandle string) *Edge {
	e.SourceHandle = sourceHandle
	e.TargetHandle = targetHandle
	return e
}

// Graph holds nodes and edges in insertion order. Lookup is a linear scan;
// the structure is sized for an on-screen editor, not a store.
type Graph struct {
	nodes []*Node
	edges []*Edge
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{}
}

// AddNode appends a node. Later nodes draw on top and win hit tests.
func (g *Graph) AddNode(n *Node) {
	g.nodes = append(g.nodes, n)
}

// AddEdge appends an edge.
func (g *Graph) AddEdge(e *Edge) {
	g.edges = append(g.edges, e)
}

// Node returns the node with the given id, or nil.
func (g *Graph) Node(id uuid.UUID) *Node {
	for _, n := range g.nodes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// Nodes returns the nodes in insertion order. The returned slice MUST NOT be
// mutated; use the *Node values to change positions.
func (g *Graph) Nodes() []*Node {
	return g.nodes
}

// Edges returns the edges in insertion order. The returned slice MUST NOT be
// mutated.
func (g *Graph) Edges() []*Edge {
	return g.edges
}
