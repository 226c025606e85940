package nodeflow

// SideAnchor returns the node-local point at the center of the given side of
// a node with extent sz.
func SideAnchor(side Side, sz Size) Vec2 {
	switch side {
	case SideTop:
		return Vec2{sz.Width / 2, 0}
	case SideBottom:
		return Vec2{sz.Width / 2, sz.Height}
	case SideLeft:
		return Vec2{0, sz.Height / 2}
	case SideRight:
		return Vec2{sz.Width, sz.Height / 2}
	default:
		return Vec2{}
	}
}

// SourceDefault is the anchor used for an edge's source end when no handle
// matches: bottom center, for top-to-bottom flow.
func SourceDefault(sz Size) Vec2 {
	return SideAnchor(SideBottom, sz)
}

// TargetDefault is the anchor used for an edge's target end when no handle
// matches: top center.
func TargetDefault(sz Size) Vec2 {
	return SideAnchor(SideTop, sz)
}

// HandleAnchor resolves a handle id on n to a node-local anchor. An empty or
// unknown id returns fallback unchanged.
func HandleAnchor(n *Node, handleID string, fallback Vec2) Vec2 {
	if handleID == "" {
		return fallback
	}
	h, ok := n.Handle(handleID)
	if !ok {
		return fallback
	}
	return SideAnchor(h.Side, n.Extent())
}

// GraphAnchor is HandleAnchor translated into graph space.
func GraphAnchor(n *Node, handleID string, fallback Vec2) Vec2 {
	return n.Position.Add(HandleAnchor(n, handleID, fallback))
}

// EdgeAnchors resolves both ends of e to graph-space points. ok is false when
// either endpoint node is missing from g; such edges are not drawn.
func EdgeAnchors(g *Graph, e *Edge) (source, target Vec2, ok bool) {
	src := g.Node(e.SourceID)
	if src == nil {
		return Vec2{}, Vec2{}, false
	}
	tgt := g.Node(e.TargetID)
	if tgt == nil {
		return Vec2{}, Vec2{}, false
	}
	source = GraphAnchor(src, e.SourceHandle, SourceDefault(src.Extent()))
	target = GraphAnchor(tgt, e.TargetHandle, TargetDefault(tgt.Extent()))
	return source, target, true
}
