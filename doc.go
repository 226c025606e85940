// Package nodeflow is an interactive node-graph canvas for [Ebitengine].
//
// Nodeflow draws a graph of rectangular nodes joined by curved edges on an
// infinite, pannable and zoomable canvas. Nodes can be dragged, handles on
// their sides can be dragged out to start a connection, and a small control
// bar offers zoom in, zoom out, fit view and lock.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	view := nodeflow.NewGraphView(nodeflow.ViewConfig{})
//	a := nodeflow.NewNode("A", nodeflow.Vec2{X: 100, Y: 100})
//	b := nodeflow.NewNode("B", nodeflow.Vec2{X: 100, Y: 300})
//	view.AddNode(a)
//	view.AddNode(b)
//	view.AddEdge(nodeflow.NewEdge(a.ID, b.ID))
//	nodeflow.Run(view, nodeflow.RunConfig{Title: "Graph"})
//
// For full control, implement [ebiten.Game] yourself and call
// [GraphView.Update], [GraphView.Draw] and [GraphView.SetSize] directly.
//
// # Coordinates
//
// Node positions are in graph space. The [Viewport] maps graph space to
// screen space with a uniform zoom and a pan offset:
//
//	screen = graph*zoom + pan
//
// Hosts read the mapping through [GraphView.ViewportState], a value
// snapshot with its own ToGraph and ToScreen.
//
// # Gestures
//
// A [GraphView] runs one gesture at a time: dragging a node, panning the
// canvas, or nothing. Pressing a handle marker does not start a canvas
// gesture; it notifies [GraphView.OnHandleClicked] subscribers instead.
//
// An [Editor] subscribes to those clicks and layers a connection gesture on
// top of the view. While connecting it draws a live line from the source
// handle to the pointer, and on release it calls the [ConnectEndFunc] with
// the graph-space drop point:
//
//	ed := nodeflow.NewEditor(view).OnConnectEnd(
//		func(src uuid.UUID, handle string, drop nodeflow.Vec2, g *nodeflow.Graph) {
//			// create a node at drop, add an edge ...
//		})
//	nodeflow.Run(ed, nodeflow.RunConfig{})
//
// # Custom nodes
//
// Every node has a type tag. [GraphView.RegisterNodeType] maps a tag to a
// [NodeRenderer]; unregistered tags fall back to [DefaultNodeRenderer].
//
// # Testing
//
// [GraphView.InjectClick], [GraphView.InjectDrag] and friends queue
// synthetic pointer input consumed one event per frame. [LoadTestScript]
// reads the same actions from JSON, and [GraphView.SavePNG] renders the
// current frame without a GPU.
//
// ECS integration via [Donburi] lives in nodeflow/ecs.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package nodeflow
