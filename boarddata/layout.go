package boarddata

import (
	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"

	"pursuit/game"
)

// hitTolerance is the half-width of the box a node occupies in the index;
// it only pads degenerate point rectangles, NearestNode still resolves the
// closest node at any distance.
const hitTolerance = 0.5

// Layout maps nodes to 2-D positions and answers nearest-node queries for
// click hit-testing. It serves rendering and input collaborators only; the
// decision packages never consume coordinates.
type Layout struct {
	points map[game.NodeID]orb.Point
	tree   *rtreego.Rtree
}

// nodeEntry wraps a node for R-tree storage.
type nodeEntry struct {
	id   game.NodeID
	rect rtreego.Rect
}

// Bounds implements rtreego.Spatial.
func (e *nodeEntry) Bounds() rtreego.Rect { return e.rect }

func NewLayout(points map[game.NodeID]orb.Point) *Layout {
	tree := rtreego.NewTree(2, 25, 50) // 2 dimensions, 25-50 entries per node
	copied := make(map[game.NodeID]orb.Point, len(points))
	for id, p := range points {
		copied[id] = p
		tree.Insert(&nodeEntry{id: id, rect: rtreego.Point{p.X(), p.Y()}.ToRect(hitTolerance)})
	}
	return &Layout{points: copied, tree: tree}
}

// Point returns the node's position.
func (l *Layout) Point(n game.NodeID) (orb.Point, bool) {
	p, ok := l.points[n]
	return p, ok
}

// NearestNode returns the node closest to the given position. It reports
// false only for an empty layout.
func (l *Layout) NearestNode(x, y float64) (game.NodeID, bool) {
	nearest := l.tree.NearestNeighbor(rtreego.Point{x, y})
	if nearest == nil {
		return 0, false
	}
	return nearest.(*nodeEntry).id, true
}

// NumNodes returns the number of placed nodes.
func (l *Layout) NumNodes() int {
	return len(l.points)
}
