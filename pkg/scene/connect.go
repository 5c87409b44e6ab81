package scene

import (
	"github.com/dhconnelly/rtreego"

	"github.com/jaallen85/jade-py-sub000/pkg/geom"
)

// ShouldConnect reports whether two points ought to be linked: they sit
// on different items, both accept connections, at least one is free, they
// are not linked yet, and their scene positions coincide. Pure; the sole
// oracle consulted when links are created.
func ShouldConnect(a, b *Point) bool {
	if a.Item() == nil || b.Item() == nil || a.Item() == b.Item() {
		return false
	}
	if !a.IsConnection() || !b.IsConnection() {
		return false
	}
	if !a.IsFree() && !b.IsFree() {
		return false
	}
	if a.IsLinkedTo(b) {
		return false
	}
	return geom.Coincident(a.ScenePosition(), b.ScenePosition())
}

// ShouldDisconnect reports whether an existing link between a (the
// initiating point) and b must break: their scene positions diverged and
// b is not free. A free b is dragged along instead of disconnected.
func ShouldDisconnect(a, b *Point) bool {
	if !a.IsLinkedTo(b) {
		return false
	}
	if geom.Coincident(a.ScenePosition(), b.ScenePosition()) {
		return false
	}
	return !b.IsFree()
}

// pointSpot adapts a point to the R-tree's spatial interface. The bounds
// are the point's scene position inflated by the coincidence epsilon so
// an intersection query finds every connectable candidate.
type pointSpot struct {
	point *Point
	rect  rtreego.Rect
}

func (s *pointSpot) Bounds() rtreego.Rect { return s.rect }

func newPointSpot(p *Point) *pointSpot {
	pos := p.ScenePosition()
	rect, err := rtreego.NewRectFromPoints(
		rtreego.Point{pos.X - geom.Epsilon, pos.Y - geom.Epsilon},
		rtreego.Point{pos.X + geom.Epsilon, pos.Y + geom.Epsilon},
	)
	if err != nil {
		panic("scene: invalid point bounds: " + err.Error())
	}
	return &pointSpot{point: p, rect: rect}
}

// ConnectIndex is a transient spatial index over connectable points, used
// by the placement scan and by load-time connection discovery.
type ConnectIndex struct {
	tree *rtreego.Rtree
}

// NewConnectIndex indexes every connection-capable top-level point of
// the given items. Points nested inside groups live in group-local
// coordinates and do not take part in scene-level connections.
func NewConnectIndex(items []Item) *ConnectIndex {
	tree := rtreego.NewTree(2, 25, 50)
	for _, it := range items {
		for _, p := range it.Points() {
			if p.IsConnection() {
				tree.Insert(newPointSpot(p))
			}
		}
	}
	return &ConnectIndex{tree: tree}
}

// CandidatesFor returns the indexed points whose epsilon neighborhood
// overlaps p's. ShouldConnect remains the oracle; this only narrows the
// scan.
func (ix *ConnectIndex) CandidatesFor(p *Point) []*Point {
	spot := newPointSpot(p)
	var out []*Point
	for _, hit := range ix.tree.SearchIntersect(spot.rect) {
		q := hit.(*pointSpot).point
		if q != p {
			out = append(out, q)
		}
	}
	return out
}

// ConnectablePairs returns every pair among the placed items' points and
// the indexed points for which ShouldConnect holds. Each pair is reported
// once.
func (ix *ConnectIndex) ConnectablePairs(placed []Item) [][2]*Point {
	var pairs [][2]*Point
	seen := make(map[[2]*Point]bool)
	for _, it := range placed {
		for _, p := range it.Points() {
			if !p.IsConnection() {
				continue
			}
			for _, q := range ix.CandidatesFor(p) {
				if !ShouldConnect(p, q) {
					continue
				}
				if seen[[2]*Point{p, q}] || seen[[2]*Point{q, p}] {
					continue
				}
				seen[[2]*Point{p, q}] = true
				pairs = append(pairs, [2]*Point{p, q})
			}
		}
	}
	return pairs
}

// ReconnectAll re-runs the coincidence scan across the items and
// establishes all eligible links. Group children are scanned against
// their siblings in the group's own coordinate space. Used after loading
// a drawing, where connections are not persisted but rediscovered with
// the same predicate live editing uses.
func ReconnectAll(items []Item) {
	ix := NewConnectIndex(items)
	for _, pair := range ix.ConnectablePairs(items) {
		Connect(pair[0], pair[1])
	}
	for _, it := range items {
		if g, ok := it.(*Group); ok {
			ReconnectAll(g.Children())
		}
	}
}
