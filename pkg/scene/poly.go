package scene

import "github.com/jaallen85/jade-py-sub000/pkg/geom"

// Minimum vertex counts for point removal.
const (
	MinPolylinePoints = 2
	MinPolygonPoints  = 3
)

// polyBase holds the behavior shared by polylines and polygons: a
// variable list of vertices with insertable and removable points.
type polyBase struct {
	itemBase
	closed    bool
	minPoints int
}

func (pb *polyBase) Resize(p *Point, scenePos geom.Vec, snap45 bool) {
	pb.mustOwn(p)
	local := pb.MapFromScene(scenePos)
	if snap45 {
		if anchor, ok := pb.snapAnchor(p); ok {
			local = geom.Snap45(anchor, local)
		}
	}
	p.SetPosition(local)
	pb.reanchor(pb.points[0].Position())
}

// snapAnchor returns the neighboring vertex used for 45° snapping of an
// open endpoint. Interior vertices do not snap.
func (pb *polyBase) snapAnchor(p *Point) (geom.Vec, bool) {
	if pb.closed || len(pb.points) < 2 {
		return geom.Vec{}, false
	}
	switch p {
	case pb.points[0]:
		return pb.points[1].Position(), true
	case pb.points[len(pb.points)-1]:
		return pb.points[len(pb.points)-2].Position(), true
	}
	return geom.Vec{}, false
}

func (pb *polyBase) CanInsertPoints() bool { return true }

// NewVertex creates an unattached vertex point at the given scene
// position, local to this item.
func (pb *polyBase) NewVertex(scenePos geom.Vec) *Point {
	return NewPoint(pb.MapFromScene(scenePos), Control|Connection)
}

func (pb *polyBase) CanRemovePoints() bool { return len(pb.points) > pb.minPoints }

// InsertIndex picks the edge with the minimum point-to-segment distance
// and returns the index a new vertex on that edge should take.
func (pb *polyBase) InsertIndex(scenePos geom.Vec) int {
	local := pb.MapFromScene(scenePos)
	n := len(pb.points)
	bestIndex := 1
	bestDist := geom.PointSegmentDist(local, pb.points[0].Position(), pb.points[1%n].Position())

	edges := n - 1
	if pb.closed {
		edges = n
	}
	for i := 1; i < edges; i++ {
		a := pb.points[i].Position()
		b := pb.points[(i+1)%n].Position()
		if d := geom.PointSegmentDist(local, a, b); d < bestDist {
			bestDist = d
			bestIndex = i + 1
		}
	}
	return bestIndex
}

func (pb *polyBase) insertPoint(owner Item, index int, p *Point) {
	if index < 1 || index > len(pb.points) {
		panic("scene: vertex insert index out of range")
	}
	pb.insertPointAt(owner, index, p)
	pb.reanchor(pb.points[0].Position())
}

func (pb *polyBase) removeVertex(p *Point) int {
	if !pb.CanRemovePoints() {
		panic("scene: vertex count already at minimum")
	}
	if !pb.closed && (p == pb.points[0] || p == pb.points[len(pb.points)-1]) {
		panic("scene: polyline endpoints cannot be removed")
	}
	index := pb.removePoint(p)
	pb.reanchor(pb.points[0].Position())
	return index
}

// RemovableVertexNear returns the removable vertex closest to the given
// scene position, or nil when no vertex may be removed.
func (pb *polyBase) RemovableVertexNear(scenePos geom.Vec) *Point {
	if !pb.CanRemovePoints() {
		return nil
	}
	local := pb.MapFromScene(scenePos)
	var best *Point
	bestDist := 0.0
	for i, p := range pb.points {
		if !pb.closed && (i == 0 || i == len(pb.points)-1) {
			continue
		}
		d := local.Dist(p.Position())
		if best == nil || d < bestDist {
			best = p
			bestDist = d
		}
	}
	return best
}

func (pb *polyBase) IsValid() bool {
	return !pb.pointsBounds().IsDegenerate() || (!pb.closed && len(pb.points) >= 2 &&
		!geom.Coincident(pb.points[0].Position(), pb.points[len(pb.points)-1].Position()))
}

func (pb *polyBase) BoundingRect() geom.Rect { return pb.pointsBounds() }

// Polyline is an open chain of vertices. The two endpoints are free
// connectable handles; interior vertices are plain connectable handles.
type Polyline struct {
	polyBase
}

// NewPolyline creates a polyline through the given scene positions.
// At least two vertices are required.
func NewPolyline(vertices []geom.Vec) *Polyline {
	if len(vertices) < MinPolylinePoints {
		panic("scene: polyline needs at least two vertices")
	}
	pl := &Polyline{polyBase{itemBase: newItemBase(), minPoints: MinPolylinePoints}}
	pl.pos = vertices[0]
	for i, v := range vertices {
		flags := Control | Connection
		if i == 0 || i == len(vertices)-1 {
			flags |= Free
		}
		pl.addPoint(pl, NewPoint(v.Sub(vertices[0]), flags))
	}
	return pl
}

func (pl *Polyline) Kind() string { return "polyline" }

func (pl *Polyline) InsertPoint(index int, p *Point) { pl.insertPoint(pl, index, p) }

func (pl *Polyline) RemovePoint(p *Point) int { return pl.removeVertex(p) }

func (pl *Polyline) Copy() Item {
	c := &Polyline{polyBase{minPoints: MinPolylinePoints}}
	c.itemBase = pl.copyBase(c)
	return c
}

// Polygon is a closed chain of at least three vertices.
type Polygon struct {
	polyBase
}

// NewPolygon creates a polygon through the given scene positions.
func NewPolygon(vertices []geom.Vec) *Polygon {
	if len(vertices) < MinPolygonPoints {
		panic("scene: polygon needs at least three vertices")
	}
	pg := &Polygon{polyBase{itemBase: newItemBase(), closed: true, minPoints: MinPolygonPoints}}
	pg.pos = vertices[0]
	for _, v := range vertices {
		pg.addPoint(pg, NewPoint(v.Sub(vertices[0]), Control|Connection))
	}
	return pg
}

func (pg *Polygon) Kind() string { return "polygon" }

func (pg *Polygon) InsertPoint(index int, p *Point) { pg.insertPoint(pg, index, p) }

func (pg *Polygon) RemovePoint(p *Point) int { return pg.removeVertex(p) }

func (pg *Polygon) Copy() Item {
	c := &Polygon{polyBase{closed: true, minPoints: MinPolygonPoints}}
	c.itemBase = pg.copyBase(c)
	return c
}
