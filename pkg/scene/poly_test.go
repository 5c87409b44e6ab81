package scene

import (
	"testing"

	"github.com/jaallen85/jade-py-sub000/pkg/geom"
)

func TestNewPolylineCapabilities(t *testing.T) {
	pl := NewPolyline([]geom.Vec{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}})
	pts := pl.Points()
	if len(pts) != 3 {
		t.Fatalf("point count = %d", len(pts))
	}
	if !pts[0].IsFree() || !pts[2].IsFree() {
		t.Fatal("polyline endpoints must be free")
	}
	if pts[1].IsFree() {
		t.Fatal("interior vertex must not be free")
	}
	if !pts[1].IsControl() || !pts[1].IsConnection() {
		t.Fatal("interior vertex must be a connectable handle")
	}
}

func TestPolylineInsertIndex(t *testing.T) {
	pl := NewPolyline([]geom.Vec{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}})
	tests := []struct {
		pos  geom.Vec
		want int
	}{
		{geom.Vec{X: 5, Y: 1}, 1},  // near first edge
		{geom.Vec{X: 9, Y: 5}, 2},  // near second edge
		{geom.Vec{X: 2, Y: -1}, 1}, // above first edge
	}
	for _, tt := range tests {
		if got := pl.InsertIndex(tt.pos); got != tt.want {
			t.Errorf("InsertIndex(%v) = %d, want %d", tt.pos, got, tt.want)
		}
	}
}

func TestPolygonInsertIndexWrapEdge(t *testing.T) {
	pg := NewPolygon([]geom.Vec{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}})
	// Near the closing edge between the last and the first vertex.
	if got := pg.InsertIndex(geom.Vec{X: 1, Y: 5}); got != 4 {
		t.Fatalf("InsertIndex on the wrap edge = %d, want 4", got)
	}
}

func TestPolylineInsertAndRemoveVertex(t *testing.T) {
	pl := NewPolyline([]geom.Vec{{X: 0, Y: 0}, {X: 10, Y: 0}})
	before := scenePositions(pl)

	v := pl.NewVertex(geom.Vec{X: 5, Y: 3})
	pl.InsertPoint(1, v)
	if len(pl.Points()) != 3 {
		t.Fatalf("point count after insert = %d", len(pl.Points()))
	}
	if got := v.ScenePosition(); !geom.Coincident(got, geom.Vec{X: 5, Y: 3}) {
		t.Fatalf("inserted vertex at %v", got)
	}
	// The surviving vertices keep their scene spots.
	if got := pl.Points()[0].ScenePosition(); !geom.Coincident(got, before[0]) {
		t.Fatalf("first vertex moved to %v", got)
	}
	if got := pl.Points()[2].ScenePosition(); !geom.Coincident(got, before[1]) {
		t.Fatalf("last vertex moved to %v", got)
	}

	index := pl.RemovePoint(v)
	if index != 1 {
		t.Fatalf("removed index = %d", index)
	}
	if len(pl.Points()) != 2 {
		t.Fatalf("point count after remove = %d", len(pl.Points()))
	}
}

func TestPolylineEndpointsNotRemovable(t *testing.T) {
	pl := NewPolyline([]geom.Vec{{X: 0, Y: 0}, {X: 5, Y: 5}, {X: 10, Y: 0}})
	if got := pl.RemovableVertexNear(geom.Vec{X: 0, Y: 0}); got != pl.Points()[1] {
		t.Fatal("only the interior vertex may be removed")
	}

	defer func() {
		if recover() == nil {
			t.Fatal("removing an endpoint must panic")
		}
	}()
	pl.RemovePoint(pl.Points()[0])
}

func TestPolygonMinimumVertices(t *testing.T) {
	pg := NewPolygon([]geom.Vec{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 10}})
	if pg.CanRemovePoints() {
		t.Fatal("triangle must not allow vertex removal")
	}
	if got := pg.RemovableVertexNear(geom.Vec{X: 0, Y: 0}); got != nil {
		t.Fatal("RemovableVertexNear must be nil at the minimum")
	}

	pg.InsertPoint(1, pg.NewVertex(geom.Vec{X: 5, Y: 0}))
	if !pg.CanRemovePoints() {
		t.Fatal("four vertices must allow removal")
	}
}

func TestPolylineSnap45OnEndpoint(t *testing.T) {
	pl := NewPolyline([]geom.Vec{{X: 0, Y: 0}, {X: 10, Y: 0}})
	pl.Resize(pl.Points()[1], geom.Vec{X: 8, Y: 6}, true)
	if got := pl.Points()[1].ScenePosition(); !geom.Coincident(got, geom.Vec{X: 8, Y: 8}) {
		t.Fatalf("snapped endpoint = %v, want (8, 8)", got)
	}

	// Interior vertices do not snap.
	pl.InsertPoint(1, pl.NewVertex(geom.Vec{X: 4, Y: 4}))
	pl.Resize(pl.Points()[1], geom.Vec{X: 3, Y: 1}, true)
	if got := pl.Points()[1].ScenePosition(); !geom.Coincident(got, geom.Vec{X: 3, Y: 1}) {
		t.Fatalf("interior vertex = %v, want the raw position", got)
	}
}

func TestPolygonValidity(t *testing.T) {
	pg := NewPolygon([]geom.Vec{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 10}})
	if !pg.IsValid() {
		t.Fatal("triangle should be valid")
	}
	collinear := NewPolygon([]geom.Vec{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 10, Y: 0}})
	if collinear.IsValid() {
		t.Fatal("collinear polygon should be invalid")
	}
}
