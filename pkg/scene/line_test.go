package scene

import (
	"testing"

	"github.com/jaallen85/jade-py-sub000/pkg/geom"
)

func TestNewLineLayout(t *testing.T) {
	l := NewLine(geom.Vec{X: 2, Y: 3}, geom.Vec{X: 12, Y: 3})
	if got := l.Position(); !geom.Coincident(got, geom.Vec{X: 2, Y: 3}) {
		t.Fatalf("position = %v", got)
	}
	if len(l.Points()) != 3 {
		t.Fatalf("point count = %d", len(l.Points()))
	}
	if !l.StartPoint().IsFree() || !l.EndPoint().IsFree() {
		t.Fatal("endpoints must be free")
	}
	mid := l.Points()[LineMid]
	if mid.IsControl() || !mid.IsConnection() {
		t.Fatal("midpoint must be connectable but not draggable")
	}
	if got := mid.ScenePosition(); !geom.Coincident(got, geom.Vec{X: 7, Y: 3}) {
		t.Fatalf("midpoint scene position = %v", got)
	}
}

func TestLineResizeRecomputesMidpoint(t *testing.T) {
	l := NewLine(geom.Vec{}, geom.Vec{X: 10})
	l.Resize(l.EndPoint(), geom.Vec{X: 20, Y: 10}, false)
	if got := l.Points()[LineMid].ScenePosition(); !geom.Coincident(got, geom.Vec{X: 10, Y: 5}) {
		t.Fatalf("midpoint = %v, want (10, 5)", got)
	}
}

func TestLineResizeSnap45(t *testing.T) {
	l := NewLine(geom.Vec{}, geom.Vec{X: 10})
	// Near-diagonal drag snaps onto the 45 degree ray from the start.
	l.Resize(l.EndPoint(), geom.Vec{X: 8, Y: 6}, true)
	if got := l.EndPoint().ScenePosition(); !geom.Coincident(got, geom.Vec{X: 8, Y: 8}) {
		t.Fatalf("snapped end = %v, want (8, 8)", got)
	}
}

func TestLineValidity(t *testing.T) {
	l := NewLine(geom.Vec{}, geom.Vec{X: 10})
	if !l.IsValid() {
		t.Fatal("line with extent should be valid")
	}
	l.Resize(l.EndPoint(), geom.Vec{}, false)
	if l.IsValid() {
		t.Fatal("zero-length line should be invalid")
	}
}

func TestCurveEndpointCarriesControl(t *testing.T) {
	c := NewCurve(geom.Vec{}, geom.Vec{X: 3, Y: 3}, geom.Vec{X: 7, Y: 3}, geom.Vec{X: 10})
	c.Resize(c.EndPoint(), geom.Vec{X: 15, Y: 5}, false)

	if got := c.EndPoint().ScenePosition(); !geom.Coincident(got, geom.Vec{X: 15, Y: 5}) {
		t.Fatalf("end = %v", got)
	}
	// The end control handle keeps its offset from the endpoint.
	ctrl := c.Points()[CurveEndCtrl].ScenePosition()
	if got := ctrl; !geom.Coincident(got, geom.Vec{X: 12, Y: 8}) {
		t.Fatalf("end control = %v, want (12, 8)", got)
	}
}

func TestCurveValidity(t *testing.T) {
	c := NewCurve(geom.Vec{}, geom.Vec{X: 3, Y: 3}, geom.Vec{X: 7, Y: 3}, geom.Vec{X: 10})
	if !c.IsValid() {
		t.Fatal("curve with distinct endpoints should be valid")
	}
	c.Resize(c.EndPoint(), geom.Vec{}, false)
	if c.IsValid() {
		t.Fatal("collapsed curve should be invalid")
	}
}
