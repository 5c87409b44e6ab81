package scene

import "github.com/jaallen85/jade-py-sub000/pkg/geom"

// Point roles on a line.
const (
	LineStart = 0
	LineMid   = 1
	LineEnd   = 2
)

// Line is a straight segment between two endpoints. The endpoints are
// free connectable handles; the midpoint accepts connections but cannot
// be resized.
type Line struct {
	itemBase
}

// NewLine creates a line between two scene positions. The first endpoint
// is the item's anchor.
func NewLine(start, end geom.Vec) *Line {
	l := &Line{itemBase: newItemBase()}
	l.pos = start
	d := end.Sub(start)
	l.addPoint(l, NewPoint(geom.Vec{}, Control|Connection|Free))
	l.addPoint(l, NewPoint(d.Scale(0.5), Connection))
	l.addPoint(l, NewPoint(d, Control|Connection|Free))
	return l
}

func (l *Line) Kind() string { return "line" }

// StartPoint returns the first endpoint.
func (l *Line) StartPoint() *Point { return l.points[LineStart] }

// EndPoint returns the second endpoint.
func (l *Line) EndPoint() *Point { return l.points[LineEnd] }

func (l *Line) Resize(p *Point, scenePos geom.Vec, snap45 bool) {
	l.mustOwn(p)
	if !p.IsControl() {
		panic("scene: line midpoint is not resizable")
	}
	local := l.MapFromScene(scenePos)
	if snap45 {
		opposite := l.points[LineStart]
		if p == opposite {
			opposite = l.points[LineEnd]
		}
		local = geom.Snap45(opposite.Position(), local)
	}
	p.SetPosition(local)

	start := l.points[LineStart].Position()
	end := l.points[LineEnd].Position()
	l.points[LineMid].SetPosition(start.Add(end).Scale(0.5))
	l.reanchor(l.points[LineStart].Position())
}

func (l *Line) IsValid() bool {
	return !geom.Coincident(l.points[LineStart].Position(), l.points[LineEnd].Position())
}

func (l *Line) BoundingRect() geom.Rect {
	return geom.RectFromCorners(l.points[LineStart].Position(), l.points[LineEnd].Position())
}

func (l *Line) Copy() Item {
	c := &Line{}
	c.itemBase = l.copyBase(c)
	return c
}
