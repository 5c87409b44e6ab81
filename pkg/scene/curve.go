package scene

import "github.com/jaallen85/jade-py-sub000/pkg/geom"

// Point roles on a cubic curve.
const (
	CurveStart     = 0
	CurveStartCtrl = 1
	CurveEndCtrl   = 2
	CurveEnd       = 3
)

// Curve is a cubic bezier segment. Start and end are free connectable
// handles; the two interior points are pure control handles. Moving an
// endpoint drags its control handle along so the handle offset survives.
type Curve struct {
	itemBase
}

// NewCurve creates a curve from four scene positions: start, start
// control, end control, end.
func NewCurve(start, startCtrl, endCtrl, end geom.Vec) *Curve {
	c := &Curve{itemBase: newItemBase()}
	c.pos = start
	c.addPoint(c, NewPoint(geom.Vec{}, Control|Connection|Free))
	c.addPoint(c, NewPoint(startCtrl.Sub(start), Control))
	c.addPoint(c, NewPoint(endCtrl.Sub(start), Control))
	c.addPoint(c, NewPoint(end.Sub(start), Control|Connection|Free))
	return c
}

func (c *Curve) Kind() string { return "curve" }

// StartPoint returns the curve's start endpoint.
func (c *Curve) StartPoint() *Point { return c.points[CurveStart] }

// EndPoint returns the curve's end endpoint.
func (c *Curve) EndPoint() *Point { return c.points[CurveEnd] }

func (c *Curve) Resize(p *Point, scenePos geom.Vec, snap45 bool) {
	c.mustOwn(p)
	local := c.MapFromScene(scenePos)
	delta := local.Sub(p.Position())
	p.SetPosition(local)

	// Endpoint moves carry the adjacent control handle along.
	switch p {
	case c.points[CurveStart]:
		ctrl := c.points[CurveStartCtrl]
		ctrl.SetPosition(ctrl.Position().Add(delta))
	case c.points[CurveEnd]:
		ctrl := c.points[CurveEndCtrl]
		ctrl.SetPosition(ctrl.Position().Add(delta))
	}
	c.reanchor(c.points[CurveStart].Position())
}

func (c *Curve) IsValid() bool {
	return !geom.Coincident(c.points[CurveStart].Position(), c.points[CurveEnd].Position())
}

func (c *Curve) BoundingRect() geom.Rect {
	return c.pointsBounds()
}

func (c *Curve) Copy() Item {
	cp := &Curve{}
	cp.itemBase = c.copyBase(cp)
	return cp
}
