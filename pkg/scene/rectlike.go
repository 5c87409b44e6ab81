package scene

import "github.com/jaallen85/jade-py-sub000/pkg/geom"

// Handle indices for rect-like items, clockwise from the top-left corner.
const (
	HandleTopLeft = iota
	HandleTopMiddle
	HandleTopRight
	HandleMiddleRight
	HandleBottomRight
	HandleBottomMiddle
	HandleBottomLeft
	HandleMiddleLeft
	handleCount
)

// rectBase holds the behavior shared by rects, ellipses and path items:
// a local rect kept centered on the origin with eight handle points.
type rectBase struct {
	itemBase
	rect geom.Rect // local, center at origin
}

func (rb *rectBase) initRect(owner Item, sceneRect geom.Rect) {
	sceneRect = sceneRect.Normalized()
	rb.pos = sceneRect.Center()
	rb.rect = geom.Rect{X: -sceneRect.W / 2, Y: -sceneRect.H / 2, W: sceneRect.W, H: sceneRect.H}
	for i := 0; i < handleCount; i++ {
		rb.addPoint(owner, NewPoint(geom.Vec{}, Control|Connection))
	}
	rb.updateHandles()
}

// handlePos returns the local position of a handle for the current rect.
func (rb *rectBase) handlePos(index int) geom.Vec {
	r := rb.rect
	switch index {
	case HandleTopLeft:
		return geom.Vec{X: r.X, Y: r.Y}
	case HandleTopMiddle:
		return geom.Vec{X: r.X + r.W/2, Y: r.Y}
	case HandleTopRight:
		return geom.Vec{X: r.X + r.W, Y: r.Y}
	case HandleMiddleRight:
		return geom.Vec{X: r.X + r.W, Y: r.Y + r.H/2}
	case HandleBottomRight:
		return geom.Vec{X: r.X + r.W, Y: r.Y + r.H}
	case HandleBottomMiddle:
		return geom.Vec{X: r.X + r.W/2, Y: r.Y + r.H}
	case HandleBottomLeft:
		return geom.Vec{X: r.X, Y: r.Y + r.H}
	case HandleMiddleLeft:
		return geom.Vec{X: r.X, Y: r.Y + r.H/2}
	}
	panic("scene: invalid handle index")
}

func (rb *rectBase) updateHandles() {
	for i := 0; i < handleCount; i++ {
		rb.points[i].SetPosition(rb.handlePos(i))
	}
}

// Rect returns the local rect, centered on the item origin. The rect may
// be signed after a crossing resize.
func (rb *rectBase) Rect() geom.Rect { return rb.rect }

// SetRect replaces the local rect and regenerates the handles. Used by
// the store to restore an exact (possibly signed) rect.
func (rb *rectBase) SetRect(r geom.Rect) {
	rb.rect = r
	rb.updateHandles()
}

// SceneRect returns the normalized rect in scene coordinates, ignoring
// rotation.
func (rb *rectBase) SceneRect() geom.Rect {
	return rb.rect.Translate(rb.pos).Normalized()
}

// Resize drags one handle. The rect is kept signed (W or H may go
// negative when a corner crosses its opposite) so that each handle keeps
// its role and resizing back to the old position restores the exact rect.
func (rb *rectBase) Resize(p *Point, scenePos geom.Vec, snap45 bool) {
	rb.mustOwn(p)
	index := rb.handleIndex(p)
	local := rb.MapFromScene(scenePos)
	r := rb.rect

	if snap45 {
		switch index {
		case HandleTopLeft, HandleTopRight, HandleBottomRight, HandleBottomLeft:
			// Diagonal snap relative to the fixed corner yields a square.
			opposite := rb.points[(index+4)%handleCount].Position()
			local = geom.Snap45(opposite, local)
		}
	}

	right := r.X + r.W
	bottom := r.Y + r.H
	switch index {
	case HandleTopLeft:
		rb.rect = geom.Rect{X: local.X, Y: local.Y, W: right - local.X, H: bottom - local.Y}
	case HandleTopRight:
		rb.rect = geom.Rect{X: r.X, Y: local.Y, W: local.X - r.X, H: bottom - local.Y}
	case HandleBottomRight:
		rb.rect = geom.Rect{X: r.X, Y: r.Y, W: local.X - r.X, H: local.Y - r.Y}
	case HandleBottomLeft:
		rb.rect = geom.Rect{X: local.X, Y: r.Y, W: right - local.X, H: local.Y - r.Y}
	case HandleTopMiddle:
		rb.rect = geom.Rect{X: r.X, Y: local.Y, W: r.W, H: bottom - local.Y}
	case HandleBottomMiddle:
		rb.rect = geom.Rect{X: r.X, Y: r.Y, W: r.W, H: local.Y - r.Y}
	case HandleMiddleLeft:
		rb.rect = geom.Rect{X: local.X, Y: r.Y, W: right - local.X, H: r.H}
	case HandleMiddleRight:
		rb.rect = geom.Rect{X: r.X, Y: r.Y, W: local.X - r.X, H: r.H}
	}

	rb.updateHandles()
	center := rb.rect.Center()
	rb.reanchor(center)
	rb.rect = rb.rect.Translate(center.Scale(-1))
}

func (rb *rectBase) handleIndex(p *Point) int {
	for i, q := range rb.points {
		if q == p {
			return i
		}
	}
	panic("scene: point does not belong to this item")
}

func (rb *rectBase) IsValid() bool { return !rb.rect.IsDegenerate() }

func (rb *rectBase) BoundingRect() geom.Rect { return rb.rect.Normalized() }

func (rb *rectBase) copyRectBase(owner Item) rectBase {
	return rectBase{itemBase: rb.copyBase(owner), rect: rb.rect}
}

// RectItem is an axis-aligned rectangle with eight resize handles.
type RectItem struct {
	rectBase
}

// NewRectItem creates a rectangle covering the given scene rect.
func NewRectItem(sceneRect geom.Rect) *RectItem {
	r := &RectItem{}
	r.itemBase = newItemBase()
	r.initRect(r, sceneRect)
	return r
}

func (r *RectItem) Kind() string { return "rect" }

func (r *RectItem) Copy() Item {
	c := &RectItem{}
	c.rectBase = r.copyRectBase(c)
	return c
}

// EllipseItem is an ellipse inscribed in its rect.
type EllipseItem struct {
	rectBase
}

// NewEllipseItem creates an ellipse inscribed in the given scene rect.
func NewEllipseItem(sceneRect geom.Rect) *EllipseItem {
	e := &EllipseItem{}
	e.itemBase = newItemBase()
	e.initRect(e, sceneRect)
	return e
}

func (e *EllipseItem) Kind() string { return "ellipse" }

func (e *EllipseItem) Copy() Item {
	c := &EllipseItem{}
	c.rectBase = e.copyRectBase(c)
	return c
}

// PathItem is a template shape: a fixed polyline in the unit square,
// stretched over the item's rect. Resizing behaves exactly like a rect.
type PathItem struct {
	rectBase
	name string
	path []geom.Vec // unit-square coordinates
}

// NewPathItem creates a template shape stretched over the given scene
// rect. The path is a polyline in [0,1]x[0,1] coordinates.
func NewPathItem(name string, path []geom.Vec, sceneRect geom.Rect) *PathItem {
	p := &PathItem{name: name, path: append([]geom.Vec(nil), path...)}
	p.itemBase = newItemBase()
	p.initRect(p, sceneRect)
	return p
}

func (p *PathItem) Kind() string { return "path" }

// Name returns the template name, e.g. "triangle".
func (p *PathItem) Name() string { return p.name }

// Path returns the unit-square template polyline.
func (p *PathItem) Path() []geom.Vec { return p.path }

// LocalPath returns the template stretched over the current local rect.
func (p *PathItem) LocalPath() []geom.Vec {
	out := make([]geom.Vec, len(p.path))
	for i, v := range p.path {
		out[i] = geom.Vec{X: p.rect.X + v.X*p.rect.W, Y: p.rect.Y + v.Y*p.rect.H}
	}
	return out
}

func (p *PathItem) Copy() Item {
	c := &PathItem{name: p.name, path: append([]geom.Vec(nil), p.path...)}
	c.rectBase = p.copyRectBase(c)
	return c
}
