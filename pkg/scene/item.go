package scene

import (
	"github.com/google/uuid"

	"github.com/jaallen85/jade-py-sub000/pkg/geom"
)

// ID identifies an item within a drawing. IDs are stable across
// save/load and are how the store and the scripting layer address items.
type ID string

// NewID returns a fresh random item ID.
func NewID() ID { return ID(uuid.NewString()) }

// Style carries the pen and brush properties exporters read. It has no
// bearing on geometry or connections.
type Style struct {
	StrokeColor string  `json:"stroke_color,omitempty"`
	StrokeWidth float64 `json:"stroke_width,omitempty"`
	FillColor   string  `json:"fill_color,omitempty"`
}

// DefaultStyle is applied to newly created items.
var DefaultStyle = Style{StrokeColor: "#000000", StrokeWidth: 1, FillColor: "none"}

// Item is a placeable diagram shape. It owns an ordered list of points and
// a local-to-scene transform consisting of a position, a quadrant rotation
// and a horizontal-flip flag. The set of concrete kinds is closed: line,
// curve, polyline, polygon, rect, ellipse, path, text and group.
type Item interface {
	ID() ID
	// SetID overwrites the random ID; the store uses it to keep IDs
	// stable across save and load.
	SetID(ID)
	Kind() string
	Style() *Style

	Points() []*Point
	Position() geom.Vec
	SetPosition(geom.Vec)
	Rotation() int // quadrant steps, 0..3
	SetRotation(int)
	IsFlipped() bool
	SetFlipped(bool)

	MapToScene(local geom.Vec) geom.Vec
	MapFromScene(scene geom.Vec) geom.Vec

	// Move sets the scene position directly without touching the local
	// point layout.
	Move(scenePos geom.Vec)
	// Resize relocates one control point to a new scene position and
	// re-derives the dependent geometry. snap45 requests 45°-snapping
	// relative to the shape's opposite point where the shape supports it.
	Resize(p *Point, scenePos geom.Vec, snap45 bool)
	// Rotate advances the quadrant rotation by one step about an external
	// scene-space pivot; RotateBack retreats it.
	Rotate(center geom.Vec)
	RotateBack(center geom.Vec)
	// Flip mirrors the item horizontally about the pivot's X.
	Flip(center geom.Vec)

	// IsValid reports whether the item is placeable (non-degenerate
	// geometry, non-empty caption, and so on per kind).
	IsValid() bool
	// BoundingRect returns the local-space bounding rect.
	BoundingRect() geom.Rect

	// Copy returns a deep copy with a fresh ID and no links.
	Copy() Item
}

// PointEditor is implemented by items whose point list can grow and
// shrink (polylines and polygons).
type PointEditor interface {
	Item
	CanInsertPoints() bool
	CanRemovePoints() bool
	// InsertIndex returns the point-list index at which a new vertex
	// nearest the given scene position should be inserted.
	InsertIndex(scenePos geom.Vec) int
	// NewVertex creates an unattached vertex point local to this item.
	NewVertex(scenePos geom.Vec) *Point
	InsertPoint(index int, p *Point)
	RemovePoint(p *Point) int // returns the removed index
	// RemovableVertexNear returns the removable vertex closest to the
	// scene position, or nil when none may be removed.
	RemovableVertexNear(scenePos geom.Vec) *Point
}

// itemBase carries the state shared by every concrete item kind.
type itemBase struct {
	id      ID
	style   Style
	points  []*Point
	pos     geom.Vec
	rot     int
	flipped bool
}

func newItemBase() itemBase {
	return itemBase{id: NewID(), style: DefaultStyle}
}

func (b *itemBase) ID() ID                { return b.id }
func (b *itemBase) SetID(id ID)           { b.id = id }
func (b *itemBase) Style() *Style         { return &b.style }
func (b *itemBase) Points() []*Point      { return b.points }
func (b *itemBase) Position() geom.Vec    { return b.pos }
func (b *itemBase) SetPosition(p geom.Vec) { b.pos = p }
func (b *itemBase) Rotation() int         { return b.rot }
func (b *itemBase) SetRotation(r int)     { b.rot = ((r % 4) + 4) % 4 }
func (b *itemBase) IsFlipped() bool       { return b.flipped }
func (b *itemBase) SetFlipped(f bool)     { b.flipped = f }

// addPoint appends a point and claims ownership.
func (b *itemBase) addPoint(owner Item, p *Point) {
	p.item = owner
	b.points = append(b.points, p)
}

// insertPointAt inserts a point at index and claims ownership.
func (b *itemBase) insertPointAt(owner Item, index int, p *Point) {
	p.item = owner
	b.points = append(b.points, nil)
	copy(b.points[index+1:], b.points[index:])
	b.points[index] = p
}

// removePoint detaches a point from the list. Links are left to the
// caller, which must sever them before the point is dropped for good.
func (b *itemBase) removePoint(p *Point) int {
	for i, q := range b.points {
		if q == p {
			b.points = append(b.points[:i], b.points[i+1:]...)
			p.item = nil
			return i
		}
	}
	panic("scene: point does not belong to this item")
}

// MapToScene maps a local position through flip, rotation and translation.
func (b *itemBase) MapToScene(local geom.Vec) geom.Vec {
	v := local
	if b.flipped {
		v.X = -v.X
	}
	v = geom.RotQuadrant(v, b.rot)
	return b.pos.Add(v)
}

// MapFromScene is the inverse of MapToScene.
func (b *itemBase) MapFromScene(scene geom.Vec) geom.Vec {
	v := scene.Sub(b.pos)
	v = geom.RotQuadrant(v, (4-b.rot)&3)
	if b.flipped {
		v.X = -v.X
	}
	return v
}

func (b *itemBase) Move(scenePos geom.Vec) { b.pos = scenePos }

func (b *itemBase) Rotate(center geom.Vec) {
	b.pos = center.Add(geom.Rot90(b.pos.Sub(center)))
	b.rot = (b.rot + 1) & 3
}

func (b *itemBase) RotateBack(center geom.Vec) {
	b.pos = center.Add(geom.Rot90Back(b.pos.Sub(center)))
	b.rot = (b.rot + 3) & 3
}

func (b *itemBase) Flip(center geom.Vec) {
	b.pos.X = 2*center.X - b.pos.X
	b.flipped = !b.flipped
}

// resizeDefault maps the scene position into local space and relocates
// exactly the one point. Shape kinds layer re-derivation on top.
func (b *itemBase) resizeDefault(p *Point, scenePos geom.Vec) {
	if p.item == nil || p.item.Points() == nil {
		panic("scene: resize of a detached point")
	}
	b.mustOwn(p)
	p.SetPosition(b.MapFromScene(scenePos))
}

// mustOwn panics unless p belongs to this item. Passing a foreign point
// is a caller bug, not a runtime condition.
func (b *itemBase) mustOwn(p *Point) {
	for _, q := range b.points {
		if q == p {
			return
		}
	}
	panic("scene: point does not belong to this item")
}

// reanchor translates every local point by the negative of the new anchor
// and moves the scene position to the anchor's scene spot, so scene-space
// point positions are unchanged while the local origin stays meaningful.
func (b *itemBase) reanchor(anchor geom.Vec) {
	if anchor.IsZero() {
		return
	}
	newPos := b.MapToScene(anchor)
	for _, p := range b.points {
		p.SetPosition(p.Position().Sub(anchor))
	}
	b.pos = newPos
}

// copyBase duplicates the shared state with a fresh ID. Points are copied
// without links; callers that need intra-set link preservation use
// CopyItems.
func (b *itemBase) copyBase(owner Item) itemBase {
	c := itemBase{id: NewID(), style: b.style, pos: b.pos, rot: b.rot, flipped: b.flipped}
	for _, p := range b.points {
		c.addPoint(owner, NewPoint(p.Position(), p.Capability()))
	}
	return c
}

// pointsBounds returns the local bounding rect of the item's points.
func (b *itemBase) pointsBounds() geom.Rect {
	if len(b.points) == 0 {
		return geom.Rect{}
	}
	r := geom.RectFromCorners(b.points[0].Position(), b.points[0].Position())
	for _, p := range b.points[1:] {
		r = r.Union(geom.RectFromCorners(p.Position(), p.Position()))
	}
	return r
}

// SceneBounds maps the local bounding rect corners into scene space.
func SceneBounds(it Item) geom.Rect {
	r := it.BoundingRect()
	a := it.MapToScene(r.Min())
	b := it.MapToScene(r.Max())
	c := it.MapToScene(geom.Vec{X: r.X, Y: r.Y + r.H})
	d := it.MapToScene(geom.Vec{X: r.X + r.W, Y: r.Y})
	return geom.RectFromCorners(a, b).Union(geom.RectFromCorners(c, d))
}
