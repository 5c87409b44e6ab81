package scene

import "github.com/jaallen85/jade-py-sub000/pkg/geom"

// Group is a composite item. Child transforms are interpreted relative to
// the group's transform; the group exposes eight display-only bounding
// handles that accept neither drags nor connections.
type Group struct {
	itemBase
	children []Item
}

// NewGroup builds a group over copies of the given scene items. The group
// is positioned at the center of the combined scene bounds and the copies
// are re-based into group-local coordinates. Links between the copied
// items are preserved; links to outside items are not carried over.
func NewGroup(items []Item) *Group {
	if len(items) == 0 {
		panic("scene: group needs at least one item")
	}
	g := &Group{itemBase: newItemBase()}

	bounds := SceneBounds(items[0])
	for _, it := range items[1:] {
		bounds = bounds.Union(SceneBounds(it))
	}
	g.pos = bounds.Center()

	g.children = CopyItems(items)
	for _, child := range g.children {
		// A fresh group carries the identity rotation/flip, so re-basing
		// is a plain translation.
		child.SetPosition(child.Position().Sub(g.pos))
	}

	for i := 0; i < handleCount; i++ {
		g.addPoint(g, NewPoint(geom.Vec{}, NoCapability))
	}
	g.updateHandles()
	return g
}

// NewGroupFromChildren wraps already group-local children without copying
// or re-basing them. Used by the store when reloading a drawing.
func NewGroupFromChildren(children []Item) *Group {
	g := &Group{itemBase: newItemBase(), children: children}
	for i := 0; i < handleCount; i++ {
		g.addPoint(g, NewPoint(geom.Vec{}, NoCapability))
	}
	g.updateHandles()
	return g
}

func (g *Group) Kind() string { return "group" }

// Children returns the group's child items in z-order. The slice is the
// live backing store; callers must not mutate it.
func (g *Group) Children() []Item { return g.children }

// updateHandles recomputes the display handles from the union of the
// children's group-local bounds.
func (g *Group) updateHandles() {
	r := g.BoundingRect()
	corners := []geom.Vec{
		{X: r.X, Y: r.Y},
		{X: r.X + r.W/2, Y: r.Y},
		{X: r.X + r.W, Y: r.Y},
		{X: r.X + r.W, Y: r.Y + r.H/2},
		{X: r.X + r.W, Y: r.Y + r.H},
		{X: r.X + r.W/2, Y: r.Y + r.H},
		{X: r.X, Y: r.Y + r.H},
		{X: r.X, Y: r.Y + r.H/2},
	}
	for i, c := range corners {
		g.points[i].SetPosition(c)
	}
}

// Resize is a no-op: group handles are display only.
func (g *Group) Resize(p *Point, scenePos geom.Vec, snap45 bool) {
	g.mustOwn(p)
}

func (g *Group) IsValid() bool { return len(g.children) > 0 }

func (g *Group) BoundingRect() geom.Rect {
	if len(g.children) == 0 {
		return geom.Rect{}
	}
	r := SceneBounds(g.children[0])
	for _, child := range g.children[1:] {
		r = r.Union(SceneBounds(child))
	}
	return r
}

func (g *Group) Copy() Item {
	c := &Group{}
	c.itemBase = g.copyBase(c)
	c.children = CopyItems(g.children)
	return c
}

// Ungrouped returns flattened copies of the children with the group's
// position, rotation and flip folded into each child's own transform, so
// the copies occupy the same scene positions the group rendered them at.
// A flipped group mirrors the sense of child rotations.
func (g *Group) Ungrouped() []Item {
	out := CopyItems(g.children)
	for _, child := range out {
		child.SetPosition(g.MapToScene(child.Position()))
		if g.flipped {
			child.SetRotation(g.rot - child.Rotation())
			child.SetFlipped(!child.IsFlipped())
		} else {
			child.SetRotation(g.rot + child.Rotation())
		}
	}
	return out
}
