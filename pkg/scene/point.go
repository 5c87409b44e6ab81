package scene

import "github.com/jaallen85/jade-py-sub000/pkg/geom"

// Capability describes what a point can do. Control points are draggable
// handles, connection points accept links to points on other items, and
// free points may be silently relocated to keep a connection intact.
type Capability uint8

const (
	NoCapability Capability = 0
	Control      Capability = 1 << iota
	Connection
	Free
)

func (c Capability) String() string {
	switch c {
	case NoCapability:
		return "none"
	case Control:
		return "control"
	case Connection:
		return "connection"
	case Free:
		return "free"
	case Control | Connection:
		return "control+connection"
	case Control | Free:
		return "free-control"
	case Connection | Free:
		return "free-connection"
	case Control | Connection | Free:
		return "free-control+connection"
	default:
		return "capability(invalid)"
	}
}

// Point is a named anchor inside an item's local coordinate space. It is
// created and owned by its item; links reference points on other items and
// are always mutual.
type Point struct {
	item  Item
	pos   geom.Vec // local coordinates
	flags Capability
	links []*Point
}

// NewPoint creates a point at the given local position. The owning item
// attaches itself via addPoint.
func NewPoint(pos geom.Vec, flags Capability) *Point {
	return &Point{pos: pos, flags: flags}
}

// Item returns the owning item, or nil for a detached point.
func (p *Point) Item() Item { return p.item }

// Position returns the point's local position.
func (p *Point) Position() geom.Vec { return p.pos }

// SetPosition sets the point's local position.
func (p *Point) SetPosition(pos geom.Vec) { p.pos = pos }

// Capability returns the point's capability flags.
func (p *Point) Capability() Capability { return p.flags }

// SetCapability replaces the point's capability flags.
func (p *Point) SetCapability(c Capability) { p.flags = c }

// IsControl reports whether the point is a draggable handle.
func (p *Point) IsControl() bool { return p.flags&Control != 0 }

// IsConnection reports whether the point accepts links.
func (p *Point) IsConnection() bool { return p.flags&Connection != 0 }

// IsFree reports whether the point may be relocated to preserve a link.
func (p *Point) IsFree() bool { return p.flags&Free != 0 }

// ScenePosition returns the point's position mapped through the owning
// item's transform. A detached point maps to its local position.
func (p *Point) ScenePosition() geom.Vec {
	if p.item == nil {
		return p.pos
	}
	return p.item.MapToScene(p.pos)
}

// Links returns the points currently linked to p. The returned slice is
// the live backing store; callers must not mutate it.
func (p *Point) Links() []*Point { return p.links }

// AddLink records a one-way link to q. Adding an existing link is a no-op.
// Callers normally use Connect to keep links mutual.
func (p *Point) AddLink(q *Point) {
	if p.IsLinkedTo(q) {
		return
	}
	p.links = append(p.links, q)
}

// RemoveLink removes the one-way link to q, if present.
func (p *Point) RemoveLink(q *Point) {
	for i, l := range p.links {
		if l == q {
			p.links = append(p.links[:i], p.links[i+1:]...)
			return
		}
	}
}

// IsLinkedTo reports whether p links q.
func (p *Point) IsLinkedTo(q *Point) bool {
	for _, l := range p.links {
		if l == q {
			return true
		}
	}
	return false
}

// LinksToItem reports whether any of p's links targets a point on item.
func (p *Point) LinksToItem(item Item) bool {
	for _, l := range p.links {
		if l.item == item {
			return true
		}
	}
	return false
}

// ClearLinks severs every link of p, removing the reciprocal half on each
// linked point. Used when a point or its item leaves the model for good.
func (p *Point) ClearLinks() {
	for _, l := range p.links {
		l.RemoveLink(p)
	}
	p.links = nil
}

// Connect establishes the mutual link between a and b. Idempotent.
func Connect(a, b *Point) {
	a.AddLink(b)
	b.AddLink(a)
}

// Disconnect removes the mutual link between a and b. Idempotent.
func Disconnect(a, b *Point) {
	a.RemoveLink(b)
	b.RemoveLink(a)
}
