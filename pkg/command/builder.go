package command

import (
	"github.com/jaallen85/jade-py-sub000/pkg/geom"
	"github.com/jaallen85/jade-py-sub000/pkg/scene"
)

// ReorderOp selects a z-order operation.
type ReorderOp int

const (
	BringForward ReorderOp = iota
	SendBackward
	BringToFront
	SendToBack
)

func (op ReorderOp) String() string {
	switch op {
	case BringForward:
		return "bring forward"
	case SendBackward:
		return "send backward"
	case BringToFront:
		return "bring to front"
	case SendToBack:
		return "send to back"
	default:
		return "reorder"
	}
}

// Builder converts primitive user intents into self-consistent, cold
// command trees. For every mutating intent it applies the primitive edit
// for real, observes which connections must break or follow, appends the
// compensating child commands (applying each as it is discovered), and
// finally undoes the whole tree so the returned command has zero net
// effect until the undo stack replays it.
//
// Intents that would change nothing return nil, never a vacuous command.
// Passing items or points that violate the caller contract (an item not
// on the page, a foreign point) panics.
type Builder struct {
	page *scene.Page
}

// NewBuilder creates a builder mutating through the given page.
func NewBuilder(page *scene.Page) *Builder {
	return &Builder{page: page}
}

// Page returns the page collaborator this builder mutates through.
func (b *Builder) Page() *scene.Page { return b.page }

// Move shifts items by a scene-space delta, maintaining or breaking
// point connections as the shape of the edit demands.
func (b *Builder) Move(items []scene.Item, delta geom.Vec) Command {
	if len(items) == 0 || delta.IsZero() {
		return nil
	}
	b.mustBeOnPage(items)
	cmd := newMoveItems(items, delta)
	Redo(cmd)
	b.maintainItems(cmd, items)
	Undo(cmd)
	return cmd
}

// Resize relocates one control point. Free linked points follow the
// resize through compensating child resizes; non-free diverging partners
// are disconnected. Resizing a non-control point (a line midpoint, a
// group display handle) is a no-op.
func (b *Builder) Resize(p *scene.Point, scenePos geom.Vec, snap45 bool) Command {
	if p.Item() == nil {
		panic("command: resize of a detached point")
	}
	b.mustBeOnPage([]scene.Item{p.Item()})
	if !p.IsControl() {
		return nil
	}
	if geom.Coincident(p.ScenePosition(), scenePos) && !snap45 {
		return nil
	}
	before := p.ScenePosition()
	visited := map[*scene.Point]bool{}
	cmd := b.resizeHot(p, scenePos, snap45, visited)
	// Snapping can land the point exactly where it already was; a command
	// that changed nothing must not reach the undo stack.
	if len(cmd.Children()) == 0 && geom.Coincident(p.ScenePosition(), before) {
		Undo(cmd)
		return nil
	}
	Undo(cmd)
	return cmd
}

// Rotate turns items one quadrant step about the pivot.
func (b *Builder) Rotate(items []scene.Item, center geom.Vec) Command {
	return b.rotate(items, center, false)
}

// RotateBack turns items one quadrant step back about the pivot.
func (b *Builder) RotateBack(items []scene.Item, center geom.Vec) Command {
	return b.rotate(items, center, true)
}

func (b *Builder) rotate(items []scene.Item, center geom.Vec, back bool) Command {
	if len(items) == 0 {
		return nil
	}
	b.mustBeOnPage(items)
	cmd := newRotateItems(items, center, back)
	Redo(cmd)
	b.maintainItems(cmd, items)
	Undo(cmd)
	return cmd
}

// Flip mirrors items horizontally about the pivot's X.
func (b *Builder) Flip(items []scene.Item, center geom.Vec) Command {
	if len(items) == 0 {
		return nil
	}
	b.mustBeOnPage(items)
	cmd := newFlipItems(items, center)
	Redo(cmd)
	b.maintainItems(cmd, items)
	Undo(cmd)
	return cmd
}

// Place finalizes the insertion of new items into the model. Invalid
// items are silently discarded; newly coincident connectable points are
// linked. Returns nil when nothing valid remains to place.
func (b *Builder) Place(items []scene.Item) Command {
	var valid []scene.Item
	for _, it := range items {
		if b.page.Contains(it) {
			panic("command: item is already placed")
		}
		if it.IsValid() {
			valid = append(valid, it)
		}
	}
	if len(valid) == 0 {
		return nil
	}
	cmd := b.placeHot(valid)
	Undo(cmd)
	return cmd
}

// placeHot adds items and connects coincident points, leaving the tree
// applied.
func (b *Builder) placeHot(items []scene.Item) Command {
	cmd := newAddItems(b.page, items)
	Redo(cmd)
	ix := scene.NewConnectIndex(b.page.Items())
	for _, pair := range ix.ConnectablePairs(items) {
		child := newConnectPoints(pair[0], pair[1])
		Redo(child)
		cmd.addChild(child)
	}
	return cmd
}

// Remove deletes items from the page, first disconnecting every link
// whose other endpoint survives so no dangling reference remains.
func (b *Builder) Remove(items []scene.Item) Command {
	var present []scene.Item
	for _, it := range items {
		if b.page.Contains(it) {
			present = append(present, it)
		}
	}
	if len(present) == 0 {
		return nil
	}
	cmd := b.removeHot(present)
	Undo(cmd)
	return cmd
}

// removeHot removes items and severs boundary-crossing links, leaving
// the tree applied.
func (b *Builder) removeHot(items []scene.Item) Command {
	// Mark the whole removed subtree so links between two children of a
	// removed group are not mistaken for boundary crossings.
	removed := make(map[scene.Item]bool, len(items))
	var mark func(scene.Item)
	mark = func(it scene.Item) {
		removed[it] = true
		if g, ok := it.(*scene.Group); ok {
			for _, child := range g.Children() {
				mark(child)
			}
		}
	}
	for _, it := range items {
		mark(it)
	}
	cmd := newRemoveItems(b.page, items)
	Redo(cmd)
	for _, it := range items {
		for _, p := range scene.AllPoints(it) {
			for _, target := range append([]*scene.Point(nil), p.Links()...) {
				if target.Item() != nil && removed[target.Item()] {
					continue
				}
				child := newDisconnectPoints(p, target)
				Redo(child)
				cmd.addChild(child)
			}
		}
	}
	return cmd
}

// Group replaces items with a single group of re-parented copies. Links
// between the grouped items survive inside the group; links to outside
// items are severed by the removal half.
func (b *Builder) Group(items []scene.Item) Command {
	if len(items) < 2 {
		return nil
	}
	b.mustBeOnPage(items)

	grp := scene.NewGroup(items)
	wrapper := NewComposite("group items")
	wrapper.AddChild(b.removeHot(items))
	wrapper.AddChild(b.placeHot([]scene.Item{grp}))
	Undo(wrapper)
	return wrapper
}

// Ungroup replaces a group with flattened copies of its children, the
// group's transform folded into each. Coincident connectable points
// among the emerging items and the rest of the page are linked.
func (b *Builder) Ungroup(g *scene.Group) Command {
	b.mustBeOnPage([]scene.Item{g})

	flattened := g.Ungrouped()
	wrapper := NewComposite("ungroup items")
	wrapper.AddChild(b.removeHot([]scene.Item{g}))
	wrapper.AddChild(b.placeHot(flattened))
	Undo(wrapper)
	return wrapper
}

// InsertPoint adds a vertex to a polyline or polygon on the edge nearest
// the given scene position. Items without editable points yield nil.
func (b *Builder) InsertPoint(it scene.Item, scenePos geom.Vec) Command {
	b.mustBeOnPage([]scene.Item{it})
	pe, ok := it.(scene.PointEditor)
	if !ok || !pe.CanInsertPoints() {
		return nil
	}
	index := pe.InsertIndex(scenePos)
	cmd := newInsertPoint(pe, pe.NewVertex(scenePos), index)
	Redo(cmd)
	Undo(cmd)
	return cmd
}

// RemovePoint removes the removable vertex nearest the given scene
// position, disconnecting any links the vertex held. Yields nil when the
// item has no removable vertex.
func (b *Builder) RemovePoint(it scene.Item, scenePos geom.Vec) Command {
	b.mustBeOnPage([]scene.Item{it})
	pe, ok := it.(scene.PointEditor)
	if !ok || !pe.CanRemovePoints() {
		return nil
	}
	p := pe.RemovableVertexNear(scenePos)
	if p == nil {
		return nil
	}
	cmd := newRemovePoint(pe, p)
	Redo(cmd)
	for _, target := range append([]*scene.Point(nil), p.Links()...) {
		child := newDisconnectPoints(p, target)
		Redo(child)
		cmd.addChild(child)
	}
	Undo(cmd)
	return cmd
}

// Reorder moves the selected items within the page's z-order. The
// command restores the acting selection on both undo and redo. Returns
// nil when the order would not change.
func (b *Builder) Reorder(selection []scene.Item, op ReorderOp) Command {
	if len(selection) == 0 {
		return nil
	}
	b.mustBeOnPage(selection)

	selected := make(map[scene.Item]bool, len(selection))
	for _, it := range selection {
		selected[it] = true
	}
	oldOrder := append([]scene.Item(nil), b.page.Items()...)
	newOrder := reorder(oldOrder, selected, op)

	same := true
	for i := range oldOrder {
		if oldOrder[i] != newOrder[i] {
			same = false
			break
		}
	}
	if same {
		return nil
	}
	return newReorderItems(b.page, oldOrder, newOrder, append([]scene.Item(nil), selection...), op.String())
}

// Connect links two connectable points on different items. If the points
// do not coincide and one of them is free, the free point is dragged to
// the other through a compensating resize. Already linked pairs,
// ineligible pairs and diverged pairs with no free point to drag yield
// nil: a link between two fixed points that do not coincide would break
// on the next consistency pass.
func (b *Builder) Connect(a, p *scene.Point) Command {
	if a.Item() == nil || p.Item() == nil {
		panic("command: connect of a detached point")
	}
	if a.Item() == p.Item() || !a.IsConnection() || !p.IsConnection() || a.IsLinkedTo(p) {
		return nil
	}
	coincident := geom.Coincident(a.ScenePosition(), p.ScenePosition())
	if !coincident && !a.IsFree() && !p.IsFree() {
		return nil
	}
	cmd := newConnectPoints(a, p)
	Redo(cmd)
	if !coincident {
		free := a
		other := p
		if !free.IsFree() {
			free, other = p, a
		}
		visited := map[*scene.Point]bool{other: true}
		cmd.addChild(b.resizeHot(free, other.ScenePosition(), false, visited))
	}
	Undo(cmd)
	return cmd
}

// Disconnect severs the link between two points. Unlinked pairs yield
// nil.
func (b *Builder) Disconnect(a, p *scene.Point) Command {
	if !a.IsLinkedTo(p) {
		return nil
	}
	return newDisconnectPoints(a, p)
}

// resizeHot applies a resize and recursively appends the compensating
// children it provokes, leaving the tree applied. Every point of the
// resized item acts as an initiator for the per-link maintain-or-break
// decision; visited points are never resized twice, which both lets a
// chain of free points follow a drag in one pass and terminates cycles.
func (b *Builder) resizeHot(p *scene.Point, scenePos geom.Vec, snap45 bool, visited map[*scene.Point]bool) Command {
	cmd := newResizePoint(p, scenePos, snap45)
	Redo(cmd)
	visited[p] = true

	for _, q := range p.Item().Points() {
		for _, target := range append([]*scene.Point(nil), q.Links()...) {
			if visited[target] {
				continue
			}
			if scene.ShouldDisconnect(q, target) {
				child := newDisconnectPoints(q, target)
				Redo(child)
				cmd.addChild(child)
				continue
			}
			if target.IsFree() && !geom.Coincident(q.ScenePosition(), target.ScenePosition()) {
				cmd.addChild(b.resizeHot(target, q.ScenePosition(), false, visited))
			}
		}
	}
	return cmd
}

// maintainItems walks every point of the edited items and, per link,
// decides whether the connection breaks or the linked free point follows.
// Links between two edited items are left alone: they moved together.
func (b *Builder) maintainItems(parent interface{ addChild(Command) }, items []scene.Item) {
	edited := make(map[scene.Item]bool, len(items))
	visited := map[*scene.Point]bool{}
	for _, it := range items {
		edited[it] = true
		for _, p := range it.Points() {
			visited[p] = true
		}
	}
	for _, it := range items {
		for _, p := range it.Points() {
			for _, target := range append([]*scene.Point(nil), p.Links()...) {
				if target.Item() != nil && edited[target.Item()] {
					continue
				}
				if visited[target] {
					continue
				}
				if scene.ShouldDisconnect(p, target) {
					child := newDisconnectPoints(p, target)
					Redo(child)
					parent.addChild(child)
					continue
				}
				if target.IsFree() && !geom.Coincident(p.ScenePosition(), target.ScenePosition()) {
					parent.addChild(b.resizeHot(target, p.ScenePosition(), false, visited))
				}
			}
		}
	}
}

// mustBeOnPage panics unless every item is on the builder's page.
// Mutating an absent item is a caller bug.
func (b *Builder) mustBeOnPage(items []scene.Item) {
	for _, it := range items {
		if !b.page.Contains(it) {
			panic("command: item is not on the page")
		}
	}
}

// reorder computes the new z-order for the given operation without
// touching the page.
func reorder(order []scene.Item, selected map[scene.Item]bool, op ReorderOp) []scene.Item {
	out := append([]scene.Item(nil), order...)
	switch op {
	case BringForward:
		for i := len(out) - 2; i >= 0; i-- {
			if selected[out[i]] && !selected[out[i+1]] {
				out[i], out[i+1] = out[i+1], out[i]
			}
		}
	case SendBackward:
		for i := 1; i < len(out); i++ {
			if selected[out[i]] && !selected[out[i-1]] {
				out[i], out[i-1] = out[i-1], out[i]
			}
		}
	case BringToFront:
		var rest, sel []scene.Item
		for _, it := range out {
			if selected[it] {
				sel = append(sel, it)
			} else {
				rest = append(rest, it)
			}
		}
		out = append(rest, sel...)
	case SendToBack:
		var rest, sel []scene.Item
		for _, it := range out {
			if selected[it] {
				sel = append(sel, it)
			} else {
				rest = append(rest, it)
			}
		}
		out = append(sel, rest...)
	}
	return out
}
