package command

import (
	"fmt"

	"github.com/jaallen85/jade-py-sub000/pkg/geom"
	"github.com/jaallen85/jade-py-sub000/pkg/scene"
)

// moveItems relocates a set of items to new scene positions.
type moveItems struct {
	compound
	items  []scene.Item
	oldPos []geom.Vec
	newPos []geom.Vec
}

func newMoveItems(items []scene.Item, delta geom.Vec) *moveItems {
	c := &moveItems{
		compound: compound{label: fmt.Sprintf("move %d item(s)", len(items))},
		items:    items,
	}
	for _, it := range items {
		c.oldPos = append(c.oldPos, it.Position())
		c.newPos = append(c.newPos, it.Position().Add(delta))
	}
	return c
}

func (c *moveItems) apply() {
	for i, it := range c.items {
		it.Move(c.newPos[i])
	}
}

func (c *moveItems) revert() {
	for i, it := range c.items {
		it.Move(c.oldPos[i])
	}
}

// resizePoint relocates one control point, letting the owning shape
// re-derive dependent geometry. Old and new positions are scene-space so
// the inverse resize restores the exact prior state regardless of any
// anchor re-basing the shape performed.
type resizePoint struct {
	compound
	point  *scene.Point
	oldPos geom.Vec
	newPos geom.Vec
	snap45 bool
}

func newResizePoint(p *scene.Point, scenePos geom.Vec, snap45 bool) *resizePoint {
	return &resizePoint{
		compound: compound{label: "resize item"},
		point:    p,
		oldPos:   p.ScenePosition(),
		newPos:   scenePos,
		snap45:   snap45,
	}
}

func (c *resizePoint) apply() {
	c.point.Item().Resize(c.point, c.newPos, c.snap45)
}

func (c *resizePoint) revert() {
	c.point.Item().Resize(c.point, c.oldPos, false)
}

// rotateItems advances or retreats the quadrant rotation of a set of
// items about a shared scene-space pivot.
type rotateItems struct {
	compound
	items  []scene.Item
	center geom.Vec
	back   bool
}

func newRotateItems(items []scene.Item, center geom.Vec, back bool) *rotateItems {
	label := "rotate %d item(s)"
	if back {
		label = "rotate back %d item(s)"
	}
	return &rotateItems{
		compound: compound{label: fmt.Sprintf(label, len(items))},
		items:    items,
		center:   center,
		back:     back,
	}
}

func (c *rotateItems) apply() {
	for _, it := range c.items {
		if c.back {
			it.RotateBack(c.center)
		} else {
			it.Rotate(c.center)
		}
	}
}

func (c *rotateItems) revert() {
	for _, it := range c.items {
		if c.back {
			it.Rotate(c.center)
		} else {
			it.RotateBack(c.center)
		}
	}
}

// flipItems mirrors a set of items horizontally about a shared pivot.
// Flip is its own inverse.
type flipItems struct {
	compound
	items  []scene.Item
	center geom.Vec
}

func newFlipItems(items []scene.Item, center geom.Vec) *flipItems {
	return &flipItems{
		compound: compound{label: fmt.Sprintf("flip %d item(s)", len(items))},
		items:    items,
		center:   center,
	}
}

func (c *flipItems) apply() {
	for _, it := range c.items {
		it.Flip(c.center)
	}
}

func (c *flipItems) revert() { c.apply() }

// addItems places items at the top of the page's z-order.
type addItems struct {
	compound
	page  *scene.Page
	items []scene.Item
}

func newAddItems(page *scene.Page, items []scene.Item) *addItems {
	return &addItems{
		compound: compound{label: fmt.Sprintf("add %d item(s)", len(items))},
		page:     page,
		items:    items,
	}
}

func (c *addItems) apply() {
	for _, it := range c.items {
		c.page.AddItem(it)
	}
}

func (c *addItems) revert() {
	for i := len(c.items) - 1; i >= 0; i-- {
		c.page.RemoveItem(c.items[i])
	}
}

// removeItems takes items off the page, remembering their z-order
// indices so undo restores the exact stacking.
type removeItems struct {
	compound
	page    *scene.Page
	items   []scene.Item
	indices []int
}

func newRemoveItems(page *scene.Page, items []scene.Item) *removeItems {
	return &removeItems{
		compound: compound{label: fmt.Sprintf("remove %d item(s)", len(items))},
		page:     page,
		items:    items,
	}
}

func (c *removeItems) apply() {
	c.indices = c.indices[:0]
	for _, it := range c.items {
		c.indices = append(c.indices, c.page.RemoveItem(it))
	}
}

func (c *removeItems) revert() {
	for i := len(c.items) - 1; i >= 0; i-- {
		c.page.InsertItem(c.indices[i], c.items[i])
	}
}

// reorderItems replaces the page's z-order and records the selection the
// edit acted on, so undo and redo both restore it.
type reorderItems struct {
	compound
	page      *scene.Page
	oldOrder  []scene.Item
	newOrder  []scene.Item
	selection []scene.Item
}

func newReorderItems(page *scene.Page, oldOrder, newOrder, selection []scene.Item, label string) *reorderItems {
	return &reorderItems{
		compound:  compound{label: label},
		page:      page,
		oldOrder:  oldOrder,
		newOrder:  newOrder,
		selection: selection,
	}
}

func (c *reorderItems) apply() {
	c.page.SetItemOrder(c.newOrder)
	c.page.SetSelection(c.selection)
}

func (c *reorderItems) revert() {
	c.page.SetItemOrder(c.oldOrder)
	c.page.SetSelection(c.selection)
}

// insertPoint adds a vertex to a polyline or polygon.
type insertPoint struct {
	compound
	item  scene.PointEditor
	point *scene.Point
	index int
}

func newInsertPoint(item scene.PointEditor, p *scene.Point, index int) *insertPoint {
	return &insertPoint{
		compound: compound{label: "insert point"},
		item:     item,
		point:    p,
		index:    index,
	}
}

func (c *insertPoint) apply()  { c.item.InsertPoint(c.index, c.point) }
func (c *insertPoint) revert() { c.item.RemovePoint(c.point) }

// removePoint removes a vertex from a polyline or polygon.
type removePoint struct {
	compound
	item  scene.PointEditor
	point *scene.Point
	index int
}

func newRemovePoint(item scene.PointEditor, p *scene.Point) *removePoint {
	return &removePoint{
		compound: compound{label: "remove point"},
		item:     item,
		point:    p,
	}
}

func (c *removePoint) apply()  { c.index = c.item.RemovePoint(c.point) }
func (c *removePoint) revert() { c.item.InsertPoint(c.index, c.point) }

// connectPoints establishes the mutual link between two points.
type connectPoints struct {
	compound
	a, b *scene.Point
}

func newConnectPoints(a, b *scene.Point) *connectPoints {
	return &connectPoints{compound: compound{label: "connect points"}, a: a, b: b}
}

func (c *connectPoints) apply()  { scene.Connect(c.a, c.b) }
func (c *connectPoints) revert() { scene.Disconnect(c.a, c.b) }

// disconnectPoints severs the mutual link between two points.
type disconnectPoints struct {
	compound
	a, b *scene.Point
}

func newDisconnectPoints(a, b *scene.Point) *disconnectPoints {
	return &disconnectPoints{compound: compound{label: "disconnect points"}, a: a, b: b}
}

func (c *disconnectPoints) apply()  { scene.Disconnect(c.a, c.b) }
func (c *disconnectPoints) revert() { scene.Connect(c.a, c.b) }
