package scene

import "github.com/jaallen85/jade-py-sub000/pkg/geom"

// Page owns the live ordered item list and the current selection. It is
// the mutation surface commands act through; it holds no geometric or
// consistency logic of its own.
type Page struct {
	name      string
	items     []Item
	selection []Item
	grid      float64
}

// NewPage creates an empty page. A non-positive grid disables snapping.
func NewPage(name string, grid float64) *Page {
	return &Page{name: name, grid: grid}
}

// Name returns the page name.
func (pg *Page) Name() string { return pg.name }

// Grid returns the grid spacing; zero means snapping is off.
func (pg *Page) Grid() float64 { return pg.grid }

// SetGrid sets the grid spacing.
func (pg *Page) SetGrid(grid float64) { pg.grid = grid }

// SnapToGrid rounds a scene position to the nearest grid intersection.
// With the grid off the position is returned unchanged.
func (pg *Page) SnapToGrid(v geom.Vec) geom.Vec {
	if pg.grid <= 0 {
		return v
	}
	snap := func(x float64) float64 {
		n := x / pg.grid
		f := float64(int(n))
		if n-f >= 0.5 {
			f++
		} else if n-f < -0.5 {
			f--
		}
		return f * pg.grid
	}
	return geom.Vec{X: snap(v.X), Y: snap(v.Y)}
}

// Items returns the z-ordered item list. The slice is the live backing
// store; callers must not mutate it.
func (pg *Page) Items() []Item { return pg.items }

// Contains reports whether the item is on the page.
func (pg *Page) Contains(it Item) bool {
	return pg.IndexOf(it) >= 0
}

// IndexOf returns the z-order index of the item, or -1.
func (pg *Page) IndexOf(it Item) int {
	for i, x := range pg.items {
		if x == it {
			return i
		}
	}
	return -1
}

// FindItem returns the item with the given ID, or nil.
func (pg *Page) FindItem(id ID) Item {
	for _, it := range pg.items {
		if it.ID() == id {
			return it
		}
	}
	return nil
}

// AddItem appends an item at the top of the z-order.
func (pg *Page) AddItem(it Item) {
	pg.items = append(pg.items, it)
}

// InsertItem places an item at a specific z-order index.
func (pg *Page) InsertItem(index int, it Item) {
	if index < 0 || index > len(pg.items) {
		panic("scene: item insert index out of range")
	}
	pg.items = append(pg.items, nil)
	copy(pg.items[index+1:], pg.items[index:])
	pg.items[index] = it
}

// RemoveItem takes an item off the page and returns its former z-order
// index. Removing an item that is not on the page is a caller bug.
func (pg *Page) RemoveItem(it Item) int {
	i := pg.IndexOf(it)
	if i < 0 {
		panic("scene: item is not on this page")
	}
	pg.items = append(pg.items[:i], pg.items[i+1:]...)
	pg.deselect(it)
	return i
}

// SetItemOrder replaces the z-order with a permutation of the current
// item set.
func (pg *Page) SetItemOrder(order []Item) {
	if len(order) != len(pg.items) {
		panic("scene: item order length mismatch")
	}
	pg.items = append(pg.items[:0:0], order...)
}

// Selection returns the currently selected items.
func (pg *Page) Selection() []Item { return pg.selection }

// SetSelection replaces the selection.
func (pg *Page) SetSelection(items []Item) {
	pg.selection = append([]Item(nil), items...)
}

func (pg *Page) deselect(it Item) {
	for i, x := range pg.selection {
		if x == it {
			pg.selection = append(pg.selection[:i], pg.selection[i+1:]...)
			return
		}
	}
}
