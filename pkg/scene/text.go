package scene

import "github.com/jaallen85/jade-py-sub000/pkg/geom"

// TextItem is a caption placed at a scene position. It exposes a single
// connectable point at its center so free endpoints can attach to it.
type TextItem struct {
	itemBase
	caption  string
	fontSize float64
}

// DefaultFontSize is used when no explicit size is given.
const DefaultFontSize = 12

// NewTextItem creates a text item at the given scene position.
func NewTextItem(pos geom.Vec, caption string) *TextItem {
	t := &TextItem{itemBase: newItemBase(), caption: caption, fontSize: DefaultFontSize}
	t.pos = pos
	t.addPoint(t, NewPoint(geom.Vec{}, Connection))
	return t
}

func (t *TextItem) Kind() string { return "text" }

// Caption returns the displayed text.
func (t *TextItem) Caption() string { return t.caption }

// SetCaption replaces the displayed text.
func (t *TextItem) SetCaption(caption string) { t.caption = caption }

// FontSize returns the caption's point size.
func (t *TextItem) FontSize() float64 { return t.fontSize }

// SetFontSize sets the caption's point size.
func (t *TextItem) SetFontSize(size float64) { t.fontSize = size }

func (t *TextItem) Resize(p *Point, scenePos geom.Vec, snap45 bool) {
	t.resizeDefault(p, scenePos)
}

// IsValid reports whether the caption is non-empty.
func (t *TextItem) IsValid() bool { return t.caption != "" }

// BoundingRect estimates the caption extent from the glyph count. Exact
// metrics belong to the rendering collaborator, not this core.
func (t *TextItem) BoundingRect() geom.Rect {
	w := t.fontSize * 0.6 * float64(len(t.caption))
	h := t.fontSize * 1.2
	return geom.Rect{X: -w / 2, Y: -h / 2, W: w, H: h}
}

func (t *TextItem) Copy() Item {
	c := &TextItem{caption: t.caption, fontSize: t.fontSize}
	c.itemBase = t.copyBase(c)
	return c
}
