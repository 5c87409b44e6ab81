// Package export renders drawings to SVG. It reads only the public
// geometry and style accessors of the scene package.
package export

import (
	"fmt"
	"io"
	"os"

	svg "github.com/ajstarks/svgo/float"

	"github.com/jaallen85/jade-py-sub000/pkg/geom"
	"github.com/jaallen85/jade-py-sub000/pkg/scene"
)

// Margin is the blank border around the drawing's bounds, in scene units.
const Margin = 10.0

// WriteSVG renders every item of the page to w.
func WriteSVG(w io.Writer, page *scene.Page) error {
	bounds := pageBounds(page)
	canvas := svg.New(w)
	canvas.Startview(bounds.W, bounds.H, bounds.X, bounds.Y, bounds.W, bounds.H)
	for _, it := range page.Items() {
		writeItem(canvas, it)
	}
	canvas.End()
	return nil
}

// WriteFile renders the page to an SVG file.
func WriteFile(path string, page *scene.Page) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	defer f.Close()
	if err := WriteSVG(f, page); err != nil {
		return err
	}
	return f.Close()
}

func pageBounds(page *scene.Page) geom.Rect {
	items := page.Items()
	if len(items) == 0 {
		return geom.Rect{X: -Margin, Y: -Margin, W: 2 * Margin, H: 2 * Margin}
	}
	bounds := scene.SceneBounds(items[0])
	for _, it := range items[1:] {
		bounds = bounds.Union(scene.SceneBounds(it))
	}
	return geom.Rect{
		X: bounds.X - Margin,
		Y: bounds.Y - Margin,
		W: bounds.W + 2*Margin,
		H: bounds.H + 2*Margin,
	}
}

// writeItem emits one item inside a transform group, so the shape can be
// drawn in its local coordinates.
func writeItem(canvas *svg.SVG, it scene.Item) {
	canvas.Gtransform(transformAttr(it))
	defer canvas.Gend()

	style := styleAttr(it.Style())
	switch v := it.(type) {
	case *scene.Line:
		a := v.StartPoint().Position()
		b := v.EndPoint().Position()
		canvas.Line(a.X, a.Y, b.X, b.Y, style)
	case *scene.Curve:
		pts := v.Points()
		d := fmt.Sprintf("M %g %g C %g %g, %g %g, %g %g",
			pts[scene.CurveStart].Position().X, pts[scene.CurveStart].Position().Y,
			pts[scene.CurveStartCtrl].Position().X, pts[scene.CurveStartCtrl].Position().Y,
			pts[scene.CurveEndCtrl].Position().X, pts[scene.CurveEndCtrl].Position().Y,
			pts[scene.CurveEnd].Position().X, pts[scene.CurveEnd].Position().Y)
		canvas.Path(d, style)
	case *scene.Polyline:
		xs, ys := pointCoords(v.Points())
		canvas.Polyline(xs, ys, style)
	case *scene.Polygon:
		xs, ys := pointCoords(v.Points())
		canvas.Polygon(xs, ys, style)
	case *scene.RectItem:
		r := v.Rect().Normalized()
		canvas.Rect(r.X, r.Y, r.W, r.H, style)
	case *scene.EllipseItem:
		r := v.Rect().Normalized()
		canvas.Ellipse(r.X+r.W/2, r.Y+r.H/2, r.W/2, r.H/2, style)
	case *scene.PathItem:
		xs, ys := vecCoords(v.LocalPath())
		canvas.Polyline(xs, ys, style)
	case *scene.TextItem:
		canvas.Text(0, 0, v.Caption(),
			fmt.Sprintf("%s;font-size:%gpx;text-anchor:middle", style, v.FontSize()))
	case *scene.Group:
		for _, child := range v.Children() {
			writeItem(canvas, child)
		}
	}
}

// transformAttr renders the item's position, quadrant rotation and flip
// as an SVG transform chain, outermost first.
func transformAttr(it scene.Item) string {
	attr := fmt.Sprintf("translate(%g,%g)", it.Position().X, it.Position().Y)
	if rot := it.Rotation(); rot != 0 {
		attr += fmt.Sprintf(" rotate(%d)", 90*rot)
	}
	if it.IsFlipped() {
		attr += " scale(-1,1)"
	}
	return attr
}

func styleAttr(s *scene.Style) string {
	return fmt.Sprintf("stroke:%s;stroke-width:%g;fill:%s", s.StrokeColor, s.StrokeWidth, s.FillColor)
}

func pointCoords(points []*scene.Point) (xs, ys []float64) {
	for _, p := range points {
		xs = append(xs, p.Position().X)
		ys = append(ys, p.Position().Y)
	}
	return xs, ys
}

func vecCoords(vecs []geom.Vec) (xs, ys []float64) {
	for _, v := range vecs {
		xs = append(xs, v.X)
		ys = append(ys, v.Y)
	}
	return xs, ys
}
