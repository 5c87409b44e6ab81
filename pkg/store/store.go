// Package store persists drawings as JSON. Connections are not written
// out; loading re-runs the coincidence scan so link discovery uses the
// same predicate as live editing.
package store

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jaallen85/jade-py-sub000/pkg/geom"
	"github.com/jaallen85/jade-py-sub000/pkg/scene"
)

// DecodeError reports a malformed item record.
type DecodeError struct {
	Kind string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("store: decoding %q item: %v", e.Kind, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// drawing is the on-disk document shape.
type drawing struct {
	Name  string       `json:"name"`
	Grid  float64      `json:"grid,omitempty"`
	Items []itemRecord `json:"items"`
}

// itemRecord is the on-disk form of one item. Kind selects the decoder;
// the remaining fields are read per kind. Point capabilities are not
// stored, they are implied by the kind and the point index.
type itemRecord struct {
	Kind     string       `json:"kind"`
	ID       scene.ID     `json:"id"`
	Position geom.Vec     `json:"position"`
	Rotation int          `json:"rotation,omitempty"`
	Flipped  bool         `json:"flipped,omitempty"`
	Style    scene.Style  `json:"style"`
	Points   []geom.Vec   `json:"points,omitempty"`
	Rect     *geom.Rect   `json:"rect,omitempty"`
	Name     string       `json:"name,omitempty"`
	Path     []geom.Vec   `json:"path,omitempty"`
	Caption  string       `json:"caption,omitempty"`
	FontSize float64      `json:"font_size,omitempty"`
	Children []itemRecord `json:"children,omitempty"`
}

// Save writes the page as indented JSON.
func Save(w io.Writer, page *scene.Page) error {
	doc := drawing{Name: page.Name(), Grid: page.Grid()}
	for _, it := range page.Items() {
		rec, err := encodeItem(it)
		if err != nil {
			return err
		}
		doc.Items = append(doc.Items, rec)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("store: encoding drawing: %w", err)
	}
	return nil
}

// SaveFile writes the page to a file.
func SaveFile(path string, page *scene.Page) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("store: %w", err)
	}
	defer f.Close()
	if err := Save(f, page); err != nil {
		return err
	}
	return f.Close()
}

// Load reads a drawing and re-establishes connections with the live
// coincidence scan.
func Load(r io.Reader, reg *Registry) (*scene.Page, error) {
	var doc drawing
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("store: decoding drawing: %w", err)
	}
	page := scene.NewPage(doc.Name, doc.Grid)
	for i := range doc.Items {
		it, err := reg.Decode(&doc.Items[i])
		if err != nil {
			return nil, err
		}
		page.AddItem(it)
	}
	scene.ReconnectAll(page.Items())
	return page, nil
}

// LoadFile reads a drawing from a file.
func LoadFile(path string, reg *Registry) (*scene.Page, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	defer f.Close()
	return Load(f, reg)
}

func encodeItem(it scene.Item) (itemRecord, error) {
	rec := itemRecord{
		Kind:     it.Kind(),
		ID:       it.ID(),
		Position: it.Position(),
		Rotation: it.Rotation(),
		Flipped:  it.IsFlipped(),
		Style:    *it.Style(),
	}

	switch v := it.(type) {
	case *scene.Line, *scene.Curve, *scene.Polyline, *scene.Polygon:
		for _, p := range it.Points() {
			rec.Points = append(rec.Points, p.Position())
		}
		if _, ok := it.(*scene.Line); ok {
			// The midpoint is derived, only the endpoints are stored.
			rec.Points = []geom.Vec{rec.Points[scene.LineStart], rec.Points[scene.LineEnd]}
		}
	case *scene.RectItem:
		r := v.Rect()
		rec.Rect = &r
	case *scene.EllipseItem:
		r := v.Rect()
		rec.Rect = &r
	case *scene.PathItem:
		r := v.Rect()
		rec.Rect = &r
		rec.Name = v.Name()
		rec.Path = v.Path()
	case *scene.TextItem:
		rec.Caption = v.Caption()
		rec.FontSize = v.FontSize()
	case *scene.Group:
		for _, child := range v.Children() {
			childRec, err := encodeItem(child)
			if err != nil {
				return itemRecord{}, err
			}
			rec.Children = append(rec.Children, childRec)
		}
	default:
		return itemRecord{}, &DecodeError{Kind: it.Kind(), Err: fmt.Errorf("unknown item type %T", it)}
	}
	return rec, nil
}
