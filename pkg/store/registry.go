package store

import (
	"fmt"

	"github.com/jaallen85/jade-py-sub000/pkg/geom"
	"github.com/jaallen85/jade-py-sub000/pkg/scene"
)

// DecodeFunc reconstructs a typed item from its record. Decoders for
// container kinds use the registry to decode their children.
type DecodeFunc func(reg *Registry, rec *itemRecord) (scene.Item, error)

// Registry maps a shape tag to its decoder. Registration is explicit:
// NewRegistry installs the built-in kinds and callers may add their own.
type Registry struct {
	decoders map[string]DecodeFunc
}

// NewRegistry returns a registry with every built-in item kind installed.
func NewRegistry() *Registry {
	reg := &Registry{decoders: make(map[string]DecodeFunc)}
	reg.Register("line", decodeLine)
	reg.Register("curve", decodeCurve)
	reg.Register("polyline", decodePolyline)
	reg.Register("polygon", decodePolygon)
	reg.Register("rect", decodeRect)
	reg.Register("ellipse", decodeEllipse)
	reg.Register("path", decodePath)
	reg.Register("text", decodeText)
	reg.Register("group", decodeGroup)
	return reg
}

// Register installs or replaces the decoder for a shape tag.
func (reg *Registry) Register(kind string, fn DecodeFunc) {
	reg.decoders[kind] = fn
}

// Decode reconstructs one item, dispatching on the record's kind tag.
func (reg *Registry) Decode(rec *itemRecord) (scene.Item, error) {
	fn, ok := reg.decoders[rec.Kind]
	if !ok {
		return nil, &DecodeError{Kind: rec.Kind, Err: fmt.Errorf("unknown item kind")}
	}
	it, err := fn(reg, rec)
	if err != nil {
		return nil, err
	}
	applyBase(it, rec)
	return it, nil
}

// applyBase restores the shared transform, style and identity fields.
func applyBase(it scene.Item, rec *itemRecord) {
	if rec.ID != "" {
		it.SetID(rec.ID)
	}
	it.SetPosition(rec.Position)
	it.SetRotation(rec.Rotation)
	it.SetFlipped(rec.Flipped)
	*it.Style() = rec.Style
}

func decodeLine(_ *Registry, rec *itemRecord) (scene.Item, error) {
	if len(rec.Points) != 2 {
		return nil, &DecodeError{Kind: rec.Kind, Err: fmt.Errorf("want 2 points, got %d", len(rec.Points))}
	}
	return scene.NewLine(rec.Points[0], rec.Points[1]), nil
}

func decodeCurve(_ *Registry, rec *itemRecord) (scene.Item, error) {
	if len(rec.Points) != 4 {
		return nil, &DecodeError{Kind: rec.Kind, Err: fmt.Errorf("want 4 points, got %d", len(rec.Points))}
	}
	return scene.NewCurve(rec.Points[0], rec.Points[1], rec.Points[2], rec.Points[3]), nil
}

func decodePolyline(_ *Registry, rec *itemRecord) (scene.Item, error) {
	if len(rec.Points) < scene.MinPolylinePoints {
		return nil, &DecodeError{Kind: rec.Kind, Err: fmt.Errorf("want at least 2 points, got %d", len(rec.Points))}
	}
	return scene.NewPolyline(rec.Points), nil
}

func decodePolygon(_ *Registry, rec *itemRecord) (scene.Item, error) {
	if len(rec.Points) < scene.MinPolygonPoints {
		return nil, &DecodeError{Kind: rec.Kind, Err: fmt.Errorf("want at least 3 points, got %d", len(rec.Points))}
	}
	return scene.NewPolygon(rec.Points), nil
}

func decodeRect(_ *Registry, rec *itemRecord) (scene.Item, error) {
	if rec.Rect == nil {
		return nil, &DecodeError{Kind: rec.Kind, Err: fmt.Errorf("missing rect")}
	}
	it := scene.NewRectItem(geom.Rect{W: 1, H: 1})
	it.SetRect(*rec.Rect)
	return it, nil
}

func decodeEllipse(_ *Registry, rec *itemRecord) (scene.Item, error) {
	if rec.Rect == nil {
		return nil, &DecodeError{Kind: rec.Kind, Err: fmt.Errorf("missing rect")}
	}
	it := scene.NewEllipseItem(geom.Rect{W: 1, H: 1})
	it.SetRect(*rec.Rect)
	return it, nil
}

func decodePath(_ *Registry, rec *itemRecord) (scene.Item, error) {
	if rec.Rect == nil {
		return nil, &DecodeError{Kind: rec.Kind, Err: fmt.Errorf("missing rect")}
	}
	if len(rec.Path) == 0 {
		return nil, &DecodeError{Kind: rec.Kind, Err: fmt.Errorf("missing path template")}
	}
	it := scene.NewPathItem(rec.Name, rec.Path, geom.Rect{W: 1, H: 1})
	it.SetRect(*rec.Rect)
	return it, nil
}

func decodeText(_ *Registry, rec *itemRecord) (scene.Item, error) {
	if rec.Caption == "" {
		return nil, &DecodeError{Kind: rec.Kind, Err: fmt.Errorf("missing caption")}
	}
	it := scene.NewTextItem(rec.Position, rec.Caption)
	if rec.FontSize > 0 {
		it.SetFontSize(rec.FontSize)
	}
	return it, nil
}

func decodeGroup(reg *Registry, rec *itemRecord) (scene.Item, error) {
	if len(rec.Children) == 0 {
		return nil, &DecodeError{Kind: rec.Kind, Err: fmt.Errorf("group without children")}
	}
	children := make([]scene.Item, len(rec.Children))
	for i := range rec.Children {
		child, err := reg.Decode(&rec.Children[i])
		if err != nil {
			return nil, err
		}
		children[i] = child
	}
	return scene.NewGroupFromChildren(children), nil
}
