package script

import (
	"fmt"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/jaallen85/jade-py-sub000/pkg/command"
	"github.com/jaallen85/jade-py-sub000/pkg/export"
	"github.com/jaallen85/jade-py-sub000/pkg/geom"
	"github.com/jaallen85/jade-py-sub000/pkg/scene"
	"github.com/jaallen85/jade-py-sub000/pkg/store"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms drawing-script source before passing it to
// zygomys. It performs three transformations:
//
//  1. Lisp line comments: ; comment -> // comment (zygomys uses //).
//
//  2. Keyword conversion: :keyword -> "__kw_keyword" (string literal),
//     avoiding global symbol registration for every keyword name.
//
//  3. Kebab-case to underscore: place-line -> place_line. zygomys reads
//     hyphens as subtraction, so identifiers are converted outside of
//     strings and comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, b[i+1:j]...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isLetter(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

// ---------------------------------------------------------------------------
// Custom Sexp types
// ---------------------------------------------------------------------------

// sexpItemRef wraps an item ID so scripted edits can reference items
// created earlier in the script.
type sexpItemRef struct {
	id   scene.ID
	kind string
}

func (r *sexpItemRef) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(item %s %s)", r.kind, r.id)
}
func (r *sexpItemRef) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword and value helpers
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString accepts a preprocessed keyword (__kw_front) or a plain
// string ("front") and returns the bare name.
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], nil
	}
	return str.S, nil
}

// toVecs reads an even run of numbers as coordinate pairs.
func toVecs(args []zygo.Sexp) ([]geom.Vec, error) {
	if len(args)%2 != 0 {
		return nil, fmt.Errorf("expected coordinate pairs, got %d numbers", len(args))
	}
	out := make([]geom.Vec, 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		x, err := toFloat64(args[i])
		if err != nil {
			return nil, err
		}
		y, err := toFloat64(args[i+1])
		if err != nil {
			return nil, err
		}
		out = append(out, geom.Vec{X: x, Y: y})
	}
	return out, nil
}

// pathTemplates are the unit-square polylines place-path can stamp out.
var pathTemplates = map[string][]geom.Vec{
	"triangle": {{X: 0, Y: 1}, {X: 0.5, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}},
	"diamond":  {{X: 0.5, Y: 0}, {X: 1, Y: 0.5}, {X: 0.5, Y: 1}, {X: 0, Y: 0.5}, {X: 0.5, Y: 0}},
	"cross":    {{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 0.5, Y: 0.5}, {X: 1, Y: 0}, {X: 0, Y: 1}},
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the drawing DSL into a zygomys environment.
// Every mutating builtin constructs a cold command through the builder
// and pushes it on the session's undo stack. Source must be run through
// preprocessSource first so keywords and kebab-case names are readable.
func registerBuiltins(env *zygo.Zlisp, s *Session) {
	b := command.NewBuilder(s.Page)

	resolve := func(sx zygo.Sexp) (scene.Item, error) {
		ref, ok := sx.(*sexpItemRef)
		if !ok {
			return nil, fmt.Errorf("expected an item reference, got %T (%s)", sx, sx.SexpString(nil))
		}
		it := s.Page.FindItem(ref.id)
		if it == nil {
			return nil, fmt.Errorf("item %s is not on the page (removed, grouped or never placed)", ref.id)
		}
		return it, nil
	}

	// place pushes a placement command and returns the item's ref.
	place := func(name string, it scene.Item) (zygo.Sexp, error) {
		cmd := b.Place([]scene.Item{it})
		if cmd == nil {
			return zygo.SexpNull, fmt.Errorf("%s: degenerate geometry", name)
		}
		s.Stack.Push(cmd)
		return &sexpItemRef{id: it.ID(), kind: it.Kind()}, nil
	}

	snap := s.Page.SnapToGrid

	// -----------------------------------------------------------------------
	// (place-line x1 y1 x2 y2)
	// -----------------------------------------------------------------------
	env.AddFunction("place_line", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		vs, err := toVecs(args)
		if err != nil || len(vs) != 2 {
			return zygo.SexpNull, fmt.Errorf("place-line: want x1 y1 x2 y2: %v", err)
		}
		return place("place-line", scene.NewLine(snap(vs[0]), snap(vs[1])))
	})

	// -----------------------------------------------------------------------
	// (place-curve x1 y1 cx1 cy1 cx2 cy2 x2 y2)
	// -----------------------------------------------------------------------
	env.AddFunction("place_curve", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		vs, err := toVecs(args)
		if err != nil || len(vs) != 4 {
			return zygo.SexpNull, fmt.Errorf("place-curve: want four coordinate pairs: %v", err)
		}
		return place("place-curve", scene.NewCurve(snap(vs[0]), vs[1], vs[2], snap(vs[3])))
	})

	// -----------------------------------------------------------------------
	// (place-polyline x1 y1 x2 y2 ...)
	// -----------------------------------------------------------------------
	env.AddFunction("place_polyline", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		vs, err := toVecs(args)
		if err != nil || len(vs) < scene.MinPolylinePoints {
			return zygo.SexpNull, fmt.Errorf("place-polyline: want at least two coordinate pairs: %v", err)
		}
		for i := range vs {
			vs[i] = snap(vs[i])
		}
		return place("place-polyline", scene.NewPolyline(vs))
	})

	// -----------------------------------------------------------------------
	// (place-polygon x1 y1 x2 y2 x3 y3 ...)
	// -----------------------------------------------------------------------
	env.AddFunction("place_polygon", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		vs, err := toVecs(args)
		if err != nil || len(vs) < scene.MinPolygonPoints {
			return zygo.SexpNull, fmt.Errorf("place-polygon: want at least three coordinate pairs: %v", err)
		}
		for i := range vs {
			vs[i] = snap(vs[i])
		}
		return place("place-polygon", scene.NewPolygon(vs))
	})

	// -----------------------------------------------------------------------
	// (place-rect x y w h) / (place-ellipse x y w h)
	// -----------------------------------------------------------------------
	rectArgs := func(name string, args []zygo.Sexp) (geom.Rect, error) {
		vs, err := toVecs(args)
		if err != nil || len(vs) != 2 {
			return geom.Rect{}, fmt.Errorf("%s: want x y w h: %v", name, err)
		}
		origin := snap(vs[0])
		return geom.Rect{X: origin.X, Y: origin.Y, W: vs[1].X, H: vs[1].Y}, nil
	}
	env.AddFunction("place_rect", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		r, err := rectArgs("place-rect", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		return place("place-rect", scene.NewRectItem(r))
	})
	env.AddFunction("place_ellipse", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		r, err := rectArgs("place-ellipse", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		return place("place-ellipse", scene.NewEllipseItem(r))
	})

	// -----------------------------------------------------------------------
	// (place-path "triangle" x y w h)
	// -----------------------------------------------------------------------
	env.AddFunction("place_path", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 5 {
			return zygo.SexpNull, fmt.Errorf("place-path: want template x y w h")
		}
		tmplName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("place-path: %w", err)
		}
		tmpl, ok := pathTemplates[tmplName]
		if !ok {
			return zygo.SexpNull, fmt.Errorf("place-path: unknown template %q", tmplName)
		}
		r, err := rectArgs("place-path", args[1:])
		if err != nil {
			return zygo.SexpNull, err
		}
		return place("place-path", scene.NewPathItem(tmplName, tmpl, r))
	})

	// -----------------------------------------------------------------------
	// (place-text x y "caption")
	// -----------------------------------------------------------------------
	env.AddFunction("place_text", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("place-text: want x y caption")
		}
		vs, err := toVecs(args[:2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("place-text: %w", err)
		}
		caption, err := toString(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("place-text: %w", err)
		}
		return place("place-text", scene.NewTextItem(snap(vs[0]), caption))
	})

	// -----------------------------------------------------------------------
	// (move item dx dy)
	// -----------------------------------------------------------------------
	env.AddFunction("move", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("move: want item dx dy")
		}
		it, err := resolve(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("move: %w", err)
		}
		vs, err := toVecs(args[1:])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("move: %w", err)
		}
		s.Stack.Push(b.Move([]scene.Item{it}, vs[0]))
		return args[0], nil
	})

	// -----------------------------------------------------------------------
	// (resize item point-index x y [:snap])
	// -----------------------------------------------------------------------
	env.AddFunction("resize", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		snap45 := false
		if len(args) == 5 {
			kw, ok := isKW(args[4])
			if !ok || kw != "snap" {
				return zygo.SexpNull, fmt.Errorf("resize: unknown option %s", args[4].SexpString(nil))
			}
			snap45 = true
			args = args[:4]
		}
		if len(args) != 4 {
			return zygo.SexpNull, fmt.Errorf("resize: want item point-index x y [:snap]")
		}
		it, err := resolve(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("resize: %w", err)
		}
		idx, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("resize: point-index: %w", err)
		}
		i := int(idx)
		if i < 0 || i >= len(it.Points()) {
			return zygo.SexpNull, fmt.Errorf("resize: point index %d out of range (item has %d)", i, len(it.Points()))
		}
		vs, err := toVecs(args[2:])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("resize: %w", err)
		}
		s.Stack.Push(b.Resize(it.Points()[i], snap(vs[0]), snap45))
		return args[0], nil
	})

	// -----------------------------------------------------------------------
	// (rotate item cx cy) / (rotate-back item cx cy) / (flip item cx cy)
	// -----------------------------------------------------------------------
	pivotEdit := func(name string, build func([]scene.Item, geom.Vec) command.Command) func(*zygo.Zlisp, string, []zygo.Sexp) (zygo.Sexp, error) {
		return func(env *zygo.Zlisp, _ string, args []zygo.Sexp) (zygo.Sexp, error) {
			if len(args) != 3 {
				return zygo.SexpNull, fmt.Errorf("%s: want item cx cy", name)
			}
			it, err := resolve(args[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
			}
			vs, err := toVecs(args[1:])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
			}
			s.Stack.Push(build([]scene.Item{it}, vs[0]))
			return args[0], nil
		}
	}
	env.AddFunction("rotate", pivotEdit("rotate", b.Rotate))
	env.AddFunction("rotate_back", pivotEdit("rotate-back", b.RotateBack))
	env.AddFunction("flip", pivotEdit("flip", b.Flip))

	// -----------------------------------------------------------------------
	// (group item1 item2 ...)
	// -----------------------------------------------------------------------
	env.AddFunction("group", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 2 {
			return zygo.SexpNull, fmt.Errorf("group: want at least two items")
		}
		items := make([]scene.Item, len(args))
		for i, a := range args {
			it, err := resolve(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("group: %w", err)
			}
			items[i] = it
		}
		s.Stack.Push(b.Group(items))
		top := s.Page.Items()[len(s.Page.Items())-1]
		return &sexpItemRef{id: top.ID(), kind: top.Kind()}, nil
	})

	// -----------------------------------------------------------------------
	// (ungroup g) -> array of the flattened item refs
	// -----------------------------------------------------------------------
	env.AddFunction("ungroup", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("ungroup: want one group")
		}
		it, err := resolve(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("ungroup: %w", err)
		}
		g, ok := it.(*scene.Group)
		if !ok {
			return zygo.SexpNull, fmt.Errorf("ungroup: %s is not a group", it.Kind())
		}
		n := len(g.Children())
		s.Stack.Push(b.Ungroup(g))

		items := s.Page.Items()
		refs := make([]zygo.Sexp, 0, n)
		for _, flat := range items[len(items)-n:] {
			refs = append(refs, &sexpItemRef{id: flat.ID(), kind: flat.Kind()})
		}
		return env.NewSexpArray(refs), nil
	})

	// -----------------------------------------------------------------------
	// (remove item1 item2 ...)
	// -----------------------------------------------------------------------
	env.AddFunction("remove", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		items := make([]scene.Item, len(args))
		for i, a := range args {
			it, err := resolve(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("remove: %w", err)
			}
			items[i] = it
		}
		s.Stack.Push(b.Remove(items))
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (insert-point item x y) / (remove-point item x y)
	// -----------------------------------------------------------------------
	vertexEdit := func(name string, build func(scene.Item, geom.Vec) command.Command) func(*zygo.Zlisp, string, []zygo.Sexp) (zygo.Sexp, error) {
		return func(env *zygo.Zlisp, _ string, args []zygo.Sexp) (zygo.Sexp, error) {
			if len(args) != 3 {
				return zygo.SexpNull, fmt.Errorf("%s: want item x y", name)
			}
			it, err := resolve(args[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
			}
			vs, err := toVecs(args[1:])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
			}
			cmd := build(it, vs[0])
			if cmd == nil {
				return zygo.SexpNull, fmt.Errorf("%s: %s does not support vertex editing here", name, it.Kind())
			}
			s.Stack.Push(cmd)
			return args[0], nil
		}
	}
	env.AddFunction("insert_point", vertexEdit("insert-point", b.InsertPoint))
	env.AddFunction("remove_point", vertexEdit("remove-point", b.RemovePoint))

	// -----------------------------------------------------------------------
	// (reorder item :front|:back|:forward|:backward)
	// -----------------------------------------------------------------------
	env.AddFunction("reorder", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("reorder: want item op")
		}
		it, err := resolve(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("reorder: %w", err)
		}
		opName, err := toKeywordString(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("reorder: %w", err)
		}
		var op command.ReorderOp
		switch opName {
		case "front":
			op = command.BringToFront
		case "back":
			op = command.SendToBack
		case "forward":
			op = command.BringForward
		case "backward":
			op = command.SendBackward
		default:
			return zygo.SexpNull, fmt.Errorf("reorder: unknown op %q, want front/back/forward/backward", opName)
		}
		s.Stack.Push(b.Reorder([]scene.Item{it}, op))
		return args[0], nil
	})

	// -----------------------------------------------------------------------
	// (undo) / (redo)
	// -----------------------------------------------------------------------
	env.AddFunction("undo", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return &zygo.SexpBool{Val: s.Stack.Undo()}, nil
	})
	env.AddFunction("redo", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return &zygo.SexpBool{Val: s.Stack.Redo()}, nil
	})

	// -----------------------------------------------------------------------
	// (save "drawing.json") / (export-svg "drawing.svg")
	// -----------------------------------------------------------------------
	env.AddFunction("save", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		path, err := pathArg("save", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		if err := store.SaveFile(path, s.Page); err != nil {
			return zygo.SexpNull, fmt.Errorf("save: %w", err)
		}
		s.Stack.SetClean()
		return zygo.SexpNull, nil
	})
	env.AddFunction("export_svg", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		path, err := pathArg("export-svg", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		if err := export.WriteFile(path, s.Page); err != nil {
			return zygo.SexpNull, fmt.Errorf("export-svg: %w", err)
		}
		return zygo.SexpNull, nil
	})
}

func pathArg(name string, args []zygo.Sexp) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("%s: want a file path", name)
	}
	path, err := toString(args[0])
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	return path, nil
}
