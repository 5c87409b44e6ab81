package script

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jaallen85/jade-py-sub000/pkg/geom"
	"github.com/jaallen85/jade-py-sub000/pkg/scene"
	"github.com/jaallen85/jade-py-sub000/pkg/store"
)

// ---------------------------------------------------------------------------
// Preprocessing tests
// ---------------------------------------------------------------------------

func TestPreprocessSource(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "kebab-case builtin",
			input:  `(place-line 0 0 10 0)`,
			expect: `(place_line 0 0 10 0)`,
		},
		{
			name:   "keyword",
			input:  `(reorder r :front)`,
			expect: `(reorder r "__kw_front")`,
		},
		{
			name:   "keyword in string preserved",
			input:  `"send :front please"`,
			expect: `"send :front please"`,
		},
		{
			name:   "assignment operator preserved",
			input:  `(def x := 10)`,
			expect: `(def x := 10)`,
		},
		{
			name:   "minus operator preserved",
			input:  `(- 10 5)`,
			expect: `(- 10 5)`,
		},
		{
			name:   "negative literal preserved",
			input:  `(place-line -5 0 5 0)`,
			expect: `(place_line -5 0 5 0)`,
		},
		{
			name:   "comment converted to // style",
			input:  `;; a :front comment`,
			expect: `// a :front comment`,
		},
		{
			name:   "single semicolon comment",
			input:  `; simple comment`,
			expect: `// simple comment`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := preprocessSource(tt.input)
			if got != tt.expect {
				t.Errorf("preprocessSource(%q) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Evaluation helpers
// ---------------------------------------------------------------------------

func evalOK(t *testing.T, source string) *Session {
	t.Helper()
	eng := NewEngine("test", 0)
	s, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}
	if s == nil {
		t.Fatal("expected non-nil session")
	}
	return s
}

func evalFails(t *testing.T, source string) []EvalError {
	t.Helper()
	eng := NewEngine("test", 0)
	s, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if s != nil {
		t.Fatal("expected nil session")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected eval errors")
	}
	return evalErrs
}

// ---------------------------------------------------------------------------
// Placement builtins
// ---------------------------------------------------------------------------

func TestPlaceBuiltinsCoverEveryKind(t *testing.T) {
	s := evalOK(t, `
(place-line 0 0 10 0)
(place-curve 0 10 3 13 7 13 10 10)
(place-polyline 0 20 5 25 10 20)
(place-polygon 0 30 10 30 5 38)
(place-rect 20 0 10 6)
(place-ellipse 20 10 10 6)
(place-path "triangle" 20 20 8 8)
(place-text 40 0 "label")
`)
	items := s.Page.Items()
	if len(items) != 8 {
		t.Fatalf("expected 8 items, got %d", len(items))
	}
	wantKinds := []string{"line", "curve", "polyline", "polygon", "rect", "ellipse", "path", "text"}
	for i, kind := range wantKinds {
		if items[i].Kind() != kind {
			t.Errorf("item %d: kind = %q, want %q", i, items[i].Kind(), kind)
		}
	}
	if s.Stack.Len() != 8 {
		t.Errorf("expected 8 undoable commands, got %d", s.Stack.Len())
	}
}

func TestPlaceLineGeometry(t *testing.T) {
	s := evalOK(t, `(place-line 2 3 12 3)`)
	l := s.Page.Items()[0].(*scene.Line)
	if got := l.StartPoint().ScenePosition(); !geom.Coincident(got, geom.Vec{X: 2, Y: 3}) {
		t.Errorf("start = %v", got)
	}
	if got := l.EndPoint().ScenePosition(); !geom.Coincident(got, geom.Vec{X: 12, Y: 3}) {
		t.Errorf("end = %v", got)
	}
}

func TestPlacementConnectsCoincidentEndpoints(t *testing.T) {
	s := evalOK(t, `
(place-line 0 0 10 0)
(place-line 10 0 20 0)
`)
	l1 := s.Page.Items()[0].(*scene.Line)
	l2 := s.Page.Items()[1].(*scene.Line)
	if !l1.EndPoint().IsLinkedTo(l2.StartPoint()) {
		t.Error("coincident endpoints should be linked after placement")
	}
}

func TestPlaceDegenerateLineFails(t *testing.T) {
	errs := evalFails(t, `(place-line 5 5 5 5)`)
	if !strings.Contains(errs[0].Message, "degenerate") {
		t.Errorf("error = %q, want mention of degenerate geometry", errs[0].Message)
	}
}

func TestPlacePathUnknownTemplate(t *testing.T) {
	errs := evalFails(t, `(place-path "owl" 0 0 10 10)`)
	if !strings.Contains(errs[0].Message, "owl") {
		t.Errorf("error = %q, want template name", errs[0].Message)
	}
}

func TestGridSnapsPlacement(t *testing.T) {
	eng := NewEngine("test", 5)
	s, evalErrs, err := eng.Evaluate(`(place-line 2 1 9 1)`)
	if err != nil || len(evalErrs) > 0 {
		t.Fatalf("eval: %v %v", err, evalErrs)
	}
	l := s.Page.Items()[0].(*scene.Line)
	if got := l.StartPoint().ScenePosition(); !geom.Coincident(got, geom.Vec{}) {
		t.Errorf("start = %v, want (0,0)", got)
	}
	if got := l.EndPoint().ScenePosition(); !geom.Coincident(got, geom.Vec{X: 10}) {
		t.Errorf("end = %v, want (10,0)", got)
	}
}

// ---------------------------------------------------------------------------
// Edit builtins
// ---------------------------------------------------------------------------

func TestMoveUndoRedo(t *testing.T) {
	s := evalOK(t, `
(def r (place-rect 0 0 10 10))
(move r 5 5)
`)
	// A rect anchors at its center, so the placed rect sits at (5,5).
	it := s.Page.Items()[0]
	if got := it.Position(); !geom.Coincident(got, geom.Vec{X: 10, Y: 10}) {
		t.Fatalf("position after move = %v", got)
	}
	if !s.Stack.Undo() {
		t.Fatal("undo failed")
	}
	if got := it.Position(); !geom.Coincident(got, geom.Vec{X: 5, Y: 5}) {
		t.Errorf("position after undo = %v", got)
	}
	if !s.Stack.Redo() {
		t.Fatal("redo failed")
	}
	if got := it.Position(); !geom.Coincident(got, geom.Vec{X: 10, Y: 10}) {
		t.Errorf("position after redo = %v", got)
	}
}

func TestUndoBuiltin(t *testing.T) {
	s := evalOK(t, `
(place-rect 0 0 10 10)
(place-rect 20 0 10 10)
(undo)
`)
	if got := len(s.Page.Items()); got != 1 {
		t.Errorf("expected 1 item after scripted undo, got %d", got)
	}
	if !s.Stack.CanRedo() {
		t.Error("scripted undo should leave a redoable command")
	}
}

func TestResizeWithSnapKeyword(t *testing.T) {
	s := evalOK(t, `
(def l (place-line 0 0 10 0))
(resize l 2 8 6 :snap)
`)
	l := s.Page.Items()[0].(*scene.Line)
	if got := l.EndPoint().ScenePosition(); !geom.Coincident(got, geom.Vec{X: 8, Y: 8}) {
		t.Errorf("snapped end = %v, want (8,8)", got)
	}
}

func TestRotateAndFlip(t *testing.T) {
	s := evalOK(t, `
(def r (place-rect 0 0 10 10))
(rotate r 0 0)
(flip r 0 0)
`)
	it := s.Page.Items()[0]
	if it.Rotation() != 1 {
		t.Errorf("rotation = %d, want 1", it.Rotation())
	}
	if !it.IsFlipped() {
		t.Error("expected flipped item")
	}
}

func TestGroupUngroup(t *testing.T) {
	s := evalOK(t, `
(def a (place-rect 0 0 10 10))
(def b (place-rect 20 0 10 10))
(def g (group a b))
(ungroup g)
`)
	items := s.Page.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 items after ungroup, got %d", len(items))
	}
	for _, it := range items {
		if it.Kind() != "rect" {
			t.Errorf("kind = %q, want rect", it.Kind())
		}
	}
	if s.Stack.Len() != 4 {
		t.Errorf("expected 4 commands on the stack, got %d", s.Stack.Len())
	}
}

func TestGroupRefIsUsable(t *testing.T) {
	s := evalOK(t, `
(def g (group (place-rect 0 0 10 10) (place-rect 20 0 10 10)))
(move g 0 50)
`)
	items := s.Page.Items()
	if len(items) != 1 || items[0].Kind() != "group" {
		t.Fatalf("expected a single group, got %d items", len(items))
	}
	if got := items[0].Position().Y; got != 55 {
		t.Errorf("group Y after move = %v, want 55", got)
	}
}

func TestRemoveBuiltin(t *testing.T) {
	s := evalOK(t, `
(def l (place-line 0 0 10 0))
(remove l)
`)
	if got := len(s.Page.Items()); got != 0 {
		t.Errorf("expected empty page, got %d items", got)
	}
	if !s.Stack.Undo() {
		t.Fatal("undo failed")
	}
	if got := len(s.Page.Items()); got != 1 {
		t.Errorf("expected item restored, got %d items", got)
	}
}

func TestRemovedItemRefErrors(t *testing.T) {
	errs := evalFails(t, `
(def l (place-line 0 0 10 0))
(remove l)
(move l 5 5)
`)
	if !strings.Contains(errs[0].Message, "not on the page") {
		t.Errorf("error = %q, want stale-ref explanation", errs[0].Message)
	}
}

func TestInsertAndRemovePoint(t *testing.T) {
	s := evalOK(t, `
(def p (place-polyline 0 0 10 0 20 0))
(insert-point p 5 0)
(remove-point p 5 0)
`)
	pl := s.Page.Items()[0].(*scene.Polyline)
	if got := len(pl.Points()); got != 3 {
		t.Errorf("expected 3 vertices after insert+remove, got %d", got)
	}
}

func TestVertexEditOnLineErrors(t *testing.T) {
	errs := evalFails(t, `
(def l (place-line 0 0 10 0))
(insert-point l 5 0)
`)
	if !strings.Contains(errs[0].Message, "vertex") {
		t.Errorf("error = %q, want vertex-editing explanation", errs[0].Message)
	}
}

func TestReorderBuiltin(t *testing.T) {
	s := evalOK(t, `
(def a (place-rect 0 0 10 10))
(def b (place-rect 20 0 10 10))
(reorder a :front)
`)
	// Rects anchor at their centers: a sits at (5,5), b at (25,5).
	items := s.Page.Items()
	if items[0].Position().X != 25 || items[1].Position().X != 5 {
		t.Errorf("expected a on top, order = [%v %v]", items[0].Position(), items[1].Position())
	}
}

func TestReorderUnknownOp(t *testing.T) {
	errs := evalFails(t, `
(def a (place-rect 0 0 10 10))
(reorder a :sideways)
`)
	if !strings.Contains(errs[0].Message, "sideways") {
		t.Errorf("error = %q, want the bad op name", errs[0].Message)
	}
}

// ---------------------------------------------------------------------------
// File builtins
// ---------------------------------------------------------------------------

func TestSaveBuiltin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drawing.json")
	s := evalOK(t, `
(place-line 0 0 10 0)
(place-line 10 0 20 0)
(save "`+path+`")
`)
	if !s.Stack.IsClean() {
		t.Error("save should mark the stack clean")
	}

	page, err := store.LoadFile(path, store.NewRegistry())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := len(page.Items()); got != 2 {
		t.Fatalf("reloaded %d items, want 2", got)
	}
	l1 := page.Items()[0].(*scene.Line)
	l2 := page.Items()[1].(*scene.Line)
	if !l1.EndPoint().IsLinkedTo(l2.StartPoint()) {
		t.Error("connection not rediscovered after reload")
	}
}

func TestExportSVGBuiltin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drawing.svg")
	evalOK(t, `
(place-rect 0 0 10 10)
(export-svg "`+path+`")
`)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), "<svg") {
		t.Error("exported file is not an SVG document")
	}
}
