package command

import (
	"testing"

	"github.com/jaallen85/jade-py-sub000/pkg/geom"
	"github.com/jaallen85/jade-py-sub000/pkg/scene"
)

func moveCommand(t *testing.T, b *Builder, l *scene.Line, delta geom.Vec) Command {
	t.Helper()
	cmd := b.Move([]scene.Item{l}, delta)
	if cmd == nil {
		t.Fatal("expected a move command")
	}
	return cmd
}

func TestStackUndoRedo(t *testing.T) {
	page := scene.NewPage("p", 0)
	b := NewBuilder(page)
	l := scene.NewLine(geom.Vec{}, geom.Vec{X: 10})
	page.AddItem(l)

	s := NewStack()
	if s.CanUndo() || s.CanRedo() {
		t.Fatal("fresh stack must be empty")
	}
	if !s.IsClean() {
		t.Fatal("fresh stack must be clean")
	}

	s.Push(moveCommand(t, b, l, geom.Vec{X: 5}))
	s.Push(moveCommand(t, b, l, geom.Vec{X: 5}))
	if got := l.Position(); !geom.Coincident(got, geom.Vec{X: 10}) {
		t.Fatalf("position after two pushes = %v", got)
	}

	if !s.Undo() {
		t.Fatal("undo failed")
	}
	if got := l.Position(); !geom.Coincident(got, geom.Vec{X: 5}) {
		t.Fatalf("position after undo = %v", got)
	}
	if !s.Redo() {
		t.Fatal("redo failed")
	}
	if got := l.Position(); !geom.Coincident(got, geom.Vec{X: 10}) {
		t.Fatalf("position after redo = %v", got)
	}

	s.Undo()
	s.Undo()
	if s.Undo() {
		t.Fatal("undo past the bottom must report false")
	}
	if got := l.Position(); !got.IsZero() {
		t.Fatalf("position after full unwind = %v", got)
	}
}

func TestStackPushTruncatesRedo(t *testing.T) {
	page := scene.NewPage("p", 0)
	b := NewBuilder(page)
	l := scene.NewLine(geom.Vec{}, geom.Vec{X: 10})
	page.AddItem(l)

	s := NewStack()
	s.Push(moveCommand(t, b, l, geom.Vec{X: 5}))
	s.Push(moveCommand(t, b, l, geom.Vec{X: 5}))
	s.Undo()
	s.Push(moveCommand(t, b, l, geom.Vec{Y: 3}))

	if s.CanRedo() {
		t.Fatal("push must discard the undone branch")
	}
	if s.Len() != 2 {
		t.Fatalf("stack length = %d", s.Len())
	}
	if got := l.Position(); !geom.Coincident(got, geom.Vec{X: 5, Y: 3}) {
		t.Fatalf("position = %v", got)
	}
}

func TestStackPushNilIsNoOp(t *testing.T) {
	s := NewStack()
	s.Push(nil)
	if s.Len() != 0 || s.CanUndo() {
		t.Fatal("nil push must not create an entry")
	}
}

func TestStackLabels(t *testing.T) {
	page := scene.NewPage("p", 0)
	b := NewBuilder(page)
	l := scene.NewLine(geom.Vec{}, geom.Vec{X: 10})
	page.AddItem(l)

	s := NewStack()
	s.Push(moveCommand(t, b, l, geom.Vec{X: 5}))
	if s.UndoLabel() == "" || s.RedoLabel() != "" {
		t.Fatal("labels wrong after push")
	}
	s.Undo()
	if s.UndoLabel() != "" || s.RedoLabel() == "" {
		t.Fatal("labels wrong after undo")
	}
}

func TestStackCleanTracking(t *testing.T) {
	page := scene.NewPage("p", 0)
	b := NewBuilder(page)
	l := scene.NewLine(geom.Vec{}, geom.Vec{X: 10})
	page.AddItem(l)

	s := NewStack()
	s.Push(moveCommand(t, b, l, geom.Vec{X: 5}))
	s.SetClean()
	if !s.IsClean() {
		t.Fatal("should be clean at the checkpoint")
	}

	s.Push(moveCommand(t, b, l, geom.Vec{X: 5}))
	if s.IsClean() {
		t.Fatal("dirty after a new edit")
	}
	s.Undo()
	if !s.IsClean() {
		t.Fatal("undo back to the checkpoint should be clean")
	}

	// Editing below the checkpoint makes it unreachable.
	s.Undo()
	s.Push(moveCommand(t, b, l, geom.Vec{Y: 2}))
	if s.IsClean() {
		t.Fatal("checkpoint must be unreachable after the branch was discarded")
	}
	s.Undo()
	if s.IsClean() {
		t.Fatal("no position on the new branch is clean")
	}
}
