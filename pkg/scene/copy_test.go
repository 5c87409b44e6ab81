package scene

import (
	"testing"

	"github.com/jaallen85/jade-py-sub000/pkg/geom"
)

func TestCopyItemsPreservesInternalLinks(t *testing.T) {
	l1 := NewLine(geom.Vec{}, geom.Vec{X: 10})
	l2 := NewLine(geom.Vec{X: 10}, geom.Vec{X: 20})
	l3 := NewLine(geom.Vec{X: 20}, geom.Vec{X: 30})
	Connect(l1.EndPoint(), l2.StartPoint())
	Connect(l2.EndPoint(), l3.StartPoint())

	// Copy only l1 and l2: their mutual link survives, the link out to l3
	// is dropped.
	out := CopyItems([]Item{l1, l2})
	c1 := out[0].(*Line)
	c2 := out[1].(*Line)

	if !c1.EndPoint().IsLinkedTo(c2.StartPoint()) {
		t.Fatal("in-set link was not preserved")
	}
	if len(c2.EndPoint().Links()) != 0 {
		t.Fatal("out-of-set link was carried over")
	}
	// The originals are untouched.
	if !l2.EndPoint().IsLinkedTo(l3.StartPoint()) {
		t.Fatal("copying disturbed the original links")
	}
}

func TestCopyItemsCopiesGroupsDeep(t *testing.T) {
	l1 := NewLine(geom.Vec{}, geom.Vec{X: 10})
	l2 := NewLine(geom.Vec{X: 10}, geom.Vec{X: 20})
	Connect(l1.EndPoint(), l2.StartPoint())
	g := NewGroup([]Item{l1, l2})

	out := CopyItems([]Item{g})
	cg := out[0].(*Group)
	if cg == g {
		t.Fatal("group was not copied")
	}
	cc1 := cg.Children()[0].(*Line)
	cc2 := cg.Children()[1].(*Line)
	if !cc1.EndPoint().IsLinkedTo(cc2.StartPoint()) {
		t.Fatal("nested link was not preserved through the group copy")
	}
	if cc1.EndPoint().IsLinkedTo(g.Children()[1].(*Line).StartPoint()) {
		t.Fatal("copied child links into the original group")
	}
}

func TestAllPointsRecursesIntoGroups(t *testing.T) {
	l1 := NewLine(geom.Vec{}, geom.Vec{X: 10})
	l2 := NewLine(geom.Vec{X: 10}, geom.Vec{X: 20})
	g := NewGroup([]Item{l1, l2})

	// Eight display handles plus three points per child line.
	if got := len(AllPoints(g)); got != 8+3+3 {
		t.Fatalf("AllPoints count = %d", got)
	}
}
