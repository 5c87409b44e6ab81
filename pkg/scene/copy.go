package scene

// AllPoints returns every point owned by the item, including points of
// nested group children, in a stable traversal order.
func AllPoints(it Item) []*Point {
	points := append([]*Point(nil), it.Points()...)
	if g, ok := it.(*Group); ok {
		for _, child := range g.children {
			points = append(points, AllPoints(child)...)
		}
	}
	return points
}

// CopyItems deep-copies a set of items. Links whose endpoints both lie
// inside the set are re-established between the corresponding copied
// points; links to points outside the set are dropped. Copies receive
// fresh IDs.
func CopyItems(items []Item) []Item {
	out := make([]Item, len(items))
	pointMap := make(map[*Point]*Point)

	for i, it := range items {
		out[i] = it.Copy()
		orig := AllPoints(it)
		copied := AllPoints(out[i])
		if len(orig) != len(copied) {
			panic("scene: item copy changed the point structure")
		}
		for j, p := range orig {
			pointMap[p] = copied[j]
		}
	}

	for p, cp := range pointMap {
		for _, target := range p.Links() {
			if ct, ok := pointMap[target]; ok {
				Connect(cp, ct)
			}
		}
	}
	return out
}
