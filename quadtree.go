package arcade

const (
	DefaultQuadtreeMaxObjects = 8
	DefaultQuadtreeMaxLevels  = 6
)

// quadrant order of a node's children
const (
	quadTopLeft = iota
	quadTopRight
	quadBottomLeft
	quadBottomRight
)

type quadEntry struct {
	body   *Body
	bounds AABB
}

// Quadtree is a region quadtree over body move bounds.
//
// A body is stored in the deepest node that fully contains its bounds. Bodies straddling a
// split line, and bodies outside the root bounds, stay in the parent node.
type Quadtree struct {
	// TimeStep sizes the move bounds of inserted bodies.
	TimeStep float64

	bounds     AABB
	level      int
	maxObjects int
	maxLevels  int
	objects    []quadEntry
	children   *[4]Quadtree
	count      int
}

// NewQuadtree returns an empty tree covering bounds. Non-positive limits use the defaults.
func NewQuadtree(bounds AABB, maxObjects, maxLevels int) *Quadtree {
	if maxObjects <= 0 {
		maxObjects = DefaultQuadtreeMaxObjects
	}
	if maxLevels <= 0 {
		maxLevels = DefaultQuadtreeMaxLevels
	}
	return &Quadtree{
		TimeStep:   DefaultTimeStep,
		bounds:     bounds,
		maxObjects: maxObjects,
		maxLevels:  maxLevels,
	}
}

// Bounds returns the region covered by the root node.
func (qt *Quadtree) Bounds() AABB {
	return qt.bounds
}

// Count returns the number of bodies stored in the tree.
func (qt *Quadtree) Count() int {
	return qt.count
}

// Each calls f for every stored body, parents before children.
func (qt *Quadtree) Each(f SpatialIndexIterator) {
	for _, e := range qt.objects {
		f(e.body)
	}
	if qt.children != nil {
		for i := range qt.children {
			qt.children[i].Each(f)
		}
	}
}

// Insert adds bodies to the tree. Dead or inactive bodies are skipped.
func (qt *Quadtree) Insert(bodies ...*Body) {
	for _, body := range bodies {
		if body == nil || !body.Exists() {
			continue
		}
		qt.insert(quadEntry{body: body, bounds: body.MoveBounds(qt.TimeStep)})
	}
}

func (qt *Quadtree) insert(e quadEntry) {
	qt.count++

	if qt.children != nil {
		if q := qt.quadrant(e.bounds); q >= 0 {
			qt.children[q].insert(e)
			return
		}
	}

	qt.objects = append(qt.objects, e)

	if qt.children == nil && len(qt.objects) > qt.maxObjects && qt.level < qt.maxLevels {
		qt.split()
		kept := qt.objects[:0]
		for _, o := range qt.objects {
			if q := qt.quadrant(o.bounds); q >= 0 {
				qt.children[q].insert(o)
			} else {
				kept = append(kept, o)
			}
		}
		clear(qt.objects[len(kept):])
		qt.objects = kept
	}
}

func (qt *Quadtree) split() {
	hw, hh := qt.bounds.W*0.5, qt.bounds.H*0.5
	x, y := qt.bounds.X, qt.bounds.Y
	qt.children = &[4]Quadtree{}
	quads := [4]AABB{
		quadTopLeft:     {x, y, hw, hh},
		quadTopRight:    {x + hw, y, hw, hh},
		quadBottomLeft:  {x, y + hh, hw, hh},
		quadBottomRight: {x + hw, y + hh, hw, hh},
	}
	for i, bb := range quads {
		qt.children[i] = Quadtree{
			TimeStep:   qt.TimeStep,
			bounds:     bb,
			level:      qt.level + 1,
			maxObjects: qt.maxObjects,
			maxLevels:  qt.maxLevels,
		}
	}
}

// quadrant returns the child that fully contains bb, or -1.
func (qt *Quadtree) quadrant(bb AABB) int {
	midX := qt.bounds.X + qt.bounds.W*0.5
	midY := qt.bounds.Y + qt.bounds.H*0.5

	if !qt.bounds.Contains(bb) {
		return -1
	}
	top := bb.Bottom() < midY
	bottom := bb.Top() > midY
	left := bb.Right() < midX
	right := bb.Left() > midX

	switch {
	case top && left:
		return quadTopLeft
	case top && right:
		return quadTopRight
	case bottom && left:
		return quadBottomLeft
	case bottom && right:
		return quadBottomRight
	}
	return -1
}

// Retrieve appends every body whose move bounds intersect region to out.
func (qt *Quadtree) Retrieve(out []*Body, region AABB) []*Body {
	for _, e := range qt.objects {
		if e.bounds.Intersects(region) {
			out = append(out, e.body)
		}
	}
	if qt.children != nil {
		for i := range qt.children {
			child := &qt.children[i]
			if child.count > 0 && child.bounds.Intersects(region) {
				out = child.Retrieve(out, region)
			}
		}
	}
	return out
}

// Clear removes every body and collapses the children.
func (qt *Quadtree) Clear() {
	clear(qt.objects)
	qt.objects = qt.objects[:0]
	qt.children = nil
	qt.count = 0
}

// Depth returns the number of levels below this node.
func (qt *Quadtree) Depth() int {
	if qt.children == nil {
		return 0
	}
	d := 0
	for i := range qt.children {
		d = max(d, qt.children[i].Depth())
	}
	return d + 1
}
