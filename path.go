package arcade

import (
	"github.com/setanarut/vec"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// PathMode selects how a Follower walks its path.
type PathMode uint8

const (
	// PathForward walks from the first node to the last and stops.
	PathForward PathMode = iota
	// PathBackward walks from the last node to the first and stops.
	PathBackward
	// PathLoop walks forward, then along a closing segment from the last node back to the
	// first, forever.
	PathLoop
	// PathYoYo walks forward, then backward, forever.
	PathYoYo
)

func (m PathMode) String() string {
	switch m {
	case PathForward:
		return "Forward"
	case PathBackward:
		return "Backward"
	case PathLoop:
		return "Loop"
	case PathYoYo:
		return "YoYo"
	}
	return "Unknown"
}

// Path is an ordered list of world points.
type Path struct {
	Nodes []vec.Vec2
}

// NewPath returns a path through nodes.
func NewPath(nodes ...vec.Vec2) *Path {
	return &Path{Nodes: nodes}
}

// Add appends nodes to the path.
func (p *Path) Add(nodes ...vec.Vec2) {
	p.Nodes = append(p.Nodes, nodes...)
}

// Len returns the number of nodes.
func (p *Path) Len() int {
	return len(p.Nodes)
}

// Length returns the length of the polyline through the nodes.
func (p *Path) Length() float64 {
	l := 0.0
	for i := 1; i < len(p.Nodes); i++ {
		l += p.Nodes[i].Sub(p.Nodes[i-1]).Mag()
	}
	return l
}

// Follower moves a body along a Path at a constant speed.
//
// The follower never writes positions. It sets the body's velocity so that the next position
// integration lands on the tweened point, which keeps collisions working and lets riders of
// a moving platform inherit its motion. Use it with immovable bodies, or bodies with a
// GravityScale of 0, for exact paths.
type Follower struct {
	Body  BodyID
	Path  *Path
	Speed float64 // pixels per second
	Mode  PathMode
	// Ease shapes each segment. nil means ease.Linear.
	Ease ease.TweenFunc
	// Offset is the point of the body that follows the path, relative to its top-left corner.
	Offset vec.Vec2
	// OnNode is called when a node is reached with its index.
	OnNode func(f *Follower, node int)

	from, to       int
	dir            int
	tweenX, tweenY *gween.Tween
	finished       bool
	stopped        bool
}

// NewFollower returns a follower moving body along path. The body must already be added
// to a World. Its center follows the path.
func NewFollower(body *Body, path *Path, speed float64, mode PathMode) *Follower {
	f := &Follower{
		Body:   body.ID(),
		Path:   path,
		Speed:  speed,
		Mode:   mode,
		Offset: body.Bounds().HalfExtents(),
	}
	f.Reset()
	return f
}

// Reset restarts the follower from the first node of its mode.
func (f *Follower) Reset() {
	f.finished = false
	f.stopped = false
	f.tweenX, f.tweenY = nil, nil

	last := 0
	if f.Path != nil {
		last = f.Path.Len() - 1
	}
	if f.Mode == PathBackward {
		f.from, f.to, f.dir = last, last-1, -1
	} else {
		f.from, f.to, f.dir = 0, 1, 1
	}
}

// Finished returns true once a Forward or Backward follower reached its last node.
func (f *Follower) Finished() bool {
	return f.finished
}

// Segment returns the node indices of the segment being walked.
func (f *Follower) Segment() (from, to int) {
	return f.from, f.to
}

func (f *Follower) beginSegment() {
	a, b := f.Path.Nodes[f.from], f.Path.Nodes[f.to]
	duration := float32(b.Sub(a).Mag() / f.Speed)
	fn := f.Ease
	if fn == nil {
		fn = ease.Linear
	}
	f.tweenX = gween.New(float32(a.X), float32(b.X), duration, fn)
	f.tweenY = gween.New(float32(a.Y), float32(b.Y), duration, fn)
}

func (f *Follower) advance() {
	reached := f.to
	last := f.Path.Len() - 1
	switch f.Mode {
	case PathForward, PathBackward:
		next := f.to + f.dir
		if next < 0 || next > last {
			f.finished = true
		} else {
			f.from, f.to = f.to, next
		}
	case PathLoop:
		f.from, f.to = f.to, (f.to+1)%(last+1)
	case PathYoYo:
		if next := f.to + f.dir; next < 0 || next > last {
			f.dir = -f.dir
		}
		f.from, f.to = f.to, f.to+f.dir
	}
	f.tweenX, f.tweenY = nil, nil
	if f.OnNode != nil {
		f.OnNode(f, reached)
	}
}

// Update advances the follower by dt seconds and sets the body's velocity for the next step.
func (f *Follower) Update(w *World, dt float64) {
	body := w.Body(f.Body)
	if body == nil || dt <= 0 {
		return
	}
	if f.finished {
		if !f.stopped {
			body.velocity = vec.Vec2{}
			f.stopped = true
		}
		return
	}
	if f.Path == nil || f.Path.Len() < 2 || f.Speed <= 0 {
		return
	}
	if f.tweenX == nil {
		f.beginSegment()
	}

	x, doneX := f.tweenX.Update(float32(dt))
	y, doneY := f.tweenY.Update(float32(dt))
	target := vec.Vec2{X: float64(x), Y: float64(y)}.Sub(f.Offset)
	body.velocity = target.Sub(body.position).Scale(1 / dt)

	if doneX && doneY {
		f.advance()
	}
}
