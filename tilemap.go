package arcade

import (
	"math"

	"github.com/setanarut/vec"
)

const (
	// EmptyTile is the tile index of empty cells.
	EmptyTile = 0
	// SolidTile and PlatformTile are the indices used by NewTilemapFromStrings.
	SolidTile    = 1
	PlatformTile = 2
)

// TileProperties describes how tiles of one index collide.
type TileProperties struct {
	// Collisions is the set of tile edges bodies can hit. None makes the tile passable.
	Collisions Direction
	// Platform tiles carry bodies standing on them.
	Platform bool
}

// TileRef identifies the tile behind a temporary tile body. It is stored in Body.UserData.
type TileRef struct {
	Map      *Tilemap
	Col, Row int
	Index    int
}

// Tilemap is a grid of tile indices with per-index collision properties.
type Tilemap struct {
	// Origin is the top-left corner of tile (0, 0).
	Origin                vec.Vec2
	TileWidth, TileHeight float64
	// CullInteriorEdges removes edges shared by two solid tiles from collision, so bodies
	// sliding over a row of tiles never catch on the seams. NewTilemap turns it on; set it
	// to false to collide on every edge of every tile.
	CullInteriorEdges bool

	cols, rows int
	data       []int
	props      map[int]TileProperties
}

// NewTilemap returns a cols x rows map. data is row-major and copied; missing cells are empty.
//
// Every non-empty index collides on all edges until SetProperties says otherwise.
func NewTilemap(origin vec.Vec2, cols, rows int, tileW, tileH float64, data []int) *Tilemap {
	m := &Tilemap{
		Origin:            origin,
		TileWidth:         tileW,
		TileHeight:        tileH,
		CullInteriorEdges: true,
		cols:              cols,
		rows:              rows,
		data:              make([]int, cols*rows),
		props:             map[int]TileProperties{},
	}
	copy(m.data, data)
	return m
}

// NewTilemapFromStrings builds a map from text rows. '#' is SolidTile, '=' is a one-way
// PlatformTile, digits are their own index, anything else is empty.
func NewTilemapFromStrings(origin vec.Vec2, tileW, tileH float64, lines ...string) *Tilemap {
	cols := 0
	for _, line := range lines {
		cols = max(cols, len(line))
	}
	m := NewTilemap(origin, cols, len(lines), tileW, tileH, nil)
	for row, line := range lines {
		for col := 0; col < len(line); col++ {
			switch c := line[col]; {
			case c == '#':
				m.data[row*cols+col] = SolidTile
			case c == '=':
				m.data[row*cols+col] = PlatformTile
			case c >= '1' && c <= '9':
				m.data[row*cols+col] = int(c - '0')
			}
		}
	}
	m.SetProperties(PlatformTile, TileProperties{Collisions: Up, Platform: true})
	return m
}

// Cols returns the number of columns.
func (m *Tilemap) Cols() int {
	return m.cols
}

// Rows returns the number of rows.
func (m *Tilemap) Rows() int {
	return m.rows
}

// Bounds returns the region covered by the map.
func (m *Tilemap) Bounds() AABB {
	return AABB{m.Origin.X, m.Origin.Y, float64(m.cols) * m.TileWidth, float64(m.rows) * m.TileHeight}
}

func (m *Tilemap) inside(col, row int) bool {
	return col >= 0 && row >= 0 && col < m.cols && row < m.rows
}

// Tile returns the index at (col, row). Cells outside the map are empty.
func (m *Tilemap) Tile(col, row int) int {
	if !m.inside(col, row) {
		return EmptyTile
	}
	return m.data[row*m.cols+col]
}

// SetTile sets the index at (col, row). Cells outside the map are ignored.
func (m *Tilemap) SetTile(col, row, index int) {
	if m.inside(col, row) {
		m.data[row*m.cols+col] = index
	}
}

// TileAt returns the cell containing world point p.
func (m *Tilemap) TileAt(p vec.Vec2) (col, row int, ok bool) {
	col = int(math.Floor((p.X - m.Origin.X) / m.TileWidth))
	row = int(math.Floor((p.Y - m.Origin.Y) / m.TileHeight))
	return col, row, m.inside(col, row)
}

// Properties returns the properties of a tile index.
func (m *Tilemap) Properties(index int) TileProperties {
	if index == EmptyTile {
		return TileProperties{}
	}
	if p, ok := m.props[index]; ok {
		return p
	}
	return TileProperties{Collisions: Any}
}

// SetProperties sets the properties of a tile index.
func (m *Tilemap) SetProperties(index int, p TileProperties) {
	m.props[index] = p
}

// TileBounds returns the world box of cell (col, row).
func (m *Tilemap) TileBounds(col, row int) AABB {
	return AABB{
		m.Origin.X + float64(col)*m.TileWidth,
		m.Origin.Y + float64(row)*m.TileHeight,
		m.TileWidth,
		m.TileHeight,
	}
}

// solid returns true if the cell blocks on every edge.
func (m *Tilemap) solid(col, row int) bool {
	return m.Properties(m.Tile(col, row)).Collisions == Any
}

// Edges returns the collidable edges of cell (col, row), with interior edges removed
// when CullInteriorEdges is set.
func (m *Tilemap) Edges(col, row int) Direction {
	edges := m.Properties(m.Tile(col, row)).Collisions
	if !m.CullInteriorEdges || edges != Any {
		return edges
	}
	if m.solid(col-1, row) {
		edges &^= Left
	}
	if m.solid(col+1, row) {
		edges &^= Right
	}
	if m.solid(col, row-1) {
		edges &^= Up
	}
	if m.solid(col, row+1) {
		edges &^= Down
	}
	return edges
}

// OverlappingTiles calls fn for every non-empty cell touching region, in row-major order.
func (m *Tilemap) OverlappingTiles(region AABB, fn func(col, row, index int)) {
	c0 := int(math.Floor((region.Left() - m.Origin.X) / m.TileWidth))
	c1 := int(math.Floor((region.Right() - m.Origin.X) / m.TileWidth))
	r0 := int(math.Floor((region.Top() - m.Origin.Y) / m.TileHeight))
	r1 := int(math.Floor((region.Bottom() - m.Origin.Y) / m.TileHeight))

	c0, r0 = max(c0, 0), max(r0, 0)
	c1, r1 = min(c1, m.cols-1), min(r1, m.rows-1)

	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			if index := m.data[row*m.cols+col]; index != EmptyTile {
				fn(col, row, index)
			}
		}
	}
}

// TileBody returns a temporary immovable tile body for cell (col, row).
func (m *Tilemap) TileBody(col, row int) *Body {
	index := m.Tile(col, row)
	bb := m.TileBounds(col, row)
	tile := NewImmovableBody(bb.X, bb.Y, bb.W, bb.H)
	tile.Tile = true
	tile.IsPlatform = m.Properties(index).Platform
	tile.UserData = TileRef{Map: m, Col: col, Row: row, Index: index}
	return tile
}

// Collide resolves body against every collidable tile its move bounds touch.
// It returns true if at least one tile collided.
func (m *Tilemap) Collide(r Resolver, body *Body, fn CollideFunc) bool {
	if body == nil || !body.Exists() || !body.Solid || body.immovable {
		return false
	}
	hit := false
	m.OverlappingTiles(body.MoveBounds(r.TimeStep), func(col, row, index int) {
		edges := m.Edges(col, row)
		if edges == None {
			return
		}
		if r.Collide(body, m.TileBody(col, row), fn, edges) {
			hit = true
		}
	})
	return hit
}

// Overlaps returns true if body's bounds touch any collidable tile.
func (m *Tilemap) Overlaps(body *Body) bool {
	found := false
	m.OverlappingTiles(body.Bounds(), func(col, row, index int) {
		if m.Properties(index).Collisions != None {
			found = true
		}
	})
	return found
}

// Ray returns the first collidable tile hit by the segment from a to b and the hit point.
func (m *Tilemap) Ray(a, b vec.Vec2) (ref TileRef, point vec.Vec2, ok bool) {
	best := infinity
	region := NewAABB(a.X, a.Y, 0, 0).Expand(b)
	m.OverlappingTiles(region, func(col, row, index int) {
		if m.Properties(index).Collisions == None {
			return
		}
		if t := m.TileBounds(col, row).SegmentQuery(a, b); t < best {
			best = t
			ref = TileRef{Map: m, Col: col, Row: row, Index: index}
		}
	})
	if best == infinity {
		return TileRef{}, vec.Vec2{}, false
	}
	return ref, a.Lerp(b, best), true
}
