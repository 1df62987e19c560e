package raster

// Point is a vertex in window coordinates (pixels, y down).
type Point struct {
	X, Y float64
}

// Edge is a non-horizontal line segment, stored with y0 < y1.
type Edge struct {
	x0, y0 float64
	x1, y1 float64
	dir    int // +1 when the segment points down, -1 when it points up
}

// NewEdge creates a new edge from two points.
func NewEdge(p0, p1 Point) Edge {
	// Direction is taken before the swap so winding survives it.
	dir := 1
	if p0.Y > p1.Y {
		dir = -1
		p0, p1 = p1, p0
	}
	return Edge{x0: p0.X, y0: p0.Y, x1: p1.X, y1: p1.Y, dir: dir}
}

// XAtY returns the x coordinate of the edge at y.
func (e *Edge) XAtY(y float64) float64 {
	if e.y1 == e.y0 {
		return e.x0
	}
	t := (y - e.y0) / (e.y1 - e.y0)
	return e.x0 + (e.x1-e.x0)*t
}

// Crosses reports whether the scanline at y intersects the edge.
// The range is half-open so a shared vertex is counted once.
func (e *Edge) Crosses(y float64) bool {
	return e.y0 <= y && y < e.y1
}

// ActiveEdge is an edge crossing the current scanline.
type ActiveEdge struct {
	x   float64
	dir int
}

// ActiveEdgeTable holds the edges crossing one scanline.
type ActiveEdgeTable struct {
	edges []ActiveEdge
}

// NewActiveEdgeTable creates a new active edge table.
func NewActiveEdgeTable() *ActiveEdgeTable {
	return &ActiveEdgeTable{
		edges: make([]ActiveEdge, 0, 16),
	}
}

// AddAtY adds an edge with x computed for the given y.
func (aet *ActiveEdgeTable) AddAtY(edge Edge, y float64) {
	aet.edges = append(aet.edges, ActiveEdge{x: edge.XAtY(y), dir: edge.dir})
}

// Sort sorts edges by x coordinate (insertion sort for small lists).
func (aet *ActiveEdgeTable) Sort() {
	for i := 1; i < len(aet.edges); i++ {
		key := aet.edges[i]
		j := i - 1
		for j >= 0 && aet.edges[j].x > key.x {
			aet.edges[j+1] = aet.edges[j]
			j--
		}
		aet.edges[j+1] = key
	}
}

// Edges returns the active edges.
func (aet *ActiveEdgeTable) Edges() []ActiveEdge {
	return aet.edges
}

// Clear clears all edges.
func (aet *ActiveEdgeTable) Clear() {
	aet.edges = aet.edges[:0]
}
