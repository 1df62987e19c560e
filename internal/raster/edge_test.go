package raster

import "testing"

func TestNewEdgeDirection(t *testing.T) {
	down := NewEdge(Point{0, 0}, Point{4, 8})
	up := NewEdge(Point{4, 8}, Point{0, 0})

	if down.dir != 1 || up.dir != -1 {
		t.Errorf("dir = %d, %d, want 1, -1", down.dir, up.dir)
	}
	if down.y0 != 0 || up.y0 != 0 || up.y1 != 8 {
		t.Errorf("edges not ordered by y: %+v %+v", down, up)
	}
}

func TestEdgeXAtY(t *testing.T) {
	e := NewEdge(Point{0, 0}, Point{4, 8})
	tests := []struct {
		y, want float64
	}{
		{0, 0},
		{2, 1},
		{4, 2},
		{8, 4},
	}
	for _, tt := range tests {
		if got := e.XAtY(tt.y); got != tt.want {
			t.Errorf("XAtY(%v) = %v, want %v", tt.y, got, tt.want)
		}
	}

	flat := NewEdge(Point{3, 5}, Point{9, 5})
	if got := flat.XAtY(5); got != 3 {
		t.Errorf("horizontal XAtY = %v, want 3", got)
	}
}

func TestEdgeCrossesHalfOpen(t *testing.T) {
	e := NewEdge(Point{0, 2}, Point{0, 6})
	tests := []struct {
		y    float64
		want bool
	}{
		{1.5, false},
		{2, true},
		{5.5, true},
		{6, false},
	}
	for _, tt := range tests {
		if got := e.Crosses(tt.y); got != tt.want {
			t.Errorf("Crosses(%v) = %v, want %v", tt.y, got, tt.want)
		}
	}
}

func TestActiveEdgeTableSort(t *testing.T) {
	aet := NewActiveEdgeTable()
	for _, x := range []float64{7, 1, 5, 3} {
		aet.AddAtY(NewEdge(Point{x, 0}, Point{x, 10}), 4)
	}
	aet.Sort()

	edges := aet.Edges()
	if len(edges) != 4 {
		t.Fatalf("len = %d, want 4", len(edges))
	}
	for i := 1; i < len(edges); i++ {
		if edges[i-1].x > edges[i].x {
			t.Errorf("edges not sorted: %v", edges)
		}
	}

	aet.Clear()
	if len(aet.Edges()) != 0 {
		t.Error("Clear left edges behind")
	}
}
