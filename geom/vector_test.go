package geom

import "testing"

func TestInCircumcircle(t *testing.T) {
	// Unit right triangle, circumcircle through (0,0),(1,0),(0,1),
	// centered at (0.5,0.5) with radius sqrt(0.5).
	a, b, c := Vert(0, 0, true), Vert(1, 0, true), Vert(0, 1, true)
	tests := []struct {
		name string
		p    Vertex
		in   bool
	}{
		{"center", Vert(0.5, 0.5, true), true},
		{"far outside", Vert(3, 3, true), false},
		{"on circle", Vert(1, 1, true), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InCircumcircle(a, b, c, tt.p); got != tt.in {
				t.Errorf("InCircumcircle(%v) = %v, want %v", tt.p, got, tt.in)
			}
		})
	}
}

func TestSegmentsIntersect(t *testing.T) {
	tests := []struct {
		name           string
		p1, p2, q1, q2 Vertex
		want           bool
	}{
		{"crossing", Vert(0, 0, true), Vert(4, 4, true), Vert(0, 4, true), Vert(4, 0, true), true},
		{"parallel", Vert(0, 0, true), Vert(4, 0, true), Vert(0, 1, true), Vert(4, 1, true), false},
		{"shared endpoint", Vert(0, 0, true), Vert(4, 4, true), Vert(4, 4, true), Vert(8, 0, true), false},
		{"touching mid", Vert(0, 0, true), Vert(4, 0, true), Vert(2, 0, true), Vert(2, 4, true), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SegmentsIntersect(tt.p1, tt.p2, tt.q1, tt.q2); got != tt.want {
				t.Errorf("SegmentsIntersect = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPointInPolygon(t *testing.T) {
	poly := []Vertex{Vert(0, 0, true), Vert(4, 0, true), Vert(4, 4, true), Vert(0, 4, true)}
	if !PointInPolygon(poly, Vert(2, 2, true)) {
		t.Error("center must be inside")
	}
	if PointInPolygon(poly, Vert(5, 2, true)) {
		t.Error("outside point reported inside")
	}
}

func TestInTriangle(t *testing.T) {
	a, b, c := Vert(0, 0, true), Vert(4, 0, true), Vert(0, 4, true)
	if !InTriangle(a, b, c, Vert(1, 1, true)) {
		t.Error("interior point not detected")
	}
	if InTriangle(a, b, c, Vert(3, 3, true)) {
		t.Error("exterior point reported inside")
	}
	if InTriangle(a, b, c, Vert(2, 0, true)) {
		t.Error("border point must be excluded")
	}
}
