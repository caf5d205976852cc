package geom

import (
	"math"
	"testing"
)

func TestRectIntersects(t *testing.T) {
	base := Rect{X: 0, Y: 0, W: 10, H: 10}

	tests := []struct {
		name  string
		other Rect
		want  bool
	}{
		{"完全重叠", Rect{X: 0, Y: 0, W: 10, H: 10}, true},
		{"部分重叠", Rect{X: 5, Y: 5, W: 10, H: 10}, true},
		{"包含", Rect{X: 2, Y: 2, W: 2, H: 2}, true},
		{"被包含", Rect{X: -5, Y: -5, W: 30, H: 30}, true},
		{"右边缘接触", Rect{X: 10, Y: 0, W: 5, H: 5}, true},
		{"下边缘接触", Rect{X: 0, Y: 10, W: 5, H: 5}, true},
		{"X 轴分离", Rect{X: 10.5, Y: 0, W: 5, H: 5}, false},
		{"Y 轴分离", Rect{X: 0, Y: -6, W: 5, H: 5}, false},
		// 十字交叉：没有任何角点落在对方内部，角点检测会漏判
		{"十字交叉", Rect{X: 3, Y: -5, W: 4, H: 20}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Intersects(tt.other); got != tt.want {
				t.Errorf("Intersects(%+v) = %v, want %v", tt.other, got, tt.want)
			}
			if got := tt.other.Intersects(base); got != tt.want {
				t.Errorf("reverse Intersects(%+v) = %v, want %v", tt.other, got, tt.want)
			}
		})
	}
}

func TestWrapIndex(t *testing.T) {
	tests := []struct {
		i, n, want int
	}{
		{0, 7, 0},
		{6, 7, 6},
		{7, 7, 0},
		{15, 7, 1},
		{-1, 7, 0},
		{-8, 7, 0},
		{3, 0, 0},
	}
	for _, tt := range tests {
		if got := WrapIndex(tt.i, tt.n); got != tt.want {
			t.Errorf("WrapIndex(%d, %d) = %d, want %d", tt.i, tt.n, got, tt.want)
		}
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(5.0, 0.0, 3.0); got != 3.0 {
		t.Errorf("Clamp upper = %v", got)
	}
	if got := Clamp(-1, 0, 3); got != 0 {
		t.Errorf("Clamp lower = %v", got)
	}
}

func TestFromDegrees(t *testing.T) {
	v := FromDegrees(90)
	if math.Abs(v.X) > 1e-9 || math.Abs(v.Y-1) > 1e-9 {
		t.Errorf("FromDegrees(90) = %+v, want (0, 1)", v)
	}
	n := Vec2{X: 3, Y: 4}.Normalize()
	if math.Abs(n.Len()-1) > 1e-9 {
		t.Errorf("Normalize length = %v", n.Len())
	}
}
