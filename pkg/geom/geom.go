// Package geom 提供引擎使用的二维几何基础类型
//
// 坐标系约定：原点在左上角，X 向右增加，Y 向下增加（与 Ebitengine 一致）。
package geom

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Vec2 二维浮点向量（像素）
type Vec2 struct {
	X float64
	Y float64
}

// Add 返回 v + o
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub 返回 v - o
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale 返回 v * s
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Len 返回向量长度
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalize 返回单位向量，零向量原样返回
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

// FromDegrees 返回指定角度（度）方向上的单位向量
// 0° 指向 +X，90° 指向 +Y（屏幕向下）
func FromDegrees(deg float64) Vec2 {
	rad := deg * math.Pi / 180
	return Vec2{X: math.Cos(rad), Y: math.Sin(rad)}
}

// Rect 轴对齐矩形，(X, Y) 为左上角
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

// Min 返回左上角
func (r Rect) Min() Vec2 { return Vec2{X: r.X, Y: r.Y} }

// Max 返回右下角
func (r Rect) Max() Vec2 { return Vec2{X: r.X + r.W, Y: r.Y + r.H} }

// Contains 检查点是否位于矩形内（边界包含在内）
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// Intersects 检查两个矩形是否相交
//
// 两个矩形相交当且仅当它们在 X 轴和 Y 轴上的区间都重叠。
// 边缘恰好接触视为相交。
func (r Rect) Intersects(o Rect) bool {
	return Overlaps(r.X, r.X+r.W, o.X, o.X+o.W) &&
		Overlaps(r.Y, r.Y+r.H, o.Y, o.Y+o.H)
}

// Overlaps 检查闭区间 [aMin, aMax] 与 [bMin, bMax] 是否重叠
func Overlaps(aMin, aMax, bMin, bMax float64) bool {
	return aMax >= bMin && aMin <= bMax
}

// Clamp 将 v 限制在 [lo, hi] 范围内
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// WrapIndex 将索引按 n 取模
// 取模结果为负数时钳制到 0（不再二次回绕），n <= 0 时返回 0
func WrapIndex[T constraints.Integer](i, n T) T {
	if n <= 0 {
		return 0
	}
	i %= n
	if i < 0 {
		return 0
	}
	return i
}
