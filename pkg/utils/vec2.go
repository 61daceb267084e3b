package utils

import "math"

// Vec2 竞技场地面平面上的二维向量（X 向右，Y 向前）
//
// 竞技场是平坦圆形区域，所有移动都发生在地面平面上，因此不需要高度分量。
type Vec2 struct {
	X, Y float64
}

// V 构造 Vec2
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add 向量加法
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub 向量减法
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale 数乘
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Dot 点积
func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

// Len 向量长度
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// IsZero 是否为零向量
func (v Vec2) IsZero() bool { return v.X == 0 && v.Y == 0 }

// Normalize 单位化，零向量返回零向量
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Perp 逆时针旋转 90 度得到的垂直向量
func (v Vec2) Perp() Vec2 { return Vec2{-v.Y, v.X} }

// Rotate 逆时针旋转 degrees 度
func (v Vec2) Rotate(degrees float64) Vec2 {
	rad := degrees * math.Pi / 180
	sin, cos := math.Sincos(rad)
	return Vec2{v.X*cos - v.Y*sin, v.X*sin + v.Y*cos}
}

// Distance 两点距离
func (v Vec2) Distance(o Vec2) float64 { return v.Sub(o).Len() }

// ClampLength 将长度限制在 max 以内
func (v Vec2) ClampLength(max float64) Vec2 {
	l := v.Len()
	if l <= max || l == 0 {
		return v
	}
	return v.Scale(max / l)
}

// Angle 向量方向角（度），X 正方向为 0
func (v Vec2) Angle() float64 {
	return math.Atan2(v.Y, v.X) * 180 / math.Pi
}

// FromAngle 由方向角（度）构造单位向量
func FromAngle(degrees float64) Vec2 {
	rad := degrees * math.Pi / 180
	sin, cos := math.Sincos(rad)
	return Vec2{cos, sin}
}

// MoveTowards 以最大步长 maxDelta 从 current 向 target 靠近
func MoveTowards(current, target Vec2, maxDelta float64) Vec2 {
	diff := target.Sub(current)
	dist := diff.Len()
	if dist <= maxDelta || dist == 0 {
		return target
	}
	return current.Add(diff.Scale(maxDelta / dist))
}
