package utils

import "math"

// Lerp 线性插值
// 在 a 和 b 之间根据 t 插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// LerpVec 向量线性插值
func LerpVec(a, b Vec2, t float64) Vec2 {
	return Vec2{Lerp(a.X, b.X, t), Lerp(a.Y, b.Y, t)}
}

// Clamp 将 v 限制在 [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 将 v 限制在 [0, 1]
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// EaseOutQuad 二次方缓出
// 特点：开始较快，结束慢
// 公式：f(t) = 1 - (1-t)²
func EaseOutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// SmoothFactor 帧率无关的平滑系数
//
// 等价于每帧执行 Lerp(current, target, speed*dt)，但在 dt 较大时不会越过目标。
// 公式：f = 1 - e^(-speed*dt)
func SmoothFactor(speed, dt float64) float64 {
	if speed <= 0 || dt <= 0 {
		return 0
	}
	return 1 - math.Exp(-speed*dt)
}

// MoveTowardsAngle 以最大步长 maxDelta（度）将角度 current 转向 target，走最短方向
func MoveTowardsAngle(current, target, maxDelta float64) float64 {
	delta := math.Mod(target-current, 360)
	if delta > 180 {
		delta -= 360
	} else if delta < -180 {
		delta += 360
	}
	if math.Abs(delta) <= maxDelta {
		return current + delta
	}
	return current + math.Copysign(maxDelta, delta)
}
