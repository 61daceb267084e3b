package components

import "github.com/decker502/wavearena/pkg/utils"

// NavAgentComponent 直线转向导航代理
//
// 状态负责设置目的地与速度参数，NavigationSystem 每帧据此推进位置。
// 竞技场是无障碍的圆形区域，路径即为到目的地的直线。
type NavAgentComponent struct {
	// Enabled 代理是否启用（出生动画期间禁用）
	Enabled bool

	// IsStopped 是否停止移动（保留目的地，只是不前进）
	IsStopped bool

	// HasPath 是否有有效目的地
	HasPath bool

	// Destination 目的地
	Destination utils.Vec2

	// Speed 最大移动速度（单位/秒）
	Speed float64

	// Acceleration 加速度（单位/秒²）
	Acceleration float64

	// AngularSpeed 转向速度（度/秒）
	AngularSpeed float64

	// StoppingDistance 距离目的地小于该值视为到达
	StoppingDistance float64

	// Radius 代理半径
	Radius float64

	// RemainingDistance 到目的地的剩余距离，由 NavigationSystem 维护
	RemainingDistance float64
}
