package components

import "github.com/decker502/wavearena/pkg/utils"

// PositionComponent 实体在竞技场地面平面上的位置
// 竞技场中心为原点 (0,0)
type PositionComponent struct {
	Pos    utils.Vec2 // 世界坐标
	Facing float64    // 朝向角（度），X 正方向为 0
}

// VelocityComponent 实体的速度（单位/秒）
type VelocityComponent struct {
	Vel utils.Vec2
}
