package components

import "github.com/decker502/wavearena/pkg/utils"

// PlayerComponent 玩家输入与冲刺状态
type PlayerComponent struct {
	// MoveInput 本帧移动输入（未归一化，长度>1 时会被截断）
	MoveInput utils.Vec2

	// Aim 瞄准方向（单位向量）
	Aim utils.Vec2

	// MoveSpeed 移动速度
	MoveSpeed float64

	// IsDashing 是否正在冲刺
	IsDashing bool

	// DashElapsed 本次冲刺已进行时间
	DashElapsed float64

	// DashDirection 冲刺方向（单位向量）
	DashDirection utils.Vec2

	// DashCooldownLeft 冲刺剩余冷却时间
	DashCooldownLeft float64

	// Kills 玩家击杀数
	Kills int
}
