package components

// ScaleComponent 存储实体级别的统一缩放因子
// 用于出生动画（从 0 放大）和重型敌人蓄力时的脉冲效果
//
// Original 是按敌人类型计算出的基础体型，状态退出时恢复到该值；
// Current 是当前帧使用的缩放，渲染与碰撞半径都以它为准。
type ScaleComponent struct {
	// Current 当前缩放（1.0 = 原始大小）
	Current float64

	// Original 基础缩放
	Original float64
}
