package components

// CollisionComponent 定义实体的圆形碰撞边界
// 用于子弹与敌人、玩家与掉落物之间的重叠检测
//
// 实际半径 = Radius * ScaleComponent.Current（若实体有缩放组件）
type CollisionComponent struct {
	Radius float64 // 基础碰撞半径（世界单位）
}
