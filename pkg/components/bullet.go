package components

import (
	"github.com/decker502/wavearena/pkg/ecs"
	"github.com/decker502/wavearena/pkg/utils"
)

// BulletComponent 子弹数据
// 子弹直线飞行，飞行距离超过 Range 或命中敌人后销毁
type BulletComponent struct {
	Owner     ecs.EntityID // 射击者
	Damage    float64      // 命中伤害
	Direction utils.Vec2   // 单位方向
	Speed     float64      // 速度（单位/秒）
	Range     float64      // 最大飞行距离
	Traveled  float64      // 已飞行距离
	Hit       bool         // 是否已命中（命中后同帧不再结算）
}
