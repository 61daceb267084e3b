package components

import "github.com/decker502/wavearena/pkg/types"

// EnemyComponent 敌人的身份与生命周期状态
//
// 对象池中的敌人同样持有该组件，Active=false 表示在池中闲置，
// 此时所有系统都应跳过它。
type EnemyComponent struct {
	Type types.EnemyType

	// MoveSpeed 按类型修正后的移动速度（每次 Initialize 从基础值重新计算）
	MoveSpeed float64

	// Active 是否在场上（false 表示在对象池中）
	Active bool

	// Dead 是否已死亡（死亡后仍保持 Active 直到回收延迟结束）
	Dead bool

	// DeathReported 本条命是否已发布 EnemyDied
	DeathReported bool

	// Lives 被激活的次数（调试用，观察对象池复用）
	Lives int
}
