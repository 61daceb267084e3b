package components

// HealthComponent 存储实体的生命值信息
// 用于敌人等可被攻击的实体
type HealthComponent struct {
	Current float64 // 当前生命值
	Max     float64 // 最大生命值
	// Depleted 本条命是否已经发布过 HealthDepleted（防止重复触发死亡）
	Depleted bool
}
