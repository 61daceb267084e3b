package event

import (
	"github.com/decker502/wavearena/pkg/ecs"
	"github.com/decker502/wavearena/pkg/types"
)

// 事件类型
const (
	HealthChanged     EventType = "HealthChanged"     // 生命值变化
	HealthDepleted    EventType = "HealthDepleted"    // 生命值归零（每条命只发一次）
	EnemyDied         EventType = "EnemyDied"         // 敌人死亡（每条命只发一次）
	EnemyReadyForPool EventType = "EnemyReadyForPool" // 敌人死亡延迟结束，可以回收
	WaveStarted       EventType = "WaveStarted"       // 新一波开始生成
	WaveCleared       EventType = "WaveCleared"       // 当前波敌人全部消灭
	AmmoChanged       EventType = "AmmoChanged"       // 备弹数量变化
	WeaponEmpty       EventType = "WeaponEmpty"       // 弹匣为空时扣动扳机
	ReloadStarted     EventType = "ReloadStarted"     // 开始换弹
	ReloadProgress    EventType = "ReloadProgress"    // 换弹进度
	ReloadCompleted   EventType = "ReloadCompleted"   // 换弹完成
	ReloadCancelled   EventType = "ReloadCancelled"   // 换弹被中断
	PickupCollected   EventType = "PickupCollected"   // 拾取弹药
)

// HealthChangedData HealthChanged 负载
type HealthChangedData struct {
	Entity  ecs.EntityID
	Current float64
	Max     float64
}

// EntityData 仅携带实体 ID 的负载（HealthDepleted / EnemyDied / EnemyReadyForPool）
type EntityData struct {
	Entity ecs.EntityID
}

// WaveData WaveStarted / WaveCleared 负载
type WaveData struct {
	Wave    int
	Enemies int
}

// AmmoChangedData AmmoChanged 负载
type AmmoChangedData struct {
	Owner    ecs.EntityID
	AmmoType types.AmmoType
	Amount   int
}

// WeaponData 武器相关负载（WeaponEmpty / ReloadStarted / ReloadCompleted / ReloadCancelled）
type WeaponData struct {
	Owner    ecs.EntityID
	Weapon   string
	Magazine int
	Reserve  int
}

// ReloadProgressData ReloadProgress 负载，Progress 取值 [0,1]
type ReloadProgressData struct {
	Owner    ecs.EntityID
	Progress float64
}

// PickupData PickupCollected 负载
type PickupData struct {
	Collector ecs.EntityID
	AmmoType  types.AmmoType
	Amount    int
}
