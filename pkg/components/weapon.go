package components

import (
	"github.com/decker502/wavearena/pkg/config"
	"github.com/decker502/wavearena/pkg/types"
)

// WeaponComponent 当前持有武器的运行时状态
type WeaponComponent struct {
	// Config 武器参数，nil 表示未装备武器
	Config *config.WeaponConfig

	// Magazine 弹匣中剩余子弹
	Magazine int

	// IsEmpty 弹匣是否打空（打空后需要换弹才能继续射击）
	IsEmpty bool

	// IsReloading 是否正在换弹
	IsReloading bool

	// ReloadTimer 当前换弹阶段已过时间（秒）
	// 整匣换弹：累计到 ReloadTime 时完成；逐发装填：每达到 ShellReloadTime 装入一发
	ReloadTimer float64

	// FireCooldown 距离下次可射击的剩余时间（秒）
	FireCooldown float64

	// ShotsFired 累计射击次数（统计用）
	ShotsFired int
}

// AmmoInventoryComponent 备弹背包
type AmmoInventoryComponent struct {
	// Counts 按弹药类型索引的备弹数量
	Counts map[types.AmmoType]int
}
