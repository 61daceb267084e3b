package snapshot

import "time"

// RunResult 一局结束时的成绩
type RunResult struct {
	Wave    int
	Kills   int
	Seconds float64
}

// ArenaSnapshotVersion 快照版本号
// 用于版本兼容性检查，当数据结构发生不兼容变更时递增
const ArenaSnapshotVersion = 1

// ArenaSnapshot 竞技场状态快照
//
// 包含调度状态与所有在场实体，供离线分析与回归比对使用。
// 使用 gob 二进制格式序列化。
type ArenaSnapshot struct {
	// 版本和元数据
	Version  int       // 快照版本号
	SaveTime time.Time // 保存时间
	Seed     int64     // 随机种子
	Elapsed  float64   // 模拟已进行时间（秒）

	Wave WaveSnapshot

	// 实体数据
	Player  *PlayerSnapshot  // 玩家（可选）
	Enemies []EnemySnapshot  // 在场敌人（不含池中闲置的）
	Bullets []BulletSnapshot // 飞行中的子弹
	Pickups []PickupSnapshot // 地面上的掉落物

	// StateCounts 各 AI 状态的敌人数量
	StateCounts map[string]int
}

// WaveSnapshot 波次调度状态
type WaveSnapshot struct {
	Wave          int
	Phase         string
	ActiveEnemies int
	TotalSpawned  int
	TotalKilled   int
	Paused        bool
	Waiting       bool
	PoolSize      int
}

// PlayerSnapshot 玩家状态
type PlayerSnapshot struct {
	X, Y     float64
	Facing   float64
	Kills    int
	Weapon   string
	Magazine int
	Ammo     map[string]int // 弹药类型名 -> 备弹
}

// EnemySnapshot 单个敌人
type EnemySnapshot struct {
	ID        uint64
	Type      string
	State     string
	X, Y      float64
	Health    float64
	MaxHealth float64
	Lives     int // 第几次被对象池激活
}

// BulletSnapshot 单颗子弹
type BulletSnapshot struct {
	X, Y       float64
	DirX, DirY float64
	Traveled   float64
}

// PickupSnapshot 单个掉落物
type PickupSnapshot struct {
	AmmoType string
	Amount   int
	X, Y     float64
}
