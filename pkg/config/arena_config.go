package config

import (
	"fmt"

	"github.com/decker502/wavearena/pkg/embedded"
	"github.com/decker502/wavearena/pkg/types"
	"gopkg.in/yaml.v3"
)

// 默认配置文件路径（相对于嵌入数据根目录）
const (
	DefaultArenaConfigPath    = "data/arena.yaml"
	DefaultEnemyTypesPath     = "data/enemy_types.yaml"
	DefaultEnemyBehaviorPath  = "data/enemy_behavior.yaml"
	DefaultWeaponsConfigPath  = "data/weapons.yaml"
	defaultEnemyIncrease      = 10
	defaultTimeBetweenWaves   = 5.0
	defaultArenaRadius        = 40.0
	defaultBatchSize          = 5
	defaultPoolSize           = 200
	defaultPlayerSpeed        = 6.0
	defaultDashDistance       = 5.0
	defaultDashDuration       = 0.2
	defaultDashCooldown       = 2.0
	defaultCameraMoveSpeed    = 5.0
	defaultCameraFastSpeed    = 10.0
	defaultFirstPersonSmooth  = 5.0
	defaultPickupRadius       = 1.0
	defaultPickupLifetime     = 30.0
	defaultFirstPersonOffsetZ = 1.6
)

// defaultInitialWaveSizes 前三波的固定敌人数量，之后按 EnemyIncreasePerWave 线性增长
var defaultInitialWaveSizes = []int{30, 50, 70}

// ArenaConfig 竞技场配置数据结构
// 定义波次节奏、对象池大小、掉落、玩家与镜头参数
type ArenaConfig struct {
	Waves   WaveSettings   `yaml:"waves"`
	Pickups PickupSettings `yaml:"pickups"`
	Player  PlayerSettings `yaml:"player"`
	Camera  CameraSettings `yaml:"camera"`
}

// WaveSettings 波次配置
type WaveSettings struct {
	InitialSizes         []int    `yaml:"initialSizes"`         // 前 N 波的敌人数量，默认 [30, 50, 70]
	EnemyIncreasePerWave int      `yaml:"enemyIncreasePerWave"` // 超出 InitialSizes 后每波递增数量，默认 10
	TimeBetweenWaves     float64  `yaml:"timeBetweenWaves"`     // 清场后到下一波的间隔（秒），默认 5
	BatchSize            int      `yaml:"batchSize"`            // 每帧最多生成的敌人数，默认 5
	ArenaRadius          float64  `yaml:"arenaRadius"`          // 生成圆半径，默认 40
	SpawnJitter          float64  `yaml:"spawnJitter"`          // 生成半径随机扰动（可选），默认 0
	PoolSize             int      `yaml:"poolSize"`             // 预热对象池总容量，按类型平分，默认 200
	EnemyTypes           []string `yaml:"enemyTypes"`           // 参与随机的敌人类型，默认全部
}

// PickupSettings 弹药掉落配置
type PickupSettings struct {
	DropChance float64        `yaml:"dropChance"` // 敌人死亡掉落概率 [0,1]，默认 0（不掉落）
	Radius     float64        `yaml:"radius"`     // 拾取半径，默认 1
	Lifetime   float64        `yaml:"lifetime"`   // 掉落物存在时间（秒），默认 30
	Amounts    map[string]int `yaml:"amounts"`    // 每种弹药的掉落数量，如 rifle: 30
}

// PlayerSettings 玩家移动与冲刺配置
type PlayerSettings struct {
	MoveSpeed    float64 `yaml:"moveSpeed"`    // 移动速度（单位/秒），默认 6
	Radius       float64 `yaml:"radius"`       // 玩家碰撞半径，默认 0.5
	DashDistance float64 `yaml:"dashDistance"` // 冲刺距离，默认 5
	DashDuration float64 `yaml:"dashDuration"` // 冲刺持续时间（秒），默认 0.2
	DashCooldown float64 `yaml:"dashCooldown"` // 冲刺冷却（秒），默认 2
}

// CameraSettings 镜头配置
type CameraSettings struct {
	MoveSpeed              float64 `yaml:"moveSpeed"`              // 自由镜头速度，默认 5
	FastMoveSpeed          float64 `yaml:"fastMoveSpeed"`          // 加速时的自由镜头速度，默认 10
	FirstPersonSmoothSpeed float64 `yaml:"firstPersonSmoothSpeed"` // 第一人称跟随平滑系数，默认 5
	FirstPersonHeight      float64 `yaml:"firstPersonHeight"`      // 第一人称视点高度，默认 1.6
	StartFirstPerson       bool    `yaml:"startFirstPerson"`       // 是否以第一人称启动
}

// DefaultArenaConfig 返回应用了全部默认值的竞技场配置
func DefaultArenaConfig() *ArenaConfig {
	cfg := &ArenaConfig{}
	applyArenaDefaults(cfg)
	return cfg
}

// LoadArenaConfig 从 YAML 文件加载竞技场配置
// 参数：
//
//	filepath - 配置文件路径（"data/" 前缀从嵌入资源读取）
//
// 返回：
//
//	*ArenaConfig - 解析后的配置对象
//	error - 如果文件读取、解析或验证失败，返回错误信息
func LoadArenaConfig(filepath string) (*ArenaConfig, error) {
	data, err := embedded.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read arena config file %s: %w", filepath, err)
	}

	cfg, err := ParseArenaConfig(data)
	if err != nil {
		return nil, fmt.Errorf("arena config %s: %w", filepath, err)
	}
	return cfg, nil
}

// ParseArenaConfig 从 YAML 数据解析竞技场配置
//
// 先填入默认值再解码，YAML 中出现的字段覆盖默认值，
// 因此显式写 0（如 timeBetweenWaves: 0、poolSize: 0）会被保留。
func ParseArenaConfig(data []byte) (*ArenaConfig, error) {
	cfg := DefaultArenaConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateArenaConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid arena config: %w", err)
	}
	return cfg, nil
}

// applyArenaDefaults 为零值字段设置默认值
func applyArenaDefaults(cfg *ArenaConfig) {
	w := &cfg.Waves
	if len(w.InitialSizes) == 0 {
		w.InitialSizes = append([]int(nil), defaultInitialWaveSizes...)
	}
	if w.EnemyIncreasePerWave == 0 {
		w.EnemyIncreasePerWave = defaultEnemyIncrease
	}
	if w.TimeBetweenWaves == 0 {
		w.TimeBetweenWaves = defaultTimeBetweenWaves
	}
	if w.BatchSize == 0 {
		w.BatchSize = defaultBatchSize
	}
	if w.ArenaRadius == 0 {
		w.ArenaRadius = defaultArenaRadius
	}
	if w.PoolSize == 0 {
		w.PoolSize = defaultPoolSize
	}
	if len(w.EnemyTypes) == 0 {
		w.EnemyTypes = []string{"basic", "fast", "heavy"}
	}

	p := &cfg.Pickups
	if p.Radius == 0 {
		p.Radius = defaultPickupRadius
	}
	if p.Lifetime == 0 {
		p.Lifetime = defaultPickupLifetime
	}
	if p.Amounts == nil {
		p.Amounts = map[string]int{}
	}

	pl := &cfg.Player
	if pl.MoveSpeed == 0 {
		pl.MoveSpeed = defaultPlayerSpeed
	}
	if pl.Radius == 0 {
		pl.Radius = 0.5
	}
	if pl.DashDistance == 0 {
		pl.DashDistance = defaultDashDistance
	}
	if pl.DashDuration == 0 {
		pl.DashDuration = defaultDashDuration
	}
	if pl.DashCooldown == 0 {
		pl.DashCooldown = defaultDashCooldown
	}

	c := &cfg.Camera
	if c.MoveSpeed == 0 {
		c.MoveSpeed = defaultCameraMoveSpeed
	}
	if c.FastMoveSpeed == 0 {
		c.FastMoveSpeed = defaultCameraFastSpeed
	}
	if c.FirstPersonSmoothSpeed == 0 {
		c.FirstPersonSmoothSpeed = defaultFirstPersonSmooth
	}
	if c.FirstPersonHeight == 0 {
		c.FirstPersonHeight = defaultFirstPersonOffsetZ
	}
}

// validateArenaConfig 验证竞技场配置的合法性
func validateArenaConfig(cfg *ArenaConfig) error {
	w := cfg.Waves
	for i, size := range w.InitialSizes {
		if size < 0 {
			return fmt.Errorf("waves.initialSizes[%d]: cannot be negative, got %d", i, size)
		}
	}
	if w.EnemyIncreasePerWave < 0 {
		return fmt.Errorf("waves.enemyIncreasePerWave: cannot be negative, got %d", w.EnemyIncreasePerWave)
	}
	if w.TimeBetweenWaves < 0 {
		return fmt.Errorf("waves.timeBetweenWaves: cannot be negative, got %.2f", w.TimeBetweenWaves)
	}
	if w.BatchSize < 1 {
		return fmt.Errorf("waves.batchSize: must be at least 1, got %d", w.BatchSize)
	}
	if w.ArenaRadius <= 0 {
		return fmt.Errorf("waves.arenaRadius: must be positive, got %.2f", w.ArenaRadius)
	}
	if w.SpawnJitter < 0 || w.SpawnJitter >= w.ArenaRadius {
		return fmt.Errorf("waves.spawnJitter: must be in [0, arenaRadius), got %.2f", w.SpawnJitter)
	}
	if w.PoolSize < 0 {
		return fmt.Errorf("waves.poolSize: cannot be negative, got %d", w.PoolSize)
	}
	if _, err := ParseEnemyTypeList(w.EnemyTypes); err != nil {
		return fmt.Errorf("waves.enemyTypes: %w", err)
	}

	p := cfg.Pickups
	if p.DropChance < 0 || p.DropChance > 1 {
		return fmt.Errorf("pickups.dropChance: must be in [0, 1], got %.2f", p.DropChance)
	}
	if p.Radius < 0 || p.Lifetime < 0 {
		return fmt.Errorf("pickups: radius and lifetime cannot be negative")
	}
	for name, amount := range p.Amounts {
		if _, err := parseAmmoType(name); err != nil {
			return fmt.Errorf("pickups.amounts: %w", err)
		}
		if amount <= 0 {
			return fmt.Errorf("pickups.amounts.%s: must be positive, got %d", name, amount)
		}
	}

	pl := cfg.Player
	if pl.MoveSpeed < 0 || pl.DashDistance < 0 || pl.DashDuration <= 0 || pl.DashCooldown < 0 {
		return fmt.Errorf("player: speeds and dash timings must be non-negative and dashDuration positive")
	}

	c := cfg.Camera
	if c.MoveSpeed < 0 || c.FastMoveSpeed < 0 || c.FirstPersonSmoothSpeed < 0 {
		return fmt.Errorf("camera: speeds cannot be negative")
	}
	return nil
}

// EnemiesForWave 计算指定波次（从 1 开始）的敌人总数
//
// 前 len(InitialSizes) 波使用固定数量，之后在最后一个固定值基础上线性递增：
// 默认配置下 1→30、2→50、3→70、n→70+(n-3)*10。
func (w WaveSettings) EnemiesForWave(wave int) int {
	if wave < 1 {
		return 0
	}
	if len(w.InitialSizes) == 0 {
		return wave * w.EnemyIncreasePerWave
	}
	if wave <= len(w.InitialSizes) {
		return w.InitialSizes[wave-1]
	}
	last := w.InitialSizes[len(w.InitialSizes)-1]
	return last + (wave-len(w.InitialSizes))*w.EnemyIncreasePerWave
}

// AmountsByType 将掉落数量表转换为按弹药类型索引的映射
func (p PickupSettings) AmountsByType() map[types.AmmoType]int {
	result := make(map[types.AmmoType]int, len(p.Amounts))
	for name, amount := range p.Amounts {
		if t, ok := types.AmmoTypeFromString(name); ok {
			result[t] = amount
		}
	}
	return result
}
