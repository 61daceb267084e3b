package config

import (
	"fmt"

	"github.com/decker502/wavearena/pkg/embedded"
	"github.com/decker502/wavearena/pkg/types"
	"gopkg.in/yaml.v3"
)

// EnemyTypeStats 单个敌人类型相对基础值的修正系数
type EnemyTypeStats struct {
	SpeedMultiplier  float64 `yaml:"speedMultiplier"`  // 移动速度倍率
	HealthMultiplier float64 `yaml:"healthMultiplier"` // 生命值倍率
	ScaleMultiplier  float64 `yaml:"scaleMultiplier"`  // 体型倍率
	AgentRadius      float64 `yaml:"agentRadius"`      // 导航/碰撞半径
	Damage           float64 `yaml:"damage"`           // 接触伤害（预留，当前未消费）
}

// EnemyTypesConfig 敌人类型配置
//
// 所有敌人共享一组基础数值，类型只提供倍率。
// Initialize 时总是从基础值重新计算，重复复用不会叠加倍率。
type EnemyTypesConfig struct {
	BaseMoveSpeed    float64                   `yaml:"baseMoveSpeed"`
	BaseHealth       float64                   `yaml:"baseHealth"`
	BaseScale        float64                   `yaml:"baseScale"`
	StoppingDistance float64                   `yaml:"stoppingDistance"`
	Types            map[string]EnemyTypeStats `yaml:"types"`
}

// 原型中的默认值
var defaultEnemyTypeStats = map[types.EnemyType]EnemyTypeStats{
	types.EnemyBasic: {SpeedMultiplier: 1.0, HealthMultiplier: 1.0, ScaleMultiplier: 1.0, AgentRadius: 0.5},
	types.EnemyFast:  {SpeedMultiplier: 1.8, HealthMultiplier: 0.7, ScaleMultiplier: 0.8, AgentRadius: 0.4},
	types.EnemyHeavy: {SpeedMultiplier: 0.5, HealthMultiplier: 1.8, ScaleMultiplier: 1.3, AgentRadius: 0.8},
}

// DefaultEnemyTypesConfig 返回默认的敌人类型配置
func DefaultEnemyTypesConfig() *EnemyTypesConfig {
	cfg := &EnemyTypesConfig{}
	applyEnemyTypesDefaults(cfg)
	return cfg
}

// LoadEnemyTypesConfig 从 YAML 文件加载敌人类型配置
// 参数：
//
//	filepath - 配置文件路径
//
// 返回：
//
//	*EnemyTypesConfig - 解析后的配置对象
//	error - 如果文件读取、解析或验证失败，返回错误信息
func LoadEnemyTypesConfig(filepath string) (*EnemyTypesConfig, error) {
	data, err := embedded.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read enemy types file %s: %w", filepath, err)
	}

	var cfg EnemyTypesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse enemy types YAML %s: %w", filepath, err)
	}

	applyEnemyTypesDefaults(&cfg)

	if err := validateEnemyTypesConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid enemy types config %s: %w", filepath, err)
	}
	return &cfg, nil
}

func applyEnemyTypesDefaults(cfg *EnemyTypesConfig) {
	if cfg.BaseMoveSpeed == 0 {
		cfg.BaseMoveSpeed = 3.5
	}
	if cfg.BaseHealth == 0 {
		cfg.BaseHealth = 100
	}
	if cfg.BaseScale == 0 {
		cfg.BaseScale = 1.0
	}
	if cfg.StoppingDistance == 0 {
		cfg.StoppingDistance = 0.1
	}
	if cfg.Types == nil {
		cfg.Types = make(map[string]EnemyTypeStats)
	}

	// 未配置的类型或字段使用原型默认值
	for enemyType, def := range defaultEnemyTypeStats {
		name := enemyType.String()
		stats, ok := cfg.Types[name]
		if !ok {
			cfg.Types[name] = def
			continue
		}
		if stats.SpeedMultiplier == 0 {
			stats.SpeedMultiplier = def.SpeedMultiplier
		}
		if stats.HealthMultiplier == 0 {
			stats.HealthMultiplier = def.HealthMultiplier
		}
		if stats.ScaleMultiplier == 0 {
			stats.ScaleMultiplier = def.ScaleMultiplier
		}
		if stats.AgentRadius == 0 {
			stats.AgentRadius = def.AgentRadius
		}
		cfg.Types[name] = stats
	}
}

func validateEnemyTypesConfig(cfg *EnemyTypesConfig) error {
	if cfg.BaseMoveSpeed < 0 {
		return fmt.Errorf("baseMoveSpeed: cannot be negative, got %.2f", cfg.BaseMoveSpeed)
	}
	if cfg.BaseHealth <= 0 {
		return fmt.Errorf("baseHealth: must be positive, got %.2f", cfg.BaseHealth)
	}
	if cfg.BaseScale <= 0 {
		return fmt.Errorf("baseScale: must be positive, got %.2f", cfg.BaseScale)
	}
	for name, stats := range cfg.Types {
		if !types.EnemyTypeFromString(name).IsValid() {
			return fmt.Errorf("types.%s: unknown enemy type", name)
		}
		if stats.SpeedMultiplier < 0 || stats.HealthMultiplier <= 0 || stats.ScaleMultiplier <= 0 {
			return fmt.Errorf("types.%s: multipliers must be positive", name)
		}
		if stats.AgentRadius <= 0 {
			return fmt.Errorf("types.%s: agentRadius must be positive, got %.2f", name, stats.AgentRadius)
		}
	}
	return nil
}

// Stats 返回指定类型的修正系数，未知类型返回 Basic 的系数
func (c *EnemyTypesConfig) Stats(enemyType types.EnemyType) EnemyTypeStats {
	if stats, ok := c.Types[enemyType.String()]; ok {
		return stats
	}
	if stats, ok := c.Types[types.EnemyBasic.String()]; ok {
		return stats
	}
	return defaultEnemyTypeStats[types.EnemyBasic]
}

// ParseEnemyTypeList 将类型名列表解析为 EnemyType
func ParseEnemyTypeList(names []string) ([]types.EnemyType, error) {
	result := make([]types.EnemyType, 0, len(names))
	for _, name := range names {
		t := types.EnemyTypeFromString(name)
		if !t.IsValid() {
			return nil, fmt.Errorf("unknown enemy type %q", name)
		}
		result = append(result, t)
	}
	if len(result) == 0 {
		return nil, fmt.Errorf("at least one enemy type is required")
	}
	return result, nil
}
