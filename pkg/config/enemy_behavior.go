package config

import (
	"fmt"

	"github.com/decker502/wavearena/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// EnemyBehaviorConfig 敌人各状态的计时与导航参数
type EnemyBehaviorConfig struct {
	Spawning SpawningTuning `yaml:"spawning"`
	Basic    BasicTuning    `yaml:"basic"`
	Zigzag   ZigzagTuning   `yaml:"zigzag"`
	Heavy    HeavyTuning    `yaml:"heavy"`
	Dead     DeadTuning     `yaml:"dead"`
}

// SpawningTuning 出生状态参数
type SpawningTuning struct {
	Duration float64 `yaml:"duration"` // 缩放动画时长（秒），默认 1.0
}

// BasicTuning 普通移动状态参数
type BasicTuning struct {
	DestinationUpdateRate float64 `yaml:"destinationUpdateRate"` // 重新选点间隔（秒），默认 1.0
	TargetRadius          float64 `yaml:"targetRadius"`          // 目标点距中心的最大半径，默认 2
	Acceleration          float64 `yaml:"acceleration"`          // 默认 6
	AngularSpeed          float64 `yaml:"angularSpeed"`          // 度/秒，默认 180
}

// ZigzagTuning 之字形移动状态参数
type ZigzagTuning struct {
	Interval          float64 `yaml:"interval"`          // 变向间隔（秒），默认 1.2
	ArriveDistance    float64 `yaml:"arriveDistance"`    // 剩余距离小于该值时提前变向，默认 3
	DestinationRadius float64 `yaml:"destinationRadius"` // 目标点距离自身的长度，默认 12
	Strength          float64 `yaml:"strength"`          // 侧向偏移幅度，偏移取 U(-strength, strength)，默认 0.5
	Acceleration      float64 `yaml:"acceleration"`      // 默认 8
	AngularSpeed      float64 `yaml:"angularSpeed"`      // 默认 270
}

// HeavyTuning 蓄力冲撞状态参数
type HeavyTuning struct {
	PrepareTime         float64 `yaml:"prepareTime"`         // 蓄力时长，默认 1.5
	ChargeTime          float64 `yaml:"chargeTime"`          // 冲撞时长，默认 1.2
	CooldownTime        float64 `yaml:"cooldownTime"`        // 冷却时长，默认 0.8
	PrepareSpeedFactor  float64 `yaml:"prepareSpeedFactor"`  // 蓄力时速度倍率，默认 0.4
	ChargeSpeedFactor   float64 `yaml:"chargeSpeedFactor"`   // 冲撞时速度倍率，默认 2
	PrepareAcceleration float64 `yaml:"prepareAcceleration"` // 默认 4
	ChargeAcceleration  float64 `yaml:"chargeAcceleration"`  // 默认 15
	RetargetInterval    float64 `yaml:"retargetInterval"`    // 蓄力阶段重新选点间隔，默认 0.8
	ArriveDistance      float64 `yaml:"arriveDistance"`      // 冲撞提前结束距离，默认 1.5
	TargetRadius        float64 `yaml:"targetRadius"`        // 目标点距中心的最大半径，默认 2
	PulseFrequency      float64 `yaml:"pulseFrequency"`      // 蓄力脉冲频率，默认 6
	PulseAmplitude      float64 `yaml:"pulseAmplitude"`      // 蓄力脉冲幅度，默认 0.08
}

// DeadTuning 死亡状态参数
type DeadTuning struct {
	DeathDelay float64 `yaml:"deathDelay"` // 死亡到回收的延迟（秒），默认 2
}

// DefaultEnemyBehaviorConfig 返回默认的敌人行为参数
func DefaultEnemyBehaviorConfig() *EnemyBehaviorConfig {
	cfg := &EnemyBehaviorConfig{}
	applyEnemyBehaviorDefaults(cfg)
	return cfg
}

// LoadEnemyBehaviorConfig 从 YAML 文件加载敌人行为参数
func LoadEnemyBehaviorConfig(filepath string) (*EnemyBehaviorConfig, error) {
	data, err := embedded.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read enemy behavior file %s: %w", filepath, err)
	}

	var cfg EnemyBehaviorConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse enemy behavior YAML %s: %w", filepath, err)
	}

	applyEnemyBehaviorDefaults(&cfg)

	if err := validateEnemyBehaviorConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid enemy behavior config %s: %w", filepath, err)
	}
	return &cfg, nil
}

// orDefault 零值时返回默认值
func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

func applyEnemyBehaviorDefaults(cfg *EnemyBehaviorConfig) {
	cfg.Spawning.Duration = orDefault(cfg.Spawning.Duration, 1.0)

	b := &cfg.Basic
	b.DestinationUpdateRate = orDefault(b.DestinationUpdateRate, 1.0)
	b.TargetRadius = orDefault(b.TargetRadius, 2.0)
	b.Acceleration = orDefault(b.Acceleration, 6)
	b.AngularSpeed = orDefault(b.AngularSpeed, 180)

	z := &cfg.Zigzag
	z.Interval = orDefault(z.Interval, 1.2)
	z.ArriveDistance = orDefault(z.ArriveDistance, 3)
	z.DestinationRadius = orDefault(z.DestinationRadius, 12)
	z.Strength = orDefault(z.Strength, 0.5)
	z.Acceleration = orDefault(z.Acceleration, 8)
	z.AngularSpeed = orDefault(z.AngularSpeed, 270)

	h := &cfg.Heavy
	h.PrepareTime = orDefault(h.PrepareTime, 1.5)
	h.ChargeTime = orDefault(h.ChargeTime, 1.2)
	h.CooldownTime = orDefault(h.CooldownTime, 0.8)
	h.PrepareSpeedFactor = orDefault(h.PrepareSpeedFactor, 0.4)
	h.ChargeSpeedFactor = orDefault(h.ChargeSpeedFactor, 2)
	h.PrepareAcceleration = orDefault(h.PrepareAcceleration, 4)
	h.ChargeAcceleration = orDefault(h.ChargeAcceleration, 15)
	h.RetargetInterval = orDefault(h.RetargetInterval, 0.8)
	h.ArriveDistance = orDefault(h.ArriveDistance, 1.5)
	h.TargetRadius = orDefault(h.TargetRadius, 2)
	h.PulseFrequency = orDefault(h.PulseFrequency, 6)
	h.PulseAmplitude = orDefault(h.PulseAmplitude, 0.08)

	cfg.Dead.DeathDelay = orDefault(cfg.Dead.DeathDelay, 2.0)
}

func validateEnemyBehaviorConfig(cfg *EnemyBehaviorConfig) error {
	checks := []struct {
		field string
		value float64
	}{
		{"spawning.duration", cfg.Spawning.Duration},
		{"basic.destinationUpdateRate", cfg.Basic.DestinationUpdateRate},
		{"zigzag.interval", cfg.Zigzag.Interval},
		{"zigzag.destinationRadius", cfg.Zigzag.DestinationRadius},
		{"heavy.prepareTime", cfg.Heavy.PrepareTime},
		{"heavy.chargeTime", cfg.Heavy.ChargeTime},
		{"heavy.cooldownTime", cfg.Heavy.CooldownTime},
		{"heavy.retargetInterval", cfg.Heavy.RetargetInterval},
		{"dead.deathDelay", cfg.Dead.DeathDelay},
	}
	for _, c := range checks {
		if c.value <= 0 {
			return fmt.Errorf("%s: must be positive, got %.2f", c.field, c.value)
		}
	}
	if cfg.Basic.TargetRadius < 0 || cfg.Heavy.TargetRadius < 0 {
		return fmt.Errorf("targetRadius: cannot be negative")
	}
	if cfg.Zigzag.Strength < 0 {
		return fmt.Errorf("zigzag.strength: cannot be negative, got %.2f", cfg.Zigzag.Strength)
	}
	return nil
}
