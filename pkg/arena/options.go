package arena

import (
	"fmt"
	"path"

	"github.com/decker502/wavearena/pkg/config"
)

// Options 创建竞技场所需的全部配置
// 除 Weapons 外，nil 字段使用默认配置
type Options struct {
	Arena      *config.ArenaConfig
	EnemyTypes *config.EnemyTypesConfig
	Behavior   *config.EnemyBehaviorConfig
	Weapons    *config.WeaponsConfig

	// Seed 随机种子，相同种子与相同输入产生相同的模拟
	Seed int64
}

// LoadOptions 从数据目录加载四个配置文件
//
// 参数：
//   - dataDir: 数据目录，"data" 时从嵌入资源读取，其他路径从文件系统读取
//   - seed: 随机种子
func LoadOptions(dataDir string, seed int64) (Options, error) {
	opts := Options{Seed: seed}
	var err error

	if opts.Arena, err = config.LoadArenaConfig(path.Join(dataDir, "arena.yaml")); err != nil {
		return Options{}, fmt.Errorf("load arena config: %w", err)
	}
	if opts.EnemyTypes, err = config.LoadEnemyTypesConfig(path.Join(dataDir, "enemy_types.yaml")); err != nil {
		return Options{}, fmt.Errorf("load enemy types: %w", err)
	}
	if opts.Behavior, err = config.LoadEnemyBehaviorConfig(path.Join(dataDir, "enemy_behavior.yaml")); err != nil {
		return Options{}, fmt.Errorf("load enemy behavior: %w", err)
	}
	if opts.Weapons, err = config.LoadWeaponsConfig(path.Join(dataDir, "weapons.yaml")); err != nil {
		return Options{}, fmt.Errorf("load weapons: %w", err)
	}
	return opts, nil
}

func (o *Options) applyDefaults() error {
	if o.Weapons == nil {
		return fmt.Errorf("weapons config is required")
	}
	if o.Arena == nil {
		o.Arena = config.DefaultArenaConfig()
	}
	if o.EnemyTypes == nil {
		o.EnemyTypes = config.DefaultEnemyTypesConfig()
	}
	if o.Behavior == nil {
		o.Behavior = config.DefaultEnemyBehaviorConfig()
	}
	return nil
}
