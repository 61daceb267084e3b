package config

import (
	"fmt"

	"github.com/decker502/wavearena/pkg/embedded"
	"github.com/decker502/wavearena/pkg/types"
	"gopkg.in/yaml.v3"
)

// WeaponConfig 单把武器的参数
type WeaponConfig struct {
	Name               string  `yaml:"name"`
	Damage             float64 `yaml:"damage"`
	FireRate           float64 `yaml:"fireRate"`           // 两次射击的最小间隔（秒）
	BulletSpeed        float64 `yaml:"bulletSpeed"`        // 子弹速度（单位/秒）
	Range              float64 `yaml:"range"`              // 子弹最大飞行距离
	Ammo               string  `yaml:"ammoType"`           // pistol/rifle/shotgun/sniper/rocket/energy
	MagazineSize       int     `yaml:"magazineSize"`       // 弹匣容量
	ReloadTime         float64 `yaml:"reloadTime"`         // 整匣换弹时长（秒）
	CanReloadPartially bool    `yaml:"canReloadPartially"` // 弹匣未空时是否允许换弹
	Reload             string  `yaml:"reloadType"`         // magazine | shell
	ShellReloadTime    float64 `yaml:"shellReloadTime"`    // 逐发装填时每发耗时（秒）
	CanCancelReload    bool    `yaml:"canCancelReload"`    // 是否允许中断换弹
	Pellets            int     `yaml:"pellets"`            // 每次射击的弹丸数，默认 1
	Spread             float64 `yaml:"spread"`             // 多弹丸散布角（度），默认 5

	AmmoType   types.AmmoType   `yaml:"-"`
	ReloadType types.ReloadType `yaml:"-"`
}

// WeaponsConfig 武器表与初始弹药
type WeaponsConfig struct {
	DefaultWeapon string         `yaml:"defaultWeapon"`
	Weapons       []WeaponConfig `yaml:"weapons"`
	StartingAmmo  map[string]int `yaml:"startingAmmo"`
}

// LoadWeaponsConfig 从 YAML 文件加载武器配置
// 参数：
//
//	filepath - 配置文件路径
//
// 返回：
//
//	*WeaponsConfig - 解析后的配置对象（AmmoType/ReloadType 已解析）
//	error - 如果文件读取、解析或验证失败，返回错误信息
func LoadWeaponsConfig(filepath string) (*WeaponsConfig, error) {
	data, err := embedded.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read weapons file %s: %w", filepath, err)
	}

	var cfg WeaponsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse weapons YAML %s: %w", filepath, err)
	}

	if err := cfg.prepare(); err != nil {
		return nil, fmt.Errorf("invalid weapons config %s: %w", filepath, err)
	}
	return &cfg, nil
}

// prepare 应用默认值、解析枚举字段并验证
func (c *WeaponsConfig) prepare() error {
	if len(c.Weapons) == 0 {
		return fmt.Errorf("weapons: at least one weapon is required")
	}

	seen := make(map[string]bool, len(c.Weapons))
	for i := range c.Weapons {
		w := &c.Weapons[i]
		if w.Name == "" {
			return fmt.Errorf("weapons[%d].name: cannot be empty", i)
		}
		if seen[w.Name] {
			return fmt.Errorf("weapons[%d].name: duplicate weapon %q", i, w.Name)
		}
		seen[w.Name] = true

		if w.Pellets == 0 {
			w.Pellets = 1
		}
		if w.Spread == 0 {
			w.Spread = 5
		}
		if w.Range == 0 {
			w.Range = 100
		}
		if w.BulletSpeed == 0 {
			w.BulletSpeed = 60
		}

		ammo, err := parseAmmoType(w.Ammo)
		if err != nil {
			return fmt.Errorf("weapons[%d].ammoType: %w", i, err)
		}
		w.AmmoType = ammo

		reload, ok := types.ReloadTypeFromString(w.Reload)
		if !ok {
			return fmt.Errorf("weapons[%d].reloadType: unknown reload type %q", i, w.Reload)
		}
		w.ReloadType = reload

		if w.Damage < 0 || w.FireRate < 0 || w.ReloadTime < 0 || w.ShellReloadTime < 0 {
			return fmt.Errorf("weapons[%d] (%s): damage and timings cannot be negative", i, w.Name)
		}
		if w.MagazineSize <= 0 {
			return fmt.Errorf("weapons[%d].magazineSize: must be positive, got %d", i, w.MagazineSize)
		}
		if w.ReloadType == types.ReloadShellByShell && w.ShellReloadTime <= 0 {
			return fmt.Errorf("weapons[%d].shellReloadTime: required for shell reload", i)
		}
		if w.Pellets < 1 {
			return fmt.Errorf("weapons[%d].pellets: must be at least 1, got %d", i, w.Pellets)
		}
	}

	if c.DefaultWeapon == "" {
		c.DefaultWeapon = c.Weapons[0].Name
	}
	if !seen[c.DefaultWeapon] {
		return fmt.Errorf("defaultWeapon: unknown weapon %q", c.DefaultWeapon)
	}

	if c.StartingAmmo == nil {
		c.StartingAmmo = map[string]int{}
	}
	for name, amount := range c.StartingAmmo {
		if _, err := parseAmmoType(name); err != nil {
			return fmt.Errorf("startingAmmo: %w", err)
		}
		if amount < 0 {
			return fmt.Errorf("startingAmmo.%s: cannot be negative, got %d", name, amount)
		}
	}
	return nil
}

// Weapon 按名称查找武器
func (c *WeaponsConfig) Weapon(name string) (*WeaponConfig, bool) {
	for i := range c.Weapons {
		if c.Weapons[i].Name == name {
			return &c.Weapons[i], true
		}
	}
	return nil, false
}

// Default 返回默认武器
func (c *WeaponsConfig) Default() *WeaponConfig {
	w, ok := c.Weapon(c.DefaultWeapon)
	if !ok {
		return &c.Weapons[0]
	}
	return w
}

// StartingAmmoByType 将初始弹药表转换为按类型索引的映射
func (c *WeaponsConfig) StartingAmmoByType() map[types.AmmoType]int {
	result := make(map[types.AmmoType]int, len(c.StartingAmmo))
	for name, amount := range c.StartingAmmo {
		if t, ok := types.AmmoTypeFromString(name); ok {
			result[t] = amount
		}
	}
	return result
}

func parseAmmoType(name string) (types.AmmoType, error) {
	t, ok := types.AmmoTypeFromString(name)
	if !ok {
		return 0, fmt.Errorf("unknown ammo type %q", name)
	}
	return t, nil
}
