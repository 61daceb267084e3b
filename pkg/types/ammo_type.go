package types

// AmmoType 弹药类型
type AmmoType int

const (
	AmmoPistol AmmoType = iota
	AmmoRifle
	AmmoShotgun
	AmmoSniper
	AmmoRocket
	AmmoEnergy
)

// AllAmmoTypes 全部弹药类型，背包初始化时每种类型都置为 0
var AllAmmoTypes = []AmmoType{AmmoPistol, AmmoRifle, AmmoShotgun, AmmoSniper, AmmoRocket, AmmoEnergy}

var ammoTypeNames = [...]string{"pistol", "rifle", "shotgun", "sniper", "rocket", "energy"}

// String 返回弹药类型的配置字符串
func (a AmmoType) String() string {
	if a < 0 || int(a) >= len(ammoTypeNames) {
		return "unknown"
	}
	return ammoTypeNames[a]
}

// AmmoTypeFromString 将配置字符串转换为 AmmoType
func AmmoTypeFromString(s string) (AmmoType, bool) {
	for i, name := range ammoTypeNames {
		if name == s {
			return AmmoType(i), true
		}
	}
	return 0, false
}

// ReloadType 换弹方式
type ReloadType int

const (
	// ReloadMagazine 整匣更换
	ReloadMagazine ReloadType = iota
	// ReloadShellByShell 逐发装填（霰弹枪）
	ReloadShellByShell
)

// String 返回换弹方式的配置字符串
func (r ReloadType) String() string {
	switch r {
	case ReloadMagazine:
		return "magazine"
	case ReloadShellByShell:
		return "shell"
	default:
		return "unknown"
	}
}

// ReloadTypeFromString 将配置字符串转换为 ReloadType，空字符串视为整匣换弹
func ReloadTypeFromString(s string) (ReloadType, bool) {
	switch s {
	case "", "magazine":
		return ReloadMagazine, true
	case "shell", "shell_by_shell":
		return ReloadShellByShell, true
	default:
		return ReloadMagazine, false
	}
}
