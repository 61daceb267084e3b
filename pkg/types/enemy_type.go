// Package types 定义共享的基础类型
package types

// EnemyType 定义敌人的类型
//
// 数值同时作为对象池中的类型索引使用，因此从 0 连续编号。
type EnemyType int

const (
	// EnemyUnknown 未知敌人类型（配置解析失败时返回）
	EnemyUnknown EnemyType = -1

	EnemyBasic EnemyType = iota - 1 // 普通敌人：随机游走
	EnemyFast                       // 快速敌人：之字形冲锋
	EnemyHeavy                      // 重型敌人：蓄力冲撞
)

// AllEnemyTypes 按类型索引排列的全部敌人类型
var AllEnemyTypes = []EnemyType{EnemyBasic, EnemyFast, EnemyHeavy}

// enemyTypeStringMap 敌人类型到配置字符串的映射
var enemyTypeStringMap = map[EnemyType]string{
	EnemyBasic: "basic",
	EnemyFast:  "fast",
	EnemyHeavy: "heavy",
}

// String 返回敌人类型的配置字符串表示（用于配置文件匹配）
func (e EnemyType) String() string {
	if s, ok := enemyTypeStringMap[e]; ok {
		return s
	}
	return "unknown"
}

// IsValid 判断是否为已定义的敌人类型
func (e EnemyType) IsValid() bool {
	_, ok := enemyTypeStringMap[e]
	return ok
}

// EnemyTypeFromString 将配置字符串转换为 EnemyType
func EnemyTypeFromString(s string) EnemyType {
	for et, name := range enemyTypeStringMap {
		if name == s {
			return et
		}
	}
	return EnemyUnknown
}
