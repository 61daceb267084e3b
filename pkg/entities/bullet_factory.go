package entities

import (
	"fmt"

	"github.com/decker502/wavearena/pkg/components"
	"github.com/decker502/wavearena/pkg/config"
	"github.com/decker502/wavearena/pkg/ecs"
	"github.com/decker502/wavearena/pkg/utils"
)

// BulletRadius 子弹碰撞半径
const BulletRadius = 0.1

// NewBulletEntity 创建子弹实体
// 子弹从射击者位置沿 direction 直线飞行，参数取自武器配置
//
// 参数:
//   - em: 实体管理器
//   - owner: 射击者实体ID
//   - weapon: 武器配置（伤害、速度、射程）
//   - origin: 起始位置
//   - direction: 飞行方向（会被归一化）
//
// 返回:
//   - ecs.EntityID: 创建的子弹实体ID，如果失败返回 0
//   - error: 如果创建失败返回错误信息
func NewBulletEntity(em *ecs.EntityManager, owner ecs.EntityID, weapon *config.WeaponConfig, origin, direction utils.Vec2) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if weapon == nil {
		return 0, fmt.Errorf("weapon config cannot be nil")
	}
	dir := direction.Normalize()
	if dir.IsZero() {
		return 0, fmt.Errorf("bullet direction cannot be zero")
	}

	entityID := em.CreateEntity()

	em.AddComponent(entityID, &components.PositionComponent{
		Pos:    origin,
		Facing: dir.Angle(),
	})
	em.AddComponent(entityID, &components.VelocityComponent{
		Vel: dir.Scale(weapon.BulletSpeed),
	})
	em.AddComponent(entityID, &components.BulletComponent{
		Owner:     owner,
		Damage:    weapon.Damage,
		Direction: dir,
		Speed:     weapon.BulletSpeed,
		Range:     weapon.Range,
	})
	em.AddComponent(entityID, &components.CollisionComponent{
		Radius: BulletRadius,
	})

	return entityID, nil
}
