package entities

import (
	"fmt"

	"github.com/decker502/wavearena/pkg/components"
	"github.com/decker502/wavearena/pkg/ecs"
	"github.com/decker502/wavearena/pkg/types"
	"github.com/decker502/wavearena/pkg/utils"
)

// NewAmmoPickupEntity 创建弹药掉落物
// 掉落物静止在地面，超过 lifetime 秒未被拾取则消失（lifetime<=0 表示不消失）
//
// 参数:
//   - em: 实体管理器
//   - pos: 掉落位置
//   - ammoType: 弹药类型
//   - amount: 弹药数量
//   - radius: 拾取半径
//   - lifetime: 存在时间（秒）
//
// 返回:
//   - ecs.EntityID: 掉落物实体ID
//   - error: 如果创建失败返回错误信息
func NewAmmoPickupEntity(em *ecs.EntityManager, pos utils.Vec2, ammoType types.AmmoType, amount int, radius, lifetime float64) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if amount <= 0 {
		return 0, fmt.Errorf("pickup amount must be positive, got %d", amount)
	}

	entityID := em.CreateEntity()
	em.AddComponent(entityID, &components.PositionComponent{Pos: pos})
	em.AddComponent(entityID, &components.PickupComponent{
		AmmoType: ammoType,
		Amount:   amount,
		Radius:   radius,
	})
	if lifetime > 0 {
		em.AddComponent(entityID, &components.LifetimeComponent{MaxLifetime: lifetime})
	}
	return entityID, nil
}
