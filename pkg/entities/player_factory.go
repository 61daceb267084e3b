package entities

import (
	"fmt"

	"github.com/decker502/wavearena/pkg/components"
	"github.com/decker502/wavearena/pkg/config"
	"github.com/decker502/wavearena/pkg/ecs"
	"github.com/decker502/wavearena/pkg/types"
	"github.com/decker502/wavearena/pkg/utils"
)

// NewPlayerEntity 创建玩家实体
// 玩家出生在竞技场中心，装备默认武器并携带初始弹药
//
// 参数:
//   - em: 实体管理器
//   - arena: 竞技场配置（移动速度、碰撞半径）
//   - weapons: 武器配置（默认武器、初始弹药）
//
// 返回:
//   - ecs.EntityID: 玩家实体ID
//   - error: 如果创建失败返回错误信息
func NewPlayerEntity(em *ecs.EntityManager, arena *config.ArenaConfig, weapons *config.WeaponsConfig) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if arena == nil || weapons == nil {
		return 0, fmt.Errorf("arena and weapons config cannot be nil")
	}

	entityID := em.CreateEntity()

	em.AddComponent(entityID, &components.PositionComponent{})
	em.AddComponent(entityID, &components.VelocityComponent{})
	em.AddComponent(entityID, &components.PlayerComponent{
		Aim:       utils.V(1, 0),
		MoveSpeed: arena.Player.MoveSpeed,
	})
	em.AddComponent(entityID, &components.CollisionComponent{
		Radius: arena.Player.Radius,
	})

	// 背包：每种弹药都有条目，未配置的为 0
	counts := make(map[types.AmmoType]int, len(types.AllAmmoTypes))
	for _, t := range types.AllAmmoTypes {
		counts[t] = 0
	}
	for t, amount := range weapons.StartingAmmoByType() {
		counts[t] = amount
	}
	em.AddComponent(entityID, &components.AmmoInventoryComponent{Counts: counts})

	// 默认武器满弹匣
	weapon := weapons.Default()
	em.AddComponent(entityID, &components.WeaponComponent{
		Config:   weapon,
		Magazine: weapon.MagazineSize,
	})

	return entityID, nil
}

// NewCameraEntity 创建镜头实体
func NewCameraEntity(em *ecs.EntityManager, arena *config.ArenaConfig, target ecs.EntityID) ecs.EntityID {
	mode := components.CameraFree
	if arena.Camera.StartFirstPerson {
		mode = components.CameraFirstPerson
	}

	entityID := em.CreateEntity()
	em.AddComponent(entityID, &components.CameraComponent{
		Mode:   mode,
		Height: arena.Camera.FirstPersonHeight,
		Target: target,
	})
	return entityID
}
