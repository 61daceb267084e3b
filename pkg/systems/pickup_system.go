package systems

import (
	"log"
	"math/rand"
	"sort"

	"github.com/decker502/wavearena/pkg/components"
	"github.com/decker502/wavearena/pkg/config"
	"github.com/decker502/wavearena/pkg/ecs"
	"github.com/decker502/wavearena/pkg/entities"
	"github.com/decker502/wavearena/pkg/event"
	"github.com/decker502/wavearena/pkg/types"
	"github.com/decker502/wavearena/pkg/utils"
)

// ammoDrop 一种可掉落的弹药
type ammoDrop struct {
	ammoType types.AmmoType
	amount   int
}

// PickupSystem 弹药掉落与拾取
//
// 敌人死亡时按 DropChance 在原地生成一个弹药掉落物，弹药种类从配置的掉落表中随机选取；
// 玩家碰到掉落物后备弹增加、掉落物消失。
type PickupSystem struct {
	entityManager *ecs.EntityManager
	dispatcher    *event.Dispatcher
	ammo          *AmmoSystem
	rng           *rand.Rand
	settings      config.PickupSettings
	drops         []ammoDrop
}

// NewPickupSystem 创建拾取系统并订阅 EnemyDied
func NewPickupSystem(em *ecs.EntityManager, dispatcher *event.Dispatcher, ammo *AmmoSystem, rng *rand.Rand, settings config.PickupSettings) *PickupSystem {
	s := &PickupSystem{
		entityManager: em,
		dispatcher:    dispatcher,
		ammo:          ammo,
		rng:           rng,
		settings:      settings,
	}

	// 按弹药类型排序，保证同一种子下掉落可复现
	for ammoType, amount := range settings.AmountsByType() {
		s.drops = append(s.drops, ammoDrop{ammoType: ammoType, amount: amount})
	}
	sort.Slice(s.drops, func(i, j int) bool { return s.drops[i].ammoType < s.drops[j].ammoType })

	dispatcher.SubscribeFunc(event.EnemyDied, func(e event.Event) {
		if data, ok := e.Data.(event.EntityData); ok {
			s.OnEnemyDied(data.Entity)
		}
	})
	return s
}

// OnEnemyDied 按掉落概率在敌人位置生成弹药
func (s *PickupSystem) OnEnemyDied(id ecs.EntityID) {
	if len(s.drops) == 0 || s.settings.DropChance <= 0 {
		return
	}
	if s.rng.Float64() >= s.settings.DropChance {
		return
	}
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
	if !ok {
		return
	}
	drop := s.drops[s.rng.Intn(len(s.drops))]
	if _, err := s.SpawnPickup(pos.Pos, drop.ammoType, drop.amount); err != nil {
		log.Printf("[PickupSystem] 生成掉落物失败: %v", err)
	}
}

// SpawnPickup 在 pos 生成一个弹药掉落物
func (s *PickupSystem) SpawnPickup(pos utils.Vec2, ammoType types.AmmoType, amount int) (ecs.EntityID, error) {
	return entities.NewAmmoPickupEntity(s.entityManager, pos, ammoType, amount, s.settings.Radius, s.settings.Lifetime)
}

// Update 检测玩家拾取，返回本帧拾取数量
func (s *PickupSystem) Update(deltaTime float64) int {
	players := ecs.GetEntitiesWith2[*components.PlayerComponent, *components.PositionComponent](s.entityManager)
	if len(players) == 0 {
		return 0
	}

	collected := 0
	for _, id := range ecs.GetEntitiesWith2[*components.PickupComponent, *components.PositionComponent](s.entityManager) {
		if s.entityManager.IsMarkedForDestroy(id) {
			continue
		}
		pickup, _ := ecs.GetComponent[*components.PickupComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)

		for _, playerID := range players {
			playerPos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, playerID)
			reach := pickup.Radius
			if col, ok := ecs.GetComponent[*components.CollisionComponent](s.entityManager, playerID); ok {
				reach += col.Radius
			}
			if playerPos.Pos.Distance(pos.Pos) > reach {
				continue
			}

			s.ammo.Add(playerID, pickup.AmmoType, pickup.Amount)
			s.dispatcher.Dispatch(event.Event{
				Type: event.PickupCollected,
				Data: event.PickupData{Collector: playerID, AmmoType: pickup.AmmoType, Amount: pickup.Amount},
			})
			s.entityManager.DestroyEntity(id)
			collected++
			break
		}
	}
	return collected
}
