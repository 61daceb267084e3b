package systems

import (
	"github.com/decker502/wavearena/pkg/components"
	"github.com/decker502/wavearena/pkg/ecs"
	"github.com/decker502/wavearena/pkg/event"
	"github.com/decker502/wavearena/pkg/types"
)

// AmmoSystem 管理实体的备弹背包
// 每次数量变化都会发布 AmmoChanged
type AmmoSystem struct {
	entityManager *ecs.EntityManager
	dispatcher    *event.Dispatcher
}

// NewAmmoSystem 创建备弹系统
func NewAmmoSystem(em *ecs.EntityManager, dispatcher *event.Dispatcher) *AmmoSystem {
	return &AmmoSystem{
		entityManager: em,
		dispatcher:    dispatcher,
	}
}

// Get 返回备弹数量，没有背包时为 0
func (s *AmmoSystem) Get(owner ecs.EntityID, ammoType types.AmmoType) int {
	inv := s.inventory(owner)
	if inv == nil {
		return 0
	}
	return inv.Counts[ammoType]
}

// Has 是否至少有 amount 发
func (s *AmmoSystem) Has(owner ecs.EntityID, ammoType types.AmmoType, amount int) bool {
	return s.Get(owner, ammoType) >= amount
}

// Use 消耗 amount 发，不足时不做任何修改并返回 false
func (s *AmmoSystem) Use(owner ecs.EntityID, ammoType types.AmmoType, amount int) bool {
	inv := s.inventory(owner)
	if inv == nil || amount < 0 || inv.Counts[ammoType] < amount {
		return false
	}
	inv.Counts[ammoType] -= amount
	s.notify(owner, ammoType, inv.Counts[ammoType])
	return true
}

// Add 增加 amount 发（amount<=0 忽略）
func (s *AmmoSystem) Add(owner ecs.EntityID, ammoType types.AmmoType, amount int) {
	inv := s.inventory(owner)
	if inv == nil || amount <= 0 {
		return
	}
	inv.Counts[ammoType] += amount
	s.notify(owner, ammoType, inv.Counts[ammoType])
}

// Set 直接设置数量，负数按 0 处理
func (s *AmmoSystem) Set(owner ecs.EntityID, ammoType types.AmmoType, amount int) {
	inv := s.inventory(owner)
	if inv == nil {
		return
	}
	if amount < 0 {
		amount = 0
	}
	inv.Counts[ammoType] = amount
	s.notify(owner, ammoType, amount)
}

func (s *AmmoSystem) inventory(owner ecs.EntityID) *components.AmmoInventoryComponent {
	inv, ok := ecs.GetComponent[*components.AmmoInventoryComponent](s.entityManager, owner)
	if !ok {
		return nil
	}
	if inv.Counts == nil {
		inv.Counts = make(map[types.AmmoType]int)
	}
	return inv
}

func (s *AmmoSystem) notify(owner ecs.EntityID, ammoType types.AmmoType, amount int) {
	s.dispatcher.Dispatch(event.Event{
		Type: event.AmmoChanged,
		Data: event.AmmoChangedData{Owner: owner, AmmoType: ammoType, Amount: amount},
	})
}
