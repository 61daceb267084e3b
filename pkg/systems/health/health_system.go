// Package health 提供生命值结算
//
// 伤害来源（子弹、清场指令）通过 System.ApplyDamage 结算伤害，
// 生命值变化与归零通过事件通知订阅者，不直接调用敌人逻辑。
package health

import (
	"log"

	"github.com/decker502/wavearena/pkg/components"
	"github.com/decker502/wavearena/pkg/ecs"
	"github.com/decker502/wavearena/pkg/event"
)

// System 生命值结算系统
type System struct {
	entityManager *ecs.EntityManager
	dispatcher    *event.Dispatcher
}

// NewSystem 创建生命值结算系统
func NewSystem(em *ecs.EntityManager, dispatcher *event.Dispatcher) *System {
	return &System{
		entityManager: em,
		dispatcher:    dispatcher,
	}
}

// ApplyDamage 对实体造成伤害
//
// 规则：
//   - 实体没有 HealthComponent 或 amount<=0：忽略
//   - 当前生命值已 <=0：忽略（死亡后不再受伤）
//   - 否则扣减并发布 HealthChanged；本次扣减使生命值降到 <=0 时发布一次 HealthDepleted
//
// 返回：
//   - bool: 伤害是否生效
func (s *System) ApplyDamage(id ecs.EntityID, amount float64) bool {
	if amount <= 0 {
		return false
	}
	health, ok := ecs.GetComponent[*components.HealthComponent](s.entityManager, id)
	if !ok {
		return false
	}
	if health.Current <= 0 {
		return false
	}

	health.Current -= amount
	if health.Current < 0 {
		health.Current = 0
	}

	s.dispatcher.Dispatch(event.Event{
		Type: event.HealthChanged,
		Data: event.HealthChangedData{Entity: id, Current: health.Current, Max: health.Max},
	})

	if health.Current <= 0 && !health.Depleted {
		health.Depleted = true
		log.Printf("[HealthSystem] 实体 %d 生命值归零", id)
		s.dispatcher.Dispatch(event.Event{
			Type: event.HealthDepleted,
			Data: event.EntityData{Entity: id},
		})
	}
	return true
}

// Reset 将生命值恢复为最大值并发布 HealthChanged
func (s *System) Reset(id ecs.EntityID) {
	health, ok := ecs.GetComponent[*components.HealthComponent](s.entityManager, id)
	if !ok {
		return
	}
	health.Current = health.Max
	health.Depleted = false
	s.dispatcher.Dispatch(event.Event{
		Type: event.HealthChanged,
		Data: event.HealthChangedData{Entity: id, Current: health.Current, Max: health.Max},
	})
}

// SetMax 设置最大生命值并回满（敌人复用时按类型重新计算）
func (s *System) SetMax(id ecs.EntityID, max float64) {
	health, ok := ecs.GetComponent[*components.HealthComponent](s.entityManager, id)
	if !ok {
		return
	}
	health.Max = max
	s.Reset(id)
}

// Current 返回当前生命值，无组件时返回 0
func (s *System) Current(id ecs.EntityID) float64 {
	health, ok := ecs.GetComponent[*components.HealthComponent](s.entityManager, id)
	if !ok {
		return 0
	}
	return health.Current
}

// Percentage 返回生命值百分比 [0,1]，Max<=0 时返回 0
func Percentage(h *components.HealthComponent) float64 {
	if h == nil || h.Max <= 0 {
		return 0
	}
	return h.Current / h.Max
}
