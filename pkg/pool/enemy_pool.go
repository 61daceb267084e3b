// Package pool 提供敌人实体的对象池
//
// 池中的敌人是普通实体，只是 EnemyComponent.Active 为 false；
// 取出时不重新创建组件，归还时也不销毁实体。
package pool

import (
	"fmt"
	"log"

	"github.com/decker502/wavearena/pkg/components"
	"github.com/decker502/wavearena/pkg/ecs"
	"github.com/decker502/wavearena/pkg/types"
)

// Factory 创建一个闲置（非激活）的敌人实体
type Factory func(enemyType types.EnemyType) (ecs.EntityID, error)

// EnemyPool 按类型分队列的敌人对象池
//
// 每种类型一个先进先出队列；队列为空时通过 Factory 新建，池随之扩容。
// 同一实体不会同时出现在队列中两次。
type EnemyPool struct {
	entityManager *ecs.EntityManager
	factory       Factory

	queues map[types.EnemyType][]ecs.EntityID
	queued map[ecs.EntityID]struct{}
	// owned 池创建过的全部实体及其类型
	owned map[ecs.EntityID]types.EnemyType
}

// NewEnemyPool 创建敌人对象池
func NewEnemyPool(em *ecs.EntityManager, factory Factory) *EnemyPool {
	return &EnemyPool{
		entityManager: em,
		factory:       factory,
		queues:        make(map[types.EnemyType][]ecs.EntityID),
		queued:        make(map[ecs.EntityID]struct{}),
		owned:         make(map[ecs.EntityID]types.EnemyType),
	}
}

// Initialize 注册敌人类型并预热
//
// 每种类型预先创建 poolSize / len(enemyTypes) 个闲置敌人。
// 未注册的类型在 Get 时报错。
func (p *EnemyPool) Initialize(enemyTypes []types.EnemyType, poolSize int) error {
	if len(enemyTypes) == 0 {
		return fmt.Errorf("enemy pool: at least one enemy type is required")
	}
	perType := poolSize / len(enemyTypes)

	for _, t := range enemyTypes {
		if !t.IsValid() {
			return fmt.Errorf("enemy pool: invalid enemy type %d", t)
		}
		if _, exists := p.queues[t]; !exists {
			p.queues[t] = make([]ecs.EntityID, 0, perType)
		}
		for i := 0; i < perType; i++ {
			id, err := p.create(t)
			if err != nil {
				return fmt.Errorf("enemy pool: prewarm %s: %w", t, err)
			}
			p.enqueue(id, t)
		}
	}

	log.Printf("[EnemyPool] 预热完成: %d 种类型, 每种 %d 个, 共 %d 个", len(enemyTypes), perType, p.Size())
	return nil
}

// Get 取出一个指定类型的敌人
//
// 队列非空时出队（FIFO），否则新建一个（池扩容）。
// 返回的实体仍为非激活状态，由调用方 Initialize。
func (p *EnemyPool) Get(enemyType types.EnemyType) (ecs.EntityID, error) {
	queue, registered := p.queues[enemyType]
	if !registered {
		return 0, fmt.Errorf("enemy pool: unknown enemy type %s", enemyType)
	}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		p.queues[enemyType] = queue
		delete(p.queued, id)

		// 实体可能已被外部销毁，跳过
		if !p.entityManager.IsAlive(id) {
			delete(p.owned, id)
			continue
		}
		return id, nil
	}

	id, err := p.create(enemyType)
	if err != nil {
		return 0, fmt.Errorf("enemy pool: grow %s: %w", enemyType, err)
	}
	log.Printf("[EnemyPool] %s 队列为空，扩容到 %d", enemyType, p.Size())
	return id, nil
}

// Return 归还敌人
//
// 按记录的类型入队；没有记录时回退到实体自身的 EnemyComponent.Type 并记录下来；
// 两者都没有时销毁实体。已在队列中的实体重复归还不做任何处理。
func (p *EnemyPool) Return(id ecs.EntityID) {
	if _, already := p.queued[id]; already {
		return
	}

	enemy, hasEnemy := ecs.GetComponent[*components.EnemyComponent](p.entityManager, id)
	if hasEnemy {
		enemy.Active = false
	}

	enemyType, known := p.owned[id]
	if !known && hasEnemy && enemy.Type.IsValid() {
		enemyType = enemy.Type
		known = true
		p.owned[id] = enemyType
	}
	if !known {
		log.Printf("[EnemyPool] 警告: 实体 %d 类型未知，直接销毁", id)
		p.entityManager.DestroyEntity(id)
		return
	}

	if _, registered := p.queues[enemyType]; !registered {
		p.queues[enemyType] = make([]ecs.EntityID, 0)
	}
	p.enqueue(id, enemyType)
}

// Available 返回指定类型队列中可用的敌人数量
func (p *EnemyPool) Available(enemyType types.EnemyType) int {
	return len(p.queues[enemyType])
}

// Size 返回池管理的敌人总数（包括已取出的）
func (p *EnemyPool) Size() int {
	return len(p.owned)
}

// TypeOf 返回池记录的实体类型
func (p *EnemyPool) TypeOf(id ecs.EntityID) (types.EnemyType, bool) {
	t, ok := p.owned[id]
	return t, ok
}

// IsQueued 实体当前是否在队列中
func (p *EnemyPool) IsQueued(id ecs.EntityID) bool {
	_, ok := p.queued[id]
	return ok
}

func (p *EnemyPool) create(enemyType types.EnemyType) (ecs.EntityID, error) {
	id, err := p.factory(enemyType)
	if err != nil {
		return 0, err
	}
	p.owned[id] = enemyType
	return id, nil
}

func (p *EnemyPool) enqueue(id ecs.EntityID, enemyType types.EnemyType) {
	p.queues[enemyType] = append(p.queues[enemyType], id)
	p.queued[id] = struct{}{}
}
