package entities

import (
	"fmt"

	"github.com/decker502/wavearena/pkg/components"
	"github.com/decker502/wavearena/pkg/ecs"
	"github.com/decker502/wavearena/pkg/systems/enemy"
	"github.com/decker502/wavearena/pkg/types"
)

// NewEnemyEntity 创建一个闲置的敌人实体并挂载 AI 代理
// 敌人创建后不在场上（Active=false），由对象池取出后调用 Agent.Initialize 激活
//
// 参数:
//   - ctx: 敌人代理共享依赖（实体管理器、事件、配置）
//   - enemyType: 敌人类型
//
// 返回:
//   - ecs.EntityID: 创建的敌人实体ID，如果失败返回 0
//   - error: 如果创建失败返回错误信息
func NewEnemyEntity(ctx *enemy.Context, enemyType types.EnemyType) (ecs.EntityID, error) {
	if ctx == nil || ctx.EntityManager == nil {
		return 0, fmt.Errorf("enemy context cannot be nil")
	}
	if !enemyType.IsValid() {
		return 0, fmt.Errorf("invalid enemy type %d", enemyType)
	}
	em := ctx.EntityManager
	stats := ctx.Types.Stats(enemyType)
	baseScale := ctx.Types.BaseScale * stats.ScaleMultiplier
	maxHealth := ctx.Types.BaseHealth * stats.HealthMultiplier

	entityID := em.CreateEntity()

	em.AddComponent(entityID, &components.EnemyComponent{
		Type:      enemyType,
		MoveSpeed: ctx.Types.BaseMoveSpeed * stats.SpeedMultiplier,
	})
	em.AddComponent(entityID, &components.PositionComponent{})
	em.AddComponent(entityID, &components.VelocityComponent{})
	em.AddComponent(entityID, &components.ScaleComponent{
		Current:  baseScale,
		Original: baseScale,
	})
	em.AddComponent(entityID, &components.NavAgentComponent{
		IsStopped:        true,
		Radius:           stats.AgentRadius,
		StoppingDistance: ctx.Types.StoppingDistance,
	})
	em.AddComponent(entityID, &components.HealthComponent{
		Current: maxHealth,
		Max:     maxHealth,
	})
	em.AddComponent(entityID, &components.CollisionComponent{
		Radius: stats.AgentRadius,
	})

	enemy.NewAgent(ctx, entityID)
	return entityID, nil
}

// EnemyFactory 返回供对象池使用的敌人工厂
func EnemyFactory(ctx *enemy.Context) func(types.EnemyType) (ecs.EntityID, error) {
	return func(enemyType types.EnemyType) (ecs.EntityID, error) {
		return NewEnemyEntity(ctx, enemyType)
	}
}
