// Package enemy 实现敌人代理与状态机驱动的 AI
//
// 每个敌人拥有一个 Agent：它聚合敌人实体的组件指针、独立的状态实例和状态机。
// 状态实例不在敌人之间共享，计时器都保存在状态对象内，由 AISystem 每帧推进。
package enemy

import (
	"log"
	"math"
	"math/rand"

	"github.com/decker502/wavearena/pkg/components"
	"github.com/decker502/wavearena/pkg/config"
	"github.com/decker502/wavearena/pkg/ecs"
	"github.com/decker502/wavearena/pkg/event"
	"github.com/decker502/wavearena/pkg/fsm"
	"github.com/decker502/wavearena/pkg/systems/health"
	"github.com/decker502/wavearena/pkg/types"
	"github.com/decker502/wavearena/pkg/utils"
)

// Context 敌人代理共享的依赖
//
// 同一竞技场内的所有代理共享一个 Context（包括同一个随机数源），
// 保证固定种子下的模拟可复现。
type Context struct {
	EntityManager *ecs.EntityManager
	Dispatcher    *event.Dispatcher
	Health        *health.System
	Rand          *rand.Rand
	Types         *config.EnemyTypesConfig
	Behavior      *config.EnemyBehaviorConfig
	// ArenaCenter 竞技场中心，敌人的目标点都围绕它选取
	ArenaCenter utils.Vec2
}

// BrainComponent 挂在敌人实体上，指向该敌人的 Agent
type BrainComponent struct {
	Agent *Agent
}

// Agent 单个敌人的 AI 代理
type Agent struct {
	ID  ecs.EntityID
	ctx *Context

	Enemy     *components.EnemyComponent
	Position  *components.PositionComponent
	Velocity  *components.VelocityComponent
	Scale     *components.ScaleComponent
	Nav       *components.NavAgentComponent
	Health    *components.HealthComponent
	Collision *components.CollisionComponent

	machine *fsm.Machine[*Agent]

	spawning *SpawningState
	basic    *BasicMovementState
	zigzag   *FastZigzagState
	heavy    *HeavyChargeState
	dead     *DeadState
}

// NewAgent 为已具备敌人组件的实体创建代理，并挂载 BrainComponent
//
// 实体必须拥有 Enemy/Position/Velocity/Scale/NavAgent/Health/Collision 组件，
// 缺少任何一个都会 panic（属于工厂的编程错误）。
func NewAgent(ctx *Context, id ecs.EntityID) *Agent {
	em := ctx.EntityManager
	a := &Agent{
		ID:        id,
		ctx:       ctx,
		Enemy:     mustGet[*components.EnemyComponent](em, id),
		Position:  mustGet[*components.PositionComponent](em, id),
		Velocity:  mustGet[*components.VelocityComponent](em, id),
		Scale:     mustGet[*components.ScaleComponent](em, id),
		Nav:       mustGet[*components.NavAgentComponent](em, id),
		Health:    mustGet[*components.HealthComponent](em, id),
		Collision: mustGet[*components.CollisionComponent](em, id),
		spawning:  &SpawningState{},
		basic:     &BasicMovementState{},
		zigzag:    &FastZigzagState{},
		heavy:     &HeavyChargeState{},
		dead:      &DeadState{},
	}
	a.machine = fsm.New(a)
	em.AddComponent(id, &BrainComponent{Agent: a})
	return a
}

func mustGet[T any](em *ecs.EntityManager, id ecs.EntityID) T {
	c, ok := ecs.GetComponent[T](em, id)
	if !ok {
		var zero T
		log.Panicf("[EnemyAgent] entity %d missing component %T", id, zero)
	}
	return c
}

// AgentOf 返回实体的代理
func AgentOf(em *ecs.EntityManager, id ecs.EntityID) (*Agent, bool) {
	brain, ok := ecs.GetComponent[*BrainComponent](em, id)
	if !ok || brain.Agent == nil {
		return nil, false
	}
	return brain.Agent, true
}

// Initialize 将敌人放到 position 并开始新的一条命
//
// 移动速度、体型、生命值每次都从基础值按类型倍率重新计算，
// 因此对象池反复复用不会让倍率累积。
func (a *Agent) Initialize(position utils.Vec2) {
	cfg := a.ctx.Types
	stats := cfg.Stats(a.Enemy.Type)

	a.Enemy.MoveSpeed = cfg.BaseMoveSpeed * stats.SpeedMultiplier
	a.Enemy.Active = true
	a.Enemy.Dead = false
	a.Enemy.DeathReported = false
	a.Enemy.Lives++

	a.Scale.Original = cfg.BaseScale * stats.ScaleMultiplier
	a.Scale.Current = a.Scale.Original

	a.Position.Pos = position
	a.Position.Facing = a.ctx.ArenaCenter.Sub(position).Angle()
	a.Velocity.Vel = utils.Vec2{}

	a.Nav.Radius = stats.AgentRadius
	a.Collision.Radius = stats.AgentRadius
	a.Nav.StoppingDistance = cfg.StoppingDistance
	a.Nav.Speed = a.Enemy.MoveSpeed
	a.Nav.Enabled = false
	a.clearPath()

	a.ctx.Health.SetMax(a.ID, cfg.BaseHealth*stats.HealthMultiplier)

	a.machine.ChangeState(a.spawning)
}

// MovementState 按敌人类型返回出生后进入的移动状态
func (a *Agent) MovementState() fsm.State[*Agent] {
	switch a.Enemy.Type {
	case types.EnemyFast:
		return a.zigzag
	case types.EnemyHeavy:
		return a.heavy
	default:
		return a.basic
	}
}

// ChangeState 切换状态
func (a *Agent) ChangeState(next fsm.State[*Agent]) {
	a.machine.ChangeState(next)
}

// Update 驱动状态机，非激活敌人不更新
func (a *Agent) Update(dt float64) {
	if !a.Enemy.Active {
		return
	}
	a.machine.Update(dt)
}

// CurrentState 返回当前状态
func (a *Agent) CurrentState() fsm.State[*Agent] {
	return a.machine.Current()
}

// StateName 返回当前状态名，无状态时为空字符串
func (a *Agent) StateName() string {
	return a.machine.CurrentName()
}

// IsAlive 是否在场上且未死亡
func (a *Agent) IsAlive() bool {
	return a.Enemy.Active && !a.Enemy.Dead
}

// OnHealthDepleted 生命值归零：停止移动并进入死亡状态
// 只对在场且存活的敌人生效
func (a *Agent) OnHealthDepleted() {
	if !a.IsAlive() {
		return
	}
	a.stop()
	a.machine.ChangeState(a.dead)
}

// OnEnemyDied 标记死亡并发布 EnemyDied
// 幂等：同一条命内多次调用只发布一次
func (a *Agent) OnEnemyDied() {
	if a.Enemy.DeathReported {
		return
	}
	a.Enemy.Dead = true
	a.Enemy.DeathReported = true
	a.ctx.Dispatcher.Dispatch(event.Event{
		Type: event.EnemyDied,
		Data: event.EntityData{Entity: a.ID},
	})
}

// ResetForPool 将敌人恢复为可回收的闲置状态
//
// 生命值回满，导航停止且无路径，位置与速度归零，体型恢复，非激活、非死亡。
// 状态机清空，下一次 Initialize 会从出生状态重新开始。
func (a *Agent) ResetForPool() {
	a.ctx.Health.Reset(a.ID)

	a.stop()
	a.clearPath()
	a.Nav.Enabled = false

	a.Position.Pos = utils.Vec2{}
	a.Position.Facing = 0
	a.Velocity.Vel = utils.Vec2{}
	a.Scale.Current = a.Scale.Original

	a.Enemy.Active = false
	a.Enemy.Dead = false
	a.Enemy.DeathReported = false

	a.machine.ChangeState(nil)
}

// CollisionRadius 当前碰撞半径（碰撞组件半径 × 当前缩放）
func (a *Agent) CollisionRadius() float64 {
	return a.Collision.Radius * a.Scale.Current
}

// ============================================================================
// 导航辅助
// ============================================================================

// setDestination 设置目的地，剩余距离立即按直线距离更新
func (a *Agent) setDestination(dest utils.Vec2) {
	a.Nav.Destination = dest
	a.Nav.HasPath = true
	a.Nav.RemainingDistance = a.Position.Pos.Distance(dest)
}

func (a *Agent) clearPath() {
	a.Nav.HasPath = false
	a.Nav.Destination = utils.Vec2{}
	a.Nav.RemainingDistance = 0
}

func (a *Agent) stop() {
	a.Nav.IsStopped = true
	a.Velocity.Vel = utils.Vec2{}
}

func (a *Agent) resume() {
	a.Nav.IsStopped = false
}

// remainingDistance 剩余距离；没有路径时返回 +Inf
func (a *Agent) remainingDistance() float64 {
	if !a.Nav.HasPath {
		return math.Inf(1)
	}
	return a.Nav.RemainingDistance
}

// randomPointNearCenter 在竞技场中心半径 r 的圆盘内均匀取点
func (a *Agent) randomPointNearCenter(r float64) utils.Vec2 {
	return a.ctx.ArenaCenter.Add(randomInsideUnitCircle(a.ctx.Rand).Scale(r))
}

// randomInsideUnitCircle 单位圆盘内均匀分布的随机点
func randomInsideUnitCircle(rng *rand.Rand) utils.Vec2 {
	angle := rng.Float64() * 2 * math.Pi
	radius := math.Sqrt(rng.Float64())
	return utils.V(math.Cos(angle)*radius, math.Sin(angle)*radius)
}

// randomRange 返回 [lo, hi) 内的均匀随机数
func randomRange(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
