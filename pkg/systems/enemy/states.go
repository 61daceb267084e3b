package enemy

import (
	"math"

	"github.com/decker502/wavearena/pkg/event"
	"github.com/decker502/wavearena/pkg/utils"
)

// 状态名称
const (
	StateSpawning      = "Spawning"
	StateBasicMovement = "BasicMovement"
	StateFastZigzag    = "FastZigzag"
	StateHeavyCharge   = "HeavyCharge"
	StateDead          = "Dead"
)

// ============================================================================
// SpawningState 出生：体型从 0 放大到原始大小，结束后启用导航并进入移动状态
// ============================================================================

// SpawningState 出生状态
type SpawningState struct {
	timer float64
}

// Name 状态名称
func (s *SpawningState) Name() string { return StateSpawning }

// Enter 计时归零、体型置 0、停止导航并清除路径
func (s *SpawningState) Enter(a *Agent) {
	s.timer = 0
	a.Scale.Current = 0
	a.stop()
	a.clearPath()
}

// Update 按进度插值体型；计时到达后启用导航并切换到移动状态
func (s *SpawningState) Update(a *Agent, dt float64) {
	duration := a.ctx.Behavior.Spawning.Duration
	s.timer += dt

	progress := utils.Clamp01(s.timer / duration)
	a.Scale.Current = utils.Lerp(0, a.Scale.Original, progress)

	if s.timer >= duration {
		a.Nav.Enabled = true
		a.Nav.Speed = a.Enemy.MoveSpeed
		a.ChangeState(a.MovementState())
	}
}

// Exit 恢复原始体型
func (s *SpawningState) Exit(a *Agent) {
	a.Scale.Current = a.Scale.Original
}

// Elapsed 出生动画已进行时间
func (s *SpawningState) Elapsed() float64 { return s.timer }

// ============================================================================
// BasicMovementState 普通敌人：定期在中心附近随机选点
// ============================================================================

// BasicMovementState 普通移动状态
type BasicMovementState struct {
	timer float64
}

// Name 状态名称
func (s *BasicMovementState) Name() string { return StateBasicMovement }

// Enter 恢复导航并设置速度参数，首次 Update 立即选点
func (s *BasicMovementState) Enter(a *Agent) {
	tuning := a.ctx.Behavior.Basic
	a.resume()
	a.Nav.Speed = a.Enemy.MoveSpeed
	a.Nav.Acceleration = tuning.Acceleration
	a.Nav.AngularSpeed = tuning.AngularSpeed
	s.timer = tuning.DestinationUpdateRate
}

// Update 每 DestinationUpdateRate 秒重新选点
func (s *BasicMovementState) Update(a *Agent, dt float64) {
	if !a.Nav.Enabled {
		return
	}
	tuning := a.ctx.Behavior.Basic
	s.timer += dt
	if s.timer >= tuning.DestinationUpdateRate {
		a.setDestination(a.randomPointNearCenter(tuning.TargetRadius))
		s.timer = 0
	}
}

// Exit 停止导航
func (s *BasicMovementState) Exit(a *Agent) {
	a.stop()
}

// ============================================================================
// FastZigzagState 快速敌人：朝中心方向加侧向扰动的之字形冲锋
// ============================================================================

// FastZigzagState 之字形移动状态
type FastZigzagState struct {
	timer float64
}

// Name 状态名称
func (s *FastZigzagState) Name() string { return StateFastZigzag }

// Enter 计时归零、恢复导航、设置速度参数并选定第一个目标
func (s *FastZigzagState) Enter(a *Agent) {
	tuning := a.ctx.Behavior.Zigzag
	s.timer = 0
	a.resume()
	a.Nav.Speed = a.Enemy.MoveSpeed
	a.Nav.Acceleration = tuning.Acceleration
	a.Nav.AngularSpeed = tuning.AngularSpeed
	s.retarget(a)
}

// Update 到达变向间隔或接近目标时重新选定目标
func (s *FastZigzagState) Update(a *Agent, dt float64) {
	if !a.Nav.Enabled {
		return
	}
	tuning := a.ctx.Behavior.Zigzag
	s.timer += dt
	if s.timer >= tuning.Interval || a.remainingDistance() < tuning.ArriveDistance {
		s.retarget(a)
		s.timer = 0
	}
}

// Exit 停止导航
func (s *FastZigzagState) Exit(a *Agent) {
	a.stop()
}

// retarget 目标 = 位置 + normalize(指向中心 + 垂直方向·U(-strength, strength)) · DestinationRadius
func (s *FastZigzagState) retarget(a *Agent) {
	tuning := a.ctx.Behavior.Zigzag
	pos := a.Position.Pos

	toCenter := a.ctx.ArenaCenter.Sub(pos).Normalize()
	if toCenter.IsZero() {
		// 正好位于中心时随便选一个方向
		toCenter = randomInsideUnitCircle(a.ctx.Rand).Normalize()
	}
	perpendicular := toCenter.Perp()
	strength := randomRange(a.ctx.Rand, -tuning.Strength, tuning.Strength)
	direction := toCenter.Add(perpendicular.Scale(strength)).Normalize()

	a.setDestination(pos.Add(direction.Scale(tuning.DestinationRadius)))
}

// ============================================================================
// HeavyChargeState 重型敌人：蓄力 → 冲撞 → 冷却 循环
// ============================================================================

// ChargePhase 冲撞阶段
type ChargePhase int

const (
	ChargePreparing ChargePhase = iota
	ChargeCharging
	ChargeCooldown
)

// String 返回阶段名称
func (p ChargePhase) String() string {
	switch p {
	case ChargeCharging:
		return "charging"
	case ChargeCooldown:
		return "cooldown"
	default:
		return "preparing"
	}
}

// HeavyChargeState 蓄力冲撞状态
type HeavyChargeState struct {
	phase      ChargePhase
	phaseTimer float64
	// retargetTimer 蓄力阶段的重新选点计时，与阶段计时分开
	retargetTimer float64
}

// Name 状态名称
func (s *HeavyChargeState) Name() string { return StateHeavyCharge }

// Phase 当前阶段
func (s *HeavyChargeState) Phase() ChargePhase { return s.phase }

// Enter 进入蓄力阶段并选定目标
func (s *HeavyChargeState) Enter(a *Agent) {
	s.phase = ChargePreparing
	s.phaseTimer = 0
	s.retargetTimer = 0
	a.resume()
	a.Nav.Acceleration = a.ctx.Behavior.Heavy.PrepareAcceleration
	s.retarget(a)
}

// Update 推进阶段计时
func (s *HeavyChargeState) Update(a *Agent, dt float64) {
	if !a.Nav.Enabled {
		return
	}
	tuning := a.ctx.Behavior.Heavy
	s.phaseTimer += dt

	switch s.phase {
	case ChargePreparing:
		a.Nav.Speed = a.Enemy.MoveSpeed * tuning.PrepareSpeedFactor
		a.Nav.Acceleration = tuning.PrepareAcceleration

		pulse := 1 + math.Sin(s.phaseTimer*tuning.PulseFrequency)*tuning.PulseAmplitude
		a.Scale.Current = a.Scale.Original * pulse

		s.retargetTimer += dt
		if s.retargetTimer >= tuning.RetargetInterval {
			s.retarget(a)
			s.retargetTimer = 0
		}

		if s.phaseTimer >= tuning.PrepareTime {
			s.phase = ChargeCharging
			s.phaseTimer = 0
			a.Scale.Current = a.Scale.Original
		}

	case ChargeCharging:
		a.Nav.Speed = a.Enemy.MoveSpeed * tuning.ChargeSpeedFactor
		a.Nav.Acceleration = tuning.ChargeAcceleration

		if s.phaseTimer >= tuning.ChargeTime || a.remainingDistance() < tuning.ArriveDistance {
			s.phase = ChargeCooldown
			s.phaseTimer = 0
		}

	case ChargeCooldown:
		a.stop()
		if s.phaseTimer >= tuning.CooldownTime {
			a.resume()
			s.phase = ChargePreparing
			s.phaseTimer = 0
			s.retargetTimer = 0
			s.retarget(a)
		}
	}
}

// Exit 停止导航并恢复体型
func (s *HeavyChargeState) Exit(a *Agent) {
	a.stop()
	a.Scale.Current = a.Scale.Original
}

func (s *HeavyChargeState) retarget(a *Agent) {
	a.setDestination(a.randomPointNearCenter(a.ctx.Behavior.Heavy.TargetRadius))
}

// ============================================================================
// DeadState 死亡：停止移动、上报死亡，延迟后重置并通知回收
// ============================================================================

// DeadState 死亡状态
type DeadState struct {
	timer    float64
	released bool
}

// Name 状态名称
func (s *DeadState) Name() string { return StateDead }

// Enter 停止导航并上报死亡（幂等）
func (s *DeadState) Enter(a *Agent) {
	s.timer = 0
	s.released = false
	a.stop()
	a.Nav.Enabled = false
	a.OnEnemyDied()
}

// Update 等待 DeathDelay 后重置敌人并发布 EnemyReadyForPool
func (s *DeadState) Update(a *Agent, dt float64) {
	if s.released {
		return
	}
	s.timer += dt
	if s.timer < a.ctx.Behavior.Dead.DeathDelay {
		return
	}
	s.released = true
	a.ResetForPool()
	a.ctx.Dispatcher.Dispatch(event.Event{
		Type: event.EnemyReadyForPool,
		Data: event.EntityData{Entity: a.ID},
	})
}

// Exit 无操作
func (s *DeadState) Exit(a *Agent) {}
