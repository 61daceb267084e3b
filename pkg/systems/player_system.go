package systems

import (
	"math"

	"github.com/decker502/wavearena/pkg/components"
	"github.com/decker502/wavearena/pkg/config"
	"github.com/decker502/wavearena/pkg/ecs"
	"github.com/decker502/wavearena/pkg/utils"
)

// dashInputThreshold 移动输入长度低于该值时视为没有输入，冲刺沿朝向进行
const dashInputThreshold = 0.1

// PlayerSystem 玩家移动与冲刺
type PlayerSystem struct {
	entityManager *ecs.EntityManager
	settings      config.PlayerSettings
	center        utils.Vec2
	radius        float64
}

// NewPlayerSystem 创建玩家系统
// 参数:
//   - em: 实体管理器
//   - settings: 玩家配置（速度、冲刺）
//   - center: 竞技场中心
//   - radius: 竞技场半径，玩家不能离开该圆
func NewPlayerSystem(em *ecs.EntityManager, settings config.PlayerSettings, center utils.Vec2, radius float64) *PlayerSystem {
	return &PlayerSystem{
		entityManager: em,
		settings:      settings,
		center:        center,
		radius:        radius,
	}
}

// Update 推进所有玩家的移动、冲刺与冷却
func (s *PlayerSystem) Update(deltaTime float64) {
	for _, id := range ecs.GetEntitiesWith2[*components.PlayerComponent, *components.PositionComponent](s.entityManager) {
		player, _ := ecs.GetComponent[*components.PlayerComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)

		if player.DashCooldownLeft > 0 {
			player.DashCooldownLeft = math.Max(0, player.DashCooldownLeft-deltaTime)
		}

		var velocity utils.Vec2
		if player.IsDashing {
			// 最后一帧只走剩余时长，总位移恰好为 DashDistance
			dt := math.Min(deltaTime, s.settings.DashDuration-player.DashElapsed)
			speed := s.settings.DashDistance / s.settings.DashDuration
			pos.Pos = pos.Pos.Add(player.DashDirection.Scale(speed * dt))
			player.DashElapsed += deltaTime
			if player.DashElapsed >= s.settings.DashDuration {
				player.IsDashing = false
			}
			velocity = player.DashDirection.Scale(speed)
		} else {
			velocity = player.MoveInput.ClampLength(1).Scale(player.MoveSpeed)
			pos.Pos = pos.Pos.Add(velocity.Scale(deltaTime))
		}

		if s.radius > 0 {
			pos.Pos = s.center.Add(pos.Pos.Sub(s.center).ClampLength(s.radius))
		}
		if !player.Aim.IsZero() {
			pos.Facing = player.Aim.Angle()
		}
		if vel, ok := ecs.GetComponent[*components.VelocityComponent](s.entityManager, id); ok {
			vel.Vel = velocity
		}
	}
}

// SetMoveInput 设置本帧移动输入
func (s *PlayerSystem) SetMoveInput(id ecs.EntityID, input utils.Vec2) {
	if player := s.player(id); player != nil {
		player.MoveInput = input
	}
}

// SetAim 设置瞄准方向（零向量忽略）
func (s *PlayerSystem) SetAim(id ecs.EntityID, dir utils.Vec2) {
	if dir.IsZero() {
		return
	}
	if player := s.player(id); player != nil {
		player.Aim = dir.Normalize()
	}
}

// Dash 开始冲刺，冷却中或正在冲刺时返回 false
// 方向取移动输入，没有输入时沿瞄准方向
func (s *PlayerSystem) Dash(id ecs.EntityID) bool {
	player := s.player(id)
	if player == nil || player.IsDashing || player.DashCooldownLeft > 0 {
		return false
	}

	dir := player.Aim
	if player.MoveInput.Len() > dashInputThreshold {
		dir = player.MoveInput
	}
	dir = dir.Normalize()
	if dir.IsZero() {
		dir = utils.V(1, 0)
	}

	player.IsDashing = true
	player.DashElapsed = 0
	player.DashDirection = dir
	player.DashCooldownLeft = s.settings.DashCooldown
	return true
}

func (s *PlayerSystem) player(id ecs.EntityID) *components.PlayerComponent {
	player, ok := ecs.GetComponent[*components.PlayerComponent](s.entityManager, id)
	if !ok {
		return nil
	}
	return player
}
