package systems

import (
	"github.com/decker502/wavearena/pkg/components"
	"github.com/decker502/wavearena/pkg/ecs"
	"github.com/decker502/wavearena/pkg/utils"
)

// NavigationSystem 推进敌人的导航代理
//
// 竞技场内没有障碍物，代理沿直线朝目的地加速，
// 进入停止距离后速度归零。位置始终被限制在竞技场圆内。
type NavigationSystem struct {
	entityManager *ecs.EntityManager
	center        utils.Vec2
	radius        float64
}

// NewNavigationSystem 创建导航系统
// 参数:
//   - em: 实体管理器
//   - center: 竞技场中心
//   - radius: 竞技场半径（<=0 表示不限制）
func NewNavigationSystem(em *ecs.EntityManager, center utils.Vec2, radius float64) *NavigationSystem {
	return &NavigationSystem{
		entityManager: em,
		center:        center,
		radius:        radius,
	}
}

// Update 更新所有在场敌人的导航
func (s *NavigationSystem) Update(deltaTime float64) {
	ids := ecs.GetEntitiesWith3[*components.NavAgentComponent, *components.PositionComponent, *components.VelocityComponent](s.entityManager)
	for _, id := range ids {
		if enemy, ok := ecs.GetComponent[*components.EnemyComponent](s.entityManager, id); ok && !enemy.Active {
			continue
		}
		nav, _ := ecs.GetComponent[*components.NavAgentComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](s.entityManager, id)
		s.step(nav, pos, vel, deltaTime)
	}
}

func (s *NavigationSystem) step(nav *components.NavAgentComponent, pos *components.PositionComponent, vel *components.VelocityComponent, dt float64) {
	if !nav.Enabled || nav.IsStopped || !nav.HasPath {
		vel.Vel = utils.Vec2{}
		if nav.HasPath {
			nav.RemainingDistance = pos.Pos.Distance(nav.Destination)
		}
		return
	}

	toDest := nav.Destination.Sub(pos.Pos)
	remaining := toDest.Len()
	if remaining <= nav.StoppingDistance {
		vel.Vel = utils.Vec2{}
		nav.RemainingDistance = remaining
		return
	}

	// 加速度为 0 时直接达到目标速度
	desired := toDest.Scale(nav.Speed / remaining)
	if nav.Acceleration > 0 {
		vel.Vel = utils.MoveTowards(vel.Vel, desired, nav.Acceleration*dt)
	} else {
		vel.Vel = desired
	}

	// 朝向按角速度转向移动方向
	if !vel.Vel.IsZero() {
		target := vel.Vel.Angle()
		if nav.AngularSpeed > 0 {
			pos.Facing = utils.MoveTowardsAngle(pos.Facing, target, nav.AngularSpeed*dt)
		} else {
			pos.Facing = target
		}
	}

	move := vel.Vel.Scale(dt)
	if move.Len() >= remaining {
		pos.Pos = nav.Destination
		vel.Vel = utils.Vec2{}
	} else {
		pos.Pos = pos.Pos.Add(move)
	}
	pos.Pos = s.clamp(pos.Pos)
	nav.RemainingDistance = pos.Pos.Distance(nav.Destination)
}

// clamp 将位置限制在竞技场圆内
func (s *NavigationSystem) clamp(p utils.Vec2) utils.Vec2 {
	if s.radius <= 0 {
		return p
	}
	return s.center.Add(p.Sub(s.center).ClampLength(s.radius))
}
