package systems

import (
	"math"

	"github.com/decker502/wavearena/pkg/components"
	"github.com/decker502/wavearena/pkg/ecs"
	"github.com/decker502/wavearena/pkg/entities"
	"github.com/decker502/wavearena/pkg/systems/enemy"
	"github.com/decker502/wavearena/pkg/systems/health"
	"github.com/decker502/wavearena/pkg/utils"
)

// BulletSystem 子弹飞行与命中
//
// 每帧把子弹沿直线推进一段，用线段与敌人碰撞圆求交，
// 命中沿途最先碰到的存活敌人后销毁；飞行距离达到射程也会销毁。
type BulletSystem struct {
	entityManager *ecs.EntityManager
	health        *health.System
}

// NewBulletSystem 创建子弹系统
func NewBulletSystem(em *ecs.EntityManager, hs *health.System) *BulletSystem {
	return &BulletSystem{
		entityManager: em,
		health:        hs,
	}
}

// Update 推进所有子弹，返回本帧命中次数
func (s *BulletSystem) Update(deltaTime float64) int {
	agents := s.liveAgents()
	hits := 0

	for _, id := range ecs.GetEntitiesWith2[*components.BulletComponent, *components.PositionComponent](s.entityManager) {
		if s.entityManager.IsMarkedForDestroy(id) {
			continue
		}
		bullet, _ := ecs.GetComponent[*components.BulletComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		if bullet.Hit {
			continue
		}

		step := bullet.Speed * deltaTime
		if left := bullet.Range - bullet.Traveled; step > left {
			step = left
		}
		start := pos.Pos
		end := start.Add(bullet.Direction.Scale(step))

		if target, at := s.firstHit(agents, start, bullet.Direction, step); target != nil {
			bullet.Hit = true
			pos.Pos = start.Add(bullet.Direction.Scale(at))
			s.applyHit(bullet, target)
			s.entityManager.DestroyEntity(id)
			hits++
			continue
		}

		pos.Pos = end
		bullet.Traveled += step
		if bullet.Traveled >= bullet.Range {
			s.entityManager.DestroyEntity(id)
		}
	}
	return hits
}

// liveAgents 本帧可被命中的敌人（在场且存活）
func (s *BulletSystem) liveAgents() []*enemy.Agent {
	ids := ecs.GetEntitiesWith1[*enemy.BrainComponent](s.entityManager)
	agents := make([]*enemy.Agent, 0, len(ids))
	for _, id := range ids {
		if agent, ok := enemy.AgentOf(s.entityManager, id); ok && agent.IsAlive() {
			agents = append(agents, agent)
		}
	}
	return agents
}

// firstHit 沿路径最先碰到的敌人及碰撞点距起点的距离
func (s *BulletSystem) firstHit(agents []*enemy.Agent, start, dir utils.Vec2, length float64) (*enemy.Agent, float64) {
	var best *enemy.Agent
	bestAt := math.Inf(1)
	for _, agent := range agents {
		if !agent.IsAlive() {
			continue
		}
		radius := agent.CollisionRadius() + entities.BulletRadius
		at, ok := segmentCircleHit(start, dir, length, agent.Position.Pos, radius)
		if ok && at < bestAt {
			best, bestAt = agent, at
		}
	}
	return best, bestAt
}

func (s *BulletSystem) applyHit(bullet *components.BulletComponent, target *enemy.Agent) {
	s.health.ApplyDamage(target.ID, bullet.Damage)
	if target.Enemy.Dead {
		if player, ok := ecs.GetComponent[*components.PlayerComponent](s.entityManager, bullet.Owner); ok {
			player.Kills++
		}
	}
}

// segmentCircleHit 从 start 沿单位向量 dir 前进 length 的线段与圆的首个交点
// 返回交点到 start 的距离；起点已在圆内时返回 0
func segmentCircleHit(start, dir utils.Vec2, length float64, center utils.Vec2, radius float64) (float64, bool) {
	toCenter := center.Sub(start)
	if toCenter.Len() <= radius {
		return 0, true
	}
	proj := toCenter.Dot(dir)
	if proj < 0 {
		return 0, false
	}
	distSq := toCenter.Dot(toCenter) - proj*proj
	rSq := radius * radius
	if distSq > rSq {
		return 0, false
	}
	at := proj - math.Sqrt(rSq-distSq)
	if at > length {
		return 0, false
	}
	return at, true
}
