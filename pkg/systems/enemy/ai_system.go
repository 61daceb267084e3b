package enemy

import (
	"log"

	"github.com/decker502/wavearena/pkg/ecs"
	"github.com/decker502/wavearena/pkg/event"
)

// AISystem 驱动所有在场敌人的状态机
//
// 订阅 HealthDepleted：生命值归零的在场敌人切换到死亡状态。
type AISystem struct {
	ctx *Context
}

// NewAISystem 创建敌人 AI 系统并订阅生命值事件
func NewAISystem(ctx *Context) *AISystem {
	s := &AISystem{ctx: ctx}
	ctx.Dispatcher.Subscribe(event.HealthDepleted, s)
	return s
}

// OnEvent 实现 event.Listener
func (s *AISystem) OnEvent(e event.Event) {
	if e.Type != event.HealthDepleted {
		return
	}
	data, ok := e.Data.(event.EntityData)
	if !ok {
		return
	}
	agent, ok := AgentOf(s.ctx.EntityManager, data.Entity)
	if !ok {
		return
	}
	if !agent.IsAlive() {
		return
	}
	log.Printf("[EnemyAI] 敌人 %d (%s) 死亡", agent.ID, agent.Enemy.Type)
	agent.OnHealthDepleted()
}

// Update 更新所有在场敌人（按实体 ID 升序）
func (s *AISystem) Update(deltaTime float64) {
	for _, id := range ecs.GetEntitiesWith1[*BrainComponent](s.ctx.EntityManager) {
		agent, ok := AgentOf(s.ctx.EntityManager, id)
		if !ok || !agent.Enemy.Active {
			continue
		}
		agent.Update(deltaTime)
	}
}

// ActiveAgents 返回所有在场敌人（含死亡延迟中的敌人）
func (s *AISystem) ActiveAgents() []*Agent {
	ids := ecs.GetEntitiesWith1[*BrainComponent](s.ctx.EntityManager)
	result := make([]*Agent, 0, len(ids))
	for _, id := range ids {
		if agent, ok := AgentOf(s.ctx.EntityManager, id); ok && agent.Enemy.Active {
			result = append(result, agent)
		}
	}
	return result
}

// StateCounts 统计各状态的在场敌人数量（调试显示用）
func (s *AISystem) StateCounts() map[string]int {
	counts := make(map[string]int)
	for _, agent := range s.ActiveAgents() {
		counts[agent.StateName()]++
	}
	return counts
}
