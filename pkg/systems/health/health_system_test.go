package health

import (
	"testing"

	"github.com/decker502/wavearena/pkg/components"
	"github.com/decker502/wavearena/pkg/ecs"
	"github.com/decker502/wavearena/pkg/event"
)

func newTestSystem(t *testing.T) (*System, *ecs.EntityManager, *event.Dispatcher) {
	t.Helper()
	em := ecs.NewEntityManager()
	d := event.NewDispatcher()
	return NewSystem(em, d), em, d
}

func countEvents(d *event.Dispatcher, eventType event.EventType) *int {
	n := new(int)
	d.SubscribeFunc(eventType, func(event.Event) { *n++ })
	return n
}

// TestApplyDamage 测试伤害结算与事件
func TestApplyDamage(t *testing.T) {
	s, em, d := newTestSystem(t)
	changed := countEvents(d, event.HealthChanged)
	depleted := countEvents(d, event.HealthDepleted)

	id := em.CreateEntity()
	em.AddComponent(id, &components.HealthComponent{Current: 100, Max: 100})

	if !s.ApplyDamage(id, 30) {
		t.Fatal("damage should apply")
	}
	if got := s.Current(id); got != 70 {
		t.Errorf("health: expected 70, got %.1f", got)
	}
	if *changed != 1 || *depleted != 0 {
		t.Errorf("events: changed=%d depleted=%d", *changed, *depleted)
	}

	// 致命伤害：生命值截断为 0，只发一次 HealthDepleted
	s.ApplyDamage(id, 500)
	if got := s.Current(id); got != 0 {
		t.Errorf("health should clamp to 0, got %.1f", got)
	}
	if *depleted != 1 {
		t.Errorf("expected one HealthDepleted, got %d", *depleted)
	}

	// 死亡后伤害被忽略
	if s.ApplyDamage(id, 10) {
		t.Error("damage on dead entity should be ignored")
	}
	if *changed != 2 || *depleted != 1 {
		t.Errorf("no further events expected: changed=%d depleted=%d", *changed, *depleted)
	}
}

// TestApplyDamageIgnored 测试无效伤害
func TestApplyDamageIgnored(t *testing.T) {
	s, em, _ := newTestSystem(t)

	noHealth := em.CreateEntity()
	if s.ApplyDamage(noHealth, 10) {
		t.Error("entity without health should ignore damage")
	}

	id := em.CreateEntity()
	em.AddComponent(id, &components.HealthComponent{Current: 10, Max: 10})
	if s.ApplyDamage(id, 0) || s.ApplyDamage(id, -5) {
		t.Error("non-positive damage should be ignored")
	}
	if s.Current(id) != 10 {
		t.Errorf("health changed by ignored damage: %.1f", s.Current(id))
	}
}

// TestResetAndSetMax 测试回满与重新设定上限
func TestResetAndSetMax(t *testing.T) {
	s, em, d := newTestSystem(t)
	depleted := countEvents(d, event.HealthDepleted)

	id := em.CreateEntity()
	h := &components.HealthComponent{Current: 50, Max: 50}
	em.AddComponent(id, h)

	s.ApplyDamage(id, 50)
	s.Reset(id)
	if h.Current != 50 || h.Depleted {
		t.Errorf("reset failed: %+v", h)
	}

	// 新的一条命可以再次触发 HealthDepleted
	s.ApplyDamage(id, 50)
	if *depleted != 2 {
		t.Errorf("expected HealthDepleted per life, got %d", *depleted)
	}

	s.SetMax(id, 90)
	if h.Max != 90 || h.Current != 90 {
		t.Errorf("SetMax failed: %+v", h)
	}
}

// TestPercentage 测试生命值百分比
func TestPercentage(t *testing.T) {
	tests := []struct {
		name     string
		health   *components.HealthComponent
		expected float64
	}{
		{"满血", &components.HealthComponent{Current: 80, Max: 80}, 1},
		{"半血", &components.HealthComponent{Current: 40, Max: 80}, 0.5},
		{"上限为零", &components.HealthComponent{Current: 0, Max: 0}, 0},
		{"nil", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Percentage(tt.health); got != tt.expected {
				t.Errorf("Percentage = %v, 期望 %v", got, tt.expected)
			}
		})
	}
}
