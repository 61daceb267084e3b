package systems

import (
	"math"
	"testing"

	"github.com/decker502/wavearena/pkg/components"
	"github.com/decker502/wavearena/pkg/ecs"
	"github.com/decker502/wavearena/pkg/entities"
	"github.com/decker502/wavearena/pkg/systems/enemy"
	"github.com/decker502/wavearena/pkg/types"
	"github.com/decker502/wavearena/pkg/utils"
)

type bulletFixture struct {
	ctx     *enemy.Context
	ai      *enemy.AISystem
	bullets *BulletSystem
	player  ecs.EntityID
}

func newBulletFixture(t *testing.T) *bulletFixture {
	t.Helper()
	ctx := newEnemyTestContext()
	player := ctx.EntityManager.CreateEntity()
	ctx.EntityManager.AddComponent(player, &components.PlayerComponent{})
	return &bulletFixture{
		ctx:     ctx,
		ai:      enemy.NewAISystem(ctx),
		bullets: NewBulletSystem(ctx.EntityManager, ctx.Health),
		player:  player,
	}
}

func (f *bulletFixture) spawnEnemy(t *testing.T, enemyType types.EnemyType, pos utils.Vec2) *enemy.Agent {
	t.Helper()
	id, err := entities.NewEnemyEntity(f.ctx, enemyType)
	if err != nil {
		t.Fatalf("NewEnemyEntity failed: %v", err)
	}
	agent, _ := enemy.AgentOf(f.ctx.EntityManager, id)
	agent.Initialize(pos)
	return agent
}

func (f *bulletFixture) fire(t *testing.T, damage float64, origin, dir utils.Vec2) ecs.EntityID {
	t.Helper()
	cfg := testRifle()
	cfg.Damage = damage
	cfg.BulletSpeed = 10
	cfg.Range = 20
	id, err := entities.NewBulletEntity(f.ctx.EntityManager, f.player, cfg, origin, dir)
	if err != nil {
		t.Fatalf("NewBulletEntity failed: %v", err)
	}
	return id
}

// TestBulletSystem_HitAndKill 测试命中、击杀与击杀计数
func TestBulletSystem_HitAndKill(t *testing.T) {
	f := newBulletFixture(t)
	target := f.spawnEnemy(t, types.EnemyBasic, utils.V(5, 0))
	bullet := f.fire(t, 60, utils.V(0, 0), utils.V(1, 0))

	// 0.25s 飞行 2.5，尚未到达
	if hits := f.bullets.Update(0.25); hits != 0 {
		t.Fatalf("should not hit yet, got %d hits", hits)
	}
	if hits := f.bullets.Update(0.25); hits != 1 {
		t.Fatalf("expected 1 hit, got %d", hits)
	}
	if target.Health.Current != 40 {
		t.Errorf("health: expected 40, got %.1f", target.Health.Current)
	}
	if !f.ctx.EntityManager.IsMarkedForDestroy(bullet) {
		t.Error("bullet should be destroyed after hit")
	}

	f.ctx.EntityManager.RemoveMarkedEntities()
	f.fire(t, 60, utils.V(0, 0), utils.V(1, 0))
	f.bullets.Update(0.5)
	if !target.Enemy.Dead || target.StateName() != enemy.StateDead {
		t.Errorf("enemy should be dead, state=%s", target.StateName())
	}
	player, _ := ecs.GetComponent[*components.PlayerComponent](f.ctx.EntityManager, f.player)
	if player.Kills != 1 {
		t.Errorf("player kills: expected 1, got %d", player.Kills)
	}
}

// TestBulletSystem_FirstTargetOnly 测试只命中路径上最近的敌人
func TestBulletSystem_FirstTargetOnly(t *testing.T) {
	f := newBulletFixture(t)
	far := f.spawnEnemy(t, types.EnemyBasic, utils.V(6, 0))
	near := f.spawnEnemy(t, types.EnemyBasic, utils.V(3, 0))
	f.fire(t, 10, utils.V(0, 0), utils.V(1, 0))

	f.bullets.Update(1)
	if near.Health.Current != 90 || far.Health.Current != 100 {
		t.Errorf("only the nearest enemy should be hit: near=%.0f far=%.0f", near.Health.Current, far.Health.Current)
	}
}

// TestBulletSystem_UsesCollisionComponent 测试命中判定使用敌人的碰撞组件半径
func TestBulletSystem_UsesCollisionComponent(t *testing.T) {
	f := newBulletFixture(t)
	target := f.spawnEnemy(t, types.EnemyBasic, utils.V(3, 1))
	target.Scale.Current = 1

	// 半径 0.5 + 子弹 0.1 够不到偏离 1 的敌人
	f.fire(t, 10, utils.V(0, 0), utils.V(1, 0))
	if hits := f.bullets.Update(1); hits != 0 {
		t.Fatalf("default radius should miss, got %d hits", hits)
	}
	f.ctx.EntityManager.RemoveMarkedEntities()

	target.Collision.Radius = 1.2
	f.fire(t, 10, utils.V(0, 0), utils.V(1, 0))
	if hits := f.bullets.Update(1); hits != 1 {
		t.Fatalf("enlarged collision radius should hit, got %d hits", hits)
	}
	if target.Health.Current != 90 {
		t.Errorf("health: expected 90, got %.1f", target.Health.Current)
	}
}

// TestBulletSystem_IgnoresDeadAndPooled 测试死亡与闲置敌人不会被命中
func TestBulletSystem_IgnoresDeadAndPooled(t *testing.T) {
	f := newBulletFixture(t)
	dead := f.spawnEnemy(t, types.EnemyBasic, utils.V(3, 0))
	f.ctx.Health.ApplyDamage(dead.ID, 1000)
	pooled := f.spawnEnemy(t, types.EnemyBasic, utils.V(5, 0))
	pooled.ResetForPool()
	pooled.Position.Pos = utils.V(5, 0)

	bullet := f.fire(t, 10, utils.V(0, 0), utils.V(1, 0))
	if hits := f.bullets.Update(1); hits != 0 {
		t.Errorf("expected no hits, got %d", hits)
	}
	if f.ctx.EntityManager.IsMarkedForDestroy(bullet) {
		t.Error("bullet should keep flying")
	}
}

// TestBulletSystem_Range 测试超出射程销毁
func TestBulletSystem_Range(t *testing.T) {
	f := newBulletFixture(t)
	bullet := f.fire(t, 10, utils.V(0, 0), utils.V(0, 1))

	f.bullets.Update(1.5)
	if f.ctx.EntityManager.IsMarkedForDestroy(bullet) {
		t.Fatal("bullet destroyed before reaching range")
	}
	f.bullets.Update(1.5)
	if !f.ctx.EntityManager.IsMarkedForDestroy(bullet) {
		t.Error("bullet should be destroyed at range")
	}
	pos, _ := ecs.GetComponent[*components.PositionComponent](f.ctx.EntityManager, bullet)
	if math.Abs(pos.Pos.Y-20) > 1e-9 {
		t.Errorf("bullet should stop at range 20, got %v", pos.Pos)
	}
}

func TestSegmentCircleHit(t *testing.T) {
	tests := []struct {
		name   string
		start  utils.Vec2
		length float64
		center utils.Vec2
		want   float64
		hit    bool
	}{
		{"正面命中", utils.V(0, 0), 10, utils.V(5, 0), 4, true},
		{"线段太短", utils.V(0, 0), 3, utils.V(5, 0), 0, false},
		{"偏离", utils.V(0, 0), 10, utils.V(5, 2), 0, false},
		{"在身后", utils.V(0, 0), 10, utils.V(-5, 0), 0, false},
		{"起点在圆内", utils.V(4.5, 0), 10, utils.V(5, 0), 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			at, ok := segmentCircleHit(tt.start, utils.V(1, 0), tt.length, tt.center, 1)
			if ok != tt.hit || (ok && math.Abs(at-tt.want) > 1e-9) {
				t.Errorf("got (%.3f, %v), want (%.3f, %v)", at, ok, tt.want, tt.hit)
			}
		})
	}
}
