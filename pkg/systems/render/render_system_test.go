package render

import (
	"math"
	"testing"

	"github.com/decker502/wavearena/pkg/components"
	"github.com/decker502/wavearena/pkg/ecs"
	"github.com/decker502/wavearena/pkg/types"
	"github.com/decker502/wavearena/pkg/utils"
)

var testView = View{PixelsPerUnit: 10, Width: 800, Height: 600}

func addEnemy(em *ecs.EntityManager, enemy *components.EnemyComponent, pos utils.Vec2, hp float64) ecs.EntityID {
	id := em.CreateEntity()
	em.AddComponent(id, enemy)
	em.AddComponent(id, &components.PositionComponent{Pos: pos})
	em.AddComponent(id, &components.ScaleComponent{Current: 1.3, Original: 1.3})
	em.AddComponent(id, &components.CollisionComponent{Radius: 0.8})
	em.AddComponent(id, &components.HealthComponent{Current: hp, Max: 100})
	em.AddComponent(id, &components.NavAgentComponent{HasPath: true, Destination: utils.V(0, 0)})
	return id
}

func TestViewTransform(t *testing.T) {
	tests := []struct {
		name   string
		center utils.Vec2
		world  utils.Vec2
		screen utils.Vec2
	}{
		{"原点在屏幕中心", utils.V(0, 0), utils.V(0, 0), utils.V(400, 300)},
		{"Y 轴向上", utils.V(0, 0), utils.V(1, 2), utils.V(410, 280)},
		{"跟随镜头", utils.V(10, 10), utils.V(10, 10), utils.V(400, 300)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := testView
			view.Center = tt.center
			got := view.WorldToScreen(tt.world)
			if got.Distance(tt.screen) > 1e-9 {
				t.Errorf("WorldToScreen(%v) = %v, want %v", tt.world, got, tt.screen)
			}
			if back := view.ScreenToWorld(got); back.Distance(tt.world) > 1e-9 {
				t.Errorf("ScreenToWorld round trip: got %v, want %v", back, tt.world)
			}
		})
	}
}

func TestRenderSystem_EnemySprites(t *testing.T) {
	em := ecs.NewEntityManager()
	hurt := addEnemy(em, &components.EnemyComponent{Type: types.EnemyHeavy, Active: true}, utils.V(2, 0), 50)
	addEnemy(em, &components.EnemyComponent{Type: types.EnemyBasic, Active: false}, utils.V(5, 5), 100)
	addEnemy(em, &components.EnemyComponent{Type: types.EnemyFast, Active: true, Dead: true}, utils.V(-2, 0), 0)
	s := NewRenderSystem(em, 40)

	t.Run("闲置敌人不绘制", func(t *testing.T) {
		if got := len(s.enemySprites(testView, false)); got != 2 {
			t.Fatalf("expected 2 sprites, got %d", got)
		}
	})

	t.Run("半径取自碰撞组件与缩放", func(t *testing.T) {
		sprites := s.enemySprites(testView, false)
		alive := sprites[0]
		if math.Abs(alive.Radius-0.8*1.3*10) > 1e-9 {
			t.Errorf("radius: expected %.2f, got %.2f", 0.8*1.3*10, alive.Radius)
		}
		if alive.Pos.Distance(utils.V(420, 300)) > 1e-9 {
			t.Errorf("position: got %v", alive.Pos)
		}
		if alive.Color != EnemyColor(types.EnemyHeavy) {
			t.Errorf("heavy color: got %v", alive.Color)
		}
	})

	t.Run("血条", func(t *testing.T) {
		sprites := s.enemySprites(testView, false)
		if !sprites[0].ShowHealth || sprites[0].HealthRatio != 0.5 {
			t.Errorf("hurt enemy: show=%v ratio=%.2f", sprites[0].ShowHealth, sprites[0].HealthRatio)
		}
		if sprites[1].ShowHealth || sprites[1].Color != deadColor {
			t.Errorf("dead enemy should be grey without a health bar: %+v", sprites[1])
		}

		hp, _ := ecs.GetComponent[*components.HealthComponent](em, hurt)
		hp.Current = hp.Max
		if s.enemySprites(testView, false)[0].ShowHealth {
			t.Error("full health should hide the bar")
		}
	})

	t.Run("导航目标线", func(t *testing.T) {
		if s.enemySprites(testView, false)[0].ShowNav {
			t.Error("nav line should be hidden when disabled")
		}
		sprites := s.enemySprites(testView, true)
		if !sprites[0].ShowNav || sprites[0].NavTarget.Distance(utils.V(400, 300)) > 1e-9 {
			t.Errorf("nav line: %+v", sprites[0])
		}
		if sprites[1].ShowNav {
			t.Error("dead enemy should not show a nav line")
		}
	})
}

func TestRenderSystem_PlayerAndProjectiles(t *testing.T) {
	em := ecs.NewEntityManager()
	player := em.CreateEntity()
	em.AddComponent(player, &components.PlayerComponent{Aim: utils.V(0, 1)})
	em.AddComponent(player, &components.PositionComponent{Pos: utils.V(1, 0)})
	em.AddComponent(player, &components.CollisionComponent{Radius: 0.4})

	bullet := em.CreateEntity()
	em.AddComponent(bullet, &components.BulletComponent{})
	em.AddComponent(bullet, &components.PositionComponent{Pos: utils.V(0, 1)})
	spent := em.CreateEntity()
	em.AddComponent(spent, &components.BulletComponent{})
	em.AddComponent(spent, &components.PositionComponent{})
	em.DestroyEntity(spent)

	pickup := em.CreateEntity()
	em.AddComponent(pickup, &components.PickupComponent{AmmoType: types.AmmoRifle, Amount: 10})
	em.AddComponent(pickup, &components.PositionComponent{Pos: utils.V(-1, 0)})

	s := NewRenderSystem(em, 40)

	players := s.playerSprites(testView)
	if len(players) != 1 {
		t.Fatalf("expected 1 player, got %d", len(players))
	}
	p := players[0]
	if math.Abs(p.Radius-4) > 1e-9 || p.Pos.Distance(utils.V(410, 300)) > 1e-9 {
		t.Errorf("player sprite: %+v", p)
	}
	// 瞄准 (0,1)，长度 0.4*2.5=1 世界单位，屏幕上向上 10 像素
	if p.AimEnd.Distance(utils.V(410, 290)) > 1e-9 {
		t.Errorf("aim end: got %v", p.AimEnd)
	}

	bullets := s.bulletPositions(testView)
	if len(bullets) != 1 || bullets[0].Distance(utils.V(400, 290)) > 1e-9 {
		t.Errorf("bullets: got %v", bullets)
	}
	pickups := s.pickupPositions(testView)
	if len(pickups) != 1 || pickups[0].Distance(utils.V(390, 300)) > 1e-9 {
		t.Errorf("pickups: got %v", pickups)
	}
}
