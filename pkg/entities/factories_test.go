package entities

import (
	"math/rand"
	"testing"

	"github.com/decker502/wavearena/pkg/components"
	"github.com/decker502/wavearena/pkg/config"
	"github.com/decker502/wavearena/pkg/ecs"
	"github.com/decker502/wavearena/pkg/event"
	"github.com/decker502/wavearena/pkg/systems/enemy"
	"github.com/decker502/wavearena/pkg/systems/health"
	"github.com/decker502/wavearena/pkg/types"
	"github.com/decker502/wavearena/pkg/utils"
)

func newEnemyContext() *enemy.Context {
	em := ecs.NewEntityManager()
	d := event.NewDispatcher()
	return &enemy.Context{
		EntityManager: em,
		Dispatcher:    d,
		Health:        health.NewSystem(em, d),
		Rand:          rand.New(rand.NewSource(1)),
		Types:         config.DefaultEnemyTypesConfig(),
		Behavior:      config.DefaultEnemyBehaviorConfig(),
	}
}

// TestNewEnemyEntity 测试敌人实体创建
func TestNewEnemyEntity(t *testing.T) {
	tests := []struct {
		name      string
		enemyType types.EnemyType
		radius    float64
		wantErr   bool
	}{
		{"普通敌人", types.EnemyBasic, 0.5, false},
		{"快速敌人", types.EnemyFast, 0.4, false},
		{"重型敌人", types.EnemyHeavy, 0.8, false},
		{"未知类型", types.EnemyUnknown, 0, true},
	}

	ctx := newEnemyContext()
	em := ctx.EntityManager

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := NewEnemyEntity(ctx, tt.enemyType)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewEnemyEntity() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}

			enemyComp, ok := ecs.GetComponent[*components.EnemyComponent](em, id)
			if !ok {
				t.Fatal("EnemyComponent missing")
			}
			if enemyComp.Active || enemyComp.Type != tt.enemyType {
				t.Errorf("new enemy should be idle of type %s: %+v", tt.enemyType, enemyComp)
			}

			nav, ok := ecs.GetComponent[*components.NavAgentComponent](em, id)
			if !ok || nav.Radius != tt.radius || !nav.IsStopped {
				t.Errorf("nav agent: %+v", nav)
			}

			agent, ok := enemy.AgentOf(em, id)
			if !ok {
				t.Fatal("agent not attached")
			}
			if agent.CurrentState() != nil {
				t.Errorf("idle enemy should have no state, got %s", agent.StateName())
			}
		})
	}

	if _, err := NewEnemyEntity(nil, types.EnemyBasic); err == nil {
		t.Error("expected error for nil context")
	}
}

// TestEnemyFactoryInitialize 测试工厂创建的敌人可以直接初始化
func TestEnemyFactoryInitialize(t *testing.T) {
	ctx := newEnemyContext()
	factory := EnemyFactory(ctx)

	id, err := factory(types.EnemyHeavy)
	if err != nil {
		t.Fatalf("factory failed: %v", err)
	}
	agent, _ := enemy.AgentOf(ctx.EntityManager, id)
	agent.Initialize(utils.V(0, 40))
	if agent.StateName() != enemy.StateSpawning || !agent.Enemy.Active {
		t.Errorf("expected active spawning enemy, got state=%s active=%v", agent.StateName(), agent.Enemy.Active)
	}
}

// TestNewBulletEntity 测试子弹实体创建
func TestNewBulletEntity(t *testing.T) {
	em := ecs.NewEntityManager()
	weapon := &config.WeaponConfig{Name: "rifle", Damage: 20, BulletSpeed: 80, Range: 100}

	id, err := NewBulletEntity(em, 1, weapon, utils.V(1, 1), utils.V(0, 5))
	if err != nil {
		t.Fatalf("NewBulletEntity failed: %v", err)
	}

	bullet, ok := ecs.GetComponent[*components.BulletComponent](em, id)
	if !ok {
		t.Fatal("BulletComponent missing")
	}
	if bullet.Direction != utils.V(0, 1) || bullet.Damage != 20 || bullet.Range != 100 {
		t.Errorf("unexpected bullet: %+v", bullet)
	}
	vel, _ := ecs.GetComponent[*components.VelocityComponent](em, id)
	if vel.Vel != utils.V(0, 80) {
		t.Errorf("velocity: expected (0,80), got %v", vel.Vel)
	}

	if _, err := NewBulletEntity(em, 1, weapon, utils.V(0, 0), utils.Vec2{}); err == nil {
		t.Error("expected error for zero direction")
	}
	if _, err := NewBulletEntity(em, 1, nil, utils.V(0, 0), utils.V(1, 0)); err == nil {
		t.Error("expected error for nil weapon")
	}
}

// TestNewPlayerEntity 测试玩家实体创建
func TestNewPlayerEntity(t *testing.T) {
	em := ecs.NewEntityManager()
	arena := config.DefaultArenaConfig()
	weapons := &config.WeaponsConfig{
		DefaultWeapon: "rifle",
		Weapons: []config.WeaponConfig{
			{Name: "rifle", AmmoType: types.AmmoRifle, MagazineSize: 30},
		},
		StartingAmmo: map[string]int{"rifle": 90},
	}

	id, err := NewPlayerEntity(em, arena, weapons)
	if err != nil {
		t.Fatalf("NewPlayerEntity failed: %v", err)
	}

	weapon, _ := ecs.GetComponent[*components.WeaponComponent](em, id)
	if weapon.Config.Name != "rifle" || weapon.Magazine != 30 {
		t.Errorf("weapon: %+v", weapon)
	}
	inv, _ := ecs.GetComponent[*components.AmmoInventoryComponent](em, id)
	if inv.Counts[types.AmmoRifle] != 90 || len(inv.Counts) != len(types.AllAmmoTypes) {
		t.Errorf("inventory: %v", inv.Counts)
	}

	camID := NewCameraEntity(em, arena, id)
	cam, _ := ecs.GetComponent[*components.CameraComponent](em, camID)
	if cam.Mode != components.CameraFree || cam.Target != id {
		t.Errorf("camera: %+v", cam)
	}
}

// TestNewAmmoPickupEntity 测试掉落物创建
func TestNewAmmoPickupEntity(t *testing.T) {
	em := ecs.NewEntityManager()

	id, err := NewAmmoPickupEntity(em, utils.V(3, 4), types.AmmoShotgun, 8, 1, 30)
	if err != nil {
		t.Fatalf("NewAmmoPickupEntity failed: %v", err)
	}
	if !ecs.HasComponent[*components.LifetimeComponent](em, id) {
		t.Error("pickup with lifetime should expire")
	}

	forever, _ := NewAmmoPickupEntity(em, utils.V(0, 0), types.AmmoRifle, 5, 1, 0)
	if ecs.HasComponent[*components.LifetimeComponent](em, forever) {
		t.Error("pickup without lifetime should not expire")
	}

	if _, err := NewAmmoPickupEntity(em, utils.V(0, 0), types.AmmoRifle, 0, 1, 0); err == nil {
		t.Error("expected error for zero amount")
	}
}
