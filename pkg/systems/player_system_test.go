package systems

import (
	"math"
	"testing"

	"github.com/decker502/wavearena/pkg/components"
	"github.com/decker502/wavearena/pkg/config"
	"github.com/decker502/wavearena/pkg/ecs"
	"github.com/decker502/wavearena/pkg/entities"
	"github.com/decker502/wavearena/pkg/utils"
)

func newPlayerFixture(t *testing.T) (*PlayerSystem, ecs.EntityID, *components.PositionComponent, *components.PlayerComponent) {
	t.Helper()
	em := ecs.NewEntityManager()
	arena := config.DefaultArenaConfig()
	arena.Player.DashDuration = 0.5
	weapons := &config.WeaponsConfig{
		DefaultWeapon: "rifle",
		Weapons:       []config.WeaponConfig{*testRifle()},
	}

	id, err := entities.NewPlayerEntity(em, arena, weapons)
	if err != nil {
		t.Fatalf("NewPlayerEntity failed: %v", err)
	}
	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	player, _ := ecs.GetComponent[*components.PlayerComponent](em, id)
	return NewPlayerSystem(em, arena.Player, utils.Vec2{}, 10), id, pos, player
}

// TestPlayerSystem_Move 测试移动与边界
func TestPlayerSystem_Move(t *testing.T) {
	s, id, pos, _ := newPlayerFixture(t)

	s.SetMoveInput(id, utils.V(0, 2))
	s.Update(0.5)
	if math.Abs(pos.Pos.Y-3) > 1e-9 {
		t.Errorf("input should be clamped to length 1: expected y=3, got %v", pos.Pos)
	}

	s.Update(10)
	if math.Abs(pos.Pos.Len()-10) > 1e-9 {
		t.Errorf("player should stay inside radius 10, got %v", pos.Pos)
	}
}

// TestPlayerSystem_Dash 测试冲刺距离与冷却
func TestPlayerSystem_Dash(t *testing.T) {
	s, id, pos, player := newPlayerFixture(t)
	s.SetAim(id, utils.V(0, 3))

	// 没有移动输入时沿瞄准方向冲刺
	if !s.Dash(id) {
		t.Fatal("first dash should succeed")
	}
	if s.Dash(id) {
		t.Error("cannot dash while dashing")
	}
	for i := 0; i < 3; i++ {
		s.Update(0.25)
	}
	if player.IsDashing {
		t.Error("dash should finish after its duration")
	}
	if math.Abs(pos.Pos.Y-5) > 1e-9 || math.Abs(pos.Pos.X) > 1e-9 {
		t.Errorf("dash should travel exactly 5 along aim, got %v", pos.Pos)
	}
	if math.Abs(pos.Facing-90) > 1e-9 {
		t.Errorf("facing should follow aim, got %.1f", pos.Facing)
	}

	// 冷却 2 秒，已过去 0.75 秒
	if s.Dash(id) {
		t.Error("dash should be on cooldown")
	}
	for i := 0; i < 5; i++ {
		s.Update(0.25)
	}
	s.SetMoveInput(id, utils.V(-1, 0))
	if !s.Dash(id) {
		t.Fatal("dash should be ready after cooldown")
	}
	if player.DashDirection != utils.V(-1, 0) {
		t.Errorf("dash should follow move input, got %v", player.DashDirection)
	}
}
