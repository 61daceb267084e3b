package snapshot

import (
	"bytes"
	"encoding/gob"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/decker502/wavearena/pkg/config"
	"github.com/decker502/wavearena/pkg/ecs"
	"github.com/decker502/wavearena/pkg/entities"
	"github.com/decker502/wavearena/pkg/event"
	"github.com/decker502/wavearena/pkg/systems/enemy"
	"github.com/decker502/wavearena/pkg/systems/health"
	"github.com/decker502/wavearena/pkg/types"
	"github.com/decker502/wavearena/pkg/utils"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// newSnapshotWorld 创建包含玩家、两个在场敌人和一个闲置敌人的实体管理器
func newSnapshotWorld(t *testing.T) *ecs.EntityManager {
	t.Helper()
	em := ecs.NewEntityManager()
	d := event.NewDispatcher()
	ctx := &enemy.Context{
		EntityManager: em,
		Dispatcher:    d,
		Health:        health.NewSystem(em, d),
		Rand:          rand.New(rand.NewSource(1)),
		Types:         config.DefaultEnemyTypesConfig(),
		Behavior:      config.DefaultEnemyBehaviorConfig(),
	}

	weapons := &config.WeaponsConfig{
		Weapons: []config.WeaponConfig{{
			Name: "rifle", Damage: 10, Ammo: "rifle", MagazineSize: 30,
			Pellets: 1, Range: 100, BulletSpeed: 60, AmmoType: types.AmmoRifle,
		}},
		DefaultWeapon: "rifle",
		StartingAmmo:  map[string]int{"rifle": 90},
	}
	if _, err := entities.NewPlayerEntity(em, config.DefaultArenaConfig(), weapons); err != nil {
		t.Fatalf("NewPlayerEntity failed: %v", err)
	}

	positions := []utils.Vec2{utils.V(10, 0), utils.V(0, -10)}
	for i, enemyType := range []types.EnemyType{types.EnemyBasic, types.EnemyHeavy} {
		id, err := entities.NewEnemyEntity(ctx, enemyType)
		if err != nil {
			t.Fatalf("NewEnemyEntity failed: %v", err)
		}
		agent, _ := enemy.AgentOf(em, id)
		agent.Initialize(positions[i])
	}
	// 池中闲置敌人不出现在快照中
	if _, err := entities.NewEnemyEntity(ctx, types.EnemyFast); err != nil {
		t.Fatalf("NewEnemyEntity failed: %v", err)
	}

	if _, err := entities.NewAmmoPickupEntity(em, utils.V(2, 3), types.AmmoShotgun, 8, 1, 30); err != nil {
		t.Fatalf("NewAmmoPickupEntity failed: %v", err)
	}
	return em
}

func TestNewSnapshotSerializer(t *testing.T) {
	if NewSnapshotSerializer() == nil {
		t.Fatal("NewSnapshotSerializer returned nil")
	}
}

func TestSnapshotSerializer_Capture(t *testing.T) {
	t.Run("EntityManager 为 nil", func(t *testing.T) {
		_, err := NewSnapshotSerializer().Capture(nil, WaveSnapshot{})
		if err == nil {
			t.Fatal("expected error for nil EntityManager")
		}
	})

	t.Run("采集在场实体", func(t *testing.T) {
		em := newSnapshotWorld(t)
		wave := WaveSnapshot{Wave: 2, Phase: "spawning", ActiveEnemies: 2, TotalSpawned: 5, TotalKilled: 3}

		snapshot, err := NewSnapshotSerializer().Capture(em, wave)
		if err != nil {
			t.Fatalf("Capture failed: %v", err)
		}

		if snapshot.Version != ArenaSnapshotVersion {
			t.Errorf("version: expected %d, got %d", ArenaSnapshotVersion, snapshot.Version)
		}
		if diff := cmp.Diff(wave, snapshot.Wave); diff != "" {
			t.Errorf("wave mismatch (-want +got):\n%s", diff)
		}

		if snapshot.Player == nil {
			t.Fatal("player missing from snapshot")
		}
		if snapshot.Player.Weapon != "rifle" || snapshot.Player.Magazine != 30 {
			t.Errorf("player weapon: got %s/%d", snapshot.Player.Weapon, snapshot.Player.Magazine)
		}
		if snapshot.Player.Ammo["rifle"] != 90 {
			t.Errorf("rifle ammo: expected 90, got %d", snapshot.Player.Ammo["rifle"])
		}

		if len(snapshot.Enemies) != 2 {
			t.Fatalf("expected 2 active enemies, got %d", len(snapshot.Enemies))
		}
		got := make([]string, 0, len(snapshot.Enemies))
		for _, e := range snapshot.Enemies {
			got = append(got, e.Type)
			if e.State != enemy.StateSpawning {
				t.Errorf("enemy %d: expected state %s, got %s", e.ID, enemy.StateSpawning, e.State)
			}
			if e.Lives != 1 {
				t.Errorf("enemy %d: expected lives 1, got %d", e.ID, e.Lives)
			}
		}
		want := []string{types.EnemyBasic.String(), types.EnemyHeavy.String()}
		if diff := cmp.Diff(want, got, cmpopts.SortSlices(func(a, b string) bool { return a < b })); diff != "" {
			t.Errorf("enemy types mismatch (-want +got):\n%s", diff)
		}
		if snapshot.StateCounts[enemy.StateSpawning] != 2 {
			t.Errorf("state counts: %v", snapshot.StateCounts)
		}

		if len(snapshot.Pickups) != 1 || snapshot.Pickups[0].Amount != 8 {
			t.Errorf("pickups: %+v", snapshot.Pickups)
		}
		if len(snapshot.Bullets) != 0 {
			t.Errorf("expected no bullets, got %d", len(snapshot.Bullets))
		}
	})
}

func TestSnapshotSerializer_SaveLoad(t *testing.T) {
	serializer := NewSnapshotSerializer()
	em := newSnapshotWorld(t)
	snapshot, err := serializer.Capture(em, WaveSnapshot{Wave: 3})
	if err != nil {
		t.Fatalf("Capture failed: %v", err)
	}
	snapshot.Seed = 42

	path := filepath.Join(t.TempDir(), "arena.snap")
	if err := serializer.Save(snapshot, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := serializer.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if diff := cmp.Diff(snapshot, loaded, cmpopts.EquateApproxTime(0)); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSnapshotSerializer_Errors(t *testing.T) {
	serializer := NewSnapshotSerializer()

	t.Run("文件不存在", func(t *testing.T) {
		if _, err := serializer.Load(filepath.Join(t.TempDir(), "missing.snap")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("nil 快照", func(t *testing.T) {
		var buf bytes.Buffer
		if err := serializer.Encode(&buf, nil); err == nil {
			t.Error("expected error for nil snapshot")
		}
	})

	t.Run("损坏数据", func(t *testing.T) {
		if _, err := serializer.Decode(bytes.NewBufferString("not a snapshot")); err == nil {
			t.Error("expected decode error")
		}
	})

	t.Run("版本不兼容", func(t *testing.T) {
		var buf bytes.Buffer
		if err := gob.NewEncoder(&buf).Encode(&ArenaSnapshot{Version: ArenaSnapshotVersion + 1}); err != nil {
			t.Fatalf("encode failed: %v", err)
		}
		if _, err := serializer.Decode(&buf); err == nil {
			t.Error("expected version mismatch error")
		}
	})
}
