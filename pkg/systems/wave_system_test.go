package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/decker502/wavearena/pkg/components"
	"github.com/decker502/wavearena/pkg/config"
	"github.com/decker502/wavearena/pkg/ecs"
	"github.com/decker502/wavearena/pkg/entities"
	"github.com/decker502/wavearena/pkg/event"
	"github.com/decker502/wavearena/pkg/pool"
	"github.com/decker502/wavearena/pkg/systems/enemy"
	"github.com/decker502/wavearena/pkg/systems/health"
	"github.com/decker502/wavearena/pkg/types"
)

const testStep = 0.25

type waveFixture struct {
	em    *ecs.EntityManager
	d     *event.Dispatcher
	ctx   *enemy.Context
	pool  *pool.EnemyPool
	ai    *enemy.AISystem
	waves *WaveSystem
}

func testWaveSettings() config.WaveSettings {
	w := config.DefaultArenaConfig().Waves
	w.InitialSizes = []int{3, 4}
	w.EnemyIncreasePerWave = 2
	w.BatchSize = 2
	w.TimeBetweenWaves = 1
	w.ArenaRadius = 10
	w.PoolSize = 6
	return w
}

func newEnemyTestContext() *enemy.Context {
	em := ecs.NewEntityManager()
	d := event.NewDispatcher()
	return &enemy.Context{
		EntityManager: em,
		Dispatcher:    d,
		Health:        health.NewSystem(em, d),
		Rand:          rand.New(rand.NewSource(7)),
		Types:         config.DefaultEnemyTypesConfig(),
		Behavior:      config.DefaultEnemyBehaviorConfig(),
	}
}

func newWaveFixture(t *testing.T, settings config.WaveSettings) *waveFixture {
	t.Helper()
	ctx := newEnemyTestContext()
	p := pool.NewEnemyPool(ctx.EntityManager, entities.EnemyFactory(ctx))
	ai := enemy.NewAISystem(ctx)
	waves, err := NewWaveSystem(ctx, p, settings)
	if err != nil {
		t.Fatalf("NewWaveSystem failed: %v", err)
	}
	return &waveFixture{em: ctx.EntityManager, d: ctx.Dispatcher, ctx: ctx, pool: p, ai: ai, waves: waves}
}

func (f *waveFixture) tick(n int) {
	for i := 0; i < n; i++ {
		f.waves.Update(testStep)
		f.ai.Update(testStep)
		f.em.RemoveMarkedEntities()
	}
}

func countWaveEvents(d *event.Dispatcher, eventType event.EventType) *[]event.WaveData {
	var got []event.WaveData
	d.SubscribeFunc(eventType, func(e event.Event) {
		got = append(got, e.Data.(event.WaveData))
	})
	return &got
}

// TestWaveSystem_SpawnInBatches 测试分批生成
func TestWaveSystem_SpawnInBatches(t *testing.T) {
	f := newWaveFixture(t, testWaveSettings())
	started := countWaveEvents(f.d, event.WaveStarted)

	if f.pool.Size() != 6 {
		t.Fatalf("pool should be prewarmed to 6, got %d", f.pool.Size())
	}

	// 未开始时不生成
	f.tick(1)
	if f.waves.ActiveCount() != 0 {
		t.Fatal("nothing should spawn before Start")
	}

	f.waves.Start()
	if len(*started) != 1 || (*started)[0] != (event.WaveData{Wave: 1, Enemies: 3}) {
		t.Fatalf("unexpected WaveStarted events: %+v", *started)
	}

	f.waves.Update(testStep)
	if got := f.waves.ActiveCount(); got != 2 {
		t.Errorf("first batch: expected 2 active, got %d", got)
	}
	if f.waves.Stats().Phase != components.WavePhaseSpawning {
		t.Errorf("should still be spawning, got %s", f.waves.Stats().Phase)
	}

	f.waves.Update(testStep)
	stats := f.waves.Stats()
	if stats.ActiveEnemies != 3 || stats.SpawnedThisWave != 3 || stats.TotalSpawned != 3 {
		t.Errorf("after second batch: %+v", stats)
	}
	if stats.Phase != components.WavePhaseAwaitingClear {
		t.Errorf("expected awaiting_clear, got %s", stats.Phase)
	}

	// 敌人出生在竞技场边缘，并处于激活状态
	for _, id := range f.waves.ActiveEnemies() {
		agent, ok := enemy.AgentOf(f.em, id)
		if !ok {
			t.Fatalf("entity %d has no agent", id)
		}
		if !agent.Enemy.Active {
			t.Errorf("enemy %d should be active", id)
		}
		if d := agent.Position.Pos.Len(); math.Abs(d-10) > 1e-9 {
			t.Errorf("enemy %d should spawn on radius 10, got %.3f", id, d)
		}
		if agent.StateName() != enemy.StateSpawning {
			t.Errorf("enemy %d should be spawning, got %s", id, agent.StateName())
		}
	}
}

// TestWaveSystem_FullCycle 测试 清场 → 波间 → 下一波 的完整循环
func TestWaveSystem_FullCycle(t *testing.T) {
	f := newWaveFixture(t, testWaveSettings())
	cleared := countWaveEvents(f.d, event.WaveCleared)
	started := countWaveEvents(f.d, event.WaveStarted)

	f.waves.Start()
	f.tick(2)

	if n := f.waves.DestroyCurrentWave(); n != 3 {
		t.Fatalf("DestroyCurrentWave: expected 3, got %d", n)
	}
	if f.waves.ActiveCount() != 0 {
		t.Fatalf("all enemies should be removed on death, %d left", f.waves.ActiveCount())
	}
	if f.waves.Stats().TotalKilled != 3 {
		t.Errorf("TotalKilled: expected 3, got %d", f.waves.Stats().TotalKilled)
	}

	f.tick(1)
	stats := f.waves.Stats()
	if stats.Phase != components.WavePhaseIntermission || !stats.Waiting {
		t.Fatalf("expected intermission with waiting flag, got %+v", stats)
	}
	if len(*cleared) != 1 || (*cleared)[0].Wave != 1 {
		t.Errorf("unexpected WaveCleared events: %+v", *cleared)
	}

	// 1 秒波间：第 4 个 0.25s 帧开始下一波
	f.tick(3)
	if f.waves.CurrentWave() != 1 {
		t.Fatalf("next wave started too early")
	}
	f.tick(1)
	if f.waves.CurrentWave() != 2 {
		t.Fatalf("expected wave 2, got %d", f.waves.CurrentWave())
	}
	if len(*started) != 2 || (*started)[1] != (event.WaveData{Wave: 2, Enemies: 4}) {
		t.Errorf("unexpected WaveStarted events: %+v", *started)
	}
	if f.waves.Stats().Waiting {
		t.Error("waiting flag should be cleared when the wave starts")
	}
}

// TestWaveSystem_PoolReuse 测试死亡延迟后敌人回到对象池并被复用
func TestWaveSystem_PoolReuse(t *testing.T) {
	settings := testWaveSettings()
	settings.PoolSize = 3
	settings.EnemyTypes = []string{"basic"}
	f := newWaveFixture(t, settings)

	f.waves.Start()
	f.tick(2)
	first := f.waves.ActiveEnemies()
	f.waves.DestroyCurrentWave()
	// 暂停调度，只观察死亡回收
	f.waves.ToggleWaves()

	// 死亡延迟 2 秒内仍在场上（Active），不在池中
	f.tick(4)
	if avail := f.pool.Available(types.EnemyBasic); avail != 0 {
		t.Errorf("enemies should not be pooled during death delay, available=%d", avail)
	}

	f.tick(4)
	for _, id := range first {
		if !f.pool.IsQueued(id) {
			t.Errorf("enemy %d should be back in the pool", id)
		}
	}

	// 下一波复用同一批实体
	f.waves.SpawnNextWave()
	f.tick(2)
	if f.pool.Size() != 4 {
		t.Errorf("wave of 4 with 3 pooled should grow pool to 4, got %d", f.pool.Size())
	}
	reused := 0
	for _, id := range f.waves.ActiveEnemies() {
		agent, _ := enemy.AgentOf(f.em, id)
		if agent.Enemy.Lives == 2 {
			reused++
			if agent.Health.Current != agent.Health.Max {
				t.Errorf("reused enemy %d should have full health", id)
			}
		}
	}
	if reused != 3 {
		t.Errorf("expected 3 reused enemies, got %d", reused)
	}
}

// TestWaveSystem_ToggleWaves 测试暂停
func TestWaveSystem_ToggleWaves(t *testing.T) {
	t.Run("暂停时不生成", func(t *testing.T) {
		f := newWaveFixture(t, testWaveSettings())
		f.waves.Start()
		if !f.waves.ToggleWaves() {
			t.Fatal("first toggle should pause")
		}
		f.tick(4)
		if f.waves.ActiveCount() != 0 {
			t.Errorf("no spawns while paused, got %d", f.waves.ActiveCount())
		}
		if f.waves.ToggleWaves() {
			t.Fatal("second toggle should resume")
		}
		f.tick(1)
		if f.waves.ActiveCount() != 2 {
			t.Errorf("spawning should resume, got %d", f.waves.ActiveCount())
		}
	})

	t.Run("暂停时波间倒计时停止", func(t *testing.T) {
		f := newWaveFixture(t, testWaveSettings())
		f.waves.Start()
		f.tick(2)
		f.waves.DestroyCurrentWave()
		f.tick(2)

		f.waves.ToggleWaves()
		left := f.waves.Stats().IntermissionLeft
		f.tick(20)
		if f.waves.CurrentWave() != 1 {
			t.Fatal("next wave must not start while paused")
		}
		if f.waves.Stats().IntermissionLeft != left {
			t.Errorf("intermission timer advanced while paused: %.2f -> %.2f", left, f.waves.Stats().IntermissionLeft)
		}
	})
}

// TestWaveSystem_SpawnNextWave 测试立即开始下一波
func TestWaveSystem_SpawnNextWave(t *testing.T) {
	f := newWaveFixture(t, testWaveSettings())
	f.waves.Start()
	f.tick(2)
	f.waves.ToggleWaves()

	f.waves.SpawnNextWave()
	stats := f.waves.Stats()
	if stats.Wave != 2 || stats.Phase != components.WavePhaseSpawning || stats.Paused || stats.Waiting {
		t.Fatalf("unexpected stats after SpawnNextWave: %+v", stats)
	}

	// 上一波的敌人保留，新一波叠加
	f.tick(2)
	if f.waves.ActiveCount() != 3+4 {
		t.Errorf("expected 7 active enemies, got %d", f.waves.ActiveCount())
	}
}

// TestWaveSystem_OnEnemyDestroyedUnknown 测试忽略未跟踪的实体
func TestWaveSystem_OnEnemyDestroyedUnknown(t *testing.T) {
	f := newWaveFixture(t, testWaveSettings())
	f.waves.Start()
	f.tick(2)

	f.waves.OnEnemyDestroyed(ecs.EntityID(9999))
	if f.waves.ActiveCount() != 3 || f.waves.Stats().TotalKilled != 0 {
		t.Errorf("unknown id should be ignored: %+v", f.waves.Stats())
	}

	// 同一个敌人重复上报只计一次
	id := f.waves.ActiveEnemies()[0]
	f.waves.OnEnemyDestroyed(id)
	f.waves.OnEnemyDestroyed(id)
	if f.waves.ActiveCount() != 2 || f.waves.Stats().TotalKilled != 1 {
		t.Errorf("duplicate report counted twice: %+v", f.waves.Stats())
	}
}

// TestNewWaveSystem_InvalidTypes 测试无效敌人类型
func TestNewWaveSystem_InvalidTypes(t *testing.T) {
	settings := testWaveSettings()
	settings.EnemyTypes = []string{"dragon"}
	ctx := newEnemyTestContext()
	p := pool.NewEnemyPool(ctx.EntityManager, entities.EnemyFactory(ctx))
	if _, err := NewWaveSystem(ctx, p, settings); err == nil {
		t.Fatal("expected error for unknown enemy type")
	}
}
