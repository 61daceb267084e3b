// Package arena 组装竞技场模拟：实体管理器、事件、对象池和全部系统
//
// World 是场景与无界面工具共用的模拟核心，不依赖任何渲染代码。
package arena

import (
	"fmt"
	"log"
	"math"
	"math/rand"

	"github.com/decker502/wavearena/pkg/components"
	"github.com/decker502/wavearena/pkg/config"
	"github.com/decker502/wavearena/pkg/ecs"
	"github.com/decker502/wavearena/pkg/entities"
	"github.com/decker502/wavearena/pkg/event"
	"github.com/decker502/wavearena/pkg/pool"
	"github.com/decker502/wavearena/pkg/snapshot"
	"github.com/decker502/wavearena/pkg/systems"
	"github.com/decker502/wavearena/pkg/systems/enemy"
	"github.com/decker502/wavearena/pkg/systems/health"
	"github.com/decker502/wavearena/pkg/utils"
)

// World 竞技场模拟
//
// 每帧按固定顺序更新：
// 玩家 → 镜头 → 波次 → 敌人 AI → 导航 → 武器 → 子弹 → 掉落物 → 生命周期 → 延迟删除
type World struct {
	opts Options

	entityManager *ecs.EntityManager
	dispatcher    *event.Dispatcher
	rng           *rand.Rand
	enemyCtx      *enemy.Context
	enemyPool     *pool.EnemyPool

	healthSystem     *health.System
	aiSystem         *enemy.AISystem
	navigationSystem *systems.NavigationSystem
	waveSystem       *systems.WaveSystem
	ammoSystem       *systems.AmmoSystem
	weaponSystem     *systems.WeaponSystem
	bulletSystem     *systems.BulletSystem
	pickupSystem     *systems.PickupSystem
	lifetimeSystem   *systems.LifetimeSystem
	playerSystem     *systems.PlayerSystem
	cameraSystem     *systems.CameraSystem

	playerID ecs.EntityID
	elapsed  float64
}

// NewWorld 创建竞技场并预热对象池，波次需要调用 Start 开始
func NewWorld(opts Options) (*World, error) {
	if err := opts.applyDefaults(); err != nil {
		return nil, err
	}

	em := ecs.NewEntityManager()
	dispatcher := event.NewDispatcher()
	rng := rand.New(rand.NewSource(opts.Seed))
	healthSystem := health.NewSystem(em, dispatcher)
	center := utils.Vec2{}

	ctx := &enemy.Context{
		EntityManager: em,
		Dispatcher:    dispatcher,
		Health:        healthSystem,
		Rand:          rng,
		Types:         opts.EnemyTypes,
		Behavior:      opts.Behavior,
		ArenaCenter:   center,
	}

	w := &World{
		opts:          opts,
		entityManager: em,
		dispatcher:    dispatcher,
		rng:           rng,
		enemyCtx:      ctx,
		healthSystem:  healthSystem,
	}

	playerID, err := entities.NewPlayerEntity(em, opts.Arena, opts.Weapons)
	if err != nil {
		return nil, fmt.Errorf("create player: %w", err)
	}
	w.playerID = playerID

	waves := opts.Arena.Waves
	w.enemyPool = pool.NewEnemyPool(em, entities.EnemyFactory(ctx))
	w.aiSystem = enemy.NewAISystem(ctx)
	w.navigationSystem = systems.NewNavigationSystem(em, center, waves.ArenaRadius+waves.SpawnJitter)
	if w.waveSystem, err = systems.NewWaveSystem(ctx, w.enemyPool, waves); err != nil {
		return nil, fmt.Errorf("create wave system: %w", err)
	}

	w.ammoSystem = systems.NewAmmoSystem(em, dispatcher)
	w.weaponSystem = systems.NewWeaponSystem(em, dispatcher, w.ammoSystem, rng)
	w.bulletSystem = systems.NewBulletSystem(em, healthSystem)
	w.pickupSystem = systems.NewPickupSystem(em, dispatcher, w.ammoSystem, rng, opts.Arena.Pickups)
	w.lifetimeSystem = systems.NewLifetimeSystem(em)
	w.playerSystem = systems.NewPlayerSystem(em, opts.Arena.Player, center, waves.ArenaRadius)
	w.cameraSystem = systems.NewCameraSystem(em, opts.Arena, playerID)

	log.Printf("[World] 竞技场已创建: seed=%d, radius=%.1f, pool=%d",
		opts.Seed, waves.ArenaRadius, w.enemyPool.Size())
	return w, nil
}

// Start 开始第一波
func (w *World) Start() {
	w.waveSystem.Start()
}

// Update 推进一帧模拟
func (w *World) Update(deltaTime float64) {
	w.playerSystem.Update(deltaTime)
	w.cameraSystem.Update(deltaTime)
	w.waveSystem.Update(deltaTime)
	w.aiSystem.Update(deltaTime)
	w.navigationSystem.Update(deltaTime)
	w.weaponSystem.Update(deltaTime)
	w.bulletSystem.Update(deltaTime)
	w.pickupSystem.Update(deltaTime)
	w.lifetimeSystem.Update(deltaTime)
	w.entityManager.RemoveMarkedEntities()
	w.elapsed += deltaTime
}

// ==================================================
// 波次命令
// ==================================================

// ToggleWaves 暂停/恢复波次调度，返回切换后是否暂停
func (w *World) ToggleWaves() bool {
	return w.waveSystem.ToggleWaves()
}

// SpawnNextWave 立即开始下一波
func (w *World) SpawnNextWave() {
	w.waveSystem.SpawnNextWave()
}

// DestroyCurrentWave 消灭场上所有敌人，返回被消灭的数量
func (w *World) DestroyCurrentWave() int {
	return w.waveSystem.DestroyCurrentWave()
}

// ==================================================
// 玩家命令
// ==================================================

// Fire 沿玩家瞄准方向射击，返回生成的子弹数
func (w *World) Fire() int {
	player := w.player()
	if player == nil {
		return 0
	}
	return w.weaponSystem.TryFire(w.playerID, player.Aim)
}

// Reload 开始换弹；正在换弹且武器允许时中断换弹
func (w *World) Reload() {
	w.weaponSystem.ToggleReload(w.playerID)
}

// SwitchWeapon 切换到指定名称的武器
func (w *World) SwitchWeapon(name string) error {
	cfg, ok := w.opts.Weapons.Weapon(name)
	if !ok {
		return fmt.Errorf("unknown weapon %q", name)
	}
	w.weaponSystem.SwitchWeapon(w.playerID, cfg)
	return nil
}

// Dash 向移动方向（静止时向瞄准方向）冲刺
func (w *World) Dash() bool {
	return w.playerSystem.Dash(w.playerID)
}

// MovePlayer 设置本帧移动输入
func (w *World) MovePlayer(input utils.Vec2) {
	w.playerSystem.SetMoveInput(w.playerID, input)
}

// Aim 设置瞄准方向
func (w *World) Aim(dir utils.Vec2) {
	w.playerSystem.SetAim(w.playerID, dir)
}

// AimAt 瞄准世界坐标中的一点
func (w *World) AimAt(target utils.Vec2) {
	w.Aim(target.Sub(w.PlayerPosition()))
}

// ToggleCamera 切换自由/第一人称镜头
func (w *World) ToggleCamera() components.CameraMode {
	return w.cameraSystem.Toggle()
}

// MoveCamera 设置自由镜头输入
func (w *World) MoveCamera(input utils.Vec2, boost bool) {
	w.cameraSystem.SetFreeInput(input, boost)
}

// ==================================================
// 查询
// ==================================================

// NearestEnemy 返回离玩家最近的存活敌人位置
func (w *World) NearestEnemy() (utils.Vec2, bool) {
	origin := w.PlayerPosition()
	best := math.Inf(1)
	var target utils.Vec2
	found := false
	for _, agent := range w.aiSystem.ActiveAgents() {
		if !agent.IsAlive() {
			continue
		}
		if d := agent.Position.Pos.Distance(origin); d < best {
			best = d
			target = agent.Position.Pos
			found = true
		}
	}
	return target, found
}

// Agents 返回在场敌人代理（按实体 ID 升序）
func (w *World) Agents() []*enemy.Agent {
	return w.aiSystem.ActiveAgents()
}

// StateCounts 各 AI 状态的在场敌人数量
func (w *World) StateCounts() map[string]int {
	return w.aiSystem.StateCounts()
}

// WaveStats 返回波次调度状态
func (w *World) WaveStats() systems.WaveStats {
	return w.waveSystem.Stats()
}

// WeaponStatus 返回当前武器名、弹匣、备弹、是否换弹中
func (w *World) WeaponStatus() (name string, magazine, reserve int, reloading bool) {
	return w.weaponSystem.Status(w.playerID)
}

// AimDirection 返回玩家当前瞄准方向
func (w *World) AimDirection() utils.Vec2 {
	if player := w.player(); player != nil {
		return player.Aim
	}
	return utils.V(1, 0)
}

// WeaponNames 返回武器表中的全部武器名（配置顺序）
func (w *World) WeaponNames() []string {
	names := make([]string, 0, len(w.opts.Weapons.Weapons))
	for _, weapon := range w.opts.Weapons.Weapons {
		names = append(names, weapon.Name)
	}
	return names
}

// PlayerPosition 返回玩家位置
func (w *World) PlayerPosition() utils.Vec2 {
	pos, ok := ecs.GetComponent[*components.PositionComponent](w.entityManager, w.playerID)
	if !ok {
		return utils.Vec2{}
	}
	return pos.Pos
}

// Kills 返回玩家击杀数
func (w *World) Kills() int {
	if player := w.player(); player != nil {
		return player.Kills
	}
	return 0
}

// RunResult 返回本局战绩
func (w *World) RunResult() snapshot.RunResult {
	return snapshot.RunResult{
		Wave:    w.waveSystem.CurrentWave(),
		Kills:   w.Kills(),
		Seconds: w.elapsed,
	}
}

// Snapshot 采集当前模拟状态
func (w *World) Snapshot() (*snapshot.ArenaSnapshot, error) {
	stats := w.waveSystem.Stats()
	snap, err := snapshot.NewSnapshotSerializer().Capture(w.entityManager, snapshot.WaveSnapshot{
		Wave:          stats.Wave,
		Phase:         stats.Phase.String(),
		ActiveEnemies: stats.ActiveEnemies,
		TotalSpawned:  stats.TotalSpawned,
		TotalKilled:   stats.TotalKilled,
		Paused:        stats.Paused,
		Waiting:       stats.Waiting,
		PoolSize:      w.enemyPool.Size(),
	})
	if err != nil {
		return nil, err
	}
	snap.Seed = w.opts.Seed
	snap.Elapsed = w.elapsed
	return snap, nil
}

// Dispatcher 返回事件分发器（HUD 订阅换弹、拾取等事件）
func (w *World) Dispatcher() *event.Dispatcher { return w.dispatcher }

// EntityManager 返回实体管理器
func (w *World) EntityManager() *ecs.EntityManager { return w.entityManager }

// PlayerID 返回玩家实体
func (w *World) PlayerID() ecs.EntityID { return w.playerID }

// Camera 返回镜头组件
func (w *World) Camera() *components.CameraComponent {
	cam, _ := ecs.GetComponent[*components.CameraComponent](w.entityManager, w.cameraSystem.Entity())
	return cam
}

// Arena 返回竞技场配置
func (w *World) Arena() *config.ArenaConfig { return w.opts.Arena }

// Elapsed 返回模拟已进行的秒数
func (w *World) Elapsed() float64 { return w.elapsed }

// PoolSize 返回对象池中的敌人实体总数
func (w *World) PoolSize() int { return w.enemyPool.Size() }

func (w *World) player() *components.PlayerComponent {
	player, ok := ecs.GetComponent[*components.PlayerComponent](w.entityManager, w.playerID)
	if !ok {
		return nil
	}
	return player
}
