package systems

import (
	"fmt"
	"log"
	"math"

	"github.com/decker502/wavearena/pkg/components"
	"github.com/decker502/wavearena/pkg/config"
	"github.com/decker502/wavearena/pkg/ecs"
	"github.com/decker502/wavearena/pkg/event"
	"github.com/decker502/wavearena/pkg/pool"
	"github.com/decker502/wavearena/pkg/systems/enemy"
	"github.com/decker502/wavearena/pkg/types"
	"github.com/decker502/wavearena/pkg/utils"
)

// WaveStats 波次调度状态快照（HUD 与工具使用）
type WaveStats struct {
	Wave            int
	Phase           components.WavePhase
	ActiveEnemies   int
	WaveTarget      int
	SpawnedThisWave int
	TotalSpawned    int
	TotalKilled     int
	Paused          bool
	Waiting         bool
	// IntermissionLeft 波间剩余等待时间（秒），非波间阶段为 0
	IntermissionLeft float64
}

// WaveSystem 波次调度系统
//
// 调度循环：Spawning（每帧最多 BatchSize 个）→ AwaitingClear（等待场上敌人清空）
// → Intermission（等待 TimeBetweenWaves 秒）→ 下一波 Spawning。
//
// 状态保存在计时器实体的 WaveTimerComponent 上；
// 场上敌人列表按生成顺序维护，EnemyDied 时移除，EnemyReadyForPool 时归还对象池。
type WaveSystem struct {
	entityManager *ecs.EntityManager
	dispatcher    *event.Dispatcher
	ctx           *enemy.Context
	pool          *pool.EnemyPool
	settings      config.WaveSettings
	enemyTypes    []types.EnemyType

	// timerEntityID 计时器组件所在的实体ID
	timerEntityID ecs.EntityID

	active    []ecs.EntityID
	activeSet map[ecs.EntityID]struct{}
}

// NewWaveSystem 创建波次调度系统
//
// 参数：
//   - ctx: 敌人代理共享依赖（随机数源与竞技场中心取自这里）
//   - enemyPool: 敌人对象池，会按 settings.PoolSize 预热
//   - settings: 波次配置
//
// 返回：
//   - *WaveSystem: 波次调度系统实例
//   - error: 敌人类型配置无效或预热失败
func NewWaveSystem(ctx *enemy.Context, enemyPool *pool.EnemyPool, settings config.WaveSettings) (*WaveSystem, error) {
	enemyTypes, err := config.ParseEnemyTypeList(settings.EnemyTypes)
	if err != nil {
		return nil, fmt.Errorf("wave system: %w", err)
	}
	if err := enemyPool.Initialize(enemyTypes, settings.PoolSize); err != nil {
		return nil, fmt.Errorf("wave system: %w", err)
	}

	s := &WaveSystem{
		entityManager: ctx.EntityManager,
		dispatcher:    ctx.Dispatcher,
		ctx:           ctx,
		pool:          enemyPool,
		settings:      settings,
		enemyTypes:    enemyTypes,
		activeSet:     make(map[ecs.EntityID]struct{}),
	}

	s.timerEntityID = s.entityManager.CreateEntity()
	s.entityManager.AddComponent(s.timerEntityID, &components.WaveTimerComponent{})

	s.dispatcher.SubscribeFunc(event.EnemyDied, func(e event.Event) {
		if data, ok := e.Data.(event.EntityData); ok {
			s.OnEnemyDestroyed(data.Entity)
		}
	})
	s.dispatcher.SubscribeFunc(event.EnemyReadyForPool, func(e event.Event) {
		if data, ok := e.Data.(event.EntityData); ok {
			s.OnEnemyReadyForPool(data.Entity)
		}
	})

	return s, nil
}

// Start 开始第一波（只在尚未开始时生效）
func (s *WaveSystem) Start() {
	timer := s.timer()
	if timer == nil || timer.Phase != components.WavePhaseIdle {
		return
	}
	timer.CurrentWave = 1
	s.beginWave(timer)
}

// Update 推进波次调度
func (s *WaveSystem) Update(deltaTime float64) {
	timer := s.timer()
	if timer == nil || timer.Phase == components.WavePhaseIdle || timer.IsPaused {
		return
	}

	switch timer.Phase {
	case components.WavePhaseSpawning:
		batch := s.settings.BatchSize
		if remaining := timer.WaveTarget - timer.SpawnedThisWave; remaining < batch {
			batch = remaining
		}
		for i := 0; i < batch; i++ {
			s.spawnEnemy(timer)
		}
		if timer.SpawnedThisWave >= timer.WaveTarget {
			timer.Phase = components.WavePhaseAwaitingClear
		}

	case components.WavePhaseAwaitingClear:
		if len(s.active) > 0 {
			return
		}
		log.Printf("[WaveSystem] 第 %d 波清场，%.1f 秒后开始下一波", timer.CurrentWave, s.settings.TimeBetweenWaves)
		s.dispatcher.Dispatch(event.Event{
			Type: event.WaveCleared,
			Data: event.WaveData{Wave: timer.CurrentWave, Enemies: timer.WaveTarget},
		})
		timer.Phase = components.WavePhaseIntermission
		timer.WaitingForNextWave = true
		timer.IntermissionElapsed = 0

	case components.WavePhaseIntermission:
		timer.IntermissionElapsed += deltaTime
		if timer.IntermissionElapsed >= s.settings.TimeBetweenWaves {
			timer.CurrentWave++
			s.beginWave(timer)
		}
	}
}

// beginWave 进入当前波次的生成阶段
func (s *WaveSystem) beginWave(timer *components.WaveTimerComponent) {
	timer.Phase = components.WavePhaseSpawning
	timer.WaitingForNextWave = false
	timer.IntermissionElapsed = 0
	timer.WaveTarget = s.settings.EnemiesForWave(timer.CurrentWave)
	timer.SpawnedThisWave = 0

	log.Printf("[WaveSystem] 第 %d 波开始，敌人数量: %d", timer.CurrentWave, timer.WaveTarget)
	s.dispatcher.Dispatch(event.Event{
		Type: event.WaveStarted,
		Data: event.WaveData{Wave: timer.CurrentWave, Enemies: timer.WaveTarget},
	})
}

// spawnEnemy 从对象池取出一个随机类型的敌人，放到竞技场边缘
// 取出失败只记录日志，仍计入本波生成数
func (s *WaveSystem) spawnEnemy(timer *components.WaveTimerComponent) {
	timer.SpawnedThisWave++

	enemyType := s.enemyTypes[s.ctx.Rand.Intn(len(s.enemyTypes))]
	id, err := s.pool.Get(enemyType)
	if err != nil {
		log.Printf("[WaveSystem] 生成 %s 失败: %v", enemyType, err)
		return
	}
	agent, ok := enemy.AgentOf(s.entityManager, id)
	if !ok {
		log.Printf("[WaveSystem] 实体 %d 没有 AI 代理，放回对象池", id)
		s.pool.Return(id)
		return
	}

	agent.Initialize(s.spawnPosition())
	s.active = append(s.active, id)
	s.activeSet[id] = struct{}{}
	timer.TotalSpawned++
}

// spawnPosition 竞技场边缘的随机点
func (s *WaveSystem) spawnPosition() utils.Vec2 {
	rng := s.ctx.Rand
	angle := rng.Float64() * 360
	radius := s.settings.ArenaRadius
	if j := s.settings.SpawnJitter; j > 0 {
		radius += (rng.Float64()*2 - 1) * j
	}
	return s.ctx.ArenaCenter.Add(utils.FromAngle(angle).Scale(radius))
}

// ============================================================================
// 控制命令
// ============================================================================

// ToggleWaves 暂停/恢复波次调度，返回切换后是否暂停
// 暂停时不生成敌人、波间倒计时停止，场上敌人照常行动
func (s *WaveSystem) ToggleWaves() bool {
	timer := s.timer()
	if timer == nil {
		return false
	}
	timer.IsPaused = !timer.IsPaused
	log.Printf("[WaveSystem] 波次调度 paused=%v", timer.IsPaused)
	return timer.IsPaused
}

// SpawnNextWave 立即开始下一波
// 清除等待与暂停标记；当前波未生成完的部分不再生成，场上敌人保留
func (s *WaveSystem) SpawnNextWave() {
	timer := s.timer()
	if timer == nil {
		return
	}
	timer.IsPaused = false
	timer.CurrentWave++
	s.beginWave(timer)
}

// DestroyCurrentWave 对每个场上敌人造成等于其当前生命值的伤害，返回受影响的敌人数
func (s *WaveSystem) DestroyCurrentWave() int {
	// 伤害会同步触发 EnemyDied 并修改 active，先复制
	targets := append([]ecs.EntityID(nil), s.active...)
	destroyed := 0
	for _, id := range targets {
		current := s.ctx.Health.Current(id)
		if current <= 0 {
			continue
		}
		if s.ctx.Health.ApplyDamage(id, current) {
			destroyed++
		}
	}
	log.Printf("[WaveSystem] 清除当前波: %d 个敌人", destroyed)
	return destroyed
}

// OnEnemyDestroyed 敌人死亡：从场上列表移除，未跟踪的实体忽略
func (s *WaveSystem) OnEnemyDestroyed(id ecs.EntityID) {
	if _, ok := s.activeSet[id]; !ok {
		return
	}
	delete(s.activeSet, id)
	for i, activeID := range s.active {
		if activeID == id {
			s.active = append(s.active[:i], s.active[i+1:]...)
			break
		}
	}
	if timer := s.timer(); timer != nil {
		timer.TotalKilled++
	}
}

// OnEnemyReadyForPool 死亡延迟结束：归还对象池
func (s *WaveSystem) OnEnemyReadyForPool(id ecs.EntityID) {
	s.OnEnemyDestroyed(id)
	s.pool.Return(id)
}

// ============================================================================
// 查询
// ============================================================================

// ActiveEnemies 场上敌人（按生成顺序）
func (s *WaveSystem) ActiveEnemies() []ecs.EntityID {
	return append([]ecs.EntityID(nil), s.active...)
}

// ActiveCount 场上敌人数量
func (s *WaveSystem) ActiveCount() int {
	return len(s.active)
}

// CurrentWave 当前波次，未开始时为 0
func (s *WaveSystem) CurrentWave() int {
	if timer := s.timer(); timer != nil {
		return timer.CurrentWave
	}
	return 0
}

// Stats 返回调度状态快照
func (s *WaveSystem) Stats() WaveStats {
	timer := s.timer()
	if timer == nil {
		return WaveStats{}
	}
	stats := WaveStats{
		Wave:            timer.CurrentWave,
		Phase:           timer.Phase,
		ActiveEnemies:   len(s.active),
		WaveTarget:      timer.WaveTarget,
		SpawnedThisWave: timer.SpawnedThisWave,
		TotalSpawned:    timer.TotalSpawned,
		TotalKilled:     timer.TotalKilled,
		Paused:          timer.IsPaused,
		Waiting:         timer.WaitingForNextWave,
	}
	if timer.Phase == components.WavePhaseIntermission {
		stats.IntermissionLeft = math.Max(0, s.settings.TimeBetweenWaves-timer.IntermissionElapsed)
	}
	return stats
}

func (s *WaveSystem) timer() *components.WaveTimerComponent {
	timer, ok := ecs.GetComponent[*components.WaveTimerComponent](s.entityManager, s.timerEntityID)
	if !ok {
		return nil
	}
	return timer
}
