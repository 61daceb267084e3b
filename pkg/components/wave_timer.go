package components

// WavePhase 波次调度阶段
type WavePhase int

const (
	// WavePhaseIdle 尚未开始
	WavePhaseIdle WavePhase = iota
	// WavePhaseSpawning 正在分批生成本波敌人
	WavePhaseSpawning
	// WavePhaseAwaitingClear 本波已全部生成，等待场上敌人清空
	WavePhaseAwaitingClear
	// WavePhaseIntermission 波间休息，倒计时结束后开始下一波
	WavePhaseIntermission
)

// String 返回阶段名称
func (p WavePhase) String() string {
	switch p {
	case WavePhaseSpawning:
		return "spawning"
	case WavePhaseAwaitingClear:
		return "awaiting_clear"
	case WavePhaseIntermission:
		return "intermission"
	default:
		return "idle"
	}
}

// WaveTimerComponent 波次计时器组件
// 存储波次调度状态，供 WaveSystem 使用
// 注意：遵循 ECS 原则，组件仅存储数据，不包含方法
type WaveTimerComponent struct {
	// CurrentWave 当前波次（从 1 开始）
	CurrentWave int

	// Phase 当前调度阶段
	Phase WavePhase

	// IsPaused 是否暂停
	// 暂停时不生成敌人、波间倒计时不递减；场上敌人照常行动
	IsPaused bool

	// WaitingForNextWave 是否处于波间等待
	WaitingForNextWave bool

	// IntermissionElapsed 波间已等待时间（秒）
	IntermissionElapsed float64

	// WaveTarget 本波敌人总数
	WaveTarget int

	// SpawnedThisWave 本波已生成数量
	SpawnedThisWave int

	// TotalSpawned 累计生成数量
	TotalSpawned int

	// TotalKilled 累计击杀数量
	TotalKilled int
}
