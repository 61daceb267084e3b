// Package fsm 提供泛型有限状态机
//
// 状态机只负责切换与驱动：ChangeState 依次调用旧状态 Exit、替换、新状态 Enter；
// Update 驱动当前状态。计时等数据由状态对象自己持有，并由每帧的 Update 推进。
package fsm

// State 状态接口，T 为状态机所属对象（如敌人代理）
type State[T any] interface {
	// Name 状态名称，用于日志与调试显示
	Name() string
	// Enter 进入状态时调用
	Enter(owner T)
	// Update 每帧调用，dt 为本帧时长（秒）
	Update(owner T, dt float64)
	// Exit 离开状态时调用
	Exit(owner T)
}

// Machine 状态机
type Machine[T any] struct {
	owner   T
	current State[T]
}

// New 创建绑定到 owner 的状态机，初始无状态
func New[T any](owner T) *Machine[T] {
	return &Machine[T]{owner: owner}
}

// ChangeState 切换状态
//
// 旧状态或新状态为 nil 均可：nil 旧状态不调用 Exit，nil 新状态不调用 Enter。
// 切换到与当前相同的状态实例也会完整执行 Exit/Enter。
func (m *Machine[T]) ChangeState(next State[T]) {
	if m.current != nil {
		m.current.Exit(m.owner)
	}
	m.current = next
	if next != nil {
		next.Enter(m.owner)
	}
}

// Update 驱动当前状态
func (m *Machine[T]) Update(dt float64) {
	if m.current != nil {
		m.current.Update(m.owner, dt)
	}
}

// Current 返回当前状态，可能为 nil
func (m *Machine[T]) Current() State[T] {
	return m.current
}

// CurrentName 返回当前状态名，无状态时返回空字符串
func (m *Machine[T]) CurrentName() string {
	if m.current == nil {
		return ""
	}
	return m.current.Name()
}

// Owner 返回状态机所属对象
func (m *Machine[T]) Owner() T {
	return m.owner
}
