// Package event 提供系统之间的同步事件分发
//
// 系统之间不直接持有引用，而是通过 Dispatcher 发布与订阅事件：
// 例如生命值归零时 HealthDepleted 由伤害来源发布，敌人 AI 系统订阅后切换到死亡状态。
package event

// EventType 事件类型
type EventType string

// Event 事件，Data 为具体事件的负载结构体（见 types.go）
type Event struct {
	Type EventType
	Data interface{}
}

// Listener 事件订阅者
type Listener interface {
	OnEvent(event Event)
}

// ListenerFunc 函数适配器，允许普通函数作为订阅者
type ListenerFunc func(event Event)

// OnEvent 实现 Listener 接口
func (f ListenerFunc) OnEvent(event Event) {
	f(event)
}

// Dispatcher 事件分发器
//
// Dispatch 在调用方的 goroutine 中同步执行所有订阅者，按订阅顺序调用。
// 不是并发安全的：模拟只在单个更新循环中运行。
type Dispatcher struct {
	listeners map[EventType][]Listener
}

// NewDispatcher 创建新的事件分发器
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		listeners: make(map[EventType][]Listener),
	}
}

// Subscribe 订阅事件
func (d *Dispatcher) Subscribe(eventType EventType, listener Listener) {
	d.listeners[eventType] = append(d.listeners[eventType], listener)
}

// SubscribeFunc 以函数形式订阅事件，返回的 Listener 可用于取消订阅
func (d *Dispatcher) SubscribeFunc(eventType EventType, fn func(Event)) Listener {
	l := &funcListener{fn: fn}
	d.Subscribe(eventType, l)
	return l
}

// Unsubscribe 取消订阅（按引用比较）
func (d *Dispatcher) Unsubscribe(eventType EventType, listener Listener) {
	listeners, exists := d.listeners[eventType]
	if !exists {
		return
	}
	for i, l := range listeners {
		if l == listener {
			updated := make([]Listener, 0, len(listeners)-1)
			updated = append(updated, listeners[:i]...)
			updated = append(updated, listeners[i+1:]...)
			d.listeners[eventType] = updated
			return
		}
	}
}

// Dispatch 向所有订阅者发送事件
//
// 遍历的是分发开始时的订阅者快照，回调中新增或取消订阅只影响后续事件。
func (d *Dispatcher) Dispatch(event Event) {
	listeners := d.listeners[event.Type]
	for _, listener := range listeners {
		listener.OnEvent(event)
	}
}

// ListenerCount 返回指定事件类型的订阅者数量
func (d *Dispatcher) ListenerCount(eventType EventType) int {
	return len(d.listeners[eventType])
}

// funcListener 指针包装，使函数订阅者可比较
type funcListener struct {
	fn func(Event)
}

func (l *funcListener) OnEvent(event Event) {
	l.fn(event)
}
