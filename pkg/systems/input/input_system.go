// Package input 读取 ebiten 键鼠状态并翻译为竞技场命令
package input

import (
	"log"

	"github.com/decker502/wavearena/pkg/components"
	"github.com/decker502/wavearena/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// mouseLookScale 第一人称下每像素鼠标位移对应的转向角（度）
const mouseLookScale = 0.25

// State 一帧的输入快照
// 由 Poll 从 ebiten 读取，Apply 翻译为命令
type State struct {
	Move       utils.Vec2 // WASD
	CameraMove utils.Vec2 // 方向键
	Boost      bool       // Shift

	Cursor  utils.Vec2 // 鼠标屏幕坐标
	MouseDX float64    // 本帧鼠标水平位移
	Click   bool       // 左键按下沿
	Fire    bool       // 左键按住

	Dash         bool
	Reload       bool
	CycleWeapon  bool
	ToggleCamera bool
	ToggleWaves  bool
	SpawnNext    bool
	DestroyWave  bool
	ToggleDebug  bool
	ToggleNav    bool
	Restart      bool
}

// Commands 模拟核心提供的命令（由 arena.World 实现）
type Commands interface {
	ToggleWaves() bool
	SpawnNextWave()
	DestroyCurrentWave() int

	MovePlayer(input utils.Vec2)
	Dash() bool
	Aim(dir utils.Vec2)
	AimAt(target utils.Vec2)
	AimDirection() utils.Vec2

	Fire() int
	Reload()
	SwitchWeapon(name string) error
	WeaponNames() []string
	WeaponStatus() (name string, magazine, reserve int, reloading bool)

	Camera() *components.CameraComponent
	ToggleCamera() components.CameraMode
	MoveCamera(input utils.Vec2, boost bool)
}

// Hooks 由场景提供的界面级操作
type Hooks interface {
	// Restart 重开一局，返回 true 表示场景已被替换
	Restart() bool
	ToggleDebugOverlay()
	ToggleNavTargets()
	ShowMessage(msg string)
	// ButtonAt 返回光标下按钮的动作
	ButtonAt(cursor utils.Vec2) (func(), bool)
	ScreenToWorld(p utils.Vec2) utils.Vec2
	MouseSensitivity() float64
}

// InputSystem 处理竞技场的键鼠输入
//
// 按键：
//   - WASD 移动，方向键移动自由镜头，Shift 加速
//   - 鼠标瞄准，左键开火或点击按钮
//   - Space 冲刺，R 换弹，Q 切换武器，F 切换镜头
//   - 1/2/3 波次控制，Tab 调试信息，N 导航目标线，F5 重开
type InputSystem struct {
	commands Commands
	hooks    Hooks

	lastCursorX int
	cursorSeen  bool
	weaponIndex int
}

// NewInputSystem 创建输入系统
func NewInputSystem(commands Commands, hooks Hooks) *InputSystem {
	return &InputSystem{
		commands: commands,
		hooks:    hooks,
	}
}

// Update 读取本帧输入并执行
// 返回 true 表示场景已被替换，调用方本帧不应继续更新
func (s *InputSystem) Update() bool {
	return s.Apply(s.Poll())
}

// Poll 读取本帧键鼠状态
func (s *InputSystem) Poll() State {
	var in State

	axis := func(neg, pos ebiten.Key) float64 {
		v := 0.0
		if ebiten.IsKeyPressed(neg) {
			v--
		}
		if ebiten.IsKeyPressed(pos) {
			v++
		}
		return v
	}
	in.Move = utils.V(axis(ebiten.KeyA, ebiten.KeyD), axis(ebiten.KeyS, ebiten.KeyW))
	in.CameraMove = utils.V(axis(ebiten.KeyArrowLeft, ebiten.KeyArrowRight), axis(ebiten.KeyArrowDown, ebiten.KeyArrowUp))
	in.Boost = ebiten.IsKeyPressed(ebiten.KeyShift)

	x, y := ebiten.CursorPosition()
	in.Cursor = utils.V(float64(x), float64(y))
	in.MouseDX = s.cursorDelta(x)
	in.Click = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	in.Fire = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)

	in.Dash = inpututil.IsKeyJustPressed(ebiten.KeySpace)
	in.Reload = inpututil.IsKeyJustPressed(ebiten.KeyR)
	in.CycleWeapon = inpututil.IsKeyJustPressed(ebiten.KeyQ)
	in.ToggleCamera = inpututil.IsKeyJustPressed(ebiten.KeyF)
	in.ToggleWaves = inpututil.IsKeyJustPressed(ebiten.Key1)
	in.SpawnNext = inpututil.IsKeyJustPressed(ebiten.Key2)
	in.DestroyWave = inpututil.IsKeyJustPressed(ebiten.Key3)
	in.ToggleDebug = inpututil.IsKeyJustPressed(ebiten.KeyTab)
	in.ToggleNav = inpututil.IsKeyJustPressed(ebiten.KeyN)
	in.Restart = inpututil.IsKeyJustPressed(ebiten.KeyF5)
	return in
}

// cursorDelta 光标水平位移；第一帧没有上一帧位置，返回 0
func (s *InputSystem) cursorDelta(x int) float64 {
	if !s.cursorSeen {
		s.cursorSeen = true
		s.lastCursorX = x
		return 0
	}
	dx := float64(x - s.lastCursorX)
	s.lastCursorX = x
	return dx
}

// Apply 将输入翻译为命令
// 返回 true 表示场景已被替换
func (s *InputSystem) Apply(in State) bool {
	if in.Restart && s.hooks.Restart() {
		return true
	}

	// 波次控制：键盘或点击按钮
	clickedButton := false
	if in.Click {
		if action, ok := s.hooks.ButtonAt(in.Cursor); ok {
			action()
			clickedButton = true
		}
	}
	if in.ToggleWaves {
		s.commands.ToggleWaves()
	}
	if in.SpawnNext {
		s.commands.SpawnNextWave()
	}
	if in.DestroyWave {
		s.commands.DestroyCurrentWave()
	}

	if in.ToggleDebug {
		s.hooks.ToggleDebugOverlay()
	}
	if in.ToggleNav {
		s.hooks.ToggleNavTargets()
	}
	if in.ToggleCamera {
		mode := s.commands.ToggleCamera()
		s.hooks.ShowMessage("Camera: " + mode.String())
	}

	s.commands.MovePlayer(in.Move)
	s.commands.MoveCamera(in.CameraMove, in.Boost)
	s.applyAim(in)

	if in.Dash {
		s.commands.Dash()
	}
	if in.Reload {
		s.commands.Reload()
	}
	if in.CycleWeapon {
		s.cycleWeapon()
	}
	if in.Fire && !clickedButton {
		if _, over := s.hooks.ButtonAt(in.Cursor); !over {
			s.commands.Fire()
		}
	}
	return false
}

// applyAim 自由镜头瞄准鼠标位置，第一人称用鼠标水平位移转向
func (s *InputSystem) applyAim(in State) {
	cam := s.commands.Camera()
	if cam != nil && cam.Mode == components.CameraFirstPerson {
		if in.MouseDX != 0 {
			sensitivity := s.hooks.MouseSensitivity()
			s.commands.Aim(s.commands.AimDirection().Rotate(-in.MouseDX * sensitivity * mouseLookScale))
		}
		return
	}
	s.commands.AimAt(s.hooks.ScreenToWorld(in.Cursor))
}

// cycleWeapon 切换到武器表中的下一把武器
func (s *InputSystem) cycleWeapon() {
	names := s.commands.WeaponNames()
	if len(names) < 2 {
		return
	}
	current, _, _, _ := s.commands.WeaponStatus()
	for i, name := range names {
		if name == current {
			s.weaponIndex = i
			break
		}
	}
	s.weaponIndex = (s.weaponIndex + 1) % len(names)
	if err := s.commands.SwitchWeapon(names[s.weaponIndex]); err != nil {
		log.Printf("[InputSystem] 切换武器失败: %v", err)
		return
	}
	s.hooks.ShowMessage("Weapon: " + names[s.weaponIndex])
}
