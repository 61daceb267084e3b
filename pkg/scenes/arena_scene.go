package scenes

import (
	"fmt"
	"log"

	"github.com/decker502/wavearena/pkg/arena"
	"github.com/decker502/wavearena/pkg/components"
	"github.com/decker502/wavearena/pkg/event"
	"github.com/decker502/wavearena/pkg/game"
	"github.com/decker502/wavearena/pkg/systems/input"
	"github.com/decker502/wavearena/pkg/systems/render"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

const (
	// ScreenWidth 逻辑屏幕宽度
	ScreenWidth = 960
	// ScreenHeight 逻辑屏幕高度
	ScreenHeight = 720

	// pixelsPerUnit 世界单位到像素的缩放
	pixelsPerUnit = 7.0

	// messageDuration HUD 提示的显示时长（秒）
	messageDuration = 2.0
)

// hudMessage 短暂显示的 HUD 提示
type hudMessage struct {
	text string
	ttl  float64
}

// ArenaScene 竞技场场景
//
// 职责：
//   - 组装 InputSystem 与 RenderSystem，每帧驱动它们与 World
//   - 绘制 HUD、波次按钮与调试信息
//   - 订阅换弹、拾取、波次事件显示 HUD 提示
//   - 退出时记录本局战绩
type ArenaScene struct {
	world        *arena.World
	sceneManager *game.SceneManager
	settings     *game.SettingsManager
	records      *game.RecordsManager

	inputSystem  *input.InputSystem
	renderSystem *render.RenderSystem

	hudFace *text.GoXFace
	buttons []hudButton

	reloading      bool
	reloadProgress float64
	messages       []hudMessage

	runRecorded bool
}

// NewArenaScene 创建竞技场场景并开始第一波
//
// 参数：
//   - opts: 竞技场配置
//   - sceneManager: 场景管理器（用于重开一局，可为 nil）
//   - settings: 玩家设置（可为 nil，使用默认设置）
//   - records: 战绩记录（可为 nil，不记录）
func NewArenaScene(opts arena.Options, sceneManager *game.SceneManager, settings *game.SettingsManager, records *game.RecordsManager) (*ArenaScene, error) {
	world, err := arena.NewWorld(opts)
	if err != nil {
		return nil, fmt.Errorf("create arena world: %w", err)
	}

	s := &ArenaScene{
		world:        world,
		sceneManager: sceneManager,
		settings:     settings,
		records:      records,
		hudFace:      text.NewGoXFace(basicfont.Face7x13),
	}
	s.inputSystem = input.NewInputSystem(world, s)
	s.renderSystem = render.NewRenderSystem(world.EntityManager(), opts.Arena.Waves.ArenaRadius)
	s.buttons = s.newWaveButtons()
	s.subscribe(world.Dispatcher())

	if s.gameSettings().StartFirstPerson && world.Camera().Mode != components.CameraFirstPerson {
		world.ToggleCamera()
	}

	world.Start()
	log.Printf("[ArenaScene] 场景已创建")
	return s, nil
}

// subscribe 订阅 HUD 需要的事件
func (s *ArenaScene) subscribe(d *event.Dispatcher) {
	player := s.world.PlayerID()

	d.SubscribeFunc(event.ReloadStarted, func(e event.Event) {
		if data, ok := e.Data.(event.WeaponData); ok && data.Owner == player {
			s.reloading = true
			s.reloadProgress = 0
		}
	})
	d.SubscribeFunc(event.ReloadProgress, func(e event.Event) {
		if data, ok := e.Data.(event.ReloadProgressData); ok && data.Owner == player {
			s.reloadProgress = data.Progress
		}
	})
	endReload := func(e event.Event) {
		if data, ok := e.Data.(event.WeaponData); ok && data.Owner == player {
			s.reloading = false
		}
	}
	d.SubscribeFunc(event.ReloadCompleted, endReload)
	d.SubscribeFunc(event.ReloadCancelled, endReload)

	d.SubscribeFunc(event.WeaponEmpty, func(e event.Event) {
		s.pushMessage("Out of ammo - press R")
	})
	d.SubscribeFunc(event.PickupCollected, func(e event.Event) {
		if data, ok := e.Data.(event.PickupData); ok {
			s.pushMessage(fmt.Sprintf("+%d %s ammo", data.Amount, data.AmmoType))
		}
	})
	d.SubscribeFunc(event.WaveStarted, func(e event.Event) {
		if data, ok := e.Data.(event.WaveData); ok {
			s.pushMessage(fmt.Sprintf("Wave %d: %d enemies", data.Wave, data.Enemies))
		}
	})
	d.SubscribeFunc(event.WaveCleared, func(e event.Event) {
		if data, ok := e.Data.(event.WaveData); ok {
			s.pushMessage(fmt.Sprintf("Wave %d cleared", data.Wave))
		}
	})
}

// Update 读取输入并推进模拟
func (s *ArenaScene) Update(deltaTime float64) {
	if s.inputSystem.Update() {
		return
	}
	s.world.Update(deltaTime)
	s.updateMessages(deltaTime)
}

// SaveOnExit 记录本局战绩并保存设置（实现 game.Saveable）
// 同一局只记录一次
func (s *ArenaScene) SaveOnExit() bool {
	ok := true
	if s.settings != nil {
		if err := s.settings.Save(); err != nil {
			log.Printf("[ArenaScene] 保存设置失败: %v", err)
			ok = false
		}
	}
	if s.records == nil || s.runRecorded {
		return ok
	}

	result := s.world.RunResult()
	newBest, err := s.records.RecordRun(result)
	if err != nil {
		log.Printf("[ArenaScene] 保存战绩失败: %v", err)
		return false
	}
	s.runRecorded = true
	log.Printf("[ArenaScene] 本局: 第 %d 波, 击杀 %d, 存活 %.0f 秒 (新纪录: %v)",
		result.Wave, result.Kills, result.Seconds, newBest)
	return ok
}

// World 返回模拟核心
func (s *ArenaScene) World() *arena.World {
	return s.world
}

func (s *ArenaScene) gameSettings() *game.GameSettings {
	if s.settings == nil {
		return game.DefaultSettings()
	}
	return s.settings.GetSettings()
}

func (s *ArenaScene) pushMessage(msg string) {
	s.messages = append(s.messages, hudMessage{text: msg, ttl: messageDuration})
	if len(s.messages) > 4 {
		s.messages = s.messages[len(s.messages)-4:]
	}
}

func (s *ArenaScene) updateMessages(dt float64) {
	kept := s.messages[:0]
	for _, m := range s.messages {
		m.ttl -= dt
		if m.ttl > 0 {
			kept = append(kept, m)
		}
	}
	s.messages = kept
}
