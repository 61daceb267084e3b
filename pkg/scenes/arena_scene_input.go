package scenes

import (
	"log"

	"github.com/decker502/wavearena/pkg/systems/render"
	"github.com/decker502/wavearena/pkg/utils"
)

// ==================================================
// input.Hooks 实现
// ==================================================

// Restart 通过场景管理器重开一局，返回 true 表示场景已被替换
func (s *ArenaScene) Restart() bool {
	if s.sceneManager == nil {
		return false
	}
	if err := s.sceneManager.Reload(); err != nil {
		log.Printf("[ArenaScene] 重开失败: %v", err)
		return false
	}
	return true
}

// ToggleDebugOverlay 切换调试信息显示
func (s *ArenaScene) ToggleDebugOverlay() {
	if s.settings != nil {
		s.settings.ToggleDebugOverlay()
	}
}

// ToggleNavTargets 切换敌人导航目标线
func (s *ArenaScene) ToggleNavTargets() {
	if s.settings != nil {
		s.settings.ToggleNavTargets()
	}
}

// ShowMessage 显示一条 HUD 提示
func (s *ArenaScene) ShowMessage(msg string) {
	s.pushMessage(msg)
}

// ButtonAt 返回光标下波次按钮的动作
func (s *ArenaScene) ButtonAt(cursor utils.Vec2) (func(), bool) {
	if b, ok := s.buttonAt(cursor); ok {
		return b.action, true
	}
	return nil, false
}

// ScreenToWorld 屏幕坐标转世界坐标
func (s *ArenaScene) ScreenToWorld(p utils.Vec2) utils.Vec2 {
	return s.view().ScreenToWorld(p)
}

// MouseSensitivity 第一人称鼠标灵敏度
func (s *ArenaScene) MouseSensitivity() float64 {
	return s.gameSettings().MouseSensitivity
}

// view 当前视图：中心对准镜头位置
func (s *ArenaScene) view() render.View {
	v := render.View{
		PixelsPerUnit: pixelsPerUnit,
		Width:         ScreenWidth,
		Height:        ScreenHeight,
	}
	if cam := s.world.Camera(); cam != nil {
		v.Center = cam.Position
	}
	return v
}
