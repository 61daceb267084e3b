package scenes

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/decker502/wavearena/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	backgroundColor = color.RGBA{R: 24, G: 26, B: 32, A: 255}
	reloadBackColor = color.RGBA{R: 90, G: 90, B: 90, A: 200}
	reloadColor     = color.RGBA{R: 255, G: 240, B: 160, A: 255}
)

// Draw 绘制竞技场与 HUD
func (s *ArenaScene) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	settings := s.gameSettings()

	s.renderSystem.Draw(screen, s.view(), settings.ShowNavTargets)

	x, y := ebiten.CursorPosition()
	s.drawButtons(screen, utils.V(float64(x), float64(y)))
	s.drawHUD(screen)
	if settings.ShowDebugOverlay {
		s.drawDebugOverlay(screen)
	}
}

// drawHUD 左上角状态与底部操作提示
func (s *ArenaScene) drawHUD(screen *ebiten.Image) {
	for i, line := range s.hudLines() {
		s.drawText(screen, line, 16, 16+float64(i)*18)
	}

	// 换弹进度条
	if s.reloading {
		vector.DrawFilledRect(screen, 16, 110, 150, 6, reloadBackColor, false)
		vector.DrawFilledRect(screen, 16, 110, float32(150*s.reloadProgress), 6, reloadColor, false)
	}

	// 提示消息在最后半秒淡出
	for i, m := range s.messages {
		alpha := utils.EaseOutQuad(utils.Clamp01(m.ttl / 0.5))
		s.drawTextAlpha(screen, m.text, ScreenWidth/2-100, 60+float64(i)*18, alpha)
	}

	s.drawText(screen, "WASD move  Mouse aim/fire  Space dash  R reload  Q weapon  F camera  Tab debug  N nav  F5 restart",
		16, ScreenHeight-24)
}

// hudLines 左上角状态文字
func (s *ArenaScene) hudLines() []string {
	stats := s.world.WaveStats()
	name, magazine, reserve, reloading := s.world.WeaponStatus()

	waveLine := fmt.Sprintf("Wave %d  %s  Enemies %d", stats.Wave, stats.Phase, stats.ActiveEnemies)
	switch {
	case stats.Paused:
		waveLine += "  [PAUSED]"
	case stats.Waiting:
		waveLine += fmt.Sprintf("  next in %.1fs", stats.IntermissionLeft)
	}

	weaponLine := fmt.Sprintf("%s  %d / %d", name, magazine, reserve)
	if reloading {
		weaponLine += "  reloading"
	}

	cameraLine := "Camera: free"
	if cam := s.world.Camera(); cam != nil {
		cameraLine = "Camera: " + cam.Mode.String()
	}

	return []string{
		waveLine,
		fmt.Sprintf("Kills %d  Spawned %d  Killed %d", s.world.Kills(), stats.TotalSpawned, stats.TotalKilled),
		weaponLine,
		cameraLine,
	}
}

// drawDebugOverlay 右下角调试信息：FPS、对象池、各状态数量
func (s *ArenaScene) drawDebugOverlay(screen *ebiten.Image) {
	counts := s.world.StateCounts()
	states := make([]string, 0, len(counts))
	for name := range counts {
		states = append(states, name)
	}
	sort.Strings(states)

	var b strings.Builder
	fmt.Fprintf(&b, "FPS %.0f  TPS %.0f\n", ebiten.ActualFPS(), ebiten.ActualTPS())
	fmt.Fprintf(&b, "Pool %d  Time %.1fs\n", s.world.PoolSize(), s.world.Elapsed())
	for _, name := range states {
		fmt.Fprintf(&b, "%s: %d\n", name, counts[name])
	}
	ebitenutil.DebugPrintAt(screen, b.String(), ScreenWidth-180, ScreenHeight-140)
}

func (s *ArenaScene) drawText(screen *ebiten.Image, str string, x, y float64) {
	s.drawTextAlpha(screen, str, x, y, 1)
}

func (s *ArenaScene) drawTextAlpha(screen *ebiten.Image, str string, x, y, alpha float64) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleAlpha(float32(alpha))
	text.Draw(screen, str, s.hudFace, op)
}
