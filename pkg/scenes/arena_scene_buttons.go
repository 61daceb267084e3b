package scenes

import (
	"image/color"

	"github.com/decker502/wavearena/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// hudButton 屏幕右侧的波次控制按钮
type hudButton struct {
	label      string
	x, y, w, h float64
	action     func()
}

func (b hudButton) contains(p utils.Vec2) bool {
	return p.X >= b.x && p.X < b.x+b.w && p.Y >= b.y && p.Y < b.y+b.h
}

// newWaveButtons 创建三个波次控制按钮：暂停/继续、下一波、消灭本波
func (s *ArenaScene) newWaveButtons() []hudButton {
	const (
		width  = 150
		height = 28
		gap    = 8
	)
	x := float64(ScreenWidth - width - 16)
	y := 16.0
	actions := []struct {
		label  string
		action func()
	}{
		{"[1] Toggle Waves", func() { s.world.ToggleWaves() }},
		{"[2] Next Wave", func() { s.world.SpawnNextWave() }},
		{"[3] Destroy Wave", func() { s.world.DestroyCurrentWave() }},
	}

	buttons := make([]hudButton, 0, len(actions))
	for i, a := range actions {
		buttons = append(buttons, hudButton{
			label:  a.label,
			x:      x,
			y:      y + float64(i)*(height+gap),
			w:      width,
			h:      height,
			action: a.action,
		})
	}
	return buttons
}

func (s *ArenaScene) buttonAt(p utils.Vec2) (hudButton, bool) {
	for _, b := range s.buttons {
		if b.contains(p) {
			return b, true
		}
	}
	return hudButton{}, false
}

func (s *ArenaScene) drawButtons(screen *ebiten.Image, cursor utils.Vec2) {
	for _, b := range s.buttons {
		fill := color.RGBA{R: 50, G: 60, B: 80, A: 220}
		if b.contains(cursor) {
			fill = color.RGBA{R: 80, G: 100, B: 140, A: 230}
		}
		vector.DrawFilledRect(screen, float32(b.x), float32(b.y), float32(b.w), float32(b.h), fill, false)
		vector.StrokeRect(screen, float32(b.x), float32(b.y), float32(b.w), float32(b.h), 1, color.RGBA{R: 160, G: 180, B: 220, A: 255}, false)

		op := &text.DrawOptions{}
		op.GeoM.Translate(b.x+8, b.y+8)
		text.Draw(screen, b.label, s.hudFace, op)
	}
}
