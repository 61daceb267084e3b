// Package render 负责把竞技场实体绘制到 ebiten 屏幕
//
// 独立成子包，模拟核心（pkg/arena、pkg/systems）因此不依赖 ebiten，
// 无界面工具可以在没有图形环境的机器上编译运行。
package render

import (
	"image/color"
	"math"

	"github.com/decker502/wavearena/pkg/components"
	"github.com/decker502/wavearena/pkg/ecs"
	"github.com/decker502/wavearena/pkg/systems/health"
	"github.com/decker502/wavearena/pkg/types"
	"github.com/decker502/wavearena/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	arenaEdgeColor = color.RGBA{R: 90, G: 100, B: 120, A: 255}
	playerColor    = color.RGBA{R: 80, G: 160, B: 255, A: 255}
	bulletColor    = color.RGBA{R: 255, G: 240, B: 160, A: 255}
	pickupColor    = color.RGBA{R: 240, G: 200, B: 40, A: 255}
	deadColor      = color.RGBA{R: 90, G: 90, B: 90, A: 200}
	healthColor    = color.RGBA{G: 220, A: 255}
	navTargetColor = color.RGBA{R: 120, G: 255, B: 120, A: 90}
)

// EnemyColor 按敌人类型取颜色
func EnemyColor(t types.EnemyType) color.RGBA {
	switch t {
	case types.EnemyFast:
		return color.RGBA{R: 255, G: 170, B: 40, A: 255}
	case types.EnemyHeavy:
		return color.RGBA{R: 200, G: 40, B: 60, A: 255}
	default:
		return color.RGBA{R: 220, G: 90, B: 90, A: 255}
	}
}

// ============================================================================
// 视图
// ============================================================================

// View 俯视视图参数
// 世界 Y 轴向上，屏幕 Y 轴向下，Center 对准屏幕中心
type View struct {
	Center        utils.Vec2
	PixelsPerUnit float64
	Width         float64
	Height        float64
}

// WorldToScreen 世界坐标转屏幕坐标
func (v View) WorldToScreen(p utils.Vec2) utils.Vec2 {
	return utils.V(
		v.Width/2+(p.X-v.Center.X)*v.PixelsPerUnit,
		v.Height/2-(p.Y-v.Center.Y)*v.PixelsPerUnit,
	)
}

// ScreenToWorld WorldToScreen 的逆变换
func (v View) ScreenToWorld(p utils.Vec2) utils.Vec2 {
	return utils.V(
		v.Center.X+(p.X-v.Width/2)/v.PixelsPerUnit,
		v.Center.Y-(p.Y-v.Height/2)/v.PixelsPerUnit,
	)
}

// ============================================================================
// 绘制数据
// ============================================================================

// enemySprite 单个敌人的屏幕绘制数据
type enemySprite struct {
	Pos         utils.Vec2
	Radius      float64
	Color       color.RGBA
	HealthRatio float64 // <1 时绘制血条
	ShowHealth  bool
	NavTarget   utils.Vec2
	ShowNav     bool
}

// playerSprite 玩家的屏幕绘制数据
type playerSprite struct {
	Pos    utils.Vec2
	Radius float64
	AimEnd utils.Vec2
}

// RenderSystem 绘制竞技场中的实体
//
// 职责：
//   - 竞技场边界
//   - 掉落物、敌人（含血条与导航目标线）、子弹、玩家（含瞄准线）
//
// 不包括 HUD 与按钮，它们由场景绘制。
type RenderSystem struct {
	entityManager *ecs.EntityManager
	arenaRadius   float64
}

// NewRenderSystem 创建渲染系统
func NewRenderSystem(em *ecs.EntityManager, arenaRadius float64) *RenderSystem {
	return &RenderSystem{
		entityManager: em,
		arenaRadius:   arenaRadius,
	}
}

// Draw 按 掉落物 → 敌人 → 子弹 → 玩家 的顺序绘制
func (s *RenderSystem) Draw(screen *ebiten.Image, view View, showNav bool) {
	origin := view.WorldToScreen(utils.Vec2{})
	vector.StrokeCircle(screen, float32(origin.X), float32(origin.Y),
		float32(s.arenaRadius*view.PixelsPerUnit), 2, arenaEdgeColor, true)

	for _, p := range s.pickupPositions(view) {
		vector.DrawFilledRect(screen, float32(p.X)-4, float32(p.Y)-4, 8, 8, pickupColor, false)
	}

	for _, e := range s.enemySprites(view, showNav) {
		x, y, r := float32(e.Pos.X), float32(e.Pos.Y), float32(e.Radius)
		vector.DrawFilledCircle(screen, x, y, r, e.Color, true)
		if e.ShowHealth {
			w := r * 2
			vector.DrawFilledRect(screen, x-w/2, y-r-5, w, 2, deadColor, false)
			vector.DrawFilledRect(screen, x-w/2, y-r-5, w*float32(e.HealthRatio), 2, healthColor, false)
		}
		if e.ShowNav {
			vector.StrokeLine(screen, x, y, float32(e.NavTarget.X), float32(e.NavTarget.Y), 1, navTargetColor, true)
		}
	}

	for _, p := range s.bulletPositions(view) {
		vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), 2, bulletColor, true)
	}

	for _, p := range s.playerSprites(view) {
		vector.DrawFilledCircle(screen, float32(p.Pos.X), float32(p.Pos.Y), float32(p.Radius), playerColor, true)
		vector.StrokeLine(screen, float32(p.Pos.X), float32(p.Pos.Y), float32(p.AimEnd.X), float32(p.AimEnd.Y), 2, playerColor, true)
	}
}

// enemySprites 收集在场敌人的绘制数据，池中闲置的敌人不绘制
func (s *RenderSystem) enemySprites(view View, showNav bool) []enemySprite {
	em := s.entityManager
	ids := ecs.GetEntitiesWith3[*components.EnemyComponent, *components.PositionComponent, *components.ScaleComponent](em)
	sprites := make([]enemySprite, 0, len(ids))
	for _, id := range ids {
		enemy, _ := ecs.GetComponent[*components.EnemyComponent](em, id)
		if !enemy.Active {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		scale, _ := ecs.GetComponent[*components.ScaleComponent](em, id)

		radius := 0.0
		if collision, ok := ecs.GetComponent[*components.CollisionComponent](em, id); ok {
			radius = collision.Radius * scale.Current
		}

		sprite := enemySprite{
			Pos:    view.WorldToScreen(pos.Pos),
			Radius: math.Max(1, radius*view.PixelsPerUnit),
			Color:  EnemyColor(enemy.Type),
		}
		alive := !enemy.Dead
		if !alive {
			sprite.Color = deadColor
		}

		if hp, ok := ecs.GetComponent[*components.HealthComponent](em, id); ok && alive {
			sprite.HealthRatio = health.Percentage(hp)
			sprite.ShowHealth = sprite.HealthRatio < 1
		}
		if nav, ok := ecs.GetComponent[*components.NavAgentComponent](em, id); ok && showNav && alive && nav.HasPath {
			sprite.NavTarget = view.WorldToScreen(nav.Destination)
			sprite.ShowNav = true
		}
		sprites = append(sprites, sprite)
	}
	return sprites
}

// playerSprites 收集玩家的绘制数据，瞄准线长度为半径的 2.5 倍
func (s *RenderSystem) playerSprites(view View) []playerSprite {
	em := s.entityManager
	ids := ecs.GetEntitiesWith2[*components.PlayerComponent, *components.PositionComponent](em)
	sprites := make([]playerSprite, 0, len(ids))
	for _, id := range ids {
		player, _ := ecs.GetComponent[*components.PlayerComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)

		radius := 0.5
		if collision, ok := ecs.GetComponent[*components.CollisionComponent](em, id); ok {
			radius = collision.Radius
		}
		aimEnd := pos.Pos.Add(player.Aim.Scale(radius * 2.5))
		sprites = append(sprites, playerSprite{
			Pos:    view.WorldToScreen(pos.Pos),
			Radius: radius * view.PixelsPerUnit,
			AimEnd: view.WorldToScreen(aimEnd),
		})
	}
	return sprites
}

func (s *RenderSystem) bulletPositions(view View) []utils.Vec2 {
	return s.screenPositions(view, ecs.GetEntitiesWith2[*components.BulletComponent, *components.PositionComponent](s.entityManager))
}

func (s *RenderSystem) pickupPositions(view View) []utils.Vec2 {
	return s.screenPositions(view, ecs.GetEntitiesWith2[*components.PickupComponent, *components.PositionComponent](s.entityManager))
}

func (s *RenderSystem) screenPositions(view View, ids []ecs.EntityID) []utils.Vec2 {
	points := make([]utils.Vec2, 0, len(ids))
	for _, id := range ids {
		if s.entityManager.IsMarkedForDestroy(id) {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		points = append(points, view.WorldToScreen(pos.Pos))
	}
	return points
}
