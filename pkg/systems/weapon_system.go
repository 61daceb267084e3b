package systems

import (
	"log"
	"math/rand"

	"github.com/decker502/wavearena/pkg/components"
	"github.com/decker502/wavearena/pkg/config"
	"github.com/decker502/wavearena/pkg/ecs"
	"github.com/decker502/wavearena/pkg/entities"
	"github.com/decker502/wavearena/pkg/event"
	"github.com/decker502/wavearena/pkg/types"
	"github.com/decker502/wavearena/pkg/utils"
)

// WeaponSystem 武器射击与换弹
//
// 弹匣状态保存在射击者的 WeaponComponent 上，备弹通过 AmmoSystem 读写。
// 换弹按帧推进：整匣换弹在 ReloadTime 后一次装满，逐发装填每 ShellReloadTime 装入一发。
type WeaponSystem struct {
	entityManager *ecs.EntityManager
	dispatcher    *event.Dispatcher
	ammo          *AmmoSystem
	rng           *rand.Rand
}

// NewWeaponSystem 创建武器系统
func NewWeaponSystem(em *ecs.EntityManager, dispatcher *event.Dispatcher, ammo *AmmoSystem, rng *rand.Rand) *WeaponSystem {
	return &WeaponSystem{
		entityManager: em,
		dispatcher:    dispatcher,
		ammo:          ammo,
		rng:           rng,
	}
}

// Update 推进射击冷却与换弹
func (s *WeaponSystem) Update(deltaTime float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.WeaponComponent](s.entityManager) {
		w, _ := ecs.GetComponent[*components.WeaponComponent](s.entityManager, id)
		if w.FireCooldown > 0 {
			w.FireCooldown -= deltaTime
			if w.FireCooldown < 0 {
				w.FireCooldown = 0
			}
		}
		if !w.IsReloading || w.Config == nil {
			continue
		}

		w.ReloadTimer += deltaTime
		if w.Config.ReloadType == types.ReloadShellByShell {
			s.updateShellReload(id, w)
		} else {
			s.updateMagazineReload(id, w)
		}
	}
}

func (s *WeaponSystem) updateMagazineReload(owner ecs.EntityID, w *components.WeaponComponent) {
	cfg := w.Config
	if w.ReloadTimer < cfg.ReloadTime {
		s.dispatchProgress(owner, w.ReloadTimer/cfg.ReloadTime)
		return
	}

	needed := cfg.MagazineSize - w.Magazine
	available := s.ammo.Get(owner, cfg.AmmoType)
	toLoad := needed
	if available < toLoad {
		toLoad = available
	}
	if toLoad > 0 && s.ammo.Use(owner, cfg.AmmoType, toLoad) {
		w.Magazine += toLoad
		w.IsEmpty = false
	}
	s.finishReload(owner, w)
}

func (s *WeaponSystem) updateShellReload(owner ecs.EntityID, w *components.WeaponComponent) {
	cfg := w.Config
	for w.ReloadTimer >= cfg.ShellReloadTime {
		w.ReloadTimer -= cfg.ShellReloadTime
		if !s.ammo.Use(owner, cfg.AmmoType, 1) {
			s.finishReload(owner, w)
			return
		}
		w.Magazine++
		w.IsEmpty = false

		if w.Magazine >= cfg.MagazineSize || !s.ammo.Has(owner, cfg.AmmoType, 1) {
			s.finishReload(owner, w)
			return
		}
	}
	progress := (float64(w.Magazine) + w.ReloadTimer/cfg.ShellReloadTime) / float64(cfg.MagazineSize)
	s.dispatchProgress(owner, progress)
}

func (s *WeaponSystem) finishReload(owner ecs.EntityID, w *components.WeaponComponent) {
	w.IsReloading = false
	w.ReloadTimer = 0
	s.dispatchProgress(owner, 1)
	s.dispatchWeapon(event.ReloadCompleted, owner, w)
}

// ============================================================================
// 射击
// ============================================================================

// CanFire 是否可以射击：已装备武器、弹匣非空、未在换弹、未标记为空
func (s *WeaponSystem) CanFire(owner ecs.EntityID) bool {
	w := s.weapon(owner)
	return w != nil && w.Config != nil && w.Magazine > 0 && !w.IsReloading && !w.IsEmpty
}

// Fire 沿 direction 发射一颗子弹，返回生成的子弹数
// 无法射击且弹匣为空时发布 WeaponEmpty
func (s *WeaponSystem) Fire(owner ecs.EntityID, direction utils.Vec2) int {
	if !s.CanFire(owner) {
		s.handleEmptyFire(owner)
		return 0
	}
	w := s.weapon(owner)
	if !s.spawnBullet(owner, w.Config, direction) {
		return 0
	}
	s.consumeRound(w)
	return 1
}

// FireMultiple 一次扣动扳机发射 shotCount 颗弹丸，只消耗一发弹药
// 第一颗沿 direction，其余在 ±Spread 度内随机偏转
func (s *WeaponSystem) FireMultiple(owner ecs.EntityID, direction utils.Vec2, shotCount int) int {
	if !s.CanFire(owner) || shotCount <= 0 {
		return 0
	}
	w := s.weapon(owner)
	spread := w.Config.Spread

	spawned := 0
	for i := 0; i < shotCount; i++ {
		dir := direction
		if i > 0 {
			dir = direction.Rotate((s.rng.Float64()*2 - 1) * spread)
		}
		if s.spawnBullet(owner, w.Config, dir) {
			spawned++
		}
	}
	if spawned > 0 {
		s.consumeRound(w)
	}
	return spawned
}

// TryFire 按射速限制射击，多弹丸武器走 FireMultiple
func (s *WeaponSystem) TryFire(owner ecs.EntityID, direction utils.Vec2) int {
	w := s.weapon(owner)
	if w == nil || w.Config == nil || w.FireCooldown > 0 {
		return 0
	}

	var spawned int
	if w.Config.Pellets > 1 && s.CanFire(owner) {
		spawned = s.FireMultiple(owner, direction, w.Config.Pellets)
	} else {
		spawned = s.Fire(owner, direction)
	}
	if spawned > 0 {
		w.FireCooldown = w.Config.FireRate
	}
	return spawned
}

func (s *WeaponSystem) spawnBullet(owner ecs.EntityID, cfg *config.WeaponConfig, direction utils.Vec2) bool {
	var origin utils.Vec2
	if pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, owner); ok {
		origin = pos.Pos
	}
	if _, err := entities.NewBulletEntity(s.entityManager, owner, cfg, origin, direction); err != nil {
		log.Printf("[WeaponSystem] 创建子弹失败: %v", err)
		return false
	}
	return true
}

func (s *WeaponSystem) consumeRound(w *components.WeaponComponent) {
	w.Magazine--
	w.ShotsFired++
	if w.Magazine <= 0 {
		w.Magazine = 0
		w.IsEmpty = true
	}
}

func (s *WeaponSystem) handleEmptyFire(owner ecs.EntityID) {
	w := s.weapon(owner)
	if w == nil || w.Config == nil || w.Magazine > 0 {
		return
	}
	s.dispatchWeapon(event.WeaponEmpty, owner, w)
}

// ============================================================================
// 换弹
// ============================================================================

// CanReload 是否可以换弹
// 条件：未在换弹、有备弹、弹匣未满，且允许未打空换弹或弹匣已空
func (s *WeaponSystem) CanReload(owner ecs.EntityID) bool {
	w := s.weapon(owner)
	if w == nil || w.Config == nil || w.IsReloading {
		return false
	}
	if !s.ammo.Has(owner, w.Config.AmmoType, 1) {
		return false
	}
	if !w.Config.CanReloadPartially && w.Magazine > 0 {
		return false
	}
	return w.Magazine < w.Config.MagazineSize
}

// StartReload 开始换弹，返回是否成功开始
func (s *WeaponSystem) StartReload(owner ecs.EntityID) bool {
	if !s.CanReload(owner) {
		return false
	}
	w := s.weapon(owner)
	w.IsReloading = true
	w.ReloadTimer = 0
	s.dispatchWeapon(event.ReloadStarted, owner, w)
	return true
}

// CancelReload 中断换弹（仅当正在换弹且武器允许中断），已装入的子弹保留
func (s *WeaponSystem) CancelReload(owner ecs.EntityID) bool {
	w := s.weapon(owner)
	if w == nil || w.Config == nil || !w.IsReloading || !w.Config.CanCancelReload {
		return false
	}
	w.IsReloading = false
	w.ReloadTimer = 0
	s.dispatchProgress(owner, 0)
	s.dispatchWeapon(event.ReloadCancelled, owner, w)
	return true
}

// ToggleReload 正在换弹且可中断时中断，否则尝试开始换弹
func (s *WeaponSystem) ToggleReload(owner ecs.EntityID) {
	w := s.weapon(owner)
	if w != nil && w.IsReloading && w.Config != nil && w.Config.CanCancelReload {
		s.CancelReload(owner)
		return
	}
	s.StartReload(owner)
}

// SwitchWeapon 切换武器：中断换弹，新武器满弹匣（cfg 为 nil 表示卸下武器）
func (s *WeaponSystem) SwitchWeapon(owner ecs.EntityID, cfg *config.WeaponConfig) {
	w := s.weapon(owner)
	if w == nil {
		w = &components.WeaponComponent{}
		s.entityManager.AddComponent(owner, w)
	}
	w.IsReloading = false
	w.ReloadTimer = 0
	w.FireCooldown = 0
	w.Config = cfg
	w.Magazine = 0
	w.IsEmpty = false
	if cfg != nil {
		w.Magazine = cfg.MagazineSize
		log.Printf("[WeaponSystem] 实体 %d 切换武器: %s", owner, cfg.Name)
	}
}

// Status 返回弹匣与备弹数量（HUD 使用）
func (s *WeaponSystem) Status(owner ecs.EntityID) (name string, magazine, reserve int, reloading bool) {
	w := s.weapon(owner)
	if w == nil || w.Config == nil {
		return "", 0, 0, false
	}
	return w.Config.Name, w.Magazine, s.ammo.Get(owner, w.Config.AmmoType), w.IsReloading
}

func (s *WeaponSystem) weapon(owner ecs.EntityID) *components.WeaponComponent {
	w, ok := ecs.GetComponent[*components.WeaponComponent](s.entityManager, owner)
	if !ok {
		return nil
	}
	return w
}

func (s *WeaponSystem) dispatchProgress(owner ecs.EntityID, progress float64) {
	s.dispatcher.Dispatch(event.Event{
		Type: event.ReloadProgress,
		Data: event.ReloadProgressData{Owner: owner, Progress: utils.Clamp01(progress)},
	})
}

func (s *WeaponSystem) dispatchWeapon(eventType event.EventType, owner ecs.EntityID, w *components.WeaponComponent) {
	s.dispatcher.Dispatch(event.Event{
		Type: eventType,
		Data: event.WeaponData{
			Owner:    owner,
			Weapon:   w.Config.Name,
			Magazine: w.Magazine,
			Reserve:  s.ammo.Get(owner, w.Config.AmmoType),
		},
	})
}
