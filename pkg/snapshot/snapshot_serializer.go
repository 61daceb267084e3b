package snapshot

import (
	"encoding/gob"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/decker502/wavearena/pkg/components"
	"github.com/decker502/wavearena/pkg/ecs"
	"github.com/decker502/wavearena/pkg/systems/enemy"
)

// SnapshotSerializer 竞技场快照序列化器
//
// 架构说明：
//   - 这是一个工具类，不是 ECS 系统
//   - 可以访问 EntityManager 收集实体数据
//   - 不修改游戏状态，仅负责采集与序列化/反序列化
type SnapshotSerializer struct{}

// NewSnapshotSerializer 创建快照序列化器实例
func NewSnapshotSerializer() *SnapshotSerializer {
	return &SnapshotSerializer{}
}

// Capture 从 EntityManager 采集快照
//
// 参数：
//   - em: EntityManager 实例
//   - wave: 调度状态（由调用方从波次系统读取）
//
// 返回：
//   - *ArenaSnapshot: 快照数据
//   - error: em 为 nil 时返回错误
func (s *SnapshotSerializer) Capture(em *ecs.EntityManager, wave WaveSnapshot) (*ArenaSnapshot, error) {
	if em == nil {
		return nil, fmt.Errorf("EntityManager is nil")
	}

	snapshot := &ArenaSnapshot{
		Version:     ArenaSnapshotVersion,
		SaveTime:    time.Now(),
		Wave:        wave,
		StateCounts: make(map[string]int),
	}
	snapshot.Player = s.collectPlayer(em)
	snapshot.Enemies = s.collectEnemies(em)
	snapshot.Bullets = s.collectBullets(em)
	snapshot.Pickups = s.collectPickups(em)
	for _, e := range snapshot.Enemies {
		snapshot.StateCounts[e.State]++
	}
	return snapshot, nil
}

// Save 将快照写入文件
func (s *SnapshotSerializer) Save(snapshot *ArenaSnapshot, filePath string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create snapshot file: %w", err)
	}
	defer file.Close()

	if err := s.Encode(file, snapshot); err != nil {
		return err
	}

	log.Printf("[SnapshotSerializer] Saved snapshot to %s: Wave=%d, Enemies=%d, Bullets=%d",
		filePath, snapshot.Wave.Wave, len(snapshot.Enemies), len(snapshot.Bullets))
	return nil
}

// Load 从文件读取快照，版本不匹配时返回错误
func (s *SnapshotSerializer) Load(filePath string) (*ArenaSnapshot, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot file: %w", err)
	}
	defer file.Close()
	return s.Decode(file)
}

// Encode 以 gob 格式写出快照
func (s *SnapshotSerializer) Encode(w io.Writer, snapshot *ArenaSnapshot) error {
	if snapshot == nil {
		return fmt.Errorf("snapshot is nil")
	}
	if err := gob.NewEncoder(w).Encode(snapshot); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return nil
}

// Decode 读取 gob 格式的快照
func (s *SnapshotSerializer) Decode(r io.Reader) (*ArenaSnapshot, error) {
	var snapshot ArenaSnapshot
	if err := gob.NewDecoder(r).Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if snapshot.Version != ArenaSnapshotVersion {
		return nil, fmt.Errorf("incompatible snapshot version: %d (expected %d)",
			snapshot.Version, ArenaSnapshotVersion)
	}
	return &snapshot, nil
}

// collectPlayer 收集第一个玩家实体
func (s *SnapshotSerializer) collectPlayer(em *ecs.EntityManager) *PlayerSnapshot {
	ids := ecs.GetEntitiesWith2[*components.PlayerComponent, *components.PositionComponent](em)
	if len(ids) == 0 {
		return nil
	}
	id := ids[0]
	player, _ := ecs.GetComponent[*components.PlayerComponent](em, id)
	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)

	snapshot := &PlayerSnapshot{
		X:      pos.Pos.X,
		Y:      pos.Pos.Y,
		Facing: pos.Facing,
		Kills:  player.Kills,
		Ammo:   make(map[string]int),
	}
	if weapon, ok := ecs.GetComponent[*components.WeaponComponent](em, id); ok && weapon.Config != nil {
		snapshot.Weapon = weapon.Config.Name
		snapshot.Magazine = weapon.Magazine
	}
	if inv, ok := ecs.GetComponent[*components.AmmoInventoryComponent](em, id); ok {
		for ammoType, count := range inv.Counts {
			snapshot.Ammo[ammoType.String()] = count
		}
	}
	return snapshot
}

// collectEnemies 收集在场敌人，池中闲置的跳过
func (s *SnapshotSerializer) collectEnemies(em *ecs.EntityManager) []EnemySnapshot {
	var enemies []EnemySnapshot
	for _, id := range ecs.GetEntitiesWith1[*enemy.BrainComponent](em) {
		agent, ok := enemy.AgentOf(em, id)
		if !ok || !agent.Enemy.Active {
			continue
		}
		enemies = append(enemies, EnemySnapshot{
			ID:        uint64(id),
			Type:      agent.Enemy.Type.String(),
			State:     agent.StateName(),
			X:         agent.Position.Pos.X,
			Y:         agent.Position.Pos.Y,
			Health:    agent.Health.Current,
			MaxHealth: agent.Health.Max,
			Lives:     agent.Enemy.Lives,
		})
	}
	return enemies
}

// collectBullets 收集飞行中的子弹
func (s *SnapshotSerializer) collectBullets(em *ecs.EntityManager) []BulletSnapshot {
	var bullets []BulletSnapshot
	for _, id := range ecs.GetEntitiesWith2[*components.BulletComponent, *components.PositionComponent](em) {
		if em.IsMarkedForDestroy(id) {
			continue
		}
		bullet, _ := ecs.GetComponent[*components.BulletComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		bullets = append(bullets, BulletSnapshot{
			X:        pos.Pos.X,
			Y:        pos.Pos.Y,
			DirX:     bullet.Direction.X,
			DirY:     bullet.Direction.Y,
			Traveled: bullet.Traveled,
		})
	}
	return bullets
}

// collectPickups 收集地面上的掉落物
func (s *SnapshotSerializer) collectPickups(em *ecs.EntityManager) []PickupSnapshot {
	var pickups []PickupSnapshot
	for _, id := range ecs.GetEntitiesWith2[*components.PickupComponent, *components.PositionComponent](em) {
		if em.IsMarkedForDestroy(id) {
			continue
		}
		pickup, _ := ecs.GetComponent[*components.PickupComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		pickups = append(pickups, PickupSnapshot{
			AmmoType: pickup.AmmoType.String(),
			Amount:   pickup.Amount,
			X:        pos.Pos.X,
			Y:        pos.Pos.Y,
		})
	}
	return pickups
}
