package systems

import (
	"log"

	"github.com/decker502/wavearena/pkg/components"
	"github.com/decker502/wavearena/pkg/config"
	"github.com/decker502/wavearena/pkg/ecs"
	"github.com/decker502/wavearena/pkg/entities"
	"github.com/decker502/wavearena/pkg/utils"
)

// CameraSystem 管理镜头模式与移动。
// 自由模式下按输入移动；第一人称模式下平滑跟随目标实体。
type CameraSystem struct {
	entityManager *ecs.EntityManager
	settings      config.CameraSettings
	cameraEntity  ecs.EntityID // 镜头实体ID
}

// NewCameraSystem 创建镜头控制系统，并创建跟随 target 的镜头实体。
func NewCameraSystem(em *ecs.EntityManager, arena *config.ArenaConfig, target ecs.EntityID) *CameraSystem {
	cs := &CameraSystem{
		entityManager: em,
		settings:      arena.Camera,
	}
	cs.cameraEntity = entities.NewCameraEntity(em, arena, target)

	// 初始位置对准目标
	if camera := cs.camera(); camera != nil {
		if pos, ok := ecs.GetComponent[*components.PositionComponent](em, target); ok {
			camera.Position = pos.Pos
			camera.Yaw = pos.Facing
		}
	}
	return cs
}

// Update 更新镜头位置。
func (cs *CameraSystem) Update(dt float64) {
	camera := cs.camera()
	if camera == nil {
		return
	}

	switch camera.Mode {
	case components.CameraFree:
		speed := cs.settings.MoveSpeed
		if camera.Boost {
			speed = cs.settings.FastMoveSpeed
		}
		camera.Position = camera.Position.Add(camera.FreeInput.ClampLength(1).Scale(speed * dt))

	case components.CameraFirstPerson:
		pos, ok := ecs.GetComponent[*components.PositionComponent](cs.entityManager, camera.Target)
		if !ok {
			return
		}
		t := utils.SmoothFactor(cs.settings.FirstPersonSmoothSpeed, dt)
		camera.Position = utils.LerpVec(camera.Position, pos.Pos, t)
		camera.Yaw = utils.Lerp(camera.Yaw, camera.Yaw+angleDelta(camera.Yaw, pos.Facing), t)
	}
}

// Toggle 在自由镜头与第一人称之间切换，返回切换后的模式。
func (cs *CameraSystem) Toggle() components.CameraMode {
	camera := cs.camera()
	if camera == nil {
		return components.CameraFree
	}
	if camera.Mode == components.CameraFree {
		camera.Mode = components.CameraFirstPerson
	} else {
		camera.Mode = components.CameraFree
	}
	camera.FreeInput = utils.Vec2{}
	log.Printf("[CameraSystem] 镜头模式切换为 %s", camera.Mode)
	return camera.Mode
}

// SetFreeInput 设置自由镜头本帧的移动输入。
// 参数:
//   - input: 移动方向（长度超过 1 会被截断）
//   - boost: 是否加速
func (cs *CameraSystem) SetFreeInput(input utils.Vec2, boost bool) {
	if camera := cs.camera(); camera != nil {
		camera.FreeInput = input
		camera.Boost = boost
	}
}

// Mode 返回当前镜头模式。
func (cs *CameraSystem) Mode() components.CameraMode {
	if camera := cs.camera(); camera != nil {
		return camera.Mode
	}
	return components.CameraFree
}

// Position 返回镜头位置。
func (cs *CameraSystem) Position() utils.Vec2 {
	if camera := cs.camera(); camera != nil {
		return camera.Position
	}
	return utils.Vec2{}
}

// Entity 返回镜头实体ID。
func (cs *CameraSystem) Entity() ecs.EntityID {
	return cs.cameraEntity
}

func (cs *CameraSystem) camera() *components.CameraComponent {
	camera, ok := ecs.GetComponent[*components.CameraComponent](cs.entityManager, cs.cameraEntity)
	if !ok {
		return nil
	}
	return camera
}

// angleDelta 从 from 转到 to 的最短角度差（度）
func angleDelta(from, to float64) float64 {
	return utils.MoveTowardsAngle(from, to, 360) - from
}
