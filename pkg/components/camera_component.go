package components

import (
	"github.com/decker502/wavearena/pkg/ecs"
	"github.com/decker502/wavearena/pkg/utils"
)

// CameraMode 镜头模式
type CameraMode int

const (
	// CameraFree 自由镜头：由输入移动
	CameraFree CameraMode = iota
	// CameraFirstPerson 第一人称：平滑跟随玩家
	CameraFirstPerson
)

// String 返回镜头模式名称
func (m CameraMode) String() string {
	if m == CameraFirstPerson {
		return "first_person"
	}
	return "free"
}

// CameraComponent 管理镜头的位置与模式
type CameraComponent struct {
	// Mode 当前镜头模式
	Mode CameraMode

	// Position 镜头在地面平面上的位置
	Position utils.Vec2

	// Height 视点高度（第一人称时为玩家眼睛高度）
	Height float64

	// Yaw 镜头朝向（度）
	Yaw float64

	// FreeInput 自由镜头本帧的移动输入
	FreeInput utils.Vec2

	// Boost 是否加速移动
	Boost bool

	// Target 第一人称跟随的实体
	Target ecs.EntityID
}
