package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene 游戏场景（竞技场、结算画面等）
// 同一时刻只有一个场景在更新和绘制
type Scene interface {
	// Update 推进场景逻辑，deltaTime 为距上一帧的秒数
	Update(deltaTime float64)

	// Draw 将场景绘制到 screen
	Draw(screen *ebiten.Image)
}

// Saveable 可选接口：场景在程序退出或被替换前保存状态
//
// 实现此接口的场景会在以下时机被调用 SaveOnExit()：
//   - 游戏窗口关闭
//   - 通过 SceneManager.LoadScene 切换到新场景
type Saveable interface {
	// SaveOnExit 返回 true 表示保存成功或无需保存
	// 返回 false 表示保存失败（程序仍会正常退出）
	SaveOnExit() bool
}
