package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// 鼠标灵敏度范围
const (
	minMouseSensitivity = 0.1
	maxMouseSensitivity = 5.0
)

// GameSettings 全局设置
// 与竞技场配置不同，这些是玩家在运行时调整、需要跨次启动保留的偏好
type GameSettings struct {
	// 显示设置
	Fullscreen       bool `yaml:"fullscreen"`       // 启动时是否全屏
	ShowDebugOverlay bool `yaml:"showDebugOverlay"` // 是否显示敌人状态统计
	ShowNavTargets   bool `yaml:"showNavTargets"`   // 是否绘制敌人导航目的地

	// 控制设置
	MouseSensitivity float64 `yaml:"mouseSensitivity"` // 瞄准灵敏度 0.1 ~ 5.0
	StartFirstPerson bool    `yaml:"startFirstPerson"` // 是否以第一人称镜头启动
}

// DefaultSettings 返回默认设置
func DefaultSettings() *GameSettings {
	return &GameSettings{
		Fullscreen:       false,
		ShowDebugOverlay: true,
		ShowNavTargets:   false,
		MouseSensitivity: 1.0,
		StartFirstPerson: false,
	}
}

// SettingsManager 设置管理器
// 负责设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *GameSettings  // 当前设置
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "global"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 返回：
//   - *SettingsManager: 设置管理器实例
//   - error: 保留给调用方，加载失败不会返回错误
func NewSettingsManager(gdataManager *gdata.Manager) (*SettingsManager, error) {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	// 加载失败不是致命错误，使用默认设置
	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm, nil
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或数据不存在，使用默认设置
//
// 返回：
//   - error: 如果读取或反序列化失败返回错误
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	// 以默认值为底，旧版本存档缺少的字段保持默认
	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	loaded.MouseSensitivity = clampSensitivity(loaded.MouseSensitivity)

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *GameSettings {
	return sm.settings
}

// SetFullscreen 设置全屏模式
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

// ToggleDebugOverlay 切换调试信息显示，返回切换后的值
func (sm *SettingsManager) ToggleDebugOverlay() bool {
	sm.settings.ShowDebugOverlay = !sm.settings.ShowDebugOverlay
	return sm.settings.ShowDebugOverlay
}

// ToggleNavTargets 切换导航目的地显示，返回切换后的值
func (sm *SettingsManager) ToggleNavTargets() bool {
	sm.settings.ShowNavTargets = !sm.settings.ShowNavTargets
	return sm.settings.ShowNavTargets
}

// SetMouseSensitivity 设置瞄准灵敏度
//
// 灵敏度会被限制在 0.1 ~ 5.0 范围内
//
// 参数：
//   - value: 灵敏度
func (sm *SettingsManager) SetMouseSensitivity(value float64) {
	sm.settings.MouseSensitivity = clampSensitivity(value)
}

// SetStartFirstPerson 设置启动时的镜头模式
func (sm *SettingsManager) SetStartFirstPerson(enabled bool) {
	sm.settings.StartFirstPerson = enabled
}

// clampSensitivity 将灵敏度限制在合法范围内
func clampSensitivity(value float64) float64 {
	if value < minMouseSensitivity {
		return minMouseSensitivity
	}
	if value > maxMouseSensitivity {
		return maxMouseSensitivity
	}
	return value
}
