package game

import (
	"testing"

	"github.com/quasilyte/gdata/v2"
)

// newTestGdata 在临时目录中创建 gdata manager
func newTestGdata(t *testing.T, appName string) *gdata.Manager {
	t.Helper()
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("XDG_DATA_HOME", tempDir)
	t.Setenv("XDG_CONFIG_HOME", tempDir)

	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return m
}

// TestDefaultSettings 测试默认值
func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	if settings.Fullscreen {
		t.Error("Fullscreen: got true, want false")
	}
	if !settings.ShowDebugOverlay {
		t.Error("ShowDebugOverlay: got false, want true")
	}
	if settings.MouseSensitivity != 1.0 {
		t.Errorf("MouseSensitivity: got %v, want 1.0", settings.MouseSensitivity)
	}
}

// TestNewSettingsManagerNilGdata 测试 gdataManager 为 nil 时的降级场景
func TestNewSettingsManagerNilGdata(t *testing.T) {
	sm, err := NewSettingsManager(nil)
	if err != nil {
		t.Fatalf("NewSettingsManager(nil) error: %v", err)
	}

	sm.SetFullscreen(true)
	if err := sm.Save(); err != nil {
		t.Errorf("Save() in degraded mode should not fail: %v", err)
	}
	if !sm.GetSettings().Fullscreen {
		t.Error("in-memory setting should still change in degraded mode")
	}
}

// TestSettingsLoadSave 测试 Load() 和 Save() 往返
func TestSettingsLoadSave(t *testing.T) {
	gdataManager := newTestGdata(t, "test_arena_settings")

	sm1, err := NewSettingsManager(gdataManager)
	if err != nil {
		t.Fatalf("NewSettingsManager() error: %v", err)
	}
	sm1.SetFullscreen(true)
	sm1.SetMouseSensitivity(2.5)
	sm1.SetStartFirstPerson(true)
	if sm1.ToggleDebugOverlay() {
		t.Error("ToggleDebugOverlay should turn the default overlay off")
	}
	if !sm1.ToggleNavTargets() {
		t.Error("ToggleNavTargets should turn nav targets on")
	}

	if err := sm1.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	sm2, err := NewSettingsManager(gdataManager)
	if err != nil {
		t.Fatalf("NewSettingsManager() error on reload: %v", err)
	}
	want := GameSettings{
		Fullscreen:       true,
		ShowDebugOverlay: false,
		ShowNavTargets:   true,
		MouseSensitivity: 2.5,
		StartFirstPerson: true,
	}
	if got := *sm2.GetSettings(); got != want {
		t.Errorf("Loaded settings: got %+v, want %+v", got, want)
	}
}

// TestSettingsLoadCorrupted 测试损坏数据回退到默认设置
func TestSettingsLoadCorrupted(t *testing.T) {
	gdataManager := newTestGdata(t, "test_arena_settings_corrupted")
	if err := gdataManager.SaveObjectProp(settingsObject, settingsProperty, []byte("fullscreen: [oops")); err != nil {
		t.Fatalf("SaveObjectProp failed: %v", err)
	}

	sm, _ := NewSettingsManager(gdataManager)
	if *sm.GetSettings() != *DefaultSettings() {
		t.Errorf("corrupted data should fall back to defaults, got %+v", *sm.GetSettings())
	}
	if err := sm.Load(); err == nil {
		t.Error("Load() should report the unmarshal error")
	}
}

// TestSetMouseSensitivityClamp 测试灵敏度范围校验
func TestSetMouseSensitivityClamp(t *testing.T) {
	sm, _ := NewSettingsManager(nil)

	tests := []struct {
		input    float64
		expected float64
	}{
		{1.5, 1.5}, // 正常值
		{0.1, 0.1}, // 下限
		{5.0, 5.0}, // 上限
		{0, 0.1},   // 低于下限
		{-3, 0.1},  // 负数
		{100, 5.0}, // 高于上限
	}

	for _, tt := range tests {
		sm.SetMouseSensitivity(tt.input)
		if sm.GetSettings().MouseSensitivity != tt.expected {
			t.Errorf("SetMouseSensitivity(%v): got %v, want %v",
				tt.input, sm.GetSettings().MouseSensitivity, tt.expected)
		}
	}
}
