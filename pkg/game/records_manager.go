package game

import (
	"fmt"
	"log"

	"github.com/decker502/wavearena/pkg/snapshot"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// 存储路径常量
const (
	recordsObject   = "records"
	recordsProperty = "arena"
)

// ArenaRecords 竞技场历史记录
type ArenaRecords struct {
	BestWave        int     `yaml:"bestWave"`        // 到达过的最高波次
	BestKills       int     `yaml:"bestKills"`       // 单局最多击杀
	TotalKills      int     `yaml:"totalKills"`      // 累计击杀
	TotalRuns       int     `yaml:"totalRuns"`       // 累计局数
	LongestSurvival float64 `yaml:"longestSurvival"` // 单局最长时间（秒）
}

// RecordsManager 历史记录管理器
// 与 SettingsManager 一样，gdataManager 为 nil 时只在内存中记录
type RecordsManager struct {
	gdataManager *gdata.Manager
	records      ArenaRecords
}

// NewRecordsManager 创建记录管理器并加载已有记录
// 加载失败时从零开始，只记录警告
func NewRecordsManager(gdataManager *gdata.Manager) *RecordsManager {
	rm := &RecordsManager{gdataManager: gdataManager}
	if err := rm.Load(); err != nil {
		log.Printf("[RecordsManager] Warning: Failed to load records: %v (starting fresh)", err)
	}
	return rm
}

// Load 从 gdata 加载记录
func (rm *RecordsManager) Load() error {
	rm.records = ArenaRecords{}
	if rm.gdataManager == nil || !rm.gdataManager.ObjectPropExists(recordsObject, recordsProperty) {
		return nil
	}

	data, err := rm.gdataManager.LoadObjectProp(recordsObject, recordsProperty)
	if err != nil {
		return fmt.Errorf("failed to load records: %w", err)
	}

	var loaded ArenaRecords
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to unmarshal records: %w", err)
	}
	rm.records = loaded
	return nil
}

// Save 保存记录到 gdata（降级模式下不做任何事）
func (rm *RecordsManager) Save() error {
	if rm.gdataManager == nil {
		return nil
	}
	data, err := yaml.Marshal(&rm.records)
	if err != nil {
		return fmt.Errorf("failed to marshal records: %w", err)
	}
	if err := rm.gdataManager.SaveObjectProp(recordsObject, recordsProperty, data); err != nil {
		return fmt.Errorf("failed to save records: %w", err)
	}
	return nil
}

// RecordRun 合并一局的成绩并保存
//
// 返回：
//   - bool: 是否刷新了最高波次
//   - error: 保存失败时返回错误（内存中的记录已更新）
func (rm *RecordsManager) RecordRun(result snapshot.RunResult) (bool, error) {
	r := &rm.records
	r.TotalRuns++
	r.TotalKills += result.Kills

	newBest := result.Wave > r.BestWave
	if newBest {
		r.BestWave = result.Wave
	}
	if result.Kills > r.BestKills {
		r.BestKills = result.Kills
	}
	if result.Seconds > r.LongestSurvival {
		r.LongestSurvival = result.Seconds
	}

	log.Printf("[RecordsManager] 本局: 第 %d 波, 击杀 %d, %.0f 秒 (最高波次 %d)",
		result.Wave, result.Kills, result.Seconds, r.BestWave)

	if err := rm.Save(); err != nil {
		return newBest, err
	}
	return newBest, nil
}

// Records 返回当前记录的副本
func (rm *RecordsManager) Records() ArenaRecords {
	return rm.records
}
