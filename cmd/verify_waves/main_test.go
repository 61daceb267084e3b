package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/decker502/wavearena/pkg/arena"
)

func smallArena(t *testing.T) arena.Options {
	t.Helper()
	opts, err := arena.LoadOptions("../../data", 3)
	if err != nil {
		t.Fatalf("LoadOptions failed: %v", err)
	}
	opts.Arena.Waves.InitialSizes = []int{3, 4}
	opts.Arena.Waves.EnemyIncreasePerWave = 1
	opts.Arena.Waves.ArenaRadius = 15
	opts.Arena.Waves.PoolSize = 6
	opts.Arena.Waves.TimeBetweenWaves = 1
	return opts
}

func TestRunVerification(t *testing.T) {
	result, err := runVerification(context.Background(), smallArena(t), 2, 300)
	if err != nil {
		t.Fatalf("runVerification failed: %v", err)
	}
	if len(result.Waves) != 2 {
		t.Fatalf("expected 2 cleared waves, got %d (elapsed %.1fs)", len(result.Waves), result.Elapsed)
	}
	if result.Waves[0].Wave != 1 || result.Waves[0].Enemies != 3 {
		t.Errorf("first wave summary: %+v", result.Waves[0])
	}
	if result.Waves[0].Kills != 3 {
		t.Errorf("auto player should kill every enemy of wave 1, got %d", result.Waves[0].Kills)
	}
	if result.Snapshot == nil || result.Snapshot.Wave.TotalKilled != 7 {
		t.Errorf("snapshot should report 7 kills: %+v", result.Snapshot)
	}

	var buf bytes.Buffer
	printReport(&buf, result)
	if !strings.Contains(buf.String(), "wave  enemies") {
		t.Errorf("report missing header:\n%s", buf.String())
	}
}

func TestRunVerification_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := runVerification(ctx, smallArena(t), 2, 300)
	if err != nil {
		t.Fatalf("runVerification failed: %v", err)
	}
	if len(result.Waves) != 0 || result.Elapsed != 0 {
		t.Errorf("cancelled run should stop immediately: %+v", result)
	}
}
