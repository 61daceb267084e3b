// verify_waves 无界面运行竞技场，自动瞄准射击并打印每波统计
//
// 用法：
//
//	go run ./cmd/verify_waves -waves 3 -seed 42
//	go run ./cmd/verify_waves -waves 5 -snapshot /tmp/arena.snap
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/decker502/wavearena/pkg/arena"
	"github.com/decker502/wavearena/pkg/event"
	"github.com/decker502/wavearena/pkg/snapshot"
)

var (
	verbose      = flag.Bool("verbose", false, "显示详细调试信息")
	seed         = flag.Int64("seed", 1, "随机种子")
	dataDir      = flag.String("data", "data", "配置目录")
	waves        = flag.Int("waves", 3, "清完多少波后结束")
	maxTime      = flag.Float64("max-time", 600, "最长模拟时间（秒）")
	snapshotPath = flag.String("snapshot", "", "结束时写出 gob 快照的路径（可选）")
)

// simStep 固定模拟步长（秒）
const simStep = 1.0 / 60.0

// waveSummary 单波统计
type waveSummary struct {
	Wave     int
	Enemies  int
	Duration float64
	Kills    int
}

// runResult 一次验证运行的结果
type runResult struct {
	Waves    []waveSummary
	Elapsed  float64
	Snapshot *snapshot.ArenaSnapshot
}

// runVerification 运行模拟直到清完 targetWaves 波、超时或 ctx 取消
func runVerification(ctx context.Context, opts arena.Options, targetWaves int, limit float64) (*runResult, error) {
	world, err := arena.NewWorld(opts)
	if err != nil {
		return nil, err
	}

	result := &runResult{}
	waveStart := 0.0
	killsAtStart := 0
	world.Dispatcher().SubscribeFunc(event.WaveStarted, func(e event.Event) {
		waveStart = world.Elapsed()
		killsAtStart = world.Kills()
	})
	world.Dispatcher().SubscribeFunc(event.WaveCleared, func(e event.Event) {
		data, ok := e.Data.(event.WaveData)
		if !ok {
			return
		}
		result.Waves = append(result.Waves, waveSummary{
			Wave:     data.Wave,
			Enemies:  data.Enemies,
			Duration: world.Elapsed() - waveStart,
			Kills:    world.Kills() - killsAtStart,
		})
	})

	world.Start()
	for len(result.Waves) < targetWaves && world.Elapsed() < limit {
		if err := ctx.Err(); err != nil {
			log.Printf("[VerifyWaves] 中断: %v", err)
			break
		}
		autoPlay(world)
		world.Update(simStep)
	}

	result.Elapsed = world.Elapsed()
	if result.Snapshot, err = world.Snapshot(); err != nil {
		return nil, err
	}
	return result, nil
}

// autoPlay 自动玩家：瞄准最近的敌人射击，弹匣空了换弹，备弹耗尽换枪
func autoPlay(world *arena.World) {
	target, ok := world.NearestEnemy()
	if !ok {
		return
	}
	world.AimAt(target)

	name, magazine, reserve, reloading := world.WeaponStatus()
	switch {
	case reloading:
		return
	case magazine == 0 && reserve > 0:
		world.Reload()
		return
	case magazine == 0:
		for _, next := range world.WeaponNames() {
			if next != name {
				if err := world.SwitchWeapon(next); err == nil {
					log.Printf("[VerifyWaves] %s 弹药耗尽，切换到 %s", name, next)
				}
				break
			}
		}
		return
	}
	world.Fire()
}

func printReport(w io.Writer, result *runResult) {
	fmt.Fprintln(w, "wave  enemies  duration  kills")
	for _, s := range result.Waves {
		fmt.Fprintf(w, "%4d  %7d  %7.1fs  %5d\n", s.Wave, s.Enemies, s.Duration, s.Kills)
	}
	if snap := result.Snapshot; snap != nil {
		fmt.Fprintf(w, "elapsed %.1fs, wave %d (%s), spawned %d, killed %d, pool %d\n",
			result.Elapsed, snap.Wave.Wave, snap.Wave.Phase, snap.Wave.TotalSpawned, snap.Wave.TotalKilled, snap.Wave.PoolSize)
	}
}

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts, err := arena.LoadOptions(*dataDir, *seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	result, err := runVerification(ctx, opts, *waves, *maxTime)
	if err != nil {
		fmt.Fprintf(os.Stderr, "run: %v\n", err)
		os.Exit(1)
	}
	printReport(os.Stdout, result)

	if *snapshotPath != "" {
		if err := snapshot.NewSnapshotSerializer().Save(result.Snapshot, *snapshotPath); err != nil {
			fmt.Fprintf(os.Stderr, "snapshot: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("snapshot written to %s\n", *snapshotPath)
	}

	if len(result.Waves) < *waves {
		fmt.Fprintf(os.Stderr, "only %d of %d waves cleared\n", len(result.Waves), *waves)
		os.Exit(2)
	}
}
