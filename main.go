package main

import (
	"flag"
	"log"
	"time"

	"github.com/decker502/wavearena/pkg/app"
	"github.com/decker502/wavearena/pkg/embedded"
)

var (
	verbose = flag.Bool("verbose", false, "显示详细调试信息")
	seed    = flag.Int64("seed", 0, "随机种子（0 表示使用当前时间）")
	dataDir = flag.String("data", "data", "配置目录（默认使用嵌入资源）")
)

func main() {
	flag.Parse()
	embedded.Init(dataFS)

	s := *seed
	if s == 0 {
		s = time.Now().UnixNano()
	}

	a, err := app.NewApp(app.Config{
		Verbose: *verbose,
		Seed:    s,
		DataDir: *dataDir,
	})
	if err != nil {
		log.Fatal(err)
	}
	if err := a.Run(); err != nil {
		log.Fatal(err)
	}
}
