package main

import (
	"flag"
	"log"

	"github.com/decker502/survival/pkg/app"
)

var (
	configPath = flag.String("config", "data/config.yaml", "配置文件路径（.yaml 或 .toml）")
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
	watch      = flag.Bool("watch", false, "监听配置文件并热加载")
	assetRoot  = flag.String("assets", ".", "资源根目录")
)

func main() {
	flag.Parse()

	a, err := app.NewApp(app.Options{
		ConfigPath: *configPath,
		Verbose:    *verbose,
		Watch:      *watch,
		AssetRoot:  *assetRoot,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	// 图形初始化失败由 RunGame 返回
	if err := a.Run(); err != nil {
		log.Fatal(err)
	}
}
