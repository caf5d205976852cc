// simulate 无头运行 Survival，用于在没有窗口的环境中验证游戏循环
//
// 使用方法:
//
//	go run ./cmd/simulate --duration 10s
//	go run ./cmd/simulate --ticks 600 --autopilot
//
// 资源以无头模式加载（只读取图像尺寸，不创建 GPU 图像，不初始化音频），
// 绘制请求写入 render.Recorder。收到 SIGINT/SIGTERM、达到 --duration 或
// --ticks 时停止，并输出循环统计。
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/survival/pkg/app"
	"github.com/decker502/survival/pkg/engine"
	"github.com/decker502/survival/pkg/geom"
	"github.com/decker502/survival/pkg/input"
	"github.com/decker502/survival/pkg/logger"
	"github.com/decker502/survival/pkg/render"
	"github.com/decker502/survival/pkg/scenes"
)

var (
	configPath = flag.String("config", "data/config.yaml", "配置文件路径")
	assetRoot  = flag.String("assets", ".", "资源根目录")
	duration   = flag.Duration("duration", 10*time.Second, "运行时长，0 表示直到收到信号")
	maxTicks   = flag.Uint64("ticks", 0, "运行的逻辑 tick 数，0 表示不限制")
	autopilot  = flag.Bool("autopilot", false, "自动绕圈移动鼠标并持续开火")
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
)

// autopilotRadius 自动驾驶时鼠标绕屏幕中心的半径
const autopilotRadius = 200

// simHost 包装 Runner：每帧清空记录器，按需注入输入并在达到 tick 上限时停止
type simHost struct {
	runner   *engine.Runner
	recorder *render.Recorder
	state    *input.State
	screen   geom.Vec2

	ticks     uint64
	limit     uint64
	autopilot bool
	commands  int
	stop      func()
}

func (h *simHost) LogicTick() {
	if h.autopilot {
		h.steer()
	}
	h.runner.LogicTick()
	h.ticks++
	if h.limit > 0 && h.ticks >= h.limit {
		h.stop()
	}
}

func (h *simHost) RenderFrame() {
	h.recorder.Reset()
	h.runner.RenderFrame()
	h.commands = len(h.recorder.Commands())
}

// steer 鼠标每 tick 转 3 度，按住空格开火
func (h *simHost) steer() {
	p := h.screen.Scale(0.5).Add(geom.FromDegrees(float64(h.ticks) * 3).Scale(autopilotRadius))
	h.state.SetMousePosition(int(p.X), int(p.Y))
	h.state.SetMouseInWindow(true)
	h.state.SetKey(ebiten.KeySpace, true)
}

func main() {
	flag.Parse()

	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := app.LoadConfig(*configPath, *verbose)
	if err != nil {
		return err
	}
	l := logger.Session("Simulate")

	rm, err := app.LoadResources(cfg, *assetRoot, true)
	if err != nil {
		return err
	}

	scene := scenes.NewSurvivalScene(cfg, nil)
	if err := scene.Init(rm); err != nil {
		return err
	}

	state := input.NewState()
	recorder := render.NewRecorder()
	host := &simHost{
		runner:    engine.NewRunner(scene, state, recorder),
		recorder:  recorder,
		state:     state,
		screen:    geom.Vec2{X: float64(cfg.Window.Width), Y: float64(cfg.Window.Height)},
		limit:     *maxTicks,
		autopilot: *autopilot,
	}

	driver, err := engine.NewDriver(host, engine.Options{
		TicksPerSecond:  cfg.Loop.TicksPerSecond,
		MaxCatchUpTicks: cfg.Loop.MaxCatchUpTicks,
		YieldWhenIdle:   true,
	})
	if err != nil {
		return err
	}
	host.stop = driver.Stop

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if *duration > 0 {
		var cancelTimeout context.CancelFunc
		ctx, cancelTimeout = context.WithTimeout(ctx, *duration)
		defer cancelTimeout()
	}

	start := time.Now()
	if err := driver.Start(ctx); err != nil {
		return err
	}
	err = driver.Wait()
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	m := driver.Metrics()
	l.Infof("ran %s: ticks=%d skipped=%d frames=%d fps=%.1f", time.Since(start).Round(time.Millisecond),
		m.TicksRun, m.SkippedTicks, m.FramesRendered, m.FPS)
	l.Infof("entities=%d alive=%v last frame %d draw commands", scene.Entities().Len(), scene.Alive(), host.commands)
	return nil
}
