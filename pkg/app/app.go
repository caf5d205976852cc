// Package app 提供游戏应用的核心包装器
//
// 该包把配置、日志、资源、场景和游戏循环组装起来。窗口模式下由 Ebitengine
// 驱动（App 实现 ebiten.Game）；无头模式由 cmd/simulate 在专用 goroutine 中
// 运行同一个游戏循环。
package app

import (
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/survival/pkg/config"
	"github.com/decker502/survival/pkg/engine"
	"github.com/decker502/survival/pkg/game"
	"github.com/decker502/survival/pkg/input"
	"github.com/decker502/survival/pkg/logger"
	"github.com/decker502/survival/pkg/render"
	"github.com/decker502/survival/pkg/scenes"
)

// ResourceGroup 启动时预加载的资源组
const ResourceGroup = "survival"

// Options 应用启动参数
type Options struct {
	// ConfigPath 配置文件路径，文件不存在时使用默认配置
	ConfigPath string
	// Verbose 启用调试级别日志
	Verbose bool
	// Watch 监听配置文件并热加载
	Watch bool
	// AssetRoot 资源根目录，为空时使用当前目录
	AssetRoot string
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	cfg      *config.Config
	driver   *engine.Driver
	poller   *input.EbitenPoller
	renderer *render.EbitenRenderer
	watcher  *config.Watcher

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数

	log *log.Logger
}

// LoadConfig 读取配置并按配置初始化日志
// path 为空或文件不存在时使用默认配置
func LoadConfig(path string, verbose bool) (*config.Config, error) {
	cfg := config.Default()
	source := "defaults"
	if path != "" {
		loaded, err := config.Load(path)
		switch {
		case err == nil:
			cfg, source = loaded, path
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, err
		}
	}

	opts := logger.Options{
		Level:  cfg.Log.Level,
		Caller: cfg.Log.Caller,
		Quiet:  cfg.Log.Quiet,
	}
	if verbose {
		opts.Level = "debug"
		opts.Quiet = false
	}
	if err := logger.Setup(opts); err != nil {
		return nil, err
	}

	logger.Session("App").Infof("config loaded from %s", source)
	return cfg, nil
}

// LoadResources 创建资源管理器、读取资源清单并预加载资源组
// headless 为 true 时不创建 GPU 图像，也不初始化音频
func LoadResources(cfg *config.Config, root string, headless bool) (*game.ResourceManager, error) {
	if root == "" {
		root = "."
	}

	var am *game.AudioManager
	if cfg.Audio.Enabled && !headless {
		am = game.NewAudioManager(audio.NewContext(cfg.Audio.SampleRate), cfg.Audio.Volume)
	}

	rm := game.NewResourceManager(root, am)
	rm.SetHeadless(headless)
	if err := rm.LoadResourceConfig(cfg.Assets.Manifest); err != nil {
		return nil, fmt.Errorf("资源配置加载失败: %w", err)
	}
	if err := rm.LoadResourceGroup(ResourceGroup); err != nil {
		return nil, fmt.Errorf("资源加载失败: %w", err)
	}
	return rm, nil
}

// NewApp 创建并初始化游戏应用
func NewApp(opts Options) (*App, error) {
	cfg, err := LoadConfig(opts.ConfigPath, opts.Verbose)
	if err != nil {
		return nil, err
	}
	l := logger.For("App")

	rm, err := LoadResources(cfg, opts.AssetRoot, false)
	if err != nil {
		return nil, err
	}

	var watcher *config.Watcher
	var updates <-chan *config.Config
	if opts.Watch && opts.ConfigPath != "" {
		if _, statErr := os.Stat(opts.ConfigPath); statErr == nil {
			watcher, err = config.NewWatcher(opts.ConfigPath)
			if err != nil {
				return nil, err
			}
			updates = watcher.Updates()
			l.Infof("watching %s", opts.ConfigPath)
		}
	}

	scene := scenes.NewSurvivalScene(cfg, updates)
	if err := scene.Init(rm); err != nil {
		if watcher != nil {
			watcher.Close()
		}
		return nil, err
	}

	state := input.NewState()
	renderer := render.NewEbitenRenderer()
	driver, err := engine.NewDriver(engine.NewRunner(scene, state, renderer), engine.Options{
		TicksPerSecond:  cfg.Loop.TicksPerSecond,
		MaxCatchUpTicks: cfg.Loop.MaxCatchUpTicks,
	})
	if err != nil {
		if watcher != nil {
			watcher.Close()
		}
		return nil, err
	}

	return &App{
		cfg:      cfg,
		driver:   driver,
		poller:   input.NewEbitenPoller(state),
		renderer: renderer,
		watcher:  watcher,
		log:      l,
	}, nil
}

// Run 设置窗口并进入 Ebitengine 主循环，直到窗口关闭
// Ebitengine 每帧调用一次 Update，逻辑 tick 的节奏由 Driver 控制
func (a *App) Run() error {
	w := a.cfg.Window
	ebiten.SetWindowSize(w.Width, w.Height)
	ebiten.SetWindowTitle(w.Title)
	if w.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetFullscreen(w.Fullscreen)
	ebiten.SetTPS(ebiten.SyncWithFPS)

	defer a.Close()
	return ebiten.RunGame(a)
}

// Close 停止配置监听并输出统计
func (a *App) Close() {
	if a.watcher != nil {
		a.watcher.Close()
		a.watcher = nil
	}
	m := a.driver.Metrics()
	logger.Session("App").Infof("ticks=%d skipped=%d frames=%d", m.TicksRun, m.SkippedTicks, m.FramesRendered)
}

// Update 读取输入并运行到期的逻辑 tick
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.cfg.Window.Width, a.cfg.Window.Height)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			a.log.Debug("exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	a.poller.Poll(a.cfg.Window.Width, a.cfg.Window.Height)
	a.driver.Advance()
	return nil
}

// Draw 渲染一帧
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	a.driver.Render()
	a.renderer.Flush(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.cfg.Window.Width, a.cfg.Window.Height
}

// Metrics 返回游戏循环统计
func (a *App) Metrics() engine.Metrics {
	return a.driver.Metrics()
}
