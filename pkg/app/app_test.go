package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/decker502/survival/pkg/config"
	"github.com/decker502/survival/pkg/engine"
	"github.com/decker502/survival/pkg/game"
	"github.com/decker502/survival/pkg/input"
	"github.com/decker502/survival/pkg/logger"
	"github.com/decker502/survival/pkg/render"
	"github.com/decker502/survival/pkg/scenes"
)

// repoRoot 测试在包目录中运行，资源和配置位于仓库根目录
const repoRoot = "../.."

func quietLogs(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		_ = logger.Setup(logger.Options{Quiet: true})
	})
}

func TestLoadConfig(t *testing.T) {
	quietLogs(t)
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("loop:\n  ticksPerSecond: -1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	tuned := filepath.Join(dir, "tuned.toml")
	if err := os.WriteFile(tuned, []byte("[log]\nquiet = true\n\n[game]\nrockCount = 3\n"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		path      string
		wantErr   error
		wantRocks int
	}{
		{name: "empty path uses defaults", path: "", wantRocks: 8},
		{name: "missing file uses defaults", path: filepath.Join(dir, "missing.yaml"), wantRocks: 8},
		{name: "repo config", path: filepath.Join(repoRoot, "data", "config.yaml"), wantRocks: 8},
		{name: "toml overrides", path: tuned, wantRocks: 3},
		{name: "invalid values", path: bad, wantErr: config.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig(tt.path, false)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("LoadConfig error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadConfig failed: %v", err)
			}
			if cfg.Game.RockCount != tt.wantRocks {
				t.Errorf("rockCount = %d, want %d", cfg.Game.RockCount, tt.wantRocks)
			}
		})
	}
}

// TestRepoConfigMatchesDefaults 仓库自带的配置文件与默认值一致
func TestRepoConfigMatchesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(repoRoot, "data", "config.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	def := config.Default()
	if cfg.Loop != def.Loop || cfg.Animation != def.Animation || cfg.Game != def.Game {
		t.Errorf("repo config drifted from defaults:\n got %+v %+v %+v\nwant %+v %+v %+v",
			cfg.Loop, cfg.Animation, cfg.Game, def.Loop, def.Animation, def.Game)
	}
	if cfg.Assets.Manifest != def.Assets.Manifest {
		t.Errorf("manifest = %q, want %q", cfg.Assets.Manifest, def.Assets.Manifest)
	}
}

func TestLoadResourcesHeadless(t *testing.T) {
	quietLogs(t)
	cfg := config.Default()

	rm, err := LoadResources(cfg, repoRoot, true)
	if err != nil {
		t.Fatalf("LoadResources failed: %v", err)
	}
	if rm.Audio() != nil {
		t.Error("headless resources should not create an audio manager")
	}

	tex, err := rm.LoadTexture(scenes.ImageAsteroid)
	if err != nil {
		t.Fatalf("LoadTexture failed: %v", err)
	}
	if tex.Width != 512 || tex.Height != 512 {
		t.Errorf("asteroid size = %dx%d, want 512x512", tex.Width, tex.Height)
	}
	if tex.Image != nil {
		t.Error("headless texture should not hold a GPU image")
	}

	if _, err := rm.LoadFont(game.FontDescriptor{Path: scenes.FontHUD}); err != nil {
		t.Errorf("LoadFont(%s) failed: %v", scenes.FontHUD, err)
	}
	for _, id := range []string{scenes.SoundGun, scenes.SoundLaser, scenes.SoundExplosion} {
		if _, err := rm.ReadFile(rm.Resolve(id)); err != nil {
			t.Errorf("sound %s unreadable: %v", id, err)
		}
	}
}

func TestLoadResourcesMissingManifest(t *testing.T) {
	quietLogs(t)
	cfg := config.Default()
	cfg.Assets.Manifest = "data/nope.yaml"

	_, err := LoadResources(cfg, repoRoot, true)
	var le *game.LoadError
	if !errors.As(err, &le) {
		t.Fatalf("error = %v, want *game.LoadError", err)
	}
	if le.Kind != game.ResourceManifest {
		t.Errorf("kind = %v, want manifest", le.Kind)
	}
}

// TestHeadlessRun 用手动时钟驱动完整的场景
func TestHeadlessRun(t *testing.T) {
	quietLogs(t)
	cfg := config.Default()
	cfg.Game.Seed = 7

	rm, err := LoadResources(cfg, repoRoot, true)
	if err != nil {
		t.Fatalf("LoadResources failed: %v", err)
	}
	scene := scenes.NewSurvivalScene(cfg, nil)
	if err := scene.Init(rm); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	// 16x16 网格: 60 块墙 + 8 颗陨石 + 玩家
	if n := scene.Entities().Len(); n != 69 {
		t.Fatalf("entities after init = %d, want 69", n)
	}

	clock := engine.NewManualClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	recorder := render.NewRecorder()
	driver, err := engine.NewDriver(engine.NewRunner(scene, input.NewState(), recorder), engine.Options{
		TicksPerSecond:  cfg.Loop.TicksPerSecond,
		MaxCatchUpTicks: cfg.Loop.MaxCatchUpTicks,
		Clock:           clock,
	})
	if err != nil {
		t.Fatalf("NewDriver failed: %v", err)
	}

	driver.RunOnce()
	for i := 0; i < 30; i++ {
		clock.Advance(driver.TickInterval())
		recorder.Reset()
		if n := driver.RunOnce(); n != 1 {
			t.Fatalf("frame %d ran %d ticks, want 1", i, n)
		}
	}

	m := driver.Metrics()
	if m.TicksRun != 30 || m.FramesRendered != 31 {
		t.Errorf("metrics = %+v, want 30 ticks / 31 frames", m)
	}
	if !scene.Alive() {
		t.Error("idle player should survive")
	}
	if n := scene.Entities().Len(); n > 69 {
		t.Errorf("entities = %d, idle run should not spawn any", n)
	}

	// 地砖 + 实体 + 3 组线段 + 3 段文字
	want := 256 + scene.Entities().Len() + 3 + 3
	if got := len(recorder.Commands()); got != want {
		t.Errorf("draw commands = %d, want %d", got, want)
	}
}
