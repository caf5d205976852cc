package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/decker502/survival/pkg/components"
)

// ErrInvalidConfig 配置值不合法
var ErrInvalidConfig = errors.New("invalid config")

// Config 引擎与示例游戏的全部配置
//
// 配置文件位置: data/config.yaml（也支持 .toml）
type Config struct {
	Window    WindowConfig    `yaml:"window" toml:"window"`
	Loop      LoopConfig      `yaml:"loop" toml:"loop"`
	Animation AnimationConfig `yaml:"animation" toml:"animation"`
	Audio     AudioConfig     `yaml:"audio" toml:"audio"`
	Log       LogConfig       `yaml:"log" toml:"log"`
	Assets    AssetsConfig    `yaml:"assets" toml:"assets"`
	Game      GameConfig      `yaml:"game" toml:"game"`
	Collision CollisionConfig `yaml:"collision" toml:"collision"`
}

// WindowConfig 窗口配置
type WindowConfig struct {
	Title      string `yaml:"title" toml:"title"`
	Width      int    `yaml:"width" toml:"width"`
	Height     int    `yaml:"height" toml:"height"`
	Resizable  bool   `yaml:"resizable" toml:"resizable"`
	Fullscreen bool   `yaml:"fullscreen" toml:"fullscreen"`
}

// LoopConfig 固定步长游戏循环配置
type LoopConfig struct {
	// TicksPerSecond 每秒逻辑 tick 数
	TicksPerSecond int `yaml:"ticksPerSecond" toml:"ticksPerSecond"`

	// MaxCatchUpTicks 每次循环迭代最多补跑的 tick 数，超出部分直接丢弃
	MaxCatchUpTicks int `yaml:"maxCatchUpTicks" toml:"maxCatchUpTicks"`

	// YieldWhenIdle 无 tick 到期时休眠到下一个截止时间（无头运行使用）
	YieldWhenIdle bool `yaml:"yieldWhenIdle" toml:"yieldWhenIdle"`
}

// AnimationConfig 精灵表动画配置
type AnimationConfig struct {
	// FrameTicks 每推进一帧所需的 tick 数
	FrameTicks int `yaml:"frameTicks" toml:"frameTicks"`

	// GridPolicy 行列数计算规则: "legacy"（默认）或 "full"
	GridPolicy string `yaml:"gridPolicy" toml:"gridPolicy"`
}

// AudioConfig 音频配置
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled" toml:"enabled"`
	SampleRate int     `yaml:"sampleRate" toml:"sampleRate"`
	Volume     float64 `yaml:"volume" toml:"volume"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Caller bool   `yaml:"caller" toml:"caller"`
	Quiet  bool   `yaml:"quiet" toml:"quiet"`
}

// AssetsConfig 资源配置
type AssetsConfig struct {
	// Manifest 资源清单路径（YAML）
	Manifest string `yaml:"manifest" toml:"manifest"`
}

// GameConfig 示例游戏的可调参数
type GameConfig struct {
	GridSize       int     `yaml:"gridSize" toml:"gridSize"`             // 地砖网格边长（块）
	RockCount      int     `yaml:"rockCount" toml:"rockCount"`           // 陨石数量
	PlayerSpeed    float64 `yaml:"playerSpeed" toml:"playerSpeed"`       // 像素/tick
	BulletSpeed    float64 `yaml:"bulletSpeed" toml:"bulletSpeed"`       // 像素/tick
	BulletLifetime int     `yaml:"bulletLifetime" toml:"bulletLifetime"` // tick
	FireCooldown   int     `yaml:"fireCooldown" toml:"fireCooldown"`     // tick
	MuzzleDistance float64 `yaml:"muzzleDistance" toml:"muzzleDistance"` // 子弹生成点与玩家的距离
	Seed           int64   `yaml:"seed" toml:"seed"`                     // 0 表示使用当前时间
}

// CollisionConfig 碰撞结果表覆盖规则
type CollisionConfig struct {
	Rules []CollisionRule `yaml:"rules" toml:"rules"`
}

// CollisionRule 一条覆盖规则，同时作用于 (A,B) 和 (B,A)
type CollisionRule struct {
	A      string `yaml:"a" toml:"a"`
	B      string `yaml:"b" toml:"b"`
	Action string `yaml:"action" toml:"action"`
}

// Default 返回默认配置
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:     "Survival",
			Width:     800,
			Height:    600,
			Resizable: true,
		},
		Loop: LoopConfig{
			TicksPerSecond:  60,
			MaxCatchUpTicks: 15,
		},
		Animation: AnimationConfig{
			FrameTicks: components.DefaultFrameTicks,
			GridPolicy: components.GridLegacy.String(),
		},
		Audio: AudioConfig{
			Enabled:    true,
			SampleRate: 48000,
			Volume:     1.0,
		},
		Log: LogConfig{
			Level: "info",
		},
		Assets: AssetsConfig{
			Manifest: "data/resources.yaml",
		},
		Game: GameConfig{
			GridSize:       16,
			RockCount:      8,
			PlayerSpeed:    3,
			BulletSpeed:    6,
			BulletLifetime: 300,
			FireCooldown:   10,
			MuzzleDistance: 32,
		},
	}
}

// Load 从文件加载配置
//
// 按扩展名选择解析器：.yaml/.yml 使用 YAML，.toml 使用 TOML。
// 文件中未出现的字段保留默认值。
//
// 参数:
//   - path: 配置文件路径（如 "data/config.yaml"）
//
// 返回:
//   - *Config: 加载并验证后的配置
//   - error: 读取、解析或验证失败时返回错误
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data, filepath.Ext(path))
}

// Parse 解析配置内容，ext 为文件扩展名（含点号）
func Parse(data []byte, ext string) (*Config, error) {
	cfg := Default()

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse yaml config: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse toml config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 验证配置有效性
//
// 返回的错误包装 ErrInvalidConfig。
func (c *Config) Validate() error {
	checks := []struct {
		ok   bool
		what string
	}{
		{c.Window.Width > 0 && c.Window.Height > 0, "window size must be positive"},
		{c.Loop.TicksPerSecond > 0, "loop.ticksPerSecond must be positive"},
		{c.Loop.MaxCatchUpTicks > 0, "loop.maxCatchUpTicks must be positive"},
		{c.Animation.FrameTicks > 0, "animation.frameTicks must be positive"},
		{c.Audio.SampleRate > 0, "audio.sampleRate must be positive"},
		{c.Audio.Volume >= 0 && c.Audio.Volume <= 1, "audio.volume must be within [0,1]"},
		{c.Game.GridSize >= 3, "game.gridSize must be at least 3"},
		{c.Game.RockCount >= 0, "game.rockCount must not be negative"},
		{c.Game.BulletLifetime > 0, "game.bulletLifetime must be positive"},
		{c.Game.FireCooldown >= 0, "game.fireCooldown must not be negative"},
	}
	for _, chk := range checks {
		if !chk.ok {
			return fmt.Errorf("%w: %s", ErrInvalidConfig, chk.what)
		}
	}

	if _, ok := components.ParseGridPolicy(c.Animation.GridPolicy); !ok {
		return fmt.Errorf("%w: unknown animation.gridPolicy %q", ErrInvalidConfig, c.Animation.GridPolicy)
	}
	if _, err := c.OutcomeTable(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// GridPolicy 返回精灵表行列数计算规则
func (c *Config) GridPolicy() components.GridPolicy {
	p, _ := components.ParseGridPolicy(c.Animation.GridPolicy)
	return p
}

// OutcomeTable 在默认碰撞结果表上应用配置中的覆盖规则
func (c *Config) OutcomeTable() (*components.OutcomeTable, error) {
	table := components.DefaultOutcomeTable()
	for i, r := range c.Collision.Rules {
		a, err := components.ParseKind(r.A)
		if err != nil {
			return nil, fmt.Errorf("collision rule %d: %w", i, err)
		}
		b, err := components.ParseKind(r.B)
		if err != nil {
			return nil, fmt.Errorf("collision rule %d: %w", i, err)
		}
		action, err := components.ParseAction(r.Action)
		if err != nil {
			return nil, fmt.Errorf("collision rule %d: %w", i, err)
		}
		if err := table.Set(a, b, action); err != nil {
			return nil, fmt.Errorf("collision rule %d: %w", i, err)
		}
	}
	return table, table.Validate()
}
