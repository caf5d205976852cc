package engine

import (
	"github.com/decker502/survival/pkg/components"
	"github.com/decker502/survival/pkg/game"
	"github.com/decker502/survival/pkg/input"
	"github.com/decker502/survival/pkg/render"
)

// Resources 游戏初始化时可用的资源加载接口
type Resources interface {
	LoadTexture(path string) (*components.Texture, error)
	LoadFont(desc game.FontDescriptor) (render.Font, error)
	Audio() game.AudioPlayer
}

// Game 由引擎驱动的游戏
//
// Init 在循环开始前调用一次；Logic 每个逻辑 tick 调用一次；Render 每帧调用一次。
// 三者都在运行循环的 goroutine 上调用。
type Game interface {
	Init(res Resources) error
	Logic(in input.Snapshot)
	Render(d render.Drawer)
}

// Runner 把 Game 适配为 Driver 的 Host
// 每个逻辑 tick 从 Input 取一次快照
type Runner struct {
	Game   Game
	Input  *input.State
	Drawer render.Drawer
}

// NewRunner 创建 Runner
func NewRunner(g Game, in *input.State, d render.Drawer) *Runner {
	return &Runner{Game: g, Input: in, Drawer: d}
}

// LogicTick 实现 Host
func (r *Runner) LogicTick() {
	r.Game.Logic(r.Input.Snapshot())
}

// RenderFrame 实现 Host
func (r *Runner) RenderFrame() {
	r.Game.Render(r.Drawer)
}
