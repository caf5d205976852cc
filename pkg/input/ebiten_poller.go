package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var polledButtons = []ebiten.MouseButton{
	ebiten.MouseButtonLeft,
	ebiten.MouseButtonRight,
	ebiten.MouseButtonMiddle,
}

// EbitenPoller 在 Ebitengine 的 Update 中读取输入并写入 State
type EbitenPoller struct {
	state *State
	keys  []ebiten.Key
}

// NewEbitenPoller 创建输入轮询器
func NewEbitenPoller(state *State) *EbitenPoller {
	return &EbitenPoller{state: state}
}

// Poll 读取当前帧的输入，screenW/screenH 为逻辑屏幕尺寸
// 必须在 Ebitengine 的 Update 中调用
func (p *EbitenPoller) Poll(screenW, screenH int) {
	p.keys = inpututil.AppendPressedKeys(p.keys[:0])
	p.state.SetPressedKeys(p.keys)

	for _, b := range polledButtons {
		p.state.SetMouseButton(b, ebiten.IsMouseButtonPressed(b))
	}

	x, y := ebiten.CursorPosition()
	p.state.SetMousePosition(x, y)
	p.state.SetMouseInWindow(ebiten.IsFocused() && x >= 0 && y >= 0 && x < screenW && y < screenH)

	// Ebitengine 中向上滚动为正，这里转换为朝向用户为正
	if _, dy := ebiten.Wheel(); dy != 0 {
		p.state.AddWheel(-dy)
	}
}
