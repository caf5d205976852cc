// Package input 保存键盘与鼠标状态
//
// 事件可以从任意 goroutine 写入 State；游戏循环每个逻辑 tick 调用一次
// Snapshot() 取得不可变的副本。两次快照之间对同一按键的多次写入以最后一次为准。
package input

import (
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

// State 可并发写入的输入状态
type State struct {
	mu       sync.Mutex
	keys     map[ebiten.Key]bool
	buttons  map[ebiten.MouseButton]bool
	mouseX   int
	mouseY   int
	wheel    float64
	inWindow bool
}

// NewState 创建空的输入状态
func NewState() *State {
	return &State{
		keys:    make(map[ebiten.Key]bool),
		buttons: make(map[ebiten.MouseButton]bool),
	}
}

// SetKey 设置单个按键的状态
func (s *State) SetKey(k ebiten.Key, down bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if down {
		s.keys[k] = true
	} else {
		delete(s.keys, k)
	}
}

// SetPressedKeys 用当前按下的全部按键替换键盘状态
func (s *State) SetPressedKeys(keys []ebiten.Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.keys)
	for _, k := range keys {
		s.keys[k] = true
	}
}

// SetMouseButton 设置鼠标按键状态
func (s *State) SetMouseButton(b ebiten.MouseButton, down bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if down {
		s.buttons[b] = true
	} else {
		delete(s.buttons, b)
	}
}

// SetMousePosition 设置鼠标的屏幕坐标
func (s *State) SetMousePosition(x, y int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mouseX, s.mouseY = x, y
}

// SetMouseInWindow 设置鼠标是否在窗口内
func (s *State) SetMouseInWindow(in bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inWindow = in
}

// AddWheel 累加滚轮转动量，正值表示朝向用户方向滚动
func (s *State) AddWheel(delta float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wheel += delta
}

// Snapshot 复制当前状态
// 滚轮转动量的整数部分被取出并清零，小数部分留到下一次快照
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make(map[ebiten.Key]bool, len(s.keys))
	for k := range s.keys {
		keys[k] = true
	}
	buttons := make(map[ebiten.MouseButton]bool, len(s.buttons))
	for b := range s.buttons {
		buttons[b] = true
	}

	whole := int(s.wheel)
	s.wheel -= float64(whole)

	return Snapshot{
		keys:     keys,
		buttons:  buttons,
		mouseX:   s.mouseX,
		mouseY:   s.mouseY,
		wheel:    whole,
		inWindow: s.inWindow,
	}
}

// Snapshot 某一逻辑 tick 开始时的输入状态，只读
type Snapshot struct {
	keys     map[ebiten.Key]bool
	buttons  map[ebiten.MouseButton]bool
	mouseX   int
	mouseY   int
	wheel    int
	inWindow bool
}

// KeyDown 按键是否处于按下状态
func (s Snapshot) KeyDown(k ebiten.Key) bool { return s.keys[k] }

// MouseButtonDown 鼠标按键是否处于按下状态
func (s Snapshot) MouseButtonDown(b ebiten.MouseButton) bool { return s.buttons[b] }

// MouseX 鼠标的屏幕 X 坐标
func (s Snapshot) MouseX() int { return s.mouseX }

// MouseY 鼠标的屏幕 Y 坐标
func (s Snapshot) MouseY() int { return s.mouseY }

// WheelRotation 自上一次快照以来滚轮转过的格数
func (s Snapshot) WheelRotation() int { return s.wheel }

// MouseInWindow 鼠标是否在窗口内
func (s Snapshot) MouseInWindow() bool { return s.inWindow }
