// Package render 定义游戏的绘制接口
//
// 游戏通过 Drawer 提交绘制请求。EbitenRenderer 把请求排队，按深度稳定排序后
// 用 Ebitengine 绘制；Recorder 只记录请求，用于无头运行和测试。
package render

import (
	"image"
	"image/color"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/survival/pkg/components"
	"github.com/decker502/survival/pkg/ecs"
	"github.com/decker502/survival/pkg/geom"
)

// Font 可以测量和绘制字符串的字体
type Font interface {
	// Measure 返回字符串在缩放为 1 时的像素宽高
	Measure(s string) (w, h float64)
	// Draw 以 (x, y) 为左上角绘制字符串
	Draw(dst *ebiten.Image, s string, x, y float64, clr color.Color, scale float64)
}

// Drawer 绘制请求的接收方
//
// depth 越小越先绘制（位于下层），相同深度按提交顺序绘制。
type Drawer interface {
	// SetWorldOffset 设置之后提交的请求使用的平移量（屏幕坐标 = 世界坐标 + 偏移）
	SetWorldOffset(x, y float64)
	// DrawEntity 绘制实体当前的图像，tint 为颜色缩放
	DrawEntity(e *ecs.Entity, tint color.Color, depth float64)
	// DrawLines 每两个点组成一条线段，颜色取线段起点对应的颜色
	DrawLines(points []geom.Vec2, colours []color.Color, depth float64)
	// DrawText 在 pos 处绘制文字
	DrawText(f Font, s string, pos geom.Vec2, clr color.Color, depth, scale float64)
}

// CommandKind 绘制请求类型
type CommandKind int

const (
	CommandEntity CommandKind = iota
	CommandLines
	CommandText
)

// Command 一次绘制请求，提交时复制实体的绘制状态
type Command struct {
	Kind   CommandKind
	Depth  float64
	Offset geom.Vec2

	// CommandEntity
	Entity   *ecs.Entity
	Texture  *components.Texture
	Source   image.Rectangle
	Position geom.Vec2
	Center   geom.Vec2
	Rotation float64

	// CommandLines
	Points  []geom.Vec2
	Colours []color.Color

	// CommandText
	Font  Font
	Text  string
	Scale float64

	Colour color.Color // 实体的颜色缩放或文字颜色
}

// Recorder 记录绘制请求但不绘制
type Recorder struct {
	offset   geom.Vec2
	commands []Command
}

// NewRecorder 创建空的记录器
func NewRecorder() *Recorder {
	return &Recorder{}
}

// SetWorldOffset 实现 Drawer
func (r *Recorder) SetWorldOffset(x, y float64) {
	r.offset = geom.Vec2{X: x, Y: y}
}

// WorldOffset 返回当前平移量
func (r *Recorder) WorldOffset() geom.Vec2 {
	return r.offset
}

// DrawEntity 实现 Drawer，没有图像的实体被忽略
func (r *Recorder) DrawEntity(e *ecs.Entity, tint color.Color, depth float64) {
	cmd := Command{
		Kind:     CommandEntity,
		Depth:    depth,
		Offset:   r.offset,
		Entity:   e,
		Position: e.Position,
		Center:   e.Center(),
		Rotation: e.Rotation,
		Colour:   tint,
	}
	switch {
	case e.Sheet != nil:
		cmd.Texture = e.Sheet.Texture
		cmd.Source = e.Sheet.SourceRect()
	case e.HasVisual():
		f, _ := e.Sprite.Current()
		cmd.Texture = f.Texture
		if f.Texture != nil {
			cmd.Source = f.Texture.Bounds()
		}
	default:
		return
	}
	r.commands = append(r.commands, cmd)
}

// DrawLines 实现 Drawer
func (r *Recorder) DrawLines(points []geom.Vec2, colours []color.Color, depth float64) {
	r.commands = append(r.commands, Command{
		Kind:    CommandLines,
		Depth:   depth,
		Offset:  r.offset,
		Points:  slices.Clone(points),
		Colours: slices.Clone(colours),
	})
}

// DrawText 实现 Drawer
func (r *Recorder) DrawText(f Font, s string, pos geom.Vec2, clr color.Color, depth, scale float64) {
	r.commands = append(r.commands, Command{
		Kind:     CommandText,
		Depth:    depth,
		Offset:   r.offset,
		Position: pos,
		Font:     f,
		Text:     s,
		Scale:    scale,
		Colour:   clr,
	})
}

// Commands 返回按提交顺序排列的请求
func (r *Recorder) Commands() []Command {
	return r.commands
}

// Sorted 返回按深度稳定排序后的请求
func (r *Recorder) Sorted() []Command {
	sorted := slices.Clone(r.commands)
	slices.SortStableFunc(sorted, func(a, b Command) int {
		switch {
		case a.Depth < b.Depth:
			return -1
		case a.Depth > b.Depth:
			return 1
		}
		return 0
	})
	return sorted
}

// Reset 清空请求并把平移量归零
func (r *Recorder) Reset() {
	r.commands = r.commands[:0]
	r.offset = geom.Vec2{}
}
