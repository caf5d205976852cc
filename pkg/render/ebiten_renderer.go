package render

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// LineWidth 线段宽度（像素）
const LineWidth = 1

// EbitenRenderer 把绘制请求排队，在 Flush 时按深度绘制到屏幕
type EbitenRenderer struct {
	Recorder
}

// NewEbitenRenderer 创建渲染器
func NewEbitenRenderer() *EbitenRenderer {
	return &EbitenRenderer{}
}

// Flush 按深度顺序绘制所有请求并清空队列
// 必须在 Ebitengine 的 Draw 中调用
func (r *EbitenRenderer) Flush(dst *ebiten.Image) {
	for _, cmd := range r.Sorted() {
		switch cmd.Kind {
		case CommandEntity:
			drawEntity(dst, cmd)
		case CommandLines:
			drawLines(dst, cmd)
		case CommandText:
			if cmd.Font != nil {
				clr := cmd.Colour
				if clr == nil {
					clr = color.White
				}
				cmd.Font.Draw(dst, cmd.Text, cmd.Position.X+cmd.Offset.X, cmd.Position.Y+cmd.Offset.Y, clr, cmd.Scale)
			}
		}
	}
	r.Reset()
}

func drawEntity(dst *ebiten.Image, cmd Command) {
	if cmd.Texture == nil {
		return
	}
	img := cmd.Texture.SubImage(cmd.Source)
	if img == nil {
		return
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-cmd.Center.X, -cmd.Center.Y)
	op.GeoM.Rotate(cmd.Rotation * math.Pi / 180)
	op.GeoM.Translate(cmd.Position.X+cmd.Offset.X, cmd.Position.Y+cmd.Offset.Y)
	if cmd.Colour != nil {
		op.ColorScale.ScaleWithColor(cmd.Colour)
	}
	dst.DrawImage(img, op)
}

func drawLines(dst *ebiten.Image, cmd Command) {
	for i := 0; i+1 < len(cmd.Points); i += 2 {
		var clr color.Color = color.White
		if i < len(cmd.Colours) && cmd.Colours[i] != nil {
			clr = cmd.Colours[i]
		}
		a, b := cmd.Points[i].Add(cmd.Offset), cmd.Points[i+1].Add(cmd.Offset)
		vector.StrokeLine(dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), LineWidth, clr, true)
	}
}
