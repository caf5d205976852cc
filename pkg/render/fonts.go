package render

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// TextFont 基于 TrueType/OpenType 字体的 Font
type TextFont struct {
	Face *text.GoTextFace
}

// NewTextFont 创建指定字号的字体
func NewTextFont(source *text.GoTextFaceSource, size float64) *TextFont {
	return &TextFont{Face: &text.GoTextFace{Source: source, Size: size}}
}

// Measure 实现 Font
func (f *TextFont) Measure(s string) (w, h float64) {
	return text.Measure(s, f.Face, f.Face.Size)
}

// Draw 实现 Font
func (f *TextFont) Draw(dst *ebiten.Image, s string, x, y float64, clr color.Color, scale float64) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, s, f.Face, op)
}

// Glyph 位图字体中的一个字符
type Glyph struct {
	Page     int
	Rect     image.Rectangle // 字符在图集页中的区域
	XOffset  int
	YOffset  int
	XAdvance int
}

// BitmapFont AngelCode 位图字体
// 字符图像来自一个或多个图集页
type BitmapFont struct {
	Pages      map[int]*ebiten.Image
	Glyphs     map[rune]Glyph
	Kerning    map[[2]rune]int
	LineHeight int
}

// NewBitmapFont 创建空的位图字体
func NewBitmapFont(lineHeight int) *BitmapFont {
	return &BitmapFont{
		Pages:      make(map[int]*ebiten.Image),
		Glyphs:     make(map[rune]Glyph),
		Kerning:    make(map[[2]rune]int),
		LineHeight: lineHeight,
	}
}

// advance 返回 prev 之后绘制 r 时的水平前进量
func (f *BitmapFont) advance(prev, r rune, g Glyph) int {
	return g.XAdvance + f.Kerning[[2]rune{prev, r}]
}

// Measure 实现 Font，字体中不存在的字符被跳过
func (f *BitmapFont) Measure(s string) (w, h float64) {
	var prev rune
	total := 0
	for _, r := range s {
		g, ok := f.Glyphs[r]
		if !ok {
			continue
		}
		total += f.advance(prev, r, g)
		prev = r
	}
	return float64(total), float64(f.LineHeight)
}

// Draw 实现 Font
func (f *BitmapFont) Draw(dst *ebiten.Image, s string, x, y float64, clr color.Color, scale float64) {
	var prev rune
	cx := 0
	for _, r := range s {
		g, ok := f.Glyphs[r]
		if !ok {
			continue
		}
		kern := f.Kerning[[2]rune{prev, r}]
		if page := f.Pages[g.Page]; page != nil && !g.Rect.Empty() {
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(float64(cx+kern+g.XOffset), float64(g.YOffset))
			op.GeoM.Scale(scale, scale)
			op.GeoM.Translate(x, y)
			op.ColorScale.ScaleWithColor(clr)
			dst.DrawImage(page.SubImage(g.Rect).(*ebiten.Image), op)
		}
		cx += g.XAdvance + kern
		prev = r
	}
}
