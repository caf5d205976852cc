package components

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Texture 已加载的图像及其像素尺寸
// Image 为渲染句柄，无头运行（测试、模拟）时可以为 nil
type Texture struct {
	Image  *ebiten.Image
	Path   string
	Width  int
	Height int
}

// NewTexture 根据 Ebitengine 图像创建纹理
func NewTexture(path string, img *ebiten.Image) *Texture {
	b := img.Bounds()
	return &Texture{
		Image:  img,
		Path:   path,
		Width:  b.Dx(),
		Height: b.Dy(),
	}
}

// Bounds 返回整张纹理的像素矩形
func (t *Texture) Bounds() image.Rectangle {
	return image.Rect(0, 0, t.Width, t.Height)
}

// SubImage 返回纹理的一个子区域，Image 为 nil 时返回 nil
func (t *Texture) SubImage(r image.Rectangle) *ebiten.Image {
	if t.Image == nil {
		return nil
	}
	return t.Image.SubImage(r).(*ebiten.Image)
}
