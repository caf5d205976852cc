package components

import "github.com/decker502/survival/pkg/geom"

// Frame 纹理列表中的一项：图像及其中心点
// Center 相对于图像左上角，实体位置处绘制的就是该点
type Frame struct {
	Texture *Texture
	Center  geom.Vec2
}

// SpriteComponent 存储实体的离散图像列表以及当前激活的图像
type SpriteComponent struct {
	Frames []Frame
	Active int // 当前激活的索引，列表为空时为 -1
}

// NewSpriteComponent 创建空的图像列表
func NewSpriteComponent() *SpriteComponent {
	return &SpriteComponent{Active: -1}
}

// Add 追加一张图像；若这是第一张则自动激活
func (s *SpriteComponent) Add(tex *Texture, center geom.Vec2) {
	s.Frames = append(s.Frames, Frame{Texture: tex, Center: center})
	if len(s.Frames) == 1 {
		s.SetActive(0)
	}
}

// Remove 移除索引处的图像，后面的图像整体前移
// 越界索引被忽略
func (s *SpriteComponent) Remove(index int) {
	if index < 0 || index >= len(s.Frames) {
		return
	}
	s.Frames = append(s.Frames[:index], s.Frames[index+1:]...)
	if s.Active == index || s.Active >= len(s.Frames) {
		s.SetActive(index)
	}
}

// SetActive 设置激活的图像，索引按列表长度回绕
func (s *SpriteComponent) SetActive(i int) {
	if len(s.Frames) == 0 {
		s.Active = -1
		return
	}
	s.Active = geom.WrapIndex(i, len(s.Frames))
}

// Current 返回当前激活的图像
func (s *SpriteComponent) Current() (Frame, bool) {
	if s.Active < 0 || s.Active >= len(s.Frames) {
		return Frame{}, false
	}
	return s.Frames[s.Active], true
}
