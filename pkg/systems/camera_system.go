package systems

import (
	"github.com/decker502/survival/pkg/geom"
)

// CameraSystem 管理镜头偏移
// 镜头跟随目标，使目标处于视口中央，并限制在世界范围内，不显示世界之外的区域。
//
// Offset 是世界坐标到屏幕坐标的平移量：screen = world + Offset。
type CameraSystem struct {
	Offset   geom.Vec2
	viewport geom.Vec2
	world    geom.Vec2
}

// NewCameraSystem 创建镜头控制系统。
func NewCameraSystem(viewportW, viewportH, worldW, worldH float64) *CameraSystem {
	return &CameraSystem{
		viewport: geom.Vec2{X: viewportW, Y: viewportH},
		world:    geom.Vec2{X: worldW, Y: worldH},
	}
}

// SetViewport 更新视口尺寸（窗口缩放时调用）
func (cs *CameraSystem) SetViewport(w, h float64) {
	cs.viewport = geom.Vec2{X: w, Y: h}
}

// Viewport 返回视口尺寸
func (cs *CameraSystem) Viewport() geom.Vec2 {
	return cs.viewport
}

// Follow 让镜头以 target 为中心，并限制在世界范围内
func (cs *CameraSystem) Follow(target geom.Vec2) {
	cs.Offset = geom.Vec2{
		X: clampOffset(cs.viewport.X/2-target.X, cs.viewport.X, cs.world.X),
		Y: clampOffset(cs.viewport.Y/2-target.Y, cs.viewport.Y, cs.world.Y),
	}
}

// ScreenToWorld 将屏幕坐标转换为世界坐标
func (cs *CameraSystem) ScreenToWorld(p geom.Vec2) geom.Vec2 {
	return p.Sub(cs.Offset)
}

// clampOffset 偏移量限制在 [viewport-world, 0]
// 世界比视口小时固定为 0
func clampOffset(off, viewport, world float64) float64 {
	lo := viewport - world
	if lo > 0 {
		return 0
	}
	return geom.Clamp(off, lo, 0)
}
