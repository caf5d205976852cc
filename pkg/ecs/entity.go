package ecs

import (
	"math"

	"github.com/decker502/survival/pkg/components"
	"github.com/decker502/survival/pkg/geom"
)

// EntityID 是实体的唯一标识符
type EntityID uint64

// InvalidEntity 0 保留为无效 ID
const InvalidEntity EntityID = 0

// Behavior 实体每个逻辑 tick 的附加行为
// 在精灵表动画推进之后调用，无法跳过动画推进
type Behavior interface {
	TimeStep(e *Entity)
}

// BehaviorFunc 允许普通函数作为 Behavior 使用
type BehaviorFunc func(e *Entity)

// TimeStep 调用 f(e)
func (f BehaviorFunc) TimeStep(e *Entity) { f(e) }

// Entity 场景中的一个可绘制对象
//
// 视觉表现二选一：离散图像列表（Sprite）或精灵表动画（Sheet）。
// 添加精灵表后实体永久切换到精灵表模式。
type Entity struct {
	ID EntityID

	Position         geom.Vec2 // 像素，绘制时图像中心点落在此处
	PreviousPosition geom.Vec2 // 最近一次 Move 之前的位置，供 RevertPosition 使用
	Rotation         float64   // 度，只影响渲染，不影响包围盒

	Sprite *components.SpriteComponent
	Sheet  *components.SpriteSheet

	Collision components.CollisionComponent
	Behavior  Behavior

	marked bool
}

// NewEntity 创建位于 (x, y) 的实体，默认可碰撞
func NewEntity(x, y float64, kind components.Kind) *Entity {
	p := geom.Vec2{X: x, Y: y}
	return &Entity{
		Position:         p,
		PreviousPosition: p,
		Sprite:           components.NewSpriteComponent(),
		Collision:        components.CollisionComponent{Kind: kind, Collidable: true},
	}
}

// Kind 返回实体类别
func (e *Entity) Kind() components.Kind { return e.Collision.Kind }

// Collidable 是否参与碰撞检测
func (e *Entity) Collidable() bool { return e.Collision.Collidable }

// SetCollidable 开启或关闭碰撞检测
func (e *Entity) SetCollidable(enabled bool) { e.Collision.Collidable = enabled }

// SetMarkedForDestruction 标记或取消标记，实体在本 tick 末尾的清理中被移除
func (e *Entity) SetMarkedForDestruction(m bool) { e.marked = m }

// MarkedForDestruction 是否已被标记删除
func (e *Entity) MarkedForDestruction() bool { return e.marked }

// SetPosition 直接设置位置，不记录上一位置
func (e *Entity) SetPosition(x, y float64) {
	e.Position = geom.Vec2{X: x, Y: y}
}

// IncrementPosition 平移位置，不记录上一位置
func (e *Entity) IncrementPosition(dx, dy float64) {
	e.Position.X += dx
	e.Position.Y += dy
}

// Move 平移位置，并记录移动前的位置
func (e *Entity) Move(dx, dy float64) {
	e.PreviousPosition = e.Position
	e.IncrementPosition(dx, dy)
}

// MoveInDirection 沿 deg 方向移动 dist 像素
func (e *Entity) MoveInDirection(deg, dist float64) {
	d := geom.FromDegrees(deg).Scale(dist)
	e.Move(d.X, d.Y)
}

// RevertPosition 撤销最近一次 Move
func (e *Entity) RevertPosition() {
	e.Position = e.PreviousPosition
}

// RadiansTo 返回从实体指向 p 的角度（弧度）
func (e *Entity) RadiansTo(p geom.Vec2) float64 {
	return math.Atan2(p.Y-e.Position.Y, p.X-e.Position.X)
}

// DegreesTo 返回从实体指向 p 的角度（度）
func (e *Entity) DegreesTo(p geom.Vec2) float64 {
	return e.RadiansTo(p) * 180 / math.Pi
}

// DegreesToEntity 返回指向另一个实体的角度（度）
func (e *Entity) DegreesToEntity(o *Entity) float64 {
	return e.DegreesTo(o.Position)
}

// RadiansToEntity 返回指向另一个实体的角度（弧度）
func (e *Entity) RadiansToEntity(o *Entity) float64 {
	return e.RadiansTo(o.Position)
}

// AddTexture 追加一张图像，中心点取图像中心
func (e *Entity) AddTexture(tex *components.Texture) {
	e.AddTextureWithCenter(tex, geom.Vec2{
		X: float64((tex.Width + 1) / 2),
		Y: float64((tex.Height + 1) / 2),
	})
}

// AddTextureWithCenter 追加一张图像并指定中心点
func (e *Entity) AddTextureWithCenter(tex *components.Texture, center geom.Vec2) {
	if e.Sprite == nil {
		e.Sprite = components.NewSpriteComponent()
	}
	e.Sprite.Add(tex, center)
}

// RemoveTexture 移除图像列表中的一项，越界忽略
func (e *Entity) RemoveTexture(index int) {
	if e.Sprite != nil {
		e.Sprite.Remove(index)
	}
}

// NumberOfTextures 返回图像列表长度
func (e *Entity) NumberOfTextures() int {
	if e.Sprite == nil {
		return 0
	}
	return len(e.Sprite.Frames)
}

// SetActiveTexture 选择激活的图像，索引按列表长度回绕
func (e *Entity) SetActiveTexture(i int) {
	if e.Sprite != nil {
		e.Sprite.SetActive(i)
	}
}

// ActiveTexture 返回激活图像的索引，没有图像时为 -1
func (e *Entity) ActiveTexture() int {
	if e.Sprite == nil {
		return -1
	}
	return e.Sprite.Active
}

// AddSpriteSheet 切换到精灵表模式
func (e *Entity) AddSpriteSheet(sheet *components.SpriteSheet) {
	e.Sheet = sheet
}

// UsesSpriteSheet 是否处于精灵表模式
func (e *Entity) UsesSpriteSheet() bool { return e.Sheet != nil }

// HasVisual 是否有可绘制的内容
func (e *Entity) HasVisual() bool {
	if e.Sheet != nil {
		return true
	}
	_, ok := e.currentFrame()
	return ok
}

func (e *Entity) currentFrame() (components.Frame, bool) {
	if e.Sprite == nil {
		return components.Frame{}, false
	}
	return e.Sprite.Current()
}

// Center 返回当前视觉内容的中心点（相对左上角）
func (e *Entity) Center() geom.Vec2 {
	if e.Sheet != nil {
		return e.Sheet.Center()
	}
	if f, ok := e.currentFrame(); ok {
		return f.Center
	}
	return geom.Vec2{}
}

// Dimensions 返回当前视觉内容的像素尺寸
func (e *Entity) Dimensions() geom.Vec2 {
	if e.Sheet != nil {
		return e.Sheet.Size()
	}
	if f, ok := e.currentFrame(); ok && f.Texture != nil {
		return geom.Vec2{X: float64(f.Texture.Width), Y: float64(f.Texture.Height)}
	}
	return geom.Vec2{}
}

// BoundingBox 返回轴对齐包围盒，忽略旋转
func (e *Entity) BoundingBox() geom.Rect {
	topLeft := e.Position.Sub(e.Center())
	dim := e.Dimensions()
	return geom.Rect{X: topLeft.X, Y: topLeft.Y, W: dim.X, H: dim.Y}
}

// SetupAnimation 配置精灵表动画，非精灵表模式下无效
func (e *Entity) SetupAnimation(enabled, animateAll bool) {
	if e.Sheet != nil {
		e.Sheet.Setup(enabled, animateAll)
	}
}

// DoTimeStep 每个逻辑 tick 对每个实体调用一次
// 先推进精灵表动画，再执行附加行为
func (e *Entity) DoTimeStep() {
	if e.Sheet != nil {
		e.Sheet.Advance()
	}
	if e.Behavior != nil {
		e.Behavior.TimeStep(e)
	}
}
