package scenes

import (
	"github.com/decker502/survival/pkg/components"
	"github.com/decker502/survival/pkg/ecs"
	"github.com/decker502/survival/pkg/geom"
)

// bulletBehavior 子弹每 tick 沿固定方向移动，寿命耗尽后自毁
type bulletBehavior struct {
	direction float64 // 度
	speed     float64
	life      *components.Lifetime
}

func (b *bulletBehavior) TimeStep(e *ecs.Entity) {
	e.MoveInDirection(b.direction, b.speed)
	if b.life.Tick() {
		e.SetMarkedForDestruction(true)
	}
}

// newBullet 在 pos 处创建沿 direction 飞行的子弹
func newBullet(pos geom.Vec2, direction, speed float64, lifetime int, tex *components.Texture) *ecs.Entity {
	e := ecs.NewEntity(pos.X, pos.Y, components.KindBullet)
	e.AddTexture(tex)
	e.Rotation = direction + 90
	e.Behavior = &bulletBehavior{direction: direction, speed: speed, life: components.NewLifetime(lifetime)}
	return e
}

// newWall 创建墙块，位置为左上角
func newWall(x, y float64, tex *components.Texture) *ecs.Entity {
	e := ecs.NewEntity(x, y, components.KindWall)
	e.AddTextureWithCenter(tex, geom.Vec2{})
	return e
}

// newTile 创建地砖，只绘制，不参与碰撞
func newTile(x, y float64, tex *components.Texture) *ecs.Entity {
	e := ecs.NewEntity(x, y, components.KindOther)
	e.SetCollidable(false)
	e.AddTextureWithCenter(tex, geom.Vec2{})
	return e
}

// newRock 创建精灵表动画的陨石
func newRock(x, y float64, sheet *components.SpriteSheet, col, row int) *ecs.Entity {
	e := ecs.NewEntity(x, y, components.KindOther)
	e.AddSpriteSheet(sheet)
	sheet.SetColumn(col)
	sheet.SetRow(row)
	e.SetupAnimation(true, true)
	return e
}

// newPlayer 创建玩家飞船，中心点为图像中心
func newPlayer(x, y float64, tex *components.Texture) *ecs.Entity {
	e := ecs.NewEntity(x, y, components.KindPlayer)
	e.AddTextureWithCenter(tex, geom.Vec2{X: float64(tex.Width / 2), Y: float64(tex.Height / 2)})
	return e
}
