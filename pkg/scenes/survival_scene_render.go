package scenes

import (
	"fmt"
	"image/color"
	"strconv"

	"github.com/decker502/survival/pkg/geom"
	"github.com/decker502/survival/pkg/render"
)

// 绘制深度，越小越靠下
const (
	depthTiles    = -1.0
	depthEntities = 0.0
	depthHUDText  = 0.1
	depthLines    = 0.5
	depthBanner   = 1.0
)

var (
	// 屏幕角落的固定线段，世界坐标和屏幕坐标各画一次
	cornerLine   = []geom.Vec2{{X: 0, Y: 0}, {X: 100, Y: 100}}
	lineColours  = []color.Color{color.White, color.NRGBA{R: 255, A: 255}}
	hudColour    = color.NRGBA{R: 255, G: 128, A: 179}
	bannerColour = color.NRGBA{R: 255, G: 64, B: 64, A: 255}

	hudDirectionPos = geom.Vec2{X: 20, Y: 120}
	hudWheelPos     = geom.Vec2{X: 20, Y: 68}
	hudMousePos     = geom.Vec2{X: 20, Y: 20}
)

// GameOverText 玩家被摧毁后显示的文字
const GameOverText = "GAME OVER"

// Render 实现 engine.Game
func (s *SurvivalScene) Render(d render.Drawer) {
	d.SetWorldOffset(s.camera.Offset.X, s.camera.Offset.Y)

	for _, t := range s.tiles {
		d.DrawEntity(t, color.White, depthTiles)
	}
	for _, e := range s.em.Entities() {
		d.DrawEntity(e, color.White, depthEntities)
	}

	d.DrawLines(cornerLine, lineColours, depthLines)
	player, ok := s.Player()
	if ok {
		d.DrawLines([]geom.Vec2{s.mouseWorld, player.Position}, lineColours, depthLines)
	}

	// HUD 不随镜头移动
	d.SetWorldOffset(0, 0)
	d.DrawLines(cornerLine, lineColours, depthLines)
	s.drawHUD(d, ok)
}

func (s *SurvivalScene) drawHUD(d render.Drawer, playerAlive bool) {
	if playerAlive {
		d.DrawText(s.assets.hudFont, strconv.FormatFloat(s.facing, 'f', 1, 64), hudDirectionPos, hudColour, depthHUDText, 1)
	}
	d.DrawText(s.assets.hudFont, strconv.Itoa(s.wheelTicks), hudWheelPos, hudColour, depthHUDText, 1)
	d.DrawText(s.assets.infoFont, fmt.Sprintf("%.0f:%.0f", s.mouseWorld.X, s.mouseWorld.Y), hudMousePos, hudColour, depthHUDText, 1)

	if !s.alive {
		w, h := s.assets.hudFont.Measure(GameOverText)
		vp := s.camera.Viewport()
		pos := geom.Vec2{X: (vp.X - w) / 2, Y: (vp.Y - h) / 2}
		d.DrawText(s.assets.hudFont, GameOverText, pos, bannerColour, depthBanner, 1)
	}
}
