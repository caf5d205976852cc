package scenes

import (
	"fmt"

	"github.com/decker502/survival/pkg/components"
	"github.com/decker502/survival/pkg/engine"
	"github.com/decker502/survival/pkg/game"
	"github.com/decker502/survival/pkg/render"
)

// 资源 ID，对应 data/resources.yaml 中的 survival 组
const (
	ImageAsteroid  = "IMAGE_ASTEROID"
	ImageWall      = "IMAGE_SOFT_ROCK"
	ImageGrass     = "IMAGE_GRASS_TILE"
	ImageBullet    = "IMAGE_BULLET"
	ImageSpaceship = "IMAGE_SPACESHIP"

	SoundGun       = "SOUND_GUN"
	SoundLaser     = "SOUND_LASER"
	SoundExplosion = "SOUND_EXPLOSION"

	FontHUD  = "FONT_HUD"
	FontInfo = "FONT_INFO"
)

// 陨石精灵表单元格大小
const (
	AsteroidCellWidth  = 64
	AsteroidCellHeight = 64
)

// sound 音效下标，注册顺序与 soundIDs 一致
type sound int

const (
	soundGun sound = iota
	soundLaser
	soundExplosion
	soundCount
)

var soundIDs = [soundCount]string{SoundGun, SoundLaser, SoundExplosion}

// survivalAssets 场景使用的纹理和字体
type survivalAssets struct {
	asteroid  *components.Texture
	wall      *components.Texture
	grass     *components.Texture
	bullet    *components.Texture
	spaceship *components.Texture

	hudFont  render.Font
	infoFont render.Font
}

// loadAssets 加载全部纹理和字体，任何失败都返回错误
func loadAssets(res engine.Resources) (*survivalAssets, error) {
	a := &survivalAssets{}
	textures := []struct {
		id  string
		dst **components.Texture
	}{
		{ImageAsteroid, &a.asteroid},
		{ImageWall, &a.wall},
		{ImageGrass, &a.grass},
		{ImageBullet, &a.bullet},
		{ImageSpaceship, &a.spaceship},
	}
	for _, t := range textures {
		tex, err := res.LoadTexture(t.id)
		if err != nil {
			return nil, fmt.Errorf("load texture %s: %w", t.id, err)
		}
		*t.dst = tex
	}
	if a.grass.Width <= 0 || a.grass.Height <= 0 {
		return nil, fmt.Errorf("texture %s has empty size", ImageGrass)
	}

	var err error
	if a.hudFont, err = res.LoadFont(game.FontDescriptor{Path: FontHUD}); err != nil {
		return nil, fmt.Errorf("load font %s: %w", FontHUD, err)
	}
	if a.infoFont, err = res.LoadFont(game.FontDescriptor{Path: FontInfo}); err != nil {
		return nil, fmt.Errorf("load font %s: %w", FontInfo, err)
	}
	return a, nil
}
