package scenes

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/decker502/survival/pkg/components"
	"github.com/decker502/survival/pkg/ecs"
	"github.com/decker502/survival/pkg/engine"
	"github.com/decker502/survival/pkg/geom"
	"github.com/decker502/survival/pkg/systems"
)

// Init 实现 engine.Game
// 加载资源并搭建世界：地砖、围墙、陨石和玩家
func (s *SurvivalScene) Init(res engine.Resources) error {
	s.initAudio(res)

	assets, err := loadAssets(res)
	if err != nil {
		return fmt.Errorf("survival init: %w", err)
	}
	s.assets = assets

	table, err := s.cfg.OutcomeTable()
	if err != nil {
		return fmt.Errorf("survival init: %w", err)
	}

	seed := s.cfg.Game.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	s.rng = rand.New(rand.NewSource(seed))

	g := s.cfg.Game
	tileW, tileH := float64(assets.grass.Width), float64(assets.grass.Height)
	s.worldSize = geom.Vec2{X: float64(g.GridSize) * tileW, Y: float64(g.GridSize) * tileH}

	s.em.Clear()
	s.physics = systems.NewPhysicsSystem(s.em, table, s)
	s.camera = systems.NewCameraSystem(
		float64(s.cfg.Window.Width), float64(s.cfg.Window.Height),
		s.worldSize.X, s.worldSize.Y,
	)

	if err := s.spawnRocks(); err != nil {
		return fmt.Errorf("survival init: %w", err)
	}
	s.buildTiles()
	s.buildWalls()

	player := newPlayer(s.worldSize.X/2, s.worldSize.Y/2, assets.spaceship)
	s.em.Add(player)
	s.player = ecs.RefTo(player)
	s.alive = true
	s.cooldownTimer = 0
	s.camera.Follow(player.Position)

	s.log.Infof("world %.0fx%.0f, %d entities, seed %d", s.worldSize.X, s.worldSize.Y, s.em.Len(), seed)
	return nil
}

// initAudio 注册音效并初始化音频
// 初始化失败不影响游戏，音频管理器会自行禁用
func (s *SurvivalScene) initAudio(res engine.Resources) {
	s.audio = res.Audio()
	if s.audio == nil || !s.cfg.Audio.Enabled {
		s.audio = nil
		return
	}
	for i, id := range soundIDs {
		s.sounds[i] = s.audio.AddNewAudioFile(id)
	}
	if err := s.audio.Initialise(); err != nil {
		s.log.Debugf("audio initialise: %v", err)
	}
}

// spawnRocks 在离边界两格以内的随机位置放置陨石，起始帧随机
func (s *SurvivalScene) spawnRocks() error {
	g := s.cfg.Game
	tileW, tileH := float64(s.assets.grass.Width), float64(s.assets.grass.Height)
	span := float64(g.GridSize - 4)

	for i := 0; i < g.RockCount; i++ {
		x := (s.rng.Float64()*span + 2) * tileW
		y := (s.rng.Float64()*span + 2) * tileH

		sheet, err := components.NewSpriteSheet(s.assets.asteroid, AsteroidCellWidth, AsteroidCellHeight, s.cfg.GridPolicy())
		if err != nil {
			return fmt.Errorf("rock sprite sheet: %w", err)
		}
		sheet.FrameTicks = s.cfg.Animation.FrameTicks
		s.em.Add(newRock(x, y, sheet, s.rng.Intn(8), s.rng.Intn(8)))
	}
	return nil
}

// buildTiles 铺满 GridSize x GridSize 的地砖
func (s *SurvivalScene) buildTiles() {
	n := s.cfg.Game.GridSize
	tileW, tileH := float64(s.assets.grass.Width), float64(s.assets.grass.Height)

	s.tiles = make([]*ecs.Entity, 0, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			s.tiles = append(s.tiles, newTile(tileW*float64(i), tileH*float64(j), s.assets.grass))
		}
	}
}

// buildWalls 沿世界四边放置墙块
// 上下两边铺满整行，左右两边跳过角上的格子
func (s *SurvivalScene) buildWalls() {
	n := s.cfg.Game.GridSize
	tileW, tileH := s.assets.grass.Width, s.assets.grass.Height
	wallW, wallH := s.assets.wall.Width, s.assets.wall.Height
	if wallW <= 0 || wallH <= 0 {
		s.log.Warnf("wall texture has empty size, skipping walls")
		return
	}

	bottom := float64(tileH * (n - 1))
	for x := 0; x < tileW*n; x += wallW {
		s.em.Add(newWall(float64(x), 0, s.assets.wall))
		s.em.Add(newWall(float64(x), bottom, s.assets.wall))
	}

	right := float64(tileW * (n - 1))
	for y := tileH; y < tileH*(n-1); y += wallH {
		s.em.Add(newWall(0, float64(y), s.assets.wall))
		s.em.Add(newWall(right, float64(y), s.assets.wall))
	}
}
