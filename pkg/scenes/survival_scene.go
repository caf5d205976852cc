package scenes

import (
	"math"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/survival/pkg/config"
	"github.com/decker502/survival/pkg/ecs"
	"github.com/decker502/survival/pkg/game"
	"github.com/decker502/survival/pkg/geom"
	"github.com/decker502/survival/pkg/input"
	"github.com/decker502/survival/pkg/logger"
	"github.com/decker502/survival/pkg/systems"
)

// SurvivalScene 示例游戏：驾驶飞船在围墙内射击陨石
//
// 每个逻辑 tick 的顺序固定：
//  1. 累计滚轮、计算鼠标的世界坐标
//  2. 玩家存活时处理移动和开火，并朝向鼠标
//  3. 所有实体执行 DoTimeStep
//  4. 镜头跟随玩家
//  5. 碰撞检测
//  6. 移除被标记的实体
//
// 所有方法都在运行循环的 goroutine 上调用。
type SurvivalScene struct {
	cfg     *config.Config
	updates <-chan *config.Config // 配置热加载，可以为 nil

	rng     *rand.Rand
	em      *ecs.EntityManager
	physics *systems.PhysicsSystem
	camera  *systems.CameraSystem
	tiles   []*ecs.Entity // 地砖不参与碰撞，不放入实体管理器

	assets *survivalAssets
	audio  game.AudioPlayer
	sounds [soundCount]int

	player ecs.Ref
	alive  bool

	cooldownTimer int
	facing        float64 // 玩家朝向（度）
	mouseWorld    geom.Vec2
	wheelTicks    int
	worldSize     geom.Vec2
	ticks         uint64

	log *log.Logger
}

// NewSurvivalScene 创建场景，updates 为配置热加载通道，可以为 nil
func NewSurvivalScene(cfg *config.Config, updates <-chan *config.Config) *SurvivalScene {
	if cfg == nil {
		cfg = config.Default()
	}
	return &SurvivalScene{
		cfg:     cfg,
		updates: updates,
		em:      ecs.NewEntityManager(),
		log:     logger.For("SurvivalScene"),
	}
}

// Logic 实现 engine.Game
func (s *SurvivalScene) Logic(in input.Snapshot) {
	s.drainConfigUpdates()
	s.ticks++

	s.wheelTicks += in.WheelRotation()
	s.mouseWorld = s.camera.ScreenToWorld(geom.Vec2{X: float64(in.MouseX()), Y: float64(in.MouseY())})

	player, ok := s.Player()
	if s.alive && ok {
		s.handleControls(in, player)
		s.facing = player.DegreesTo(s.mouseWorld)
		player.Rotation = s.facing + 90
	}

	for _, e := range s.em.Entities() {
		e.DoTimeStep()
	}

	if ok {
		s.camera.Follow(player.Position)
	}

	s.physics.Update()
	s.em.RemoveMarkedEntities(s.onRemoved)
}

// handleControls WASD 移动，空格或鼠标左键开火
// 相反方向的按键互相抵消
func (s *SurvivalScene) handleControls(in input.Snapshot, player *ecs.Entity) {
	var dx, dy float64
	if in.KeyDown(ebiten.KeyW) {
		dy--
	}
	if in.KeyDown(ebiten.KeyS) {
		dy++
	}
	if in.KeyDown(ebiten.KeyA) {
		dx--
	}
	if in.KeyDown(ebiten.KeyD) {
		dx++
	}
	if dx != 0 || dy != 0 {
		deg := math.Atan2(dy, dx) * 180 / math.Pi
		player.MoveInDirection(deg, s.cfg.Game.PlayerSpeed)
	}

	if s.cooldownTimer <= 0 &&
		(in.KeyDown(ebiten.KeySpace) || in.MouseButtonDown(ebiten.MouseButtonLeft)) {
		s.fireBullet(player)
	}
	s.cooldownTimer--
}

// fireBullet 在玩家前方生成朝向鼠标的子弹
func (s *SurvivalScene) fireBullet(player *ecs.Entity) {
	g := s.cfg.Game
	s.cooldownTimer = g.FireCooldown

	dir := player.DegreesTo(s.mouseWorld)
	pos := player.Position.Add(geom.FromDegrees(dir).Scale(g.MuzzleDistance))
	s.em.Add(newBullet(pos, dir, g.BulletSpeed, g.BulletLifetime, s.assets.bullet))

	s.playSound(soundLaser)
}

// OnDestroyBoth 实现 systems.EffectListener
func (s *SurvivalScene) OnDestroyBoth(a, b *ecs.Entity) {
	s.log.Debugf("destroying entities %d:%d", a.ID, b.ID)
	s.playSound(soundExplosion)
}

// onRemoved 移除扫描的回调；玩家被移除后游戏结束
func (s *SurvivalScene) onRemoved(e *ecs.Entity) {
	if s.player.Is(e) {
		s.player.Clear()
		s.alive = false
		s.log.Infof("player destroyed after %d ticks", s.ticks)
	}
}

func (s *SurvivalScene) playSound(snd sound) {
	if s.audio != nil {
		s.audio.PlayAudioIndex(s.sounds[snd])
	}
}

// Player 返回玩家实体，玩家被移除后返回 false
func (s *SurvivalScene) Player() (*ecs.Entity, bool) {
	if !s.player.Valid() {
		return nil, false
	}
	return s.player.Resolve(s.em)
}

// Alive 玩家是否存活
func (s *SurvivalScene) Alive() bool { return s.alive }

// Entities 返回参与碰撞的实体管理器
func (s *SurvivalScene) Entities() *ecs.EntityManager { return s.em }

// Camera 返回镜头
func (s *SurvivalScene) Camera() *systems.CameraSystem { return s.camera }

// WorldSize 返回世界尺寸（像素）
func (s *SurvivalScene) WorldSize() geom.Vec2 { return s.worldSize }

// SetViewport 窗口尺寸变化时更新视口
func (s *SurvivalScene) SetViewport(w, h int) {
	if s.camera != nil {
		s.camera.SetViewport(float64(w), float64(h))
	}
}

// drainConfigUpdates 应用热加载的配置，只在逻辑 tick 开始时调用
func (s *SurvivalScene) drainConfigUpdates() {
	for {
		select {
		case cfg, ok := <-s.updates:
			if !ok {
				s.updates = nil
				return
			}
			s.applyConfig(cfg)
		default:
			return
		}
	}
}

// applyConfig 应用可以在运行中修改的配置
// 网格大小和陨石数量只在 Init 时生效
func (s *SurvivalScene) applyConfig(cfg *config.Config) {
	table, err := cfg.OutcomeTable()
	if err != nil {
		s.log.Warnf("ignoring config reload: %v", err)
		return
	}
	s.physics.SetTable(table)

	gridSize, rockCount := s.cfg.Game.GridSize, s.cfg.Game.RockCount
	s.cfg = cfg
	if cfg.Game.GridSize != gridSize || cfg.Game.RockCount != rockCount {
		s.log.Warn("gridSize and rockCount changes apply on restart")
	}

	for _, e := range s.em.Entities() {
		if e.Sheet != nil {
			e.Sheet.FrameTicks = cfg.Animation.FrameTicks
		}
	}
	s.log.Info("config reloaded")
}
