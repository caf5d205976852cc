package components

import (
	"errors"
	"image"

	"github.com/decker502/survival/pkg/geom"
)

// DefaultFrameTicks 精灵表动画每推进一帧所需的逻辑 tick 数
const DefaultFrameTicks = 10

// ErrInvalidCellSize 单元格尺寸不是正数
var ErrInvalidCellSize = errors.New("sprite sheet cell size must be positive")

// GridPolicy 精灵表行列数的计算规则
type GridPolicy int

const (
	// GridLegacy 向下取整后每个轴再减 1
	// 512x512 的表配 64x64 的单元格得到 7x7，最后一行一列不会被使用。
	// 现有素材按此规则制作，因此保留为默认值。
	GridLegacy GridPolicy = iota
	// GridFull 向下取整，使用全部单元格（512/64 得到 8x8）
	GridFull
)

// String 返回配置文件中使用的名称
func (p GridPolicy) String() string {
	switch p {
	case GridFull:
		return "full"
	default:
		return "legacy"
	}
}

// ParseGridPolicy 解析配置中的规则名称，未知名称返回 false
func ParseGridPolicy(s string) (GridPolicy, bool) {
	switch s {
	case "", "legacy":
		return GridLegacy, true
	case "full":
		return GridFull, true
	}
	return GridLegacy, false
}

// GridSize 计算精灵表的列数和行数
// 结果至少为 1，保证取模时不会除以 0
func GridSize(sheetW, sheetH, cellW, cellH int, policy GridPolicy) (cols, rows int) {
	cols = sheetW / cellW
	rows = sheetH / cellH
	if policy == GridLegacy {
		cols--
		rows--
	}
	return max(cols, 1), max(rows, 1)
}

// SpriteSheet 精灵表动画状态机
//
// 状态为 (Column, Row) 游标，每 FrameTicks 次 Advance 推进一次。
// 不变量：0 <= Column < Columns 且 0 <= Row < Rows。
type SpriteSheet struct {
	Texture    *Texture
	CellWidth  int
	CellHeight int
	Columns    int
	Rows       int

	Column int
	Row    int

	Enabled    bool // 是否播放动画
	AnimateAll bool // true: 遍历整张表；false: 只在当前行内循环
	FrameTicks int

	timer int
}

// NewSpriteSheet 创建精灵表动画，默认不播放、遍历整张表
func NewSpriteSheet(tex *Texture, cellW, cellH int, policy GridPolicy) (*SpriteSheet, error) {
	if cellW <= 0 || cellH <= 0 {
		return nil, ErrInvalidCellSize
	}
	cols, rows := GridSize(tex.Width, tex.Height, cellW, cellH, policy)
	return &SpriteSheet{
		Texture:    tex,
		CellWidth:  cellW,
		CellHeight: cellH,
		Columns:    cols,
		Rows:       rows,
		AnimateAll: true,
		FrameTicks: DefaultFrameTicks,
	}, nil
}

// Setup 配置动画开关和播放范围
func (s *SpriteSheet) Setup(enabled, animateAll bool) {
	s.Enabled = enabled
	s.AnimateAll = animateAll
}

// SetColumn 直接选择列，按列数回绕，负数结果钳制为 0
func (s *SpriteSheet) SetColumn(col int) {
	s.Column = geom.WrapIndex(col, s.Columns)
}

// SetRow 直接选择行，按行数回绕，负数结果钳制为 0
func (s *SpriteSheet) SetRow(row int) {
	s.Row = geom.WrapIndex(row, s.Rows)
}

// Advance 推进动画计时器
// 计时器每回绕到 0 时前进一列；越过最后一列时回到第 0 列，
// 若 AnimateAll 为 true 则同时前进一行。
// 返回 true 表示游标发生了变化。
func (s *SpriteSheet) Advance() bool {
	if !s.Enabled {
		return false
	}

	ticks := s.FrameTicks
	if ticks <= 0 {
		ticks = DefaultFrameTicks
	}
	s.timer = (s.timer + 1) % ticks
	if s.timer != 0 {
		return false
	}

	s.Column++
	if s.Column >= s.Columns {
		s.Column = 0
		if s.AnimateAll {
			s.Row++
			if s.Row >= s.Rows {
				s.Row = 0
			}
		}
	}
	return true
}

// SourceRect 返回当前游标对应的纹理子区域（第 0 行在最上方）
func (s *SpriteSheet) SourceRect() image.Rectangle {
	x := s.Column * s.CellWidth
	y := s.Row * s.CellHeight
	return image.Rect(x, y, x+s.CellWidth, y+s.CellHeight)
}

// Size 返回单元格尺寸，即实体可见区域的尺寸
func (s *SpriteSheet) Size() geom.Vec2 {
	return geom.Vec2{X: float64(s.CellWidth), Y: float64(s.CellHeight)}
}

// Center 返回单元格中心点
func (s *SpriteSheet) Center() geom.Vec2 {
	return geom.Vec2{X: float64(s.CellWidth / 2), Y: float64(s.CellHeight / 2)}
}
