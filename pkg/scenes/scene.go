package scenes

import (
	"github.com/decker502/survival/pkg/engine"
)

// Scene 所有场景都实现 engine.Game
type Scene = engine.Game

var _ Scene = (*SurvivalScene)(nil)
