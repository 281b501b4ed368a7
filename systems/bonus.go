package systems

import (
	"go.uber.org/zap"

	"github.com/lixenwraith/princess-guard/constants"
	"github.com/lixenwraith/princess-guard/engine"
)

// ApplyBonus clears every enemy and awards the flat bonus. The award does
// not depend on how many enemies were on the field.
func ApplyBonus(world *engine.World) int {
	if !world.State.Running() {
		return 0
	}

	cleared := world.ClearEnemies()
	score := world.State.AddBonus(constants.BonusScore)

	world.Log.Debug("bonus clear", zap.Int("cleared", cleared), zap.Int64("score", score))

	world.Emit(engine.GameEvent{Type: engine.EventBonusClear, Cleared: cleared, Score: score})
	world.Emit(engine.GameEvent{Type: engine.EventScoreChanged, Score: score})
	return cleared
}
