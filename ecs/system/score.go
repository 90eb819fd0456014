package system

import (
	"go.uber.org/zap"

	"github.com/pawbox/pawbox/ecs"
	"github.com/pawbox/pawbox/prefabs"
)

// ScoreSystem is the task/scoring sink: it consumes mischief events and
// awards points. Nothing in the simulation depends on it consuming anything.
type ScoreSystem struct {
	tuning *prefabs.Tuning
	log    *zap.Logger

	knocked     *ecs.Sub[Knocked]
	scratchDone *ecs.Sub[ScratchComplete]
	awards      *ecs.Topic[ScoreAwarded]

	total int
}

func NewScoreSystem(tuning *prefabs.Tuning, knocked *ecs.Sub[Knocked], scratchDone *ecs.Sub[ScratchComplete], awards *ecs.Topic[ScoreAwarded], log *zap.Logger) *ScoreSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &ScoreSystem{
		tuning:      tuning,
		log:         log,
		knocked:     knocked,
		scratchDone: scratchDone,
		awards:      awards,
	}
}

// Total returns the points accumulated so far.
func (s *ScoreSystem) Total() int {
	return s.total
}

func (s *ScoreSystem) Update(_ *ecs.World, _ float64) {
	for _, ev := range s.knocked.Drain() {
		s.award(ev.Target, s.tuning.Score.Knock, "knocked")
	}
	for _, ev := range s.scratchDone.Drain() {
		s.award(ev.Target, s.tuning.Score.Scratch, "scratch_complete")
	}
}

func (s *ScoreSystem) award(target ecs.Entity, points int, reason string) {
	s.total += points
	s.awards.Publish(ScoreAwarded{Target: target, Points: points, Total: s.total, Reason: reason})
	s.log.Debug("score awarded",
		zap.String("reason", reason),
		zap.Int("points", points),
		zap.Int("total", s.total),
	)
}
