package system

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/pawbox/pawbox/common"
	"github.com/pawbox/pawbox/ecs"
	"github.com/pawbox/pawbox/ecs/component"
	"github.com/pawbox/pawbox/prefabs"
)

// VacuumPhase is the behavior state of a vacuum agent.
type VacuumPhase int

const (
	VacuumWander VacuumPhase = iota
	VacuumAvoidCat
	VacuumRecover
	VacuumPoked
)

func (p VacuumPhase) String() string {
	switch p {
	case VacuumAvoidCat:
		return "avoid_cat"
	case VacuumRecover:
		return "recover"
	case VacuumPoked:
		return "poked"
	default:
		return "wander"
	}
}

type vacuumState struct {
	phase VacuumPhase

	hasTarget   bool
	target      mgl64.Vec3
	wanderTimer float64

	recoverTimer float64
	cooldown     float64
	speed        float64

	pokeRepeat int
	gesture    string
}

// GesturePlayer is the presentation seam for agent reactions.
type GesturePlayer interface {
	PlayGesture(e ecs.Entity, name string, duration float64)
}

// AgentSystem drives every vacuum's behavior machine against the player's
// position each tick. Agent state is owned here, keyed by entity; the only
// things written to the store are the transform the agent exclusively owns.
type AgentSystem struct {
	tuning    *prefabs.Tuning
	poked     *ecs.Sub[Poked]
	presenter GesturePlayer
	log       *zap.Logger

	rng    *rand.Rand
	states map[ecs.Entity]*vacuumState

	script    *pokeScript
	scriptErr bool
}

func NewAgentSystem(tuning *prefabs.Tuning, poked *ecs.Sub[Poked], presenter GesturePlayer, seed int64, log *zap.Logger) *AgentSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &AgentSystem{
		tuning:    tuning,
		poked:     poked,
		presenter: presenter,
		log:       log,
		rng:       rand.New(rand.NewSource(seed)),
		states:    make(map[ecs.Entity]*vacuumState),
	}
}

// Phase returns the agent's current behavior state.
func (a *AgentSystem) Phase(e ecs.Entity) VacuumPhase {
	return a.state(e).phase
}

// Speed returns the agent's current movement speed.
func (a *AgentSystem) Speed(e ecs.Entity) float64 {
	return a.state(e).speed
}

// Gesture returns the reaction gesture chosen on the last poke.
func (a *AgentSystem) Gesture(e ecs.Entity) string {
	return a.state(e).gesture
}

func (a *AgentSystem) state(e ecs.Entity) *vacuumState {
	st, ok := a.states[e]
	if !ok {
		st = &vacuumState{phase: VacuumWander}
		a.states[e] = st
	}
	return st
}

func (a *AgentSystem) Update(w *ecs.World, dt float64) {
	player := w.Player()
	playerTr, havePlayer := ecs.Get(w, player, component.TransformComponent)
	if !w.IsAlive(player) {
		havePlayer = false
	}

	cfg := &a.tuning.Vacuum
	bound := a.tuning.World.Bound

	ecs.Each(w, component.VacuumTagComponent, func(e ecs.Entity, _ *component.VacuumTag) {
		st := a.state(e)
		tr := ecs.Mut(w, e, component.TransformComponent)
		if tr == nil {
			return
		}

		dist := math.Inf(1)
		if havePlayer {
			dist = planarDist(tr.Pos, playerTr.Pos)
		}

		switch st.phase {
		case VacuumWander:
			if dist < cfg.PersonalSpace {
				st.phase = VacuumAvoidCat
				break
			}
			a.wander(st, tr, dt, bound)
		case VacuumAvoidCat:
			// the margin keeps a player dithering right on the radius from
			// toggling the state every frame
			if dist >= cfg.PersonalSpace+cfg.Hysteresis {
				st.phase = VacuumRecover
				st.recoverTimer = cfg.RecoverDelay
				break
			}
			a.avoid(st, tr, dt, playerTr.Pos, bound)
		case VacuumRecover:
			if dist < cfg.PersonalSpace {
				st.phase = VacuumAvoidCat
				break
			}
			st.speed = common.Approach(st.speed, 0, cfg.Accel*dt)
			st.recoverTimer -= dt
			if st.recoverTimer <= 0 {
				st.phase = VacuumWander
				st.hasTarget = false
			}
		case VacuumPoked:
			st.speed = 0
			st.cooldown -= dt
			if st.cooldown <= 0 {
				st.cooldown = 0
				st.phase = VacuumWander
				st.hasTarget = false
			}
		default:
			panic("agent: vacuum in unknown phase")
		}
	})
}

// ResolvePokes consumes the resolver's poke events. It runs from the
// ReactionSystem slot later in the frame, so a startle lands the same tick
// as the hit that caused it.
func (a *AgentSystem) ResolvePokes(w *ecs.World) {
	events := a.poked.Drain()

	player := w.Player()
	playerTr, ok := ecs.Get(w, player, component.TransformComponent)
	if !ok || !w.IsAlive(player) {
		return
	}

	for _, ev := range events {
		if !w.IsAlive(ev.Target) || !ecs.Has(w, ev.Target, component.VacuumTagComponent) {
			continue
		}
		tr := ecs.Mut(w, ev.Target, component.TransformComponent)
		if tr == nil {
			continue
		}
		a.enterPoked(ev.Target, a.state(ev.Target), tr, playerTr.Pos)
	}
}

// ReactionSystem gives the agent a second slot in the frame, after the
// interaction resolver, so pokes published this tick are consumed this tick.
type ReactionSystem struct {
	agent *AgentSystem
}

func NewReactionSystem(agent *AgentSystem) *ReactionSystem {
	return &ReactionSystem{agent: agent}
}

func (r *ReactionSystem) Update(w *ecs.World, _ float64) {
	r.agent.ResolvePokes(w)
}

func (a *AgentSystem) wander(st *vacuumState, tr *component.Transform, dt, bound float64) {
	cfg := &a.tuning.Vacuum
	st.wanderTimer -= dt

	if !st.hasTarget || st.wanderTimer <= 0 || planarDist(tr.Pos, st.target) < 0.05 {
		bearing := a.rng.Float64() * 2 * math.Pi
		radius := cfg.WanderRadius * (0.3 + 0.7*a.rng.Float64())
		st.target = clampToBounds(mgl64.Vec3{
			tr.Pos.X() + math.Sin(bearing)*radius,
			0,
			tr.Pos.Z() + math.Cos(bearing)*radius,
		}, bound)
		st.hasTarget = true
		st.wanderTimer = cfg.WanderIntervalMin + a.rng.Float64()*(cfg.WanderIntervalMax-cfg.WanderIntervalMin)
	}

	dir := mgl64.Vec3{st.target.X() - tr.Pos.X(), 0, st.target.Z() - tr.Pos.Z()}
	if dir.Len() < 1e-6 {
		st.hasTarget = false
		return
	}

	st.speed = common.Approach(st.speed, cfg.WalkSpeed, cfg.Accel*dt)
	desired := math.Atan2(dir.X(), dir.Z())
	tr.Rot[1] = common.RotateToward(tr.Rot[1], desired, cfg.TurnRate*dt)

	// translate along the smoothed heading, not the raw target direction
	yaw := tr.Rot[1]
	step := mgl64.Vec3{math.Sin(yaw), 0, math.Cos(yaw)}.Mul(st.speed * dt)
	tr.Pos = clampToBounds(tr.Pos.Add(step), bound)
}

// avoid retreats straight down the player-to-agent radial while rotating the
// body to keep facing the player.
func (a *AgentSystem) avoid(st *vacuumState, tr *component.Transform, dt float64, playerPos mgl64.Vec3, bound float64) {
	cfg := &a.tuning.Vacuum

	away := mgl64.Vec3{tr.Pos.X() - playerPos.X(), 0, tr.Pos.Z() - playerPos.Z()}
	if away.Len() < 1e-6 {
		away = mgl64.Vec3{0, 0, 1}
	} else {
		away = away.Normalize()
	}

	st.speed = common.Approach(st.speed, cfg.AvoidSpeed, 2*cfg.Accel*dt)
	tr.Pos = clampToBounds(tr.Pos.Add(away.Mul(st.speed*dt)), bound)

	facePlayer := math.Atan2(playerPos.X()-tr.Pos.X(), playerPos.Z()-tr.Pos.Z())
	tr.Rot[1] = common.RotateToward(tr.Rot[1], facePlayer, cfg.TurnRate*dt)
}

func (a *AgentSystem) enterPoked(e ecs.Entity, st *vacuumState, tr *component.Transform, playerPos mgl64.Vec3) {
	cfg := &a.tuning.Vacuum

	st.phase = VacuumPoked
	st.cooldown = cfg.ReactionCooldown
	st.speed = 0
	st.hasTarget = false
	st.pokeRepeat++

	// hop back along the local backward axis, then turn on the spot
	yaw := tr.Rot[1]
	back := mgl64.Vec3{-math.Sin(yaw), 0, -math.Cos(yaw)}
	tr.Pos = clampToBounds(tr.Pos.Add(back.Mul(cfg.StepBack)), a.tuning.World.Bound)
	tr.Rot[1] = math.Atan2(playerPos.X()-tr.Pos.X(), playerPos.Z()-tr.Pos.Z())

	st.gesture = a.pickGesture(tr.Pos, playerPos, st.pokeRepeat)
	if a.presenter != nil {
		a.presenter.PlayGesture(e, st.gesture, cfg.GestureTime)
	}
}

func (a *AgentSystem) pickGesture(agentPos, playerPos mgl64.Vec3, repeat int) string {
	const fallback = "spin_shake"

	if a.script == nil && !a.scriptErr {
		sc, err := compilePokeScript(a.tuning.Vacuum.PokeScript)
		if err != nil {
			a.scriptErr = true
			a.log.Debug("poke reaction script unavailable", zap.Error(err))
		} else {
			a.script = sc
		}
	}
	if a.script == nil {
		return fallback
	}
	name, err := a.script.gesture(agentPos.X(), agentPos.Z(), playerPos.X(), playerPos.Z(), repeat)
	if err != nil || name == "" {
		a.log.Debug("poke reaction script failed", zap.Error(err))
		return fallback
	}
	return name
}

func planarDist(a, b mgl64.Vec3) float64 {
	return math.Hypot(a.X()-b.X(), a.Z()-b.Z())
}

func clampToBounds(p mgl64.Vec3, bound float64) mgl64.Vec3 {
	return mgl64.Vec3{
		common.Clamp(p.X(), -bound, bound),
		p.Y(),
		common.Clamp(p.Z(), -bound, bound),
	}
}
