package main

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/pawbox/pawbox/ecs"
	"github.com/pawbox/pawbox/ecs/component"
	"github.com/pawbox/pawbox/ecs/system"
	"github.com/pawbox/pawbox/prefabs"
)

// Game owns the world, the physics sync layer, and the frame loop wiring.
type Game struct {
	log    *zap.Logger
	tuning *prefabs.Tuning

	world   *ecs.World
	physics *ecs.PhysicsWorld

	swipe        *system.SwipeSystem
	agent        *system.AgentSystem
	score        *system.ScoreSystem
	presentation *system.PresentationSystem

	player ecs.Entity
	vacuum ecs.Entity

	awards  *ecs.Sub[system.ScoreAwarded]
	watcher *prefabs.Watcher
}

// NewGame loads tuning and the scene, brings the physics backend up, and
// registers every system in frame order.
func NewGame(log *zap.Logger, seed int64) (*Game, error) {
	if log == nil {
		log = zap.NewNop()
	}

	tuning, err := prefabs.LoadTuning()
	if err != nil {
		log.Warn("tuning load failed, using defaults", zap.Error(err))
	}
	scene, err := prefabs.LoadScene()
	if err != nil {
		return nil, fmt.Errorf("game: load scene: %w", err)
	}

	g := &Game{
		log:    log,
		tuning: &tuning,
		world:  ecs.NewWorld(),
	}

	g.physics = ecs.NewPhysicsWorld(g.world, physicsConfig(&tuning), log)
	g.physics.Init()

	if err := g.buildScene(&scene); err != nil {
		return nil, err
	}

	// Event plumbing. Consumers that run later in the frame than their
	// producer see events the same tick; the agent's movement pass runs
	// early, so its poke reaction gets a second slot after the resolver.
	hits := ecs.NewTopic[system.SwipeHit]()
	knocked := ecs.NewTopic[system.Knocked]()
	scratchTicks := ecs.NewTopic[system.ScratchTick]()
	scratchDone := ecs.NewTopic[system.ScratchComplete]()
	poked := ecs.NewTopic[system.Poked]()
	awards := ecs.NewTopic[system.ScoreAwarded]()
	g.awards = awards.Subscribe()

	g.presentation = system.NewPresentationSystem(g.tuning)
	g.swipe = system.NewSwipeSystem(g.tuning, g.physics, g.presentation, hits)
	g.agent = system.NewAgentSystem(g.tuning, poked.Subscribe(), g.presentation, seed, log)
	g.score = system.NewScoreSystem(g.tuning, knocked.Subscribe(), scratchDone.Subscribe(), awards, log)

	g.world.AddSystem(system.NewPlayerControllerSystem(g.tuning, g.physics))
	g.world.AddSystem(g.agent)
	g.world.AddSystem(system.NewSeparationSystem(g.tuning, g.physics))
	g.world.AddSystem(system.NewPhysicsSystem(g.physics))
	g.world.AddSystem(system.NewKinematicSystem(g.tuning, g.physics))
	g.world.AddSystem(g.swipe)
	g.world.AddSystem(system.NewInteractionSystem(g.tuning, g.physics, hits.Subscribe(), knocked, scratchTicks, scratchDone, poked))
	g.world.AddSystem(system.NewReactionSystem(g.agent))
	g.world.AddSystem(g.score)
	g.world.AddSystem(system.NewGazeSystem(g.tuning))
	g.world.AddSystem(system.NewPoseSystem(g.tuning, g.swipe))
	g.world.AddSystem(g.presentation)

	if w, err := prefabs.NewWatcher("prefabs", "prefabs/scripts"); err != nil {
		log.Warn("prefab watcher unavailable, live reload disabled", zap.Error(err))
	} else {
		g.watcher = w
	}

	return g, nil
}

func physicsConfig(t *prefabs.Tuning) ecs.PhysicsConfig {
	return ecs.PhysicsConfig{
		Backend:       t.Physics.Backend,
		MaxStep:       t.Physics.MaxStep,
		Gravity:       t.Physics.Gravity,
		Damping:       t.Physics.Damping,
		Iterations:    t.Physics.Iterations,
		GroundEpsilon: t.Physics.GroundEpsilon,
		FallbackPad:   t.Physics.FallbackPad,
	}
}

func (g *Game) buildScene(scene *prefabs.SceneSpec) error {
	g.player = g.spawnPlayer(scene.Player)
	g.vacuum = g.spawnVacuum(scene.Vacuum)

	for i := range scene.Props {
		if _, err := g.spawnProp(&scene.Props[i]); err != nil {
			return err
		}
	}
	return nil
}

func (g *Game) spawnPlayer(spec prefabs.PlayerSpec) ecs.Entity {
	e := g.world.CreateEntity()
	g.world.SetPlayer(e)

	ecs.Add(g.world, e, component.TransformComponent, component.Transform{
		Pos: mgl64.Vec3{spec.Position[0], spec.Position[1], spec.Position[2]},
		Rot: mgl64.Vec3{0, spec.Yaw, 0},
	})
	ecs.Add(g.world, e, component.InfoComponent, component.Info{Kind: component.KindPlayer, Name: "cat"})
	ecs.Add(g.world, e, component.PlayerTagComponent, component.PlayerTag{})
	ecs.Add(g.world, e, component.IntentComponent, component.Intent{})
	ecs.Add(g.world, e, component.PlayerStateComponent, component.PlayerState{})
	ecs.Add(g.world, e, component.SkeletonComponent, system.BuildCatRig())

	g.physics.Register(e, ecs.BodyDef{
		Shape:         ecs.Shape{Kind: ecs.ShapeSphere, Radius: 0.22},
		Density:       8.0,
		Friction:      0.7,
		FixedRotation: true,
	})
	return e
}

func (g *Game) spawnVacuum(spec prefabs.VacuumSpec) ecs.Entity {
	e := g.world.CreateEntity()

	ecs.Add(g.world, e, component.TransformComponent, component.Transform{
		Pos: mgl64.Vec3{spec.Position[0], spec.Position[1], spec.Position[2]},
		Rot: mgl64.Vec3{0, spec.Yaw, 0},
	})
	ecs.Add(g.world, e, component.InfoComponent, component.Info{Kind: component.KindPokeTarget, Name: "vacuum"})
	ecs.Add(g.world, e, component.VacuumTagComponent, component.VacuumTag{})
	ecs.Add(g.world, e, component.GazeComponent, component.Gaze{})
	ecs.Add(g.world, e, component.SkeletonComponent, system.BuildVacuumRig())

	// behavior owns the transform; the collider only tracks it for queries
	g.physics.Register(e, ecs.BodyDef{
		Shape:     ecs.Shape{Kind: ecs.ShapeSphere, Radius: 0.3},
		Kinematic: true,
		Friction:  0.5,
	})
	return e
}

func (g *Game) spawnProp(spec *prefabs.PropSpec) (ecs.Entity, error) {
	e := g.world.CreateEntity()

	ecs.Add(g.world, e, component.TransformComponent, component.Transform{
		Pos: mgl64.Vec3{spec.Position[0], spec.Position[1], spec.Position[2]},
		Rot: mgl64.Vec3{0, spec.Yaw, 0},
	})

	var kind component.Kind
	switch spec.Kind {
	case "static":
		kind = component.KindStaticGeometry
	case "knockable":
		kind = component.KindKnockable
		ecs.Add(g.world, e, component.KnockableComponent, component.Knockable{})
		ecs.Add(g.world, e, component.VelocityComponent, component.Velocity{})
	case "scratchable":
		kind = component.KindScratchable
		ecs.Add(g.world, e, component.ScratchableComponent, component.Scratchable{Increment: spec.Increment})
	case "other", "":
		kind = component.KindOther
	default:
		return 0, fmt.Errorf("game: prop %q has unknown kind %q", spec.Name, spec.Kind)
	}
	ecs.Add(g.world, e, component.InfoComponent, component.Info{Kind: kind, Name: spec.Name})

	var shape ecs.Shape
	switch spec.Shape {
	case "sphere":
		shape = ecs.Shape{Kind: ecs.ShapeSphere, Radius: spec.Radius}
	case "box", "":
		shape = ecs.Shape{
			Kind:        ecs.ShapeBox,
			HalfExtents: mgl64.Vec3{spec.HalfExtents[0], spec.HalfExtents[1], spec.HalfExtents[2]},
		}
	default:
		return 0, fmt.Errorf("game: prop %q has unknown shape %q", spec.Name, spec.Shape)
	}

	g.physics.Register(e, ecs.BodyDef{
		Shape:       shape,
		Static:      kind == component.KindStaticGeometry || kind == component.KindOther || kind == component.KindScratchable,
		Density:     spec.Density,
		Friction:    spec.Friction,
		Restitution: spec.Restitution,
	})
	return e, nil
}

// SetIntent replaces the player's intent for the coming tick. Swipe fields
// are press edges, already debounced by the input layer.
func (g *Game) SetIntent(in component.Intent) {
	ecs.Add(g.world, g.player, component.IntentComponent, in)
}

// Update advances the simulation one tick.
func (g *Game) Update(dt float64) {
	g.pollReload()
	g.world.Update(dt)
}

// Score returns the points accumulated so far.
func (g *Game) Score() int {
	return g.score.Total()
}

// DrainAwards returns the score events since the last call.
func (g *Game) DrainAwards() []system.ScoreAwarded {
	return g.awards.Drain()
}

// Close releases the file watcher.
func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

// pollReload applies any tuning edits that landed since the last tick.
// Values are overlaid in place so every system sees them through the shared
// pointer; the physics backend keeps its boot-time config.
func (g *Game) pollReload() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name := <-g.watcher.Events:
			if name != "tuning.yaml" {
				continue
			}
			t, err := prefabs.LoadTuning()
			if err != nil {
				g.log.Warn("tuning reload failed", zap.Error(err))
				continue
			}
			*g.tuning = t
			g.log.Info("tuning reloaded")
		case err := <-g.watcher.Errors:
			g.log.Warn("prefab watcher error", zap.Error(err))
		default:
			return
		}
	}
}
