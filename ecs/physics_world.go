package ecs

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"go.uber.org/zap"

	"github.com/pawbox/pawbox/ecs/component"
)

// The physics space simulates the floor plane: cp X is world X, cp Y is
// world Z. Height is a kinematic channel layered on top (per-body Y position,
// Y velocity, gravity, floor rest), so entity transforms stay full 3D while
// Chipmunk handles sliding, prop collisions, and impulses where it is strong.

// ShapeKind selects the collider primitive.
type ShapeKind int

const (
	ShapeBox ShapeKind = iota
	ShapeSphere
)

// Shape describes a collider. Boxes use HalfExtents; spheres use Radius.
type Shape struct {
	Kind        ShapeKind
	HalfExtents mgl64.Vec3
	Radius      float64
}

func (s Shape) planarRadius() float64 {
	if s.Kind == ShapeSphere {
		return s.Radius
	}
	return math.Max(s.HalfExtents.X(), s.HalfExtents.Z())
}

func (s Shape) height() float64 {
	if s.Kind == ShapeSphere {
		return 2 * s.Radius
	}
	return 2 * s.HalfExtents.Y()
}

func (s Shape) volume() float64 {
	if s.Kind == ShapeSphere {
		return 4.0 / 3.0 * math.Pi * s.Radius * s.Radius * s.Radius
	}
	return 8 * s.HalfExtents.X() * s.HalfExtents.Y() * s.HalfExtents.Z()
}

// BodyDef configures a body at registration time.
type BodyDef struct {
	Shape Shape

	// Static bodies never move. Kinematic bodies are moved by their
	// controller through the entity transform; the backend only keeps their
	// collider in place for queries.
	Static    bool
	Kinematic bool

	Density       float64
	Friction      float64
	Restitution   float64
	FixedRotation bool
}

// PhysicsHandle pairs the backend body and collider for one entity. The
// physics world is authoritative for its creation and destruction order.
type PhysicsHandle struct {
	Body  *cp.Body
	Shape *cp.Shape
}

// PhysicsConfig tunes the space and the degraded-mode fallbacks.
type PhysicsConfig struct {
	Backend       string  // "chipmunk" enables the space; anything else degrades
	MaxStep       float64 // dt clamp, bounds error on frame hitches
	Gravity       float64 // vertical channel, negative is down
	Damping       float64 // planar velocity retention per second
	Iterations    uint
	GroundEpsilon float64 // height threshold for the fallback grounded check
	FallbackPad   float64 // stand-in collider radius for fallback overlap tests
}

// DefaultPhysicsConfig returns the tuning used when no config is loaded.
func DefaultPhysicsConfig() PhysicsConfig {
	return PhysicsConfig{
		Backend:       "chipmunk",
		MaxStep:       0.1,
		Gravity:       -9.8,
		Damping:       0.25,
		Iterations:    20,
		GroundEpsilon: 0.05,
		FallbackPad:   0.3,
	}
}

type bodyRec struct {
	entity Entity
	handle PhysicsHandle
	def    BodyDef
	mass   float64

	// vertical channel; y is the base of the object above the floor
	y  float64
	vy float64
}

func (r *bodyRec) topY() float64 {
	return r.y + r.def.Shape.height()
}

// PhysicsWorld owns the Chipmunk space and the entity-to-body mapping, steps
// the simulation, and mirrors backend transforms into the entity store. When
// the backend is unavailable every query degrades to a deterministic
// fallback; nothing errors per call.
type PhysicsWorld struct {
	world *World
	cfg   PhysicsConfig
	log   *zap.Logger

	space  *cp.Space
	inited bool
	ready  bool

	bodies        map[Entity]*bodyRec
	shapeToEntity map[*cp.Shape]Entity
}

// NewPhysicsWorld creates an uninitialized physics world bound to w. Entities
// destroyed through the world release their bodies automatically.
func NewPhysicsWorld(w *World, cfg PhysicsConfig, log *zap.Logger) *PhysicsWorld {
	if log == nil {
		log = zap.NewNop()
	}
	pw := &PhysicsWorld{
		world:         w,
		cfg:           cfg,
		log:           log,
		bodies:        make(map[Entity]*bodyRec),
		shapeToEntity: make(map[*cp.Shape]Entity),
	}
	w.OnDestroy(pw.Unregister)
	return pw
}

// Init brings the backend up once. Failure is not fatal: the session runs in
// a permanently degraded mode, logged a single time.
func (pw *PhysicsWorld) Init() bool {
	if pw.inited {
		return pw.ready
	}
	pw.inited = true

	if pw.cfg.Backend != "chipmunk" {
		pw.log.Warn("physics backend unavailable, running kinematic fallbacks",
			zap.String("backend", pw.cfg.Backend))
		return false
	}

	space := cp.NewSpace()
	space.Iterations = pw.cfg.Iterations
	space.SetGravity(cp.Vector{}) // gravity lives on the vertical channel
	space.SetDamping(pw.cfg.Damping)
	pw.space = space
	pw.ready = true
	return true
}

// IsReady reports whether the backend is live.
func (pw *PhysicsWorld) IsReady() bool {
	return pw.ready
}

// Space exposes the underlying Chipmunk space, nil when degraded.
func (pw *PhysicsWorld) Space() *cp.Space {
	return pw.space
}

// Handle returns the backend handle for an entity, if registered.
func (pw *PhysicsWorld) Handle(e Entity) (PhysicsHandle, bool) {
	rec, ok := pw.bodies[e]
	if !ok {
		return PhysicsHandle{}, false
	}
	return rec.handle, true
}

// Register creates a body and collider for the entity and records the
// mapping. Returns nil without side effects when the backend is down, the
// entity is stale, or it is already registered.
func (pw *PhysicsWorld) Register(e Entity, def BodyDef) *PhysicsHandle {
	if !pw.ready || !pw.world.IsAlive(e) {
		return nil
	}
	if _, dup := pw.bodies[e]; dup {
		return nil
	}
	tr, ok := Get(pw.world, e, component.TransformComponent)
	if !ok {
		return nil
	}

	rec := &bodyRec{entity: e, def: def, y: tr.Pos.Y()}

	var body *cp.Body
	switch {
	case def.Static:
		body = pw.space.StaticBody
	case def.Kinematic:
		body = cp.NewKinematicBody()
		body.SetPosition(planarVector(tr.Pos))
		body.SetAngle(tr.Rot[1])
		pw.space.AddBody(body)
	default:
		rec.mass = math.Max(def.Density*def.Shape.volume(), 0.01)
		moment := cp.MomentForCircle(rec.mass, 0, def.Shape.planarRadius(), cp.Vector{})
		if def.Shape.Kind == ShapeBox {
			moment = cp.MomentForBox(rec.mass, 2*def.Shape.HalfExtents.X(), 2*def.Shape.HalfExtents.Z())
		}
		if def.FixedRotation {
			moment = math.Inf(1)
		}
		body = cp.NewBody(rec.mass, moment)
		body.SetPosition(planarVector(tr.Pos))
		body.SetAngle(tr.Rot[1])
		pw.space.AddBody(body)
	}

	rec.handle = PhysicsHandle{Body: body}

	// Floor-level slabs keep their record for the grounded raycast but get
	// no planar collider: in the top-down plane their whole footprint would
	// read as a solid region and the solver would extrude everything
	// standing on them.
	if !floorSlab(def, tr.Pos.Y()) {
		var shape *cp.Shape
		switch def.Shape.Kind {
		case ShapeSphere:
			if def.Static {
				shape = cp.NewCircle(body, def.Shape.Radius, planarVector(tr.Pos))
			} else {
				shape = cp.NewCircle(body, def.Shape.Radius, cp.Vector{})
			}
		case ShapeBox:
			w := 2 * def.Shape.HalfExtents.X()
			d := 2 * def.Shape.HalfExtents.Z()
			if def.Static {
				c := planarVector(tr.Pos)
				bb := cp.BB{L: c.X - w/2, B: c.Y - d/2, R: c.X + w/2, T: c.Y + d/2}
				shape = cp.NewBox2(body, bb, 0)
			} else {
				shape = cp.NewBox(body, w, d, 0)
			}
		default:
			panic("physics: unknown shape kind")
		}
		shape.SetFriction(def.Friction)
		shape.SetElasticity(def.Restitution)
		pw.space.AddShape(shape)

		rec.handle.Shape = shape
		pw.shapeToEntity[shape] = e
	}

	pw.bodies[e] = rec
	return &rec.handle
}

// floorSlab reports whether a static shape is walkable ground, its top face
// at or below floor height.
func floorSlab(def BodyDef, baseY float64) bool {
	return def.Static && baseY+def.Shape.height() <= 1e-6
}

// Unregister removes the entity's backend resources. Safe to call for
// entities that were never registered and while degraded.
func (pw *PhysicsWorld) Unregister(e Entity) {
	rec, ok := pw.bodies[e]
	if !ok {
		return
	}
	if pw.space != nil {
		if rec.handle.Shape != nil {
			pw.space.RemoveShape(rec.handle.Shape)
		}
		if !rec.def.Static {
			pw.space.RemoveBody(rec.handle.Body)
		}
	}
	if rec.handle.Shape != nil {
		delete(pw.shapeToEntity, rec.handle.Shape)
	}
	delete(pw.bodies, e)
}

// Step advances the simulation by dt (clamped to MaxStep so a frame hitch
// cannot blow up the integration) and writes resulting transforms back into
// the entity store. The player's rotation is never written back: the player
// controller owns it, and two writers on one angle oscillate.
func (pw *PhysicsWorld) Step(dt float64) {
	if dt <= 0 {
		return
	}
	if dt > pw.cfg.MaxStep {
		dt = pw.cfg.MaxStep
	}
	if !pw.ready {
		return
	}

	// Controller-owned bodies sync before the step: the space reindexes
	// their colliders as the step begins, so a sync afterwards leaves
	// overlap queries a frame behind the transform.
	for e, rec := range pw.bodies {
		if !rec.def.Kinematic || !pw.world.IsAlive(e) {
			continue
		}
		if tr, ok := Get(pw.world, e, component.TransformComponent); ok {
			rec.handle.Body.SetPosition(planarVector(tr.Pos))
			rec.handle.Body.SetAngle(tr.Rot[1])
			rec.y = tr.Pos.Y()
		}
	}

	pw.space.Step(dt)

	var stale []Entity
	for e, rec := range pw.bodies {
		if !pw.world.IsAlive(e) {
			stale = append(stale, e)
			continue
		}
		if rec.def.Static || rec.def.Kinematic {
			continue
		}

		// vertical channel
		if rec.y > 0 || rec.vy != 0 {
			rec.vy += pw.cfg.Gravity * dt
			rec.y += rec.vy * dt
			if rec.y <= 0 {
				rec.y = 0
				rec.vy = 0
			}
		}

		tr := Mut(pw.world, e, component.TransformComponent)
		if tr == nil {
			continue
		}
		pos := rec.handle.Body.Position()
		tr.Pos = mgl64.Vec3{pos.X, rec.y, pos.Y}

		info, _ := Get(pw.world, e, component.InfoComponent)
		if info.Kind != component.KindPlayer {
			tr.Rot[1] = rec.handle.Body.Angle()
		}
	}
	for _, e := range stale {
		pw.Unregister(e)
	}
}

// ApplyImpulse forwards an impulse to a dynamic body. Static bodies, stale
// entities, and degraded mode are silent no-ops, not errors.
func (pw *PhysicsWorld) ApplyImpulse(e Entity, impulse mgl64.Vec3) {
	if !pw.ready {
		return
	}
	rec, ok := pw.bodies[e]
	if !ok || rec.def.Static || rec.def.Kinematic {
		return
	}
	body := rec.handle.Body
	body.ApplyImpulseAtWorldPoint(cp.Vector{X: impulse.X(), Y: impulse.Z()}, body.Position())
	rec.vy += impulse.Y() / rec.mass
}

// SetPosition teleports a registered body, keeping the backend in sync with
// a transform the caller has already corrected (separation pushes).
func (pw *PhysicsWorld) SetPosition(e Entity, pos mgl64.Vec3) {
	rec, ok := pw.bodies[e]
	if !ok || rec.def.Static {
		return
	}
	rec.handle.Body.SetPosition(planarVector(pos))
	rec.y = pos.Y()
}

// RaycastDown reports ground contact below origin within maxDistance. When
// ready it resolves the highest registered static surface under the point;
// degraded it falls back to the height threshold. For a flat floor at Y=0
// both paths agree for maxDistance == GroundEpsilon.
func (pw *PhysicsWorld) RaycastDown(origin mgl64.Vec3, maxDistance float64) bool {
	if !pw.ready {
		return origin.Y() <= pw.cfg.GroundEpsilon
	}
	top, ok := pw.staticTopUnder(origin)
	if !ok {
		return false
	}
	return origin.Y()-top <= maxDistance
}

func (pw *PhysicsWorld) staticTopUnder(origin mgl64.Vec3) (float64, bool) {
	best := math.Inf(-1)
	found := false
	for e, rec := range pw.bodies {
		if !rec.def.Static {
			continue
		}
		tr, ok := Get(pw.world, e, component.TransformComponent)
		if !ok {
			continue
		}
		dx := origin.X() - tr.Pos.X()
		dz := origin.Z() - tr.Pos.Z()
		switch rec.def.Shape.Kind {
		case ShapeSphere:
			if dx*dx+dz*dz > rec.def.Shape.Radius*rec.def.Shape.Radius {
				continue
			}
		case ShapeBox:
			if math.Abs(dx) > rec.def.Shape.HalfExtents.X() || math.Abs(dz) > rec.def.Shape.HalfExtents.Z() {
				continue
			}
		}
		top := tr.Pos.Y() + rec.def.Shape.height()
		if top > origin.Y()+1e-3 {
			continue // overhead geometry is not ground
		}
		if top > best {
			best = top
			found = true
		}
	}
	return best, found
}

// OverlapSphere returns the entities whose colliders intersect the sphere.
// It returns an empty slice, never an error, on any query failure. Degraded
// mode substitutes a deterministic center-distance scan with FallbackPad as
// the stand-in collider size.
func (pw *PhysicsWorld) OverlapSphere(center mgl64.Vec3, radius float64) []Entity {
	if radius <= 0 {
		return nil
	}
	if !pw.ready {
		return pw.overlapFallback(center, radius)
	}

	var out []Entity
	seen := make(map[Entity]bool)
	bb := cp.BB{
		L: center.X() - radius, B: center.Z() - radius,
		R: center.X() + radius, T: center.Z() + radius,
	}
	pw.space.BBQuery(bb, cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, _ interface{}) {
		e, ok := pw.shapeToEntity[shape]
		if !ok || seen[e] {
			return
		}
		rec := pw.bodies[e]
		if rec == nil || !pw.world.IsAlive(e) {
			return
		}
		tr, ok := Get(pw.world, e, component.TransformComponent)
		if !ok {
			return
		}
		if !sphereTouches(center, radius, tr.Pos, rec.def.Shape.planarRadius(), rec.def.Shape.height()) {
			return
		}
		seen[e] = true
		out = append(out, e)
	}, nil)
	return out
}

func (pw *PhysicsWorld) overlapFallback(center mgl64.Vec3, radius float64) []Entity {
	pad := pw.cfg.FallbackPad
	var out []Entity
	Each(pw.world, component.TransformComponent, func(e Entity, tr *component.Transform) {
		if sphereTouches(center, radius, tr.Pos, pad, 2*pad) {
			out = append(out, e)
		}
	})
	return out
}

func sphereTouches(center mgl64.Vec3, radius float64, base mgl64.Vec3, planarR, height float64) bool {
	dx := center.X() - base.X()
	dz := center.Z() - base.Z()
	reach := radius + planarR
	if dx*dx+dz*dz > reach*reach {
		return false
	}
	return center.Y() >= base.Y()-radius && center.Y() <= base.Y()+height+radius
}

func planarVector(v mgl64.Vec3) cp.Vector {
	return cp.Vector{X: v.X(), Y: v.Z()}
}
