package system

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/pawbox/pawbox/common"
	"github.com/pawbox/pawbox/ecs"
	"github.com/pawbox/pawbox/ecs/component"
	"github.com/pawbox/pawbox/prefabs"
)

// PoseSystem animates the skeletal arenas: the cat's paw chains follow the
// swipe cycle and both heads follow the gaze channel, then every skeleton's
// world transforms are recomputed in a single parent-first pass.
type PoseSystem struct {
	tuning *prefabs.Tuning
	swipe  *SwipeSystem
}

func NewPoseSystem(tuning *prefabs.Tuning, swipe *SwipeSystem) *PoseSystem {
	return &PoseSystem{tuning: tuning, swipe: swipe}
}

// BuildCatRig returns the cat's bone arena. Parents always precede children.
func BuildCatRig() component.Skeleton {
	return component.Skeleton{Bones: []component.Bone{
		{Name: "root", Parent: -1, Offset: mgl64.Vec3{0, 0.18, 0}},
		{Name: "neck", Parent: 0, Offset: mgl64.Vec3{0, 0.08, 0.12}},
		{Name: "head", Parent: 1, Offset: mgl64.Vec3{0, 0.06, 0.05}},
		{Name: "shoulder_l", Parent: 0, Offset: mgl64.Vec3{-0.08, 0, 0.1}},
		{Name: "elbow_l", Parent: 3, Offset: mgl64.Vec3{0, -0.09, 0}},
		{Name: "wrist_l", Parent: 4, Offset: mgl64.Vec3{0, -0.08, 0}},
		{Name: "shoulder_r", Parent: 0, Offset: mgl64.Vec3{0.08, 0, 0.1}},
		{Name: "elbow_r", Parent: 6, Offset: mgl64.Vec3{0, -0.09, 0}},
		{Name: "wrist_r", Parent: 7, Offset: mgl64.Vec3{0, -0.08, 0}},
	}}
}

// BuildVacuumRig returns the vacuum's bone arena: a body disc and a sensor
// head on a pivot.
func BuildVacuumRig() component.Skeleton {
	return component.Skeleton{Bones: []component.Bone{
		{Name: "root", Parent: -1, Offset: mgl64.Vec3{0, 0.06, 0}},
		{Name: "head", Parent: 0, Offset: mgl64.Vec3{0, 0.14, 0.05}},
	}}
}

func (p *PoseSystem) Update(w *ecs.World, _ float64) {
	ecs.Each(w, component.SkeletonComponent, func(e ecs.Entity, skel *component.Skeleton) {
		tr, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			return
		}
		skel.ResetPose()

		if ecs.Has(w, e, component.PlayerTagComponent) {
			p.posePaw(skel, SideLeft, "shoulder_l", "elbow_l")
			p.posePaw(skel, SideRight, "shoulder_r", "elbow_r")
		}
		if gaze, ok := ecs.Get(w, e, component.GazeComponent); ok {
			if head := skel.Find("head"); head >= 0 {
				skel.Bones[head].LocalRot = mgl64.Vec3{-gaze.Pitch, gaze.Yaw, 0}
			}
		}

		computeWorldPose(skel, tr)
	})
}

// posePaw swings the shoulder through windup, strike, and return, with the
// elbow trailing at half the angle.
func (p *PoseSystem) posePaw(skel *component.Skeleton, side Side, shoulder, elbow string) {
	var pitch float64
	progress := p.swipe.PhaseProgress(side)
	switch p.swipe.Phase(side) {
	case SwipeStartup:
		pitch = common.Lerp(0, -0.7, progress)
	case SwipeActive:
		pitch = common.Lerp(-0.7, 1.1, progress)
	case SwipeRecovery:
		pitch = common.Lerp(1.1, 0, progress)
	default:
		return
	}

	if i := skel.Find(shoulder); i >= 0 {
		skel.Bones[i].LocalRot = mgl64.Vec3{pitch, 0, 0}
	}
	if i := skel.Find(elbow); i >= 0 {
		skel.Bones[i].LocalRot = mgl64.Vec3{pitch / 2, 0, 0}
	}
}

// computeWorldPose walks the arena once, parent-first. The arena invariant
// (parent index < child index) makes this a plain forward loop.
func computeWorldPose(skel *component.Skeleton, tr component.Transform) {
	rootRot := mgl64.AnglesToQuat(tr.Rot[0], tr.Rot[1], tr.Rot[2], mgl64.XYZ)
	for i := range skel.Bones {
		b := &skel.Bones[i]
		if b.Parent >= i {
			panic("pose: bone parent must precede child in the arena")
		}

		parentPos := tr.Pos
		parentRot := rootRot
		if b.Parent >= 0 {
			parentPos = skel.Bones[b.Parent].WorldPos
			parentRot = skel.Bones[b.Parent].WorldRot
		}

		local := mgl64.AnglesToQuat(b.LocalRot[0], b.LocalRot[1], b.LocalRot[2], mgl64.XYZ)
		b.WorldPos = parentPos.Add(parentRot.Rotate(b.Offset))
		b.WorldRot = parentRot.Mul(local)
	}
}
