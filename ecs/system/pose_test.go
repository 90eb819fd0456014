package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pawbox/pawbox/ecs"
	"github.com/pawbox/pawbox/ecs/component"
	"github.com/pawbox/pawbox/prefabs"
)

func TestRigParentsPrecedeChildren(t *testing.T) {
	for _, rig := range []component.Skeleton{BuildCatRig(), BuildVacuumRig()} {
		for i, b := range rig.Bones {
			assert.Less(t, b.Parent, i, "bone %s", b.Name)
		}
	}
}

type poseFixture struct {
	w      *ecs.World
	tuning *prefabs.Tuning
	swipe  *SwipeSystem
	sys    *PoseSystem
	player ecs.Entity
}

func newPoseFixture(t *testing.T) *poseFixture {
	t.Helper()
	w := ecs.NewWorld()
	cfg := ecs.DefaultPhysicsConfig()
	cfg.Backend = "null"
	pw := ecs.NewPhysicsWorld(w, cfg, zap.NewNop())
	pw.Init()

	tuning := prefabs.DefaultTuning()
	swipe := NewSwipeSystem(&tuning, pw, newStubPresenter(), ecs.NewTopic[SwipeHit]())

	player := w.CreateEntity()
	w.SetPlayer(player)
	ecs.Add(w, player, component.TransformComponent, component.Transform{Pos: mgl64.Vec3{1, 0, 1}})
	ecs.Add(w, player, component.InfoComponent, component.Info{Kind: component.KindPlayer})
	ecs.Add(w, player, component.PlayerTagComponent, component.PlayerTag{})
	ecs.Add(w, player, component.IntentComponent, component.Intent{})
	ecs.Add(w, player, component.SkeletonComponent, BuildCatRig())

	return &poseFixture{
		w:      w,
		tuning: &tuning,
		swipe:  swipe,
		sys:    NewPoseSystem(&tuning, swipe),
		player: player,
	}
}

func (f *poseFixture) skeleton() component.Skeleton {
	s, _ := ecs.Get(f.w, f.player, component.SkeletonComponent)
	return s
}

func TestPoseFollowsRootTransform(t *testing.T) {
	f := newPoseFixture(t)
	f.sys.Update(f.w, 0.016)

	skel := f.skeleton()
	root := skel.Bones[skel.Find("root")]
	assert.Equal(t, mgl64.Vec3{1, 0.18, 1}, root.WorldPos)

	// children stack their rest offsets on the parent chain
	head := skel.Bones[skel.Find("head")]
	assert.InDelta(t, 0.32, head.WorldPos.Y(), 1e-9)

	wrist := skel.Bones[skel.Find("wrist_l")]
	shoulder := skel.Bones[skel.Find("shoulder_l")]
	assert.Less(t, wrist.WorldPos.Y(), shoulder.WorldPos.Y(), "resting paws hang down")
}

func TestPoseSwingsPawDuringSwipe(t *testing.T) {
	f := newPoseFixture(t)

	ecs.Add(f.w, f.player, component.IntentComponent, component.Intent{SwipeRight: true})
	f.swipe.Update(f.w, 0.04)
	ecs.Add(f.w, f.player, component.IntentComponent, component.Intent{})
	f.swipe.Update(f.w, 0.04)
	require.Equal(t, SwipeStartup, f.swipe.Phase(SideRight))

	f.sys.Update(f.w, 0.016)
	skel := f.skeleton()
	right := skel.Bones[skel.Find("shoulder_r")]
	left := skel.Bones[skel.Find("shoulder_l")]
	assert.Less(t, right.LocalRot[0], 0.0, "the striking paw winds up")
	assert.Equal(t, 0.0, left.LocalRot[0], "the idle paw stays put")

	elbow := skel.Bones[skel.Find("elbow_r")]
	assert.InDelta(t, right.LocalRot[0]/2, elbow.LocalRot[0], 1e-9)
}

func TestPoseAimsHeadWithGaze(t *testing.T) {
	f := newPoseFixture(t)
	ecs.Add(f.w, f.player, component.GazeComponent, component.Gaze{Yaw: 0.5, Pitch: 0.2})

	f.sys.Update(f.w, 0.016)
	skel := f.skeleton()
	head := skel.Bones[skel.Find("head")]
	assert.Equal(t, mgl64.Vec3{-0.2, 0.5, 0}, head.LocalRot)
}
