package component

import "github.com/go-gl/mathgl/mgl64"

// Bone is one node in a pose arena. Parent indexes into the same slice and
// is always smaller than the bone's own index, so a single forward pass
// computes every world transform parent-first. No pointers between bones.
type Bone struct {
	Name   string
	Parent int // -1 for the root

	Offset   mgl64.Vec3 // rest offset in the parent's local frame
	LocalRot mgl64.Vec3 // XYZ euler, animated each tick

	WorldPos mgl64.Vec3
	WorldRot mgl64.Quat
}

// Skeleton is a flat arena of bones for one rigged entity.
type Skeleton struct {
	Bones []Bone
}

// Find returns the index of the named bone, or -1.
func (s *Skeleton) Find(name string) int {
	for i := range s.Bones {
		if s.Bones[i].Name == name {
			return i
		}
	}
	return -1
}

// ResetPose zeroes every animated local rotation in one pass.
func (s *Skeleton) ResetPose() {
	for i := range s.Bones {
		s.Bones[i].LocalRot = mgl64.Vec3{}
	}
}

var SkeletonComponent = NewComponent[Skeleton]()
