package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// LoadSpec reads and unmarshals a named YAML prefab.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return spec, nil
}

// Tuning is the full simulation tuning sheet. Values not present in the YAML
// keep their defaults.
type Tuning struct {
	Physics PhysicsTuning `yaml:"physics"`
	Player  PlayerTuning  `yaml:"player"`
	Swipe   SwipeTuning   `yaml:"swipe"`
	Vacuum  VacuumTuning  `yaml:"vacuum"`
	World   WorldTuning   `yaml:"world"`
	Score   ScoreTuning   `yaml:"score"`
}

type PhysicsTuning struct {
	Backend       string  `yaml:"backend"`
	MaxStep       float64 `yaml:"max_step"`
	Gravity       float64 `yaml:"gravity"`
	Damping       float64 `yaml:"damping"`
	Iterations    uint    `yaml:"iterations"`
	GroundEpsilon float64 `yaml:"ground_epsilon"`
	FallbackPad   float64 `yaml:"fallback_pad"`
}

type PlayerTuning struct {
	Speed       float64 `yaml:"speed"`
	GroundProbe float64 `yaml:"ground_probe"`
}

type SwipeTuning struct {
	Startup      float64 `yaml:"startup"`
	Active       float64 `yaml:"active"`
	Recovery     float64 `yaml:"recovery"`
	Reach        float64 `yaml:"reach"`
	Height       float64 `yaml:"height"`
	Radius       float64 `yaml:"radius"`
	Impulse      float64 `yaml:"impulse"`
	UpBias       float64 `yaml:"up_bias"`
	ShoveSpeed   float64 `yaml:"shove_speed"`
	Presentation float64 `yaml:"presentation"`
}

type VacuumTuning struct {
	PersonalSpace     float64 `yaml:"personal_space"`
	Hysteresis        float64 `yaml:"hysteresis"`
	RecoverDelay      float64 `yaml:"recover_delay"`
	ReactionCooldown  float64 `yaml:"reaction_cooldown"`
	WalkSpeed         float64 `yaml:"walk_speed"`
	AvoidSpeed        float64 `yaml:"avoid_speed"`
	Accel             float64 `yaml:"accel"`
	TurnRate          float64 `yaml:"turn_rate"`
	WanderIntervalMin float64 `yaml:"wander_interval_min"`
	WanderIntervalMax float64 `yaml:"wander_interval_max"`
	WanderRadius      float64 `yaml:"wander_radius"`
	StepBack          float64 `yaml:"step_back"`
	MinSeparation     float64 `yaml:"min_separation"`
	AwarenessRadius   float64 `yaml:"awareness_radius"`
	GazeMaxYaw        float64 `yaml:"gaze_max_yaw"`
	GazeMaxPitch      float64 `yaml:"gaze_max_pitch"`
	GazeSpeed         float64 `yaml:"gaze_speed"`
	HeadHeight        float64 `yaml:"head_height"`
	GestureTime       float64 `yaml:"gesture_time"`
	PokeScript        string  `yaml:"poke_script"`
}

type WorldTuning struct {
	Bound float64 `yaml:"bound"`
}

type ScoreTuning struct {
	Knock   int `yaml:"knock"`
	Scratch int `yaml:"scratch"`
}

// DefaultTuning returns the built-in tuning sheet.
func DefaultTuning() Tuning {
	return Tuning{
		Physics: PhysicsTuning{
			Backend:       "chipmunk",
			MaxStep:       0.1,
			Gravity:       -9.8,
			Damping:       0.25,
			Iterations:    20,
			GroundEpsilon: 0.05,
			FallbackPad:   0.3,
		},
		Player: PlayerTuning{
			Speed:       1.6,
			GroundProbe: 0.05,
		},
		Swipe: SwipeTuning{
			Startup:      0.08,
			Active:       0.18,
			Recovery:     0.22,
			Reach:        0.45,
			Height:       0.25,
			Radius:       0.3,
			Impulse:      2.6,
			UpBias:       1.2,
			ShoveSpeed:   1.8,
			Presentation: 0.4,
		},
		Vacuum: VacuumTuning{
			PersonalSpace:     1.8,
			Hysteresis:        0.5,
			RecoverDelay:      2.0,
			ReactionCooldown:  1.2,
			WalkSpeed:         0.6,
			AvoidSpeed:        1.4,
			Accel:             2.0,
			TurnRate:          6.0,
			WanderIntervalMin: 2.0,
			WanderIntervalMax: 5.0,
			WanderRadius:      1.5,
			StepBack:          0.35,
			MinSeparation:     0.6,
			AwarenessRadius:   2.5,
			GazeMaxYaw:        1.2,
			GazeMaxPitch:      0.6,
			GazeSpeed:         4.0,
			HeadHeight:        0.25,
			GestureTime:       0.8,
			PokeScript:        "scripts/vacuum_poked.tengo",
		},
		World: WorldTuning{Bound: 3.8},
		Score: ScoreTuning{Knock: 10, Scratch: 25},
	}
}

// LoadTuning overlays tuning.yaml onto the defaults.
func LoadTuning() (Tuning, error) {
	t := DefaultTuning()
	data, err := Load("tuning.yaml")
	if err != nil {
		return t, fmt.Errorf("prefabs: load tuning.yaml: %w", err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return DefaultTuning(), fmt.Errorf("prefabs: unmarshal tuning.yaml: %w", err)
	}
	return t, nil
}

// SceneSpec lays out the demo room.
type SceneSpec struct {
	Player PlayerSpec `yaml:"player"`
	Vacuum VacuumSpec `yaml:"vacuum"`
	Props  []PropSpec `yaml:"props"`
}

type PlayerSpec struct {
	Position [3]float64 `yaml:"position"`
	Yaw      float64    `yaml:"yaw"`
}

type VacuumSpec struct {
	Position [3]float64 `yaml:"position"`
	Yaw      float64    `yaml:"yaw"`
}

type PropSpec struct {
	Name        string     `yaml:"name"`
	Kind        string     `yaml:"kind"` // static, knockable, scratchable, other
	Position    [3]float64 `yaml:"position"`
	Yaw         float64    `yaml:"yaw"`
	Shape       string     `yaml:"shape"` // box, sphere
	HalfExtents [3]float64 `yaml:"half_extents"`
	Radius      float64    `yaml:"radius"`
	Density     float64    `yaml:"density"`
	Friction    float64    `yaml:"friction"`
	Restitution float64    `yaml:"restitution"`
	Increment   float64    `yaml:"increment"` // scratch progress per hit
}

// LoadScene reads scene.yaml.
func LoadScene() (SceneSpec, error) {
	return LoadSpec[SceneSpec]("scene.yaml")
}
