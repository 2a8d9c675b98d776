package game

import (
	"slices"
	"time"
)

// Archetype names a bot personality.
type Archetype string

const (
	Hostile Archetype = "hostile"
	Careful Archetype = "careful"
	Greedy  Archetype = "greedy"
	Extreme Archetype = "extreme"
)

// DangerPolicy selects how a bot decides that a cell is threatened.
type DangerPolicy int

const (
	// BombsOnly treats only bomb cells (and live explosions) as dangerous.
	BombsOnly DangerPolicy = iota
	// ExplosionRange treats every cell a bomb's blast would reach as dangerous.
	ExplosionRange
)

// TargetPolicy selects how a bot picks among candidate targets.
type TargetPolicy int

const (
	// PolicyFirst picks the nearest candidate.
	PolicyFirst TargetPolicy = iota
	// PolicySecond picks a random candidate.
	PolicySecond
)

// BotTuning is the bundle of knobs that tells archetypes apart.
type BotTuning struct {
	ReevaluationInterval time.Duration `json:"reevaluation_interval"`
	ReevaluationChance   float64       `json:"reevaluation_chance"`
	DangerCheckDistance  int           `json:"danger_check_distance"`
	AttackPlantDistance  int           `json:"attack_plant_distance"`
	AttackTargetDistance int           `json:"attack_target_distance"`
	DangerDetection      DangerPolicy  `json:"danger_detection"`
	AttackPolicy         TargetPolicy  `json:"attack_policy"`
	PowerupPolicy        TargetPolicy  `json:"powerup_policy"`
	PowerupPolicyChance  float64       `json:"powerup_policy_chance"`
}

var archetypes = map[Archetype]BotTuning{
	Hostile: {
		ReevaluationInterval: 500 * time.Millisecond,
		ReevaluationChance:   0.25,
		DangerCheckDistance:  0,
		AttackPlantDistance:  2,
		AttackTargetDistance: 15,
		DangerDetection:      BombsOnly,
		AttackPolicy:         PolicySecond,
		PowerupPolicy:        PolicySecond,
		PowerupPolicyChance:  0.2,
	},
	Careful: {
		ReevaluationInterval: 250 * time.Millisecond,
		ReevaluationChance:   1.0,
		DangerCheckDistance:  4,
		AttackPlantDistance:  4,
		AttackTargetDistance: 3,
		DangerDetection:      ExplosionRange,
		AttackPolicy:         PolicyFirst,
		PowerupPolicy:        PolicySecond,
		PowerupPolicyChance:  1.0,
	},
	Greedy: {
		ReevaluationInterval: 1 * time.Second,
		ReevaluationChance:   1.0,
		DangerCheckDistance:  2,
		AttackPlantDistance:  3,
		AttackTargetDistance: 6,
		DangerDetection:      ExplosionRange,
		AttackPolicy:         PolicyFirst,
		PowerupPolicy:        PolicyFirst,
		PowerupPolicyChance:  1.0,
	},
	Extreme: {
		ReevaluationInterval: 100 * time.Millisecond,
		ReevaluationChance:   0.1,
		DangerCheckDistance:  10,
		AttackPlantDistance:  10,
		AttackTargetDistance: 15,
		DangerDetection:      ExplosionRange,
		AttackPolicy:         PolicySecond,
		PowerupPolicy:        PolicyFirst,
		PowerupPolicyChance:  1.0,
	},
}

// LookupArchetype returns the tuning preset for an archetype.
func LookupArchetype(a Archetype) (BotTuning, bool) {
	t, ok := archetypes[a]
	return t, ok
}

// Archetypes lists every known archetype in name order.
func Archetypes() []Archetype {
	out := make([]Archetype, 0, len(archetypes))
	for a := range archetypes {
		out = append(out, a)
	}
	slices.Sort(out)
	return out
}
