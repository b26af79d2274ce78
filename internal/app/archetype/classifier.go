// Package archetype implements the quit-archetype classifier: a pure
// scoring function mapping trigger and emotional-state sets to one of
// four behavioral labels.
package archetype

import "github.com/exhale-health/exhale/internal/domain"

// Fixed trigger weights. TriggerOther carries no weight.
var triggerScores = map[domain.Trigger]scoredArchetype{
	domain.TriggerBoredom: {domain.ArchetypeEscapist, 3},
	domain.TriggerStress:  {domain.ArchetypeStressReactor, 3},
	domain.TriggerSocial:  {domain.ArchetypeSocialMirror, 3},
	domain.TriggerHabit:   {domain.ArchetypeAutoPilot, 3},
}

// Fixed emotional-state weights.
var stateScores = map[domain.EmotionalState]scoredArchetype{
	domain.StateBored:    {domain.ArchetypeEscapist, 2},
	domain.StateLonely:   {domain.ArchetypeEscapist, 2},
	domain.StateSad:      {domain.ArchetypeEscapist, 1},
	domain.StateStressed: {domain.ArchetypeStressReactor, 2},
	domain.StateAnxious:  {domain.ArchetypeStressReactor, 2},
	domain.StateAngry:    {domain.ArchetypeStressReactor, 1},
	domain.StateHappy:    {domain.ArchetypeSocialMirror, 1},
	domain.StateExcited:  {domain.ArchetypeSocialMirror, 1},
}

type scoredArchetype struct {
	archetype domain.Archetype
	points    int
}

// precedence is the fixed tie-break order. Ties on a positive maximum go
// to the earliest entry; a zero maximum (nothing matched, including empty
// inputs) always yields AutoPilot.
var precedence = [4]domain.Archetype{
	domain.ArchetypeEscapist,
	domain.ArchetypeStressReactor,
	domain.ArchetypeSocialMirror,
	domain.ArchetypeAutoPilot,
}

// Classify assigns a quit archetype from the user's smoking triggers and
// emotional states. Pure and total: it never fails and always returns
// exactly one label. Inputs are sets — repeated values score once.
func Classify(triggers []domain.Trigger, states []domain.EmotionalState) domain.Archetype {
	scores := make(map[domain.Archetype]int, len(precedence))

	seenTriggers := make(map[domain.Trigger]bool, len(triggers))
	for _, t := range triggers {
		if seenTriggers[t] {
			continue
		}
		seenTriggers[t] = true
		if s, ok := triggerScores[t]; ok {
			scores[s.archetype] += s.points
		}
	}

	seenStates := make(map[domain.EmotionalState]bool, len(states))
	for _, st := range states {
		if seenStates[st] {
			continue
		}
		seenStates[st] = true
		if s, ok := stateScores[st]; ok {
			scores[s.archetype] += s.points
		}
	}

	best := domain.ArchetypeAutoPilot
	bestScore := 0
	for _, a := range precedence {
		if scores[a] > bestScore {
			best = a
			bestScore = scores[a]
		}
	}
	return best
}
