package archetype

import (
	"testing"

	"github.com/exhale-health/exhale/internal/domain"
)

func TestClassifyEscapist(t *testing.T) {
	got := Classify(
		[]domain.Trigger{domain.TriggerBoredom},
		[]domain.EmotionalState{domain.StateLonely},
	)
	if got != domain.ArchetypeEscapist {
		t.Errorf("Classify = %s, want %s", got, domain.ArchetypeEscapist)
	}
}

func TestClassifyStressReactor(t *testing.T) {
	got := Classify(
		[]domain.Trigger{domain.TriggerStress},
		[]domain.EmotionalState{domain.StateAnxious, domain.StateAngry},
	)
	if got != domain.ArchetypeStressReactor {
		t.Errorf("Classify = %s, want %s", got, domain.ArchetypeStressReactor)
	}
}

func TestClassifyEmptyInputs(t *testing.T) {
	if got := Classify(nil, nil); got != domain.ArchetypeAutoPilot {
		t.Errorf("Classify(nil, nil) = %s, want %s", got, domain.ArchetypeAutoPilot)
	}
}

func TestClassifyOnlyUnscoredInputs(t *testing.T) {
	got := Classify([]domain.Trigger{domain.TriggerOther}, nil)
	if got != domain.ArchetypeAutoPilot {
		t.Errorf("Classify = %s, want %s when nothing scores", got, domain.ArchetypeAutoPilot)
	}
}

func TestClassifyTieBreak(t *testing.T) {
	// Boredom and stress both score 3 — the tie goes to Escapist.
	got := Classify(
		[]domain.Trigger{domain.TriggerStress, domain.TriggerBoredom},
		nil,
	)
	if got != domain.ArchetypeEscapist {
		t.Errorf("Classify = %s, want %s on a tie", got, domain.ArchetypeEscapist)
	}
}

func TestClassifyDuplicatesScoreOnce(t *testing.T) {
	// Repeating stress must not outweigh a single boredom + lonely pair.
	got := Classify(
		[]domain.Trigger{domain.TriggerStress, domain.TriggerStress, domain.TriggerBoredom},
		[]domain.EmotionalState{domain.StateLonely},
	)
	if got != domain.ArchetypeEscapist {
		t.Errorf("Classify = %s, want %s (duplicates are a set)", got, domain.ArchetypeEscapist)
	}
}

func TestClassifyOrderIndependent(t *testing.T) {
	a := Classify(
		[]domain.Trigger{domain.TriggerSocial, domain.TriggerHabit},
		[]domain.EmotionalState{domain.StateHappy, domain.StateExcited},
	)
	b := Classify(
		[]domain.Trigger{domain.TriggerHabit, domain.TriggerSocial},
		[]domain.EmotionalState{domain.StateExcited, domain.StateHappy},
	)
	if a != b {
		t.Errorf("input order changed the label: %s vs %s", a, b)
	}
	if a != domain.ArchetypeSocialMirror {
		t.Errorf("Classify = %s, want %s (social 3+1+1 beats habit 3)", a, domain.ArchetypeSocialMirror)
	}
}

func TestClassifyDeterministic(t *testing.T) {
	triggers := []domain.Trigger{domain.TriggerHabit, domain.TriggerStress}
	states := []domain.EmotionalState{domain.StateSad, domain.StateBored}

	first := Classify(triggers, states)
	for i := 0; i < 50; i++ {
		if got := Classify(triggers, states); got != first {
			t.Fatalf("run %d: got %s, want %s", i, got, first)
		}
	}
}
