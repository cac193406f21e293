package quiz

import (
	"math/rand/v2"

	"github.com/milongahq/tangotune/internal/catalog"
)

// DistractorStrategy selects how wrong answer options are chosen.
type DistractorStrategy string

const (
	// DistractorsAffinity prefers performers sharing at least one tag with
	// the correct one (a vals orchestra gets vals distractors), falling back
	// to the whole eligible pool when fewer than three qualify.
	DistractorsAffinity DistractorStrategy = "affinity"
	// DistractorsUniform samples uniformly from all other performers.
	DistractorsUniform DistractorStrategy = "uniform"
)

const distractorCount = 3

// Distractors picks up to three wrong answer names for the given correct
// performer. Never includes the correct name, never duplicates, and returns
// fewer than three only when the pool cannot supply them.
func Distractors(rng *rand.Rand, correct catalog.Performer, pool []catalog.Performer, strategy DistractorStrategy) []string {
	others := make([]catalog.Performer, 0, len(pool))
	for _, p := range pool {
		if p.Name != correct.Name {
			others = append(others, p)
		}
	}

	candidates := others
	if strategy == DistractorsAffinity {
		kin := make([]catalog.Performer, 0, len(others))
		for _, p := range others {
			if catalog.SharesTag(correct, p) {
				kin = append(kin, p)
			}
		}
		if len(kin) >= distractorCount {
			candidates = kin
		}
	}

	sample := make([]catalog.Performer, len(candidates))
	copy(sample, candidates)
	rng.Shuffle(len(sample), func(i, j int) {
		sample[i], sample[j] = sample[j], sample[i]
	})

	n := min(distractorCount, len(sample))
	names := make([]string, 0, n)
	for _, p := range sample[:n] {
		names = append(names, p.Name)
	}
	return names
}

// AnswerSet builds the full option list for a round: the correct name plus
// distractors, in random order.
func AnswerSet(rng *rand.Rand, correct catalog.Performer, pool []catalog.Performer, strategy DistractorStrategy) []string {
	set := append(Distractors(rng, correct, pool, strategy), correct.Name)
	rng.Shuffle(len(set), func(i, j int) {
		set[i], set[j] = set[j], set[i]
	})
	return set
}
