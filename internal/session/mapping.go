package session

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/abhisek/examsim/internal/bank"
)

// ChoiceMapping is a per-question bijection from display key (the option
// label the user sees) to canonical key (the label authored in the bank).
// Both key sets are the question's own option keys; only the pairing is
// permuted. Scoring depends entirely on this being a total bijection.
type ChoiceMapping map[string]string

// BuildMapping creates a fresh mapping for q by pairing the question's
// canonical keys, in sorted order, with an independent random permutation of
// the same keys. Each question gets its own shuffle; no state is shared
// across questions.
func BuildMapping(rng *rand.Rand, q *bank.Question) ChoiceMapping {
	keys := q.OptionKeys()
	permuted := Shuffle(rng, keys)

	m := make(ChoiceMapping, len(keys))
	for i, k := range keys {
		m[k] = permuted[i]
	}
	return m
}

// Canonical returns the canonical key behind display key d, and whether d is
// a valid display key for this mapping.
func (m ChoiceMapping) Canonical(d string) (string, bool) {
	c, ok := m[d]
	return c, ok
}

// DisplayKeyFor returns the display key under which the canonical key c
// appears, i.e. the unique d with m[d] == c. A miss means the mapping or the
// question's correct_answer is malformed; callers treat that as a fatal
// data-integrity error, never as a normal miss.
func (m ChoiceMapping) DisplayKeyFor(c string) (string, error) {
	for d, canonical := range m {
		if canonical == c {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: canonical key %q has no display key", ErrIntegrity, c)
}

// DisplayKeys returns the mapping's display keys in sorted order, the order
// options are presented in.
func (m ChoiceMapping) DisplayKeys() []string {
	keys := make([]string, 0, len(m))
	for d := range m {
		keys = append(keys, d)
	}
	sort.Strings(keys)
	return keys
}

// Validate checks that m is a total bijection over the option keys of q.
func (m ChoiceMapping) Validate(q *bank.Question) error {
	if len(m) != len(q.Options) {
		return fmt.Errorf("%w: question %s: mapping has %d entries for %d options",
			ErrIntegrity, q.ID, len(m), len(q.Options))
	}
	seen := make(map[string]bool, len(m))
	for d, c := range m {
		if _, ok := q.Options[d]; !ok {
			return fmt.Errorf("%w: question %s: display key %q is not an option key",
				ErrIntegrity, q.ID, d)
		}
		if _, ok := q.Options[c]; !ok {
			return fmt.Errorf("%w: question %s: canonical key %q is not an option key",
				ErrIntegrity, q.ID, c)
		}
		if seen[c] {
			return fmt.Errorf("%w: question %s: canonical key %q mapped twice",
				ErrIntegrity, q.ID, c)
		}
		seen[c] = true
	}
	return nil
}
