// Package analytics derives per-topic aggregates from completed sessions.
// Everything here is computed from the CompletedSession record alone.
package analytics

import (
	"fmt"
	"sort"

	"github.com/abhisek/examsim/internal/session"
)

// TopicStats tallies performance within one bok_reference topic.
type TopicStats struct {
	Topic     string
	Total     int
	Attempted int
	Correct   int
}

// Accuracy returns correct/total, or 0 for an empty topic.
func (t TopicStats) Accuracy() float64 {
	if t.Total == 0 {
		return 0
	}
	return float64(t.Correct) / float64(t.Total)
}

// ByTopic aggregates a completed session per bok_reference, in question-set
// encounter order. Questions with an empty bok_reference group under
// "(untagged)".
func ByTopic(cs *session.CompletedSession) ([]TopicStats, error) {
	index := make(map[string]int)
	var out []TopicStats

	for i := range cs.QuestionSet {
		q := &cs.QuestionSet[i]
		topic := q.BokReference
		if topic == "" {
			topic = "(untagged)"
		}

		idx, ok := index[topic]
		if !ok {
			idx = len(out)
			index[topic] = idx
			out = append(out, TopicStats{Topic: topic})
		}

		m := cs.Mapping(q.ID)
		if m == nil {
			return nil, fmt.Errorf("%w: question %s has no choice mapping", session.ErrIntegrity, q.ID)
		}
		correctDisplay, err := m.DisplayKeyFor(q.CorrectAnswer)
		if err != nil {
			return nil, fmt.Errorf("question %s: %w", q.ID, err)
		}

		out[idx].Total++
		if answer, answered := cs.Answer(q.ID); answered {
			out[idx].Attempted++
			if answer == correctDisplay {
				out[idx].Correct++
			}
		}
	}

	return out, nil
}

// WeakestTopics returns up to n topics sorted by ascending accuracy, ties
// broken by topic name for stable output.
func WeakestTopics(stats []TopicStats, n int) []TopicStats {
	sorted := make([]TopicStats, len(stats))
	copy(sorted, stats)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Accuracy() != sorted[j].Accuracy() {
			return sorted[i].Accuracy() < sorted[j].Accuracy()
		}
		return sorted[i].Topic < sorted[j].Topic
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}
