package game

import "github.com/gokatarajesh/trivia-arena/internal/question"

// AvailableByTier groups the not-yet-presented session questions per tier,
// preserving session order. Every tier is present in the result, exhausted
// tiers map to an empty slice.
func AvailableByTier(session []question.Question, used map[int]bool) map[question.Difficulty][]question.Question {
	avail := make(map[question.Difficulty][]question.Question, len(question.Difficulties))
	for _, tier := range question.Difficulties {
		avail[tier] = nil
	}
	for _, q := range session {
		if !used[q.ID] {
			avail[q.Difficulty] = append(avail[q.Difficulty], q)
		}
	}
	return avail
}

// AvailableCounts reports how many questions remain selectable per tier.
// Recomputed from scratch on every call, so it can never go stale.
func AvailableCounts(session []question.Question, used map[int]bool) map[question.Difficulty]int {
	counts := make(map[question.Difficulty]int, len(question.Difficulties))
	for _, tier := range question.Difficulties {
		counts[tier] = 0
	}
	for _, q := range session {
		if !used[q.ID] {
			counts[q.Difficulty]++
		}
	}
	return counts
}
