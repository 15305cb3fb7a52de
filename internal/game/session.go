package game

import (
	"math/rand"

	"github.com/gokatarajesh/trivia-arena/internal/question"
)

// DefaultTierQuota caps how many questions of each tier a session holds.
const DefaultTierQuota = 10

// BuildSession draws a fresh session from the bank: for every tier in
// ascending order, shuffle that tier's questions and keep at most quota of
// them. Tiers short on questions contribute what they have; an empty bank
// yields an empty session. The result is frozen for the whole game.
func BuildSession(bank []question.Question, rng *rand.Rand, quota int) []question.Question {
	if quota <= 0 {
		quota = DefaultTierQuota
	}
	session := make([]question.Question, 0, quota*len(question.Difficulties))
	for _, tier := range question.Difficulties {
		var pool []question.Question
		for _, q := range bank {
			if q.Difficulty == tier {
				pool = append(pool, q)
			}
		}
		rng.Shuffle(len(pool), func(i, j int) {
			pool[i], pool[j] = pool[j], pool[i]
		})
		if len(pool) > quota {
			pool = pool[:quota]
		}
		session = append(session, pool...)
	}
	return session
}
