package game

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/trivia-arena/internal/question"
)

var tierPoints = map[question.Difficulty]int{
	question.DifficultyEasy:   1,
	question.DifficultyMedium: 2,
	question.DifficultyHard:   3,
}

func testBank(perTier int) []question.Question {
	var bank []question.Question
	id := 0
	for _, tier := range question.Difficulties {
		for i := 0; i < perTier; i++ {
			id++
			bank = append(bank, question.Question{
				ID:          id,
				Difficulty:  tier,
				Category:    "Historia",
				Prompt:      fmt.Sprintf("Pregunta %d", id),
				Options:     []string{"A", "B", "C", "D"},
				Answer:      "A",
				Explanation: "La respuesta correcta es A.",
				Points:      tierPoints[tier],
			})
		}
	}
	return bank
}

func testEngine(bank []question.Question, quota int) *Engine {
	return NewEngine(bank, EngineOptions{
		TierQuota: quota,
		Rand:      rand.New(rand.NewSource(1)),
	})
}

func TestStartGameDrawsSessionWithinQuota(t *testing.T) {
	engine := testEngine(testBank(25), 10)

	state := engine.StartGame(NewState())

	assert.Equal(t, PhaseChoosingDifficulty, state.Phase)
	assert.Equal(t, 0, state.Score)
	assert.Empty(t, state.Used)
	assert.Len(t, state.Session, 30)

	counts := AvailableCounts(state.Session, state.Used)
	for _, tier := range question.Difficulties {
		assert.Equal(t, 10, counts[tier], "tier %s should be filled to quota", tier)
	}

	seen := map[int]bool{}
	for _, q := range state.Session {
		assert.False(t, seen[q.ID], "session must not repeat question %d", q.ID)
		seen[q.ID] = true
		assert.True(t, q.ID >= 1 && q.ID <= 75, "session question %d must come from the bank", q.ID)
	}
}

func TestStartGameTakesWholeTierWhenShort(t *testing.T) {
	bank := testBank(3)
	engine := testEngine(bank, 10)

	state := engine.StartGame(NewState())

	require.Len(t, state.Session, len(bank))
	got := map[int]bool{}
	for _, q := range state.Session {
		got[q.ID] = true
	}
	for _, q := range bank {
		assert.True(t, got[q.ID], "question %d missing from session", q.ID)
	}
}

func TestSelectDifficultyPresentsUnusedQuestion(t *testing.T) {
	engine := testEngine(testBank(5), 5)
	state := engine.StartGame(NewState())

	next := engine.SelectDifficulty(state, question.DifficultyEasy)

	assert.Equal(t, PhaseAnswering, next.Phase)
	require.NotNil(t, next.Current)
	assert.Equal(t, question.DifficultyEasy, next.Current.Difficulty)
	assert.True(t, next.Used[next.Current.ID])
	assert.Nil(t, next.Feedback)

	counts := AvailableCounts(next.Session, next.Used)
	assert.Equal(t, 4, counts[question.DifficultyEasy])
	assert.Equal(t, 5, counts[question.DifficultyMedium])
}

func TestSelectDifficultyIsNoOpWhenTierExhausted(t *testing.T) {
	bank := []question.Question{
		{
			ID:         1,
			Difficulty: question.DifficultyEasy,
			Prompt:     "Única pregunta fácil",
			Options:    []string{"Sí", "No"},
			Answer:     "Sí",
			Points:     1,
		},
		{
			ID:         2,
			Difficulty: question.DifficultyMedium,
			Prompt:     "Única pregunta media",
			Options:    []string{"Sí", "No"},
			Answer:     "No",
			Points:     2,
		},
	}
	engine := testEngine(bank, 10)

	state := engine.StartGame(NewState())
	state = engine.SelectDifficulty(state, question.DifficultyEasy)
	state = engine.SubmitAnswer(state, "Sí")
	state = engine.ContinueGame(state)
	require.Equal(t, PhaseChoosingDifficulty, state.Phase)

	unchanged := engine.SelectDifficulty(state, question.DifficultyEasy)
	assert.Equal(t, state, unchanged, "exhausted tier select must change nothing")

	never := engine.SelectDifficulty(state, question.DifficultyHard)
	assert.Equal(t, state, never, "tier absent from the session behaves the same")

	state = engine.SelectDifficulty(state, question.DifficultyMedium)
	assert.Equal(t, PhaseAnswering, state.Phase, "tiers with questions left keep working")
}

func TestSubmitAnswerCorrectAddsPoints(t *testing.T) {
	engine := testEngine(testBank(5), 5)
	state := engine.StartGame(NewState())
	state = engine.SelectDifficulty(state, question.DifficultyHard)
	require.NotNil(t, state.Current)

	next := engine.SubmitAnswer(state, state.Current.Answer)

	assert.Equal(t, PhaseAnswered, next.Phase)
	assert.Equal(t, tierPoints[question.DifficultyHard], next.Score)
	require.NotNil(t, next.Feedback)
	assert.True(t, next.Feedback.Correct)
	assert.Equal(t, state.Current.Answer, next.Feedback.Answer)
	require.Len(t, next.Answers, 1)
	assert.Equal(t, state.Current.ID, next.Answers[0].QuestionID)
	assert.Equal(t, tierPoints[question.DifficultyHard], next.Answers[0].Points)
}

func TestSubmitAnswerWrongKeepsScoreAndRevealsAnswer(t *testing.T) {
	engine := testEngine(testBank(5), 5)
	state := engine.StartGame(NewState())
	state = engine.SelectDifficulty(state, question.DifficultyEasy)

	next := engine.SubmitAnswer(state, "B")

	assert.Equal(t, PhaseAnswered, next.Phase)
	assert.Equal(t, 0, next.Score)
	require.NotNil(t, next.Feedback)
	assert.False(t, next.Feedback.Correct)
	assert.Equal(t, "A", next.Feedback.Answer)
	assert.Equal(t, "La respuesta correcta es A.", next.Feedback.Explanation)
	require.Len(t, next.Answers, 1)
	assert.Equal(t, 0, next.Answers[0].Points)
}

func TestSubmitAnswerRequiresExactMatch(t *testing.T) {
	engine := testEngine(testBank(5), 5)
	state := engine.StartGame(NewState())
	state = engine.SelectDifficulty(state, question.DifficultyEasy)

	next := engine.SubmitAnswer(state, "a")

	require.NotNil(t, next.Feedback)
	assert.False(t, next.Feedback.Correct, "comparison is case-sensitive")
	assert.Equal(t, 0, next.Score)
}

func TestSubmitAnswerOutsideAnsweringIsNoOp(t *testing.T) {
	engine := testEngine(testBank(5), 5)
	state := engine.StartGame(NewState())

	assert.Equal(t, state, engine.SubmitAnswer(state, "A"))
	assert.Equal(t, NewState(), engine.SubmitAnswer(NewState(), "A"))
}

func TestContinueGameAdvancesToNextPick(t *testing.T) {
	engine := testEngine(testBank(5), 5)
	state := engine.StartGame(NewState())
	state = engine.SelectDifficulty(state, question.DifficultyEasy)
	state = engine.SubmitAnswer(state, "A")

	next := engine.ContinueGame(state)

	assert.Equal(t, PhaseChoosingDifficulty, next.Phase)
	assert.Nil(t, next.Current)
	assert.Nil(t, next.Feedback)
	assert.Equal(t, "", next.LastAnswer)
	assert.Len(t, next.Used, 1, "progress survives the transition")

	assert.Equal(t, next, engine.ContinueGame(next), "continue outside the feedback screen is a no-op")
}

func TestFullEasyRunEndsAtGameOver(t *testing.T) {
	bank := testBank(10)[:10] // easy tier only, 1 point each
	engine := testEngine(bank, 10)

	state := engine.StartGame(NewState())
	require.Len(t, state.Session, 10)

	for round := 0; round < 9; round++ {
		state = engine.SelectDifficulty(state, question.DifficultyEasy)
		require.NotNil(t, state.Current, "round %d should present a question", round)
		state = engine.SubmitAnswer(state, state.Current.Answer)
		state = engine.ContinueGame(state)
		require.Equal(t, PhaseChoosingDifficulty, state.Phase)
	}

	state = engine.SelectDifficulty(state, question.DifficultyEasy)
	state = engine.SubmitAnswer(state, state.Current.Answer)
	require.Equal(t, PhaseAnswered, state.Phase)

	stuck := engine.SelectDifficulty(state, question.DifficultyEasy)
	assert.Equal(t, state, stuck, "an eleventh pick must change nothing")

	state = engine.ContinueGame(state)
	assert.Equal(t, PhaseGameOver, state.Phase)
	assert.Equal(t, 10, state.Score)
	assert.True(t, state.Finished())
	assert.Equal(t, 0, AvailableCounts(state.Session, state.Used)[question.DifficultyEasy])
}

func TestScoreEqualsSumOfCorrectPoints(t *testing.T) {
	engine := testEngine(testBank(4), 4)
	rng := rand.New(rand.NewSource(7))

	state := engine.StartGame(NewState())
	for state.Phase != PhaseGameOver {
		tier := question.Difficulties[rng.Intn(len(question.Difficulties))]
		picked := engine.SelectDifficulty(state, tier)
		if picked.Phase != PhaseAnswering {
			// Exhausted tier, try another one.
			exhausted := true
			for _, d := range question.Difficulties {
				if AvailableCounts(state.Session, state.Used)[d] > 0 {
					exhausted = false
					tier = d
					break
				}
			}
			require.False(t, exhausted, "no tier left before game over")
			picked = engine.SelectDifficulty(state, tier)
		}
		state = picked
		if rng.Intn(2) == 0 {
			state = engine.SubmitAnswer(state, state.Current.Answer)
		} else {
			state = engine.SubmitAnswer(state, "respuesta equivocada")
		}
		state = engine.ContinueGame(state)
	}

	expected := 0
	for _, rec := range state.Answers {
		expected += rec.Points
	}
	assert.Equal(t, expected, state.Score)
	assert.Len(t, state.Answers, len(state.Session))
}

func TestEndGameEarlyKeepsProgress(t *testing.T) {
	engine := testEngine(testBank(5), 5)
	state := engine.StartGame(NewState())
	state = engine.SelectDifficulty(state, question.DifficultyMedium)
	state = engine.SubmitAnswer(state, state.Current.Answer)
	state = engine.ContinueGame(state)
	require.Equal(t, PhaseChoosingDifficulty, state.Phase)

	over := engine.EndGame(state)

	assert.Equal(t, PhaseGameOver, over.Phase)
	assert.Equal(t, tierPoints[question.DifficultyMedium], over.Score)
	assert.Equal(t, state.Used, over.Used)
	assert.False(t, over.Finished())

	assert.Equal(t, over, engine.EndGame(over), "ending twice is a no-op")
}

func TestStartGameAfterGameOverResets(t *testing.T) {
	engine := testEngine(testBank(5), 5)
	state := engine.StartGame(NewState())
	state = engine.SelectDifficulty(state, question.DifficultyEasy)
	state = engine.SubmitAnswer(state, state.Current.Answer)
	state = engine.EndGame(state)
	require.Equal(t, PhaseGameOver, state.Phase)

	fresh := engine.StartGame(state)

	assert.Equal(t, PhaseChoosingDifficulty, fresh.Phase)
	assert.Equal(t, 0, fresh.Score)
	assert.Empty(t, fresh.Used)
	assert.Empty(t, fresh.Answers)
	assert.Nil(t, fresh.Current)
}

func TestEmptyBankYieldsEmptySession(t *testing.T) {
	engine := testEngine(nil, 10)

	state := engine.StartGame(NewState())

	assert.Equal(t, PhaseChoosingDifficulty, state.Phase)
	assert.Empty(t, state.Session)
	assert.True(t, state.Finished())
	for _, tier := range question.Difficulties {
		assert.Equal(t, 0, AvailableCounts(state.Session, state.Used)[tier])
		assert.Equal(t, state, engine.SelectDifficulty(state, tier))
	}

	over := engine.EndGame(state)
	assert.Equal(t, PhaseGameOver, over.Phase)
}

func TestTransitionsLeaveInputUntouched(t *testing.T) {
	engine := testEngine(testBank(3), 3)

	started := engine.StartGame(NewState())
	answering := engine.SelectDifficulty(started, question.DifficultyEasy)

	assert.Empty(t, started.Used, "select must not touch the previous state")
	assert.Nil(t, started.Current)

	answered := engine.SubmitAnswer(answering, answering.Current.Answer)
	assert.Equal(t, 0, answering.Score, "submit must not touch the previous state")
	assert.Nil(t, answering.Feedback)
	assert.Empty(t, answering.Answers)

	_ = engine.ContinueGame(answered)
	assert.Equal(t, PhaseAnswered, answered.Phase)
	require.NotNil(t, answered.Feedback)
}
