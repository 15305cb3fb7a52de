package game

import (
	"math/rand"
	"time"

	"github.com/gokatarajesh/trivia-arena/internal/question"
)

// Engine applies game events to player states. It owns the environment the
// transitions share (bank, RNG, tier quota) while the states stay plain
// values, so every transition is state in, state out. Events arriving in the
// wrong phase are silent no-ops: the input state comes back unchanged.
type Engine struct {
	bank  []question.Question
	rng   *rand.Rand
	quota int
}

// EngineOptions tunes the engine. Zero values pick production defaults.
type EngineOptions struct {
	TierQuota int
	Rand      *rand.Rand
}

func NewEngine(bank []question.Question, opts EngineOptions) *Engine {
	quota := opts.TierQuota
	if quota <= 0 {
		quota = DefaultTierQuota
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{bank: bank, rng: rng, quota: quota}
}

// StartGame begins a fresh game from any phase: score and history reset, a
// new session is drawn, and the player lands on difficulty selection.
func (e *Engine) StartGame(State) State {
	return State{
		Phase:   PhaseChoosingDifficulty,
		Session: BuildSession(e.bank, e.rng, e.quota),
		Used:    map[int]bool{},
	}
}

// SelectDifficulty draws a uniformly random unused question from the chosen
// tier and marks it used. Only applies on the difficulty screen; a tier with
// nothing left leaves the state untouched.
func (e *Engine) SelectDifficulty(s State, tier question.Difficulty) State {
	if s.Phase != PhaseChoosingDifficulty {
		return s
	}
	pool := AvailableByTier(s.Session, s.Used)[tier]
	if len(pool) == 0 {
		return s
	}
	picked := pool[e.rng.Intn(len(pool))]

	next := s
	next.Used = cloneUsed(s.Used)
	next.Used[picked.ID] = true
	next.Current = &picked
	next.LastAnswer = ""
	next.Feedback = nil
	next.Phase = PhaseAnswering
	return next
}

// SubmitAnswer grades the submitted text against the current question with
// exact string comparison. A correct answer adds the question's points; the
// score never moves otherwise.
func (e *Engine) SubmitAnswer(s State, answer string) State {
	if s.Phase != PhaseAnswering || s.Current == nil {
		return s
	}
	correct := answer == s.Current.Answer

	record := AnswerRecord{
		QuestionID: s.Current.ID,
		Answer:     answer,
		Correct:    correct,
	}
	if correct {
		record.Points = s.Current.Points
	}

	next := s
	if correct {
		next.Score += s.Current.Points
	}
	next.LastAnswer = answer
	next.Feedback = &Feedback{
		Correct:     correct,
		Answer:      s.Current.Answer,
		Explanation: s.Current.Explanation,
	}
	next.Answers = appendRecord(s.Answers, record)
	next.Phase = PhaseAnswered
	return next
}

// ContinueGame leaves the feedback screen: on to the next pick, or to game
// over once the session is exhausted.
func (e *Engine) ContinueGame(s State) State {
	if s.Phase != PhaseAnswered {
		return s
	}
	next := s
	next.Current = nil
	next.LastAnswer = ""
	next.Feedback = nil
	if s.Finished() {
		next.Phase = PhaseGameOver
	} else {
		next.Phase = PhaseChoosingDifficulty
	}
	return next
}

// EndGame abandons the game early from any non-terminal phase, keeping the
// score and history reached so far.
func (e *Engine) EndGame(s State) State {
	if s.Phase == PhaseGameOver {
		return s
	}
	next := s
	next.Phase = PhaseGameOver
	return next
}

func cloneUsed(used map[int]bool) map[int]bool {
	clone := make(map[int]bool, len(used)+1)
	for id := range used {
		clone[id] = true
	}
	return clone
}

func appendRecord(answers []AnswerRecord, record AnswerRecord) []AnswerRecord {
	next := make([]AnswerRecord, len(answers), len(answers)+1)
	copy(next, answers)
	return append(next, record)
}
